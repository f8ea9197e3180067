package database

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/calloway/larder/internal/models"
)

var (
	ErrScanNotFound = errors.New("scan not found")
)

// scanRetention is how long unconfirmed scans and their images are kept
const scanRetention = 7 * 24 * time.Hour

// CreateScan records a freshly uploaded scan image
func (db *DB) CreateScan(ctx context.Context, userID int, s3Bucket, s3Key, filename, contentType string) (*models.Scan, error) {
	scan := &models.Scan{}
	var itemsJSON []byte
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO scans (user_id, s3_bucket, s3_key, original_filename, content_type, expires_at)
		VALUES ($1, $2, $3, $4, $5, NOW() + make_interval(hours => $6))
		RETURNING id, user_id, s3_bucket, s3_key, original_filename, content_type,
			status, ocr_text, error_message, items, uploaded_at, confirmed_at, expires_at
	`, userID, s3Bucket, s3Key, filename, contentType, int(scanRetention.Hours())).Scan(
		&scan.ID, &scan.UserID, &scan.S3Bucket, &scan.S3Key, &scan.OriginalFilename, &scan.ContentType,
		&scan.Status, &scan.OCRText, &scan.ErrorMessage, &itemsJSON, &scan.UploadedAt, &scan.ConfirmedAt, &scan.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &scan.Items); err != nil {
		return nil, err
	}

	return scan, nil
}

// GetScanByID returns a scan owned by the user
func (db *DB) GetScanByID(ctx context.Context, id, userID int) (*models.Scan, error) {
	scan := &models.Scan{}
	var itemsJSON []byte
	err := db.Pool.QueryRow(ctx, `
		SELECT id, user_id, s3_bucket, s3_key, original_filename, content_type,
			status, ocr_text, error_message, items, uploaded_at, confirmed_at, expires_at
		FROM scans
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(
		&scan.ID, &scan.UserID, &scan.S3Bucket, &scan.S3Key, &scan.OriginalFilename, &scan.ContentType,
		&scan.Status, &scan.OCRText, &scan.ErrorMessage, &itemsJSON, &scan.UploadedAt, &scan.ConfirmedAt, &scan.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrScanNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &scan.Items); err != nil {
		return nil, err
	}

	return scan, nil
}

// ListScans returns a user's scans, newest first
func (db *DB) ListScans(ctx context.Context, userID int) ([]models.Scan, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, user_id, s3_bucket, s3_key, original_filename, content_type,
			status, ocr_text, error_message, items, uploaded_at, confirmed_at, expires_at
		FROM scans
		WHERE user_id = $1
		ORDER BY uploaded_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []models.Scan
	for rows.Next() {
		var scan models.Scan
		var itemsJSON []byte
		err := rows.Scan(
			&scan.ID, &scan.UserID, &scan.S3Bucket, &scan.S3Key, &scan.OriginalFilename, &scan.ContentType,
			&scan.Status, &scan.OCRText, &scan.ErrorMessage, &itemsJSON, &scan.UploadedAt, &scan.ConfirmedAt, &scan.ExpiresAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(itemsJSON, &scan.Items); err != nil {
			return nil, err
		}
		scans = append(scans, scan)
	}

	return scans, rows.Err()
}

// UpdateScanResult stores the OCR text and parsed items after processing
func (db *DB) UpdateScanResult(ctx context.Context, id, userID int, status models.ScanStatus, ocrText *string, errorMessage *string, items []models.ScannedItem) error {
	if items == nil {
		items = []models.ScannedItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return err
	}

	tag, err := db.Pool.Exec(ctx, `
		UPDATE scans
		SET status = $3, ocr_text = $4, error_message = $5, items = $6
		WHERE id = $1 AND user_id = $2
	`, id, userID, status, ocrText, errorMessage, itemsJSON)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrScanNotFound
	}

	return nil
}

// MarkScanConfirmed flags a scan as merged into the pantry
func (db *DB) MarkScanConfirmed(ctx context.Context, id, userID int) error {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE scans SET status = 'confirmed', confirmed_at = NOW()
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrScanNotFound
	}

	return nil
}

// DeleteScan removes a scan record and returns its S3 key so the caller
// can delete the stored image
func (db *DB) DeleteScan(ctx context.Context, id, userID int) (string, error) {
	var s3Key string
	err := db.Pool.QueryRow(ctx, `
		DELETE FROM scans WHERE id = $1 AND user_id = $2
		RETURNING s3_key
	`, id, userID).Scan(&s3Key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrScanNotFound
		}
		return "", err
	}

	return s3Key, nil
}

// CleanupExpiredScans deletes expired scan records and returns their S3
// keys for storage cleanup
func (db *DB) CleanupExpiredScans(ctx context.Context) ([]string, error) {
	rows, err := db.Pool.Query(ctx, `
		DELETE FROM scans WHERE expires_at < NOW()
		RETURNING s3_key
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}
