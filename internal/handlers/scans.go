package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/calloway/larder/internal/database"
	"github.com/calloway/larder/internal/middleware"
	"github.com/calloway/larder/internal/models"
)

const (
	maxScanSize      = 10 * 1024 * 1024 // 10MB
	presignedURLTime = 15 * time.Minute
)

// ConfirmScanRequest optionally overrides the parsed items before they
// are merged into the pantry
type ConfirmScanRequest struct {
	Items []models.ScannedItem `json:"items"`
}

// UploadScan accepts a pantry-scan image (shelf photo or receipt),
// stores it, runs OCR, and parses candidate items for review
func (h *Handler) UploadScan(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	if h.storage == nil {
		return Error(c, fiber.StatusServiceUnavailable, "scan uploads are not configured")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "image file is required")
	}
	if fileHeader.Size > maxScanSize {
		return Error(c, fiber.StatusBadRequest, "image exceeds maximum size of 10MB")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return Error(c, fiber.StatusBadRequest, "file must be an image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to read uploaded file")
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to read uploaded file")
	}

	key := fmt.Sprintf("scans/%d/%s%s", userID, uuid.NewString(), filepath.Ext(fileHeader.Filename))
	upload, err := h.storage.Upload(c.Context(), key, bytes.NewReader(imageBytes), int64(len(imageBytes)), contentType)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to store image")
	}

	scan, err := h.db.CreateScan(c.Context(), userID, upload.Bucket, upload.Key, fileHeader.Filename, contentType)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to record scan")
	}

	if h.ocr == nil {
		msg := "OCR is not available on this server"
		if err := h.db.UpdateScanResult(c.Context(), scan.ID, userID, models.ScanStatusFailed, nil, &msg, nil); err != nil {
			log.Printf("Warning: failed to update scan %d: %v", scan.ID, err)
		}
	} else if ocrResult, err := h.ocr.ProcessImage(imageBytes); err != nil {
		msg := "failed to extract text from image"
		if err := h.db.UpdateScanResult(c.Context(), scan.ID, userID, models.ScanStatusFailed, nil, &msg, nil); err != nil {
			log.Printf("Warning: failed to update scan %d: %v", scan.ID, err)
		}
	} else {
		items := h.scanParser.Parse(ocrResult.Text)
		if err := h.db.UpdateScanResult(c.Context(), scan.ID, userID, models.ScanStatusCompleted, &ocrResult.Text, nil, items); err != nil {
			log.Printf("Warning: failed to update scan %d: %v", scan.ID, err)
		}
	}

	scan, err = h.db.GetScanByID(c.Context(), scan.ID, userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load scan")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{Success: true, Data: scan})
}

// GetScans returns the user's scans, newest first
func (h *Handler) GetScans(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	scans, err := h.db.ListScans(c.Context(), userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list scans")
	}
	if scans == nil {
		scans = []models.Scan{}
	}

	return Success(c, scans)
}

// GetScan returns a single scan with a short-lived image URL
func (h *Handler) GetScan(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid scan id")
	}

	scan, err := h.db.GetScanByID(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, database.ErrScanNotFound) {
			return Error(c, fiber.StatusNotFound, "scan not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get scan")
	}

	imageURL := ""
	if h.storage != nil {
		url, err := h.storage.GetPresignedURL(c.Context(), scan.S3Key, presignedURLTime)
		if err != nil {
			log.Printf("Warning: failed to presign URL for scan %d: %v", scan.ID, err)
		} else {
			imageURL = url
		}
	}

	return Success(c, fiber.Map{
		"scan":      scan,
		"image_url": imageURL,
	})
}

// ConfirmScan merges a scan's items into the pantry. The client may
// send an edited item list to correct OCR mistakes first.
func (h *Handler) ConfirmScan(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid scan id")
	}

	scan, err := h.db.GetScanByID(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, database.ErrScanNotFound) {
			return Error(c, fiber.StatusNotFound, "scan not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get scan")
	}
	if scan.Status == models.ScanStatusConfirmed {
		return Error(c, fiber.StatusConflict, "scan already confirmed")
	}

	items := scan.Items
	var req ConfirmScanRequest
	if err := c.BodyParser(&req); err == nil && len(req.Items) > 0 {
		items = req.Items
	}
	if len(items) == 0 {
		return Error(c, fiber.StatusBadRequest, "scan has no items to confirm")
	}

	result, err := h.mergeIntoPantry(c, userID, []models.ScanSource{{Source: "scan", Items: items}})
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to add items to pantry")
	}

	if err := h.db.MarkScanConfirmed(c.Context(), scan.ID, userID); err != nil {
		log.Printf("Warning: failed to mark scan %d confirmed: %v", scan.ID, err)
	}

	return Success(c, result)
}

// DeleteScan removes a scan and its stored image
func (h *Handler) DeleteScan(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid scan id")
	}

	s3Key, err := h.db.DeleteScan(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, database.ErrScanNotFound) {
			return Error(c, fiber.StatusNotFound, "scan not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to delete scan")
	}

	if h.storage != nil {
		if err := h.storage.Delete(c.Context(), s3Key); err != nil {
			log.Printf("Warning: failed to delete stored image %s: %v", s3Key, err)
		}
	}

	return Success(c, fiber.Map{"deleted": true})
}
