package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// ScanStatus represents the processing status of an uploaded scan
type ScanStatus string

const (
	ScanStatusPending   ScanStatus = "pending"
	ScanStatusCompleted ScanStatus = "completed"
	ScanStatusFailed    ScanStatus = "failed"
	ScanStatusConfirmed ScanStatus = "confirmed"
)

// Confidence is a 0–1 score attached to a scanned item. Upstream sources
// (vision, OCR, voice) send it either as a number or as one of
// "high"/"medium"/"low"; both decode to the numeric form.
type Confidence float64

// UnmarshalJSON accepts numeric confidences as well as the coarse
// high/medium/low labels some providers emit.
func (c *Confidence) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*c = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var label string
		if err := json.Unmarshal(b, &label); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(label)) {
		case "high":
			*c = 0.9
		case "medium":
			*c = 0.7
		case "low":
			*c = 0.5
		default:
			if v, err := strconv.ParseFloat(label, 64); err == nil {
				*c = Confidence(v)
			} else {
				*c = 0.5
			}
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*c = Confidence(v)
	return nil
}

// Level returns the coarse label for a confidence score
func (c Confidence) Level() string {
	switch {
	case c >= 0.9:
		return "high"
	case c >= 0.7:
		return "medium"
	case c >= 0.5:
		return "low"
	default:
		return "none"
	}
}

// ScannedItem is one raw item reported by a scan source
type ScannedItem struct {
	Name       string     `json:"name"`
	Quantity   float64    `json:"quantity"`
	Unit       string     `json:"unit,omitempty"`
	Category   Category   `json:"category,omitempty"`
	Confidence Confidence `json:"confidence"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

// ScanSource is a batch of items from one source (one photo, one voice
// clip, one purchase feed)
type ScanSource struct {
	Source string        `json:"source"`
	Items  []ScannedItem `json:"items"`
}

// Scan represents an uploaded pantry-scan image awaiting confirmation
type Scan struct {
	ID               int           `json:"id"`
	UserID           int           `json:"user_id"`
	S3Bucket         string        `json:"s3_bucket"`
	S3Key            string        `json:"s3_key"`
	OriginalFilename *string       `json:"original_filename,omitempty"`
	ContentType      *string       `json:"content_type,omitempty"`
	Status           ScanStatus    `json:"status"`
	OCRText          *string       `json:"ocr_text,omitempty"`
	ErrorMessage     *string       `json:"error_message,omitempty"`
	Items            []ScannedItem `json:"items"`
	UploadedAt       time.Time     `json:"uploaded_at"`
	ConfirmedAt      *time.Time    `json:"confirmed_at,omitempty"`
	ExpiresAt        time.Time     `json:"expires_at"`
}

// BulkAddRequest carries item batches from one or more scan sources to
// be deduplicated and merged into the pantry
type BulkAddRequest struct {
	Sources []ScanSource `json:"sources"`
}
