package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusReviewing ReportStatus = "reviewing"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

const MaxReportWords = 200

type Report struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	ReporterID     int          `json:"reporter_id" db:"reporter_id"`
	ReportedUserID int          `json:"reported_user_id" db:"reported_user_id"`
	Description    string       `json:"description" db:"description"`
	Status         ReportStatus `json:"status" db:"status"`
	ActionTaken    *string      `json:"action_taken" db:"action_taken"`
	ReviewedBy     *int         `json:"reviewed_by" db:"reviewed_by"`
	ReviewedAt     *time.Time   `json:"reviewed_at" db:"reviewed_at"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
}

// ValidateReportDescription enforces the 200-word cap before submission.
func ValidateReportDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrInvalidInput
	}
	if len(strings.Fields(description)) > MaxReportWords {
		return ErrReportTooLong
	}
	return nil
}
