package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skillbridge-sg/skillbridge-backend/internal/domain"
	"github.com/skillbridge-sg/skillbridge-backend/internal/repository"
)

type Action string

const (
	ActionWarn        Action = "warn"
	ActionReduceScore Action = "reduce_score"
	ActionBan         Action = "ban"
)

// ScorePenalty is subtracted from credibility on reduce_score.
const ScorePenalty = 20

type ModerationUseCase struct {
	reportRepo  repository.ReportRepository
	profileRepo repository.ProfileRepository
}

func NewModerationUseCase(
	reportRepo repository.ReportRepository,
	profileRepo repository.ProfileRepository,
) *ModerationUseCase {
	return &ModerationUseCase{
		reportRepo:  reportRepo,
		profileRepo: profileRepo,
	}
}

// SubmitReport files a report against a chat partner.
func (uc *ModerationUseCase) SubmitReport(ctx context.Context, reporterID, reportedUserID int, description string) (*domain.Report, error) {
	if reporterID == reportedUserID {
		return nil, domain.ErrCannotReportSelf
	}
	if err := domain.ValidateReportDescription(description); err != nil {
		return nil, err
	}

	report := &domain.Report{
		ReporterID:     reporterID,
		ReportedUserID: reportedUserID,
		Description:    description,
		Status:         domain.ReportStatusPending,
	}
	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to submit report: %w", err)
	}
	return report, nil
}

// ListReports returns reports for the console, optionally filtered by
// status.
func (uc *ModerationUseCase) ListReports(ctx context.Context, status *domain.ReportStatus, limit, offset int) ([]*domain.Report, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return uc.reportRepo.List(ctx, status, limit, offset)
}

// ApplyAction resolves a report with a punitive action. Authorization
// is the console route guard's job; the action itself does not re-check.
func (uc *ModerationUseCase) ApplyAction(ctx context.Context, moderatorID int, reportID uuid.UUID, action Action, note string) (*domain.Report, error) {
	report, err := uc.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	switch action {
	case ActionWarn:
		// Resolution only, no profile mutation.
	case ActionReduceScore:
		if err := uc.adjustCredibility(ctx, report.ReportedUserID, func(score int) int {
			score -= ScorePenalty
			if score < 0 {
				score = 0
			}
			return score
		}); err != nil {
			return nil, err
		}
	case ActionBan:
		// Zero credibility is the platform's ban signal.
		if err := uc.adjustCredibility(ctx, report.ReportedUserID, func(int) int {
			return 0
		}); err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	audit := string(action)
	if note != "" {
		audit = audit + ": " + note
	}
	now := time.Now()

	report.Status = domain.ReportStatusResolved
	report.ActionTaken = &audit
	report.ReviewedBy = &moderatorID
	report.ReviewedAt = &now

	if err := uc.reportRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	return report, nil
}

// UpdateStatus moves a report between workflow states without an action
// (e.g. pending -> reviewing, or dismissed).
func (uc *ModerationUseCase) UpdateStatus(ctx context.Context, moderatorID int, reportID uuid.UUID, status domain.ReportStatus) (*domain.Report, error) {
	report, err := uc.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report.Status = status
	report.ReviewedBy = &moderatorID
	report.ReviewedAt = &now

	if err := uc.reportRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	return report, nil
}

func (uc *ModerationUseCase) adjustCredibility(ctx context.Context, userID int, adjust func(int) int) error {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if err := uc.profileRepo.UpdateCredibility(ctx, userID, adjust(profile.CredibilityScore)); err != nil {
		return fmt.Errorf("failed to update credibility: %w", err)
	}
	return nil
}
