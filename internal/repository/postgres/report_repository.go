package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skillbridge-sg/skillbridge-backend/internal/domain"
	"github.com/skillbridge-sg/skillbridge-backend/internal/repository"
)

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	query := `
		INSERT INTO reports (id, reporter_id, reported_user_id, description, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		report.ID, report.ReporterID, report.ReportedUserID, report.Description, report.Status,
	).Scan(&report.CreatedAt)
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	var report domain.Report
	query := `SELECT * FROM reports WHERE id = $1`
	err := r.db.GetContext(ctx, &report, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, status *domain.ReportStatus, limit, offset int) ([]*domain.Report, error) {
	var reports []*domain.Report

	query := `SELECT * FROM reports WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, *status)
		argCount++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, limit, offset)

	err := r.db.SelectContext(ctx, &reports, query, args...)
	return reports, err
}

func (r *reportRepository) Update(ctx context.Context, report *domain.Report) error {
	query := `
		UPDATE reports
		SET status = $1, action_taken = $2, reviewed_by = $3, reviewed_at = $4
		WHERE id = $5
	`
	result, err := r.db.ExecContext(
		ctx, query,
		report.Status, report.ActionTaken, report.ReviewedBy, report.ReviewedAt, report.ID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}
