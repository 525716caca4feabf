package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/skillbridge-sg/skillbridge-backend/internal/domain"
	"github.com/skillbridge-sg/skillbridge-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, full_name, bio, location, age_group,
			skills_offered, skills_wanted, skills_proficiency,
			credibility_score, credits, skill_exchange_duration
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.UserID, profile.FullName, profile.Bio, profile.Location, profile.AgeGroup,
		pq.Array(profile.SkillsOffered), pq.Array(profile.SkillsWanted), profile.SkillsProficiency,
		profile.CredibilityScore, profile.Credits, profile.SkillExchangeDuration,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrProfileAlreadyExists
		}
		return err
	}
	return nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	var profile domain.Profile
	query := `
		SELECT id, user_id, full_name, bio, location, age_group,
		       skills_offered, skills_wanted, skills_proficiency,
		       credibility_score, credits, skill_exchange_duration,
		       created_at, updated_at
		FROM profiles WHERE user_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.FullName, &profile.Bio, &profile.Location, &profile.AgeGroup,
		pq.Array(&profile.SkillsOffered), pq.Array(&profile.SkillsWanted), &profile.SkillsProficiency,
		&profile.CredibilityScore, &profile.Credits, &profile.SkillExchangeDuration,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $1, bio = $2, location = $3, age_group = $4,
		    skills_offered = $5, skills_wanted = $6, skills_proficiency = $7,
		    credibility_score = $8, credits = $9, skill_exchange_duration = $10,
		    updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $11
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.FullName, profile.Bio, profile.Location, profile.AgeGroup,
		pq.Array(profile.SkillsOffered), pq.Array(profile.SkillsWanted), profile.SkillsProficiency,
		profile.CredibilityScore, profile.Credits, profile.SkillExchangeDuration,
		profile.UserID,
	).Scan(&profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrProfileNotFound
		}
		return err
	}
	return nil
}

func (r *profileRepository) UpdateCredibility(ctx context.Context, userID int, score int) error {
	query := `
		UPDATE profiles
		SET credibility_score = $1, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, score, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) GetPublicProfiles(ctx context.Context, excludeUserID int, limit, offset int) ([]*domain.Profile, error) {
	query := `
		SELECT id, user_id, full_name, bio, location, age_group,
		       skills_offered, skills_wanted, skills_proficiency,
		       credibility_score, credits, skill_exchange_duration,
		       created_at, updated_at
		FROM profiles
		WHERE user_id != $1
		  AND credibility_score > 0
		  AND (cardinality(skills_offered) > 0 OR cardinality(skills_wanted) > 0)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, excludeUserID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		var profile domain.Profile
		if err := rows.Scan(
			&profile.ID, &profile.UserID, &profile.FullName, &profile.Bio, &profile.Location, &profile.AgeGroup,
			pq.Array(&profile.SkillsOffered), pq.Array(&profile.SkillsWanted), &profile.SkillsProficiency,
			&profile.CredibilityScore, &profile.Credits, &profile.SkillExchangeDuration,
			&profile.CreatedAt, &profile.UpdatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, &profile)
	}
	return profiles, rows.Err()
}
