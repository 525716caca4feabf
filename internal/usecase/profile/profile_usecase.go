package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillbridge-sg/skillbridge-backend/internal/domain"
	"github.com/skillbridge-sg/skillbridge-backend/internal/repository"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewProfileUseCase(profileRepo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{profileRepo: profileRepo}
}

// UpdateProfileRequest carries owner-editable fields. Credibility and
// credits are moderation-controlled and deliberately absent.
type UpdateProfileRequest struct {
	FullName              *string                `json:"full_name" binding:"omitempty,min=2,max=100"`
	Bio                   *string                `json:"bio" binding:"omitempty,max=500"`
	Location              *string                `json:"location" binding:"omitempty,max=100"`
	AgeGroup              *string                `json:"age_group" binding:"omitempty,max=30"`
	SkillsOffered         *[]string              `json:"skills_offered" binding:"omitempty,max=20,dive,min=1,max=60"`
	SkillsWanted          *[]string              `json:"skills_wanted" binding:"omitempty,max=20,dive,min=1,max=60"`
	SkillsProficiency     *domain.ProficiencyMap `json:"skills_proficiency"`
	SkillExchangeDuration *int                   `json:"skill_exchange_duration" binding:"omitempty,oneof=30 60 90 120"`
}

const newProfileCredibility = 50

// GetOrCreateProfile returns the caller's profile, creating a blank one
// lazily on first sign-in.
func (uc *ProfileUseCase) GetOrCreateProfile(ctx context.Context, userID int, fullName string) (*domain.Profile, error) {
	existing, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	profile := &domain.Profile{
		UserID:                userID,
		FullName:              fullName,
		CredibilityScore:      newProfileCredibility,
		SkillExchangeDuration: domain.DefaultExchangeDuration,
	}
	profile.Normalize()

	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrProfileAlreadyExists) {
			// Lost a create race with another request from the same user.
			return uc.profileRepo.GetByUserID(ctx, userID)
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile applies owner edits and re-normalizes the skill sets.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID int, req *UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.Location != nil {
		profile.Location = req.Location
	}
	if req.AgeGroup != nil {
		profile.AgeGroup = req.AgeGroup
	}
	if req.SkillsOffered != nil {
		profile.SkillsOffered = *req.SkillsOffered
	}
	if req.SkillsWanted != nil {
		profile.SkillsWanted = *req.SkillsWanted
	}
	if req.SkillsProficiency != nil {
		profile.SkillsProficiency = *req.SkillsProficiency
	}
	if req.SkillExchangeDuration != nil {
		profile.SkillExchangeDuration = *req.SkillExchangeDuration
	}

	profile.Normalize()

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

// GetProfileByUserID returns another user's profile.
func (uc *ProfileUseCase) GetProfileByUserID(ctx context.Context, targetUserID int) (*domain.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, targetUserID)
}

// GetPublicProfiles is the discovery aggregate: everyone with at least
// one skill listed, excluding the caller.
func (uc *ProfileUseCase) GetPublicProfiles(ctx context.Context, callerID int, limit, offset int) ([]*domain.Profile, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return uc.profileRepo.GetPublicProfiles(ctx, callerID, limit, offset)
}
