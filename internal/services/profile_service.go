package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/jobboard/internal/models"
	pgrepo "github.com/yoockh/jobboard/internal/repositories/postgres"
	"github.com/yoockh/jobboard/internal/utils"
)

type ProfileInput struct {
	ProfessionalHeadline string                 `json:"professionalHeadline"`
	Bio                  string                 `json:"bio"`
	Skills               []string               `json:"skills"`
	Experience           []models.TimelineEntry `json:"experience" binding:"omitempty,dive"`
	Education            []models.TimelineEntry `json:"education" binding:"omitempty,dive"`
	Location             string                 `json:"location"`
	Phone                string                 `json:"phone"`
	ResumeURL            string                 `json:"resumeUrl"`
}

// UpdateProfileInput lists every field a job seeker may change. Nil means unchanged.
type UpdateProfileInput struct {
	ProfessionalHeadline *string                 `json:"professionalHeadline"`
	Bio                  *string                 `json:"bio"`
	Skills               *[]string               `json:"skills"`
	Experience           *[]models.TimelineEntry `json:"experience"`
	Education            *[]models.TimelineEntry `json:"education"`
	Location             *string                 `json:"location"`
	Phone                *string                 `json:"phone"`
	ResumeURL            *string                 `json:"resumeUrl"`
}

type ProfileService interface {
	GetMine(ctx context.Context, caller models.Principal) (*models.Profile, error)
	Create(ctx context.Context, caller models.Principal, in ProfileInput) (*models.Profile, error)
	Update(ctx context.Context, caller models.Principal, in UpdateProfileInput) (*models.Profile, error)
	GetPublic(ctx context.Context, caller models.Principal, userID string) (*models.PublicProfile, error)
}

type profileService struct {
	profiles pgrepo.ProfileRepository
}

func NewProfileService(profiles pgrepo.ProfileRepository) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) GetMine(ctx context.Context, caller models.Principal) (*models.Profile, error) {
	const op = "ProfileService.GetMine"

	if err := requireRole(op, caller, models.RoleJobSeeker); err != nil {
		return nil, err
	}
	p, err := s.profiles.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, lookupErr(op, "profile", err)
	}
	return p, nil
}

func (s *profileService) Create(ctx context.Context, caller models.Principal, in ProfileInput) (*models.Profile, error) {
	const op = "ProfileService.Create"

	if err := requireRole(op, caller, models.RoleJobSeeker); err != nil {
		return nil, err
	}
	if err := validateTimeline(op, in.Experience, in.Education); err != nil {
		return nil, err
	}

	// fast path; the unique index on user_id is the real guard
	if _, err := s.profiles.GetByUserID(ctx, caller.UserID); err == nil {
		return nil, utils.E(utils.CodeConflict, op, "profile already exists", nil)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to check profile", err)
	}

	now := time.Now().UTC()
	p := &models.Profile{
		ID:                   uuid.NewString(),
		UserID:               caller.UserID,
		ProfessionalHeadline: in.ProfessionalHeadline,
		Bio:                  in.Bio,
		Skills:               in.Skills,
		Experience:           in.Experience,
		Education:            in.Education,
		Location:             in.Location,
		Phone:                in.Phone,
		ResumeURL:            in.ResumeURL,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, writeErr(op, "profile already exists", err)
	}
	return p, nil
}

func (s *profileService) Update(ctx context.Context, caller models.Principal, in UpdateProfileInput) (*models.Profile, error) {
	const op = "ProfileService.Update"

	if err := requireRole(op, caller, models.RoleJobSeeker); err != nil {
		return nil, err
	}

	p, err := s.profiles.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, lookupErr(op, "profile", err)
	}

	if in.ProfessionalHeadline != nil {
		p.ProfessionalHeadline = *in.ProfessionalHeadline
	}
	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	if in.Skills != nil {
		p.Skills = *in.Skills
	}
	if in.Experience != nil {
		if err := validateTimeline(op, *in.Experience); err != nil {
			return nil, err
		}
		p.Experience = *in.Experience
	}
	if in.Education != nil {
		if err := validateTimeline(op, *in.Education); err != nil {
			return nil, err
		}
		p.Education = *in.Education
	}
	if in.Location != nil {
		p.Location = *in.Location
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.ResumeURL != nil {
		p.ResumeURL = *in.ResumeURL
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, writeErr(op, "profile conflict", err)
	}
	return p, nil
}

func (s *profileService) GetPublic(ctx context.Context, caller models.Principal, userID string) (*models.PublicProfile, error) {
	const op = "ProfileService.GetPublic"

	if caller.UserID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "not authenticated", nil)
	}
	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user id is required", nil)
	}

	p, err := s.profiles.GetPublic(ctx, userID, false)
	if err != nil {
		return nil, lookupErr(op, "profile", err)
	}
	return p, nil
}

func validateTimeline(op string, lists ...[]models.TimelineEntry) error {
	for _, list := range lists {
		for _, e := range list {
			if e.Organization == "" || e.Title == "" {
				return utils.E(utils.CodeInvalidArgument, op, "each experience/education entry needs organization and title", nil)
			}
		}
	}
	return nil
}
