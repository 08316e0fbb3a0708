package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/jobboard/internal/models"
	pgrepo "github.com/yoockh/jobboard/internal/repositories/postgres"
	"github.com/yoockh/jobboard/internal/storage"
	"github.com/yoockh/jobboard/internal/utils"
)

const (
	MaxResumeBytes = 10 << 20
	MaxLogoBytes   = 2 << 20
)

var logoExt = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

// Upload is an already sniffed multipart file.
type Upload struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

type MediaService interface {
	UploadResume(ctx context.Context, caller models.Principal, up Upload) (*models.Profile, error)
	UploadLogo(ctx context.Context, caller models.Principal, up Upload) (*models.Company, error)
}

type mediaService struct {
	uploader  storage.Uploader
	profiles  pgrepo.ProfileRepository
	companies pgrepo.CompanyRepository
}

// NewMediaService wires the service. uploader may be nil when no bucket is configured.
func NewMediaService(uploader storage.Uploader, profiles pgrepo.ProfileRepository, companies pgrepo.CompanyRepository) MediaService {
	return &mediaService{uploader: uploader, profiles: profiles, companies: companies}
}

func (s *mediaService) UploadResume(ctx context.Context, caller models.Principal, up Upload) (*models.Profile, error) {
	const op = "MediaService.UploadResume"

	if err := requireRole(op, caller, models.RoleJobSeeker); err != nil {
		return nil, err
	}
	if up.ContentType != "application/pdf" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid content type (must be pdf)", nil)
	}
	if up.Size <= 0 || up.Size > MaxResumeBytes {
		return nil, utils.E(utils.CodeInvalidArgument, op, "file too large (max 10MB)", nil)
	}
	if s.uploader == nil {
		return nil, utils.E(utils.CodeInternal, op, "uploader is not configured", nil)
	}

	p, err := s.profiles.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, lookupErr(op, "profile", err)
	}

	objectName := "resumes/" + caller.UserID + "/" + uuid.NewString() + ".pdf"
	url, err := s.uploader.Upload(ctx, objectName, up.ContentType, up.Body)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to store resume", err)
	}

	p.ResumeURL = url
	p.UpdatedAt = time.Now().UTC()
	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, writeErr(op, "profile conflict", err)
	}
	return p, nil
}

func (s *mediaService) UploadLogo(ctx context.Context, caller models.Principal, up Upload) (*models.Company, error) {
	const op = "MediaService.UploadLogo"

	if err := requireRole(op, caller, models.RoleEmployer); err != nil {
		return nil, err
	}
	ext, ok := logoExt[up.ContentType]
	if !ok {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid content type (must be png or jpeg)", nil)
	}
	if up.Size <= 0 || up.Size > MaxLogoBytes {
		return nil, utils.E(utils.CodeInvalidArgument, op, "file too large (max 2MB)", nil)
	}
	if s.uploader == nil {
		return nil, utils.E(utils.CodeInternal, op, "uploader is not configured", nil)
	}

	c, err := ownedCompany(ctx, s.companies, op, caller)
	if err != nil {
		return nil, err
	}

	objectName := "logos/" + c.ID + "/" + uuid.NewString() + ext
	url, err := s.uploader.Upload(ctx, objectName, up.ContentType, up.Body)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to store logo", err)
	}

	c.LogoURL = url
	c.UpdatedAt = time.Now().UTC()
	if err := s.companies.Save(ctx, c); err != nil {
		return nil, writeErr(op, "company conflict", err)
	}
	return c, nil
}
