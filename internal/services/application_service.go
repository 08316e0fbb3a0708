package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/jobboard/internal/models"
	pgrepo "github.com/yoockh/jobboard/internal/repositories/postgres"
	"github.com/yoockh/jobboard/internal/utils"
)

// Notifier pushes a best-effort event to a user's live connection.
type Notifier interface {
	NotifyUser(userID, event string, data any)
}

const EventApplicationStatus = "application_status"

type ApplyInput struct {
	JobID       string `json:"jobId" binding:"required"`
	CoverLetter string `json:"coverLetter"`
}

type UpdateStatusInput struct {
	Status models.ApplicationStatus `json:"status" binding:"required"`
}

type ApplicationService interface {
	Apply(ctx context.Context, caller models.Principal, in ApplyInput) (*models.Application, error)
	Mine(ctx context.Context, caller models.Principal) ([]models.MyApplication, error)
	ForJob(ctx context.Context, caller models.Principal, jobID string) ([]models.JobApplicant, error)
	UpdateStatus(ctx context.Context, caller models.Principal, id string, in UpdateStatusInput) (*models.Application, error)
}

type applicationService struct {
	apps      pgrepo.ApplicationRepository
	jobs      pgrepo.JobRepository
	companies pgrepo.CompanyRepository
	notifier  Notifier
}

// NewApplicationService wires the service. notifier may be nil.
func NewApplicationService(apps pgrepo.ApplicationRepository, jobs pgrepo.JobRepository, companies pgrepo.CompanyRepository, notifier Notifier) ApplicationService {
	return &applicationService{apps: apps, jobs: jobs, companies: companies, notifier: notifier}
}

func (s *applicationService) Apply(ctx context.Context, caller models.Principal, in ApplyInput) (*models.Application, error) {
	const op = "ApplicationService.Apply"

	if err := requireRole(op, caller, models.RoleJobSeeker); err != nil {
		return nil, err
	}
	jobID := strings.TrimSpace(in.JobID)
	if jobID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "jobId is required", nil)
	}

	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, lookupErr(op, "job", err)
	}

	exists, err := s.apps.Exists(ctx, caller.UserID, jobID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check application", err)
	}
	if exists {
		return nil, utils.E(utils.CodeConflict, op, "already applied to this job", nil)
	}

	now := time.Now().UTC()
	a := &models.Application{
		ID:          uuid.NewString(),
		UserID:      caller.UserID,
		JobID:       jobID,
		Status:      models.ApplicationPending,
		CoverLetter: in.CoverLetter,
		AppliedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.apps.Create(ctx, a); err != nil {
		return nil, writeErr(op, "already applied to this job", err)
	}
	return a, nil
}

func (s *applicationService) Mine(ctx context.Context, caller models.Principal) ([]models.MyApplication, error) {
	const op = "ApplicationService.Mine"

	if err := requireRole(op, caller, models.RoleJobSeeker); err != nil {
		return nil, err
	}
	out, err := s.apps.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	if out == nil {
		out = []models.MyApplication{}
	}
	return out, nil
}

func (s *applicationService) ForJob(ctx context.Context, caller models.Principal, jobID string) ([]models.JobApplicant, error) {
	const op = "ApplicationService.ForJob"

	if err := requireRole(op, caller, models.RoleEmployer); err != nil {
		return nil, err
	}
	c, err := ownedCompany(ctx, s.companies, op, caller)
	if err != nil {
		return nil, err
	}
	if _, err := s.jobs.GetOwned(ctx, jobID, c.ID); err != nil {
		return nil, lookupErr(op, "job", err)
	}

	out, err := s.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	if out == nil {
		out = []models.JobApplicant{}
	}
	return out, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, caller models.Principal, id string, in UpdateStatusInput) (*models.Application, error) {
	const op = "ApplicationService.UpdateStatus"

	if err := requireRole(op, caller, models.RoleEmployer); err != nil {
		return nil, err
	}
	if !in.Status.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "status must be one of pending, reviewing, accepted, rejected", nil)
	}

	c, err := ownedCompany(ctx, s.companies, op, caller)
	if err != nil {
		return nil, err
	}
	a, err := s.apps.GetForCompany(ctx, id, c.ID)
	if err != nil {
		return nil, lookupErr(op, "application", err)
	}

	a.Status = in.Status
	a.UpdatedAt = time.Now().UTC()
	if err := s.apps.UpdateStatus(ctx, a); err != nil {
		return nil, writeErr(op, "application conflict", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyUser(a.UserID, EventApplicationStatus, map[string]any{
			"applicationId": a.ID,
			"jobId":         a.JobID,
			"status":        a.Status,
		})
	}
	return a, nil
}
