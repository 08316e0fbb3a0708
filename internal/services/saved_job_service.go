package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/jobboard/internal/models"
	pgrepo "github.com/yoockh/jobboard/internal/repositories/postgres"
	"github.com/yoockh/jobboard/internal/utils"
)

type SaveJobInput struct {
	JobID string `json:"jobId" binding:"required"`
}

type SavedJobService interface {
	Save(ctx context.Context, caller models.Principal, in SaveJobInput) (*models.SavedJob, error)
	Unsave(ctx context.Context, caller models.Principal, jobID string) error
	List(ctx context.Context, caller models.Principal) ([]models.SavedJobView, error)
}

type savedJobService struct {
	saved pgrepo.SavedJobRepository
	jobs  pgrepo.JobRepository
}

func NewSavedJobService(saved pgrepo.SavedJobRepository, jobs pgrepo.JobRepository) SavedJobService {
	return &savedJobService{saved: saved, jobs: jobs}
}

func (s *savedJobService) Save(ctx context.Context, caller models.Principal, in SaveJobInput) (*models.SavedJob, error) {
	const op = "SavedJobService.Save"

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

	exists, err := s.saved.Exists(ctx, caller.UserID, jobID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check saved job", err)
	}
	if exists {
		return nil, utils.E(utils.CodeConflict, op, "job already saved", nil)
	}

	sj := &models.SavedJob{
		ID:      uuid.NewString(),
		UserID:  caller.UserID,
		JobID:   jobID,
		SavedAt: time.Now().UTC(),
	}
	if err := s.saved.Create(ctx, sj); err != nil {
		return nil, writeErr(op, "job already saved", err)
	}
	return sj, nil
}

func (s *savedJobService) Unsave(ctx context.Context, caller models.Principal, jobID string) error {
	const op = "SavedJobService.Unsave"

	if err := requireRole(op, caller, models.RoleJobSeeker); err != nil {
		return err
	}
	err := s.saved.Delete(ctx, caller.UserID, jobID)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeInternal, op, "failed to remove saved job", err)
	}
	return nil
}

func (s *savedJobService) List(ctx context.Context, caller models.Principal) ([]models.SavedJobView, error) {
	const op = "SavedJobService.List"

	if err := requireRole(op, caller, models.RoleJobSeeker); err != nil {
		return nil, err
	}
	out, err := s.saved.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list saved jobs", err)
	}
	if out == nil {
		out = []models.SavedJobView{}
	}
	return out, nil
}
