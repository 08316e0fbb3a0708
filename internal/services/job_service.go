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

type JobInput struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description" binding:"required"`
	Requirements     string `json:"requirements"`
	Responsibilities string `json:"responsibilities"`
	SalaryMin        *int   `json:"salaryMin"`
	SalaryMax        *int   `json:"salaryMax"`
	SalaryCurrency   string `json:"salaryCurrency"`
	Location         string `json:"location"`
	EmploymentType   string `json:"employmentType"`
	ExperienceLevel  string `json:"experienceLevel"`
	IsRemote         bool   `json:"isRemote"`
}

type UpdateJobInput struct {
	Title            *string           `json:"title"`
	Description      *string           `json:"description"`
	Requirements     *string           `json:"requirements"`
	Responsibilities *string           `json:"responsibilities"`
	SalaryMin        *int              `json:"salaryMin"`
	SalaryMax        *int              `json:"salaryMax"`
	SalaryCurrency   *string           `json:"salaryCurrency"`
	Location         *string           `json:"location"`
	EmploymentType   *string           `json:"employmentType"`
	ExperienceLevel  *string           `json:"experienceLevel"`
	IsRemote         *bool             `json:"isRemote"`
	Status           *models.JobStatus `json:"status"`
}

type JobService interface {
	Search(ctx context.Context, f pgrepo.JobFilter) ([]models.JobListing, error)
	Get(ctx context.Context, id string) (*models.JobListing, error)
	Create(ctx context.Context, caller models.Principal, in JobInput) (*models.Job, error)
	Update(ctx context.Context, caller models.Principal, id string, in UpdateJobInput) (*models.Job, error)
	Delete(ctx context.Context, caller models.Principal, id string) error
	Mine(ctx context.Context, caller models.Principal) ([]models.Job, error)
}

type jobService struct {
	jobs      pgrepo.JobRepository
	companies pgrepo.CompanyRepository
}

func NewJobService(jobs pgrepo.JobRepository, companies pgrepo.CompanyRepository) JobService {
	return &jobService{jobs: jobs, companies: companies}
}

func (s *jobService) Search(ctx context.Context, f pgrepo.JobFilter) ([]models.JobListing, error) {
	const op = "JobService.Search"

	if f.SalaryMin != nil && f.SalaryMax != nil && *f.SalaryMin > *f.SalaryMax {
		return nil, utils.E(utils.CodeInvalidArgument, op, "salaryMin cannot exceed salaryMax", nil)
	}
	f.Search = strings.TrimSpace(f.Search)
	f.Location = strings.TrimSpace(f.Location)

	out, err := s.jobs.SearchActive(ctx, f)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to search jobs", err)
	}
	if out == nil {
		out = []models.JobListing{}
	}
	return out, nil
}

func (s *jobService) Get(ctx context.Context, id string) (*models.JobListing, error) {
	const op = "JobService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job id is required", nil)
	}
	j, err := s.jobs.GetListing(ctx, id)
	if err != nil {
		return nil, lookupErr(op, "job", err)
	}
	return j, nil
}

func (s *jobService) Create(ctx context.Context, caller models.Principal, in JobInput) (*models.Job, error) {
	const op = "JobService.Create"

	if err := requireRole(op, caller, models.RoleEmployer); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	desc := strings.TrimSpace(in.Description)
	if title == "" || desc == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "title and description are required", nil)
	}
	if err := validateSalary(op, in.SalaryMin, in.SalaryMax); err != nil {
		return nil, err
	}

	c, err := s.companies.GetByUserID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "create a company profile first", nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load company", err)
	}

	currency := strings.TrimSpace(in.SalaryCurrency)
	if currency == "" {
		currency = "USD"
	}

	now := time.Now().UTC()
	j := &models.Job{
		ID:               uuid.NewString(),
		CompanyID:        c.ID,
		Title:            title,
		Description:      desc,
		Requirements:     in.Requirements,
		Responsibilities: in.Responsibilities,
		SalaryMin:        in.SalaryMin,
		SalaryMax:        in.SalaryMax,
		SalaryCurrency:   currency,
		Location:         in.Location,
		EmploymentType:   in.EmploymentType,
		ExperienceLevel:  in.ExperienceLevel,
		IsRemote:         in.IsRemote,
		Status:           models.JobActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, writeErr(op, "job already exists", err)
	}
	return j, nil
}

func (s *jobService) Update(ctx context.Context, caller models.Principal, id string, in UpdateJobInput) (*models.Job, error) {
	const op = "JobService.Update"

	if err := requireRole(op, caller, models.RoleEmployer); err != nil {
		return nil, err
	}
	if in.Status != nil && !in.Status.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "status must be one of active, closed, draft", nil)
	}

	c, err := ownedCompany(ctx, s.companies, op, caller)
	if err != nil {
		return nil, err
	}
	j, err := s.jobs.GetOwned(ctx, id, c.ID)
	if err != nil {
		return nil, lookupErr(op, "job", err)
	}

	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, utils.E(utils.CodeInvalidArgument, op, "title cannot be empty", nil)
		}
		j.Title = t
	}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			return nil, utils.E(utils.CodeInvalidArgument, op, "description cannot be empty", nil)
		}
		j.Description = d
	}
	if in.Requirements != nil {
		j.Requirements = *in.Requirements
	}
	if in.Responsibilities != nil {
		j.Responsibilities = *in.Responsibilities
	}
	if in.SalaryMin != nil {
		j.SalaryMin = in.SalaryMin
	}
	if in.SalaryMax != nil {
		j.SalaryMax = in.SalaryMax
	}
	if in.SalaryCurrency != nil {
		j.SalaryCurrency = *in.SalaryCurrency
	}
	if in.Location != nil {
		j.Location = *in.Location
	}
	if in.EmploymentType != nil {
		j.EmploymentType = *in.EmploymentType
	}
	if in.ExperienceLevel != nil {
		j.ExperienceLevel = *in.ExperienceLevel
	}
	if in.IsRemote != nil {
		j.IsRemote = *in.IsRemote
	}
	if in.Status != nil {
		j.Status = *in.Status
	}
	if err := validateSalary(op, j.SalaryMin, j.SalaryMax); err != nil {
		return nil, err
	}
	j.UpdatedAt = time.Now().UTC()

	if err := s.jobs.Save(ctx, j); err != nil {
		return nil, writeErr(op, "job conflict", err)
	}
	return j, nil
}

func (s *jobService) Delete(ctx context.Context, caller models.Principal, id string) error {
	const op = "JobService.Delete"

	if err := requireRole(op, caller, models.RoleEmployer); err != nil {
		return err
	}
	c, err := ownedCompany(ctx, s.companies, op, caller)
	if err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, id, c.ID); err != nil {
		return lookupErr(op, "job", err)
	}
	return nil
}

// Mine lists every job of the caller's company regardless of status.
func (s *jobService) Mine(ctx context.Context, caller models.Principal) ([]models.Job, error) {
	const op = "JobService.Mine"

	if err := requireRole(op, caller, models.RoleEmployer); err != nil {
		return nil, err
	}
	c, err := s.companies.GetByUserID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return []models.Job{}, nil
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load company", err)
	}
	out, err := s.jobs.ListByCompany(ctx, c.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	if out == nil {
		out = []models.Job{}
	}
	return out, nil
}

func validateSalary(op string, lo, hi *int) error {
	if (lo != nil && *lo < 0) || (hi != nil && *hi < 0) {
		return utils.E(utils.CodeInvalidArgument, op, "salary cannot be negative", nil)
	}
	if lo != nil && hi != nil && *lo > *hi {
		return utils.E(utils.CodeInvalidArgument, op, "salaryMin cannot exceed salaryMax", nil)
	}
	return nil
}
