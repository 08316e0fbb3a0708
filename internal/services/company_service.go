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

type CompanyInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Industry    string `json:"industry"`
	CompanySize string `json:"companySize"`
	Website     string `json:"website"`
	LogoURL     string `json:"logoUrl"`
	Location    string `json:"location"`
}

type UpdateCompanyInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Industry    *string `json:"industry"`
	CompanySize *string `json:"companySize"`
	Website     *string `json:"website"`
	LogoURL     *string `json:"logoUrl"`
	Location    *string `json:"location"`
}

type CompanyService interface {
	GetMine(ctx context.Context, caller models.Principal) (*models.Company, error)
	Create(ctx context.Context, caller models.Principal, in CompanyInput) (*models.Company, error)
	Update(ctx context.Context, caller models.Principal, in UpdateCompanyInput) (*models.Company, error)
	Delete(ctx context.Context, caller models.Principal) error
}

type companyService struct {
	companies pgrepo.CompanyRepository
}

func NewCompanyService(companies pgrepo.CompanyRepository) CompanyService {
	return &companyService{companies: companies}
}

func (s *companyService) GetMine(ctx context.Context, caller models.Principal) (*models.Company, error) {
	const op = "CompanyService.GetMine"

	if err := requireRole(op, caller, models.RoleEmployer); err != nil {
		return nil, err
	}
	return ownedCompany(ctx, s.companies, op, caller)
}

func (s *companyService) Create(ctx context.Context, caller models.Principal, in CompanyInput) (*models.Company, error) {
	const op = "CompanyService.Create"

	if err := requireRole(op, caller, models.RoleEmployer); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "company name is required", nil)
	}

	if _, err := s.companies.GetByUserID(ctx, caller.UserID); err == nil {
		return nil, utils.E(utils.CodeConflict, op, "company already exists", nil)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to check company", err)
	}

	now := time.Now().UTC()
	c := &models.Company{
		ID:          uuid.NewString(),
		UserID:      caller.UserID,
		Name:        name,
		Description: in.Description,
		Industry:    in.Industry,
		CompanySize: in.CompanySize,
		Website:     in.Website,
		LogoURL:     in.LogoURL,
		Location:    in.Location,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.companies.Create(ctx, c); err != nil {
		return nil, writeErr(op, "company already exists", err)
	}
	return c, nil
}

func (s *companyService) Update(ctx context.Context, caller models.Principal, in UpdateCompanyInput) (*models.Company, error) {
	const op = "CompanyService.Update"

	if err := requireRole(op, caller, models.RoleEmployer); err != nil {
		return nil, err
	}
	c, err := ownedCompany(ctx, s.companies, op, caller)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, utils.E(utils.CodeInvalidArgument, op, "company name cannot be empty", nil)
		}
		c.Name = name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Industry != nil {
		c.Industry = *in.Industry
	}
	if in.CompanySize != nil {
		c.CompanySize = *in.CompanySize
	}
	if in.Website != nil {
		c.Website = *in.Website
	}
	if in.LogoURL != nil {
		c.LogoURL = *in.LogoURL
	}
	if in.Location != nil {
		c.Location = *in.Location
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.companies.Save(ctx, c); err != nil {
		return nil, writeErr(op, "company conflict", err)
	}
	return c, nil
}

// Delete removes the caller's company together with its jobs and their applications and bookmarks.
func (s *companyService) Delete(ctx context.Context, caller models.Principal) error {
	const op = "CompanyService.Delete"

	if err := requireRole(op, caller, models.RoleEmployer); err != nil {
		return err
	}
	c, err := ownedCompany(ctx, s.companies, op, caller)
	if err != nil {
		return err
	}
	if err := s.companies.Delete(ctx, c.ID); err != nil {
		return lookupErr(op, "company", err)
	}
	return nil
}
