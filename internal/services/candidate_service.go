package services

import (
	"context"
	"strings"

	"github.com/yoockh/jobboard/internal/models"
	pgrepo "github.com/yoockh/jobboard/internal/repositories/postgres"
	"github.com/yoockh/jobboard/internal/utils"
)

type CandidateService interface {
	Search(ctx context.Context, caller models.Principal, f pgrepo.CandidateFilter) ([]pgrepo.Candidate, error)
	Get(ctx context.Context, caller models.Principal, userID string) (*models.PublicProfile, error)
}

type candidateService struct {
	candidates pgrepo.CandidateRepository
	profiles   pgrepo.ProfileRepository
}

func NewCandidateService(candidates pgrepo.CandidateRepository, profiles pgrepo.ProfileRepository) CandidateService {
	return &candidateService{candidates: candidates, profiles: profiles}
}

func (s *candidateService) Search(ctx context.Context, caller models.Principal, f pgrepo.CandidateFilter) ([]pgrepo.Candidate, error) {
	const op = "CandidateService.Search"

	if err := requireRole(op, caller, models.RoleEmployer); err != nil {
		return nil, err
	}
	f.Search = strings.TrimSpace(f.Search)
	f.Location = strings.TrimSpace(f.Location)

	out, err := s.candidates.Search(ctx, f)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to search candidates", err)
	}
	if out == nil {
		out = []pgrepo.Candidate{}
	}
	return out, nil
}

// Get returns the candidate's public profile plus their email.
func (s *candidateService) Get(ctx context.Context, caller models.Principal, userID string) (*models.PublicProfile, error) {
	const op = "CandidateService.Get"

	if err := requireRole(op, caller, models.RoleEmployer); err != nil {
		return nil, err
	}
	p, err := s.profiles.GetPublic(ctx, userID, true)
	if err != nil {
		return nil, lookupErr(op, "candidate", err)
	}
	return p, nil
}
