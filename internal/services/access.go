package services

import (
	"context"
	"errors"

	"github.com/yoockh/jobboard/internal/models"
	pgrepo "github.com/yoockh/jobboard/internal/repositories/postgres"
	"github.com/yoockh/jobboard/internal/utils"
)

// requireRole is the role gate. It runs before any storage access.
func requireRole(op string, caller models.Principal, roles ...models.Role) error {
	if caller.UserID == "" {
		return utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	for _, r := range roles {
		if caller.Role == r {
			return nil
		}
	}
	return utils.E(utils.CodeForbidden, op, "forbidden", nil)
}

// ownedCompany resolves the first hop of the employer owner chain.
func ownedCompany(ctx context.Context, companies pgrepo.CompanyRepository, op string, caller models.Principal) (*models.Company, error) {
	c, err := companies.GetByUserID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "company profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load company", err)
	}
	return c, nil
}

// lookupErr maps a single-row lookup failure: misses and foreign rows both read as not found.
func lookupErr(op, what string, err error) error {
	if errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeNotFound, op, what+" not found", err)
	}
	return utils.E(utils.CodeInternal, op, "failed to load "+what, err)
}

// writeErr maps an insert/update failure, treating uniqueness violations as conflicts.
func writeErr(op, conflictMsg string, err error) error {
	switch {
	case errors.Is(err, utils.ErrDuplicate):
		return utils.E(utils.CodeConflict, op, conflictMsg, err)
	case errors.Is(err, utils.ErrNotFound):
		return utils.E(utils.CodeNotFound, op, "not found", err)
	default:
		return utils.E(utils.CodeInternal, op, "failed to write", err)
	}
}
