package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/jobboard/internal/models"
	pgrepo "github.com/yoockh/jobboard/internal/repositories/postgres"
	"github.com/yoockh/jobboard/internal/utils"
)

type TokenSigner interface {
	Issue(u *models.User) (string, error)
}

type SignupInput struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required"`
	Name     string      `json:"name" binding:"required"`
	Role     models.Role `json:"role" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type UserService interface {
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Me(ctx context.Context, caller models.Principal) (*models.User, error)
}

type userService struct {
	users  pgrepo.UserRepository
	tokens TokenSigner
}

func NewUserService(users pgrepo.UserRepository, tokens TokenSigner) UserService {
	return &userService{users: users, tokens: tokens}
}

var (
	dummyOnce sync.Once
	dummyHash string
)

// dummyPasswordHash is compared against when the email is unknown, so both
// login failures cost the same bcrypt work.
func dummyPasswordHash() string {
	dummyOnce.Do(func() {
		dummyHash, _ = utils.HashPassword("not-a-real-password")
	})
	return dummyHash
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (s *userService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	const op = "UserService.Signup"

	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || in.Password == "" || name == "" || in.Role == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "all fields are required", nil)
	}
	if !in.Role.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid role, must be job_seeker or employer", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, utils.E(utils.CodeConflict, op, "user with this email already exists", nil)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to check email", err)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, writeErr(op, "user with this email already exists", err)
	}

	return s.issue(op, u)
}

func (s *userService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	const op = "UserService.Login"

	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	invalid := utils.E(utils.CodeUnauthorized, op, "invalid email or password", nil)

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			_ = utils.CheckPassword(dummyPasswordHash(), in.Password)
			return nil, invalid
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if err := utils.CheckPassword(u.PasswordHash, in.Password); err != nil {
		return nil, invalid
	}

	return s.issue(op, u)
}

func (s *userService) Me(ctx context.Context, caller models.Principal) (*models.User, error) {
	const op = "UserService.Me"

	if caller.UserID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "not authenticated", nil)
	}
	u, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, lookupErr(op, "user", err)
	}
	return u, nil
}

func (s *userService) issue(op string, u *models.User) (*AuthResult, error) {
	tok, err := s.tokens.Issue(u)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return &AuthResult{Token: tok, User: u}, nil
}
