package staff

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sukkarlab/sweetshop-backend/pkg/auth"
	"github.com/sukkarlab/sweetshop-backend/pkg/config"
	"github.com/sukkarlab/sweetshop-backend/pkg/db"
	"github.com/sukkarlab/sweetshop-backend/pkg/db/models"
	"github.com/sukkarlab/sweetshop-backend/pkg/enums"
	pkgerrors "github.com/sukkarlab/sweetshop-backend/pkg/errors"
	"github.com/sukkarlab/sweetshop-backend/pkg/security"
)

// Service authenticates staff and manages back-office accounts.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Create(ctx context.Context, input CreateStaffInput) (*StaffView, error)
	List(ctx context.Context) ([]StaffView, error)
	SetActive(ctx context.Context, id int64, active bool) (*StaffView, error)
}

type service struct {
	repo     Repository
	jwt      config.JWTConfig
	password config.PasswordConfig
	now      func() time.Time
}

// NewService builds the staff service.
func NewService(repo Repository, jwtCfg config.JWTConfig, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("staff repository required")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	return &service{repo: repo, jwt: jwtCfg, password: passwordCfg, now: time.Now}, nil
}

// Login verifies credentials and mints an access token. The same message is
// returned for unknown email, wrong password and deactivated account so the
// endpoint cannot be used to probe which emails exist.
func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	badCredentials := pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid email or password")

	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if db.IsNotFound(err) {
			return nil, badCredentials
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading staff user")
	}
	if !user.IsActive {
		return nil, badCredentials
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return nil, badCredentials
	}

	now := s.now()
	token, err := auth.MintAccessToken(s.jwt, now, auth.AccessTokenPayload{
		StaffID: user.ID,
		Email:   user.Email,
		Role:    user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting token")
	}

	if err := s.repo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recording login")
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(time.Duration(s.jwt.ExpirationMinutes) * time.Minute),
		Staff:     view(user),
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateStaffInput) (*StaffView, error) {
	role, err := enums.ParseStaffRole(input.Role)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Role must be admin or manager")
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user := &models.StaffUser{
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "staff_users_email_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "An account with this email already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating staff user")
	}
	result := view(user)
	return &result, nil
}

func (s *service) List(ctx context.Context) ([]StaffView, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing staff")
	}
	out := make([]StaffView, 0, len(users))
	for i := range users {
		out = append(out, view(&users[i]))
	}
	return out, nil
}

func (s *service) SetActive(ctx context.Context, id int64, active bool) (*StaffView, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Staff user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading staff user")
	}
	user.IsActive = active
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating staff user")
	}
	result := view(user)
	return &result, nil
}

func view(user *models.StaffUser) StaffView {
	return StaffView{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role.String(),
		IsActive: user.IsActive,
	}
}
