package staff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sukkarlab/sweetshop-backend/pkg/auth"
	"github.com/sukkarlab/sweetshop-backend/pkg/config"
	"github.com/sukkarlab/sweetshop-backend/pkg/db/models"
	"github.com/sukkarlab/sweetshop-backend/pkg/enums"
	pkgerrors "github.com/sukkarlab/sweetshop-backend/pkg/errors"
	"github.com/sukkarlab/sweetshop-backend/pkg/security"
)

type stubStaffRepo struct {
	byEmail   map[string]*models.StaffUser
	lastLogin map[int64]time.Time
	created   []*models.StaffUser
	createErr error
}

func newStubStaffRepo() *stubStaffRepo {
	return &stubStaffRepo{byEmail: map[string]*models.StaffUser{}, lastLogin: map[int64]time.Time{}}
}

func (s *stubStaffRepo) FindByEmail(_ context.Context, email string) (*models.StaffUser, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubStaffRepo) FindByID(context.Context, int64) (*models.StaffUser, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubStaffRepo) List(context.Context) ([]models.StaffUser, error) { return nil, nil }

func (s *stubStaffRepo) Create(_ context.Context, u *models.StaffUser) error {
	if s.createErr != nil {
		return s.createErr
	}
	u.ID = int64(len(s.byEmail) + 1)
	s.byEmail[u.Email] = u
	s.created = append(s.created, u)
	return nil
}

func (s *stubStaffRepo) Update(context.Context, *models.StaffUser) error { return nil }

func (s *stubStaffRepo) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	s.lastLogin[id] = at
	return nil
}

func testConfigs() (config.JWTConfig, config.PasswordConfig) {
	jwtCfg := config.JWTConfig{Secret: "test-secret", Issuer: "sweetshop", ExpirationMinutes: 60}
	passwordCfg := config.PasswordConfig{
		ArgonMemoryKB: 8192, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32,
	}
	return jwtCfg, passwordCfg
}

func seedUser(t *testing.T, repo *stubStaffRepo, passwordCfg config.PasswordConfig, active bool) {
	t.Helper()
	hash, err := security.HashPassword("correct-horse", passwordCfg)
	require.NoError(t, err)
	repo.byEmail["admin@sweetshop.sy"] = &models.StaffUser{
		ID: 1, Email: "admin@sweetshop.sy", PasswordHash: hash,
		Name: "مدير", Role: enums.StaffRoleAdmin, IsActive: active,
	}
}

func TestLoginIssuesParsableToken(t *testing.T) {
	jwtCfg, passwordCfg := testConfigs()
	repo := newStubStaffRepo()
	seedUser(t, repo, passwordCfg, true)
	svc, err := NewService(repo, jwtCfg, passwordCfg)
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), LoginInput{
		Email: "admin@sweetshop.sy", Password: "correct-horse",
	})
	require.NoError(t, err)

	claims, err := auth.ParseAccessToken(jwtCfg, result.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.StaffID)
	assert.Equal(t, enums.StaffRoleAdmin, claims.Role)
	assert.Equal(t, "admin@sweetshop.sy", result.Staff.Email)
	assert.False(t, repo.lastLogin[1].IsZero())
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	jwtCfg, passwordCfg := testConfigs()
	repo := newStubStaffRepo()
	seedUser(t, repo, passwordCfg, true)
	svc, err := NewService(repo, jwtCfg, passwordCfg)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{
		Email: "admin@sweetshop.sy", Password: "wrong",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
	assert.Equal(t, "Invalid email or password", typed.Message())
}

func TestLoginSameMessageForUnknownAndInactive(t *testing.T) {
	jwtCfg, passwordCfg := testConfigs()
	repo := newStubStaffRepo()
	seedUser(t, repo, passwordCfg, false)
	svc, err := NewService(repo, jwtCfg, passwordCfg)
	require.NoError(t, err)

	_, unknownErr := svc.Login(context.Background(), LoginInput{Email: "ghost@sweetshop.sy", Password: "whatever"})
	_, inactiveErr := svc.Login(context.Background(), LoginInput{Email: "admin@sweetshop.sy", Password: "correct-horse"})

	require.Error(t, unknownErr)
	require.Error(t, inactiveErr)
	assert.Equal(t, unknownErr.Error(), inactiveErr.Error())
}

func TestCreateStaffHashesPassword(t *testing.T) {
	jwtCfg, passwordCfg := testConfigs()
	repo := newStubStaffRepo()
	svc, err := NewService(repo, jwtCfg, passwordCfg)
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), CreateStaffInput{
		Email: "Manager@Sweetshop.sy", Password: "s3cret-pass", Name: "أحمد", Role: "manager",
	})
	require.NoError(t, err)
	assert.Equal(t, "manager@sweetshop.sy", created.Email)

	require.Len(t, repo.created, 1)
	stored := repo.created[0]
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	ok, err := security.VerifyPassword("s3cret-pass", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateStaffDuplicateEmailConflicts(t *testing.T) {
	jwtCfg, passwordCfg := testConfigs()
	repo := newStubStaffRepo()
	repo.createErr = errors.New(`ERROR: duplicate key value violates unique constraint "staff_users_email_key" (SQLSTATE 23505)`)
	svc, err := NewService(repo, jwtCfg, passwordCfg)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateStaffInput{
		Email: "admin@sweetshop.sy", Password: "s3cret-pass", Name: "مدير", Role: "admin",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	assert.Equal(t, "An account with this email already exists", typed.Message())
}

func TestCreateStaffRejectsUnknownRole(t *testing.T) {
	jwtCfg, passwordCfg := testConfigs()
	svc, err := NewService(newStubStaffRepo(), jwtCfg, passwordCfg)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateStaffInput{
		Email: "x@sweetshop.sy", Password: "s3cret-pass", Name: "x", Role: "owner",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
