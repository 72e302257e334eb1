package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/scholarpath/intake-api/internal/models"
	"github.com/scholarpath/intake-api/pkg/config"
	appErrors "github.com/scholarpath/intake-api/pkg/errors"
)

type adminRepoStub struct {
	byEmail map[string]*models.Admin
	byID    map[string]*models.Admin
	creates int
	err     error
}

func newAdminRepoStub() *adminRepoStub {
	return &adminRepoStub{
		byEmail: map[string]*models.Admin{},
		byID:    map[string]*models.Admin{},
	}
}

func (s *adminRepoStub) add(admin *models.Admin) {
	s.byEmail[admin.Email] = admin
	s.byID[admin.ID] = admin
}

func (s *adminRepoStub) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	if admin, ok := s.byEmail[email]; ok {
		return admin, nil
	}
	return nil, sql.ErrNoRows
}

func (s *adminRepoStub) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	if admin, ok := s.byID[id]; ok {
		return admin, nil
	}
	return nil, sql.ErrNoRows
}

func (s *adminRepoStub) List(ctx context.Context) ([]models.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	admins := make([]models.Admin, 0, len(s.byID))
	for _, admin := range s.byID {
		admins = append(admins, *admin)
	}
	return admins, nil
}

func (s *adminRepoStub) Create(ctx context.Context, admin *models.Admin) error {
	if s.err != nil {
		return s.err
	}
	if admin.ID == "" {
		admin.ID = "generated-id"
	}
	s.creates++
	s.add(admin)
	return nil
}

func (s *adminRepoStub) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	admin, ok := s.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	admin.PasswordHash = passwordHash
	return nil
}

func (s *adminRepoStub) Delete(ctx context.Context, id string) error {
	if _, ok := s.byID[id]; !ok {
		return sql.ErrNoRows
	}
	admin := s.byID[id]
	delete(s.byID, id)
	delete(s.byEmail, admin.Email)
	return nil
}

func (s *adminRepoStub) Count(ctx context.Context) (int, error) {
	return len(s.byID), nil
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{Secret: "test_secret", Expiration: time.Hour, Issuer: "intake-api"}
}

func testBootstrapConfig() config.BootstrapConfig {
	return config.BootstrapConfig{
		SuperAdminEmail:    "Root@Example.com",
		SuperAdminPassword: "root-password",
		SuperAdminName:     "Root",
	}
}

func newAdminService(repo *adminRepoStub) *AdminService {
	return NewAdminService(repo, nil, testSessionConfig(), testBootstrapConfig(), time.Second, nil)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestEnsureBootstrappedSeedsSuperAdmin(t *testing.T) {
	repo := newAdminRepoStub()
	svc := newAdminService(repo)

	require.NoError(t, svc.EnsureBootstrapped(context.Background()))
	require.Equal(t, 1, repo.creates)

	seeded, ok := repo.byEmail["root@example.com"]
	require.True(t, ok, "seed email must be lowercased")
	assert.Equal(t, models.RoleSuper, seeded.Role)
	assert.NotEqual(t, "root-password", seeded.PasswordHash)

	// A second boot finds the row and seeds nothing.
	require.NoError(t, svc.EnsureBootstrapped(context.Background()))
	assert.Equal(t, 1, repo.creates)
}

func TestVerifyIssuesValidatableToken(t *testing.T) {
	repo := newAdminRepoStub()
	repo.add(&models.Admin{
		ID:           "a-1",
		Email:        "root@example.com",
		PasswordHash: mustHash(t, "root-password"),
		Name:         "Root",
		Role:         models.RoleSuper,
	})
	svc := newAdminService(repo)

	result, err := svc.Verify(context.Background(), VerifyRequest{Email: "Root@Example.com", Password: "root-password"})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "a-1", result.Admin.ID)
	require.NotEmpty(t, result.Token)

	claims, err := svc.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "a-1", claims.AdminID)
	assert.Equal(t, models.RoleSuper, claims.Role)
	assert.Equal(t, "intake-api", claims.Issuer)
}

func TestVerifyFailuresAreIndistinguishable(t *testing.T) {
	repo := newAdminRepoStub()
	repo.add(&models.Admin{
		ID:           "a-1",
		Email:        "root@example.com",
		PasswordHash: mustHash(t, "root-password"),
		Role:         models.RoleSuper,
	})
	svc := newAdminService(repo)

	_, unknownErr := svc.Verify(context.Background(), VerifyRequest{Email: "ghost@example.com", Password: "whatever"})
	_, wrongErr := svc.Verify(context.Background(), VerifyRequest{Email: "root@example.com", Password: "wrong"})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, appErrors.FromError(unknownErr).Code, appErrors.FromError(wrongErr).Code)
	assert.Equal(t, appErrors.FromError(unknownErr).Message, appErrors.FromError(wrongErr).Message)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	repo := newAdminRepoStub()
	repo.add(&models.Admin{
		ID:           "a-1",
		Email:        "root@example.com",
		PasswordHash: mustHash(t, "root-password"),
		Role:         models.RoleSuper,
	})
	issuer := newAdminService(repo)

	result, err := issuer.Verify(context.Background(), VerifyRequest{Email: "root@example.com", Password: "root-password"})
	require.NoError(t, err)

	otherSession := testSessionConfig()
	otherSession.Secret = "different_secret"
	verifier := NewAdminService(repo, nil, otherSession, testBootstrapConfig(), time.Second, nil)

	_, err = verifier.ValidateToken(result.Token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestCreateAdminDefaultsRole(t *testing.T) {
	repo := newAdminRepoStub()
	svc := newAdminService(repo)

	admin, err := svc.Create(context.Background(), CreateAdminRequest{
		Email:    "New@Example.com",
		Password: "secret123",
		Name:     "New Admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", admin.Email)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("secret123")))
}

func TestCreateAdminDuplicateEmail(t *testing.T) {
	repo := newAdminRepoStub()
	repo.add(&models.Admin{ID: "a-1", Email: "taken@example.com", Role: models.RoleAdmin})
	svc := newAdminService(repo)

	_, err := svc.Create(context.Background(), CreateAdminRequest{
		Email:    "Taken@Example.com",
		Password: "secret123",
		Name:     "Dup",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestCreateAdminRejectsShortPassword(t *testing.T) {
	svc := newAdminService(newAdminRepoStub())

	_, err := svc.Create(context.Background(), CreateAdminRequest{
		Email:    "short@example.com",
		Password: "abc",
		Name:     "Short",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUpdateAdminReplacesPassword(t *testing.T) {
	repo := newAdminRepoStub()
	repo.add(&models.Admin{
		ID:           "a-2",
		Email:        "second@example.com",
		PasswordHash: mustHash(t, "oldpass"),
		Role:         models.RoleAdmin,
	})
	svc := newAdminService(repo)

	admin, err := svc.Update(context.Background(), "a-2", UpdateAdminRequest{Password: "newpass123"})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("newpass123")))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.byID["a-2"].PasswordHash), []byte("newpass123")))
}

func TestDeleteAdminProtectsSuperRole(t *testing.T) {
	repo := newAdminRepoStub()
	repo.add(&models.Admin{ID: "a-1", Email: "root@example.com", Role: models.RoleSuper})
	repo.add(&models.Admin{ID: "a-2", Email: "second@example.com", Role: models.RoleAdmin})
	svc := newAdminService(repo)

	err := svc.Delete(context.Background(), "a-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Contains(t, repo.byID, "a-1")

	require.NoError(t, svc.Delete(context.Background(), "a-2"))
	assert.NotContains(t, repo.byID, "a-2")
}

func TestDeleteAdminMissing(t *testing.T) {
	svc := newAdminService(newAdminRepoStub())

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
