package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/scholarpath/intake-api/internal/models"
	"github.com/scholarpath/intake-api/internal/service"
	"github.com/scholarpath/intake-api/pkg/config"
)

type adminRepoMock struct {
	admin *models.Admin
}

func (m *adminRepoMock) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if m.admin != nil && m.admin.Email == email {
		return m.admin, nil
	}
	return nil, sql.ErrNoRows
}

func (m *adminRepoMock) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	if m.admin != nil && m.admin.ID == id {
		return m.admin, nil
	}
	return nil, sql.ErrNoRows
}

func (m *adminRepoMock) List(ctx context.Context) ([]models.Admin, error) { return nil, nil }

func (m *adminRepoMock) Create(ctx context.Context, admin *models.Admin) error { return nil }

func (m *adminRepoMock) UpdatePassword(ctx context.Context, id, hash string) error { return nil }

func (m *adminRepoMock) Delete(ctx context.Context, id string) error { return nil }

func (m *adminRepoMock) Count(ctx context.Context) (int, error) { return 0, nil }

func sessionFixture(t *testing.T) (*service.AdminService, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("root-password"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &adminRepoMock{admin: &models.Admin{
		ID:           "a-1",
		Email:        "root@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleSuper,
	}}
	svc := service.NewAdminService(repo, nil,
		config.SessionConfig{Secret: "test_secret", Expiration: time.Hour, Issuer: "intake-api"},
		config.BootstrapConfig{}, time.Second, nil)

	result, err := svc.Verify(context.Background(), service.VerifyRequest{Email: "root@example.com", Password: "root-password"})
	require.NoError(t, err)
	return svc, result.Token
}

func protectedRouter(svc *service.AdminService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Session(svc), func(c *gin.Context) {
		claims := c.MustGet(ContextAdminKey).(*models.SessionClaims)
		c.JSON(http.StatusOK, gin.H{"adminId": claims.AdminID})
	})
	return r
}

func TestSessionMissingHeader(t *testing.T) {
	svc, _ := sessionFixture(t)
	r := protectedRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionMalformedHeader(t *testing.T) {
	svc, token := sessionFixture(t)
	r := protectedRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionInvalidToken(t *testing.T) {
	svc, _ := sessionFixture(t)
	r := protectedRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionValidTokenPassesClaims(t *testing.T) {
	svc, token := sessionFixture(t)
	r := protectedRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"adminId":"a-1"`)
}
