package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/scholarpath/intake-api/internal/models"
	"github.com/scholarpath/intake-api/pkg/config"
	appErrors "github.com/scholarpath/intake-api/pkg/errors"
)

type adminRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindByID(ctx context.Context, id string) (*models.Admin, error)
	List(ctx context.Context) ([]models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// CreateAdminRequest is the payload for registering a new admin.
type CreateAdminRequest struct {
	Email    string           `json:"email" validate:"required,email"`
	Password string           `json:"password" validate:"required,min=6"`
	Name     string           `json:"name" validate:"required"`
	Role     models.AdminRole `json:"role" validate:"omitempty,oneof=super admin"`
}

// UpdateAdminRequest replaces an admin's password; that is the only
// supported mutation.
type UpdateAdminRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// VerifyRequest carries login credentials.
type VerifyRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyResponse returns the matched admin and a session token the caller
// presents on subsequent panel requests.
type VerifyResponse struct {
	Admin *models.Admin `json:"admin"`
	Token string        `json:"token"`
}

// AdminService handles credential management and session issuance.
type AdminService struct {
	repo         adminRepository
	validator    *validator.Validate
	logger       *zap.Logger
	session      config.SessionConfig
	bootstrap    config.BootstrapConfig
	queryTimeout time.Duration
}

// NewAdminService creates an instance of AdminService.
func NewAdminService(repo adminRepository, validate *validator.Validate, session config.SessionConfig, bootstrap config.BootstrapConfig, queryTimeout time.Duration, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &AdminService{
		repo:         repo,
		validator:    validate,
		logger:       logger,
		session:      session,
		bootstrap:    bootstrap,
		queryTimeout: queryTimeout,
	}
}

// EnsureBootstrapped seeds the configured super admin when absent. Called
// once at process start; safe to call on every boot.
func (s *AdminService) EnsureBootstrapped(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	email := strings.ToLower(s.bootstrap.SuperAdminEmail)
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return storeError(err, "failed to check super admin presence")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(s.bootstrap.SuperAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash super admin password")
	}

	admin := &models.Admin{
		Email:        email,
		PasswordHash: string(passwordHash),
		Name:         s.bootstrap.SuperAdminName,
		Role:         models.RoleSuper,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return storeError(err, "failed to seed super admin")
	}

	s.logger.Info("super admin seeded", zap.String("email", admin.Email))
	return nil
}

// Verify checks credentials and issues a session token. Unknown email and
// wrong password produce the same failure so accounts cannot be enumerated.
func (s *AdminService) Verify(ctx context.Context, req VerifyRequest) (*VerifyResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid verify payload")
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	admin, err := s.repo.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, storeError(err, "failed to fetch admin")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := s.generateSessionToken(admin)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue session token")
	}

	return &VerifyResponse{Admin: admin, Token: token}, nil
}

// List returns all admins; password hashes are never serialized.
func (s *AdminService) List(ctx context.Context) ([]models.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError(err, "failed to list admins")
	}
	return admins, nil
}

// Create registers a new admin; the email must be unused.
func (s *AdminService) Create(ctx context.Context, req CreateAdminRequest) (*models.Admin, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid create admin payload")
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	email := strings.ToLower(req.Email)
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, storeError(err, "failed to check email uniqueness")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	role := req.Role
	if role == "" {
		role = models.RoleAdmin
	}

	admin := &models.Admin{
		Email:        email,
		PasswordHash: string(passwordHash),
		Name:         req.Name,
		Role:         role,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, storeError(err, "failed to create admin")
	}

	return admin, nil
}

// Update replaces the password of an existing admin.
func (s *AdminService) Update(ctx context.Context, id string, req UpdateAdminRequest) (*models.Admin, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid update admin payload")
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "admin not found")
		}
		return nil, storeError(err, "failed to load admin")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	if err := s.repo.UpdatePassword(ctx, admin.ID, string(passwordHash)); err != nil {
		return nil, storeError(err, "failed to update password")
	}

	admin.PasswordHash = string(passwordHash)
	return admin, nil
}

// Delete removes an admin. Super admins can never be deleted.
func (s *AdminService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "admin not found")
		}
		return storeError(err, "failed to load admin")
	}

	if admin.Role == models.RoleSuper {
		return appErrors.Clone(appErrors.ErrForbidden, "cannot delete super admin")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "admin not found")
		}
		return storeError(err, "failed to delete admin")
	}
	return nil
}

// Count reports the stored admin total for health checks.
func (s *AdminService) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, storeError(err, "failed to count admins")
	}
	return total, nil
}

// ValidateToken parses and validates a session token returning the claims.
func (s *AdminService) ValidateToken(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.session.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session token")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session claims")
	}

	return claims, nil
}

func (s *AdminService) generateSessionToken(admin *models.Admin) (string, error) {
	issuedAt := time.Now().UTC()
	claims := &models.SessionClaims{
		AdminID: admin.ID,
		Email:   admin.Email,
		Role:    admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.session.Issuer,
			Subject:   admin.ID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.session.Expiration)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.session.Secret))
}
