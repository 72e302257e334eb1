package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/scholarpath/intake-api/internal/eligibility"
	"github.com/scholarpath/intake-api/internal/models"
	"github.com/scholarpath/intake-api/internal/validation"
	appErrors "github.com/scholarpath/intake-api/pkg/errors"
)

const applicationCodeLength = 10

// Codes are upper-case alphanumeric. Collisions across ten random characters
// are treated as negligible; there is no retry.
const applicationCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type applicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	List(ctx context.Context) ([]models.Application, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, filter models.BulkDeleteFilter) (int64, error)
	Count(ctx context.Context) (int, error)
}

// SubmitApplicationRequest is the intake payload. A client-computed verdict
// may accompany the form but the stored verdict is always recomputed here,
// so the persisted result matches the engine for the submitted form.
type SubmitApplicationRequest struct {
	FormData          models.FormData           `json:"formData"`
	EligibilityResult *models.EligibilityResult `json:"eligibilityResult,omitempty"`
}

// ApplicationService orchestrates validation, verdict computation, code
// assignment and persistence for the submission lifecycle.
type ApplicationService struct {
	repo         applicationRepository
	logger       *zap.Logger
	queryTimeout time.Duration
}

// NewApplicationService creates an instance of ApplicationService.
func NewApplicationService(repo applicationRepository, queryTimeout time.Duration, logger *zap.Logger) *ApplicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &ApplicationService{repo: repo, logger: logger, queryTimeout: queryTimeout}
}

// Submit validates the form and, when clean, persists it with a fresh code,
// a creation timestamp and the computed verdict. Field errors come back as
// data, not as an error: the caller renders them per field.
func (s *ApplicationService) Submit(ctx context.Context, req SubmitApplicationRequest) (*models.Application, []validation.FieldError, error) {
	if fieldErrors := validation.Form(req.FormData); len(fieldErrors) > 0 {
		return nil, fieldErrors, nil
	}

	code, err := generateApplicationCode()
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate application code")
	}

	app := &models.Application{
		ApplicationCode:   code,
		Timestamp:         time.Now().UnixMilli(),
		FormData:          req.FormData,
		EligibilityResult: eligibility.Calculate(req.FormData),
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if err := s.repo.Create(ctx, app); err != nil {
		return nil, nil, storeError(err, "failed to save application")
	}

	s.logger.Info("application submitted",
		zap.String("application_code", app.ApplicationCode),
		zap.Bool("eligible", app.EligibilityResult.Eligible),
	)

	return app, nil, nil
}

// List returns all applications, newest first.
func (s *ApplicationService) List(ctx context.Context) ([]models.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	apps, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError(err, "failed to list applications")
	}
	return apps, nil
}

// Delete removes one application by its storage identifier.
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return storeError(err, "failed to delete application")
	}
	return nil
}

// BulkDelete removes every application matching the filter and returns the
// count removed. Callers are expected to know that an empty filter clears
// the whole table.
func (s *ApplicationService) BulkDelete(ctx context.Context, filter models.BulkDeleteFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	deleted, err := s.repo.BulkDelete(ctx, filter)
	if err != nil {
		return 0, storeError(err, "failed to bulk delete applications")
	}

	s.logger.Info("applications bulk deleted", zap.Int64("deleted_count", deleted))
	return deleted, nil
}

// Count reports the stored application total for health checks.
func (s *ApplicationService) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, storeError(err, "failed to count applications")
	}
	return total, nil
}

func generateApplicationCode() (string, error) {
	buf := make([]byte, applicationCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = applicationCodeCharset[int(b)%len(applicationCodeCharset)]
	}
	return string(buf), nil
}
