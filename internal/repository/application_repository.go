package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/scholarpath/intake-api/internal/models"
)

// ApplicationRepository provides database access for submitted applications.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository creates a new instance of ApplicationRepository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts a submitted application. The code and timestamp are assigned
// by the caller before the write and never change afterwards.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO applications (id, application_code, timestamp, form_data, eligibility_result, created_at)
VALUES (:id, :application_code, :timestamp, :form_data, :eligibility_result, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, app); err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// List returns every application, newest submission first.
func (r *ApplicationRepository) List(ctx context.Context) ([]models.Application, error) {
	const query = `SELECT id, application_code, timestamp, form_data, eligibility_result, created_at
FROM applications ORDER BY timestamp DESC`
	var apps []models.Application
	if err := r.db.SelectContext(ctx, &apps, query); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// Delete removes one application by id. Returns sql.ErrNoRows when absent.
func (r *ApplicationRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM applications WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete application rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// BulkDelete removes every application matching the filter and reports how
// many rows went away. An empty filter clears the table.
func (r *ApplicationRepository) BulkDelete(ctx context.Context, filter models.BulkDeleteFilter) (int64, error) {
	query := `DELETE FROM applications WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("timestamp >= $%d", len(args)+1))
		args = append(args, filter.StartDate.UnixMilli())
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("timestamp <= $%d", len(args)+1))
		args = append(args, filter.EndDate.UnixMilli())
	}
	if filter.Eligible != nil {
		conditions = append(conditions, fmt.Sprintf("(eligibility_result->>'eligible')::boolean = $%d", len(args)+1))
		args = append(args, *filter.Eligible)
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk delete applications: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bulk delete rows affected: %w", err)
	}
	return affected, nil
}

// Count returns the number of stored applications.
func (r *ApplicationRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM applications`
	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return total, nil
}
