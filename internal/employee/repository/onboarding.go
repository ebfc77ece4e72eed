package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/peoplecore/hrms-backend/pkg/database"
	"github.com/peoplecore/hrms-backend/pkg/tenant"
)

// OnboardingRepository handles onboarding_history persistence
type OnboardingRepository struct {
	db *database.DB
}

// NewOnboardingRepository creates a new onboarding repository
func NewOnboardingRepository(db *database.DB) *OnboardingRepository {
	return &OnboardingRepository{db: db}
}

// Insert adds an onboarding history row
func (r *OnboardingRepository) Insert(ctx context.Context, o *OnboardingHistory) error {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			INSERT INTO onboarding_history (
				employee_id, client_id, effective_start_date, effective_end_date,
				onboarding_status, duration_calculated, spoc,
				onboarding_department, assigned_manager,
				project_name, role_in_project, billing_rate, currency,
				work_location, reporting_manager,
				is_current_assignment, exit_date, exit_reason,
				created_by, updated_by
			) VALUES (
				:employee_id, :client_id, :effective_start_date, :effective_end_date,
				:onboarding_status, :duration_calculated, :spoc,
				:onboarding_department, :assigned_manager,
				:project_name, :role_in_project, :billing_rate, :currency,
				:work_location, :reporting_manager,
				:is_current_assignment, :exit_date, :exit_reason,
				:created_by, :updated_by
			)`
		_, err := r.db.NamedExecContext(ctx, query, o)
		if err != nil {
			if appErr := database.MapPQError(err); appErr != nil {
				return appErr
			}
		}
		return err
	})
}

// DeleteForEmployees removes all onboarding rows for the given employees
func (r *OnboardingRepository) DeleteForEmployees(ctx context.Context, employeeIDs []string) error {
	if len(employeeIDs) == 0 {
		return nil
	}

	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query, args, err := sqlx.In(`DELETE FROM onboarding_history WHERE employee_id IN (?)`, employeeIDs)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
		return err
	})
}

// ListForEmployee returns all onboarding rows for one employee
func (r *OnboardingRepository) ListForEmployee(ctx context.Context, employeeID string) ([]*OnboardingHistory, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return nil, err
	}

	var rows []*OnboardingHistory
	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			SELECT onboarding_id, employee_id, client_id, effective_start_date,
			       effective_end_date, onboarding_status, duration_calculated,
			       spoc, onboarding_department, assigned_manager,
			       project_name, role_in_project, billing_rate, currency,
			       work_location, reporting_manager,
			       is_current_assignment, exit_date, exit_reason,
			       created_at, updated_at, created_by, updated_by
			FROM onboarding_history
			WHERE employee_id = $1
			ORDER BY onboarding_id`
		return r.db.SelectContext(ctx, &rows, query, employeeID)
	})
	return rows, err
}
