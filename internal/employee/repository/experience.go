package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/peoplecore/hrms-backend/pkg/database"
	"github.com/peoplecore/hrms-backend/pkg/tenant"
)

// ExperienceRefs is the previous-employer data projected from the first
// experience row of an employee onto the master record.
type ExperienceRefs struct {
	PFNo              *string
	CompanyAddress    *string
	ReferenceDetails1 *string
	ReferenceDetails2 *string
}

// ExperienceRepository handles experience_history persistence
type ExperienceRepository struct {
	db *database.DB
}

// NewExperienceRepository creates a new experience repository
func NewExperienceRepository(db *database.DB) *ExperienceRepository {
	return &ExperienceRepository{db: db}
}

// Insert adds an experience history row
func (r *ExperienceRepository) Insert(ctx context.Context, e *ExperienceHistory) error {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			INSERT INTO experience_history (
				employee_id, company_name, designation, department,
				office_email_id, uan_no, start_date, end_date,
				created_by, updated_by
			) VALUES (
				:employee_id, :company_name, :designation, :department,
				:office_email_id, :uan_no, :start_date, :end_date,
				:created_by, :updated_by
			)`
		_, err := r.db.NamedExecContext(ctx, query, e)
		if err != nil {
			if appErr := database.MapPQError(err); appErr != nil {
				return appErr
			}
		}
		return err
	})
}

// DeleteForEmployees removes all experience rows for the given employees
func (r *ExperienceRepository) DeleteForEmployees(ctx context.Context, employeeIDs []string) error {
	if len(employeeIDs) == 0 {
		return nil
	}

	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query, args, err := sqlx.In(`DELETE FROM experience_history WHERE employee_id IN (?)`, employeeIDs)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
		return err
	})
}

// ListForEmployee returns all experience rows for one employee
func (r *ExperienceRepository) ListForEmployee(ctx context.Context, employeeID string) ([]*ExperienceHistory, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return nil, err
	}

	var rows []*ExperienceHistory
	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			SELECT experience_id, employee_id, company_name, designation,
			       department, office_email_id, uan_no, start_date, end_date,
			       created_at, updated_at, created_by, updated_by
			FROM experience_history
			WHERE employee_id = $1
			ORDER BY experience_id`
		return r.db.SelectContext(ctx, &rows, query, employeeID)
	})
	return rows, err
}

// SyncMasterRefs writes the projected previous-employer fields onto the master
func (r *ExperienceRepository) SyncMasterRefs(ctx context.Context, employeeID string, refs ExperienceRefs) error {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			UPDATE employee_master SET
				pf_no = $2, company_address = $3,
				reference_details_1 = $4, reference_details_2 = $5,
				updated_at = NOW()
			WHERE employee_id = $1`
		_, err := r.db.ExecContext(ctx, query,
			employeeID, refs.PFNo, refs.CompanyAddress,
			refs.ReferenceDetails1, refs.ReferenceDetails2,
		)
		return err
	})
}
