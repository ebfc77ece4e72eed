package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/peoplecore/hrms-backend/pkg/database"
	"github.com/peoplecore/hrms-backend/pkg/tenant"
)

// EducationRepository handles education_history persistence
type EducationRepository struct {
	db *database.DB
}

// NewEducationRepository creates a new education repository
func NewEducationRepository(db *database.DB) *EducationRepository {
	return &EducationRepository{db: db}
}

// Insert adds an education history row
func (r *EducationRepository) Insert(ctx context.Context, e *EducationHistory) error {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			INSERT INTO education_history (
				employee_id, type_of_degree, course_name, school_college_name,
				affiliated_university, completed_in_month_year, percentage_cgpa,
				created_by, updated_by
			) VALUES (
				:employee_id, :type_of_degree, :course_name, :school_college_name,
				:affiliated_university, :completed_in_month_year, :percentage_cgpa,
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

// DeleteForEmployees removes all education rows for the given employees
func (r *EducationRepository) DeleteForEmployees(ctx context.Context, employeeIDs []string) error {
	if len(employeeIDs) == 0 {
		return nil
	}

	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query, args, err := sqlx.In(`DELETE FROM education_history WHERE employee_id IN (?)`, employeeIDs)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
		return err
	})
}

// ListForEmployee returns all education rows for one employee
func (r *EducationRepository) ListForEmployee(ctx context.Context, employeeID string) ([]*EducationHistory, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return nil, err
	}

	var rows []*EducationHistory
	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			SELECT education_id, employee_id, type_of_degree, course_name,
			       school_college_name, affiliated_university,
			       completed_in_month_year, percentage_cgpa,
			       created_at, updated_at, created_by, updated_by
			FROM education_history
			WHERE employee_id = $1
			ORDER BY education_id`
		return r.db.SelectContext(ctx, &rows, query, employeeID)
	})
	return rows, err
}
