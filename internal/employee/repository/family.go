package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/peoplecore/hrms-backend/pkg/database"
	"github.com/peoplecore/hrms-backend/pkg/tenant"
)

// FamilyRepository handles family_members persistence
type FamilyRepository struct {
	db *database.DB
}

// NewFamilyRepository creates a new family repository
func NewFamilyRepository(db *database.DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

// Insert adds a family member row
func (r *FamilyRepository) Insert(ctx context.Context, f *FamilyMember) error {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			INSERT INTO family_members (
				employee_id, relation_type, name, dob, aadhar_number,
				dependant, created_by, updated_by
			) VALUES (
				:employee_id, :relation_type, :name, :dob, :aadhar_number,
				:dependant, :created_by, :updated_by
			)`
		_, err := r.db.NamedExecContext(ctx, query, f)
		if err != nil {
			if appErr := database.MapPQError(err); appErr != nil {
				return appErr
			}
		}
		return err
	})
}

// DeleteForEmployees removes all family rows for the given employees
func (r *FamilyRepository) DeleteForEmployees(ctx context.Context, employeeIDs []string) error {
	if len(employeeIDs) == 0 {
		return nil
	}

	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query, args, err := sqlx.In(`DELETE FROM family_members WHERE employee_id IN (?)`, employeeIDs)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
		return err
	})
}

// ListForEmployee returns all family rows for one employee
func (r *FamilyRepository) ListForEmployee(ctx context.Context, employeeID string) ([]*FamilyMember, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return nil, err
	}

	var rows []*FamilyMember
	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			SELECT family_id, employee_id, relation_type, name, dob,
			       aadhar_number, dependant, created_at, updated_at,
			       created_by, updated_by
			FROM family_members
			WHERE employee_id = $1
			ORDER BY family_id`
		return r.db.SelectContext(ctx, &rows, query, employeeID)
	})
	return rows, err
}
