package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/peoplecore/hrms-backend/pkg/database"
	"github.com/peoplecore/hrms-backend/pkg/tenant"
)

// AddressRepository handles address_history persistence
type AddressRepository struct {
	db *database.DB
}

// NewAddressRepository creates a new address repository
func NewAddressRepository(db *database.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

// Insert adds an address history row
func (r *AddressRepository) Insert(ctx context.Context, a *AddressHistory) error {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			INSERT INTO address_history (
				employee_id, address_type, h_no, street, street2, landmark,
				city, state, postal_code, complete_address, created_by, updated_by
			) VALUES (
				:employee_id, :address_type, :h_no, :street, :street2, :landmark,
				:city, :state, :postal_code, :complete_address, :created_by, :updated_by
			)`
		_, err := r.db.NamedExecContext(ctx, query, a)
		if err != nil {
			if appErr := database.MapPQError(err); appErr != nil {
				return appErr
			}
		}
		return err
	})
}

// DeleteForEmployees removes all address rows for the given employees.
// Used by the replace-all-children reconciliation in update mode.
func (r *AddressRepository) DeleteForEmployees(ctx context.Context, employeeIDs []string) error {
	if len(employeeIDs) == 0 {
		return nil
	}

	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query, args, err := sqlx.In(`DELETE FROM address_history WHERE employee_id IN (?)`, employeeIDs)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
		return err
	})
}

// ListForEmployee returns all address rows for one employee
func (r *AddressRepository) ListForEmployee(ctx context.Context, employeeID string) ([]*AddressHistory, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return nil, err
	}

	var rows []*AddressHistory
	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			SELECT address_id, employee_id, address_type, h_no, street, street2,
			       landmark, city, state, postal_code, complete_address,
			       created_at, updated_at, created_by, updated_by
			FROM address_history
			WHERE employee_id = $1
			ORDER BY address_id`
		return r.db.SelectContext(ctx, &rows, query, employeeID)
	})
	return rows, err
}

// SyncQuickReference copies a Permanent address into the master record's
// quick-reference columns so the report endpoint needs no join.
func (r *AddressRepository) SyncQuickReference(ctx context.Context, a *AddressHistory) error {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			UPDATE employee_master SET
				address_type = $2, h_no = $3, street = $4, street2 = $5,
				landmark = $6, city = $7, state = $8, postal_code = $9,
				complete_address = $10, updated_at = NOW()
			WHERE employee_id = $1`
		_, err := r.db.ExecContext(ctx, query,
			a.EmployeeID, a.AddressType, a.HNo, a.Street, a.Street2,
			a.Landmark, a.City, a.State, a.PostalCode, a.CompleteAddress,
		)
		return err
	})
}
