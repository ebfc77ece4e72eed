package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/peoplecore/hrms-backend/pkg/tenant"
)

// EmergencyContact is the master quick-reference emergency contact.
// There is no child table for emergency contacts; the first row of the
// section lands directly on the master record.
type EmergencyContact struct {
	Name     *string
	Relation *string
	Number   *string
}

// Nominee is the master quick-reference nominee block
type Nominee struct {
	Name       *string
	Address    *string
	Relation   *string
	Age        *int
	Proportion decimal.NullDecimal
}

// SyncEmergencyContact writes the emergency contact quick-reference
// fields onto one master record.
func (r *EmployeeRepository) SyncEmergencyContact(ctx context.Context, employeeID string, c EmergencyContact) error {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			UPDATE employee_master SET
				emergency_contact_name = $2,
				emergency_contact_relation = $3,
				emergency_contact_no = $4,
				updated_at = NOW()
			WHERE employee_id = $1`
		_, err := r.db.ExecContext(ctx, query, employeeID, c.Name, c.Relation, c.Number)
		return err
	})
}

// SyncNominee broadcasts one nominee block onto every listed master record
func (r *EmployeeRepository) SyncNominee(ctx context.Context, employeeIDs []string, n Nominee) error {
	if len(employeeIDs) == 0 {
		return nil
	}

	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query, args, err := sqlx.In(`
			UPDATE employee_master SET
				nominee_name = ?, nominee_address = ?, nominee_relation = ?,
				nominee_age = ?, nominee_proportion = ?, updated_at = NOW()
			WHERE employee_id IN (?)`,
			n.Name, n.Address, n.Relation, n.Age, n.Proportion, employeeIDs)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
		return err
	})
}
