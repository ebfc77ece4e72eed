package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/peoplecore/hrms-backend/pkg/database"
	"github.com/peoplecore/hrms-backend/pkg/tenant"
)

// AssetRepository handles asset_history persistence
type AssetRepository struct {
	db *database.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *database.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Insert adds an asset history row
func (r *AssetRepository) Insert(ctx context.Context, a *AssetHistory) error {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			INSERT INTO asset_history (
				employee_id, asset_type, asset_number, issued_date,
				return_date, status, created_by, updated_by
			) VALUES (
				:employee_id, :asset_type, :asset_number, :issued_date,
				:return_date, :status, :created_by, :updated_by
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

// DeleteForEmployees removes all asset rows for the given employees
func (r *AssetRepository) DeleteForEmployees(ctx context.Context, employeeIDs []string) error {
	if len(employeeIDs) == 0 {
		return nil
	}

	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query, args, err := sqlx.In(`DELETE FROM asset_history WHERE employee_id IN (?)`, employeeIDs)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
		return err
	})
}

// ListForEmployee returns all asset rows for one employee
func (r *AssetRepository) ListForEmployee(ctx context.Context, employeeID string) ([]*AssetHistory, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return nil, err
	}

	var rows []*AssetHistory
	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			SELECT asset_id, employee_id, asset_type, asset_number,
			       issued_date, return_date, status,
			       created_at, updated_at, created_by, updated_by
			FROM asset_history
			WHERE employee_id = $1
			ORDER BY asset_id`
		return r.db.SelectContext(ctx, &rows, query, employeeID)
	})
	return rows, err
}
