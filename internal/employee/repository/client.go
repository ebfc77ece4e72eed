package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/peoplecore/hrms-backend/pkg/database"
	"github.com/peoplecore/hrms-backend/pkg/errors"
	"github.com/peoplecore/hrms-backend/pkg/tenant"
)

// ClientRepository handles client_master persistence
type ClientRepository struct {
	db *database.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *database.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// DeriveClientCode builds the stable code for a client name:
// spaces become underscores, uppercased, capped at 20 characters.
func DeriveClientCode(name string) string {
	code := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
	if runes := []rune(code); len(runes) > 20 {
		code = string(runes[:20])
	}
	return code
}

// FindByName looks a client up by case-insensitive exact name match
func (r *ClientRepository) FindByName(ctx context.Context, name string) (*ClientMaster, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return nil, err
	}

	var client ClientMaster
	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			SELECT client_id, client_name, client_code, client_address,
			       client_contact_person, client_email, client_phone,
			       client_status, created_at, updated_at
			FROM client_master
			WHERE client_name ILIKE $1`
		return r.db.GetContext(ctx, &client, query, name)
	})

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("client")
	}
	if err != nil {
		return nil, err
	}

	return &client, nil
}

// Create inserts a client with a derived code and Active status
func (r *ClientRepository) Create(ctx context.Context, name string) (*ClientMaster, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return nil, err
	}

	code := DeriveClientCode(name)
	client := &ClientMaster{
		ClientName:   name,
		ClientCode:   &code,
		ClientStatus: "Active",
	}

	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			INSERT INTO client_master (client_name, client_code, client_status)
			VALUES ($1, $2, $3)
			RETURNING client_id, created_at, updated_at`
		return r.db.QueryRowxContext(ctx, query, client.ClientName, client.ClientCode, client.ClientStatus).
			Scan(&client.ClientID, &client.CreatedAt, &client.UpdatedAt)
	})
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return nil, appErr
		}
		return nil, err
	}

	return client, nil
}

// List returns all clients ordered by name
func (r *ClientRepository) List(ctx context.Context) ([]*ClientMaster, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return nil, err
	}

	var clients []*ClientMaster
	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			SELECT client_id, client_name, client_code, client_address,
			       client_contact_person, client_email, client_phone,
			       client_status, created_at, updated_at
			FROM client_master
			ORDER BY client_name`
		return r.db.SelectContext(ctx, &clients, query)
	})
	return clients, err
}
