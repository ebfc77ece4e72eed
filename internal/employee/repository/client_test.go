package repository_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplecore/hrms-backend/internal/employee/repository"
	"github.com/peoplecore/hrms-backend/pkg/errors"
	"github.com/peoplecore/hrms-backend/pkg/testutil"
)

func TestDeriveClientCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Acme", "ACME"},
		{"spaces become underscores", "Acme Global Services", "ACME_GLOBAL_SERVICES"},
		{"trims surrounding whitespace", "  Acme  ", "ACME"},
		{"capped at twenty characters", "Very Long Client Name Incorporated", "VERY_LONG_CLIENT_NAM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repository.DeriveClientCode(tt.in))
		})
	}
}

func TestClientRepository_FindByName(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	ctx := testutil.TenantContext()
	repo := repository.NewClientRepository(mockDB.Wrap())

	now := time.Now()
	mockDB.ExpectBegin()
	mockDB.ExpectSearchPath(testutil.TestSchema)
	mockDB.Mock.ExpectQuery("FROM client_master").
		WithArgs("acme").
		WillReturnRows(testutil.MockRows(
			"client_id", "client_name", "client_status", "created_at", "updated_at").
			AddRow(7, "Acme", "Active", now, now))
	mockDB.ExpectCommit()

	client, err := repo.FindByName(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, 7, client.ClientID)
	assert.Equal(t, "Acme", client.ClientName)

	mockDB.ExpectationsWereMet(t)
}

func TestClientRepository_FindByName_NotFound(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	ctx := testutil.TenantContext()
	repo := repository.NewClientRepository(mockDB.Wrap())

	mockDB.ExpectBegin()
	mockDB.ExpectSearchPath(testutil.TestSchema)
	mockDB.Mock.ExpectQuery("FROM client_master").
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)
	mockDB.ExpectRollback()

	_, err := repo.FindByName(ctx, "nobody")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	mockDB.ExpectationsWereMet(t)
}

func TestClientRepository_Create(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	ctx := testutil.TenantContext()
	repo := repository.NewClientRepository(mockDB.Wrap())

	now := time.Now()
	mockDB.ExpectBegin()
	mockDB.ExpectSearchPath(testutil.TestSchema)
	mockDB.Mock.ExpectQuery("INSERT INTO client_master").
		WithArgs("Acme Global", "ACME_GLOBAL", "Active").
		WillReturnRows(testutil.MockRows("client_id", "created_at", "updated_at").
			AddRow(12, now, now))
	mockDB.ExpectCommit()

	client, err := repo.Create(ctx, "Acme Global")
	require.NoError(t, err)
	assert.Equal(t, 12, client.ClientID)
	assert.Equal(t, "Acme Global", client.ClientName)
	require.NotNil(t, client.ClientCode)
	assert.Equal(t, "ACME_GLOBAL", *client.ClientCode)
	assert.Equal(t, "Active", client.ClientStatus)

	mockDB.ExpectationsWereMet(t)
}
