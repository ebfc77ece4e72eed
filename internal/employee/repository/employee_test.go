package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplecore/hrms-backend/internal/employee/repository"
	"github.com/peoplecore/hrms-backend/pkg/errors"
	"github.com/peoplecore/hrms-backend/pkg/testutil"
)

func TestEmployeeRepository_GetByID(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	ctx := testutil.TenantContext()
	repo := repository.NewEmployeeRepository(mockDB.Wrap())

	mockDB.ExpectBegin()
	mockDB.ExpectSearchPath(testutil.TestSchema)
	mockDB.Mock.ExpectQuery("FROM employee_master WHERE employee_id").
		WithArgs("759001").
		WillReturnRows(testutil.MockRows("employee_id", "first_name", "last_name").
			AddRow("759001", "Asha", "Rao"))
	mockDB.ExpectCommit()

	emp, err := repo.GetByID(ctx, "759001")
	require.NoError(t, err)
	assert.Equal(t, "759001", emp.EmployeeID)
	assert.Equal(t, "Asha", emp.FirstName)

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_GetByID_NotFound(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	ctx := testutil.TenantContext()
	repo := repository.NewEmployeeRepository(mockDB.Wrap())

	mockDB.ExpectBegin()
	mockDB.ExpectSearchPath(testutil.TestSchema)
	mockDB.Mock.ExpectQuery("FROM employee_master WHERE employee_id").
		WithArgs("000000").
		WillReturnError(sql.ErrNoRows)
	mockDB.ExpectRollback()

	_, err := repo.GetByID(ctx, "000000")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_Exists(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	ctx := testutil.TenantContext()
	repo := repository.NewEmployeeRepository(mockDB.Wrap())

	mockDB.ExpectBegin()
	mockDB.ExpectSearchPath(testutil.TestSchema)
	mockDB.Mock.ExpectQuery("SELECT EXISTS").
		WithArgs("759001").
		WillReturnRows(testutil.MockRows("exists").AddRow(true))
	mockDB.ExpectCommit()

	exists, err := repo.Exists(ctx, "759001")
	require.NoError(t, err)
	assert.True(t, exists)

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_EmailInUse_ChecksBothColumns(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	ctx := testutil.TenantContext()
	repo := repository.NewEmployeeRepository(mockDB.Wrap())

	mockDB.ExpectBegin()
	mockDB.ExpectSearchPath(testutil.TestSchema)
	mockDB.Mock.ExpectQuery("official_email_id ILIKE .+ OR personal_email_id ILIKE").
		WithArgs("asha@example.com").
		WillReturnRows(testutil.MockRows("exists").AddRow(false))
	mockDB.ExpectCommit()

	inUse, err := repo.EmailInUse(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.False(t, inUse)

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_PANInUse(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	ctx := testutil.TenantContext()
	repo := repository.NewEmployeeRepository(mockDB.Wrap())

	mockDB.ExpectTenantQuery(testutil.TestSchema,
		`SELECT EXISTS (SELECT 1 FROM employee_master WHERE pan_card_no = $1)`,
		testutil.MockRows("exists").AddRow(true))

	inUse, err := repo.PANInUse(ctx, "ABCDE1234F")
	require.NoError(t, err)
	assert.True(t, inUse)

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_Retire(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	ctx := testutil.TenantContext()
	repo := repository.NewEmployeeRepository(mockDB.Wrap())

	mockDB.ExpectBegin()
	mockDB.ExpectSearchPath(testutil.TestSchema)
	mockDB.Mock.ExpectExec("UPDATE employee_master").
		WithArgs("759001", "system").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.ExpectCommit()

	err := repo.Retire(ctx, "759001", "system")
	require.NoError(t, err)

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_Retire_NotFound(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	ctx := testutil.TenantContext()
	repo := repository.NewEmployeeRepository(mockDB.Wrap())

	mockDB.ExpectBegin()
	mockDB.ExpectSearchPath(testutil.TestSchema)
	mockDB.Mock.ExpectExec("UPDATE employee_master").
		WithArgs("000000", "system").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mockDB.ExpectRollback()

	err := repo.Retire(ctx, "000000", "system")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_NextEmployeeID(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	ctx := testutil.TenantContext()
	repo := repository.NewEmployeeRepository(mockDB.Wrap())

	mockDB.ExpectBegin()
	mockDB.ExpectSearchPath(testutil.TestSchema)
	mockDB.Mock.ExpectQuery("SELECT COALESCE").
		WithArgs(repository.SeriesStart, repository.SeriesEnd).
		WillReturnRows(testutil.MockRows("next").AddRow(759004))
	mockDB.ExpectCommit()

	id, err := repo.NextEmployeeID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "759004", id)

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_NextEmployeeID_SeriesExhausted(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	ctx := testutil.TenantContext()
	repo := repository.NewEmployeeRepository(mockDB.Wrap())

	mockDB.ExpectBegin()
	mockDB.ExpectSearchPath(testutil.TestSchema)
	mockDB.Mock.ExpectQuery("SELECT COALESCE").
		WithArgs(repository.SeriesStart, repository.SeriesEnd).
		WillReturnRows(testutil.MockRows("next").AddRow(760000))
	mockDB.ExpectCommit()

	_, err := repo.NextEmployeeID(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrBadRequest))
	assert.Contains(t, err.Error(), "series exhausted")

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_Create(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	ctx := testutil.TenantContext()
	repo := repository.NewEmployeeRepository(mockDB.Wrap())

	mockDB.ExpectBegin()
	mockDB.ExpectSearchPath(testutil.TestSchema)
	mockDB.Mock.ExpectExec("INSERT INTO employee_master").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.ExpectCommit()

	emp := &repository.EmployeeMaster{
		EmployeeID: "759001",
		FirstName:  "Asha",
		LastName:   "Rao",
	}
	err := repo.Create(ctx, emp)
	require.NoError(t, err)

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_NoTenantInContext(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	repo := repository.NewEmployeeRepository(mockDB.Wrap())

	_, err := repo.GetByID(context.Background(), "759001")
	require.Error(t, err)

	mockDB.ExpectationsWereMet(t)
}
