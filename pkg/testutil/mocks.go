package testutil

import (
	"database/sql/driver"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/peoplecore/hrms-backend/pkg/database"
)

// MockDB wraps sqlmock for easier testing
type MockDB struct {
	DB   *sqlx.DB
	Mock sqlmock.Sqlmock
}

// NewMockDB creates a new mock database for unit testing.
// Use this when you want to test repository logic without a real database.
//
// Usage:
//
//	mockDB := testutil.NewMockDB(t)
//	defer mockDB.Close()
//
//	// Set up expectations
//	mockDB.ExpectQuery("SELECT").WillReturnRows(...)
//
//	// Use mockDB.Wrap() with your repository
//	repo := repository.NewEmployeeRepository(mockDB.Wrap())
func NewMockDB(t *testing.T) *MockDB {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	sqlxDB := sqlx.NewDb(db, "postgres")

	return &MockDB{
		DB:   sqlxDB,
		Mock: mock,
	}
}

// Close closes the mock database connection
func (m *MockDB) Close() error {
	return m.DB.Close()
}

// Wrap returns the mock connection as a *database.DB for repositories
func (m *MockDB) Wrap() *database.DB {
	return database.NewFromSqlx(m.DB, NewTestLogger())
}

// ExpectQuery sets up an expected query
func (m *MockDB) ExpectQuery(query string) *sqlmock.ExpectedQuery {
	return m.Mock.ExpectQuery(regexp.QuoteMeta(query))
}

// ExpectExec sets up an expected exec
func (m *MockDB) ExpectExec(query string) *sqlmock.ExpectedExec {
	return m.Mock.ExpectExec(regexp.QuoteMeta(query))
}

// ExpectBegin sets up an expected transaction begin
func (m *MockDB) ExpectBegin() *sqlmock.ExpectedBegin {
	return m.Mock.ExpectBegin()
}

// ExpectCommit sets up an expected commit
func (m *MockDB) ExpectCommit() *sqlmock.ExpectedCommit {
	return m.Mock.ExpectCommit()
}

// ExpectRollback sets up an expected rollback
func (m *MockDB) ExpectRollback() *sqlmock.ExpectedRollback {
	return m.Mock.ExpectRollback()
}

// ExpectationsWereMet verifies all expectations were met
func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	if err := m.Mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// MockRows creates a new mock rows object
func MockRows(columns ...string) *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

// ExpectSearchPath sets up the expectation for the schema switch that
// opens every tenant-scoped transaction.
func (m *MockDB) ExpectSearchPath(schema string) {
	m.Mock.ExpectExec(regexp.QuoteMeta("SET LOCAL search_path TO " + schema + ", public")).
		WillReturnResult(sqlmock.NewResult(0, 0))
}

// ExpectTenantQuery sets up expectations for a single tenant-scoped query.
// This handles the transaction + SET LOCAL search_path pattern.
//
// Usage:
//
//	mockDB.ExpectTenantQuery("tenant_acme",
//	    "SELECT * FROM employee_master WHERE employee_id = $1",
//	    testutil.MockRows("employee_id", "first_name").AddRow(id, name),
//	)
func (m *MockDB) ExpectTenantQuery(schema, query string, rows *sqlmock.Rows) {
	m.Mock.ExpectBegin()
	m.ExpectSearchPath(schema)
	m.Mock.ExpectQuery(regexp.QuoteMeta(query)).WillReturnRows(rows)
	m.Mock.ExpectCommit()
}

// ExpectTenantExec sets up expectations for a single tenant-scoped exec.
func (m *MockDB) ExpectTenantExec(schema, query string, result driver.Result) {
	m.Mock.ExpectBegin()
	m.ExpectSearchPath(schema)
	m.Mock.ExpectExec(regexp.QuoteMeta(query)).WillReturnResult(result)
	m.Mock.ExpectCommit()
}