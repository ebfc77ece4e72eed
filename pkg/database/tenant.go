package database

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"
)

type txKey struct{}

var schemaNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// WithTenantSchema executes a function with schema-per-tenant isolation.
//
// Usage in repositories:
//
//	schema, err := tenant.Schema(ctx)
//	if err != nil { return err }
//	err = r.db.WithTenantSchema(ctx, schema, func(ctx context.Context) error {
//	    return r.db.GetContext(ctx, &emp, "SELECT * FROM employee_master WHERE employee_id = $1", id)
//	})
//
// How it works:
//  1. Starts a transaction
//  2. Sets "SET LOCAL search_path TO <tenant_schema>, public"
//  3. Stores the transaction in the context so the DB wrapper methods use it
//  4. Commits on success, rolls back on error
//
// SET LOCAL is scoped to the transaction, so pooled connections return to
// a clean state after commit or rollback.
//
// The call is reentrant: if the context already carries a transaction, fn
// runs inside it directly. That lets a coordinator open one transaction
// for a whole batch while repositories keep wrapping their own calls.
func (db *DB) WithTenantSchema(ctx context.Context, schema string, fn func(context.Context) error) error {
	if tx := db.getTx(ctx); tx != nil {
		return fn(ctx)
	}

	// SET LOCAL does not support bind parameters, so the schema name is
	// interpolated. It comes from the tenant registry, not user input,
	// but validate the shape anyway.
	if !schemaNamePattern.MatchString(schema) {
		return fmt.Errorf("invalid tenant schema name: %q", schema)
	}

	return db.Transaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL search_path TO %s, public", schema)); err != nil {
			return fmt.Errorf("failed to set search_path to %s: %w", schema, err)
		}

		txCtx := context.WithValue(ctx, txKey{}, tx)

		return fn(txCtx)
	})
}

// getTx extracts transaction from context if present
func (db *DB) getTx(ctx context.Context) *sqlx.Tx {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return nil
}
