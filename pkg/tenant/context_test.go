package tenant

import (
	"context"
	"errors"
	"testing"
)

func TestTenantContextRoundTrip(t *testing.T) {
	ctx := WithTenantContext(context.Background(),
		"11111111-1111-1111-1111-111111111111", "acme", "tenant_acme")

	id, err := TenantID(ctx)
	if err != nil {
		t.Fatalf("TenantID() error = %v", err)
	}
	if id != "11111111-1111-1111-1111-111111111111" {
		t.Errorf("TenantID() = %q", id)
	}

	slug, err := TenantSlug(ctx)
	if err != nil {
		t.Fatalf("TenantSlug() error = %v", err)
	}
	if slug != "acme" {
		t.Errorf("TenantSlug() = %q", slug)
	}

	schema, err := TenantSchema(ctx)
	if err != nil {
		t.Fatalf("TenantSchema() error = %v", err)
	}
	if schema != "tenant_acme" {
		t.Errorf("TenantSchema() = %q", schema)
	}
}

func TestTenantContextMissing(t *testing.T) {
	ctx := context.Background()

	if _, err := TenantID(ctx); !errors.Is(err, ErrNoTenantInContext) {
		t.Errorf("TenantID() error = %v, want ErrNoTenantInContext", err)
	}
	if _, err := TenantSlug(ctx); !errors.Is(err, ErrNoTenantInContext) {
		t.Errorf("TenantSlug() error = %v, want ErrNoTenantInContext", err)
	}
	if _, err := TenantSchema(ctx); !errors.Is(err, ErrNoTenantInContext) {
		t.Errorf("TenantSchema() error = %v, want ErrNoTenantInContext", err)
	}
}

func TestTenantContextEmptyValues(t *testing.T) {
	ctx := WithTenantContext(context.Background(), "", "", "")

	if _, err := TenantSchema(ctx); !errors.Is(err, ErrNoTenantInContext) {
		t.Errorf("TenantSchema() error = %v, want ErrNoTenantInContext for empty value", err)
	}
}
