package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/peoplecore/hrms-backend/pkg/logger"
	"github.com/peoplecore/hrms-backend/pkg/tenant"
	"github.com/rs/zerolog"
)

// TestSchema is the tenant schema used across unit tests
const TestSchema = "tenant_test"

// NewTestLogger returns a logger that discards all output
func NewTestLogger() *logger.Logger {
	return &logger.Logger{Logger: zerolog.New(io.Discard)}
}

// TenantContext returns a context carrying the standard test tenant
func TenantContext() context.Context {
	return tenant.WithTenantContext(context.Background(),
		"11111111-1111-1111-1111-111111111111", "test-tenant", TestSchema)
}

// JSONRequest builds an *http.Request with a JSON body and tenant headers set
func JSONRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", "11111111-1111-1111-1111-111111111111")
	req.Header.Set("X-Tenant-Slug", "test-tenant")
	req.Header.Set("X-Tenant-Schema", TestSchema)

	return req.WithContext(TenantContext())
}

// DecodeResponse decodes a JSON response body into v
func DecodeResponse(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}
