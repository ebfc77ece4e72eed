package messaging

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types
const (
	// User events (consumed, emitted by the identity service)
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"

	// Employee lifecycle events
	EventEmployeeCreated = "employee.created"
	EventEmployeeUpdated = "employee.updated"
	EventEmployeeRetired = "employee.retired"

	// Bulk import events
	EventEmployeeBulkImported = "employee.bulk_imported"

	// Client events
	EventClientCreated = "client.created"
)

// Exchange names
const (
	ExchangeUserEvents     = "user.events"
	ExchangeEmployeeEvents = "employee.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// User Events

// UserCreatedEvent is published when a user is created
type UserCreatedEvent struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	RoleName  string `json:"role_name"`

	// Tenant context (required for routing to the right schema)
	TenantID     string `json:"tenant_id"`
	TenantSlug   string `json:"tenant_slug"`
	TenantSchema string `json:"tenant_schema"`
}

// FullName returns the user's full name
func (e *UserCreatedEvent) FullName() string {
	return e.FirstName + " " + e.LastName
}

// UserUpdatedEvent is published when a user is updated
type UserUpdatedEvent struct {
	UserID string         `json:"user_id"`
	Fields map[string]any `json:"fields"` // Changed fields

	TenantID     string `json:"tenant_id"`
	TenantSlug   string `json:"tenant_slug"`
	TenantSchema string `json:"tenant_schema"`
}

// UserDeletedEvent is published when a user is deleted
type UserDeletedEvent struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`

	TenantID     string `json:"tenant_id"`
	TenantSlug   string `json:"tenant_slug"`
	TenantSchema string `json:"tenant_schema"`
}

// Employee Events

// EmployeeCreatedEvent is published when an employee record is created
type EmployeeCreatedEvent struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	CreatedBy  string `json:"created_by"`

	TenantID     string `json:"tenant_id"`
	TenantSlug   string `json:"tenant_slug"`
	TenantSchema string `json:"tenant_schema"`
}

// EmployeeUpdatedEvent is published when an employee record is updated
type EmployeeUpdatedEvent struct {
	EmployeeID string         `json:"employee_id"`
	Fields     map[string]any `json:"fields"`
	UpdatedBy  string         `json:"updated_by"`

	TenantID     string `json:"tenant_id"`
	TenantSlug   string `json:"tenant_slug"`
	TenantSchema string `json:"tenant_schema"`
}

// EmployeeRetiredEvent is published when an employee is soft-retired
type EmployeeRetiredEvent struct {
	EmployeeID string `json:"employee_id"`
	RetiredBy  string `json:"retired_by"`

	TenantID     string `json:"tenant_id"`
	TenantSlug   string `json:"tenant_slug"`
	TenantSchema string `json:"tenant_schema"`
}

// EmployeeBulkImportedEvent is published after a bulk workbook import commits
type EmployeeBulkImportedEvent struct {
	Mode        string   `json:"mode"` // create or update
	EmployeeIDs []string `json:"employee_ids"`
	RowCount    int      `json:"row_count"`
	ImportedBy  string   `json:"imported_by"`

	TenantID     string `json:"tenant_id"`
	TenantSlug   string `json:"tenant_slug"`
	TenantSchema string `json:"tenant_schema"`
}

// ClientCreatedEvent is published when a client is auto-created during import
type ClientCreatedEvent struct {
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`
	ClientCode string `json:"client_code"`

	TenantID     string `json:"tenant_id"`
	TenantSlug   string `json:"tenant_slug"`
	TenantSchema string `json:"tenant_schema"`
}

// GenerateEventID generates a unique event ID
func GenerateEventID() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), time.Now().Nanosecond()%10000)
}
