package bulkimport

import (
	"fmt"

	"github.com/peoplecore/hrms-backend/internal/employee/repository"
)

// Mode selects how master rows reconcile against the persisted store
type Mode string

const (
	// ModeCreate inserts new employees; rows whose identity key already
	// exists are rejected.
	ModeCreate Mode = "create"
	// ModeUpdate sparse-merges into existing employees; rows whose
	// identity key is unknown are rejected.
	ModeUpdate Mode = "update"
)

// ParseMode validates a mode string, defaulting empty to create
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeCreate:
		return ModeCreate, nil
	case ModeUpdate:
		return ModeUpdate, nil
	default:
		return "", fmt.Errorf("invalid mode %q: must be create or update", s)
	}
}

// RowError collects the failures of one master row. Row is the
// worksheet row number (header is row 1, first data row is 2).
type RowError struct {
	Row        int      `json:"row"`
	EmployeeID string   `json:"employee_id,omitempty"`
	Errors     []string `json:"errors"`
}

// Result is the outcome of a committed import
type Result struct {
	Message     string   `json:"message"`
	Operation   Mode     `json:"operation"`
	EmployeeIDs []string `json:"employee_ids"`

	// NewClients lists clients auto-created while resolving onboarding
	// rows. Carried for event publishing, not for the response body.
	NewClients []*repository.ClientMaster `json:"-"`
}

// ValidationError carries the full per-row error report of a rejected
// batch. No rows are persisted when it is returned.
type ValidationError struct {
	Rows []RowError
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d rows", len(e.Rows))
}
