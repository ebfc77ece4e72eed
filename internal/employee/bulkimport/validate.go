package bulkimport

import (
	"context"
	"strings"
)

// validator accumulates batch-scoped uniqueness state while checking
// rows in order. Emails (official and personal) share one namespace, as
// do all phone-like numbers, so cross-field collisions are caught. A
// repeated value is flagged on the row that introduces the repeat.
type validator struct {
	store Store
	mode  Mode

	empIDs   map[string]struct{}
	emails   map[string]struct{}
	contacts map[string]struct{}
	pans     map[string]struct{}
	aadhars  map[string]struct{}
}

func newValidator(store Store, mode Mode) *validator {
	return &validator{
		store:    store,
		mode:     mode,
		empIDs:   make(map[string]struct{}),
		emails:   make(map[string]struct{}),
		contacts: make(map[string]struct{}),
		pans:     make(map[string]struct{}),
		aadhars:  make(map[string]struct{}),
	}
}

// check validates one master row and advances the batch state.
// The returned slice is empty for a clean row; a non-nil error means a
// store lookup failed and the whole import must abort.
func (v *validator) check(ctx context.Context, m masterRow) ([]string, error) {
	var rowErrors []string

	// Required fields
	if m.employeeID == "" {
		rowErrors = append(rowErrors, "Employee ID is required")
	}
	if m.doj == nil {
		rowErrors = append(rowErrors, "DOJ must be in DD-MM-YYYY format")
	}
	if m.firstName == "" {
		rowErrors = append(rowErrors, "First Name is required")
	}
	if m.lastName == "" {
		rowErrors = append(rowErrors, "Last Name is required")
	}
	if m.officialEmail == "" {
		rowErrors = append(rowErrors, "Official Email ID is required")
	}

	// In-batch duplicates
	if m.employeeID != "" {
		if _, dup := v.empIDs[m.employeeID]; dup {
			rowErrors = append(rowErrors, "Duplicate Employee ID in file")
		}
		v.empIDs[m.employeeID] = struct{}{}
	}

	for _, e := range []struct{ value, label string }{
		{m.officialEmail, "Official Email"},
		{m.personalEmail, "Personal Email"},
	} {
		if e.value == "" {
			continue
		}
		key := strings.ToLower(e.value)
		if _, dup := v.emails[key]; dup {
			rowErrors = append(rowErrors, "Duplicate "+e.label+" in file")
		}
		v.emails[key] = struct{}{}
	}

	if m.panCardNo != "" {
		if _, dup := v.pans[m.panCardNo]; dup {
			rowErrors = append(rowErrors, "Duplicate PAN in file")
		}
		v.pans[m.panCardNo] = struct{}{}
	}

	if m.aadharNo != "" {
		if _, dup := v.aadhars[m.aadharNo]; dup {
			rowErrors = append(rowErrors, "Duplicate Aadhar in file")
		}
		v.aadhars[m.aadharNo] = struct{}{}
	}

	for _, c := range []struct{ value, label string }{
		{m.officialNo, "Official Contact"},
		{m.mobileNo, "Personal Mobile"},
	} {
		if c.value == "" {
			continue
		}
		if _, dup := v.contacts[c.value]; dup {
			rowErrors = append(rowErrors, "Duplicate "+c.label+" in file")
		}
		v.contacts[c.value] = struct{}{}
	}

	// Persisted-store checks
	switch v.mode {
	case ModeCreate:
		storeErrors, err := v.checkStoreCreate(ctx, m)
		if err != nil {
			return nil, err
		}
		rowErrors = append(rowErrors, storeErrors...)

	case ModeUpdate:
		if m.employeeID != "" {
			exists, err := v.store.EmployeeExists(ctx, m.employeeID)
			if err != nil {
				return nil, err
			}
			if !exists {
				rowErrors = append(rowErrors, "Employee ID not found - cannot update non-existent employee")
			}
		}
	}

	return rowErrors, nil
}

func (v *validator) checkStoreCreate(ctx context.Context, m masterRow) ([]string, error) {
	var rowErrors []string

	if m.employeeID != "" {
		exists, err := v.store.EmployeeExists(ctx, m.employeeID)
		if err != nil {
			return nil, err
		}
		if exists {
			rowErrors = append(rowErrors, "Employee ID already exists")
		}
	}

	if m.officialEmail != "" {
		inUse, err := v.store.EmailInUse(ctx, m.officialEmail)
		if err != nil {
			return nil, err
		}
		if inUse {
			rowErrors = append(rowErrors, "Official Email already exists")
		}
	}

	if m.personalEmail != "" {
		inUse, err := v.store.EmailInUse(ctx, m.personalEmail)
		if err != nil {
			return nil, err
		}
		if inUse {
			rowErrors = append(rowErrors, "Personal Email already exists")
		}
	}

	if m.panCardNo != "" {
		inUse, err := v.store.PANInUse(ctx, m.panCardNo)
		if err != nil {
			return nil, err
		}
		if inUse {
			rowErrors = append(rowErrors, "PAN already exists")
		}
	}

	if m.aadharNo != "" {
		inUse, err := v.store.AadharInUse(ctx, m.aadharNo)
		if err != nil {
			return nil, err
		}
		if inUse {
			rowErrors = append(rowErrors, "Aadhar already exists")
		}
	}

	if m.officialNo != "" {
		inUse, err := v.store.ContactInUse(ctx, m.officialNo)
		if err != nil {
			return nil, err
		}
		if inUse {
			rowErrors = append(rowErrors, "Official Contact already exists")
		}
	}

	if m.mobileNo != "" {
		inUse, err := v.store.ContactInUse(ctx, m.mobileNo)
		if err != nil {
			return nil, err
		}
		if inUse {
			rowErrors = append(rowErrors, "Personal Mobile already exists")
		}
	}

	return rowErrors, nil
}
