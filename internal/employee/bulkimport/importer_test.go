package bulkimport

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/peoplecore/hrms-backend/internal/employee/repository"
	"github.com/peoplecore/hrms-backend/internal/employee/workbook"
	"github.com/peoplecore/hrms-backend/pkg/errors"
	"github.com/peoplecore/hrms-backend/pkg/testutil"
)

// fakeStore is an in-memory Store. InTx snapshots the state up front
// and restores it when the callback fails, mirroring the transactional
// behavior of the real store.
type fakeStore struct {
	employees   map[string]*repository.EmployeeMaster
	addresses   []*repository.AddressHistory
	family      []*repository.FamilyMember
	education   []*repository.EducationHistory
	experience  []*repository.ExperienceHistory
	assets      []*repository.AssetHistory
	onboardings []*repository.OnboardingHistory
	clients     map[string]*repository.ClientMaster

	quickAddresses []*repository.AddressHistory
	experienceRefs map[string]repository.ExperienceRefs
	emergency      map[string]repository.EmergencyContact
	nomineeIDs     []string
	nominee        repository.Nominee

	nextClientID  int
	clientCreates int
	committed     bool
	rolledBack    bool

	failInsertAsset error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees:      make(map[string]*repository.EmployeeMaster),
		clients:        make(map[string]*repository.ClientMaster),
		experienceRefs: make(map[string]repository.ExperienceRefs),
		emergency:      make(map[string]repository.EmergencyContact),
		nextClientID:   1,
	}
}

type fakeSnapshot struct {
	employees   map[string]*repository.EmployeeMaster
	addresses   []*repository.AddressHistory
	family      []*repository.FamilyMember
	education   []*repository.EducationHistory
	experience  []*repository.ExperienceHistory
	assets      []*repository.AssetHistory
	onboardings []*repository.OnboardingHistory
	clients     map[string]*repository.ClientMaster
}

func (f *fakeStore) InTx(ctx context.Context, fn func(context.Context) error) error {
	snap := fakeSnapshot{
		employees:   make(map[string]*repository.EmployeeMaster, len(f.employees)),
		addresses:   append([]*repository.AddressHistory(nil), f.addresses...),
		family:      append([]*repository.FamilyMember(nil), f.family...),
		education:   append([]*repository.EducationHistory(nil), f.education...),
		experience:  append([]*repository.ExperienceHistory(nil), f.experience...),
		assets:      append([]*repository.AssetHistory(nil), f.assets...),
		onboardings: append([]*repository.OnboardingHistory(nil), f.onboardings...),
		clients:     make(map[string]*repository.ClientMaster, len(f.clients)),
	}
	for k, v := range f.employees {
		snap.employees[k] = v
	}
	for k, v := range f.clients {
		snap.clients[k] = v
	}

	if err := fn(ctx); err != nil {
		f.employees = snap.employees
		f.addresses = snap.addresses
		f.family = snap.family
		f.education = snap.education
		f.experience = snap.experience
		f.assets = snap.assets
		f.onboardings = snap.onboardings
		f.clients = snap.clients
		f.rolledBack = true
		return err
	}
	f.committed = true
	return nil
}

func (f *fakeStore) EmployeeExists(_ context.Context, id string) (bool, error) {
	_, ok := f.employees[id]
	return ok, nil
}

func (f *fakeStore) EmailInUse(_ context.Context, email string) (bool, error) {
	for _, e := range f.employees {
		if ptrEqualFold(e.OfficialEmailID, email) || ptrEqualFold(e.PersonalEmailID, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ContactInUse(_ context.Context, number string) (bool, error) {
	for _, e := range f.employees {
		if ptrEquals(e.OfficialNo, number) || ptrEquals(e.MobileNo, number) || ptrEquals(e.MobileNoComm, number) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) PANInUse(_ context.Context, pan string) (bool, error) {
	for _, e := range f.employees {
		if ptrEquals(e.PANCardNo, pan) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) AadharInUse(_ context.Context, aadhar string) (bool, error) {
	for _, e := range f.employees {
		if ptrEquals(e.AadharNo, aadhar) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateEmployee(_ context.Context, emp *repository.EmployeeMaster) error {
	f.employees[emp.EmployeeID] = emp
	return nil
}

func (f *fakeStore) GetEmployee(_ context.Context, id string) (*repository.EmployeeMaster, error) {
	emp, ok := f.employees[id]
	if !ok {
		return nil, errors.NotFound("employee")
	}
	cp := *emp
	return &cp, nil
}

func (f *fakeStore) UpdateEmployee(_ context.Context, emp *repository.EmployeeMaster) error {
	if _, ok := f.employees[emp.EmployeeID]; !ok {
		return errors.NotFound("employee")
	}
	f.employees[emp.EmployeeID] = emp
	return nil
}

func (f *fakeStore) DeleteAddressesFor(_ context.Context, ids []string) error {
	f.addresses = dropForEmployees(f.addresses, ids, func(a *repository.AddressHistory) string { return a.EmployeeID })
	return nil
}

func (f *fakeStore) InsertAddress(_ context.Context, a *repository.AddressHistory) error {
	f.addresses = append(f.addresses, a)
	return nil
}

func (f *fakeStore) SyncQuickAddress(_ context.Context, a *repository.AddressHistory) error {
	f.quickAddresses = append(f.quickAddresses, a)
	if emp, ok := f.employees[a.EmployeeID]; ok {
		cp := *emp
		cp.AddressType = a.AddressType
		cp.City = a.City
		cp.State = a.State
		cp.PostalCode = a.PostalCode
		cp.CompleteAddress = a.CompleteAddress
		f.employees[a.EmployeeID] = &cp
	}
	return nil
}

func (f *fakeStore) DeleteFamilyFor(_ context.Context, ids []string) error {
	f.family = dropForEmployees(f.family, ids, func(m *repository.FamilyMember) string { return m.EmployeeID })
	return nil
}

func (f *fakeStore) InsertFamilyMember(_ context.Context, m *repository.FamilyMember) error {
	f.family = append(f.family, m)
	return nil
}

func (f *fakeStore) DeleteEducationFor(_ context.Context, ids []string) error {
	f.education = dropForEmployees(f.education, ids, func(e *repository.EducationHistory) string { return e.EmployeeID })
	return nil
}

func (f *fakeStore) InsertEducation(_ context.Context, e *repository.EducationHistory) error {
	f.education = append(f.education, e)
	return nil
}

func (f *fakeStore) DeleteExperienceFor(_ context.Context, ids []string) error {
	f.experience = dropForEmployees(f.experience, ids, func(e *repository.ExperienceHistory) string { return e.EmployeeID })
	return nil
}

func (f *fakeStore) InsertExperience(_ context.Context, e *repository.ExperienceHistory) error {
	f.experience = append(f.experience, e)
	return nil
}

func (f *fakeStore) SyncExperienceRefs(_ context.Context, id string, refs repository.ExperienceRefs) error {
	f.experienceRefs[id] = refs
	return nil
}

func (f *fakeStore) SyncEmergencyContact(_ context.Context, id string, c repository.EmergencyContact) error {
	f.emergency[id] = c
	return nil
}

func (f *fakeStore) SyncNominee(_ context.Context, ids []string, n repository.Nominee) error {
	f.nomineeIDs = append([]string(nil), ids...)
	f.nominee = n
	return nil
}

func (f *fakeStore) DeleteOnboardingFor(_ context.Context, ids []string) error {
	f.onboardings = dropForEmployees(f.onboardings, ids, func(o *repository.OnboardingHistory) string { return o.EmployeeID })
	return nil
}

func (f *fakeStore) InsertOnboarding(_ context.Context, o *repository.OnboardingHistory) error {
	f.onboardings = append(f.onboardings, o)
	return nil
}

func (f *fakeStore) FindClientByName(_ context.Context, name string) (*repository.ClientMaster, error) {
	if c, ok := f.clients[workbook.Normalize(name)]; ok {
		return c, nil
	}
	return nil, errors.NotFound("client")
}

func (f *fakeStore) CreateClient(_ context.Context, name string) (*repository.ClientMaster, error) {
	code := repository.DeriveClientCode(name)
	c := &repository.ClientMaster{
		ClientID:     f.nextClientID,
		ClientName:   name,
		ClientCode:   &code,
		ClientStatus: "Active",
	}
	f.nextClientID++
	f.clientCreates++
	f.clients[workbook.Normalize(name)] = c
	return c, nil
}

func (f *fakeStore) DeleteAssetsFor(_ context.Context, ids []string) error {
	f.assets = dropForEmployees(f.assets, ids, func(a *repository.AssetHistory) string { return a.EmployeeID })
	return nil
}

func (f *fakeStore) InsertAsset(_ context.Context, a *repository.AssetHistory) error {
	if f.failInsertAsset != nil {
		return f.failInsertAsset
	}
	f.assets = append(f.assets, a)
	return nil
}

func ptrEquals(p *string, v string) bool {
	return p != nil && *p == v
}

func ptrEqualFold(p *string, v string) bool {
	return p != nil && workbook.Normalize(*p) == workbook.Normalize(v)
}

func dropForEmployees[T any](rows []T, ids []string, key func(T) string) []T {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	var kept []T
	for _, row := range rows {
		if _, ok := drop[key(row)]; !ok {
			kept = append(kept, row)
		}
	}
	return kept
}

// Workbook builders

type sheetDef struct {
	name string
	rows [][]interface{}
}

func buildImportWorkbook(t *testing.T, sheets []sheetDef) *workbook.Workbook {
	t.Helper()

	f := excelize.NewFile()
	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for j, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, j+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(s.name, cell, &row))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	wb, err := workbook.Open(&buf)
	require.NoError(t, err)
	return wb
}

var employeeHeader = []interface{}{
	"Employee ID", "First Name", "Last Name", "DOJ (DD-MM-YYYY)",
	"Designation", "Department", "Official Contact Number", "Official Email ID",
	"Mobile No", "PAN Card No", "Aadhar No", "Personal Email ID", "Tax Regime",
}

func employeeRow(id, first, last, doj, email string) []interface{} {
	return []interface{}{id, first, last, doj, "Engineer", "Technology", "", email, "", "", "", "", ""}
}

func seedEmployee(f *fakeStore, id string, mutate func(*repository.EmployeeMaster)) {
	emp := &repository.EmployeeMaster{EmployeeID: id, FirstName: "Seed", LastName: "Employee"}
	if mutate != nil {
		mutate(emp)
	}
	f.employees[id] = emp
}

func runImport(t *testing.T, store Store, sheets []sheetDef, mode Mode) (*Result, error) {
	t.Helper()
	wb := buildImportWorkbook(t, sheets)
	imp := NewImporter(store, testutil.NewTestLogger())
	return imp.Import(context.Background(), wb, mode)
}

func str(s string) *string { return &s }

// Tests

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeCreate, false},
		{"create", ModeCreate, false},
		{"update", ModeUpdate, false},
		{"upsert", "", true},
	}
	for _, tc := range tests {
		got, err := ParseMode(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestImport_CreateAppliesDefaults(t *testing.T) {
	store := newFakeStore()

	sheets := []sheetDef{{
		name: SheetEmployees,
		rows: [][]interface{}{
			{"Employee ID", "First Name", "Last Name", "DOJ (DD-MM-YYYY)", "Official Email ID", "Mobile No"},
			{"759001", "Asha", "Rao", "15-01-2024", "asha.rao@example.com", "98-765-43210"},
		},
	}}

	result, err := runImport(t, store, sheets, ModeCreate)
	require.NoError(t, err)

	assert.True(t, store.committed)
	assert.Equal(t, "Created 1 employees with related details", result.Message)
	assert.Equal(t, []string{"759001"}, result.EmployeeIDs)

	emp := store.employees["759001"]
	require.NotNil(t, emp)
	assert.Equal(t, "Asha Rao", *emp.FullName)
	assert.Equal(t, "No", *emp.ExcludedFromPayroll)
	assert.Equal(t, "New", *emp.TaxRegime)
	assert.Equal(t, 1, *emp.CoveredMembers)
	assert.Equal(t, "Active", *emp.EmploymentStatus)
	assert.Equal(t, "100", emp.NomineeProportion.Decimal.String())
	assert.Equal(t, "9876543210", *emp.MobileNo)
	assert.Equal(t, *emp.MobileNo, *emp.MobileNoComm)
	assert.Equal(t, "system", *emp.CreatedBy)
}

func TestImport_MissingMasterSheet(t *testing.T) {
	store := newFakeStore()

	_, err := runImport(t, store, []sheetDef{{
		name: SheetAddresses,
		rows: [][]interface{}{{"Employee ID", "Address Type"}},
	}}, ModeCreate)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "BAD_REQUEST", appErr.Code)
}

func TestImport_RowLimit(t *testing.T) {
	store := newFakeStore()
	wb := buildImportWorkbook(t, []sheetDef{{
		name: SheetEmployees,
		rows: [][]interface{}{
			employeeHeader,
			employeeRow("759001", "Asha", "Rao", "15-01-2024", "asha@example.com"),
			employeeRow("759002", "Binu", "Nair", "15-01-2024", "binu@example.com"),
		},
	}})

	imp := NewImporter(store, testutil.NewTestLogger())
	imp.maxRows = 1

	_, err := imp.Import(context.Background(), wb, ModeCreate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many rows")
}

func TestImport_RequiredFieldValidation(t *testing.T) {
	store := newFakeStore()

	sheets := []sheetDef{{
		name: SheetEmployees,
		rows: [][]interface{}{
			employeeHeader,
			// Missing last name, unparseable DOJ, missing email
			{"759001", "Asha", "", "2024-01-15", "", "", "", "", "", "", "", "", ""},
		},
	}}

	_, err := runImport(t, store, sheets, ModeCreate)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Rows, 1)
	assert.Equal(t, 2, verr.Rows[0].Row)
	assert.Equal(t, "759001", verr.Rows[0].EmployeeID)
	assert.Contains(t, verr.Rows[0].Errors, "DOJ must be in DD-MM-YYYY format")
	assert.Contains(t, verr.Rows[0].Errors, "Last Name is required")
	assert.Contains(t, verr.Rows[0].Errors, "Official Email ID is required")

	assert.Empty(t, store.employees)
	assert.True(t, store.rolledBack)
}

func TestImport_InFileDuplicatesFlagRepeatRow(t *testing.T) {
	store := newFakeStore()

	sheets := []sheetDef{{
		name: SheetEmployees,
		rows: [][]interface{}{
			{"Employee ID", "First Name", "Last Name", "DOJ (DD-MM-YYYY)", "Official Email ID", "Personal Email ID"},
			{"759001", "Asha", "Rao", "15-01-2024", "asha@example.com", ""},
			// Personal email collides with the first row's official email
			{"759002", "Binu", "Nair", "15-01-2024", "binu@example.com", "ASHA@example.com"},
			{"759001", "Chitra", "Menon", "15-01-2024", "chitra@example.com", ""},
		},
	}}

	_, err := runImport(t, store, sheets, ModeCreate)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Rows, 2)

	assert.Equal(t, 3, verr.Rows[0].Row)
	assert.Contains(t, verr.Rows[0].Errors, "Duplicate Personal Email in file")
	assert.Equal(t, 4, verr.Rows[1].Row)
	assert.Contains(t, verr.Rows[1].Errors, "Duplicate Employee ID in file")

	assert.Empty(t, store.employees)
}

func TestImport_InFileDuplicateAadhar(t *testing.T) {
	store := newFakeStore()

	sheets := []sheetDef{{
		name: SheetEmployees,
		rows: [][]interface{}{
			{"Employee ID", "First Name", "Last Name", "DOJ (DD-MM-YYYY)", "Official Email ID", "Aadhar No"},
			{"759001", "Asha", "Rao", "15-01-2024", "asha@example.com", "123412341234"},
			// Same Aadhar, formatted differently; digit cleaning collapses both
			{"759002", "Binu", "Nair", "15-01-2024", "binu@example.com", "1234-1234-1234"},
		},
	}}

	_, err := runImport(t, store, sheets, ModeCreate)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Rows, 1)
	assert.Equal(t, 3, verr.Rows[0].Row)
	assert.Equal(t, "759002", verr.Rows[0].EmployeeID)
	assert.Contains(t, verr.Rows[0].Errors, "Duplicate Aadhar in file")

	assert.Empty(t, store.employees)
	assert.True(t, store.rolledBack)
}

func TestImport_CreateRejectsPersistedIdentity(t *testing.T) {
	store := newFakeStore()
	seedEmployee(store, "759001", func(e *repository.EmployeeMaster) {
		e.OfficialEmailID = str("asha@example.com")
		e.PANCardNo = str("ABCDE1234F")
		e.MobileNo = str("9876543210")
	})

	sheets := []sheetDef{{
		name: SheetEmployees,
		rows: [][]interface{}{
			{"Employee ID", "First Name", "Last Name", "DOJ (DD-MM-YYYY)", "Official Email ID", "PAN Card No", "Mobile No"},
			{"759001", "Asha", "Rao", "15-01-2024", "Asha@Example.com", "abcde1234f", "9876543210"},
		},
	}}

	_, err := runImport(t, store, sheets, ModeCreate)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Rows, 1)
	assert.Contains(t, verr.Rows[0].Errors, "Employee ID already exists")
	assert.Contains(t, verr.Rows[0].Errors, "Official Email already exists")
	assert.Contains(t, verr.Rows[0].Errors, "PAN already exists")
	assert.Contains(t, verr.Rows[0].Errors, "Personal Mobile already exists")
}

func TestImport_UpdateRejectsUnknownEmployee(t *testing.T) {
	store := newFakeStore()

	sheets := []sheetDef{{
		name: SheetEmployees,
		rows: [][]interface{}{
			employeeHeader,
			employeeRow("759001", "Asha", "Rao", "15-01-2024", "asha@example.com"),
		},
	}}

	_, err := runImport(t, store, sheets, ModeUpdate)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Rows, 1)
	assert.Contains(t, verr.Rows[0].Errors, "Employee ID not found - cannot update non-existent employee")
}

func TestImport_UpdateMergesSparsely(t *testing.T) {
	store := newFakeStore()
	seedEmployee(store, "759001", func(e *repository.EmployeeMaster) {
		e.FirstName = "Asha"
		e.LastName = "Rao"
		e.Designation = str("Engineer")
		e.Department = str("Technology")
		e.BankName = str("State Bank")
	})

	sheets := []sheetDef{{
		name: SheetEmployees,
		rows: [][]interface{}{
			{"Employee ID", "First Name", "Last Name", "DOJ (DD-MM-YYYY)", "Official Email ID", "Designation"},
			{"759001", "Asha", "Rao", "15-01-2024", "asha@example.com", "Senior Engineer"},
		},
	}}

	result, err := runImport(t, store, sheets, ModeUpdate)
	require.NoError(t, err)
	assert.Equal(t, "Updated 1 employees with related details", result.Message)

	emp := store.employees["759001"]
	assert.Equal(t, "Senior Engineer", *emp.Designation)
	assert.Equal(t, "Technology", *emp.Department)
	assert.Equal(t, "State Bank", *emp.BankName)
	assert.Equal(t, "Asha", emp.FirstName)
	assert.Equal(t, "system", *emp.UpdatedBy)
}

func TestImport_UpdateReplacesChildRows(t *testing.T) {
	store := newFakeStore()
	seedEmployee(store, "759001", nil)
	seedEmployee(store, "759002", nil)
	store.addresses = []*repository.AddressHistory{
		{EmployeeID: "759001", AddressType: str("Permanent"), City: str("Pune")},
		{EmployeeID: "759001", AddressType: str("Current"), City: str("Mumbai")},
		{EmployeeID: "759002", AddressType: str("Permanent"), City: str("Chennai")},
	}

	sheets := []sheetDef{
		{
			name: SheetEmployees,
			rows: [][]interface{}{
				employeeHeader,
				employeeRow("759001", "Asha", "Rao", "15-01-2024", "asha@example.com"),
			},
		},
		{
			name: SheetAddresses,
			rows: [][]interface{}{
				{"Employee ID", "Address Type", "City", "State"},
				{"759001", "Permanent", "Bengaluru", "Karnataka"},
			},
		},
	}

	_, err := runImport(t, store, sheets, ModeUpdate)
	require.NoError(t, err)

	var forEmp1, forEmp2 int
	for _, a := range store.addresses {
		switch a.EmployeeID {
		case "759001":
			forEmp1++
			assert.Equal(t, "Bengaluru", *a.City)
		case "759002":
			forEmp2++
		}
	}
	assert.Equal(t, 1, forEmp1)
	assert.Equal(t, 1, forEmp2)
}

func TestImport_UpdateReimportIsIdempotent(t *testing.T) {
	store := newFakeStore()
	seedEmployee(store, "759001", func(e *repository.EmployeeMaster) {
		e.FirstName = "Asha"
		e.LastName = "Rao"
		e.BankName = str("State Bank")
	})

	sheets := []sheetDef{
		{
			name: SheetEmployees,
			rows: [][]interface{}{
				{"Employee ID", "First Name", "Last Name", "DOJ (DD-MM-YYYY)", "Official Email ID", "Designation"},
				{"759001", "Asha", "Rao", "15-01-2024", "asha@example.com", "Senior Engineer"},
			},
		},
		{
			name: SheetAddresses,
			rows: [][]interface{}{
				{"Employee ID", "Address Type", "City", "State"},
				{"759001", "Permanent", "Pune", "Maharashtra"},
			},
		},
		{
			name: SheetFamily,
			rows: [][]interface{}{
				{"Employee ID", "Relation Type", "Name", "Dependant (Yes/No)"},
				{"759001", "Spouse", "Ravi Rao", "Yes"},
			},
		},
	}

	_, err := runImport(t, store, sheets, ModeUpdate)
	require.NoError(t, err)

	empAfterFirst := *store.employees["759001"]
	var addressesAfterFirst []repository.AddressHistory
	for _, a := range store.addresses {
		addressesAfterFirst = append(addressesAfterFirst, *a)
	}
	var familyAfterFirst []repository.FamilyMember
	for _, f := range store.family {
		familyAfterFirst = append(familyAfterFirst, *f)
	}

	_, err = runImport(t, store, sheets, ModeUpdate)
	require.NoError(t, err)

	assert.Equal(t, empAfterFirst, *store.employees["759001"])

	require.Len(t, store.addresses, len(addressesAfterFirst))
	for i, a := range store.addresses {
		assert.Equal(t, addressesAfterFirst[i], *a)
	}
	require.Len(t, store.family, len(familyAfterFirst))
	for i, f := range store.family {
		assert.Equal(t, familyAfterFirst[i], *f)
	}
}

func TestImport_PermanentAddressSyncsQuickReference(t *testing.T) {
	store := newFakeStore()

	sheets := []sheetDef{
		{
			name: SheetEmployees,
			rows: [][]interface{}{
				employeeHeader,
				employeeRow("759001", "Asha", "Rao", "15-01-2024", "asha@example.com"),
			},
		},
		{
			name: SheetAddresses,
			rows: [][]interface{}{
				{"Employee ID", "Address Type", "City", "State", "Postal Code"},
				{"759001", "Current", "Mumbai", "Maharashtra", "400001"},
				{"759001", "permanent", "Pune", "Maharashtra", "411001"},
			},
		},
	}

	_, err := runImport(t, store, sheets, ModeCreate)
	require.NoError(t, err)

	assert.Len(t, store.addresses, 2)
	require.Len(t, store.quickAddresses, 1)
	assert.Equal(t, "Pune", *store.quickAddresses[0].City)

	emp := store.employees["759001"]
	assert.Equal(t, "Pune", *emp.City)
	assert.Equal(t, "411001", *emp.PostalCode)
}

func TestImport_FamilyAndAssetDefaults(t *testing.T) {
	store := newFakeStore()

	sheets := []sheetDef{
		{
			name: SheetEmployees,
			rows: [][]interface{}{
				employeeHeader,
				employeeRow("759001", "Asha", "Rao", "15-01-2024", "asha@example.com"),
			},
		},
		{
			name: SheetFamily,
			rows: [][]interface{}{
				{"Employee ID", "Relation Type", "Name", "Dependant (Yes/No)"},
				{"759001", "Spouse", "Ravi Rao", ""},
			},
		},
		{
			name: SheetAssets,
			rows: [][]interface{}{
				{"Employee ID", "Asset Type", "Asset Number", "Issued Date (DD-MM-YYYY)", "Status"},
				{"759001", "Laptop", "LT-1042", "20-01-2024", ""},
			},
		},
	}

	_, err := runImport(t, store, sheets, ModeCreate)
	require.NoError(t, err)

	require.Len(t, store.family, 1)
	assert.Equal(t, "No", store.family[0].Dependant)

	require.Len(t, store.assets, 1)
	assert.Equal(t, "Issued", store.assets[0].Status)
	require.NotNil(t, store.assets[0].IssuedDate)
}

func TestImport_EducationMonthYearJoin(t *testing.T) {
	store := newFakeStore()

	sheets := []sheetDef{
		{
			name: SheetEmployees,
			rows: [][]interface{}{
				employeeHeader,
				employeeRow("759001", "Asha", "Rao", "15-01-2024", "asha@example.com"),
			},
		},
		{
			name: SheetEducation,
			rows: [][]interface{}{
				{"Employee ID", "Type of Degree", "Completed Month (1-12)", "Completed Year"},
				{"759001", "B.Tech", "6", "2018"},
				{"759001", "M.Tech", "", "2020"},
				{"759001", "Diploma", "", ""},
			},
		},
	}

	_, err := runImport(t, store, sheets, ModeCreate)
	require.NoError(t, err)

	require.Len(t, store.education, 3)
	assert.Equal(t, "6-2018", *store.education[0].CompletedInMonthYear)
	assert.Equal(t, "2020", *store.education[1].CompletedInMonthYear)
	assert.Nil(t, store.education[2].CompletedInMonthYear)
}

func TestImport_ExperienceFirstRowSyncsMasterRefs(t *testing.T) {
	store := newFakeStore()

	sheets := []sheetDef{
		{
			name: SheetEmployees,
			rows: [][]interface{}{
				employeeHeader,
				employeeRow("759001", "Asha", "Rao", "15-01-2024", "asha@example.com"),
			},
		},
		{
			name: SheetExperience,
			rows: [][]interface{}{
				{"Employee ID", "Company Name", "Start Date (DD-MM-YYYY)", "End Date (DD-MM-YYYY)", "PF No", "Company Address", "Reference Details -1"},
				{"759001", "Acme Corp", "01-06-2019", "31-05-2022", "PF-001", "Acme Tower, Pune", "R. Kumar"},
				{"759001", "Globex", "01-06-2022", "31-12-2023", "PF-002", "Globex Park", "S. Iyer"},
			},
		},
	}

	_, err := runImport(t, store, sheets, ModeCreate)
	require.NoError(t, err)

	assert.Len(t, store.experience, 2)
	refs := store.experienceRefs["759001"]
	assert.Equal(t, "PF-001", *refs.PFNo)
	assert.Equal(t, "Acme Tower, Pune", *refs.CompanyAddress)
	assert.Equal(t, "R. Kumar", *refs.ReferenceDetails1)
}

func TestImport_EmergencyFirstContactWins(t *testing.T) {
	store := newFakeStore()

	sheets := []sheetDef{
		{
			name: SheetEmployees,
			rows: [][]interface{}{
				employeeHeader,
				employeeRow("759001", "Asha", "Rao", "15-01-2024", "asha@example.com"),
			},
		},
		{
			name: SheetEmergency,
			rows: [][]interface{}{
				{"Employee ID", "Contact Name", "Relation", "Contact Number"},
				{"759001", "Ravi Rao", "Spouse", "9000000001"},
				{"759001", "Meera Rao", "Mother", "9000000002"},
			},
		},
	}

	_, err := runImport(t, store, sheets, ModeCreate)
	require.NoError(t, err)

	contact := store.emergency["759001"]
	assert.Equal(t, "Ravi Rao", *contact.Name)
	assert.Equal(t, "9000000001", *contact.Number)
}

func TestImport_NomineeBroadcastsToWholeBatch(t *testing.T) {
	store := newFakeStore()
	seedEmployee(store, "759001", nil)
	seedEmployee(store, "759002", nil)

	sheets := []sheetDef{
		{
			name: SheetEmployees,
			rows: [][]interface{}{
				employeeHeader,
				employeeRow("759001", "Asha", "Rao", "15-01-2024", "asha@example.com"),
				employeeRow("759002", "Binu", "Nair", "15-01-2024", "binu@example.com"),
			},
		},
		{
			name: SheetNominees,
			rows: [][]interface{}{
				{"Nominee Name", "Address", "Relation", "Age", "Proportion"},
				{"Ravi Rao", "Pune", "Spouse", "42", "100"},
			},
		},
	}

	_, err := runImport(t, store, sheets, ModeUpdate)
	require.NoError(t, err)

	assert.Equal(t, []string{"759001", "759002"}, store.nomineeIDs)
	assert.Equal(t, "Ravi Rao", *store.nominee.Name)
	require.NotNil(t, store.nominee.Age)
	assert.Equal(t, 42, *store.nominee.Age)
}

func TestImport_OnboardingAutoCreatesClientOnce(t *testing.T) {
	store := newFakeStore()

	sheets := []sheetDef{
		{
			name: SheetEmployees,
			rows: [][]interface{}{
				employeeHeader,
				employeeRow("759001", "Asha", "Rao", "15-01-2024", "asha@example.com"),
				employeeRow("759002", "Binu", "Nair", "15-01-2024", "binu@example.com"),
			},
		},
		{
			name: SheetOnboarding,
			rows: [][]interface{}{
				{"Employee ID", "Client Name", "Effective Start Date (DD-MM-YYYY)", "Effective End Date (DD-MM-YYYY)", "Current Onboarding Status (Active/Withdrawn/On Bench)"},
				{"759001", "Initech Solutions", "01-02-2024", "10-02-2024", ""},
				{"759002", "INITECH solutions", "01-02-2024", "", "On Bench"},
			},
		},
	}

	result, err := runImport(t, store, sheets, ModeCreate)
	require.NoError(t, err)

	assert.Equal(t, 1, store.clientCreates)
	require.Len(t, result.NewClients, 1)
	assert.Equal(t, "Initech Solutions", result.NewClients[0].ClientName)
	require.Len(t, store.onboardings, 2)

	first := store.onboardings[0]
	assert.Equal(t, store.onboardings[1].ClientID, first.ClientID)
	assert.Equal(t, "Active", first.OnboardingStatus)
	assert.Equal(t, "Yes", first.IsCurrentAssignment)
	require.NotNil(t, first.DurationCalculated)
	assert.Equal(t, "10 days", *first.DurationCalculated)
	assert.Equal(t, "On Bench", store.onboardings[1].OnboardingStatus)
}

func TestImport_OnboardingPairsByPositionWithoutIDColumn(t *testing.T) {
	store := newFakeStore()

	sheets := []sheetDef{
		{
			name: SheetEmployees,
			rows: [][]interface{}{
				employeeHeader,
				employeeRow("759001", "Asha", "Rao", "15-01-2024", "asha@example.com"),
				employeeRow("759002", "Binu", "Nair", "15-01-2024", "binu@example.com"),
			},
		},
		{
			name: SheetOnboarding,
			rows: [][]interface{}{
				{"Client Name", "SPOC"},
				{"Initech Solutions", "P. Sharma"},
				{"Hooli India", "K. Das"},
			},
		},
	}

	_, err := runImport(t, store, sheets, ModeCreate)
	require.NoError(t, err)

	require.Len(t, store.onboardings, 2)
	assert.Equal(t, "759001", store.onboardings[0].EmployeeID)
	assert.Equal(t, "759002", store.onboardings[1].EmployeeID)
	assert.Equal(t, 2, store.clientCreates)
}

func TestImport_SectionFailureRollsBackEverything(t *testing.T) {
	store := newFakeStore()
	store.failInsertAsset = errors.Internal("asset insert failed")

	sheets := []sheetDef{
		{
			name: SheetEmployees,
			rows: [][]interface{}{
				employeeHeader,
				employeeRow("759001", "Asha", "Rao", "15-01-2024", "asha@example.com"),
			},
		},
		{
			name: SheetAddresses,
			rows: [][]interface{}{
				{"Employee ID", "Address Type", "City"},
				{"759001", "Permanent", "Pune"},
			},
		},
		{
			name: SheetAssets,
			rows: [][]interface{}{
				{"Employee ID", "Asset Type"},
				{"759001", "Laptop"},
			},
		},
	}

	_, err := runImport(t, store, sheets, ModeCreate)
	require.Error(t, err)

	assert.True(t, store.rolledBack)
	assert.False(t, store.committed)
	assert.Empty(t, store.employees)
	assert.Empty(t, store.addresses)
	assert.Empty(t, store.assets)
}

func TestImport_RowsWithoutEmployeeIDAreSkippedInSections(t *testing.T) {
	store := newFakeStore()

	sheets := []sheetDef{
		{
			name: SheetEmployees,
			rows: [][]interface{}{
				employeeHeader,
				employeeRow("759001", "Asha", "Rao", "15-01-2024", "asha@example.com"),
			},
		},
		{
			name: SheetFamily,
			rows: [][]interface{}{
				{"Employee ID", "Relation Type", "Name"},
				{"", "Spouse", "Unattached Row"},
				{"759001", "Father", "K. Rao"},
			},
		},
	}

	_, err := runImport(t, store, sheets, ModeCreate)
	require.NoError(t, err)

	require.Len(t, store.family, 1)
	assert.Equal(t, "K. Rao", *store.family[0].Name)
}
