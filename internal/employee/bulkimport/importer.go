package bulkimport

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/peoplecore/hrms-backend/internal/employee/repository"
	"github.com/peoplecore/hrms-backend/internal/employee/workbook"
	"github.com/peoplecore/hrms-backend/pkg/actor"
	"github.com/peoplecore/hrms-backend/pkg/errors"
	"github.com/peoplecore/hrms-backend/pkg/logger"
)

// Template sheet names. Only the master sheet is mandatory.
const (
	SheetEmployees  = "Employee Details"
	SheetAddresses  = "Address Details"
	SheetFamily     = "Family Members"
	SheetEducation  = "Education Details"
	SheetExperience = "Experience Details"
	SheetEmergency  = "Emergency Contacts"
	SheetNominees   = "Nominee Details"
	SheetOnboarding = "Onboarding Details"
	SheetAssets     = "Asset Details"
)

// DefaultMaxRows caps the master sheet of a single upload
const DefaultMaxRows = 5000

// Importer turns a parsed workbook into committed employee records.
// The whole batch runs in one transaction: validation failures and
// section errors roll back everything, including the master rows.
type Importer struct {
	store   Store
	logger  *logger.Logger
	maxRows int
}

// NewImporter creates an importer over the given store
func NewImporter(store Store, log *logger.Logger) *Importer {
	return &Importer{
		store:   store,
		logger:  log.WithComponent("bulk_importer"),
		maxRows: DefaultMaxRows,
	}
}

// SetMaxRows overrides the master-sheet row cap. Non-positive values
// are ignored.
func (imp *Importer) SetMaxRows(n int) {
	if n > 0 {
		imp.maxRows = n
	}
}

// Import processes the workbook in the given mode. On validation
// failure it returns a *ValidationError listing every bad row and
// persists nothing.
func (imp *Importer) Import(ctx context.Context, wb *workbook.Workbook, mode Mode) (*Result, error) {
	master := wb.Sheet(SheetEmployees)
	if master == nil {
		return nil, errors.BadRequest("missing 'Employee Details' sheet")
	}
	if master.Len() == 0 {
		return nil, errors.BadRequest("'Employee Details' sheet has no data rows")
	}
	if master.Len() > imp.maxRows {
		return nil, errors.BadRequest(fmt.Sprintf("too many rows: %d exceeds the %d row limit", master.Len(), imp.maxRows))
	}

	stamp := actor.Stamp(ctx)

	var result *Result
	err := imp.store.InTx(ctx, func(ctx context.Context) error {
		rows := make([]masterRow, 0, master.Len())
		for _, r := range master.Rows() {
			rows = append(rows, parseMasterRow(r))
		}

		touched, err := imp.applyMaster(ctx, rows, mode, stamp)
		if err != nil {
			return err
		}

		if err := imp.applyAddresses(ctx, wb.Sheet(SheetAddresses), mode, stamp); err != nil {
			return err
		}
		if err := imp.applyFamily(ctx, wb.Sheet(SheetFamily), mode, stamp); err != nil {
			return err
		}
		if err := imp.applyEducation(ctx, wb.Sheet(SheetEducation), mode, stamp); err != nil {
			return err
		}
		if err := imp.applyExperience(ctx, wb.Sheet(SheetExperience), mode, stamp); err != nil {
			return err
		}
		if err := imp.applyEmergencyContacts(ctx, wb.Sheet(SheetEmergency)); err != nil {
			return err
		}
		if err := imp.applyNominees(ctx, wb.Sheet(SheetNominees), touched); err != nil {
			return err
		}
		newClients, err := imp.applyOnboarding(ctx, wb.Sheet(SheetOnboarding), mode, touched, stamp)
		if err != nil {
			return err
		}
		if err := imp.applyAssets(ctx, wb.Sheet(SheetAssets), mode, stamp); err != nil {
			return err
		}

		verb := "Created"
		if mode == ModeUpdate {
			verb = "Updated"
		}
		result = &Result{
			Message:     fmt.Sprintf("%s %d employees with related details", verb, len(touched)),
			Operation:   mode,
			EmployeeIDs: touched,
			NewClients:  newClients,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	imp.logger.Info().
		Str("mode", string(mode)).
		Int("employees", len(result.EmployeeIDs)).
		Msg("bulk import committed")

	return result, nil
}

// applyMaster validates every master row, then creates or merges the
// records. Returns the employee ids touched by the batch, in sheet
// order.
func (imp *Importer) applyMaster(ctx context.Context, rows []masterRow, mode Mode, stamp string) ([]string, error) {
	v := newValidator(imp.store, mode)

	var rowErrors []RowError
	for _, m := range rows {
		errs, err := v.check(ctx, m)
		if err != nil {
			return nil, err
		}
		if len(errs) > 0 {
			rowErrors = append(rowErrors, RowError{
				Row:        m.num,
				EmployeeID: m.employeeID,
				Errors:     errs,
			})
		}
	}
	if len(rowErrors) > 0 {
		return nil, &ValidationError{Rows: rowErrors}
	}

	touched := make([]string, 0, len(rows))
	for _, m := range rows {
		switch mode {
		case ModeCreate:
			if err := imp.store.CreateEmployee(ctx, m.newRecord(stamp)); err != nil {
				return nil, err
			}
		case ModeUpdate:
			emp, err := imp.store.GetEmployee(ctx, m.employeeID)
			if err != nil {
				return nil, err
			}
			m.mergeInto(emp, stamp)
			if err := imp.store.UpdateEmployee(ctx, emp); err != nil {
				return nil, err
			}
		}
		touched = append(touched, m.employeeID)
	}
	return touched, nil
}

// sheetEmployeeIDs collects the distinct employee ids present in a
// section sheet, for the update-mode replace of that section.
func sheetEmployeeIDs(sheet *workbook.Sheet) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, r := range sheet.Rows() {
		id := r.String("employee id")
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func (imp *Importer) applyAddresses(ctx context.Context, sheet *workbook.Sheet, mode Mode, stamp string) error {
	if sheet.Len() == 0 {
		return nil
	}
	if mode == ModeUpdate {
		if err := imp.store.DeleteAddressesFor(ctx, sheetEmployeeIDs(sheet)); err != nil {
			return err
		}
	}
	for _, r := range sheet.Rows() {
		empID := r.String("employee id")
		if empID == "" {
			continue
		}
		addr := &repository.AddressHistory{
			EmployeeID:      empID,
			AddressType:     strPtr(r.String("address type")),
			HNo:             strPtr(r.String("h.no")),
			Street:          strPtr(r.String("street")),
			Street2:         strPtr(r.String("street2")),
			Landmark:        strPtr(r.String("landmark")),
			City:            strPtr(r.String("city")),
			State:           strPtr(r.String("state")),
			PostalCode:      strPtr(r.String("postal code")),
			CompleteAddress: strPtr(r.String("complete address (auto-generated)", "complete address")),
			CreatedBy:       &stamp,
			UpdatedBy:       &stamp,
		}
		if err := imp.store.InsertAddress(ctx, addr); err != nil {
			return err
		}
		// The Permanent row doubles as the master quick-reference address
		if addr.AddressType != nil && strings.EqualFold(strings.TrimSpace(*addr.AddressType), "permanent") {
			if err := imp.store.SyncQuickAddress(ctx, addr); err != nil {
				return err
			}
		}
	}
	return nil
}

func (imp *Importer) applyFamily(ctx context.Context, sheet *workbook.Sheet, mode Mode, stamp string) error {
	if sheet.Len() == 0 {
		return nil
	}
	if mode == ModeUpdate {
		if err := imp.store.DeleteFamilyFor(ctx, sheetEmployeeIDs(sheet)); err != nil {
			return err
		}
	}
	for _, r := range sheet.Rows() {
		empID := r.String("employee id")
		if empID == "" {
			continue
		}
		member := &repository.FamilyMember{
			EmployeeID:   empID,
			RelationType: strPtr(r.String("relation type")),
			Name:         strPtr(r.String("name")),
			DOB:          r.Date("dob (dd-mm-yyyy)"),
			AadharNumber: strPtr(r.String("aadhar number")),
			Dependant:    orDefault(r.String("dependant (yes/no)"), "No"),
			CreatedBy:    &stamp,
			UpdatedBy:    &stamp,
		}
		if err := imp.store.InsertFamilyMember(ctx, member); err != nil {
			return err
		}
	}
	return nil
}

func (imp *Importer) applyEducation(ctx context.Context, sheet *workbook.Sheet, mode Mode, stamp string) error {
	if sheet.Len() == 0 {
		return nil
	}
	if mode == ModeUpdate {
		if err := imp.store.DeleteEducationFor(ctx, sheetEmployeeIDs(sheet)); err != nil {
			return err
		}
	}
	for _, r := range sheet.Rows() {
		empID := r.String("employee id")
		if empID == "" {
			continue
		}
		edu := &repository.EducationHistory{
			EmployeeID:           empID,
			TypeOfDegree:         strPtr(r.String("type of degree")),
			CourseName:           strPtr(r.String("course name")),
			SchoolCollegeName:    strPtr(r.String("school/college name")),
			AffiliatedUniversity: strPtr(r.String("affiliated from university")),
			CompletedInMonthYear: completedMonthYear(r.String("completed month (1-12)"), r.String("completed year")),
			PercentageCGPA:       strPtr(r.String("percentage/cgpa", "percentage / cgpa")),
			CreatedBy:            &stamp,
			UpdatedBy:            &stamp,
		}
		if err := imp.store.InsertEducation(ctx, edu); err != nil {
			return err
		}
	}
	return nil
}

// completedMonthYear joins the month and year cells, dropping the
// separator when only one is present
func completedMonthYear(month, year string) *string {
	switch {
	case month != "" && year != "":
		return strPtr(month + "-" + year)
	case month != "":
		return strPtr(month)
	case year != "":
		return strPtr(year)
	default:
		return nil
	}
}

func (imp *Importer) applyExperience(ctx context.Context, sheet *workbook.Sheet, mode Mode, stamp string) error {
	if sheet.Len() == 0 {
		return nil
	}
	if mode == ModeUpdate {
		if err := imp.store.DeleteExperienceFor(ctx, sheetEmployeeIDs(sheet)); err != nil {
			return err
		}
	}
	// The first experience row per employee also carries the PF number
	// and references that live on the master record.
	refsSynced := make(map[string]struct{})
	for _, r := range sheet.Rows() {
		empID := r.String("employee id")
		if empID == "" {
			continue
		}
		exp := &repository.ExperienceHistory{
			EmployeeID:    empID,
			CompanyName:   strPtr(r.String("company name")),
			Designation:   strPtr(r.String("designation")),
			Department:    strPtr(r.String("department")),
			OfficeEmailID: strPtr(r.String("office email id")),
			UANNo:         strPtr(r.String("uan no")),
			StartDate:     r.Date("start date (dd-mm-yyyy)"),
			EndDate:       r.Date("end date (dd-mm-yyyy)"),
			CreatedBy:     &stamp,
			UpdatedBy:     &stamp,
		}
		if err := imp.store.InsertExperience(ctx, exp); err != nil {
			return err
		}
		if _, done := refsSynced[empID]; !done {
			refsSynced[empID] = struct{}{}
			refs := repository.ExperienceRefs{
				PFNo:              strPtr(r.String("pf no")),
				CompanyAddress:    strPtr(r.String("company address")),
				ReferenceDetails1: strPtr(r.String("reference details -1")),
				ReferenceDetails2: strPtr(r.String("reference details -2")),
			}
			if err := imp.store.SyncExperienceRefs(ctx, empID, refs); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyEmergencyContacts writes the first contact per employee onto
// the master quick-reference fields. There is no child table for these.
func (imp *Importer) applyEmergencyContacts(ctx context.Context, sheet *workbook.Sheet) error {
	if sheet.Len() == 0 {
		return nil
	}
	seen := make(map[string]struct{})
	for _, r := range sheet.Rows() {
		empID := r.String("employee id")
		if empID == "" {
			continue
		}
		if _, dup := seen[empID]; dup {
			continue
		}
		seen[empID] = struct{}{}
		contact := repository.EmergencyContact{
			Name:     strPtr(r.String("contact name")),
			Relation: strPtr(r.String("relation")),
			Number:   strPtr(r.String("contact number")),
		}
		if err := imp.store.SyncEmergencyContact(ctx, empID, contact); err != nil {
			return err
		}
	}
	return nil
}

// applyNominees broadcasts the first nominee row onto every employee
// touched by this batch. The template carries a single nominee row.
func (imp *Importer) applyNominees(ctx context.Context, sheet *workbook.Sheet, touched []string) error {
	if sheet.Len() == 0 || len(touched) == 0 {
		return nil
	}
	r := sheet.Rows()[0]
	n := repository.Nominee{
		Name:       strPtr(r.String("nominee name")),
		Address:    strPtr(r.String("address")),
		Relation:   strPtr(r.String("relation")),
		Age:        r.Int("age"),
		Proportion: r.Decimal("proportion"),
	}
	return imp.store.SyncNominee(ctx, touched, n)
}

func (imp *Importer) applyOnboarding(ctx context.Context, sheet *workbook.Sheet, mode Mode, touched []string, stamp string) ([]*repository.ClientMaster, error) {
	if sheet.Len() == 0 {
		return nil, nil
	}
	hasEmpColumn := sheet.HasColumn("employee id")
	if mode == ModeUpdate && hasEmpColumn {
		if err := imp.store.DeleteOnboardingFor(ctx, sheetEmployeeIDs(sheet)); err != nil {
			return nil, err
		}
	}

	// Client lookups are memoized per batch so a name created for an
	// earlier row resolves for later ones inside the same transaction.
	clientIDs := make(map[string]int)
	var newClients []*repository.ClientMaster

	for i, r := range sheet.Rows() {
		var empID string
		if hasEmpColumn {
			empID = r.String("employee id")
		} else if i < len(touched) {
			// Legacy template: pair rows with master rows by position
			empID = touched[i]
		}
		if empID == "" {
			continue
		}

		clientName := r.String("client name")
		if clientName == "" {
			continue
		}
		clientID, created, err := imp.resolveClient(ctx, clientIDs, clientName)
		if err != nil {
			return nil, err
		}
		if created != nil {
			newClients = append(newClients, created)
		}

		start := r.Date("effective start date (dd-mm-yyyy)")
		end := r.Date("effective end date (dd-mm-yyyy)")

		duration := strPtr(r.String("duration (auto-calculated)"))
		if duration == nil {
			duration = assignmentDuration(start, end)
		}

		ob := &repository.OnboardingHistory{
			EmployeeID:           empID,
			ClientID:             clientID,
			EffectiveStartDate:   start,
			EffectiveEndDate:     end,
			OnboardingStatus:     orDefault(r.String("current onboarding status (active/withdrawn/on bench)", "onboarding status"), "Active"),
			DurationCalculated:   duration,
			SPOC:                 strPtr(r.String("spoc")),
			OnboardingDepartment: strPtr(r.String("department")),
			AssignedManager:      strPtr(r.String("manager")),
			ProjectName:          strPtr(r.String("project name")),
			RoleInProject:        strPtr(r.String("role in project")),
			BillingRate:          r.Decimal("billing rate"),
			Currency:             strPtr(r.String("currency")),
			WorkLocation:         strPtr(r.String("work location")),
			ReportingManager:     strPtr(r.String("reporting manager")),
			IsCurrentAssignment:  "Yes",
			CreatedBy:            &stamp,
			UpdatedBy:            &stamp,
		}
		if err := imp.store.InsertOnboarding(ctx, ob); err != nil {
			return nil, err
		}
	}
	return newClients, nil
}

// resolveClient finds a client by name or creates it on first use.
// The second return value is non-nil when the client was auto-created.
func (imp *Importer) resolveClient(ctx context.Context, cache map[string]int, name string) (int, *repository.ClientMaster, error) {
	key := strings.ToLower(name)
	if id, ok := cache[key]; ok {
		return id, nil, nil
	}

	client, err := imp.store.FindClientByName(ctx, name)
	var created *repository.ClientMaster
	if errors.Is(err, errors.ErrNotFound) {
		imp.logger.Info().Str("client_name", name).Msg("auto-creating client from bulk import")
		client, err = imp.store.CreateClient(ctx, name)
		created = client
	}
	if err != nil {
		return 0, nil, err
	}

	cache[key] = client.ClientID
	return client.ClientID, created, nil
}

// assignmentDuration renders the inclusive day count of an assignment
func assignmentDuration(start, end *time.Time) *string {
	if start == nil || end == nil || end.Before(*start) {
		return nil
	}
	days := int(end.Sub(*start).Hours()/24) + 1
	return strPtr(fmt.Sprintf("%d days", days))
}

func (imp *Importer) applyAssets(ctx context.Context, sheet *workbook.Sheet, mode Mode, stamp string) error {
	if sheet.Len() == 0 {
		return nil
	}
	if mode == ModeUpdate {
		if err := imp.store.DeleteAssetsFor(ctx, sheetEmployeeIDs(sheet)); err != nil {
			return err
		}
	}
	for _, r := range sheet.Rows() {
		empID := r.String("employee id")
		if empID == "" {
			continue
		}
		asset := &repository.AssetHistory{
			EmployeeID:  empID,
			AssetType:   strPtr(r.String("asset type")),
			AssetNumber: strPtr(r.String("asset number")),
			IssuedDate:  r.Date("issued date (dd-mm-yyyy)"),
			ReturnDate:  r.Date("return date (dd-mm-yyyy)"),
			Status:      orDefault(r.String("status"), "Issued"),
			CreatedBy:   &stamp,
			UpdatedBy:   &stamp,
		}
		if err := imp.store.InsertAsset(ctx, asset); err != nil {
			return err
		}
	}
	return nil
}
