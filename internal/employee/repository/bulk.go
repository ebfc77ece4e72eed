package repository

import (
	"context"

	"github.com/peoplecore/hrms-backend/pkg/database"
	"github.com/peoplecore/hrms-backend/pkg/tenant"
)

// BulkStore bundles the repositories the bulk import engine writes
// through. InTx opens one tenant-scoped transaction; every repository
// call made inside the callback joins it, so a whole workbook commits
// or rolls back as a unit.
type BulkStore struct {
	db          *database.DB
	Employees   *EmployeeRepository
	Addresses   *AddressRepository
	Family      *FamilyRepository
	Education   *EducationRepository
	Experience  *ExperienceRepository
	Assets      *AssetRepository
	Onboardings *OnboardingRepository
	Clients     *ClientRepository
}

// NewBulkStore creates a bulk store over one database handle
func NewBulkStore(db *database.DB) *BulkStore {
	return &BulkStore{
		db:          db,
		Employees:   NewEmployeeRepository(db),
		Addresses:   NewAddressRepository(db),
		Family:      NewFamilyRepository(db),
		Education:   NewEducationRepository(db),
		Experience:  NewExperienceRepository(db),
		Assets:      NewAssetRepository(db),
		Onboardings: NewOnboardingRepository(db),
		Clients:     NewClientRepository(db),
	}
}

// InTx runs fn inside a single tenant-scoped transaction
func (s *BulkStore) InTx(ctx context.Context, fn func(context.Context) error) error {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}
	return s.db.WithTenantSchema(ctx, tenantSchema, fn)
}

// Master record

func (s *BulkStore) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	return s.Employees.Exists(ctx, employeeID)
}

func (s *BulkStore) EmailInUse(ctx context.Context, email string) (bool, error) {
	return s.Employees.EmailInUse(ctx, email)
}

func (s *BulkStore) ContactInUse(ctx context.Context, number string) (bool, error) {
	return s.Employees.ContactInUse(ctx, number)
}

func (s *BulkStore) PANInUse(ctx context.Context, pan string) (bool, error) {
	return s.Employees.PANInUse(ctx, pan)
}

func (s *BulkStore) AadharInUse(ctx context.Context, aadhar string) (bool, error) {
	return s.Employees.AadharInUse(ctx, aadhar)
}

func (s *BulkStore) CreateEmployee(ctx context.Context, emp *EmployeeMaster) error {
	return s.Employees.Create(ctx, emp)
}

func (s *BulkStore) GetEmployee(ctx context.Context, employeeID string) (*EmployeeMaster, error) {
	return s.Employees.GetByID(ctx, employeeID)
}

func (s *BulkStore) UpdateEmployee(ctx context.Context, emp *EmployeeMaster) error {
	return s.Employees.Update(ctx, emp)
}

// Address section

func (s *BulkStore) DeleteAddressesFor(ctx context.Context, employeeIDs []string) error {
	return s.Addresses.DeleteForEmployees(ctx, employeeIDs)
}

func (s *BulkStore) InsertAddress(ctx context.Context, a *AddressHistory) error {
	return s.Addresses.Insert(ctx, a)
}

func (s *BulkStore) SyncQuickAddress(ctx context.Context, a *AddressHistory) error {
	return s.Addresses.SyncQuickReference(ctx, a)
}

// Family section

func (s *BulkStore) DeleteFamilyFor(ctx context.Context, employeeIDs []string) error {
	return s.Family.DeleteForEmployees(ctx, employeeIDs)
}

func (s *BulkStore) InsertFamilyMember(ctx context.Context, f *FamilyMember) error {
	return s.Family.Insert(ctx, f)
}

// Education section

func (s *BulkStore) DeleteEducationFor(ctx context.Context, employeeIDs []string) error {
	return s.Education.DeleteForEmployees(ctx, employeeIDs)
}

func (s *BulkStore) InsertEducation(ctx context.Context, e *EducationHistory) error {
	return s.Education.Insert(ctx, e)
}

// Experience section

func (s *BulkStore) DeleteExperienceFor(ctx context.Context, employeeIDs []string) error {
	return s.Experience.DeleteForEmployees(ctx, employeeIDs)
}

func (s *BulkStore) InsertExperience(ctx context.Context, e *ExperienceHistory) error {
	return s.Experience.Insert(ctx, e)
}

func (s *BulkStore) SyncExperienceRefs(ctx context.Context, employeeID string, refs ExperienceRefs) error {
	return s.Experience.SyncMasterRefs(ctx, employeeID, refs)
}

// Emergency contact and nominee quick references

func (s *BulkStore) SyncEmergencyContact(ctx context.Context, employeeID string, c EmergencyContact) error {
	return s.Employees.SyncEmergencyContact(ctx, employeeID, c)
}

func (s *BulkStore) SyncNominee(ctx context.Context, employeeIDs []string, n Nominee) error {
	return s.Employees.SyncNominee(ctx, employeeIDs, n)
}

// Onboarding section

func (s *BulkStore) DeleteOnboardingFor(ctx context.Context, employeeIDs []string) error {
	return s.Onboardings.DeleteForEmployees(ctx, employeeIDs)
}

func (s *BulkStore) InsertOnboarding(ctx context.Context, o *OnboardingHistory) error {
	return s.Onboardings.Insert(ctx, o)
}

func (s *BulkStore) FindClientByName(ctx context.Context, name string) (*ClientMaster, error) {
	return s.Clients.FindByName(ctx, name)
}

func (s *BulkStore) CreateClient(ctx context.Context, name string) (*ClientMaster, error) {
	return s.Clients.Create(ctx, name)
}

// Asset section

func (s *BulkStore) DeleteAssetsFor(ctx context.Context, employeeIDs []string) error {
	return s.Assets.DeleteForEmployees(ctx, employeeIDs)
}

func (s *BulkStore) InsertAsset(ctx context.Context, a *AssetHistory) error {
	return s.Assets.Insert(ctx, a)
}
