package bulkimport

import (
	"context"

	"github.com/peoplecore/hrms-backend/internal/employee/repository"
)

// Store is the persistence surface the import engine drives. It is
// implemented by repository.BulkStore; tests substitute an in-memory
// fake. All calls made inside InTx share one transaction, so a batch
// commits or rolls back as a whole.
type Store interface {
	InTx(ctx context.Context, fn func(context.Context) error) error

	// Master record
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	EmailInUse(ctx context.Context, email string) (bool, error)
	ContactInUse(ctx context.Context, number string) (bool, error)
	PANInUse(ctx context.Context, pan string) (bool, error)
	AadharInUse(ctx context.Context, aadhar string) (bool, error)
	CreateEmployee(ctx context.Context, emp *repository.EmployeeMaster) error
	GetEmployee(ctx context.Context, employeeID string) (*repository.EmployeeMaster, error)
	UpdateEmployee(ctx context.Context, emp *repository.EmployeeMaster) error

	// Address section
	DeleteAddressesFor(ctx context.Context, employeeIDs []string) error
	InsertAddress(ctx context.Context, a *repository.AddressHistory) error
	SyncQuickAddress(ctx context.Context, a *repository.AddressHistory) error

	// Family section
	DeleteFamilyFor(ctx context.Context, employeeIDs []string) error
	InsertFamilyMember(ctx context.Context, f *repository.FamilyMember) error

	// Education section
	DeleteEducationFor(ctx context.Context, employeeIDs []string) error
	InsertEducation(ctx context.Context, e *repository.EducationHistory) error

	// Experience section
	DeleteExperienceFor(ctx context.Context, employeeIDs []string) error
	InsertExperience(ctx context.Context, e *repository.ExperienceHistory) error
	SyncExperienceRefs(ctx context.Context, employeeID string, refs repository.ExperienceRefs) error

	// Quick-reference projections
	SyncEmergencyContact(ctx context.Context, employeeID string, c repository.EmergencyContact) error
	SyncNominee(ctx context.Context, employeeIDs []string, n repository.Nominee) error

	// Onboarding section
	DeleteOnboardingFor(ctx context.Context, employeeIDs []string) error
	InsertOnboarding(ctx context.Context, o *repository.OnboardingHistory) error
	FindClientByName(ctx context.Context, name string) (*repository.ClientMaster, error)
	CreateClient(ctx context.Context, name string) (*repository.ClientMaster, error)

	// Asset section
	DeleteAssetsFor(ctx context.Context, employeeIDs []string) error
	InsertAsset(ctx context.Context, a *repository.AssetHistory) error
}
