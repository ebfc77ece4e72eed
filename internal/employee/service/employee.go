package service

import (
	"context"
	"io"

	"github.com/peoplecore/hrms-backend/internal/employee/bulkimport"
	"github.com/peoplecore/hrms-backend/internal/employee/repository"
	"github.com/peoplecore/hrms-backend/internal/employee/workbook"
	"github.com/peoplecore/hrms-backend/pkg/actor"
	"github.com/peoplecore/hrms-backend/pkg/errors"
	"github.com/peoplecore/hrms-backend/pkg/logger"
)

// EventPublisher publishes employee lifecycle events. Satisfied by
// events.EmployeeEventPublisher.
type EventPublisher interface {
	PublishEmployeeCreated(ctx context.Context, emp *repository.EmployeeMaster, createdBy string)
	PublishEmployeeUpdated(ctx context.Context, emp *repository.EmployeeMaster, updatedBy string)
	PublishEmployeeRetired(ctx context.Context, employeeID, retiredBy string)
	PublishBulkImported(ctx context.Context, result *bulkimport.Result, importedBy string)
	PublishClientCreated(ctx context.Context, client *repository.ClientMaster)
}

// EmployeeService handles employee business logic
type EmployeeService struct {
	employees   *repository.EmployeeRepository
	addresses   *repository.AddressRepository
	family      *repository.FamilyRepository
	education   *repository.EducationRepository
	experience  *repository.ExperienceRepository
	assets      *repository.AssetRepository
	onboardings *repository.OnboardingRepository
	clients     *repository.ClientRepository
	importer    *bulkimport.Importer
	publisher   EventPublisher
	logger      *logger.Logger
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(
	store *repository.BulkStore,
	importer *bulkimport.Importer,
	publisher EventPublisher,
	log *logger.Logger,
) *EmployeeService {
	return &EmployeeService{
		employees:   store.Employees,
		addresses:   store.Addresses,
		family:      store.Family,
		education:   store.Education,
		experience:  store.Experience,
		assets:      store.Assets,
		onboardings: store.Onboardings,
		clients:     store.Clients,
		importer:    importer,
		publisher:   publisher,
		logger:      log,
	}
}

// EmployeeDetail is a master record with its child sections attached
type EmployeeDetail struct {
	*repository.EmployeeMaster
	Addresses   []*repository.AddressHistory    `json:"addresses"`
	Family      []*repository.FamilyMember      `json:"family_members"`
	Education   []*repository.EducationHistory  `json:"education"`
	Experience  []*repository.ExperienceHistory `json:"experience"`
	Onboardings []*repository.OnboardingHistory `json:"onboardings"`
	Assets      []*repository.AssetHistory      `json:"assets"`
}

// Create creates a single employee. When the employee id is empty one
// is allocated from the reserved series. Identity fields are checked
// against the store before the insert so the caller gets a message
// naming the field rather than a constraint error.
func (s *EmployeeService) Create(ctx context.Context, emp *repository.EmployeeMaster) error {
	if emp.EmployeeID == "" {
		id, err := s.employees.NextEmployeeID(ctx)
		if err != nil {
			return err
		}
		emp.EmployeeID = id
	} else {
		exists, err := s.employees.Exists(ctx, emp.EmployeeID)
		if err != nil {
			return err
		}
		if exists {
			return errors.Conflict("Employee ID already exists")
		}
	}

	if emp.OfficialEmailID != nil && *emp.OfficialEmailID != "" {
		inUse, err := s.employees.EmailInUse(ctx, *emp.OfficialEmailID)
		if err != nil {
			return err
		}
		if inUse {
			return errors.Conflict("Official Email already exists")
		}
	}
	if emp.PANCardNo != nil && *emp.PANCardNo != "" {
		inUse, err := s.employees.PANInUse(ctx, *emp.PANCardNo)
		if err != nil {
			return err
		}
		if inUse {
			return errors.Conflict("PAN already exists")
		}
	}
	if emp.AadharNo != nil && *emp.AadharNo != "" {
		inUse, err := s.employees.AadharInUse(ctx, *emp.AadharNo)
		if err != nil {
			return err
		}
		if inUse {
			return errors.Conflict("Aadhar already exists")
		}
	}

	if emp.FullName == nil && emp.FirstName != "" && emp.LastName != "" {
		fullName := emp.FirstName + " " + emp.LastName
		emp.FullName = &fullName
	}
	if emp.EmploymentStatus == nil {
		active := "Active"
		emp.EmploymentStatus = &active
	}

	stamp := actor.Stamp(ctx)
	emp.CreatedBy = &stamp
	emp.UpdatedBy = &stamp

	if err := s.employees.Create(ctx, emp); err != nil {
		return err
	}

	s.publisher.PublishEmployeeCreated(ctx, emp, stamp)
	return nil
}

// GetByID gets an employee master record by id
func (s *EmployeeService) GetByID(ctx context.Context, employeeID string) (*repository.EmployeeMaster, error) {
	return s.employees.GetByID(ctx, employeeID)
}

// GetDetail gets an employee with all child sections attached
func (s *EmployeeService) GetDetail(ctx context.Context, employeeID string) (*EmployeeDetail, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	detail := &EmployeeDetail{EmployeeMaster: emp}

	if detail.Addresses, err = s.addresses.ListForEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	if detail.Family, err = s.family.ListForEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	if detail.Education, err = s.education.ListForEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	if detail.Experience, err = s.experience.ListForEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	if detail.Onboardings, err = s.onboardings.ListForEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	if detail.Assets, err = s.assets.ListForEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	return detail, nil
}

// List lists employee master records with pagination
func (s *EmployeeService) List(ctx context.Context, page, perPage int) ([]*repository.EmployeeMaster, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	return s.employees.List(ctx, page, perPage)
}

// Update rewrites an employee master record
func (s *EmployeeService) Update(ctx context.Context, emp *repository.EmployeeMaster) error {
	stamp := actor.Stamp(ctx)
	emp.UpdatedBy = &stamp

	if err := s.employees.Update(ctx, emp); err != nil {
		return err
	}

	s.publisher.PublishEmployeeUpdated(ctx, emp, stamp)
	return nil
}

// Retire marks an employee inactive with today's termination date
func (s *EmployeeService) Retire(ctx context.Context, employeeID string) error {
	stamp := actor.Stamp(ctx)

	if err := s.employees.Retire(ctx, employeeID, stamp); err != nil {
		return err
	}

	s.publisher.PublishEmployeeRetired(ctx, employeeID, stamp)
	return nil
}

// BulkImport parses the uploaded workbook and runs the import engine.
// Events are published only after the batch commits.
func (s *EmployeeService) BulkImport(ctx context.Context, file io.Reader, mode bulkimport.Mode) (*bulkimport.Result, error) {
	wb, err := workbook.Open(file)
	if err != nil {
		return nil, errors.BadRequest(err.Error())
	}

	result, err := s.importer.Import(ctx, wb, mode)
	if err != nil {
		return nil, err
	}

	stamp := actor.Stamp(ctx)
	s.publisher.PublishBulkImported(ctx, result, stamp)
	for _, client := range result.NewClients {
		s.publisher.PublishClientCreated(ctx, client)
	}

	return result, nil
}

// ListClients lists all client companies
func (s *EmployeeService) ListClients(ctx context.Context) ([]*repository.ClientMaster, error) {
	return s.clients.List(ctx)
}
