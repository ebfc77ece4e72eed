package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeMaster is the root employee record. The primary key is the
// externally assigned employee id (or one generated from the reserved
// series), not a surrogate UUID, because payroll and client systems
// reference employees by this id.
//
// The quick-reference groups (address, emergency contact, nominee,
// previous-employer details) denormalize data whose history lives in
// the child tables, so the master report endpoint needs no joins.
type EmployeeMaster struct {
	EmployeeID string `db:"employee_id" json:"employee_id"`

	// Personal
	Title         *string    `db:"title" json:"title,omitempty"`
	FirstName     string     `db:"first_name" json:"first_name" validate:"required"`
	LastName      string     `db:"last_name" json:"last_name" validate:"required"`
	FullName      *string    `db:"full_name" json:"full_name,omitempty"`
	Gender        *string    `db:"gender" json:"gender,omitempty"`
	DOB           *time.Time `db:"dob" json:"dob,omitempty"`
	MaritalStatus *string    `db:"marital_status" json:"marital_status,omitempty"`
	DOA           *time.Time `db:"doa" json:"doa,omitempty"`
	Religion      *string    `db:"religion" json:"religion,omitempty"`
	BloodGroup    *string    `db:"blood_group" json:"blood_group,omitempty"`
	MobileNo      *string    `db:"mobile_no" json:"mobile_no,omitempty"`

	// Employment
	DOJ                 *time.Time `db:"doj" json:"doj,omitempty"`
	Designation         *string    `db:"designation" json:"designation,omitempty"`
	Department          *string    `db:"department" json:"department,omitempty"`
	ManagerName         *string    `db:"manager_name" json:"manager_name,omitempty"`
	OfficialNo          *string    `db:"official_no" json:"official_no,omitempty"`
	OfficialEmailID     *string    `db:"official_email_id" json:"official_email_id,omitempty" validate:"omitempty,email"`
	Category            *string    `db:"category" json:"category,omitempty"`
	ExcludedFromPayroll *string    `db:"excluded_from_payroll" json:"excluded_from_payroll,omitempty"`

	// Quick-reference address (mirrors the Permanent row in address_history)
	AddressType     *string `db:"address_type" json:"address_type,omitempty"`
	HNo             *string `db:"h_no" json:"h_no,omitempty"`
	Street          *string `db:"street" json:"street,omitempty"`
	Street2         *string `db:"street2" json:"street2,omitempty"`
	Landmark        *string `db:"landmark" json:"landmark,omitempty"`
	City            *string `db:"city" json:"city,omitempty"`
	State           *string `db:"state" json:"state,omitempty"`
	PostalCode      *string `db:"postal_code" json:"postal_code,omitempty"`
	CompleteAddress *string `db:"complete_address" json:"complete_address,omitempty"`

	// Bank
	BankName      *string `db:"bank_name" json:"bank_name,omitempty"`
	AccountNo     *string `db:"account_no" json:"account_no,omitempty"`
	IFSCCode      *string `db:"ifsc_code" json:"ifsc_code,omitempty"`
	TypeOfAccount *string `db:"type_of_account" json:"type_of_account,omitempty"`
	Branch        *string `db:"branch" json:"branch,omitempty"`

	// Government IDs and personal communication
	PANCardNo       *string    `db:"pan_card_no" json:"pan_card_no,omitempty"`
	AadharNo        *string    `db:"aadhar_no" json:"aadhar_no,omitempty"`
	NameAsPerAadhar *string    `db:"name_as_per_aadhar" json:"name_as_per_aadhar,omitempty"`
	PassportNo      *string    `db:"passport_no" json:"passport_no,omitempty"`
	IssuedDate      *time.Time `db:"issued_date" json:"issued_date,omitempty"`
	ExpiryDate      *time.Time `db:"expiry_date" json:"expiry_date,omitempty"`
	PersonalEmailID *string    `db:"personal_email_id" json:"personal_email_id,omitempty" validate:"omitempty,email"`
	MobileNoComm    *string    `db:"mobile_no_comm" json:"mobile_no_comm,omitempty"`
	CurrentUANNo    *string    `db:"current_uan_no" json:"current_uan_no,omitempty"`

	// Contract
	JobType          *string    `db:"job_type" json:"job_type,omitempty"`
	ContractEndDate  *time.Time `db:"contract_end_date" json:"contract_end_date,omitempty"`
	ProbationEndDate *time.Time `db:"probation_end_date" json:"probation_end_date,omitempty"`

	// Salary
	GrossSalaryPerMonth decimal.NullDecimal `db:"gross_salary_per_month" json:"gross_salary_per_month,omitempty"`
	TaxRegime           *string             `db:"tax_regime" json:"tax_regime,omitempty"`

	// Health insurance
	PolicyNo         *string             `db:"policy_no" json:"policy_no,omitempty"`
	CommencementDate *time.Time          `db:"commencement_date" json:"commencement_date,omitempty"`
	EndDate          *time.Time          `db:"end_date" json:"end_date,omitempty"`
	Amount           decimal.NullDecimal `db:"amount" json:"amount,omitempty"`
	CoveredMembers   *int                `db:"covered_members" json:"covered_members,omitempty"`
	Duration         *string             `db:"duration" json:"duration,omitempty"`
	InsurerName      *string             `db:"insurer_name" json:"insurer_name,omitempty"`

	// Nominee quick reference
	NomineeName       *string             `db:"nominee_name" json:"nominee_name,omitempty"`
	NomineeAddress    *string             `db:"nominee_address" json:"nominee_address,omitempty"`
	NomineeRelation   *string             `db:"nominee_relation" json:"nominee_relation,omitempty"`
	NomineeAge        *int                `db:"nominee_age" json:"nominee_age,omitempty"`
	NomineeProportion decimal.NullDecimal `db:"nominee_proportion" json:"nominee_proportion,omitempty"`

	// Emergency contact quick reference
	EmergencyContactName     *string `db:"emergency_contact_name" json:"emergency_contact_name,omitempty"`
	EmergencyContactRelation *string `db:"emergency_contact_relation" json:"emergency_contact_relation,omitempty"`
	EmergencyContactNo       *string `db:"emergency_contact_no" json:"emergency_contact_no,omitempty"`

	// Previous-employer quick reference (from the first experience row)
	PFNo              *string `db:"pf_no" json:"pf_no,omitempty"`
	CompanyAddress    *string `db:"company_address" json:"company_address,omitempty"`
	ReferenceDetails1 *string `db:"reference_details_1" json:"reference_details_1,omitempty"`
	ReferenceDetails2 *string `db:"reference_details_2" json:"reference_details_2,omitempty"`

	// Status
	EmploymentStatus *string    `db:"employment_status" json:"employment_status,omitempty"`
	TerminationDate  *time.Time `db:"termination_date" json:"termination_date,omitempty"`
	Remarks          *string    `db:"remarks" json:"remarks,omitempty"`
	CurrentClientID  *int       `db:"current_client_id" json:"current_client_id,omitempty"`

	// Audit
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	CreatedBy *string   `db:"created_by" json:"created_by,omitempty"`
	UpdatedBy *string   `db:"updated_by" json:"updated_by,omitempty"`
}

// AddressHistory is one address row per type for an employee
type AddressHistory struct {
	AddressID       int       `db:"address_id" json:"address_id"`
	EmployeeID      string    `db:"employee_id" json:"employee_id"`
	AddressType     *string   `db:"address_type" json:"address_type,omitempty"`
	HNo             *string   `db:"h_no" json:"h_no,omitempty"`
	Street          *string   `db:"street" json:"street,omitempty"`
	Street2         *string   `db:"street2" json:"street2,omitempty"`
	Landmark        *string   `db:"landmark" json:"landmark,omitempty"`
	City            *string   `db:"city" json:"city,omitempty"`
	State           *string   `db:"state" json:"state,omitempty"`
	PostalCode      *string   `db:"postal_code" json:"postal_code,omitempty"`
	CompleteAddress *string   `db:"complete_address" json:"complete_address,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
	CreatedBy       *string   `db:"created_by" json:"created_by,omitempty"`
	UpdatedBy       *string   `db:"updated_by" json:"updated_by,omitempty"`
}

// FamilyMember is a dependant or relative of an employee
type FamilyMember struct {
	FamilyID     int        `db:"family_id" json:"family_id"`
	EmployeeID   string     `db:"employee_id" json:"employee_id"`
	RelationType *string    `db:"relation_type" json:"relation_type,omitempty"`
	Name         *string    `db:"name" json:"name,omitempty"`
	DOB          *time.Time `db:"dob" json:"dob,omitempty"`
	AadharNumber *string    `db:"aadhar_number" json:"aadhar_number,omitempty"`
	Dependant    string     `db:"dependant" json:"dependant"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
	CreatedBy    *string    `db:"created_by" json:"created_by,omitempty"`
	UpdatedBy    *string    `db:"updated_by" json:"updated_by,omitempty"`
}

// EducationHistory is one qualification of an employee
type EducationHistory struct {
	EducationID          int       `db:"education_id" json:"education_id"`
	EmployeeID           string    `db:"employee_id" json:"employee_id"`
	TypeOfDegree         *string   `db:"type_of_degree" json:"type_of_degree,omitempty"`
	CourseName           *string   `db:"course_name" json:"course_name,omitempty"`
	SchoolCollegeName    *string   `db:"school_college_name" json:"school_college_name,omitempty"`
	AffiliatedUniversity *string   `db:"affiliated_university" json:"affiliated_university,omitempty"`
	CompletedInMonthYear *string   `db:"completed_in_month_year" json:"completed_in_month_year,omitempty"`
	PercentageCGPA       *string   `db:"percentage_cgpa" json:"percentage_cgpa,omitempty"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
	CreatedBy            *string   `db:"created_by" json:"created_by,omitempty"`
	UpdatedBy            *string   `db:"updated_by" json:"updated_by,omitempty"`
}

// ExperienceHistory is one previous employment of an employee
type ExperienceHistory struct {
	ExperienceID  int        `db:"experience_id" json:"experience_id"`
	EmployeeID    string     `db:"employee_id" json:"employee_id"`
	CompanyName   *string    `db:"company_name" json:"company_name,omitempty"`
	Designation   *string    `db:"designation" json:"designation,omitempty"`
	Department    *string    `db:"department" json:"department,omitempty"`
	OfficeEmailID *string    `db:"office_email_id" json:"office_email_id,omitempty"`
	UANNo         *string    `db:"uan_no" json:"uan_no,omitempty"`
	StartDate     *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate       *time.Time `db:"end_date" json:"end_date,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
	CreatedBy     *string    `db:"created_by" json:"created_by,omitempty"`
	UpdatedBy     *string    `db:"updated_by" json:"updated_by,omitempty"`
}

// AssetHistory is one company asset issued to an employee
type AssetHistory struct {
	AssetID     int        `db:"asset_id" json:"asset_id"`
	EmployeeID  string     `db:"employee_id" json:"employee_id"`
	AssetType   *string    `db:"asset_type" json:"asset_type,omitempty"`
	AssetNumber *string    `db:"asset_number" json:"asset_number,omitempty"`
	IssuedDate  *time.Time `db:"issued_date" json:"issued_date,omitempty"`
	ReturnDate  *time.Time `db:"return_date" json:"return_date,omitempty"`
	Status      string     `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	CreatedBy   *string    `db:"created_by" json:"created_by,omitempty"`
	UpdatedBy   *string    `db:"updated_by" json:"updated_by,omitempty"`
}

// OnboardingHistory is one client assignment of an employee
type OnboardingHistory struct {
	OnboardingID         int                 `db:"onboarding_id" json:"onboarding_id"`
	EmployeeID           string              `db:"employee_id" json:"employee_id"`
	ClientID             int                 `db:"client_id" json:"client_id"`
	EffectiveStartDate   *time.Time          `db:"effective_start_date" json:"effective_start_date,omitempty"`
	EffectiveEndDate     *time.Time          `db:"effective_end_date" json:"effective_end_date,omitempty"`
	OnboardingStatus     string              `db:"onboarding_status" json:"onboarding_status"`
	DurationCalculated   *string             `db:"duration_calculated" json:"duration_calculated,omitempty"`
	SPOC                 *string             `db:"spoc" json:"spoc,omitempty"`
	OnboardingDepartment *string             `db:"onboarding_department" json:"onboarding_department,omitempty"`
	AssignedManager      *string             `db:"assigned_manager" json:"assigned_manager,omitempty"`
	ProjectName          *string             `db:"project_name" json:"project_name,omitempty"`
	RoleInProject        *string             `db:"role_in_project" json:"role_in_project,omitempty"`
	BillingRate          decimal.NullDecimal `db:"billing_rate" json:"billing_rate,omitempty"`
	Currency             *string             `db:"currency" json:"currency,omitempty"`
	WorkLocation         *string             `db:"work_location" json:"work_location,omitempty"`
	ReportingManager     *string             `db:"reporting_manager" json:"reporting_manager,omitempty"`
	IsCurrentAssignment  string              `db:"is_current_assignment" json:"is_current_assignment"`
	ExitDate             *time.Time          `db:"exit_date" json:"exit_date,omitempty"`
	ExitReason           *string             `db:"exit_reason" json:"exit_reason,omitempty"`
	CreatedAt            time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time           `db:"updated_at" json:"updated_at"`
	CreatedBy            *string             `db:"created_by" json:"created_by,omitempty"`
	UpdatedBy            *string             `db:"updated_by" json:"updated_by,omitempty"`
}

// ClientMaster is a client company employees are onboarded to
type ClientMaster struct {
	ClientID            int       `db:"client_id" json:"client_id"`
	ClientName          string    `db:"client_name" json:"client_name"`
	ClientCode          *string   `db:"client_code" json:"client_code,omitempty"`
	ClientAddress       *string   `db:"client_address" json:"client_address,omitempty"`
	ClientContactPerson *string   `db:"client_contact_person" json:"client_contact_person,omitempty"`
	ClientEmail         *string   `db:"client_email" json:"client_email,omitempty"`
	ClientPhone         *string   `db:"client_phone" json:"client_phone,omitempty"`
	ClientStatus        string    `db:"client_status" json:"client_status"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}
