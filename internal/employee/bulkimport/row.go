package bulkimport

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/peoplecore/hrms-backend/internal/employee/repository"
	"github.com/peoplecore/hrms-backend/internal/employee/workbook"
)

// phoneMaxDigits caps phone-like columns; aadharDigits caps Aadhar
const (
	phoneMaxDigits = 12
	aadharDigits   = 12
)

// masterRow is one parsed row of the Employee Details sheet. String
// fields hold "" for absent values; phone-like fields are digit-cleaned.
type masterRow struct {
	num int

	employeeID string

	// Personal
	title         string
	firstName     string
	lastName      string
	fullName      string
	gender        string
	dob           *time.Time
	maritalStatus string
	doa           *time.Time
	religion      string
	bloodGroup    string
	mobileNo      string

	// Employment
	doj                 *time.Time
	designation         string
	department          string
	managerName         string
	officialNo          string
	officialEmail       string
	category            string
	excludedFromPayroll string

	// Government IDs and personal communication
	panCardNo       string
	aadharNo        string
	nameAsPerAadhar string
	passportNo      string
	passportIssued  *time.Time
	passportExpiry  *time.Time
	personalEmail   string
	currentUAN      string

	// Bank
	bankName      string
	accountNo     string
	ifscCode      string
	typeOfAccount string
	branch        string

	// Contract
	jobType      string
	contractEnd  *time.Time
	probationEnd *time.Time

	// Salary
	grossSalary decimal.NullDecimal
	taxRegime   string

	// Health insurance
	policyNo       string
	commencement   *time.Time
	insuranceEnd   *time.Time
	amount         decimal.NullDecimal
	coveredMembers *int
	duration       string
	insurerName    string
}

func parseMasterRow(r workbook.Row) masterRow {
	return masterRow{
		num: r.Num,

		employeeID: r.String("employee id"),

		title:         r.String("title (mr./mrs./ms./miss)", "title"),
		firstName:     r.String("first name"),
		lastName:      r.String("last name"),
		fullName:      r.String("full name (auto-generated)", "full name"),
		gender:        r.String("gender"),
		dob:           r.Date("dob (dd-mm-yyyy)"),
		maritalStatus: r.String("marital status"),
		doa:           r.Date("doa (dd-mm-yyyy)"),
		religion:      r.String("religion"),
		bloodGroup:    r.String("blood group"),
		mobileNo:      r.Digits(phoneMaxDigits, "mobile no"),

		doj:                 r.Date("doj (dd-mm-yyyy)"),
		designation:         r.String("designation"),
		department:          r.String("department"),
		managerName:         r.String("manager name"),
		officialNo:          r.Digits(phoneMaxDigits, "official contact number"),
		officialEmail:       r.String("official email id"),
		category:            r.String("category"),
		excludedFromPayroll: r.String("excluded from payroll"),

		panCardNo:       r.Upper("pan card no", "pan"),
		aadharNo:        r.Digits(aadharDigits, "aadhar no", "aadhar"),
		nameAsPerAadhar: r.String("name as per aadhar"),
		passportNo:      r.String("passport no"),
		passportIssued:  r.Date("passport issued date (dd-mm-yyyy)"),
		passportExpiry:  r.Date("passport expiry date (dd-mm-yyyy)"),
		personalEmail:   r.String("personal email id"),
		currentUAN:      r.String("current uan no"),

		bankName:      r.String("bank name"),
		accountNo:     r.String("account no"),
		ifscCode:      r.String("ifsc code"),
		typeOfAccount: r.String("type of account"),
		branch:        r.String("branch"),

		jobType:      r.String("job type"),
		contractEnd:  r.Date("contract end date (dd-mm-yyyy)"),
		probationEnd: r.Date("probation end date (dd-mm-yyyy)"),

		grossSalary: r.Decimal("gross salary per month"),
		taxRegime:   r.String("tax regime"),

		policyNo:       r.String("policy no"),
		commencement:   r.Date("commencement date (dd-mm-yyyy)"),
		insuranceEnd:   r.Date("end date (dd-mm-yyyy)"),
		amount:         r.Decimal("amount"),
		coveredMembers: r.Int("covered members"),
		duration:       r.String("duration"),
		insurerName:    r.String("insurer name"),
	}
}

// strPtr converts "" to nil
func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// newRecord builds a fresh master record with create-mode defaults
func (m masterRow) newRecord(stamp string) *repository.EmployeeMaster {
	fullName := m.fullName
	if fullName == "" {
		fullName = m.firstName + " " + m.lastName
	}

	mobileComm := m.mobileNo // separate comm number is not in the template

	coveredMembers := m.coveredMembers
	if coveredMembers == nil {
		one := 1
		coveredMembers = &one
	}

	active := "Active"

	return &repository.EmployeeMaster{
		EmployeeID: m.employeeID,

		Title:         strPtr(m.title),
		FirstName:     m.firstName,
		LastName:      m.lastName,
		FullName:      &fullName,
		Gender:        strPtr(m.gender),
		DOB:           m.dob,
		MaritalStatus: strPtr(m.maritalStatus),
		DOA:           m.doa,
		Religion:      strPtr(m.religion),
		BloodGroup:    strPtr(m.bloodGroup),
		MobileNo:      strPtr(m.mobileNo),

		DOJ:                 m.doj,
		Designation:         strPtr(m.designation),
		Department:          strPtr(m.department),
		ManagerName:         strPtr(m.managerName),
		OfficialNo:          strPtr(m.officialNo),
		OfficialEmailID:     strPtr(m.officialEmail),
		Category:            strPtr(m.category),
		ExcludedFromPayroll: strPtr(orDefault(m.excludedFromPayroll, "No")),

		PANCardNo:       strPtr(m.panCardNo),
		AadharNo:        strPtr(m.aadharNo),
		NameAsPerAadhar: strPtr(m.nameAsPerAadhar),
		PassportNo:      strPtr(m.passportNo),
		IssuedDate:      m.passportIssued,
		ExpiryDate:      m.passportExpiry,
		PersonalEmailID: strPtr(m.personalEmail),
		MobileNoComm:    strPtr(mobileComm),
		CurrentUANNo:    strPtr(m.currentUAN),

		BankName:      strPtr(m.bankName),
		AccountNo:     strPtr(m.accountNo),
		IFSCCode:      strPtr(m.ifscCode),
		TypeOfAccount: strPtr(m.typeOfAccount),
		Branch:        strPtr(m.branch),

		JobType:          strPtr(m.jobType),
		ContractEndDate:  m.contractEnd,
		ProbationEndDate: m.probationEnd,

		GrossSalaryPerMonth: m.grossSalary,
		TaxRegime:           strPtr(orDefault(m.taxRegime, "New")),

		PolicyNo:         strPtr(m.policyNo),
		CommencementDate: m.commencement,
		EndDate:          m.insuranceEnd,
		Amount:           m.amount,
		CoveredMembers:   coveredMembers,
		Duration:         strPtr(m.duration),
		InsurerName:      strPtr(m.insurerName),

		NomineeProportion: decimal.NullDecimal{
			Decimal: decimal.NewFromInt(100),
			Valid:   true,
		},

		EmploymentStatus: &active,

		CreatedBy: &stamp,
		UpdatedBy: &stamp,
	}
}

// mergeInto overlays the supplied cells onto an existing record. Absent
// cells keep the persisted value; numeric fields count as supplied only
// when the cell parsed, so a zero can overwrite.
func (m masterRow) mergeInto(emp *repository.EmployeeMaster, stamp string) {
	setStr := func(dst **string, v string) {
		if v != "" {
			*dst = &v
		}
	}
	setDate := func(dst **time.Time, v *time.Time) {
		if v != nil {
			*dst = v
		}
	}

	setDate(&emp.DOJ, m.doj)
	setStr(&emp.Designation, m.designation)
	setStr(&emp.Department, m.department)
	setStr(&emp.ManagerName, m.managerName)
	setStr(&emp.OfficialNo, m.officialNo)
	setStr(&emp.OfficialEmailID, m.officialEmail)
	setStr(&emp.Category, m.category)
	setStr(&emp.ExcludedFromPayroll, m.excludedFromPayroll)

	setStr(&emp.Title, m.title)
	if m.firstName != "" {
		emp.FirstName = m.firstName
	}
	if m.lastName != "" {
		emp.LastName = m.lastName
	}
	if m.firstName != "" && m.lastName != "" {
		fullName := m.fullName
		if fullName == "" {
			fullName = m.firstName + " " + m.lastName
		}
		emp.FullName = &fullName
	}
	setStr(&emp.Gender, m.gender)
	setDate(&emp.DOB, m.dob)
	setStr(&emp.MaritalStatus, m.maritalStatus)
	setDate(&emp.DOA, m.doa)
	setStr(&emp.Religion, m.religion)
	setStr(&emp.BloodGroup, m.bloodGroup)

	setStr(&emp.PANCardNo, m.panCardNo)
	setStr(&emp.AadharNo, m.aadharNo)
	setStr(&emp.NameAsPerAadhar, m.nameAsPerAadhar)
	setStr(&emp.PassportNo, m.passportNo)
	setDate(&emp.IssuedDate, m.passportIssued)
	setDate(&emp.ExpiryDate, m.passportExpiry)
	setStr(&emp.PersonalEmailID, m.personalEmail)
	setStr(&emp.MobileNo, m.mobileNo)
	setStr(&emp.MobileNoComm, m.mobileNo)
	setStr(&emp.CurrentUANNo, m.currentUAN)

	setStr(&emp.BankName, m.bankName)
	setStr(&emp.AccountNo, m.accountNo)
	setStr(&emp.IFSCCode, m.ifscCode)
	setStr(&emp.TypeOfAccount, m.typeOfAccount)
	setStr(&emp.Branch, m.branch)

	setStr(&emp.JobType, m.jobType)
	setDate(&emp.ContractEndDate, m.contractEnd)
	setDate(&emp.ProbationEndDate, m.probationEnd)

	if m.grossSalary.Valid {
		emp.GrossSalaryPerMonth = m.grossSalary
	}
	setStr(&emp.TaxRegime, m.taxRegime)

	setStr(&emp.PolicyNo, m.policyNo)
	setDate(&emp.CommencementDate, m.commencement)
	setDate(&emp.EndDate, m.insuranceEnd)
	if m.amount.Valid {
		emp.Amount = m.amount
	}
	if m.coveredMembers != nil {
		emp.CoveredMembers = m.coveredMembers
	}
	setStr(&emp.Duration, m.duration)
	setStr(&emp.InsurerName, m.insurerName)

	emp.UpdatedBy = &stamp
}
