package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/peoplecore/hrms-backend/pkg/database"
	"github.com/peoplecore/hrms-backend/pkg/errors"
	"github.com/peoplecore/hrms-backend/pkg/tenant"
)

// Employee id series reserved for generated ids
const (
	SeriesStart = 759000
	SeriesEnd   = 759999
)

// masterColumns is the full column list of employee_master, shared by
// SELECT statements so scans stay aligned with the struct tags.
const masterColumns = `
	employee_id, title, first_name, last_name, full_name, gender, dob,
	marital_status, doa, religion, blood_group, mobile_no,
	doj, designation, department, manager_name, official_no,
	official_email_id, category, excluded_from_payroll,
	address_type, h_no, street, street2, landmark, city, state,
	postal_code, complete_address,
	bank_name, account_no, ifsc_code, type_of_account, branch,
	pan_card_no, aadhar_no, name_as_per_aadhar, passport_no, issued_date,
	expiry_date, personal_email_id, mobile_no_comm, current_uan_no,
	job_type, contract_end_date, probation_end_date,
	gross_salary_per_month, tax_regime,
	policy_no, commencement_date, end_date, amount, covered_members,
	duration, insurer_name,
	nominee_name, nominee_address, nominee_relation, nominee_age,
	nominee_proportion,
	emergency_contact_name, emergency_contact_relation, emergency_contact_no,
	pf_no, company_address, reference_details_1, reference_details_2,
	employment_status, termination_date, remarks, current_client_id,
	created_at, updated_at, created_by, updated_by`

// EmployeeRepository handles employee_master persistence
type EmployeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *database.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create inserts a new employee master record.
// TENANT-ISOLATED: Inserts into the tenant's schema.
func (r *EmployeeRepository) Create(ctx context.Context, emp *EmployeeMaster) error {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			INSERT INTO employee_master (
				employee_id, title, first_name, last_name, full_name, gender, dob,
				marital_status, doa, religion, blood_group, mobile_no,
				doj, designation, department, manager_name, official_no,
				official_email_id, category, excluded_from_payroll,
				address_type, h_no, street, street2, landmark, city, state,
				postal_code, complete_address,
				bank_name, account_no, ifsc_code, type_of_account, branch,
				pan_card_no, aadhar_no, name_as_per_aadhar, passport_no, issued_date,
				expiry_date, personal_email_id, mobile_no_comm, current_uan_no,
				job_type, contract_end_date, probation_end_date,
				gross_salary_per_month, tax_regime,
				policy_no, commencement_date, end_date, amount, covered_members,
				duration, insurer_name,
				nominee_name, nominee_address, nominee_relation, nominee_age,
				nominee_proportion,
				emergency_contact_name, emergency_contact_relation, emergency_contact_no,
				pf_no, company_address, reference_details_1, reference_details_2,
				employment_status, termination_date, remarks, current_client_id,
				created_by, updated_by
			) VALUES (
				:employee_id, :title, :first_name, :last_name, :full_name, :gender, :dob,
				:marital_status, :doa, :religion, :blood_group, :mobile_no,
				:doj, :designation, :department, :manager_name, :official_no,
				:official_email_id, :category, :excluded_from_payroll,
				:address_type, :h_no, :street, :street2, :landmark, :city, :state,
				:postal_code, :complete_address,
				:bank_name, :account_no, :ifsc_code, :type_of_account, :branch,
				:pan_card_no, :aadhar_no, :name_as_per_aadhar, :passport_no, :issued_date,
				:expiry_date, :personal_email_id, :mobile_no_comm, :current_uan_no,
				:job_type, :contract_end_date, :probation_end_date,
				:gross_salary_per_month, :tax_regime,
				:policy_no, :commencement_date, :end_date, :amount, :covered_members,
				:duration, :insurer_name,
				:nominee_name, :nominee_address, :nominee_relation, :nominee_age,
				:nominee_proportion,
				:emergency_contact_name, :emergency_contact_relation, :emergency_contact_no,
				:pf_no, :company_address, :reference_details_1, :reference_details_2,
				:employment_status, :termination_date, :remarks, :current_client_id,
				:created_by, :updated_by
			)`

		_, err := r.db.NamedExecContext(ctx, query, emp)
		if err != nil {
			if appErr := database.MapPQError(err); appErr != nil {
				return appErr
			}
			return err
		}
		return nil
	})
}

// GetByID fetches an employee master record by employee id.
// TENANT-ISOLATED: Queries only the tenant's schema.
func (r *EmployeeRepository) GetByID(ctx context.Context, employeeID string) (*EmployeeMaster, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return nil, err
	}

	var emp EmployeeMaster

	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `SELECT ` + masterColumns + ` FROM employee_master WHERE employee_id = $1`
		return r.db.GetContext(ctx, &emp, query, employeeID)
	})

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("employee")
	}
	if err != nil {
		return nil, err
	}

	return &emp, nil
}

// List lists employees with pagination, newest joiners first.
// TENANT-ISOLATED: Returns only employees from the tenant's schema.
func (r *EmployeeRepository) List(ctx context.Context, page, perPage int) ([]*EmployeeMaster, int64, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	var employees []*EmployeeMaster

	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		countQuery := `SELECT COUNT(*) FROM employee_master`
		if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
			return err
		}

		offset := (page - 1) * perPage
		query := `SELECT ` + masterColumns + `
			FROM employee_master
			ORDER BY doj DESC NULLS LAST, employee_id
			LIMIT $1 OFFSET $2`

		return r.db.SelectContext(ctx, &employees, query, perPage, offset)
	})

	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// Update rewrites an employee master record. Sparse merging happens in
// the caller: load the record, overlay the supplied fields, then Update.
// TENANT-ISOLATED: Updates only in the tenant's schema.
func (r *EmployeeRepository) Update(ctx context.Context, emp *EmployeeMaster) error {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			UPDATE employee_master SET
				title = :title, first_name = :first_name, last_name = :last_name,
				full_name = :full_name, gender = :gender, dob = :dob,
				marital_status = :marital_status, doa = :doa, religion = :religion,
				blood_group = :blood_group, mobile_no = :mobile_no,
				doj = :doj, designation = :designation, department = :department,
				manager_name = :manager_name, official_no = :official_no,
				official_email_id = :official_email_id, category = :category,
				excluded_from_payroll = :excluded_from_payroll,
				address_type = :address_type, h_no = :h_no, street = :street,
				street2 = :street2, landmark = :landmark, city = :city,
				state = :state, postal_code = :postal_code,
				complete_address = :complete_address,
				bank_name = :bank_name, account_no = :account_no,
				ifsc_code = :ifsc_code, type_of_account = :type_of_account,
				branch = :branch,
				pan_card_no = :pan_card_no, aadhar_no = :aadhar_no,
				name_as_per_aadhar = :name_as_per_aadhar, passport_no = :passport_no,
				issued_date = :issued_date, expiry_date = :expiry_date,
				personal_email_id = :personal_email_id,
				mobile_no_comm = :mobile_no_comm, current_uan_no = :current_uan_no,
				job_type = :job_type, contract_end_date = :contract_end_date,
				probation_end_date = :probation_end_date,
				gross_salary_per_month = :gross_salary_per_month,
				tax_regime = :tax_regime,
				policy_no = :policy_no, commencement_date = :commencement_date,
				end_date = :end_date, amount = :amount,
				covered_members = :covered_members, duration = :duration,
				insurer_name = :insurer_name,
				nominee_name = :nominee_name, nominee_address = :nominee_address,
				nominee_relation = :nominee_relation, nominee_age = :nominee_age,
				nominee_proportion = :nominee_proportion,
				emergency_contact_name = :emergency_contact_name,
				emergency_contact_relation = :emergency_contact_relation,
				emergency_contact_no = :emergency_contact_no,
				pf_no = :pf_no, company_address = :company_address,
				reference_details_1 = :reference_details_1,
				reference_details_2 = :reference_details_2,
				employment_status = :employment_status,
				termination_date = :termination_date, remarks = :remarks,
				current_client_id = :current_client_id,
				updated_by = :updated_by, updated_at = NOW()
			WHERE employee_id = :employee_id`

		result, err := r.db.NamedExecContext(ctx, query, emp)
		if err != nil {
			if appErr := database.MapPQError(err); appErr != nil {
				return appErr
			}
			return err
		}

		affected, _ := result.RowsAffected()
		if affected == 0 {
			return errors.NotFound("employee")
		}
		return nil
	})
}

// Retire marks an employee inactive with a termination date.
// TENANT-ISOLATED: Updates only in the tenant's schema.
func (r *EmployeeRepository) Retire(ctx context.Context, employeeID string, updatedBy string) error {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			UPDATE employee_master
			SET employment_status = 'Inactive',
			    termination_date = CURRENT_DATE,
			    updated_by = $2, updated_at = NOW()
			WHERE employee_id = $1`

		result, err := r.db.ExecContext(ctx, query, employeeID, updatedBy)
		if err != nil {
			return err
		}

		affected, _ := result.RowsAffected()
		if affected == 0 {
			return errors.NotFound("employee")
		}
		return nil
	})
}

// Exists reports whether an employee id is already persisted
func (r *EmployeeRepository) Exists(ctx context.Context, employeeID string) (bool, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `SELECT EXISTS (SELECT 1 FROM employee_master WHERE employee_id = $1)`
		return r.db.GetContext(ctx, &exists, query, employeeID)
	})
	return exists, err
}

// EmailInUse checks an email against both persisted email columns, so an
// official address cannot collide with another employee's personal one.
func (r *EmployeeRepository) EmailInUse(ctx context.Context, email string) (bool, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			SELECT EXISTS (
				SELECT 1 FROM employee_master
				WHERE official_email_id ILIKE $1 OR personal_email_id ILIKE $1
			)`
		return r.db.GetContext(ctx, &exists, query, email)
	})
	return exists, err
}

// ContactInUse checks a phone number against all three persisted phone columns
func (r *EmployeeRepository) ContactInUse(ctx context.Context, number string) (bool, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			SELECT EXISTS (
				SELECT 1 FROM employee_master
				WHERE official_no = $1 OR mobile_no = $1 OR mobile_no_comm = $1
			)`
		return r.db.GetContext(ctx, &exists, query, number)
	})
	return exists, err
}

// PANInUse checks whether a PAN is already persisted
func (r *EmployeeRepository) PANInUse(ctx context.Context, pan string) (bool, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `SELECT EXISTS (SELECT 1 FROM employee_master WHERE pan_card_no = $1)`
		return r.db.GetContext(ctx, &exists, query, pan)
	})
	return exists, err
}

// AadharInUse checks whether an Aadhar number is already persisted
func (r *EmployeeRepository) AadharInUse(ctx context.Context, aadhar string) (bool, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `SELECT EXISTS (SELECT 1 FROM employee_master WHERE aadhar_no = $1)`
		return r.db.GetContext(ctx, &exists, query, aadhar)
	})
	return exists, err
}

// NextEmployeeID allocates the next id in the reserved series.
// Returns a BadRequest error when the series is exhausted.
func (r *EmployeeRepository) NextEmployeeID(ctx context.Context) (string, error) {
	tenantSchema, err := tenant.TenantSchema(ctx)
	if err != nil {
		return "", err
	}

	var next int
	err = r.db.WithTenantSchema(ctx, tenantSchema, func(ctx context.Context) error {
		query := `
			SELECT COALESCE(MAX(employee_id::integer), $1 - 1) + 1
			FROM employee_master
			WHERE employee_id ~ '^[0-9]+$'
			  AND employee_id::integer BETWEEN $1 AND $2`
		return r.db.GetContext(ctx, &next, query, SeriesStart, SeriesEnd)
	})
	if err != nil {
		return "", err
	}

	if next > SeriesEnd {
		return "", errors.BadRequest("employee id series exhausted (759000-759999)")
	}

	return fmt.Sprintf("%06d", next), nil
}
