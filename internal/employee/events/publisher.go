package events

import (
	"context"
	"strconv"

	"github.com/peoplecore/hrms-backend/internal/employee/bulkimport"
	"github.com/peoplecore/hrms-backend/internal/employee/repository"
	"github.com/peoplecore/hrms-backend/pkg/logger"
	"github.com/peoplecore/hrms-backend/pkg/messaging"
	"github.com/peoplecore/hrms-backend/pkg/tenant"
)

// EmployeeEventPublisher publishes employee-related events
type EmployeeEventPublisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewEmployeeEventPublisher creates a new employee event publisher
func NewEmployeeEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*EmployeeEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeEmployeeEvents, "employee-service", log)
	if err != nil {
		return nil, err
	}

	return &EmployeeEventPublisher{
		publisher: publisher,
		logger:    log,
	}, nil
}

// PublishEmployeeCreated publishes an employee created event
func (p *EmployeeEventPublisher) PublishEmployeeCreated(ctx context.Context, emp *repository.EmployeeMaster, createdBy string) {
	tenantID, _ := tenant.TenantID(ctx)
	tenantSlug, _ := tenant.TenantSlug(ctx)
	tenantSchema, _ := tenant.TenantSchema(ctx)

	data := messaging.EmployeeCreatedEvent{
		EmployeeID:   emp.EmployeeID,
		FullName:     emp.FirstName + " " + emp.LastName,
		CreatedBy:    createdBy,
		TenantID:     tenantID,
		TenantSlug:   tenantSlug,
		TenantSchema: tenantSchema,
	}
	if emp.OfficialEmailID != nil {
		data.Email = *emp.OfficialEmailID
	}

	if err := p.publisher.Publish(ctx, messaging.EventEmployeeCreated, data); err != nil {
		p.logger.Error().Err(err).Str("employee_id", emp.EmployeeID).Msg("failed to publish employee created event")
	}
}

// PublishEmployeeUpdated publishes an employee updated event
func (p *EmployeeEventPublisher) PublishEmployeeUpdated(ctx context.Context, emp *repository.EmployeeMaster, updatedBy string) {
	tenantID, _ := tenant.TenantID(ctx)
	tenantSlug, _ := tenant.TenantSlug(ctx)
	tenantSchema, _ := tenant.TenantSchema(ctx)

	data := messaging.EmployeeUpdatedEvent{
		EmployeeID:   emp.EmployeeID,
		Fields:       map[string]any{"name": emp.FirstName + " " + emp.LastName},
		UpdatedBy:    updatedBy,
		TenantID:     tenantID,
		TenantSlug:   tenantSlug,
		TenantSchema: tenantSchema,
	}

	if err := p.publisher.Publish(ctx, messaging.EventEmployeeUpdated, data); err != nil {
		p.logger.Error().Err(err).Str("employee_id", emp.EmployeeID).Msg("failed to publish employee updated event")
	}
}

// PublishEmployeeRetired publishes an employee retired event
func (p *EmployeeEventPublisher) PublishEmployeeRetired(ctx context.Context, employeeID, retiredBy string) {
	tenantID, _ := tenant.TenantID(ctx)
	tenantSlug, _ := tenant.TenantSlug(ctx)
	tenantSchema, _ := tenant.TenantSchema(ctx)

	data := messaging.EmployeeRetiredEvent{
		EmployeeID:   employeeID,
		RetiredBy:    retiredBy,
		TenantID:     tenantID,
		TenantSlug:   tenantSlug,
		TenantSchema: tenantSchema,
	}

	if err := p.publisher.Publish(ctx, messaging.EventEmployeeRetired, data); err != nil {
		p.logger.Error().Err(err).Str("employee_id", employeeID).Msg("failed to publish employee retired event")
	}
}

// PublishBulkImported publishes a bulk import committed event
func (p *EmployeeEventPublisher) PublishBulkImported(ctx context.Context, result *bulkimport.Result, importedBy string) {
	tenantID, _ := tenant.TenantID(ctx)
	tenantSlug, _ := tenant.TenantSlug(ctx)
	tenantSchema, _ := tenant.TenantSchema(ctx)

	data := messaging.EmployeeBulkImportedEvent{
		Mode:         string(result.Operation),
		EmployeeIDs:  result.EmployeeIDs,
		RowCount:     len(result.EmployeeIDs),
		ImportedBy:   importedBy,
		TenantID:     tenantID,
		TenantSlug:   tenantSlug,
		TenantSchema: tenantSchema,
	}

	if err := p.publisher.Publish(ctx, messaging.EventEmployeeBulkImported, data); err != nil {
		p.logger.Error().Err(err).
			Str("mode", string(result.Operation)).
			Int("employees", len(result.EmployeeIDs)).
			Msg("failed to publish bulk imported event")
	}
}

// PublishClientCreated publishes a client created event
func (p *EmployeeEventPublisher) PublishClientCreated(ctx context.Context, client *repository.ClientMaster) {
	tenantID, _ := tenant.TenantID(ctx)
	tenantSlug, _ := tenant.TenantSlug(ctx)
	tenantSchema, _ := tenant.TenantSchema(ctx)

	data := messaging.ClientCreatedEvent{
		ClientID:     strconv.Itoa(client.ClientID),
		ClientName:   client.ClientName,
		TenantID:     tenantID,
		TenantSlug:   tenantSlug,
		TenantSchema: tenantSchema,
	}
	if client.ClientCode != nil {
		data.ClientCode = *client.ClientCode
	}

	if err := p.publisher.Publish(ctx, messaging.EventClientCreated, data); err != nil {
		p.logger.Error().Err(err).Str("client_name", client.ClientName).Msg("failed to publish client created event")
	}
}
