package consumers

import (
	"context"

	"github.com/peoplecore/hrms-backend/internal/employee/repository"
	"github.com/peoplecore/hrms-backend/pkg/logger"
	"github.com/peoplecore/hrms-backend/pkg/messaging"
	"github.com/peoplecore/hrms-backend/pkg/tenant"
)

// UserEventConsumer keeps the local user cache in sync with the
// identity service so audit fields can show actor names.
type UserEventConsumer struct {
	consumer      *messaging.Consumer
	userCacheRepo *repository.UserCacheRepository
	logger        *logger.Logger
}

// NewUserEventConsumer creates a new user event consumer
func NewUserEventConsumer(
	rmq *messaging.RabbitMQ,
	userCacheRepo *repository.UserCacheRepository,
	log *logger.Logger,
) (*UserEventConsumer, error) {
	consumer, err := messaging.NewConsumer(rmq, "employee-service.user-events", log)
	if err != nil {
		return nil, err
	}

	if err := consumer.Subscribe(messaging.ExchangeUserEvents, "user.#"); err != nil {
		return nil, err
	}

	c := &UserEventConsumer{
		consumer:      consumer,
		userCacheRepo: userCacheRepo,
		logger:        log,
	}

	consumer.RegisterHandler(messaging.EventUserCreated, c.handleUserCreated)
	consumer.RegisterHandler(messaging.EventUserUpdated, c.handleUserUpdated)
	consumer.RegisterHandler(messaging.EventUserDeleted, c.handleUserDeleted)

	return c, nil
}

// Start starts consuming messages
func (c *UserEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Start(ctx)
}

func (c *UserEventConsumer) handleUserCreated(ctx context.Context, event *messaging.Event) error {
	var data messaging.UserCreatedEvent
	if err := event.UnmarshalData(&data); err != nil {
		return err
	}

	c.logger.Info().
		Str("user_id", data.UserID).
		Str("name", data.FullName()).
		Msg("received user created event")

	ctx = tenant.WithTenantContext(ctx, data.TenantID, data.TenantSlug, data.TenantSchema)

	return c.userCacheRepo.Set(ctx, &repository.CachedUser{
		UserID:   data.UserID,
		Name:     data.FullName(),
		Email:    &data.Email,
		RoleName: &data.RoleName,
	})
}

func (c *UserEventConsumer) handleUserUpdated(ctx context.Context, event *messaging.Event) error {
	var data messaging.UserUpdatedEvent
	if err := event.UnmarshalData(&data); err != nil {
		return err
	}

	c.logger.Info().
		Str("user_id", data.UserID).
		Msg("received user updated event")

	ctx = tenant.WithTenantContext(ctx, data.TenantID, data.TenantSlug, data.TenantSchema)

	existing, err := c.userCacheRepo.Get(ctx, data.UserID)
	if err != nil {
		// Not cached yet, nothing to update
		return nil
	}

	if name, ok := data.Fields["name"].(string); ok && name != "" {
		existing.Name = name
	}
	if email, ok := data.Fields["email"].(string); ok && email != "" {
		existing.Email = &email
	}
	if role, ok := data.Fields["role_name"].(string); ok && role != "" {
		existing.RoleName = &role
	}

	return c.userCacheRepo.Set(ctx, existing)
}

func (c *UserEventConsumer) handleUserDeleted(ctx context.Context, event *messaging.Event) error {
	var data messaging.UserDeletedEvent
	if err := event.UnmarshalData(&data); err != nil {
		return err
	}

	c.logger.Info().
		Str("user_id", data.UserID).
		Msg("received user deleted event")

	ctx = tenant.WithTenantContext(ctx, data.TenantID, data.TenantSlug, data.TenantSchema)

	return c.userCacheRepo.Delete(ctx, data.UserID)
}
