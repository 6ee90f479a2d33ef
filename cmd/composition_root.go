package cmd

import (
	"strings"

	"backoffice/internal/adapters/out/kafka"
	"backoffice/internal/adapters/out/postgres"
	"backoffice/internal/adapters/out/postgres/outboxrepo"
	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.NotificationPublisher
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) (CompositionRoot, error) {
	publisher, err := kafka.NewNotificationPublisher(
		strings.Split(configs.KafkaHost, ","),
		configs.KafkaStatusChangedTopic,
	)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateApplyTransitionCommandHandler() commands.ApplyTransitionCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyTransitionCommandHandler(f)
}

// CreateDispatchNotificationsCommandHandler wires the dispatch job's
// handler. The outbox is read outside any transaction: each message is
// published and marked individually, which is what keeps delivery
// at-least-once across crashes.
func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() commands.DispatchNotificationsCommandHandler {
	outbox := outboxrepo.NewGormNotificationOutbox(c.gormDB)
	return commands.NewDispatchNotificationsCommandHandler(outbox, c.publisher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStatusesQueryHandler() queries.GetStatusesQueryHandler {
	return queries.NewGetStatusesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStatusUpdateLogsQueryHandler() queries.GetStatusUpdateLogsQueryHandler {
	return queries.NewGetStatusUpdateLogsQueryHandler(c.gormDB)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
