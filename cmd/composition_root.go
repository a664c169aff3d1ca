package cmd

import (
	"errors"
	"log/slog"

	httpin "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/messaging"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/jobs"

	"gorm.io/gorm"
)

// pickupWindowLimit bounds how many parcels one expiry pass handles.
const pickupWindowLimit = 500

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	identifier *kernel.IdentifierGenerator
	logger     *slog.Logger

	closers []func() error
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		identifier: kernel.NewIdentifierGenerator(kernel.WithMaxAttempts(cfg.IdentifierMaxAttempts)),
		logger:     logger,
	}
}

func (c *CompositionRoot) parcelUoWFactory() commands.ParcelUoWFactory {
	return FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) protocolUoWFactory() commands.ProtocolUoWFactory {
	return FuncProtocolUoWFactory(func() commands.ProtocolUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) assignmentUoWFactory() commands.AssignmentUoWFactory {
	return FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() *commands.CreateParcelCommandHandler {
	h := commands.NewCreateParcelCommandHandler(c.parcelUoWFactory(), c.identifier, c.cfg.IdentifierMaxAttempts)
	return &h
}

func (c *CompositionRoot) CreateUpdateParcelStatusCommandHandler() *commands.UpdateParcelStatusCommandHandler {
	h := commands.NewUpdateParcelStatusCommandHandler(c.parcelUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateIssuePickupCodeCommandHandler() *commands.IssuePickupCodeCommandHandler {
	h := commands.NewIssuePickupCodeCommandHandler(c.parcelUoWFactory(), c.identifier, c.cfg.IdentifierMaxAttempts)
	return &h
}

func (c *CompositionRoot) CreateVerifyPickupCommandHandler() *commands.VerifyPickupCommandHandler {
	h := commands.NewVerifyPickupCommandHandler(c.protocolUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateRecordHandoverCommandHandler() *commands.RecordHandoverCommandHandler {
	h := commands.NewRecordHandoverCommandHandler(c.protocolUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateAcknowledgeHandoverCommandHandler() *commands.AcknowledgeHandoverCommandHandler {
	h := commands.NewAcknowledgeHandoverCommandHandler(c.protocolUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateInitiateReturnCommandHandler() *commands.InitiateReturnCommandHandler {
	h := commands.NewInitiateReturnCommandHandler(c.protocolUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateCompleteReturnCommandHandler() *commands.CompleteReturnCommandHandler {
	h := commands.NewCompleteReturnCommandHandler(c.protocolUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateRecordExchangeCommandHandler() *commands.RecordExchangeCommandHandler {
	h := commands.NewRecordExchangeCommandHandler(c.protocolUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateCreateTransitAssignmentCommandHandler() *commands.CreateTransitAssignmentCommandHandler {
	h := commands.NewCreateTransitAssignmentCommandHandler(c.assignmentUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateChangeTransitStatusCommandHandler() *commands.ChangeTransitStatusCommandHandler {
	h := commands.NewChangeTransitStatusCommandHandler(c.assignmentUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateAppendTransitLogCommandHandler() *commands.AppendTransitLogCommandHandler {
	h := commands.NewAppendTransitLogCommandHandler(c.assignmentUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateCreateDeliveryAssignmentCommandHandler() *commands.CreateDeliveryAssignmentCommandHandler {
	h := commands.NewCreateDeliveryAssignmentCommandHandler(c.assignmentUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateAppendDeliveryLogCommandHandler() *commands.AppendDeliveryLogCommandHandler {
	h := commands.NewAppendDeliveryLogCommandHandler(c.assignmentUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateExpireStoredParcelsCommandHandler() *commands.ExpireStoredParcelsCommandHandler {
	h := commands.NewExpireStoredParcelsCommandHandler(c.protocolUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler(publisher ports.EventPublisher) *commands.RelayOutboxCommandHandler {
	h := commands.NewRelayOutboxCommandHandler(c.outboxUoWFactory(), publisher)
	return &h
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetParcelTimelineQueryHandler() queries.GetParcelTimelineQueryHandler {
	return queries.NewGetParcelTimelineQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTransitManifestQueryHandler() queries.GetTransitManifestQueryHandler {
	return queries.NewGetTransitManifestQueryHandler(c.gormDB)
}

// CreateEventPublisher connects the Kafka stream and the RabbitMQ
// notification queue behind one routing publisher. Both are closed by Close.
func (c *CompositionRoot) CreateEventPublisher() (ports.EventPublisher, error) {
	stream := messaging.NewKafkaPublisher(c.cfg.KafkaHost, c.cfg.KafkaParcelEventsTopic, c.logger)
	c.closers = append(c.closers, stream.Close)

	notifier, err := messaging.DialRabbitNotifier(c.cfg.RabbitMQURL, c.cfg.RabbitMQNotificationsQueue, c.logger)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, notifier.Close)

	return messaging.NewRouter(stream, notifier), nil
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateParcel:             c.CreateCreateParcelCommandHandler(),
		UpdateParcelStatus:       c.CreateUpdateParcelStatusCommandHandler(),
		IssuePickupCode:          c.CreateIssuePickupCodeCommandHandler(),
		VerifyPickup:             c.CreateVerifyPickupCommandHandler(),
		RecordHandover:           c.CreateRecordHandoverCommandHandler(),
		AcknowledgeHandover:      c.CreateAcknowledgeHandoverCommandHandler(),
		InitiateReturn:           c.CreateInitiateReturnCommandHandler(),
		CompleteReturn:           c.CreateCompleteReturnCommandHandler(),
		RecordExchange:           c.CreateRecordExchangeCommandHandler(),
		CreateTransitAssignment:  c.CreateCreateTransitAssignmentCommandHandler(),
		ChangeTransitStatus:      c.CreateChangeTransitStatusCommandHandler(),
		AppendTransitLog:         c.CreateAppendTransitLogCommandHandler(),
		CreateDeliveryAssignment: c.CreateCreateDeliveryAssignmentCommandHandler(),
		AppendDeliveryLog:        c.CreateAppendDeliveryLogCommandHandler(),
		GetParcel:                c.CreateGetParcelQueryHandler(),
		GetParcelTimeline:        c.CreateGetParcelTimelineQueryHandler(),
		GetTransitManifest:       c.CreateGetTransitManifestQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager(publisher ports.EventPublisher) (*jobs.JobManager, error) {
	return jobs.NewJobManager(
		c.CreateRelayOutboxCommandHandler(publisher),
		c.CreateExpireStoredParcelsCommandHandler(),
		jobs.Config{
			OutboxRelaySchedule:  c.cfg.OutboxRelaySchedule,
			OutboxBatchSize:      c.cfg.OutboxBatchSize,
			PickupWindowSchedule: c.cfg.PickupWindowSchedule,
			PickupWindowLimit:    pickupWindowLimit,
		},
		c.logger,
	)
}

// Close releases broker connections in reverse order of creation.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errList = append(errList, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errList...)
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncProtocolUoWFactory func() commands.ProtocolUoW

func (f FuncProtocolUoWFactory) Create() commands.ProtocolUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
