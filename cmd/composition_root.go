package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/filestore/memory"
	"marketplace/internal/adapters/out/filestore/s3"
	"marketplace/internal/adapters/out/identity"
	"marketplace/internal/adapters/out/logsink"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/transitionlog"
	"marketplace/internal/adapters/out/redis"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"
	"marketplace/internal/metrics"

	goredis "github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CompositionRoot owns every long-lived dependency of the process.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	gormDB     *gorm.DB
	rdb        *goredis.Client
	uowFactory *postgres.GormUnitOfWorkFactory

	numberer  ports.OrderNumberer
	sink      ports.NotificationSink
	files     ports.FileStore
	documents *memory.Store
	identity  ports.IdentityProvider
	metrics   *metrics.Metrics
}

func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	gormDB, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := postgres.Migrate(ctx, gormDB); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	root := &CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		metrics:    metrics.New(),
	}
	if err := root.wire(ctx); err != nil {
		_ = root.Close()
		return nil, err
	}
	return root, nil
}

func (c *CompositionRoot) wire(ctx context.Context) error {
	if c.cfg.UsesRedis() {
		c.rdb = goredis.NewClient(&goredis.Options{
			Addr:     c.cfg.RedisAddr,
			Password: c.cfg.RedisPassword,
			DB:       c.cfg.RedisDB,
		})
		if err := c.rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
	}

	sequence := postgres.NewSequenceNumberer(c.gormDB)
	switch c.cfg.NumberingDriver {
	case NumberingRedis:
		numberer := redis.NewNumberer(c.rdb, redis.DefaultNumberKey)
		floor, err := sequence.Highest(ctx)
		if err != nil {
			return fmt.Errorf("read issued order numbers: %w", err)
		}
		if err := numberer.SeedAtLeast(ctx, floor); err != nil {
			return fmt.Errorf("seed order numbers: %w", err)
		}
		c.numberer = numberer
	default:
		if err := sequence.Sync(ctx); err != nil {
			return fmt.Errorf("sync order number sequence: %w", err)
		}
		c.numberer = sequence
	}

	switch c.cfg.NotifyDriver {
	case NotifyRedis:
		c.sink = redis.NewPublisher(c.rdb, c.cfg.NotifyChannel)
	default:
		c.sink = logsink.New(c.logger)
	}

	switch c.cfg.FileStoreDriver {
	case FileStoreS3:
		store, err := s3.New(ctx, s3.Config{
			Region:          c.cfg.S3Region,
			Bucket:          c.cfg.S3Bucket,
			Endpoint:        c.cfg.S3Endpoint,
			AccessKeyID:     c.cfg.S3AccessKeyID,
			SecretAccessKey: c.cfg.S3SecretKey,
			PathStyle:       c.cfg.S3PathStyle,
		})
		if err != nil {
			return fmt.Errorf("s3 file store: %w", err)
		}
		c.files = store
	default:
		c.documents = memory.New(c.cfg.FileBaseURL)
		c.files = c.documents
	}

	provider, err := identity.NewJWTProvider(c.cfg.JWTSecret)
	if err != nil {
		return err
	}
	c.identity = provider
	return nil
}

// Close releases the database and redis connections.
func (c *CompositionRoot) Close() error {
	var closeErrs []error
	if c.rdb != nil {
		closeErrs = append(closeErrs, c.rdb.Close())
	}
	if c.gormDB != nil {
		if sqlDB, err := c.gormDB.DB(); err == nil {
			closeErrs = append(closeErrs, sqlDB.Close())
		}
	}
	return errors.Join(closeErrs...)
}

func (c *CompositionRoot) Identity() ports.IdentityProvider { return c.identity }
func (c *CompositionRoot) Metrics() *metrics.Metrics        { return c.metrics }

// Documents is the in-process file store, or nil when files live in S3.
func (c *CompositionRoot) Documents() *memory.Store { return c.documents }

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(c.CreateHandlers(), c.files, httpin.Options{
		DefaultCurrency: c.cfg.DefaultCurrency,
	})
}

func (c *CompositionRoot) CreateHandlers() httpin.Handlers {
	uows := FuncUoWFactory(func() commands.UoW { return c.uowFactory.Create() })
	rfqUoWs := FuncRFQUoWFactory(func() commands.RFQUoW { return c.uowFactory.Create() })

	return httpin.Handlers{
		CreateRFQ:             commands.NewCreateRFQCommandHandler(rfqUoWs),
		RFQTransition:         commands.NewRFQTransitionCommandHandler(rfqUoWs),
		AssignSuppliers:       commands.NewAssignSuppliersCommandHandler(rfqUoWs),
		SubmitSupplierQuote:   commands.NewSubmitSupplierQuoteCommandHandler(uows),
		RejectSupplierQuote:   commands.NewRejectSupplierQuoteCommandHandler(uows),
		PublishSalesQuote:     commands.NewPublishSalesQuoteCommandHandler(uows, services.NewQuotePublisher(c.cfg.QuoteValidity)),
		AcceptQuote:           commands.NewAcceptQuoteCommandHandler(uows),
		DeclineQuote:          commands.NewDeclineQuoteCommandHandler(uows),
		AttachPurchaseOrder:   commands.NewAttachPurchaseOrderCommandHandler(uows),
		OverrideQuoteStatus:   commands.NewOverrideQuoteStatusCommandHandler(uows),
		ConvertToSalesOrder:   commands.NewConvertToSalesOrderCommandHandler(uows, c.numberer),
		IssuePurchaseOrder:    commands.NewIssuePurchaseOrderCommandHandler(uows),
		AdvancePurchaseOrder:  commands.NewAdvancePurchaseOrderCommandHandler(uows),
		AttachSupplierInvoice: commands.NewAttachSupplierInvoiceCommandHandler(uows),
		AdvanceOrderStatus:    commands.NewAdvanceOrderStatusCommandHandler(uows),
		MarkPaid:              commands.NewMarkPaidCommandHandler(uows),
		Reorder:               commands.NewReorderCommandHandler(uows),
		Archive:               commands.NewArchiveCommandHandler(uows),
		Reopen:                commands.NewReopenCommandHandler(uows),
		UploadFile:            commands.NewUploadFileCommandHandler(c.files),

		ListRFQs:             queries.NewListRFQsQueryHandler(c.gormDB),
		GetRFQ:               queries.NewGetRFQQueryHandler(c.gormDB),
		ListSalesOrders:      queries.NewListSalesOrdersQueryHandler(c.gormDB),
		ListPurchaseOrders:   queries.NewListPurchaseOrdersQueryHandler(c.gormDB),
		GetHistory:           queries.NewGetHistoryQueryHandler(c.gormDB),
		GetPurchaseOrderFile: queries.NewGetPurchaseOrderFileQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateRelayTransitionsCommandHandler() commands.RelayTransitionsCommandHandler {
	return commands.NewRelayTransitionsCommandHandler(transitionlog.NewOutbox(c.gormDB), c.sink)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	relay, err := jobs.NewOutboxRelayJob(
		c.CreateRelayTransitionsCommandHandler(),
		c.metrics,
		c.cfg.OutboxSchedule,
		c.cfg.OutboxBatchSize,
		c.logger,
	)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(relay), nil
}

type FuncRFQUoWFactory func() commands.RFQUoW

func (f FuncRFQUoWFactory) Create() commands.RFQUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
