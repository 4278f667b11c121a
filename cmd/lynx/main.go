package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"

	"lynx/internal/app/commands"
	"lynx/internal/app/dto"
	analyticsapp "lynx/internal/app/handlers/analytics"
	bookingapp "lynx/internal/app/handlers/bookings"
	costsapp "lynx/internal/app/handlers/costs"
	prefsapp "lynx/internal/app/handlers/preferences"
	reportsapp "lynx/internal/app/handlers/reports"
	"lynx/internal/app/handlers/support"
	"lynx/internal/app/middleware"
	appoutbox "lynx/internal/app/outbox"
	"lynx/internal/app/policies"
	"lynx/internal/app/queries"
	"lynx/internal/app/uow"
	"lynx/internal/domain/booking"
	"lynx/internal/domain/preferences"
	domainreports "lynx/internal/domain/reports"
	"lynx/internal/infra/broker/kafka"
	"lynx/internal/infra/config"
	mongostore "lynx/internal/infra/db/mongo"
	ginserver "lynx/internal/infra/http/gin"
	"lynx/internal/infra/inbox"
	"lynx/internal/infra/obs"
	"lynx/internal/infra/outbox"
	"lynx/internal/infra/storage/jsonfile"
	"lynx/internal/infra/storage/memory"
	"lynx/internal/infra/storage/s3"
	"lynx/internal/infra/storage/xlsx"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg = config.Default()
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", cfg.HTTPAddr)
	}

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}
	defer app.close(logger)

	app.start(ctx, logger)

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Checks:  app.checks,
		Timeout: 3 * time.Second,
	}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "workbook", cfg.WorkbookPath, "state", cfg.StateBackend)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	checks   map[string]obs.Check

	workers []func(ctx context.Context) error
	closers []func() error
	mongo   *mongostore.Client
}

func (a *application) start(ctx context.Context, logger *slog.Logger) {
	for _, run := range a.workers {
		go func(run func(context.Context) error) {
			if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("background worker stopped", "error", err)
			}
		}(run)
	}
}

func (a *application) close(logger *slog.Logger) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn("close failed", "error", err)
		}
	}
	if a.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.mongo.Close(ctx); err != nil {
			logger.Warn("mongo disconnect failed", "error", err)
		}
	}
}

// stores is everything buildApplication picks per backend.
type stores struct {
	prefs       preferences.Store
	outbox      appoutbox.Outbox
	idempotency middleware.IdempotencyStore
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application, error) {
	app := &application{checks: map[string]obs.Check{}}

	cache := xlsx.NewCache()
	workbooks := xlsx.NewRepository(cfg.WorkbookPath, cfg.FXRate, cache, logger)
	app.checks["workbook"] = func(ctx context.Context) error {
		_, err := workbooks.Load(ctx)
		return err
	}

	st := stores{
		prefs:       jsonfile.NewPreferences(cfg.FavoritesFile, cfg.GraphsFile, cfg.TemplatesFile),
		outbox:      memory.NewOutbox(logger),
		idempotency: memory.NewIdempotencyStore(cfg.IdempotencyTTL),
	}
	if cfg.MongoURI != "" {
		client, err := mongostore.New(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		app.mongo = client
		app.checks["mongo"] = client.Ping

		idem, err := mongostore.NewIdempotencyStore(ctx, client.DB, cfg.IdempotencyTTL)
		if err != nil {
			return nil, err
		}
		st.idempotency = idem
		if cfg.StateBackend == config.StateBackendMongo {
			st.prefs = mongostore.NewPreferencesStore(client.DB)
		}
	}
	if cfg.EventsEnabled() {
		if err := app.wireEvents(ctx, cfg, workbooks, &st, logger); err != nil {
			return nil, err
		}
	}

	var archive policies.ReportArchive
	if cfg.ExportEnabled {
		client, err := s3.NewClient(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicEndpoint, logger)
		if err != nil {
			return nil, fmt.Errorf("report archive: %w", err)
		}
		archive = client
		app.checks["archive"] = client.Ping
	}

	factory := memory.NewFactory(workbooks, st.prefs)
	commandBus, queryBus := registerHandlers(cfg, factory, st, archive, logger)

	commandsWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Logging(logger),
		middleware.Validation(middleware.NewStructValidator()),
		middleware.Idempotency(st.idempotency, middleware.JSONResultCodec{}, cfg.IdempotencyTTL),
		middleware.Transaction(factory, txOptions, logger),
		middleware.OutboxFlush(st.outbox),
	)
	queriesWithMiddleware := middleware.ChainQueries(
		queryBus,
		middleware.QueryLogging(logger, cfg.SlowQueryThreshold),
		middleware.QueryValidation(middleware.NewStructValidator()),
	)

	app.handlers = ginserver.Handlers{
		Analytics:   ginserver.AnalyticsHandler{Queries: queriesWithMiddleware},
		Booking:     ginserver.BookingHandler{Commands: commandsWithMiddleware, Queries: queriesWithMiddleware},
		Costs:       ginserver.CostsHandler{Commands: commandsWithMiddleware, Queries: queriesWithMiddleware},
		Preferences: ginserver.PreferencesHandler{Commands: commandsWithMiddleware, Queries: queriesWithMiddleware},
		Report:      ginserver.ReportHandler{Commands: commandsWithMiddleware, Queries: queriesWithMiddleware},
	}
	logger.Info("application wired",
		"commands", commandBus.Keys(),
		"queries", queryBus.Keys(),
		"events", cfg.EventsEnabled(),
		"export", archive != nil,
	)
	return app, nil
}

// txOptions opens exports read-only; they write to the archive, not the workbook.
func txOptions(cmd commands.Command) uow.TxOptions {
	return uow.TxOptions{ReadOnly: cmd.Key() == (reportsapp.ExportReportCommand{}).Key()}
}

// wireEvents swaps the in-process outbox for the Mongo one, starts the relay
// to Kafka and subscribes this instance to workbook saves made elsewhere.
func (a *application) wireEvents(ctx context.Context, cfg config.Config, workbooks *xlsx.Repository, st *stores, logger *slog.Logger) error {
	db := a.mongo.DB
	box, err := outbox.NewStore(ctx, db)
	if err != nil {
		return err
	}
	st.outbox = box

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil, logger)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, producer.Close)

	worker := &outbox.Worker{
		Store:       box,
		Producer:    producer,
		Logger:      logger,
		Interval:    cfg.OutboxPollInterval,
		TopicPrefix: cfg.KafkaTopicPrefix,
		ID:          cfg.InstanceID,
		Backoff:     cfg.RetryBackoff,
	}
	a.workers = append(a.workers, worker.Run)

	consumerName := "lynx-cache-" + cfg.InstanceID
	seen, err := inbox.NewStore(ctx, db, consumerName)
	if err != nil {
		return err
	}
	cacheSync := xlsx.CacheSync{Repository: workbooks, Inbox: seen, Logger: logger}
	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, consumerName, sarama.NewConfig(), cacheSync, logger)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, consumer.Close)
	topic := outbox.TopicFor(cfg.KafkaTopicPrefix, "workbook")
	a.workers = append(a.workers, func(ctx context.Context) error {
		return consumer.Run(ctx, []string{topic})
	})
	logger.Info("event relay enabled", "brokers", cfg.KafkaBrokers, "topic", topic, "consumer", consumerName)
	return nil
}

func registerHandlers(cfg config.Config, factory uow.UoWFactory, st stores, archive policies.ReportArchive, logger *slog.Logger) (*commands.InMemoryBus, *queries.InMemoryBus) {
	encoder := appoutbox.JSONEventEncoder{}
	clock := support.Clock(time.Now)
	policy := booking.EntryPolicy{BookingCommission: cfg.BookingCommission}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler[bookingapp.AddBookingCommand, *bookingapp.AddBookingResult](commandBus, &bookingapp.AddBookingHandler{Policy: policy, Outbox: st.outbox, Encoder: encoder, Clock: clock})
	commands.RegisterHandler[bookingapp.ReplaceBookingsCommand, *bookingapp.ReplaceBookingsResult](commandBus, &bookingapp.ReplaceBookingsHandler{Outbox: st.outbox, Encoder: encoder, Clock: clock})
	commands.RegisterHandler[bookingapp.DeleteBookingsCommand, *bookingapp.DeleteBookingsResult](commandBus, &bookingapp.DeleteBookingsHandler{Outbox: st.outbox, Encoder: encoder, Clock: clock})
	commands.RegisterHandler[costsapp.ReplaceMonthlyCostsCommand, dto.MonthlyCosts](commandBus, &costsapp.ReplaceMonthlyCostsHandler{Rate: cfg.FXRate, Outbox: st.outbox, Encoder: encoder, Clock: clock})
	commands.RegisterHandler[costsapp.ReplaceConsumablesCommand, dto.Consumables](commandBus, &costsapp.ReplaceConsumablesHandler{Outbox: st.outbox, Encoder: encoder, Clock: clock})
	commands.RegisterHandler[reportsapp.PutTemplateCommand, domainreports.Template](commandBus, reportsapp.PutTemplateHandler{})
	commands.RegisterHandler[reportsapp.DeleteTemplateCommand, struct{}](commandBus, reportsapp.DeleteTemplateHandler{})
	commands.RegisterHandler[reportsapp.ExportReportCommand, *dto.ReportExport](commandBus, &reportsapp.ExportReportHandler{
		UoWFactory: factory,
		Archive:    archive,
		Outbox:     st.outbox,
		Encoder:    encoder,
		Clock:      clock,
	})

	prefs := &prefsapp.Handler{UoWFactory: factory}
	commands.RegisterHandler[prefsapp.SaveFavoritesCommand, dto.Favorites](commandBus, commands.HandlerFunc[prefsapp.SaveFavoritesCommand, dto.Favorites](prefs.SaveFavorites))
	commands.RegisterHandler[prefsapp.SaveGraphsCommand, dto.Graphs](commandBus, commands.HandlerFunc[prefsapp.SaveGraphsCommand, dto.Graphs](prefs.SaveGraphs))

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler[bookingapp.ListBookingsQuery, dto.BookingCollection](queryBus, &bookingapp.ListBookingsHandler{UoWFactory: factory})
	queries.RegisterHandler[analyticsapp.GetMetricsQuery, dto.MetricSet](queryBus, &analyticsapp.GetMetricsHandler{UoWFactory: factory, Logger: logger})
	queries.RegisterHandler[analyticsapp.GetSeriesQuery, dto.Series](queryBus, &analyticsapp.GetSeriesHandler{UoWFactory: factory})
	queries.RegisterHandler[analyticsapp.CatalogQuery, []dto.CatalogSection](queryBus, queries.HandlerFunc[analyticsapp.CatalogQuery, []dto.CatalogSection](analyticsapp.Catalog))
	queries.RegisterHandler[reportsapp.ListTemplatesQuery, dto.Templates](queryBus, &reportsapp.ListTemplatesHandler{UoWFactory: factory})
	queries.RegisterHandler[reportsapp.GetReportQuery, domainreports.Report](queryBus, &reportsapp.GetReportHandler{UoWFactory: factory, Clock: clock})

	costs := &costsapp.Handler{UoWFactory: factory, Rate: cfg.FXRate}
	queries.RegisterHandler[costsapp.GetMonthlyCostsQuery, dto.MonthlyCosts](queryBus, queries.HandlerFunc[costsapp.GetMonthlyCostsQuery, dto.MonthlyCosts](costs.MonthlyCosts))
	queries.RegisterHandler[costsapp.GetConsumablesQuery, dto.Consumables](queryBus, queries.HandlerFunc[costsapp.GetConsumablesQuery, dto.Consumables](costs.Consumables))
	queries.RegisterHandler[costsapp.ConsumablesTotalQuery, dto.ConsumablesTotal](queryBus, queries.HandlerFunc[costsapp.ConsumablesTotalQuery, dto.ConsumablesTotal](costs.ConsumablesTotal))
	queries.RegisterHandler[prefsapp.GetFavoritesQuery, dto.Favorites](queryBus, queries.HandlerFunc[prefsapp.GetFavoritesQuery, dto.Favorites](prefs.Favorites))
	queries.RegisterHandler[prefsapp.GetGraphsQuery, dto.Graphs](queryBus, queries.HandlerFunc[prefsapp.GetGraphsQuery, dto.Graphs](prefs.Graphs))

	return commandBus, queryBus
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
