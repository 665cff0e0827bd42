package app

import (
	"context"
	"fmt"

	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/internal/infrastructure/config"
	"flightwatch-service/internal/infrastructure/oauth"
	"flightwatch-service/internal/infrastructure/persistence"
	"flightwatch-service/internal/infrastructure/router"
	"flightwatch-service/internal/interface/gmail"
	"flightwatch-service/internal/interface/notifier"
	repo "flightwatch-service/internal/interface/repository"
	"flightwatch-service/internal/usecase"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"
	"flightwatch-service/templates"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Container holds the wired services shared by the commands
type Container struct {
	DB       *gorm.DB
	Mongo    *mongo.Client
	Redis    *redis.Client
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	History    repository.DeliveryHistoryRepository
	Accounts   *usecase.AccountService
	Flights    *usecase.FlightQuery
	Cycle      *usecase.NotificationCycle
	Dispatcher *usecase.CycleDispatcher

	eventBus *notifier.EventBusSender
	log      logger.Logger
}

// Build connects the stores and wires the notification pipeline.
// MongoDB, Redis and each delivery channel are optional and left out when not configured.
func Build(ctx context.Context, cfg *config.Config, log logger.Logger) (*Container, error) {
	c := &Container{log: log}

	log.Info("Connecting to PostgreSQL")
	db, err := persistence.NewPostgresDB(cfg.PostgresDSN, persistence.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	if err != nil {
		return nil, err
	}
	c.DB = db
	if cfg.DBRunMigrations {
		if err := persistence.Migrate(db, repo.Migrations...); err != nil {
			return nil, err
		}
	}

	c.History = repo.NopDeliveryHistoryRepository{}
	if cfg.MongoURI != "" {
		log.Info("Connecting to MongoDB")
		client, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		c.Mongo = client
		c.History = repo.NewMongoDeliveryHistoryRepository(ctx, persistence.GetDatabase(client, cfg.MongoDB), log)
	} else {
		log.Warn("MONGODB_DSN not set, notification history disabled")
	}

	c.Redis = persistence.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if cfg.RedisAddr != "" && c.Redis == nil {
		log.Warn("Redis unavailable, using in-memory job store and no response cache", "addr", cfg.RedisAddr)
	}

	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.Metrics = metrics.NewMetrics(cfg.MetricsNamespace, c.Registry)

	channels := router.NewChannelRouter(log)
	if err := c.registerSenders(ctx, cfg, channels); err != nil {
		return nil, err
	}

	userRepo := repo.NewGormUserRepository(db)
	flightRepo := repo.NewGormFlightRepository(db)
	statusRepo := repo.NewGormFlightStatusRepository(db)
	airlineRepo := repo.NewGormAirlineRepository(db)

	c.Accounts = usecase.NewAccountService(userRepo, cfg.BcryptCost, log)
	c.Flights = usecase.NewFlightQuery(flightRepo, airlineRepo, log)
	c.Cycle = usecase.NewNotificationCycle(
		userRepo,
		flightRepo,
		statusRepo,
		c.History,
		channels,
		templates.NewFlightUpdateTemplate(),
		c.Metrics,
		log,
	).WithWatermarkPrune(cfg.WatermarkPrune)

	var jobs repository.CycleJobRepository = repo.NewMemoryCycleJobRepository()
	if c.Redis != nil {
		jobs = repo.NewRedisCycleJobRepository(c.Redis, cfg.MetricsNamespace, cfg.JobTTL)
	}
	c.Dispatcher = usecase.NewCycleDispatcher(c.Cycle, jobs, cfg.CycleWorkers, cfg.CycleQueueSize, cfg.CycleTimeout, log)

	return c, nil
}

func (c *Container) registerSenders(ctx context.Context, cfg *config.Config, channels *router.ChannelRouter) error {
	if cfg.SMSAccountSID != "" && cfg.SMSAuthToken != "" {
		channels.Register(notifier.NewSMSSender(notifier.SMSConfig{
			BaseURL:    cfg.SMSBaseURL,
			AccountSID: cfg.SMSAccountSID,
			AuthToken:  cfg.SMSAuthToken,
			FromNumber: cfg.SMSFromNumber,
			Timeout:    cfg.SMSTimeout,
		}, c.log))
	} else {
		c.log.Warn("SMS gateway not configured, sms notifications are skipped")
	}

	switch cfg.EmailTransport {
	case "gmail":
		if cfg.GmailRefreshToken == "" {
			return fmt.Errorf("EMAIL_TRANSPORT=gmail requires GMAIL_REFRESH_TOKEN")
		}
		gmailOAuth := oauth.NewGmailOAuth(cfg.GmailClientID, cfg.GmailClientSecret, cfg.GmailRefreshToken, c.log)
		sender, err := gmail.NewGmailSender(ctx, gmailOAuth.GetTokenSource(ctx), cfg.MailFrom, cfg.MailDomain, c.log)
		if err != nil {
			return fmt.Errorf("failed to create Gmail sender: %w", err)
		}
		channels.Register(sender)
	default:
		if cfg.SMTPHost != "" {
			dialer := notifier.NewSMTPDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
			channels.Register(notifier.NewEmailSender(dialer, cfg.MailFrom, cfg.MailDomain, c.log))
		} else {
			c.log.Warn("SMTP relay not configured, email notifications are skipped")
		}
	}

	if cfg.AMQPURL != "" {
		c.eventBus = notifier.NewEventBusSender(cfg.AMQPURL, cfg.EventExchange, c.log)
		channels.Register(c.eventBus)
	} else {
		c.log.Warn("AMQP_URL not set, in-app notifications are skipped")
	}
	return nil
}

// Close releases every connection opened by Build
func (c *Container) Close(ctx context.Context) {
	if c.eventBus != nil {
		if err := c.eventBus.Close(); err != nil {
			c.log.Error("Event bus close error", "error", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.log.Error("Redis close error", "error", err)
		}
	}
	if c.Mongo != nil {
		if err := c.Mongo.Disconnect(ctx); err != nil {
			c.log.Error("MongoDB disconnect error", "error", err)
		}
	}
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				c.log.Error("PostgreSQL close error", "error", err)
			}
		}
	}
}
