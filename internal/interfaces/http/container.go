package http

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"garage/internal/application/notification"
	serviceOrderUsecases "garage/internal/application/serviceorder/usecases"
	"garage/internal/infrastructure/auth"
	"garage/internal/infrastructure/cache"
	"garage/internal/infrastructure/config"
	"garage/internal/infrastructure/email"
	"garage/internal/infrastructure/metrics"
	"garage/internal/infrastructure/permission"
	"garage/internal/infrastructure/ratelimit"
	"garage/internal/infrastructure/scheduler"
	"garage/internal/infrastructure/slack"
	"garage/internal/infrastructure/telegram"
	"garage/internal/interfaces/http/handlers"
	"garage/internal/interfaces/http/middleware"
	sharedDB "garage/internal/shared/db"
	"garage/internal/shared/logger"
	"garage/internal/shared/money"
	"garage/internal/shared/services/markdown"
)

// Container holds every dependency the HTTP server needs, wired once at startup.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	metrics    *metrics.Metrics
	enforcer   *permission.Enforcer
	dispatcher *notification.Dispatcher
	scheduler  *scheduler.SchedulerManager

	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter
}

// NewContainer wires repositories, use cases, handlers and middlewares.
// redisClient may be nil; statistics caching and rate limiting are then off.
func NewContainer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine:  gin.New(),
		db:      db,
		cfg:     cfg,
		log:     log,
		redis:   redisClient,
		metrics: metrics.New(),
	}

	c.repos = newRepositories(db, log)

	enforcer, err := permission.NewEnforcer(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := enforcer.EnsureDefaultPolicies(); err != nil {
		return nil, fmt.Errorf("failed to load default policies: %w", err)
	}
	c.enforcer = enforcer

	formatter, err := money.NewFormatter(cfg.Notification.Locale, cfg.Notification.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to create money formatter: %w", err)
	}

	c.dispatcher = notification.NewDispatcher(
		c.notificationChannels(),
		c.repos.clientRepo,
		c.repos.vehicleRepo,
		c.repos.serviceCenterRepo,
		c.repos.statusRepo,
		markdown.NewRenderer(),
		formatter,
		c.metrics,
		log,
	)

	tokens := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	var agenda serviceOrderUsecases.AgendaSender
	if cfg.Scheduler.Enabled {
		agenda = c.dispatcher
	}

	c.ucs = newUseCases(cfg, useCaseDeps{
		repos: c.repos,
		tx:    sharedDB.NewTransactionManager(db),
		effects: serviceOrderUsecases.SideEffects{
			Cache:    c.statisticsCache(),
			Notifier: c.dispatcher,
			Metrics:  c.metrics,
		},
		agenda: agenda,
		hasher: auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost),
		tokens: tokens,
	}, log)

	c.hdlrs = newHandlers(cfg, c.ucs, c.healthChecks(), log)

	c.authMiddleware = middleware.NewAuthMiddleware(tokens, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(enforcer, log)

	if cfg.RateLimit.Enabled {
		if redisClient == nil {
			log.Warnw("rate limiting requested without redis, skipping")
		} else {
			c.rateLimiter = middleware.NewRateLimiter(
				ratelimit.NewRedisRateLimiter(redisClient),
				cfg.RateLimit.Requests,
				time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
				log,
			)
		}
	}

	if c.ucs.agendaJob != nil {
		c.scheduler = scheduler.NewSchedulerManager(log)
		if err := c.scheduler.RegisterAgendaJob(cfg.Scheduler.AgendaCron, c.ucs.agendaJob); err != nil {
			return nil, fmt.Errorf("failed to register agenda job: %w", err)
		}
	}

	return c, nil
}

// notificationChannels builds only the enabled senders, leaving the others nil.
func (c *Container) notificationChannels() notification.Channels {
	var ch notification.Channels
	if c.cfg.Telegram.Enabled {
		ch.Telegram = telegram.NewBotService(c.cfg.Telegram)
	}
	if c.cfg.Slack.Enabled {
		ch.Slack = slack.NewWebhookNotifier(c.cfg.Slack)
	}
	if c.cfg.Email.Enabled {
		ch.Email = email.NewSMTPEmailService(c.cfg.Email)
	}
	return ch
}

func (c *Container) statisticsCache() cache.StatisticsCache {
	if c.redis == nil || c.cfg.ServiceOrder.StatsCacheSeconds <= 0 {
		return cache.NopStatisticsCache{}
	}
	ttl := time.Duration(c.cfg.ServiceOrder.StatsCacheSeconds) * time.Second
	return cache.NewRedisStatisticsCache(c.redis, ttl, c.log)
}

func (c *Container) healthChecks() map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{
		"database": handlers.PingFunc(func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}
	if c.redis != nil {
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		})
	}
	return checks
}

// StartBackground starts the agenda scheduler when it is configured.
func (c *Container) StartBackground() {
	if c.scheduler != nil {
		c.scheduler.Start()
		if next, ok := c.scheduler.NextRun(); ok {
			c.log.Infow("agenda scheduler started", "next_run", next)
		}
	}
}

// Shutdown stops the scheduler and waits for pending notifications.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error

	if c.scheduler != nil {
		if err := c.scheduler.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("scheduler: %w", err))
		}
	}

	if err := c.dispatcher.Wait(ctx); err != nil {
		errs = append(errs, fmt.Errorf("notifications: %w", err))
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}

	return errors.Join(errs...)
}
