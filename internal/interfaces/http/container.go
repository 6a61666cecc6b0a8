package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"lineup/internal/application/queue/usecases"
	"lineup/internal/infrastructure/announce"
	"lineup/internal/infrastructure/auth"
	"lineup/internal/infrastructure/config"
	"lineup/internal/infrastructure/ratelimit"
	"lineup/internal/infrastructure/repository"
	queuehandlers "lineup/internal/interfaces/http/handlers/queue"
	"lineup/internal/interfaces/http/middleware"
	"lineup/internal/interfaces/http/routes"
	"lineup/internal/shared/db"
	"lineup/internal/shared/logger"
)

// Container wires the queue engine together: repositories, use cases,
// handlers, middleware, and the announcement worker pool. It owns the
// lifecycle of background components and exposes Shutdown for graceful
// termination.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	announcePool *announce.Pool

	jwtSvc         *auth.JWTService
	authMiddleware *middleware.AuthMiddleware
	issueLimiter   ratelimit.IssueLimiter

	queueHandler *queuehandlers.QueueHandler
}

// NewContainer builds the full dependency graph. A nil redis client is
// allowed: announcements then go to the log and issuance is not throttled.
func NewContainer(gormDB *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Container {
	c := &Container{
		engine: gin.New(),
		db:     gormDB,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}

	ticketRepo := repository.NewTicketRepository(gormDB)
	eventRepo := repository.NewTicketEventRepository(gormDB)
	counterRepo := repository.NewCounterRepository(gormDB)
	locationRepo := repository.NewLocationRepository(gormDB)
	txManager := db.NewTransactionManager(gormDB)

	var publisher announce.Publisher
	if redisClient != nil {
		publisher = announce.NewRedisPublisher(redisClient, log)
		c.issueLimiter = ratelimit.NewRedisIssueLimiter(redisClient, cfg.RateLimit.IssuePerMinute)
	} else {
		publisher = announce.NewLogPublisher(log)
		c.issueLimiter = ratelimit.NopLimiter{}
	}
	c.announcePool = announce.NewPool(publisher, cfg.Queue.AnnounceWorkers, cfg.Queue.AnnounceBufferSize, log)
	c.announcePool.Start()

	issueUC := usecases.NewIssueTicketUseCase(ticketRepo, eventRepo, counterRepo, locationRepo, txManager, cfg.Queue.NumberPad, log)
	callNextUC := usecases.NewCallNextUseCase(ticketRepo, eventRepo, counterRepo, txManager, c.announcePool, log)
	recallUC := usecases.NewRecallTicketUseCase(ticketRepo, eventRepo, counterRepo, txManager, c.announcePool, log)
	startServingUC := usecases.NewStartServingUseCase(ticketRepo, txManager, log)
	holdUC := usecases.NewHoldTicketUseCase(ticketRepo, eventRepo, txManager, log)
	resumeUC := usecases.NewResumeTicketUseCase(ticketRepo, eventRepo, txManager, log)
	completeUC := usecases.NewCompleteTicketUseCase(ticketRepo, eventRepo, txManager, log)
	cancelUC := usecases.NewCancelTicketUseCase(ticketRepo, eventRepo, txManager, log)
	getTicketUC := usecases.NewGetTicketUseCase(ticketRepo, eventRepo)
	listWaitingUC := usecases.NewListWaitingUseCase(ticketRepo, counterRepo)
	queueStatusUC := usecases.NewQueueStatusUseCase(ticketRepo, counterRepo)

	c.queueHandler = queuehandlers.NewQueueHandler(
		issueUC,
		callNextUC,
		recallUC,
		startServingUC,
		holdUC,
		resumeUC,
		completeUC,
		cancelUC,
		getTicketUC,
		listWaitingUC,
		queueStatusUC,
	)

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, 7)
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)

	c.setupRoutes()

	return c
}

func (c *Container) setupRoutes() {
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.Recovery())
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	routes.SetupQueueRoutes(c.engine, &routes.QueueRouteConfig{
		QueueHandler:     c.queueHandler,
		AuthMiddleware:   c.authMiddleware,
		IssueRateLimiter: middleware.IssueRateLimit(c.issueLimiter, c.log),
	})
}

// Engine returns the configured Gin engine.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown drains the announcement pool and releases external connections.
func (c *Container) Shutdown(ctx context.Context) error {
	c.announcePool.Stop()

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}

	c.log.Infow("container shutdown complete")
	return nil
}
