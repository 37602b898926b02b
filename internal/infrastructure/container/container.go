package container

import (
	"fmt"

	"github.com/place222/social-backend/internal/config"
	httpdelivery "github.com/place222/social-backend/internal/delivery/http"
	"github.com/place222/social-backend/internal/delivery/http/handler"
	"github.com/place222/social-backend/internal/delivery/http/middleware"
	"github.com/place222/social-backend/internal/infrastructure/database"
	"github.com/place222/social-backend/internal/infrastructure/server"
	"github.com/place222/social-backend/internal/infrastructure/wingman"
	"github.com/place222/social-backend/internal/logger"
	engine "github.com/place222/social-backend/internal/matching"
	"github.com/place222/social-backend/internal/repository/postgres"
	"github.com/place222/social-backend/internal/repository/rediscache"
	"github.com/place222/social-backend/internal/usecase/auth"
	"github.com/place222/social-backend/internal/usecase/matching"
	"github.com/place222/social-backend/internal/usecase/onboarding"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config  *config.Config
	Log     *logger.Logger
	DB      *sqlx.DB
	Redis   *redis.Client
	Server  *server.Server
	Wingman *wingman.Client
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.New(&logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "social-backend",
	})

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.RunMigrations(db, cfg.Database.MigrationsPath, log); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Optional wingman enrichment; everything works without it.
	var wingmanClient *wingman.Client
	if cfg.GeminiAPIKey != "" {
		wingmanClient, err = wingman.NewClient(cfg.GeminiAPIKey)
		if err != nil {
			log.WithError(err).Warn("failed to initialize wingman client, continuing without enrichment")
			wingmanClient = nil
		}
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	questionRepo := postgres.NewQuestionRepository(db)
	responseRepo := postgres.NewResponseRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	matchRepo := postgres.NewMatchRepository(db)

	// Read-through cache for the candidate scan
	cacheStore := rediscache.NewStore(redisClient, responseRepo, profileRepo, log)

	// Engine
	ranker := engine.NewRanker(cacheStore, cacheStore)

	// Use cases
	authUseCase := auth.NewAuthUseCase(userRepo, cfg.JWT.Secret)
	onboardingUseCase := onboarding.NewOnboardingUseCase(questionRepo, responseRepo, profileRepo, cacheStore)
	matchingUseCase := matching.NewMatchingUseCase(ranker, profileRepo, matchRepo, wingmanClient, log)

	// Handlers
	healthHandler := handler.NewHealthHandler(db, redisClient)
	authHandler := handler.NewAuthHandler(authUseCase)
	onboardingHandler := handler.NewOnboardingHandler(onboardingUseCase)
	matchingHandler := handler.NewMatchingHandler(matchingUseCase)

	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	router := httpdelivery.NewRouter(
		healthHandler,
		authHandler,
		onboardingHandler,
		matchingHandler,
		authMiddleware,
		log,
	)

	srv := server.NewServer(&cfg.Server, router.Setup(), log)

	return &Container{
		Config:  cfg,
		Log:     log,
		DB:      db,
		Redis:   redisClient,
		Server:  srv,
		Wingman: wingmanClient,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Wingman != nil {
		c.Wingman.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.WithError(err).Warn("error closing redis")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
