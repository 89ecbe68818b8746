package container

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/adrianmtzc/campusmatch-backend/internal/config"
	delivery "github.com/adrianmtzc/campusmatch-backend/internal/delivery/http"
	"github.com/adrianmtzc/campusmatch-backend/internal/delivery/http/handler"
	"github.com/adrianmtzc/campusmatch-backend/internal/delivery/http/middleware"
	"github.com/adrianmtzc/campusmatch-backend/internal/infrastructure/database"
	"github.com/adrianmtzc/campusmatch-backend/internal/infrastructure/email"
	"github.com/adrianmtzc/campusmatch-backend/internal/infrastructure/notification"
	"github.com/adrianmtzc/campusmatch-backend/internal/infrastructure/server"
	"github.com/adrianmtzc/campusmatch-backend/internal/infrastructure/storage"
	"github.com/adrianmtzc/campusmatch-backend/internal/repository/postgres"
	"github.com/adrianmtzc/campusmatch-backend/internal/usecase/auth"
	"github.com/adrianmtzc/campusmatch-backend/internal/usecase/chat"
	"github.com/adrianmtzc/campusmatch-backend/internal/usecase/event"
	"github.com/adrianmtzc/campusmatch-backend/internal/usecase/match"
	"github.com/adrianmtzc/campusmatch-backend/internal/usecase/studygroup"
	"github.com/adrianmtzc/campusmatch-backend/internal/usecase/user"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Logger *slog.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	logger := newLogger(&cfg.Logging)

	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize photo storage
	photoStorage, localUploads, err := newPhotoStorage(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize photo storage: %w", err)
	}

	// Initialize email sender
	var emailSender email.Sender
	if cfg.SMTP.Host != "" {
		emailSender = email.NewSMTPSender(&cfg.SMTP)
	} else {
		logger.Warn("SMTP not configured, email delivery disabled")
		emailSender = email.NewNoopSender(logger)
	}

	notifier := notification.NewLogNotifier(logger)

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	groupRepo := postgres.NewStudyGroupRepository(db)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		emailSender,
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHour,
		logger,
	)
	userUseCase := user.NewUserUseCase(
		userRepo,
		profileRepo,
		photoStorage,
		logger,
	)
	matchUseCase := match.NewMatchUseCase(
		matchRepo,
		userRepo,
		notifier,
		logger,
	)
	chatUseCase := chat.NewChatUseCase(
		messageRepo,
		matchRepo,
		notifier,
		logger,
	)
	eventUseCase := event.NewEventUseCase(
		eventRepo,
		userRepo,
		notifier,
		logger,
	)
	groupUseCase := studygroup.NewStudyGroupUseCase(
		groupRepo,
		userRepo,
		notifier,
		logger,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	userHandler := handler.NewUserHandler(userUseCase)
	matchHandler := handler.NewMatchHandler(matchUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)
	eventHandler := handler.NewEventHandler(eventUseCase)
	groupHandler := handler.NewStudyGroupHandler(groupUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	rateLimit := middleware.NewRateLimitMiddleware(redisClient, cfg.RateLimit.RequestsPerMinute, logger)

	// Initialize router
	router := delivery.NewRouter(
		authHandler,
		userHandler,
		matchHandler,
		chatHandler,
		eventHandler,
		groupHandler,
		authMiddleware,
		rateLimit,
		localUploads,
	)

	// Initialize server
	srv := server.NewServer(&cfg.Server, router.Setup())

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Logger: logger,
	}, nil
}

func newLogger(cfg *config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// newPhotoStorage returns the configured backend plus the local directory to
// serve statically (empty for s3).
func newPhotoStorage(cfg *config.StorageConfig) (storage.PhotoStorage, string, error) {
	if cfg.Type == "s3" {
		s3Store, err := storage.NewS3Storage(context.Background(), cfg.S3Bucket, cfg.S3Region)
		if err != nil {
			return nil, "", err
		}
		return s3Store, "", nil
	}
	localStore, err := storage.NewLocalStorage(cfg.Path)
	if err != nil {
		return nil, "", err
	}
	return localStore, cfg.Path, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Error("failed to close redis", slog.String("error", err.Error()))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
