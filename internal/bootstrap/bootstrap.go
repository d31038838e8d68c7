package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/karthikdm21/Saathi-Voice/internal/app/controllers"
	appRepos "github.com/karthikdm21/Saathi-Voice/internal/app/repositories"
	appRoutes "github.com/karthikdm21/Saathi-Voice/internal/app/routes"
	appServices "github.com/karthikdm21/Saathi-Voice/internal/app/services"
	"github.com/karthikdm21/Saathi-Voice/internal/config"
	appMiddleware "github.com/karthikdm21/Saathi-Voice/internal/middleware"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/filestorage"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/logger"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/transcription"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/websocket"
	"github.com/karthikdm21/Saathi-Voice/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	UserService         appServices.UserService
	StudentService      appServices.StudentService
	MentorService       appServices.MentorService
	MentorshipService   appServices.MentorshipService
	VoiceMessageService appServices.VoiceMessageService

	UserController         *appControllers.UserController
	StudentController      *appControllers.StudentController
	MentorController       *appControllers.MentorController
	MentorshipController   *appControllers.MentorshipController
	VoiceMessageController *appControllers.VoiceMessageController

	Repos       *appRepos.Repositories
	FileStorage *filestorage.LocalStorage
	Transcriber transcription.Transcriber
	Hub         *websocket.Hub // nil when the live feed is disabled
	WSHandler   *websocket.Handler
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := SetupLogger(cfg)
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupLogger applies the logging section of cfg to the global logger
func SetupLogger(cfg *config.Config) zerolog.Logger {
	return logger.Configure(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
}

// SetupStore creates the in-memory store and loads the sample mentors when seeding is enabled.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) *appRepos.Repositories {
	repos := appRepos.NewRepositories(appRepos.NewStore())
	lgr.Info().Msg("In-memory store initialized")

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(ctx, repos, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}
	return repos
}

// BuildDependencies initializes storage, services, controllers and the live feed hub.
// The hub runs until ctx is cancelled.
func BuildDependencies(ctx context.Context, cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Repos: repos, Logger: lgr}

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(
		cfg.Server.StoragePath,
		cfg.UploadsURL(),
		filestorage.WithNaming(filestorage.VoiceName),
		filestorage.WithMaxBytes(cfg.Server.MaxUploadBytes),
	)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Transcriber = transcription.NewPlaceholder(cfg.Transcription.PlaceholderText, lgr.With().Str("component", "transcription").Logger())

	var notifier appServices.ThreadNotifier = appServices.NoopNotifier
	if cfg.Realtime.Enabled {
		hubLogger := lgr.With().Str("component", "websocket").Logger()
		deps.Hub = websocket.NewHub(hubLogger, cfg.Realtime.SendBuffer)
		go deps.Hub.Run(ctx)
		deps.WSHandler = websocket.NewHandler(deps.Hub, repos.MentorshipRepository, hubLogger)
		notifier = deps.Hub
	}

	deps.UserService = appServices.NewUserService(repos.UserRepository, lgr)
	deps.StudentService = appServices.NewStudentService(repos.StudentRepository, lgr)
	deps.MentorService = appServices.NewMentorService(repos.MentorRepository, lgr)
	deps.MentorshipService = appServices.NewMentorshipService(repos.MentorshipRepository, lgr)
	deps.VoiceMessageService = appServices.NewVoiceMessageService(
		repos.VoiceMessageRepository,
		deps.FileStorage,
		deps.Transcriber,
		notifier,
		lgr,
	)

	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.MentorController = appControllers.NewMentorController(deps.MentorService)
	deps.MentorshipController = appControllers.NewMentorshipController(deps.MentorshipService)
	deps.VoiceMessageController = appControllers.NewVoiceMessageController(deps.VoiceMessageService, cfg.Server.MaxUploadBytes)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	case strings.ToLower(cfg.Server.Mode) == "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.Recovery(lgr), appMiddleware.RequestLogger(lgr))
	router.MaxMultipartMemory = cfg.Server.MaxUploadBytes

	appRoutes.SetupRouter(router,
		deps.UserController,
		deps.StudentController,
		deps.MentorController,
		deps.MentorshipController,
		deps.VoiceMessageController,
		deps.WSHandler,
	)

	appRoutes.SetupStatic(router, "/uploads", deps.FileStorage.BasePath())
	lgr.Info().Str("path", deps.FileStorage.BasePath()).Msg("Static file serving configured for uploads directory")

	return router
}
