package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	gormlogger "gorm.io/gorm/logger"

	"voxchat-server/internal/config"
	"voxchat-server/internal/domain/chat"
	"voxchat-server/internal/infrastructure/crontab"
	"voxchat-server/internal/infrastructure/database"
	"voxchat-server/internal/infrastructure/llmprovider"
	"voxchat-server/internal/infrastructure/logger"
	"voxchat-server/internal/infrastructure/observability"
	"voxchat-server/internal/infrastructure/repository/history"
	"voxchat-server/internal/infrastructure/repository/sessionmeta"
	"voxchat-server/internal/infrastructure/speech"
	"voxchat-server/internal/interfaces/httpserver"
)

// Application bundles the long-running parts of the service.
type Application struct {
	httpServer *httpserver.HttpServer
	crontab    *crontab.Crontab
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, ctab *crontab.Crontab, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		crontab:    ctab,
		log:        log,
	}
}

// Start runs the HTTP server and the backfill scheduler until ctx is
// cancelled or one of them fails.
func (a *Application) Start(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return a.httpServer.Run(groupCtx)
	})
	group.Go(func() error {
		return a.crontab.Run(groupCtx)
	})
	return group.Wait()
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	historyRepository := history.NewPostgresRepository(db)
	sessionRepository := sessionmeta.NewPostgresRepository(db)
	llmClient := llmprovider.NewClient(cfg, log)
	ttsClient := speech.NewClient(cfg, log)

	chatService := chat.NewService(historyRepository, llmClient, cfg.DefaultModel, cfg.SystemPrompt, log)
	namingService := chat.NewNamingService(historyRepository, llmClient, cfg.NamingModel, log)
	sessionService := chat.NewSessionService(sessionRepository, historyRepository, namingService, log)

	httpServer := httpserver.New(cfg, log, chatService, sessionService, llmClient, ttsClient)
	ctab := crontab.NewCrontab(sessionService, cfg, log)
	app := NewApplication(httpServer, ctab, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
