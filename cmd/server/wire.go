//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"voxchat-server/internal/config"
	"voxchat-server/internal/domain/chat"
	"voxchat-server/internal/domain/llm"
	"voxchat-server/internal/domain/speech"
	"voxchat-server/internal/infrastructure/crontab"
	"voxchat-server/internal/infrastructure/database"
	"voxchat-server/internal/infrastructure/llmprovider"
	"voxchat-server/internal/infrastructure/logger"
	"voxchat-server/internal/infrastructure/repository/history"
	"voxchat-server/internal/infrastructure/repository/sessionmeta"
	ttsclient "voxchat-server/internal/infrastructure/speech"
	"voxchat-server/internal/interfaces/httpserver"
)

var chatSet = wire.NewSet(
	history.NewPostgresRepository,
	wire.Bind(new(chat.HistoryRepository), new(*history.PostgresRepository)),
	sessionmeta.NewPostgresRepository,
	wire.Bind(new(chat.SessionRepository), new(*sessionmeta.PostgresRepository)),
	llmprovider.NewClient,
	wire.Bind(new(llm.CompletionProvider), new(*llmprovider.Client)),
	wire.Bind(new(llm.Transcriber), new(*llmprovider.Client)),
	ttsclient.NewClient,
	wire.Bind(new(speech.Synthesizer), new(*ttsclient.Client)),
	newChatService,
	wire.Bind(new(chat.Service), new(*chat.DefaultService)),
	newNamingService,
	wire.Bind(new(chat.NamingService), new(*chat.DefaultNamingService)),
	chat.NewSessionService,
	wire.Bind(new(chat.SessionService), new(*chat.DefaultSessionService)),
)

// BuildApplication demonstrates how to assemble the service with Wire.
func BuildApplication() (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		chatSet,
		httpserver.New,
		crontab.NewCrontab,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(cfg database.Config) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newChatService(historyRepo chat.HistoryRepository, provider llm.CompletionProvider, cfg *config.Config, log zerolog.Logger) *chat.DefaultService {
	return chat.NewService(historyRepo, provider, cfg.DefaultModel, cfg.SystemPrompt, log)
}

func newNamingService(historyRepo chat.HistoryRepository, provider llm.CompletionProvider, cfg *config.Config, log zerolog.Logger) *chat.DefaultNamingService {
	return chat.NewNamingService(historyRepo, provider, cfg.NamingModel, log)
}
