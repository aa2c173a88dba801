package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/diegoclair/reminder-bot/internal/app"
	"github.com/diegoclair/reminder-bot/internal/config"
	"github.com/diegoclair/reminder-bot/internal/database"
	"github.com/diegoclair/reminder-bot/internal/domain/contract"
	"github.com/diegoclair/reminder-bot/internal/logger"
	"github.com/diegoclair/reminder-bot/internal/metrics"
	"github.com/diegoclair/reminder-bot/internal/reminder"
	"github.com/diegoclair/reminder-bot/migrator/sqlite"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}

	if err := run(context.Background(), cfg, zl, app.NewChatClient); err != nil {
		zl.Error("reminder bot stopped with an error", zap.Error(err))
		_ = zl.Sync()
		os.Exit(1)
	}
	_ = zl.Sync()
}

// chatFactory builds the chat client for a platform.
type chatFactory func(platform string, log *zap.Logger) (contract.ChatClient, error)

func run(ctx context.Context, cfg config.Config, zl *zap.Logger, newChat chatFactory) error {
	secret, err := config.LoadSecret(cfg.SecretPath)
	if err != nil {
		return err
	}

	var dm contract.DataManager
	if cfg.DatabasePath != "" {
		db, err := database.New(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer db.Close()

		zl.Info("running migrations")
		if err := sqlite.Migrate(db.DB()); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		dm = database.NewInstance(db)
	}

	chat, err := newChat(cfg.ChatPlatform, zl)
	if err != nil {
		return err
	}

	a, err := app.New(cfg, secret, reminder.Definitions(), app.Deps{
		Chat:    chat,
		DM:      dm,
		Metrics: metrics.New(),
		Log:     zl,
	})
	if err != nil {
		return err
	}

	zl.Info("starting reminder bot",
		zap.String("platform", cfg.ChatPlatform),
		zap.String("channel", cfg.ChannelID),
		zap.String("timezone", cfg.Timezone),
		zap.Bool("journal", dm != nil),
	)
	return a.Run(ctx)
}
