package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diegoclair/reminder-bot/internal/chat/discord"
	"github.com/diegoclair/reminder-bot/internal/chat/slack"
	"github.com/diegoclair/reminder-bot/internal/config"
	"github.com/diegoclair/reminder-bot/internal/domain/contract"
	"github.com/diegoclair/reminder-bot/internal/domain/entity"
	"github.com/diegoclair/reminder-bot/internal/handlers"
	"github.com/diegoclair/reminder-bot/internal/metrics"
	"github.com/diegoclair/reminder-bot/internal/reminder"
	"github.com/diegoclair/reminder-bot/internal/scheduler"
	"github.com/diegoclair/reminder-bot/internal/timer"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Deps are the collaborators the app does not build itself. DM is nil when the
// delivery journal is disabled and Clock is nil outside tests.
type Deps struct {
	Chat    contract.ChatClient
	DM      contract.DataManager
	Metrics *metrics.Metrics
	Log     *zap.Logger
	Clock   clockwork.Clock
}

// App owns every long-lived resource of the bot.
type App struct {
	cfg   config.Config
	token string
	defs  []entity.Definition
	deps  Deps

	reminders *reminder.Service
	pruner    *scheduler.Scheduler
	server    *http.Server
	loggedIn  bool
}

// NewChatClient builds the adapter for the configured platform.
func NewChatClient(platform string, log *zap.Logger) (contract.ChatClient, error) {
	switch platform {
	case config.PlatformDiscord:
		return discord.New(log), nil
	case config.PlatformSlack:
		return slack.New(log), nil
	default:
		return nil, fmt.Errorf("unsupported chat platform %q", platform)
	}
}

func New(cfg config.Config, secret config.Secret, defs []entity.Definition, deps Deps) (*App, error) {
	if deps.Chat == nil {
		return nil, errors.New("chat client is required")
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:   cfg,
		token: secret.Token,
		defs:  defs,
		deps:  deps,
	}
	a.reminders = reminder.New(deps.Chat, deps.DM, deps.Metrics, deps.Log, reminder.Options{
		Location:     loc,
		PollInterval: cfg.PollInterval,
		Grace:        cfg.MissedGrace,
		SendTimeout:  cfg.SendTimeout,
		Clock:        deps.Clock,
	})

	if deps.DM != nil && cfg.JournalRetention > 0 {
		a.pruner, err = scheduler.New(deps.DM, cfg.JournalRetention, deps.Log,
			timer.WithClock(deps.Clock),
			timer.WithLocation(loc),
			timer.WithPollInterval(cfg.PollInterval),
		)
		if err != nil {
			return nil, err
		}
	}

	if cfg.HTTPAddr != "" {
		var slashCommands *handlers.SlackHandler
		if cfg.SlackSigningSecret != "" {
			slashCommands = handlers.New(a.reminders, deps.DM, cfg.SlackSigningSecret, loc)
		}
		a.server = &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           handlers.NewRouter(deps.Metrics, slashCommands),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return a, nil
}

// Reminders exposes the reminder service, mostly for status reporting.
func (a *App) Reminders() *reminder.Service {
	return a.reminders
}

// Start logs in, resolves the optional forum thread and arms every reminder.
// No timer is running when it returns an error.
func (a *App) Start(ctx context.Context) error {
	log := a.deps.Log

	if err := a.deps.Chat.Login(ctx, a.token); err != nil {
		return fmt.Errorf("failed to log in: %w", err)
	}
	a.loggedIn = true

	defs := a.defs
	if a.cfg.ForumChannelID != "" {
		withThread, err := a.reminders.AttachThreadEmbed(ctx, a.cfg.ForumChannelID, a.cfg.ThreadName, defs)
		if err != nil {
			log.Warn("forum thread lookup failed, reminders go out without it", zap.Error(err))
		} else {
			defs = withThread
		}
	}

	if _, err := a.reminders.Setup(ctx, a.cfg.ChannelID, defs); err != nil {
		return fmt.Errorf("failed to set up reminders: %w", err)
	}

	if a.pruner != nil {
		a.pruner.Start()
	}

	if a.server != nil {
		go func() {
			log.Info("http server starting", zap.String("addr", a.server.Addr))
			if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("http server failed", zap.Error(err))
			}
		}()
	}

	return nil
}

// Shutdown logs out, disposes the timers and waits for in-flight sends until
// ctx expires. It is safe after a failed Start.
func (a *App) Shutdown(ctx context.Context) error {
	log := a.deps.Log
	var errs []error

	if a.loggedIn {
		if err := a.deps.Chat.Logout(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to log out: %w", err))
		}
		a.loggedIn = false
	}

	a.reminders.TeardownAll()
	if a.pruner != nil {
		a.pruner.Stop()
	}

	dispatcher := a.reminders.Dispatcher()
	if err := dispatcher.Wait(ctx); err != nil {
		log.Warn("in-flight sends did not finish before shutdown", zap.Error(err))
	}
	dispatcher.Close()

	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop http server: %w", err))
		}
	}

	log.Info("shutdown complete")
	return errors.Join(errs...)
}

// Run starts the app and blocks until SIGINT or SIGTERM, then shuts down
// within the configured timeout. A second signal kills the process.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Start(ctx); err != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		_ = a.Shutdown(shutdownCtx)
		return err
	}

	a.deps.Log.Info("reminder bot running, press Ctrl+C to stop")
	<-ctx.Done()
	stop()

	a.deps.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	return a.Shutdown(shutdownCtx)
}
