package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/diegoclair/reminder-bot/internal/domain/contract"
	"github.com/diegoclair/reminder-bot/internal/domain/entity"
	"github.com/diegoclair/reminder-bot/internal/metrics"
	"github.com/diegoclair/reminder-bot/internal/timer"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const journalTimeout = 5 * time.Second

type Options struct {
	Location     *time.Location
	PollInterval time.Duration
	Grace        time.Duration
	SendTimeout  time.Duration

	// Clock drives the timers; the real clock when nil.
	Clock clockwork.Clock
}

// Service owns the reminder timers bound to one channel.
type Service struct {
	chat     contract.ChatClient
	dm       contract.DataManager
	metrics  *metrics.Metrics
	log      *zap.Logger
	opts     Options
	dispatch *Dispatcher

	mu     sync.Mutex
	defs   []entity.Definition
	timers []*timer.Daily
}

// New builds the service. dm and m are optional: without dm nothing is
// journaled, without m nothing is measured.
func New(chat contract.ChatClient, dm contract.DataManager, m *metrics.Metrics, log *zap.Logger, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = timer.DefaultPollInterval
	}
	if opts.Grace <= 0 {
		opts.Grace = timer.DefaultGrace
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = 15 * time.Second
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	s := &Service{
		chat:    chat,
		dm:      dm,
		metrics: m,
		log:     log,
		opts:    opts,
	}
	s.dispatch = NewDispatcher(log, opts.SendTimeout, func(string, error) {
		if s.metrics != nil {
			s.metrics.Sends.WithLabelValues(entity.DeliveryFailed).Inc()
		}
	})
	return s
}

// Dispatcher exposes the background send runner so shutdown can drain it.
func (s *Service) Dispatcher() *Dispatcher {
	return s.dispatch
}

// AttachThreadEmbed resolves a forum thread by name and attaches its embed
// to the definitions marked AttachThread. A thread that cannot be found is
// logged and leaves defs unchanged.
func (s *Service) AttachThreadEmbed(ctx context.Context, forumID, name string, defs []entity.Definition) ([]entity.Definition, error) {
	channel, err := s.chat.Channel(ctx, forumID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve forum channel %s: %w", forumID, err)
	}

	forum, ok := channel.(contract.ForumChannel)
	if !ok {
		return nil, fmt.Errorf("%s: %w", forumID, ErrNotForum)
	}

	thread, err := FindThread(ctx, forum, name)
	if errors.Is(err, ErrThreadNotFound) {
		s.log.Warn("forum thread not found, reminders go out without it",
			zap.String("forum", forumID), zap.String("thread", name))
		return defs, nil
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("forum thread attached", zap.String("thread", thread.Name), zap.String("url", thread.URL))
	return WithThreadEmbed(defs, ThreadEmbed(thread)), nil
}

// Setup resolves the channel once, then builds and starts one timer per
// definition. When anything fails, the timers created so far are disposed.
func (s *Service) Setup(ctx context.Context, channelID string, defs []entity.Definition) ([]*timer.Daily, error) {
	if err := Validate(defs); err != nil {
		return nil, err
	}

	channel, err := s.chat.Channel(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve channel %s: %w", channelID, err)
	}

	s.mu.Lock()
	s.defs = defs
	s.mu.Unlock()

	timers := make([]*timer.Daily, 0, len(defs))
	for i, def := range defs {
		t, err := timer.New(def.Hour, def.Minute, s.callback(i, def, channel),
			timer.WithClock(s.opts.Clock),
			timer.WithLocation(s.opts.Location),
			timer.WithPollInterval(s.opts.PollInterval),
			timer.WithGrace(s.opts.Grace),
			timer.WithLogger(s.log),
			timer.WithName(fmt.Sprintf("%d@%s", i, def.Clock())),
		)
		if err != nil {
			s.TeardownAll()
			return nil, fmt.Errorf("failed to create timer for reminder %d: %w", i, err)
		}

		s.mu.Lock()
		s.timers = append(s.timers, t)
		s.mu.Unlock()
		timers = append(timers, t)
	}

	for _, t := range timers {
		t.Start()
	}
	if s.metrics != nil {
		s.metrics.Timers.Set(float64(len(timers)))
	}

	s.log.Info("reminders armed", zap.String("channel", channelID), zap.Int("count", len(timers)))
	return timers, nil
}

// TeardownAll disposes every timer created so far. It is safe to call after
// a failed Setup and more than once.
func (s *Service) TeardownAll() {
	s.mu.Lock()
	timers := s.timers
	s.timers = nil
	s.mu.Unlock()

	for _, t := range timers {
		t.Dispose()
	}
	if s.metrics != nil {
		s.metrics.Timers.Set(0)
	}
	if len(timers) > 0 {
		s.log.Info("reminders disposed", zap.Int("count", len(timers)))
	}
}

// Status lists the configured reminders with their next fire instants.
func (s *Service) Status() []entity.ReminderStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.ReminderStatus, 0, len(s.defs))
	for i, def := range s.defs {
		st := entity.ReminderStatus{
			Index: i,
			Clock: def.Clock(),
			Days:  def.Days,
			Text:  def.Text,
		}
		if i < len(s.timers) {
			st.Next = s.timers[i].Next()
			st.Running = s.timers[i].Running()
		}
		out = append(out, st)
	}
	return out
}

// callback filters a fire by weekday and hands the send to the dispatcher.
func (s *Service) callback(index int, def entity.Definition, channel contract.Channel) timer.Callback {
	return func(ctx context.Context, at time.Time) error {
		log := s.log.With(zap.Int("reminder", index), zap.Time("at", at))

		if !def.Days.Contains(at.Weekday()) {
			log.Debug("reminder filtered by weekday", zap.Stringer("days", def.Days), zap.Stringer("weekday", at.Weekday()))
			s.countFire("filtered")
			if s.dm != nil {
				s.dispatch.Go(fmt.Sprintf("journal %d", index), func(context.Context) error {
					s.record(index, channel.ID(), at, entity.DeliverySkipped, nil)
					return nil
				})
			}
			return nil
		}
		s.countFire("matched")

		s.dispatch.Go(fmt.Sprintf("reminder %d", index), func(ctx context.Context) error {
			start := time.Now()
			err := channel.SendMessage(ctx, def.Text, def.Embed)
			if s.metrics != nil {
				s.metrics.Latency.Observe(time.Since(start).Seconds())
			}

			if err != nil {
				s.record(index, channel.ID(), at, entity.DeliveryFailed, err)
				return fmt.Errorf("failed to send reminder to %s: %w", channel.ID(), err)
			}

			if s.metrics != nil {
				s.metrics.Sends.WithLabelValues(entity.DeliverySent).Inc()
			}
			s.record(index, channel.ID(), at, entity.DeliverySent, nil)
			log.Info("reminder sent", zap.String("channel", channel.ID()))
			return nil
		})
		return nil
	}
}

func (s *Service) countFire(result string) {
	if s.metrics != nil {
		s.metrics.Fires.WithLabelValues(result).Inc()
	}
}

// record writes a journal row. Journal failures are logged only.
func (s *Service) record(index int, channelID string, at time.Time, status string, sendErr error) {
	if s.dm == nil {
		return
	}

	delivery := &entity.Delivery{
		ReminderIndex: index,
		ChannelID:     channelID,
		ScheduledFor:  at,
		Status:        status,
	}
	if sendErr != nil {
		delivery.Error = sendErr.Error()
	}

	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()

	if err := s.dm.Delivery().Create(ctx, delivery); err != nil {
		s.log.Warn("failed to journal delivery", zap.Int("reminder", index), zap.Error(err))
	}
}
