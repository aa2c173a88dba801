package timer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	DefaultPollInterval = time.Second
	DefaultGrace        = time.Minute
)

var (
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidInterval  = errors.New("invalid poll interval")
)

// Callback is invoked once per day with the scheduled fire instant.
type Callback func(ctx context.Context, at time.Time) error

type Option func(*Daily)

func WithClock(clock clockwork.Clock) Option {
	return func(d *Daily) { d.clock = clock }
}

func WithLocation(loc *time.Location) Option {
	return func(d *Daily) { d.loc = loc }
}

func WithPollInterval(interval time.Duration) Option {
	return func(d *Daily) { d.poll = interval }
}

// WithGrace sets how late a fire may be before it is treated as missed.
func WithGrace(grace time.Duration) Option {
	return func(d *Daily) { d.grace = grace }
}

func WithLogger(log *zap.Logger) Option {
	return func(d *Daily) { d.log = log }
}

func WithName(name string) Option {
	return func(d *Daily) { d.name = name }
}

// Daily fires a callback once per calendar day at a fixed time of day until it
// is disposed.
//
// The loop polls the clock every poll interval. A fire that is detected more
// than the grace period after its scheduled instant (process suspended, wall
// clock moved forward) is skipped, and the timer moves on to the next
// occurrence after the current time.
type Daily struct {
	name   string
	hour   int
	minute int
	fn     Callback
	clock  clockwork.Clock
	loc    *time.Location
	poll   time.Duration
	grace  time.Duration
	log    *zap.Logger

	mu       sync.Mutex
	next     time.Time
	running  bool
	disposed bool
	cancel   context.CancelFunc
	done     chan struct{}
}

// New builds a stopped timer for hour:minute.
func New(hour, minute int, fn Callback, opts ...Option) (*Daily, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return nil, fmt.Errorf("%w: %02d:%02d", ErrInvalidTimeOfDay, hour, minute)
	}
	if fn == nil {
		return nil, errors.New("timer callback is nil")
	}

	d := &Daily{
		name:   fmt.Sprintf("%02d:%02d", hour, minute),
		hour:   hour,
		minute: minute,
		fn:     fn,
		clock:  clockwork.NewRealClock(),
		loc:    time.Local,
		poll:   DefaultPollInterval,
		grace:  DefaultGrace,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.poll <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, d.poll)
	}
	if d.grace < d.poll {
		d.grace = d.poll
	}
	if d.grace >= 24*time.Hour {
		d.grace = 24*time.Hour - time.Nanosecond
	}
	if d.loc == nil {
		d.loc = time.Local
	}
	d.log = d.log.With(zap.String("timer", d.name))

	return d, nil
}

func (d *Daily) Name() string {
	return d.name
}

// Next returns the instant of the next fire. It is zero until Start is called.
func (d *Daily) Next() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.next
}

func (d *Daily) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Start arms the timer for today's occurrence, or tomorrow's when today's has
// already passed. Calling Start on a running or disposed timer does nothing.
func (d *Daily) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running || d.disposed {
		return
	}

	now := d.clock.Now().In(d.loc)
	d.next = d.firstFrom(now)

	ctx, cancel := context.WithCancel(context.Background())
	ticker := d.clock.NewTicker(d.poll)
	d.cancel = cancel
	d.done = make(chan struct{})
	d.running = true

	d.log.Info("timer armed", zap.Time("next", d.next))
	go d.loop(ctx, ticker, d.done)
}

// Dispose stops the timer and waits for the polling goroutine to exit, so no
// callback runs once it returns. It must not be called from the callback.
func (d *Daily) Dispose() {
	d.mu.Lock()
	if !d.disposed {
		d.disposed = true
		d.running = false
		if d.cancel != nil {
			d.cancel()
		}
	}
	done := d.done
	d.mu.Unlock()

	if done != nil {
		<-done
	}
}

func (d *Daily) loop(ctx context.Context, ticker clockwork.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.log.Debug("timer stopped")
			return
		case <-ticker.Chan():
			if ctx.Err() != nil {
				return
			}
			d.tick(ctx, d.clock.Now())
		}
	}
}

// tick fires the callback when the scheduled instant has been reached and
// re-arms the timer for the following day.
func (d *Daily) tick(ctx context.Context, now time.Time) {
	d.mu.Lock()
	scheduled := d.next
	d.mu.Unlock()

	if now.Before(scheduled) {
		return
	}

	if late := now.Sub(scheduled); late > d.grace {
		next := d.firstFrom(now.In(d.loc))
		skipped := 0
		for at := scheduled; at.Before(next); at = d.occurrence(at, 1) {
			skipped++
		}
		d.log.Warn("missed scheduled fire, skipping to next occurrence",
			zap.Time("scheduled", scheduled),
			zap.Duration("late", late),
			zap.Int("skipped", skipped),
			zap.Time("next", next),
		)
		d.setNext(next)
		return
	}

	d.invoke(ctx, scheduled)
	d.setNext(d.occurrence(scheduled, 1))
}

func (d *Daily) invoke(ctx context.Context, at time.Time) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("timer callback panicked", zap.Any("panic", r), zap.Time("at", at))
		}
	}()

	if err := d.fn(ctx, at); err != nil {
		d.log.Error("timer callback failed", zap.Error(err), zap.Time("at", at))
	}
}

func (d *Daily) setNext(next time.Time) {
	d.mu.Lock()
	d.next = next
	d.mu.Unlock()
}

// occurrence returns the target time on the calendar day days after day's
// date. It is rebuilt from the date so repeated calls never drift, even when
// a DST change shifts the wall clock.
func (d *Daily) occurrence(day time.Time, days int) time.Time {
	y, m, dd := day.In(d.loc).Date()
	return time.Date(y, m, dd+days, d.hour, d.minute, 0, 0, d.loc)
}

// firstFrom returns the first occurrence at or after now.
func (d *Daily) firstFrom(now time.Time) time.Time {
	at := d.occurrence(now, 0)
	if at.Before(now) {
		at = d.occurrence(now, 1)
	}
	return at
}
