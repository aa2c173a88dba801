package timer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitTimeout = 2 * time.Second

type recorder struct {
	calls atomic.Int32
	fired chan time.Time
}

func newRecorder() *recorder {
	return &recorder{fired: make(chan time.Time, 16)}
}

func (r *recorder) callback(ctx context.Context, at time.Time) error {
	r.calls.Add(1)
	r.fired <- at
	return nil
}

func (r *recorder) wait(t *testing.T) time.Time {
	t.Helper()
	select {
	case at := <-r.fired:
		return at
	case <-time.After(waitTimeout):
		t.Fatal("callback was not invoked")
		return time.Time{}
	}
}

func TestNew(t *testing.T) {
	noop := func(context.Context, time.Time) error { return nil }

	tests := []struct {
		name    string
		hour    int
		minute  int
		fn      Callback
		opts    []Option
		wantErr error
	}{
		{name: "Should build a stopped timer", hour: 21, minute: 0, fn: noop},
		{name: "Should reject hour 24", hour: 24, minute: 0, fn: noop, wantErr: ErrInvalidTimeOfDay},
		{name: "Should reject negative minute", hour: 9, minute: -1, fn: noop, wantErr: ErrInvalidTimeOfDay},
		{name: "Should reject minute 60", hour: 9, minute: 60, fn: noop, wantErr: ErrInvalidTimeOfDay},
		{
			name: "Should reject zero poll interval", hour: 9, minute: 0, fn: noop,
			opts: []Option{WithPollInterval(0)}, wantErr: ErrInvalidInterval,
		},
		{name: "Should reject nil callback", hour: 9, minute: 0, fn: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.hour, tt.minute, tt.fn, tt.opts...)
			if tt.fn == nil {
				require.Error(t, err)
				return
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, d)
				return
			}
			require.NoError(t, err)
			assert.False(t, d.Running())
			assert.True(t, d.Next().IsZero())
			assert.Equal(t, "21:00", d.Name())
		})
	}
}

func TestNew_GraceIsClamped(t *testing.T) {
	noop := func(context.Context, time.Time) error { return nil }

	d, err := New(9, 0, noop, WithPollInterval(5*time.Second), WithGrace(time.Second))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d.grace)

	d, err = New(9, 0, noop, WithGrace(48*time.Hour))
	require.NoError(t, err)
	assert.Less(t, d.grace, 24*time.Hour)
}

func TestDaily_Start(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "Should arm today when the time has not passed",
			now:  time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC),
		},
		{
			name: "Should arm tomorrow when the time has passed",
			now:  time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC),
		},
		{
			name: "Should arm today when now is exactly the target",
			now:  time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC),
		},
		{
			name: "Should roll over month and year",
			now:  time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC),
			want: time.Date(2025, 1, 1, 15, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := clockwork.NewFakeClockAt(tt.now)
			d, err := New(15, 0, newRecorder().callback, WithClock(clock), WithLocation(time.UTC))
			require.NoError(t, err)
			defer d.Dispose()

			d.Start()

			assert.True(t, d.Running())
			assert.Equal(t, tt.want, d.Next())
		})
	}
}

func TestDaily_FiresAndRearms(t *testing.T) {
	start := time.Date(2024, 3, 15, 20, 59, 59, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)
	rec := newRecorder()

	d, err := New(21, 0, rec.callback, WithClock(clock), WithLocation(time.UTC), WithPollInterval(time.Second))
	require.NoError(t, err)
	defer d.Dispose()

	d.Start()
	clock.BlockUntil(1)

	clock.Advance(time.Second)
	at := rec.wait(t)
	assert.Equal(t, time.Date(2024, 3, 15, 21, 0, 0, 0, time.UTC), at)

	assert.Eventually(t, func() bool {
		return d.Next().Equal(time.Date(2024, 3, 16, 21, 0, 0, 0, time.UTC))
	}, waitTimeout, 5*time.Millisecond)

	clock.Advance(24 * time.Hour)
	at = rec.wait(t)
	assert.Equal(t, time.Date(2024, 3, 16, 21, 0, 0, 0, time.UTC), at)
	assert.EqualValues(t, 2, rec.calls.Load())
}

func TestDaily_StartIsIdempotent(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 15, 20, 59, 59, 0, time.UTC))
	rec := newRecorder()

	d, err := New(21, 0, rec.callback, WithClock(clock), WithLocation(time.UTC))
	require.NoError(t, err)
	defer d.Dispose()

	d.Start()
	done := d.done
	next := d.Next()

	d.Start()
	assert.Equal(t, done, d.done, "second Start must not spawn another loop")
	assert.Equal(t, next, d.Next())

	clock.BlockUntil(1)
	clock.Advance(time.Second)
	rec.wait(t)

	select {
	case <-rec.fired:
		t.Fatal("callback fired twice for one occurrence")
	case <-time.After(50 * time.Millisecond):
	}
	assert.EqualValues(t, 1, rec.calls.Load())
}

func TestDaily_Dispose(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC))
	rec := newRecorder()

	d, err := New(21, 0, rec.callback, WithClock(clock), WithLocation(time.UTC))
	require.NoError(t, err)

	d.Start()
	clock.BlockUntil(1)

	d.Dispose()
	assert.False(t, d.Running())

	for i := 0; i < 3; i++ {
		clock.Advance(24 * time.Hour)
	}

	select {
	case <-rec.fired:
		t.Fatal("callback fired after Dispose")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Zero(t, rec.calls.Load())

	d.Dispose()
	d.Start()
	assert.False(t, d.Running(), "a disposed timer cannot be restarted")
}

func TestDaily_DisposeBeforeStart(t *testing.T) {
	d, err := New(21, 0, newRecorder().callback)
	require.NoError(t, err)

	d.Dispose()
	d.Dispose()
	d.Start()
	assert.False(t, d.Running())
}

func TestDaily_DisposeWaitsForCallback(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 15, 20, 59, 59, 0, time.UTC))
	entered := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool

	d, err := New(21, 0, func(ctx context.Context, at time.Time) error {
		close(entered)
		<-release
		finished.Store(true)
		return nil
	}, WithClock(clock), WithLocation(time.UTC))
	require.NoError(t, err)

	d.Start()
	clock.BlockUntil(1)
	clock.Advance(time.Second)
	<-entered

	disposed := make(chan struct{})
	go func() {
		d.Dispose()
		close(disposed)
	}()

	select {
	case <-disposed:
		t.Fatal("Dispose returned while the callback was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-disposed:
	case <-time.After(waitTimeout):
		t.Fatal("Dispose did not return")
	}
	assert.True(t, finished.Load())
}

func TestDaily_CallbackFailuresDoNotStopTheLoop(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 15, 20, 59, 59, 0, time.UTC))
	fired := make(chan int, 3)
	var calls atomic.Int32

	d, err := New(21, 0, func(ctx context.Context, at time.Time) error {
		n := int(calls.Add(1))
		fired <- n
		switch n {
		case 1:
			return errors.New("send failed")
		case 2:
			panic("boom")
		}
		return nil
	}, WithClock(clock), WithLocation(time.UTC))
	require.NoError(t, err)
	defer d.Dispose()

	d.Start()
	clock.BlockUntil(1)
	clock.Advance(time.Second)

	for want := 1; want <= 3; want++ {
		select {
		case got := <-fired:
			assert.Equal(t, want, got)
		case <-time.After(waitTimeout):
			t.Fatalf("fire %d did not happen", want)
		}
		day := time.Date(2024, 3, 15+want, 21, 0, 0, 0, time.UTC)
		require.Eventually(t, func() bool { return d.Next().Equal(day) }, waitTimeout, 5*time.Millisecond)
		clock.Advance(24 * time.Hour)
	}
	assert.True(t, d.Running())
}

func TestDaily_tickDoesNotDrift(t *testing.T) {
	rec := newRecorder()
	d, err := New(21, 0, rec.callback, WithLocation(time.UTC))
	require.NoError(t, err)

	startDay := time.Date(2024, 2, 25, 8, 0, 0, 0, time.UTC)
	d.setNext(d.firstFrom(startDay))

	// each fire is observed up to one poll late
	for n := 0; n < 10; n++ {
		jitter := time.Duration(n%3) * 400 * time.Millisecond
		d.tick(context.Background(), d.Next().Add(jitter))
		<-rec.fired

		want := time.Date(2024, 2, 25+n+1, 21, 0, 0, 0, time.UTC)
		assert.Equal(t, want, d.Next(), "after %d fires", n+1)
	}
}

func TestDaily_tick(t *testing.T) {
	scheduled := time.Date(2024, 3, 15, 21, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		now       time.Time
		wantFired bool
		wantNext  time.Time
	}{
		{
			name:     "Should wait before the scheduled instant",
			now:      scheduled.Add(-time.Second),
			wantNext: scheduled,
		},
		{
			name:      "Should fire at the scheduled instant",
			now:       scheduled,
			wantFired: true,
			wantNext:  scheduled.AddDate(0, 0, 1),
		},
		{
			name:      "Should fire when late within the grace period",
			now:       scheduled.Add(30 * time.Second),
			wantFired: true,
			wantNext:  scheduled.AddDate(0, 0, 1),
		},
		{
			name:     "Should skip a fire missed beyond the grace period",
			now:      scheduled.Add(2 * time.Hour),
			wantNext: scheduled.AddDate(0, 0, 1),
		},
		{
			name:     "Should skip several missed days at once",
			now:      time.Date(2024, 3, 18, 21, 5, 0, 0, time.UTC),
			wantNext: time.Date(2024, 3, 19, 21, 0, 0, 0, time.UTC),
		},
		{
			name:     "Should resume on the same day when woken before the target",
			now:      time.Date(2024, 3, 18, 20, 0, 0, 0, time.UTC),
			wantNext: time.Date(2024, 3, 18, 21, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecorder()
			d, err := New(21, 0, rec.callback, WithLocation(time.UTC))
			require.NoError(t, err)
			d.setNext(scheduled)

			d.tick(context.Background(), tt.now)

			if tt.wantFired {
				assert.EqualValues(t, 1, rec.calls.Load())
				assert.Equal(t, scheduled, <-rec.fired)
			} else {
				assert.Zero(t, rec.calls.Load())
			}
			assert.Equal(t, tt.wantNext, d.Next())
		})
	}
}

func TestDaily_occurrenceAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	d, err := New(2, 30, newRecorder().callback, WithLocation(loc))
	require.NoError(t, err)

	// 2024-03-10 02:30 does not exist in New York
	gap := d.occurrence(time.Date(2024, 3, 9, 12, 0, 0, 0, loc), 1)
	assert.Equal(t, 10, gap.Day())

	next := d.occurrence(gap, 1)
	assert.Equal(t, time.Date(2024, 3, 11, 2, 30, 0, 0, loc), next)

	daily, err := New(21, 0, newRecorder().callback, WithLocation(loc))
	require.NoError(t, err)
	before := time.Date(2024, 3, 9, 21, 0, 0, 0, loc)
	after := daily.occurrence(before, 1)
	assert.Equal(t, 21, after.Hour())
	assert.Equal(t, 23*time.Hour, after.Sub(before))
}
