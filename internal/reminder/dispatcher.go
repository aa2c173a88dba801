package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Dispatcher runs sends in the background without blocking the timer that
// asked for them. Failures are logged and reported to the error hook, never
// retried.
type Dispatcher struct {
	log     *zap.Logger
	timeout time.Duration
	onError func(name string, err error)

	base   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDispatcher builds a dispatcher whose tasks each get timeout to finish.
// onError may be nil.
func NewDispatcher(log *zap.Logger, timeout time.Duration, onError func(name string, err error)) *Dispatcher {
	base, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		log:     log,
		timeout: timeout,
		onError: onError,
		base:    base,
		cancel:  cancel,
	}
}

// Go starts fn in its own goroutine and returns immediately.
func (d *Dispatcher) Go(name string, fn func(ctx context.Context) error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(d.base, d.timeout)
		defer cancel()

		if err := run(ctx, fn); err != nil {
			d.log.Error("background task failed", zap.String("task", name), zap.Error(err))
			if d.onError != nil {
				d.onError(name, err)
			}
		}
	}()
}

// Wait blocks until every started task has returned or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels the context of tasks still running.
func (d *Dispatcher) Close() {
	d.cancel()
}

func run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}
