package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/transaction_processor/internal/core/domain"
	portssvc "github.com/SscSPs/transaction_processor/internal/core/ports/services"
)

// ErrDispatcherClosed is returned by Publish after Shutdown has started.
var ErrDispatcherClosed = errors.New("event dispatcher is shut down")

// Dispatcher is an unbounded in-process FIFO of domain events drained by a single worker.
// Publish never blocks; observers run sequentially in publish order.
type Dispatcher struct {
	mu        sync.Mutex
	queue     []domain.Event
	closed    bool
	started   bool
	signal    chan struct{}
	done      chan struct{}
	observers []Observer
	logger    *slog.Logger
}

var _ portssvc.EventPublisher = (*Dispatcher)(nil)

func NewDispatcher(logger *slog.Logger, observers ...Observer) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		signal:    make(chan struct{}, 1),
		done:      make(chan struct{}),
		observers: observers,
		logger:    logger,
	}
}

// Register adds an observer. It must be called before Start.
func (d *Dispatcher) Register(o Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		d.logger.Warn("Observer registered after dispatcher start, ignoring", slog.String("observer", o.Name()))
		return
	}
	d.observers = append(d.observers, o)
}

// Start launches the worker. ctx is handed to observers; stopping the worker is done with Shutdown.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		return
	}
	d.started = true
	observers := append([]Observer(nil), d.observers...)
	d.mu.Unlock()

	go d.run(context.WithoutCancel(ctx), observers)
	d.logger.Info("Event dispatcher started", slog.Int("observers", len(observers)))
}

// Publish enqueues events in order.
func (d *Dispatcher) Publish(events ...domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDispatcherClosed
	}
	d.queue = append(d.queue, events...)
	d.mu.Unlock()

	select {
	case d.signal <- struct{}{}:
	default:
	}
	return nil
}

// Pending returns the number of queued events not yet taken by the worker.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Shutdown stops accepting events and waits until the worker has drained the queue or ctx ends.
// Without a running worker the queue is drained on the calling goroutine.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	started := d.started
	observers := append([]Observer(nil), d.observers...)
	d.mu.Unlock()

	if !started {
		return d.drain(ctx, observers)
	}
	select {
	case d.signal <- struct{}{}:
	default:
	}

	select {
	case <-d.done:
		d.logger.Info("Event dispatcher drained and stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("event dispatcher shutdown: %w (pending=%d)", ctx.Err(), d.Pending())
	}
}

func (d *Dispatcher) run(ctx context.Context, observers []Observer) {
	defer close(d.done)
	for {
		batch, closed := d.take()
		for _, event := range batch {
			d.dispatch(ctx, observers, event)
		}
		if len(batch) > 0 {
			continue
		}
		if closed {
			return
		}
		<-d.signal
	}
}

func (d *Dispatcher) drain(ctx context.Context, observers []Observer) error {
	batch, _ := d.take()
	for i, event := range batch {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("event dispatcher shutdown: %w (pending=%d)", err, len(batch)-i)
		}
		d.dispatch(context.WithoutCancel(ctx), observers, event)
	}
	if len(batch) > 0 {
		d.logger.Info("Event dispatcher drained without worker", slog.Int("events", len(batch)))
	}
	return nil
}

func (d *Dispatcher) take() ([]domain.Event, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	batch := d.queue
	d.queue = nil
	return batch, d.closed
}

func (d *Dispatcher) dispatch(ctx context.Context, observers []Observer, event domain.Event) {
	for _, o := range observers {
		if err := d.notify(ctx, o, event); err != nil {
			d.logger.Error("Event observer failed",
				slog.String("error", err.Error()),
				slog.String("observer", o.Name()),
				slog.String("event", string(event.Kind())),
				slog.String("account_id", event.AggregateID()))
		}
	}
}

func (d *Dispatcher) notify(ctx context.Context, o Observer, event domain.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("observer panic: %v", r)
		}
	}()

	switch e := event.(type) {
	case domain.TransactionProcessed:
		return o.OnTransactionProcessed(ctx, e)
	case domain.AccountBlocked:
		return o.OnAccountBlocked(ctx, e)
	case domain.AccountActivated:
		return o.OnAccountActivated(ctx, e)
	case domain.AccountDeactivated:
		return o.OnAccountDeactivated(ctx, e)
	default:
		return fmt.Errorf("unhandled event kind %s", event.Kind())
	}
}
