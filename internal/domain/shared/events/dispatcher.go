package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/orris-inc/supportdesk/internal/shared/goroutine"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
)

var (
	ErrDispatcherStopped = errors.New("event dispatcher is not running")
	ErrDispatcherFull    = errors.New("event queue is full")
)

const defaultHandlerTimeout = 10 * time.Second

// InMemoryEventDispatcher queues events and fans each one out to every
// registered handler on a single worker goroutine.
type InMemoryEventDispatcher struct {
	mu       sync.RWMutex
	handlers []EventHandler
	running  bool
	eventCh  chan DomainEvent
	stopCh   chan struct{}
	wg       sync.WaitGroup
	timeout  time.Duration
	logger   logger.Interface
}

func NewInMemoryEventDispatcher(bufferSize int, log logger.Interface) *InMemoryEventDispatcher {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	return &InMemoryEventDispatcher{
		eventCh: make(chan DomainEvent, bufferSize),
		stopCh:  make(chan struct{}),
		timeout: defaultHandlerTimeout,
		logger:  log,
	}
}

// Subscribe registers h for every event type. Call before Start.
func (d *InMemoryEventDispatcher) Subscribe(h EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append(d.handlers, h)
}

// Publish enqueues event without waiting for delivery.
func (d *InMemoryEventDispatcher) Publish(event DomainEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.running {
		return ErrDispatcherStopped
	}

	select {
	case d.eventCh <- event:
		return nil
	default:
		return ErrDispatcherFull
	}
}

func (d *InMemoryEventDispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}
	d.running = true

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.loop()
	}()
}

// Stop rejects new events, delivers what is already queued and waits for the worker.
func (d *InMemoryEventDispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.mu.Unlock()

	close(d.stopCh)
	d.wg.Wait()
}

func (d *InMemoryEventDispatcher) loop() {
	for {
		select {
		case <-d.stopCh:
			for {
				select {
				case event := <-d.eventCh:
					d.deliver(event)
				default:
					return
				}
			}
		case event := <-d.eventCh:
			d.deliver(event)
		}
	}
}

func (d *InMemoryEventDispatcher) deliver(event DomainEvent) {
	d.mu.RLock()
	handlers := append([]EventHandler(nil), d.handlers...)
	d.mu.RUnlock()

	for _, h := range handlers {
		d.invoke(h, event)
	}
}

func (d *InMemoryEventDispatcher) invoke(h EventHandler, event DomainEvent) {
	defer goroutine.Recover(d.logger, "event-handler:"+h.Name())

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := h.Handle(ctx, event); err != nil {
		d.logger.Warnw("event handler failed",
			"handler", h.Name(),
			"event_type", event.GetEventType(),
			"aggregate_id", event.GetAggregateID(),
			"error", err,
		)
	}
}
