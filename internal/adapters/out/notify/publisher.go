// Package notify delivers workflow events to in-process sinks. Delivery
// is asynchronous and fire-and-forget: a slow or failing sink never
// blocks or fails the operation that produced the event.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"printflow/internal/core/ports"
)

// Sink consumes workflow events. Implementations must tolerate
// at-most-once delivery.
type Sink interface {
	OnStepChanged(ctx context.Context, event ports.StepChangedEvent)
	OnOrderChanged(ctx context.Context, event ports.OrderChangedEvent)
}

const queueSize = 256

type envelope struct {
	step  *ports.StepChangedEvent
	order *ports.OrderChangedEvent
}

// FanoutPublisher implements ports.EventPublisher by dispatching each
// event to every registered sink from a single background goroutine.
// Events published while the queue is full are dropped with a warning.
type FanoutPublisher struct {
	sinks  []Sink
	queue  chan envelope
	logger *slog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

// NewFanoutPublisher creates a publisher delivering to the given sinks
// and starts its dispatch goroutine.
func NewFanoutPublisher(logger *slog.Logger, sinks ...Sink) *FanoutPublisher {
	p := &FanoutPublisher{
		sinks:  sinks,
		queue:  make(chan envelope, queueSize),
		logger: logger.With("component", "notify"),
		done:   make(chan struct{}),
	}
	go p.dispatch()
	return p
}

// PublishStepChanged queues a step transition event.
func (p *FanoutPublisher) PublishStepChanged(_ context.Context, event ports.StepChangedEvent) {
	p.enqueue(envelope{step: &event})
}

// PublishOrderChanged queues an order status change event.
func (p *FanoutPublisher) PublishOrderChanged(_ context.Context, event ports.OrderChangedEvent) {
	p.enqueue(envelope{order: &event})
}

func (p *FanoutPublisher) enqueue(env envelope) {
	select {
	case p.queue <- env:
	default:
		p.logger.Warn("event queue full, dropping event")
	}
}

func (p *FanoutPublisher) dispatch() {
	defer close(p.done)
	for env := range p.queue {
		// Events outlive the request that produced them.
		ctx := context.Background()
		for _, sink := range p.sinks {
			if env.step != nil {
				sink.OnStepChanged(ctx, *env.step)
			}
			if env.order != nil {
				sink.OnOrderChanged(ctx, *env.order)
			}
		}
	}
}

// Close stops the dispatch goroutine after draining queued events.
func (p *FanoutPublisher) Close() {
	p.closeOnce.Do(func() {
		close(p.queue)
		<-p.done
	})
}
