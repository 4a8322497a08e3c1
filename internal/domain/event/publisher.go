package event

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Handler consumes one published event. A handler failure is the
// handler's problem alone: publication happens after the transaction
// that produced the event has committed, so errors are logged and never
// propagated back to the caller.
type Handler interface {
	Handle(ctx context.Context, e Event) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, e Event) error

func (f HandlerFunc) Handle(ctx context.Context, e Event) error { return f(ctx, e) }

// Publisher routes events to registered handlers by event name.
//
// The registry is built once during startup, before the first request is
// served, and is read-only afterwards; it is therefore not synchronized.
type Publisher struct {
	handlers map[string][]Handler
	logger   *logrus.Logger
}

func NewPublisher(logger *logrus.Logger) *Publisher {
	return &Publisher{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Register appends handler to the ordered list for eventName. Handlers
// for the same name run in registration order.
func (p *Publisher) Register(eventName string, handler Handler) {
	p.handlers[eventName] = append(p.handlers[eventName], handler)
}

// Publish dispatches each event to its handlers sequentially. A failing
// handler is logged and skipped; it aborts neither the remaining
// handlers nor the remaining events.
func (p *Publisher) Publish(ctx context.Context, events []Event) {
	for _, e := range events {
		for _, h := range p.handlers[e.EventName()] {
			if err := h.Handle(ctx, e); err != nil {
				if p.logger != nil {
					p.logger.WithError(err).WithField("event", e.EventName()).Error("event handler failed")
				}
			}
		}
	}
}
