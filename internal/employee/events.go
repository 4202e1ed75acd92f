package employee

import (
	"context"
	"log/slog"
)

const (
	EventCreated = "employee.created"
	EventUpdated = "employee.updated"
	EventDeleted = "employee.deleted"
)

type Event struct {
	Type  string `json:"type"`
	ID    int    `json:"id"`
	Email string `json:"email,omitempty"`
}

// Producer interface for messaging (NATS)
type Producer interface {
	SendMessage(ctx context.Context, value interface{}) error
}

// Events publishes employee lifecycle events. A nil producer disables
// publishing, and publish failures never fail the request.
type Events struct {
	producer Producer
	logger   *slog.Logger
}

func NewEvents(producer Producer, logger *slog.Logger) *Events {
	return &Events{
		producer: producer,
		logger:   logger,
	}
}

func (e *Events) Publish(ctx context.Context, eventType string, employee *Employee) {
	if e == nil || e.producer == nil {
		return
	}

	event := Event{
		Type:  eventType,
		ID:    employee.ID,
		Email: employee.Email,
	}

	if err := e.producer.SendMessage(ctx, event); err != nil {
		e.logger.ErrorContext(ctx, "failed to publish employee event", "type", eventType, "error", err)
		return
	}

	e.logger.InfoContext(ctx, "employee event published", "type", eventType, "id", employee.ID)
}
