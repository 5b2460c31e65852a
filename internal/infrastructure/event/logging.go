package event

import (
	"context"

	"github.com/wims/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LoggingHandler logs every domain event published on the bus
type LoggingHandler struct {
	logger *zap.Logger
}

// NewLoggingHandler creates a new LoggingHandler
func NewLoggingHandler(logger *zap.Logger) *LoggingHandler {
	return &LoggingHandler{logger: logger}
}

// Handle logs the event
func (h *LoggingHandler) Handle(_ context.Context, e shared.DomainEvent) error {
	h.logger.Info("Domain event",
		zap.String("event_id", e.EventID().String()),
		zap.String("event_type", e.EventType()),
		zap.String("aggregate_type", e.AggregateType()),
		zap.Int64("aggregate_id", e.AggregateID()),
	)
	return nil
}

// EventTypes returns an empty slice so the handler receives all events
func (h *LoggingHandler) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*LoggingHandler)(nil)
