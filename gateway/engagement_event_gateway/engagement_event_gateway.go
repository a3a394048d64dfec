package engagement_event_gateway

import (
	"context"
	"feedcard/domain"
	"feedcard/utils/errors"
	"feedcard/utils/logger"
	"log/slog"
)

// StreamDriver appends events to a durable stream.
type StreamDriver interface {
	PublishEvent(ctx context.Context, stream string, event *domain.EngagementEvent) (string, error)
}

// EngagementEventGateway implements EngagementEventPort. Every event is logged;
// with a stream driver it is also appended to the stream.
type EngagementEventGateway struct {
	driver StreamDriver
	stream string
	logger *logger.ContextLogger
}

func NewEngagementEventGateway(driver StreamDriver, stream string, log *slog.Logger) *EngagementEventGateway {
	return &EngagementEventGateway{driver: driver, stream: stream, logger: logger.NewContextLogger(log)}
}

func (g *EngagementEventGateway) Publish(ctx context.Context, event *domain.EngagementEvent) error {
	if event == nil {
		return errors.NewValidationContextError(
			"event is nil",
			"gateway",
			"EngagementEventGateway",
			"publish",
			nil,
		)
	}

	log := g.logger.WithContext(ctx)
	log.Info("engagement event",
		"event_id", event.EventID,
		"event_type", string(event.Type),
		"card_position", event.CardPosition,
		"creative_instance_id", event.CreativeInstanceID,
		"count", event.Count)

	if g.driver == nil {
		return nil
	}
	messageID, err := g.driver.PublishEvent(ctx, g.stream, event)
	if err != nil {
		return errors.NewExternalAPIContextError(
			"failed to publish engagement event",
			"gateway",
			"EngagementEventGateway",
			"publish",
			err,
			map[string]interface{}{
				"stream":     g.stream,
				"event_type": string(event.Type),
			},
		)
	}
	log.Debug("engagement event published", "stream", g.stream, "message_id", messageID)
	return nil
}
