package engagement_event_port

//go:generate go run go.uber.org/mock/mockgen -source=engagement_event_port.go -destination=../../mocks/mock_engagement_event_port.go -package=mocks

import (
	"context"
	"feedcard/domain"
)

// EngagementEventPort reports engagement events to the host.
type EngagementEventPort interface {
	Publish(ctx context.Context, event *domain.EngagementEvent) error
}
