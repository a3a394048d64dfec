package engagement_event_gateway

import (
	"bytes"
	"context"
	stderrors "errors"
	"feedcard/domain"
	"feedcard/utils/errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStream struct {
	stream string
	events []*domain.EngagementEvent
	err    error
}

func (s *stubStream) PublishEvent(_ context.Context, stream string, event *domain.EngagementEvent) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.stream = stream
	s.events = append(s.events, event)
	return "1-0", nil
}

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestEngagementEventGateway_Publish(t *testing.T) {
	var buf bytes.Buffer
	stream := &stubStream{}
	gateway := NewEngagementEventGateway(stream, "feedcard:engagement", newTestLogger(&buf))

	event := domain.NewMilestoneEvent(3, 4)
	require.NoError(t, gateway.Publish(context.Background(), event))

	require.Len(t, stream.events, 1)
	assert.Same(t, event, stream.events[0])
	assert.Equal(t, "feedcard:engagement", stream.stream)
	assert.Contains(t, buf.String(), `"event_type":"session_visit_milestone"`)
	assert.Contains(t, buf.String(), `"message_id":"1-0"`)
}

func TestEngagementEventGateway_LogOnly(t *testing.T) {
	var buf bytes.Buffer
	gateway := NewEngagementEventGateway(nil, "", newTestLogger(&buf))

	require.NoError(t, gateway.Publish(context.Background(), domain.NewDisplayAdVisitEvent(1, "ad", "cr")))
	assert.Contains(t, buf.String(), `"event_type":"display_ad_visit"`)
}

func TestEngagementEventGateway_Errors(t *testing.T) {
	gateway := NewEngagementEventGateway(&stubStream{err: stderrors.New("redis down")}, "s", newTestLogger(&bytes.Buffer{}))

	err := gateway.Publish(context.Background(), domain.NewMilestoneEvent(0, 4))
	require.Error(t, err)
	appErr, ok := errors.AsAppContextError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeExternalAPI, appErr.Code)

	err = gateway.Publish(context.Background(), nil)
	assert.True(t, errors.IsValidationError(err))
}
