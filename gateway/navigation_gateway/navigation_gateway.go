package navigation_gateway

import (
	"context"
	"feedcard/utils/errors"
	"strings"
	"sync"
)

// RecordingNavigator implements NavigatorPort for hosts that navigate on the
// client side: it remembers the scroll position and the opened destinations.
type RecordingNavigator struct {
	mu             sync.Mutex
	scrollPosition int
	opened         []string
}

func NewRecordingNavigator() *RecordingNavigator {
	return &RecordingNavigator{scrollPosition: -1}
}

func (n *RecordingNavigator) SetFeedScrollPosition(_ context.Context, cardPosition int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.scrollPosition = cardPosition
}

func (n *RecordingNavigator) OpenURL(_ context.Context, destination string) error {
	if strings.TrimSpace(destination) == "" {
		return errors.NewValidationContextError(
			"destination URL is empty",
			"gateway",
			"RecordingNavigator",
			"open_url",
			nil,
		)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.opened = append(n.opened, destination)
	return nil
}

// ScrollPosition returns the last recorded card position, or -1.
func (n *RecordingNavigator) ScrollPosition() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.scrollPosition
}

func (n *RecordingNavigator) Opened() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.opened...)
}
