package navigation_port

//go:generate go run go.uber.org/mock/mockgen -source=navigation_port.go -destination=../../mocks/mock_navigation_port.go -package=mocks

import "context"

// NavigatorPort opens destinations on behalf of a clicked cell.
type NavigatorPort interface {
	// SetFeedScrollPosition records the card position to restore when returning to the feed
	SetFeedScrollPosition(ctx context.Context, cardPosition int)
	OpenURL(ctx context.Context, destination string) error
}
