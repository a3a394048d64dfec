package engagement_usecase

import (
	"context"
	"feedcard/domain"
	"feedcard/port/navigation_port"
	"feedcard/utils/errors"
	"feedcard/utils/logger"
	"log/slog"
)

// ClickTracker is the accounting step of a click.
type ClickTracker interface {
	OnCellClick(ctx context.Context, cardPosition int, cell *domain.CellViewModel) error
}

// ClickRouter handles a tap on a cell: remember the feed position, count the
// visit, then navigate. Accounting never blocks navigation.
type ClickRouter struct {
	tracker   ClickTracker
	navigator navigation_port.NavigatorPort
	logger    *logger.ContextLogger
}

func NewClickRouter(tracker ClickTracker, navigator navigation_port.NavigatorPort, log *slog.Logger) *ClickRouter {
	return &ClickRouter{
		tracker:   tracker,
		navigator: navigator,
		logger:    logger.NewContextLogger(log),
	}
}

func (r *ClickRouter) Click(ctx context.Context, cardPosition int, cell *domain.CellViewModel) error {
	if cell == nil || cell.IsEmpty() {
		return errors.NewValidationContextError(
			"cannot open an empty cell",
			"usecase",
			"ClickRouter",
			"click",
			map[string]interface{}{
				"card_position": cardPosition,
			},
		)
	}

	r.navigator.SetFeedScrollPosition(ctx, cardPosition)

	if err := r.tracker.OnCellClick(ctx, cardPosition, cell); err != nil {
		r.logger.WithContext(logger.WithCardPosition(ctx, cardPosition)).Error("visit not recorded",
			"classification", string(cell.Classification),
			"error", err)
	}

	return r.navigator.OpenURL(ctx, cell.DestinationURL)
}
