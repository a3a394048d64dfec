package engagement_usecase

import (
	"context"
	"feedcard/domain"
	"feedcard/port/counter_store_port"
	"feedcard/port/engagement_event_port"
	"feedcard/utils/errors"
	"feedcard/utils/logger"
	"feedcard/utils/metrics"
	"log/slog"
)

// DefaultMilestoneInterval is how many generic visits make one milestone.
const DefaultMilestoneInterval = 4

// EngagementUsecase keeps the session's visit counters. Clicks are not
// deduplicated; every call counts.
type EngagementUsecase struct {
	store             counter_store_port.CounterStorePort
	events            engagement_event_port.EngagementEventPort
	milestoneInterval int64
	logger            *logger.ContextLogger
}

// NewEngagementUsecase wires the tracker. events may be nil, in which case
// nothing is reported beyond the counters.
func NewEngagementUsecase(
	store counter_store_port.CounterStorePort,
	events engagement_event_port.EngagementEventPort,
	milestoneInterval int,
	log *slog.Logger,
) *EngagementUsecase {
	if milestoneInterval < 1 {
		milestoneInterval = DefaultMilestoneInterval
	}
	return &EngagementUsecase{
		store:             store,
		events:            events,
		milestoneInterval: int64(milestoneInterval),
		logger:            logger.NewContextLogger(log),
	}
}

// OnCellClick advances exactly one counter according to the cell's
// classification. Counter failures are returned; event failures are only logged.
func (u *EngagementUsecase) OnCellClick(ctx context.Context, cardPosition int, cell *domain.CellViewModel) error {
	if cell == nil {
		return errors.NewValidationContextError(
			"cell is required",
			"usecase",
			"EngagementUsecase",
			"on_cell_click",
			map[string]interface{}{
				"card_position": cardPosition,
			},
		)
	}
	if cell.IsEmpty() {
		return nil
	}
	ctx = logger.WithCardPosition(logger.WithOperation(ctx, "on_cell_click"), cardPosition)
	log := u.logger.WithContext(ctx)
	metrics.RecordClick(string(cell.Classification))

	switch cell.Classification {
	case domain.ClassificationPromo:
		creative := u.creativeID(ctx, cell)
		if _, err := u.increment(ctx, domain.PromotedVisitsKey(creative)); err != nil {
			return err
		}
		u.publish(ctx, domain.NewPromotedItemVisitEvent(cardPosition, cell.Role.CardUUID, creative))

	case domain.ClassificationDisplayAd:
		creative := u.creativeID(ctx, cell)
		if _, err := u.increment(ctx, domain.DisplayAdVisitsKey(creative)); err != nil {
			return err
		}
		adUUID := ""
		if cell.Role.DisplayAd != nil {
			adUUID = cell.Role.DisplayAd.UUID
		}
		u.publish(ctx, domain.NewDisplayAdVisitEvent(cardPosition, adUUID, creative))

	case domain.ClassificationNormal:
		count, err := u.increment(ctx, domain.GenericVisitsKey())
		if err != nil {
			return err
		}
		if count%u.milestoneInterval == 0 {
			metrics.RecordMilestone()
			log.Info("session visit milestone", "count", count)
			u.publish(ctx, domain.NewMilestoneEvent(cardPosition, count))
		}
	}
	return nil
}

// Counters returns the current values of every counter.
func (u *EngagementUsecase) Counters(ctx context.Context) (*domain.EngagementCounters, error) {
	counters, err := u.store.Snapshot(ctx)
	if err != nil {
		metrics.RecordError("snapshot", "counter_store")
		return nil, err
	}
	return counters, nil
}

// creativeID falls back to the unknown bucket so the click is still counted.
func (u *EngagementUsecase) creativeID(ctx context.Context, cell *domain.CellViewModel) string {
	if cell.CreativeInstanceID != "" {
		return cell.CreativeInstanceID
	}
	metrics.RecordError("on_cell_click", "missing_creative_id")
	u.logger.WithContext(ctx).Warn("sponsored visit without creative instance id",
		"classification", cell.Classification,
		"card_uuid", cell.Role.CardUUID)
	return domain.UnknownCreativeID
}

func (u *EngagementUsecase) increment(ctx context.Context, key domain.CounterKey) (int64, error) {
	count, err := u.store.Increment(ctx, key)
	if err != nil {
		metrics.RecordError("increment", "counter_store")
		u.logger.LogError(ctx, "increment", err)
		return 0, err
	}
	return count, nil
}

func (u *EngagementUsecase) publish(ctx context.Context, event *domain.EngagementEvent) {
	if u.events == nil {
		return
	}
	if err := u.events.Publish(ctx, event); err != nil {
		metrics.RecordError("publish_event", "event_publisher")
		u.logger.WithContext(ctx).Warn("engagement event not published",
			"event_type", string(event.Type),
			"error", err)
	}
}
