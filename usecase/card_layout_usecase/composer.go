package card_layout_usecase

import (
	"context"
	"feedcard/domain"
	"feedcard/usecase/feed_item_usecase"
	"feedcard/utils/logger"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// ImageResolver starts asynchronous image resolution for one item.
type ImageResolver interface {
	ResolveWithDone(ctx context.Context, item *domain.ItemMetadata, onReady func(*domain.Bitmap), done func())
}

// Composer builds cards and wires their image slots to the resolver.
type Composer struct {
	layout   *CardLayoutUsecase
	accessor *feed_item_usecase.FeedItemUsecase
	images   ImageResolver
	tracer   trace.Tracer
	logger   *logger.ContextLogger
}

func NewComposer(layout *CardLayoutUsecase, accessor *feed_item_usecase.FeedItemUsecase, images ImageResolver, log *slog.Logger) *Composer {
	return &Composer{
		layout:   layout,
		accessor: accessor,
		images:   images,
		tracer:   otel.Tracer("feedcard/card_layout_usecase"),
		logger:   logger.NewContextLogger(log),
	}
}

// BuiltCard is a composed card whose image slots may still be pending.
type BuiltCard struct {
	Tree *domain.LayoutTree

	wg sync.WaitGroup
}

// ApplyImage patches the image slot of cell index. It reports false once the
// card is released, for an unknown index, or when the slot was not pending.
func (b *BuiltCard) ApplyImage(index int, bitmap *domain.Bitmap) bool {
	if b == nil || b.Tree == nil || index < 0 || index >= len(b.Tree.Cells) {
		return false
	}
	return b.Tree.Cells[index].ApplyBitmap(bitmap)
}

// Release marks the card discarded; late images are dropped.
func (b *BuiltCard) Release() {
	if b == nil || b.Tree == nil {
		return
	}
	b.Tree.Liveness.Release()
}

// WaitImages blocks until every image started for the card has settled or ctx ends.
func (b *BuiltCard) WaitImages(ctx context.Context) error {
	settled := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(settled)
	}()
	select {
	case <-settled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Compose builds the card and starts resolution for every pending image slot.
func (c *Composer) Compose(ctx context.Context, card *domain.Card) *BuiltCard {
	ctx, span := c.tracer.Start(ctx, "CardCompose")
	defer span.End()

	tree := c.layout.Build(ctx, card)
	built := &BuiltCard{Tree: tree}
	span.SetAttributes(
		attribute.String("card.type", tree.CardType.String()),
		attribute.Int("card.position", tree.Position),
		attribute.Int("card.cells", len(tree.Cells)),
	)
	if tree.IsEmpty() {
		return built
	}

	for i, cell := range tree.Cells {
		cell := cell
		if cell.Image().State != domain.ImageStatePending {
			continue
		}
		data, _, ok := c.accessor.Resolve(card, i)
		if !ok {
			continue
		}
		built.wg.Add(1)
		c.images.ResolveWithDone(ctx, data, func(bitmap *domain.Bitmap) { cell.ApplyBitmap(bitmap) }, built.wg.Done)
	}
	return built
}

// ComposeFeed composes cards in feed order.
func (c *Composer) ComposeFeed(ctx context.Context, cards []*domain.Card) []*BuiltCard {
	out := make([]*BuiltCard, 0, len(cards))
	for _, card := range cards {
		out = append(out, c.Compose(ctx, card))
	}
	c.logger.WithContext(ctx).Info("feed composed", "cards", len(out))
	return out
}

// WaitAll waits for the images of every card, giving up when ctx ends.
func WaitAll(ctx context.Context, built []*BuiltCard) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, b := range built {
		b := b
		g.Go(func() error {
			return b.WaitImages(gctx)
		})
	}
	return g.Wait()
}
