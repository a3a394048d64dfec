package card_layout_usecase

import (
	"context"
	"feedcard/domain"
	"feedcard/port/measure_port"
	"feedcard/usecase/feed_item_usecase"
	"feedcard/usecase/slot_bind_usecase"
	"feedcard/utils/errors"
	"feedcard/utils/logger"
	"feedcard/utils/metrics"
	"log/slog"
	"time"
)

// Options carries the render settings the layout depends on.
type Options struct {
	StrictContracts bool
	TopNewsLabel    string
	PromotedLabel   string
}

// CardLayoutUsecase builds the display tree of a card. Building is pure and
// synchronous; images are started separately by the Composer.
type CardLayoutUsecase struct {
	accessor *feed_item_usecase.FeedItemUsecase
	binder   *slot_bind_usecase.SlotBindUsecase
	measure  measure_port.MeasurePort
	options  Options
	logger   *logger.ContextLogger
}

func NewCardLayoutUsecase(
	accessor *feed_item_usecase.FeedItemUsecase,
	binder *slot_bind_usecase.SlotBindUsecase,
	measure measure_port.MeasurePort,
	options Options,
	log *slog.Logger,
) *CardLayoutUsecase {
	return &CardLayoutUsecase{
		accessor: accessor,
		binder:   binder,
		measure:  measure,
		options:  options,
		logger:   logger.NewContextLogger(log),
	}
}

// Build binds one cell per template position and arranges them for the card
// type. Missing items produce empty cells; items beyond the arity are ignored.
// An unknown card type panics in strict mode and yields an empty tree otherwise.
func (u *CardLayoutUsecase) Build(ctx context.Context, card *domain.Card) *domain.LayoutTree {
	if card == nil {
		return &domain.LayoutTree{}
	}
	start := time.Now()
	ctx = logger.WithCardPosition(ctx, card.Position)
	log := u.logger.WithContext(ctx)

	arity, ok := card.Type.Arity()
	if !ok {
		err := errors.NewContractViolationContextError(
			"unsupported card type",
			"usecase",
			"CardLayoutUsecase",
			"build",
			map[string]interface{}{
				"card_type": card.Type.String(),
				"position":  card.Position,
			},
		)
		if u.options.StrictContracts {
			panic(err)
		}
		log.Error("card not rendered", "card_type", card.Type.String(), "error", err)
		metrics.RecordError("build", "contract_violation")
		metrics.RecordCardBuild(card.Type.String(), "unsupported", time.Since(start))
		return &domain.LayoutTree{CardType: card.Type, Position: card.Position}
	}

	if len(card.Items) > arity {
		log.Warn("ignoring extra card items",
			"card_type", card.Type.String(),
			"items", len(card.Items),
			"arity", arity)
	}

	liveness := domain.NewLiveness()
	resolved := u.accessor.ResolveAll(card, arity)
	cells := make([]*domain.CellViewModel, arity)
	for i, item := range resolved {
		role := domain.CellRole{
			CardPosition: card.Position,
			Index:        i,
			CardUUID:     card.UUID,
			DisplayAd:    card.DisplayAd,
		}
		cells[i] = u.binder.BindCell(item.Data, item.Hints, card.Type, role)
		cells[i].ShareLiveness(liveness)
	}

	tree := &domain.LayoutTree{
		CardType: card.Type,
		Position: card.Position,
		Cells:    cells,
		Liveness: liveness,
	}

	switch card.Type {
	case domain.CardTypeHeadline:
		tree.Root = domain.NewContainer(domain.RoleCard, domain.Vertical, domain.NoCell, imageStack(0))
	case domain.CardTypeHeadlinePaired:
		tree.Root = domain.NewContainer(domain.RoleCard, domain.Horizontal, domain.NoCell, imageStack(0), imageStack(1))
		u.equalize(ctx, tree)
	case domain.CardTypeDeals:
		tree.Root = u.deals(resolved)
	case domain.CardTypePublisherGroup:
		tree.Root = u.publisherGroup(resolved)
	case domain.CardTypeCategoryGroup:
		tree.Root = u.categoryGroup()
	case domain.CardTypeDisplayAd:
		tree.Root = domain.NewContainer(domain.RoleCard, domain.Vertical, domain.NoCell,
			domain.NewContainer(domain.RoleStack, domain.Vertical, 0,
				domain.NewSlotNode(0, domain.SlotTitle),
				domain.NewSlotNode(0, domain.SlotTime),
				domain.NewSlotNode(0, domain.SlotLogo),
			))
	case domain.CardTypePromotedArticle:
		tree.Root = domain.NewContainer(domain.RoleCard, domain.Vertical, domain.NoCell,
			domain.NewContainer(domain.RoleStack, domain.Vertical, 0,
				domain.NewSlotNode(0, domain.SlotImage),
				domain.NewSlotNode(0, domain.SlotTitle),
				domain.NewContainer(domain.RolePublisherRow, domain.Horizontal, 0,
					domain.NewSlotNode(0, domain.SlotPublisher),
					domain.NewBadge(0, u.options.PromotedLabel),
				),
				domain.NewSlotNode(0, domain.SlotTime),
			))
	}

	metrics.RecordCardBuild(card.Type.String(), "ok", time.Since(start))
	log.Debug("card built",
		"card_type", card.Type.String(),
		"cells", len(cells))
	return tree
}

func imageStack(cell int) *domain.LayoutNode {
	return domain.NewContainer(domain.RoleStack, domain.Vertical, cell,
		domain.NewSlotNode(cell, domain.SlotImage),
		domain.NewSlotNode(cell, domain.SlotTitle),
		domain.NewSlotNode(cell, domain.SlotPublisher),
		domain.NewSlotNode(cell, domain.SlotTime),
	)
}

func (u *CardLayoutUsecase) deals(items []feed_item_usecase.ResolvedItem) *domain.LayoutNode {
	row := domain.NewContainer(domain.RoleRow, domain.Horizontal, domain.NoCell)
	for i := range items {
		row.Children = append(row.Children, domain.NewContainer(domain.RoleStack, domain.Vertical, i,
			domain.NewSlotNode(i, domain.SlotImage),
			domain.NewSlotNode(i, domain.SlotTitle),
			domain.NewSlotNode(i, domain.SlotDescription),
			domain.NewSlotNode(i, domain.SlotCategory),
		))
	}
	label := ""
	if len(items) > 0 {
		label = u.binder.Clean(items[0].Hints.OffersCategory)
	}
	return domain.NewContainer(domain.RoleCard, domain.Vertical, domain.NoCell, domain.NewHeading(label), row)
}

func (u *CardLayoutUsecase) publisherGroup(items []feed_item_usecase.ResolvedItem) *domain.LayoutNode {
	label := ""
	if len(items) > 0 && items[0].Data != nil {
		label = u.binder.Clean(items[0].Data.CategoryName)
	}
	root := domain.NewContainer(domain.RoleCard, domain.Vertical, domain.NoCell, domain.NewHeading(label))
	for i := range items {
		root.Children = append(root.Children, domain.NewContainer(domain.RoleRow, domain.Horizontal, i,
			domain.NewSlotNode(i, domain.SlotIndex),
			domain.NewContainer(domain.RoleTextStack, domain.Vertical, i,
				domain.NewSlotNode(i, domain.SlotTitle),
				domain.NewSlotNode(i, domain.SlotTime),
			),
		))
	}
	return root
}

func (u *CardLayoutUsecase) categoryGroup() *domain.LayoutNode {
	root := domain.NewContainer(domain.RoleCard, domain.Vertical, domain.NoCell, domain.NewHeading(u.options.TopNewsLabel))
	for i := 0; i < 3; i++ {
		root.Children = append(root.Children, domain.NewContainer(domain.RoleRow, domain.Horizontal, i,
			domain.NewContainer(domain.RoleTextStack, domain.Vertical, i,
				domain.NewSlotNode(i, domain.SlotPublisher),
				domain.NewSlotNode(i, domain.SlotTitle),
				domain.NewSlotNode(i, domain.SlotTime),
			),
			domain.NewSlotNode(i, domain.SlotImage),
		))
	}
	return root
}

// equalize raises the shorter stack of a paired card to the taller one.
// Stacks of equal height keep their natural height.
func (u *CardLayoutUsecase) equalize(ctx context.Context, tree *domain.LayoutTree) {
	if u.measure == nil {
		return
	}
	heights := make([]int, len(tree.Cells))
	tallest := 0
	for i, cell := range tree.Cells {
		heights[i] = u.measure.MeasureCell(cell)
		tallest = max(tallest, heights[i])
	}
	for _, cell := range tree.Cells {
		cell.SetEffectiveHeight(tallest)
	}
	for _, stack := range tree.Root.Children {
		if stack.Cell >= 0 && stack.Cell < len(tree.Cells) {
			stack.EffectiveHeight = tree.Cells[stack.Cell].EffectiveHeight()
		}
	}
	u.logger.WithContext(ctx).Debug("paired stacks equalized",
		"heights", heights,
		"effective_height", tallest)
}
