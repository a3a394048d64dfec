package feed_item_usecase

import (
	"feedcard/domain"
)

// FeedItemUsecase gives uniform access to the metadata of heterogeneous feed items.
type FeedItemUsecase struct{}

func NewFeedItemUsecase() *FeedItemUsecase {
	return &FeedItemUsecase{}
}

// Resolve returns the metadata and kind hints of the item at index. Absence is
// soft: a nil card, an empty item list or an out-of-range index yields ok=false.
// The returned pointer is the one held by the item, so repeated calls agree.
func (u *FeedItemUsecase) Resolve(card *domain.Card, index int) (*domain.ItemMetadata, domain.KindHints, bool) {
	if card == nil || index < 0 || index >= len(card.Items) {
		return nil, domain.KindHints{}, false
	}

	switch item := card.Items[index].(type) {
	case *domain.Article:
		if item == nil || item.Data == nil {
			return nil, domain.KindHints{}, false
		}
		return item.Data, domain.KindHints{Kind: domain.ItemKindArticle}, true
	case *domain.PromotedArticle:
		if item == nil || item.Data == nil {
			return nil, domain.KindHints{}, false
		}
		return item.Data, domain.KindHints{
			Kind:               domain.ItemKindPromotedArticle,
			CreativeInstanceID: item.CreativeInstanceID,
		}, true
	case *domain.Deal:
		if item == nil || item.Data == nil {
			return nil, domain.KindHints{}, false
		}
		return item.Data, domain.KindHints{
			Kind:           domain.ItemKindDeal,
			OffersCategory: item.OffersCategory,
		}, true
	default:
		return nil, domain.KindHints{}, false
	}
}

// ResolvedItem is one position of a card as seen by the accessor.
type ResolvedItem struct {
	Data  *domain.ItemMetadata
	Hints domain.KindHints
	OK    bool
}

// ResolveAll resolves positions 0..n-1, keeping absent positions.
func (u *FeedItemUsecase) ResolveAll(card *domain.Card, n int) []ResolvedItem {
	out := make([]ResolvedItem, max(n, 0))
	for i := range out {
		data, hints, ok := u.Resolve(card, i)
		out[i] = ResolvedItem{Data: data, Hints: hints, OK: ok}
	}
	return out
}
