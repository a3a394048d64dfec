package domain

import (
	"fmt"
	"strings"
)

// CardType is the closed set of card templates.
type CardType int

const (
	CardTypeUnknown CardType = iota
	CardTypeHeadline
	CardTypeHeadlinePaired
	CardTypeDeals
	CardTypePublisherGroup
	CardTypeCategoryGroup
	CardTypeDisplayAd
	CardTypePromotedArticle
)

var cardTypeNames = map[CardType]string{
	CardTypeHeadline:        "headline",
	CardTypeHeadlinePaired:  "headline_paired",
	CardTypeDeals:           "deals",
	CardTypePublisherGroup:  "publisher_group",
	CardTypeCategoryGroup:   "category_group",
	CardTypeDisplayAd:       "display_ad",
	CardTypePromotedArticle: "promoted_article",
}

// AllCardTypes lists every supported card type in declaration order.
func AllCardTypes() []CardType {
	return []CardType{
		CardTypeHeadline,
		CardTypeHeadlinePaired,
		CardTypeDeals,
		CardTypePublisherGroup,
		CardTypeCategoryGroup,
		CardTypeDisplayAd,
		CardTypePromotedArticle,
	}
}

func (t CardType) String() string {
	if name, ok := cardTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("card_type(%d)", int(t))
}

// ParseCardType accepts the snake_case names used on the wire.
func ParseCardType(s string) (CardType, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for t, name := range cardTypeNames {
		if name == needle {
			return t, nil
		}
	}
	return CardTypeUnknown, fmt.Errorf("unknown card type %q", s)
}

// Arity returns how many items the card template consumes.
func (t CardType) Arity() (int, bool) {
	switch t {
	case CardTypeHeadline, CardTypeDisplayAd, CardTypePromotedArticle:
		return 1, true
	case CardTypeHeadlinePaired:
		return 2, true
	case CardTypeDeals, CardTypePublisherGroup, CardTypeCategoryGroup:
		return 3, true
	default:
		return 0, false
	}
}

// DisplayAd is the card-level advertising identity of a display-ad card.
type DisplayAd struct {
	UUID               string
	CreativeInstanceID string
}

// Card is an immutable snapshot produced by the feed pipeline. Position is
// assigned by the caller and attributes engagement to a feed slot.
type Card struct {
	Type      CardType
	Position  int
	UUID      string
	Items     []FeedItem
	DisplayAd *DisplayAd
}
