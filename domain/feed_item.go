package domain

// ItemKind is the immutable tag of a feed item variant.
type ItemKind int

const (
	ItemKindNone ItemKind = iota
	ItemKindArticle
	ItemKindPromotedArticle
	ItemKindDeal
)

func (k ItemKind) String() string {
	switch k {
	case ItemKindArticle:
		return "article"
	case ItemKindPromotedArticle:
		return "promoted_article"
	case ItemKindDeal:
		return "deal"
	default:
		return "none"
	}
}

// ItemMetadata is the normalized record shared by all feed item variants.
type ItemMetadata struct {
	Title                   string
	Description             string
	PublisherName           string
	RelativeTimeDescription string
	CategoryName            string
	Image                   ImageReference
	URL                     string
}

// FeedItem is a closed union: *Article, *PromotedArticle or *Deal.
type FeedItem interface {
	Kind() ItemKind
	Metadata() *ItemMetadata
	isFeedItem()
}

type Article struct {
	Data *ItemMetadata
}

type PromotedArticle struct {
	Data               *ItemMetadata
	CreativeInstanceID string
}

type Deal struct {
	Data           *ItemMetadata
	OffersCategory string
}

func NewArticle(data *ItemMetadata) *Article {
	return &Article{Data: data}
}

func NewPromotedArticle(data *ItemMetadata, creativeInstanceID string) *PromotedArticle {
	return &PromotedArticle{Data: data, CreativeInstanceID: creativeInstanceID}
}

func NewDeal(data *ItemMetadata, offersCategory string) *Deal {
	return &Deal{Data: data, OffersCategory: offersCategory}
}

func (*Article) Kind() ItemKind         { return ItemKindArticle }
func (*PromotedArticle) Kind() ItemKind { return ItemKindPromotedArticle }
func (*Deal) Kind() ItemKind            { return ItemKindDeal }

func (a *Article) Metadata() *ItemMetadata         { return a.Data }
func (p *PromotedArticle) Metadata() *ItemMetadata { return p.Data }
func (d *Deal) Metadata() *ItemMetadata            { return d.Data }

func (*Article) isFeedItem()         {}
func (*PromotedArticle) isFeedItem() {}
func (*Deal) isFeedItem()            {}

// KindHints carries the side-channel values that only some variants have.
type KindHints struct {
	Kind               ItemKind
	CreativeInstanceID string
	OffersCategory     string
}
