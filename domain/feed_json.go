package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidCardJSON = errors.New("invalid card json")

// ImageJSON carries exactly one of the two image variants, or neither.
type ImageJSON struct {
	PaddedImageURL string `json:"padded_image_url,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
}

type MetadataJSON struct {
	Title                   string     `json:"title"`
	Description             string     `json:"description,omitempty"`
	PublisherName           string     `json:"publisher_name,omitempty"`
	RelativeTimeDescription string     `json:"relative_time_description,omitempty"`
	CategoryName            string     `json:"category_name,omitempty"`
	Image                   *ImageJSON `json:"image,omitempty"`
	URL                     string     `json:"url"`
}

type ArticleJSON struct {
	Data MetadataJSON `json:"data"`
}

type PromotedArticleJSON struct {
	Data               MetadataJSON `json:"data"`
	CreativeInstanceID string       `json:"creative_instance_id"`
}

type DealJSON struct {
	Data           MetadataJSON `json:"data"`
	OffersCategory string       `json:"offers_category"`
}

// FeedItemJSON is the wire union: exactly one member is set.
type FeedItemJSON struct {
	Article         *ArticleJSON         `json:"article,omitempty"`
	PromotedArticle *PromotedArticleJSON `json:"promoted_article,omitempty"`
	Deal            *DealJSON            `json:"deal,omitempty"`
}

type DisplayAdJSON struct {
	UUID               string `json:"uuid"`
	CreativeInstanceID string `json:"creative_instance_id"`
}

// CardJSON is the wire form of a card snapshot. A missing position defaults
// to the card's index in the enclosing feed.
type CardJSON struct {
	Type      string         `json:"type"`
	Position  *int           `json:"position,omitempty"`
	UUID      string         `json:"uuid,omitempty"`
	Items     []FeedItemJSON `json:"items"`
	DisplayAd *DisplayAdJSON `json:"display_ad,omitempty"`
}

// DecodeCards parses a JSON array of cards.
func DecodeCards(data []byte) ([]*Card, error) {
	var raw []CardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCardJSON, err)
	}
	return CardsFromJSON(raw)
}

func CardsFromJSON(raw []CardJSON) ([]*Card, error) {
	cards := make([]*Card, 0, len(raw))
	for i, rc := range raw {
		card, err := rc.ToCard(i)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// ToCard converts the wire form, using defaultPosition when none is given.
func (rc CardJSON) ToCard(defaultPosition int) (*Card, error) {
	cardType, err := ParseCardType(rc.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCardJSON, err)
	}
	position := defaultPosition
	if rc.Position != nil {
		position = *rc.Position
	}
	if position < 0 {
		return nil, fmt.Errorf("%w: negative position %d", ErrInvalidCardJSON, position)
	}

	card := &Card{Type: cardType, Position: position, UUID: rc.UUID}
	for i, ri := range rc.Items {
		item, err := ri.ToFeedItem()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		card.Items = append(card.Items, item)
	}
	if rc.DisplayAd != nil {
		card.DisplayAd = &DisplayAd{UUID: rc.DisplayAd.UUID, CreativeInstanceID: rc.DisplayAd.CreativeInstanceID}
	}
	return card, nil
}

func (ri FeedItemJSON) ToFeedItem() (FeedItem, error) {
	set := 0
	for _, present := range []bool{ri.Article != nil, ri.PromotedArticle != nil, ri.Deal != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: item must set exactly one of article, promoted_article, deal (got %d)", ErrInvalidCardJSON, set)
	}

	switch {
	case ri.Article != nil:
		data, err := ri.Article.Data.toMetadata()
		if err != nil {
			return nil, err
		}
		return NewArticle(data), nil
	case ri.PromotedArticle != nil:
		data, err := ri.PromotedArticle.Data.toMetadata()
		if err != nil {
			return nil, err
		}
		return NewPromotedArticle(data, ri.PromotedArticle.CreativeInstanceID), nil
	default:
		data, err := ri.Deal.Data.toMetadata()
		if err != nil {
			return nil, err
		}
		return NewDeal(data, ri.Deal.OffersCategory), nil
	}
}

func (m MetadataJSON) toMetadata() (*ItemMetadata, error) {
	data := &ItemMetadata{
		Title:                   m.Title,
		Description:             m.Description,
		PublisherName:           m.PublisherName,
		RelativeTimeDescription: m.RelativeTimeDescription,
		CategoryName:            m.CategoryName,
		URL:                     m.URL,
	}
	if m.Image == nil {
		return data, nil
	}
	padded := strings.TrimSpace(m.Image.PaddedImageURL)
	plain := strings.TrimSpace(m.Image.ImageURL)
	switch {
	case padded != "" && plain != "":
		return nil, fmt.Errorf("%w: image sets both padded_image_url and image_url", ErrInvalidCardJSON)
	case padded != "":
		data.Image = PaddedImageURL(padded)
	case plain != "":
		data.Image = PlainImageURL(plain)
	}
	return data, nil
}

// CardToJSON is the inverse of ToCard.
func CardToJSON(card *Card) CardJSON {
	position := card.Position
	rc := CardJSON{Type: card.Type.String(), Position: &position, UUID: card.UUID}
	for _, item := range card.Items {
		rc.Items = append(rc.Items, itemToJSON(item))
	}
	if card.DisplayAd != nil {
		rc.DisplayAd = &DisplayAdJSON{UUID: card.DisplayAd.UUID, CreativeInstanceID: card.DisplayAd.CreativeInstanceID}
	}
	return rc
}

func itemToJSON(item FeedItem) FeedItemJSON {
	switch it := item.(type) {
	case *Article:
		return FeedItemJSON{Article: &ArticleJSON{Data: metadataToJSON(it.Data)}}
	case *PromotedArticle:
		return FeedItemJSON{PromotedArticle: &PromotedArticleJSON{Data: metadataToJSON(it.Data), CreativeInstanceID: it.CreativeInstanceID}}
	case *Deal:
		return FeedItemJSON{Deal: &DealJSON{Data: metadataToJSON(it.Data), OffersCategory: it.OffersCategory}}
	default:
		return FeedItemJSON{}
	}
}

func metadataToJSON(m *ItemMetadata) MetadataJSON {
	if m == nil {
		return MetadataJSON{}
	}
	out := MetadataJSON{
		Title:                   m.Title,
		Description:             m.Description,
		PublisherName:           m.PublisherName,
		RelativeTimeDescription: m.RelativeTimeDescription,
		CategoryName:            m.CategoryName,
		URL:                     m.URL,
	}
	switch m.Image.Kind {
	case ImageKindPaddedURL:
		out.Image = &ImageJSON{PaddedImageURL: m.Image.URL}
	case ImageKindURL:
		out.Image = &ImageJSON{ImageURL: m.Image.URL}
	}
	return out
}
