package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedFixture = `[
  {"type": "headline", "uuid": "c1", "items": [
    {"article": {"data": {"title": "A", "publisher_name": "Pub", "relative_time_description": "1h",
      "url": "https://news.example.com/a", "image": {"padded_image_url": "https://pcdn.example.com/a.pad"}}}}
  ]},
  {"type": "deals", "position": 7, "items": [
    {"deal": {"data": {"title": "D", "category_name": "Shopping", "url": "https://deals.example.com/d"}, "offers_category": "Electronics"}},
    {"promoted_article": {"data": {"title": "P", "url": "https://ads.example.com/p"}, "creative_instance_id": "cr-9"}}
  ]},
  {"type": "display_ad", "items": [
    {"article": {"data": {"title": "Ad", "url": "https://ads.example.com/ad"}}}
  ], "display_ad": {"uuid": "ad-uuid", "creative_instance_id": "cr-ad"}}
]`

func TestDecodeCards(t *testing.T) {
	cards, err := DecodeCards([]byte(feedFixture))
	require.NoError(t, err)
	require.Len(t, cards, 3)

	assert.Equal(t, CardTypeHeadline, cards[0].Type)
	assert.Equal(t, 0, cards[0].Position)
	assert.Equal(t, PaddedImageURL("https://pcdn.example.com/a.pad"), cards[0].Items[0].Metadata().Image)

	assert.Equal(t, 7, cards[1].Position)
	deal, ok := cards[1].Items[0].(*Deal)
	require.True(t, ok)
	assert.Equal(t, "Electronics", deal.OffersCategory)
	promo, ok := cards[1].Items[1].(*PromotedArticle)
	require.True(t, ok)
	assert.Equal(t, "cr-9", promo.CreativeInstanceID)

	require.NotNil(t, cards[2].DisplayAd)
	assert.Equal(t, "cr-ad", cards[2].DisplayAd.CreativeInstanceID)
}

func TestDecodeCards_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"unknown type", `[{"type": "carousel", "items": []}]`},
		{"empty union", `[{"type": "headline", "items": [{}]}]`},
		{"two union members", `[{"type": "headline", "items": [{"article": {"data": {}}, "deal": {"data": {}}}]}]`},
		{"two image variants", `[{"type": "headline", "items": [{"article": {"data": {"image": {"image_url": "https://a/x", "padded_image_url": "https://a/y"}}}}]}]`},
		{"negative position", `[{"type": "headline", "position": -1, "items": []}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCards([]byte(tt.body))
			assert.True(t, errors.Is(err, ErrInvalidCardJSON), "got %v", err)
		})
	}
}

func TestCardToJSON_RoundTrip(t *testing.T) {
	cards, err := DecodeCards([]byte(feedFixture))
	require.NoError(t, err)

	for i, card := range cards {
		back, err := CardToJSON(card).ToCard(-1)
		require.NoError(t, err)
		assert.Equal(t, card.Type, back.Type)
		assert.Equal(t, card.Position, back.Position, "card %d", i)
		assert.Equal(t, card.DisplayAd, back.DisplayAd)
		require.Len(t, back.Items, len(card.Items))
		for j := range card.Items {
			assert.Equal(t, card.Items[j].Kind(), back.Items[j].Kind())
			assert.Equal(t, *card.Items[j].Metadata(), *back.Items[j].Metadata())
		}
	}
}
