package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"feedcard/config"
	"feedcard/di"
	"feedcard/domain"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Render: config.RenderConfig{
			ImageWait:        2 * time.Second,
			TopNewsLabel:     "Top News",
			PromotedLabel:    "Promoted",
			SponsorLogoAsset: "sponsor_logo",
		},
		Image: config.ImageConfig{
			MaxBytes:          1 << 20,
			FetchTimeout:      2 * time.Second,
			MaxWidth:          600,
			MaxPixels:         1 << 20,
			CacheSize:         8,
			MaxConcurrent:     2,
			AllowPrivateHosts: true,
		},
		Engagement: config.EngagementConfig{
			Store:             config.StoreMemory,
			MilestoneInterval: 4,
			KeyPrefix:         "test",
		},
		Logging: config.LoggingConfig{Level: "error", Format: "json"},
	}
}

func setupServer(t *testing.T) *echo.Echo {
	t.Helper()
	cfg := testConfig()
	container, err := di.NewApplicationComponents(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(container.Close)

	e := echo.New()
	RegisterRoutes(e, container, cfg)
	return e
}

func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
	t.Cleanup(srv.Close)
	return srv
}

func article(title, imageURL string) domain.FeedItemJSON {
	data := domain.MetadataJSON{
		Title:                   title,
		PublisherName:           "Publisher",
		RelativeTimeDescription: "1 hour ago",
		CategoryName:            "World",
		URL:                     "https://news.example.com/" + title,
	}
	if imageURL != "" {
		data.Image = &domain.ImageJSON{ImageURL: imageURL}
	}
	return domain.FeedItemJSON{Article: &domain.ArticleJSON{Data: data}}
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndMetrics(t *testing.T) {
	e := setupServer(t)

	rec := doJSON(t, e, http.MethodGet, "/v1/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = doJSON(t, e, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "feedcard_")
}

func TestRenderCards(t *testing.T) {
	e := setupServer(t)
	srv := imageServer(t)
	position := 4

	body := RenderCardsRequest{Cards: []domain.CardJSON{
		{Type: "headline", Position: &position, UUID: "c1", Items: []domain.FeedItemJSON{article("first", srv.URL+"/a.png")}},
		{Type: "category_group", Items: []domain.FeedItemJSON{
			article("one", srv.URL+"/b.png"),
			article("two", srv.URL+"/missing.png"),
		}},
	}}

	rec := doJSON(t, e, http.MethodPost, "/v1/cards/render", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp RenderCardsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.ImagesSettled)
	require.Len(t, resp.Cards, 2)

	headline := resp.Cards[0]
	assert.Equal(t, "headline", headline.Type)
	assert.Equal(t, 4, headline.Position)
	assert.Equal(t, "c1", headline.UUID)
	require.Len(t, headline.Cells, 1)
	assert.Equal(t, "first", headline.Cells[0].Slots["title"])
	assert.Equal(t, "resolved", headline.Cells[0].Image.State)
	assert.Equal(t, 8, headline.Cells[0].Image.Width)

	group := resp.Cards[1]
	assert.Equal(t, 1, group.Position)
	require.Len(t, group.Cells, 3)
	assert.Equal(t, "resolved", group.Cells[0].Image.State)
	// Provider failures leave the slot without a bitmap.
	assert.Equal(t, "pending", group.Cells[1].Image.State)
	assert.Equal(t, "none", group.Cells[2].Kind)
	require.NotNil(t, group.Root)
	assert.Equal(t, "Top News", group.Root.Children[0].Label)
}

func TestRenderCards_Invalid(t *testing.T) {
	e := setupServer(t)

	tests := []struct {
		name string
		body interface{}
	}{
		{name: "malformed json", body: `{"cards": [`},
		{name: "no cards", body: RenderCardsRequest{}},
		{name: "unknown type", body: `{"cards":[{"type":"carousel","items":[]}]}`},
		{name: "ambiguous item", body: `{"cards":[{"type":"headline","items":[{"article":{"data":{"title":"a","url":"u"}},"deal":{"data":{"title":"b","url":"u"}}}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, e, http.MethodPost, "/v1/cards/render", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
		})
	}
}

func TestCardClick(t *testing.T) {
	e := setupServer(t)
	position := 2

	promoted := domain.FeedItemJSON{PromotedArticle: &domain.PromotedArticleJSON{
		Data:               domain.MetadataJSON{Title: "ad", URL: "https://brand.example.com"},
		CreativeInstanceID: "creative-1",
	}}

	rec := doJSON(t, e, http.MethodPost, "/v1/cards/click", ClickRequest{
		Card: domain.CardJSON{Type: "promoted_article", Position: &position, Items: []domain.FeedItemJSON{promoted}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var click ClickResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &click))
	assert.Equal(t, "https://brand.example.com", click.Destination)
	assert.Equal(t, 2, click.ScrollPosition)
	assert.Equal(t, "promo", click.Classification)

	for i := 0; i < 4; i++ {
		rec = doJSON(t, e, http.MethodPost, "/v1/cards/click", ClickRequest{
			Card:  domain.CardJSON{Type: "publisher_group", Items: []domain.FeedItemJSON{article("a", ""), article("b", "")}},
			Index: 1,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec = doJSON(t, e, http.MethodGet, "/v1/engagement", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var counters domain.EngagementCounters
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counters))
	assert.Equal(t, int64(4), counters.GenericVisits)
	assert.Equal(t, map[string]int64{"creative-1": 1}, counters.PromotedVisitsPerCampaign)
}

func TestCardClick_Invalid(t *testing.T) {
	e := setupServer(t)
	card := domain.CardJSON{Type: "deals", Items: []domain.FeedItemJSON{article("a", "")}}

	tests := []struct {
		name string
		body interface{}
	}{
		{name: "index out of range", body: ClickRequest{Card: card, Index: 3}},
		{name: "negative index", body: ClickRequest{Card: card, Index: -1}},
		{name: "empty cell", body: ClickRequest{Card: card, Index: 2}},
		{name: "unknown type", body: `{"card":{"type":"nope"},"index":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, e, http.MethodPost, "/v1/cards/click", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}
