package rest

import (
	"context"
	"feedcard/config"
	"feedcard/di"
	"feedcard/domain"
	"feedcard/gateway/navigation_gateway"
	"feedcard/usecase/card_layout_usecase"
	"feedcard/usecase/engagement_usecase"
	"feedcard/utils/logger"
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerCardRoutes(v1 *echo.Group, container *di.ApplicationComponents, cfg *config.Config) {
	cards := v1.Group("/cards")
	cards.POST("/render", handleRenderCards(container, cfg))
	cards.POST("/click", handleCardClick(container))
}

// handleRenderCards composes the posted cards and waits up to the configured
// render wait for their images before answering.
func handleRenderCards(container *di.ApplicationComponents, cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req RenderCardsRequest
		if err := c.Bind(&req); err != nil {
			return handleValidationError(c, "Invalid request format", "body", "malformed JSON")
		}
		if len(req.Cards) == 0 {
			return handleValidationError(c, "At least one card is required", "cards", 0)
		}

		cards, err := domain.CardsFromJSON(req.Cards)
		if err != nil {
			return handleValidationError(c, err.Error(), "cards", len(req.Cards))
		}

		ctx := c.Request().Context()
		built := container.Composer.ComposeFeed(ctx, cards)
		defer func() {
			for _, b := range built {
				b.Release()
			}
		}()

		settled := true
		if wait := cfg.Render.ImageWait; wait > 0 {
			waitCtx, cancel := context.WithTimeout(ctx, wait)
			if err := card_layout_usecase.WaitAll(waitCtx, built); err != nil {
				settled = false
				logger.NewContextLogger(nil).WithContext(ctx).Info("answering before all images settled",
					"cards", len(built),
					"wait", wait.String())
			}
			cancel()
		}

		resp := RenderCardsResponse{
			Cards:         make([]CardView, 0, len(built)),
			ImagesSettled: settled,
		}
		for _, b := range built {
			resp.Cards = append(resp.Cards, toCardView(b.Tree))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// handleCardClick rebuilds the clicked card, records the visit and returns the
// destination the client should open.
func handleCardClick(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req ClickRequest
		if err := c.Bind(&req); err != nil {
			return handleValidationError(c, "Invalid request format", "body", "malformed JSON")
		}

		card, err := req.Card.ToCard(0)
		if err != nil {
			return handleValidationError(c, err.Error(), "card", req.Card.Type)
		}

		ctx := c.Request().Context()
		tree := container.CardLayoutUsecase.Build(ctx, card)
		defer tree.Liveness.Release()
		if req.Index < 0 || req.Index >= len(tree.Cells) {
			return handleValidationError(c, "Index out of range", "index", req.Index)
		}
		cell := tree.Cells[req.Index]

		navigator := navigation_gateway.NewRecordingNavigator()
		router := engagement_usecase.NewClickRouter(container.EngagementUsecase, navigator, logger.Logger)
		if err := router.Click(ctx, card.Position, cell); err != nil {
			return handleError(c, err, "card_click")
		}

		opened := navigator.Opened()
		return c.JSON(http.StatusOK, ClickResponse{
			Destination:    opened[len(opened)-1],
			ScrollPosition: navigator.ScrollPosition(),
			Classification: string(cell.Classification),
		})
	}
}
