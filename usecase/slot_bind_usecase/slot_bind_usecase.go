package slot_bind_usecase

import (
	"feedcard/domain"
	"strconv"
	"strings"
)

// SlotBindUsecase copies item fields into the named slots of a cell according
// to the card type. It never truncates text.
type SlotBindUsecase struct {
	sponsorLogoAsset string
}

func NewSlotBindUsecase(sponsorLogoAsset string) *SlotBindUsecase {
	return &SlotBindUsecase{
		sponsorLogoAsset: sponsorLogoAsset,
	}
}

// Clean trims surrounding whitespace. Feed text is otherwise bound as is:
// angle brackets and entities are content, not markup.
func (u *SlotBindUsecase) Clean(text string) string {
	return strings.TrimSpace(text)
}

// BindCell produces the view model for one item position. A nil item yields an
// empty cell that keeps its identity.
func (u *SlotBindUsecase) BindCell(data *domain.ItemMetadata, hints domain.KindHints, cardType domain.CardType, role domain.CellRole) *domain.CellViewModel {
	cell := domain.NewCellViewModel(role, cardType)
	if data == nil {
		return cell
	}

	cell.Kind = hints.Kind
	if cell.Kind == domain.ItemKindNone {
		cell.Kind = domain.ItemKindArticle
	}
	cell.DestinationURL = strings.TrimSpace(data.URL)
	u.classify(cell, hints, cardType, role)

	cell.SetText(domain.SlotTitle, u.Clean(data.Title))

	switch cardType {
	case domain.CardTypeHeadline, domain.CardTypeHeadlinePaired, domain.CardTypeCategoryGroup, domain.CardTypePromotedArticle:
		cell.SetText(domain.SlotTime, u.Clean(data.RelativeTimeDescription))
		cell.SetText(domain.SlotPublisher, u.Clean(data.PublisherName))
		cell.AttachImage(data.Image)
	case domain.CardTypeDeals:
		cell.SetText(domain.SlotDescription, u.Clean(data.Description))
		// Deals show the offers category, never the feed category.
		cell.SetText(domain.SlotCategory, u.Clean(hints.OffersCategory))
		cell.AttachImage(data.Image)
	case domain.CardTypePublisherGroup:
		cell.SetText(domain.SlotTime, u.Clean(data.RelativeTimeDescription))
		cell.SetText(domain.SlotIndex, strconv.Itoa(role.Index+1))
	case domain.CardTypeDisplayAd:
		cell.SetText(domain.SlotTime, u.Clean(data.RelativeTimeDescription))
		cell.AttachStaticImage(u.sponsorLogoAsset)
	default:
		cell.SetText(domain.SlotTime, u.Clean(data.RelativeTimeDescription))
	}

	return cell
}

func (u *SlotBindUsecase) classify(cell *domain.CellViewModel, hints domain.KindHints, cardType domain.CardType, role domain.CellRole) {
	switch {
	case hints.Kind == domain.ItemKindPromotedArticle:
		cell.Classification = domain.ClassificationPromo
		cell.CreativeInstanceID = hints.CreativeInstanceID
	case cardType == domain.CardTypeDisplayAd:
		cell.Classification = domain.ClassificationDisplayAd
		if role.DisplayAd != nil {
			cell.CreativeInstanceID = role.DisplayAd.CreativeInstanceID
		}
	default:
		cell.Classification = domain.ClassificationNormal
	}
}
