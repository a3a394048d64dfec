package rest

import (
	"feedcard/domain"
)

type RenderCardsRequest struct {
	Cards []domain.CardJSON `json:"cards"`
}

type RenderCardsResponse struct {
	Cards []CardView `json:"cards"`
	// ImagesSettled is false when the render wait ran out with images still in flight.
	ImagesSettled bool `json:"images_settled"`
}

type CardView struct {
	Type     string             `json:"type"`
	Position int                `json:"position"`
	UUID     string             `json:"uuid,omitempty"`
	Empty    bool               `json:"empty"`
	Root     *domain.LayoutNode `json:"root,omitempty"`
	Cells    []CellView         `json:"cells"`
}

type CellView struct {
	Index              int               `json:"index"`
	Kind               string            `json:"kind"`
	Classification     string            `json:"classification"`
	CreativeInstanceID string            `json:"creative_instance_id,omitempty"`
	DestinationURL     string            `json:"destination_url,omitempty"`
	Slots              map[string]string `json:"slots"`
	Image              ImageView         `json:"image"`
	EffectiveHeight    int               `json:"effective_height,omitempty"`
}

type ImageView struct {
	State  string `json:"state"`
	Kind   string `json:"kind,omitempty"`
	URL    string `json:"url,omitempty"`
	Asset  string `json:"asset,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type ClickRequest struct {
	Card  domain.CardJSON `json:"card"`
	Index int             `json:"index"`
}

type ClickResponse struct {
	Destination    string `json:"destination"`
	ScrollPosition int    `json:"scroll_position"`
	Classification string `json:"classification"`
}

func toCardView(tree *domain.LayoutTree) CardView {
	view := CardView{
		Type:     tree.CardType.String(),
		Position: tree.Position,
		Empty:    tree.IsEmpty(),
		Root:     tree.Root,
		Cells:    make([]CellView, 0, len(tree.Cells)),
	}
	for i, cell := range tree.Cells {
		if i == 0 {
			view.UUID = cell.Role.CardUUID
		}
		view.Cells = append(view.Cells, toCellView(i, cell))
	}
	return view
}

func toCellView(index int, cell *domain.CellViewModel) CellView {
	slots := make(map[string]string)
	for _, slot := range cell.Slots() {
		if text, ok := cell.Text(slot); ok {
			slots[string(slot)] = text
		}
	}

	image := cell.Image()
	imageView := ImageView{State: string(image.State), Asset: image.Asset}
	if image.Ref.IsSet() {
		imageView.Kind = image.Ref.Kind.String()
		imageView.URL = image.Ref.URL
	}
	if image.Bitmap != nil {
		imageView.Width = image.Bitmap.Width
		imageView.Height = image.Bitmap.Height
	}

	return CellView{
		Index:              index,
		Kind:               cell.Kind.String(),
		Classification:     string(cell.Classification),
		CreativeInstanceID: cell.CreativeInstanceID,
		DestinationURL:     cell.DestinationURL,
		Slots:              slots,
		Image:              imageView,
		EffectiveHeight:    cell.EffectiveHeight(),
	}
}
