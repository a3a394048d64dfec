package text_measure_gateway

import (
	"feedcard/domain"
	"strings"

	"golang.org/x/text/width"
)

// Metrics approximates the host's typography in abstract units.
type Metrics struct {
	ColumnsPerLine int
	LineHeight     int
	SlotSpacing    int
	ImageHeight    int
	LogoHeight     int
}

func DefaultMetrics() Metrics {
	return Metrics{
		ColumnsPerLine: 24,
		LineHeight:     18,
		SlotSpacing:    4,
		ImageHeight:    96,
		LogoHeight:     24,
	}
}

// TextMeasureGateway implements MeasurePort by wrapping text at a fixed column count.
// East Asian wide and fullwidth runes take two columns.
type TextMeasureGateway struct {
	metrics Metrics
}

func NewTextMeasureGateway(metrics Metrics) *TextMeasureGateway {
	if metrics.ColumnsPerLine < 1 {
		metrics.ColumnsPerLine = 1
	}
	return &TextMeasureGateway{metrics: metrics}
}

// MeasureCell returns the natural stack height of a bound cell.
func (g *TextMeasureGateway) MeasureCell(cell *domain.CellViewModel) int {
	if cell == nil {
		return 0
	}
	height := 0
	slots := cell.Slots()
	for _, slot := range slots {
		switch slot {
		case domain.SlotImage:
			height += g.metrics.ImageHeight
		case domain.SlotLogo:
			height += g.metrics.LogoHeight
		default:
			text, _ := cell.Text(slot)
			height += g.Lines(text) * g.metrics.LineHeight
		}
	}
	if len(slots) > 1 {
		height += (len(slots) - 1) * g.metrics.SlotSpacing
	}
	return height
}

// Lines counts wrapped lines; empty text still occupies one line.
func (g *TextMeasureGateway) Lines(text string) int {
	lines := 0
	for _, paragraph := range strings.Split(text, "\n") {
		cols := Columns(paragraph)
		lines += max(1, (cols+g.metrics.ColumnsPerLine-1)/g.metrics.ColumnsPerLine)
	}
	return lines
}

// Columns returns the display width of s in terminal columns.
func Columns(s string) int {
	cols := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			cols += 2
		default:
			cols++
		}
	}
	return cols
}
