package measure_port

//go:generate go run go.uber.org/mock/mockgen -source=measure_port.go -destination=../../mocks/mock_measure_port.go -package=mocks

import "feedcard/domain"

// MeasurePort reports the natural height of a cell's stack after binding.
type MeasurePort interface {
	MeasureCell(cell *domain.CellViewModel) int
}
