package image_decode_port

//go:generate go run go.uber.org/mock/mockgen -source=image_decode_port.go -destination=../../mocks/mock_image_decode_port.go -package=mocks

import (
	"context"
	"feedcard/domain"
)

// ImageDecodePort turns fetched bytes into a displayable bitmap.
type ImageDecodePort interface {
	Decode(ctx context.Context, data []byte, sourceURL string) (*domain.Bitmap, error)
}
