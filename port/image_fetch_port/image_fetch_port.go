package image_fetch_port

//go:generate go run go.uber.org/mock/mockgen -source=image_fetch_port.go -destination=../../mocks/mock_image_fetch_port.go -package=mocks

import (
	"context"
	"feedcard/domain"
	"net/url"
)

// ImageFetchPort defines the interface for external image fetching operations
type ImageFetchPort interface {
	// FetchImage fetches raw image bytes from the given URL with options
	FetchImage(ctx context.Context, imageURL *url.URL, options *domain.ImageFetchOptions) (*domain.ImageFetchResult, error)
}
