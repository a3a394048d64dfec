package domain

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"net/url"
	"strings"
	"time"
)

// ImageKind tags the active image reference variant.
type ImageKind int

const (
	ImageKindNone ImageKind = iota
	ImageKindPaddedURL
	ImageKindURL
)

func (k ImageKind) String() string {
	switch k {
	case ImageKindPaddedURL:
		return "padded_image_url"
	case ImageKindURL:
		return "image_url"
	default:
		return "none"
	}
}

// ImageReference holds at most one image variant. The zero value means no image.
type ImageReference struct {
	Kind ImageKind
	URL  string
}

func PaddedImageURL(u string) ImageReference {
	return ImageReference{Kind: ImageKindPaddedURL, URL: u}
}

func PlainImageURL(u string) ImageReference {
	return ImageReference{Kind: ImageKindURL, URL: u}
}

func (r ImageReference) IsSet() bool {
	return r.Kind != ImageKindNone && strings.TrimSpace(r.URL) != ""
}

// Bitmap is a decoded, displayable image.
type Bitmap struct {
	SourceURL string
	Format    string
	Width     int
	Height    int
	Image     image.Image
}

// ImageFetchResult represents the result of fetching an image
type ImageFetchResult struct {
	URL         string
	ContentType string
	Data        []byte
	Size        int
	FetchedAt   time.Time
}

// ImageFetchOptions represents options for fetching an image
type ImageFetchOptions struct {
	MaxSize int           // Maximum size in bytes (default: 5MB)
	Timeout time.Duration // Request timeout (default: 15s)
	// AllowOctetStream accepts untyped bodies, as served for padded images
	AllowOctetStream bool
}

// NewImageFetchOptions creates default ImageFetchOptions
func NewImageFetchOptions() *ImageFetchOptions {
	return &ImageFetchOptions{
		MaxSize: 5 * 1024 * 1024,
		Timeout: 15 * time.Second,
	}
}

// ValidateImageURL validates if the URL is suitable for image fetching
func ValidateImageURL(rawURL string) (*url.URL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, fmt.Errorf("URL cannot be empty")
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL format: %w", err)
	}

	if parsedURL.Scheme != "https" && parsedURL.Scheme != "http" {
		return nil, fmt.Errorf("only HTTP and HTTPS URLs are allowed")
	}

	if parsedURL.Host == "" {
		return nil, fmt.Errorf("URL has no host")
	}

	return parsedURL, nil
}

// IsValidImageContentType validates if the content type is an allowed image type.
// Padded images are served as application/octet-stream, so callers pass
// allowOctetStream for them.
func IsValidImageContentType(contentType string, allowOctetStream bool) bool {
	if contentType == "" {
		return allowOctetStream
	}

	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if strings.HasPrefix(contentType, "image/") {
		return true
	}
	return allowOctetStream && strings.HasPrefix(contentType, "application/octet-stream")
}

var ErrInvalidPadding = errors.New("invalid padded image payload")

// UnpadImage strips the private-CDN padding: a big-endian uint32 payload
// length, the payload, then filler bytes.
func UnpadImage(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidPadding, len(data))
	}
	size := binary.BigEndian.Uint32(data[:4])
	if size == 0 || uint64(size) > uint64(len(data)-4) {
		return nil, fmt.Errorf("%w: declared %d bytes, have %d", ErrInvalidPadding, size, len(data)-4)
	}
	return data[4 : 4+size], nil
}
