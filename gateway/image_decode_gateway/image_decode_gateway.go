package image_decode_gateway

import (
	"bytes"
	"context"
	"feedcard/domain"
	"feedcard/utils/errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// supportedFormats are the sniffed extensions a decoder is registered for.
var supportedFormats = map[string]bool{
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"webp": true,
	"bmp":  true,
	"tif":  true,
}

// ImageDecodeGateway implements ImageDecodePort with pure Go decoders.
type ImageDecodeGateway struct {
	maxWidth  int
	maxPixels int
}

// NewImageDecodeGateway returns a decoder that downscales images wider than
// maxWidth and refuses images with more than maxPixels. Zero disables either bound.
func NewImageDecodeGateway(maxWidth, maxPixels int) *ImageDecodeGateway {
	return &ImageDecodeGateway{maxWidth: maxWidth, maxPixels: maxPixels}
}

func (g *ImageDecodeGateway) Decode(ctx context.Context, data []byte, sourceURL string) (*domain.Bitmap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, malformed("empty image data", sourceURL, nil)
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || !supportedFormats[kind.Extension] {
		return nil, malformed("unsupported image format", sourceURL, err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, malformed("decode image header", sourceURL, err)
	}
	if g.maxPixels > 0 && cfg.Width*cfg.Height > g.maxPixels {
		return nil, malformed(fmt.Sprintf("image dimensions %dx%d exceed pixel limit", cfg.Width, cfg.Height), sourceURL, nil)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, malformed("decode image", sourceURL, err)
	}

	// Never upscale.
	if g.maxWidth > 0 && img.Bounds().Dx() > g.maxWidth {
		img = imaging.Resize(img, g.maxWidth, 0, imaging.Lanczos)
	}

	return &domain.Bitmap{
		SourceURL: sourceURL,
		Format:    format,
		Width:     img.Bounds().Dx(),
		Height:    img.Bounds().Dy(),
		Image:     img,
	}, nil
}

func malformed(message, sourceURL string, cause error) error {
	return errors.NewMalformedImageContextError(
		message,
		"gateway",
		"ImageDecodeGateway",
		"decode",
		cause,
		map[string]interface{}{
			"url": sourceURL,
		},
	)
}
