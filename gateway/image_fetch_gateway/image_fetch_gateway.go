package image_fetch_gateway

import (
	"context"
	stderrors "errors"
	"feedcard/domain"
	"feedcard/utils/errors"
	"feedcard/utils/rate_limiter"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// blockedHostSuffixes are never fetched, even when private hosts are allowed.
var blockedHostSuffixes = []string{".internal", ".local", ".localhost"}

// ImageFetchGateway implements the ImageFetchPort interface over HTTP.
type ImageFetchGateway struct {
	httpClient        *http.Client
	limiter           *rate_limiter.HostRateLimiter
	allowPrivateHosts bool
	userAgent         string
}

// NewImageFetchGateway creates a new ImageFetchGateway. A nil limiter disables pacing.
func NewImageFetchGateway(httpClient *http.Client, limiter *rate_limiter.HostRateLimiter, allowPrivateHosts bool) *ImageFetchGateway {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	// Redirects could bounce a vetted URL to an internal host.
	client := *httpClient
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &ImageFetchGateway{
		httpClient:        &client,
		limiter:           limiter,
		allowPrivateHosts: allowPrivateHosts,
		userAgent:         "feedcard/1.0",
	}
}

func (g *ImageFetchGateway) validateURL(u *url.URL) error {
	if u == nil {
		return fmt.Errorf("URL cannot be nil")
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("only HTTP and HTTPS schemes allowed")
	}
	if u.Host == "" {
		return fmt.Errorf("empty host not allowed")
	}
	if strings.Contains(u.Path, "..") {
		return fmt.Errorf("path traversal patterns not allowed")
	}

	hostname := strings.ToLower(u.Hostname())
	for _, suffix := range blockedHostSuffixes {
		if strings.HasSuffix(hostname, suffix) {
			return fmt.Errorf("access to internal domains not allowed")
		}
	}
	if g.allowPrivateHosts {
		return nil
	}
	if hostname == "localhost" {
		return fmt.Errorf("access to localhost not allowed")
	}
	if ip := net.ParseIP(hostname); ip != nil {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsUnspecified() {
			return fmt.Errorf("access to private networks not allowed")
		}
	}
	return nil
}

// FetchImage fetches raw image bytes from an external URL
func (g *ImageFetchGateway) FetchImage(ctx context.Context, imageURL *url.URL, options *domain.ImageFetchOptions) (*domain.ImageFetchResult, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if options == nil {
		options = domain.NewImageFetchOptions()
	}

	if err := g.validateURL(imageURL); err != nil {
		return nil, errors.NewValidationContextError(
			fmt.Sprintf("URL validation failed: %v", err),
			"gateway",
			"ImageFetchGateway",
			"validate_url",
			map[string]interface{}{
				"url": fmt.Sprint(imageURL),
			},
		)
	}

	if g.limiter != nil {
		if err := g.limiter.WaitForHost(ctx, imageURL); err != nil {
			return nil, errors.NewTimeoutContextError(
				"rate limiter wait aborted",
				"gateway",
				"ImageFetchGateway",
				"wait_for_host",
				err,
				map[string]interface{}{
					"host": imageURL.Host,
				},
			)
		}
	}

	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL.String(), nil)
	if err != nil {
		return nil, errors.NewExternalAPIContextError(
			"failed to create HTTP request",
			"gateway",
			"ImageFetchGateway",
			"create_request",
			err,
			map[string]interface{}{
				"url": imageURL.String(),
			},
		)
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "image/webp, image/jpeg, image/png, image/gif, */*;q=0.5")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, errors.NewTimeoutContextError(
				"request timeout",
				"gateway",
				"ImageFetchGateway",
				"http_request",
				err,
				map[string]interface{}{
					"url":     imageURL.String(),
					"timeout": options.Timeout.String(),
				},
			)
		}

		return nil, errors.NewExternalAPIContextError(
			"HTTP request failed",
			"gateway",
			"ImageFetchGateway",
			"http_request",
			err,
			map[string]interface{}{
				"url": imageURL.String(),
			},
		)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewExternalAPIContextError(
			fmt.Sprintf("HTTP request failed with status %d", resp.StatusCode),
			"gateway",
			"ImageFetchGateway",
			"http_response",
			fmt.Errorf("status code: %d", resp.StatusCode),
			map[string]interface{}{
				"url":         imageURL.String(),
				"status_code": resp.StatusCode,
			},
		)
	}

	contentType := resp.Header.Get("Content-Type")
	if !domain.IsValidImageContentType(contentType, options.AllowOctetStream) {
		return nil, errors.NewMalformedImageContextError(
			"response is not an image",
			"gateway",
			"ImageFetchGateway",
			"validate_content_type",
			nil,
			map[string]interface{}{
				"url":          imageURL.String(),
				"content_type": contentType,
			},
		)
	}

	if header := resp.Header.Get("Content-Length"); header != "" {
		if contentLength, err := strconv.ParseInt(header, 10, 64); err == nil && contentLength > int64(options.MaxSize) {
			return nil, tooLarge(imageURL, contentLength, options.MaxSize)
		}
	}

	// +1 to detect bodies that exceed the limit
	imageData, err := io.ReadAll(io.LimitReader(resp.Body, int64(options.MaxSize)+1))
	if err != nil {
		return nil, errors.NewExternalAPIContextError(
			"failed to read response body",
			"gateway",
			"ImageFetchGateway",
			"read_response",
			err,
			map[string]interface{}{
				"url": imageURL.String(),
			},
		)
	}
	if len(imageData) > options.MaxSize {
		return nil, tooLarge(imageURL, int64(len(imageData)), options.MaxSize)
	}

	return &domain.ImageFetchResult{
		URL:         imageURL.String(),
		ContentType: contentType,
		Data:        imageData,
		Size:        len(imageData),
		FetchedAt:   time.Now(),
	}, nil
}

func tooLarge(u *url.URL, size int64, max int) error {
	return errors.NewMalformedImageContextError(
		"image too large",
		"gateway",
		"ImageFetchGateway",
		"validate_size",
		nil,
		map[string]interface{}{
			"url":      u.String(),
			"size":     size,
			"max_size": max,
		},
	)
}

func isTimeout(err error) bool {
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}
