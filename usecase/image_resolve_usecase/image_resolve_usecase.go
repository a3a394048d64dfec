package image_resolve_usecase

import (
	"context"
	"feedcard/domain"
	"feedcard/port/dispatch_port"
	"feedcard/port/image_decode_port"
	"feedcard/port/image_fetch_port"
	"feedcard/utils/errors"
	"feedcard/utils/logger"
	"feedcard/utils/metrics"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// Options tunes the resolver. A CacheSize of zero disables the bitmap cache.
type Options struct {
	MaxConcurrent int
	CacheSize     int
	Fetch         domain.ImageFetchOptions
}

// ImageResolveUsecase turns an item's image reference into a bitmap and hands
// it to the render turn. Failures are logged and counted, never surfaced.
type ImageResolveUsecase struct {
	fetchPort  image_fetch_port.ImageFetchPort
	decodePort image_decode_port.ImageDecodePort
	dispatcher dispatch_port.DispatcherPort

	options Options
	cache   *lru.Cache[string, *domain.Bitmap]
	sem     *semaphore.Weighted
	group   singleflight.Group
	wg      sync.WaitGroup
	tracer  trace.Tracer
	logger  *logger.ContextLogger
}

func NewImageResolveUsecase(
	fetchPort image_fetch_port.ImageFetchPort,
	decodePort image_decode_port.ImageDecodePort,
	dispatcher dispatch_port.DispatcherPort,
	options Options,
	log *slog.Logger,
) *ImageResolveUsecase {
	if options.MaxConcurrent < 1 {
		options.MaxConcurrent = 1
	}
	u := &ImageResolveUsecase{
		fetchPort:  fetchPort,
		decodePort: decodePort,
		dispatcher: dispatcher,
		options:    options,
		sem:        semaphore.NewWeighted(int64(options.MaxConcurrent)),
		tracer:     otel.Tracer("feedcard/image_resolve_usecase"),
		logger:     logger.NewContextLogger(log),
	}
	if options.CacheSize > 0 {
		// Only fails for non-positive sizes.
		u.cache, _ = lru.New[string, *domain.Bitmap](options.CacheSize)
	}
	return u
}

// Resolve starts one asynchronous resolution. onReady runs at most once, on the
// render turn, and never when the item has no image or resolution fails.
func (u *ImageResolveUsecase) Resolve(ctx context.Context, item *domain.ItemMetadata, onReady func(*domain.Bitmap)) {
	u.ResolveWithDone(ctx, item, onReady, nil)
}

// ResolveWithDone is Resolve plus a done hook that runs exactly once after the
// resolution settles, after onReady when it ran.
func (u *ImageResolveUsecase) ResolveWithDone(ctx context.Context, item *domain.ItemMetadata, onReady func(*domain.Bitmap), done func()) {
	if done == nil {
		done = func() {}
	}
	if item == nil || !item.Image.IsSet() || onReady == nil {
		done()
		return
	}
	ref := item.Image

	if u.cache != nil {
		if bitmap, ok := u.cache.Get(ref.URL); ok {
			metrics.RecordImage(metrics.ImageCacheHit)
			u.deliver(bitmap, onReady, done)
			return
		}
	}

	// Resolution outlives the caller; cards guard stale callbacks themselves.
	ctx = context.WithoutCancel(ctx)
	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		metrics.ImagesInFlight.Inc()
		defer metrics.ImagesInFlight.Dec()

		bitmap, err := u.load(ctx, ref)
		if err != nil {
			done()
			return
		}
		u.deliver(bitmap, onReady, done)
	}()
}

func (u *ImageResolveUsecase) deliver(bitmap *domain.Bitmap, onReady func(*domain.Bitmap), done func()) {
	posted := u.dispatcher.Post(func() {
		defer done()
		onReady(bitmap)
	})
	if !posted {
		metrics.RecordImage(metrics.ImageDropped)
		done()
	}
}

// load fetches, unpads and decodes; concurrent loads of one URL share a single fetch.
func (u *ImageResolveUsecase) load(ctx context.Context, ref domain.ImageReference) (*domain.Bitmap, error) {
	ctx, span := u.tracer.Start(ctx, "ImageResolve",
		trace.WithAttributes(
			attribute.String("image.url", ref.URL),
			attribute.String("image.kind", ref.Kind.String()),
		))
	defer span.End()

	v, err, shared := u.group.Do(ref.URL, func() (interface{}, error) {
		if err := u.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		defer u.sem.Release(1)
		return u.fetchAndDecode(ctx, ref)
	})
	span.SetAttributes(attribute.Bool("image.shared", shared))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "image resolution failed")
		u.logger.WithContext(ctx).Warn("image resolution failed",
			"url", ref.URL,
			"kind", ref.Kind.String(),
			"error", err)
		return nil, err
	}
	return v.(*domain.Bitmap), nil
}

func (u *ImageResolveUsecase) fetchAndDecode(ctx context.Context, ref domain.ImageReference) (*domain.Bitmap, error) {
	imageURL, err := domain.ValidateImageURL(ref.URL)
	if err != nil {
		metrics.RecordImage(metrics.ImageFetchError)
		return nil, errors.NewValidationContextError(
			err.Error(),
			"usecase",
			"ImageResolveUsecase",
			"validate_url",
			map[string]interface{}{
				"url": ref.URL,
			},
		)
	}

	options := u.options.Fetch
	options.AllowOctetStream = ref.Kind == domain.ImageKindPaddedURL

	start := time.Now()
	result, err := u.fetchPort.FetchImage(ctx, imageURL, &options)
	metrics.RecordImageFetch(time.Since(start))
	if err != nil {
		metrics.RecordImage(metrics.ImageFetchError)
		return nil, err
	}
	if result == nil {
		metrics.RecordImage(metrics.ImageFetchError)
		return nil, errors.NewExternalAPIContextError(
			"provider returned no data",
			"usecase",
			"ImageResolveUsecase",
			"fetch",
			nil,
			map[string]interface{}{
				"url": ref.URL,
			},
		)
	}

	data := result.Data
	if ref.Kind == domain.ImageKindPaddedURL {
		data, err = domain.UnpadImage(data)
		if err != nil {
			metrics.RecordImage(metrics.ImageUnpadError)
			return nil, errors.NewMalformedImageContextError(
				"failed to unpad image",
				"usecase",
				"ImageResolveUsecase",
				"unpad",
				err,
				map[string]interface{}{
					"url":  ref.URL,
					"size": len(result.Data),
				},
			)
		}
	}

	bitmap, err := u.decodePort.Decode(ctx, data, ref.URL)
	if err != nil {
		metrics.RecordImage(metrics.ImageDecodeError)
		return nil, err
	}

	metrics.RecordImage(metrics.ImageResolved)
	if u.cache != nil {
		u.cache.Add(ref.URL, bitmap)
	}
	return bitmap, nil
}

// Wait blocks until every started resolution has settled.
func (u *ImageResolveUsecase) Wait() {
	u.wg.Wait()
}
