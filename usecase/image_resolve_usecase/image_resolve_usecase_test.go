package image_resolve_usecase

import (
	"context"
	"encoding/binary"
	stderrors "errors"
	"feedcard/domain"
	"feedcard/driver/render_loop"
	"feedcard/mocks"
	"feedcard/utils/errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

// inlineDispatcher runs callbacks on the posting goroutine.
type inlineDispatcher struct{ closed bool }

func (d *inlineDispatcher) Post(fn func()) bool {
	if d.closed {
		return false
	}
	fn()
	return true
}

func testOptions() Options {
	return Options{
		MaxConcurrent: 2,
		CacheSize:     16,
		Fetch:         domain.ImageFetchOptions{MaxSize: 1024, Timeout: time.Second},
	}
}

func item(ref domain.ImageReference) *domain.ItemMetadata {
	return &domain.ItemMetadata{Title: "t", Image: ref}
}

type readyRecorder struct {
	mu      sync.Mutex
	bitmaps []*domain.Bitmap
}

func (r *readyRecorder) onReady(b *domain.Bitmap) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bitmaps = append(r.bitmaps, b)
}

func (r *readyRecorder) calls() []*domain.Bitmap {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.Bitmap(nil), r.bitmaps...)
}

func TestImageResolveUsecase_Resolve(t *testing.T) {
	plainURL := "https://cdn.example.com/a.png"
	paddedURL := "https://pcdn.example.com/a.pad"
	payload := []byte("\x89PNG-bytes")
	padded := make([]byte, 4, 64)
	binary.BigEndian.PutUint32(padded, uint32(len(payload)))
	padded = append(padded, payload...)
	padded = append(padded, make([]byte, 32)...)
	bitmap := &domain.Bitmap{SourceURL: plainURL, Width: 2, Height: 2}

	tests := []struct {
		name      string
		ref       domain.ImageReference
		setup     func(fetch *mocks.MockImageFetchPort, decode *mocks.MockImageDecodePort)
		wantReady bool
	}{
		{
			name:  "no image never fetches",
			ref:   domain.ImageReference{},
			setup: func(*mocks.MockImageFetchPort, *mocks.MockImageDecodePort) {},
		},
		{
			name: "plain url resolves",
			ref:  domain.PlainImageURL(plainURL),
			setup: func(fetch *mocks.MockImageFetchPort, decode *mocks.MockImageDecodePort) {
				fetch.EXPECT().
					FetchImage(gomock.Any(), gomock.Any(), &domain.ImageFetchOptions{MaxSize: 1024, Timeout: time.Second}).
					Return(&domain.ImageFetchResult{URL: plainURL, Data: payload, Size: len(payload)}, nil)
				decode.EXPECT().Decode(gomock.Any(), payload, plainURL).Return(bitmap, nil)
			},
			wantReady: true,
		},
		{
			name: "padded url is unpadded before decoding",
			ref:  domain.PaddedImageURL(paddedURL),
			setup: func(fetch *mocks.MockImageFetchPort, decode *mocks.MockImageDecodePort) {
				fetch.EXPECT().
					FetchImage(gomock.Any(), gomock.Any(), &domain.ImageFetchOptions{MaxSize: 1024, Timeout: time.Second, AllowOctetStream: true}).
					Return(&domain.ImageFetchResult{URL: paddedURL, Data: padded, Size: len(padded)}, nil)
				decode.EXPECT().Decode(gomock.Any(), payload, paddedURL).Return(bitmap, nil)
			},
			wantReady: true,
		},
		{
			name: "provider failure",
			ref:  domain.PlainImageURL(plainURL),
			setup: func(fetch *mocks.MockImageFetchPort, _ *mocks.MockImageDecodePort) {
				fetch.EXPECT().FetchImage(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.NewExternalAPIContextError("boom", "gateway", "ImageFetchGateway", "http_request", stderrors.New("reset"), nil))
			},
		},
		{
			name: "malformed bytes",
			ref:  domain.PlainImageURL(plainURL),
			setup: func(fetch *mocks.MockImageFetchPort, decode *mocks.MockImageDecodePort) {
				fetch.EXPECT().FetchImage(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&domain.ImageFetchResult{Data: []byte("junk")}, nil)
				decode.EXPECT().Decode(gomock.Any(), []byte("junk"), plainURL).
					Return(nil, errors.NewMalformedImageContextError("bad", "gateway", "ImageDecodeGateway", "decode", nil, nil))
			},
		},
		{
			name: "bad padding never decodes",
			ref:  domain.PaddedImageURL(paddedURL),
			setup: func(fetch *mocks.MockImageFetchPort, _ *mocks.MockImageDecodePort) {
				fetch.EXPECT().FetchImage(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&domain.ImageFetchResult{Data: []byte{0, 0, 1, 0, 7}}, nil)
			},
		},
		{
			name: "empty provider result",
			ref:  domain.PlainImageURL(plainURL),
			setup: func(fetch *mocks.MockImageFetchPort, _ *mocks.MockImageDecodePort) {
				fetch.EXPECT().FetchImage(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
		},
		{
			name:  "invalid url",
			ref:   domain.PlainImageURL("javascript:alert(1)"),
			setup: func(*mocks.MockImageFetchPort, *mocks.MockImageDecodePort) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			ctrl := gomock.NewController(t)
			fetch := mocks.NewMockImageFetchPort(ctrl)
			decode := mocks.NewMockImageDecodePort(ctrl)
			tt.setup(fetch, decode)

			u := NewImageResolveUsecase(fetch, decode, &inlineDispatcher{}, testOptions(), nil)
			rec := &readyRecorder{}
			var done atomic.Int32

			u.ResolveWithDone(context.Background(), item(tt.ref), rec.onReady, func() { done.Add(1) })
			u.Wait()

			assert.Equal(t, int32(1), done.Load())
			if tt.wantReady {
				require.Len(t, rec.calls(), 1)
				assert.Same(t, bitmap, rec.calls()[0])
			} else {
				assert.Empty(t, rec.calls())
			}
		})
	}
}

func TestImageResolveUsecase_NilItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	u := NewImageResolveUsecase(mocks.NewMockImageFetchPort(ctrl), mocks.NewMockImageDecodePort(ctrl), &inlineDispatcher{}, testOptions(), nil)

	called := false
	u.Resolve(context.Background(), nil, func(*domain.Bitmap) { called = true })
	u.Wait()
	assert.False(t, called)
}

func TestImageResolveUsecase_CachesDecodedBitmaps(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetch := mocks.NewMockImageFetchPort(ctrl)
	decode := mocks.NewMockImageDecodePort(ctrl)
	bitmap := &domain.Bitmap{Width: 1, Height: 1}

	fetch.EXPECT().FetchImage(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.ImageFetchResult{Data: []byte("x")}, nil).Times(1)
	decode.EXPECT().Decode(gomock.Any(), gomock.Any(), gomock.Any()).Return(bitmap, nil).Times(1)

	u := NewImageResolveUsecase(fetch, decode, &inlineDispatcher{}, testOptions(), nil)
	rec := &readyRecorder{}
	ref := domain.PlainImageURL("https://cdn.example.com/cached.png")

	u.Resolve(context.Background(), item(ref), rec.onReady)
	u.Wait()
	u.Resolve(context.Background(), item(ref), rec.onReady)
	u.Wait()

	require.Len(t, rec.calls(), 2)
	assert.Same(t, bitmap, rec.calls()[1])
}

func TestImageResolveUsecase_SharesConcurrentFetches(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetch := mocks.NewMockImageFetchPort(ctrl)
	decode := mocks.NewMockImageDecodePort(ctrl)
	release := make(chan struct{})

	fetch.EXPECT().FetchImage(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *url.URL, *domain.ImageFetchOptions) (*domain.ImageFetchResult, error) {
			<-release
			return &domain.ImageFetchResult{Data: []byte("x")}, nil
		}).MinTimes(1).MaxTimes(3)
	decode.EXPECT().Decode(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.Bitmap{}, nil).MinTimes(1).MaxTimes(3)

	opts := testOptions()
	opts.CacheSize = 0
	u := NewImageResolveUsecase(fetch, decode, &inlineDispatcher{}, opts, nil)
	rec := &readyRecorder{}
	ref := domain.PlainImageURL("https://cdn.example.com/shared.png")

	for i := 0; i < 3; i++ {
		u.Resolve(context.Background(), item(ref), rec.onReady)
	}
	close(release)
	u.Wait()

	// Every caller gets its own callback even when the fetch is shared.
	assert.Len(t, rec.calls(), 3)
}

func TestImageResolveUsecase_ClosedDispatcherDropsCallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetch := mocks.NewMockImageFetchPort(ctrl)
	decode := mocks.NewMockImageDecodePort(ctrl)
	fetch.EXPECT().FetchImage(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.ImageFetchResult{Data: []byte("x")}, nil)
	decode.EXPECT().Decode(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.Bitmap{}, nil)

	u := NewImageResolveUsecase(fetch, decode, &inlineDispatcher{closed: true}, testOptions(), nil)
	called := false
	var done atomic.Bool

	u.ResolveWithDone(context.Background(), item(domain.PlainImageURL("https://cdn.example.com/x.png")),
		func(*domain.Bitmap) { called = true }, func() { done.Store(true) })
	u.Wait()

	assert.False(t, called)
	assert.True(t, done.Load())
}

func TestImageResolveUsecase_DeliversOnRenderLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctrl := gomock.NewController(t)
	fetch := mocks.NewMockImageFetchPort(ctrl)
	decode := mocks.NewMockImageDecodePort(ctrl)
	fetch.EXPECT().FetchImage(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.ImageFetchResult{Data: []byte("x")}, nil)
	decode.EXPECT().Decode(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.Bitmap{Width: 3}, nil)

	loop := render_loop.NewRenderLoop(4)
	u := NewImageResolveUsecase(fetch, decode, loop, testOptions(), nil)
	rec := &readyRecorder{}

	u.Resolve(context.Background(), item(domain.PlainImageURL("https://cdn.example.com/loop.png")), rec.onReady)
	u.Wait()
	require.NoError(t, loop.Flush(context.Background()))
	loop.Close()

	require.Len(t, rec.calls(), 1)
	assert.Equal(t, 3, rec.calls()[0].Width)
}
