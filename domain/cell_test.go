package domain

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCellViewModel_ApplyBitmap(t *testing.T) {
	bitmap := &Bitmap{SourceURL: "https://cdn.example.com/a.png", Width: 10, Height: 10}

	t.Run("applies once to a pending slot", func(t *testing.T) {
		cell := NewCellViewModel(CellRole{Index: 0}, CardTypeHeadline)
		cell.AttachImage(PlainImageURL(bitmap.SourceURL))

		assert.True(t, cell.ApplyBitmap(bitmap))
		assert.False(t, cell.ApplyBitmap(bitmap))
		assert.Equal(t, ImageStateResolved, cell.Image().State)
		assert.Same(t, bitmap, cell.Image().Bitmap)
	})

	t.Run("ignored after release", func(t *testing.T) {
		cell := NewCellViewModel(CellRole{Index: 0}, CardTypeHeadline)
		cell.AttachImage(PlainImageURL(bitmap.SourceURL))
		liveness := NewLiveness()
		cell.ShareLiveness(liveness)
		liveness.Release()

		assert.False(t, cell.ApplyBitmap(bitmap))
		assert.Equal(t, ImageStatePending, cell.Image().State)
	})

	t.Run("ignored without a reference", func(t *testing.T) {
		cell := NewCellViewModel(CellRole{Index: 0}, CardTypeHeadline)
		cell.AttachImage(ImageReference{})

		assert.False(t, cell.ApplyBitmap(bitmap))
		assert.Equal(t, ImageStateNone, cell.Image().State)
		assert.True(t, cell.HasSlot(SlotImage))
	})
}

func TestCellViewModel_Slots(t *testing.T) {
	cell := NewCellViewModel(CellRole{Index: 1}, CardTypeDisplayAd)
	assert.Empty(t, cell.Slots())
	assert.True(t, cell.IsEmpty())

	cell.SetText(SlotTime, "1h")
	cell.SetText(SlotTitle, "Title")
	cell.AttachStaticImage("sponsor_logo")

	assert.Equal(t, []SlotName{SlotTitle, SlotTime, SlotLogo}, cell.Slots())
	assert.False(t, cell.HasSlot(SlotImage))
}

func TestCellViewModel_ConcurrentApply(t *testing.T) {
	cell := NewCellViewModel(CellRole{}, CardTypeHeadline)
	cell.AttachImage(PlainImageURL("https://cdn.example.com/a.png"))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if cell.ApplyBitmap(&Bitmap{}) {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, applied)
}

func TestLiveness_NilSafe(t *testing.T) {
	var l *Liveness
	assert.False(t, l.Alive())
	assert.False(t, l.WhileAlive(func() { t.Fatal("ran on nil liveness") }))
	l.Release()
}

func TestLiveness_ReleaseWaitsForInFlightWrite(t *testing.T) {
	l := NewLiveness()
	entered := make(chan struct{})
	unblock := make(chan struct{})
	go l.WhileAlive(func() {
		close(entered)
		<-unblock
	})
	<-entered

	released := make(chan struct{})
	go func() {
		l.Release()
		close(released)
	}()

	select {
	case <-released:
		t.Fatal("release completed while a write was in flight")
	case <-time.After(50 * time.Millisecond):
	}
	close(unblock)
	<-released

	assert.False(t, l.Alive())
	assert.False(t, l.WhileAlive(func() { t.Fatal("ran after release") }))
}

func TestCellViewModel_ApplyBitmapRacingRelease(t *testing.T) {
	for i := 0; i < 50; i++ {
		cell := NewCellViewModel(CellRole{}, CardTypeHeadline)
		cell.AttachImage(PlainImageURL("https://cdn.example.com/a.png"))
		liveness := NewLiveness()
		cell.ShareLiveness(liveness)

		var wg sync.WaitGroup
		results := make(chan bool, 1)
		wg.Add(2)
		go func() {
			defer wg.Done()
			results <- cell.ApplyBitmap(&Bitmap{})
		}()
		go func() {
			defer wg.Done()
			liveness.Release()
		}()
		wg.Wait()

		// The slot only resolves when the apply reported success.
		applied := <-results
		if applied {
			assert.Equal(t, ImageStateResolved, cell.Image().State)
		} else {
			assert.Equal(t, ImageStatePending, cell.Image().State)
		}
		assert.False(t, cell.ApplyBitmap(&Bitmap{}))
	}
}
