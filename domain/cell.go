package domain

import "sync"

// SlotName names a bindable field of a cell.
type SlotName string

const (
	SlotTitle       SlotName = "title"
	SlotDescription SlotName = "description"
	SlotPublisher   SlotName = "publisher"
	SlotTime        SlotName = "time"
	SlotCategory    SlotName = "category"
	SlotImage       SlotName = "image"
	SlotIndex       SlotName = "index"
	SlotLogo        SlotName = "logo"
)

var slotOrder = []SlotName{
	SlotIndex, SlotPublisher, SlotTitle, SlotTime, SlotDescription, SlotCategory, SlotImage, SlotLogo,
}

// Classification decides which counter a click on the cell advances.
type Classification string

const (
	ClassificationNormal    Classification = "normal"
	ClassificationPromo     Classification = "promo"
	ClassificationDisplayAd Classification = "displayAd"
)

// ImageState tracks the image slot of a cell.
type ImageState string

const (
	ImageStateNone     ImageState = "none"
	ImageStatePending  ImageState = "pending"
	ImageStateResolved ImageState = "resolved"
	ImageStateStatic   ImageState = "static"
)

// ImageHandle is a snapshot of the image slot.
type ImageHandle struct {
	State  ImageState
	Ref    ImageReference
	Asset  string
	Bitmap *Bitmap
}

// CellRole is the identity and card context handed to the binder.
type CellRole struct {
	CardPosition int
	Index        int
	CardUUID     string
	DisplayAd    *DisplayAd
}

// Liveness is shared by every cell of one built card.
type Liveness struct {
	mu       sync.RWMutex
	released bool
}

func NewLiveness() *Liveness {
	return &Liveness{}
}

func (l *Liveness) Alive() bool {
	if l == nil {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return !l.released
}

// WhileAlive runs fn only if the card is still live. Release blocks until fn
// returns, so nothing fn writes can land on a discarded card.
func (l *Liveness) WhileAlive(fn func()) bool {
	if l == nil {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.released {
		return false
	}
	fn()
	return true
}

// Release marks the owning card as discarded. It is idempotent.
func (l *Liveness) Release() {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.released = true
	l.mu.Unlock()
}

// CellViewModel is the bound view state of one item position within a card.
// Identity is fixed at construction; only the image slot and the effective
// height change afterwards.
type CellViewModel struct {
	Role               CellRole
	CardType           CardType
	Kind               ItemKind
	Classification     Classification
	CreativeInstanceID string
	DestinationURL     string

	mu              sync.RWMutex
	texts           map[SlotName]string
	image           ImageHandle
	hasImageSlot    bool
	effectiveHeight int
	liveness        *Liveness
}

func NewCellViewModel(role CellRole, cardType CardType) *CellViewModel {
	return &CellViewModel{
		Role:           role,
		CardType:       cardType,
		Classification: ClassificationNormal,
		texts:          make(map[SlotName]string),
		image:          ImageHandle{State: ImageStateNone},
		liveness:       NewLiveness(),
	}
}

// IsEmpty reports whether the cell was bound without an item.
func (c *CellViewModel) IsEmpty() bool {
	return c.Kind == ItemKindNone
}

func (c *CellViewModel) SetText(slot SlotName, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.texts[slot] = text
}

func (c *CellViewModel) Text(slot SlotName) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	text, ok := c.texts[slot]
	return text, ok
}

// HasSlot reports whether the slot is bound, text or image.
func (c *CellViewModel) HasSlot(slot SlotName) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.texts[slot]; ok {
		return true
	}
	switch slot {
	case SlotImage:
		return c.hasImageSlot && c.image.State != ImageStateStatic
	case SlotLogo:
		return c.image.State == ImageStateStatic
	}
	return false
}

// Slots returns the bound slot names in display order.
func (c *CellViewModel) Slots() []SlotName {
	slots := make([]SlotName, 0, len(slotOrder))
	for _, slot := range slotOrder {
		if c.HasSlot(slot) {
			slots = append(slots, slot)
		}
	}
	return slots
}

// AttachImage binds the image slot. A reference without a URL leaves the
// slot in the no-image state.
func (c *CellViewModel) AttachImage(ref ImageReference) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasImageSlot = true
	if !ref.IsSet() {
		c.image = ImageHandle{State: ImageStateNone}
		return
	}
	c.image = ImageHandle{State: ImageStatePending, Ref: ref}
}

// AttachStaticImage binds a bundled asset that needs no fetch.
func (c *CellViewModel) AttachStaticImage(asset string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.image = ImageHandle{State: ImageStateStatic, Asset: asset}
}

func (c *CellViewModel) Image() ImageHandle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.image
}

// ApplyBitmap moves a pending image slot to resolved. It is a no-op once the
// card is released or the slot already resolved.
func (c *CellViewModel) ApplyBitmap(bitmap *Bitmap) bool {
	if bitmap == nil {
		return false
	}
	c.mu.RLock()
	l := c.liveness
	c.mu.RUnlock()

	applied := false
	l.WhileAlive(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.image.State != ImageStatePending {
			return
		}
		c.image.State = ImageStateResolved
		c.image.Bitmap = bitmap
		applied = true
	})
	return applied
}

// ShareLiveness attaches the cell to its card's liveness flag.
func (c *CellViewModel) ShareLiveness(l *Liveness) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.liveness = l
}

func (c *CellViewModel) Alive() bool {
	c.mu.RLock()
	l := c.liveness
	c.mu.RUnlock()
	return l.Alive()
}

func (c *CellViewModel) SetEffectiveHeight(h int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.effectiveHeight = h
}

func (c *CellViewModel) EffectiveHeight() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.effectiveHeight
}
