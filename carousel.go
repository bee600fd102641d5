package backdrop

import (
	"context"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
	"golang.org/x/sync/errgroup"
)

// Carousel defaults.
const (
	DefaultInterval     = 5 * time.Second
	DefaultFadeDuration = time.Second

	preloadConcurrency = 4
)

// Slot is one of the carousel's two image holders. Roles swap each cycle;
// the nodes never move in the tree.
type Slot struct {
	Node   *Node
	Source string
	inert  bool
}

// Inert reports whether the slot is hidden from interaction and assistive
// output.
func (s *Slot) Inert() bool {
	return s.inert
}

func (s *Slot) setInert(inert bool) {
	s.inert = inert
	s.Node.Interactable = !inert
}

// CarouselOptions configures NewCarousel. Zero durations select the defaults.
type CarouselOptions struct {
	Interval      time.Duration
	FadeDuration  time.Duration
	ReducedMotion bool
	// Bounds, when non-empty, is the box (in wrapper space) each image is
	// scaled to fit and centred in.
	Bounds Rect
	// OnCycle runs once per completed cycle with the new index.
	OnCycle func(index int)
	// Preload fetches every source in the background at construction when
	// the loader also implements Fetcher.
	Preload bool
}

type loadedImage struct {
	gen   uint64
	index int
	img   image.Image
}

// Carousel cycles a fixed list of image sources inside a wrapper node.
//
// In normal mode the next image is loaded off-screen, then cross-faded in
// over the current one; the cycle completes when the outgoing slot finishes
// fading. In reduced-motion mode a single slot is swapped directly.
type Carousel struct {
	scene   *Scene
	wrapper *Node
	sources []string
	loader  Loader
	opts    CarouselOptions

	slots  [2]*Slot
	active int

	index   int // settled index
	target  int // index of the most recent tick
	elapsed float64
	gen     uint64
	cycles  int

	fading bool
	fadeIn *TweenGroup
	queued *loadedImage

	textures map[image.Image]*ebiten.Image
}

// NewCarousel attaches a carousel to wrapper. With no sources, no wrapper or
// no loader the carousel is inert and Update does nothing.
func NewCarousel(scene *Scene, wrapper *Node, sources []string, loader Loader, opts CarouselOptions) *Carousel {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.FadeDuration < 0 {
		opts.FadeDuration = 0
	} else if opts.FadeDuration == 0 {
		opts.FadeDuration = DefaultFadeDuration
	}
	c := &Carousel{
		scene:    scene,
		wrapper:  wrapper,
		sources:  append([]string(nil), sources...),
		loader:   loader,
		opts:     opts,
		textures: make(map[image.Image]*ebiten.Image),
	}
	if !c.Active() {
		return c
	}

	first := c.newSlot("slot-a")
	first.Source = c.sources[0]
	c.slots[0] = first
	c.load(0, func(img image.Image) {
		if first.Source == c.sources[0] {
			c.fill(first, img)
		}
	})

	if !opts.ReducedMotion {
		second := c.newSlot("slot-b")
		second.Node.Visible = false
		second.Node.Alpha = 0
		second.setInert(true)
		c.slots[1] = second
	}

	if opts.Preload {
		if f, ok := loader.(Fetcher); ok {
			go Preload(context.Background(), f, c.sources)
		}
	}
	return c
}

func (c *Carousel) newSlot(name string) *Slot {
	n := NewSprite(name, nil)
	n.Renderable = false
	c.wrapper.AddChild(n)
	return &Slot{Node: n}
}

// Active reports whether the carousel has anything to cycle.
func (c *Carousel) Active() bool {
	return c.scene != nil && c.wrapper != nil && c.loader != nil && len(c.sources) > 0
}

// Index returns the index of the image currently shown.
func (c *Carousel) Index() int {
	return c.index
}

// Cycles returns the number of completed cycles.
func (c *Carousel) Cycles() int {
	return c.cycles
}

// Transitioning reports whether a cross-fade is running.
func (c *Carousel) Transitioning() bool {
	return c.fading
}

// ActiveSlot returns the slot currently shown.
func (c *Carousel) ActiveSlot() *Slot {
	return c.slots[c.active]
}

// StandbySlot returns the hidden slot, or nil in reduced-motion mode.
func (c *Carousel) StandbySlot() *Slot {
	return c.slots[1-c.active]
}

// Update advances the interval timer by dt seconds and fires one tick per
// elapsed interval.
func (c *Carousel) Update(dt float64) {
	if !c.Active() {
		return
	}
	c.elapsed += dt
	interval := c.opts.Interval.Seconds()
	for c.elapsed >= interval {
		c.elapsed -= interval
		c.tick()
	}
}

func (c *Carousel) tick() {
	c.target = (c.target + 1) % len(c.sources)
	c.gen++
	gen, idx := c.gen, c.target

	if c.opts.ReducedMotion {
		slot := c.slots[c.active]
		slot.Source = c.sources[idx]
		c.settle(idx)
		c.load(idx, func(img image.Image) {
			if gen == c.gen {
				c.fill(slot, img)
			}
		})
		return
	}

	c.load(idx, func(img image.Image) {
		c.loaded(loadedImage{gen: gen, index: idx, img: img})
	})
}

func (c *Carousel) load(idx int, fn func(image.Image)) {
	f := c.loader.Load(c.sources[idx])
	if f == nil {
		return
	}
	f.Then(fn)
	c.scene.Watch(f)
}

func (c *Carousel) loaded(l loadedImage) {
	if l.gen != c.gen {
		// A later tick superseded this load.
		return
	}
	if c.fading {
		c.queued = &l
		return
	}
	c.beginFade(l)
}

func (c *Carousel) beginFade(l loadedImage) {
	in, out := c.slots[1-c.active], c.slots[c.active]
	in.Source = c.sources[l.index]
	c.fill(in, l.img)
	in.Node.Visible = true
	in.Node.Alpha = 0
	in.setInert(false)

	dur := float32(c.opts.FadeDuration.Seconds())
	c.fading = true
	c.fadeIn = TweenAlpha(in.Node, 1, dur, ease.InOutQuad)
	c.scene.Track(c.fadeIn)
	c.scene.Track(TweenAlpha(out.Node, 0, dur, ease.InOutQuad)).Then(func(struct{}) {
		c.endFade(l.index)
	})
}

// endFade runs when the outgoing slot has faded out.
func (c *Carousel) endFade(idx int) {
	c.fadeIn.Finish()
	c.fadeIn = nil
	c.fading = false

	old := c.slots[c.active]
	c.active = 1 - c.active
	old.Node.Visible = false
	old.Node.Alpha = 0
	old.setInert(true)

	c.settle(idx)

	if q := c.queued; q != nil {
		c.queued = nil
		if q.gen == c.gen {
			c.beginFade(*q)
		}
	}
}

func (c *Carousel) settle(idx int) {
	c.index = idx
	c.cycles++
	if c.opts.OnCycle != nil {
		c.opts.OnCycle(idx)
	}
}

// fill puts img into slot. A nil image leaves the slot empty.
func (c *Carousel) fill(slot *Slot, img image.Image) {
	if img == nil || slot.Node.IsDisposed() {
		return
	}
	tex, ok := c.textures[img]
	if !ok {
		if e, isEbiten := img.(*ebiten.Image); isEbiten {
			tex = e
		} else {
			tex = ebiten.NewImageFromImage(img)
		}
		c.textures[img] = tex
	}
	n := slot.Node
	n.Image = tex
	n.Renderable = true
	c.fit(n, tex.Bounds())
}

// SetBounds changes the fit box and refits every filled slot.
func (c *Carousel) SetBounds(box Rect) {
	c.opts.Bounds = box
	for _, slot := range c.slots {
		if slot != nil && slot.Node.Image != nil && !slot.Node.IsDisposed() {
			c.fit(slot.Node, slot.Node.Image.Bounds())
		}
	}
}

func (c *Carousel) fit(n *Node, b image.Rectangle) {
	box := c.opts.Bounds
	w, h := float64(b.Dx()), float64(b.Dy())
	if box.Empty() || w <= 0 || h <= 0 {
		n.SetScale(1, 1)
		n.SetPosition(0, 0)
		return
	}
	s := min(box.Width/w, box.Height/h)
	n.SetScale(s, s)
	n.SetPosition(box.X+(box.Width-w*s)/2, box.Y+(box.Height-h*s)/2)
}

// Preload fetches every source with bounded concurrency. It is best-effort:
// failures are logged at debug level and dropped. It returns the number of
// sources fetched successfully.
func Preload(ctx context.Context, f Fetcher, sources []string) int {
	log := logger
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadConcurrency)
	ok := make([]bool, len(sources))
	for i, src := range sources {
		g.Go(func() error {
			if _, err := f.Fetch(ctx, src); err != nil {
				log.Debug("preload failed", "src", src, "err", err)
				return nil
			}
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()
	n := 0
	for _, v := range ok {
		if v {
			n++
		}
	}
	return n
}
