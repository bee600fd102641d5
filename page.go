package backdrop

import (
	"math/rand/v2"

	"github.com/tanema/gween/ease"
)

// Page layout.
const (
	heroFraction  = 0.5  // hero frame size relative to the viewport
	glowFraction  = 0.35 // glow radius relative to the shorter viewport side
	quoteFontSize = 22
	quoteGap      = 40 // pixels between hero frame and quote
	quoteFadeIn   = 0.8
)

// Page is the assembled scene: background shapes, glow, hero frame with its
// carousel, quote line and click ripples.
type Page struct {
	Scene  *Scene
	Config Config

	Background []BackgroundElement
	Parallax   *Parallax
	Carousel   *Carousel
	Quotes     *QuoteProvider

	BackgroundLayer *Node
	Glow            *Node
	Hero            *Node
	Quote           *Node
	Ripples         *Node
	FPS             *Node

	viewport Rect
}

// NewRand returns a PCG source seeded with seed, or a random seed when zero.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// BuildPage populates scene from cfg. Each component degrades on its own: no
// images disables the carousel, an unusable font drops the quote line, and so
// on, without affecting the rest of the page. A nil rng seeds from cfg.Seed.
func BuildPage(scene *Scene, cfg Config, loader Loader, rng *rand.Rand) *Page {
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}
	p := &Page{
		Scene:    scene,
		Config:   cfg,
		viewport: Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)},
	}
	scene.ClearColor = ColorPaper
	root := scene.Root()

	p.BackgroundLayer = NewContainer("background")
	root.AddChild(p.BackgroundLayer)

	p.Glow = NewCircle("glow", glowFraction*min(p.viewport.Width, p.viewport.Height), ColorGlow)
	c := p.viewport.Center()
	p.Glow.X, p.Glow.Y = c.X, c.Y
	root.AddChild(p.Glow)

	p.Hero = NewContainer("hero")
	p.Hero.X, p.Hero.Y = c.X, c.Y
	root.AddChild(p.Hero)

	p.Ripples = NewContainer("ripples")
	p.Ripples.SetZIndex(10)
	root.AddChild(p.Ripples)

	p.Parallax = NewParallax(scene, p.Region, ParallaxOptions{
		ReducedMotion: cfg.ReducedMotion,
		Hero:          p.Hero,
		Glow:          p.Glow,
		Ripples:       p.Ripples,
	})

	p.Background = GenerateBackground(rng, cfg.BackgroundCount)
	for _, el := range p.Background {
		n := NewBackgroundNode(el, p.viewport, !cfg.ReducedMotion)
		p.BackgroundLayer.AddChild(n)
		p.Parallax.AddLayer(n, el.Size)
	}

	p.Quotes = NewQuoteProvider(cfg.Quotes, rng)
	p.buildQuote()

	sources := cfg.Images
	if len(sources) == 0 && cfg.Hero != "" {
		sources = []string{cfg.Hero}
	}
	p.Carousel = NewCarousel(scene, p.Hero, sources, loader, CarouselOptions{
		Interval:      cfg.Interval,
		FadeDuration:  cfg.FadeDuration,
		ReducedMotion: cfg.ReducedMotion,
		Bounds:        p.heroBox(),
		OnCycle:       func(int) { p.showQuote(!cfg.ReducedMotion) },
		Preload:       true,
	})
	if !p.Carousel.Active() {
		logger.Info("carousel disabled", "reason", "no images")
	}

	scene.OnClick(func(ctx PointerContext) {
		if p.HeroContains(ctx.X, ctx.Y) {
			logger.Info("hero clicked", "x", ctx.X, "y", ctx.Y)
		}
	})

	if cfg.ShowFPS {
		p.FPS = NewFPSWidget()
		p.FPS.SetZIndex(100)
		root.AddChild(p.FPS)
	}

	scene.SetUpdateFunc(p.Update)
	return p
}

// Region returns the interactive region: the whole viewport.
func (p *Page) Region() (Rect, bool) {
	return p.viewport, !p.viewport.Empty()
}

// Resize updates the viewport after a layout change and lays the page out
// again: hero, glow, quote and shape resting positions follow the new size.
// Pointer normalization picks up the new region on the next event.
func (p *Page) Resize(w, h int) {
	p.viewport = Rect{Width: float64(w), Height: float64(h)}
	p.layout()
}

func (p *Page) layout() {
	c := p.viewport.Center()
	p.Hero.SetPosition(c.X, c.Y)
	p.Glow.SetPosition(c.X, c.Y)
	p.Carousel.SetBounds(p.heroBox())
	for _, n := range p.BackgroundLayer.Children() {
		if el, ok := n.UserData.(BackgroundElement); ok {
			pos := el.Position(p.viewport)
			p.Parallax.SetLayerBase(n, pos.X, pos.Y)
		}
	}
	p.placeQuote()
	p.Parallax.Refresh()
}

// Update advances time-driven components. BuildPage installs it as the
// scene's update func.
func (p *Page) Update(dt float64) {
	p.Carousel.Update(dt)
}

// HeroContains reports whether the screen point lies inside the hero frame.
func (p *Page) HeroContains(x, y float64) bool {
	lx, ly := p.Hero.WorldToLocal(x, y)
	return p.heroBox().Contains(lx, ly)
}

// heroBox is the hero frame in hero-local space, centred on the origin.
func (p *Page) heroBox() Rect {
	w, h := p.viewport.Width*heroFraction, p.viewport.Height*heroFraction
	return Rect{X: -w / 2, Y: -h / 2, Width: w, Height: h}
}

func (p *Page) buildQuote() {
	font, err := DefaultFont(quoteFontSize)
	if err != nil {
		logger.Warn("quote line disabled", "err", err)
		return
	}
	p.Quote = NewText("quote", "", font)
	p.Quote.TextBlock.Align = TextAlignCenter
	p.Quote.TextBlock.Color = ColorInk
	p.Scene.Root().AddChild(p.Quote)
	p.showQuote(false)
}

// placeQuote centres the quote line below the hero frame.
func (p *Page) placeQuote() {
	if p.Quote == nil {
		return
	}
	tb := p.Quote.TextBlock
	tb.WrapWidth = p.viewport.Width * 0.7
	w, _ := tb.Measure()
	c := p.viewport.Center()
	p.Quote.X = c.X
	p.Quote.Y = c.Y + p.viewport.Height*heroFraction/2 + quoteGap
	p.Quote.PivotX = w / 2
	p.Quote.MarkDirty()
}

// showQuote swaps in the next quote, fading it in when animate is set.
func (p *Page) showQuote(animate bool) {
	if p.Quote == nil {
		return
	}
	p.Quote.TextBlock.SetContent(p.Quotes.Next())
	p.placeQuote()
	if !animate {
		p.Quote.Alpha = 1
		return
	}
	p.Quote.Alpha = 0
	p.Scene.Track(TweenAlpha(p.Quote, 1, quoteFadeIn, ease.OutQuad))
}
