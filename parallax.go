package backdrop

import (
	"math"
)

// Parallax tuning.
const (
	MaxTiltDegrees = 8.0  // full-swing tilt across the region
	ParallaxTravel = 12.0 // full-swing translation in pixels at depth 1

	RippleRadius   = 14.0
	RippleScale    = 4.0
	RippleDuration = 0.6 // seconds
)

// DepthFor returns the parallax depth of a size class. Larger shapes read
// as farther away and move less.
func DepthFor(size SizeClass) float64 {
	switch size {
	case SizeMedium:
		return 0.6
	case SizeLarge:
		return 0.3
	default:
		return 1.0
	}
}

// PointerState is the last observed pointer position, normalized to the
// interactive region and clamped to [0,1] on both axes.
type PointerState struct {
	TargetX, TargetY float64
}

// Normalize maps (x, y) into region space and clamps the result. A
// degenerate region maps everything to the center.
func Normalize(x, y float64, region Rect) PointerState {
	if region.Empty() {
		return PointerState{TargetX: 0.5, TargetY: 0.5}
	}
	return PointerState{
		TargetX: clamp01((x - region.X) / region.Width),
		TargetY: clamp01((y - region.Y) / region.Height),
	}
}

// SceneParams are the visual parameters derived from a PointerState.
type SceneParams struct {
	GlowX, GlowY float64 // percent of the region
	TiltX, TiltY float64 // degrees; TiltX rotates about the horizontal axis
	State        PointerState
}

// DeriveParams computes glow and tilt from the pointer state.
func DeriveParams(ps PointerState) SceneParams {
	return SceneParams{
		GlowX: ps.TargetX * 100,
		GlowY: ps.TargetY * 100,
		TiltX: (0.5 - ps.TargetY) * MaxTiltDegrees,
		TiltY: (ps.TargetX - 0.5) * MaxTiltDegrees,
		State: ps,
	}
}

// Offset returns the parallax translation for a layer at depth.
func (p SceneParams) Offset(depth float64) Vec2 {
	return Vec2{
		X: (p.State.TargetX - 0.5) * ParallaxTravel * depth,
		Y: (p.State.TargetY - 0.5) * ParallaxTravel * depth,
	}
}

type parallaxLayer struct {
	node         *Node
	depth        float64
	baseX, baseY float64
}

// ParallaxOptions configures NewParallax.
type ParallaxOptions struct {
	// ReducedMotion disables the component entirely, ripples included.
	ReducedMotion bool
	// Hero is tilted by the derived angles. Optional.
	Hero *Node
	// Glow is centred on the glow position within the region. Optional.
	Glow *Node
	// Ripples receives click ripples. Nil disables ripples.
	Ripples *Node
	// OnUpdate observes every recomputation. Optional.
	OnUpdate func(SceneParams)
}

// Parallax projects pointer movement over a region onto glow, tilt and
// per-layer offsets, recomputing at most once per drawn frame.
type Parallax struct {
	scene   *Scene
	region  func() (Rect, bool)
	opts    ParallaxOptions
	enabled bool

	state      PointerState
	pending    bool
	recomputes int
	params     SceneParams
	layers     []parallaxLayer
	handles    []CallbackHandle
	ripples    int
}

// NewParallax wires pointer handlers on scene. region is re-read on every
// event; when it reports false the event is ignored. Under reduced motion the
// component is inert: no handlers are attached, no frames are requested and
// no ripples spawn.
func NewParallax(scene *Scene, region func() (Rect, bool), opts ParallaxOptions) *Parallax {
	p := &Parallax{
		scene:   scene,
		region:  region,
		opts:    opts,
		enabled: scene != nil && region != nil && !opts.ReducedMotion,
		state:   PointerState{TargetX: 0.5, TargetY: 0.5},
	}
	p.params = DeriveParams(p.state)
	if scene == nil || region == nil {
		return p
	}
	if !p.enabled {
		return p
	}
	p.handles = append(p.handles, scene.OnPointerMove(func(ctx PointerContext) {
		p.HandleMove(ctx.X, ctx.Y)
	}))
	if opts.Ripples != nil {
		p.handles = append(p.handles, scene.OnClick(func(ctx PointerContext) {
			p.HandleClick(ctx.X, ctx.Y)
		}))
	}
	return p
}

// Enabled reports whether the pointer projection is active.
func (p *Parallax) Enabled() bool {
	return p.enabled
}

// State returns the stored pointer target.
func (p *Parallax) State() PointerState {
	return p.state
}

// Params returns the parameters applied by the last recomputation.
func (p *Parallax) Params() SceneParams {
	return p.params
}

// Recomputes returns how many recomputations have run.
func (p *Parallax) Recomputes() int {
	return p.recomputes
}

// Pending reports whether a recomputation is queued for the next frame.
func (p *Parallax) Pending() bool {
	return p.pending
}

// AddLayer registers node to be offset by depth for its size class. The
// node's current position becomes its resting position.
func (p *Parallax) AddLayer(node *Node, size SizeClass) {
	p.layers = append(p.layers, parallaxLayer{
		node:  node,
		depth: DepthFor(size),
		baseX: node.X,
		baseY: node.Y,
	})
}

// SetLayerBase moves the resting position of a registered layer node and
// places it at that position plus the current offset.
func (p *Parallax) SetLayerBase(node *Node, x, y float64) {
	for i := range p.layers {
		l := &p.layers[i]
		if l.node != node {
			continue
		}
		l.baseX, l.baseY = x, y
		off := p.params.Offset(l.depth)
		node.SetPosition(x+off.X, y+off.Y)
		return
	}
}

// Refresh applies the last computed parameters again, for use after the
// region or the layout changes.
func (p *Parallax) Refresh() {
	if p.region == nil {
		return
	}
	p.apply(p.params)
}

// HandleMove stores the normalized target and queues one recomputation if
// none is outstanding.
func (p *Parallax) HandleMove(x, y float64) {
	if !p.enabled {
		return
	}
	r, ok := p.region()
	if !ok {
		return
	}
	p.state = Normalize(x, y, r)
	if p.pending {
		return
	}
	p.pending = true
	p.scene.RequestFrame(p.recompute)
}

func (p *Parallax) recompute() {
	p.pending = false
	p.recomputes++
	p.params = DeriveParams(p.state)
	p.apply(p.params)
	if p.opts.OnUpdate != nil {
		p.opts.OnUpdate(p.params)
	}
}

func (p *Parallax) apply(params SceneParams) {
	if hero := p.opts.Hero; hero != nil && !hero.IsDisposed() {
		// A 2D skew stands in for the perspective tilt: rotation about the
		// horizontal axis shears vertically and vice versa.
		hero.SetSkew(degToRad(params.TiltY), degToRad(-params.TiltX))
	}
	if glow := p.opts.Glow; glow != nil && !glow.IsDisposed() {
		if r, ok := p.region(); ok {
			glow.SetPosition(r.X+r.Width*params.GlowX/100, r.Y+r.Height*params.GlowY/100)
		}
	}
	for _, l := range p.layers {
		if l.node.IsDisposed() {
			continue
		}
		off := params.Offset(l.depth)
		l.node.SetPosition(l.baseX+off.X, l.baseY+off.Y)
	}
}

// HandleClick spawns a ripple at (x, y) when the point lies in the region.
// The ripple removes itself once its animation completes.
func (p *Parallax) HandleClick(x, y float64) {
	layer := p.opts.Ripples
	if !p.enabled || layer == nil || layer.IsDisposed() {
		return
	}
	r, ok := p.region()
	if !ok || !r.Contains(x, y) {
		return
	}

	lx, ly := layer.WorldToLocal(x, y)
	ripple := NewCircle("ripple", RippleRadius, ColorRipple)
	ripple.X, ripple.Y = lx, ly
	layer.AddChild(ripple)
	p.ripples++

	p.scene.Track(TweenRipple(ripple, RippleScale, RippleDuration)).Then(func(struct{}) {
		ripple.Dispose()
	})
}

// Ripples returns the number of ripples spawned so far.
func (p *Parallax) Ripples() int {
	return p.ripples
}

// Detach removes the parallax's pointer handlers.
func (p *Parallax) Detach() {
	for _, h := range p.handles {
		h.Remove()
	}
	p.handles = nil
	p.enabled = false
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}
