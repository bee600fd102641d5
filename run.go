package backdrop

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// OnResize runs when the outside size changes, before the next update.
	OnResize func(w, h int)
}

type game struct {
	scene  *Scene
	w, h   int
	resize func(w, h int)
}

func (g *game) Update() error {
	g.scene.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		if g.resize != nil {
			g.resize(g.w, g.h)
		}
	}
	return outsideWidth, outsideHeight
}

// Run opens a resizable window and drives scene until the window closes.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if cfg.ShowFPS && scene.Root().FindChild("fps_widget") == nil {
		w := NewFPSWidget()
		w.SetZIndex(100)
		scene.Root().AddChild(w)
	}

	g := &game{scene: scene, w: cfg.Width, h: cfg.Height, resize: cfg.OnResize}
	return ebiten.RunGame(g)
}
