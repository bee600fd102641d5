package backdrop

import (
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/shirou/gopsutil/v3/process"
)

// NewFPSWidget creates a node that shows FPS, TPS and the process's resident
// memory, refreshed about twice a second.
func NewFPSWidget() *Node {
	// 120x48 fits three lines of debug print.
	img := ebiten.NewImage(120, 48)

	node := NewSprite("fps_widget", img)
	node.X, node.Y = 4, 4

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logger.Debug("fps widget: no process handle", "err", err)
	}

	var lastUpdate float64
	node.OnUpdate = func(dt float64) {
		lastUpdate += dt
		if lastUpdate < 0.5 {
			return
		}
		lastUpdate = 0

		img.Clear()
		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nRSS: %s",
			ebiten.ActualFPS(), ebiten.ActualTPS(), rss(proc)))
	}
	return node
}

func rss(p *process.Process) string {
	if p == nil {
		return "?"
	}
	m, err := p.MemoryInfo()
	if err != nil {
		return "?"
	}
	return fmt.Sprintf("%.1f MiB", float64(m.RSS)/(1<<20))
}
