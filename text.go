package backdrop

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goitalic"
)

// Font wraps Ebitengine's text/v2 for TrueType rendering.
type Font struct {
	face *text.GoTextFace
	lh   float64
}

// LoadFont parses TTF/OTF data at the given pixel size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("backdrop: parse font: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// DefaultFont returns the bundled Go Italic face used for quotes.
func DefaultFont(size float64) (*Font, error) {
	return LoadFont(goitalic.TTF, size)
}

// MeasureString returns the width and height of s.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// TextBlock holds text content and formatting.
type TextBlock struct {
	Content   string
	Font      *Font
	Align     TextAlign
	WrapWidth float64 // 0 disables wrapping
	Color     Color
}

// SetContent replaces the text.
func (tb *TextBlock) SetContent(s string) {
	tb.Content = s
}

// Lines returns Content broken on newlines and, when WrapWidth is set, on
// word boundaries so no line exceeds WrapWidth (a single long word may).
func (tb *TextBlock) Lines() []string {
	if tb.Content == "" {
		return nil
	}
	var out []string
	for _, para := range strings.Split(tb.Content, "\n") {
		if tb.WrapWidth <= 0 || tb.Font == nil {
			out = append(out, para)
			continue
		}
		line := ""
		for _, word := range strings.Fields(para) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if w, _ := tb.Font.MeasureString(candidate); w > tb.WrapWidth && line != "" {
				out = append(out, line)
				line = word
				continue
			}
			line = candidate
		}
		out = append(out, line)
	}
	return out
}

// Measure returns the laid-out block size.
func (tb *TextBlock) Measure() (w, h float64) {
	if tb.Font == nil {
		return 0, 0
	}
	lines := tb.Lines()
	for _, l := range lines {
		lw, _ := tb.Font.MeasureString(l)
		w = max(w, lw)
	}
	return w, float64(len(lines)) * tb.Font.lh
}

// draw renders the block with its top-left at the node origin.
func (tb *TextBlock) draw(dst *ebiten.Image, world affine, alpha float64, tint Color) {
	if tb.Font == nil || tb.Content == "" {
		return
	}
	op := &text.DrawOptions{}
	op.LineSpacing = tb.Font.lh
	blockW, _ := tb.Measure()
	switch tb.Align {
	case TextAlignCenter:
		op.PrimaryAlign = text.AlignCenter
		op.GeoM.Translate(blockW/2, 0)
	case TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
		op.GeoM.Translate(blockW, 0)
	}
	op.GeoM.Concat(geoM(world))
	a := tb.Color.A * tint.A * alpha
	op.ColorScale.Scale(
		float32(tb.Color.R*tint.R*a),
		float32(tb.Color.G*tint.G*a),
		float32(tb.Color.B*tint.B*a),
		float32(a),
	)
	text.Draw(dst, strings.Join(tb.Lines(), "\n"), tb.Font.face, op)
}
