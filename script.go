package backdrop

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is one action of a pointer script.
type scriptStep struct {
	Action string  `yaml:"action"` // move | sweep | click | wait | screenshot
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"from_x,omitempty"`
	FromY  float64 `yaml:"from_y,omitempty"`
	ToX    float64 `yaml:"to_x,omitempty"`
	ToY    float64 `yaml:"to_y,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

type scriptFile struct {
	Loop  bool         `yaml:"loop"`
	Steps []scriptStep `yaml:"steps"`
}

// Script plays a sequence of injected pointer actions and screenshots across
// updates. Attach it with Scene.SetScript.
type Script struct {
	steps     []scriptStep
	loop      bool
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a YAML pointer script:
//
//	loop: true
//	steps:
//	  - {action: sweep, from_x: 0, from_y: 360, to_x: 1280, to_y: 360, frames: 120}
//	  - {action: click, x: 640, y: 360}
//	  - {action: wait, frames: 60}
//	  - {action: screenshot, label: after-click}
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("backdrop: parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("backdrop: parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "move", "sweep", "click", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("backdrop: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps, loop: f.Loop}, nil
}

// SetScript attaches a script to the scene. Its step runs at the start of
// every update, before input is processed. Nil detaches.
func (s *Scene) SetScript(sc *Script) {
	s.script = sc
}

// Done reports whether every step has run. A looping script is never done.
func (r *Script) Done() bool {
	return r.done
}

func (r *Script) step(s *Scene) {
	if r.done {
		return
	}
	// Let queued injections drain first.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		if !r.loop {
			r.done = true
			return
		}
		r.cursor = 0
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "sweep":
		s.InjectSweep(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this update counts as one
		}
	}

	if !r.loop && r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
