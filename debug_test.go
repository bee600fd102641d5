package backdrop

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// captureLogs routes the package logger into a buffer for the test.
func captureLogs(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logger
	SetLogger(NewLogger(&buf, level))
	t.Cleanup(func() { SetLogger(prev) })
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" DEBUG ", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLoggerFiltersByLevel(t *testing.T) {
	buf := captureLogs(t, "warn")
	Logger().Info("quiet")
	Logger().Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestSetLoggerNilDiscards(t *testing.T) {
	prev := logger
	t.Cleanup(func() { SetLogger(prev) })

	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger should never be nil")
	}
	Logger().Error("dropped") // must not panic
}

func TestDebugLogOnlyInDebugMode(t *testing.T) {
	buf := captureLogs(t, "debug")
	s := NewScene()

	s.debugLog(drawStats{nodes: 3})
	if buf.Len() != 0 {
		t.Fatalf("debugLog wrote outside debug mode: %q", buf.String())
	}

	s.SetDebugMode(true)
	s.debugLog(drawStats{nodes: 3, drawCalls: 2, frameCallbacks: 1})
	out := buf.String()
	for _, want := range []string{"[backdrop] frame", "nodes=3", "drawCalls=2", "frameCallbacks=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}

// --- Screenshots ---

func TestSanitizeLabel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"after-click", "after-click"},
		{"  spaced out  ", "spaced_out"},
		{"a/b\\c:d", "a_b_c_d"},
		{"v1.2", "v1.2"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	s := NewScene()
	s.Screenshot("one")
	s.Screenshot("two")
	if len(s.screenshotQueue) != 2 || s.screenshotQueue[1] != "two" {
		t.Errorf("queue = %v, want [one two]", s.screenshotQueue)
	}
}

// --- Scripts ---

const sampleScript = `
steps:
  - {action: click, x: 10, y: 20}
  - {action: wait, frames: 3}
  - {action: screenshot, label: done}
`

func TestLoadScript(t *testing.T) {
	sc, err := LoadScript([]byte(sampleScript))
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(sc.steps))
	}
	if sc.steps[0].Action != "click" || sc.steps[0].X != 10 || sc.steps[0].Y != 20 {
		t.Errorf("step 0 = %+v", sc.steps[0])
	}
	if sc.steps[1].Frames != 3 {
		t.Errorf("step 1 frames = %d, want 3", sc.steps[1].Frames)
	}
}

func TestLoadScript_Invalid(t *testing.T) {
	for name, data := range map[string]string{
		"malformed": "steps: [",
		"empty":     "steps: []",
		"unknown":   "steps:\n  - {action: teleport}",
	} {
		if _, err := LoadScript([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestScriptClickFires(t *testing.T) {
	sc, err := LoadScript([]byte("steps:\n  - {action: click, x: 5, y: 6}\n"))
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene()
	clicks := 0
	s.OnClick(func(PointerContext) { clicks++ })
	s.SetScript(sc)

	for i := 0; i < 4; i++ {
		s.Advance(1.0 / 60)
	}

	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if !sc.Done() {
		t.Error("script should be done")
	}
}

func TestScriptWaitHoldsSteps(t *testing.T) {
	sc, err := LoadScript([]byte(sampleScript))
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene()
	s.SetScript(sc)

	// Update 1 queues the click and consumes the press; update 2 the release.
	s.Advance(0.01)
	s.Advance(0.01)
	// Update 3 starts the wait; two more updates are absorbed by it.
	s.Advance(0.01)
	s.Advance(0.01)
	s.Advance(0.01)
	if len(s.screenshotQueue) != 0 {
		t.Fatal("screenshot queued during the wait")
	}
	s.Advance(0.01)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "done" {
		t.Errorf("queue = %v, want [done]", s.screenshotQueue)
	}
	if !sc.Done() {
		t.Error("script should be done after its last step")
	}
}

func TestScriptLoopRestarts(t *testing.T) {
	sc, err := LoadScript([]byte("loop: true\nsteps:\n  - {action: screenshot, label: x}\n"))
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene()
	s.SetScript(sc)
	for i := 0; i < 3; i++ {
		s.Advance(0.01)
	}
	if len(s.screenshotQueue) != 3 {
		t.Errorf("queue = %v, want three captures", s.screenshotQueue)
	}
	if sc.Done() {
		t.Error("looping script should never be done")
	}
}
