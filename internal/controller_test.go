package internal

import (
	"math"
	"testing"
)

type fixedPicker struct {
	index int
	calls int
}

func (p *fixedPicker) Pick(_, _ float64) int {
	p.calls++
	return p.index
}

func newTestController() (*Controller, *ViewState, *fixedPicker) {
	view := DefaultViewState()
	picker := &fixedPicker{index: -1}
	return NewController(&view, picker), &view, picker
}

func TestControllerDrag(t *testing.T) {
	c, view, _ := newTestController()
	c.PointerDown(100, 100)
	c.PointerMove(110, 120, false)
	if math.Abs(view.Camera.Rotation.Y-0.1) > eps || math.Abs(view.Camera.Rotation.X-0.2) > eps {
		t.Fatalf("unexpected rotation after drag: %+v", view.Camera.Rotation)
	}
	c.PointerMove(115, 110, true)
	if view.Camera.Offset.X != 5 || view.Camera.Offset.Y != -10 {
		t.Fatalf("unexpected offset after pan: %+v", view.Camera.Offset)
	}
	c.PointerUp()
	if view.Camera.Dragging {
		t.Fatal("expected the drag to end")
	}
}

func TestControllerHover(t *testing.T) {
	c, _, picker := newTestController()
	picker.index = 3
	c.PointerMove(1, 1, false)
	if c.Hovered() != 3 {
		t.Fatalf("expected atom 3 to be hovered, got %d", c.Hovered())
	}
	c.PointerDown(1, 1)
	picker.index = -1
	c.PointerMove(2, 2, false)
	if picker.calls != 1 || c.Hovered() != 3 {
		t.Fatal("expected no picking while dragging")
	}
	c.PointerUp()
	c.PointerMove(3, 3, false)
	if c.Hovered() != -1 {
		t.Fatalf("expected the hover to end, got %d", c.Hovered())
	}
	picker.index = 1
	c.PointerMove(4, 4, false)
	c.PointerLeave()
	if c.Hovered() != -1 {
		t.Fatal("expected leaving the surface to clear the hover")
	}
}

func TestControllerWheel(t *testing.T) {
	c, view, _ := newTestController()
	c.Wheel(1)
	if math.Abs(view.Camera.Scale-ZoomFactor) > eps {
		t.Fatalf("expected one notch to zoom by %f, got %f", ZoomFactor, view.Camera.Scale)
	}
	c.Wheel(100)
	if view.Camera.Scale != MaxScale {
		t.Fatalf("expected the scale to clamp at %f, got %f", MaxScale, view.Camera.Scale)
	}
	c.Wheel(-1000)
	if view.Camera.Scale != MinScale {
		t.Fatalf("expected the scale to clamp at %f, got %f", MinScale, view.Camera.Scale)
	}
}

func TestControllerZoomOutRecenters(t *testing.T) {
	c, view, _ := newTestController()
	view.Camera.Offset.X, view.Camera.Offset.Y = 30, -20
	c.Wheel(-2) // Scale ~0.83
	if view.Camera.Offset.X != 30 {
		t.Fatal("expected the offset to be kept above the re-center threshold")
	}
	c.Wheel(-6) // Scale ~0.47
	if view.Camera.Scale >= RecenterBelow || view.Camera.Offset.X != 0 || view.Camera.Offset.Y != 0 {
		t.Fatalf("expected a re-centered offset, got scale %f offset %+v", view.Camera.Scale, view.Camera.Offset)
	}
}

func TestControllerReset(t *testing.T) {
	c, view, _ := newTestController()
	c.Key(KeyLeft)
	c.Key(KeyZoomIn)
	c.Key(KeyAutoRotate)
	c.Key(KeyLabels)
	view.Camera.Offset.X = 12
	c.Key(KeyReset)
	if view.Camera != DefaultCamera() {
		t.Fatalf("expected the default camera after reset, got %+v", view.Camera)
	}
	if !view.Settings.ShowLabels {
		t.Fatal("reset must not touch the render settings")
	}
}

func TestControllerTogglesOnlyTouchSettings(t *testing.T) {
	c, view, _ := newTestController()
	camera := view.Camera
	for _, k := range []Key{KeyLabels, KeyFPS, KeyFog, KeyAO, KeyGrid, KeyVertexSphere} {
		before := view.Settings
		if !c.Key(k) {
			t.Fatalf("key %q not handled", k)
		}
		if view.Settings == before {
			t.Fatalf("key %q did not change the settings", k)
		}
	}
	s := view.Settings
	if !s.ShowLabels || !s.ShowFPS || s.DepthFog || s.AmbientOcclusion || s.QuantumGrid || s.VertexSphere {
		t.Fatalf("unexpected settings after toggling every key once: %+v", s)
	}
	if view.Camera != camera {
		t.Fatal("toggles must not touch the camera")
	}
}

func TestControllerQuantumMode(t *testing.T) {
	c, view, _ := newTestController()
	c.Key(KeyQuantum) // Both on by default: both off
	if view.Settings.QuantumGrid || view.Settings.VertexSphere {
		t.Fatal("expected quantum mode off")
	}
	c.Key(KeyGrid)
	c.Key(KeyQuantum) // Only one on: both on
	if !view.Settings.QuantumGrid || !view.Settings.VertexSphere {
		t.Fatal("expected quantum mode on")
	}
}

func TestControllerTextInputFocus(t *testing.T) {
	c, view, _ := newTestController()
	focused := true
	c.SetTextInputFocus(func() bool { return focused })
	before := *view
	for _, k := range []Key{KeyLeft, KeyReset, KeyLabels, KeyQuantum, KeyCapture} {
		if c.Key(k) {
			t.Fatalf("key %q handled while a text input is focused", k)
		}
	}
	if *view != before || c.TakeCapture() {
		t.Fatal("keys must not change anything while a text input is focused")
	}
	focused = false
	if !c.Key(KeyLeft) || view.Camera.Rotation.Y != -NudgeStep {
		t.Fatal("expected keys to work again after the focus is lost")
	}
}

func TestControllerCaptureRequest(t *testing.T) {
	c, _, _ := newTestController()
	if c.TakeCapture() {
		t.Fatal("unexpected capture request")
	}
	c.Key(KeyCapture)
	if !c.TakeCapture() || c.TakeCapture() {
		t.Fatal("expected exactly one capture request")
	}
	if c.Key("unbound") {
		t.Fatal("unbound keys must not be handled")
	}
}

func TestControllerKeysIgnoreCase(t *testing.T) {
	c, view, _ := newTestController()
	for _, k := range []Key{"arrowright", "space", "q", "a", "c"} {
		if !c.Key(k) {
			t.Fatalf("key %q not handled", k)
		}
	}
	if view.Camera.Rotation.Y != NudgeStep || !view.Camera.AutoRotate {
		t.Fatalf("unexpected camera %+v", view.Camera)
	}
	if view.Settings.QuantumGrid || view.Settings.AmbientOcclusion || !c.TakeCapture() {
		t.Fatalf("unexpected settings %+v", view.Settings)
	}
	view.Camera.Scale = 3
	if !c.Key("r") || view.Camera != DefaultCamera() {
		t.Fatal("expected a lowercase reset to restore the camera")
	}
}

func TestKeyNormalize(t *testing.T) {
	for k, expected := range map[Key]Key{
		"arrowleft": KeyLeft, "SPACE": KeyAutoRotate, "r": KeyReset, "v": KeyVertexSphere, "+": KeyZoomIn, "-": KeyZoomOut,
	} {
		if got := k.Normalize(); got != expected {
			t.Errorf("%q: expected %q, got %q", k, expected, got)
		}
	}
}
