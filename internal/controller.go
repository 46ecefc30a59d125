package internal

import (
	"log"
	"math"
	"strings"
)

const (
	DragSensitivity = 0.01 // Radians per pixel
	NudgeStep       = 0.1  // Radians per arrow key press
	ZoomFactor      = 1.1  // Scale multiplier per wheel notch
	MinScale        = 0.2
	MaxScale        = 5.
	RecenterBelow   = 0.5 // Zooming out under this scale re-centers the offset
	noHover         = -1
)

// Key is a host-neutral keyboard command. Toggle keys match the ui tags of RenderSettings.
type Key string

const (
	KeyLeft         Key = "ArrowLeft"
	KeyRight        Key = "ArrowRight"
	KeyUp           Key = "ArrowUp"
	KeyDown         Key = "ArrowDown"
	KeyZoomIn       Key = "+"
	KeyZoomOut      Key = "-"
	KeyReset        Key = "R"
	KeyAutoRotate   Key = "Space"
	KeyQuantum      Key = "Q"
	KeyCapture      Key = "C"
	KeyLabels       Key = "L"
	KeyFPS          Key = "F"
	KeyFog          Key = "D"
	KeyAO           Key = "A"
	KeyGrid         Key = "G"
	KeyVertexSphere Key = "V"
)

var commandKeys = []Key{KeyLeft, KeyRight, KeyUp, KeyDown, KeyReset, KeyAutoRotate, KeyQuantum, KeyCapture}

// Normalize returns the canonical spelling of k: keys match regardless of letter case.
func (k Key) Normalize() Key {
	for _, known := range commandKeys {
		if strings.EqualFold(string(k), string(known)) {
			return known
		}
	}
	return Key(strings.ToUpper(string(k))) // Toggle keys are single letters
}

// Picker finds the atom under a screen position, or -1.
type Picker interface {
	Pick(x, y float64) int
}

// Controller turns pointer and keyboard events into view state changes.
// Events only touch the view state: they never trigger bond or field recomputation.
type Controller struct {
	view         *ViewState
	picker       Picker
	textFocus    func() bool
	hovered      int
	lastX, lastY float64
	captures     int
}

// NewController controls the given view state. picker may be nil (no hover picking).
func NewController(view *ViewState, picker Picker) *Controller {
	return &Controller{view: view, picker: picker, hovered: noHover}
}

// SetTextInputFocus installs the check that suppresses keyboard shortcuts while a text input is focused.
func (c *Controller) SetTextInputFocus(focused func() bool) {
	c.textFocus = focused
}

// PointerDown starts a drag.
func (c *Controller) PointerDown(x, y float64) {
	c.view.Camera.Dragging = true
	c.lastX, c.lastY = x, y
}

// PointerMove rotates (or pans, if pan is set) while dragging, and updates the hovered atom otherwise.
func (c *Controller) PointerMove(x, y float64, pan bool) {
	if !c.view.Camera.Dragging {
		if c.picker != nil {
			c.hovered = c.picker.Pick(x, y)
		}
		return
	}
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	cam := &c.view.Camera
	if pan {
		cam.Offset.X += dx
		cam.Offset.Y += dy
	} else {
		cam.Rotation.Y += dx * DragSensitivity
		cam.Rotation.X += dy * DragSensitivity
	}
}

// PointerUp ends a drag.
func (c *Controller) PointerUp() {
	c.view.Camera.Dragging = false
}

// PointerLeave clears the hover highlight.
func (c *Controller) PointerLeave() {
	c.view.Camera.Dragging = false
	c.hovered = noHover
}

// Wheel zooms by the given (possibly fractional or negative) amount of notches.
func (c *Controller) Wheel(notches float64) {
	if notches == 0 || math.IsNaN(notches) {
		return
	}
	cam := &c.view.Camera
	cam.Scale = math.Max(MinScale, math.Min(MaxScale, cam.Scale*math.Pow(ZoomFactor, notches)))
	if cam.Scale < RecenterBelow {
		cam.Offset.X, cam.Offset.Y = 0, 0
	}
}

// Key applies a keyboard command, returning whether it was handled.
func (c *Controller) Key(k Key) bool {
	if c.textFocus != nil && c.textFocus() {
		return false
	}
	cam := &c.view.Camera
	switch k = k.Normalize(); k {
	case KeyLeft:
		cam.Rotation.Y -= NudgeStep
	case KeyRight:
		cam.Rotation.Y += NudgeStep
	case KeyUp:
		cam.Rotation.X -= NudgeStep
	case KeyDown:
		cam.Rotation.X += NudgeStep
	case KeyZoomIn:
		c.Wheel(1)
	case KeyZoomOut:
		c.Wheel(-1)
	case KeyReset:
		c.Reset()
	case KeyAutoRotate:
		cam.AutoRotate = !cam.AutoRotate
		log.Println("[MolRenderer] Auto-rotate:", cam.AutoRotate)
	case KeyQuantum:
		s := &c.view.Settings
		on := !(s.QuantumGrid && s.VertexSphere)
		s.QuantumGrid, s.VertexSphere = on, on
		log.Println("[MolRenderer] Quantum mode:", on)
	case KeyCapture:
		c.captures++
	default:
		info, ok := ToggleSetting(&c.view.Settings, string(k))
		if !ok {
			return false
		}
		log.Printf("[MolRenderer] %s: %t", info.Name, info.Value)
	}
	return true
}

// Reset restores the default camera. Render settings are kept.
func (c *Controller) Reset() {
	c.view.Camera = DefaultCamera()
}

// Hovered is the hovered atom index, or -1.
func (c *Controller) Hovered() int {
	return c.hovered
}

// ClearHover forgets the hovered atom (e.g. after the atom list changed).
func (c *Controller) ClearHover() {
	c.hovered = noHover
}

// TakeCapture reports (and consumes) a pending capture request from the keyboard.
func (c *Controller) TakeCapture() bool {
	if c.captures == 0 {
		return false
	}
	c.captures--
	return true
}
