package ui

import (
	"fmt"
	"github.com/Yeicor/molecule-ui/internal"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"image"
	"strings"
)

// keyBindings maps the ebiten keys to viewer commands, in the order they are checked.
var keyBindings = []struct {
	key ebiten.Key
	cmd internal.Key
}{
	{ebiten.KeyArrowLeft, internal.KeyLeft},
	{ebiten.KeyArrowRight, internal.KeyRight},
	{ebiten.KeyArrowUp, internal.KeyUp},
	{ebiten.KeyArrowDown, internal.KeyDown},
	{ebiten.KeyEqual, internal.KeyZoomIn},
	{ebiten.KeyKPAdd, internal.KeyZoomIn},
	{ebiten.KeyMinus, internal.KeyZoomOut},
	{ebiten.KeyKPSubtract, internal.KeyZoomOut},
	{ebiten.KeyR, internal.KeyReset},
	{ebiten.KeySpace, internal.KeyAutoRotate},
	{ebiten.KeyQ, internal.KeyQuantum},
	{ebiten.KeyC, internal.KeyCapture},
	{ebiten.KeyL, internal.KeyLabels},
	{ebiten.KeyF, internal.KeyFPS},
	{ebiten.KeyD, internal.KeyFog},
	{ebiten.KeyA, internal.KeyAO},
	{ebiten.KeyG, internal.KeyGrid},
	{ebiten.KeyV, internal.KeyVertexSphere},
}

// onUpdateInputs forwards this tick's input to the controller. The engine lock must be held.
func (r *Renderer) onUpdateInputs() {
	ctrl := r.engine.Controller()
	pan := ebiten.IsKeyPressed(ebiten.KeyShift)

	// Pointer (mouse or first touch)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		ctrl.PointerDown(float64(cx), float64(cy))
	}
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 && !r.touching {
		r.touchID, r.touching = ids[0], true
		tx, ty := ebiten.TouchPosition(r.touchID)
		ctrl.PointerDown(float64(tx), float64(ty))
	}
	cursor := r.cursor()
	if cursor != r.lastCursor {
		r.lastCursor = cursor
		w, h := r.engine.Size()
		if cursor.In(image.Rect(0, 0, w, h)) {
			ctrl.PointerMove(float64(cursor.X), float64(cursor.Y), pan)
		} else {
			ctrl.PointerLeave()
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		ctrl.PointerUp()
	}
	if r.touching && inpututil.IsTouchJustReleased(r.touchID) {
		r.touching = false
		ctrl.PointerUp()
	}

	// Zooming
	if _, wheelUpDown := ebiten.Wheel(); wheelUpDown != 0 {
		ctrl.Wheel(wheelUpDown)
	}

	// Keyboard shortcuts
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			ctrl.Key(b.cmd)
		}
	}
}

// cursor is the pointer position: the touch being tracked, or else the mouse.
func (r *Renderer) cursor() image.Point {
	if r.touching {
		tx, ty := ebiten.TouchPosition(r.touchID)
		return image.Point{X: tx, Y: ty}
	}
	cx, cy := ebiten.CursorPosition()
	return image.Point{X: cx, Y: cy}
}

// updateControlsText rebuilds the help text when the settings change. The engine lock must be held.
func (r *Renderer) updateControlsText() {
	view := r.engine.View()
	if r.controls != "" && view.Settings == r.controlsFor {
		return
	}
	r.controlsFor = view.Settings
	var sb strings.Builder
	sb.WriteString("Molecule Renderer\n=================\n")
	sb.WriteString(internal.ControlsText(&view.Settings))
	sb.WriteString("Quantum mode [Q]\nAuto-rotate [Space]\nCapture PNG [C]\nReset camera [R]\n")
	sb.WriteString("Rotate cam [Drag/Arrows]\nTranslate cam [Shift+Drag]\nZoom cam [MouseWheel/+/-]")
	r.controls = sb.String()
}

// drawUI draws the status line and the controls help over the rendered frame
func (r *Renderer) drawUI(screen *ebiten.Image, busy bool) {
	if busy { // Notify when the engine is held elsewhere
		ebitenutil.DebugPrintAt(screen, "Rendering...", 5, 5)
	}
	status := fmt.Sprintf("TPS: %0.2f/%d  FPS: %0.2f", ebiten.ActualTPS(), ebiten.TPS(), ebiten.ActualFPS())
	lines := strings.Count(r.controls, "\n") + 2
	y := screen.Bounds().Dy() - lines*16 - 5
	ebitenutil.DebugPrintAt(screen, status+"\n"+r.controls, 5, y)
}
