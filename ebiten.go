package ui

import (
	"context"
	"github.com/hajimehoshi/ebiten/v2"
	"image"
	"time"
)

// rendererEbitenGame hides the private ebiten implementation while behaving like a *Renderer internally
type rendererEbitenGame struct {
	*Renderer
}

// tryEngine runs f if the engine is not held elsewhere (e.g. a remote capture) within a millisecond.
func (r rendererEbitenGame) tryEngine(f func()) bool {
	ctx, cancelFunc := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancelFunc()
	if !r.engineLock.TryLock(ctx) {
		return false
	}
	defer r.engineLock.Unlock()
	f()
	return true
}

func (r rendererEbitenGame) Update() error {
	r.applyReloads()
	r.tryEngine(func() {
		r.onUpdateInputs()
		r.engine.AdvanceAutoRotate(time.Now())
		if r.engine.Controller().TakeCapture() {
			r.captureToDisk()
		}
	})
	return nil
}

func (r rendererEbitenGame) Draw(screen *ebiten.Image) {
	if !r.resizeFrame(screen.Bounds().Dx(), screen.Bounds().Dy()) {
		return
	}
	busy := !r.tryEngine(func() {
		r.engine.Frame(r.frame, time.Now())
		r.updateControlsText()
	})
	if !busy {
		r.frameImg.WritePixels(r.frame.Pix)
	} // else: keep showing the previous frame
	screen.DrawImage(r.frameImg, nil)
	r.drawUI(screen, busy)
}

// resizeFrame (re)allocates the frame buffers for a w x h screen. It reports false for an empty
// screen (e.g. a minimized window), where nothing can be drawn.
func (r *Renderer) resizeFrame(w, h int) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	if r.frame == nil || r.frame.Bounds().Dx() != w || r.frame.Bounds().Dy() != h {
		r.frame = image.NewRGBA(image.Rect(0, 0, w, h))
		if r.frameImg != nil {
			r.frameImg.Deallocate()
		}
		r.frameImg = ebiten.NewImage(w, h)
	}
	return true
}

func (r rendererEbitenGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return outsideWidth, outsideHeight // Use all available pixels, no re-scaling
}
