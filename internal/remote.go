package internal

import (
	"errors"
	"github.com/subchen/go-trylock/v2"
	"image"
	"net/rpc"
	"os"
	"time"
)

// RendererService is an internal struct that has to be exported for RPC.
// It is the server counterpart to the remote client: it provides remote access to an Engine, so a
// process without a display can render frames and snapshots for another one.
type RendererService struct {
	engine *Engine
	lock   trylock.TryLocker
	done   chan os.Signal
}

// NewRendererService see RendererService. lock serializes the engine with any other user of it.
func NewRendererService(engine *Engine, lock trylock.TryLocker, done chan os.Signal) *rpc.Server {
	server := rpc.NewServer()
	srv := &RendererService{engine: engine, lock: lock, done: done}
	err := server.Register(srv)
	if err != nil {
		panic(err) // Shouldn't happen (only on bad implementation)
	}
	return server
}

// RemoteAtoms is an internal struct that has to be exported for RPC.
type RemoteAtoms struct {
	Atoms []Atom
	ID    string
}

// RemoteRenderArgs is an internal struct that has to be exported for RPC.
type RemoteRenderArgs struct {
	Width, Height int
	View          *ViewState // Replaces the remote view state if set
	Now           time.Time  // Frame timestamp (drives the FPS readout and auto-rotation)
}

// RemoteRenderResults is an internal struct that has to be exported for RPC.
type RemoteRenderResults struct {
	Image   *image.RGBA
	View    *ViewState
	Hovered int
	FPS     float64
}

var errBadSize = errors.New("render size must be positive")

// SetAtoms is an internal method that has to be exported for RPC.
func (d *RendererService) SetAtoms(args RemoteAtoms, out *int) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.engine.SetAtoms(args.Atoms, args.ID)
	*out = len(d.engine.Bonds())
	return nil
}

// Render is an internal method that has to be exported for RPC.
// Render draws one frame at the requested size and returns it with the resulting view state.
func (d *RendererService) Render(args RemoteRenderArgs, out *RemoteRenderResults) error {
	if args.Width <= 0 || args.Height <= 0 {
		return errBadSize
	}
	now := args.Now
	if now.IsZero() {
		now = time.Now()
	}
	d.lock.Lock()
	defer d.lock.Unlock()
	if args.View != nil {
		d.engine.RestoreView(args.View)
	}
	d.engine.AdvanceAutoRotate(now)
	out.Image = image.NewRGBA(image.Rect(0, 0, args.Width, args.Height))
	d.engine.Frame(out.Image, now)
	out.View = d.engine.View()
	out.Hovered = d.engine.Hovered()
	out.FPS = d.engine.FPS()
	return nil
}

// Key is an internal method that has to be exported for RPC.
func (d *RendererService) Key(k Key, handled *bool) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	*handled = d.engine.Controller().Key(k)
	return nil
}

// Reset is an internal method that has to be exported for RPC.
func (d *RendererService) Reset(_ int, _ *int) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.engine.Reset()
	return nil
}

// Capture is an internal method that has to be exported for RPC.
func (d *RendererService) Capture(_ int, out *Snapshot) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	snap, err := d.engine.Capture()
	if err != nil {
		return err
	}
	*out = *snap
	return nil
}

// Shutdown is an internal method that has to be exported for RPC.
// Shutdown sends a signal on the configured channel (with a timeout)
func (d *RendererService) Shutdown(t time.Duration, _ *int) error {
	select {
	case d.done <- os.Kill:
		return nil
	case <-time.After(t):
		return errors.New("shutdown timeout")
	}
}
