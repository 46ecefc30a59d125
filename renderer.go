package ui

import (
	"context"
	"errors"
	"github.com/Yeicor/molecule-ui/internal"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/subchen/go-trylock/v2"
	"image"
	"log"
	"net"
	"os"
	"os/signal"
	"time"
)

// Renderer is an interactive molecule viewer. Run opens it in a desktop window; RunHeadless and
// ServeRemote drive the same viewer without a display.
type Renderer struct {
	// Configuration
	cfg        internal.EngineConfig
	view       internal.ViewState
	title      string
	captureDir string
	watchFile  string
	textFocus  func() bool
	tps        int
	// Runtime
	engine      *internal.Engine
	engineLock  trylock.TryLocker // Serializes every engine access (host loop, Reset/Capture callers, RPC)
	reloads     chan loadedMolecule
	frame       *image.RGBA
	frameImg    *ebiten.Image
	controls    string
	controlsFor internal.RenderSettings
	touchID     ebiten.TouchID
	touching    bool
	lastCursor  image.Point
}

type loadedMolecule struct {
	atoms []Atom
	id    string
}

// NewRenderer creates a viewer for the molecule. id is only used for snapshot filenames.
func NewRenderer(atoms []Atom, id string, opts ...Option) *Renderer {
	r := &Renderer{
		cfg:        internal.EngineConfig{Atoms: atoms, MoleculeID: id},
		view:       internal.DefaultViewState(),
		title:      "Molecule viewer",
		captureDir: ".",
		tps:        60,
		engineLock: trylock.New(),
		reloads:    make(chan loadedMolecule, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.cfg.View = &r.view
	r.engine = internal.NewEngine(r.cfg)
	r.engine.Controller().SetTextInputFocus(r.textFocus)
	return r
}

// Run opens the desktop window and blocks until it is closed.
func (r *Renderer) Run() error {
	ebiten.SetWindowTitle(r.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetTPS(r.tps)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.startWatching(ctx)
	return ebiten.RunGame(rendererEbitenGame{r})
}

// RunHeadless renders width x height frames on every refresh tick, handing each one to onFrame
// (which must not keep the image), while auto-rotation advances on its own timer. It returns when
// ctx is done, refresh is closed or onFrame fails.
func (r *Renderer) RunHeadless(ctx context.Context, width, height int, refresh <-chan time.Time, onFrame func(img *image.RGBA) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	r.startWatching(ctx)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var frameErr error
	loop := &internal.Loop{
		Frame: func(now time.Time) {
			r.applyReloads()
			r.engineLock.Lock()
			r.engine.Frame(img, now)
			r.engineLock.Unlock()
			if err := onFrame(img); err != nil {
				frameErr = err
				cancel()
			}
		},
		Rotate: func(now time.Time) {
			r.engineLock.Lock()
			r.engine.AdvanceAutoRotate(now)
			r.engineLock.Unlock()
		},
	}
	err := loop.Run(ctx, refresh)
	if frameErr != nil {
		return frameErr
	}
	return err
}

// ServeRemote exposes the viewer over net/rpc on the listener until an OS signal or a remote
// Shutdown call arrives (see DialRemote).
func (r *Renderer) ServeRemote(listener net.Listener) error {
	done := make(chan os.Signal, 1)
	signal.Notify(done, signals()...)
	defer signal.Stop(done)
	server := internal.NewRendererService(r.engine, r.engineLock, done)
	log.Println("[MolRenderer] Serving remote renderer on", listener.Addr())
	acceptErr := make(chan error, 1)
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				acceptErr <- err
				return
			}
			go server.ServeConn(conn)
		}
	}()
	var err error
	select {
	case sig := <-done:
		log.Println("[MolRenderer] Remote renderer stopping:", sig)
		err = listener.Close()
		if errors.Is(err, net.ErrClosed) {
			err = nil
		}
	case err = <-acceptErr:
	}
	return err
}

// SetAtoms replaces the molecule being shown.
func (r *Renderer) SetAtoms(atoms []Atom, id string) {
	r.engineLock.Lock()
	defer r.engineLock.Unlock()
	r.engine.SetAtoms(atoms, id)
}

// View returns a snapshot of the current view state.
func (r *Renderer) View() *ViewState {
	r.engineLock.Lock()
	defer r.engineLock.Unlock()
	return r.engine.View()
}

// RestoreView replaces the view state with a previous snapshot.
func (r *Renderer) RestoreView(v *ViewState) {
	r.engineLock.Lock()
	defer r.engineLock.Unlock()
	r.engine.RestoreView(v)
}

// Bonds returns a copy of the inferred bonds.
func (r *Renderer) Bonds() []Bond {
	r.engineLock.Lock()
	defer r.engineLock.Unlock()
	return append([]Bond(nil), r.engine.Bonds()...)
}

// Reset restores the default camera. It is safe to call from any goroutine.
func (r *Renderer) Reset() {
	r.engineLock.Lock()
	defer r.engineLock.Unlock()
	r.engine.Reset()
}

// Capture renders the current view into a new still image. It is safe to call from any goroutine.
func (r *Renderer) Capture() (*Snapshot, error) {
	r.engineLock.Lock()
	defer r.engineLock.Unlock()
	return r.engine.Capture()
}

var _ Handle = (*Renderer)(nil)

// applyReloads swaps in a molecule loaded by the file watcher, if any.
func (r *Renderer) applyReloads() {
	select {
	case m := <-r.reloads:
		r.SetAtoms(m.atoms, m.id)
	default:
	}
}

func (r *Renderer) captureToDisk() {
	snap, err := r.engine.Capture()
	if err != nil {
		log.Println("[MolRenderer] Capture failed:", err)
		return
	}
	go func() { // Encoding is slow: keep it off the frame loop
		path, err := snap.Save(r.captureDir)
		if err != nil {
			log.Println("[MolRenderer] Capture failed:", err)
			return
		}
		log.Println("[MolRenderer] Capture written to", path)
	}()
}
