package internal

import (
	"fmt"
	"github.com/deadsy/sdfx/vec/v3"
	"image"
	"image/png"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultCaptureWidth  = 800
	defaultCaptureHeight = 600
	captureTimeLayout    = "20060102-150405"
)

// EngineConfig configures a new Engine. Every field is optional.
type EngineConfig struct {
	Atoms      []Atom
	MoleculeID string           // Only used for export filenames
	Rules      *BondRules       // Defaults to DefaultBondRules()
	Rand       *rand.Rand       // Vertex sphere jitter. Defaults to a time-seeded source
	Now        func() time.Time // Defaults to time.Now
	View       *ViewState       // Defaults to DefaultViewState()
}

// Engine is the host-independent molecule viewer: it owns the view state and every derived cache.
// It is not safe for concurrent use: hosts serialize their calls.
type Engine struct {
	rules    *BondRules
	now      func() time.Time
	renderer *LayeredRenderer
	field    *FieldCache
	ctrl     *Controller
	clock    FrameClock
	rotator  AutoRotator
	view     ViewState

	atoms     []Atom
	id        string
	hash      uint64
	loaded    bool
	bonds     []Bond
	neighbors []int
	pivot     v3.Vec

	width, height int
}

// NewEngine creates an engine showing cfg.Atoms.
func NewEngine(cfg EngineConfig) *Engine {
	e := &Engine{rules: cfg.Rules, now: cfg.Now, renderer: NewLayeredRenderer(), view: DefaultViewState()}
	if e.rules == nil {
		e.rules = DefaultBondRules()
	}
	if e.now == nil {
		e.now = time.Now
	}
	rnd := cfg.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.View != nil {
		e.view = *cfg.View.Clone()
	}
	e.field = NewFieldCache(rnd)
	e.ctrl = NewController(&e.view, e)
	e.SetAtoms(cfg.Atoms, cfg.MoleculeID)
	return e
}

// SetAtoms replaces the molecule. Bonds and field geometry are only recomputed if the content changed.
func (e *Engine) SetAtoms(atoms []Atom, id string) {
	e.id = id
	hash := HashAtoms(atoms)
	if e.loaded && hash == e.hash {
		return
	}
	e.atoms = append([]Atom(nil), atoms...)
	e.hash, e.loaded = hash, true
	e.bonds = InferBonds(e.atoms, e.rules)
	e.neighbors = NeighborCounts(e.atoms, neighborhoodRadius)
	e.pivot = v3.Vec{}
	if box, ok := BoundingBox(e.atoms); ok {
		e.pivot = box.Center()
	}
	e.ctrl.ClearHover()
	log.Printf("[MolRenderer] Loaded %q: %d atoms, %d bonds", id, len(e.atoms), len(e.bonds))
}

// Resize adapts the pan offset to a new surface size so the subject stays centered. Rotation and
// scale are kept. Repeating the same size is a no-op.
func (e *Engine) Resize(width, height int) {
	if width <= 0 || height <= 0 || (width == e.width && height == e.height) {
		return
	}
	if e.width > 0 && e.height > 0 {
		e.view.Camera.Offset.X *= float64(width) / float64(e.width)
		e.view.Camera.Offset.Y *= float64(height) / float64(e.height)
	}
	e.width, e.height = width, height
}

// Frame renders the current view into dst, whose size becomes the surface size.
func (e *Engine) Frame(dst *image.RGBA, now time.Time) {
	if dst == nil {
		return
	}
	e.Resize(dst.Bounds().Dx(), dst.Bounds().Dy())
	e.clock.Tick(now)
	e.renderer.Render(dst, e.scene())
}

func (e *Engine) scene() *Scene {
	return &Scene{
		Atoms:     e.atoms,
		Bonds:     e.bonds,
		Neighbors: e.neighbors,
		Field:     e.field.Get(e.atoms, e.hash, &e.view.Settings),
		View:      &e.view,
		Pivot:     e.pivot,
		Hovered:   e.ctrl.Hovered(),
		FPS:       e.clock.FPS(),
	}
}

// AdvanceAutoRotate applies the auto-rotation elapsed until now.
func (e *Engine) AdvanceAutoRotate(now time.Time) int {
	return e.rotator.Advance(&e.view.Camera, now)
}

// Pick returns the atom under the given surface position (the closest center wins), or -1.
func (e *Engine) Pick(x, y float64) int {
	if e.width <= 0 || e.height <= 0 {
		return noHover
	}
	cam := &e.view.Camera
	projector := NewProjector(cam, Frame{Pivot: e.pivot, Width: float64(e.width), Height: float64(e.height)})
	best, bestDist := noHover, math.Inf(1)
	for i, a := range e.atoms {
		if !a.Valid() {
			continue
		}
		pp := projector.Project(a.Pos)
		r := ProjectedRadius(LookupElement(a.Symbol).Radius, cam, pp, e.view.Settings.DepthFog)
		if d := math.Hypot(x-pp.X, y-pp.Y); d <= r && d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Controller receives the host's input events.
func (e *Engine) Controller() *Controller {
	return e.ctrl
}

// View returns a snapshot of the view state.
func (e *Engine) View() *ViewState {
	return e.view.Clone()
}

// RestoreView replaces the view state with a previous snapshot.
func (e *Engine) RestoreView(v *ViewState) {
	if v == nil {
		return
	}
	e.view = *v.Clone()
}

// Atoms returns the current molecule (do not modify).
func (e *Engine) Atoms() []Atom {
	return e.atoms
}

// Bonds returns the inferred bonds (do not modify).
func (e *Engine) Bonds() []Bond {
	return e.bonds
}

// MoleculeID is the identifier given to the last SetAtoms.
func (e *Engine) MoleculeID() string {
	return e.id
}

// Hovered is the hovered atom index or -1.
func (e *Engine) Hovered() int {
	return e.ctrl.Hovered()
}

// FPS is the rolling average frame rate.
func (e *Engine) FPS() float64 {
	return e.clock.FPS()
}

// Size is the last known surface size.
func (e *Engine) Size() (int, int) {
	return e.width, e.height
}

// Reset restores the default camera.
func (e *Engine) Reset() {
	e.ctrl.Reset()
}

// Capture renders the current view into a new image of the surface size.
func (e *Engine) Capture() (*Snapshot, error) {
	w, h := e.width, e.height
	if w <= 0 || h <= 0 {
		w, h = defaultCaptureWidth, defaultCaptureHeight
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	sc := e.scene()
	sc.Hovered = noHover // No tooltip on exports
	e.renderer.Render(img, sc)
	return &Snapshot{Filename: SnapshotFilename(e.id, e.now()), Image: img}, nil
}

var _ Handle = (*Engine)(nil)

// Snapshot is a captured still image.
type Snapshot struct {
	Filename string
	Image    *image.RGBA
}

// Encode writes the snapshot as PNG.
func (s *Snapshot) Encode(w io.Writer) error {
	return png.Encode(w, s.Image)
}

// Save writes the snapshot into dir and returns the written path.
func (s *Snapshot) Save(dir string) (string, error) {
	path := filepath.Join(dir, s.Filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	err = s.Encode(f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return path, nil
}

// SnapshotFilename builds "<id>_<YYYYMMDD-HHMMSS>.png" with a filesystem-safe id.
func SnapshotFilename(id string, at time.Time) string {
	return sanitizeID(id) + "_" + at.Format(captureTimeLayout) + ".png"
}

func sanitizeID(id string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, strings.TrimSpace(id))
	if strings.Trim(s, "_") == "" {
		return "molecule"
	}
	return s
}
