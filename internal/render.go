package internal

import (
	"fmt"
	"github.com/deadsy/sdfx/vec/v3"
	"github.com/fogleman/fauxgl"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"image"
	"image/color"
	"log"
	"math"
	"sort"
	"sync"
)

// Scene is everything that gets drawn in one frame.
type Scene struct {
	Atoms     []Atom
	Bonds     []Bond
	Neighbors []int // Per atom, for the ambient occlusion halo (may be nil)
	Field     *FieldGeometry
	View      *ViewState
	Pivot     v3.Vec
	Hovered   int // Atom index, -1 for none
	FPS       float64
}

// LayeredRenderer composes a frame back to front with the painter's algorithm (no depth buffer).
type LayeredRenderer struct {
	Background [3]fauxgl.Color // Top, middle and bottom of the background gradient
	Horizon    float64         // Ground line for contact shadows, as a fraction of the height
}

// NewLayeredRenderer creates a renderer with the default look.
func NewLayeredRenderer() *LayeredRenderer {
	return &LayeredRenderer{
		Background: [3]fauxgl.Color{fauxgl.HexColor("0B1022"), fauxgl.HexColor("1A2340"), fauxgl.HexColor("05070F")},
		Horizon:    0.85,
	}
}

var labelFace = sync.OnceValue(func() font.Face {
	f, err := opentype.Parse(goregular.TTF)
	if err == nil {
		var face font.Face
		face, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 12, DPI: 72, Hinting: font.HintingFull})
		if err == nil {
			return face
		}
	}
	log.Println("[MolRenderer] Falling back to the basic font:", err)
	return basicfont.Face7x13
})

// rgba converts to a drawable color with the given opacity.
func rgba(c fauxgl.Color, alpha float64) color.NRGBA {
	c.A = math.Max(0, math.Min(1, alpha))
	return c.NRGBA()
}

func lighten(c fauxgl.Color, t float64) fauxgl.Color {
	return c.Lerp(fauxgl.Gray(1), t)
}

func darken(c fauxgl.Color, t float64) fauxgl.Color {
	return c.Lerp(fauxgl.Gray(0), t)
}

// projection holds the projected atoms for a frame. ok is false for entries that must be skipped.
type projection struct {
	points []ProjectedPoint
	ok     []bool
}

func projectAtoms(p *Projector, atoms []Atom) *projection {
	res := &projection{points: make([]ProjectedPoint, len(atoms)), ok: make([]bool, len(atoms))}
	for i, a := range atoms {
		if !a.Valid() {
			continue
		}
		res.points[i] = p.Project(a.Pos)
		res.ok[i] = true
	}
	return res
}

// Render draws the scene into dst. It never fails: anything malformed is just not drawn.
func (lr *LayeredRenderer) Render(dst *image.RGBA, sc *Scene) {
	if dst == nil || dst.Bounds().Dx() <= 0 || dst.Bounds().Dy() <= 0 || sc == nil || sc.View == nil {
		return
	}
	dc := gg.NewContextForRGBA(dst)
	w, h := float64(dc.Width()), float64(dc.Height())
	lr.drawBackground(dc, w, h)
	if len(sc.Atoms) == 0 {
		return
	}

	cam := &sc.View.Camera
	settings := &sc.View.Settings
	projector := NewProjector(cam, Frame{Pivot: sc.Pivot, Width: w, Height: h})
	proj := projectAtoms(projector, sc.Atoms)
	order := depthOrder(proj)
	if len(order) == 0 {
		return
	}

	if sc.Field != nil {
		if settings.QuantumGrid {
			lr.drawGrid(dc, projector, sc.Field, settings.DepthFog)
		}
		if settings.VertexSphere {
			vertices := make([]ProjectedPoint, len(sc.Field.VertexPoints))
			for i, v := range sc.Field.VertexPoints {
				vertices[i] = projector.Project(v)
			}
			threshold := 0.8 * sc.Field.Radius * DisplayScale * cam.Scale * CameraDistance / (CameraDistance + DepthOffset)
			lr.drawVertexConnections(dc, vertices, threshold, settings.DepthFog)
			lr.drawVertexPoints(dc, vertices, settings.DepthFog)
		}
	}
	lr.drawShadows(dc, sc, proj, order, h)
	lr.drawBonds(dc, sc, proj)
	lr.drawAtoms(dc, sc, proj, order)
	if settings.ShowLabels {
		lr.drawLabels(dc, sc, proj, order)
	}
	if settings.ShowFPS {
		dc.SetFontFace(labelFace())
		drawOutlinedText(dc, fmt.Sprintf("FPS: %.1f", sc.FPS), 10, 10, 0, 1, fauxgl.HexColor("7FFFA0"))
	}
	lr.drawTooltip(dc, sc, proj, w)
}

// depthOrder returns the drawable atom indices from the farthest to the closest.
func depthOrder(proj *projection) []int {
	var order []int
	for i, ok := range proj.ok {
		if ok {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return proj.points[order[a]].Z < proj.points[order[b]].Z
	})
	return order
}

func (lr *LayeredRenderer) drawBackground(dc *gg.Context, w, h float64) {
	grad := gg.NewLinearGradient(0, 0, 0, h)
	grad.AddColorStop(0, rgba(lr.Background[0], 1))
	grad.AddColorStop(0.55, rgba(lr.Background[1], 1))
	grad.AddColorStop(1, rgba(lr.Background[2], 1))
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
}

// drawOutlinedText draws s with a dark one pixel outline, anchored like gg.DrawStringAnchored.
func drawOutlinedText(dc *gg.Context, s string, x, y, ax, ay float64, col fauxgl.Color) {
	dc.SetColor(rgba(fauxgl.Gray(0), 0.85))
	for _, d := range [][2]float64{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}} {
		dc.DrawStringAnchored(s, x+d[0], y+d[1], ax, ay)
	}
	dc.SetColor(rgba(col, 1))
	dc.DrawStringAnchored(s, x, y, ax, ay)
}

func (lr *LayeredRenderer) drawLabels(dc *gg.Context, sc *Scene, proj *projection, order []int) {
	dc.SetFontFace(labelFace())
	for _, i := range order {
		pp := proj.points[i]
		_, alpha := DepthScales(pp.Depth, sc.View.Settings.DepthFog)
		drawOutlinedText(dc, NormalizeSymbol(sc.Atoms[i].Symbol), pp.X, pp.Y, 0.5, 0.5, fauxgl.Gray(0.5+0.5*alpha))
	}
}

func (lr *LayeredRenderer) drawTooltip(dc *gg.Context, sc *Scene, proj *projection, w float64) {
	i := sc.Hovered
	if i < 0 || i >= len(sc.Atoms) || !proj.ok[i] {
		return
	}
	a := sc.Atoms[i]
	e := LookupElement(a.Symbol)
	lines := []string{
		fmt.Sprintf("%s (%s) #%d", NormalizeSymbol(a.Symbol), e.Name, i+1),
		fmt.Sprintf("x: %.3f  y: %.3f  z: %.3f", a.Pos.X, a.Pos.Y, a.Pos.Z),
	}
	dc.SetFontFace(labelFace())
	boxW, lineH := 0., 16.
	for _, l := range lines {
		lw, _ := dc.MeasureString(l)
		boxW = math.Max(boxW, lw)
	}
	boxW += 16
	boxH := lineH*float64(len(lines)) + 10
	pp := proj.points[i]
	r := ProjectedRadius(e.Radius, &sc.View.Camera, pp, sc.View.Settings.DepthFog)
	x, y := pp.X+r+12, pp.Y-r-boxH/2
	if x+boxW > w {
		x = pp.X - r - 12 - boxW
	}
	y = math.Max(4, y)
	dc.DrawRoundedRectangle(x, y, boxW, boxH, 6)
	dc.SetColor(rgba(fauxgl.HexColor("101826"), 0.88))
	dc.FillPreserve()
	dc.SetColor(rgba(fauxgl.HexColor("3FD8FF"), 0.8))
	dc.SetLineWidth(1)
	dc.Stroke()
	for k, l := range lines {
		dc.SetColor(rgba(fauxgl.Gray(0.95), 1))
		dc.DrawStringAnchored(l, x+8, y+5+lineH*float64(k)+lineH/2, 0, 0.5)
	}
}
