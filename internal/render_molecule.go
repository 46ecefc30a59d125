package internal

import (
	"github.com/fogleman/fauxgl"
	"github.com/fogleman/gg"
	"math"
	"sort"
)

const bondRadius = 0.11 // Molecule units

var (
	bondDark   = fauxgl.HexColor("3A3F4A")
	bondLight  = fauxgl.HexColor("A8B0BD")
	bondBright = fauxgl.HexColor("EEF2F7")
	hoverColor = fauxgl.HexColor("FFD54A")
)

// drawShadows draws a contact ellipse for every atom on a fixed horizon line.
func (lr *LayeredRenderer) drawShadows(dc *gg.Context, sc *Scene, proj *projection, order []int, h float64) {
	horizon := lr.Horizon * h
	for _, i := range order {
		pp := proj.points[i]
		r := ProjectedRadius(LookupElement(sc.Atoms[i].Symbol).Radius, &sc.View.Camera, pp, sc.View.Settings.DepthFog)
		height := math.Max(0, math.Min(1, (horizon-pp.Y)/h)) // 0 on the ground, 1 far above it
		_, alpha := DepthScales(pp.Depth, sc.View.Settings.DepthFog)
		opacity := 0.35 * (1 - height) * alpha
		if opacity <= 0.005 || r <= 0 {
			continue
		}
		rx := r * (1.2 - 0.5*height)
		shadow := gg.NewRadialGradient(pp.X, horizon, 0, pp.X, horizon, rx)
		shadow.AddColorStop(0, rgba(fauxgl.Gray(0), opacity))
		shadow.AddColorStop(1, rgba(fauxgl.Gray(0), 0))
		dc.SetFillStyle(shadow)
		dc.DrawEllipse(pp.X, horizon, rx, rx*0.28)
		dc.Fill()
	}
}

// drawBonds strokes all bonds from the farthest to the closest.
func (lr *LayeredRenderer) drawBonds(dc *gg.Context, sc *Scene, proj *projection) {
	n := len(sc.Atoms)
	var bonds []Bond
	for _, b := range sc.Bonds {
		if b.I >= 0 && b.J >= 0 && b.I < n && b.J < n && proj.ok[b.I] && proj.ok[b.J] {
			bonds = append(bonds, b)
		}
	}
	sort.SliceStable(bonds, func(a, b int) bool {
		return proj.points[bonds[a].I].Z+proj.points[bonds[a].J].Z < proj.points[bonds[b].I].Z+proj.points[bonds[b].J].Z
	})

	dc.SetLineCap(gg.LineCapRound)
	cam := &sc.View.Camera
	for _, b := range bonds {
		p1, p2 := proj.points[b.I], proj.points[b.J]
		dx, dy := p2.X-p1.X, p2.Y-p1.Y
		length := math.Hypot(dx, dy)
		if length < 0.5 {
			continue // Seen end-on: hidden by the atoms anyway
		}
		nx, ny := -dy/length, dx/length // 2D perpendicular
		size, alpha := DepthScales((p1.Depth+p2.Depth)/2, sc.View.Settings.DepthFog)
		width := math.Max(1.5, 2*bondRadius*DisplayScale*cam.Scale*(p1.Perspective+p2.Perspective)/2*size)

		offsets := []float64{0}
		switch b.Order {
		case Double:
			offsets = append(offsets, 1.1*width)
		case Triple:
			offsets = append(offsets, 1.1*width, -1.1*width)
		}
		for k, off := range offsets {
			w := width
			if k > 0 {
				w = 0.55 * width
			}
			ox, oy := nx*off, ny*off
			strokeMetallic(dc, p1.X+ox, p1.Y+oy, p2.X+ox, p2.Y+oy, nx, ny, w, alpha, k == 0)
		}
	}
}

// strokeMetallic draws one bond stroke: drop shadow, cross-width gradient and a specular streak.
func strokeMetallic(dc *gg.Context, x1, y1, x2, y2, nx, ny, w, alpha float64, shadow bool) {
	if shadow {
		dc.SetColor(rgba(fauxgl.Gray(0), 0.35*alpha))
		dc.SetLineWidth(w + 2)
		dc.DrawLine(x1+2, y1+2, x2+2, y2+2)
		dc.Stroke()
	}
	mx, my := (x1+x2)/2, (y1+y2)/2
	grad := gg.NewLinearGradient(mx-nx*w/2, my-ny*w/2, mx+nx*w/2, my+ny*w/2)
	grad.AddColorStop(0, rgba(bondDark, alpha))
	grad.AddColorStop(0.25, rgba(bondLight, alpha))
	grad.AddColorStop(0.5, rgba(bondBright, alpha))
	grad.AddColorStop(0.75, rgba(bondLight, alpha))
	grad.AddColorStop(1, rgba(bondDark, alpha))
	dc.SetStrokeStyle(grad)
	dc.SetLineWidth(w)
	dc.DrawLine(x1, y1, x2, y2)
	dc.Stroke()

	sx, sy := -nx*w*0.2, -ny*w*0.2
	dc.SetColor(rgba(fauxgl.Gray(1), 0.45*alpha))
	dc.SetLineWidth(math.Max(0.8, w*0.18))
	dc.DrawLine(x1+sx, y1+sy, x2+sx, y2+sy)
	dc.Stroke()
}

// drawAtoms shades each atom as a sphere, from the farthest to the closest.
func (lr *LayeredRenderer) drawAtoms(dc *gg.Context, sc *Scene, proj *projection, order []int) {
	settings := &sc.View.Settings
	for _, i := range order {
		pp := proj.points[i]
		e := LookupElement(sc.Atoms[i].Symbol)
		r := ProjectedRadius(e.Radius, &sc.View.Camera, pp, settings.DepthFog)
		if r < 0.5 {
			continue
		}
		_, alpha := DepthScales(pp.Depth, settings.DepthFog)
		x, y, base := pp.X, pp.Y, e.Color

		// Ambient occlusion halo: more neighbours, darker halo
		if settings.AmbientOcclusion && i < len(sc.Neighbors) && sc.Neighbors[i] > 0 {
			strength := math.Min(1, float64(sc.Neighbors[i])/6) * 0.45 * alpha
			halo := gg.NewRadialGradient(x, y, r*0.9, x, y, r*1.5)
			halo.AddColorStop(0, rgba(fauxgl.Gray(0), strength))
			halo.AddColorStop(1, rgba(fauxgl.Gray(0), 0))
			dc.SetFillStyle(halo)
			dc.DrawCircle(x, y, r*1.5)
			dc.Fill()
		}

		// Body: highlight corner, base color, darkened rim
		body := gg.NewRadialGradient(x-0.35*r, y-0.35*r, r*0.05, x, y, r*1.05)
		body.AddColorStop(0, rgba(lighten(base, 0.65), alpha))
		body.AddColorStop(0.3, rgba(base, alpha))
		body.AddColorStop(0.8, rgba(darken(base, 0.4), alpha))
		body.AddColorStop(1, rgba(darken(base, 0.7), alpha))
		dc.SetFillStyle(body)
		dc.DrawCircle(x, y, r)
		dc.Fill()

		// Rim light on the opposite side
		rx, ry := x+0.45*r, y+0.45*r
		rim := gg.NewRadialGradient(rx, ry, 0, rx, ry, r*0.8)
		rim.AddColorStop(0, rgba(lighten(base, 0.5), 0.35*alpha))
		rim.AddColorStop(1, rgba(lighten(base, 0.5), 0))
		dc.SetFillStyle(rim)
		dc.DrawCircle(x, y, r)
		dc.Fill()

		for _, spec := range []struct{ radius, alpha float64 }{{0.3, 0.35}, {0.17, 0.6}, {0.07, 0.9}} {
			dc.SetColor(rgba(fauxgl.Gray(1), spec.alpha*alpha))
			dc.DrawCircle(x-0.38*r, y-0.42*r, spec.radius*r)
			dc.Fill()
		}

		dc.SetColor(rgba(darken(base, 0.55), 0.6*alpha))
		dc.SetLineWidth(math.Max(1, r*0.05))
		dc.DrawCircle(x, y, r)
		dc.Stroke()

		if i == sc.Hovered {
			dc.SetColor(rgba(hoverColor, 0.35))
			dc.SetLineWidth(6)
			dc.DrawCircle(x, y, r+6)
			dc.Stroke()
			dc.SetColor(rgba(hoverColor, 0.95))
			dc.SetLineWidth(2)
			dc.DrawCircle(x, y, r+3)
			dc.Stroke()
		}
	}
}
