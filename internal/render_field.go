package internal

import (
	"github.com/fogleman/fauxgl"
	"github.com/fogleman/gg"
	"math"
)

const gridDepthBuckets = 8

var (
	fieldNearColor = fauxgl.HexColor("3FD8FF")
	fieldFarColor  = fauxgl.HexColor("6A4CFF")
	vertexColor    = fauxgl.HexColor("9FF0FF")
)

// depthT maps a depth factor to [0, 1] (0 farthest).
func depthT(depth float64) float64 {
	return (depth - DepthFloor) / (1 - DepthFloor)
}

// fieldColor shifts the hue to violet and desaturates as points get farther away.
func fieldColor(depth float64) fauxgl.Color {
	t := depthT(depth)
	return fieldNearColor.Lerp(fieldFarColor, 1-t).Lerp(fauxgl.Gray(0.45), 0.5*(1-t))
}

// drawGrid strokes the lattice. Lines are grouped in depth buckets so each bucket is a single path.
func (lr *LayeredRenderer) drawGrid(dc *gg.Context, projector *Projector, g *FieldGeometry, fog bool) {
	if len(g.GridPoints) == 0 {
		return
	}
	pts := make([]ProjectedPoint, len(g.GridPoints))
	for i, p := range g.GridPoints {
		pts[i] = projector.Project(p)
	}
	bucketOf := func(depth float64) int {
		return int(math.Min(gridDepthBuckets-1, math.Max(0, depthT(depth)*gridDepthBuckets)))
	}
	var lines [gridDepthBuckets][][2]int
	for _, l := range g.GridLines {
		if l[0] < 0 || l[1] < 0 || l[0] >= len(pts) || l[1] >= len(pts) {
			continue
		}
		b := bucketOf((pts[l[0]].Depth + pts[l[1]].Depth) / 2)
		lines[b] = append(lines[b], l)
	}
	var nodes [gridDepthBuckets][]int
	for i, p := range pts {
		b := bucketOf(p.Depth)
		nodes[b] = append(nodes[b], i)
	}

	dc.SetLineCap(gg.LineCapRound)
	for b := 0; b < gridDepthBuckets; b++ {
		depth := DepthFloor + (float64(b)+0.5)/gridDepthBuckets*(1-DepthFloor)
		size, alpha := DepthScales(depth, fog)
		col := fieldColor(depth)
		blur := 1 + 3*(1-depthT(depth)) // Farther lines get a wider, fainter halo
		// Halo pass, then the crisp line
		for pass, width := range []float64{blur * 2.5 * size, 0.8 * size} {
			for _, l := range lines[b] {
				dc.MoveTo(pts[l[0]].X, pts[l[0]].Y)
				dc.LineTo(pts[l[1]].X, pts[l[1]].Y)
			}
			passAlpha := 0.28 * alpha
			if pass == 0 {
				passAlpha = 0.06 * alpha
			}
			dc.SetColor(rgba(col, passAlpha))
			dc.SetLineWidth(width)
			dc.Stroke()
		}
		// Intersections
		for _, i := range nodes[b] {
			dc.DrawCircle(pts[i].X, pts[i].Y, 1.3*size)
		}
		dc.SetColor(rgba(lighten(col, 0.3), 0.45*alpha))
		dc.Fill()
	}
}

// drawVertexConnections joins close projected vertices. The back pass (z < 0) is sparser and dimmer
// than the front pass, which gives the sphere a depth-stratified glow.
func (lr *LayeredRenderer) drawVertexConnections(dc *gg.Context, vertices []ProjectedPoint, threshold float64, fog bool) {
	if threshold <= 0 {
		return
	}
	dc.SetLineCap(gg.LineCapRound)
	for _, back := range []bool{true, false} {
		for i := 0; i < len(vertices); i++ {
			for j := i + 1; j < len(vertices); j++ {
				a, b := vertices[i], vertices[j]
				if isBack := (a.Z+b.Z)/2 < 0; isBack != back {
					continue
				}
				if back && (i+j)%2 != 0 {
					continue
				}
				d := math.Hypot(a.X-b.X, a.Y-b.Y)
				if d >= threshold {
					continue
				}
				depth := (a.Depth + b.Depth) / 2
				size, alpha := DepthScales(depth, fog)
				strength := (1 - d/threshold) * alpha
				if back {
					strength *= 0.45
				}
				dc.SetColor(rgba(fieldColor(depth), 0.55*strength))
				dc.SetLineWidth(math.Max(0.5, 1.2*size))
				dc.DrawLine(a.X, a.Y, b.X, b.Y)
				dc.Stroke()
			}
		}
	}
}

// drawVertexPoints draws each vertex as outer, middle and core glow discs.
func (lr *LayeredRenderer) drawVertexPoints(dc *gg.Context, vertices []ProjectedPoint, fog bool) {
	for _, v := range vertices {
		size, alpha := DepthScales(v.Depth, fog)
		r := 2.2 * size
		col := vertexColor.Lerp(fieldFarColor, 0.6*(1-depthT(v.Depth)))
		for _, layer := range []struct{ radius, alpha float64 }{{r * 3.2, 0.10}, {r * 1.8, 0.30}} {
			glow := gg.NewRadialGradient(v.X, v.Y, 0, v.X, v.Y, layer.radius)
			glow.AddColorStop(0, rgba(col, layer.alpha*alpha))
			glow.AddColorStop(1, rgba(col, 0))
			dc.SetFillStyle(glow)
			dc.DrawCircle(v.X, v.Y, layer.radius)
			dc.Fill()
		}
		dc.SetColor(rgba(lighten(col, 0.5), 0.9*alpha))
		dc.DrawCircle(v.X, v.Y, r)
		dc.Fill()
	}
}
