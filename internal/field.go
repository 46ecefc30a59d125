package internal

import (
	"github.com/deadsy/sdfx/sdf"
	"github.com/deadsy/sdfx/vec/v3"
	"math"
	"math/rand"
)

const (
	gridDiagonalFactor    = 1.3  // Grid side relative to the molecule's bounding box diagonal
	vertexDiagonalFactor  = 0.75 // Vertex sphere radius relative to the bounding box diagonal
	vertexPointsPerAtom   = 2
	vertexShellJitter     = 0.05
	neighborhoodRadius    = 2.0 // Molecule units, for the ambient occlusion proxy
	defaultGridSubdivides = 9
)

var vertexShells = []float64{0.7, 0.85, 1.0, 1.15}

// FieldGeometry is the decorative point sets drawn around the molecule, in molecule units.
type FieldGeometry struct {
	GridPoints   []v3.Vec
	GridLines    [][2]int // Indices into GridPoints
	VertexPoints []v3.Vec // The first 12 are the icosahedron vertices
	Radius       float64  // Vertex sphere base radius
	Center       v3.Vec
}

// BoundingBox computes the axis-aligned box of the well-formed atoms.
func BoundingBox(atoms []Atom) (sdf.Box3, bool) {
	var box sdf.Box3
	found := false
	for _, a := range atoms {
		if !a.Valid() {
			continue
		}
		if !found {
			box = sdf.Box3{Min: a.Pos, Max: a.Pos}
			found = true
			continue
		}
		box.Min = v3.Vec{X: math.Min(box.Min.X, a.Pos.X), Y: math.Min(box.Min.Y, a.Pos.Y), Z: math.Min(box.Min.Z, a.Pos.Z)}
		box.Max = v3.Vec{X: math.Max(box.Max.X, a.Pos.X), Y: math.Max(box.Max.Y, a.Pos.Y), Z: math.Max(box.Max.Z, a.Pos.Z)}
	}
	return box, found
}

// GenerateGrid lays density points per axis on a cube centered on the box.
func GenerateGrid(box sdf.Box3, density int, minExtent float64) ([]v3.Vec, [][2]int) {
	if density < 2 {
		density = defaultGridSubdivides
	}
	extent := math.Max(minExtent, box.Size().Length()*gridDiagonalFactor)
	center := box.Center()
	step := extent / float64(density-1)
	half := extent / 2
	origin := center.Sub(v3.Vec{X: half, Y: half, Z: half})
	index := func(i, j, k int) int { return (i*density+j)*density + k }

	points := make([]v3.Vec, 0, density*density*density)
	for i := 0; i < density; i++ {
		for j := 0; j < density; j++ {
			for k := 0; k < density; k++ {
				points = append(points, origin.Add(v3.Vec{X: float64(i) * step, Y: float64(j) * step, Z: float64(k) * step}))
			}
		}
	}
	lines := make([][2]int, 0, 3*(density-1)*density*density)
	for i := 0; i < density; i++ {
		for j := 0; j < density; j++ {
			for k := 0; k < density; k++ {
				if i+1 < density {
					lines = append(lines, [2]int{index(i, j, k), index(i+1, j, k)})
				}
				if j+1 < density {
					lines = append(lines, [2]int{index(i, j, k), index(i, j+1, k)})
				}
				if k+1 < density {
					lines = append(lines, [2]int{index(i, j, k), index(i, j, k+1)})
				}
			}
		}
	}
	return points, lines
}

// icosahedron returns the 12 unit vertices of a regular icosahedron (golden ratio construction).
func icosahedron() []v3.Vec {
	phi := (1 + math.Sqrt(5)) / 2
	raw := []v3.Vec{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}
	for i := range raw {
		raw[i] = raw[i].Normalize()
	}
	return raw
}

// GenerateVertexSphere builds the icosahedron shell plus scattered points on layered shells.
// All randomness comes from rnd, so a seeded source gives exactly reproducible output.
func GenerateVertexSphere(box sdf.Box3, atomCount int, minRadius float64, pointCap int, rnd *rand.Rand) ([]v3.Vec, float64) {
	radius := math.Max(minRadius, box.Size().Length()*vertexDiagonalFactor)
	center := box.Center()
	var points []v3.Vec
	for _, v := range icosahedron() {
		points = append(points, center.Add(v.MulScalar(radius)))
	}
	extra := atomCount * vertexPointsPerAtom
	if extra > pointCap {
		extra = pointCap
	}
	for i := 0; i < extra && rnd != nil; i++ {
		theta := 2 * math.Pi * rnd.Float64()
		phi := math.Acos(2*rnd.Float64() - 1)
		shell := vertexShells[i%len(vertexShells)] * (1 + vertexShellJitter*(2*rnd.Float64()-1))
		dir := v3.Vec{X: math.Sin(phi) * math.Cos(theta), Y: math.Sin(phi) * math.Sin(theta), Z: math.Cos(phi)}
		points = append(points, center.Add(dir.MulScalar(radius*shell)))
	}
	return points, radius
}

type fieldKey struct {
	atoms                   uint64
	gridDensity, vertexCap  int
	gridMinExt, vertexMinRd float64
}

// FieldCache keeps the field geometry until the atoms or the density settings change.
type FieldCache struct {
	rnd   *rand.Rand
	key   fieldKey
	valid bool
	geom  *FieldGeometry
}

// NewFieldCache creates a cache drawing its jitter from rnd.
func NewFieldCache(rnd *rand.Rand) *FieldCache {
	return &FieldCache{rnd: rnd}
}

// Get returns the cached geometry, regenerating it if atomsHash or the density settings differ.
// It returns nil for an atom list without any well-formed atom.
func (c *FieldCache) Get(atoms []Atom, atomsHash uint64, s *RenderSettings) *FieldGeometry {
	key := fieldKey{atomsHash, s.GridDensity, s.VertexPointCap, s.GridMinExtent, s.VertexMinRadius}
	if c.valid && c.key == key {
		return c.geom
	}
	c.key, c.valid = key, true
	box, ok := BoundingBox(atoms)
	if !ok {
		c.geom = nil
		return nil
	}
	g := &FieldGeometry{Center: box.Center()}
	g.GridPoints, g.GridLines = GenerateGrid(box, s.GridDensity, s.GridMinExtent)
	g.VertexPoints, g.Radius = GenerateVertexSphere(box, len(atoms), s.VertexMinRadius, s.VertexPointCap, c.rnd)
	c.geom = g
	return g
}

// Invalidate forces a regeneration on the next Get.
func (c *FieldCache) Invalidate() {
	c.valid = false
}
