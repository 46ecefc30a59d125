package internal

import (
	"github.com/deadsy/sdfx/sdf"
	"github.com/deadsy/sdfx/vec/v3"
	"math"
	"math/rand"
	"testing"
)

func TestBoundingBox(t *testing.T) {
	if _, ok := BoundingBox([]Atom{{Pos: v3.Vec{X: math.NaN()}}}); ok {
		t.Fatal("expected no box without well-formed atoms")
	}
	box, ok := BoundingBox([]Atom{{Pos: v3.Vec{X: -1, Y: 2}}, {Pos: v3.Vec{X: 3, Z: -4}}})
	if !ok || box.Min != (v3.Vec{X: -1, Z: -4}) || box.Max != (v3.Vec{X: 3, Y: 2}) {
		t.Fatalf("unexpected box %+v", box)
	}
}

func TestGenerateGrid(t *testing.T) {
	box := sdf.Box3{Min: v3.Vec{X: -1, Y: -1, Z: -1}, Max: v3.Vec{X: 1, Y: 1, Z: 1}}
	points, lines := GenerateGrid(box, 9, 8)
	if len(points) != 9*9*9 {
		t.Fatalf("expected %d grid points, got %d", 9*9*9, len(points))
	}
	if len(lines) != 3*8*9*9 {
		t.Fatalf("expected %d grid lines, got %d", 3*8*9*9, len(lines))
	}
	// The diagonal (2*sqrt(3)*1.3 ~ 4.5) is below the minimum extent
	if math.Abs(points[len(points)-1].X-points[0].X-8) > 1e-9 {
		t.Fatalf("expected the minimum extent to apply, got side %f", points[len(points)-1].X-points[0].X)
	}
	for _, l := range lines {
		if d := points[l[0]].Sub(points[l[1]]).Length(); math.Abs(d-1) > 1e-9 {
			t.Fatalf("grid line %v joins non-neighbours (length %f)", l, d)
		}
	}
}

func TestGenerateVertexSphereDeterministic(t *testing.T) {
	box := sdf.Box3{Max: v3.Vec{X: 4, Y: 3, Z: 2}}
	a, ra := GenerateVertexSphere(box, 10, 4, 60, rand.New(rand.NewSource(42)))
	b, rb := GenerateVertexSphere(box, 10, 4, 60, rand.New(rand.NewSource(42)))
	if ra != rb || len(a) != len(b) || len(a) != 12+20 {
		t.Fatalf("unexpected sphere sizes: %d (r=%f) vs %d (r=%f)", len(a), ra, len(b), rb)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs with the same seed: %v vs %v", i, a[i], b[i])
		}
	}
	for i, p := range a[:12] {
		if d := p.Sub(box.Center()).Length(); math.Abs(d-ra) > 1e-9 {
			t.Fatalf("icosahedron vertex %d is at %f from the center, expected %f", i, d, ra)
		}
	}
	for i, p := range a[12:] {
		if d := p.Sub(box.Center()).Length() / ra; d < 0.7*0.95-1e-9 || d > 1.15*1.05+1e-9 {
			t.Fatalf("scattered point %d is outside the shells (%f)", i, d)
		}
	}
}

func TestGenerateVertexSphereCap(t *testing.T) {
	box := sdf.Box3{}
	points, radius := GenerateVertexSphere(box, 1000, 4, 60, rand.New(rand.NewSource(1)))
	if len(points) != 12+60 {
		t.Fatalf("expected the point cap to apply, got %d points", len(points))
	}
	if radius != 4 {
		t.Fatalf("expected the minimum radius for a point-sized molecule, got %f", radius)
	}
}

func TestFieldCache(t *testing.T) {
	atoms := []Atom{{Symbol: "C"}, {Symbol: "O", Pos: v3.Vec{X: 1.2}}}
	hash := HashAtoms(atoms)
	settings := DefaultSettings()
	cache := NewFieldCache(rand.New(rand.NewSource(1)))
	first := cache.Get(atoms, hash, &settings)
	if first == nil {
		t.Fatal("expected field geometry")
	}
	if cache.Get(atoms, hash, &settings) != first {
		t.Fatal("expected a cache hit for the same atoms and settings")
	}
	settings.ShowLabels = true // Not a density parameter
	if cache.Get(atoms, hash, &settings) != first {
		t.Fatal("expected a cache hit when only toggles change")
	}
	settings.GridDensity = 5
	second := cache.Get(atoms, hash, &settings)
	if second == first || len(second.GridPoints) != 5*5*5 {
		t.Fatal("expected a regeneration when the density changes")
	}
	cache.Invalidate()
	if cache.Get(atoms, hash, &settings) == second {
		t.Fatal("expected a regeneration after Invalidate")
	}
	if cache.Get(nil, HashAtoms(nil), &settings) != nil {
		t.Fatal("expected no geometry without atoms")
	}
}
