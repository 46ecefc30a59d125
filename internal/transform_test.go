package internal

import (
	"github.com/deadsy/sdfx/vec/v3"
	"math"
	"testing"
)

const eps = 1e-9

func TestProjectPivotAtCenter(t *testing.T) {
	cam := DefaultCamera()
	pp := Project(v3.Vec{X: 1, Y: 2, Z: 3}, &cam, Frame{Pivot: v3.Vec{X: 1, Y: 2, Z: 3}, Width: 800, Height: 600})
	if math.Abs(pp.X-400) > eps || math.Abs(pp.Y-300) > eps || math.Abs(pp.Z) > eps {
		t.Fatalf("expected the pivot at the surface center, got %+v", pp)
	}
	if math.Abs(pp.Perspective-CameraDistance/(CameraDistance+DepthOffset)) > eps {
		t.Fatalf("unexpected perspective %f", pp.Perspective)
	}
	if math.Abs(pp.Depth-CameraDistance/DepthNormalization) > eps {
		t.Fatalf("unexpected depth factor %f", pp.Depth)
	}
}

func TestProjectYUp(t *testing.T) {
	cam := DefaultCamera()
	frame := Frame{Width: 800, Height: 600}
	if pp := Project(v3.Vec{Y: 1}, &cam, frame); pp.Y >= 300 {
		t.Fatalf("+Y should go up the screen, got y=%f", pp.Y)
	}
	if pp := Project(v3.Vec{X: 1}, &cam, frame); pp.X <= 400 {
		t.Fatalf("+X should go right, got x=%f", pp.X)
	}
}

func TestProjectOffsetAndScale(t *testing.T) {
	cam := DefaultCamera()
	frame := Frame{Width: 800, Height: 600}
	base := Project(v3.Vec{X: 1}, &cam, frame)
	cam.Offset.X, cam.Offset.Y = 15, -7
	moved := Project(v3.Vec{X: 1}, &cam, frame)
	if math.Abs(moved.X-base.X-15) > eps || math.Abs(moved.Y-base.Y+7) > eps {
		t.Fatalf("offset not applied: %+v -> %+v", base, moved)
	}
	cam = DefaultCamera()
	cam.Scale = 2
	zoomed := Project(v3.Vec{X: 1}, &cam, frame)
	if math.Abs((zoomed.X-400)-2*(base.X-400)) > eps {
		t.Fatalf("scale not applied: %f vs %f", zoomed.X-400, base.X-400)
	}
}

func TestProjectRotationKeepsDistance(t *testing.T) {
	cam := DefaultCamera()
	cam.Rotation.Y = math.Pi / 2
	pp := Project(v3.Vec{X: 1}, &cam, Frame{Width: 800, Height: 600})
	if math.Abs(pp.X-400) > 1e-6 || math.Abs(math.Abs(pp.Z)-DisplayScale) > 1e-6 {
		t.Fatalf("a quarter turn around Y should move +X into depth, got %+v", pp)
	}
}

func TestDepthFactorClamp(t *testing.T) {
	for _, tc := range []struct{ z, expected float64 }{
		{0, 0.75},
		{1e6, 1},
		{-1e6, DepthFloor},
		{math.Inf(1), 1},
		{math.NaN(), DepthFloor},
	} {
		if got := DepthFactor(tc.z); math.Abs(got-tc.expected) > eps {
			t.Fatalf("DepthFactor(%f): expected %f, got %f", tc.z, tc.expected, got)
		}
	}
}

func TestDepthScales(t *testing.T) {
	size, alpha := DepthScales(0.5, true)
	if math.Abs(size-0.8) > eps || math.Abs(alpha-0.5) > eps {
		t.Fatalf("unexpected fog scales %f %f", size, alpha)
	}
	size, alpha = DepthScales(0.5, false)
	if size != 1 || alpha != 1 {
		t.Fatalf("fog disabled should not scale, got %f %f", size, alpha)
	}
}
