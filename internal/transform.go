package internal

import (
	"github.com/deadsy/sdfx/sdf"
	"github.com/deadsy/sdfx/vec/v3"
	"math"
)

const (
	DisplayScale       = 40.  // Pixels per molecule unit at scale 1
	CameraDistance     = 600. // Distance from the virtual camera to the pivot, in pixels
	DepthOffset        = 50.  // Constant added to the perspective divisor
	DepthNormalization = 800. // (CameraDistance + z) is divided by this to get the depth factor
	DepthFloor         = 0.3  // Minimum depth factor (farthest points)
)

// ProjectedPoint is a point in screen space. Recomputed every frame.
type ProjectedPoint struct {
	X, Y        float64 // Screen coordinates (Y down)
	Z           float64 // Rotated depth in pixels, positive towards the viewer
	Depth       float64 // Depth factor in [DepthFloor, 1], 1 being the closest
	Perspective float64 // Screen size multiplier for this depth
}

// Frame is the per-frame projection context: where the molecule pivots and the surface size.
type Frame struct {
	Pivot         v3.Vec
	Width, Height float64
}

// Projector projects many points with the same camera: the rotation matrix is only computed once.
type Projector struct {
	cam   *CameraState
	frame Frame
	rot   sdf.M44
}

// NewProjector prepares the transform for the given camera and frame.
func NewProjector(cam *CameraState, frame Frame) *Projector {
	return &Projector{cam: cam, frame: frame, rot: RotationMatrix(cam.Rotation)}
}

// RotationMatrix rotates around X first, then Y, then Z. Every point set must use this same order.
func RotationMatrix(rot v3.Vec) sdf.M44 {
	return sdf.RotateZ(rot.Z).Mul(sdf.RotateY(rot.Y)).Mul(sdf.RotateX(rot.X))
}

// Project maps a point in molecule units to the screen.
func (p *Projector) Project(pos v3.Vec) ProjectedPoint {
	scaled := pos.Sub(p.frame.Pivot).MulScalar(DisplayScale * p.cam.Scale)
	r := p.rot.MulPosition(scaled)
	persp := CameraDistance / math.Max(1, CameraDistance+DepthOffset-r.Z)
	return ProjectedPoint{
		X:           p.frame.Width/2 + p.cam.Offset.X + r.X*persp,
		Y:           p.frame.Height/2 + p.cam.Offset.Y - r.Y*persp,
		Z:           r.Z,
		Depth:       DepthFactor(r.Z),
		Perspective: persp,
	}
}

// Project is the one-shot form of Projector.Project.
func Project(pos v3.Vec, cam *CameraState, frame Frame) ProjectedPoint {
	return NewProjector(cam, frame).Project(pos)
}

// DepthFactor normalizes a rotated depth to [DepthFloor, 1].
func DepthFactor(z float64) float64 {
	d := (CameraDistance + z) / DepthNormalization
	if math.IsNaN(d) {
		return DepthFloor
	}
	return math.Max(DepthFloor, math.Min(1, d))
}

// DepthScales is the fog rule shared by every stage: size and opacity multipliers for a depth factor.
// Without fog everything is drawn at full size and opacity.
func DepthScales(depth float64, fog bool) (size, alpha float64) {
	if !fog {
		return 1, 1
	}
	return 0.6 + 0.4*depth, depth
}

// ProjectedRadius is the on-screen radius of a sphere of the given molecule-unit radius.
func ProjectedRadius(radius float64, cam *CameraState, pp ProjectedPoint, fog bool) float64 {
	size, _ := DepthScales(pp.Depth, fog)
	return radius * DisplayScale * cam.Scale * pp.Perspective * size
}
