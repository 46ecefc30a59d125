package internal

import (
	"github.com/barkimedes/go-deepcopy"
	"github.com/deadsy/sdfx/vec/v2"
	"github.com/deadsy/sdfx/vec/v3"
)

// CameraState is the camera part of the view state. It is exported for RPC.
type CameraState struct {
	Rotation   v3.Vec // Radians around X, then Y, then Z
	Scale      float64
	Offset     v2.Vec // Pan offset from the surface center, in pixels
	Dragging   bool
	AutoRotate bool
}

// RenderSettings are the user-toggleable render options. It is exported for RPC.
// The ui tag is "<display name>,<key>" and drives the controls text (see DescribeSettings).
type RenderSettings struct {
	ShowLabels       bool `ui:"Labels,L"`
	ShowFPS          bool `ui:"FPS,F"`
	DepthFog         bool `ui:"Depth fog,D"`
	AmbientOcclusion bool `ui:"Ambient occlusion,A"`
	QuantumGrid      bool `ui:"Quantum grid,G"`
	VertexSphere     bool `ui:"Vertex sphere,V"`

	GridDensity     int     // Grid points per axis
	GridMinExtent   float64 // Minimum grid side, in molecule units
	VertexMinRadius float64 // Minimum vertex sphere radius, in molecule units
	VertexPointCap  int     // Maximum amount of scattered vertex points (besides the 12 icosahedron ones)
}

// ViewState consolidates all camera and renderer state that the user can change.
type ViewState struct {
	Camera   CameraState
	Settings RenderSettings
}

// DefaultCamera is the camera restored by a view reset.
func DefaultCamera() CameraState {
	return CameraState{Scale: 1}
}

// DefaultSettings are the render settings fixed at session start.
func DefaultSettings() RenderSettings {
	return RenderSettings{
		DepthFog:         true,
		AmbientOcclusion: true,
		QuantumGrid:      true,
		VertexSphere:     true,
		GridDensity:      9,
		GridMinExtent:    8,
		VertexMinRadius:  4,
		VertexPointCap:   60,
	}
}

// DefaultViewState is the initial session state.
func DefaultViewState() ViewState {
	return ViewState{Camera: DefaultCamera(), Settings: DefaultSettings()}
}

// Clone returns an independent copy of the view state (safe to hand to other goroutines or tests).
func (v *ViewState) Clone() *ViewState {
	return deepcopy.MustAnything(v).(*ViewState)
}

// Handle is the set of operations a host can invoke on a running viewer.
type Handle interface {
	// Reset restores the default camera (rotation, scale 1, no offset, auto-rotate off).
	Reset()
	// Capture renders the current view into a new still image.
	Capture() (*Snapshot, error)
}
