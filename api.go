package ui

import (
	"github.com/Yeicor/molecule-ui/internal"
)

type (
	// Atom is an element symbol at a position, in molecule units (Ångström).
	Atom = internal.Atom
	// Bond is an inferred bond between two atom indices.
	Bond = internal.Bond
	// BondRules is the bond inference table (see DefaultBondRules).
	BondRules = internal.BondRules
	// CameraState is the camera part of the view state.
	CameraState = internal.CameraState
	// RenderSettings are the toggleable render options.
	RenderSettings = internal.RenderSettings
	// ViewState is all the state a user can change: camera and render settings.
	ViewState = internal.ViewState
	// Snapshot is a captured still image (see Snapshot.Encode and Snapshot.Save).
	Snapshot = internal.Snapshot
	// Handle is what hosts can invoke on a running viewer, local or remote.
	Handle = internal.Handle
	// Key is a host-neutral keyboard command.
	Key = internal.Key
)

// DefaultBondRules returns the built-in bond thresholds.
func DefaultBondRules() *BondRules {
	return internal.DefaultBondRules()
}

// DefaultSettings returns the render settings of a new session.
func DefaultSettings() RenderSettings {
	return internal.DefaultSettings()
}

// LoadFile reads an XYZ, MOL/SDF, PDB or molecule string (.txt) file, returning the atoms and an id
// derived from the file name.
func LoadFile(path string) ([]Atom, string, error) {
	return internal.ParseFile(path)
}

// ParseMoleculeString reads the compact "C 0 0 0; H 1.09 0 0" format.
func ParseMoleculeString(s string) ([]Atom, error) {
	return internal.ParseMoleculeString(s)
}

// Demo returns a bundled sample molecule (see DemoIDs).
func Demo(id string) ([]Atom, error) {
	atoms, _, err := internal.Demo(id)
	return atoms, err
}

// DemoIDs lists the bundled sample molecules.
func DemoIDs() []string {
	return internal.DemoIDs()
}

// Keyboard commands (see Renderer and RemoteRenderer.Key).
const (
	KeyLeft         = internal.KeyLeft
	KeyRight        = internal.KeyRight
	KeyUp           = internal.KeyUp
	KeyDown         = internal.KeyDown
	KeyZoomIn       = internal.KeyZoomIn
	KeyZoomOut      = internal.KeyZoomOut
	KeyReset        = internal.KeyReset
	KeyAutoRotate   = internal.KeyAutoRotate
	KeyQuantum      = internal.KeyQuantum
	KeyCapture      = internal.KeyCapture
	KeyLabels       = internal.KeyLabels
	KeyFPS          = internal.KeyFPS
	KeyFog          = internal.KeyFog
	KeyAO           = internal.KeyAO
	KeyGrid         = internal.KeyGrid
	KeyVertexSphere = internal.KeyVertexSphere
)
