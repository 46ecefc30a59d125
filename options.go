package ui

import (
	"math/rand"
)

// Option configures a Renderer (see NewRenderer).
type Option func(r *Renderer)

// OptTitle sets the window title.
func OptTitle(title string) Option {
	return func(r *Renderer) {
		r.title = title
	}
}

// OptCaptureDir sets where the capture key writes its PNG snapshots (default ".").
func OptCaptureDir(dir string) Option {
	return func(r *Renderer) {
		r.captureDir = dir
	}
}

// OptSettings overrides the initial render settings.
func OptSettings(s RenderSettings) Option {
	return func(r *Renderer) {
		r.view.Settings = s
	}
}

// OptCamera overrides the initial camera.
func OptCamera(c CameraState) Option {
	return func(r *Renderer) {
		r.view.Camera = c
	}
}

// OptBondRules replaces the bond inference table.
func OptBondRules(rules *BondRules) Option {
	return func(r *Renderer) {
		r.cfg.Rules = rules
	}
}

// OptRandSource fixes the randomness of the decorative geometry (e.g. for reproducible captures).
func OptRandSource(src rand.Source) Option {
	return func(r *Renderer) {
		r.cfg.Rand = rand.New(src)
	}
}

// OptWatchFile reloads the molecule from path whenever it changes on disk.
func OptWatchFile(path string) Option {
	return func(r *Renderer) {
		r.watchFile = path
	}
}

// OptTextInputFocus suppresses the keyboard shortcuts while focused returns true.
func OptTextInputFocus(focused func() bool) Option {
	return func(r *Renderer) {
		r.textFocus = focused
	}
}

// OptTPS sets the input and auto-rotation update rate of the desktop host.
func OptTPS(tps int) Option {
	return func(r *Renderer) {
		r.tps = tps
	}
}
