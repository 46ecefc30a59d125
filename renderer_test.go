package ui

import (
	"context"
	"errors"
	"image"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRendererRunHeadless(t *testing.T) {
	atoms, err := Demo("caffeine")
	if err != nil {
		t.Fatal(err)
	}
	r := NewRenderer(atoms, "caffeine")
	refresh := make(chan time.Time, 3)
	start := time.Now()
	for i := 0; i < 3; i++ {
		refresh <- start.Add(time.Duration(i) * 100 * time.Millisecond)
	}
	close(refresh)
	frames := 0
	err = r.RunHeadless(context.Background(), 120, 80, refresh, func(img *image.RGBA) error {
		if img.Bounds() != image.Rect(0, 0, 120, 80) {
			t.Errorf("unexpected frame bounds %v", img.Bounds())
		}
		frames++
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if frames != 3 {
		t.Fatalf("expected 3 frames, got %d", frames)
	}
	snap, err := r.Capture()
	if err != nil {
		t.Fatal(err)
	}
	if snap.Image.Bounds() != image.Rect(0, 0, 120, 80) {
		t.Fatalf("expected the capture to match the headless size, got %v", snap.Image.Bounds())
	}
}

func TestRendererRunHeadlessFrameError(t *testing.T) {
	r := NewRenderer(nil, "empty")
	refresh := make(chan time.Time, 1)
	refresh <- time.Now()
	stop := errors.New("stop")
	err := r.RunHeadless(context.Background(), 10, 10, refresh, func(*image.RGBA) error {
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("expected the frame error, got %v", err)
	}
}

func TestRendererOptions(t *testing.T) {
	s := DefaultSettings()
	s.ShowLabels = true
	r := NewRenderer(nil, "opts", OptSettings(s), OptCamera(CameraState{Scale: 2}))
	view := r.View()
	if !view.Settings.ShowLabels || view.Camera.Scale != 2 {
		t.Fatalf("options not applied: %+v", view)
	}
	view.Camera.Scale = 3
	r.RestoreView(view)
	r.Reset()
	if got := r.View().Camera.Scale; got != 1 {
		t.Fatalf("expected reset to restore the default scale, got %f", got)
	}
	if !r.View().Settings.ShowLabels {
		t.Fatal("reset must keep the render settings")
	}
}

func TestReloadMolecule(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "water.txt")
	if err := os.WriteFile(path, []byte("O 0 0 0.1173; H 0 0.7572 -0.4692; H 0 -0.7572 -0.4692"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := reloadMolecule(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.id != "water" || len(m.atoms) != 3 {
		t.Fatalf("unexpected reload result %+v", m)
	}
	v3000 := filepath.Join(dir, "v3000.mol")
	if err = os.WriteFile(v3000, []byte("v3000\n\n\n  0  0  0     0  0            999 V3000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	start := time.Now()
	if _, err = reloadMolecule(v3000); err == nil {
		t.Fatal("expected unsupported formats to fail")
	}
	if time.Since(start) > time.Second {
		t.Fatal("unsupported formats must not be retried")
	}
}

func TestRemoteRenderer(t *testing.T) {
	atoms, err := Demo("urea")
	if err != nil {
		t.Fatal(err)
	}
	r := NewRenderer(atoms, "urea")
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	served := make(chan error, 1)
	go func() {
		served <- r.ServeRemote(listener)
	}()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	remote, err := DialRemote(ctx, "tcp", listener.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = remote.Close()
	}()
	bonds, err := remote.SetAtoms(atoms, "urea")
	if err != nil || bonds != 7 {
		t.Fatalf("expected 7 bonds, got %d (%v)", bonds, err)
	}
	frame, err := remote.Render(40, 30, nil, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if frame.Image.Bounds() != image.Rect(0, 0, 40, 30) {
		t.Fatalf("unexpected remote frame bounds %v", frame.Image.Bounds())
	}
	if handled, err := remote.Key(KeyGrid); err != nil || !handled {
		t.Fatalf("expected the key to be handled (%v)", err)
	}
	if r.View().Settings.QuantumGrid {
		t.Fatal("expected the remote key to toggle the local viewer")
	}
	if err = remote.Shutdown(time.Second); err != nil {
		t.Fatal(err)
	}
	select {
	case err = <-served:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("the server did not stop")
	}
}

func TestRendererEmptyScreen(t *testing.T) {
	r := NewRenderer(nil, "minimized")
	for _, size := range [][2]int{{0, 0}, {0, 10}, {10, 0}, {-1, 5}} {
		if r.resizeFrame(size[0], size[1]) {
			t.Fatalf("expected nothing to be drawn on a %dx%d screen", size[0], size[1])
		}
	}
	if r.frame != nil || r.frameImg != nil {
		t.Fatal("no frame buffers must be allocated for an empty screen")
	}
}
