package internal

import (
	"github.com/subchen/go-trylock/v2"
	"image"
	"math/rand"
	"net"
	"net/rpc"
	"os"
	"strings"
	"testing"
	"time"
)

func newTestRemote(t *testing.T, done chan os.Signal) *rpc.Client {
	t.Helper()
	engine := NewEngine(EngineConfig{MoleculeID: "remote", Rand: rand.New(rand.NewSource(1)),
		Now: func() time.Time { return testNow }})
	server := NewRendererService(engine, trylock.New(), done)
	serverConn, clientConn := net.Pipe()
	go server.ServeConn(serverConn)
	client := rpc.NewClient(clientConn)
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestRendererServiceRender(t *testing.T) {
	client := newTestRemote(t, make(chan os.Signal, 1))

	atoms, _, err := Demo("urea")
	if err != nil {
		t.Fatal(err)
	}
	var bonds int
	if err = client.Call("RendererService.SetAtoms", RemoteAtoms{Atoms: atoms, ID: "urea"}, &bonds); err != nil {
		t.Fatal(err)
	}
	if bonds != 7 {
		t.Fatalf("expected 7 bonds, got %d", bonds)
	}

	var handled bool
	if err = client.Call("RendererService.Key", KeyLabels, &handled); err != nil || !handled {
		t.Fatalf("expected the key to be handled (%v)", err)
	}

	var frame RemoteRenderResults
	if err = client.Call("RendererService.Render", RemoteRenderArgs{Width: 64, Height: 48, Now: testNow}, &frame); err != nil {
		t.Fatal(err)
	}
	if frame.Image == nil || frame.Image.Bounds() != image.Rect(0, 0, 64, 48) {
		t.Fatalf("unexpected frame image %v", frame.Image)
	}
	if frame.View == nil || !frame.View.Settings.ShowLabels {
		t.Fatal("expected the returned view to include the toggled labels")
	}

	view := frame.View
	view.Camera.Scale = 2
	if err = client.Call("RendererService.Render", RemoteRenderArgs{Width: 32, Height: 32, View: view, Now: testNow}, &frame); err != nil {
		t.Fatal(err)
	}
	if frame.View.Camera.Scale != 2 {
		t.Fatalf("expected the sent view to be applied, got scale %f", frame.View.Camera.Scale)
	}

	var out int
	if err = client.Call("RendererService.Reset", 0, &out); err != nil {
		t.Fatal(err)
	}
	var snap Snapshot
	if err = client.Call("RendererService.Capture", 0, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Filename != "urea_20240305-140709.png" || snap.Image.Bounds() != image.Rect(0, 0, 32, 32) {
		t.Fatalf("unexpected snapshot %q %v", snap.Filename, snap.Image.Bounds())
	}
}

func TestRendererServiceBadSize(t *testing.T) {
	client := newTestRemote(t, make(chan os.Signal, 1))
	var frame RemoteRenderResults
	err := client.Call("RendererService.Render", RemoteRenderArgs{Width: 0, Height: 10}, &frame)
	if err == nil || !strings.Contains(err.Error(), errBadSize.Error()) {
		t.Fatalf("expected %v, got %v", errBadSize, err)
	}
}

func TestRendererServiceShutdown(t *testing.T) {
	done := make(chan os.Signal, 1)
	client := newTestRemote(t, done)
	var out int
	if err := client.Call("RendererService.Shutdown", time.Second, &out); err != nil {
		t.Fatal(err)
	}
	select {
	case sig := <-done:
		if sig != os.Kill {
			t.Fatalf("expected os.Kill, got %v", sig)
		}
	default:
		t.Fatal("expected a shutdown signal")
	}
	// Nobody is listening anymore
	done <- os.Interrupt
	if err := client.Call("RendererService.Shutdown", 10*time.Millisecond, &out); err == nil {
		t.Fatal("expected a shutdown timeout")
	}
}
