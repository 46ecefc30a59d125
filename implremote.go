package ui

import (
	"context"
	"github.com/Yeicor/molecule-ui/internal"
	"github.com/cenkalti/backoff/v5"
	"log"
	"net"
	"net/rpc"
	"time"
)

// RemoteFrame is a frame rendered by a remote viewer.
type RemoteFrame = internal.RemoteRenderResults

// RemoteRenderer controls a viewer served by Renderer.ServeRemote (using Go's net/rpc).
type RemoteRenderer struct {
	cl *rpc.Client
}

// DialRemote connects to a remote viewer, retrying with exponential backoff until ctx is done
// (the server may still be starting).
func DialRemote(ctx context.Context, network, address string) (*RemoteRenderer, error) {
	var dialer net.Dialer
	conn, err := backoff.Retry(ctx, func() (net.Conn, error) {
		return dialer.DialContext(ctx, network, address)
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxElapsedTime(30*time.Second))
	if err != nil {
		return nil, err
	}
	return NewRemoteRenderer(rpc.NewClient(conn)), nil
}

// NewRemoteRenderer see RemoteRenderer
func NewRemoteRenderer(client *rpc.Client) *RemoteRenderer {
	return &RemoteRenderer{cl: client}
}

// SetAtoms replaces the remote molecule and returns the amount of inferred bonds.
func (d *RemoteRenderer) SetAtoms(atoms []Atom, id string) (int, error) {
	var bonds int
	err := d.cl.Call("RendererService.SetAtoms", internal.RemoteAtoms{Atoms: atoms, ID: id}, &bonds)
	return bonds, err
}

// Render draws a frame of the given size. A non-nil view replaces the remote view state first.
func (d *RemoteRenderer) Render(width, height int, view *ViewState, now time.Time) (*RemoteFrame, error) {
	var out RemoteFrame
	err := d.cl.Call("RendererService.Render", internal.RemoteRenderArgs{Width: width, Height: height, View: view, Now: now}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Key sends a keyboard command and returns whether it was handled.
func (d *RemoteRenderer) Key(k Key) (bool, error) {
	var handled bool
	err := d.cl.Call("RendererService.Key", k, &handled)
	return handled, err
}

// Reset restores the default remote camera.
func (d *RemoteRenderer) Reset() {
	var out int
	err := d.cl.Call("RendererService.Reset", 0, &out)
	if err != nil {
		log.Println("[MolRenderer] Error on remote call (RendererService.Reset):", err)
	}
}

// Capture renders a still image remotely.
func (d *RemoteRenderer) Capture() (*Snapshot, error) {
	var out Snapshot
	err := d.cl.Call("RendererService.Capture", 0, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Shutdown stops the remote server, waiting at most timeout for it to accept the request.
func (d *RemoteRenderer) Shutdown(timeout time.Duration) error {
	var out int
	return d.cl.Call("RendererService.Shutdown", timeout, &out)
}

// Close closes the connection.
func (d *RemoteRenderer) Close() error {
	return d.cl.Close()
}

var _ Handle = (*RemoteRenderer)(nil)
