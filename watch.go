package ui

import (
	"context"
	"errors"
	"github.com/Yeicor/molecule-ui/internal"
	"github.com/cenkalti/backoff/v4"
	"github.com/fsnotify/fsnotify"
	"log"
	"path/filepath"
	"time"
)

const reloadRetries = 5

// startWatching reloads the watched molecule file (if configured) until ctx is done.
func (r *Renderer) startWatching(ctx context.Context) {
	if r.watchFile == "" {
		return
	}
	go func() {
		err := r.watch(ctx, r.watchFile)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Println("[MolRenderer] File watcher stopped:", err)
		}
	}()
}

// watch sends a freshly parsed molecule on r.reloads after every change to path.
func (r *Renderer) watch(ctx context.Context, path string) error {
	path = filepath.Clean(path)
	watcher, err := newFsWatcher(filepath.Dir(path))
	if err != nil {
		return err
	}
	defer func(watcher *fsnotify.Watcher) {
		_ = watcher.Close()
	}(watcher)
	log.Println("[MolRenderer] Watching", path, "for changes")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Println("[MolRenderer] File watcher error:", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			m, err := reloadMolecule(path)
			if err != nil {
				log.Println("[MolRenderer] Reload failed:", err)
				continue
			}
			select {
			case r.reloads <- m:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// reloadMolecule parses path, retrying while the file may still be half written.
func reloadMolecule(path string) (loadedMolecule, error) {
	var m loadedMolecule
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	err := backoff.Retry(func() error {
		atoms, id, err := internal.ParseFile(path)
		if errors.Is(err, internal.ErrUnsupportedFormat) {
			return backoff.Permanent(err)
		}
		if err != nil {
			return err
		}
		m = loadedMolecule{atoms: atoms, id: id}
		return nil
	}, backoff.WithMaxRetries(b, reloadRetries))
	return m, err
}
