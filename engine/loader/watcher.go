package loader

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// watcher is the implementation of the Watcher interface.
type watcher struct {
	fs     *fsnotify.Watcher
	done   chan struct{}
	closed sync.Once
}

// Watcher reports changes to a single file until closed.
type Watcher interface {
	// Close stops watching and waits for the event goroutine to exit.
	//
	// Returns:
	//   - error: error from the underlying watcher
	Close() error
}

var _ Watcher = &watcher{}

// WatchFile calls onChange whenever path is written or re-created.
// The parent directory is watched so editors that replace the file are still seen.
// onChange runs on the watcher goroutine and must not touch render-thread state;
// Pipeline.RequestReload is the intended callback.
//
// Parameters:
//   - path: the file to watch
//   - onChange: called once per matching event
//   - logger: receives watcher errors
//
// Returns:
//   - Watcher: handle used to stop watching
//   - error: error if the watcher cannot be created or the directory cannot be watched
func WatchFile(path string, onChange func(), logger zerolog.Logger) (Watcher, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(target)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	w := &watcher{fs: fw, done: make(chan struct{})}
	go func() {
		defer close(w.done)
		for {
			select {
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("model file event")
					onChange()
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				logger.Warn().Err(err).Msg("model watcher error")
			}
		}
	}()

	logger.Info().Str("path", target).Msg("watching model file")
	return w, nil
}

func (w *watcher) Close() error {
	var err error
	w.closed.Do(func() {
		err = w.fs.Close()
		<-w.done
	})
	return err
}
