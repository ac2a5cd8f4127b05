// Package watch provides a file-backed model source that delivers a
// fresh model whenever the file changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/felixgeelhaar/layerkit/infrastructure/logging"
)

// Errors
var (
	// ErrSourceClosed indicates the source was closed.
	ErrSourceClosed = errors.New("watch: source closed")
)

// DecodeFunc decodes raw file contents into a model.
type DecodeFunc[M any] func(data []byte) (M, error)

// FileSource reads models from a file. The first Fetch returns the
// current contents; later fetches block until the file changes, then
// return the new contents. This fits the model request protocol: a
// request for a fresh model is a wait for someone to write one.
type FileSource[M any] struct {
	path     string
	decode   DecodeFunc[M]
	debounce time.Duration

	// done is closed by Close and wakes blocked fetches. The changes
	// channel itself is never closed, so a late debounce timer firing
	// after shutdown sends into a buffered channel at worst.
	done chan struct{}

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	changes chan struct{}
	fetched bool
	closed  bool
}

// FileSourceOption configures a FileSource.
type FileSourceOption func(*fileSourceOptions)

type fileSourceOptions struct {
	debounce time.Duration
}

// WithDebounce sets the delay used to coalesce rapid file changes.
func WithDebounce(d time.Duration) FileSourceOption {
	return func(o *fileSourceOptions) {
		o.debounce = d
	}
}

// NewFileSource creates a file-backed model source.
func NewFileSource[M any](path string, decode DecodeFunc[M], opts ...FileSourceOption) (*FileSource[M], error) {
	options := fileSourceOptions{
		debounce: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(&options)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	return &FileSource[M]{
		path:     absPath,
		decode:   decode,
		debounce: options.debounce,
		done:     make(chan struct{}),
	}, nil
}

// Path returns the resolved file path.
func (s *FileSource[M]) Path() string {
	return s.path
}

// Fetch returns the model stored in the file. The first call reads
// immediately; subsequent calls block until the file changes or the
// context is cancelled.
func (s *FileSource[M]) Fetch(ctx context.Context) (M, error) {
	var zero M

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return zero, ErrSourceClosed
	}
	first := !s.fetched
	s.fetched = true
	if !first && s.watcher == nil {
		if err := s.startWatcher(); err != nil {
			s.mu.Unlock()
			return zero, err
		}
	}
	changes := s.changes
	s.mu.Unlock()

	if !first {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-s.done:
			return zero, ErrSourceClosed
		case <-changes:
		}
	}

	return s.read()
}

// read loads and decodes the current file contents.
func (s *FileSource[M]) read() (M, error) {
	var zero M

	data, err := os.ReadFile(s.path)
	if err != nil {
		return zero, fmt.Errorf("failed to read model file %s: %w", s.path, err)
	}

	model, err := s.decode(data)
	if err != nil {
		return zero, fmt.Errorf("failed to decode model file %s: %w", s.path, err)
	}
	return model, nil
}

// startWatcher begins watching the file's directory. Watching the
// directory instead of the file survives editors that replace the file
// on save. Caller holds s.mu.
func (s *FileSource[M]) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	s.watcher = watcher
	s.changes = make(chan struct{}, 1)

	go s.watchLoop(watcher, filepath.Base(s.path), s.changes)

	logging.Debug().
		Add(logging.Component("watch")).
		Add(logging.Str("path", s.path)).
		Msg("watching model file")
	return nil
}

// watchLoop lives as long as the watcher: it exits when Close closes
// the fsnotify watcher and its channels drain. The changes channel is
// left open so a debounce timer firing during shutdown cannot panic.
func (s *FileSource[M]) watchLoop(watcher *fsnotify.Watcher, name string, ch chan<- struct{}) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create {
				// Coalesce rapid changes into one signal.
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(s.debounce, func() {
					select {
					case ch <- struct{}{}:
					default:
						// Change already pending.
					}
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.Warn().
				Add(logging.Component("watch")).
				Add(logging.ErrorField(err)).
				Msg("file watcher error")
		}
	}
}

// Close stops watching and releases resources. Pending fetches fail
// with ErrSourceClosed.
func (s *FileSource[M]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	close(s.done)

	if s.watcher != nil {
		err := s.watcher.Close()
		s.watcher = nil
		return err
	}
	return nil
}
