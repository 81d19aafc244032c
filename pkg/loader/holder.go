package loader

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/fullytyped/internal/logging"
	"github.com/aretw0/fullytyped/pkg/schema"
)

// CompileFunc turns a loaded configuration into a validator.
type CompileFunc func(cfg any) (schema.Validator, error)

// Holder keeps the validator compiled from a schema file and recompiles it
// when the file changes. A failed reload keeps the previous validator.
type Holder struct {
	mu       sync.RWMutex
	current  schema.Validator
	path     string
	compile  CompileFunc
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
	onChange []func(schema.Validator)
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewHolder loads and compiles the schema file at path.
func NewHolder(path string, compile CompileFunc, logger *slog.Logger) (*Holder, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	h := &Holder{
		path:    absPath,
		compile: compile,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
	v, err := h.load()
	if err != nil {
		return nil, err
	}
	h.current = v
	return h, nil
}

// Get returns the current validator.
func (h *Holder) Get() schema.Validator {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Path returns the absolute path of the watched file.
func (h *Holder) Path() string { return h.path }

// OnChange registers a callback run after every successful reload.
func (h *Holder) OnChange(fn func(schema.Validator)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

// Reload recompiles the schema file. On error the previous validator stays.
func (h *Holder) Reload() error {
	v, err := h.load()
	if err != nil {
		h.logger.Error("schema reload failed, keeping previous schema", "path", h.path, "error", err)
		return err
	}

	h.mu.Lock()
	old := h.current
	h.current = v
	listeners := append(([]func(schema.Validator))(nil), h.onChange...)
	h.mu.Unlock()

	if old != nil && old.Hash() == v.Hash() {
		h.logger.Debug("schema reloaded without changes", "path", h.path, "hash", v.Hash())
		return nil
	}

	h.logger.Info("schema reloaded", "path", h.path, "hash", v.Hash())
	for _, fn := range listeners {
		fn(v)
	}
	return nil
}

// Watch starts reloading on file changes until Close is called.
func (h *Holder) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// Editors that save atomically replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(h.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}
	h.watcher = watcher

	go h.watchLoop()

	h.logger.Info("watching schema file for changes", "path", h.path)
	return nil
}

// Close stops watching.
func (h *Holder) Close() error {
	var err error
	h.stopOnce.Do(func() {
		close(h.stopCh)
		if h.watcher != nil {
			err = h.watcher.Close()
		}
	})
	return err
}

func (h *Holder) load() (schema.Validator, error) {
	cfg, err := LoadFile(h.path)
	if err != nil {
		return nil, err
	}
	v, err := h.compile(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", h.path, err)
	}
	return v, nil
}

func (h *Holder) watchLoop() {
	filename := filepath.Base(h.path)

	for {
		select {
		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				h.logger.Debug("schema file changed", "event", event.Op.String(), "file", event.Name)
				_ = h.Reload()
			}

		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error("file watcher error", "error", err)

		case <-h.stopCh:
			return
		}
	}
}
