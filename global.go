package ephem

import (
	"fmt"
	"sync"
)

// A process-wide engine slot for callers that want one shared instance
// without threading it everywhere. The slot is one-shot: it initializes
// once and lives for the process. Nothing in the library requires it; the
// engine value stays movable into caller-chosen containers.
var (
	defaultMu     sync.Mutex
	defaultEngine *Engine
)

// InitDefault constructs the process-wide engine from cfg. It fails if the
// slot is already initialized.
func InitDefault(cfg Config) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultEngine != nil {
		return fmt.Errorf("%w: default engine already initialized", ErrInvalidConfig)
	}
	e, err := New(cfg)
	if err != nil {
		return err
	}
	defaultEngine = e
	return nil
}

// Default returns the process-wide engine, or an error when InitDefault has
// not run.
func Default() (*Engine, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultEngine == nil {
		return nil, fmt.Errorf("%w: default engine not initialized", ErrInvalidConfig)
	}
	return defaultEngine, nil
}
