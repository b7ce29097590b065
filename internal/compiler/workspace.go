package compiler

import (
	"errors"
	"sync"
)

// ErrWorkspaceClosed is returned when a project binds to a closed workspace.
var ErrWorkspaceClosed = errors.New("compiler workspace closed")

// Workspace is the shared compiler workspace. It is created once per process
// and closed at shutdown.
type Workspace struct {
	mu         sync.Mutex
	generation uint64
	closed     bool
}

// NewWorkspace creates an open workspace.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// bind records that a configuration was applied and returns its generation.
func (w *Workspace) bind() (uint64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return 0, ErrWorkspaceClosed
	}
	w.generation++
	return w.generation, nil
}

// Generation counts configurations applied against the workspace.
func (w *Workspace) Generation() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.generation
}

// Closed reports whether Close was called.
func (w *Workspace) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// Close tears the workspace down. Closing twice is a no-op.
func (w *Workspace) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}
