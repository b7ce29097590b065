package assembler

import (
	"errors"
	"fmt"

	"aslsp/internal/diag"
)

var (
	// ErrApplyFailed means the configuration had errors.
	ErrApplyFailed = errors.New("configuration could not be applied")
	// ErrNoTargetSettings means apply succeeded but no settings exist for the
	// target type.
	ErrNoTargetSettings = errors.New("target settings unavailable")
)

// Failure is a terminal resolution failure. Problems holds every problem
// collected up to the failure.
type Failure struct {
	Kind       error
	ConfigName string
	Plan       Plan
	Problems   []diag.Diagnostic
}

func (f *Failure) Error() string {
	if errors.Is(f.Kind, ErrNoTargetSettings) {
		return fmt.Sprintf("Failed to get compile settings for +configname=%s.", f.ConfigName)
	}
	return fmt.Sprintf("Failed to apply configuration for +configname=%s: %d problem(s).", f.ConfigName, len(f.Problems))
}

func (f *Failure) Unwrap() error { return f.Kind }

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
