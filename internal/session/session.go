// Package session serializes resolutions against the shared compiler
// workspace. It is the one place that owns a Workspace: resolutions take the
// session lock for their whole duration, identical concurrent requests are
// coalesced, and SDK probes are cached.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/singleflight"

	"aslsp/internal/assembler"
	"aslsp/internal/backend"
	"aslsp/internal/compiler"
	"aslsp/internal/diag"
	"aslsp/internal/logger"
	"aslsp/internal/observ"
	"aslsp/internal/project"
	"aslsp/internal/sdk"
)

var (
	ErrClosed       = errors.New("session closed")
	ErrNoFramework  = errors.New("framework lib path is not configured")
	errUnexpectedSF = errors.New("unexpected coalesced result")
)

type Options struct {
	Fs afero.Fs
	// ProbeCache is the number of framework paths whose probes are cached;
	// zero disables caching.
	ProbeCache int
	Logger     logger.Logger
}

// Outcome is the result of one resolution. Failures are data: Failure is
// set and Settings is nil. An Outcome may be shared by coalesced callers and
// must be treated as read-only.
type Outcome struct {
	Description  project.Description
	FrameworkLib string
	Flavor       sdk.Flavor
	Variant      backend.Variant
	Plan         assembler.Plan
	Settings     *compiler.TargetSettings
	Problems     []diag.Diagnostic
	Failure      *assembler.Failure
	Generation   uint64
	Timings      observ.Report
}

// OK reports whether target settings were produced.
func (o *Outcome) OK() bool { return o != nil && o.Failure == nil && o.Settings != nil }

type Session struct {
	mu     sync.Mutex
	closed bool

	ws     *compiler.Workspace
	prober *sdk.Prober
	asm    *assembler.Assembler
	log    logger.Logger
	group  singleflight.Group

	// joined runs once a caller is registered with its flight; tests only.
	joined func()
}

func New(opts Options) *Session {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &Session{
		ws:     compiler.NewWorkspace(),
		prober: sdk.NewProber(fs, opts.ProbeCache),
		asm:    assembler.New(fs, log),
		log:    log,
	}
}

// Workspace exposes the shared workspace, mostly for inspection.
func (s *Session) Workspace() *compiler.Workspace { return s.ws }

// Resolve runs one resolution for desc against the SDK at frameworkLib.
// ctx only bounds this caller's wait: a resolution that has started, or that
// other callers share, runs to completion even when ctx is cancelled.
func (s *Session) Resolve(ctx context.Context, desc project.Description, frameworkLib string) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if frameworkLib == "" {
		return nil, ErrNoFramework
	}
	desc = desc.Clone()
	key := project.Combine(desc.Digest(), frameworkLib).String()
	ch := s.group.DoChan(key, func() (any, error) {
		return s.resolveLocked(desc, frameworkLib)
	})
	if s.joined != nil {
		s.joined()
	}

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}
	out, ok := res.Val.(*Outcome)
	if !ok {
		return nil, errUnexpectedSF
	}
	if res.Shared {
		s.log.Debug("resolution coalesced", "key", key[:12])
	}
	return out, nil
}

func (s *Session) resolveLocked(desc project.Description, frameworkLib string) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	timer := observ.NewTimer()
	idx := timer.Begin("probe")
	snap := s.prober.Inspect(frameworkLib)
	timer.End(idx, snap.Flavor.String())

	idx = timer.Begin("backend")
	h, variant := backend.NewHandle(s.ws, desc, snap.Flavor)
	timer.End(idx, variant.String())
	s.log.Debug("backend resolved", "backend", variant.String(), "flavor", snap.Flavor.String(), "configname", desc.ConfigName)

	out := &Outcome{
		Description:  desc,
		FrameworkLib: frameworkLib,
		Flavor:       snap.Flavor,
		Variant:      variant,
	}
	res, err := s.asm.Configure(h, desc, snap, timer)
	out.Problems = h.Problems().Snapshot()
	out.Timings = timer.Report()
	if err != nil {
		f, ok := assembler.AsFailure(err)
		if !ok {
			return nil, fmt.Errorf("configure: %w", err)
		}
		out.Failure = f
		out.Plan = f.Plan
		return out, nil
	}
	out.Plan = res.Plan
	out.Settings = res.Settings
	out.Generation = res.Configurator.Generation()
	return out, nil
}

// Invalidate drops cached probes for frameworkLib, e.g. after the SDK on
// disk changed.
func (s *Session) Invalidate(frameworkLib string) {
	s.prober.Forget(frameworkLib)
}

// Close waits for the running resolution and tears the workspace down.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.ws.Close()
}
