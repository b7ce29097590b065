package assembler

import (
	"github.com/spf13/afero"

	"aslsp/internal/backend"
	"aslsp/internal/compiler"
	"aslsp/internal/diag"
	"aslsp/internal/logger"
	"aslsp/internal/observ"
	"aslsp/internal/project"
	"aslsp/internal/sdk"
)

// Result is a successful configuration.
type Result struct {
	Handle       *backend.Handle
	Configurator *compiler.Configurator
	Plan         Plan
	Settings     *compiler.TargetSettings
	// Problems are non-fatal problems, usually warnings.
	Problems []diag.Diagnostic
}

// Assembler runs plans. The zero value is not usable; use New.
type Assembler struct {
	fs  afero.Fs
	log logger.Logger
}

// New creates an assembler reading overlays and themes through fs.
func New(fs afero.Fs, log logger.Logger) *Assembler {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Assembler{fs: fs, log: log}
}

// Configure applies desc to h. Every problem is appended to h.Problems()
// whether or not the configuration succeeds. On failure the error is a
// *Failure and no settings are attached.
func (a *Assembler) Configure(h *backend.Handle, desc project.Description, snap sdk.Snapshot, timer *observ.Timer) (*Result, error) {
	idx := timer.Begin("plan")
	plan := BuildPlan(desc, h.Variant(), snap)
	timer.End(idx, plan.Dialect.String())

	log := a.log.With("configname", plan.ConfigName, "backend", h.Variant().String())
	log.Debug("configuration plan", "options", len(plan.Options), "target", plan.TargetType.String(), "overlay", plan.Overlay != "")

	cfg := compiler.NewConfigurator(plan.Dialect, a.fs)
	cfg.SetToken(plan.PathToken, plan.FrameworkLib)
	cfg.SetToken(compiler.TokenConfigName, plan.ConfigName)
	cfg.SetConfiguration(plan.Options, plan.DefaultVar, plan.FileSpecs)
	// must precede apply, which computes the external library path
	cfg.SetExcludeNativeJSLibraries(plan.ExcludeNativeJS)
	if plan.Overlay != "" {
		cfg.AddConfiguration(plan.Overlay)
	}

	idx = timer.Begin("apply")
	ok := cfg.ApplyToProject(h)
	h.Problems().Merge(cfg.Problems())
	timer.End(idx, "")
	if !ok {
		f := &Failure{Kind: ErrApplyFailed, ConfigName: plan.ConfigName, Plan: plan, Problems: h.Problems().Snapshot()}
		log.Debug("configuration rejected", "problems", len(f.Problems))
		return nil, f
	}

	idx = timer.Begin("settings")
	settings := cfg.TargetSettings(plan.TargetType)
	timer.End(idx, plan.TargetType.String())
	if settings == nil {
		f := &Failure{Kind: ErrNoTargetSettings, ConfigName: plan.ConfigName, Plan: plan}
		h.Problems().Add(diag.NewError(diag.TgtNoSettings, diag.Location{Source: diag.CommandLine}, f.Error()))
		f.Problems = h.Problems().Snapshot()
		log.Error(f.Error())
		return nil, f
	}

	h.AttachSettings(settings)
	log.Debug("configuration applied", "problems", h.Problems().Len(), "warnings", h.Problems().HasWarnings())
	return &Result{
		Handle:       h,
		Configurator: cfg,
		Plan:         plan,
		Settings:     settings,
		Problems:     h.Problems().Snapshot(),
	}, nil
}
