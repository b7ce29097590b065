package backend

import (
	"aslsp/internal/compiler"
	"aslsp/internal/diag"
	"aslsp/internal/project"
	"aslsp/internal/sdk"
)

// Handle is one resolution's view of the shared compiler workspace. A handle
// is never reused: every resolution creates a new one.
type Handle struct {
	workspace *compiler.Workspace
	variant   Variant
	problems  *diag.Bag
	settings  *compiler.TargetSettings
}

// NewHandle resolves the backend for desc and binds a fresh handle to ws.
// It never fails; the fallback handle carries VariantNone.
func NewHandle(ws *compiler.Workspace, desc project.Description, flavor sdk.Flavor) (*Handle, Variant) {
	v := Resolve(desc, flavor)
	return &Handle{
		workspace: ws,
		variant:   v,
		problems:  diag.NewBag(0),
	}, v
}

func (h *Handle) Workspace() *compiler.Workspace { return h.workspace }
func (h *Handle) Variant() Variant               { return h.variant }

// NativeLibraries implements compiler.Project.
func (h *Handle) NativeLibraries() []string { return h.variant.NativeLibraries() }

// Problems is the append-only problems collection of this resolution.
func (h *Handle) Problems() *diag.Bag { return h.problems }

// AttachSettings records the settings produced for the handle.
func (h *Handle) AttachSettings(s *compiler.TargetSettings) { h.settings = s }

// Settings returns the attached settings, nil until configuration succeeded.
func (h *Handle) Settings() *compiler.TargetSettings { return h.settings }

var _ compiler.Project = (*Handle)(nil)
