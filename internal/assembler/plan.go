// Package assembler turns a project description into target settings for a
// resolved project handle.
//
// BuildPlan is a pure function of the description, the backend variant and
// the SDK snapshot. Configure executes a plan against the shared workspace;
// callers must hold exclusive access to it.
package assembler

import (
	"aslsp/internal/backend"
	"aslsp/internal/compiler"
	"aslsp/internal/options"
	"aslsp/internal/project"
	"aslsp/internal/sdk"
)

// Plan is everything Configure feeds into a Configurator, decided up front.
type Plan struct {
	Dialect      compiler.Dialect
	PathToken    string // compiler.TokenRoyaleLib or compiler.TokenFlexLib
	FrameworkLib string
	ConfigName   string

	// Options is the merged argument list handed to the configurator.
	Options []string
	// DefaultVar receives bare arguments.
	DefaultVar string
	// FileSpecs is false for libraries, whose files are never compiled as
	// file specs.
	FileSpecs bool

	ExcludeNativeJS bool
	// Overlay is the supplemental configuration file, empty when absent.
	Overlay string

	TargetType compiler.TargetType
}

// BuildPlan derives a plan:
//
//  1. dialect and tokens from the variant and SDK flavor
//  2. compiler options followed by the tokenized additional options
//  3. inline flags removed
//  4. theme cleared when the SDK has no theme file
//  5. files appended for applications, include-classes for libraries
//  6. native JS libraries not excluded
//  7. overlay when the file exists
//
// plus the target type used after apply.
func BuildPlan(desc project.Description, variant backend.Variant, snap sdk.Snapshot) Plan {
	p := Plan{
		Dialect:      compiler.DialectSWF,
		PathToken:    compiler.TokenFlexLib,
		FrameworkLib: snap.FrameworkLib,
		ConfigName:   desc.ConfigName,
		Overlay:      snap.OverlayPath,

		ExcludeNativeJS: false,
	}
	if variant.JSCapable() {
		p.Dialect = compiler.DialectJS
	}
	if snap.Flavor == sdk.FlavorRoyale {
		p.PathToken = compiler.TokenRoyaleLib
	}

	p.Options = options.Merge(desc.CompilerOptions, desc.AdditionalOptions, snap.HasTheme)
	switch desc.Kind {
	case project.KindLibrary:
		p.DefaultVar = compiler.IncludeClassesVar
		p.TargetType = compiler.TargetLibrary
	default:
		p.Options = options.AppendFiles(p.Options, desc.Files)
		p.DefaultVar = compiler.FileSpecsVar
		p.FileSpecs = true
		p.TargetType = compiler.TargetApplication
	}
	return p
}
