package compiler

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"

	"aslsp/internal/diag"
	"aslsp/internal/sdk"
)

// Reserved token names bound by callers before SetConfiguration.
const (
	TokenRoyaleLib  = "royalelib"
	TokenFlexLib    = "flexlib"
	TokenConfigName = "configname"
)

// Project is what a configuration is applied to.
type Project interface {
	Workspace() *Workspace
	// NativeLibraries names the native externs libraries (under js/libs of
	// the framework) the project's backend compiles against.
	NativeLibraries() []string
}

// Configurator collects tokens, arguments and overlay files, then resolves
// them against a project. A Configurator is single-use: setters called after
// ApplyToProject are ignored.
type Configurator struct {
	dialect Dialect
	fs      afero.Fs

	tokens        map[string]string
	args          []assignment
	excludeNative *bool
	overlays      []string

	problems   *diag.Bag
	config     *configuration
	applied    bool
	ok         bool
	generation uint64
}

// NewConfigurator creates a configurator for dialect d. Files are read
// through fs; a nil fs means the OS filesystem.
func NewConfigurator(d Dialect, fs afero.Fs) *Configurator {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Configurator{
		dialect:  d,
		fs:       fs,
		tokens:   make(map[string]string),
		problems: diag.NewBag(0),
	}
}

func (c *Configurator) Dialect() Dialect { return c.dialect }

// SetToken binds ${name} for every later value.
func (c *Configurator) SetToken(name, value string) {
	if c.applied {
		return
	}
	c.tokens[name] = value
}

// Token returns a bound token.
func (c *Configurator) Token(name string) (string, bool) {
	v, ok := c.tokens[name]
	return v, ok
}

// SetConfiguration parses command-line style arguments. Bare arguments go to
// defaultVar; fileSpecs reports whether file-specs may be set explicitly.
// Parse problems are recorded immediately.
func (c *Configurator) SetConfiguration(args []string, defaultVar string, fileSpecs bool) {
	if c.applied {
		return
	}
	cl := parseCommandLine(args, defaultVar, fileSpecs, c.dialect, diag.BagReporter{Bag: c.problems})
	for name, value := range cl.tokens {
		c.tokens[name] = value
	}
	c.args = append(c.args, cl.assignments...)
}

// SetExcludeNativeJSLibraries overrides exclude-native-js-libraries. It takes
// precedence over arguments and overlays.
func (c *Configurator) SetExcludeNativeJSLibraries(exclude bool) {
	if c.applied {
		return
	}
	c.excludeNative = &exclude
}

// AddConfiguration queues an XML overlay, read and merged at apply time
// after the arguments.
func (c *Configurator) AddConfiguration(path string) {
	if c.applied {
		return
	}
	c.overlays = append(c.overlays, path)
}

func (c *Configurator) frameworkLib() string {
	if lib, ok := c.tokens[TokenRoyaleLib]; ok && lib != "" {
		return lib
	}
	return c.tokens[TokenFlexLib]
}

// ApplyToProject resolves the configuration for p and reports whether it
// produced no errors. Applying twice returns the first result.
func (c *Configurator) ApplyToProject(p Project) bool {
	if c.applied {
		return c.ok
	}
	c.applied = true
	rep := diag.BagReporter{Bag: c.problems}

	cfg := newConfiguration()
	layout := sdk.Layout{FrameworkLib: c.frameworkLib()}
	if layout.FrameworkLib != "" {
		cfg.values[varTheme] = []string{layout.ThemePath()}
	}
	cfg.values[varExcludeNativeJS] = []string{"true"}

	for _, a := range c.args {
		cfg.apply(a, c.tokens, rep)
	}
	for _, path := range c.overlays {
		for _, a := range loadOverlay(c.fs, path, c.dialect, rep) {
			cfg.apply(a, c.tokens, rep)
		}
	}
	if c.excludeNative != nil {
		cfg.values[varExcludeNativeJS] = []string{strconv.FormatBool(*c.excludeNative)}
	}

	if !cfg.boolean(varExcludeNativeJS, true) && layout.FrameworkLib != "" {
		for _, name := range p.NativeLibraries() {
			cfg.values[varExternalLibraryPath] = append(cfg.values[varExternalLibraryPath], layout.NativeLibrary(name))
		}
	}

	for _, theme := range cfg.list(varTheme) {
		if !fileExists(c.fs, theme) {
			loc := diag.Location{Source: diag.CommandLine, Option: varTheme}
			diag.ReportError(rep, diag.CfgMissingTheme, loc, fmt.Sprintf("theme file %s does not exist", theme))
		}
	}

	if ws := p.Workspace(); ws != nil {
		gen, err := ws.bind()
		if err != nil {
			diag.ReportError(rep, diag.CfgWorkspaceClosed, diag.Location{}, err.Error())
		}
		c.generation = gen
	}

	c.config = cfg
	c.ok = !c.problems.HasErrors()
	return c.ok
}

// Generation is the workspace generation the configuration was bound at,
// zero before a successful apply.
func (c *Configurator) Generation() uint64 { return c.generation }

// Problems returns everything recorded so far. The bag is owned by the
// configurator; callers copy what they keep.
func (c *Configurator) Problems() *diag.Bag { return c.problems }

// ExternalLibraryPath is the resolved external library path, nil before
// apply.
func (c *Configurator) ExternalLibraryPath() []string {
	if c.config == nil {
		return nil
	}
	return c.config.list(varExternalLibraryPath)
}

// TargetSettings returns the settings for t, or nil when the configuration
// was not applied, failed, or lacks the inputs t needs.
func (c *Configurator) TargetSettings(t TargetType) *TargetSettings {
	if !c.applied || !c.ok || c.config == nil {
		return nil
	}
	cfg := c.config
	s := &TargetSettings{
		Type:                     t,
		ConfigName:               c.tokens[TokenConfigName],
		Output:                   cfg.str(varOutput),
		FileSpecs:                cfg.list(FileSpecsVar),
		IncludeClasses:           cfg.list(IncludeClassesVar),
		IncludeSources:           cfg.list(varIncludeSources),
		IncludeNamespaces:        cfg.list(varIncludeNamespaces),
		SourcePath:               cfg.list(varSourcePath),
		LibraryPath:              cfg.list(varLibraryPath),
		ExternalLibraryPath:      cfg.list(varExternalLibraryPath),
		IncludeLibraries:         cfg.list(varIncludeLibraries),
		Themes:                   cfg.list(varTheme),
		Locales:                  cfg.list(varLocale),
		Targets:                  cfg.list(varTargets),
		Defines:                  cfg.defines(),
		Debug:                    cfg.boolean(varDebug, false),
		Strict:                   cfg.boolean(varStrict, true),
		ExcludeNativeJSLibraries: cfg.boolean(varExcludeNativeJS, true),
		JSOutputType:             cfg.str(varJSOutputType),
		SWFVersion:               cfg.str(varSWFVersion),
	}
	switch t {
	case TargetApplication:
		// an editor workspace may be analyzed before any main file exists
		return s
	case TargetLibrary:
		if len(s.IncludeClasses) == 0 && len(s.IncludeSources) == 0 && len(s.IncludeNamespaces) == 0 {
			return nil
		}
		return s
	}
	return nil
}

func fileExists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(filepath.Clean(path))
	return err == nil
}
