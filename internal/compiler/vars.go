package compiler

import "strings"

// Dialect selects which configuration variables are understood.
type Dialect uint8

const (
	// DialectJS serves projects bound to a JS-capable backend.
	DialectJS Dialect = iota
	// DialectSWF serves backend-less projects.
	DialectSWF
)

func (d Dialect) String() string {
	switch d {
	case DialectJS:
		return "js"
	case DialectSWF:
		return "swf"
	}
	return "unknown"
}

type varKind uint8

const (
	kindBool varKind = iota
	kindString
	kindList
	kindPair
)

func (k varKind) isList() bool { return k == kindList || k == kindPair }

// arity is how many following arguments "-name value..." consumes.
func (k varKind) arity() int {
	switch k {
	case kindBool:
		return 0
	case kindPair:
		return 2
	}
	return 1
}

type varSpec struct {
	name   string
	kind   varKind
	jsOnly bool
}

const (
	varSourcePath          = "compiler.source-path"
	varLibraryPath         = "compiler.library-path"
	varExternalLibraryPath = "compiler.external-library-path"
	varIncludeLibraries    = "compiler.include-libraries"
	varDefine              = "compiler.define"
	varTheme               = "compiler.theme"
	varDebug               = "compiler.debug"
	varStrict              = "compiler.strict"
	varLocale              = "compiler.locale"

	// FileSpecsVar receives bare arguments of an application configuration.
	FileSpecsVar = "file-specs"
	// IncludeClassesVar receives bare arguments of a library configuration.
	IncludeClassesVar = "include-classes"

	varIncludeSources    = "include-sources"
	varIncludeNamespaces = "include-namespaces"
	varOutput            = "output"
	varSWFVersion        = "swf-version"
	varExcludeNativeJS   = "exclude-native-js-libraries"
	varTargets           = "targets"
	varJSOutputType      = "js-output-type"
)

var varSpecs = []varSpec{
	{name: varSourcePath, kind: kindList},
	{name: varLibraryPath, kind: kindList},
	{name: varExternalLibraryPath, kind: kindList},
	{name: varIncludeLibraries, kind: kindList},
	{name: varDefine, kind: kindPair},
	{name: varTheme, kind: kindList},
	{name: varDebug, kind: kindBool},
	{name: varStrict, kind: kindBool},
	{name: varLocale, kind: kindList},
	{name: "compiler.accessible", kind: kindBool},
	{name: "compiler.optimize", kind: kindBool},
	{name: "compiler.inline", kind: kindBool},
	{name: "compiler.warnings", kind: kindBool},
	{name: "compiler.show-unused-type-selector-warnings", kind: kindBool},
	{name: "compiler.mxml.compatibility-version", kind: kindString},
	{name: "compiler.allow-subclass-overrides", kind: kindBool},
	{name: FileSpecsVar, kind: kindList},
	{name: IncludeClassesVar, kind: kindList},
	{name: varIncludeSources, kind: kindList},
	{name: varIncludeNamespaces, kind: kindList},
	{name: varOutput, kind: kindString},
	{name: varSWFVersion, kind: kindString},
	{name: "target-player", kind: kindString},
	{name: "default-frame-rate", kind: kindString},
	{name: "default-background-color", kind: kindString},
	{name: varExcludeNativeJS, kind: kindBool},
	{name: varTargets, kind: kindList, jsOnly: true},
	{name: varJSOutputType, kind: kindString, jsOnly: true},
	{name: "source-map", kind: kindBool, jsOnly: true},
	{name: "html-template", kind: kindString, jsOnly: true},
	{name: "js-library-path", kind: kindList, jsOnly: true},
	{name: "js-external-library-path", kind: kindList, jsOnly: true},
	{name: "remove-circulars", kind: kindBool, jsOnly: true},
	{name: "js-default-initializers", kind: kindBool, jsOnly: true},
}

var (
	varsByName  = make(map[string]*varSpec, len(varSpecs))
	varsByAlias = make(map[string]*varSpec, len(varSpecs))
)

func init() {
	for i := range varSpecs {
		spec := &varSpecs[i]
		varsByName[spec.name] = spec
	}
	// "compiler.x.y" may be written as "x.y" and as its last segment
	for i := range varSpecs {
		spec := &varSpecs[i]
		rest, ok := strings.CutPrefix(spec.name, "compiler.")
		if !ok {
			continue
		}
		for _, alias := range []string{rest, rest[strings.LastIndexByte(rest, '.')+1:]} {
			if _, taken := varsByName[alias]; taken {
				continue
			}
			varsByAlias[alias] = spec
		}
	}
}

type lookupStatus uint8

const (
	varFound lookupStatus = iota
	varUnknown
	varNotApplicable
)

// lookupVar resolves a command-line name (aliases allowed) for dialect d.
func lookupVar(name string, d Dialect, allowAlias bool) (*varSpec, lookupStatus) {
	spec, ok := varsByName[name]
	if !ok && allowAlias {
		spec, ok = varsByAlias[name]
	}
	if !ok {
		return nil, varUnknown
	}
	if spec.jsOnly && d != DialectJS {
		return spec, varNotApplicable
	}
	return spec, varFound
}
