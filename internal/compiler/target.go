package compiler

// TargetType is the output shape requested from a configuration.
type TargetType uint8

const (
	TargetApplication TargetType = iota
	TargetLibrary
)

func (t TargetType) String() string {
	switch t {
	case TargetApplication:
		return "Application-binary"
	case TargetLibrary:
		return "Library-archive"
	}
	return "unknown"
}

// Define is one conditional compilation constant.
type Define struct {
	Name  string
	Value string
}

// TargetSettings is the resolved configuration a compiler front end runs
// against. Values have tokens substituted and quotes removed.
type TargetSettings struct {
	Type       TargetType
	ConfigName string
	Output     string

	FileSpecs         []string
	IncludeClasses    []string
	IncludeSources    []string
	IncludeNamespaces []string

	SourcePath          []string
	LibraryPath         []string
	ExternalLibraryPath []string
	IncludeLibraries    []string
	Themes              []string
	Locales             []string
	Targets             []string
	Defines             []Define

	Debug                    bool
	Strict                   bool
	ExcludeNativeJSLibraries bool
	JSOutputType             string
	SWFVersion               string
}
