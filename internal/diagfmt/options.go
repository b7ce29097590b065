package diagfmt

// PathMode specifies how source paths are displayed.
type PathMode uint8

const (
	// PathModeAuto uses a relative path under BaseDir and the source as given otherwise.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	BaseDir  string
	Max      int // 0 prints all
	Indent   string
}
