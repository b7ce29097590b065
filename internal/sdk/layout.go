// Package sdk classifies a framework SDK and probes the few files the
// configuration pipeline cares about. Every path is relative to the
// framework runtime-library directory (the "frameworks" folder of an SDK).
package sdk

import "path/filepath"

const (
	// RoyaleMarker exists only in Apache Royale SDKs.
	RoyaleMarker = "../royale-sdk-description.xml"
	// LegacyCompilerBinary exists in FlexJS SDKs that predate Royale.
	LegacyCompilerBinary = "../js/bin/asjsc"
	// ThemeFile is the default Spark theme stylesheet.
	ThemeFile = "themes/Spark/spark.css"
	// OverlayConfigFile is an optional editor-specific configuration file
	// merged after the primary configuration.
	OverlayConfigFile = "../ide/vscode-nextgenas/vscode-nextgenas-config.xml"
	// NativeLibsDir holds the native JS externs libraries.
	NativeLibsDir = "js/libs"
)

// Layout resolves well-known SDK paths against a framework lib directory.
type Layout struct {
	FrameworkLib string
}

func (l Layout) resolve(rel string) string {
	return filepath.Clean(filepath.Join(l.FrameworkLib, filepath.FromSlash(rel)))
}

func (l Layout) RoyaleMarkerPath() string         { return l.resolve(RoyaleMarker) }
func (l Layout) LegacyCompilerPath() string       { return l.resolve(LegacyCompilerBinary) }
func (l Layout) ThemePath() string                { return l.resolve(ThemeFile) }
func (l Layout) OverlayPath() string              { return l.resolve(OverlayConfigFile) }
func (l Layout) NativeLibrary(name string) string { return l.resolve(NativeLibsDir + "/" + name) }
