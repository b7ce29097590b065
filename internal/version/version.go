// Package version holds build metadata. The variables are overridden at
// build time via -ldflags "-X aslsp/internal/version.Version=...".
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	nameColor    = color.New(color.Bold)
	versionColor = color.New(color.FgGreen, color.Bold)
	metaColor    = color.New(color.FgYellow)
)

// Plain returns Version without decoration.
func Plain() string {
	return Version
}

// Banner renders "aslsp <version> (<commit>, <date>)". Colors follow
// color.NoColor, which the CLI sets from the terminal state.
func Banner() string {
	var b strings.Builder
	b.WriteString(nameColor.Sprint("aslsp"))
	b.WriteByte(' ')
	b.WriteString(versionColor.Sprint(Version))
	var meta []string
	if GitCommit != "" {
		commit := GitCommit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		meta = append(meta, commit)
	}
	if BuildDate != "" {
		meta = append(meta, BuildDate)
	}
	if len(meta) > 0 {
		b.WriteString(" (")
		b.WriteString(metaColor.Sprint(strings.Join(meta, ", ")))
		b.WriteByte(')')
	}
	return b.String()
}
