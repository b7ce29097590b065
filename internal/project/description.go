package project

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects how the project output is shaped.
type Kind uint8

const (
	KindApplication Kind = iota
	KindLibrary
)

func (k Kind) String() string {
	switch k {
	case KindApplication:
		return "app"
	case KindLibrary:
		return "lib"
	}
	return "unknown"
}

// ErrUnknownKind is returned by ParseKind for unsupported project types.
var ErrUnknownKind = errors.New("unknown project type")

// ParseKind accepts "app"/"application" and "lib"/"library". Empty means app.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "app", "application":
		return KindApplication, nil
	case "lib", "library":
		return KindLibrary, nil
	}
	return KindApplication, fmt.Errorf("%w %q (expected app|lib)", ErrUnknownKind, s)
}

// DefaultConfigName is used when a manifest does not name a config.
const DefaultConfigName = "flex"

// Description is the editor-facing project description. It is treated as
// immutable for the duration of one resolution.
type Description struct {
	ConfigName        string
	Kind              Kind
	Targets           []string
	CompilerOptions   []string // nil when absent
	AdditionalOptions string   // shell-like free text, "" when absent
	Files             []string // used only for KindApplication
}

// FirstTarget returns the first configured target, if any.
func (d Description) FirstTarget() (string, bool) {
	if len(d.Targets) == 0 {
		return "", false
	}
	return d.Targets[0], true
}

// Clone returns a deep copy so callers can hand out descriptions safely.
func (d Description) Clone() Description {
	out := d
	out.Targets = cloneStrings(d.Targets)
	out.CompilerOptions = cloneStrings(d.CompilerOptions)
	out.Files = cloneStrings(d.Files)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
