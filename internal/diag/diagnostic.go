package diag

import "fmt"

// CommandLine is the Location.Source used for problems found in the merged
// option arguments rather than in a configuration file.
const CommandLine = "command line"

// Location points at the place a configuration problem came from.
type Location struct {
	Source string // config file path or CommandLine
	Line   int    // 1-based, 0 when unknown
	Option string // offending variable or argument, if any
}

func (l Location) String() string {
	src := l.Source
	if src == "" {
		src = CommandLine
	}
	if l.Line > 0 {
		return fmt.Sprintf("%s:%d", src, l.Line)
	}
	return src
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Location
}

// New builds a diagnostic value.
func New(sev Severity, code Code, primary Location, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary Location, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}
