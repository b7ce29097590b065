package diag

import (
	"fmt"
	"sort"
	"strings"
)

// FormatShortDiagnostics renders diagnostics one per line in a stable order:
//
//	<severity> <ID> <source>[:<line>] <message>
//
// Newlines inside messages are folded into spaces. Returns "" for no input.
func FormatShortDiagnostics(diags []Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	sorted := make([]Diagnostic, len(diags))
	copy(sorted, diags)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := sorted[i], sorted[j]
		if di.Primary.Source != dj.Primary.Source {
			return di.Primary.Source < dj.Primary.Source
		}
		if di.Primary.Line != dj.Primary.Line {
			return di.Primary.Line < dj.Primary.Line
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})

	lines := make([]string, 0, len(sorted))
	for _, d := range sorted {
		msg := strings.Join(strings.Fields(d.Message), " ")
		lines = append(lines, fmt.Sprintf("%s %s %s %s",
			strings.ToLower(d.Severity.String()), d.Code.ID(), d.Primary.String(), msg))
	}
	return strings.Join(lines, "\n")
}
