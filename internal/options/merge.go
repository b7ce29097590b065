package options

import "slices"

// ThemeDisableFlag clears the theme setting so a missing default theme file
// does not fail configuration.
const ThemeDisableFlag = "-theme="

// inlineFlags trigger a compiler defect when inlining runs during
// analysis-only use; they are dropped wherever they appear.
var inlineFlags = [...]string{"-inline", "--inline", "-inline=true", "--inline=true"}

// IsInlineFlag reports whether opt is one of the removed inline flags.
// Matching is exact and case-sensitive.
func IsInlineFlag(opt string) bool {
	for _, f := range inlineFlags {
		if opt == f {
			return true
		}
	}
	return false
}

// Combine copies compilerOptions and appends the tokens of additional.
func Combine(compilerOptions []string, additional string) []string {
	tokens := Tokenize(additional)
	out := make([]string, 0, len(compilerOptions)+len(tokens))
	out = append(out, compilerOptions...)
	return append(out, tokens...)
}

// RemoveInline drops every inline flag, keeping the order of the rest.
func RemoveInline(opts []string) []string {
	return slices.DeleteFunc(opts, IsInlineFlag)
}

// PatchTheme appends ThemeDisableFlag when the SDK has no theme file and the
// flag is not already there.
func PatchTheme(opts []string, hasTheme bool) []string {
	if hasTheme || slices.Contains(opts, ThemeDisableFlag) {
		return opts
	}
	return append(opts, ThemeDisableFlag)
}

// AppendFiles appends files after every other option, in order.
func AppendFiles(opts, files []string) []string {
	return append(opts, files...)
}

// Merge runs the merge, inline removal and theme patch in that order. The
// result never aliases compilerOptions.
func Merge(compilerOptions []string, additional string, hasTheme bool) []string {
	merged := Combine(compilerOptions, additional)
	merged = RemoveInline(merged)
	return PatchTheme(merged, hasTheme)
}
