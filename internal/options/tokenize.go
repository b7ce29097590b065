// Package options merges the typed and free-text option sources of a project
// into the argument list handed to the compiler configurator.
package options

import "strings"

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Tokenize splits free-text options the way a shell would split words,
// without evaluating anything. Starting at a non-whitespace character, a
// token is the first of:
//
//   - the run of non-whitespace characters up to the last single quote in
//     that run which has a closing single quote somewhere after it, followed
//     by the quoted span up to that closing quote (whitespace included);
//   - the same with double quotes;
//   - otherwise the bare run of non-whitespace characters.
//
// Quotes are kept, so every token is a verbatim slice of raw. Tokenize never
// fails.
func Tokenize(raw string) []string {
	var tokens []string
	for i := 0; i < len(raw); {
		if isSpace(raw[i]) {
			i++
			continue
		}
		end := i
		for end < len(raw) && !isSpace(raw[end]) {
			end++
		}
		stop := quotedEnd(raw, i, end, '\'')
		if stop < 0 {
			stop = quotedEnd(raw, i, end, '"')
		}
		if stop < 0 {
			stop = end
		}
		tokens = append(tokens, raw[i:stop])
		i = stop
	}
	return tokens
}

// quotedEnd returns the end of the quoted token that starts at start and
// whose opening quote lies in raw[start:runEnd], or -1 if no quote in the run
// is closed. Later opening quotes win, and the span closes at the next quote.
func quotedEnd(raw string, start, runEnd int, quote byte) int {
	next := -1
	if k := strings.IndexByte(raw[runEnd:], quote); k >= 0 {
		next = runEnd + k
	}
	for q := runEnd - 1; q >= start; q-- {
		if raw[q] != quote {
			continue
		}
		if next >= 0 {
			return next + 1
		}
		next = q
	}
	return -1
}
