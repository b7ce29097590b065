package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"aslsp/internal/diag"
)

type opKind uint8

const (
	opSet opKind = iota
	opAppend
)

// assignment is one buffered change to a configuration variable, in the
// order it was given.
type assignment struct {
	spec   *varSpec
	op     opKind
	values []string
	loc    diag.Location
}

// configuration holds variable values after token substitution.
type configuration struct {
	values map[string][]string
}

func newConfiguration() *configuration {
	return &configuration{values: make(map[string][]string)}
}

func (c *configuration) list(name string) []string {
	v := c.values[name]
	if len(v) == 0 {
		return nil
	}
	out := make([]string, len(v))
	copy(out, v)
	return out
}

func (c *configuration) str(name string) string {
	v := c.values[name]
	if len(v) == 0 {
		return ""
	}
	return v[len(v)-1]
}

func (c *configuration) boolean(name string, fallback bool) bool {
	v := c.values[name]
	if len(v) == 0 {
		return fallback
	}
	b, err := strconv.ParseBool(v[len(v)-1])
	if err != nil {
		return fallback
	}
	return b
}

func (c *configuration) defines() []Define {
	pairs := c.values[varDefine]
	if len(pairs) == 0 {
		return nil
	}
	out := make([]Define, 0, len(pairs))
	for _, p := range pairs {
		name, value, _ := strings.Cut(p, ",")
		out = append(out, Define{Name: name, Value: value})
	}
	return out
}

// apply substitutes tokens in a and stores the result.
func (c *configuration) apply(a assignment, tokens map[string]string, rep diag.Reporter) {
	values := make([]string, 0, len(a.values))
	for _, raw := range a.values {
		v := substituteTokens(raw, tokens, a.loc, rep)
		values = append(values, unquote(v))
	}

	switch a.spec.kind {
	case kindBool:
		if len(values) != 1 {
			diag.ReportError(rep, diag.CfgMissingValue, a.loc, fmt.Sprintf("'%s' expects one value", a.spec.name))
			return
		}
		if _, err := strconv.ParseBool(values[0]); err != nil {
			diag.ReportError(rep, diag.CfgBadValue, a.loc, fmt.Sprintf("'%s' expects true or false, got %q", a.spec.name, values[0]))
			return
		}
		c.values[a.spec.name] = values
	case kindString:
		if len(values) == 0 {
			delete(c.values, a.spec.name)
			return
		}
		c.values[a.spec.name] = values[len(values)-1:]
	case kindList, kindPair:
		values = dropEmpty(values)
		if a.spec.kind == kindPair {
			for _, v := range values {
				if name, _, ok := strings.Cut(v, ","); !ok || name == "" {
					diag.ReportError(rep, diag.CfgBadValue, a.loc, fmt.Sprintf("'%s' expects NAME,VALUE, got %q", a.spec.name, v))
					return
				}
			}
		}
		if a.op == opAppend {
			c.values[a.spec.name] = append(c.values[a.spec.name], values...)
			return
		}
		c.values[a.spec.name] = values
	}
}

func dropEmpty(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// substituteTokens expands ${name} references. Undefined tokens are left in
// place and reported as warnings.
func substituteTokens(s string, tokens map[string]string, loc diag.Location, rep diag.Reporter) string {
	if !strings.Contains(s, "${") {
		return s
	}
	var b strings.Builder
	rest := s
	for {
		open := strings.Index(rest, "${")
		if open < 0 {
			b.WriteString(rest)
			break
		}
		closeIdx := strings.IndexByte(rest[open+2:], '}')
		if closeIdx < 0 {
			b.WriteString(rest)
			break
		}
		name := rest[open+2 : open+2+closeIdx]
		b.WriteString(rest[:open])
		if value, ok := tokens[name]; ok {
			b.WriteString(value)
		} else {
			diag.ReportWarning(rep, diag.CfgUndefinedToken, loc, fmt.Sprintf("undefined token '${%s}'", name))
			b.WriteString(rest[open : open+3+closeIdx])
		}
		rest = rest[open+3+closeIdx:]
	}
	return b.String()
}

// unquote strips one pair of matching surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '\'' || first == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// splitListValue splits "a,b" into elements unless the whole value is quoted.
func splitListValue(value string) []string {
	if unquote(value) != value {
		return []string{value}
	}
	return strings.Split(value, ",")
}
