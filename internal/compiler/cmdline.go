package compiler

import (
	"fmt"
	"strings"

	"aslsp/internal/diag"
)

// commandLine is the parsed form of a SetConfiguration call.
type commandLine struct {
	assignments []assignment
	tokens      map[string]string
}

// parseCommandLine understands
//
//	-name / --name            bool true, or consume the variable's arity
//	-name=value, -name+=value set or append (lists split on commas)
//	+token=value              define a token
//	--                        everything after goes to defaultVar
//	bare                      appended to defaultVar
func parseCommandLine(args []string, defaultVar string, fileSpecs bool, d Dialect, rep diag.Reporter) commandLine {
	cl := commandLine{tokens: make(map[string]string)}
	var bare []string
	onlyBare := false

	for i := 0; i < len(args); i++ {
		arg := args[i]
		loc := diag.Location{Source: diag.CommandLine, Option: arg}

		switch {
		case onlyBare:
			bare = append(bare, arg)
		case arg == "--":
			onlyBare = true
		case strings.HasPrefix(arg, "+") && len(arg) > 1:
			name, value, ok := strings.Cut(arg[1:], "=")
			if !ok || name == "" {
				diag.ReportError(rep, diag.CfgBadValue, loc, fmt.Sprintf("token definition %q must look like +name=value", arg))
				continue
			}
			cl.tokens[name] = value
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			body := strings.TrimPrefix(arg[1:], "-")
			name, value, hasValue := strings.Cut(body, "=")
			op := opSet
			if trimmed, ok := strings.CutSuffix(name, "+"); ok {
				name, op = trimmed, opAppend
			}
			spec, status := lookupVar(name, d, true)
			switch status {
			case varUnknown:
				diag.ReportError(rep, diag.CfgUnknownVariable, loc, fmt.Sprintf("unknown configuration variable '%s'", name))
				continue
			case varNotApplicable:
				diag.ReportError(rep, diag.CfgNotApplicable, loc, fmt.Sprintf("'%s' is not supported by the %s configuration", name, d))
				continue
			}
			if spec.name == FileSpecsVar && !fileSpecs {
				diag.ReportError(rep, diag.CfgNotApplicable, loc, fmt.Sprintf("'%s' is not allowed here", spec.name))
				continue
			}
			if op == opAppend && !spec.kind.isList() {
				diag.ReportError(rep, diag.CfgBadAppend, loc, fmt.Sprintf("cannot append to '%s'", spec.name))
				continue
			}

			var values []string
			switch {
			case hasValue && spec.kind == kindList:
				values = splitListValue(value)
			case hasValue:
				values = []string{value}
			case spec.kind == kindBool:
				values = []string{"true"}
			default:
				n := spec.kind.arity()
				if i+n >= len(args) || hasFlagPrefix(args[i+1:i+1+n]) {
					diag.ReportError(rep, diag.CfgMissingValue, loc, fmt.Sprintf("'%s' expects %d value(s)", spec.name, n))
					continue
				}
				consumed := args[i+1 : i+1+n]
				i += n
				if spec.kind == kindPair {
					values = []string{strings.Join(consumed, ",")}
				} else {
					values = append(values, consumed...)
				}
			}
			cl.assignments = append(cl.assignments, assignment{spec: spec, op: op, values: values, loc: loc})
		default:
			bare = append(bare, arg)
		}
	}

	if len(bare) > 0 {
		spec, status := lookupVar(defaultVar, d, false)
		if status != varFound {
			loc := diag.Location{Source: diag.CommandLine, Option: bare[0]}
			diag.ReportError(rep, diag.CfgUnknownVariable, loc, fmt.Sprintf("no default variable for argument %q", bare[0]))
			return cl
		}
		cl.assignments = append(cl.assignments, assignment{
			spec:   spec,
			op:     opAppend,
			values: bare,
			loc:    diag.Location{Source: diag.CommandLine, Option: defaultVar},
		})
	}
	return cl
}

func hasFlagPrefix(args []string) bool {
	for _, a := range args {
		if strings.HasPrefix(a, "-") || strings.HasPrefix(a, "+") {
			return true
		}
	}
	return false
}
