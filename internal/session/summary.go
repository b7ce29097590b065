package session

import (
	"aslsp/internal/compiler"
	"aslsp/internal/diag"
	"aslsp/internal/observ"
)

// Problem is the wire form of a diagnostic.
type Problem struct {
	Severity string `json:"severity" msgpack:"severity"`
	Code     string `json:"code" msgpack:"code"`
	Source   string `json:"source" msgpack:"source"`
	Line     int    `json:"line,omitempty" msgpack:"line,omitempty"`
	Option   string `json:"option,omitempty" msgpack:"option,omitempty"`
	Message  string `json:"message" msgpack:"message"`
}

// Summary is the wire form of an Outcome, shared by the CLI report and the
// aslsp/resolve request.
type Summary struct {
	OK           bool                     `json:"ok" msgpack:"ok"`
	ConfigName   string                   `json:"configName" msgpack:"config_name"`
	Kind         string                   `json:"kind" msgpack:"kind"`
	FrameworkLib string                   `json:"frameworkLib" msgpack:"framework_lib"`
	Flavor       string                   `json:"flavor" msgpack:"flavor"`
	Backend      string                   `json:"backend" msgpack:"backend"`
	TargetType   string                   `json:"targetType" msgpack:"target_type"`
	Options      []string                 `json:"options" msgpack:"options"`
	Overlay      string                   `json:"overlay,omitempty" msgpack:"overlay,omitempty"`
	Settings     *compiler.TargetSettings `json:"settings,omitempty" msgpack:"settings,omitempty"`
	Failure      string                   `json:"failure,omitempty" msgpack:"failure,omitempty"`
	Problems     []Problem                `json:"problems" msgpack:"problems"`
	Timings      *observ.Report           `json:"timings,omitempty" msgpack:"timings,omitempty"`
}

// Summarize converts o. Timings are included only when withTimings is set.
func Summarize(o *Outcome, withTimings bool) Summary {
	s := Summary{
		OK:           o.OK(),
		ConfigName:   o.Description.ConfigName,
		Kind:         o.Description.Kind.String(),
		FrameworkLib: o.FrameworkLib,
		Flavor:       o.Flavor.String(),
		Backend:      o.Variant.String(),
		TargetType:   o.Plan.TargetType.String(),
		Options:      o.Plan.Options,
		Overlay:      o.Plan.Overlay,
		Settings:     o.Settings,
		Problems:     Problems(o.Problems),
	}
	if s.Options == nil {
		s.Options = []string{}
	}
	if o.Failure != nil {
		s.Failure = o.Failure.Error()
	}
	if withTimings {
		timings := o.Timings
		s.Timings = &timings
	}
	return s
}

// Problems converts diagnostics to their wire form, never returning nil.
func Problems(list []diag.Diagnostic) []Problem {
	out := make([]Problem, 0, len(list))
	for _, d := range list {
		source := d.Primary.Source
		if source == "" {
			source = diag.CommandLine
		}
		out = append(out, Problem{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Source:   source,
			Line:     d.Primary.Line,
			Option:   d.Primary.Option,
			Message:  d.Message,
		})
	}
	return out
}
