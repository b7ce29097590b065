// Package observ records how long each step of a resolution took.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Step is one timed stage of a resolution.
type Step struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer collects steps in the order they were started. A nil *Timer is
// valid and records nothing.
type Timer struct {
	now   func() time.Time
	steps []Step
}

func NewTimer() *Timer { return &Timer{now: time.Now, steps: make([]Step, 0, 12)} }

// Begin starts a step and returns its index for End.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.steps = append(t.steps, Step{Name: name, Start: t.now()})
	return len(t.steps) - 1
}

// End finishes the step at idx. Unknown indexes are ignored.
func (t *Timer) End(idx int, note string) {
	if t == nil || idx < 0 || idx >= len(t.steps) {
		return
	}
	s := &t.steps[idx]
	s.Dur = t.now().Sub(s.Start)
	s.Note = note
}

// Track runs fn as a step named name.
func (t *Timer) Track(name string, fn func() string) {
	idx := t.Begin(name)
	t.End(idx, fn())
}

func (t *Timer) Steps() []Step {
	if t == nil {
		return nil
	}
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	return out
}

// StepReport is the serializable form of a Step.
type StepReport struct {
	Name       string  `json:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" msgpack:"duration_ms"`
	Note       string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

type Report struct {
	TotalMS float64      `json:"total_ms" msgpack:"total_ms"`
	Steps   []StepReport `json:"steps" msgpack:"steps"`
}

func (t *Timer) Report() Report {
	if t == nil || len(t.steps) == 0 {
		return Report{}
	}
	report := Report{Steps: make([]StepReport, len(t.steps))}
	var total time.Duration
	for i, s := range t.steps {
		total += s.Dur
		report.Steps[i] = StepReport{Name: s.Name, DurationMS: millis(s.Dur), Note: s.Note}
	}
	report.TotalMS = millis(total)
	return report
}

// Summary renders the report as an aligned table.
func (t *Timer) Summary() string {
	return t.Report().Summary()
}

func (report Report) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, s := range report.Steps {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", s.Name, s.DurationMS)
		if s.Note != "" {
			b.WriteString("  // " + s.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", report.TotalMS)
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
