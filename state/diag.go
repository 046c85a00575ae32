package state

import (
	"fmt"
	"sync"
)

// Severity of a diagnostic.
type Severity uint8

const (
	SeverityInfo  Severity = iota // informational, computation continues
	SeverityError                 // node recomputation aborted
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "info"
}

// Diagnostic is a finding reported by an evaluator.
type Diagnostic struct {
	Severity  Severity
	Kind      Kind
	Node      NodeID
	Attribute string
	Value     string
	Message   string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s node #%d %s=%q: %s", d.Severity, d.Kind, d.Node,
		d.Attribute, d.Value, d.Message)
}

// Diagnostics is a sink for diagnostics. Evaluators accept a nil sink.
type Diagnostics interface {
	Report(Diagnostic)
}

func report(diag Diagnostics, d Diagnostic) {
	if diag != nil {
		diag.Report(d)
	}
}

// Collector is a Diagnostics sink which keeps everything in memory.
// It is safe for concurrent use.
type Collector struct {
	mx    sync.Mutex
	diags []Diagnostic
}

// Report is part of interface Diagnostics.
func (c *Collector) Report(d Diagnostic) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.diags = append(c.diags, d)
}

// Diagnostics returns a copy of the collected diagnostics.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mx.Lock()
	defer c.mx.Unlock()
	r := make([]Diagnostic, len(c.diags))
	copy(r, c.diags)
	return r
}

// Filter returns collected diagnostics of a given severity.
func (c *Collector) Filter(sev Severity) []Diagnostic {
	var r []Diagnostic
	for _, d := range c.Diagnostics() {
		if d.Severity == sev {
			r = append(r, d)
		}
	}
	return r
}

// Reset drops all collected diagnostics.
func (c *Collector) Reset() {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.diags = nil
}

// TracingSink forwards diagnostics to the package tracer:
// infos go to Infof, errors to Errorf.
type TracingSink struct{}

// Report is part of interface Diagnostics.
func (TracingSink) Report(d Diagnostic) {
	t := tracer().P("node", d.Node).P("kind", d.Kind.String())
	if d.Severity == SeverityError {
		t.Errorf("%s=%q: %s", d.Attribute, d.Value, d.Message)
		return
	}
	t.Infof("%s=%q: %s", d.Attribute, d.Value, d.Message)
}

// Tee fans out diagnostics to several sinks. nil sinks are skipped.
func Tee(sinks ...Diagnostics) Diagnostics {
	return tee(sinks)
}

type tee []Diagnostics

func (t tee) Report(d Diagnostic) {
	for _, s := range t {
		report(s, d)
	}
}
