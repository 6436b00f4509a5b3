package presenter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mikey/spam-detector/internal/core"
	"github.com/mikey/spam-detector/internal/samples"
	"gopkg.in/yaml.v3"
)

// Format is an output format for the command line renderers
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates an output format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (use text, json or yaml)", s)
	}
}

const barWidth = 30

// Report is the machine readable outcome of one analysis
type Report struct {
	Phase  string               `json:"phase" yaml:"phase"`
	Text   string               `json:"text" yaml:"text"`
	Result *core.AnalysisResult `json:"result,omitempty" yaml:"result,omitempty"`
	View   *View                `json:"view,omitempty" yaml:"view,omitempty"`
	Error  string               `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewReport snapshots a workflow state
func NewReport(state core.WorkflowState) Report {
	r := Report{
		Phase: state.Phase().String(),
		Text:  state.EmailText,
		Error: state.Error,
	}
	if state.Result != nil {
		v := Present(*state.Result)
		r.Result = state.Result
		r.View = &v
	}
	return r
}

// WriteState renders the outcome of an analysis
func WriteState(w io.Writer, format Format, state core.WorkflowState) error {
	report := NewReport(state)
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatYAML:
		return writeYAML(w, report)
	default:
		return writeStateText(w, report)
	}
}

// WriteSamples renders the sample catalog
func WriteSamples(w io.Writer, format Format, list []core.Sample) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, list)
	case FormatYAML:
		return writeYAML(w, list)
	}

	ew := &errWriter{w: w}
	for _, s := range list {
		ew.printf("%d. %s [%s]\n   %s\n", s.ID, s.Title, samples.BadgeText(s.Type), samples.Preview(s))
	}
	return ew.err
}

func writeStateText(w io.Writer, r Report) error {
	ew := &errWriter{w: w}

	if r.Error != "" {
		ew.printf("⚠️ %s\n", r.Error)
		return ew.err
	}
	if r.View == nil {
		ew.printf("Ready to Analyze\n")
		return ew.err
	}

	v := r.View
	ew.printf("=== Result ===\n")
	ew.printf("%s (%s)  %s%% Confident\n\n", v.Label, v.Badge, v.Confidence)
	ew.printf("%s\n\n", v.Description)
	ew.printf("=== Probability Analysis ===\n")
	ew.printf("Legitimate %s %7s%%\n", Bar(v.HamPercent, barWidth, "#", "."), v.HamProbability)
	ew.printf("Spam/Scam  %s %7s%%\n\n", Bar(v.SpamPercent, barWidth, "#", "."), v.SpamProbability)
	ew.printf("=== Processed Text ===\n%s\n", v.CleanedText)
	if r.Result != nil && r.Result.ModelUsed != "" {
		ew.printf("\nModel: %s\n", r.Result.ModelUsed)
	}
	return ew.err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// errWriter stops writing after the first error
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
