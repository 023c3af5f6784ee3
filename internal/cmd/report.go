package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	scc "github.com/sybila/biodivine-lib-algo-scc"
	"github.com/sybila/biodivine-lib-algo-scc/symbolic"
)

// Report is the result of the decompose and classify commands.
type Report struct {
	Model      string            `json:"model" yaml:"model"`
	Variables  []string          `json:"variables" yaml:"variables"`
	Config     string            `json:"config" yaml:"config"`
	Components []ComponentReport `json:"components" yaml:"components"`
	// FixedPoints and Basins are only filled by classify.
	FixedPoints *SetReport    `json:"fixed_points,omitempty" yaml:"fixed_points,omitempty"`
	Basins      []BasinReport `json:"basins,omitempty" yaml:"basins,omitempty"`
}

// SetReport describes a set of states, with at most a few of its states.
type SetReport struct {
	States    string   `json:"states" yaml:"states"`
	Nodes     int      `json:"nodes" yaml:"nodes"`
	Sample    []string `json:"sample" yaml:"sample"`
	Truncated bool     `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

// ComponentReport describes one SCC.
type ComponentReport struct {
	Index     int    `json:"index" yaml:"index"`
	Class     string `json:"class,omitempty" yaml:"class,omitempty"`
	Subspace  string `json:"subspace,omitempty" yaml:"subspace,omitempty"`
	SetReport `yaml:",inline"`
}

// BasinReport gives the size of the basins of an attractor, named by its
// index for SCCs and by its state for fixed points.
type BasinReport struct {
	Attractor string `json:"attractor" yaml:"attractor"`
	Weak      string `json:"weak" yaml:"weak"`
	Strong    string `json:"strong" yaml:"strong"`
}

func newReport(g *symbolic.Graph, cfg scc.Config) *Report {
	net := g.Context().Network()
	r := &Report{Model: net.Name, Config: cfg.String()}
	for _, v := range net.Variables() {
		r.Variables = append(r.Variables, net.VariableName(v))
	}
	return r
}

func describe(s symbolic.Set, limit int) SetReport {
	states, complete := s.States(limit)
	r := SetReport{
		States:    s.Cardinality().String(),
		Nodes:     s.SymbolicSize(),
		Truncated: !complete,
		Sample:    make([]string, len(states)),
	}
	for k, state := range states {
		r.Sample[k] = bits(state)
	}
	return r
}

func bits(state []bool) string {
	var sb strings.Builder
	for _, b := range state {
		if b {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// write outputs v in the given format, using text for the text format.
func write(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return text(w)
}

// writeText prints a table with one line per component.
func (r *Report) writeText(w io.Writer) error {
	fmt.Fprintf(w, "model %s: %d variables, %s\n", r.Model, len(r.Variables), r.Config)
	fmt.Fprintf(w, "%d components\n", len(r.Components))
	if len(r.Components) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "SCC\tSTATES\tNODES\tCLASS\tSUBSPACE\tSAMPLE")
		for _, c := range r.Components {
			sample := strings.Join(c.Sample, ",")
			if c.Truncated {
				sample += ",..."
			}
			fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\n",
				c.Index, c.States, c.Nodes, dash(c.Class), dash(c.Subspace), sample)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	if r.FixedPoints != nil {
		fmt.Fprintf(w, "%s fixed points: %s\n", r.FixedPoints.States, strings.Join(r.FixedPoints.Sample, ","))
	}
	if len(r.Basins) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ATTRACTOR\tWEAK BASIN\tSTRONG BASIN")
		for _, b := range r.Basins {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Attractor, b.Weak, b.Strong)
		}
		return tw.Flush()
	}
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
