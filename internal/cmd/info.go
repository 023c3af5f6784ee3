package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sybila/biodivine-lib-algo-scc/network"
)

// Info describes a model.
type Info struct {
	Model      string         `json:"model" yaml:"model"`
	Variables  []VariableInfo `json:"variables" yaml:"variables"`
	Parameters []string       `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	States     string         `json:"states" yaml:"states"`
	BDD        string         `json:"bdd,omitempty" yaml:"bdd,omitempty"`
}

// VariableInfo describes a variable and its update function.
type VariableInfo struct {
	Name       string   `json:"name" yaml:"name"`
	Update     string   `json:"update" yaml:"update"`
	Regulators []string `json:"regulators" yaml:"regulators"`
}

func (a *app) infoCmd() *cobra.Command {
	var stats bool
	cmd := &cobra.Command{
		Use:   "info MODEL",
		Short: "Describe the variables and the state space of a model",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().BoolVar(&stats, "bdd-stats", false, "print statistics on the BDD engine")

	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		g, err := a.load(args[0])
		if err != nil {
			return err
		}
		net := g.Context().Network()
		info := Info{Model: net.Name, States: g.Unit().Cardinality().String()}
		for _, v := range net.Variables() {
			vi := VariableInfo{Name: net.VariableName(v), Update: net.Format(net.Update(v))}
			for _, r := range net.Regulators(v) {
				vi.Regulators = append(vi.Regulators, net.VariableName(r))
			}
			info.Variables = append(info.Variables, vi)
		}
		for p := range net.NumParameters() {
			info.Parameters = append(info.Parameters, net.ParameterName(network.ParameterID(p)))
		}
		if stats {
			info.BDD = g.Context().BDD().Stats()
		}
		return write(cmd.OutOrStdout(), a.cfg.Output.Format, info, info.writeText)
	})
	return cmd
}

func (info Info) writeText(w io.Writer) error {
	fmt.Fprintf(w, "model %s: %d variables, %d parameters, %s states\n",
		info.Model, len(info.Variables), len(info.Parameters), info.States)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VARIABLE\tREGULATORS\tUPDATE")
	for _, v := range info.Variables {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Name, dash(strings.Join(v.Regulators, ",")), v.Update)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(info.Parameters) > 0 {
		fmt.Fprintf(w, "parameters: %s\n", strings.Join(info.Parameters, ", "))
	}
	if info.BDD != "" {
		fmt.Fprint(w, info.BDD)
	}
	return nil
}
