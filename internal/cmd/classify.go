package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	scc "github.com/sybila/biodivine-lib-algo-scc"
	"github.com/sybila/biodivine-lib-algo-scc/symbolic"
)

func (a *app) classifyCmd() *cobra.Command {
	var basins bool
	cmd := &cobra.Command{
		Use:   "classify MODEL",
		Short: "Classify the SCCs of a model as attractors, long-lived or transient",
		Long: `Classify decomposes MODEL and gives the class of each non-trivial SCC: an
attractor cannot be left, a transient SCC can be left by always updating
the same variable, and a long-lived SCC is neither. Fixed points (trivial
attractors) are listed separately.`,
		Args: cobra.ExactArgs(1),
	}
	addDecompositionFlags(cmd)
	cmd.Flags().BoolVar(&basins, "basins", false, "compute the weak and strong basins of attractors")

	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		g, err := a.load(args[0])
		if err != nil {
			return err
		}
		sccs, err := a.decompose(cmd, g)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		r := newReport(g, a.cfg.Scc())
		var (
			attractors []symbolic.Set
			labels     []string
		)
		for k, c := range scc.Classify(g, sccs) {
			r.Components = append(r.Components, ComponentReport{
				Index:     k,
				Class:     c.Class.String(),
				Subspace:  c.Subspace.String(),
				SetReport: describe(c.Set, limit),
			})
			if c.Class == scc.Attractor {
				attractors = append(attractors, c.Set)
				labels = append(labels, fmt.Sprintf("scc %d", k))
			}
		}
		fixed := scc.FixedPoints(g)
		fr := describe(fixed, limit)
		r.FixedPoints = &fr
		if basins {
			points, _ := fixed.States(limit)
			for _, p := range points {
				attractors = append(attractors, g.MkState(p))
				labels = append(labels, bits(p))
			}
			weak, strong := scc.Basins(g, attractors, a.cfg.Scc().Reachability, a.options()...)
			for k := range attractors {
				r.Basins = append(r.Basins, BasinReport{
					Attractor: labels[k],
					Weak:      weak[k].Cardinality().String(),
					Strong:    strong[k].Cardinality().String(),
				})
			}
		}
		return write(cmd.OutOrStdout(), a.cfg.Output.Format, r, r.writeText)
	})
	return cmd
}
