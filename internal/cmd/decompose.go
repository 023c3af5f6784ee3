package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	scc "github.com/sybila/biodivine-lib-algo-scc"
	"github.com/sybila/biodivine-lib-algo-scc/symbolic"
)

// addDecompositionFlags declares the flags bound to the decomposition.*
// configuration keys.
func addDecompositionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("trim", "", "trimming of sink and source states: none, start or full")
	f.String("reach", "", "reachability strategy: layered or saturation")
	f.String("pivot", "", "pivot selection: trivial or hamming")
	f.Int("parallel", 0, "number of goroutines processing tasks")
	f.Int("limit", 8, "maximal number of states listed for each set")
}

func (a *app) decomposeCmd() *cobra.Command {
	var (
		dotDir string
		verify bool
	)
	cmd := &cobra.Command{
		Use:   "decompose MODEL",
		Short: "List the non-trivial SCCs of a model",
		Long: `Decompose computes the non-trivial strongly connected components of the
state-transition graph of MODEL, sorted by increasing number of states.`,
		Args: cobra.ExactArgs(1),
	}
	addDecompositionFlags(cmd)
	cmd.Flags().StringVar(&dotDir, "dot", "", "write the BDD of each component in this directory, in the DOT format")
	cmd.Flags().BoolVar(&verify, "verify", false, "check the result against the forward-backward algorithm")

	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		g, err := a.load(args[0])
		if err != nil {
			return err
		}
		sccs, err := a.decompose(cmd, g)
		if err != nil {
			return err
		}
		if verify {
			if err := a.verify(g, sccs); err != nil {
				return err
			}
		}
		if dotDir != "" {
			if err := writeDots(dotDir, sccs); err != nil {
				return err
			}
		}
		limit, _ := cmd.Flags().GetInt("limit")
		r := newReport(g, a.cfg.Scc())
		for k, s := range sccs {
			r.Components = append(r.Components, ComponentReport{Index: k, SetReport: describe(s, limit)})
		}
		return write(cmd.OutOrStdout(), a.cfg.Output.Format, r, r.writeText)
	})
	return cmd
}

// decompose returns the non-trivial SCCs of g sorted by size.
func (a *app) decompose(cmd *cobra.Command, g *symbolic.Graph) ([]symbolic.Set, error) {
	cfg := a.cfg.Scc()
	start := time.Now()
	sccs, err := scc.Collect(cmd.Context(), g, cfg, a.options()...)
	if err != nil {
		return nil, err
	}
	scc.SortBySize(sccs)
	a.logger.Info("decomposition done",
		zap.Stringer("config", cfg),
		zap.Int("components", len(sccs)),
		zap.Duration("elapsed", time.Since(start)))
	return sccs, nil
}

// verify compares sccs with the non-trivial SCCs found by FwdBwd.
func (a *app) verify(g *symbolic.Graph, sccs []symbolic.Set) error {
	all, err := scc.FwdBwd(g, a.cfg.Scc().Reachability, scc.WithLogger(a.logger))
	if err != nil {
		return err
	}
	var want []symbolic.Set
	for _, s := range all {
		if !s.IsSingleton() {
			want = append(want, s)
		}
	}
	if len(want) != len(sccs) {
		return fmt.Errorf("verification failed: %d components, forward-backward found %d", len(sccs), len(want))
	}
	for k, s := range sccs {
		found := false
		for _, w := range want {
			if s.Equal(w) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("verification failed: component %d (%s) not found by forward-backward", k, s)
		}
	}
	a.logger.Info("verification passed", zap.Int("components", len(sccs)))
	return nil
}

func writeDots(dir string, sccs []symbolic.Set) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for k, s := range sccs {
		f, err := os.Create(filepath.Join(dir, fmt.Sprintf("scc-%03d.dot", k)))
		if err != nil {
			return err
		}
		err = s.WriteDot(f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}
