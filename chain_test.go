package scc

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sybila/biodivine-lib-algo-scc/network"
	"github.com/sybila/biodivine-lib-algo-scc/symbolic"
)

func mkgraph(t *testing.T, model string) *symbolic.Graph {
	t.Helper()
	net, err := network.ParseBnet(strings.NewReader(model))
	require.NoError(t, err)
	g, err := symbolic.NewGraph(net)
	require.NoError(t, err)
	return g
}

// configs returns every combination of strategies.
func configs() []Config {
	var res []Config
	for _, trim := range []TrimLevel{TrimNone, TrimStartOnly, TrimFull} {
		for _, reach := range []ReachStrategy{Layered, Saturation} {
			for _, pivot := range []PivotStrategy{PivotTrivial, PivotHamming} {
				res = append(res, Config{Trim: trim, Reachability: reach, Pivot: pivot})
			}
		}
	}
	return res
}

func decompose(t *testing.T, g *symbolic.Graph, cfg Config, opts ...Option) []symbolic.Set {
	t.Helper()
	c, err := NewChain(g, cfg, opts...)
	require.NoError(t, err)
	var res []symbolic.Set
	for s := range c.All() {
		res = append(res, s)
	}
	require.NoError(t, c.Err())
	return res
}

const toggle = `
targets, factors
A, !A
B, B
`

func TestToggle(t *testing.T) {
	g := mkgraph(t, toggle)
	for _, cfg := range configs() {
		t.Run(cfg.String(), func(t *testing.T) {
			sccs := decompose(t, g, cfg)
			require.Len(t, sccs, 2)
			for _, s := range sccs {
				assert.Equal(t, big.NewInt(2), s.Cardinality())
			}
			want := []string{"00,10", "01,11"}
			assert.Equal(t, want, fingerprints(t, sccs))
		})
	}
}

func TestAcyclic(t *testing.T) {
	g := mkgraph(t, "A, A\nB, A\nC, B\n")
	for _, cfg := range configs() {
		seq, err := Decompose(g, cfg)
		require.NoError(t, err)
		count := 0
		for range seq {
			count++
		}
		assert.Zero(t, count, cfg.String())
	}
	assert.True(t, Trim(g, g.Unit()).IsEmpty())
}

func TestEmptyAfterTrim(t *testing.T) {
	g := mkgraph(t, "A, true\n")
	c, err := NewChain(g, DefaultConfig())
	require.NoError(t, err)
	assert.Zero(t, c.Pending())
	_, ok := c.Next()
	assert.False(t, ok)
	assert.NoError(t, c.Err())
}

func TestAgainstTarjan(t *testing.T) {
	for seed := range uint64(24) {
		n := 3 + int(seed%3)
		net := randomNetwork(t, seed, n)
		g, err := symbolic.NewGraph(net)
		require.NoError(t, err)
		want := newExplicit(net).components(2)
		for _, cfg := range configs() {
			got := fingerprints(t, decompose(t, g, cfg))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("seed %d, %s: wrong components (-want +got):\n%s", seed, cfg, diff)
			}
		}
	}
}

func TestStructure(t *testing.T) {
	for seed := range uint64(8) {
		net := randomNetwork(t, 100+seed, 5)
		g, err := symbolic.NewGraph(net)
		require.NoError(t, err)
		sccs := decompose(t, g, DefaultConfig())
		for k, s := range sccs {
			assert.False(t, s.IsSingleton())
			// every state reaches every other state inside the component
			inner := g.Restrict(s)
			pivot := s.PickSingleton()
			assert.True(t, Reach(inner, pivot, Forward, Saturation).Equal(s))
			assert.True(t, Reach(inner, pivot, Backward, Layered).Equal(s))
			for _, other := range sccs[k+1:] {
				assert.True(t, s.Intersect(other).IsEmpty())
			}
		}
	}
}

func TestTrimMonotonicity(t *testing.T) {
	for seed := range uint64(8) {
		net := randomNetwork(t, 200+seed, 5)
		g, err := symbolic.NewGraph(net)
		require.NoError(t, err)
		union := func(trim TrimLevel) symbolic.Set {
			res := g.Empty()
			for _, s := range decompose(t, g, Config{Trim: trim, Reachability: Saturation}) {
				res = res.Union(s)
			}
			return res
		}
		none, start, full := union(TrimNone), union(TrimStartOnly), union(TrimFull)
		assert.True(t, full.IsSubset(start))
		assert.True(t, start.IsSubset(none))
		// trimming keeps every state of a non-trivial component
		assert.True(t, none.IsSubset(Trim(g, g.Unit())))
	}
}

func TestFwdBwd(t *testing.T) {
	for seed := range uint64(8) {
		net := randomNetwork(t, 300+seed, 4)
		g, err := symbolic.NewGraph(net)
		require.NoError(t, err)
		all, err := FwdBwd(g, Saturation)
		require.NoError(t, err)
		want := newExplicit(net).components(1)
		if diff := cmp.Diff(want, fingerprints(t, all)); diff != "" {
			t.Fatalf("seed %d: wrong components (-want +got):\n%s", seed, diff)
		}
	}
}

func TestColoredGraph(t *testing.T) {
	net, err := network.ParseYAML(strings.NewReader("parameters: [p]\nvariables:\n  - name: A\n    update: \"p & !A\"\n"))
	require.NoError(t, err)
	g, err := symbolic.NewGraph(net)
	require.NoError(t, err)
	_, err = Decompose(g, DefaultConfig())
	assert.ErrorIs(t, err, ErrColoredGraph)
	_, err = Collect(context.Background(), g, DefaultConfig())
	assert.ErrorIs(t, err, ErrColoredGraph)
	_, err = FwdBwd(g, Layered)
	assert.ErrorIs(t, err, ErrColoredGraph)
}

func TestInvalidConfig(t *testing.T) {
	g := mkgraph(t, toggle)
	_, err := NewChain(g, Config{Trim: TrimLevel(7)})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = NewChain(g, Config{Parallelism: -1})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseConfig(t *testing.T) {
	trim, err := ParseTrimLevel("start")
	require.NoError(t, err)
	assert.Equal(t, TrimStartOnly, trim)
	reach, err := ParseReachStrategy("layered")
	require.NoError(t, err)
	assert.Equal(t, Layered, reach)
	pivot, err := ParsePivotStrategy("hamming")
	require.NoError(t, err)
	assert.Equal(t, PivotHamming, pivot)
	_, err = ParsePivotStrategy("random")
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, "trim=full reach=saturation pivot=hamming", DefaultConfig().String())
	assert.Equal(t, "TrimLevel(9)", TrimLevel(9).String())
}

func TestParallel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreAnyFunction("runtime.runfinq"))
	for seed := range uint64(6) {
		net := randomNetwork(t, 400+seed, 6)
		g, err := symbolic.NewGraph(net)
		require.NoError(t, err)
		for _, cfg := range []Config{{Trim: TrimFull, Reachability: Saturation, Pivot: PivotHamming}, {Trim: TrimNone, Reachability: Layered}} {
			seq, err := Collect(context.Background(), g, cfg)
			require.NoError(t, err)
			cfg.Parallelism = 4
			par, err := Collect(context.Background(), g, cfg)
			require.NoError(t, err)
			assert.Equal(t, fingerprints(t, seq), fingerprints(t, par), "seed %d", seed)
		}
	}
}

func TestCollectCanceled(t *testing.T) {
	g := mkgraph(t, toggle)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, p := range []int{1, 2} {
		cfg := DefaultConfig()
		cfg.Parallelism = p
		_, err := Collect(ctx, g, cfg)
		assert.ErrorIs(t, err, context.Canceled, fmt.Sprint(p))
	}

	// no task of an acyclic graph yields a component, cancellation must still
	// be seen between tasks
	acyclic := mkgraph(t, "A, A\nB, A\nC, B\n")
	for _, p := range []int{1, 2} {
		cfg := Config{Trim: TrimNone, Reachability: Layered, Pivot: PivotTrivial, Parallelism: p}
		res, err := Collect(ctx, acyclic, cfg)
		assert.ErrorIs(t, err, context.Canceled, fmt.Sprint(p))
		assert.Nil(t, res)
	}

	c, err := NewChain(acyclic, Config{Trim: TrimNone})
	require.NoError(t, err)
	require.Equal(t, 1, c.Pending())
	_, ok := c.next(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, c.Err(), context.Canceled)
	assert.Zero(t, c.Pending())
}

type counter struct {
	tasks, components, reach, trims atomic.Int64
}

func (c *counter) TaskStarted(int) { c.tasks.Add(1) }
func (c *counter) ComponentFound(*big.Int) { c.components.Add(1) }
func (c *counter) ReachabilityDone(Direction, ReachStrategy, int) { c.reach.Add(1) }
func (c *counter) TrimDone(int) { c.trims.Add(1) }

func TestObserverAndLogs(t *testing.T) {
	g := mkgraph(t, toggle)
	core, logs := observer.New(zapcore.DebugLevel)
	obs := &counter{}
	sccs := decompose(t, g, DefaultConfig(), WithLogger(zap.New(core)), WithObserver(obs))
	require.Len(t, sccs, 2)
	assert.EqualValues(t, 2, obs.components.Load())
	assert.GreaterOrEqual(t, obs.tasks.Load(), int64(2))
	assert.Equal(t, 2*obs.tasks.Load(), obs.reach.Load())
	assert.Positive(t, obs.trims.Load())
	assert.Equal(t, 2, logs.FilterLoggerName("chain").FilterMessage("component").Len())
	assert.Positive(t, logs.FilterLoggerName("reach").Len())
}
