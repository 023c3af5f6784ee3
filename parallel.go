package scc

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sybila/biodivine-lib-algo-scc/symbolic"
)

// Collect returns all the non-trivial SCCs of g. When cfg.Parallelism is
// greater than one, independent tasks are processed by up to that many
// goroutines and the order of the result is unspecified. The computation
// stops early if ctx is canceled.
func Collect(ctx context.Context, g *symbolic.Graph, cfg Config, opts ...Option) ([]symbolic.Set, error) {
	c, err := NewChain(g, cfg, opts...)
	if err != nil {
		return nil, err
	}
	if cfg.Parallelism > 1 {
		return c.collect(ctx, cfg.Parallelism)
	}
	var res []symbolic.Set
	for {
		scc, ok := c.next(ctx)
		if !ok {
			break
		}
		res = append(res, scc)
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// collect drains the stack of c using an errgroup. A worker processes its own
// stack of tasks and hands children over to new goroutines while the group
// has free slots.
func (c *Chain) collect(ctx context.Context, limit int) ([]symbolic.Set, error) {
	var (
		mu  sync.Mutex
		res []symbolic.Set
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	var worker func(t task) error
	worker = func(t task) error {
		stack := []task{t}
		for len(stack) > 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			t := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			scc, found, next := c.e.step(t)
			if err := t.view.Context().Err(); err != nil {
				return fmt.Errorf("%w: %w", ErrEngine, err)
			}
			if found {
				mu.Lock()
				res = append(res, scc)
				mu.Unlock()
			}
			for _, n := range next {
				if !eg.TryGo(func() error { return worker(n) }) {
					stack = append(stack, n)
				}
			}
		}
		return nil
	}

	for _, t := range c.stack {
		eg.Go(func() error { return worker(t) })
	}
	c.stack = nil
	if err := eg.Wait(); err != nil {
		c.err = err
		return nil, err
	}
	return res, nil
}
