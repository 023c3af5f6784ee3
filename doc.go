/*
Package scc decomposes the state-transition graph of an asynchronous Boolean
network into its strongly connected components (SCCs), using BDDs to represent
sets of states.

The main algorithm is a chain decomposition. We pick a pivot state, compute the
set F of states reachable from it, then the SCC of the pivot as the states of F
that can reach the pivot. The states of F outside the SCC, and the states
outside F, form two independent sub-problems that are pushed on a stack of
tasks. Only non-trivial components (with at least two states) are returned.

Basic usage

	net, err := network.Load("model.bnet")
	if err != nil { ... }
	g, err := symbolic.NewGraph(net.InlineConstants())
	if err != nil { ... }
	sccs, err := scc.Decompose(g, scc.DefaultConfig())
	if err != nil { ... }
	for c := range sccs {
		fmt.Println(c.Cardinality())
	}

Configuration

The decomposition can be tuned with a Config value: the reachability strategy
(Layered or Saturation), the trimming level (TrimNone, TrimStartOnly or
TrimFull) and the pivot strategy (PivotTrivial or PivotHamming). Every
configuration returns the same components, in a possibly different order.

Trimming removes states that have no predecessor, or no successor, in the
current candidate set. Such states cannot belong to a cycle. The Hamming
heuristic chooses, as next pivot, the state of the remaining forward set that is
the furthest from the current pivot.

Graphs with parameters (colors) are not supported and are rejected with
ErrColoredGraph.

Concurrency

Decompose and Chain are sequential. Collect can evaluate independent tasks in
parallel when Config.Parallelism is greater than one; components are then
returned in an unspecified order.
*/
package scc
