package scc

import "math/big"

// Observer is notified of the progress of a decomposition. With Collect and
// a parallelism greater than one, methods may be called concurrently.
type Observer interface {
	// TaskStarted is called when a task is popped from the stack. The depth
	// of the initial task is zero.
	TaskStarted(depth int)
	// ComponentFound is called for every emitted component, with its number
	// of states.
	ComponentFound(states *big.Int)
	// ReachabilityDone is called after each reachability computation, with
	// the number of symbolic steps needed to reach the fixpoint.
	ReachabilityDone(dir Direction, strategy ReachStrategy, steps int)
	// TrimDone is called after each trimming, with the number of steps that
	// removed states.
	TrimDone(steps int)
}

type nopObserver struct{}

func (nopObserver) TaskStarted(int) {}
func (nopObserver) ComponentFound(*big.Int) {}
func (nopObserver) ReachabilityDone(Direction, ReachStrategy, int) {}
func (nopObserver) TrimDone(int) {}
