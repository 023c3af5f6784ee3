package scc

import "errors"

var (
	// ErrColoredGraph is returned when the graph to decompose has parameters.
	ErrColoredGraph = errors.New("graph has parameters")
	// ErrEngine is returned when the BDD engine fails during a decomposition,
	// usually because the node table reached its maximal size.
	ErrEngine = errors.New("BDD engine failure")
	// ErrInvalidConfig is returned for unknown configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)
