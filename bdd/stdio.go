// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"unsafe"
)

// Stats returns information about the BDD: size of the node table, number of
// garbage collections and, with the debug build tag, statistics on caches and
// external references.
func (b *BDD) Stats() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	res := fmt.Sprintf("Varnum:     %d\n", b.varnum)
	res += fmt.Sprintf("Allocated:  %d\n", len(b.nodes))
	res += fmt.Sprintf("Produced:   %d\n", b.produced)
	r := (float64(b.freenum) / float64(len(b.nodes))) * 100
	res += fmt.Sprintf("Free:       %d  (%.3g %%)\n", b.freenum, r)
	res += fmt.Sprintf("Used:       %d  (%.3g %%)\n", len(b.nodes)-b.freenum, (100.0 - r))
	res += fmt.Sprintf("Size:       %s\n", humanSize(len(b.nodes), unsafe.Sizeof(node{})))
	res += "==============\n"
	res += fmt.Sprintf("# of GC:    %d\n", len(b.gcstat.history))
	if _DEBUG {
		allocated := int(b.gcstat.setfinalizers)
		reclaimed := int(b.gcstat.calledfinalizers)
		for _, g := range b.gcstat.history {
			allocated += g.setfinalizers
			reclaimed += g.calledfinalizers
		}
		res += fmt.Sprintf("Ext. refs:  %d\n", allocated)
		res += fmt.Sprintf("Reclaimed:  %d\n", reclaimed)
		res += "==============\n"
		res += fmt.Sprintf("Unique Access:  %d\n", b.uniqueAccess)
		res += fmt.Sprintf("Unique Hit:     %d\n", b.uniqueHit)
		res += fmt.Sprintf("Unique Miss:    %d\n", b.uniqueMiss)
		res += b.cacheStat.String() + "\n"
	}
	return res
}

// humanSize returns a human readable version of a size in bytes
func humanSize(b int, unit uintptr) string {
	const k = 1024
	size := uint64(b) * uint64(unit)
	if size < k {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := uint64(k), 0
	for n := size / k; n >= k; n /= k {
		div *= k
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// ******************************************************************************************************

// Print returns a one-line description of node n.
func (b *BDD) Print(n Node) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.error != nil {
		return fmt.Sprintf("error %s", b.error)
	}
	switch {
	case n == nil:
		return "Error (nil)"
	case *n == 0:
		return "False"
	case *n == 1:
		return "True"
	case *n < 0:
		return "Error"
	case *n >= len(b.nodes):
		return fmt.Sprintf("Error (%d not a valid index)", *n)
	case b.nodes[*n].low == -1:
		return fmt.Sprintf("Error (node %d undefined)", *n)
	}
	return fmt.Sprintf("(%d[%d] ? %d : %d)", *n, b.nodes[*n].level, b.nodes[*n].low, b.nodes[*n].high)
}

// Fprint outputs a textual representation of the BDD with roots n, one node
// per line.
func (b *BDD) Fprint(w io.Writer, n ...Node) error {
	nodes, err := b.reachable(n)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 0, ' ', 0)
	for _, v := range nodes {
		if v.id > 1 {
			fmt.Fprintf(tw, "%d\t[%d\t] ? \t%d\t : %d\n", v.id, v.level, v.low, v.high)
		}
	}
	return tw.Flush()
}

// ******************************************************************************************************

// PrintDot writes a GraphViz DOT description of the BDD with roots n on w.
// Function label, if not nil, gives the name displayed for each level. We do
// not draw arcs that go to the constant false.
func (b *BDD) PrintDot(w io.Writer, label func(level int) string, n ...Node) error {
	nodes, err := b.reachable(n)
	if err != nil {
		return err
	}
	if label == nil {
		label = func(level int) string { return fmt.Sprint(level) }
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	fmt.Fprintln(bw, "1 [shape=box, label=\"1\", style=filled, height=0.3, width=0.3];")
	for _, v := range nodes {
		if v.id > 1 {
			fmt.Fprintf(bw, "%d %s\n", v.id, dotlabel(v.id, label(v.level)))
			if v.low != 0 {
				fmt.Fprintf(bw, "%d -> %d [style=dotted];\n", v.id, v.low)
			}
			if v.high != 0 {
				fmt.Fprintf(bw, "%d -> %d [style=filled];\n", v.id, v.high)
			}
		}
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func dotlabel(a int, b string) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">%s</FONT>
	<FONT POINT-SIZE="10">[%d]</FONT>
>];`, b, a)
}

type rawnode struct {
	id, level, low, high int
}

// reachable returns a snapshot, sorted by id, of the nodes reachable from n.
func (b *BDD) reachable(n []Node) ([]rawnode, error) {
	var nodes []rawnode
	err := b.Allnodes(func(id, level, low, high int) error {
		nodes = append(nodes, rawnode{id, level, low, high})
		return nil
	}, n...)
	if err != nil {
		return nil, err
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].id < nodes[j].id })
	return nodes, nil
}
