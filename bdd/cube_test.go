package bdd

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestCube(t *testing.T) {
	b, _ := New(5)
	valuations := [][]bool{
		{false, false, false, false, false},
		{true, true, true, true, true},
		{true, false, true, false, false},
	}
	for _, v := range valuations {
		n := b.Cube(v)
		if actual := b.Satcount(n); actual.Int64() != 1 {
			t.Errorf("Cube(%v): expected 1 solution, actual %s", v, actual)
		}
		if actual := b.Witness(n); fmt.Sprint(actual) != fmt.Sprint(v) {
			t.Errorf("Witness(Cube(%v)): actual %v", v, actual)
		}
		if actual := b.Nodecount(n); actual != 5 {
			t.Errorf("Nodecount(Cube(%v)): expected 5, actual %d", v, actual)
		}
	}
	if res := b.Cube([]bool{true}); res != nil {
		t.Errorf("Cube with a wrong size should return nil")
	}
}

func TestFullsatone(t *testing.T) {
	b, _ := New(4)
	sets := []Node{
		b.True(),
		b.Ithvar(2),
		b.Or(b.And(b.Ithvar(0), b.NIthvar(3)), b.Ithvar(1)),
		b.Apply(b.Ithvar(1), b.Ithvar(3), OPxor),
	}
	for _, n := range sets {
		one := b.Fullsatone(n)
		if actual := b.Satcount(one); actual.Int64() != 1 {
			t.Errorf("Fullsatone(%s): expected 1 solution, actual %s", b.Print(n), actual)
		}
		if !b.Equal(b.Apply(one, n, OPimp), b.True()) {
			t.Errorf("Fullsatone(%s) is not included in the set", b.Print(n))
		}
	}
	if !b.Equal(b.Fullsatone(b.False()), b.False()) {
		t.Errorf("Fullsatone(False) should be False")
	}
	if b.Witness(b.False()) != nil {
		t.Errorf("Witness(False) should be nil")
	}
}

func TestPrintDot(t *testing.T) {
	b, _ := New(3)
	n := b.And(b.Ithvar(0), b.NIthvar(2))
	var buf bytes.Buffer
	err := b.PrintDot(&buf, func(level int) string { return fmt.Sprintf("v%d", level) }, n)
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "digraph G {") || !strings.Contains(out, "v0") || !strings.Contains(out, "v2") {
		t.Errorf("unexpected DOT output:\n%s", out)
	}
	if strings.Contains(out, "v1") {
		t.Errorf("variable 1 should not appear in the DOT output:\n%s", out)
	}
}

func TestNodeAccessors(t *testing.T) {
	b, _ := New(4)
	if b.Varnum() != 4 {
		t.Fatalf("Varnum: expected 4, actual %d", b.Varnum())
	}
	// x1 & x3
	n := b.And(b.Ithvar(1), b.Ithvar(3))
	if l := b.Label(n); l != 1 {
		t.Errorf("Label(x1 & x3): expected 1, actual %d", l)
	}
	if !b.Equal(b.Low(n), b.False()) {
		t.Errorf("Low(x1 & x3): expected False, actual %s", b.Print(b.Low(n)))
	}
	high := b.High(n)
	if !b.Equal(high, b.Ithvar(3)) {
		t.Errorf("High(x1 & x3): expected x3, actual %s", b.Print(high))
	}
	if l := b.Label(high); l != 3 {
		t.Errorf("Label(x3): expected 3, actual %d", l)
	}
	for _, c := range []Node{b.True(), b.False()} {
		if l := b.Label(c); l != 4 {
			t.Errorf("Label(%s): expected Varnum, actual %d", b.Print(c), l)
		}
	}
	if b.Label(nil) != -1 || !b.Errored() {
		t.Errorf("Label(nil): expected -1 and an error")
	}

	c, _ := New(4)
	nodes := []Node{c.Ithvar(0), c.Or(c.Ithvar(0), c.NIthvar(2)), c.Cube([]bool{true, false, true, false})}
	size := c.Tablesize()
	// the callback runs with the lock held, so it cannot call c
	err := c.Allnodes(func(id, level, low, high int) error {
		if id >= size || low >= size || high >= size {
			t.Errorf("node %d (%d, %d) outside of a table of size %d", id, low, high, size)
		}
		return nil
	}, nodes...)
	if err != nil {
		t.Errorf("Allnodes: unexpected error %s", err)
	}
}

func TestAndExist(t *testing.T) {
	b, _ := New(3)
	// ∃x1 . (x0 & x1) & (x1 | x2) == x0
	n := b.AndExist(b.Makeset([]int{1}), b.And(b.Ithvar(0), b.Ithvar(1)), b.Or(b.Ithvar(1), b.Ithvar(2)))
	if !b.Equal(n, b.Ithvar(0)) {
		t.Errorf("AndExist: expected x0, actual %s", b.Print(n))
	}
	// x0 <=> x0 is true, x0 => !x0 is !x0
	if !b.Equal(b.Equiv(b.Ithvar(0), b.Ithvar(0)), b.True()) {
		t.Errorf("Equiv(x0, x0): expected True")
	}
	if !b.Equal(b.Imp(b.Ithvar(0), b.NIthvar(0)), b.NIthvar(0)) {
		t.Errorf("Imp(x0, !x0): expected !x0")
	}
}
