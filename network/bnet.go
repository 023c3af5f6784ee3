package network

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseBnet reads a network in the bnet format: one "name, update" line per
// variable, with an optional "targets, factors" header. Text after a # is a
// comment. Update functions may refer to variables declared on later lines.
func ParseBnet(r io.Reader) (*Network, error) {
	type target struct {
		name, update string
		line         int
	}
	var targets []target
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text, _, _ := strings.Cut(sc.Text(), "#")
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		name, update, ok := strings.Cut(text, ",")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: expected \"name, update\"", ErrSyntax, line)
		}
		name, update = strings.TrimSpace(name), strings.TrimSpace(update)
		if strings.EqualFold(name, "targets") && strings.EqualFold(update, "factors") {
			continue
		}
		targets = append(targets, target{name, update, line})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	names := make([]string, len(targets))
	for k, t := range targets {
		names[k] = t.name
	}
	n, err := New(names)
	if err != nil {
		return nil, err
	}
	for k, t := range targets {
		e, err := n.ParseExpr(t.update)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", t.line, err)
		}
		n.updates[k] = e
	}
	return n, nil
}

// WriteBnet writes n in the bnet format. Networks with parameters have no bnet
// representation.
func (n *Network) WriteBnet(w io.Writer) error {
	if len(n.params) > 0 {
		return fmt.Errorf("%w: bnet does not support parameters", ErrFormat)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "targets, factors")
	for k, name := range n.names {
		fmt.Fprintf(bw, "%s, %s\n", name, n.Format(n.updates[k]))
	}
	return bw.Flush()
}
