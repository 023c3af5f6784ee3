package network

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Model is the YAML description of a network.
//
//	name: toggle
//	parameters: [p]
//	variables:
//	  - name: A
//	    update: "!B | p"
//	  - name: B
//	    update: "!A"
//
// A variable without update keeps its value forever.
type Model struct {
	Name       string          `yaml:"name,omitempty"`
	Parameters []string        `yaml:"parameters,omitempty"`
	Variables  []ModelVariable `yaml:"variables"`
}

// ModelVariable is one entry of Model.Variables.
type ModelVariable struct {
	Name   string `yaml:"name"`
	Update string `yaml:"update,omitempty"`
}

// ParseYAML reads a network described as a Model. Unknown fields are
// rejected.
func ParseYAML(r io.Reader) (*Network, error) {
	var m Model
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return m.Network()
}

// Network builds the network described by m.
func (m *Model) Network() (*Network, error) {
	names := make([]string, len(m.Variables))
	for k, v := range m.Variables {
		names[k] = v.Name
	}
	n, err := New(names, m.Parameters...)
	if err != nil {
		return nil, err
	}
	n.Name = m.Name
	for k, v := range m.Variables {
		if v.Update == "" {
			continue
		}
		e, err := n.ParseExpr(v.Update)
		if err != nil {
			return nil, fmt.Errorf("update of %s: %w", v.Name, err)
		}
		n.updates[k] = e
	}
	return n, nil
}

// Model returns the YAML description of n.
func (n *Network) Model() *Model {
	m := &Model{Name: n.Name, Parameters: append([]string(nil), n.params...)}
	for k, name := range n.names {
		m.Variables = append(m.Variables, ModelVariable{Name: name, Update: n.Format(n.updates[k])})
	}
	return m
}

// WriteYAML writes the YAML description of n.
func (n *Network) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(n.Model()); err != nil {
		return err
	}
	return enc.Close()
}
