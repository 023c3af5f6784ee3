package network

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads a network from a file, choosing the format from the extension:
// .bnet, .yaml or .yml. The name of the network defaults to the base name of
// the file.
func Load(path string) (*Network, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".bnet" && ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("%w: %q", ErrFormat, ext)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var n *Network
	if ext == ".bnet" {
		n, err = ParseBnet(f)
	} else {
		n, err = ParseYAML(f)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if n.Name == "" {
		n.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return n, nil
}
