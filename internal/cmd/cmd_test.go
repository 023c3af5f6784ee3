package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	scc "github.com/sybila/biodivine-lib-algo-scc"
	"github.com/sybila/biodivine-lib-algo-scc/network"
)

const (
	toggleModel  = "../../testdata/toggle.bnet"
	switchModel  = "../../testdata/switch.yaml"
	coloredModel = "../../testdata/colored.yaml"
)

// executeCommand runs a fresh root command with args and returns its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func decodeJSON(t *testing.T, args ...string) Report {
	t.Helper()
	out, err := executeCommand(t, append(args, "--format", "json")...)
	require.NoError(t, err, out)
	var r Report
	require.NoError(t, json.Unmarshal([]byte(out), &r), out)
	return r
}

func samples(r Report) []string {
	res := make([]string, len(r.Components))
	for k, c := range r.Components {
		res[k] = strings.Join(c.Sample, ",")
	}
	return res
}

func TestRootCommand(t *testing.T) {
	root := NewRootCmd()
	assert.Equal(t, "scc", root.Use)
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"decompose", "classify", "info"})
}

func TestDecomposeText(t *testing.T) {
	out, err := executeCommand(t, "decompose", toggleModel)
	require.NoError(t, err)
	assert.Contains(t, out, "model toggle: 2 variables, trim=full reach=saturation pivot=hamming")
	assert.Contains(t, out, "2 components")
	assert.Contains(t, out, "00,10")
	assert.Contains(t, out, "01,11")
}

func TestDecomposeStrategies(t *testing.T) {
	for _, trim := range []string{"none", "start", "full"} {
		for _, reach := range []string{"layered", "saturation"} {
			for _, pivot := range []string{"trivial", "hamming"} {
				name := trim + "/" + reach + "/" + pivot
				t.Run(name, func(t *testing.T) {
					r := decodeJSON(t, "decompose", toggleModel,
						"--trim", trim, "--reach", reach, "--pivot", pivot, "--parallel", "2")
					assert.Equal(t, "trim="+trim+" reach="+reach+" pivot="+pivot, r.Config)
					assert.Equal(t, []string{"A", "B"}, r.Variables)
					assert.ElementsMatch(t, []string{"00,10", "01,11"}, samples(r))
					for _, c := range r.Components {
						assert.Equal(t, "2", c.States)
						assert.False(t, c.Truncated)
					}
				})
			}
		}
	}
}

func TestDecomposeYAML(t *testing.T) {
	out, err := executeCommand(t, "decompose", switchModel, "-o", "yaml")
	require.NoError(t, err)
	var r Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &r), out)
	assert.Equal(t, "switch", r.Model)
	assert.Equal(t, []string{"A", "B", "C"}, r.Variables)
	assert.ElementsMatch(t, []string{"100,101", "110,111"}, samples(r))

	r = decodeJSON(t, "decompose", switchModel, "--no-inline")
	assert.Equal(t, []string{"A", "B", "C", "K"}, r.Variables)
	assert.Len(t, r.Components, 4)
}

func TestDecomposeLimit(t *testing.T) {
	r := decodeJSON(t, "decompose", toggleModel, "--limit", "1")
	require.Len(t, r.Components, 2)
	for _, c := range r.Components {
		assert.Len(t, c.Sample, 1)
		assert.True(t, c.Truncated)
	}
}

func TestVerifyAndDot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dot")
	_, err := executeCommand(t, "decompose", switchModel, "--verify", "--dot", dir)
	require.NoError(t, err)
	for _, name := range []string{"scc-000.dot", "scc-001.dot"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "digraph G {"))
	}
}

func TestClassify(t *testing.T) {
	r := decodeJSON(t, "classify", switchModel, "--basins")
	classes := map[string]string{}
	for _, c := range r.Components {
		classes[c.Subspace] = c.Class
	}
	assert.Equal(t, map[string]string{"10*": "attractor", "11*": "transient"}, classes)

	require.NotNil(t, r.FixedPoints)
	assert.Equal(t, "2", r.FixedPoints.States)
	assert.Equal(t, []string{"010", "011"}, r.FixedPoints.Sample)

	require.Len(t, r.Basins, 3)
	basins := map[string][2]string{}
	for _, b := range r.Basins {
		if strings.HasPrefix(b.Attractor, "scc ") {
			b.Attractor = "scc"
		}
		basins[b.Attractor] = [2]string{b.Weak, b.Strong}
	}
	assert.Equal(t, map[string][2]string{
		"scc": {"6", "2"},
		"010": {"4", "1"},
		"011": {"4", "1"},
	}, basins)
}

func TestClassifyText(t *testing.T) {
	out, err := executeCommand(t, "classify", toggleModel)
	require.NoError(t, err)
	assert.Contains(t, out, "attractor")
	assert.Contains(t, out, "0 fixed points")
}

func TestInfo(t *testing.T) {
	out, err := executeCommand(t, "info", switchModel)
	require.NoError(t, err)
	assert.Contains(t, out, "model switch: 3 variables, 0 parameters, 8 states")
	assert.Contains(t, out, "A ^ C")

	out, err = executeCommand(t, "info", coloredModel, "--format", "json", "--bdd-stats")
	require.NoError(t, err)
	var info Info
	require.NoError(t, json.Unmarshal([]byte(out), &info), out)
	assert.Equal(t, []string{"p"}, info.Parameters)
	assert.Equal(t, "8", info.States)
	assert.Equal(t, []string{"A"}, info.Variables[0].Regulators)
	assert.Contains(t, info.BDD, "Varnum:     3")
}

func TestErrors(t *testing.T) {
	_, err := executeCommand(t, "decompose", coloredModel)
	assert.ErrorIs(t, err, scc.ErrColoredGraph)

	_, err = executeCommand(t, "decompose", "model.txt")
	assert.ErrorIs(t, err, network.ErrFormat)

	_, err = executeCommand(t, "decompose", toggleModel, "--trim", "always")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decomposition.trim")

	_, err = executeCommand(t, "decompose")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "decomposition:\n  pivot: trivial\noutput:\n  format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, err := executeCommand(t, "decompose", toggleModel, "--config", path)
	require.NoError(t, err)
	var r Report
	require.NoError(t, json.Unmarshal([]byte(out), &r), out)
	assert.Equal(t, "trim=full reach=saturation pivot=trivial", r.Config)

	t.Setenv("SCC_DECOMPOSITION_TRIM", "none")
	r = decodeJSON(t, "decompose", toggleModel, "--config", path, "--reach", "layered")
	assert.Equal(t, "trim=none reach=layered pivot=trivial", r.Config)
}
