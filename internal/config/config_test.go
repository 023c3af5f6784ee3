package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scc "github.com/sybila/biodivine-lib-algo-scc"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.Validate())
	assert.Equal(t, scc.DefaultConfig(), cfg.Scc())
	assert.Empty(t, cfg.BDDOptions())
}

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	require.NoError(t, Init(v, ""))
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scc.yaml")
	content := `
decomposition:
  trim: none
  reachability: layered
  pivot: trivial
  parallelism: 4
bdd:
  nodesize: 10000
  cachesize: 5000
output:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	v := viper.New()
	require.NoError(t, Init(v, path))
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, scc.Config{
		Trim:         scc.TrimNone,
		Reachability: scc.Layered,
		Pivot:        scc.PivotTrivial,
		Parallelism:  4,
	}, cfg.Scc())
	assert.Len(t, cfg.BDDOptions(), 2)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestMissingFile(t *testing.T) {
	v := viper.New()
	assert.Error(t, Init(v, filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SCC_DECOMPOSITION_PIVOT", "trivial")
	t.Setenv("SCC_LOGGING_LEVEL", "debug")
	v := viper.New()
	require.NoError(t, Init(v, ""))
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, scc.PivotTrivial, cfg.Scc().Pivot)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Decomposition.Trim = "always"
	cfg.Decomposition.Parallelism = -1
	cfg.BDD.Cachesize = -5
	cfg.Logging.Format = "xml"
	cfg.Output.Format = "csv"
	errs := cfg.Validate()
	require.Len(t, errs, 5)
	fields := make([]string, len(errs))
	for k, e := range errs {
		fields[k] = e.Field
	}
	assert.Equal(t, []string{
		"bdd.cachesize",
		"decomposition.parallelism",
		"decomposition.trim",
		"logging.format",
		"output.format",
	}, fields)
	assert.Contains(t, errs.Error(), "5 validation errors")

	v := viper.New()
	SetDefaults(v)
	v.Set("decomposition.reachability", "bfs")
	_, err := Load(v)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "decomposition.reachability", verrs[0].Field)
	assert.Contains(t, verrs.Error(), "got: bfs")
}
