// Package config holds the configuration of the command line tool, read
// with viper from defaults, an optional YAML file, environment variables
// (prefix SCC_) and command line flags.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	scc "github.com/sybila/biodivine-lib-algo-scc"
	"github.com/sybila/biodivine-lib-algo-scc/bdd"
)

// Config is the configuration of the scc tool.
type Config struct {
	Decomposition DecompositionConfig `mapstructure:"decomposition"`
	BDD           BDDConfig           `mapstructure:"bdd"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
	Output        OutputConfig        `mapstructure:"output"`
	Model         ModelConfig         `mapstructure:"model"`
}

// DecompositionConfig selects the strategies of the decomposition.
type DecompositionConfig struct {
	// Trim is one of none, start or full.
	Trim string `mapstructure:"trim"`
	// Reachability is one of layered or saturation.
	Reachability string `mapstructure:"reachability"`
	// Pivot is one of trivial or hamming.
	Pivot string `mapstructure:"pivot"`
	// Parallelism is the number of goroutines used to process tasks.
	Parallelism int `mapstructure:"parallelism"`
}

// BDDConfig sets the sizes of the BDD node table and caches. Zero values
// keep the defaults of package bdd.
type BDDConfig struct {
	Nodesize    int `mapstructure:"nodesize"`
	Cachesize   int `mapstructure:"cachesize"`
	Cacheratio  int `mapstructure:"cacheratio"`
	Maxnodesize int `mapstructure:"maxnodesize"`
}

// LoggingConfig sets the level and format of logs.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is not empty.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// OutputConfig sets the format of reports: text, json or yaml.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// ModelConfig controls the transformations applied to loaded models.
type ModelConfig struct {
	InlineConstants bool `mapstructure:"inline_constants"`
}

// Default returns the default configuration.
func Default() *Config {
	def := scc.DefaultConfig()
	return &Config{
		Decomposition: DecompositionConfig{
			Trim:         def.Trim.String(),
			Reachability: def.Reachability.String(),
			Pivot:        def.Pivot.String(),
			Parallelism:  def.Parallelism,
		},
		Logging: LoggingConfig{Level: "warn", Format: "console"},
		Output:  OutputConfig{Format: "text"},
		Model:   ModelConfig{InlineConstants: true},
	}
}

// SetDefaults registers the default values on v, so that every key is known
// to v even without a config file.
func SetDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("decomposition.trim", defaults.Decomposition.Trim)
	v.SetDefault("decomposition.reachability", defaults.Decomposition.Reachability)
	v.SetDefault("decomposition.pivot", defaults.Decomposition.Pivot)
	v.SetDefault("decomposition.parallelism", defaults.Decomposition.Parallelism)

	v.SetDefault("bdd.nodesize", defaults.BDD.Nodesize)
	v.SetDefault("bdd.cachesize", defaults.BDD.Cachesize)
	v.SetDefault("bdd.cacheratio", defaults.BDD.Cacheratio)
	v.SetDefault("bdd.maxnodesize", defaults.BDD.Maxnodesize)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("metrics.addr", defaults.Metrics.Addr)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("model.inline_constants", defaults.Model.InlineConstants)
}

// ConfigDir returns the directory of the user configuration file.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "scc")
}

// Init prepares v: defaults, config file (cfgFile if not empty, else
// config.yaml in ConfigDir or in the current directory) and environment
// variables. A missing config file is not an error unless cfgFile is set.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}
	v.AutomaticEnv()
	v.SetEnvPrefix("SCC")
	// SCC_DECOMPOSITION_TRIM for decomposition.trim
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && (cfgFile != "" || !errors.As(err, &notFound)) {
		return err
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return &cfg, nil
}

// Scc returns the configuration of the decomposition. The configuration
// must be valid.
func (c *Config) Scc() scc.Config {
	trim, _ := scc.ParseTrimLevel(c.Decomposition.Trim)
	reach, _ := scc.ParseReachStrategy(c.Decomposition.Reachability)
	pivot, _ := scc.ParsePivotStrategy(c.Decomposition.Pivot)
	return scc.Config{
		Trim:         trim,
		Reachability: reach,
		Pivot:        pivot,
		Parallelism:  c.Decomposition.Parallelism,
	}
}

// BDDOptions returns the options of the BDD engine.
func (c *Config) BDDOptions() []bdd.Option {
	var res []bdd.Option
	if c.BDD.Nodesize > 0 {
		res = append(res, bdd.Nodesize(c.BDD.Nodesize))
	}
	if c.BDD.Cachesize > 0 {
		res = append(res, bdd.Cachesize(c.BDD.Cachesize))
	}
	if c.BDD.Cacheratio > 0 {
		res = append(res, bdd.Cacheratio(c.BDD.Cacheratio))
	}
	if c.BDD.Maxnodesize > 0 {
		res = append(res, bdd.Maxnodesize(c.BDD.Maxnodesize))
	}
	return res
}
