package config

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap/zapcore"

	scc "github.com/sybila/biodivine-lib-algo-scc"
	"github.com/sybila/biodivine-lib-algo-scc/internal/logging"
)

// ValidationError is an invalid configuration value.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is the list of errors found by Validate.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidOutputFormats returns the accepted report formats.
func ValidOutputFormats() []string {
	return []string{"text", "json", "yaml"}
}

// Validate returns every invalid value of c.
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors
	add := func(field string, value any, err error) {
		if err != nil {
			errs = append(errs, ValidationError{Field: field, Value: value, Message: err.Error()})
		}
	}
	d := c.Decomposition
	_, err := scc.ParseTrimLevel(d.Trim)
	add("decomposition.trim", d.Trim, err)
	_, err = scc.ParseReachStrategy(d.Reachability)
	add("decomposition.reachability", d.Reachability, err)
	_, err = scc.ParsePivotStrategy(d.Pivot)
	add("decomposition.pivot", d.Pivot, err)
	if d.Parallelism < 0 {
		errs = append(errs, ValidationError{"decomposition.parallelism", d.Parallelism, "must not be negative"})
	}

	for field, value := range map[string]int{
		"bdd.nodesize":    c.BDD.Nodesize,
		"bdd.cachesize":   c.BDD.Cachesize,
		"bdd.cacheratio":  c.BDD.Cacheratio,
		"bdd.maxnodesize": c.BDD.Maxnodesize,
	} {
		if value < 0 {
			errs = append(errs, ValidationError{field, value, "must not be negative"})
		}
	}

	_, err = zapcore.ParseLevel(c.Logging.Level)
	add("logging.level", c.Logging.Level, err)
	if !slices.Contains(logging.ValidFormats(), c.Logging.Format) {
		errs = append(errs, ValidationError{"logging.format", c.Logging.Format,
			fmt.Sprintf("must be one of %v", logging.ValidFormats())})
	}
	if !slices.Contains(ValidOutputFormats(), c.Output.Format) {
		errs = append(errs, ValidationError{"output.format", c.Output.Format,
			fmt.Sprintf("must be one of %v", ValidOutputFormats())})
	}
	slices.SortFunc(errs, func(a, b ValidationError) int { return strings.Compare(a.Field, b.Field) })
	return errs
}
