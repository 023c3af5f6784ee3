package scc

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sybila/biodivine-lib-algo-scc/symbolic"
)

// engine holds the configuration and the loggers shared by the components of
// a decomposition.
type engine struct {
	cfg     Config
	obs     Observer
	chain   *zap.Logger
	reach   *zap.Logger
	trim    *zap.Logger
	hamming *zap.Logger
}

func newEngine(cfg Config, opts []Option) *engine {
	o := makeoptions(opts)
	return &engine{
		cfg:     cfg,
		obs:     o.observer,
		chain:   o.logger.Named("chain"),
		reach:   o.logger.Named("reach"),
		trim:    o.logger.Named("trim"),
		hamming: o.logger.Named("hamming"),
	}
}

// debug logs a message with the size of set, which is only computed when the
// debug level is enabled.
func debug(log *zap.Logger, msg string, set symbolic.Set, fields ...zap.Field) {
	if ce := log.Check(zapcore.DebugLevel, msg); ce != nil {
		fields = append(fields,
			zap.Stringer("states", set.Cardinality()),
			zap.Int("nodes", set.SymbolicSize()))
		ce.Write(fields...)
	}
}
