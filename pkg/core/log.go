package core

import "go.uber.org/zap"

// ZapLogger backs Logger with a structured zap logger. Printf carries
// pass/sample-level progress messages at info level; Debugf carries the
// integrator's per-bounce tracing, which is expensive enough to print that
// it should stay off outside of verbose runs.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger builds a Logger backed by a production zap config; verbose
// enables debug-level output (per-bounce integrator tracing).
func NewZapLogger(verbose bool) *ZapLogger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return &ZapLogger{sugar: logger.Sugar()}
}

func (l *ZapLogger) Printf(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *ZapLogger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// NopLogger discards everything; used as the default when a caller doesn't
// wire a Logger explicitly.
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}
func (NopLogger) Debugf(format string, args ...interface{}) {}
