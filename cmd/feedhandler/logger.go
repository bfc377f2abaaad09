package main

import "go.uber.org/zap"

// newLogger builds the reporter-scale structured logger. Production mode uses zap's JSON
// encoder; development mode uses its human-readable console encoder. Either way this is a
// second-scale logger for the reporter goroutine only — the data plane never touches it, see
// the coldlog package for the nanosecond-budget cold path.
func newLogger(prod bool) (*zap.SugaredLogger, func() error) {
	var zapLogger *zap.Logger
	if prod {
		zapLogger = zap.Must(zap.NewProduction())
	} else {
		zapLogger = zap.Must(zap.NewDevelopment())
	}
	return zapLogger.Sugar(), zapLogger.Sync
}
