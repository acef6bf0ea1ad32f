package telemetry

import "go.uber.org/zap"

// NewLogger returns a development zap.Logger when dev is true and a
// production one otherwise, or a no-op logger when either fails to build
// (stderr unavailable, etc.) — a Snapshot must never fail to construct
// over a logging problem.
func NewLogger(dev bool) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if dev {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return log
}
