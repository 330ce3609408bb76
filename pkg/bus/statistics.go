package bus

import (
	"time"

	"go.uber.org/zap"
)

// Statistics is a point-in-time snapshot of the router's throughput
// counters, safe to read while Exec/ExecLoop is running concurrently.
type Statistics struct {
	RunTime       time.Duration
	PostCount     uint64
	PostFails     uint64
	DispatchCount uint64
	DispatchFails uint64
	Throughput    float64
}

func (s Statistics) Log(logger *zap.Logger) {
	logger.Info("router statistics",
		zap.Duration("run_time", s.RunTime),
		zap.Uint64("post_count", s.PostCount),
		zap.Uint64("post_fails", s.PostFails),
		zap.Uint64("dispatch_count", s.DispatchCount),
		zap.Uint64("dispatch_fails", s.DispatchFails),
		zap.Float64("throughput", s.Throughput))
}
