package pipeline

import (
	"context"

	"go.uber.org/zap"
)

// LogSink is an ErrorSink that records stage failures on the shared logger.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink constructs a LogSink.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		panic("log sink requires logger")
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Report(ctx context.Context, err error) {
	logger := s.logger
	if traceID, ok := TraceID(ctx); ok {
		logger = logger.With(zap.String("trace_id", traceID))
	}
	logger.Error("activation stage failed", zap.Error(err))
}

var _ ErrorSink = (*LogSink)(nil)
