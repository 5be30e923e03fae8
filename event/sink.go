package event

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Sink delivers outcomes to a host.
type Sink interface {
	Post(ctx context.Context, o Outcome) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, o Outcome) error

// Post calls f.
func (f SinkFunc) Post(ctx context.Context, o Outcome) error {
	return f(ctx, o)
}

// JSONSink writes one JSON object per line. Safe for concurrent use.
type JSONSink struct {
	enc      *json.Encoder
	legacyID string
	mu       sync.Mutex
}

// NewJSONSink creates a sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONSink{enc: enc}
}

// WithLegacyID switches the sink to the legacy payload shape, tagging every
// outcome with id.
func (s *JSONSink) WithLegacyID(id string) *JSONSink {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.legacyID = id
	return s
}

// Post encodes o as a single line.
func (s *JSONSink) Post(ctx context.Context, o Outcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.legacyID != "" {
		return s.enc.Encode(o.Legacy(s.legacyID))
	}
	return s.enc.Encode(o)
}

// LogSink records outcomes in a zap logger.
type LogSink struct {
	log *zap.Logger
}

// NewLogSink creates a sink logging to l. A nil logger discards.
func NewLogSink(l *zap.Logger) *LogSink {
	if l == nil {
		l = zap.NewNop()
	}
	return &LogSink{log: l}
}

// Post logs o at info level.
func (s *LogSink) Post(_ context.Context, o Outcome) error {
	s.log.Info("house outcome",
		zap.String("event", string(o.Event)),
		zap.String("message", o.Message),
		zap.Strings("reasons", o.Reasons),
		zap.String("state", o.State),
	)
	return nil
}

type multiSink []Sink

// Multi posts to every sink in order and stops at the first error.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

func (m multiSink) Post(ctx context.Context, o Outcome) error {
	for _, s := range m {
		if err := s.Post(ctx, o); err != nil {
			return err
		}
	}
	return nil
}
