package live

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/DhavalSuthar-24/crease/internal/match"
)

type sink struct {
	name     string
	notifier match.Notifier
}

// Fanout delivers each notification to every registered sink.
// A failing sink does not stop the others.
type Fanout struct {
	sinks  []sink
	logger *slog.Logger
}

func NewFanout(logger *slog.Logger) *Fanout {
	return &Fanout{logger: logger}
}

// Add registers a sink under a name used in logs and errors.
func (f *Fanout) Add(name string, n match.Notifier) {
	f.sinks = append(f.sinks, sink{name: name, notifier: n})
}

// Names lists the registered sinks in order.
func (f *Fanout) Names() []string {
	names := make([]string, len(f.sinks))
	for i, s := range f.sinks {
		names[i] = s.name
	}
	return names
}

func (f *Fanout) Notify(ctx context.Context, n match.Notification) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.notifier.Notify(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink that holds a connection.
func (f *Fanout) Close() error {
	var errs []error
	for _, s := range f.sinks {
		if c, ok := s.notifier.(io.Closer); ok {
			if err := c.Close(); err != nil {
				f.logger.Warn("sink close failed", "sink", s.name, "error", err)
				errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
			}
		}
	}
	return errors.Join(errs...)
}
