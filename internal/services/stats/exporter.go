package stats

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/dartscore-go/internal/dependencies/clock"
	"github.com/mcoot/dartscore-go/internal/model"
)

// DefaultExportTimeout bounds a single sink write
const DefaultExportTimeout = 10 * time.Second

// Sink receives finished game summaries
type Sink interface {
	Name() string
	Record(ctx context.Context, stats *model.GameStatistics) error
}

// Exporter hands finished games to every sink in the background.
// Sink failures are logged and never reported to the caller.
type Exporter struct {
	sinks   []Sink
	clock   clock.Clock
	logger  *slog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewExporter creates a new Exporter
func NewExporter(clock clock.Clock, logger *slog.Logger, sinks ...Sink) *Exporter {
	return &Exporter{
		sinks:   sinks,
		clock:   clock,
		logger:  logger,
		timeout: DefaultExportTimeout,
	}
}

// Export summarises the game now and writes the summary to the sinks
// asynchronously. Each sink is tried exactly once.
func (e *Exporter) Export(g *model.GameState) model.GameStatistics {
	summary := Summarize(g, e.clock.Now())

	for _, sink := range e.sinks {
		e.wg.Add(1)
		go func(sink Sink, stats model.GameStatistics) {
			defer e.wg.Done()
			e.record(sink, &stats)
		}(sink, cloneStatistics(summary))
	}

	return summary
}

func (e *Exporter) record(sink Sink, stats *model.GameStatistics) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("statistics sink panicked",
				slog.String("sink", sink.Name()),
				slog.String("game_id", string(stats.GameID)),
				slog.Any("panic", r),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	if err := sink.Record(ctx, stats); err != nil {
		e.logger.Error("failed to export statistics",
			slog.String("sink", sink.Name()),
			slog.String("game_id", string(stats.GameID)),
			slog.String("error", err.Error()),
		)
		return
	}

	e.logger.Info("statistics exported",
		slog.String("sink", sink.Name()),
		slog.String("game_id", string(stats.GameID)),
	)
}

// Wait blocks until all in-flight exports have finished
func (e *Exporter) Wait() {
	e.wg.Wait()
}

func cloneStatistics(s model.GameStatistics) model.GameStatistics {
	s.Players = append([]model.PlayerStatistics(nil), s.Players...)
	if s.EndTime != nil {
		end := *s.EndTime
		s.EndTime = &end
	}
	return s
}
