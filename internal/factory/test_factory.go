package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/dartscore-go/internal/dependencies/mocks"
	"github.com/mcoot/dartscore-go/internal/services/stats"
	"github.com/mcoot/dartscore-go/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Extra sinks receive exported statistics next to the storage history.
func NewTestApp(sinks ...stats.Sink) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	all := append([]stats.Sink{stats.NewStorageSink(store)}, sinks...)
	app := newWithDependencies(store, mockClock, mockRandom, logger, all...)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
