package workers

import (
	"context"
	"log/slog"
	"mood-chat/domain"
	"mood-chat/observability"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type fixedStats domain.SessionStats

func (f fixedStats) Stats(context.Context) (domain.SessionStats, error) {
	return domain.SessionStats(f), nil
}

func TestMonitoringWorker_Samples_Store_Into_Gauges(t *testing.T) {
	req := require.New(t)
	monitor, err := observability.NewMonitor(slog.Default())
	req.NoError(err)
	metrics := observability.NewMetrics()
	source := fixedStats{Queued: 3, Rooms: 4, Connected: 11}
	worker := NewMonitoringWorker(slog.Default(), source, monitor, metrics, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	// Then the first sample lands without waiting for the ticker
	req.Eventually(func() bool {
		return monitor.GetLatest().Sessions.Connected == 11
	}, time.Second, 5*time.Millisecond)
	req.Equal(float64(3), testutil.ToFloat64(metrics.QueueSize))
	req.Equal(float64(4), testutil.ToFloat64(metrics.Rooms))
	req.Equal(float64(11), testutil.ToFloat64(metrics.Connected))

	// When canceled the worker exits cleanly so it is not restarted
	cancel()
	req.NoError(<-done)
}
