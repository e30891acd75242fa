package observability

import (
	"log/slog"
	"mood-chat/domain"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMonitor_Update(t *testing.T) {
	req := require.New(t)
	monitor, err := NewMonitor(slog.Default())
	req.NoError(err)

	// Given nothing sampled yet
	req.True(monitor.GetLatest().At.IsZero())

	// When the session figures are pushed
	snapshot := monitor.Update(domain.SessionStats{Queued: 1, Rooms: 2, Connected: 5})

	// Then the snapshot carries them along with the process figures
	req.Equal(domain.SessionStats{Queued: 1, Rooms: 2, Connected: 5}, snapshot.Sessions)
	req.Equal(int32(os.Getpid()), snapshot.Process.PID)
	req.Positive(snapshot.Process.Goroutines)
	req.False(snapshot.At.IsZero())
	req.Equal(snapshot, monitor.GetLatest())
}

func TestMetrics_ObserveClassifier(t *testing.T) {
	req := require.New(t)
	m := NewMetrics()

	m.ObserveClassifier(0)
	m.FlaggedTotal.WithLabelValues("unsafe").Inc()

	families, err := m.Registry.Gather()
	req.NoError(err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	req.True(names["moodchat_classifier_latency_seconds"])
	req.True(names["moodchat_messages_flagged_total"])
	req.True(names["moodchat_matches_total"])
}
