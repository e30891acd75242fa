package workers

import (
	"context"
	"log/slog"
	"mood-chat/domain"
	"mood-chat/observability"
	"time"
)

const DefaultMonitoringInterval = 5 * time.Second

// StatsSource is the session store as seen by the monitoring worker.
type StatsSource interface {
	Stats(ctx context.Context) (domain.SessionStats, error)
}

// MonitoringWorker periodically samples the session store and the process
// into the Monitor and the Prometheus gauges.
type MonitoringWorker struct {
	log      *slog.Logger
	source   StatsSource
	monitor  *observability.Monitor
	metrics  *observability.Metrics
	interval time.Duration
}

func NewMonitoringWorker(log *slog.Logger, source StatsSource, monitor *observability.Monitor,
	metrics *observability.Metrics, interval time.Duration) *MonitoringWorker {
	if interval <= 0 {
		interval = DefaultMonitoringInterval
	}
	return &MonitoringWorker{
		log:      log,
		source:   source,
		monitor:  monitor,
		metrics:  metrics,
		interval: interval,
	}
}

func (w *MonitoringWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sample(ctx)
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping monitoring")
			return nil
		case <-ticker.C:
			w.sample(ctx)
		}
	}
}

func (w *MonitoringWorker) sample(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.interval)
	defer cancel()

	stats, err := w.source.Stats(ctx)
	if err != nil {
		w.log.Debug("Session stats unavailable", "error", err)
		return
	}
	w.metrics.QueueSize.Set(float64(stats.Queued))
	w.metrics.Rooms.Set(float64(stats.Rooms))
	w.metrics.Connected.Set(float64(stats.Connected))

	snapshot := w.monitor.Update(stats)
	w.metrics.ProcessRSS.Set(float64(snapshot.Process.RSSBytes))
	w.metrics.ProcessCPU.Set(snapshot.Process.CPUPercent)
}
