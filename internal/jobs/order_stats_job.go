package jobs

import (
	"context"
	"log/slog"

	"ordering/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultStatsSchedule runs the statistics refresh every 30 seconds.
const DefaultStatsSchedule = "*/30 * * * * *"

type (
	OrderStatsReader interface {
		Handle(ctx context.Context, query queries.GetOrderStatsQuery) (queries.GetOrderStatsQueryResponse, error)
	}

	OrderStatsRecorder interface {
		RecordStats(stats queries.GetOrderStatsQueryResponse)
	}
)

// OrderStatsJob periodically reads per-status order counts and hands them to
// the metrics recorder.
type OrderStatsJob struct {
	reader   OrderStatsReader
	recorder OrderStatsRecorder
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewOrderStatsJob(
	reader OrderStatsReader,
	recorder OrderStatsRecorder,
	schedule string,
	logger *slog.Logger,
) *OrderStatsJob {
	if schedule == "" {
		schedule = DefaultStatsSchedule
	}
	return &OrderStatsJob{
		reader:   reader,
		recorder: recorder,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_stats_job"),
	}
}

// Start registers the refresh on the schedule and starts the scheduler.
// An invalid schedule is returned as an error.
func (j *OrderStatsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order stats job started", "schedule", j.schedule)
	return nil
}

// Run performs one refresh. Failures are logged and the previous gauge
// values are kept.
func (j *OrderStatsJob) Run(ctx context.Context) {
	stats, err := j.reader.Handle(ctx, queries.NewGetOrderStatsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Order stats refresh failed", "error", err)
		return
	}

	j.recorder.RecordStats(stats)
	j.logger.DebugContext(ctx, "Order stats refreshed", "total", stats.Total())
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (j *OrderStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order stats job stopped")
}
