// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// OrderStatsJob reads the number of orders per status through
// GetOrderStatsQueryHandler and publishes it to the orders_by_status gauge.
// The schedule comes from STATS_SCHEDULE and defaults to every 30 seconds.
//
// # Usage
//
//	statsJob := jobs.NewOrderStatsJob(statsHandler, businessMetrics, cfg.StatsSchedule, logger)
//	jobManager := jobs.NewJobManager(logger, statsJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		return fmt.Errorf("start jobs: %w", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - A failed refresh is logged and the gauges keep their last values
//   - A job that fails to start stops every job started before it
package jobs
