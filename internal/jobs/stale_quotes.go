package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StaleQuotesJobName is the name of the periodic quote staleness sweep
const StaleQuotesJobName = "stale_quotes_sweep"

// QuoteSweeper marks current quotes older than the cutoff as stale.
// Implemented by the quote repository; the interface keeps this package
// from importing it directly.
type QuoteSweeper interface {
	MarkStaleOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// StaleQuotesJob periodically marks aged quotes stale so clients stop
// treating long-forgotten prices as live.
type StaleQuotesJob struct {
	sweeper QuoteSweeper
	maxAge  time.Duration
	logger  *zap.Logger
}

func NewStaleQuotesJob(sweeper QuoteSweeper, maxAge time.Duration, logger *zap.Logger) *StaleQuotesJob {
	return &StaleQuotesJob{
		sweeper: sweeper,
		maxAge:  maxAge,
		logger:  logger,
	}
}

// Run executes one sweep. Called by the scheduler.
func (j *StaleQuotesJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	cutoff := start.Add(-j.maxAge)

	marked, err := j.sweeper.MarkStaleOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("stale quote sweep failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return
	}

	j.logger.Info("stale quote sweep completed",
		zap.Int64("quotes_marked", marked),
		zap.Time("cutoff", cutoff),
		zap.Duration("duration", time.Since(start)),
	)
}

// RegisterStaleQuotesJob wires the sweep into the scheduler under the
// given cron expression.
func RegisterStaleQuotesJob(s *Scheduler, sweeper QuoteSweeper, maxAge time.Duration, cronExpr string, logger *zap.Logger) error {
	job := NewStaleQuotesJob(sweeper, maxAge, logger)
	return s.AddJob(StaleQuotesJobName, cronExpr, job.Run)
}
