// Package jobs runs periodic maintenance on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type TokenPurger interface {
	PurgeRefreshTokens(ctx context.Context, cutoff time.Time) (int64, error)
}

// PurgeTokens deletes refresh tokens that expired, or were revoked, before
// the time it runs. It implements cron.Job.
type PurgeTokens struct {
	Tokens  TokenPurger
	Log     *zap.Logger
	Timeout time.Duration
	Now     func() time.Time
}

func (j *PurgeTokens) Run() {
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	n, err := j.Tokens.PurgeRefreshTokens(ctx, now())
	if err != nil {
		j.Log.Error("purge refresh tokens", zap.Error(err))
		return
	}
	j.Log.Info("purged refresh tokens", zap.Int64("count", n))
}

// Start schedules job on expr and starts the scheduler. Stop it with
// (*cron.Cron).Stop.
func Start(expr string, job cron.Job, log *zap.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	if _, err := c.AddJob(expr, job); err != nil {
		return nil, fmt.Errorf("schedule %q: %w", expr, err)
	}
	c.Start()
	log.Info("cron started", zap.String("schedule", expr))
	return c, nil
}
