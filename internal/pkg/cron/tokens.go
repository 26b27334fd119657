package cron

import (
	"context"
	"fmt"
	"log/slog"
)

const JobPruneRefreshTokens = "prune_refresh_tokens"

// TokenPruner deletes refresh tokens past their expiry.
type TokenPruner interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

type TokenJobs struct {
	pruner TokenPruner
	spec   string
}

func NewTokenJobs(pruner TokenPruner, spec string) *TokenJobs {
	return &TokenJobs{pruner: pruner, spec: spec}
}

func (j *TokenJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob(JobPruneRefreshTokens, j.spec, j.PruneRefreshTokens)
}

func (j *TokenJobs) PruneRefreshTokens(ctx context.Context) error {
	deleted, err := j.pruner.DeleteExpired(ctx)
	if err != nil {
		return fmt.Errorf("refresh token cleanup failed: %w", err)
	}
	slog.Info("Cron: Pruned expired refresh tokens", "count", deleted)
	return nil
}
