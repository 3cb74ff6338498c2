package leaderboard

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sells-group/pool-cli/internal/metrics"
	"github.com/sells-group/pool-cli/internal/model"
	"github.com/sells-group/pool-cli/internal/resilience"
)

// pacedWriter writes ranking rows in batches: rows inside a batch go out
// concurrently, batches are spaced by a rate limiter.
type pacedWriter struct {
	batchSize int
	delay     time.Duration
	retry     resilience.RetryConfig
	metrics   *metrics.Metrics
}

func (w *pacedWriter) limiter() *rate.Limiter {
	if w.delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(w.delay), 1)
}

// write applies fn to every entry and returns how many writes succeeded.
// The first failing batch stops the run; rows written before it stay written.
// Cancelling ctx does not stop a run that has started: the caller may stop
// waiting, but every row is still written.
func (w *pacedWriter) write(
	ctx context.Context,
	gameID, kind string,
	entries []model.RankingEntry,
	fn func(context.Context, model.RankingEntry) error,
) (int, error) {
	ctx = context.WithoutCancel(ctx)

	size := w.batchSize
	if size <= 0 {
		size = 1
	}
	retry := w.retry
	if retry.OnRetry == nil {
		retry.OnRetry = resilience.RetryLogger(gameID, "write_"+kind)
	}

	lim := w.limiter()
	written := 0
	for start := 0; start < len(entries); start += size {
		if err := lim.Wait(ctx); err != nil {
			return written, eris.Wrap(err, "leaderboard: wait for write slot")
		}

		batch := entries[start:min(start+size, len(entries))]
		g, gctx := errgroup.WithContext(ctx)
		for _, e := range batch {
			g.Go(func() error {
				err := resilience.Do(gctx, retry, func(ctx context.Context) error {
					return fn(ctx, e)
				})
				w.metrics.RankingWrite(gameID, kind, err)
				return eris.Wrapf(err, "leaderboard: write %s ranking for %s", kind, e.ParticipantID)
			})
		}
		if err := g.Wait(); err != nil {
			return written, err
		}
		written += len(batch)
	}
	return written, nil
}
