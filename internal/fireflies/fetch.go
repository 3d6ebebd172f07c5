package fireflies

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/culstrup/fireflies-raycast/internal/logging"
)

// PerFetchTimeout bounds each individual transcript fetch in FetchMany.
const PerFetchTimeout = 60 * time.Second

// MaxFetchWorkers caps the number of concurrent fetches.
const MaxFetchWorkers = 10

// FetchResult pairs a transcript ID with its fetch outcome. Transcript is
// nil when the fetch failed or the ID was not found.
type FetchResult struct {
	ID         string
	Transcript *Transcript
	Err        error
}

// FetchMany fetches several transcripts concurrently with bounded
// parallelism. Results preserve the order of ids. Individual failures are
// recorded per result; an error is returned only when every fetch failed.
func (c *Client) FetchMany(ctx context.Context, ids []string, workers int) ([]FetchResult, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if workers <= 0 || workers > MaxFetchWorkers {
		workers = MaxFetchWorkers
	}
	if workers > len(ids) {
		workers = len(ids)
	}

	results := make([]FetchResult, len(ids))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			fetchCtx, cancel := context.WithTimeout(ctx, PerFetchTimeout)
			defer cancel()

			t, err := c.TranscriptByID(fetchCtx, id)
			results[i] = FetchResult{ID: id, Transcript: t, Err: err}
			if err != nil {
				c.logger.Warn("transcript fetch failed",
					logging.Service("fireflies"),
					logging.TranscriptID(id),
					logging.Err(err))
			}
		}(i, id)
	}
	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed == len(ids) {
		return results, fmt.Errorf("all %d transcript fetches failed: %w", len(ids), results[0].Err)
	}

	c.logger.Info("batch transcript fetch complete",
		logging.Service("fireflies"),
		slog.Int("requested", len(ids)),
		slog.Int("failed", failed))
	return results, nil
}
