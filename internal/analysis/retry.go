package analysis

import (
	"context"
	"fmt"
	"time"

	"codescope/internal/logging"
)

// invokeWithRetry calls the backend up to maxRetries times. Inter-attempt
// delays grow exponentially (backoffBase * 2^attempt), so they are
// strictly increasing. After the final failure the last error propagates;
// absorbing it into fallback content is the caller's decision.
func (o *Orchestrator) invokeWithRetry(ctx context.Context, prompt, category string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < o.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := o.cfg.BackoffBase * time.Duration(1<<uint(attempt))
			logging.AnalysisDebug("category %s: retry %d after %v", category, attempt, delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		out, err := o.client.Complete(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err
		logging.AnalysisDebug("category %s: attempt %d failed: %v", category, attempt+1, err)
	}
	return "", fmt.Errorf("category %s: %d attempts failed: %w", category, o.cfg.MaxRetries, lastErr)
}
