package analysis

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"codescope/internal/chunker"
	"codescope/internal/llm"
	"codescope/internal/logging"
)

const compressPrompt = "Condense this analysis input, preserving every count, name, and structural detail."

// Config holds orchestration policy knobs.
type Config struct {
	MaxRetries     int
	BackoffBase    time.Duration
	InterCallDelay time.Duration // spacing between sequential calls
	RemoteTimeout  time.Duration // whole-run ceiling, concurrent backends
	LocalTimeout   time.Duration // whole-run ceiling, single-worker backends
	Chunker        chunker.Config
}

// DefaultConfig returns the standard orchestration policy.
func DefaultConfig() Config {
	return Config{
		MaxRetries:     3,
		BackoffBase:    time.Second,
		InterCallDelay: time.Second,
		RemoteTimeout:  5 * time.Minute,
		LocalTimeout:   15 * time.Minute,
		Chunker:        chunker.DefaultConfig(),
	}
}

// Orchestrator fans analysis categories out to the backend and joins
// them into a synthesis. All fields are read-only after construction.
type Orchestrator struct {
	client     llm.Client
	summarizer *chunker.Summarizer
	categories []Category
	cfg        Config
}

// NewOrchestrator builds an orchestrator over the injected client with
// the default category set.
func NewOrchestrator(client llm.Client, cfg Config) *Orchestrator {
	if cfg.MaxRetries <= 0 {
		cfg = DefaultConfig()
	}
	return &Orchestrator{
		client:     client,
		summarizer: chunker.NewSummarizer(client, cfg.Chunker),
		categories: DefaultCategories(),
		cfg:        cfg,
	}
}

// WithCategories replaces the category set. The last entry is the
// synthesis barrier.
func (o *Orchestrator) WithCategories(cats []Category) *Orchestrator {
	o.categories = cats
	return o
}

// Run executes every non-synthesis category (concurrently for backends
// that allow it, strictly one at a time with spacing otherwise), then
// the synthesis category over their completed results. The whole run
// races a backend-class-specific ceiling: on timeout, in-flight attempts
// are abandoned (their late results discarded) and placeholder results
// note the timeout. Run never fails; degraded results are still results.
func (o *Orchestrator) Run(ctx context.Context, in *Input) []Result {
	nonSynth := o.categories[:len(o.categories)-1]
	synth := o.categories[len(o.categories)-1]

	deadline := o.cfg.RemoteTimeout
	if !o.client.Provider().Concurrent() {
		deadline = o.cfg.LocalTimeout
	}

	type indexed struct {
		idx int
		res Result
	}
	// Buffered so abandoned workers can finish and exit after a timeout.
	ch := make(chan indexed, len(nonSynth))

	if o.client.Provider().Concurrent() {
		go func() {
			var g errgroup.Group
			for i, cat := range nonSynth {
				i, cat := i, cat
				g.Go(func() error {
					ch <- indexed{i, o.runCategory(ctx, cat, in)}
					return nil
				})
			}
			_ = g.Wait()
		}()
	} else {
		go func() {
			for i, cat := range nonSynth {
				if i > 0 {
					time.Sleep(o.cfg.InterCallDelay)
				}
				ch <- indexed{i, o.runCategory(ctx, cat, in)}
			}
		}()
	}

	results := make([]Result, len(nonSynth))
	timer := time.NewTimer(deadline)
	defer timer.Stop()

	done := 0
collect:
	for done < len(nonSynth) {
		select {
		case r := <-ch:
			results[r.idx] = r.res
			done++
		case <-timer.C:
			logging.Get(logging.CategoryAnalysis).Warnf(
				"orchestration ceiling %v reached with %d/%d categories done", deadline, done, len(nonSynth))
			break collect
		case <-ctx.Done():
			break collect
		}
	}
	for i := range results {
		if results[i].Category == "" {
			results[i] = Result{
				Category: nonSynth[i].Name,
				Content:  "Analysis timed out before this category completed.",
				Status:   StatusError,
			}
		}
	}

	// Synthesis barrier: built only from the completed (possibly
	// fallback or placeholder) results of every other category.
	synthIn := *in
	synthIn.Prior = results
	results = append(results, o.runCategory(ctx, synth, &synthIn))
	return results
}

// runCategory builds the prompt (compressing it through the chunk
// budgeter when oversized), invokes the backend with retries, and
// degrades to deterministic fallback content on exhaustion or a
// malformed reply.
func (o *Orchestrator) runCategory(ctx context.Context, cat Category, in *Input) Result {
	start := time.Now()
	prompt := cat.Build(in)

	if chunker.EstimateTokens(prompt) > o.cfg.Chunker.ContextThreshold {
		compressed, err := o.summarizer.Summarize(ctx, prompt, compressPrompt)
		if err == nil && compressed != "" && compressed != llm.UnexpectedFormat {
			prompt = compressed
		}
	}

	out, err := o.invokeWithRetry(ctx, prompt, cat.Name)
	if err != nil || out == "" || out == llm.UnexpectedFormat {
		logging.AnalysisDebug("category %s degraded to fallback after %v (err=%v)",
			cat.Name, time.Since(start), err)
		return Result{Category: cat.Name, Content: Fallback(cat.Name, in), Status: StatusFallback}
	}

	logging.AnalysisDebug("category %s completed in %v", cat.Name, time.Since(start))
	return Result{Category: cat.Name, Content: out, Status: StatusOK}
}
