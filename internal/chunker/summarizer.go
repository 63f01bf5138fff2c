package chunker

import (
	"context"
	"fmt"
	"strings"

	"codescope/internal/llm"
	"codescope/internal/logging"
)

const (
	segmentPrompt = "Summarize the key points of this segment."
	reducePrompt  = "Summarize these summaries into a single coherent summary."
)

// Config holds the budgeting parameters. All values are token counts
// except RecursionLimit.
type Config struct {
	ChunkSize        int // max tokens per map segment
	OverlapSize      int // trailing tokens carried into the next segment
	RecursionLimit   int // max reduce levels before forced truncation
	ContextThreshold int // max tokens for a single backend call
}

// DefaultConfig returns the standard budgets.
func DefaultConfig() Config {
	return Config{
		ChunkSize:        3500,
		OverlapSize:      100,
		RecursionLimit:   3,
		ContextThreshold: 3800,
	}
}

// Summarizer compresses oversized text through the backend with bounded
// recursion. Values are read-only per invocation; a Summarizer is safe
// for concurrent use.
type Summarizer struct {
	client llm.Client
	cfg    Config
}

// NewSummarizer creates a summarizer over the given backend client.
func NewSummarizer(client llm.Client, cfg Config) *Summarizer {
	if cfg.ChunkSize <= 0 {
		cfg = DefaultConfig()
	}
	return &Summarizer{client: client, cfg: cfg}
}

// Summarize returns a summary of text guided by prompt. Text within the
// context threshold goes to the backend in one call. Oversized text is
// chunked, each chunk summarized independently (a failing chunk is
// dropped, not fatal), and the surviving summaries reduced - recursively
// when still oversized, up to the recursion ceiling. Past the ceiling the
// input is truncated to the threshold and summarized directly: degraded
// quality, not an error.
func (s *Summarizer) Summarize(ctx context.Context, text, prompt string) (string, error) {
	return s.summarize(ctx, text, prompt, 0)
}

func (s *Summarizer) summarize(ctx context.Context, text, prompt string, depth int) (string, error) {
	tokens := EstimateTokens(text)

	if tokens <= s.cfg.ContextThreshold {
		return s.client.CompleteWithSystem(ctx, prompt, text)
	}

	if depth >= s.cfg.RecursionLimit {
		limit := s.cfg.ContextThreshold * charsPerToken
		logging.ChunkerDebug("recursion ceiling at depth %d, truncating %d tokens to %d",
			depth, tokens, s.cfg.ContextThreshold)
		return s.client.CompleteWithSystem(ctx, prompt, text[:limit])
	}

	segments := Chunk(text, s.cfg.ChunkSize, s.cfg.OverlapSize)
	logging.ChunkerDebug("depth %d: %d tokens split into %d segments", depth, tokens, len(segments))

	summaries := make([]string, 0, len(segments))
	var lastErr error
	for i, seg := range segments {
		out, err := s.client.CompleteWithSystem(ctx, segmentPrompt, seg)
		if err != nil {
			// Degrade by omission: the failing segment just does not
			// contribute to the reduce step.
			logging.ChunkerDebug("segment %d/%d failed: %v", i+1, len(segments), err)
			lastErr = err
			continue
		}
		summaries = append(summaries, out)
	}
	if len(summaries) == 0 {
		return "", fmt.Errorf("all %d segment summaries failed: %w", len(segments), lastErr)
	}

	combined := strings.Join(summaries, "\n\n")
	if EstimateTokens(combined) > s.cfg.ContextThreshold {
		return s.summarize(ctx, combined, reducePrompt, depth+1)
	}
	return s.client.CompleteWithSystem(ctx, prompt, combined)
}
