package chunker

import (
	"strings"
	"testing"
)

func TestChunkEmptyText(t *testing.T) {
	if got := Chunk("", 100, 10); got != nil {
		t.Errorf("expected nil for empty text, got %d segments", len(got))
	}
}

func TestChunkShortTextSingleSegment(t *testing.T) {
	text := "short text"
	segs := Chunk(text, 100, 10)
	if len(segs) != 1 || segs[0] != text {
		t.Errorf("expected single identical segment, got %v", segs)
	}
}

func TestChunkSegmentsRespectBudget(t *testing.T) {
	// 12,000 estimated tokens of continuous text.
	text := strings.Repeat("abcd", 12000)
	const chunkSize, overlap = 3500, 100

	segs := Chunk(text, chunkSize, overlap)
	for i, s := range segs {
		if EstimateTokens(s) > chunkSize {
			t.Errorf("segment %d exceeds budget: %d tokens", i, EstimateTokens(s))
		}
	}

	// Segment count should track ceil(total / (chunkSize - overlap))
	// within a small boundary-snapping tolerance.
	want := (12000 + chunkSize - overlap - 1) / (chunkSize - overlap)
	if len(segs) < want-1 || len(segs) > want+2 {
		t.Errorf("got %d segments, want about %d", len(segs), want)
	}
}

func TestChunkConsecutiveSegmentsOverlap(t *testing.T) {
	text := strings.Repeat("z", 4000) // no boundary markers, hard slicing
	const chunkSize, overlap = 100, 10
	overlapChars := overlap * charsPerToken

	segs := Chunk(text, chunkSize, overlap)
	if len(segs) < 2 {
		t.Fatalf("expected multiple segments, got %d", len(segs))
	}
	for i := 0; i+1 < len(segs); i++ {
		next := segs[i+1]
		if len(next) < overlapChars {
			continue
		}
		if !strings.HasSuffix(segs[i], next[:overlapChars]) {
			t.Errorf("segments %d and %d share no boundary region", i, i+1)
		}
	}
}

func TestChunkSnapsToSentenceBoundary(t *testing.T) {
	// One sentence end well inside the window; the first segment should
	// stop right after it rather than mid-word.
	sentence := strings.Repeat("w", 300) + ". "
	text := sentence + strings.Repeat("v", 300)

	segs := Chunk(text, 100, 0) // 400-char window
	if len(segs) < 2 {
		t.Fatalf("expected a split, got %d segments", len(segs))
	}
	if !strings.HasSuffix(segs[0], ". ") {
		t.Errorf("first segment did not snap to sentence boundary: %q", segs[0][len(segs[0])-10:])
	}
}

func TestChunkAlwaysMakesProgress(t *testing.T) {
	// Overlap bigger than the chunk must not stall the loop.
	text := strings.Repeat("q", 2000)
	segs := Chunk(text, 50, 50)
	if len(segs) == 0 {
		t.Fatal("no segments produced")
	}
	total := 0
	for _, s := range segs {
		total += len(s)
	}
	if total < len(text) {
		t.Errorf("segments cover %d of %d chars", total, len(text))
	}
}
