package chunker

import "strings"

// boundaryMarkers are sentence-like break points, tried in order of
// preference within a window.
var boundaryMarkers = []string{"\n\n", ".\n", ". ", "!\n", "! ", "?\n", "? ", ";\n", "\n"}

// Chunk splits text into ordered segments of at most chunkTokens
// estimated tokens each. Segment boundaries snap to the latest
// sentence-like marker inside the window when one exists; otherwise the
// split is a hard character slice. When overlapTokens > 0, each segment
// after the first is seeded with up to overlapTokens worth of trailing
// content from its predecessor, so adjacent segments share a non-empty
// boundary region.
func Chunk(text string, chunkTokens, overlapTokens int) []string {
	if text == "" {
		return nil
	}
	chunkChars := chunkTokens * charsPerToken
	if chunkChars <= 0 {
		return []string{text}
	}
	overlapChars := overlapTokens * charsPerToken
	if overlapChars >= chunkChars {
		// Overlap must leave room for forward progress.
		overlapChars = chunkChars / 2
	}

	var segments []string
	pos := 0
	for pos < len(text) {
		end := pos + chunkChars
		if end >= len(text) {
			segments = append(segments, text[pos:])
			break
		}
		if cut := snapToBoundary(text[pos:end]); cut > 0 {
			end = pos + cut
		}
		segments = append(segments, text[pos:end])

		next := end - overlapChars
		if next <= pos {
			next = end
		}
		pos = next
	}
	return segments
}

// snapToBoundary returns the cut position just after the latest boundary
// marker in window, or 0 when no marker is found. Boundaries in the
// first half are ignored so pathological inputs cannot stall progress.
func snapToBoundary(window string) int {
	min := len(window) / 2
	for _, marker := range boundaryMarkers {
		if idx := strings.LastIndex(window, marker); idx >= min {
			return idx + len(marker)
		}
	}
	return 0
}
