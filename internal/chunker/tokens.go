// Package chunker compresses arbitrarily long text to fit a token budget
// via iterative map-reduce summarization with a hard recursion ceiling.
package chunker

// charsPerToken is the calibration factor for token estimation
// (~4 characters per token for current model tokenizers).
const charsPerToken = 4

// EstimateTokens returns a crude, deterministic token count proxy:
// ceil(len(text) / 4). It is non-decreasing in text length, which is the
// only property budgeting decisions rely on; a real tokenizer may be
// substituted as long as that holds.
func EstimateTokens(text string) int {
	return (len(text) + charsPerToken - 1) / charsPerToken
}
