package llm

import (
	"encoding/json"
	"strings"
)

// UnexpectedFormat is the sentinel returned when a backend response
// matches none of the known shapes. It is a value, not an error, so the
// orchestrator's fallback logic can engage uniformly instead of crashing.
const UnexpectedFormat = "[unexpected response format]"

// DecodeContent normalizes a backend response body to plain text. It
// recognizes four shapes:
//
//	{"content": "..."}                              direct content field
//	{"choices": [{"message": {"content": "..."}}]}  chat-completions wrap
//	{"message": {"content": "..."}}                 nested message wrap
//	"..."                                           bare JSON string
//
// Anything else yields UnexpectedFormat.
func DecodeContent(body []byte) string {
	var direct struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(body, &direct); err == nil && direct.Content != "" {
		return strings.TrimSpace(direct.Content)
	}

	var chat struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &chat); err == nil && len(chat.Choices) > 0 {
		if c := strings.TrimSpace(chat.Choices[0].Message.Content); c != "" {
			return c
		}
	}

	var nested struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Message.Content != "" {
		return strings.TrimSpace(nested.Message.Content)
	}

	var bare string
	if err := json.Unmarshal(body, &bare); err == nil && bare != "" {
		return strings.TrimSpace(bare)
	}

	return UnexpectedFormat
}
