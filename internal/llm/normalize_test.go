package llm

import "testing"

func TestDecodeContent(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"direct content field", `{"content": "hello"}`, "hello"},
		{"chat completions wrap", `{"choices":[{"message":{"role":"assistant","content":"hi there"}}]}`, "hi there"},
		{"nested message wrap", `{"message":{"role":"assistant","content":"nested"}}`, "nested"},
		{"bare string", `"just text"`, "just text"},
		{"whitespace trimmed", `{"content": "  padded  "}`, "padded"},
		{"unknown object", `{"data": {"value": 42}}`, UnexpectedFormat},
		{"empty choices", `{"choices":[]}`, UnexpectedFormat},
		{"not json", `<html>error</html>`, UnexpectedFormat},
		{"empty body", ``, UnexpectedFormat},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := DecodeContent([]byte(c.body)); got != c.want {
				t.Errorf("DecodeContent(%s) = %q, want %q", c.body, got, c.want)
			}
		})
	}
}
