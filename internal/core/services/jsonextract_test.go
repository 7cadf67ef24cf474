package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			name:  "bare object",
			input: `{"analysis": "fine"}`,
			want:  `{"analysis": "fine"}`,
			ok:    true,
		},
		{
			name:  "prose before and after",
			input: `Sure! Here is the result: {"analysis": "fine"} Hope that helps.`,
			want:  `{"analysis": "fine"}`,
			ok:    true,
		},
		{
			name:  "nested objects",
			input: `{"a": {"b": {"c": 1}}}`,
			want:  `{"a": {"b": {"c": 1}}}`,
			ok:    true,
		},
		{
			name:  "braces inside strings",
			input: `{"analysis": "use {curly} braces"}`,
			want:  `{"analysis": "use {curly} braces"}`,
			ok:    true,
		},
		{
			name:  "escaped quotes inside strings",
			input: `{"analysis": "he said \"{\" loudly"}`,
			want:  `{"analysis": "he said \"{\" loudly"}`,
			ok:    true,
		},
		{
			name:  "unbalanced braces",
			input: "Sure! {not json",
			ok:    false,
		},
		{
			name:  "no object at all",
			input: "just plain text",
			ok:    false,
		},
		{
			name:  "empty input",
			input: "",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
