package service

import (
	"testing"

	"miniclaw/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractToolCall(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  entity.ToolInvocation
		found bool
	}{
		{
			name:  "single line",
			text:  "Thought: I will list files.\n<tool name=\"terminal\">ls</tool>",
			want:  entity.ToolInvocation{Name: "terminal", Input: "ls"},
			found: true,
		},
		{
			name:  "body trimmed",
			text:  "<tool name=\"read_file\">\n  notes.txt \n</tool>",
			want:  entity.ToolInvocation{Name: "read_file", Input: "notes.txt"},
			found: true,
		},
		{
			name:  "multi line body",
			text:  "<tool name=\"write_file\">\nout.txt\nline one\nline two\n</tool>",
			want:  entity.ToolInvocation{Name: "write_file", Input: "out.txt\nline one\nline two"},
			found: true,
		},
		{
			name:  "angle brackets inside body",
			text:  "<tool name=\"terminal\">echo '<b>x</b>' > a.html && cat a.html</tool>",
			want:  entity.ToolInvocation{Name: "terminal", Input: "echo '<b>x</b>' > a.html && cat a.html"},
			found: true,
		},
		{
			name:  "unknown names are still parsed",
			text:  "<tool name=\"does not exist\">x</tool>",
			want:  entity.ToolInvocation{Name: "does not exist", Input: "x"},
			found: true,
		},
		{
			name:  "empty body",
			text:  "<tool name=\"terminal\"></tool>",
			want:  entity.ToolInvocation{Name: "terminal", Input: ""},
			found: true,
		},
		{
			name: "no directive",
			text: "The answer is 42.",
		},
		{
			name: "unclosed directive",
			text: "<tool name=\"terminal\">ls",
		},
		{
			name: "tag is case sensitive",
			text: "<TOOL name=\"terminal\">ls</TOOL>",
		},
		{
			name: "single quoted name is not a directive",
			text: "<tool name='terminal'>ls</tool>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractToolCall(tt.text)
			require.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Only the first directive of a turn is honored; the rest are dropped rather
// than rejected.
func TestExtractToolCall_FirstDirectiveWins(t *testing.T) {
	text := "<tool name=\"terminal\">ls</tool>\nthen\n<tool name=\"read_file\">a.txt</tool>"

	got, ok := ExtractToolCall(text)
	require.True(t, ok)
	assert.Equal(t, entity.ToolInvocation{Name: "terminal", Input: "ls"}, got)
}

func TestExtractToolCall_StopsAtFirstCloser(t *testing.T) {
	text := "<tool name=\"terminal\">echo a</tool> trailing </tool>"

	got, ok := ExtractToolCall(text)
	require.True(t, ok)
	assert.Equal(t, "echo a", got.Input)
}
