package service

import (
	"regexp"
	"strings"

	"miniclaw/internal/domain/entity"
)

// toolDirective matches <tool name="NAME">BODY</tool>. The body is matched
// lazily so it ends at the first closing tag.
var toolDirective = regexp.MustCompile(`<tool name="([^"]+)">([\s\S]*?)</tool>`)

// ExtractToolCall returns the first tool directive in text. Later directives
// in the same turn are ignored: one tool call per turn.
// The name is not checked against any registry here.
func ExtractToolCall(text string) (entity.ToolInvocation, bool) {
	m := toolDirective.FindStringSubmatch(text)
	if m == nil {
		return entity.ToolInvocation{}, false
	}
	return entity.ToolInvocation{
		Name:  entity.ToolName(m[1]),
		Input: strings.TrimSpace(m[2]),
	}, true
}
