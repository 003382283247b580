package prompts

import (
	_ "embed"
)

//go:embed system.tmpl
var DefaultSystemPrompt string
