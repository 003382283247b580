package output

type PromptPort interface {
	SystemPrompt(tools []ToolPort) (string, error)
}
