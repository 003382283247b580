package entity

type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one entry of a run's history. Messages are never edited after
// they are appended.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// ToolInvocation is the single tool call honored from one assistant turn.
type ToolInvocation struct {
	Name  ToolName
	Input string
}

func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// NewObservation wraps tool output the way the model is told to expect it.
func NewObservation(text string) Message {
	return Message{
		Role:    RoleUser,
		Content: "<observation>\n" + text + "\n</observation>",
	}
}
