package entity

type EventKind string

const (
	EventToken     EventKind = "token"
	EventToolStart EventKind = "tool_start"
	EventToolEnd   EventKind = "tool_end"
	EventDone      EventKind = "done"
	EventError     EventKind = "error"
)

// DoneReasonMaxIterations is the payload of the done event emitted when a run
// stops on its iteration budget. A regular finish carries an empty payload.
const DoneReasonMaxIterations = "max iterations reached"

// AgentEvent is a lifecycle notification of a run. The JSON shape is the one
// streamed to HTTP clients.
type AgentEvent struct {
	Kind    EventKind `json:"type"`
	Payload string    `json:"content"`
}

func TokenEvent(fragment string) AgentEvent {
	return AgentEvent{Kind: EventToken, Payload: fragment}
}

func ToolStartEvent(call ToolInvocation) AgentEvent {
	return AgentEvent{Kind: EventToolStart, Payload: call.Name.String() + ": " + call.Input}
}

func ToolEndEvent(observation string) AgentEvent {
	return AgentEvent{Kind: EventToolEnd, Payload: observation}
}

func DoneEvent(reason string) AgentEvent {
	return AgentEvent{Kind: EventDone, Payload: reason}
}

func ErrorEvent(err error) AgentEvent {
	return AgentEvent{Kind: EventError, Payload: err.Error()}
}

// IsTerminal reports whether no further events follow this one in a run.
func (e AgentEvent) IsTerminal() bool {
	return e.Kind == EventDone || e.Kind == EventError
}
