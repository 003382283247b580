package chatstream

import "fmt"

// RemoteError is returned when the endpoint answers with a non-2xx status.
type RemoteError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("LLM Error: %s - %s", e.Status, e.Body)
}

// TransportError wraps connection and stream read failures.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("llm transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
