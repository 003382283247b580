package chatstream

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const (
	dataPrefix   = "data:"
	doneSentinel = "[DONE]"

	readChunkSize = 4096
)

// Decoder pulls content deltas out of a chat-completion event stream one at a
// time. Reads from the underlying reader may split lines anywhere; only
// complete lines are decoded and the unterminated tail waits for the next
// read. Lines that are not a well formed data envelope are skipped.
type Decoder struct {
	r       io.Reader
	chunk   []byte
	partial []byte
	pending []string
	eof     bool
	err     error
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:     r,
		chunk: make([]byte, readChunkSize),
	}
}

// Next returns the next text fragment. It returns io.EOF once the stream is
// exhausted and any other error from the reader as is.
func (d *Decoder) Next() (string, error) {
	for {
		if len(d.pending) > 0 {
			fragment := d.pending[0]
			d.pending = d.pending[1:]
			return fragment, nil
		}
		if d.err != nil {
			return "", d.err
		}
		if d.eof {
			return "", io.EOF
		}

		n, err := d.r.Read(d.chunk)
		if n > 0 {
			d.feed(d.chunk[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				// A final line without a trailing newline still counts.
				d.decodeLine(d.partial)
				d.partial = nil
				d.eof = true
			} else {
				d.err = err
			}
		}
	}
}

func (d *Decoder) feed(data []byte) {
	d.partial = append(d.partial, data...)

	start := 0
	for {
		idx := bytes.IndexByte(d.partial[start:], '\n')
		if idx < 0 {
			break
		}
		d.decodeLine(d.partial[start : start+idx])
		start += idx + 1
	}

	if start > 0 {
		rest := copy(d.partial, d.partial[start:])
		d.partial = d.partial[:rest]
	}
}

func (d *Decoder) decodeLine(line []byte) {
	if fragment, ok := parseLine(string(line)); ok {
		d.pending = append(d.pending, fragment)
	}
}

// parseLine extracts choices[0].delta.content from one event-stream line.
func parseLine(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}

	payload, ok := strings.CutPrefix(line, dataPrefix)
	if !ok {
		return "", false
	}
	payload = strings.TrimSpace(payload)
	if payload == doneSentinel {
		return "", false
	}

	var chunk openai.ChatCompletionStreamResponse
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		return "", false
	}
	if len(chunk.Choices) == 0 {
		return "", false
	}

	content := chunk.Choices[0].Delta.Content
	if content == "" {
		return "", false
	}
	return content, true
}
