package chatstream

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader hands out one chunk per Read call.
type chunkReader struct {
	chunks [][]byte
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	r.chunks[0] = r.chunks[0][n:]
	if len(r.chunks[0]) == 0 {
		r.chunks = r.chunks[1:]
	}
	return n, nil
}

func deltaLine(content string) string {
	return fmt.Sprintf(`data: {"id":"c1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":%q}}]}`, content) + "\n\n"
}

func sseStream(fragments ...string) string {
	var sb strings.Builder
	sb.WriteString(`data: {"choices":[{"index":0,"delta":{"role":"assistant"}}]}` + "\n\n")
	for _, f := range fragments {
		sb.WriteString(deltaLine(f))
	}
	sb.WriteString("data: [DONE]\n\n")
	return sb.String()
}

func drain(t *testing.T, d *Decoder) []string {
	t.Helper()
	var out []string
	for {
		fragment, err := d.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, fragment)
	}
}

func TestDecoder_WholeStream(t *testing.T) {
	fragments := []string{"Thought: I will list files.\n", "<tool name=\"terminal\">", "ls", "</tool>"}
	d := NewDecoder(strings.NewReader(sseStream(fragments...)))

	assert.Equal(t, fragments, drain(t, d))
}

func TestDecoder_EveryTwoChunkSplit(t *testing.T) {
	fragments := []string{"Hel", "lo, ", "wörld ", "世界"}
	stream := sseStream(fragments...)

	for i := 0; i <= len(stream); i++ {
		r := &chunkReader{chunks: [][]byte{[]byte(stream[:i]), []byte(stream[i:])}}
		got := drain(t, NewDecoder(r))
		require.Equal(t, fragments, got, "split at byte %d", i)
	}
}

func TestDecoder_OneByteReads(t *testing.T) {
	fragments := []string{"a", "\n", "b c", "日本"}
	d := NewDecoder(iotest.OneByteReader(strings.NewReader(sseStream(fragments...))))

	got := drain(t, d)
	assert.Equal(t, fragments, got)
	assert.Equal(t, "a\nb c日本", strings.Join(got, ""))
}

func TestDecoder_SkipsNoise(t *testing.T) {
	stream := ": keep-alive\n" +
		"event: message\n" +
		"data: {not json\n" +
		"data: {\"choices\":[]}\n" +
		"data:\n" +
		"id: 7\n" +
		"\r\n" +
		deltaLine("ok") +
		"data: [DONE]\n"

	assert.Equal(t, []string{"ok"}, drain(t, NewDecoder(strings.NewReader(stream))))
}

func TestDecoder_CRLFAndNoSpaceAfterMarker(t *testing.T) {
	stream := "data:{\"choices\":[{\"delta\":{\"content\":\"x\"}}]}\r\n\r\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\"y\"}}]}\r\n"

	assert.Equal(t, []string{"x", "y"}, drain(t, NewDecoder(strings.NewReader(stream))))
}

func TestDecoder_FinalLineWithoutNewline(t *testing.T) {
	stream := strings.TrimSuffix(deltaLine("tail"), "\n\n")

	assert.Equal(t, []string{"tail"}, drain(t, NewDecoder(strings.NewReader(stream))))
}

func TestDecoder_ReaderErrorAfterFragments(t *testing.T) {
	boom := errors.New("connection reset")
	r := io.MultiReader(strings.NewReader(deltaLine("first")), iotest.ErrReader(boom))
	d := NewDecoder(r)

	fragment, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, "first", fragment)

	_, err = d.Next()
	assert.ErrorIs(t, err, boom)

	_, err = d.Next()
	assert.ErrorIs(t, err, boom)
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{line: "", ok: false},
		{line: "data: [DONE]", ok: false},
		{line: `data: {"choices":[{"delta":{"content":"hi"}}]}`, want: "hi", ok: true},
		{line: `data: {"choices":[{"delta":{"content":""}}]}`, ok: false},
		{line: `{"choices":[{"delta":{"content":"no marker"}}]}`, ok: false},
		{line: `data: [1,2,3]`, ok: false},
	}

	for _, tt := range tests {
		got, ok := parseLine(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}
