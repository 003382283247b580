package userinteraction

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"miniclaw/internal/application/port/output"
	"miniclaw/internal/domain/entity"

	"github.com/fatih/color"
)

var (
	_ output.UserInteractionPort = (*ConsoleUserInteraction)(nil)
	_ output.EventSink           = (*ConsoleUserInteraction)(nil)
)

const (
	maxCallLen   = 120
	maxResultLen = 300
)

// ConsoleUserInteraction renders a run on a terminal: tokens are printed as
// they arrive, tool calls and results on their own dimmed lines.
type ConsoleUserInteraction struct {
	mu     sync.Mutex
	out    io.Writer
	reader *bufio.Reader

	tool   *color.Color
	result *color.Color
	dim    *color.Color
	done   *color.Color
	errc   *color.Color
	prompt *color.Color
}

func NewConsoleUserInteraction(in io.Reader, out io.Writer, noColor bool) *ConsoleUserInteraction {
	u := &ConsoleUserInteraction{
		out:    out,
		reader: bufio.NewReader(in),
		tool:   color.New(color.FgYellow, color.Bold),
		result: color.New(color.FgGreen),
		dim:    color.New(color.Faint),
		done:   color.New(color.FgCyan, color.Bold),
		errc:   color.New(color.FgRed, color.Bold),
		prompt: color.New(color.FgBlue, color.Bold),
	}
	if noColor {
		for _, c := range []*color.Color{u.tool, u.result, u.dim, u.done, u.errc, u.prompt} {
			c.DisableColor()
		}
	}
	return u
}

// ReadTask prompts for the next task. io.EOF is returned unchanged when the
// input is exhausted.
func (u *ConsoleUserInteraction) ReadTask(ctx context.Context) (string, error) {
	u.mu.Lock()
	u.prompt.Fprint(u.out, "\n> ")
	u.mu.Unlock()

	line, err := u.reader.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return "", err
		}
		return "", fmt.Errorf("failed to read user input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (u *ConsoleUserInteraction) Emit(ctx context.Context, event entity.AgentEvent) error {
	switch event.Kind {
	case entity.EventToken:
		u.ShowToken(ctx, event.Payload)
	case entity.EventToolStart:
		u.ShowToolStart(ctx, event.Payload)
	case entity.EventToolEnd:
		u.ShowToolResult(ctx, event.Payload)
	case entity.EventDone:
		u.ShowDone(ctx, event.Payload)
	case entity.EventError:
		u.ShowError(ctx, event.Payload)
	}
	return nil
}

func (u *ConsoleUserInteraction) ShowToken(ctx context.Context, fragment string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprint(u.out, fragment)
}

func (u *ConsoleUserInteraction) ShowToolStart(ctx context.Context, call string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.tool.Fprint(u.out, "\n🔧 ")
	u.tool.Fprintln(u.out, truncate(oneLine(call), maxCallLen))
}

func (u *ConsoleUserInteraction) ShowToolResult(ctx context.Context, result string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.result.Fprint(u.out, "✓ ")
	u.dim.Fprintln(u.out, truncate(result, maxResultLen))
}

func (u *ConsoleUserInteraction) ShowDone(ctx context.Context, reason string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if reason == "" {
		u.done.Fprintln(u.out, "\n━━━ done ━━━")
		return
	}
	u.done.Fprintf(u.out, "\n━━━ done (%s) ━━━\n", reason)
}

func (u *ConsoleUserInteraction) ShowError(ctx context.Context, message string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.errc.Fprint(u.out, "\n❌ Error: ")
	fmt.Fprintln(u.out, message)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
