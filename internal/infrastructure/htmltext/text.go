package htmltext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

type Config struct {
	// TagsToRemove are dropped together with everything inside them.
	TagsToRemove []string
	// MaxOutputSize caps the result in bytes. Zero means no cap.
	MaxOutputSize int
}

var DefaultConfig = Config{
	TagsToRemove: []string{
		"script", "style", "noscript", "svg", "iframe",
		"link", "meta", "head", "title", "template",
	},
}

var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "header": true, "footer": true,
	"table": true, "ul": true, "ol": true, "pre": true, "blockquote": true,
}

var (
	spaceRun   = regexp.MustCompile(`[ \t\f\v\r]+`)
	newlineRun = regexp.MustCompile(`\n\s*\n\s*\n+`)
)

// ExtractText returns the visible text of an HTML document. Block level
// elements start new lines; runs of blanks collapse to one space and more
// than one empty line collapses to one.
func ExtractText(rawHTML string, cfg *Config) string {
	if cfg == nil {
		cfg = &DefaultConfig
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return collapse(rawHTML)
	}

	remove := make(map[string]bool, len(cfg.TagsToRemove))
	for _, tag := range cfg.TagsToRemove {
		remove[tag] = true
	}

	var sb strings.Builder
	walk(doc, remove, &sb)

	return Truncate(collapse(sb.String()), cfg.MaxOutputSize)
}

func walk(n *html.Node, remove map[string]bool, sb *strings.Builder) {
	switch n.Type {
	case html.CommentNode:
		return
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if remove[n.Data] {
			return
		}
		if blockTags[n.Data] {
			sb.WriteString("\n")
			defer sb.WriteString("\n")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, remove, sb)
	}
}

func collapse(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}
	s = strings.Join(lines, "\n")
	s = newlineRun.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Truncate cuts s to at most maxBytes without splitting a UTF-8 sequence.
func Truncate(s string, maxBytes int) string {
	if maxBytes <= 0 || len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
