package prompts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// BootstrapFiles are read from the workspace root, in this order, when
// workspace context is enabled.
var BootstrapFiles = []string{"AGENTS.md", "SOUL.md", "USER.md", "TOOLS.md", "IDENTITY.md"}

const (
	skillsDir     = "skills"
	skillFile     = "SKILL.md"
	frontmatterSp = "---"
)

type Section struct {
	Name    string
	Content string
}

// Skill is a folder under <workspace>/skills holding a SKILL.md. Only skills
// marked always carry their Content into the prompt; the rest are listed so
// the model can read them with read_file.
type Skill struct {
	Name        string
	Description string
	Location    string
	Always      bool
	Content     string
}

type skillMeta struct {
	Description string `yaml:"description"`
	Always      bool   `yaml:"always"`
}

// WorkspaceContext loads operator supplied prompt material from a workspace
// directory. Missing files and directories are not errors.
type WorkspaceContext struct {
	dir string
}

func NewWorkspaceContext(dir string) *WorkspaceContext {
	if dir == "" {
		dir = "."
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &WorkspaceContext{dir: dir}
}

func (w *WorkspaceContext) Bootstrap() ([]Section, error) {
	var sections []Section
	for _, name := range BootstrapFiles {
		data, err := os.ReadFile(filepath.Join(w.dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		sections = append(sections, Section{Name: name, Content: strings.TrimSpace(string(data))})
	}
	return sections, nil
}

// Skills lists the workspace skills ordered by name.
func (w *WorkspaceContext) Skills() ([]Skill, error) {
	root := filepath.Join(w.dir, skillsDir)
	entries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}

	var skills []Skill
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(root, entry.Name(), skillFile)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read skill %s: %w", entry.Name(), err)
		}

		meta, body := splitFrontmatter(data)
		skill := Skill{
			Name:        entry.Name(),
			Description: meta.Description,
			Location:    path,
			Always:      meta.Always,
		}
		if skill.Description == "" {
			skill.Description = skill.Name
		}
		if skill.Always {
			skill.Content = strings.TrimSpace(body)
		}
		skills = append(skills, skill)
	}

	sort.Slice(skills, func(i, j int) bool { return skills[i].Name < skills[j].Name })
	return skills, nil
}

// splitFrontmatter separates a leading "---" YAML block from the document.
// Unparseable metadata is ignored.
func splitFrontmatter(data []byte) (skillMeta, string) {
	var meta skillMeta
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasPrefix(text, frontmatterSp+"\n") {
		return meta, text
	}

	rest := text[len(frontmatterSp)+1:]
	end := strings.Index(rest, "\n"+frontmatterSp)
	if end < 0 {
		return meta, text
	}

	if err := yaml.Unmarshal([]byte(rest[:end]), &meta); err != nil {
		meta = skillMeta{}
	}

	body := rest[end+len(frontmatterSp)+1:]
	body = strings.TrimPrefix(body, "\n")
	return meta, body
}

var xmlText = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeXML(s string) string {
	return xmlText.Replace(s)
}
