package prompts

import (
	"bytes"
	"fmt"
	"text/template"

	"miniclaw/internal/application/port/output"
)

var _ output.PromptPort = (*Generator)(nil)

type ToolInfo struct {
	Name        string
	Description string
}

type SystemPromptData struct {
	Tools        []ToolInfo
	Bootstrap    []Section
	ActiveSkills []Skill
	Skills       []Skill
}

// Generator renders the system prompt from a tool catalogue. Tools are listed
// in the order they are passed in.
type Generator struct {
	tmpl      *template.Template
	workspace *WorkspaceContext
}

type Option func(*Generator)

// WithWorkspaceContext appends the workspace bootstrap files and skills
// summary to every rendered prompt.
func WithWorkspaceContext(w *WorkspaceContext) Option {
	return func(g *Generator) {
		g.workspace = w
	}
}

func NewGenerator(baseTemplate string, opts ...Option) (*Generator, error) {
	tmpl, err := template.New("system").Option("missingkey=error").Parse(baseTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse system prompt template: %w", err)
	}
	g := &Generator{tmpl: tmpl}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *Generator) SystemPrompt(tools []output.ToolPort) (string, error) {
	data := SystemPromptData{
		Tools: make([]ToolInfo, 0, len(tools)),
	}
	for _, tool := range tools {
		data.Tools = append(data.Tools, ToolInfo{
			Name:        tool.Name().String(),
			Description: tool.Description(),
		})
	}

	if g.workspace != nil {
		if err := g.loadWorkspace(&data); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render system prompt: %w", err)
	}
	return buf.String(), nil
}

func (g *Generator) loadWorkspace(data *SystemPromptData) error {
	bootstrap, err := g.workspace.Bootstrap()
	if err != nil {
		return fmt.Errorf("load workspace bootstrap: %w", err)
	}
	data.Bootstrap = bootstrap

	skills, err := g.workspace.Skills()
	if err != nil {
		return fmt.Errorf("load workspace skills: %w", err)
	}
	for _, skill := range skills {
		if skill.Always {
			data.ActiveSkills = append(data.ActiveSkills, skill)
		}
		skill.Name = escapeXML(skill.Name)
		skill.Description = escapeXML(skill.Description)
		skill.Location = escapeXML(skill.Location)
		skill.Content = ""
		data.Skills = append(data.Skills, skill)
	}
	return nil
}
