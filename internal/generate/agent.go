package generate

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tools every generated agent may use.
var agentTools = []string{"Read", "Write", "Edit", "Bash", "Grep", "Glob"}

const agentColor = "cyan"

type agentFrontmatter struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Model       string   `yaml:"model"`
	Color       string   `yaml:"color"`
	Tools       []string `yaml:"tools,flow"`
}

const cleanTreeContract = `# Completion Contract

Before reporting success, run ` + "`git status --porcelain`" + `. The working tree
must be clean: commit what this phase produced and remove scratch files.
If changes remain uncommitted, report failure instead of success.`

// AgentDescriptor composes a phase agent from five layers: frontmatter, the
// baseline body for the phase type, the runbook's Common Context, the phase
// preamble, and the clean-tree contract.
func AgentDescriptor(p Paths, ph PhasePlan, multi bool, baselines Baselines, commonContext string) (string, error) {
	header, err := encodeFrontmatter(agentFrontmatter{
		Name:        ph.Agent,
		Description: agentDescription(p.Name, ph, multi),
		Model:       ph.Model,
		Color:       agentColor,
		Tools:       agentTools,
	})
	if err != nil {
		return "", fmt.Errorf("encoding agent %s frontmatter: %w", ph.Agent, err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")

	b.WriteString(strings.TrimSpace(baselines.For(ph.Type)))
	b.WriteString("\n")

	if ctx := sectionContent(commonContext); ctx != "" {
		b.WriteString("\n---\n\n# Runbook-Specific Context\n\n")
		b.WriteString(ctx)
		b.WriteString("\n")
	}
	if pre := strings.TrimSpace(ph.Preamble); pre != "" {
		b.WriteString("\n---\n\n# Phase Context\n\n")
		b.WriteString(pre)
		b.WriteString("\n")
	}
	b.WriteString("\n---\n\n")
	b.WriteString(cleanTreeContract)
	b.WriteString("\n")
	return b.String(), nil
}

func encodeFrontmatter(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func agentDescription(name string, ph PhasePlan, multi bool) string {
	if !multi {
		return fmt.Sprintf("Execute %s steps from the plan with plan-specific context.", name)
	}
	title := ""
	if ph.Title != "" {
		title = " (" + ph.Title + ")"
	}
	return fmt.Sprintf("Execute %s phase %d%s %s steps with plan-specific context.", name, ph.Number, title, ph.Type)
}

// sectionContent drops the "## Title" line a section body starts with.
func sectionContent(section string) string {
	section = strings.TrimSpace(section)
	if strings.HasPrefix(section, "## ") {
		if _, rest, ok := strings.Cut(section, "\n"); ok {
			return strings.TrimSpace(rest)
		}
		return ""
	}
	return section
}
