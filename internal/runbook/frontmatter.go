package runbook

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jorge-barreto/runbook/internal/diag"
	"gopkg.in/yaml.v3"
)

// Frontmatter is the `---` delimited header of a runbook.
type Frontmatter struct {
	Type  Type
	Model string
	Name  string
	// Extra holds keys this tool does not interpret.
	Extra map[string]string
}

type frontmatterYAML struct {
	Name  string `yaml:"name,omitempty"`
	Type  string `yaml:"type,omitempty"`
	Model string `yaml:"model,omitempty"`
}

// ParseFrontmatter splits a leading frontmatter block off content. It returns
// the parsed header, the remaining body, and the number of lines consumed.
// Invalid values become warnings and fall back to defaults.
func ParseFrontmatter(content string) (Frontmatter, string, int, diag.List) {
	var diags diag.List
	fm := Frontmatter{Type: General}

	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return fm, content, 0, nil
	}
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end < 0 {
		return fm, content, 0, nil
	}

	header := strings.Join(lines[1:end], "\n")
	values, err := decodeHeader(header)
	if err != nil {
		diags.Warnf(1, "frontmatter is not valid YAML (%v); reading it as flat key: value pairs", err)
		values = flatHeader(header)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := values[key]
		switch strings.ToLower(key) {
		case "type":
			t, ok := ParseType(value)
			if !ok && value != "" {
				diags.Warnf(1, "unknown runbook type %q; defaulting to %s", value, General)
			}
			fm.Type = t
		case "model":
			m := strings.ToLower(strings.TrimSpace(value))
			if m != "" && !ValidModel(m) {
				diags.Warnf(1, "unknown model %q in frontmatter; ignoring", value)
				m = ""
			}
			fm.Model = m
		case "name":
			fm.Name = value
		default:
			if fm.Extra == nil {
				fm.Extra = make(map[string]string)
			}
			fm.Extra[key] = value
		}
	}

	body := strings.Join(lines[end+1:], "\n")
	return fm, body, end + 1, diags
}

func decodeHeader(header string) (map[string]string, error) {
	raw := make(map[string]any)
	if err := yaml.Unmarshal([]byte(header), &raw); err != nil {
		return nil, err
	}
	values := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			values[k] = ""
			continue
		}
		values[k] = fmt.Sprint(v)
	}
	return values, nil
}

func flatHeader(header string) map[string]string {
	values := make(map[string]string)
	for _, line := range strings.Split(header, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		values[strings.TrimSpace(key)] = value
	}
	return values
}

// Marshal renders name, type and model as a `---` delimited YAML block.
func (fm Frontmatter) Marshal() (string, error) {
	out, err := yaml.Marshal(frontmatterYAML{Name: fm.Name, Type: string(fm.Type), Model: fm.Model})
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.Write(out)
	b.WriteString("---\n")
	return b.String(), nil
}
