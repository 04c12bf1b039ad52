package runbook

import (
	"regexp"
	"strings"

	"github.com/jorge-barreto/runbook/internal/scan"
)

var (
	modelFieldRe  = regexp.MustCompile(`(?i)\*\*Execution Model(?:\*\*:|:\*\*)\s*(.+)$`)
	reportFieldRe = regexp.MustCompile(`(?i)\*\*Report Path(?:\*\*:|:\*\*)\s*` + "`([^`]+)`")
)

// Metadata holds the bold-label fields embedded in a step or cycle body.
type Metadata struct {
	// Model is set only when RawModel names a known tier.
	Model      string
	RawModel   string
	ReportPath string
}

// ExtractMetadata reads the first "**Execution Model**:" and "**Report Path**:"
// fields outside fenced blocks.
func ExtractMetadata(body string) Metadata {
	var md Metadata
	for _, l := range scan.Classify(scan.Split(body)) {
		if l.InFence() {
			continue
		}
		if md.RawModel == "" {
			if m := modelFieldRe.FindStringSubmatch(l.Raw); m != nil {
				md.RawModel = strings.TrimSpace(strings.Trim(strings.TrimSpace(m[1]), "`*"))
				if f := strings.Fields(md.RawModel); len(f) > 0 {
					if v := strings.ToLower(strings.Trim(f[0], "`*,.;")); ValidModel(v) {
						md.Model = v
					}
				}
			}
		}
		if md.ReportPath == "" {
			if m := reportFieldRe.FindStringSubmatch(l.Raw); m != nil {
				md.ReportPath = strings.TrimSpace(m[1])
			}
		}
	}
	return md
}

// InvalidModel reports whether a model was written but not recognised.
func (md Metadata) InvalidModel() bool {
	return md.RawModel != "" && md.Model == ""
}
