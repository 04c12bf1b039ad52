package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jorge-barreto/runbook/internal/config"
	"github.com/jorge-barreto/runbook/internal/runbook"
	"github.com/jorge-barreto/runbook/internal/semantic"
	"github.com/jorge-barreto/runbook/internal/validate"
)

func TestInit_CreatesFiles(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	if err := Init(dir, "billing", &out); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	for _, rel := range []string{config.DefaultFile, filepath.Join("plans", "billing", "runbook.md")} {
		info, err := os.Stat(filepath.Join(dir, rel))
		if err != nil {
			t.Fatalf("%s not created: %v", rel, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", rel)
		}
	}
	if !strings.Contains(out.String(), "runbook prepare") {
		t.Errorf("output lacks next steps: %q", out.String())
	}
}

func TestInit_GeneratedConfigLoads(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, "billing", &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(filepath.Join(dir, config.DefaultFile))
	if err != nil {
		t.Fatalf("config.Load failed on generated config: %v", err)
	}
	if cfg.DefaultModel != "sonnet" {
		t.Errorf("default-model = %q, want sonnet", cfg.DefaultModel)
	}
}

func TestInit_StarterRunbookIsValid(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, "billing", &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "plans", "billing", "runbook.md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	doc, s, diags, err := runbook.Parse(path, string(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	diags.Append(validate.Runbook(doc, s))
	if len(diags) != 0 {
		t.Fatalf("starter runbook has diagnostics: %v", diags.Messages())
	}
	if doc.Frontmatter.Name != "billing" {
		t.Errorf("name = %q, want billing", doc.Frontmatter.Name)
	}
	if v := semantic.Lifecycle(s.Units(), nil); len(v) != 0 {
		t.Errorf("lifecycle violations: %v", v)
	}
}

func TestInit_KeepsExistingConfig(t *testing.T) {
	dir := t.TempDir()
	existing := "plans-dir: plans\nstage: false\n"
	if err := os.WriteFile(filepath.Join(dir, config.DefaultFile), []byte(existing), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Init(dir, "billing", &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, config.DefaultFile))
	if string(data) != existing {
		t.Errorf("existing config was overwritten: %q", data)
	}
}

func TestInit_FailsIfRunbookExists(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, "billing", &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	err := Init(dir, "billing", &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected 'already exists' error, got: %v", err)
	}
}

func TestInit_RejectsBadName(t *testing.T) {
	for _, name := range []string{"", "a/b", ".."} {
		if err := Init(t.TempDir(), name, &bytes.Buffer{}); err == nil {
			t.Errorf("Init(%q) should fail", name)
		}
	}
}
