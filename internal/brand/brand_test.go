package brand

import (
	"os"
	"path/filepath"
	"testing"

	perr "brandwatch/internal/platform/errors"
)

const validYAML = `
brand:
  handles: ["@mybrand", "mybrandhq"]
  keywords: ["mybrand", "my product"]
  negative_keywords: ["fake", "scam"]
language: en
thresholds:
  notify: 0.8
  log_only: 0.6
image:
  enabled: true
  logo_threshold: 0.7
notifications:
  slack_webhook_url: https://hooks.slack.com/services/T0/B0/x
`

func TestParse_Valid(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(cfg.Brand.Handles) != 2 || cfg.Brand.Handles[0] != "mybrand" {
		t.Fatalf("handles not canonicalized: %#v", cfg.Brand.Handles)
	}
	if cfg.Thresholds.Notify != 0.8 || cfg.Thresholds.LogOnly != 0.6 {
		t.Fatalf("thresholds mismatch: %#v", cfg.Thresholds)
	}
	if cfg.LanguageFallback != "en" {
		t.Fatalf("language fallback should default to language, got %q", cfg.LanguageFallback)
	}
}

func TestParse_MentionAndExcludeTerms(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	mt := cfg.MentionTerms()
	if len(mt) != 2 || mt[0] != "@mybrand" || mt[1] != "@mybrandhq" {
		t.Fatalf("mention terms mismatch: %#v", mt)
	}

	ex := cfg.ExcludeTerms()
	want := []string{"@mybrand", "@mybrandhq", "mybrand", "my product"}
	if len(ex) != len(want) {
		t.Fatalf("exclude terms length mismatch: %#v", ex)
	}
	for i := range want {
		if ex[i] != want[i] {
			t.Fatalf("exclude terms order mismatch at %d: %#v", i, ex)
		}
	}
}

func TestParse_RejectsNotifyBelowLogOnly(t *testing.T) {
	t.Parallel()

	bad := `
brand:
  keywords: ["mybrand"]
language: en
thresholds:
  notify: 0.5
  log_only: 0.6
notifications:
  slack_webhook_url: https://hooks.slack.com/services/T0/B0/x
`
	_, err := Parse([]byte(bad))
	if err == nil {
		t.Fatalf("expected validation error for notify < log_only")
	}
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestParse_RejectsThresholdOutOfRange(t *testing.T) {
	t.Parallel()

	bad := `
brand:
  keywords: ["mybrand"]
language: en
thresholds:
  notify: 1.5
  log_only: 0.6
notifications:
  slack_webhook_url: https://hooks.slack.com/services/T0/B0/x
`
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatalf("expected validation error for notify > 1")
	}
}

func TestParse_RejectsNoTermsAtAll(t *testing.T) {
	t.Parallel()

	bad := `
brand: {}
language: en
thresholds:
  notify: 0.8
  log_only: 0.6
notifications:
  slack_webhook_url: https://hooks.slack.com/services/T0/B0/x
`
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatalf("expected error when both handles and keywords are empty")
	}
}

func TestParse_RejectsMissingWebhooks(t *testing.T) {
	t.Parallel()

	bad := `
brand:
  keywords: ["mybrand"]
language: en
thresholds:
  notify: 0.8
  log_only: 0.6
`
	_, err := Parse([]byte(bad))
	if err == nil {
		t.Fatalf("expected error when no webhook is configured")
	}
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestParse_BadYAML(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("brand: [unclosed"))
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !perr.IsCode(err, perr.ErrorCodeConfig) {
		t.Fatalf("expected config code, got %v", err)
	}
}

func TestLoad_FromDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(validYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Language != "en" {
		t.Fatalf("language mismatch: %q", cfg.Language)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
