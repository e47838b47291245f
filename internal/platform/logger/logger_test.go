package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseLevel_AllBranches(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"fatal", "fatal"},
		{"panic", "panic"},
		{"", "debug"},
		{"   nonsense   ", "debug"},
	}
	for _, c := range cases {
		lvl := parseLevel(c.in)
		if strings.ToLower(lvl.String()) != c.want {
			t.Fatalf("parseLevel(%q) = %q, want %q", c.in, lvl, c.want)
		}
	}
}

func TestInit_Get_Named_C_WithRun(t *testing.T) {
	var buf bytes.Buffer

	Init(Options{
		Level:      "info",
		Format:     "console",
		Service:    "brandwatch-test",
		Component:  "root",
		Writer:     &buf,
		WithCaller: true,
		StaticFields: map[string]string{
			"build": "test",
		},
	})

	Get().Info().Str("k", "v").Msg("root-msg")
	Named("orchestrator").Info().Msg("named-msg")

	ctx := WithRun(context.Background(), "run_123_abc")
	C(ctx).Info().Msg("ctx-msg")

	// background child carries no run_id
	C(context.Background()).Info().Msg("ctx-empty")

	out := buf.String()
	for _, want := range []string{"root-msg", "named-msg", "orchestrator", "ctx-msg", "run_123_abc", "ctx-empty"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q\n\nfull output:\n%s", want, out)
		}
	}
}

func TestRunID_Absent(t *testing.T) {
	if id, ok := RunID(context.Background()); ok || id != "" {
		t.Fatalf("RunID on empty ctx = (%q, %v), want absent", id, ok)
	}
	ctx := WithRun(context.Background(), "")
	if _, ok := RunID(ctx); ok {
		t.Fatal("empty run id should not be attached")
	}
}
