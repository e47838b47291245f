package modkit

import "testing"

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	b := Build()
	if b.Name != "" {
		t.Fatalf("expected empty name, got %q", b.Name)
	}
	if b.Ports != nil {
		t.Fatalf("expected nil ports, got %#v", b.Ports)
	}
}

func TestBuild_AppliesOptions(t *testing.T) {
	t.Parallel()

	type ports struct{ N int }

	b := Build(
		WithName("watermark"),
		WithPorts(ports{N: 3}),
	)
	if b.Name != "watermark" {
		t.Fatalf("name mismatch: %q", b.Name)
	}
	p, ok := b.Ports.(ports)
	if !ok || p.N != 3 {
		t.Fatalf("ports mismatch: %#v", b.Ports)
	}
}

func TestBuild_LastOptionWins(t *testing.T) {
	t.Parallel()

	b := Build(WithName("a"), WithName("b"))
	if b.Name != "b" {
		t.Fatalf("expected last name to win, got %q", b.Name)
	}
}
