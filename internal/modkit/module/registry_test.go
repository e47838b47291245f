package module

import "testing"

func TestRegistry_RegisterAndFetch(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	type ports struct{ V string }

	Register("watermark", ports{V: "x"})

	got, ok := PortsAs[ports]("watermark")
	if !ok || got.V != "x" {
		t.Fatalf("expected registered ports, got ok=%v %#v", ok, got)
	}

	if _, ok := PortsAs[ports]("missing"); ok {
		t.Fatalf("expected ok=false for unknown name")
	}

	// wrong type assert
	if _, ok := PortsAs[int]("watermark"); ok {
		t.Fatalf("expected ok=false on type mismatch")
	}
}
