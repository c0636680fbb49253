package idgen

import (
	"strings"
	"testing"
)

func TestNanoID(t *testing.T) {
	gen := NanoID(12)
	id := gen()
	if len(id) != 12 {
		t.Fatalf("length = %d, want 12", len(id))
	}
	if id == gen() {
		t.Fatal("two NanoIDs collided")
	}
}

func TestUUIDv7(t *testing.T) {
	gen := UUIDv7()
	a, b := gen(), gen()
	if len(a) != 36 {
		t.Fatalf("unexpected UUID length: %q", a)
	}
	if a == b {
		t.Fatal("two UUIDs collided")
	}
	// v7 version nibble.
	if a[14] != '7' {
		t.Fatalf("not a v7 UUID: %q", a)
	}
}

func TestPrefixed(t *testing.T) {
	gen := Prefixed("gen_", NanoID(8))
	id := gen()
	if !strings.HasPrefix(id, "gen_") {
		t.Fatalf("missing prefix: %q", id)
	}
	if len(id) != 12 {
		t.Fatalf("length = %d, want 12", len(id))
	}
}

func TestNew(t *testing.T) {
	if New() == New() {
		t.Fatal("Default generator collided")
	}
}
