package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGeneratorProducesDistinctUUIDs(t *testing.T) {
	gen := NewUUIDGenerator()
	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}

	if first == second {
		t.Fatalf("expected distinct ids, got %s twice", first)
	}
	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("expected uuid, got %q: %v", first, err)
	}
}

func TestSequenceGenerator(t *testing.T) {
	gen := NewSequenceGenerator("cook")
	first, _ := gen.NewID()
	second, _ := gen.NewID()
	if first != "cook-1" || second != "cook-2" {
		t.Fatalf("unexpected sequence: %s, %s", first, second)
	}
}
