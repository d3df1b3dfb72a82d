package simulation

import (
	"context"
	"testing"
)

type fakeSim struct{ name string }

func (f *fakeSim) Name() string        { return f.name }
func (f *fakeSim) Description() string { return "test scenario" }

func (f *fakeSim) Configure(params map[string]interface{}) error { return nil }
func (f *fakeSim) Run(ctx context.Context) error                 { return nil }
func (f *fakeSim) Stop() error                                   { return nil }

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("alpha", func() Simulation { return &fakeSim{name: "alpha"} }); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	sim, err := r.Get("alpha")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if sim.Name() != "alpha" {
		t.Errorf("Expected alpha, got %s", sim.Name())
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	factory := func() Simulation { return &fakeSim{name: "alpha"} }

	if err := r.Register("alpha", factory); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register("alpha", factory); err == nil {
		t.Errorf("Expected error registering duplicate name")
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get("missing"); err == nil {
		t.Errorf("Expected error for unknown scenario")
	}
}

func TestRegistryListSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		name := name
		if err := r.Register(name, func() Simulation { return &fakeSim{name: name} }); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	names := r.List()
	want := []string{"alpha", "bravo", "charlie"}
	if len(names) != len(want) {
		t.Fatalf("Expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Expected sorted names %v, got %v", want, names)
		}
	}
}
