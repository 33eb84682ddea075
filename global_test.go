package confstack

import (
	"testing"

	"github.com/dshills/confstack/source"
)

func TestSetDefault(t *testing.T) {
	h, err := New(WithDefaultSource(func() (source.Configuration, error) {
		return source.NewMap("default", map[string]any{"who": "custom"}), nil
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	SetDefault(h)
	t.Cleanup(func() { SetDefault(nil) })

	got, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if got != h {
		t.Error("Default() should return the holder installed via SetDefault")
	}
	if val := got.Get().GetString("who"); val != "custom" {
		t.Errorf("GetString(who) = %q, want 'custom'", val)
	}
}

func TestDefault_LazyConstruction(t *testing.T) {
	SetDefault(nil)
	t.Cleanup(func() { SetDefault(nil) })

	first, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	second, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if first != second {
		t.Error("Default() should construct the package holder once")
	}
}
