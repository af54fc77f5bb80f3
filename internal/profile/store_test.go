package profile

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "profiles.yaml"))

	r := NewRegistry()
	r.Remember("wifi", map[string]string{"ssid": "lab", "ip_config": "dhcp"})
	r.Autofill = AutofillFill
	if err := store.Save(r); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Autofill != AutofillFill {
		t.Errorf("Autofill = %q, want fill", loaded.Autofill)
	}
	if got := loaded.Fields("wifi"); got["ssid"] != "lab" {
		t.Errorf("wifi fields = %v", got)
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "nope", "profiles.yaml"))
	r, err := store.Load()
	if err != nil {
		t.Fatalf("missing file must yield defaults, got %v", err)
	}
	if r.Version != 1 || r.Autofill != AutofillHints {
		t.Errorf("defaults = %+v", r)
	}
}

func TestStoreSavePermissionsAndAtomicity(t *testing.T) {
	dir := t.TempDir()
	store := NewStoreAt(filepath.Join(dir, "profiles.yaml"))
	if err := store.Save(NewRegistry()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(store.Path())
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions = %o, want 0600", perm)
	}
	if _, err := os.Stat(store.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestStoreRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	os.WriteFile(path, []byte("version: 9\n"), 0600)

	_, err := NewStoreAt(path).Load()
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Errorf("want version error, got %v", err)
	}
}

func TestRegistrySuggestions(t *testing.T) {
	r := NewRegistry()
	r.Remember("wifi", map[string]string{"dns1": "8.8.8.8"})

	got := r.Suggestions("wifi", "dns1", "8.8.8.8", "1.1.1.1", "", "  ")
	want := []string{"8.8.8.8", "1.1.1.1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggestions = %v, want %v", got, want)
	}

	// No record: defaults only.
	got = r.Suggestions("ethernet", "gateway", "192.168.1.1")
	if !reflect.DeepEqual(got, []string{"192.168.1.1"}) {
		t.Errorf("Suggestions = %v", got)
	}
}

func TestRegistryToggleAutofill(t *testing.T) {
	r := NewRegistry()
	if got := r.ToggleAutofill(); got != AutofillFill {
		t.Errorf("first toggle = %q, want fill", got)
	}
	if got := r.ToggleAutofill(); got != AutofillHints {
		t.Errorf("second toggle = %q, want hints", got)
	}
}
