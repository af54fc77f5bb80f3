package payload

import "testing"

func TestUnwrapObjectEnvelope(t *testing.T) {
	f := Normalize(`{"data": {"ipcfg": "dhcp", "ip": "10.0.0.5"}}`)
	inner, ok := Unwrap(f)
	if !ok {
		t.Fatal("unwrap reported no data")
	}
	if got := inner.String("ipcfg"); got != "dhcp" {
		t.Errorf("ipcfg = %q, want dhcp", got)
	}
}

func TestUnwrapStringEnvelope(t *testing.T) {
	// Enveloped key=value text, as the modem daemon emits it.
	f := Normalize(`{"data": "mode=FSK2\nrate=500\nldpc=768/256\n"}`)
	inner, ok := Unwrap(f)
	if !ok {
		t.Fatal("unwrap reported no data")
	}
	if got := inner.String("mode"); got != "FSK2" {
		t.Errorf("mode = %q, want FSK2", got)
	}
	if got := inner.String("ldpc"); got != "768/256" {
		t.Errorf("ldpc = %q, want 768/256", got)
	}
}

func TestUnwrapNoData(t *testing.T) {
	tests := []struct {
		name, body string
	}{
		{"scalar data", `{"data": 7}`},
		{"null data", `{"data": null}`},
		{"unparseable string data", `{"data": "no separators here"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Unwrap(Normalize(tt.body)); ok {
				t.Error("expected no-data result")
			}
		})
	}
}

func TestUnwrapPassThrough(t *testing.T) {
	f := Normalize(`{"ssid": "lab", "mode": "client"}`)
	inner, ok := Unwrap(f)
	if !ok {
		t.Fatal("unenveloped mapping must pass through")
	}
	if inner != f {
		t.Error("pass-through should return the same mapping")
	}
}

func TestUnwrapAlternateKeys(t *testing.T) {
	f := Normalize(`{"config": "log_level=info\n"}`)

	// Without the alternate key the envelope is not recognized.
	inner, ok := Unwrap(f)
	if !ok || !inner.Has("config") {
		t.Error("config key should pass through when not requested")
	}

	// With it, the enveloped text is unwrapped.
	inner, ok = Unwrap(f, "config", "content")
	if !ok {
		t.Fatal("unwrap reported no data")
	}
	if got := inner.String("log_level"); got != "info" {
		t.Errorf("log_level = %q, want info", got)
	}
}

func TestUnwrapDataBeforeAlternates(t *testing.T) {
	f := Normalize(`{"config": "a=1\n", "data": {"b": "2"}}`)
	inner, ok := Unwrap(f, "config")
	if !ok {
		t.Fatal("unwrap reported no data")
	}
	if !inner.Has("b") || inner.Has("a") {
		t.Error("data must take priority over alternate envelope keys")
	}
}

func TestUnwrapNil(t *testing.T) {
	if _, ok := Unwrap(nil); ok {
		t.Error("nil mapping is no data")
	}
}
