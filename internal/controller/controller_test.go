package controller

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/gatewave/gatecon/internal/section"
)

// fakeClient is a scripted control plane.
type fakeClient struct {
	infoBody string
	infoErr  error
	applyErr error

	applied []url.Values
}

func (f *fakeClient) SectionInfo(_ context.Context, _ string) (string, error) {
	return f.infoBody, f.infoErr
}

func (f *fakeClient) Apply(_ context.Context, _ string, form url.Values) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied = append(f.applied, form)
	return nil
}

func TestLoadEstablishesBaseline(t *testing.T) {
	fc := &fakeClient{infoBody: `{"ssid": "lab", "mode": "client", "ipcfg": "dhcp"}`}
	ctl := New(section.Wifi, fc)

	m, err := ctl.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := ctl.Baseline(); !ok {
		t.Fatal("baseline not established")
	}
	if ctl.Dirty() {
		t.Error("freshly loaded form must not be dirty")
	}
	if got := m.(section.WifiConfig).SSID; got != "lab" {
		t.Errorf("SSID = %q", got)
	}
}

func TestLoadWithoutDataLeavesNoBaseline(t *testing.T) {
	fc := &fakeClient{infoBody: ""}
	ctl := New(section.Wifi, fc)

	if _, err := ctl.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := ctl.Baseline(); ok {
		t.Error("empty payload must not establish a baseline")
	}
	// With no baseline the diff gate always passes.
	if !ctl.Dirty() {
		t.Error("no baseline must mean always dirty")
	}
	// The form still renders with defaults.
	w := ctl.Model().(section.WifiConfig)
	if w.Mode != "client" || w.IPConfig != "dhcp" {
		t.Errorf("defaults = %q/%q", w.Mode, w.IPConfig)
	}
}

func TestLoadErrorFallsBackToDefaults(t *testing.T) {
	fc := &fakeClient{infoErr: errors.New("connection refused")}
	ctl := New(section.Modem, fc)

	if _, err := ctl.Load(context.Background()); err == nil {
		t.Fatal("transport error must propagate")
	}
	if _, ok := ctl.Baseline(); ok {
		t.Error("failed load must not establish a baseline")
	}
	m := ctl.Model().(section.ModemConfig)
	if m.Mode != "FSK2" || m.Rate != "500" || m.LDPC != "768/256" {
		t.Errorf("defaults = %+v", m)
	}
}

func TestSaveReplacesBaselineWithSubmittedPayload(t *testing.T) {
	fc := &fakeClient{infoBody: `{"ssid": "lab", "mode": "client", "ipcfg": "dhcp"}`}
	ctl := New(section.Wifi, fc)
	ctl.Load(context.Background())

	edited := ctl.Model().(section.WifiConfig)
	edited.Password = "hunter2222"
	edited.SSID = "lab-2"
	ctl.SetModel(edited)

	if !ctl.Dirty() {
		t.Fatal("edit must make the form dirty")
	}
	if err := ctl.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Baseline now equals the submitted payload, credential included.
	base, ok := ctl.Baseline()
	if !ok {
		t.Fatal("baseline missing after save")
	}
	if got := base.(section.WifiConfig); got.SSID != "lab-2" || got.Password != "hunter2222" {
		t.Errorf("baseline = %+v, want submitted payload", got)
	}
	if ctl.Dirty() {
		t.Error("form must be clean immediately after save")
	}
	if len(fc.applied) != 1 || fc.applied[0].Get("ssid") != "lab-2" {
		t.Errorf("applied = %v", fc.applied)
	}
}

func TestSaveFailureKeepsBaseline(t *testing.T) {
	fc := &fakeClient{infoBody: `{"ssid": "lab", "mode": "client", "ipcfg": "dhcp"}`}
	ctl := New(section.Wifi, fc)
	ctl.Load(context.Background())
	before, _ := ctl.Baseline()

	edited := ctl.Model().(section.WifiConfig)
	edited.SSID = "lab-2"
	edited.Password = "hunter2222"
	ctl.SetModel(edited)

	fc.applyErr = errors.New("500")
	if err := ctl.Save(context.Background()); err == nil {
		t.Fatal("apply failure must propagate")
	}

	after, _ := ctl.Baseline()
	if after.(section.WifiConfig) != before.(section.WifiConfig) {
		t.Error("failed save must leave the baseline untouched")
	}
	if !ctl.Dirty() {
		t.Error("failed save must leave the form dirty")
	}
}

func TestSaveValidatesBeforeSending(t *testing.T) {
	fc := &fakeClient{infoBody: ""}
	ctl := New(section.Wifi, fc)
	ctl.Load(context.Background())

	// Defaults alone fail validation (no SSID); nothing may reach the wire.
	err := ctl.Save(context.Background())
	if !IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
	if len(fc.applied) != 0 {
		t.Error("invalid payload must not be sent")
	}
}

func TestSaveRemembersPersistableSections(t *testing.T) {
	var rememberedID section.ID
	var remembered map[string]string

	fc := &fakeClient{infoBody: `{"ssid": "lab", "mode": "client", "ipcfg": "dhcp"}`}
	ctl := New(section.Wifi, fc, WithRememberFunc(func(id section.ID, fields map[string]string) {
		rememberedID, remembered = id, fields
	}))
	ctl.Load(context.Background())

	edited := ctl.Model().(section.WifiConfig)
	edited.Password = "hunter2222"
	ctl.SetModel(edited)
	if err := ctl.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if rememberedID != section.Wifi || remembered["ssid"] != "lab" {
		t.Errorf("remember callback got %v/%v", rememberedID, remembered)
	}
}

func TestSaveDoesNotRememberModem(t *testing.T) {
	called := false
	fc := &fakeClient{infoBody: `{"data": "mode=FSK2\nrate=500\nldpc=768/256\n"}`}
	ctl := New(section.Modem, fc, WithRememberFunc(func(section.ID, map[string]string) {
		called = true
	}))
	ctl.Load(context.Background())

	edited := ctl.Model().(section.ModemConfig)
	edited.Rate = "200"
	ctl.SetModel(edited)
	if err := ctl.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if called {
		t.Error("modem fields must not be persisted to profiles")
	}
}

func TestSetModelRejectsForeignSection(t *testing.T) {
	ctl := New(section.Wifi, &fakeClient{})
	if err := ctl.SetModel(section.ModemConfig{}); err == nil {
		t.Error("foreign section model must be rejected")
	}
}

func TestCanSaveOfflineGate(t *testing.T) {
	ctl := New(section.Wifi, &fakeClient{})
	if ctl.CanSave(true) {
		t.Error("offline must gate the save action")
	}
	if !ctl.CanSave(false) {
		t.Error("dirty form online must be saveable")
	}
}
