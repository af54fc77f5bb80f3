package section

import "testing"

func TestParseWifiQuotedKeyValue(t *testing.T) {
	body := "ssid=\"shop floor\"\npass='hunter2222'\nipcfg=auto\n"
	m := Parse(Wifi, body)

	c, ok := m.(WifiConfig)
	if !ok {
		t.Fatalf("Parse returned %T, want WifiConfig", m)
	}
	if c.SSID != "shop floor" {
		t.Errorf("SSID = %q, want %q", c.SSID, "shop floor")
	}
	if c.Password != "hunter2222" {
		t.Errorf("Password = %q, want hunter2222", c.Password)
	}
	if c.IPConfig != "dhcp" {
		t.Errorf("IPConfig = %q, want dhcp (auto folds)", c.IPConfig)
	}
	if !c.HasData() {
		t.Error("HasData should be true")
	}
}

func TestParseEthernetAliasedJSON(t *testing.T) {
	body := `{"data": {"addrmode": "manual", "address": "10.1.2.3", "mask": "255.255.255.0", "gw": "10.1.2.1", "dns": "8.8.8.8", "dns1": "1.1.1.1"}}`
	m := Parse(Ethernet, body)

	c := m.(EthernetConfig)
	if c.IPConfig != "static" {
		t.Errorf("IPConfig = %q, want static (manual folds)", c.IPConfig)
	}
	if c.IP != "10.1.2.3" || c.Netmask != "255.255.255.0" || c.Gateway != "10.1.2.1" {
		t.Errorf("addressing = %+v", c.Addressing)
	}
	if c.DNS1 != "8.8.8.8" || c.DNS2 != "1.1.1.1" {
		t.Errorf("dns1/dns2 = %q/%q, want 8.8.8.8/1.1.1.1", c.DNS1, c.DNS2)
	}
}

func TestParseModemEnvelopedText(t *testing.T) {
	body := `{"data": "mode=fsk2\nrate=500\nldpc=768/256\n"}`
	m := Parse(Modem, body)

	c := m.(ModemConfig)
	if c.Mode != "FSK2" {
		t.Errorf("Mode = %q, want FSK2 (upper-cased)", c.Mode)
	}
	if c.Rate != "500" || c.LDPC != "768/256" {
		t.Errorf("Rate/LDPC = %q/%q", c.Rate, c.LDPC)
	}
}

func TestParseWifiRoleVerbatim(t *testing.T) {
	body := `{"mode": "AP", "ssid": "net"}`
	c := Parse(Wifi, body).(WifiConfig)
	if c.Mode != "AP" {
		t.Errorf("Mode = %q, want verbatim %q", c.Mode, "AP")
	}

	// Only the exact lowercase spelling is recognized at render time; an
	// unrecognized role falls back to client.
	w := ApplyDefaults(c).(WifiConfig)
	if w.Mode != "client" {
		t.Errorf("defaulted Mode = %q, want client", w.Mode)
	}

	c = Parse(Wifi, `{"mode": "ap", "ssid": "net"}`).(WifiConfig)
	if w := ApplyDefaults(c).(WifiConfig); w.Mode != "ap" {
		t.Errorf("defaulted Mode = %q, want ap", w.Mode)
	}
}

func TestParseNoData(t *testing.T) {
	tests := []struct {
		name, body string
	}{
		{"empty body", ""},
		{"prose body", "service unavailable"},
		{"scalar data envelope", `{"data": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Parse(Wifi, tt.body)
			if m.HasData() {
				t.Errorf("HasData = true for %q", tt.body)
			}
		})
	}
}

func TestNormalizeIPConfigSynonyms(t *testing.T) {
	tests := []struct{ in, want string }{
		{"dhcp", "dhcp"},
		{"auto", "dhcp"},
		{"Automatic", "dhcp"},
		{"static", "static"},
		{"manual", "static"},
		{"FIXED", "static"},
		{"bridged", "bridged"}, // unrecognized passes through
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeIPConfig(tt.in); got != tt.want {
			t.Errorf("NormalizeIPConfig(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyDefaults(t *testing.T) {
	w := ApplyDefaults(WifiConfig{}).(WifiConfig)
	if w.Mode != "client" || w.IPConfig != "dhcp" {
		t.Errorf("wifi defaults = %q/%q, want client/dhcp", w.Mode, w.IPConfig)
	}

	w = ApplyDefaults(WifiConfig{Mode: "ap", Addressing: Addressing{IPConfig: "static"}}).(WifiConfig)
	if w.Mode != "ap" || w.IPConfig != "static" {
		t.Error("explicit wifi values must survive defaulting")
	}

	mo := ApplyDefaults(ModemConfig{Rate: "250"}).(ModemConfig)
	if mo.Mode != "FSK2" || mo.Rate != "500" || mo.LDPC != "768/256" {
		t.Errorf("modem defaults = %+v", mo)
	}

	mo = ApplyDefaults(ModemConfig{Mode: "FSK4", Rate: "50", LDPC: "512/256"}).(ModemConfig)
	if mo.Mode != "FSK4" || mo.Rate != "50" || mo.LDPC != "512/256" {
		t.Error("explicit modem values must survive defaulting")
	}
}

func TestFromFieldsRoundTrip(t *testing.T) {
	in := map[string]string{
		"mode": "client", "ssid": "lab", "password": "hunter2222",
		"ip_config": "static", "ip": "10.0.0.2", "netmask": "255.255.255.0",
		"gateway": "10.0.0.1", "dns1": "8.8.8.8", "dns2": "",
	}
	m := FromFields(Wifi, in)
	out := m.FieldMap()
	for k, want := range in {
		if out[k] != want {
			t.Errorf("FieldMap[%s] = %q, want %q", k, out[k], want)
		}
	}

	form := m.FormValues()
	if got := form.Get("ssid"); got != "lab" {
		t.Errorf("form ssid = %q", got)
	}
	if _, ok := form["dns2"]; !ok {
		t.Error("form must carry every outbound field, empty ones included")
	}
}
