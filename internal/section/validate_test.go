package section

import (
	"strings"
	"testing"
)

func TestValidIPv4(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"192.168.1.1", true},
		{"0.0.0.0", true},
		{"255.255.255.255", true},
		{" 10.0.0.1 ", true},
		{"192.168.01.1", false}, // leading zero is not canonical
		{"01.2.3.4", false},
		{"256.1.1.1", false},
		{"1.2.3", false},
		{"1.2.3.4.5", false},
		{"1.2.3.", false},
		{"a.b.c.d", false},
		{"1.2.3.4a", false},
		{"-1.2.3.4", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidIPv4(tt.in); got != tt.want {
			t.Errorf("ValidIPv4(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateWifiRuleOrder(t *testing.T) {
	// SSID rule fires before the credential rule.
	c := WifiConfig{Mode: "client", SSID: "", Password: "x"}
	err := c.Validate()
	if err == nil || !strings.Contains(err.Error(), "SSID") {
		t.Errorf("want SSID error first, got %v", err)
	}

	c.SSID = "lab"
	err = c.Validate()
	if err == nil || !strings.Contains(err.Error(), "password") {
		t.Errorf("want password error second, got %v", err)
	}

	c.Password = "hunter2222"
	if err := c.Validate(); err != nil {
		t.Errorf("dhcp client config should validate, got %v", err)
	}
}

func TestValidateWifiAPModeSkipsPassword(t *testing.T) {
	c := WifiConfig{Mode: "ap", SSID: "lab", Password: ""}
	if err := c.Validate(); err != nil {
		t.Errorf("ap mode must not require a credential, got %v", err)
	}
}

func TestValidateStaticAddressing(t *testing.T) {
	base := Addressing{IPConfig: "static", IP: "10.0.0.2", Netmask: "255.255.255.0"}

	if err := (EthernetConfig{Addressing: base}).Validate(); err != nil {
		t.Errorf("minimal static config should validate, got %v", err)
	}

	bad := base
	bad.IP = "10.0.0.256"
	if err := (EthernetConfig{Addressing: bad}).Validate(); err == nil {
		t.Error("invalid IP must fail")
	}

	bad = base
	bad.Gateway = "not-an-ip"
	if err := (EthernetConfig{Addressing: bad}).Validate(); err == nil {
		t.Error("present-but-invalid gateway must fail")
	}

	bad = base
	bad.DNS2 = "192.168.01.1"
	if err := (EthernetConfig{Addressing: bad}).Validate(); err == nil {
		t.Error("non-canonical DNS 2 must fail")
	}

	// dhcp mode skips all addressing checks, stale garbage included.
	loose := EthernetConfig{Addressing: Addressing{IPConfig: "dhcp", IP: "garbage"}}
	if err := loose.Validate(); err != nil {
		t.Errorf("dhcp mode must skip addressing rules, got %v", err)
	}
}

func TestValidateModem(t *testing.T) {
	ok := ModemConfig{Mode: "FSK2", Rate: "500", LDPC: "768/256"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid modem config rejected: %v", err)
	}

	tests := []struct {
		name string
		mut  func(*ModemConfig)
	}{
		{"bad mode", func(c *ModemConfig) { c.Mode = "FSK8" }},
		{"bad rate", func(c *ModemConfig) { c.Rate = "250" }},
		{"bad ldpc", func(c *ModemConfig) { c.LDPC = "1024/256" }},
		{"empty mode", func(c *ModemConfig) { c.Mode = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ok
			tt.mut(&c)
			if err := c.Validate(); err == nil {
				t.Error("expected validation failure")
			}
		})
	}

	// Mode comparison is case-insensitive like extraction.
	lower := ModemConfig{Mode: "fsk4", Rate: "20", LDPC: "512/256"}
	if err := lower.Validate(); err != nil {
		t.Errorf("lower-case mode should validate, got %v", err)
	}
}

func TestValidateRadiodBus(t *testing.T) {
	full := BusConfig{
		SPIChip: "spi0", SPISelect: "0",
		IRQChip: "gpiochip1", IRQPin: "23",
		BusyChip: "gpiochip1", BusyPin: "24",
		NRSTChip: "gpiochip1", NRSTPin: "25",
		TxEnChip: "gpiochip0", TxEnPin: "4",
		RxEnChip: "gpiochip0", RxEnPin: "5",
	}
	if err := (RadiodConfig{Bus: full}).Validate(); err != nil {
		t.Fatalf("complete bus config rejected: %v", err)
	}

	tests := []struct {
		name string
		mut  func(*BusConfig)
		want string
	}{
		{"bad spi chip", func(b *BusConfig) { b.SPIChip = "0" }, "SPI chip"},
		{"bad select", func(b *BusConfig) { b.SPISelect = "cs0" }, "select line"},
		{"bad gpio chip", func(b *BusConfig) { b.IRQChip = "chip1" }, "IRQ chip"},
		{"missing pin", func(b *BusConfig) { b.BusyPin = "" }, "BUSY line"},
		{"missing rx", func(b *BusConfig) { b.RxEnPin = "" }, "RX enable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := full
			tt.mut(&b)
			err := (RadiodConfig{Bus: b}).Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("want error mentioning %q, got %v", tt.want, err)
			}
		})
	}

	// /dev/ prefix on a gpio chip is accepted.
	dev := full
	dev.IRQChip = "/dev/gpiochip1"
	if err := (RadiodConfig{Bus: dev}).Validate(); err != nil {
		t.Errorf("/dev/ prefixed gpio chip should validate, got %v", err)
	}
}
