package section

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/gatewave/gatecon/internal/payload"
)

// RadiodConfig is the device-daemon section. The daemon group is read-only
// operational state; the bus group is the editable SPI/GPIO wiring of the
// radio transceiver.
type RadiodConfig struct {
	// Daemon holds the daemon-config entries in wire order, nil when the
	// payload carried none.
	Daemon *payload.Fields

	// RawText is the verbatim payload when no field mapping could be formed
	// from it; the console shows it as-is.
	RawText string

	Bus BusConfig
}

// BusConfig is the transceiver wiring: the SPI device and the five GPIO
// control lines, each as a chip/line pair.
type BusConfig struct {
	SPIChip   string // spiN
	SPISelect string // chip-select line number

	IRQChip  string // gpiochipN
	IRQPin   string
	BusyChip string
	BusyPin  string
	NRSTChip string
	NRSTPin  string
	TxEnChip string
	TxEnPin  string
	RxEnChip string
	RxEnPin  string
}

var (
	spiDeviceRe = regexp.MustCompile(`^(?:/dev/)?(spi\d+)\.(\d+)$`)
	spiChipRe   = regexp.MustCompile(`^spi\d+$`)
	gpioChipRe  = regexp.MustCompile(`^(?:/dev/)?(gpiochip\d+)$`)
	digitsRe    = regexp.MustCompile(`\d+`)
)

// busKeywords are the control-line names (and their common abbreviations)
// that route a top-level daemon key into the bus group.
var busKeywords = []string{"irq", "busy", "nrst", "reset", "tx_en", "txen", "rx_en", "rxen"}

// isBusKey classifies a lower-cased top-level key. There is no schema to
// consult: anything that names the SPI bus, starts with gpio, or mentions a
// control line is treated as wiring.
func isBusKey(key string) bool {
	if strings.Contains(key, "spi") || strings.HasPrefix(key, "gpio") {
		return true
	}
	for _, kw := range busKeywords {
		if strings.Contains(key, kw) {
			return true
		}
	}
	switch key {
	case "miso", "mosi", "sck", "clk", "cs", "chipselect":
		return true
	}
	return false
}

// ExtractRadiod runs the device-daemon pipeline. Unlike the other sections
// the envelope also admits "config" and "content", and a payload that never
// forms a mapping is not "no data": the raw text becomes the daemon display
// and the bus group stays empty.
func ExtractRadiod(body string) RadiodConfig {
	f := payload.Normalize(body)
	if f == nil {
		return RadiodConfig{RawText: strings.TrimSpace(body)}
	}

	inner := f
	for _, key := range []string{"data", "config", "content"} {
		v, ok := f.Get(key)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case *payload.Fields:
			inner = t
		case string:
			if nf := payload.Normalize(t); nf != nil {
				inner = nf
			} else {
				return RadiodConfig{RawText: strings.TrimSpace(t)}
			}
		default:
			s, _ := payload.CoerceString(t)
			return RadiodConfig{RawText: s}
		}
		break
	}

	// Split the mapping into bus wiring and daemon state. An explicit "spi"
	// sub-object seeds the bus group; heuristic matches never override it.
	bus := payload.NewFields()
	daemon := payload.NewFields()

	if v, ok := inner.Get("spi"); ok {
		if sub, isObj := v.(*payload.Fields); isObj {
			sub.Range(func(k string, sv any) bool {
				bus.Set(strings.ToLower(strings.TrimSpace(k)), sv)
				return true
			})
		}
	}

	inner.Range(func(k string, v any) bool {
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "spi" {
			return true
		}
		if isBusKey(key) {
			if !bus.Has(key) {
				bus.Set(key, v)
			}
		} else {
			daemon.Set(k, v)
		}
		return true
	})

	cfg := RadiodConfig{Bus: extractBus(bus)}
	if daemon.Len() > 0 {
		cfg.Daemon = daemon
	}
	return cfg
}

// extractBus derives the chip/line pairs from the many key spellings the
// daemon has used for them. Keys in f are already lower-cased.
func extractBus(f *payload.Fields) BusConfig {
	get := func(keys ...string) string {
		for _, k := range keys {
			if s := f.String(k); s != "" {
				return s
			}
		}
		return ""
	}

	// SPI device path, composed from port + chip-select when absent.
	device := get("spi_device", "device", "dev", "path")
	if device == "" {
		port := digitsRe.FindString(get("spi_port", "port", "spi_bus", "bus"))
		cs := digitsRe.FindString(get("spi_cs", "cs", "chipselect", "chip_select"))
		if port != "" && cs != "" {
			device = "/dev/spi" + port + "." + cs
		}
	}

	var b BusConfig
	if m := spiDeviceRe.FindStringSubmatch(strings.TrimSpace(device)); m != nil {
		b.SPIChip, b.SPISelect = m[1], m[2]
	} else {
		b.SPIChip = normalizeSPIChip(get("spi_chip"))
		b.SPISelect = digitsRe.FindString(get("spi_pin", "spi_select", "spi_cs", "cs", "chipselect", "chip_select"))
	}

	b.IRQChip, b.IRQPin = extractLine(get, "irq")
	b.BusyChip, b.BusyPin = extractLine(get, "busy")
	b.NRSTChip, b.NRSTPin = extractLine(get, "nrst", "reset")
	b.TxEnChip, b.TxEnPin = extractLine(get, "tx_en", "txen")
	b.RxEnChip, b.RxEnPin = extractLine(get, "rx_en", "rxen")
	return b
}

func extractLine(get func(...string) string, aliases ...string) (chip, pin string) {
	var chipKeys, pinKeys []string
	for _, a := range aliases {
		chipKeys = append(chipKeys, "gpio_"+a+"_chip", a+"_chip", "gpio_"+a+"_port", a+"_port")
		pinKeys = append(pinKeys, "gpio_"+a+"_pin", a+"_pin")
	}
	return NormalizeGPIOChip(get(chipKeys...)), get(pinKeys...)
}

func normalizeSPIChip(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if digitsRe.FindString(s) == s {
		return "spi" + s
	}
	return s
}

// NormalizeGPIOChip folds the chip spellings to gpiochipN: a bare number
// gets the prefix, a /dev/ path loses it, anything else passes through.
func NormalizeGPIOChip(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if digitsRe.FindString(s) == s {
		return "gpiochip" + s
	}
	if m := gpioChipRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// Section implements Model.
func (c RadiodConfig) Section() ID { return Radiod }

// HasData implements Model. Only the editable bus group counts; daemon
// display content alone does not establish a baseline.
func (c RadiodConfig) HasData() bool {
	return c.Bus != (BusConfig{})
}

// DiffersFrom implements Model. Only the bus group is comparable; the
// daemon group is not editable.
func (c RadiodConfig) DiffersFrom(baseline Model) bool {
	b, ok := baseline.(RadiodConfig)
	if !ok {
		return true
	}
	return c.Bus.trimmed() != b.Bus.trimmed()
}

func (b BusConfig) trimmed() BusConfig {
	return BusConfig{
		SPIChip:   strings.TrimSpace(b.SPIChip),
		SPISelect: strings.TrimSpace(b.SPISelect),
		IRQChip:   strings.TrimSpace(b.IRQChip),
		IRQPin:    strings.TrimSpace(b.IRQPin),
		BusyChip:  strings.TrimSpace(b.BusyChip),
		BusyPin:   strings.TrimSpace(b.BusyPin),
		NRSTChip:  strings.TrimSpace(b.NRSTChip),
		NRSTPin:   strings.TrimSpace(b.NRSTPin),
		TxEnChip:  strings.TrimSpace(b.TxEnChip),
		TxEnPin:   strings.TrimSpace(b.TxEnPin),
		RxEnChip:  strings.TrimSpace(b.RxEnChip),
		RxEnPin:   strings.TrimSpace(b.RxEnPin),
	}
}

// Validate implements Model: every bus field is required, chips in their
// canonical spelling.
func (c RadiodConfig) Validate() error {
	b := c.Bus.trimmed()
	if !spiChipRe.MatchString(b.SPIChip) {
		return errors.New("SPI chip must look like spiN (e.g. spi0)")
	}
	if b.SPISelect == "" || digitsRe.FindString(b.SPISelect) != b.SPISelect {
		return errors.New("SPI select line must be a number")
	}
	lines := []struct {
		label, chip, pin string
	}{
		{"IRQ", b.IRQChip, b.IRQPin},
		{"BUSY", b.BusyChip, b.BusyPin},
		{"NRST", b.NRSTChip, b.NRSTPin},
		{"TX enable", b.TxEnChip, b.TxEnPin},
		{"RX enable", b.RxEnChip, b.RxEnPin},
	}
	for _, l := range lines {
		if !gpioChipRe.MatchString(l.chip) {
			return fmt.Errorf("%s chip must look like gpiochipN", l.label)
		}
		if l.pin == "" {
			return fmt.Errorf("%s line is required", l.label)
		}
	}
	return nil
}

// FormValues implements Model.
func (c RadiodConfig) FormValues() url.Values {
	v := url.Values{}
	for k, val := range c.FieldMap() {
		v.Set(k, val)
	}
	return v
}

// FieldMap implements Model.
func (c RadiodConfig) FieldMap() map[string]string {
	b := c.Bus
	return map[string]string{
		"spi_chip":         b.SPIChip,
		"spi_pin":          b.SPISelect,
		"gpio_irq_chip":    b.IRQChip,
		"gpio_irq_pin":     b.IRQPin,
		"gpio_busy_chip":   b.BusyChip,
		"gpio_busy_pin":    b.BusyPin,
		"gpio_nrst_chip":   b.NRSTChip,
		"gpio_nrst_pin":    b.NRSTPin,
		"gpio_tx_en_chip":  b.TxEnChip,
		"gpio_tx_en_pin":   b.TxEnPin,
		"gpio_rx_en_chip":  b.RxEnChip,
		"gpio_rx_en_pin":   b.RxEnPin,
	}
}

func busFromMap(m map[string]string) BusConfig {
	get := func(k string) string { return strings.TrimSpace(m[k]) }
	return BusConfig{
		SPIChip:   normalizeSPIChip(get("spi_chip")),
		SPISelect: get("spi_pin"),
		IRQChip:   NormalizeGPIOChip(get("gpio_irq_chip")),
		IRQPin:    get("gpio_irq_pin"),
		BusyChip:  NormalizeGPIOChip(get("gpio_busy_chip")),
		BusyPin:   get("gpio_busy_pin"),
		NRSTChip:  NormalizeGPIOChip(get("gpio_nrst_chip")),
		NRSTPin:   get("gpio_nrst_pin"),
		TxEnChip:  NormalizeGPIOChip(get("gpio_tx_en_chip")),
		TxEnPin:   get("gpio_tx_en_pin"),
		RxEnChip:  NormalizeGPIOChip(get("gpio_rx_en_chip")),
		RxEnPin:   get("gpio_rx_en_pin"),
	}
}

// secretKeyRe marks daemon keys whose values are redacted in display output.
var secretKeyRe = regexp.MustCompile(`(?i)(pass|secret|token|psk|\bkey\b)`)

// RedactedKey reports whether a daemon key's value should be masked.
func RedactedKey(key string) bool {
	return secretKeyRe.MatchString(key)
}

// DaemonLines renders the daemon group for display, masking secret-looking
// values. RawText wins when set.
func (c RadiodConfig) DaemonLines() []string {
	if c.RawText != "" {
		return strings.Split(c.RawText, "\n")
	}
	if c.Daemon == nil {
		return nil
	}
	var lines []string
	c.Daemon.Range(func(k string, v any) bool {
		s, scalar := payload.CoerceString(v)
		if !scalar {
			s = "(nested)"
		}
		if s != "" && RedactedKey(k) {
			s = "••••••"
		}
		lines = append(lines, k+"="+s)
		return true
	})
	return lines
}
