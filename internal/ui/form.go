package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gatewave/gatecon/internal/profile"
	"github.com/gatewave/gatecon/internal/section"
)

// FieldKind selects the editor for a form row.
type FieldKind int

const (
	// FieldText is a free-text editor.
	FieldText FieldKind = iota
	// FieldSecret is a free-text editor whose value is masked.
	FieldSecret
	// FieldSelect cycles through a fixed option set.
	FieldSelect
)

// Field describes one editable row of a section form.
type Field struct {
	Key     string // canonical field name
	Label   string
	Kind    FieldKind
	Options []string // FieldSelect only

	// StaticOnly rows apply only when the addressing mode is static; they
	// render dimmed otherwise but keep their value.
	StaticOnly bool
}

var addressingFields = []Field{
	{Key: "ip_config", Label: "Addressing", Kind: FieldSelect, Options: []string{"dhcp", "static"}},
	{Key: "ip", Label: "IP address", StaticOnly: true},
	{Key: "netmask", Label: "Netmask", StaticOnly: true},
	{Key: "gateway", Label: "Gateway", StaticOnly: true},
	{Key: "dns1", Label: "DNS 1", StaticOnly: true},
	{Key: "dns2", Label: "DNS 2", StaticOnly: true},
}

// sectionFields returns the form layout for a section, in display order.
func sectionFields(id section.ID) []Field {
	switch id {
	case section.Wifi:
		fields := []Field{
			{Key: "mode", Label: "Mode", Kind: FieldSelect, Options: []string{"client", "ap"}},
			{Key: "ssid", Label: "SSID"},
			{Key: "password", Label: "Password", Kind: FieldSecret},
		}
		return append(fields, addressingFields...)

	case section.Ethernet:
		return append([]Field{}, addressingFields...)

	case section.Modem:
		return []Field{
			{Key: "mode", Label: "Mode", Kind: FieldSelect, Options: section.ModemModes},
			{Key: "rate", Label: "Symbol rate", Kind: FieldSelect, Options: section.ModemRates},
			{Key: "ldpc", Label: "LDPC rate", Kind: FieldSelect, Options: section.ModemLDPCs},
		}

	case section.Radiod:
		return []Field{
			{Key: "spi_chip", Label: "SPI chip"},
			{Key: "spi_pin", Label: "SPI select"},
			{Key: "gpio_irq_chip", Label: "IRQ chip"},
			{Key: "gpio_irq_pin", Label: "IRQ line"},
			{Key: "gpio_busy_chip", Label: "BUSY chip"},
			{Key: "gpio_busy_pin", Label: "BUSY line"},
			{Key: "gpio_nrst_chip", Label: "NRST chip"},
			{Key: "gpio_nrst_pin", Label: "NRST line"},
			{Key: "gpio_tx_en_chip", Label: "TX enable chip"},
			{Key: "gpio_tx_en_pin", Label: "TX enable line"},
			{Key: "gpio_rx_en_chip", Label: "RX enable chip"},
			{Key: "gpio_rx_en_pin", Label: "RX enable line"},
		}
	}
	return nil
}

// form is the editable state of one section tab: field descriptors plus one
// text input per row. Select rows reuse the input purely as value storage.
type form struct {
	id      section.ID
	fields  []Field
	inputs  []textinput.Model
	cursor  int
	editing bool
}

func newForm(id section.ID, m section.Model, reg *profile.Registry) *form {
	fields := sectionFields(id)
	f := &form{
		id:     id,
		fields: fields,
		inputs: make([]textinput.Model, len(fields)),
	}

	values := m.FieldMap()
	for i, fd := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 128
		ti.Width = 40
		if fd.Kind == FieldSecret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		ti.SetValue(values[fd.Key])
		f.inputs[i] = ti
	}
	f.applyHints(reg)
	return f
}

// applyHints sets empty text rows' placeholders from the profile registry's
// suggestions. Select rows always hold a concrete value, so they are skipped.
func (f *form) applyHints(reg *profile.Registry) {
	if reg == nil {
		return
	}
	for i, fd := range f.fields {
		if fd.Kind == FieldSelect {
			continue
		}
		if s := reg.Suggestions(string(f.id), fd.Key); len(s) > 0 {
			f.inputs[i].Placeholder = s[0]
		}
	}
}

// setValues replaces every row's value from a model.
func (f *form) setValues(m section.Model) {
	values := m.FieldMap()
	for i, fd := range f.fields {
		f.inputs[i].SetValue(values[fd.Key])
	}
}

// fillEmpty populates empty rows from a remembered field set. Used by the
// autofill "fill" mode when a section loads without a baseline.
func (f *form) fillEmpty(fields profile.FieldSet) {
	for i, fd := range f.fields {
		if strings.TrimSpace(f.inputs[i].Value()) != "" {
			continue
		}
		if v := fields[fd.Key]; v != "" {
			f.inputs[i].SetValue(v)
		}
	}
}

// values collects the current row values as a canonical field map.
func (f *form) values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for i, fd := range f.fields {
		out[fd.Key] = f.inputs[i].Value()
	}
	return out
}

// model builds the section model for the current row values.
func (f *form) model() section.Model {
	return section.FromFields(f.id, f.values())
}

// staticMode reports whether the addressing mode row (if any) reads static.
func (f *form) staticMode() bool {
	for i, fd := range f.fields {
		if fd.Key == "ip_config" {
			return section.NormalizeIPConfig(f.inputs[i].Value()) == "static"
		}
	}
	return false
}

func (f *form) moveCursor(delta int) {
	n := len(f.fields)
	if n == 0 {
		return
	}
	f.cursor = (f.cursor + delta + n) % n
}

// cycleSelect advances the focused select row by delta and returns true when
// the cursor row was a select.
func (f *form) cycleSelect(delta int) bool {
	fd := f.fields[f.cursor]
	if fd.Kind != FieldSelect || len(fd.Options) == 0 {
		return false
	}
	cur := f.inputs[f.cursor].Value()
	idx := 0
	for i, opt := range fd.Options {
		if strings.EqualFold(opt, strings.TrimSpace(cur)) {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(fd.Options)) % len(fd.Options)
	f.inputs[f.cursor].SetValue(fd.Options[idx])
	return true
}

// startEdit focuses the cursor row's text editor. Select rows are cycled, not
// focused.
func (f *form) startEdit() tea.Cmd {
	if f.fields[f.cursor].Kind == FieldSelect {
		return nil
	}
	f.editing = true
	return f.inputs[f.cursor].Focus()
}

func (f *form) stopEdit() {
	f.editing = false
	f.inputs[f.cursor].Blur()
}

// updateEditing forwards a message to the focused editor.
func (f *form) updateEditing(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.cursor], cmd = f.inputs[f.cursor].Update(msg)
	return cmd
}

// View renders the form rows.
func (f *form) View() string {
	var b strings.Builder
	static := f.staticMode()

	for i, fd := range f.fields {
		label := fd.Label
		dimmed := fd.StaticOnly && !static

		var value string
		switch {
		case f.editing && i == f.cursor:
			value = FocusedValueStyle.Render(f.inputs[i].View())
		case fd.Kind == FieldSecret && f.inputs[i].Value() != "":
			value = strings.Repeat("•", len(f.inputs[i].Value()))
		case fd.Kind == FieldSelect:
			value = "‹ " + f.inputs[i].Value() + " ›"
		default:
			value = f.inputs[i].Value()
			if value == "" && f.inputs[i].Placeholder != "" {
				value = SubtleStyle.Render(f.inputs[i].Placeholder + " ?")
			}
		}

		row := padLabel(label) + value
		switch {
		case i == f.cursor:
			b.WriteString(SelectedLabelStyle.Render("→ " + row))
		case dimmed:
			b.WriteString(DimmedLabelStyle.Render("  " + row))
		default:
			b.WriteString(LabelStyle.Render("  " + row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

const labelWidth = 16

func padLabel(s string) string {
	if len(s) >= labelWidth {
		return s + " "
	}
	return s + strings.Repeat(" ", labelWidth-len(s))
}
