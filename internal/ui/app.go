package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/gatewave/gatecon/internal/client"
	"github.com/gatewave/gatecon/internal/controller"
	"github.com/gatewave/gatecon/internal/logging"
	"github.com/gatewave/gatecon/internal/profile"
	"github.com/gatewave/gatecon/internal/section"
	"github.com/gatewave/gatecon/internal/status"
)

// statusPollInterval drives the redraw tick that picks up indicator
// transitions deferred by the dwell debounce.
const statusPollInterval = 250 * time.Millisecond

type keyMap struct {
	NextSection key.Binding
	PrevSection key.Binding
	Up          key.Binding
	Down        key.Binding
	Edit        key.Binding
	Save        key.Binding
	Reload      key.Binding
	Autofill    key.Binding
	Copy        key.Binding
	Quit        key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextSection, k.Up, k.Down, k.Edit, k.Save, k.Reload, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextSection, k.PrevSection, k.Up, k.Down},
		{k.Edit, k.Save, k.Reload, k.Autofill, k.Copy, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextSection: key.NewBinding(
			key.WithKeys("tab", "right"),
			key.WithHelp("tab", "next section"),
		),
		PrevSection: key.NewBinding(
			key.WithKeys("shift+tab", "left"),
			key.WithHelp("shift+tab", "prev section"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter", "edit/cycle"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Autofill: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "autofill mode"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Messages produced by background operations.
type loadedMsg struct {
	id  section.ID
	err error
}

type savedMsg struct {
	id  section.ID
	err error
}

type tickMsg time.Time

// Model is the top-level console model.
type Model struct {
	client    *client.Client
	store     *profile.Store
	registry  *profile.Registry
	indicator *status.Indicator
	log       *zap.Logger

	controllers map[section.ID]*controller.Controller
	forms       map[section.ID]*form

	active int // index into section.All()
	busy   bool

	message    string
	messageErr bool

	width  int
	height int

	help help.Model
	keys keyMap
}

// NewModel assembles the console against a control-plane client and the
// local profile store. The registry may have been freshly defaulted if the
// profile file was missing; the caller decides whether load errors are fatal.
func NewModel(cl *client.Client, store *profile.Store, reg *profile.Registry) Model {
	m := Model{
		client:      cl,
		store:       store,
		registry:    reg,
		indicator:   status.NewIndicator(),
		log:         logging.GetLogger(),
		controllers: make(map[section.ID]*controller.Controller),
		forms:       make(map[section.ID]*form),
		help:        help.New(),
		keys:        defaultKeyMap(),
	}

	for _, id := range section.All() {
		m.enterSection(id)
	}
	return m
}

// enterSection builds a fresh controller and form for a section. Called on
// every section switch: baselines do not outlive the visit.
func (m Model) enterSection(id section.ID) {
	ctrl := controller.New(id, m.client,
		controller.WithRememberFunc(m.rememberFields))
	m.controllers[id] = ctrl
	m.forms[id] = newForm(id, ctrl.Model(), m.registry)
}

// rememberFields persists a successfully applied field set to the profile
// registry. Invoked from the controller after persistable saves.
func (m Model) rememberFields(id section.ID, fields map[string]string) {
	m.registry.Remember(string(id), fields)
	if m.store == nil {
		return
	}
	if err := m.store.Save(m.registry); err != nil {
		m.log.Warn("profile save failed", zap.Error(err))
	}
}

func (m Model) activeID() section.ID {
	return section.All()[m.active]
}

func (m Model) activeForm() *form {
	return m.forms[m.activeID()]
}

func (m Model) activeController() *controller.Controller {
	return m.controllers[m.activeID()]
}

// Init starts the status tick and loads the first section.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(m.activeID()), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(statusPollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) loadCmd(id section.ID) tea.Cmd {
	ctrl := m.controllers[id]
	return func() tea.Msg {
		_, err := ctrl.Load(context.Background())
		return loadedMsg{id: id, err: err}
	}
}

func (m Model) saveCmd(id section.ID) tea.Cmd {
	ctrl := m.controllers[id]
	return func() tea.Msg {
		err := ctrl.Save(context.Background())
		return savedMsg{id: id, err: err}
	}
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Redraw so dwell-deferred indicator transitions become visible.
		return m, tickCmd()

	case loadedMsg:
		return m.handleLoaded(msg)

	case savedMsg:
		return m.handleSaved(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if f := m.activeForm(); f.editing {
		return m, f.updateEditing(msg)
	}
	return m, nil
}

func (m Model) handleLoaded(msg loadedMsg) (tea.Model, tea.Cmd) {
	m.busy = false

	ctrl := m.controllers[msg.id]
	f := m.forms[msg.id]
	f.setValues(ctrl.Model())

	if msg.err != nil {
		m.setStatusFromError(msg.err)
		m.message = "Load failed: " + msg.err.Error() + ". Edit the blank form and save to push a configuration."
		m.messageErr = true
	} else {
		m.indicator.Set(status.Online, "")
		m.message = ""
		m.messageErr = false
	}

	// Without a baseline the form may be blank; fill mode seeds it from the
	// remembered profile, hints mode only updates placeholders.
	if _, ok := ctrl.Baseline(); !ok {
		if m.registry.Autofill == profile.AutofillFill {
			if fs := m.registry.Fields(string(msg.id)); fs != nil {
				f.fillEmpty(fs)
				_ = ctrl.SetModel(f.model())
			}
		}
	}
	f.applyHints(m.registry)
	return m, nil
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		if controller.IsValidation(msg.err) {
			m.indicator.Set(status.Online, "")
		} else {
			m.setStatusFromError(msg.err)
		}
		m.message = "Save failed: " + msg.err.Error()
		m.messageErr = true
		return m, nil
	}
	m.indicator.Set(status.Online, "saved")
	m.message = msg.id.Title() + " configuration applied."
	m.messageErr = false
	return m, nil
}

func (m *Model) setStatusFromError(err error) {
	switch client.KindOf(err) {
	case client.KindOffline:
		m.indicator.Set(status.Offline, "no active network interface")
	case client.KindTimeout:
		m.indicator.Set(status.Error, "appliance not responding")
	default:
		m.indicator.Set(status.Error, err.Error())
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.activeForm()

	// While a text editor is focused, only enter/esc leave edit mode; every
	// other key goes to the editor.
	if f.editing {
		switch msg.String() {
		case "enter":
			f.stopEdit()
			_ = m.activeController().SetModel(f.model())
			return m, nil
		case "esc":
			f.stopEdit()
			f.setValues(m.activeController().Model())
			return m, nil
		}
		return m, f.updateEditing(msg)
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextSection):
		return m.switchSection(1)

	case key.Matches(msg, m.keys.PrevSection):
		return m.switchSection(-1)

	case key.Matches(msg, m.keys.Up):
		f.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		f.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if f.cycleSelect(1) {
			_ = m.activeController().SetModel(f.model())
			return m, nil
		}
		return m, f.startEdit()

	case key.Matches(msg, m.keys.Save):
		return m.startSave()

	case key.Matches(msg, m.keys.Reload):
		return m.startLoad(m.activeID())

	case key.Matches(msg, m.keys.Autofill):
		mode := m.registry.ToggleAutofill()
		if m.store != nil {
			if err := m.store.Save(m.registry); err != nil {
				m.log.Warn("profile save failed", zap.Error(err))
			}
		}
		m.message = "Autofill mode: " + string(mode)
		m.messageErr = false
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m.copySection()
	}

	// Section hotkeys 1..n.
	for i := range section.All() {
		if msg.String() == fmt.Sprintf("%d", i+1) {
			return m.activateSection(i)
		}
	}
	return m, nil
}

func (m Model) switchSection(delta int) (tea.Model, tea.Cmd) {
	n := len(section.All())
	return m.activateSection((m.active + delta + n) % n)
}

func (m Model) activateSection(idx int) (tea.Model, tea.Cmd) {
	if m.busy || idx == m.active {
		return m, nil
	}
	m.active = idx
	m.message = ""
	m.messageErr = false

	// Entering a section starts it over: fresh controller, fresh baseline.
	m.enterSection(m.activeID())
	return m.startLoad(m.activeID())
}

func (m Model) startLoad(id section.ID) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	if m.client.Offline() {
		m.indicator.Set(status.Offline, "no active network interface")
		m.message = "Offline. Connect to the appliance network and press r to reload."
		m.messageErr = true
		return m, nil
	}
	m.busy = true
	m.indicator.Set(status.Busy, "loading "+string(id))
	return m, m.loadCmd(id)
}

func (m Model) startSave() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	ctrl := m.activeController()
	_ = ctrl.SetModel(m.activeForm().model())

	if !ctrl.Dirty() {
		m.message = "No changes to save."
		m.messageErr = false
		return m, nil
	}
	if m.client.Offline() {
		m.indicator.Set(status.Offline, "no active network interface")
		m.message = "Offline, cannot save."
		m.messageErr = true
		return m, nil
	}
	m.busy = true
	m.indicator.Set(status.Busy, "applying "+string(m.activeID()))
	return m, m.saveCmd(m.activeID())
}

// copySection puts the active section's fields on the system clipboard as
// key=value lines, credentials masked.
func (m Model) copySection() (tea.Model, tea.Cmd) {
	var b strings.Builder
	for k, v := range m.activeForm().values() {
		if v != "" && section.RedactedKey(k) {
			v = "••••••"
		}
		fmt.Fprintf(&b, "%s=%s\n", k, v)
	}
	if err := clipboard.WriteAll(b.String()); err != nil {
		m.message = "Clipboard unavailable: " + err.Error()
		m.messageErr = true
		return m, nil
	}
	m.message = "Copied " + m.activeID().Title() + " fields to clipboard."
	m.messageErr = false
	return m, nil
}

// View renders the console.
func (m Model) View() string {
	if m.width == 0 {
		return "starting..."
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n\n")
	b.WriteString(m.activeForm().View())

	if m.activeID() == section.Radiod {
		if panel := m.renderDaemonPanel(); panel != "" {
			b.WriteString(panel)
			b.WriteString("\n")
		}
	}

	if m.message != "" {
		b.WriteString("\n")
		if m.messageErr {
			b.WriteString(ErrorStyle.Render("✗ " + m.message))
		} else {
			b.WriteString(SuccessStyle.Render("✓ " + m.message))
		}
		b.WriteString("\n")
	}

	footer := m.help.View(m.keys)
	return RenderConsoleFrame(b.String(), footer, m.width, m.height)
}

func (m Model) renderTabs() string {
	var tabs []string
	for i, id := range section.All() {
		label := fmt.Sprintf("%d %s", i+1, id.Title())
		if i == m.active && m.controllers[id].Dirty() {
			label += " *"
		}
		if i == m.active {
			tabs = append(tabs, ActiveTabStyle.Render("["+label+"]"))
		} else {
			tabs = append(tabs, TabStyle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderStatusLine() string {
	state, detail := m.indicator.Current()

	var styled string
	switch state {
	case status.Online:
		styled = StatusOnlineStyle.Render("● online")
	case status.Offline:
		styled = StatusOfflineStyle.Render("○ offline")
	case status.Busy:
		styled = StatusBusyStyle.Render("◐ busy")
	case status.Error:
		styled = StatusErrorStyle.Render("● error")
	default:
		styled = SubtleStyle.Render("○ unknown")
	}

	line := styled + "  " + SubtleStyle.Render(m.client.BaseURL)
	if detail != "" {
		line += "  " + SubtleStyle.Render(detail)
	}
	return line
}

// renderDaemonPanel shows the read-only daemon state under the bus form.
// The baseline is preferred: models rebuilt from form edits carry only the
// bus group.
func (m Model) renderDaemonPanel() string {
	mdl := m.activeController().Model()
	if base, ok := m.activeController().Baseline(); ok {
		mdl = base
	}
	cfg, ok := mdl.(section.RadiodConfig)
	if !ok {
		return ""
	}
	lines := cfg.DaemonLines()
	if len(lines) == 0 {
		return ""
	}
	const maxLines = 12
	if len(lines) > maxLines {
		lines = append(lines[:maxLines], "…")
	}
	return PanelStyle.Render("daemon state (read-only)\n" + strings.Join(lines, "\n"))
}
