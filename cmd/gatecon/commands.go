package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gatewave/gatecon/internal/client"
	"github.com/gatewave/gatecon/internal/config"
	"github.com/gatewave/gatecon/internal/discovery"
	"github.com/gatewave/gatecon/internal/profile"
	"github.com/gatewave/gatecon/internal/section"
	"github.com/gatewave/gatecon/internal/ui"
)

// Command flags
var (
	baseURL      string
	serial       string
	timeoutSecs  int
	scanTimeout  int
	copyOutput   bool
	profilesPath string

	wifiFields     = map[string]*string{}
	ethernetFields = map[string]*string{}
	modemFields    = map[string]*string{}
	radiodFields   = map[string]*string{}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Appliance CGI base URL (overrides GATECON_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&serial, "serial", "", "Appliance serial number (resolved via mDNS discovery)")
	rootCmd.PersistentFlags().IntVar(&timeoutSecs, "timeout", 0, "Request timeout in seconds (overrides GATECON_TIMEOUT)")
	rootCmd.PersistentFlags().StringVar(&profilesPath, "profiles", "", "Profile registry file (default: OS config directory)")

	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(newSetCommand(section.Wifi, wifiFields))
	rootCmd.AddCommand(newSetCommand(section.Ethernet, ethernetFields))
	rootCmd.AddCommand(newSetCommand(section.Modem, modemFields))
	rootCmd.AddCommand(newSetCommand(section.Radiod, radiodFields))
}

// newAppClient resolves the control-plane endpoint and builds a client.
// Resolution order: --serial discovery, --base-url, then the environment
// settings (which default to http://gate.local/cgi-bin).
func newAppClient() (*client.Client, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}

	base := settings.BaseURL
	if baseURL != "" {
		base = baseURL
	}
	if serial != "" {
		scanner := discovery.NewScanner()
		appliance, err := scanner.Find(context.Background(), serial)
		if err != nil {
			return nil, err
		}
		fmt.Printf("Found appliance: %s\n\n", appliance)
		base = appliance.BaseURL()
	}

	c := client.New(base)
	timeout := settings.Timeout()
	if timeoutSecs > 0 {
		timeout = time.Duration(timeoutSecs) * time.Second
	}
	c.HTTPClient.Timeout = timeout
	return c, nil
}

// openProfiles loads the profile registry, falling back to a fresh one when
// the file is unreadable. Autofill defaults come from the environment on
// first run.
func openProfiles() (*profile.Store, *profile.Registry) {
	var store *profile.Store
	if profilesPath != "" {
		store = profile.NewStoreAt(profilesPath)
	} else {
		var err error
		store, err = profile.NewStore()
		if err != nil {
			return nil, profile.NewRegistry()
		}
	}
	reg, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: profile registry unreadable, starting fresh: %v\n", err)
		reg = profile.NewRegistry()
	}
	if settings, err := config.Load(); err == nil && len(reg.Sections) == 0 {
		reg.Autofill = profile.AutofillMode(settings.Autofill)
	}
	return store, reg
}

// consoleCmd launches the interactive full-screen console
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Launch the interactive configuration console",
	Long: `Launch the full-screen terminal console.

The console shows one tab per configuration section (wireless, wired, modem,
device daemon). Edits are tracked against the last loaded server state and
the save action only activates when something actually changed.

This is the recommended way to configure appliances for most users.`,
	Example: `  # Launch the console against gate.local
  gatecon console
  # Or simply (console is the default):
  gatecon

  # Console for a specific appliance
  gatecon console --serial 70141532
  gatecon --base-url http://192.168.4.16/cgi-bin`,
	RunE: runConsole,
}

func runConsole(cmd *cobra.Command, args []string) error {
	c, err := newAppClient()
	if err != nil {
		return err
	}
	store, reg := openProfiles()

	model := ui.NewModel(c, store, reg)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("console error: %w", err)
	}
	return nil
}

// scanCmd discovers appliances on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for gateway appliances on the network",
	Long: `Scan for gateway appliances using mDNS/DNS-SD discovery.

This command listens for mDNS broadcasts from appliances and displays all
discovered appliances with their IP addresses, serial numbers, and metadata.`,
	Example: `  # Scan for 10 seconds (default)
  gatecon scan

  # Quick 3-second scan
  gatecon scan --scan-timeout 3`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "scan-timeout", 10, "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for gateway appliances (timeout: %ds)...\n\n", scanTimeout)

	scanner := discovery.NewScanner()
	scanner.Timeout = time.Duration(scanTimeout) * time.Second
	appliances, err := scanner.Scan(context.Background())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(appliances) == 0 {
		fmt.Println("No appliances found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the appliance is powered on")
		fmt.Println("  - Verify your computer is on the same network segment")
		fmt.Println("  - Try increasing --scan-timeout for slower networks")
		fmt.Println("  - Use --base-url to specify the endpoint manually")
		return nil
	}

	fmt.Printf("Found %d appliance(s):\n\n", len(appliances))
	for i, a := range appliances {
		fmt.Printf("%d. %s\n", i+1, a.Hostname)
		fmt.Printf("   Serial:  %s\n", a.Serial)
		fmt.Printf("   IP:      %s:%d\n", a.IP, a.Port)
		if len(a.Metadata) > 0 {
			fmt.Printf("   Metadata: %v\n", a.Metadata)
		}
		fmt.Println()
	}

	fmt.Println("Use 'gatecon show <section> --serial <serial>' to view a configuration")
	fmt.Println("Use 'gatecon console' for interactive configuration")
	return nil
}

// showCmd displays one section's current configuration
var showCmd = &cobra.Command{
	Use:   "show <section>",
	Short: "Show a section's configuration",
	Long: `Fetch and display one configuration section from the appliance.

Sections: wifi, ethernet, modem, radiod.

The raw response is run through the same normalization pipeline the console
uses, so the output shows the canonical field names regardless of which
payload shape the firmware answered with. Credential fields are masked.`,
	Example: `  # Show the wireless section
  gatecon show wifi

  # Show the wired section of a specific appliance
  gatecon show ethernet --serial 70141532

  # Copy the fields to the clipboard
  gatecon show modem --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&copyOutput, "copy", false, "Copy the fields to the system clipboard")
}

func runShow(cmd *cobra.Command, args []string) error {
	id := section.ID(args[0])
	if !id.Valid() {
		return fmt.Errorf("unknown section %q (use wifi, ethernet, modem or radiod)", args[0])
	}

	c, err := newAppClient()
	if err != nil {
		return err
	}

	fmt.Printf("Fetching %s configuration from %s...\n\n", id, c.BaseURL)

	body, err := c.SectionInfo(context.Background(), string(id))
	if err != nil {
		return fmt.Errorf("failed to get configuration: %w", err)
	}

	m := section.Parse(id, body)
	out := renderFieldLines(m)
	fmt.Print(out)

	if rc, ok := m.(section.RadiodConfig); ok {
		if lines := rc.DaemonLines(); len(lines) > 0 {
			fmt.Println("\nDaemon state (read-only):")
			for _, line := range lines {
				fmt.Println("  " + line)
			}
		}
	}

	if !m.HasData() {
		fmt.Println("(appliance returned no recognizable configuration)")
	}

	if copyOutput {
		if err := clipboard.WriteAll(out); err != nil {
			return fmt.Errorf("clipboard unavailable: %w", err)
		}
		fmt.Println("\nCopied to clipboard.")
	}
	return nil
}

// renderFieldLines formats a model's canonical fields, masking credentials.
func renderFieldLines(m section.Model) string {
	fields := m.FieldMap()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		v := fields[k]
		if v != "" && section.RedactedKey(k) {
			v = "••••••"
		}
		fmt.Fprintf(&b, "  %-18s %s\n", k, v)
	}
	return b.String()
}

// newSetCommand builds the direct set command for a section: one flag per
// canonical field, validated locally before the apply request goes out.
func newSetCommand(id section.ID, dest map[string]*string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-" + string(id),
		Short: fmt.Sprintf("Apply %s configuration directly", id.Title()),
		Long: fmt.Sprintf(`Apply the %s section without the interactive console.

Only the given flags are sent; the same validators the console runs are
applied locally first, so an invalid field set never reaches the appliance.`, id.Title()),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, id, dest)
		},
	}

	for _, fd := range sectionFlagSpecs(id) {
		var v string
		dest[fd.key] = &v
		cmd.Flags().StringVar(&v, fd.flag, "", fd.help)
	}
	return cmd
}

type flagSpec struct {
	key  string // canonical field name
	flag string
	help string
}

var addressingFlags = []flagSpec{
	{"ip_config", "ip-config", "Addressing mode (dhcp or static)"},
	{"ip", "ip", "IPv4 address (static mode)"},
	{"netmask", "netmask", "IPv4 netmask (static mode)"},
	{"gateway", "gateway", "Default gateway (static mode)"},
	{"dns1", "dns1", "Primary DNS server (static mode)"},
	{"dns2", "dns2", "Secondary DNS server (static mode)"},
}

func sectionFlagSpecs(id section.ID) []flagSpec {
	switch id {
	case section.Wifi:
		specs := []flagSpec{
			{"mode", "mode", "Wireless mode (client or ap)"},
			{"ssid", "ssid", "Network SSID"},
			{"password", "password", "Network password (prompted when omitted in client mode)"},
		}
		return append(specs, addressingFlags...)
	case section.Ethernet:
		return addressingFlags
	case section.Modem:
		return []flagSpec{
			{"mode", "mode", "Modem mode (FSK2 or FSK4)"},
			{"rate", "rate", "Symbol rate (500, 200, 100, 50, 20)"},
			{"ldpc", "ldpc", "LDPC code rate (768/256 or 512/256)"},
		}
	case section.Radiod:
		return []flagSpec{
			{"spi_chip", "spi-chip", "SPI chip (spiN)"},
			{"spi_pin", "spi-select", "SPI chip-select line number"},
			{"gpio_irq_chip", "irq-chip", "IRQ GPIO chip (gpiochipN)"},
			{"gpio_irq_pin", "irq-line", "IRQ GPIO line"},
			{"gpio_busy_chip", "busy-chip", "BUSY GPIO chip"},
			{"gpio_busy_pin", "busy-line", "BUSY GPIO line"},
			{"gpio_nrst_chip", "nrst-chip", "NRST GPIO chip"},
			{"gpio_nrst_pin", "nrst-line", "NRST GPIO line"},
			{"gpio_tx_en_chip", "tx-en-chip", "TX enable GPIO chip"},
			{"gpio_tx_en_pin", "tx-en-line", "TX enable GPIO line"},
			{"gpio_rx_en_chip", "rx-en-chip", "RX enable GPIO chip"},
			{"gpio_rx_en_pin", "rx-en-line", "RX enable GPIO line"},
		}
	}
	return nil
}

func runSet(cmd *cobra.Command, id section.ID, dest map[string]*string) error {
	fields := make(map[string]string, len(dest))
	for k, v := range dest {
		fields[k] = *v
	}

	// Wireless client mode needs a credential; prompt without echo when the
	// flag was omitted so it stays out of the shell history.
	if id == section.Wifi && fields["password"] == "" && fields["mode"] != "ap" {
		fmt.Print("Password: ")
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		fields["password"] = string(secret)
	}

	m := section.FromFields(id, fields)
	if err := m.Validate(); err != nil {
		return fmt.Errorf("invalid %s configuration: %w", id, err)
	}

	c, err := newAppClient()
	if err != nil {
		return err
	}

	fmt.Printf("Applying %s configuration to %s...\n", id, c.BaseURL)
	if err := c.Apply(context.Background(), string(id), m.FormValues()); err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}
	fmt.Println("✓ Configuration applied successfully")

	if id.Persistable() {
		store, reg := openProfiles()
		if store != nil {
			reg.Remember(string(id), m.FieldMap())
			if err := store.Save(reg); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: profile registry not saved: %v\n", err)
			}
		}
	}
	return nil
}

// watchCmd follows the appliance's event feed
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the appliance's configuration event feed",
	Long: `Connect to the appliance's WebSocket event feed and print applied
configuration changes as they happen. Useful while another operator (or the
simulator's test traffic) is editing the same appliance.`,
	Example: `  # Watch the default appliance
  gatecon watch

  # Watch the local simulator
  gatecon watch --base-url http://127.0.0.1:8424/cgi-bin`,
	RunE: runWatch,
}

// appliedEvent mirrors the event feed's wire format.
type appliedEvent struct {
	Section string            `json:"section"`
	Fields  map[string]string `json:"fields"`
	At      time.Time         `json:"at"`
}

func runWatch(cmd *cobra.Command, args []string) error {
	c, err := newAppClient()
	if err != nil {
		return err
	}

	feedURL, err := eventFeedURL(c.BaseURL)
	if err != nil {
		return err
	}

	fmt.Printf("Watching %s (ctrl+c to stop)...\n\n", feedURL)

	conn, _, err := websocket.DefaultDialer.Dial(feedURL, nil)
	if err != nil {
		return fmt.Errorf("connecting to event feed: %w", err)
	}
	defer conn.Close()

	for {
		var ev appliedEvent
		if err := conn.ReadJSON(&ev); err != nil {
			return fmt.Errorf("event feed closed: %w", err)
		}
		printEvent(ev)
	}
}

// eventFeedURL derives the WebSocket endpoint from the CGI base URL: the
// feed lives at /events on the same host.
func eventFeedURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = "/events"
	u.RawQuery = ""
	return u.String(), nil
}

func printEvent(ev appliedEvent) {
	for k, v := range ev.Fields {
		if v != "" && section.RedactedKey(k) {
			ev.Fields[k] = "••••••"
		}
	}
	line, err := json.Marshal(ev)
	if err != nil {
		fmt.Printf("%s  %s  (unprintable event)\n", ev.At.Format(time.RFC3339), ev.Section)
		return
	}
	fmt.Println(string(line))
}
