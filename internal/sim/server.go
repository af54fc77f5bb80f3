package sim

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gatewave/gatecon/internal/section"
)

// Event is one applied change, as broadcast on the /events feed.
type Event struct {
	Section string            `json:"section"`
	Fields  map[string]string `json:"fields"`
	At      time.Time         `json:"at"`
}

// Server simulates one appliance. The zero value is not usable; construct
// with New.
type Server struct {
	mu    sync.Mutex
	state map[section.ID]map[string]string

	hub *hub
	log *zap.Logger

	upgrader websocket.Upgrader
}

// New creates a simulator seeded with a plausible factory configuration.
func New(log *zap.Logger) *Server {
	s := &Server{
		state: map[section.ID]map[string]string{
			section.Wifi: {
				"mode": "client", "ssid": "workshop", "ip_config": "dhcp",
			},
			section.Ethernet: {
				"ip_config": "static", "ip": "192.168.10.2",
				"netmask": "255.255.255.0", "gateway": "192.168.10.1",
				"dns1": "192.168.10.1",
			},
			section.Modem: {
				"mode": "FSK2", "rate": "500", "ldpc": "768/256",
			},
			section.Radiod: {
				"spi_chip": "spi0", "spi_pin": "0",
				"gpio_irq_chip": "gpiochip1", "gpio_irq_pin": "23",
				"gpio_busy_chip": "gpiochip1", "gpio_busy_pin": "24",
				"gpio_nrst_chip": "gpiochip1", "gpio_nrst_pin": "25",
				"gpio_tx_en_chip": "gpiochip0", "gpio_tx_en_pin": "4",
				"gpio_rx_en_chip": "gpiochip0", "gpio_rx_en_pin": "5",
			},
		},
		hub: newHub(log),
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	return s
}

// Handler returns the simulator's HTTP surface:
//
//	GET  /cgi-bin/<section>/info
//	POST /cgi-bin/<section>/apply
//	GET  /events (WebSocket)
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/cgi-bin/", s.handleCGI)
	mux.HandleFunc("/events", s.handleEvents)
	return mux
}

// Close drops all event subscribers.
func (s *Server) Close() {
	s.hub.closeAll()
}

func (s *Server) handleCGI(w http.ResponseWriter, r *http.Request) {
	s.log.Info("HTTP request received",
		zap.String("remote_addr", r.RemoteAddr),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))

	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/cgi-bin/"), "/"), "/")
	if len(parts) != 2 {
		writeError(w, http.StatusNotFound, "no such endpoint")
		return
	}
	id := section.ID(parts[0])
	if !id.Valid() {
		writeError(w, http.StatusNotFound, "unknown section "+parts[0])
		return
	}

	switch parts[1] {
	case "info":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "info is read-only")
			return
		}
		s.writeInfo(w, id)
	case "apply":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "apply requires POST")
			return
		}
		s.handleApply(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "no such endpoint")
	}
}

// writeInfo renders the section state in that section's wire shape. The
// variety is the point: each shape is one the firmware actually produces.
func (s *Server) writeInfo(w http.ResponseWriter, id section.ID) {
	s.mu.Lock()
	fields := make(map[string]string, len(s.state[id]))
	for k, v := range s.state[id] {
		fields[k] = v
	}
	s.mu.Unlock()

	// The appliance never echoes credentials.
	delete(fields, "password")

	switch id {
	case section.Wifi:
		// Plain JSON object.
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(fields)

	case section.Ethernet:
		// JSON object in a data envelope.
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"data": fields})

	case section.Modem:
		// key=value text in a data envelope.
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"data": keyValueText(fields)})

	case section.Radiod:
		// Daemon state and bus wiring as enveloped key=value text.
		text := "# radiod runtime config\n" +
			"log_level=info\n" +
			"announce_interval=30\n" +
			keyValueText(fields)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"config": text})
	}
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request, id section.ID) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form body")
		return
	}

	fields := make(map[string]string, len(r.PostForm))
	for k := range r.PostForm {
		fields[k] = r.PostForm.Get(k)
	}

	s.mu.Lock()
	s.state[id] = fields
	s.mu.Unlock()

	s.log.Info("section applied",
		zap.String("section", string(id)),
		zap.Int("fields", len(fields)))

	s.hub.broadcast(Event{Section: string(id), Fields: fields, At: time.Now()})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	s.hub.add(conn)

	// Reader loop only to detect disconnect; the feed is one-way.
	go func() {
		defer s.hub.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

// keyValueText renders fields as sorted key=value lines.
func keyValueText(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, fields[k])
	}
	return b.String()
}
