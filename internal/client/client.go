// Package client implements the appliance's CGI control plane:
// GET <base>/<section>/info to read a section, POST <base>/<section>/apply
// with a form-encoded field set to change it.
package client

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gatewave/gatecon/internal/logging"
)

const (
	// DefaultBaseURL is where the appliance serves its CGI surface.
	DefaultBaseURL = "http://gate.local/cgi-bin"

	// DefaultTimeout bounds each request. The appliance's CGI handlers can
	// take several seconds while a radio interface reconfigures.
	DefaultTimeout = 8 * time.Second
)

// Client talks to one appliance.
type Client struct {
	// BaseURL is the CGI root, without a trailing slash.
	BaseURL string

	// HTTPClient performs the requests. Its Timeout applies per request.
	HTTPClient *http.Client

	// Online is the offline precondition probe. When it returns false no
	// request is attempted and operations fail with an offline error.
	// Nil means always online.
	Online func() bool

	log *zap.Logger
}

// New creates a client for the given CGI base URL with the default timeout
// and the interface-based offline probe.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		Online:     DefaultOnlineProbe,
		log:        logging.GetLogger(),
	}
}

// Offline reports whether the offline precondition currently holds.
func (c *Client) Offline() bool {
	return c.Online != nil && !c.Online()
}

func (c *Client) offlineError() *Error {
	return &Error{Kind: KindOffline, Message: "offline: no network connectivity"}
}

// SectionInfo fetches the raw body of a section's info endpoint. The body is
// returned undecoded; the payload pipeline owns interpretation.
func (c *Client) SectionInfo(ctx context.Context, sec string) (string, error) {
	if c.Offline() {
		return "", c.offlineError()
	}

	endpoint := c.BaseURL + "/" + sec + "/info"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", &Error{Kind: KindParse, Message: "building request", Err: err}
	}
	req.Header.Set("Accept", "application/json, text/plain")
	req.Header.Set("Cache-Control", "no-cache")

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.log.Debug("info request failed", zap.String("section", sec), zap.Error(err))
		return "", classifyNetworkError("fetching "+sec+" config", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyNetworkError("reading "+sec+" config", err)
	}

	c.log.Debug("info response",
		zap.String("section", sec),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", httpError(resp.Status, resp.StatusCode, body)
	}
	return string(body), nil
}

// Apply posts a form-encoded field set to a section's apply endpoint.
func (c *Client) Apply(ctx context.Context, sec string, form url.Values) error {
	if c.Offline() {
		return c.offlineError()
	}

	endpoint := c.BaseURL + "/" + sec + "/apply"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return &Error{Kind: KindParse, Message: "building request", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.log.Debug("apply request failed", zap.String("section", sec), zap.Error(err))
		return classifyNetworkError("applying "+sec+" config", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	c.log.Debug("apply response",
		zap.String("section", sec),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return httpError(resp.Status, resp.StatusCode, body)
	}
	return nil
}

// Ping probes the appliance with a cheap GET against the CGI root.
// Any HTTP answer counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c.Offline() {
		return c.offlineError()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/", nil)
	if err != nil {
		return &Error{Kind: KindParse, Message: "building request", Err: err}
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return classifyNetworkError("pinging appliance", err)
	}
	resp.Body.Close()
	return nil
}

// DefaultOnlineProbe reports whether any non-loopback interface is up with
// an address assigned. It is a local precondition, not a reachability check.
func DefaultOnlineProbe() bool {
	ifaces, err := net.Interfaces()
	if err != nil {
		// Can't tell; assume online and let the request decide.
		return true
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err == nil && len(addrs) > 0 {
			return true
		}
	}
	return false
}
