package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"
)

// Kind classifies a control-plane failure.
type Kind int

const (
	// KindNetwork covers connection-level failures (refused, reset, DNS).
	KindNetwork Kind = iota
	// KindTimeout covers deadline and context-timeout failures.
	KindTimeout
	// KindOffline means the offline precondition fired; no request was sent.
	KindOffline
	// KindHTTP means the appliance answered with a non-2xx status.
	KindHTTP
	// KindParse means the response body could not be interpreted.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindOffline:
		return "offline"
	case KindHTTP:
		return "http"
	case KindParse:
		return "parse"
	}
	return "unknown"
}

// Error is a classified control-plane error.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int // set for KindHTTP
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the classification of err, or KindNetwork for errors that
// did not come from this package.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindNetwork
}

// IsOffline reports whether err is the offline precondition.
func IsOffline(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == KindOffline
}

// IsTimeout reports whether err is a timeout.
func IsTimeout(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == KindTimeout
}

// StatusCode returns the HTTP status of err, or 0 when err carries none.
func StatusCode(err error) int {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.StatusCode
	}
	return 0
}

// classifyNetworkError wraps a transport error with the right kind.
func classifyNetworkError(msg string, err error) *Error {
	kind := KindNetwork
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
	}
	return &Error{Kind: kind, Message: msg, Err: err}
}

var htmlTitleRe = regexp.MustCompile(`(?is)<title[^>]*>\s*(.*?)\s*</title>`)

// errorDetail mines a non-2xx response body for something worth showing:
// a JSON "message" field, or the <title> of an HTML error page.
func errorDetail(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "{") {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
			return payload.Message
		}
		return ""
	}
	if m := htmlTitleRe.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}
	return ""
}

// httpError builds the error for a non-2xx response.
func httpError(status string, statusCode int, body []byte) *Error {
	msg := "HTTP " + status
	if detail := errorDetail(body); detail != "" {
		msg += ": " + detail
	}
	return &Error{Kind: KindHTTP, Message: msg, StatusCode: statusCode}
}
