package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func newTestClient(ts *httptest.Server) *Client {
	c := New(ts.URL + "/cgi-bin")
	c.HTTPClient = ts.Client()
	c.HTTPClient.Timeout = 2 * time.Second
	c.Online = nil
	return c
}

func TestSectionInfo(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cgi-bin/wifi/info" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("method = %q", r.Method)
		}
		w.Write([]byte(`{"ssid": "lab"}`))
	}))
	defer ts.Close()

	body, err := newTestClient(ts).SectionInfo(context.Background(), "wifi")
	if err != nil {
		t.Fatalf("SectionInfo: %v", err)
	}
	if !strings.Contains(body, "lab") {
		t.Errorf("body = %q", body)
	}
}

func TestApplyFormEncoding(t *testing.T) {
	var gotCT, gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cgi-bin/modem/apply" || r.Method != http.MethodPost {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		gotCT = r.Header.Get("Content-Type")
		b := make([]byte, r.ContentLength)
		r.Body.Read(b)
		gotBody = string(b)
	}))
	defer ts.Close()

	form := url.Values{}
	form.Set("mode", "FSK2")
	form.Set("rate", "500")
	if err := newTestClient(ts).Apply(context.Background(), "modem", form); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if gotCT != "application/x-www-form-urlencoded" {
		t.Errorf("content type = %q", gotCT)
	}
	if !strings.Contains(gotBody, "mode=FSK2") || !strings.Contains(gotBody, "rate=500") {
		t.Errorf("form body = %q", gotBody)
	}
}

func TestHTTPErrorJSONMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "radio busy"}`))
	}))
	defer ts.Close()

	_, err := newTestClient(ts).SectionInfo(context.Background(), "wifi")
	if err == nil {
		t.Fatal("expected error")
	}
	if KindOf(err) != KindHTTP || StatusCode(err) != 500 {
		t.Errorf("kind/status = %v/%d", KindOf(err), StatusCode(err))
	}
	if !strings.Contains(err.Error(), "radio busy") {
		t.Errorf("error detail missing: %v", err)
	}
}

func TestHTTPErrorHTMLTitle(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html><head><title>Gateway Restarting</title></head><body>...</body></html>`))
	}))
	defer ts.Close()

	_, err := newTestClient(ts).SectionInfo(context.Background(), "wifi")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Gateway Restarting") {
		t.Errorf("title not mined from HTML body: %v", err)
	}
}

func TestOfflinePrecondition(t *testing.T) {
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer ts.Close()

	c := newTestClient(ts)
	c.Online = func() bool { return false }

	if _, err := c.SectionInfo(context.Background(), "wifi"); !IsOffline(err) {
		t.Errorf("want offline error, got %v", err)
	}
	if err := c.Apply(context.Background(), "wifi", url.Values{}); !IsOffline(err) {
		t.Errorf("want offline error, got %v", err)
	}
	if requests != 0 {
		t.Errorf("offline short-circuit still sent %d requests", requests)
	}
}

func TestTimeoutClassification(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.SectionInfo(ctx, "wifi")
	if !IsTimeout(err) {
		t.Errorf("want timeout classification, got %v (kind %v)", err, KindOf(err))
	}
}
