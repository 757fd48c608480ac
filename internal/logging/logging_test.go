package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewDevModeShowsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true, "")

	logger.Debug("test debug")
	logger.Info("test info")

	if !bytes.Contains(buf.Bytes(), []byte("test debug")) {
		t.Error("expected debug message visible in dev mode")
	}
	if !bytes.Contains(buf.Bytes(), []byte("test info")) {
		t.Error("expected info message visible in dev mode")
	}
}

func TestNewProdModeIsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false, "info")

	logger.Debug("hidden")
	logger.Info("shown")

	if bytes.Contains(buf.Bytes(), []byte("hidden")) {
		t.Error("debug message should be filtered at info level")
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("{")) {
		t.Errorf("expected JSON output, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" error ", slog.LevelError},
		{"", slog.LevelWarn},
		{"verbose", slog.LevelWarn},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupDoesNotPanic(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	Setup(false, "warn")
	slog.Warn("prod test")
}

func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestTransportLogsAndTagsRequest(t *testing.T) {
	buf := captureDefault(t)

	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get(RequestIDHeader)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewTransport(nil)}
	resp, err := client.Get(srv.URL + "/api/visitas/7")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := resp.Body.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if gotID == "" {
		t.Error("expected request id header")
	}
	out := buf.String()
	for _, want := range []string{"GET", "/api/visitas/7", "404", gotID} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("log missing %q: %s", want, out)
		}
	}
}

func TestTransportKeepsCallerRequestID(t *testing.T) {
	captureDefault(t)

	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get(RequestIDHeader)
	}))
	defer srv.Close()

	req, err := http.NewRequest("GET", srv.URL, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set(RequestIDHeader, "fixed-id")

	resp, err := (&http.Client{Transport: NewTransport(nil)}).Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if err := resp.Body.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if gotID != "fixed-id" {
		t.Errorf("request id = %q, want fixed-id", gotID)
	}
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestTransportLogsFailure(t *testing.T) {
	buf := captureDefault(t)

	req := httptest.NewRequest("POST", "http://backend/api/visitas", nil)
	if _, err := NewTransport(failingTransport{}).RoundTrip(req); err == nil {
		t.Fatal("expected error")
	}
	if !bytes.Contains(buf.Bytes(), []byte("connection refused")) {
		t.Errorf("expected failure in log: %s", buf.String())
	}
}
