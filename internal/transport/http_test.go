package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestHTTP_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"ping":true}` {
			t.Errorf("body = %s", body)
		}
		w.Write([]byte(`{"pong":true}`))
	}))
	defer srv.Close()

	tr := NewHTTP(srv.URL, 5*time.Second, zerolog.Nop())
	defer tr.Close()

	resp, err := tr.RoundTrip(context.Background(), []byte(`{"ping":true}`))
	if err != nil {
		t.Fatalf("RoundTrip: %v", err)
	}
	if string(resp) != `{"pong":true}` {
		t.Errorf("resp = %s", resp)
	}
}

func TestHTTP_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tr := NewHTTP(srv.URL, 5*time.Second, zerolog.Nop())
	defer tr.Close()

	_, err := tr.RoundTrip(context.Background(), []byte(`{}`))
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("err = %v, want HTTP 429 error", err)
	}
}

func TestHTTP_ContextCancelled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	tr := NewHTTP(srv.URL, time.Minute, zerolog.Nop())
	defer tr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := tr.RoundTrip(ctx, []byte(`{}`)); err == nil {
		t.Fatal("expected error after context deadline")
	}
}

func TestIsExclusive(t *testing.T) {
	plain := Func(func(ctx context.Context, req []byte) ([]byte, error) {
		return req, nil
	})
	if IsExclusive(plain) {
		t.Error("plain transport reported exclusive")
	}

	ws := NewWS("ws://localhost:0", time.Second, zerolog.Nop())
	if !IsExclusive(ws) {
		t.Error("WebSocket transport did not report exclusive")
	}
}
