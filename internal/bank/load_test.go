package bank

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestLoad_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/problems.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(stepsDoc))
		case "/broken.json":
			_, _ = w.Write([]byte(`{"steps": "nope"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	t.Run("ok", func(t *testing.T) {
		src := server.URL + "/problems.json"
		b, err := Load(context.Background(), Config{Source: src})
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if b.Source != src {
			t.Errorf("source = %q, want %q", b.Source, src)
		}
		if b.Shape != ShapeSteps || b.Len() != 2 || b.TotalItems() != 3 {
			t.Errorf("got shape=%s steps=%d items=%d", b.Shape, b.Len(), b.TotalItems())
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := Load(context.Background(), Config{Source: server.URL + "/missing.json"})
		if err == nil {
			t.Fatal("expected error for 404")
		}
		if !strings.Contains(err.Error(), "HTTP 404") {
			t.Errorf("error = %q, want HTTP 404", err)
		}
	})

	t.Run("invalid document", func(t *testing.T) {
		_, err := Load(context.Background(), Config{Source: server.URL + "/broken.json"})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected *ValidationError, got %v", err)
		}
	})
}

func TestLoad_URLTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	start := time.Now()
	_, err := Load(context.Background(), Config{Source: server.URL + "/slow.json", Timeout: 50 * time.Millisecond})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("load took %s, timeout not applied", elapsed)
	}
}

func TestLoad_URLHonorsCallerContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(stepsDoc))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, Config{Source: server.URL + "/problems.json"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context canceled", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SHIWAKE_BANK", "https://example.com/problems.json")
	t.Setenv("SHIWAKE_BANK_TIMEOUT", "3s")
	cfg := ConfigFromEnv()
	if cfg.Source != "https://example.com/problems.json" {
		t.Errorf("source = %q", cfg.Source)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("timeout = %s, want 3s", cfg.Timeout)
	}

	t.Setenv("SHIWAKE_BANK", "")
	t.Setenv("SHIWAKE_BANK_TIMEOUT", "soon")
	cfg = ConfigFromEnv()
	if cfg.Source != BuiltinPrefix+"steps" || cfg.Timeout != 0 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}
