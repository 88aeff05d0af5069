package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/marketplace/internal/config"
	"github.com/polkiloo/marketplace/internal/notify"
	testhelpers "github.com/polkiloo/marketplace/internal/test"
)

type closingConn struct {
	testhelpers.ConnStub
	closed chan struct{}
}

func (c *closingConn) Close() { close(c.closed) }

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logs := &lockedBuffer{}
	logger := slog.New(slog.NewJSONHandler(logs, nil))
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	registry := notify.NewRegistry()
	conn := &closingConn{closed: make(chan struct{})}
	registry.Register("s1", conn)

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Registry:   registry,
		Config:     &config.Config{ShutdownTimeout: 100 * time.Millisecond},
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = recorder.Stop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}

	select {
	case <-conn.closed:
	case <-time.After(time.Second):
		t.Fatal("expected live connections to be closed on shutdown")
	}
	if registry.Len() != 0 {
		t.Fatalf("expected registry to be empty, got %d", registry.Len())
	}
	if out := logs.String(); !strings.Contains(out, `"msg":"closing live streams"`) || !strings.Contains(out, `"count":1`) {
		t.Fatalf("expected stream close to be logged with count, got %s", out)
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     &http.Server{Addr: "bad addr"},
		Registry:   notify.NewRegistry(),
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}

func TestLifecycleRecorderOrder(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	var calls []string
	recorder.Append(fx.Hook{
		OnStart: func(context.Context) error { calls = append(calls, "start-1"); return nil },
		OnStop:  func(context.Context) error { calls = append(calls, "stop-1"); return nil },
	})
	recorder.Append(fx.Hook{
		OnStart: func(context.Context) error { calls = append(calls, "start-2"); return nil },
		OnStop:  func(context.Context) error { calls = append(calls, "stop-2"); return nil },
	})

	_ = recorder.Start(context.Background())
	_ = recorder.Stop(context.Background())

	want := []string{"start-1", "start-2", "stop-2", "stop-1"}
	if len(calls) != len(want) {
		t.Fatalf("unexpected calls %v", calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("unexpected calls %v", calls)
		}
	}
}

func TestShutdownerStub(t *testing.T) {
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	if err := shutdowner.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-shutdowner.Called:
	default:
		t.Fatal("expected shutdown notification")
	}
	if shutdowner.Calls() != 1 {
		t.Fatalf("expected one shutdown call, got %d", shutdowner.Calls())
	}
}
