package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DebugOptions selects what the debug server exposes. Nil fields disable
// the matching endpoint.
type DebugOptions struct {
	// Gatherer backs /metrics.
	Gatherer prometheus.Gatherer
	// Trace backs /slices.
	Trace *SliceTraceBuffer
	// Tree backs /tree. It is called on the HTTP goroutine and must
	// synchronize with the loop itself, for example through Loop.Call.
	Tree func(ctx context.Context) (string, error)
}

// DebugServer serves metrics and loop diagnostics over HTTP.
type DebugServer struct {
	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// NewDebugMux returns the handler of a DebugServer.
func NewDebugMux(opts DebugOptions) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", handleHealth)
	if opts.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	mux.HandleFunc("/slices", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if opts.Trace == nil {
			http.Error(w, "slice tracing disabled", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, opts.Trace.Snapshot())
	})
	mux.HandleFunc("/tree", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if opts.Tree == nil {
			http.Error(w, "no tree", http.StatusServiceUnavailable)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		tree, err := opts.Tree(ctx)
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(tree))
	})
	return mux
}

// handleHealth returns a simple health check response.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, v any) {
	// Encode to buffer first so we can catch errors
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// StartDebugServer listens on addr and serves handler in the background.
// Binding happens before it returns, so port conflicts fail fast.
func StartDebugServer(addr string, handler http.Handler) (*DebugServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("debug server listen: %w", err)
	}
	s := &DebugServer{
		server:   &http.Server{Handler: handler, ReadHeaderTimeout: 5 * time.Second},
		listener: listener,
	}
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.mu.Lock()
			s.server = nil
			s.mu.Unlock()
		}
	}()
	return s, nil
}

// Addr returns the address the server listens on.
func (s *DebugServer) Addr() string {
	return s.listener.Addr().String()
}

// Close gracefully shuts the server down.
func (s *DebugServer) Close(ctx context.Context) error {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.mu.Unlock()
	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}
