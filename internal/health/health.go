// Package health serves a liveness endpoint backed by a canary round trip
// through the numeral encoder and decoder.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/jusunglee/hangulnum/internal/numeral"
)

// canary spans every large unit and drops a leading 일 before 천 and 십.
var canary, _ = new(big.Int).SetString("-10203040506070809011", 10)

// Check encodes and decodes the canary value and reports any mismatch.
func Check() error {
	text, err := numeral.EncodeInt(canary, numeral.DefaultEncodeOptions())
	if err != nil {
		return fmt.Errorf("encoding canary: %w", err)
	}
	got, err := numeral.Parse(text, numeral.DefaultDecodeOptions())
	if err != nil {
		return fmt.Errorf("decoding canary %q: %w", text, err)
	}
	if got.Cmp(canary) != 0 {
		return fmt.Errorf("canary round trip mismatch: %s -> %q -> %s", canary, text, got)
	}
	return nil
}

// Handler responds 200 {"status":"ok"} when Check passes and 503 otherwise.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := Check(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Server is a standalone health server for processes without an HTTP API.
type Server struct {
	httpServer *http.Server
}

func New(port int) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", Handler)
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("health server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
