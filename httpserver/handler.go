package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ruteri/tee-intent-signer/api"
)

// handlePublicKey returns the process signing key.
//
// URL format: GET /get_public_key
//
// Response: JSON-encoded api.PublicKeyResponse
func (srv *Server) handlePublicKey(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, srv.log, api.PublicKeyResponse{
		Scheme:    srv.assembler.Scheme(),
		PublicKey: srv.assembler.PublicKey(),
	})
}

// handleHealthCheck reports the public key together with liveness so that
// operators can confirm which key a running enclave signs with.
//
// URL format: GET /health_check
func (srv *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if !srv.isReady.Load() {
		status = "draining"
	}
	writeJSON(w, srv.log, map[string]string{
		"status": status,
		"pk":     srv.assembler.PublicKey().String(),
	})
}

func (srv *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !srv.limiter.allow(clientKey(r), srv.now()) {
			srv.metrics.ObserveRejected("rate_limit")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
