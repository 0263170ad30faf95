package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ruteri/tee-intent-signer/intent"
	"github.com/ruteri/tee-intent-signer/interfaces"
	"github.com/ruteri/tee-intent-signer/metrics"
)

// maxBodySize is the maximum allowed request body size (1MB).
const maxBodySize = 1024 * 1024

// ValidateFunc checks an inbound request against domain rules and returns the
// payload to sign. It must be pure: no I/O and no dependence on time.
type ValidateFunc[Req, Resp any] func(Req) (Resp, error)

// Pipeline validates inbound requests and signs the accepted payloads under
// a fixed scope. It is safe for concurrent use.
type Pipeline[Req, Resp any] struct {
	scope     interfaces.IntentScope
	validate  ValidateFunc[Req, Resp]
	assembler *intent.Assembler
	metrics   *metrics.Metrics
	log       *slog.Logger
}

// NewPipeline creates a pipeline signing validate's output under scope.
// m may be nil.
func NewPipeline[Req, Resp any](scope interfaces.IntentScope, validate ValidateFunc[Req, Resp], assembler *intent.Assembler, m *metrics.Metrics, log *slog.Logger) *Pipeline[Req, Resp] {
	return &Pipeline[Req, Resp]{
		scope:     scope,
		validate:  validate,
		assembler: assembler,
		metrics:   m,
		log:       log,
	}
}

// Scope returns the purpose tag responses are signed under.
func (p *Pipeline[Req, Resp]) Scope() interfaces.IntentScope {
	return p.scope
}

// Process validates req and, if accepted, returns the signed response.
// Downstream errors from the assembler are returned unchanged.
func (p *Pipeline[Req, Resp]) Process(req Req) (*interfaces.SignedResponse[Resp], error) {
	payload, err := p.validate(req)
	if err != nil {
		p.metrics.ObserveRejected("validation")
		var validationErr *intent.ValidationError
		if errors.As(err, &validationErr) {
			return nil, err
		}
		return nil, &RequestError{StatusCode: http.StatusBadRequest, Err: err}
	}

	start := time.Now()
	resp, err := intent.Sign(p.assembler, payload, p.scope)
	if err != nil {
		p.metrics.ObserveFailed(FailureKind(err))
		return nil, err
	}
	p.metrics.ObserveSigned(p.scope.String(), time.Since(start))

	return resp, nil
}

// ServeHTTP decodes a ProcessDataRequest body, runs Process and writes the
// signed response as JSON.
func (p *Pipeline[Req, Resp]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req ProcessDataRequest[Req]
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		p.metrics.ObserveRejected("malformed")
		WriteError(w, p.log, &RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Errorf("invalid request body: %w", err),
		})
		return
	}

	resp, err := p.Process(req.Payload)
	if err != nil {
		WriteError(w, p.log, err)
		return
	}

	p.log.Debug("Signed intent response",
		"scope", p.scope.String(),
		"timestampMs", resp.Response.TimestampMs)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		p.log.Error("Failed to encode response", "err", err)
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}
}
