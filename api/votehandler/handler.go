package votehandler

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/ruteri/tee-intent-signer/api"
	"github.com/ruteri/tee-intent-signer/intent"
	"github.com/ruteri/tee-intent-signer/interfaces"
	"github.com/ruteri/tee-intent-signer/metrics"
)

// AllowedVotes is the set of accepted vote options.
var AllowedVotes = []string{"A", "B"}

// VoteRequest is the inbound payload.
type VoteRequest struct {
	Vote string `json:"vote"`
}

// VoteResponse is the signed payload.
type VoteResponse struct {
	Vote string `json:"vote"`
}

// ValidateVote accepts votes from AllowedVotes and rejects everything else
// with an *intent.ValidationError naming the value and the allowed set.
func ValidateVote(req VoteRequest) (VoteResponse, error) {
	if !slices.Contains(AllowedVotes, req.Vote) {
		return VoteResponse{}, &intent.ValidationError{
			Field:   "vote",
			Value:   req.Vote,
			Allowed: slices.Clone(AllowedVotes),
		}
	}
	return VoteResponse{Vote: req.Vote}, nil
}

// Handler processes vote submissions.
type Handler struct {
	pipeline *api.Pipeline[VoteRequest, VoteResponse]
}

// NewHandler creates a vote handler signing with assembler. m may be nil.
func NewHandler(assembler *intent.Assembler, m *metrics.Metrics, log *slog.Logger) *Handler {
	return &Handler{
		pipeline: api.NewPipeline(interfaces.IntentScopeVote, ValidateVote, assembler, m, log),
	}
}

// RegisterRoutes configures the router with the vote endpoint:
//   - POST /process_data - validate and sign a vote
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/process_data", h.HandleProcessData)
}

// ProcessVote validates and signs a vote without going through HTTP.
func (h *Handler) ProcessVote(req VoteRequest) (*interfaces.SignedResponse[VoteResponse], error) {
	return h.pipeline.Process(req)
}

// HandleProcessData signs a vote.
//
// URL format: POST /process_data
//
// Request body: {"payload": {"vote": "A"}}
//
// Response: {"response": {"intent": 1, "timestamp_ms": ..., "data": {"vote": "A"}}, "signature": "<hex>"}
//
// Status codes:
//   - 200 OK: vote accepted and signed
//   - 400 Bad Request: malformed body or vote not in AllowedVotes
//   - 500 Internal Server Error: timestamp, encoding or signing failure
func (h *Handler) HandleProcessData(w http.ResponseWriter, r *http.Request) {
	h.pipeline.ServeHTTP(w, r)
}
