package votehandler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ruteri/tee-intent-signer/api"
	"github.com/ruteri/tee-intent-signer/cryptoutils"
	"github.com/ruteri/tee-intent-signer/intent"
	"github.com/ruteri/tee-intent-signer/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestEnvironment creates common test components
func setupTestEnvironment(t *testing.T) (*Handler, interfaces.Signer, interfaces.Verifier) {
	t.Helper()

	// Create logger with no output for tests
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	signer, err := cryptoutils.NewSigner(interfaces.KeySchemeEd25519, nil)
	require.NoError(t, err)
	verifier, err := cryptoutils.NewVerifier(interfaces.KeySchemeEd25519, signer.PublicKey())
	require.NoError(t, err)

	return NewHandler(intent.NewAssembler(signer), nil, logger), signer, verifier
}

func submit(t *testing.T, handler *Handler, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/process_data", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	mux := chi.NewRouter()
	handler.RegisterRoutes(mux)
	mux.ServeHTTP(w, req)
	return w.Result()
}

func TestValidateVote(t *testing.T) {
	for _, vote := range AllowedVotes {
		resp, err := ValidateVote(VoteRequest{Vote: vote})
		require.NoError(t, err)
		assert.Equal(t, vote, resp.Vote)
	}

	for _, vote := range []string{"C", "", "a", "AB", " A"} {
		_, err := ValidateVote(VoteRequest{Vote: vote})
		var validationErr *intent.ValidationError
		require.ErrorAs(t, err, &validationErr, vote)
		assert.Equal(t, vote, validationErr.Value)
		assert.Equal(t, []string{"A", "B"}, validationErr.Allowed)
	}
}

// Test HandleProcessData - Success Path
func TestHandleProcessData_Success(t *testing.T) {
	handler, _, verifier := setupTestEnvironment(t)

	resp := submit(t, handler, `{"payload":{"vote":"A"}}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var signed interfaces.SignedResponse[VoteResponse]
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(respBody, &signed), string(respBody))

	assert.Equal(t, "A", signed.Response.Data.Vote)
	assert.Equal(t, interfaces.IntentScopeVote, signed.Response.Intent)
	assert.NotZero(t, signed.Response.TimestampMs)
	require.NoError(t, intent.Verify(verifier, &signed))
}

// Test HandleProcessData - every allowed vote is echoed exactly
func TestHandleProcessData_AllAllowedVotes(t *testing.T) {
	handler, _, verifier := setupTestEnvironment(t)

	for _, vote := range AllowedVotes {
		t.Run(vote, func(t *testing.T) {
			resp := submit(t, handler, fmt.Sprintf(`{"payload":{"vote":%q}}`, vote))
			defer resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var signed interfaces.SignedResponse[VoteResponse]
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&signed))
			assert.Equal(t, vote, signed.Response.Data.Vote)
			require.NoError(t, intent.Verify(verifier, &signed))
		})
	}
}

// Test HandleProcessData - Invalid Vote
func TestHandleProcessData_InvalidVote(t *testing.T) {
	handler, _, _ := setupTestEnvironment(t)

	resp := submit(t, handler, `{"payload":{"vote":"C"}}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"C"`)
	assert.Contains(t, string(body), `["A", "B"]`)
}

// Test HandleProcessData - Malformed Body
func TestHandleProcessData_MalformedBody(t *testing.T) {
	handler, _, _ := setupTestEnvironment(t)

	resp := submit(t, handler, `not json`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProcessVote_GoldenSigningPayload(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	signer, err := cryptoutils.NewSigner(interfaces.KeySchemeEd25519, nil)
	require.NoError(t, err)
	verifier, err := cryptoutils.NewVerifier(interfaces.KeySchemeEd25519, signer.PublicKey())
	require.NoError(t, err)

	assembler := intent.NewAssembler(signer).WithClock(func() time.Time { return time.UnixMilli(1744038900000) })
	handler := NewHandler(assembler, nil, logger)

	signed, err := handler.ProcessVote(VoteRequest{Vote: "A"})
	require.NoError(t, err)

	golden := []byte{0x01, 0x20, 0xb1, 0xd1, 0x10, 0x96, 0x01, 0x00, 0x00, 0x01, 0x41}
	require.NoError(t, verifier.Verify(golden, signed.Signature))
}

func TestProcessVote_ClockErrorSurfaced(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	signer, err := cryptoutils.NewSigner(interfaces.KeySchemeEd25519, nil)
	require.NoError(t, err)

	assembler := intent.NewAssembler(signer).WithClock(func() time.Time { return time.Unix(-10, 0) })
	handler := NewHandler(assembler, nil, logger)

	_, err = handler.ProcessVote(VoteRequest{Vote: "B"})
	var clockErr *intent.ClockError
	require.ErrorAs(t, err, &clockErr)
}

func TestClient_SubmitVote(t *testing.T) {
	handler, signer, _ := setupTestEnvironment(t)

	mux := chi.NewRouter()
	handler.RegisterRoutes(mux)
	mux.Get("/get_public_key", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.PublicKeyResponse{Scheme: signer.Scheme(), PublicKey: signer.PublicKey()})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL + "/")
	ctx := context.Background()

	pk, err := client.PublicKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, interfaces.KeySchemeEd25519, pk.Scheme)
	assert.Equal(t, signer.PublicKey(), pk.PublicKey)

	verifier, err := cryptoutils.NewVerifier(pk.Scheme, pk.PublicKey)
	require.NoError(t, err)

	signed, err := client.SubmitVote(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, "B", signed.Response.Data.Vote)
	require.NoError(t, intent.Verify(verifier, signed))

	_, err = client.SubmitVote(ctx, "C")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), `invalid vote: "C"`)
}
