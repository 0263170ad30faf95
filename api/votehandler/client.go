package votehandler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ruteri/tee-intent-signer/api"
	"github.com/ruteri/tee-intent-signer/interfaces"
)

// Client submits votes to an enclave server.
type Client struct {
	// URL is the base URL of the enclave server, e.g. http://127.0.0.1:3000.
	URL string

	Client *http.Client
}

// NewClient creates a client using http.DefaultClient.
func NewClient(url string) *Client {
	return &Client{
		URL:    strings.TrimSuffix(url, "/"),
		Client: http.DefaultClient,
	}
}

// SubmitVote requests a signed vote. The response is not verified; use
// intent.Verify with the enclave public key.
func (c *Client) SubmitVote(ctx context.Context, vote string) (*interfaces.SignedResponse[VoteResponse], error) {
	body, err := json.Marshal(api.ProcessDataRequest[VoteRequest]{Payload: VoteRequest{Vote: vote}})
	if err != nil {
		return nil, fmt.Errorf("could not encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL+"/process_data", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not initialize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var signed interfaces.SignedResponse[VoteResponse]
	if err := c.do(req, &signed); err != nil {
		return nil, err
	}
	return &signed, nil
}

// PublicKey fetches the enclave signing key description.
func (c *Client) PublicKey(ctx context.Context) (*api.PublicKeyResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL+"/get_public_key", nil)
	if err != nil {
		return nil, fmt.Errorf("could not initialize request: %w", err)
	}

	var pk api.PublicKeyResponse
	if err := c.do(req, &pk); err != nil {
		return nil, err
	}
	return &pk, nil
}

func (c *Client) do(req *http.Request, out any) error {
	if c.Client == nil {
		c.Client = http.DefaultClient
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("could not request enclave: %w", err)
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read enclave response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("enclave returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("could not parse enclave response: %w", err)
	}
	return nil
}
