// Package passage proxies Bible passage lookups to the upstream text API,
// keeping the API credential on the server.
package passage

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/lectern/internal/errors"
)

// Request is the client-facing lookup payload.
type Request struct {
	Passage             string `json:"passage"`
	IncludeVerseNumbers bool   `json:"includeVerseNumbers,omitempty"`
	IncludeHeadings     bool   `json:"includeHeadings,omitempty"`
}

// Result is the upstream response passed through on success.
type Result struct {
	Query       string            `json:"query"`
	Canonical   string            `json:"canonical"`
	Passages    []string          `json:"passages"`
	PassageMeta []json.RawMessage `json:"passage_meta"`
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Client fetches passages from the upstream API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a passage client. baseURL is the upstream endpoint and
// apiKey the server-held credential sent with every request.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// upstreamError carries a non-2xx upstream response so the handler can
// mirror its status and body to the client.
type upstreamError struct {
	status int
	body   errorBody
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.status, e.body.Error)
}

// Fetch looks up a passage upstream. A non-2xx upstream response is
// returned as an *upstreamError so callers can mirror it.
func (c *Client) Fetch(ctx context.Context, req Request) (*Result, error) {
	if c == nil || c.baseURL == "" {
		return nil, errors.New(errors.CodePassageUnavailable, "passage lookup is not configured")
	}
	if strings.TrimSpace(req.Passage) == "" {
		return nil, errors.New(errors.CodePassageEmptyQuery, "passage query is required")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode passage request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build passage request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(errors.CodePassageUpstream, "passage lookup failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.Wrap(errors.CodePassageUpstream, "read passage response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var upstream errorBody
		if err := json.Unmarshal(body, &upstream); err != nil || upstream.Error == "" {
			upstream = errorBody{Error: "passage lookup failed", Details: strings.TrimSpace(string(body))}
		}
		return nil, &upstreamError{status: resp.StatusCode, body: upstream}
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, errors.Wrap(errors.CodePassageUpstream, "decode passage response", err)
	}
	return &result, nil
}

// Handler serves the passage proxy endpoint, including CORS preflight.
type Handler struct {
	client *Client
}

// NewHandler creates a passage proxy handler over the client.
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	switch r.Method {
	case http.MethodOptions:
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		writeError(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errorBody{Error: "invalid request body", Details: err.Error()})
		return
	}

	result, err := h.client.Fetch(r.Context(), req)
	if err != nil {
		var upstream *upstreamError
		if stderrors.As(err, &upstream) {
			writeError(w, upstream.status, upstream.body)
			return
		}
		log.Printf("passage: lookup %q failed: %v", req.Passage, err)
		writeError(w, errors.HTTPStatus(err), errorBody{Error: err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("passage: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, body errorBody) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("passage: encode error response: %v", err)
	}
}
