package workshop

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Result holds the outcome of an agenda generation call. Raw is the
// verbatim response body and is set whenever a response was received,
// even if it failed to parse, so it can be persisted for audit.
type Result struct {
	Agenda    *Agenda
	Raw       string
	Model     string
	LatencyMs int64
}

// Generator produces workshop agendas from sprint context.
type Generator interface {
	// Generate calls the collaborator and returns the parsed agenda.
	// On failure the returned Result carries the raw response body
	// whenever one was received (invalid output, non-2xx status); it is
	// nil only when no body ever arrived.
	Generate(ctx context.Context, sprintCtx SprintContext) (*Result, error)

	// Available checks whether the collaborator endpoint is reachable.
	Available(ctx context.Context) bool
}

// httpGenerator implements Generator against the collaborator's HTTP API.
type httpGenerator struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewHTTPGenerator creates a Generator that talks to the configured
// collaborator endpoint.
func NewHTTPGenerator(cfg Config, observer Observer) Generator {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpGenerator{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// generateRequest is the JSON body sent to POST /v1/agendas.
type generateRequest struct {
	Model   string        `json:"model"`
	Context SprintContext `json:"context"`
}

// generateResponse is the JSON envelope returned by POST /v1/agendas.
type generateResponse struct {
	Model  string          `json:"model"`
	Agenda json.RawMessage `json:"agenda"`
}

func (g *httpGenerator) Generate(ctx context.Context, sprintCtx SprintContext) (*Result, error) {
	if !g.cfg.Configured() {
		return nil, ErrDisabled
	}

	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	body := generateRequest{
		Model:   g.cfg.Model,
		Context: sprintCtx,
	}

	var lastErr error
	var lastRaw string
	attempts := 1 + g.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		raw, model, err := g.doRequest(ctx, body)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			agenda, parseErr := ParseAgenda(raw)
			if parseErr != nil {
				g.observer.OnCallComplete(CallEvent{
					SprintID:  sprintCtx.SprintID,
					Model:     model,
					LatencyMs: latency,
					Success:   false,
					ErrorCode: "INVALID_OUTPUT",
				})
				return &Result{Raw: raw, Model: model, LatencyMs: latency}, parseErr
			}
			g.observer.OnCallComplete(CallEvent{
				SprintID:  sprintCtx.SprintID,
				Model:     model,
				LatencyMs: latency,
				Success:   true,
			})
			return &Result{
				Agenda:    agenda,
				Raw:       raw,
				Model:     model,
				LatencyMs: latency,
			}, nil
		}
		lastErr = err
		if raw != "" {
			lastRaw = raw
		}

		// Don't retry on context cancellation/timeout
		if ctx.Err() != nil {
			break
		}
	}

	latency := time.Since(start).Milliseconds()
	g.observer.OnCallComplete(CallEvent{
		SprintID:  sprintCtx.SprintID,
		Model:     g.cfg.Model,
		LatencyMs: latency,
		Success:   false,
		ErrorCode: errorCode(ctx, lastErr),
	})

	// Whatever body the collaborator last sent goes back to the caller so
	// the failed call is still auditable.
	var res *Result
	if lastRaw != "" {
		res = &Result{Raw: lastRaw, Model: g.cfg.Model, LatencyMs: latency}
	}

	if ctx.Err() != nil {
		return res, ErrTimeout
	}
	if isConnectionError(lastErr) {
		return res, ErrUnavailable
	}
	return res, fmt.Errorf("%w after %d attempts: %v", ErrUnavailable, attempts, lastErr)
}

func (g *httpGenerator) doRequest(ctx context.Context, body generateRequest) (raw string, model string, err error) {
	data, err := json.Marshal(body)
	if err != nil {
		return "", "", fmt.Errorf("marshaling request: %w", err)
	}

	url := g.cfg.Endpoint + "/v1/agendas"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	httpResp, err := g.http.Do(httpReq)
	if err != nil {
		return "", "", err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", "", fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		// Return the body so the failed response can still be audited.
		return string(respBody), "", fmt.Errorf("collaborator returned status %d", httpResp.StatusCode)
	}

	var resp generateResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return string(respBody), "", fmt.Errorf("decoding envelope: %w", err)
	}

	return string(resp.Agenda), resp.Model, nil
}

func (g *httpGenerator) Available(ctx context.Context) bool {
	if !g.cfg.Configured() {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	url := g.cfg.Endpoint + "/v1/healthz"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(ctx context.Context, err error) string {
	switch {
	case ctx.Err() != nil:
		return "TIMEOUT"
	case isConnectionError(err):
		return "UNAVAILABLE"
	case err != nil:
		return "RETRY_EXHAUSTED"
	default:
		return ""
	}
}
