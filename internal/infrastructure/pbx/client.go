package pbx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"centrex/internal/domain/extension"
	"centrex/internal/shared/logger"
)

// Mutation step names, surfaced in RemoteError for diagnosis.
const (
	StepConfig = "config"
	StepToken  = "token"
	StepAdd    = "add"
	StepUpdate = "update"
	StepDelete = "delete"
	StepApply  = "apply"
)

// Client issues ordered mutations against the telephony control plane.
// Every successful mutation sequence ends with an apply step that
// activates the staged changes; when any step fails the sequence aborts
// immediately and apply is never issued, so no partial state is
// activated. The client never retries; retry policy belongs to the
// provisioning use cases.
type Client struct {
	creds      *CredentialCache
	httpClient *http.Client
	timeout    time.Duration
	logger     logger.Interface
}

var _ extension.SyncClient = (*Client)(nil)

func NewClient(creds *CredentialCache, timeout time.Duration, log logger.Interface) *Client {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Client{
		creds:      creds,
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
		logger:     log.With("component", "pbx.client"),
	}
}

// CreateExtension stages the extension, sets its registration secret in a
// second mutation (the control plane's add mutation does not accept one),
// then applies. Aborts before apply on any failure.
func (c *Client) CreateExtension(ctx context.Context, code, name string, technology extension.Technology, secret string) error {
	cfg, err := c.ready(ctx)
	if err != nil {
		return err
	}

	add := fmt.Sprintf(
		`mutation { addExtension(input: { extensionId: %q, name: %q, tech: %q }) { status message } }`,
		code, name, techName(technology),
	)
	if err := c.mutate(ctx, cfg, StepAdd, add); err != nil {
		return err
	}

	if err := c.mutate(ctx, cfg, StepUpdate, updateMutation(code, name, technology, secret)); err != nil {
		return err
	}

	return c.apply(ctx, cfg)
}

// UpdateExtension pushes the current name, technology and secret, then
// applies.
func (c *Client) UpdateExtension(ctx context.Context, code, name string, technology extension.Technology, secret string) error {
	cfg, err := c.ready(ctx)
	if err != nil {
		return err
	}

	if err := c.mutate(ctx, cfg, StepUpdate, updateMutation(code, name, technology, secret)); err != nil {
		return err
	}

	return c.apply(ctx, cfg)
}

// DeleteExtension removes the extension, then applies.
func (c *Client) DeleteExtension(ctx context.Context, code string) error {
	cfg, err := c.ready(ctx)
	if err != nil {
		return err
	}

	del := fmt.Sprintf(`mutation { deleteExtension(input: { extensionId: %q }) { status message } }`, code)
	if err := c.mutate(ctx, cfg, StepDelete, del); err != nil {
		return err
	}

	return c.apply(ctx, cfg)
}

// TestConnection forces a configuration load and a token fetch. It never
// issues a mutation.
func (c *Client) TestConnection(ctx context.Context) error {
	if _, err := c.ready(ctx); err != nil {
		return err
	}
	_, err := c.creds.Token(ctx)
	return err
}

func (c *Client) ready(ctx context.Context) (*SyncSettings, error) {
	cfg, err := c.creds.Config(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, extension.ErrSyncDisabled
	}
	return cfg, nil
}

func (c *Client) apply(ctx context.Context, cfg *SyncSettings) error {
	return c.mutate(ctx, cfg, StepApply, `mutation { doreload(input: {}) { status message } }`)
}

func updateMutation(code, name string, technology extension.Technology, secret string) string {
	return fmt.Sprintf(
		`mutation { updateExtension(input: { extensionId: %q, name: %q, tech: %q, extPassword: %q }) { status message } }`,
		code, name, techName(technology), secret,
	)
}

func techName(t extension.Technology) string {
	return strings.ToLower(t.String())
}

type mutationRequest struct {
	Query string `json:"query"`
}

type mutationResponse struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// mutate performs one HTTP round trip carrying a single mutation.
func (c *Client) mutate(ctx context.Context, cfg *SyncSettings, step, query string) error {
	token, err := c.creds.Token(ctx)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(mutationRequest{Query: query})
	if err != nil {
		return &extension.RemoteError{Kind: extension.RemoteErrorRejected, Step: step, Err: err}
	}

	rctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(rctx, http.MethodPost, cfg.MutationURL, bytes.NewReader(payload))
	if err != nil {
		return &extension.RemoteError{Kind: extension.RemoteErrorRejected, Step: step, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(step, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode == http.StatusUnauthorized {
		// Stale token: drop it so the next operator action
		// re-authenticates. This request still fails.
		c.creds.InvalidateToken()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warnw("control plane rejected mutation",
			"step", step, "status", resp.StatusCode, "body", string(body))
		return &extension.RemoteError{
			Kind:   extension.RemoteErrorRejected,
			Step:   step,
			Status: resp.StatusCode,
			Body:   string(body),
		}
	}

	// The control plane signals application-level rejection with a
	// top-level errors array even on HTTP 200.
	var parsed mutationResponse
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		c.logger.Warnw("control plane returned errors",
			"step", step, "message", parsed.Errors[0].Message)
		return &extension.RemoteError{
			Kind:   extension.RemoteErrorRejected,
			Step:   step,
			Status: resp.StatusCode,
			Body:   string(body),
		}
	}

	c.logger.Debugw("control plane mutation accepted", "step", step)
	return nil
}

func classifyTransportError(step string, err error) *extension.RemoteError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &extension.RemoteError{Kind: extension.RemoteErrorTimeout, Step: step, Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &extension.RemoteError{Kind: extension.RemoteErrorTimeout, Step: step, Err: err}
	}

	return &extension.RemoteError{Kind: extension.RemoteErrorTransport, Step: step, Err: err}
}
