package pbx

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"centrex/internal/domain/extension"
	"centrex/internal/shared/logger"
)

// DefaultRequestTimeout bounds every control-plane round trip.
const DefaultRequestTimeout = 10 * time.Second

// tokenScope is the scope the control plane expects for its GraphQL API.
const tokenScope = "gql"

// CredentialCache holds the sync settings and the bearer token for the
// control plane, fetching both lazily. Token staleness is discovered
// reactively: there is no expiry timer, the token is used until a request
// comes back unauthorized or the cache is invalidated after a settings
// change. No retries happen here; callers decide whether to retry.
type CredentialCache struct {
	source     SettingsSource
	httpClient *http.Client
	timeout    time.Duration
	logger     logger.Interface

	mu       sync.Mutex
	settings *SyncSettings
	token    string
}

func NewCredentialCache(source SettingsSource, timeout time.Duration, log logger.Interface) *CredentialCache {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &CredentialCache{
		source:     source,
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
		logger:     log.With("component", "pbx.credentials"),
	}
}

// Config returns the cached sync settings, loading them from storage on
// first call.
func (c *CredentialCache) Config(ctx context.Context) (*SyncSettings, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.configLocked(ctx)
}

func (c *CredentialCache) configLocked(ctx context.Context) (*SyncSettings, error) {
	if c.settings != nil {
		return c.settings, nil
	}

	cfg, err := c.source.LoadSyncSettings(ctx)
	if err != nil {
		return nil, err
	}
	c.settings = cfg
	return cfg, nil
}

// Token returns the cached bearer token, performing a client-credentials
// grant against the configured token endpoint when none is cached.
func (c *CredentialCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		return c.token, nil
	}

	cfg, err := c.configLocked(ctx)
	if err != nil {
		return "", err
	}

	grant := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       []string{tokenScope},
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	tctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	tctx = context.WithValue(tctx, oauth2.HTTPClient, c.httpClient)

	tok, err := grant.Token(tctx)
	if err != nil {
		return "", classifyTokenError(err)
	}
	if tok.AccessToken == "" {
		return "", &extension.RemoteError{
			Kind: extension.RemoteErrorRejected,
			Step: StepToken,
			Err:  errors.New("token response missing access token"),
		}
	}

	c.logger.Debugw("obtained control-plane token")
	c.token = tok.AccessToken
	return c.token, nil
}

// Invalidate clears both cached settings and token. Called whenever the
// operator edits the sync settings so the next request re-reads
// configuration and re-authenticates.
func (c *CredentialCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = nil
	c.token = ""
	c.logger.Debugw("credential cache invalidated")
}

// InvalidateToken drops only the bearer token, keeping settings. Used
// when the control plane rejects a request as unauthorized.
func (c *CredentialCache) InvalidateToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

func classifyTokenError(err error) *extension.RemoteError {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		status := 0
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		return &extension.RemoteError{
			Kind:   extension.RemoteErrorRejected,
			Step:   StepToken,
			Status: status,
			Body:   string(retrieveErr.Body),
			Err:    err,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &extension.RemoteError{Kind: extension.RemoteErrorTimeout, Step: StepToken, Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &extension.RemoteError{Kind: extension.RemoteErrorTimeout, Step: StepToken, Err: err}
	}

	return &extension.RemoteError{Kind: extension.RemoteErrorTransport, Step: StepToken, Err: err}
}
