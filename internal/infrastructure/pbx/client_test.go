package pbx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centrex/internal/domain/extension"
	"centrex/internal/shared/logger"
)

type stubSettingsSource struct {
	settings *SyncSettings
	err      error
}

func (s *stubSettingsSource) LoadSyncSettings(ctx context.Context) (*SyncSettings, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.settings, nil
}

// fakeControlPlane records mutation queries and serves a token endpoint.
type fakeControlPlane struct {
	mu          sync.Mutex
	mutations   []string
	tokenCalls  int
	mutateHook  func(query string, w http.ResponseWriter) bool
	tokenServer *httptest.Server
	gqlServer   *httptest.Server
}

func newFakeControlPlane(t *testing.T) *fakeControlPlane {
	t.Helper()
	cp := &fakeControlPlane{}

	cp.tokenServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cp.mu.Lock()
		cp.tokenCalls++
		cp.mu.Unlock()
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
		assert.Equal(t, "gql", r.Form.Get("scope"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"tok-%d","token_type":"Bearer"}`, cp.tokenCalls)
	}))
	t.Cleanup(cp.tokenServer.Close)

	cp.gqlServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query string `json:"query"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "Bearer "))

		cp.mu.Lock()
		cp.mutations = append(cp.mutations, req.Query)
		hook := cp.mutateHook
		cp.mu.Unlock()

		if hook != nil && hook(req.Query, w) {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"status":true}}`)
	}))
	t.Cleanup(cp.gqlServer.Close)

	return cp
}

func (cp *fakeControlPlane) settings() *SyncSettings {
	return &SyncSettings{
		TokenURL:     cp.tokenServer.URL,
		MutationURL:  cp.gqlServer.URL,
		ClientID:     "console",
		ClientSecret: "s3cret",
		Enabled:      true,
	}
}

func (cp *fakeControlPlane) recorded() []string {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return append([]string(nil), cp.mutations...)
}

func newTestClient(cp *fakeControlPlane, timeout time.Duration) *Client {
	log := logger.NewLogger()
	creds := NewCredentialCache(&stubSettingsSource{settings: cp.settings()}, timeout, log)
	return NewClient(creds, timeout, log)
}

func TestClient_CreateExtension_OrderedSequence(t *testing.T) {
	cp := newFakeControlPlane(t)
	client := newTestClient(cp, 5*time.Second)

	err := client.CreateExtension(context.Background(), "500101", "Ops Line", extension.TechnologyPJSIP, "topsecret")
	require.NoError(t, err)

	mutations := cp.recorded()
	require.Len(t, mutations, 3)
	assert.Contains(t, mutations[0], "addExtension")
	assert.Contains(t, mutations[0], `extensionId: "500101"`)
	assert.Contains(t, mutations[0], `tech: "pjsip"`)
	assert.Contains(t, mutations[1], "updateExtension")
	assert.Contains(t, mutations[1], `extPassword: "topsecret"`)
	assert.Contains(t, mutations[2], "doreload")
}

func TestClient_CreateExtension_AddFailureAbortsBeforeApply(t *testing.T) {
	cp := newFakeControlPlane(t)
	cp.mutateHook = func(query string, w http.ResponseWriter) bool {
		if strings.Contains(query, "addExtension") {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"errors":[{"message":"extension exists"}]}`)
			return true
		}
		return false
	}
	client := newTestClient(cp, 5*time.Second)

	err := client.CreateExtension(context.Background(), "500101", "Ops Line", extension.TechnologyPJSIP, "topsecret")
	require.Error(t, err)

	remoteErr, ok := extension.AsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, extension.RemoteErrorRejected, remoteErr.Kind)
	assert.Equal(t, StepAdd, remoteErr.Step)

	// neither the secret-bearing update nor apply may run after a failed add
	mutations := cp.recorded()
	require.Len(t, mutations, 1)
	assert.Contains(t, mutations[0], "addExtension")
}

func TestClient_UpdateExtension_NonOKStatusIsRejected(t *testing.T) {
	cp := newFakeControlPlane(t)
	cp.mutateHook = func(query string, w http.ResponseWriter) bool {
		http.Error(w, "boom", http.StatusInternalServerError)
		return true
	}
	client := newTestClient(cp, 5*time.Second)

	err := client.UpdateExtension(context.Background(), "500101", "Ops Line", extension.TechnologySIP, "topsecret")
	require.Error(t, err)

	remoteErr, ok := extension.AsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, extension.RemoteErrorRejected, remoteErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, remoteErr.Status)
}

func TestClient_DeleteExtension_Sequence(t *testing.T) {
	cp := newFakeControlPlane(t)
	client := newTestClient(cp, 5*time.Second)

	err := client.DeleteExtension(context.Background(), "500101")
	require.NoError(t, err)

	mutations := cp.recorded()
	require.Len(t, mutations, 2)
	assert.Contains(t, mutations[0], "deleteExtension")
	assert.Contains(t, mutations[1], "doreload")
}

func TestClient_UnauthorizedDropsToken(t *testing.T) {
	cp := newFakeControlPlane(t)
	first := true
	cp.mutateHook = func(query string, w http.ResponseWriter) bool {
		if first {
			first = false
			http.Error(w, "expired", http.StatusUnauthorized)
			return true
		}
		return false
	}
	client := newTestClient(cp, 5*time.Second)

	err := client.DeleteExtension(context.Background(), "500101")
	require.Error(t, err)

	// the stale token was dropped, so the next call re-authenticates
	err = client.DeleteExtension(context.Background(), "500101")
	require.NoError(t, err)
	assert.Equal(t, 2, cp.tokenCalls)
}

func TestClient_SyncDisabled(t *testing.T) {
	cp := newFakeControlPlane(t)
	settings := cp.settings()
	settings.Enabled = false

	log := logger.NewLogger()
	creds := NewCredentialCache(&stubSettingsSource{settings: settings}, time.Second, log)
	client := NewClient(creds, time.Second, log)

	err := client.CreateExtension(context.Background(), "500101", "Ops Line", extension.TechnologyPJSIP, "s")
	assert.ErrorIs(t, err, extension.ErrSyncDisabled)
	assert.Empty(t, cp.recorded())
}

func TestClient_TestConnection(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		cp := newFakeControlPlane(t)
		client := newTestClient(cp, time.Second)

		require.NoError(t, client.TestConnection(context.Background()))
		assert.Empty(t, cp.recorded(), "health check must not issue mutations")
		assert.Equal(t, 1, cp.tokenCalls)
	})

	t.Run("token rejected", func(t *testing.T) {
		tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
		}))
		defer tokenServer.Close()

		log := logger.NewLogger()
		creds := NewCredentialCache(&stubSettingsSource{settings: &SyncSettings{
			TokenURL:     tokenServer.URL,
			MutationURL:  "http://127.0.0.1:0",
			ClientID:     "console",
			ClientSecret: "wrong",
			Enabled:      true,
		}}, time.Second, log)
		client := NewClient(creds, time.Second, log)

		err := client.TestConnection(context.Background())
		require.Error(t, err)

		remoteErr, ok := extension.AsRemoteError(err)
		require.True(t, ok)
		assert.Equal(t, extension.RemoteErrorRejected, remoteErr.Kind)
		assert.Equal(t, StepToken, remoteErr.Step)
		assert.Equal(t, http.StatusUnauthorized, remoteErr.Status)
	})
}

func TestCredentialCache_TokenTimeout(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer tokenServer.Close()

	log := logger.NewLogger()
	creds := NewCredentialCache(&stubSettingsSource{settings: &SyncSettings{
		TokenURL:     tokenServer.URL,
		MutationURL:  "http://127.0.0.1:0",
		ClientID:     "console",
		ClientSecret: "s3cret",
		Enabled:      true,
	}}, 50*time.Millisecond, log)

	_, err := creds.Token(context.Background())
	require.Error(t, err)

	remoteErr, ok := extension.AsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, extension.RemoteErrorTimeout, remoteErr.Kind)
	assert.Equal(t, StepToken, remoteErr.Step)
}

func TestCredentialCache_Invalidate(t *testing.T) {
	cp := newFakeControlPlane(t)
	log := logger.NewLogger()
	creds := NewCredentialCache(&stubSettingsSource{settings: cp.settings()}, time.Second, log)

	tok1, err := creds.Token(context.Background())
	require.NoError(t, err)

	// cached: no extra grant
	tok2, err := creds.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tok1, tok2)
	assert.Equal(t, 1, cp.tokenCalls)

	creds.Invalidate()

	tok3, err := creds.Token(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, tok1, tok3)
	assert.Equal(t, 2, cp.tokenCalls)
}
