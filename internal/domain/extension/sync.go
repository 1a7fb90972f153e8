package extension

import (
	"context"
	"errors"
	"fmt"
)

// RemoteErrorKind classifies control-plane failures.
type RemoteErrorKind string

const (
	// RemoteErrorTimeout: the HTTP round trip exceeded its deadline.
	RemoteErrorTimeout RemoteErrorKind = "timeout"
	// RemoteErrorTransport: DNS or connection level failure.
	RemoteErrorTransport RemoteErrorKind = "transport"
	// RemoteErrorRejected: the control plane answered and refused. Covers
	// a non-2xx status, a missing token, and an errors array in the
	// mutation response body.
	RemoteErrorRejected RemoteErrorKind = "rejected"
)

// RemoteError is the failure of one step of a control-plane mutation
// sequence. Step names the mutation that failed ("add", "update",
// "delete", "apply", "token", "config") for operator diagnosis.
type RemoteError struct {
	Kind   RemoteErrorKind
	Step   string
	Status int
	Body   string
	Err    error
}

func (e *RemoteError) Error() string {
	msg := fmt.Sprintf("remote %s failed (%s)", e.Step, e.Kind)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.Status)
	}
	if e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// ErrSyncDisabled is returned by sync clients when the operator has
// turned remote synchronization off. Callers skip the remote attempt and
// report a degraded (local-only) outcome.
var ErrSyncDisabled = errors.New("remote sync is disabled")

// AsRemoteError extracts a RemoteError from an error chain.
func AsRemoteError(err error) (*RemoteError, bool) {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr, true
	}
	return nil, false
}

// SyncClient mirrors extension state into the telephony control plane.
// Every mutation sequence finishes with an apply step so the control plane
// activates the staged changes; implementations must not issue apply when
// an earlier step failed, and must not retry internally; retry policy
// belongs to the caller.
type SyncClient interface {
	CreateExtension(ctx context.Context, code, name string, technology Technology, secret string) error
	UpdateExtension(ctx context.Context, code, name string, technology Technology, secret string) error
	DeleteExtension(ctx context.Context, code string) error
	// TestConnection forces a configuration load and a token fetch without
	// issuing any mutation. Operator-triggered health check.
	TestConnection(ctx context.Context) error
}
