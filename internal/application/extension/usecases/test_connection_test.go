package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centrex/internal/domain/extension"
)

func TestTestConnectionUseCase_Execute(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantOK      bool
		wantMessage string
	}{
		{
			name:   "reachable control plane",
			err:    nil,
			wantOK: true,
		},
		{
			name:        "sync disabled",
			err:         extension.ErrSyncDisabled,
			wantOK:      false,
			wantMessage: "remote sync is disabled",
		},
		{
			name:   "token rejected",
			err:    &extension.RemoteError{Kind: extension.RemoteErrorRejected, Step: "token", Status: 401},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sync := &mockSyncClient{
				TestConnectionFunc: func(ctx context.Context) error {
					return tt.err
				},
			}
			uc := NewTestConnectionUseCase(sync, &mockLogger{})

			result, err := uc.Execute(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, result.OK)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, result.Message)
			}
			if !tt.wantOK {
				assert.NotEmpty(t, result.Message)
			}
		})
	}
}
