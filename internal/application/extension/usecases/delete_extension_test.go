package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centrex/internal/domain/extension"
	apperrors "centrex/internal/shared/errors"
)

func TestDeleteExtensionUseCase_Execute_Success(t *testing.T) {
	stored := reconstructExtension(t, "500", "101")
	deleted := false
	repo := &mockExtensionRepository{
		FindBySIDFunc: func(ctx context.Context, sid string) (*extension.Extension, error) {
			return stored, nil
		},
		DeleteFunc: func(ctx context.Context, extensionID uint) error {
			deleted = true
			assert.Equal(t, stored.ID(), extensionID)
			return nil
		},
	}
	uc := NewDeleteExtensionUseCase(repo, &mockSyncClient{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), DeleteExtensionCommand{
		SID:            "ext_abc123",
		MerchantNumber: "500",
	})

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.True(t, result.LocalSuccess)
	assert.True(t, result.RemoteSuccess)
}

func TestDeleteExtensionUseCase_Execute_RemoteRejectedStillDeletesLocal(t *testing.T) {
	stored := reconstructExtension(t, "500", "101")
	deleted := false
	repo := &mockExtensionRepository{
		FindBySIDFunc: func(ctx context.Context, sid string) (*extension.Extension, error) {
			return stored, nil
		},
		DeleteFunc: func(ctx context.Context, extensionID uint) error {
			deleted = true
			return nil
		},
	}
	sync := &mockSyncClient{
		DeleteExtensionFunc: func(ctx context.Context, code string) error {
			return &extension.RemoteError{Kind: extension.RemoteErrorRejected, Step: "delete", Status: 200}
		},
	}
	uc := NewDeleteExtensionUseCase(repo, sync, &mockLogger{})

	result, err := uc.Execute(context.Background(), DeleteExtensionCommand{
		SID:            "ext_abc123",
		MerchantNumber: "500",
	})

	require.NoError(t, err)
	assert.True(t, deleted, "a missing remote counterpart must not block local removal")
	assert.True(t, result.LocalSuccess)
	assert.False(t, result.RemoteSuccess)
}

func TestDeleteExtensionUseCase_Execute_CrossTenantIsNotFound(t *testing.T) {
	stored := reconstructExtension(t, "600", "101")
	remoteCalled := false
	repo := &mockExtensionRepository{
		FindBySIDFunc: func(ctx context.Context, sid string) (*extension.Extension, error) {
			return stored, nil
		},
	}
	sync := &mockSyncClient{
		DeleteExtensionFunc: func(ctx context.Context, code string) error {
			remoteCalled = true
			return nil
		},
	}
	uc := NewDeleteExtensionUseCase(repo, sync, &mockLogger{})

	_, err := uc.Execute(context.Background(), DeleteExtensionCommand{
		SID:            "ext_abc123",
		MerchantNumber: "500",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
	assert.False(t, remoteCalled)
}

func TestDeleteExtensionUseCase_Execute_LocalDeleteFailureIsFatal(t *testing.T) {
	stored := reconstructExtension(t, "500", "101")
	repo := &mockExtensionRepository{
		FindBySIDFunc: func(ctx context.Context, sid string) (*extension.Extension, error) {
			return stored, nil
		},
		DeleteFunc: func(ctx context.Context, extensionID uint) error {
			return apperrors.NewInternalError("connection lost")
		},
	}
	uc := NewDeleteExtensionUseCase(repo, &mockSyncClient{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), DeleteExtensionCommand{
		SID:            "ext_abc123",
		MerchantNumber: "500",
	})

	require.Error(t, err)
}
