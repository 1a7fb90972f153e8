package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centrex/internal/domain/extension"
	apperrors "centrex/internal/shared/errors"
)

func reconstructExtension(t *testing.T, merchantNumber, number string) *extension.Extension {
	t.Helper()
	ext, err := extension.ReconstructExtension(
		1,
		"ext_abc123",
		merchantNumber,
		number,
		extension.DialCode(merchantNumber, number),
		"Ops Line",
		extension.TechnologyPJSIP,
		"existingsecret",
		nil,
		extension.StatusActive,
		1,
		testTime(),
		testTime(),
	)
	require.NoError(t, err)
	return ext
}

func TestUpdateExtensionUseCase_Execute_Success(t *testing.T) {
	stored := reconstructExtension(t, "500", "101")
	var updated *extension.Extension
	var remoteCode string
	repo := &mockExtensionRepository{
		FindBySIDFunc: func(ctx context.Context, sid string) (*extension.Extension, error) {
			return stored, nil
		},
		UpdateFunc: func(ctx context.Context, ext *extension.Extension) error {
			updated = ext
			return nil
		},
	}
	sync := &mockSyncClient{
		UpdateExtensionFunc: func(ctx context.Context, code, name string, technology extension.Technology, secret string) error {
			remoteCode = code
			return nil
		},
	}
	uc := NewUpdateExtensionUseCase(repo, &mockCallerIDRepository{}, sync, &mockNotifier{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), UpdateExtensionCommand{
		SID:            "ext_abc123",
		MerchantNumber: "500",
		DisplayName:    "Support Line",
		Technology:     "SIP",
	})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, result.LocalSuccess)
	assert.True(t, result.RemoteSuccess)
	assert.Equal(t, "Support Line", updated.DisplayName())
	assert.Equal(t, extension.TechnologySIP, updated.Technology())
	// the code is read from the stored record, never recomputed
	assert.Equal(t, "500101", remoteCode)
	assert.Equal(t, "500101", result.Extension.ExtensionCode)
}

func TestUpdateExtensionUseCase_Execute_BlankSecretKeepsExisting(t *testing.T) {
	stored := reconstructExtension(t, "500", "101")
	var remoteSecret string
	repo := &mockExtensionRepository{
		FindBySIDFunc: func(ctx context.Context, sid string) (*extension.Extension, error) {
			return stored, nil
		},
	}
	sync := &mockSyncClient{
		UpdateExtensionFunc: func(ctx context.Context, code, name string, technology extension.Technology, secret string) error {
			remoteSecret = secret
			return nil
		},
	}
	uc := NewUpdateExtensionUseCase(repo, &mockCallerIDRepository{}, sync, &mockNotifier{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), UpdateExtensionCommand{
		SID:            "ext_abc123",
		MerchantNumber: "500",
		DisplayName:    "Ops Line",
	})

	require.NoError(t, err)
	assert.Equal(t, "existingsecret", remoteSecret)
	assert.Equal(t, "existingsecret", stored.Secret())
}

func TestUpdateExtensionUseCase_Execute_RemoteFailureStillPersists(t *testing.T) {
	stored := reconstructExtension(t, "500", "101")
	persisted := false
	notified := false
	repo := &mockExtensionRepository{
		FindBySIDFunc: func(ctx context.Context, sid string) (*extension.Extension, error) {
			return stored, nil
		},
		UpdateFunc: func(ctx context.Context, ext *extension.Extension) error {
			persisted = true
			return nil
		},
	}
	sync := &mockSyncClient{
		UpdateExtensionFunc: func(ctx context.Context, code, name string, technology extension.Technology, secret string) error {
			return &extension.RemoteError{Kind: extension.RemoteErrorTransport, Step: "update"}
		},
	}
	notifier := &mockNotifier{
		NotifySyncFailureFunc: func(merchantNumber, extensionCode, operation, reason string) {
			notified = true
			assert.Equal(t, "update", operation)
		},
	}
	uc := NewUpdateExtensionUseCase(repo, &mockCallerIDRepository{}, sync, notifier, &mockLogger{})

	result, err := uc.Execute(context.Background(), UpdateExtensionCommand{
		SID:            "ext_abc123",
		MerchantNumber: "500",
		DisplayName:    "Ops Line",
	})

	require.NoError(t, err)
	assert.True(t, persisted)
	assert.True(t, result.LocalSuccess)
	assert.False(t, result.RemoteSuccess)
	assert.True(t, notified)
}

func TestUpdateExtensionUseCase_Execute_CrossTenantIsNotFound(t *testing.T) {
	stored := reconstructExtension(t, "600", "101")
	repo := &mockExtensionRepository{
		FindBySIDFunc: func(ctx context.Context, sid string) (*extension.Extension, error) {
			return stored, nil
		},
	}
	uc := NewUpdateExtensionUseCase(repo, &mockCallerIDRepository{}, &mockSyncClient{}, &mockNotifier{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), UpdateExtensionCommand{
		SID:            "ext_abc123",
		MerchantNumber: "500",
		DisplayName:    "Ops Line",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestUpdateExtensionUseCase_Execute_PersistenceFailureIsFatal(t *testing.T) {
	stored := reconstructExtension(t, "500", "101")
	repo := &mockExtensionRepository{
		FindBySIDFunc: func(ctx context.Context, sid string) (*extension.Extension, error) {
			return stored, nil
		},
		UpdateFunc: func(ctx context.Context, ext *extension.Extension) error {
			return apperrors.NewInternalError("connection lost")
		},
	}
	uc := NewUpdateExtensionUseCase(repo, &mockCallerIDRepository{}, &mockSyncClient{}, &mockNotifier{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), UpdateExtensionCommand{
		SID:            "ext_abc123",
		MerchantNumber: "500",
		DisplayName:    "Ops Line",
	})

	require.Error(t, err)
}
