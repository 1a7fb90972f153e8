package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centrex/internal/domain/callerid"
	"centrex/internal/domain/extension"
	apperrors "centrex/internal/shared/errors"
)

func testTime() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newCreateUseCase(
	repo *mockExtensionRepository,
	cidRepo *mockCallerIDRepository,
	sync *mockSyncClient,
	notifier *mockNotifier,
) *CreateExtensionUseCase {
	return NewCreateExtensionUseCase(
		repo,
		cidRepo,
		sync,
		NewNumberAllocator(repo, extension.DefaultNumberFloor),
		notifier,
		&mockLogger{},
	)
}

func TestCreateExtensionUseCase_Execute_Success(t *testing.T) {
	var savedExt *extension.Extension
	repo := &mockExtensionRepository{
		ListNumbersByMerchantFunc: func(ctx context.Context, merchantNumber string) ([]string, error) {
			return nil, nil
		},
		SaveFunc: func(ctx context.Context, ext *extension.Extension) error {
			if err := ext.SetID(1); err != nil {
				return err
			}
			savedExt = ext
			return nil
		},
	}
	sync := &mockSyncClient{}
	uc := newCreateUseCase(repo, &mockCallerIDRepository{}, sync, &mockNotifier{})

	result, err := uc.Execute(context.Background(), CreateExtensionCommand{
		MerchantNumber: "500",
		DisplayName:    "Ops Line",
		Technology:     "PJSIP",
		OwnerID:        1,
	})

	require.NoError(t, err)
	require.NotNil(t, savedExt)
	assert.True(t, result.LocalSuccess)
	assert.True(t, result.RemoteSuccess)
	assert.Equal(t, "101", result.Extension.ExtensionNumber)
	assert.Equal(t, "500101", result.Extension.ExtensionCode)
	assert.NotEmpty(t, result.Extension.Secret, "blank secret must be filled by the generator")
}

func TestCreateExtensionUseCase_Execute_SerialCreatesAreSequential(t *testing.T) {
	var numbers []string
	repo := &mockExtensionRepository{
		ListNumbersByMerchantFunc: func(ctx context.Context, merchantNumber string) ([]string, error) {
			return numbers, nil
		},
		SaveFunc: func(ctx context.Context, ext *extension.Extension) error {
			if err := ext.SetID(uint(len(numbers) + 1)); err != nil {
				return err
			}
			numbers = append(numbers, ext.ExtensionNumber())
			return nil
		},
	}
	uc := newCreateUseCase(repo, &mockCallerIDRepository{}, &mockSyncClient{}, &mockNotifier{})

	for i := 0; i < 5; i++ {
		_, err := uc.Execute(context.Background(), CreateExtensionCommand{
			MerchantNumber: "500",
			DisplayName:    fmt.Sprintf("Line %d", i+1),
			Technology:     "PJSIP",
			OwnerID:        1,
		})
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"101", "102", "103", "104", "105"}, numbers)
}

func TestCreateExtensionUseCase_Execute_RemoteFailureStillPersists(t *testing.T) {
	saved := false
	notified := false
	repo := &mockExtensionRepository{
		SaveFunc: func(ctx context.Context, ext *extension.Extension) error {
			saved = true
			return ext.SetID(1)
		},
	}
	sync := &mockSyncClient{
		CreateExtensionFunc: func(ctx context.Context, code, name string, technology extension.Technology, secret string) error {
			return &extension.RemoteError{Kind: extension.RemoteErrorTimeout, Step: "token"}
		},
	}
	notifier := &mockNotifier{
		NotifySyncFailureFunc: func(merchantNumber, extensionCode, operation, reason string) {
			notified = true
			assert.Equal(t, "500", merchantNumber)
			assert.Equal(t, "create", operation)
		},
	}
	uc := newCreateUseCase(repo, &mockCallerIDRepository{}, sync, notifier)

	result, err := uc.Execute(context.Background(), CreateExtensionCommand{
		MerchantNumber: "500",
		DisplayName:    "Ops Line",
		Technology:     "PJSIP",
		OwnerID:        1,
	})

	require.NoError(t, err)
	assert.True(t, saved, "local persistence must not depend on remote outcome")
	assert.True(t, result.LocalSuccess)
	assert.False(t, result.RemoteSuccess)
	assert.NotEmpty(t, result.RemoteMessage)
	assert.True(t, notified)
}

func TestCreateExtensionUseCase_Execute_SyncDisabled(t *testing.T) {
	notified := false
	repo := &mockExtensionRepository{
		SaveFunc: func(ctx context.Context, ext *extension.Extension) error {
			return ext.SetID(1)
		},
	}
	sync := &mockSyncClient{
		CreateExtensionFunc: func(ctx context.Context, code, name string, technology extension.Technology, secret string) error {
			return extension.ErrSyncDisabled
		},
	}
	notifier := &mockNotifier{
		NotifySyncFailureFunc: func(merchantNumber, extensionCode, operation, reason string) {
			notified = true
		},
	}
	uc := newCreateUseCase(repo, &mockCallerIDRepository{}, sync, notifier)

	result, err := uc.Execute(context.Background(), CreateExtensionCommand{
		MerchantNumber: "500",
		DisplayName:    "Ops Line",
		Technology:     "SIP",
		OwnerID:        1,
	})

	require.NoError(t, err)
	assert.True(t, result.LocalSuccess)
	assert.False(t, result.RemoteSuccess)
	assert.False(t, notified, "intentionally disabled sync is not an operational failure")
}

func TestCreateExtensionUseCase_Execute_PersistenceFailureIsFatal(t *testing.T) {
	repo := &mockExtensionRepository{
		SaveFunc: func(ctx context.Context, ext *extension.Extension) error {
			return apperrors.NewInternalError("connection lost")
		},
	}
	uc := newCreateUseCase(repo, &mockCallerIDRepository{}, &mockSyncClient{}, &mockNotifier{})

	_, err := uc.Execute(context.Background(), CreateExtensionCommand{
		MerchantNumber: "500",
		DisplayName:    "Ops Line",
		Technology:     "PJSIP",
		OwnerID:        1,
	})

	require.Error(t, err)
	assert.False(t, apperrors.IsValidationError(err))
}

func TestCreateExtensionUseCase_Execute_RetriesOnNumberConflict(t *testing.T) {
	attempts := 0
	repo := &mockExtensionRepository{
		SaveFunc: func(ctx context.Context, ext *extension.Extension) error {
			attempts++
			if attempts < 3 {
				return apperrors.NewConflictError("extension number already taken")
			}
			return ext.SetID(1)
		},
	}
	uc := newCreateUseCase(repo, &mockCallerIDRepository{}, &mockSyncClient{}, &mockNotifier{})

	result, err := uc.Execute(context.Background(), CreateExtensionCommand{
		MerchantNumber: "500",
		DisplayName:    "Ops Line",
		Technology:     "PJSIP",
		OwnerID:        1,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.True(t, result.LocalSuccess)
}

func TestCreateExtensionUseCase_Execute_NumberConflictExhausted(t *testing.T) {
	repo := &mockExtensionRepository{
		SaveFunc: func(ctx context.Context, ext *extension.Extension) error {
			return apperrors.NewConflictError("extension number already taken")
		},
	}
	uc := newCreateUseCase(repo, &mockCallerIDRepository{}, &mockSyncClient{}, &mockNotifier{})

	_, err := uc.Execute(context.Background(), CreateExtensionCommand{
		MerchantNumber: "500",
		DisplayName:    "Ops Line",
		Technology:     "PJSIP",
		OwnerID:        1,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))
}

func TestCreateExtensionUseCase_Execute_ValidationFailsBeforeIO(t *testing.T) {
	ioTouched := false
	repo := &mockExtensionRepository{
		ListNumbersByMerchantFunc: func(ctx context.Context, merchantNumber string) ([]string, error) {
			ioTouched = true
			return nil, nil
		},
		SaveFunc: func(ctx context.Context, ext *extension.Extension) error {
			ioTouched = true
			return nil
		},
	}
	sync := &mockSyncClient{
		CreateExtensionFunc: func(ctx context.Context, code, name string, technology extension.Technology, secret string) error {
			ioTouched = true
			return nil
		},
	}
	uc := newCreateUseCase(repo, &mockCallerIDRepository{}, sync, &mockNotifier{})

	tests := []struct {
		name string
		cmd  CreateExtensionCommand
	}{
		{
			name: "missing display name",
			cmd:  CreateExtensionCommand{MerchantNumber: "500", Technology: "PJSIP", OwnerID: 1},
		},
		{
			name: "invalid technology",
			cmd:  CreateExtensionCommand{MerchantNumber: "500", DisplayName: "Ops", Technology: "IAX2", OwnerID: 1},
		},
		{
			name: "non-numeric merchant number",
			cmd:  CreateExtensionCommand{MerchantNumber: "abc", DisplayName: "Ops", Technology: "SIP", OwnerID: 1},
		},
		{
			name: "missing owner",
			cmd:  CreateExtensionCommand{MerchantNumber: "500", DisplayName: "Ops", Technology: "SIP"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err))
			assert.False(t, ioTouched, "validation failures must halt before any I/O")
		})
	}
}

func TestCreateExtensionUseCase_Execute_CallerIDValidation(t *testing.T) {
	repo := &mockExtensionRepository{
		SaveFunc: func(ctx context.Context, ext *extension.Extension) error {
			return ext.SetID(1)
		},
	}
	cmd := CreateExtensionCommand{
		MerchantNumber: "500",
		DisplayName:    "Ops Line",
		Technology:     "PJSIP",
		CallerIDSID:    "cid_abc123",
		OwnerID:        1,
	}

	tests := []struct {
		name     string
		callerID *callerid.CallerID
		findErr  error
	}{
		{
			name:    "unknown caller ID",
			findErr: apperrors.NewNotFoundError("caller ID not found"),
		},
		{
			name:     "caller ID from another tenant",
			callerID: reconstructCallerID(t, 7, "600", callerid.StatusActive),
		},
		{
			name:     "inactive caller ID",
			callerID: reconstructCallerID(t, 7, "500", callerid.StatusInactive),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cidRepo := &mockCallerIDRepository{
				FindBySIDFunc: func(ctx context.Context, sid string) (*callerid.CallerID, error) {
					if tt.findErr != nil {
						return nil, tt.findErr
					}
					return tt.callerID, nil
				},
			}
			uc := newCreateUseCase(repo, cidRepo, &mockSyncClient{}, &mockNotifier{})

			_, err := uc.Execute(context.Background(), cmd)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err))
		})
	}

	t.Run("active caller ID of the same tenant is attached", func(t *testing.T) {
		cidRepo := &mockCallerIDRepository{
			FindBySIDFunc: func(ctx context.Context, sid string) (*callerid.CallerID, error) {
				return reconstructCallerID(t, 7, "500", callerid.StatusActive), nil
			},
		}
		uc := newCreateUseCase(repo, cidRepo, &mockSyncClient{}, &mockNotifier{})

		result, err := uc.Execute(context.Background(), cmd)
		require.NoError(t, err)
		require.NotNil(t, result.Extension.CallerIDRef)
		assert.EqualValues(t, 7, *result.Extension.CallerIDRef)
	})
}

func reconstructCallerID(t *testing.T, id uint, merchantNumber string, status callerid.Status) *callerid.CallerID {
	t.Helper()
	cid, err := callerid.ReconstructCallerID(id, "cid_abc123", merchantNumber, "+15551230000", "Main Line", 2, status, testTime(), testTime())
	require.NoError(t, err)
	return cid
}
