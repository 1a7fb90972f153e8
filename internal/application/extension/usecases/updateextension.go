package usecases

import (
	"context"
	"errors"

	"centrex/internal/application/extension/dto"
	"centrex/internal/domain/callerid"
	"centrex/internal/domain/extension"
	apperrors "centrex/internal/shared/errors"
	"centrex/internal/shared/logger"
)

type UpdateExtensionCommand struct {
	SID            string
	MerchantNumber string
	DisplayName    string
	Technology     string
	// Secret replaces the registration credential when non-empty; blank
	// keeps the existing one.
	Secret      string
	CallerIDSID string
	// ClearCallerID detaches the outbound identity when true.
	ClearCallerID bool
	Status        string
}

type UpdateExtensionResult struct {
	Extension     *dto.ExtensionDTO
	LocalSuccess  bool
	RemoteSuccess bool
	RemoteMessage string
}

// UpdateExtensionUseCase edits an existing extension and resends the
// full remote mutation sequence. Resending is also the manual retry
// path after a degraded create: there is no background retry queue.
type UpdateExtensionUseCase struct {
	extensionRepo extension.Repository
	calleridRepo  callerid.Repository
	syncClient    extension.SyncClient
	notifier      SyncFailureNotifier
	logger        logger.Interface
}

func NewUpdateExtensionUseCase(
	extensionRepo extension.Repository,
	calleridRepo callerid.Repository,
	syncClient extension.SyncClient,
	notifier SyncFailureNotifier,
	logger logger.Interface,
) *UpdateExtensionUseCase {
	return &UpdateExtensionUseCase{
		extensionRepo: extensionRepo,
		calleridRepo:  calleridRepo,
		syncClient:    syncClient,
		notifier:      notifier,
		logger:        logger,
	}
}

func (uc *UpdateExtensionUseCase) Execute(ctx context.Context, cmd UpdateExtensionCommand) (*UpdateExtensionResult, error) {
	uc.logger.Infow("executing update extension use case", "sid", cmd.SID)

	ext, err := uc.extensionRepo.FindBySID(ctx, cmd.SID)
	if err != nil {
		return nil, err
	}
	if ext.MerchantNumber() != cmd.MerchantNumber {
		// Cross-tenant probes get the same answer as a miss.
		return nil, apperrors.NewNotFoundError("extension not found")
	}

	if cmd.DisplayName != "" {
		if err := ext.UpdateDisplayName(cmd.DisplayName); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if cmd.Technology != "" {
		if err := ext.UpdateTechnology(extension.Technology(cmd.Technology)); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	ext.UpdateSecret(cmd.Secret)
	if cmd.Status != "" {
		if err := ext.SetStatus(extension.Status(cmd.Status)); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if cmd.ClearCallerID {
		ext.AssignCallerID(nil)
	} else if cmd.CallerIDSID != "" {
		ref, err := uc.resolveCallerID(ctx, cmd.MerchantNumber, cmd.CallerIDSID)
		if err != nil {
			return nil, err
		}
		ext.AssignCallerID(ref)
	}

	// The extension code is immutable: it is read from the stored
	// record, never recomputed on update.
	remoteSuccess, remoteMessage := uc.attemptRemoteUpdate(ctx, ext)

	if err := uc.extensionRepo.Update(context.WithoutCancel(ctx), ext); err != nil {
		uc.logger.Errorw("failed to persist extension update", "error", err)
		return nil, err
	}

	if !remoteSuccess && remoteMessage != "" {
		uc.notifier.NotifySyncFailure(ext.MerchantNumber(), ext.ExtensionCode(), "update", remoteMessage)
	}

	uc.logger.Infow("extension updated",
		"extension_id", ext.ID(),
		"extension_code", ext.ExtensionCode(),
		"remote_success", remoteSuccess)

	return &UpdateExtensionResult{
		Extension:     dto.FromExtension(ext),
		LocalSuccess:  true,
		RemoteSuccess: remoteSuccess,
		RemoteMessage: remoteMessage,
	}, nil
}

func (uc *UpdateExtensionUseCase) resolveCallerID(ctx context.Context, merchantNumber, sid string) (*uint, error) {
	cid, err := uc.calleridRepo.FindBySID(ctx, sid)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewValidationError("caller ID not found")
		}
		return nil, err
	}
	if cid.MerchantNumber() != merchantNumber {
		return nil, apperrors.NewValidationError("caller ID belongs to another tenant")
	}
	if !cid.IsActive() {
		return nil, apperrors.NewValidationError("caller ID is inactive")
	}

	ref := cid.ID()
	return &ref, nil
}

func (uc *UpdateExtensionUseCase) attemptRemoteUpdate(ctx context.Context, ext *extension.Extension) (bool, string) {
	err := uc.syncClient.UpdateExtension(ctx, ext.ExtensionCode(), ext.DisplayName(), ext.Technology(), ext.Secret())
	if err == nil {
		return true, ""
	}

	if errors.Is(err, extension.ErrSyncDisabled) {
		uc.logger.Debugw("remote sync disabled, skipping control-plane push",
			"extension_code", ext.ExtensionCode())
		return false, ""
	}

	logRemoteError(uc.logger, "update", ext.ExtensionCode(), err)
	return false, err.Error()
}
