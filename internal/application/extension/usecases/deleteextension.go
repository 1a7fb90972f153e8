package usecases

import (
	"context"
	"errors"

	"centrex/internal/domain/extension"
	apperrors "centrex/internal/shared/errors"
	"centrex/internal/shared/logger"
)

type DeleteExtensionCommand struct {
	SID            string
	MerchantNumber string
}

type DeleteExtensionResult struct {
	LocalSuccess  bool
	RemoteSuccess bool
	RemoteMessage string
}

// DeleteExtensionUseCase removes an extension. The remote delete is
// best effort: a missing or unreachable remote counterpart never blocks
// removal of the local record, so delete is idempotent from the
// operator's perspective.
type DeleteExtensionUseCase struct {
	extensionRepo extension.Repository
	syncClient    extension.SyncClient
	logger        logger.Interface
}

func NewDeleteExtensionUseCase(
	extensionRepo extension.Repository,
	syncClient extension.SyncClient,
	logger logger.Interface,
) *DeleteExtensionUseCase {
	return &DeleteExtensionUseCase{
		extensionRepo: extensionRepo,
		syncClient:    syncClient,
		logger:        logger,
	}
}

func (uc *DeleteExtensionUseCase) Execute(ctx context.Context, cmd DeleteExtensionCommand) (*DeleteExtensionResult, error) {
	uc.logger.Infow("executing delete extension use case", "sid", cmd.SID)

	ext, err := uc.extensionRepo.FindBySID(ctx, cmd.SID)
	if err != nil {
		return nil, err
	}
	if ext.MerchantNumber() != cmd.MerchantNumber {
		return nil, apperrors.NewNotFoundError("extension not found")
	}

	remoteSuccess := true
	remoteMessage := ""
	if err := uc.syncClient.DeleteExtension(ctx, ext.ExtensionCode()); err != nil {
		remoteSuccess = false
		if errors.Is(err, extension.ErrSyncDisabled) {
			uc.logger.Debugw("remote sync disabled, skipping control-plane push",
				"extension_code", ext.ExtensionCode())
		} else {
			logRemoteError(uc.logger, "delete", ext.ExtensionCode(), err)
			remoteMessage = err.Error()
		}
	}

	if err := uc.extensionRepo.Delete(context.WithoutCancel(ctx), ext.ID()); err != nil {
		uc.logger.Errorw("failed to delete extension", "error", err)
		return nil, err
	}

	uc.logger.Infow("extension deleted",
		"extension_id", ext.ID(),
		"extension_code", ext.ExtensionCode(),
		"remote_success", remoteSuccess)

	return &DeleteExtensionResult{
		LocalSuccess:  true,
		RemoteSuccess: remoteSuccess,
		RemoteMessage: remoteMessage,
	}, nil
}
