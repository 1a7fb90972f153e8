package usecases

import (
	"context"
	"errors"
	"regexp"

	"centrex/internal/application/extension/dto"
	"centrex/internal/domain/callerid"
	"centrex/internal/domain/extension"
	apperrors "centrex/internal/shared/errors"
	"centrex/internal/shared/logger"
)

// maxAllocationAttempts bounds the retry loop when concurrent creates
// race to the same extension number.
const maxAllocationAttempts = 3

var numericPattern = regexp.MustCompile(`^[0-9]+$`)

type CreateExtensionCommand struct {
	MerchantNumber string
	DisplayName    string
	Technology     string
	// Secret is optional; a registration credential is generated when
	// the operator leaves it blank.
	Secret      string
	CallerIDSID string
	OwnerID     uint
}

type CreateExtensionResult struct {
	Extension *dto.ExtensionDTO
	// LocalSuccess is always true when no error is returned; the field
	// exists so callers render the composite outcome uniformly.
	LocalSuccess  bool
	RemoteSuccess bool
	RemoteMessage string
}

// CreateExtensionUseCase provisions a new extension: it allocates a
// tenant-local number, pushes the endpoint to the telephony control
// plane best-effort, and persists the authoritative local record.
type CreateExtensionUseCase struct {
	extensionRepo extension.Repository
	calleridRepo  callerid.Repository
	syncClient    extension.SyncClient
	allocator     *NumberAllocator
	notifier      SyncFailureNotifier
	logger        logger.Interface
}

func NewCreateExtensionUseCase(
	extensionRepo extension.Repository,
	calleridRepo callerid.Repository,
	syncClient extension.SyncClient,
	allocator *NumberAllocator,
	notifier SyncFailureNotifier,
	logger logger.Interface,
) *CreateExtensionUseCase {
	return &CreateExtensionUseCase{
		extensionRepo: extensionRepo,
		calleridRepo:  calleridRepo,
		syncClient:    syncClient,
		allocator:     allocator,
		notifier:      notifier,
		logger:        logger,
	}
}

func (uc *CreateExtensionUseCase) Execute(ctx context.Context, cmd CreateExtensionCommand) (*CreateExtensionResult, error) {
	uc.logger.Infow("executing create extension use case",
		"merchant_number", cmd.MerchantNumber, "owner_id", cmd.OwnerID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid create extension command", "error", err)
		return nil, err
	}

	callerIDRef, err := uc.resolveCallerID(ctx, cmd)
	if err != nil {
		return nil, err
	}

	secret := cmd.Secret
	if secret == "" {
		secret, err = extension.GenerateSecret()
		if err != nil {
			uc.logger.Errorw("failed to generate extension secret", "error", err)
			return nil, apperrors.NewInternalError("failed to generate extension secret")
		}
	}

	var (
		ext           *extension.Extension
		remoteSuccess bool
		remoteMessage string
	)

	// The allocator proposal is not a reservation: a concurrent create
	// can win the same number, in which case the insert hits the
	// uniqueness constraint and the whole attempt is redone with a
	// fresh number.
	for attempt := 0; ; attempt++ {
		if attempt == maxAllocationAttempts {
			uc.logger.Errorw("extension number allocation exhausted retries",
				"merchant_number", cmd.MerchantNumber, "attempts", attempt)
			return nil, apperrors.NewConflictError("could not allocate a free extension number")
		}

		number, err := uc.allocator.Next(ctx, cmd.MerchantNumber)
		if err != nil {
			uc.logger.Errorw("failed to allocate extension number", "error", err)
			return nil, err
		}

		ext, err = extension.NewExtension(
			cmd.MerchantNumber,
			number,
			cmd.DisplayName,
			extension.Technology(cmd.Technology),
			secret,
			cmd.OwnerID,
		)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		if callerIDRef != nil {
			ext.AssignCallerID(callerIDRef)
		}

		remoteSuccess, remoteMessage = uc.attemptRemoteCreate(ctx, ext)

		// Local persistence always runs to completion even when the
		// operator's request context was cancelled mid-flight.
		if err := uc.extensionRepo.Save(context.WithoutCancel(ctx), ext); err != nil {
			if apperrors.IsConflictError(err) {
				uc.logger.Warnw("extension number raced, retrying allocation",
					"merchant_number", cmd.MerchantNumber,
					"extension_number", number,
					"attempt", attempt+1)
				continue
			}
			uc.logger.Errorw("failed to persist extension", "error", err)
			return nil, err
		}
		break
	}

	if !remoteSuccess && remoteMessage != "" {
		uc.notifier.NotifySyncFailure(cmd.MerchantNumber, ext.ExtensionCode(), "create", remoteMessage)
	}

	uc.logger.Infow("extension created",
		"extension_id", ext.ID(),
		"extension_code", ext.ExtensionCode(),
		"remote_success", remoteSuccess)

	return &CreateExtensionResult{
		Extension:     dto.FromExtensionWithSecret(ext),
		LocalSuccess:  true,
		RemoteSuccess: remoteSuccess,
		RemoteMessage: remoteMessage,
	}, nil
}

func (uc *CreateExtensionUseCase) validateCommand(cmd CreateExtensionCommand) error {
	if cmd.MerchantNumber == "" {
		return apperrors.NewValidationError("merchant number is required")
	}
	if !numericPattern.MatchString(cmd.MerchantNumber) {
		return apperrors.NewValidationError("merchant number must be numeric")
	}
	if cmd.DisplayName == "" {
		return apperrors.NewValidationError("display name is required")
	}
	if len(cmd.DisplayName) > 100 {
		return apperrors.NewValidationError("display name exceeds maximum length of 100 characters")
	}
	if !extension.Technology(cmd.Technology).IsValid() {
		return apperrors.NewValidationError("technology must be PJSIP or SIP")
	}
	if cmd.OwnerID == 0 {
		return apperrors.NewValidationError("owner ID is required")
	}
	return nil
}

func (uc *CreateExtensionUseCase) resolveCallerID(ctx context.Context, cmd CreateExtensionCommand) (*uint, error) {
	if cmd.CallerIDSID == "" {
		return nil, nil
	}

	cid, err := uc.calleridRepo.FindBySID(ctx, cmd.CallerIDSID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewValidationError("caller ID not found")
		}
		return nil, err
	}
	if cid.MerchantNumber() != cmd.MerchantNumber {
		return nil, apperrors.NewValidationError("caller ID belongs to another tenant")
	}
	if !cid.IsActive() {
		return nil, apperrors.NewValidationError("caller ID is inactive")
	}

	ref := cid.ID()
	return &ref, nil
}

// attemptRemoteCreate pushes the new endpoint to the control plane.
// Remote failure never fails the operation: the local store is the
// system of record and the operator can resend the sync via update.
func (uc *CreateExtensionUseCase) attemptRemoteCreate(ctx context.Context, ext *extension.Extension) (bool, string) {
	err := uc.syncClient.CreateExtension(ctx, ext.ExtensionCode(), ext.DisplayName(), ext.Technology(), ext.Secret())
	if err == nil {
		return true, ""
	}

	if errors.Is(err, extension.ErrSyncDisabled) {
		uc.logger.Debugw("remote sync disabled, skipping control-plane push",
			"extension_code", ext.ExtensionCode())
		return false, ""
	}

	logRemoteError(uc.logger, "create", ext.ExtensionCode(), err)
	return false, err.Error()
}

func logRemoteError(log logger.Interface, operation, extensionCode string, err error) {
	if remoteErr, ok := extension.AsRemoteError(err); ok {
		log.Errorw("remote sync failed",
			"operation", operation,
			"extension_code", extensionCode,
			"step", remoteErr.Step,
			"kind", string(remoteErr.Kind),
			"status", remoteErr.Status,
			"body", remoteErr.Body,
			"error", err)
		return
	}
	log.Errorw("remote sync failed",
		"operation", operation,
		"extension_code", extensionCode,
		"error", err)
}
