package usecases

import (
	"context"

	"centrex/internal/application/extension/dto"
)

type CreateExtensionExecutor interface {
	Execute(ctx context.Context, cmd CreateExtensionCommand) (*CreateExtensionResult, error)
}

type UpdateExtensionExecutor interface {
	Execute(ctx context.Context, cmd UpdateExtensionCommand) (*UpdateExtensionResult, error)
}

type DeleteExtensionExecutor interface {
	Execute(ctx context.Context, cmd DeleteExtensionCommand) (*DeleteExtensionResult, error)
}

type GetExtensionExecutor interface {
	Execute(ctx context.Context, query GetExtensionQuery) (*dto.ExtensionDTO, error)
}

type ListExtensionsExecutor interface {
	Execute(ctx context.Context, query ListExtensionsQuery) (*ListExtensionsResult, error)
}

type TestConnectionExecutor interface {
	Execute(ctx context.Context) (*TestConnectionResult, error)
}

// SyncFailureNotifier alerts operations when a change was saved locally
// but the control-plane push failed. Implementations must be best effort
// and never return an error into the provisioning flow.
type SyncFailureNotifier interface {
	NotifySyncFailure(merchantNumber, extensionCode, operation, reason string)
}
