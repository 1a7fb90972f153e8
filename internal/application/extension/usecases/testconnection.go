package usecases

import (
	"context"
	"errors"

	"centrex/internal/domain/extension"
	"centrex/internal/shared/logger"
)

type TestConnectionResult struct {
	OK bool
	// Message carries the failing step and classification when OK is
	// false, for operator diagnosis.
	Message string
}

// TestConnectionUseCase is the operator-triggered health check: it
// forces a configuration load and a token fetch without issuing any
// mutation.
type TestConnectionUseCase struct {
	syncClient extension.SyncClient
	logger     logger.Interface
}

func NewTestConnectionUseCase(syncClient extension.SyncClient, logger logger.Interface) *TestConnectionUseCase {
	return &TestConnectionUseCase{
		syncClient: syncClient,
		logger:     logger,
	}
}

func (uc *TestConnectionUseCase) Execute(ctx context.Context) (*TestConnectionResult, error) {
	if err := uc.syncClient.TestConnection(ctx); err != nil {
		if errors.Is(err, extension.ErrSyncDisabled) {
			return &TestConnectionResult{OK: false, Message: "remote sync is disabled"}, nil
		}
		logRemoteError(uc.logger, "test_connection", "", err)
		return &TestConnectionResult{OK: false, Message: err.Error()}, nil
	}

	return &TestConnectionResult{OK: true}, nil
}
