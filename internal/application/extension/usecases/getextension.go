package usecases

import (
	"context"

	"centrex/internal/application/extension/dto"
	"centrex/internal/domain/extension"
	apperrors "centrex/internal/shared/errors"
	"centrex/internal/shared/logger"
)

type GetExtensionQuery struct {
	SID            string
	MerchantNumber string
}

type GetExtensionUseCase struct {
	extensionRepo extension.Repository
	logger        logger.Interface
}

func NewGetExtensionUseCase(extensionRepo extension.Repository, logger logger.Interface) *GetExtensionUseCase {
	return &GetExtensionUseCase{
		extensionRepo: extensionRepo,
		logger:        logger,
	}
}

func (uc *GetExtensionUseCase) Execute(ctx context.Context, query GetExtensionQuery) (*dto.ExtensionDTO, error) {
	ext, err := uc.extensionRepo.FindBySID(ctx, query.SID)
	if err != nil {
		return nil, err
	}
	if ext.MerchantNumber() != query.MerchantNumber {
		return nil, apperrors.NewNotFoundError("extension not found")
	}

	return dto.FromExtension(ext), nil
}
