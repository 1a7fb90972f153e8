package usecases

import (
	"context"

	"centrex/internal/application/extension/dto"
	"centrex/internal/domain/extension"
	apperrors "centrex/internal/shared/errors"
	"centrex/internal/shared/logger"
)

type ListExtensionsQuery struct {
	MerchantNumber string
	Status         string
	OwnerID        *uint
	Page           int
	PageSize       int
}

type ListExtensionsResult struct {
	Extensions []*dto.ExtensionDTO
	Total      int64
	Page       int
	PageSize   int
}

type ListExtensionsUseCase struct {
	extensionRepo extension.Repository
	logger        logger.Interface
}

func NewListExtensionsUseCase(extensionRepo extension.Repository, logger logger.Interface) *ListExtensionsUseCase {
	return &ListExtensionsUseCase{
		extensionRepo: extensionRepo,
		logger:        logger,
	}
}

func (uc *ListExtensionsUseCase) Execute(ctx context.Context, query ListExtensionsQuery) (*ListExtensionsResult, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 || query.PageSize > 100 {
		query.PageSize = 20
	}

	filter := extension.Filter{
		OwnerID:  query.OwnerID,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.Status != "" {
		status := extension.Status(query.Status)
		if !status.IsValid() {
			return nil, apperrors.NewValidationError("status must be active or inactive")
		}
		filter.Status = &status
	}

	exts, total, err := uc.extensionRepo.ListByMerchant(ctx, query.MerchantNumber, filter)
	if err != nil {
		uc.logger.Errorw("failed to list extensions", "error", err)
		return nil, err
	}

	return &ListExtensionsResult{
		Extensions: dto.FromExtensionList(exts),
		Total:      total,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}, nil
}
