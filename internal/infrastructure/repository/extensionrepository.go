package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"centrex/internal/domain/extension"
	"centrex/internal/infrastructure/persistence/mappers"
	"centrex/internal/infrastructure/persistence/models"
	"centrex/internal/shared/db"
	apperrors "centrex/internal/shared/errors"
)

type ExtensionRepository struct {
	db     *gorm.DB
	mapper mappers.ExtensionMapper
}

func NewExtensionRepository(database *gorm.DB) *ExtensionRepository {
	return &ExtensionRepository{
		db:     database,
		mapper: mappers.NewExtensionMapper(),
	}
}

func (r *ExtensionRepository) Save(ctx context.Context, ext *extension.Extension) error {
	model := r.mapper.ToModel(ext)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("extension number already taken")
		}
		return fmt.Errorf("failed to save extension: %w", err)
	}

	return ext.SetID(model.ID)
}

func (r *ExtensionRepository) Update(ctx context.Context, ext *extension.Extension) error {
	model := r.mapper.ToModel(ext)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.ExtensionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"display_name":  model.DisplayName,
			"technology":    model.Technology,
			"secret":        model.Secret,
			"caller_id_ref": model.CallerIDRef,
			"status":        model.Status,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update extension: %w", result.Error)
	}

	return nil
}

func (r *ExtensionRepository) Delete(ctx context.Context, extensionID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.ExtensionModel{}, extensionID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete extension: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("extension not found")
	}
	return nil
}

func (r *ExtensionRepository) FindByID(ctx context.Context, extensionID uint) (*extension.Extension, error) {
	var model models.ExtensionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, extensionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("extension not found")
		}
		return nil, fmt.Errorf("failed to find extension: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ExtensionRepository) FindBySID(ctx context.Context, sid string) (*extension.Extension, error) {
	var model models.ExtensionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("extension not found")
		}
		return nil, fmt.Errorf("failed to find extension: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ExtensionRepository) ListByMerchant(
	ctx context.Context,
	merchantNumber string,
	filter extension.Filter,
) ([]*extension.Extension, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ExtensionModel{}).Where("merchant_number = ?", merchantNumber)

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count extensions: %w", err)
	}

	query = query.Order("extension_number ASC")
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var extensionModels []models.ExtensionModel
	if err := query.Find(&extensionModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list extensions: %w", err)
	}

	extensions := make([]*extension.Extension, len(extensionModels))
	for i, model := range extensionModels {
		ext, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		extensions[i] = ext
	}

	return extensions, total, nil
}

func (r *ExtensionRepository) ListNumbersByMerchant(ctx context.Context, merchantNumber string) ([]string, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var numbers []string
	if err := tx.
		Model(&models.ExtensionModel{}).
		Where("merchant_number = ?", merchantNumber).
		Pluck("extension_number", &numbers).Error; err != nil {
		return nil, fmt.Errorf("failed to list extension numbers: %w", err)
	}

	return numbers, nil
}
