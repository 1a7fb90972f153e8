package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"centrex/internal/domain/callerid"
	"centrex/internal/infrastructure/persistence/mappers"
	"centrex/internal/infrastructure/persistence/models"
	"centrex/internal/shared/db"
	apperrors "centrex/internal/shared/errors"
)

type CallerIDRepository struct {
	db     *gorm.DB
	mapper mappers.CallerIDMapper
}

func NewCallerIDRepository(database *gorm.DB) *CallerIDRepository {
	return &CallerIDRepository{
		db:     database,
		mapper: mappers.NewCallerIDMapper(),
	}
}

func (r *CallerIDRepository) Save(ctx context.Context, cid *callerid.CallerID) error {
	model := r.mapper.ToModel(cid)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("caller ID number already registered")
		}
		return fmt.Errorf("failed to save caller ID: %w", err)
	}

	return cid.SetID(model.ID)
}

func (r *CallerIDRepository) Update(ctx context.Context, cid *callerid.CallerID) error {
	model := r.mapper.ToModel(cid)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.CallerIDModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"display_name": model.DisplayName,
			"channels":     model.Channels,
			"status":       model.Status,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update caller ID: %w", result.Error)
	}

	return nil
}

func (r *CallerIDRepository) Delete(ctx context.Context, calleridID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.CallerIDModel{}, calleridID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete caller ID: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("caller ID not found")
	}
	return nil
}

func (r *CallerIDRepository) FindByID(ctx context.Context, calleridID uint) (*callerid.CallerID, error) {
	var model models.CallerIDModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, calleridID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("caller ID not found")
		}
		return nil, fmt.Errorf("failed to find caller ID: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *CallerIDRepository) FindBySID(ctx context.Context, sid string) (*callerid.CallerID, error) {
	var model models.CallerIDModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("caller ID not found")
		}
		return nil, fmt.Errorf("failed to find caller ID: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *CallerIDRepository) ListByMerchant(ctx context.Context, merchantNumber string) ([]*callerid.CallerID, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var calleridModels []models.CallerIDModel
	if err := tx.
		Where("merchant_number = ?", merchantNumber).
		Order("created_at ASC").
		Find(&calleridModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list caller IDs: %w", err)
	}

	callerIDs := make([]*callerid.CallerID, len(calleridModels))
	for i, model := range calleridModels {
		cid, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, err
		}
		callerIDs[i] = cid
	}

	return callerIDs, nil
}
