package mappers

import (
	"time"

	"centrex/internal/domain/extension"
	"centrex/internal/infrastructure/persistence/models"
)

// ExtensionMapper handles the conversion between Extension domain
// entities and persistence models.
type ExtensionMapper interface {
	ToModel(e *extension.Extension) *models.ExtensionModel
	ToDomain(model *models.ExtensionModel) (*extension.Extension, error)
}

type ExtensionMapperImpl struct{}

func NewExtensionMapper() ExtensionMapper {
	return &ExtensionMapperImpl{}
}

func (m *ExtensionMapperImpl) ToModel(e *extension.Extension) *models.ExtensionModel {
	return &models.ExtensionModel{
		ID:              e.ID(),
		SID:             e.SID(),
		MerchantNumber:  e.MerchantNumber(),
		ExtensionNumber: e.ExtensionNumber(),
		ExtensionCode:   e.ExtensionCode(),
		DisplayName:     e.DisplayName(),
		Technology:      e.Technology().String(),
		Secret:          e.Secret(),
		CallerIDRef:     e.CallerIDRef(),
		Status:          e.Status().String(),
		OwnerID:         e.OwnerID(),
		CreatedAt:       e.CreatedAt().UnixMilli(),
		UpdatedAt:       e.UpdatedAt().UnixMilli(),
	}
}

func (m *ExtensionMapperImpl) ToDomain(model *models.ExtensionModel) (*extension.Extension, error) {
	return extension.ReconstructExtension(
		model.ID,
		model.SID,
		model.MerchantNumber,
		model.ExtensionNumber,
		model.ExtensionCode,
		model.DisplayName,
		extension.Technology(model.Technology),
		model.Secret,
		model.CallerIDRef,
		extension.Status(model.Status),
		model.OwnerID,
		time.UnixMilli(model.CreatedAt).UTC(),
		time.UnixMilli(model.UpdatedAt).UTC(),
	)
}
