package mappers

import (
	"time"

	"centrex/internal/domain/setting"
	"centrex/internal/infrastructure/persistence/models"
)

type SettingMapper interface {
	ToModel(s *setting.SystemSetting) *models.SystemSettingModel
	ToDomain(model *models.SystemSettingModel) *setting.SystemSetting
}

type SettingMapperImpl struct{}

func NewSettingMapper() SettingMapper {
	return &SettingMapperImpl{}
}

func (m *SettingMapperImpl) ToModel(s *setting.SystemSetting) *models.SystemSettingModel {
	return &models.SystemSettingModel{
		Category:    s.Category(),
		Key:         s.Key(),
		Value:       s.Value(),
		ValueType:   string(s.Type()),
		Description: s.Description(),
		UpdatedBy:   s.UpdatedBy(),
		UpdatedAt:   s.UpdatedAt().UnixMilli(),
	}
}

func (m *SettingMapperImpl) ToDomain(model *models.SystemSettingModel) *setting.SystemSetting {
	return setting.ReconstructSystemSetting(
		model.Category,
		model.Key,
		model.Value,
		setting.ValueType(model.ValueType),
		model.Description,
		model.UpdatedBy,
		time.UnixMilli(model.UpdatedAt).UTC(),
	)
}
