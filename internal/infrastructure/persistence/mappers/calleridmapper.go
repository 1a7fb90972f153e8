package mappers

import (
	"time"

	"centrex/internal/domain/callerid"
	"centrex/internal/infrastructure/persistence/models"
)

type CallerIDMapper interface {
	ToModel(c *callerid.CallerID) *models.CallerIDModel
	ToDomain(model *models.CallerIDModel) (*callerid.CallerID, error)
}

type CallerIDMapperImpl struct{}

func NewCallerIDMapper() CallerIDMapper {
	return &CallerIDMapperImpl{}
}

func (m *CallerIDMapperImpl) ToModel(c *callerid.CallerID) *models.CallerIDModel {
	return &models.CallerIDModel{
		ID:             c.ID(),
		SID:            c.SID(),
		MerchantNumber: c.MerchantNumber(),
		PhoneNumber:    c.PhoneNumber(),
		DisplayName:    c.DisplayName(),
		Channels:       c.Channels(),
		Status:         c.Status().String(),
		CreatedAt:      c.CreatedAt().UnixMilli(),
		UpdatedAt:      c.UpdatedAt().UnixMilli(),
	}
}

func (m *CallerIDMapperImpl) ToDomain(model *models.CallerIDModel) (*callerid.CallerID, error) {
	return callerid.ReconstructCallerID(
		model.ID,
		model.SID,
		model.MerchantNumber,
		model.PhoneNumber,
		model.DisplayName,
		model.Channels,
		callerid.Status(model.Status),
		time.UnixMilli(model.CreatedAt).UTC(),
		time.UnixMilli(model.UpdatedAt).UTC(),
	)
}
