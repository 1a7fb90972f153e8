package mappers

import (
	"time"

	"centrex/internal/domain/user"
	"centrex/internal/infrastructure/persistence/models"
	"centrex/internal/shared/authorization"
)

type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) (*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:             u.ID(),
		Email:          u.Email(),
		Name:           u.Name(),
		PasswordHash:   u.PasswordHash(),
		Role:           u.Role().String(),
		MerchantNumber: u.MerchantNumber(),
		Active:         u.IsActive(),
		CreatedAt:      u.CreatedAt().UnixMilli(),
		UpdatedAt:      u.UpdatedAt().UnixMilli(),
	}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(
		model.ID,
		model.Email,
		model.Name,
		model.PasswordHash,
		authorization.UserRole(model.Role),
		model.MerchantNumber,
		model.Active,
		time.UnixMilli(model.CreatedAt).UTC(),
		time.UnixMilli(model.UpdatedAt).UTC(),
	)
}
