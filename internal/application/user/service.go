package user

import (
	"context"
	"time"

	"centrex/internal/application/auth"
	"centrex/internal/domain/user"
	"centrex/internal/shared/authorization"
	apperrors "centrex/internal/shared/errors"
	"centrex/internal/shared/logger"
)

type UserDTO struct {
	ID             uint      `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	MerchantNumber string    `json:"merchant_number"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}

func toDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:             u.ID(),
		Email:          u.Email(),
		Name:           u.Name(),
		Role:           u.Role().String(),
		MerchantNumber: u.MerchantNumber(),
		Active:         u.IsActive(),
		CreatedAt:      u.CreatedAt(),
	}
}

type CreateUserCommand struct {
	Email          string
	Name           string
	Password       string
	Role           string
	MerchantNumber string
}

// Service manages operator accounts. Admin only.
type Service struct {
	userRepo user.Repository
	hasher   auth.PasswordHasher
	logger   logger.Interface
}

func NewService(userRepo user.Repository, hasher auth.PasswordHasher, logger logger.Interface) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (s *Service) Create(ctx context.Context, cmd CreateUserCommand) (*UserDTO, error) {
	if len(cmd.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}

	role := authorization.UserRole(cmd.Role)
	if !role.IsValid() {
		return nil, apperrors.NewValidationError("role must be admin or operator")
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		s.logger.Errorw("failed to hash password", "error", err)
		return nil, apperrors.NewInternalError("failed to hash password")
	}

	u, err := user.NewUser(cmd.Email, cmd.Name, hash, role, cmd.MerchantNumber)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.userRepo.Save(ctx, u); err != nil {
		s.logger.Errorw("failed to save user", "error", err)
		return nil, err
	}

	s.logger.Infow("operator account created", "user_id", u.ID(), "merchant_number", u.MerchantNumber())
	return toDTO(u), nil
}

func (s *Service) Get(ctx context.Context, userID uint) (*UserDTO, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDTO(u), nil
}

func (s *Service) List(ctx context.Context, page, pageSize int) ([]*UserDTO, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	users, total, err := s.userRepo.List(ctx, page, pageSize)
	if err != nil {
		s.logger.Errorw("failed to list users", "error", err)
		return nil, 0, err
	}

	dtos := make([]*UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toDTO(u)
	}
	return dtos, total, nil
}

func (s *Service) Deactivate(ctx context.Context, userID uint) error {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	u.Deactivate()
	if err := s.userRepo.Update(ctx, u); err != nil {
		s.logger.Errorw("failed to deactivate user", "error", err)
		return err
	}

	s.logger.Infow("operator account deactivated", "user_id", userID)
	return nil
}
