package callerid

import (
	"context"
	"time"

	"centrex/internal/domain/callerid"
	apperrors "centrex/internal/shared/errors"
	"centrex/internal/shared/logger"
)

type CallerIDDTO struct {
	SID            string    `json:"sid"`
	MerchantNumber string    `json:"merchant_number"`
	PhoneNumber    string    `json:"phone_number"`
	DisplayName    string    `json:"display_name"`
	Channels       int       `json:"channels"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toDTO(cid *callerid.CallerID) *CallerIDDTO {
	return &CallerIDDTO{
		SID:            cid.SID(),
		MerchantNumber: cid.MerchantNumber(),
		PhoneNumber:    cid.PhoneNumber(),
		DisplayName:    cid.DisplayName(),
		Channels:       cid.Channels(),
		Status:         cid.Status().String(),
		CreatedAt:      cid.CreatedAt(),
		UpdatedAt:      cid.UpdatedAt(),
	}
}

type CreateCallerIDCommand struct {
	MerchantNumber string
	PhoneNumber    string
	DisplayName    string
	Channels       int
}

type UpdateCallerIDCommand struct {
	SID            string
	MerchantNumber string
	DisplayName    string
	Channels       int
	Status         string
}

// Service manages the tenant's outbound identities. Extensions reference
// them read-only; deleting one never cascades into extension records.
type Service struct {
	calleridRepo callerid.Repository
	logger       logger.Interface
}

func NewService(calleridRepo callerid.Repository, logger logger.Interface) *Service {
	return &Service{
		calleridRepo: calleridRepo,
		logger:       logger,
	}
}

func (s *Service) Create(ctx context.Context, cmd CreateCallerIDCommand) (*CallerIDDTO, error) {
	cid, err := callerid.NewCallerID(cmd.MerchantNumber, cmd.PhoneNumber, cmd.DisplayName, cmd.Channels)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.calleridRepo.Save(ctx, cid); err != nil {
		s.logger.Errorw("failed to save caller ID", "error", err)
		return nil, err
	}

	s.logger.Infow("caller ID created", "callerid_id", cid.ID(), "merchant_number", cid.MerchantNumber())
	return toDTO(cid), nil
}

func (s *Service) Update(ctx context.Context, cmd UpdateCallerIDCommand) (*CallerIDDTO, error) {
	cid, err := s.findScoped(ctx, cmd.SID, cmd.MerchantNumber)
	if err != nil {
		return nil, err
	}

	if err := cid.Update(cmd.DisplayName, cmd.Channels); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if cmd.Status != "" {
		if err := cid.SetStatus(callerid.Status(cmd.Status)); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if err := s.calleridRepo.Update(ctx, cid); err != nil {
		s.logger.Errorw("failed to update caller ID", "error", err)
		return nil, err
	}

	return toDTO(cid), nil
}

func (s *Service) Delete(ctx context.Context, sid, merchantNumber string) error {
	cid, err := s.findScoped(ctx, sid, merchantNumber)
	if err != nil {
		return err
	}
	return s.calleridRepo.Delete(ctx, cid.ID())
}

func (s *Service) Get(ctx context.Context, sid, merchantNumber string) (*CallerIDDTO, error) {
	cid, err := s.findScoped(ctx, sid, merchantNumber)
	if err != nil {
		return nil, err
	}
	return toDTO(cid), nil
}

func (s *Service) List(ctx context.Context, merchantNumber string) ([]*CallerIDDTO, error) {
	cids, err := s.calleridRepo.ListByMerchant(ctx, merchantNumber)
	if err != nil {
		s.logger.Errorw("failed to list caller IDs", "error", err)
		return nil, err
	}

	dtos := make([]*CallerIDDTO, len(cids))
	for i, cid := range cids {
		dtos[i] = toDTO(cid)
	}
	return dtos, nil
}

func (s *Service) findScoped(ctx context.Context, sid, merchantNumber string) (*callerid.CallerID, error) {
	cid, err := s.calleridRepo.FindBySID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if cid.MerchantNumber() != merchantNumber {
		return nil, apperrors.NewNotFoundError("caller ID not found")
	}
	return cid, nil
}
