package ticket

import (
	"context"
	"time"

	"centrex/internal/domain/ticket"
	vo "centrex/internal/domain/ticket/valueobjects"
	apperrors "centrex/internal/shared/errors"
	"centrex/internal/shared/logger"
)

type TicketDTO struct {
	SID         string     `json:"sid"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	CreatorID   uint       `json:"creator_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
}

func toDTO(t *ticket.Ticket) *TicketDTO {
	return &TicketDTO{
		SID:         t.SID(),
		Title:       t.Title(),
		Description: t.Description(),
		Priority:    t.Priority().String(),
		Status:      t.Status().String(),
		CreatorID:   t.CreatorID(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
		ClosedAt:    t.ClosedAt(),
	}
}

type CreateTicketCommand struct {
	Title       string
	Description string
	Priority    string
	CreatorID   uint
}

type ListTicketsQuery struct {
	Status    string
	Priority  string
	CreatorID *uint
	Page      int
	PageSize  int
}

type ListTicketsResult struct {
	Tickets  []*TicketDTO
	Total    int64
	Page     int
	PageSize int
}

// Service handles support tickets filed by operators.
type Service struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewService(ticketRepo ticket.Repository, logger logger.Interface) *Service {
	return &Service{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (s *Service) Create(ctx context.Context, cmd CreateTicketCommand) (*TicketDTO, error) {
	t, err := ticket.NewTicket(cmd.Title, cmd.Description, vo.Priority(cmd.Priority), cmd.CreatorID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.ticketRepo.Save(ctx, t); err != nil {
		s.logger.Errorw("failed to save ticket", "error", err)
		return nil, err
	}

	s.logger.Infow("ticket created", "ticket_id", t.ID(), "creator_id", t.CreatorID())
	return toDTO(t), nil
}

func (s *Service) Get(ctx context.Context, sid string) (*TicketDTO, error) {
	t, err := s.ticketRepo.FindBySID(ctx, sid)
	if err != nil {
		return nil, err
	}
	return toDTO(t), nil
}

func (s *Service) List(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 || query.PageSize > 100 {
		query.PageSize = 20
	}

	filter := ticket.Filter{
		CreatorID: query.CreatorID,
		Page:      query.Page,
		PageSize:  query.PageSize,
	}
	if query.Status != "" {
		status := vo.TicketStatus(query.Status)
		if !status.IsValid() {
			return nil, apperrors.NewValidationError("invalid status filter")
		}
		filter.Status = &status
	}
	if query.Priority != "" {
		priority := vo.Priority(query.Priority)
		if !priority.IsValid() {
			return nil, apperrors.NewValidationError("invalid priority filter")
		}
		filter.Priority = &priority
	}

	tickets, total, err := s.ticketRepo.List(ctx, filter)
	if err != nil {
		s.logger.Errorw("failed to list tickets", "error", err)
		return nil, err
	}

	dtos := make([]*TicketDTO, len(tickets))
	for i, t := range tickets {
		dtos[i] = toDTO(t)
	}

	return &ListTicketsResult{
		Tickets:  dtos,
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

func (s *Service) ChangeStatus(ctx context.Context, sid, status string) (*TicketDTO, error) {
	t, err := s.ticketRepo.FindBySID(ctx, sid)
	if err != nil {
		return nil, err
	}

	target := vo.TicketStatus(status)
	if !target.IsValid() {
		return nil, apperrors.NewValidationError("invalid status")
	}
	if err := t.ChangeStatus(target); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.ticketRepo.Update(ctx, t); err != nil {
		s.logger.Errorw("failed to update ticket", "error", err)
		return nil, err
	}

	return toDTO(t), nil
}
