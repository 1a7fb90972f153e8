package ticket

import (
	"context"

	vo "centrex/internal/domain/ticket/valueobjects"
)

type Filter struct {
	Status    *vo.TicketStatus
	Priority  *vo.Priority
	CreatorID *uint
	Page      int
	PageSize  int
}

type Repository interface {
	Save(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	FindByID(ctx context.Context, ticketID uint) (*Ticket, error)
	FindBySID(ctx context.Context, sid string) (*Ticket, error)
	List(ctx context.Context, filter Filter) ([]*Ticket, int64, error)
}
