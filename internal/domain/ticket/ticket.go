package ticket

import (
	"fmt"
	"time"

	vo "centrex/internal/domain/ticket/valueobjects"
	"centrex/internal/shared/biztime"
	"centrex/internal/shared/id"
)

type Ticket struct {
	id          uint
	sid         string
	title       string
	description string
	priority    vo.Priority
	status      vo.TicketStatus
	creatorID   uint
	createdAt   time.Time
	updatedAt   time.Time
	closedAt    *time.Time
}

func NewTicket(title, description string, priority vo.Priority, creatorID uint) (*Ticket, error) {
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > 5000 {
		return nil, fmt.Errorf("description exceeds maximum length of 5000 characters")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	sid, err := id.NewTicketID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &Ticket{
		sid:         sid,
		title:       title,
		description: description,
		priority:    priority,
		status:      vo.StatusOpen,
		creatorID:   creatorID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructTicket(
	id uint,
	sid string,
	title string,
	description string,
	priority vo.Priority,
	status vo.TicketStatus,
	creatorID uint,
	createdAt, updatedAt time.Time,
	closedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	return &Ticket{
		id:          id,
		sid:         sid,
		title:       title,
		description: description,
		priority:    priority,
		status:      status,
		creatorID:   creatorID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		closedAt:    closedAt,
	}, nil
}

func (t *Ticket) ID() uint                  { return t.id }
func (t *Ticket) SID() string               { return t.sid }
func (t *Ticket) Title() string             { return t.title }
func (t *Ticket) Description() string       { return t.description }
func (t *Ticket) Priority() vo.Priority     { return t.priority }
func (t *Ticket) Status() vo.TicketStatus   { return t.status }
func (t *Ticket) CreatorID() uint           { return t.creatorID }
func (t *Ticket) CreatedAt() time.Time      { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time      { return t.updatedAt }
func (t *Ticket) ClosedAt() *time.Time      { return t.closedAt }

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) ChangeStatus(target vo.TicketStatus) error {
	if !t.status.CanTransitionTo(target) {
		return fmt.Errorf("cannot transition ticket from %s to %s", t.status, target)
	}
	t.status = target
	now := biztime.NowUTC()
	t.updatedAt = now
	if target == vo.StatusClosed {
		t.closedAt = &now
	}
	return nil
}

func (t *Ticket) Close() error {
	return t.ChangeStatus(vo.StatusClosed)
}
