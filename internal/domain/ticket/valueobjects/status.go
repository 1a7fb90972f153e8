package valueobjects

type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
)

func (s TicketStatus) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

func (s TicketStatus) String() string {
	return string(s)
}

func (s TicketStatus) IsClosed() bool {
	return s == StatusClosed
}

// CanTransitionTo enforces the ticket lifecycle: closed is terminal, and
// resolved tickets can only close or reopen.
func (s TicketStatus) CanTransitionTo(target TicketStatus) bool {
	if !target.IsValid() || s == target {
		return false
	}
	switch s {
	case StatusClosed:
		return false
	case StatusResolved:
		return target == StatusClosed || target == StatusOpen
	default:
		return true
	}
}
