package valueobjects

import (
	"errors"
	"fmt"
)

// TicketStatus is the lifecycle state of a ticket. Any status may move to any other.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "OPEN"
	StatusInProgress TicketStatus = "IN_PROGRESS"
	StatusClosed     TicketStatus = "CLOSED"
)

// ErrInvalidStatus is wrapped by NewTicketStatus for values outside the enum.
var ErrInvalidStatus = errors.New("invalid ticket status")

var validTicketStatuses = map[TicketStatus]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusClosed:     true,
}

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []TicketStatus {
	return []TicketStatus{StatusOpen, StatusInProgress, StatusClosed}
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) IsInProgress() bool {
	return ts == StatusInProgress
}

func (ts TicketStatus) IsClosed() bool {
	return ts == StatusClosed
}

// NewTicketStatus parses s exactly; matching is case-sensitive.
func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return ts, nil
}
