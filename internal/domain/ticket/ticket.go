package ticket

import (
	"errors"
	"fmt"
	"strings"
	"time"

	vo "github.com/orris-inc/supportdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/supportdesk/internal/shared/biztime"
)

// ErrMissingFields is returned when title, category or description is blank.
var ErrMissingFields = errors.New("title, category and description are required")

type Ticket struct {
	id          uint
	title       string
	category    string
	description string
	status      vo.TicketStatus
	createdAt   time.Time
	updatedAt   time.Time
	comments    []*Comment
}

// NewTicket validates and trims the input. New tickets start OPEN with no comments.
func NewTicket(title, category, description string) (*Ticket, error) {
	title = strings.TrimSpace(title)
	category = strings.TrimSpace(category)
	description = strings.TrimSpace(description)
	if title == "" || category == "" || description == "" {
		return nil, ErrMissingFields
	}

	now := biztime.NowUTC()
	return &Ticket{
		title:       title,
		category:    category,
		description: description,
		status:      vo.StatusOpen,
		createdAt:   now,
		updatedAt:   now,
		comments:    []*Comment{},
	}, nil
}

// ReconstructTicket rebuilds a persisted ticket without applying creation rules.
func ReconstructTicket(
	id uint,
	title, category, description string,
	status vo.TicketStatus,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("ticket %d: %w: %q", id, vo.ErrInvalidStatus, status)
	}

	return &Ticket{
		id:          id,
		title:       title,
		category:    category,
		description: description,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		comments:    []*Comment{},
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Category() string {
	return t.category
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

// Comments returns the attached comments, newest first.
func (t *Ticket) Comments() []*Comment {
	out := make([]*Comment, len(t.comments))
	copy(out, t.comments)
	return out
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// AttachComments replaces the loaded comment list. Callers pass newest first.
func (t *Ticket) AttachComments(comments []*Comment) {
	t.comments = make([]*Comment, 0, len(comments))
	for _, c := range comments {
		if c != nil {
			t.comments = append(t.comments, c)
		}
	}
}

// ChangeStatus sets the status and refreshes updatedAt, even when the status is unchanged.
func (t *Ticket) ChangeStatus(status vo.TicketStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", vo.ErrInvalidStatus, status)
	}
	t.status = status
	t.touch()
	return nil
}

// AddComment creates a comment on this ticket and refreshes updatedAt.
func (t *Ticket) AddComment(text string) (*Comment, error) {
	if t.id == 0 {
		return nil, fmt.Errorf("cannot comment on an unsaved ticket")
	}
	c, err := NewComment(t.id, text)
	if err != nil {
		return nil, err
	}
	t.comments = append([]*Comment{c}, t.comments...)
	t.touch()
	return c, nil
}

func (t *Ticket) touch() {
	t.updatedAt = biztime.NotBefore(t.updatedAt, biztime.NowUTC())
}
