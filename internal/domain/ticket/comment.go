package ticket

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/orris-inc/supportdesk/internal/shared/biztime"
)

// ErrEmptyComment is returned for comment text that is blank after trimming.
var ErrEmptyComment = errors.New("comment text is required")

// Comment is immutable once created.
type Comment struct {
	id        uint
	ticketID  uint
	text      string
	createdAt time.Time
}

func NewComment(ticketID uint, text string) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	return &Comment{
		ticketID:  ticketID,
		text:      text,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructComment(id, ticketID uint, text string, createdAt time.Time) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	return &Comment{
		id:        id,
		ticketID:  ticketID,
		text:      text,
		createdAt: createdAt,
	}, nil
}

func (c *Comment) ID() uint {
	return c.id
}

func (c *Comment) TicketID() uint {
	return c.ticketID
}

func (c *Comment) Text() string {
	return c.text
}

func (c *Comment) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("comment ID cannot be zero")
	}
	c.id = id
	return nil
}
