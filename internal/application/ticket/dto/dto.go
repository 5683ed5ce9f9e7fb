package dto

import (
	"github.com/orris-inc/supportdesk/internal/domain/ticket"
	"github.com/orris-inc/supportdesk/internal/shared/mapper"
)

// TicketDTO is the wire representation of a ticket. Comments are plain text,
// newest first.
type TicketDTO struct {
	ID          uint     `json:"id" example:"1"`
	Title       string   `json:"title" example:"Login broken"`
	Category    string   `json:"category" example:"bug"`
	Description string   `json:"description" example:"Cannot log in"`
	Status      string   `json:"status" example:"OPEN" enums:"OPEN,IN_PROGRESS,CLOSED"`
	Comments    []string `json:"comments"`
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}

	return &TicketDTO{
		ID:          t.ID(),
		Title:       t.Title(),
		Category:    t.Category(),
		Description: t.Description(),
		Status:      t.Status().String(),
		Comments:    mapper.MapSlice(t.Comments(), (*ticket.Comment).Text),
	}
}

func ToTicketDTOs(tickets []*ticket.Ticket) []*TicketDTO {
	return mapper.MapSlice(tickets, ToTicketDTO)
}
