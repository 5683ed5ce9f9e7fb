package mappers

import (
	"fmt"

	"github.com/orris-inc/supportdesk/internal/domain/ticket"
	vo "github.com/orris-inc/supportdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/supportdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/supportdesk/internal/shared/biztime"
)

// TicketMapper handles the conversion between ticket domain entities and persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	CommentToModel(c *ticket.Comment) *models.CommentModel
	CommentToDomain(model *models.CommentModel) (*ticket.Comment, error)
}

// TicketMapperImpl is the concrete implementation of TicketMapper.
type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:          t.ID(),
		Title:       t.Title(),
		Category:    t.Category(),
		Description: t.Description(),
		Status:      t.Status().String(),
		CreatedAt:   biztime.ToMillis(t.CreatedAt()),
		UpdatedAt:   biztime.ToMillis(t.UpdatedAt()),
	}
}

// ToDomain rejects rows whose status is outside the three known values.
func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	if model == nil {
		return nil, fmt.Errorf("ticket model is nil")
	}

	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Title,
		model.Category,
		model.Description,
		status,
		biztime.FromMillis(model.CreatedAt),
		biztime.FromMillis(model.UpdatedAt),
	)
}

func (m *TicketMapperImpl) CommentToModel(c *ticket.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:        c.ID(),
		TicketID:  c.TicketID(),
		Comment:   c.Text(),
		CreatedAt: biztime.ToMillis(c.CreatedAt()),
	}
}

func (m *TicketMapperImpl) CommentToDomain(model *models.CommentModel) (*ticket.Comment, error) {
	if model == nil {
		return nil, fmt.Errorf("comment model is nil")
	}

	return ticket.ReconstructComment(
		model.ID,
		model.TicketID,
		model.Comment,
		biztime.FromMillis(model.CreatedAt),
	)
}
