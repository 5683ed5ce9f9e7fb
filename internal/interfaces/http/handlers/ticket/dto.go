package ticket

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/orris-inc/supportdesk/internal/application/ticket/usecases"
	apperrors "github.com/orris-inc/supportdesk/internal/shared/errors"
)

const (
	msgInvalidTicketID   = "Invalid ticket ID"
	msgInvalidBody       = "Invalid request body"
	msgStatusUpdated     = "Ticket status updated successfully"
	msgCommentAdded      = "Comment added successfully"
	msgTicketDeleted     = "Ticket deleted successfully"
	statusQueryParameter = "status"
)

type CreateTicketRequest struct {
	Title       string `json:"title" binding:"required" example:"Login broken"`
	Category    string `json:"category" binding:"required" example:"bug"`
	Description string `json:"description" binding:"required" example:"Cannot log in"`
}

func (r *CreateTicketRequest) ToCommand() usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Title:       r.Title,
		Category:    r.Category,
		Description: r.Description,
	}
}

type AddCommentRequest struct {
	Comment string `json:"comment" binding:"required" example:"Investigating"`
}

// bindError distinguishes a body that parsed but lacks required fields from
// one that is not JSON at all.
func bindError(err error, missingMessage string) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.NewValidationError(missingMessage)
	}
	return apperrors.NewValidationError(msgInvalidBody)
}
