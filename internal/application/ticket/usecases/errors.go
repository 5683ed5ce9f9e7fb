package usecases

import (
	"errors"

	"github.com/orris-inc/supportdesk/internal/domain/ticket"
	apperrors "github.com/orris-inc/supportdesk/internal/shared/errors"
)

// Client-facing messages. The browser and SDK clients display these verbatim.
const (
	MsgMissingTicketFields = "Missing required fields: title, category, description"
	MsgInvalidStatus       = "Invalid status. Must be OPEN, IN_PROGRESS, or CLOSED"
	MsgMissingComment      = "Missing required field: comment"
	MsgTicketNotFound      = "Ticket not found"
)

// mapStoreError turns a repository failure into an AppError: not found stays
// visible, anything else becomes a generic internal error.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.GetAppError(err) != nil {
		return err
	}
	if errors.Is(err, ticket.ErrTicketNotFound) {
		return apperrors.NewNotFoundError(MsgTicketNotFound)
	}
	return apperrors.NewInternalError(err)
}
