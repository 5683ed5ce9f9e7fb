package ticket

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/supportdesk/internal/application/ticket/usecases"
	"github.com/orris-inc/supportdesk/internal/domain/ticket"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
	"github.com/orris-inc/supportdesk/internal/shared/utils"
)

// TicketHandler serves the ticket endpoints. Every request opens its own
// store bound to the request context and hands it to the use case.
type TicketHandler struct {
	stores         ticket.StoreOpener
	createTicketUC usecases.CreateTicketExecutor
	listTicketsUC  usecases.ListTicketsExecutor
	getTicketUC    usecases.GetTicketExecutor
	changeStatusUC usecases.ChangeStatusExecutor
	addCommentUC   usecases.AddCommentExecutor
	deleteTicketUC usecases.DeleteTicketExecutor
	logger         logger.Interface
}

func NewTicketHandler(
	stores ticket.StoreOpener,
	createTicketUC usecases.CreateTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	getTicketUC usecases.GetTicketExecutor,
	changeStatusUC usecases.ChangeStatusExecutor,
	addCommentUC usecases.AddCommentExecutor,
	deleteTicketUC usecases.DeleteTicketExecutor,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		stores:         stores,
		createTicketUC: createTicketUC,
		listTicketsUC:  listTicketsUC,
		getTicketUC:    getTicketUC,
		changeStatusUC: changeStatusUC,
		addCommentUC:   addCommentUC,
		deleteTicketUC: deleteTicketUC,
		logger:         logger,
	}
}

// CreateTicket handles POST /tickets
// @Summary Create ticket
// @Description Create a support ticket. New tickets start in OPEN with no comments.
// @Tags Tickets
// @Accept json
// @Produce json
// @Param request body CreateTicketRequest true "Ticket fields"
// @Success 200 {object} dto.TicketDTO
// @Failure 400 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, bindError(err, usecases.MsgMissingTicketFields))
		return
	}

	store := h.stores.Open(c.Request.Context())
	result, err := h.createTicketUC.Execute(c.Request.Context(), store, req.ToCommand())
	if err != nil {
		h.logger.Errorw("failed to create ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// ListTickets handles GET /tickets
// @Summary List tickets
// @Description List every ticket, newest first, each with its comments newest first
// @Tags Tickets
// @Produce json
// @Success 200 {array} dto.TicketDTO
// @Failure 500 {object} utils.ErrorBody
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	store := h.stores.Open(c.Request.Context())
	result, err := h.listTicketsUC.Execute(c.Request.Context(), store)
	if err != nil {
		h.logger.Errorw("failed to list tickets", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// GetTicket handles GET /tickets/:id
// @Summary Get ticket
// @Description Get a ticket with its comments, newest first
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} dto.TicketDTO
// @Failure 400 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	store := h.stores.Open(c.Request.Context())
	result, err := h.getTicketUC.Execute(c.Request.Context(), store, usecases.GetTicketQuery{TicketID: ticketID})
	if err != nil {
		h.logger.Errorw("failed to get ticket", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// UpdateStatus handles PUT /tickets/:id/status?status=VALUE
// @Summary Update ticket status
// @Description Move a ticket to OPEN, IN_PROGRESS or CLOSED. Any status may follow any other.
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Param status query string true "New status" Enums(OPEN, IN_PROGRESS, CLOSED)
// @Success 200 {object} utils.MessageBody
// @Failure 400 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /tickets/{id}/status [put]
func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.ChangeStatusCommand{
		TicketID: ticketID,
		Status:   c.Query(statusQueryParameter),
	}

	store := h.stores.Open(c.Request.Context())
	if _, err := h.changeStatusUC.Execute(c.Request.Context(), store, cmd); err != nil {
		h.logger.Errorw("failed to update ticket status", "ticket_id", ticketID, "status", cmd.Status, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.MessageResponse(c, msgStatusUpdated)
}

// AddComment handles POST /tickets/:id/comment
// @Summary Add comment
// @Description Append a comment to a ticket and refresh its updated time
// @Tags Tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param request body AddCommentRequest true "Comment text"
// @Success 200 {object} utils.MessageBody
// @Failure 400 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /tickets/{id}/comment [post]
func (h *TicketHandler) AddComment(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add comment", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, bindError(err, usecases.MsgMissingComment))
		return
	}

	cmd := usecases.AddCommentCommand{
		TicketID: ticketID,
		Comment:  req.Comment,
	}

	store := h.stores.Open(c.Request.Context())
	if _, err := h.addCommentUC.Execute(c.Request.Context(), store, cmd); err != nil {
		h.logger.Errorw("failed to add comment", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.MessageResponse(c, msgCommentAdded)
}

// DeleteTicket handles DELETE /tickets/:id
// @Summary Delete ticket
// @Description Delete a ticket together with all of its comments
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.MessageBody
// @Failure 400 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /tickets/{id} [delete]
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	store := h.stores.Open(c.Request.Context())
	if err := h.deleteTicketUC.Execute(c.Request.Context(), store, usecases.DeleteTicketCommand{TicketID: ticketID}); err != nil {
		h.logger.Errorw("failed to delete ticket", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.MessageResponse(c, msgTicketDeleted)
}

func parseTicketID(c *gin.Context) (uint, error) {
	return utils.ParseIDParam(c, "id", msgInvalidTicketID)
}
