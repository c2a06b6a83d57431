package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-workflow/internal/api/dto"
	"github.com/spec-kit/ticket-workflow/internal/service"
	apperrors "github.com/spec-kit/ticket-workflow/pkg/util/errorutil"
)

// WorkersHandler exposes the assign/resolve/verify transitions per worker.
type WorkersHandler struct {
	service *service.TicketService
}

// NewWorkersHandler constructs handler.
func NewWorkersHandler(ticketService *service.TicketService) *WorkersHandler {
	return &WorkersHandler{service: ticketService}
}

// ListWorkers GET /workers.
func (h *WorkersHandler) ListWorkers(c *fiber.Ctx) error {
	workers := h.service.ListWorkers(c.UserContext())
	items := make([]dto.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		items = append(items, dto.WorkerResponse{
			Name:            w.Name,
			Role:            w.Role,
			CurrentTicketID: w.CurrentTicketID,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Assign POST /workers/:name/assign.
func (h *WorkersHandler) Assign(c *fiber.Ctx) error {
	assignment, err := h.service.AssignTicket(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AssignmentResponse{
		Worker: assignment.Worker,
		Role:   assignment.Role,
		Ticket: ticketResponse(assignment.Ticket),
	}})
}

// Resolve POST /workers/:name/resolve.
func (h *WorkersHandler) Resolve(c *fiber.Ctx) error {
	var req dto.ResolveTicketRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	ticket, err := h.service.ResolveTicket(c.UserContext(), c.Params("name"), req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// Verify POST /workers/:name/verify.
func (h *WorkersHandler) Verify(c *fiber.Ctx) error {
	ticket, err := h.service.VerifyTicket(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}
