package handlers

import (
	"github.com/gofiber/fiber/v2"

	"zepth/tender-evaluator/internal/models"
	"zepth/tender-evaluator/internal/services"
)

type ChatHandler struct {
	workflowService services.WorkflowService
}

func NewChatHandler(workflowService services.WorkflowService) *ChatHandler {
	return &ChatHandler{workflowService: workflowService}
}

// HandleChat handles POST /chat. The message is relayed to the external
// workflow API and the reply passed back unchanged.
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req models.ChatRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	reply, err := h.workflowService.SendMessage(c.Context(), req.Message)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to reach workflow API",
		})
	}

	return c.JSON(models.ChatResponse{Reply: reply})
}
