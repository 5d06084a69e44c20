package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"zepth/tender-evaluator/internal/middleware"
	"zepth/tender-evaluator/internal/models"
	"zepth/tender-evaluator/internal/repositories"
)

type ItemHandler struct {
	itemRepo repositories.ItemRepository
}

func NewItemHandler(itemRepo repositories.ItemRepository) *ItemHandler {
	return &ItemHandler{itemRepo: itemRepo}
}

func (h *ItemHandler) currentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	authUser := middleware.CurrentUser(c)
	if authUser == nil {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(authUser.ID)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

// HandleCreate handles POST /items
func (h *ItemHandler) HandleCreate(c *fiber.Ctx) error {
	userID, ok := h.currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req models.ItemRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	item := &models.Item{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.itemRepo.Create(item); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create item",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"item": item})
}

// HandleList handles GET /items
func (h *ItemHandler) HandleList(c *fiber.Ctx) error {
	userID, ok := h.currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	items, err := h.itemRepo.FindByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list items",
		})
	}

	return c.JSON(fiber.Map{"items": items})
}

// HandleGet handles GET /items/:id
func (h *ItemHandler) HandleGet(c *fiber.Ctx) error {
	userID, ok := h.currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID format",
		})
	}

	item, err := h.itemRepo.FindByID(itemID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Item not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch item",
		})
	}

	return c.JSON(fiber.Map{"item": item})
}

// HandleUpdate handles PUT /items/:id
func (h *ItemHandler) HandleUpdate(c *fiber.Ctx) error {
	userID, ok := h.currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID format",
		})
	}

	var req models.ItemRequest
	if !parseAndValidate(c, &req) {
		return nil
	}

	item := &models.Item{
		ID:          itemID,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.itemRepo.Update(item); err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Item not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update item",
		})
	}

	updated, err := h.itemRepo.FindByID(itemID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch item",
		})
	}

	return c.JSON(fiber.Map{"item": updated})
}

// HandleDelete handles DELETE /items/:id
func (h *ItemHandler) HandleDelete(c *fiber.Ctx) error {
	userID, ok := h.currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID format",
		})
	}

	if err := h.itemRepo.Delete(itemID, userID); err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Item not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete item",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
