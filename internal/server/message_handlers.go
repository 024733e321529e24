package server

import (
	"atelier/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AdminGetMessages handles GET /api/admin/messages?status=
// Messages come back newest first; "all" or an empty status means no filter.
func (s *Server) AdminGetMessages(c *fiber.Ctx) error {
	status := models.MessageStatus(c.Query("status"))
	if status == "all" {
		status = ""
	}
	if status != "" && !models.ValidMessageStatus(status) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid status"))
	}

	messages, err := s.messageRepo.List(c.UserContext(), status)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{
		"messages": messages,
	})
}

// AdminUpdateMessageStatus handles PUT /api/admin/messages/:id
func (s *Server) AdminUpdateMessageStatus(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req struct {
		Status models.MessageStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if !models.ValidMessageStatus(req.Status) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid status"))
	}

	msg, err := s.messageRepo.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if msg == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Message", id))
	}

	return c.JSON(msg)
}

// AdminDeleteMessage handles DELETE /api/admin/messages/:id
func (s *Server) AdminDeleteMessage(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.messageRepo.Delete(c.UserContext(), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{
		"message": "Message deleted",
	})
}
