package server

import (
	"strings"

	"atelier/internal/contact"
	"atelier/internal/middleware"
	"atelier/internal/models"

	"github.com/gofiber/fiber/v2"
)

const maxUserAgentLength = 500

// SubmitContact handles POST /api/contact, the public contact-form pipeline:
// admission control, content-type check, typed decode, validation,
// sanitization, and a single insert. The response contract is
// {success, error?, fieldErrors?}; it is consumed directly by the public
// site and intentionally differs from the admin error body.
func (s *Server) SubmitContact(c *fiber.Ctx) error {
	ctx := c.UserContext()
	clientID := clientIdentifier(c)

	// Admission control runs first so limited clients cost nothing further.
	if s.contactLimiter.IsRateLimited(ctx, clientID) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"success": false,
			"error":   "Too many requests. Please try again later.",
		})
	}

	// Only a declared non-JSON content type is rejected; an absent header
	// falls through to the body decode.
	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))
	if contentType != "" && !strings.Contains(contentType, "application/json") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Content-Type must be application/json.",
		})
	}

	input, ok := contact.DecodeForm(c.Body())
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body.",
		})
	}

	if fieldErrors := contact.ValidateForm(input); fieldErrors.HasErrors() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":     false,
			"error":       "Validation failed. Please check the form.",
			"fieldErrors": fieldErrors,
		})
	}

	clean := contact.SanitizeForm(input)

	msg := &models.ContactMessage{
		FullName:  clean.FullName,
		Email:     clean.Email,
		Subject:   clean.Subject,
		Message:   clean.Message,
		Status:    models.MessageStatusNew,
		IPAddress: &clientID,
	}
	if ua := truncateRunes(c.Get(fiber.HeaderUserAgent), maxUserAgentLength); ua != "" {
		msg.UserAgent = &ua
	}

	// Persistence failures surface immediately; the client retries, not us.
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to persist contact message",
			"error", err, "client_id", clientID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to send message. Please try again.",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
