package server

import (
	"encoding/json"
	"strconv"
	"strings"

	"atelier/internal/models"

	"github.com/gofiber/fiber/v2"
)

// clientIdentifier derives the rate-limit/storage identity for a request:
// the first X-Forwarded-For element, then X-Real-IP, then "unknown". The
// app runs behind a reverse proxy, so the socket address is the proxy's.
func clientIdentifier(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first
		}
	}
	if rip := strings.TrimSpace(c.Get("X-Real-IP")); rip != "" {
		return rip
	}
	return "unknown"
}

// truncateRunes caps s to max runes without splitting a multi-byte character.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max])
	}
	return s
}

// parseUintParam parses a numeric route parameter.
func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, models.NewValidationError("Invalid " + name + " parameter")
	}
	return uint(v), nil
}

// statusForError maps AppError codes to HTTP status codes. Integrity
// refusals (duplicate slug, missing fields) surface as 400.
func statusForError(err error) int {
	appErr, ok := err.(*models.AppError)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case "VALIDATION_ERROR", "CONFLICT":
		return fiber.StatusBadRequest
	case "NOT_FOUND":
		return fiber.StatusNotFound
	case "UNAUTHORIZED":
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// respondServiceError writes an error coming out of the service layer.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusForError(err), err)
}

// filterUpdates decodes a JSON body into a column-update map restricted to
// the allowed keys, for partial updates. Unknown keys are dropped rather
// than rejected.
func filterUpdates(body []byte, allowed ...string) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, models.NewValidationError("Invalid request body")
	}
	updates := make(map[string]any)
	for _, key := range allowed {
		if v, ok := raw[key]; ok {
			updates[key] = v
		}
	}
	return updates, nil
}
