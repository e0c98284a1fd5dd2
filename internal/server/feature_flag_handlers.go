package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags godoc
// @Summary Get feature flag snapshot
// @Description Returns evaluated feature flags for the caller. Percentage rollouts are evaluated per user; anonymous callers see the zero-user evaluation.
// @Tags flags
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID, _ := s.optionalUserID(c)
	return c.JSON(fiber.Map{
		"flags": s.flags.Snapshot(userID),
	})
}
