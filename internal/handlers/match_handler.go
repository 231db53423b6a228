package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/skill-matcher/internal/models"
	"alfredoptarigan/skill-matcher/internal/services"
)

type MatchHandler struct {
	matcher services.MatcherService
}

func NewMatchHandler(matcher services.MatcherService) *MatchHandler {
	return &MatchHandler{
		matcher: matcher,
	}
}

// HandleMatch handles POST /match-skill. An empty user_skill is legal input
// and simply tends to produce no matches; only a missing field or malformed
// body is rejected.
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	var req models.MatchRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.UserSkill == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_skill is required",
		})
	}

	response, err := h.matcher.MatchSkill(c.UserContext(), *req.UserSkill)
	if err != nil {
		log.Printf("❌ Failed to match skill %q: %v\n", *req.UserSkill, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to match skill",
		})
	}

	return c.JSON(response)
}
