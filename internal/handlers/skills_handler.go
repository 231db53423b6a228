package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/skill-matcher/internal/models"
	"alfredoptarigan/skill-matcher/internal/services"
)

type SkillsHandler struct {
	holder   *services.StoreHolder
	embedder services.Embedder
	index    services.SkillIndexService
}

func NewSkillsHandler(
	holder *services.StoreHolder,
	embedder services.Embedder,
	index services.SkillIndexService,
) *SkillsHandler {
	return &SkillsHandler{
		holder:   holder,
		embedder: embedder,
		index:    index,
	}
}

// HandleList handles GET /skills
func (h *SkillsHandler) HandleList(c *fiber.Ctx) error {
	names := h.holder.Current().Names()

	return c.JSON(models.SkillListResponse{
		Skills: names,
		Count:  len(names),
	})
}

// HandleSimilar handles GET /skills/similar. Available only when the qdrant
// index is enabled.
func (h *SkillsHandler) HandleSimilar(c *fiber.Ctx) error {
	if h.index == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Vector index is not enabled",
		})
	}

	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "q is required",
		})
	}

	limit := c.QueryInt("limit", 5)
	if limit < 1 {
		limit = 5
	}

	embedding, err := h.embedder.EmbedText(c.UserContext(), strings.ToLower(query))
	if err != nil {
		log.Printf("❌ Failed to embed query %q: %v\n", query, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to embed query",
		})
	}

	results, err := h.index.SearchSimilar(c.UserContext(), embedding, limit)
	if err != nil {
		log.Printf("❌ Failed to search vector index: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search vector index",
		})
	}

	return c.JSON(models.SimilarSkillsResponse{
		Query:   query,
		Results: results,
	})
}
