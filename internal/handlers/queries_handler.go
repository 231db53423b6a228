package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/skill-matcher/internal/repositories"
)

type QueriesHandler struct {
	logRepo repositories.QueryLogRepository
}

func NewQueriesHandler(logRepo repositories.QueryLogRepository) *QueriesHandler {
	return &QueriesHandler{
		logRepo: logRepo,
	}
}

// HandleList handles GET /queries
func (h *QueriesHandler) HandleList(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 {
		limit = 50
	}

	queries, err := h.logRepo.ListQueries(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list queries",
		})
	}

	return c.JSON(fiber.Map{
		"queries": queries,
		"count":   len(queries),
	})
}

// HandleGetQuery handles GET /queries/:id
func (h *QueriesHandler) HandleGetQuery(c *fiber.Ctx) error {
	idParam := c.Params("id")
	queryID, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid query ID format",
		})
	}

	query, err := h.logRepo.FindQueryByID(queryID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Query not found",
		})
	}

	return c.JSON(query)
}
