package costmap

import (
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/costtree"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/element"
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for cost mapping.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the costmap routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/costmap")
	group.Post("/apply", h.HandleApply)
	group.Post("/matches", h.HandleMatches)
	group.Get("/elements", h.HandleElements)
}

// applyRequest is the body accepted by HandleApply. Elements are optional;
// when absent the configured source is used.
type applyRequest struct {
	Tree     *costtree.Node    `json:"tree"`
	Elements []element.Element `json:"elements,omitempty"`
}

// applyResponse is the body returned by HandleApply.
type applyResponse struct {
	Tree    *costtree.Node      `json:"tree"`
	Summary costtree.MapSummary `json:"summary"`
	Total   float64             `json:"total_chf"`
}

// HandleApply maps a submitted cost tree against model elements.
// @Summary Apply cost mapping
// @Description Maps the submitted cost tree against model elements and returns the annotated tree with rolled-up totals. Elements may be supplied inline; otherwise the configured source is used.
// @Tags costmap
// @Accept json
// @Produce json
// @Param request body applyRequest true "Cost tree plus optional inline elements"
// @Success 200 {object} applyResponse "Mapped tree"
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /costmap/apply [post]
func (h *Handler) HandleApply(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req applyRequest
	if err := c.BodyParser(&req); err != nil || req.Tree == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid cost mapping payload: tree is required",
		})
	}

	result, total, err := h.service.ApplyMapping(c.Context(), req.Tree, req.Elements)
	if err != nil {
		l.Error("Cost mapping failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(applyResponse{
		Tree:    result.Root,
		Summary: result.Summary,
		Total:   total,
	})
}

// HandleMatches returns the bulk match results for every element code.
// @Summary Bulk code matches
// @Description Resolves every element classification code against the match index. Results are cached; pass force=true to bypass the cache.
// @Tags costmap
// @Accept json
// @Produce json
// @Param force query bool false "Bypass the match cache"
// @Success 200 {array} ebkp.MatchResult "Match results"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /costmap/matches [post]
func (h *Handler) HandleMatches(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	force := c.QueryBool("force")

	results, err := h.service.BulkMatches(c.Context(), force)
	if err != nil {
		l.Error("Bulk match failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(results)
}

// HandleElements returns the current model elements.
// @Summary List model elements
// @Description Returns the model elements from the database, or the storage export when no database is available.
// @Tags costmap
// @Accept json
// @Produce json
// @Success 200 {array} element.Element "Model elements"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /costmap/elements [get]
func (h *Handler) HandleElements(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	elements, err := h.service.LoadElements(c.Context())
	if err != nil {
		l.Error("Element load failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(elements)
}
