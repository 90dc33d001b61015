package integrity

import (
	"merch-manager/core/logger"
	"merch-manager/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/catalog", h.HandleCatalogCheck)
	group.Get("/storage", h.HandleStorageCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs the catalog, storage structure and product image checks. A failing check is reported in place and does not abort the others.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.UserContext()
	report := make(map[string]interface{})

	if cat, err := h.service.CheckCatalog(ctx); err != nil {
		report["catalog"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["catalog"] = cat
	}

	if missing, err := h.service.CheckStructure(ctx); err != nil {
		report["structure"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["structure"] = map[string]interface{}{"status": "ok", "missing": missing}
	}

	if images, err := h.service.CheckImages(ctx); err != nil {
		report["images"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["images"] = images
	}

	return c.JSON(report)
}

// HandleCatalogCheck validates the catalog.
// @Summary Check Catalog
// @Description Reports dangling or nested bundle components, empty bundles, negative quantities, duplicate names and unregistered types.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.CatalogReport "Catalog Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/catalog [get]
func (h *Handler) HandleCatalogCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckCatalog(c.UserContext())
	if err != nil {
		l.Error("Catalog check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !report.OK() {
		l.Warn("Catalog issues detected", zap.Int("issues", len(report.Issues)))
	}
	return c.JSON(report)
}

// HandleStorageCheck checks and optionally fixes the bucket layout.
// @Summary Check Storage
// @Description Checks the image folder exists and every recorded product image is present. Optionally creates the missing folder.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Fix missing folders"
// @Success 200 {object} map[string]interface{} "Storage Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := utils.ToBool(c.Query("fix"))
	ctx := c.UserContext()

	missing, err := h.service.CheckStructure(ctx)
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	status := "checked"
	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to fix missing folders")
			if err := h.service.FixStructure(ctx, missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix structure",
					"details": err.Error(),
					"missing": missing,
				})
			}
			status = "fixed"
		}
	}

	images, err := h.service.CheckImages(ctx)
	if err != nil {
		l.Error("Image check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"status":  status,
		"missing": missing,
		"images":  images,
	})
}
