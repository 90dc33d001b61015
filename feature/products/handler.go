package products

import (
	"errors"

	"merch-manager/core/catalog"
	"merch-manager/core/logger"
	"merch-manager/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the product routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/products")
	group.Get("/types", h.HandleTypes)
	group.Get("/all", h.HandleList)
	group.Post("/create-item", h.HandleCreateItem)
	group.Post("/create-bundle", h.HandleCreateBundle)
	group.Patch("/item/:id", h.HandleUpdateItem)
	group.Patch("/bundle/:id", h.HandleUpdateBundle)
	group.Get("/:id", h.HandleGet)
	group.Delete("/:id", h.HandleDelete)
	group.Post("/:id/image", h.HandleUploadImage)
	group.Get("/:id/image", h.HandleGetImage)
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrNoImage):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidProduct),
		errors.Is(err, ErrInvalidComponent),
		errors.Is(err, ErrInvalidCrop),
		errors.Is(err, catalog.ErrInvalidProductType):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := statusFor(err)
	l := logger.WithRayID(h.service.logger, c)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Debug(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// HandleTypes lists the accepted product types.
// @Summary List Product Types
// @Description Returns the product types accepted by the catalog, including "bundle".
// @Tags products
// @Produce json
// @Success 200 {array} string "Product types"
// @Router /products/types [get]
func (h *Handler) HandleTypes(c *fiber.Ctx) error {
	return c.JSON(h.service.Types())
}

// HandleList returns the catalog.
// @Summary List Products
// @Description Returns every product with its variant records or bundle recipe, optionally filtered by name, id or type.
// @Tags products
// @Produce json
// @Param search query string false "Case-insensitive filter on name, id or type"
// @Success 200 {array} catalog.Entry "Catalog"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /products/all [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	entries, err := h.service.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return h.fail(c, "Failed to list products", err)
	}
	return c.JSON(entries)
}

// HandleGet returns one product.
// @Summary Get Product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} catalog.Entry "Product"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /products/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	entry, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Failed to get product", err)
	}
	return c.JSON(entry)
}

// HandleCreateItem creates an item product.
// @Summary Create Item Product
// @Tags products
// @Accept json
// @Produce json
// @Param body body CreateItemRequest true "Product and variants"
// @Success 201 {object} catalog.Entry "Created"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /products/create-item [post]
func (h *Handler) HandleCreateItem(c *fiber.Ctx) error {
	var req CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entry, err := h.service.CreateItem(c.UserContext(), req)
	if err != nil {
		return h.fail(c, "Failed to create item product", err)
	}

	logger.WithRayID(h.service.logger, c).Info("Created item product",
		zap.String("product_id", entry.Product.ProductID),
		zap.Int("variants", len(entry.Items)))
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// HandleCreateBundle creates a bundle product.
// @Summary Create Bundle Product
// @Tags products
// @Accept json
// @Produce json
// @Param body body CreateBundleRequest true "Product and recipe"
// @Success 201 {object} catalog.Entry "Created"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /products/create-bundle [post]
func (h *Handler) HandleCreateBundle(c *fiber.Ctx) error {
	var req CreateBundleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entry, err := h.service.CreateBundle(c.UserContext(), req)
	if err != nil {
		return h.fail(c, "Failed to create bundle product", err)
	}

	logger.WithRayID(h.service.logger, c).Info("Created bundle product",
		zap.String("product_id", entry.Product.ProductID),
		zap.Int("components", len(entry.Components())))
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// HandleUpdateItem patches an item product.
// @Summary Update Item Product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param body body UpdateItemRequest true "Changes"
// @Success 200 {object} catalog.Entry "Updated"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /products/item/{id} [patch]
func (h *Handler) HandleUpdateItem(c *fiber.Ctx) error {
	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entry, err := h.service.UpdateItem(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return h.fail(c, "Failed to update item product", err)
	}
	return c.JSON(entry)
}

// HandleUpdateBundle patches a bundle product.
// @Summary Update Bundle Product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param body body UpdateBundleRequest true "Changes"
// @Success 200 {object} catalog.Entry "Updated"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /products/bundle/{id} [patch]
func (h *Handler) HandleUpdateBundle(c *fiber.Ctx) error {
	var req UpdateBundleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entry, err := h.service.UpdateBundle(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return h.fail(c, "Failed to update bundle product", err)
	}
	return c.JSON(entry)
}

// HandleDelete deletes a product.
// @Summary Delete Product
// @Tags products
// @Param id path string true "Product ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /products/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, "Failed to delete product", err)
	}

	logger.WithRayID(h.service.logger, c).Info("Deleted product", zap.String("product_id", id))
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleUploadImage stores a cropped product image.
// @Summary Upload Product Image
// @Description Crops the upload with a rectangle given in preview coordinates, stores it as JPEG with a 300px thumbnail.
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID"
// @Param image formData file true "Image file"
// @Param x formData number false "Crop left"
// @Param y formData number false "Crop top"
// @Param width formData number false "Crop width"
// @Param height formData number false "Crop height"
// @Param display_width formData number false "Preview width the rectangle was drawn on"
// @Param display_height formData number false "Preview height the rectangle was drawn on"
// @Success 200 {object} catalog.Entry "Updated"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /products/{id}/image [post]
func (h *Handler) HandleUploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return h.fail(c, "Failed to open upload", err)
	}
	defer f.Close()

	crop := CropRect{
		X:             utils.ToFloat(c.FormValue("x")),
		Y:             utils.ToFloat(c.FormValue("y")),
		Width:         utils.ToFloat(c.FormValue("width")),
		Height:        utils.ToFloat(c.FormValue("height")),
		DisplayWidth:  utils.ToFloat(c.FormValue("display_width")),
		DisplayHeight: utils.ToFloat(c.FormValue("display_height")),
	}

	entry, err := h.service.UploadImage(c.UserContext(), c.Params("id"), f, crop)
	if err != nil {
		return h.fail(c, "Failed to store product image", err)
	}
	return c.JSON(entry)
}

// HandleGetImage streams a product image.
// @Summary Get Product Image
// @Tags products
// @Produce jpeg
// @Param id path string true "Product ID"
// @Param thumb query boolean false "Return the thumbnail"
// @Success 200 {file} binary "JPEG"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /products/{id}/image [get]
func (h *Handler) HandleGetImage(c *fiber.Ctx) error {
	rc, err := h.service.OpenImage(c.UserContext(), c.Params("id"), utils.ToBool(c.Query("thumb")))
	if err != nil {
		return h.fail(c, "Failed to open product image", err)
	}
	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.SendStream(rc)
}
