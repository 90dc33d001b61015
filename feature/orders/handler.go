package orders

import (
	"errors"

	"merch-manager/core/catalog"
	"merch-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for orders.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the order routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/orders")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Get("/inventory-needs", h.HandleInventoryNeeds)
	group.Get("/:id", h.HandleGet)
	group.Patch("/:id/status", h.HandleUpdateStatus)
	group.Get("/:id/invoice", h.HandleInvoice)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidOrder), errors.Is(err, catalog.ErrInvalidStatus):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		logger.WithRayID(h.service.logger, c).Error(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// HandleList lists orders.
// @Summary List Orders
// @Description Returns orders, newest first, filtered by a search on customer name, email or order id and by status.
// @Tags orders
// @Produce json
// @Param search query string false "Case-insensitive search"
// @Param status query string false "pending, confirmed, completed, cancelled or all"
// @Success 200 {array} catalog.Order "Orders"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /orders [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	orders, err := h.service.List(c.UserContext(), c.Query("search"), c.Query("status"))
	if err != nil {
		return h.fail(c, "Failed to list orders", err)
	}
	return c.JSON(orders)
}

// HandleGet returns one order.
// @Summary Get Order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} catalog.Order "Order"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /orders/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	o, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Failed to get order", err)
	}
	return c.JSON(o)
}

// HandleCreate creates an order.
// @Summary Create Order
// @Tags orders
// @Accept json
// @Produce json
// @Param body body CreateOrderRequest true "Order"
// @Success 201 {object} catalog.Order "Created"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /orders [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	o, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return h.fail(c, "Failed to create order", err)
	}

	logger.WithRayID(h.service.logger, c).Info("Order created",
		zap.String("order_id", o.OrderID),
		zap.Int("lines", len(o.Items)),
		zap.String("total", o.TotalAmount.StringFixed(2)))
	return c.Status(fiber.StatusCreated).JSON(o)
}

type statusRequest struct {
	Status string `json:"status"`
}

// HandleUpdateStatus changes the status of an order.
// @Summary Update Order Status
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param body body statusRequest true "New status"
// @Success 200 {object} catalog.Order "Updated"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /orders/{id}/status [patch]
func (h *Handler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	o, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return h.fail(c, "Failed to update order status", err)
	}

	logger.WithRayID(h.service.logger, c).Info("Order status changed",
		zap.String("order_id", o.OrderID), zap.String("status", string(o.Status)))
	return c.JSON(o)
}

// HandleInventoryNeeds computes stock needs for open orders.
// @Summary Inventory Needs
// @Description Aggregates demand of every non-cancelled order against catalog stock, with bundles decomposed into components.
// @Tags orders
// @Produce json
// @Success 200 {object} reconcile.Report "Needs report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /orders/inventory-needs [get]
func (h *Handler) HandleInventoryNeeds(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.InventoryNeeds(c.UserContext())
	if err != nil {
		return h.fail(c, "Inventory needs computation failed", err)
	}

	l.Info("Inventory needs computed",
		zap.Int("products", report.Summary.TotalProducts),
		zap.Int("short", report.Summary.ProductsWithShortage),
		zap.Int("shortage", report.Summary.TotalShortage))
	return c.JSON(report)
}

// HandleInvoice renders the invoice PDF of an order.
// @Summary Order Invoice
// @Tags orders
// @Produce application/pdf
// @Param id path string true "Order ID"
// @Success 200 {file} binary "PDF"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /orders/{id}/invoice [get]
func (h *Handler) HandleInvoice(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.service.Invoice(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "Failed to render invoice", err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="invoice-`+id+`.pdf"`)
	return c.Send(pdf)
}
