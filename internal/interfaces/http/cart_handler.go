package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pregao-api/internal/application/cart"
	"github.com/jhoicas/pregao-api/internal/application/dto"
	"github.com/jhoicas/pregao-api/internal/domain"
)

// CartHandler maneja el carrito de la sesión autenticada (cartID = UserID).
type CartHandler struct {
	svc *cart.Service
}

// NewCartHandler construye el handler del carrito.
func NewCartHandler(svc *cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

// Get godoc
// @Summary      Ver carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.svc.Get(GetUserID(c)))
}

// AddLine godoc
// @Summary      Agregar línea al carrito
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddLineRequest  true  "product_id, quantity, packaging_id opcional"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK con max_quantity"
// @Failure      503   {object}  dto.ErrorResponse  "LOCK_TIMEOUT, reintentable"
// @Router       /api/cart/lines [post]
func (h *CartHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cartID := GetUserID(c)
	if err := h.svc.AddLine(c.Context(), cartID, in); err != nil {
		return cartError(c, err)
	}
	return c.JSON(h.svc.Get(cartID))
}

// UpdateLine godoc
// @Summary      Fijar cantidad de una línea (≤ 0 la elimina)
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        key   path  string  true  "Clave de la línea"
// @Param        body  body  dto.UpdateLineRequest  true  "quantity"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK con max_quantity"
// @Router       /api/cart/lines/{key} [put]
func (h *CartHandler) UpdateLine(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_KEY", Message: "clave de línea requerida"})
	}
	var in dto.UpdateLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cartID := GetUserID(c)
	if err := h.svc.UpdateLineQuantity(c.Context(), cartID, key, in.Quantity); err != nil {
		return cartError(c, err)
	}
	return c.JSON(h.svc.Get(cartID))
}

// RemoveLine godoc
// @Summary      Eliminar una línea (idempotente)
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        key  path  string  true  "Clave de la línea"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart/lines/{key} [delete]
func (h *CartHandler) RemoveLine(c *fiber.Ctx) error {
	cartID := GetUserID(c)
	h.svc.RemoveLine(cartID, c.Params("key"))
	return c.JSON(h.svc.Get(cartID))
}

// Clear godoc
// @Summary      Vaciar el carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	cartID := GetUserID(c)
	h.svc.Clear(cartID)
	return c.JSON(h.svc.Get(cartID))
}

// cartError mapea los errores del motor de reservas a respuestas HTTP.
func cartError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		maxQty := insufficient.MaxQuantity
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:        "INSUFFICIENT_STOCK",
			Message:     insufficient.Error(),
			MaxQuantity: &maxQty,
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "cantidad inválida"})
	case errors.Is(err, domain.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ITEM_NOT_FOUND", Message: "ítem no encontrado en el carrito"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o embalaje no encontrado"})
	case errors.Is(err, domain.ErrLockTimeout):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "LOCK_TIMEOUT", Message: "inventario ocupado, reintente"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
