package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pregao-api/internal/application/dto"
	"github.com/jhoicas/pregao-api/internal/application/inventory"
	"github.com/jhoicas/pregao-api/internal/domain"
)

// InventoryHandler maneja transferencias, ajustes de nivel, distribución por
// SKU, libro de movimientos y el reporte PDF.
type InventoryHandler struct {
	transfer *inventory.TransferUseCase
	stock    *inventory.StockUseCase
	report   *inventory.StockReportUseCase
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(
	transfer *inventory.TransferUseCase,
	stock *inventory.StockUseCase,
	report *inventory.StockReportUseCase,
) *InventoryHandler {
	return &InventoryHandler{transfer: transfer, stock: stock, report: report}
}

// Transfer godoc
// @Summary      Transferir stock entre bodegas
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferStockRequest  true  "source_product_id, to_warehouse_id, quantity"
// @Success      204   "transferencia aplicada"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "TRANSFER_EXCEEDS_STOCK"
// @Failure      503   {object}  dto.ErrorResponse  "LOCK_TIMEOUT, reintentable"
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SourceProductID == "" || in.ToWarehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "source_product_id y to_warehouse_id son requeridos"})
	}
	err := h.transfer.Transfer(c.Context(), inventory.TransferInput{
		SourceProductID: in.SourceProductID,
		ToWarehouseID:   in.ToWarehouseID,
		Quantity:        in.Quantity,
		UserID:          GetUserID(c),
	})
	if err != nil {
		return inventoryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Adjust godoc
// @Summary      Fijar el nivel de stock de un producto
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "new_level"
// @Success      200   {object}  dto.StockRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/stock [put]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.stock.Adjust(c.Context(), id, in.NewLevel, GetUserID(c))
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(out)
}

// StockBySKU godoc
// @Summary      Distribución de una SKU entre bodegas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.StockBySKUResponse
// @Router       /api/inventory/stock/{sku} [get]
func (h *InventoryHandler) StockBySKU(c *fiber.Ctx) error {
	sku := c.Params("sku")
	if sku == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SKU", Message: "sku es requerido"})
	}
	out, err := h.stock.StockBySKU(sku)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Libro de movimientos de una SKU
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        sku     path   string  true   "SKU"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.MovementResponse
// @Router       /api/inventory/movements/{sku} [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	sku := c.Params("sku")
	if sku == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SKU", Message: "sku es requerido"})
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.stock.Movements(sku, limit, offset)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de distribución de una SKU
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        sku  path  string  true  "SKU"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{sku}/report [get]
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	sku := c.Params("sku")
	if sku == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SKU", Message: "sku es requerido"})
	}
	pdfBytes, err := h.report.Generate(c.Context(), sku)
	if err != nil {
		return inventoryError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock-`+sku+`.pdf"`)
	return c.Send(pdfBytes)
}

// inventoryError mapea los errores de inventario a respuestas HTTP.
func inventoryError(c *fiber.Ctx, err error) error {
	var exceeds *domain.TransferExceedsStockError
	if errors.As(err, &exceeds) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TRANSFER_EXCEEDS_STOCK", Message: exceeds.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "cantidad inválida"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "operación inválida"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o registro de stock no encontrado"})
	case errors.Is(err, domain.ErrLockTimeout):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "LOCK_TIMEOUT", Message: "inventario ocupado, reintente"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
