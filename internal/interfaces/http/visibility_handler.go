package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pregao-api/internal/application/dto"
	"github.com/jhoicas/pregao-api/internal/application/visibility"
	"github.com/jhoicas/pregao-api/internal/domain"
	"github.com/jhoicas/pregao-api/internal/domain/repository"
)

// VisibilityHandler expone las bodegas y productos visibles para el usuario
// autenticado según su rol y la jerarquía de empresas.
type VisibilityHandler struct {
	resolver *visibility.Resolver
	users    repository.UserRepository
}

// NewVisibilityHandler construye el handler.
func NewVisibilityHandler(resolver *visibility.Resolver, users repository.UserRepository) *VisibilityHandler {
	return &VisibilityHandler{resolver: resolver, users: users}
}

// Warehouses godoc
// @Summary      Bodegas visibles para el usuario autenticado
// @Tags         visibility
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WarehouseListResponse
// @Failure      409  {object}  dto.ErrorResponse  "COMPANY_TREE_INVALID"
// @Router       /api/visibility/warehouses [get]
func (h *VisibilityHandler) Warehouses(c *fiber.Ctx) error {
	user, err := h.users.GetByID(GetUserID(c))
	if err != nil || user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no encontrado"})
	}
	list, err := h.resolver.VisibleWarehouses(user)
	if err != nil {
		return visibilityError(c, err)
	}
	out := dto.WarehouseListResponse{Items: make([]dto.WarehouseResponse, 0, len(list))}
	for _, w := range list {
		out.Items = append(out.Items, dto.WarehouseResponse{
			ID:        w.ID,
			CompanyID: w.CompanyID,
			Name:      w.Name,
			Location:  w.Location,
			Type:      w.Type,
			CreatedAt: w.CreatedAt,
			UpdatedAt: w.UpdatedAt,
		})
	}
	return c.JSON(out)
}

// Products godoc
// @Summary      Productos publicados en las bodegas visibles
// @Tags         visibility
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Failure      409  {object}  dto.ErrorResponse  "COMPANY_TREE_INVALID"
// @Router       /api/visibility/products [get]
func (h *VisibilityHandler) Products(c *fiber.Ctx) error {
	user, err := h.users.GetByID(GetUserID(c))
	if err != nil || user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no encontrado"})
	}
	list, err := h.resolver.VisibleProducts(user)
	if err != nil {
		return visibilityError(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		packaging := make([]dto.PackagingPayload, 0, len(p.Packaging))
		for _, pk := range p.Packaging {
			packaging = append(packaging, dto.PackagingPayload{
				ID:               pk.ID,
				Name:             pk.Name,
				Unit:             pk.Unit,
				ConversionFactor: pk.ConversionFactor,
				Barcode:          pk.Barcode,
				Price:            pk.Price,
			})
		}
		out = append(out, dto.ProductResponse{
			ID:          p.ID,
			CompanyID:   p.CompanyID,
			WarehouseID: p.WarehouseID,
			SKU:         p.SKU,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Kind:        p.Kind,
			TrackStock:  p.TrackStock,
			Unit:        p.Unit,
			Packaging:   packaging,
			ImageURL:    p.ImageURL,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	return c.JSON(out)
}

// visibilityError mapea errores del resolver: un árbol malformado es un error
// de configuración, no de la petición.
func visibilityError(c *fiber.Ctx, err error) error {
	var cycle *domain.CompanyCycleError
	if errors.As(err, &cycle) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "COMPANY_TREE_INVALID", Message: cycle.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
