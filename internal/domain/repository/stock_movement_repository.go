package repository

import "github.com/jhoicas/pregao-api/internal/domain/entity"

// StockMovementRepository define el puerto del libro de movimientos de stock.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListBySKU(sku string, limit, offset int) ([]*entity.StockMovement, error)
}
