package memory

import (
	"sync"

	"github.com/jhoicas/pregao-api/internal/domain/entity"
	"github.com/jhoicas/pregao-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos en memoria, en orden de inserción.
// Los listados devuelven los más recientes primero.
type StockMovementRepo struct {
	mu        sync.RWMutex
	movements []*entity.StockMovement
}

// NewStockMovementRepository construye el libro de movimientos en memoria.
func NewStockMovementRepository() *StockMovementRepo {
	return &StockMovementRepo{}
}

// Create agrega un movimiento al libro.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *movement
	r.movements = append(r.movements, &cp)
	return nil
}

// ListByProduct devuelve los movimientos de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(func(m *entity.StockMovement) bool { return m.ProductID == productID }, limit, offset)
}

// ListBySKU devuelve los movimientos de una SKU en todas las bodegas, más recientes primero.
func (r *StockMovementRepo) ListBySKU(sku string, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(func(m *entity.StockMovement) bool { return m.SKU == sku }, limit, offset)
}

func (r *StockMovementRepo) list(match func(*entity.StockMovement) bool, limit, offset int) ([]*entity.StockMovement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []*entity.StockMovement
	for i := len(r.movements) - 1; i >= 0; i-- {
		if match(r.movements[i]) {
			cp := *r.movements[i]
			matched = append(matched, &cp)
		}
	}
	if offset >= len(matched) {
		return []*entity.StockMovement{}, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}
