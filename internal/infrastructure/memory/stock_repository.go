package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/pregao-api/internal/domain"
	"github.com/jhoicas/pregao-api/internal/domain/entity"
	"github.com/jhoicas/pregao-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación en memoria del almacén de inventario. Un solo mutex
// cubre todos los registros: UpsertMany aplica débito y crédito bajo la misma
// sección crítica, así un lector nunca observa la transferencia a medias.
type StockRepo struct {
	mu    sync.RWMutex
	byKey map[string]*entity.StockRecord // productID|warehouseID
}

// NewStockRepository construye el repositorio en memoria de stock.
func NewStockRepository() *StockRepo {
	return &StockRepo{byKey: make(map[string]*entity.StockRecord)}
}

func stockKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

// Get obtiene el registro de un (producto, bodega), o nil si no existe.
func (r *StockRepo) Get(productID, warehouseID string) (*entity.StockRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byKey[stockKey(productID, warehouseID)]
	if !ok {
		return nil, nil
	}
	return cloneRecord(rec), nil
}

// GetByProduct localiza el registro del producto sin conocer la bodega.
func (r *StockRepo) GetByProduct(productID string) (*entity.StockRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.byKey {
		if rec.ProductID == productID {
			return cloneRecord(rec), nil
		}
	}
	return nil, nil
}

// ListBySKU devuelve los registros de esa SKU en todas las bodegas.
func (r *StockRepo) ListBySKU(sku string) ([]*entity.StockRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.StockRecord
	for _, rec := range r.byKey {
		if rec.SKU == sku {
			out = append(out, cloneRecord(rec))
		}
	}
	return out, nil
}

// GetBySKUAndWarehouse localiza el registro de esa SKU en una bodega.
func (r *StockRepo) GetBySKUAndWarehouse(sku, warehouseID string) (*entity.StockRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.byKey {
		if rec.SKU == sku && rec.WarehouseID == warehouseID {
			return cloneRecord(rec), nil
		}
	}
	return nil, nil
}

// ListByWarehouse devuelve todos los registros de una bodega.
func (r *StockRepo) ListByWarehouse(warehouseID string) ([]*entity.StockRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.StockRecord
	for _, rec := range r.byKey {
		if rec.WarehouseID == warehouseID {
			out = append(out, cloneRecord(rec))
		}
	}
	return out, nil
}

// Upsert inserta o reemplaza el registro de un (producto, bodega).
func (r *StockRepo) Upsert(record *entity.StockRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upsertLocked(record)
	return nil
}

// UpsertMany aplica varios registros como una unidad.
func (r *StockRepo) UpsertMany(records ...*entity.StockRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		r.upsertLocked(rec)
	}
	return nil
}

func (r *StockRepo) upsertLocked(record *entity.StockRecord) {
	r.byKey[stockKey(record.ProductID, record.WarehouseID)] = cloneRecord(record)
}

// Adjust fija el nivel a newLevel y devuelve el registro resultante.
func (r *StockRepo) Adjust(productID, warehouseID string, newLevel int64) (*entity.StockRecord, error) {
	if newLevel < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byKey[stockKey(productID, warehouseID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	rec.Quantity = newLevel
	rec.UpdatedAt = time.Now()
	return cloneRecord(rec), nil
}

// Debit descuenta amount unidades base; nunca deja el nivel negativo.
func (r *StockRepo) Debit(productID, warehouseID string, amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidQuantity
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byKey[stockKey(productID, warehouseID)]
	if !ok {
		return domain.ErrNotFound
	}
	if rec.Quantity < amount {
		return domain.ErrInsufficientStock
	}
	rec.Quantity -= amount
	rec.UpdatedAt = time.Now()
	return nil
}

// Credit suma amount unidades base al registro.
func (r *StockRepo) Credit(productID, warehouseID string, amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidQuantity
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byKey[stockKey(productID, warehouseID)]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Quantity += amount
	rec.UpdatedAt = time.Now()
	return nil
}

func cloneRecord(rec *entity.StockRecord) *entity.StockRecord {
	cp := *rec
	if rec.ExpiryDate != nil {
		t := *rec.ExpiryDate
		cp.ExpiryDate = &t
	}
	return &cp
}
