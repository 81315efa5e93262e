package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/pregao-api/internal/domain"
	"github.com/jhoicas/pregao-api/internal/domain/entity"
	"github.com/jhoicas/pregao-api/internal/domain/repository"
	"github.com/jhoicas/pregao-api/pkg/textutil"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria del puerto ProductRepository.
// Guarda y devuelve copias para que ningún caller comparta punteros con el mapa.
type ProductRepo struct {
	mu   sync.RWMutex
	byID map[string]*entity.Product
}

// NewProductRepository construye el repositorio en memoria de productos.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{byID: make(map[string]*entity.Product)}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[product.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, p := range r.byID {
		if p.SKU == product.SKU && p.WarehouseID == product.WarehouseID {
			return domain.ErrDuplicate
		}
	}
	r.byID[product.ID] = cloneProduct(product)
	return nil
}

// GetByID obtiene un producto por ID, o nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

// GetBySKUAndWarehouse localiza la fila de producto de esa SKU en una bodega.
func (r *ProductRepo) GetBySKUAndWarehouse(sku, warehouseID string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.byID {
		if p.SKU == sku && p.WarehouseID == warehouseID {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[product.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[product.ID] = cloneProduct(product)
	return nil
}

// List filtra, ordena y pagina. limit <= 0 significa sin límite (lo usa el
// resolver de visibilidad para traer el snapshot completo).
func (r *ProductRepo) List(filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var allowed map[string]bool
	if len(filter.WarehouseIDs) > 0 {
		allowed = make(map[string]bool, len(filter.WarehouseIDs))
		for _, id := range filter.WarehouseIDs {
			allowed[id] = true
		}
	}

	matched := make([]*entity.Product, 0, len(r.byID))
	for _, p := range r.byID {
		if filter.Kind != "" && p.Kind != filter.Kind {
			continue
		}
		if filter.WarehouseID != "" && p.WarehouseID != filter.WarehouseID {
			continue
		}
		if allowed != nil && !allowed[p.WarehouseID] {
			continue
		}
		if filter.Query != "" && !textutil.Contains(p.Name, filter.Query) && !textutil.Contains(p.SKU, filter.Query) {
			continue
		}
		matched = append(matched, p)
	}

	sortProducts(matched, filter.SortBy)
	total := len(matched)

	if offset >= total {
		return []*entity.Product{}, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	out := make([]*entity.Product, 0, len(matched))
	for _, p := range matched {
		out = append(out, cloneProduct(p))
	}
	return out, total, nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func sortProducts(list []*entity.Product, sortBy string) {
	switch sortBy {
	case repository.SortPriceAsc:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Price.LessThan(list[j].Price) })
	case repository.SortPriceDesc:
		sort.SliceStable(list, func(i, j int) bool { return list[j].Price.LessThan(list[i].Price) })
	case repository.SortNameDesc:
		sort.SliceStable(list, func(i, j int) bool {
			return textutil.Fold(list[j].Name) < textutil.Fold(list[i].Name)
		})
	default:
		// name-asc es el orden por defecto.
		sort.SliceStable(list, func(i, j int) bool {
			return textutil.Fold(list[i].Name) < textutil.Fold(list[j].Name)
		})
	}
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	cp.Packaging = append([]entity.Packaging(nil), p.Packaging...)
	return &cp
}
