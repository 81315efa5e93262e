package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/pregao-api/internal/domain"
	"github.com/jhoicas/pregao-api/internal/domain/entity"
	"github.com/jhoicas/pregao-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación en memoria del puerto WarehouseRepository.
type WarehouseRepo struct {
	mu   sync.RWMutex
	byID map[string]*entity.Warehouse
}

// NewWarehouseRepository construye el repositorio en memoria de bodegas.
func NewWarehouseRepository() *WarehouseRepo {
	return &WarehouseRepo{byID: make(map[string]*entity.Warehouse)}
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[warehouse.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *warehouse
	r.byID[warehouse.ID] = &cp
	return nil
}

// GetByID obtiene una bodega por ID, o nil si no existe.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

// Update actualiza una bodega existente.
func (r *WarehouseRepo) Update(warehouse *entity.Warehouse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[warehouse.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *warehouse
	r.byID[warehouse.ID] = &cp
	return nil
}

// List devuelve todas las bodegas ordenadas por nombre.
func (r *WarehouseRepo) List() ([]*entity.Warehouse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Warehouse, 0, len(r.byID))
	for _, w := range r.byID {
		cp := *w
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListByCompany devuelve las bodegas de una empresa ordenadas por nombre.
func (r *WarehouseRepo) ListByCompany(companyID string) ([]*entity.Warehouse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Warehouse
	for _, w := range r.byID {
		if w.CompanyID == companyID {
			cp := *w
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete elimina una bodega por ID.
func (r *WarehouseRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}
