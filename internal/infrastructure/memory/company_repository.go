package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/pregao-api/internal/domain"
	"github.com/jhoicas/pregao-api/internal/domain/entity"
	"github.com/jhoicas/pregao-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación en memoria del puerto CompanyRepository.
type CompanyRepo struct {
	mu   sync.RWMutex
	byID map[string]*entity.Company
}

// NewCompanyRepository construye el repositorio en memoria de empresas.
func NewCompanyRepository() *CompanyRepo {
	return &CompanyRepo{byID: make(map[string]*entity.Company)}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(company *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[company.ID]; ok {
		return domain.ErrDuplicate
	}
	r.byID[company.ID] = cloneCompany(company)
	return nil
}

// GetByID obtiene una empresa por ID, o nil si no existe.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneCompany(c), nil
}

// List devuelve todas las empresas (snapshot del árbol) ordenadas por nombre.
func (r *CompanyRepo) List() ([]*entity.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Company, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, cloneCompany(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Update actualiza una empresa existente.
func (r *CompanyRepo) Update(company *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[company.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[company.ID] = cloneCompany(company)
	return nil
}

// Delete elimina una empresa por ID.
func (r *CompanyRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func cloneCompany(c *entity.Company) *entity.Company {
	cp := *c
	if c.ParentID != nil {
		pid := *c.ParentID
		cp.ParentID = &pid
	}
	return &cp
}
