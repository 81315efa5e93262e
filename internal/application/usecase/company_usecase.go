package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pregao-api/internal/application/dto"
	"github.com/jhoicas/pregao-api/internal/domain"
	"github.com/jhoicas/pregao-api/internal/domain/entity"
	"github.com/jhoicas/pregao-api/internal/domain/repository"
)

// CompanyUseCase casos de uso para empresas del grupo. El alta valida que el
// padre exista, sea distinto y no introduzca ciclos: el resolver de visibilidad
// depende de que el árbol sea sano.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una empresa. ParentID nil = raíz; si está presente debe
// referenciar una empresa existente (la nueva empresa aún no tiene hijos, así
// que no puede cerrar un ciclo, pero el padre debe colgar de una cadena sana).
func (uc *CompanyUseCase) Create(in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ParentID != nil {
		parent, err := uc.repo.GetByID(*in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
		companies, err := uc.repo.List()
		if err != nil {
			return nil, err
		}
		if err := validateChain(companies, parent); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		ParentID:  in.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return toCompanyResponse(company), nil
}

// List lista todas las empresas (plano).
func (uc *CompanyUseCase) List() (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{Items: items}, nil
}

// Tree arma la jerarquía de empresas como bosque de nodos (las empresas sin
// padre, o con padre inexistente, quedan como raíces).
func (uc *CompanyUseCase) Tree() ([]dto.CompanyTreeNode, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Company, len(list))
	for _, c := range list {
		byID[c.ID] = c
	}
	children := make(map[string][]string, len(list))
	for _, c := range list {
		if c.ParentID != nil && *c.ParentID != c.ID {
			if _, ok := byID[*c.ParentID]; ok {
				children[*c.ParentID] = append(children[*c.ParentID], c.ID)
			}
		}
	}
	var build func(id string, seen map[string]bool) dto.CompanyTreeNode
	build = func(id string, seen map[string]bool) dto.CompanyTreeNode {
		node := dto.CompanyTreeNode{ID: id, Name: byID[id].Name}
		for _, ch := range children[id] {
			if !seen[ch] {
				seen[ch] = true
				node.Children = append(node.Children, build(ch, seen))
			}
		}
		return node
	}
	var roots []dto.CompanyTreeNode
	for _, c := range list {
		isRoot := c.ParentID == nil
		if !isRoot {
			_, parentExists := byID[*c.ParentID]
			isRoot = !parentExists
		}
		if isRoot {
			roots = append(roots, build(c.ID, map[string]bool{c.ID: true}))
		}
	}
	return roots, nil
}

// validateChain recorre la cadena de padres desde parent hasta una raíz con
// conjunto de visitados; un ciclo existente se reporta como error de
// configuración en vez de colgar el alta.
func validateChain(companies []*entity.Company, parent *entity.Company) error {
	byID := make(map[string]*entity.Company, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}
	seen := map[string]bool{parent.ID: true}
	cur := parent
	for cur.ParentID != nil {
		next, ok := byID[*cur.ParentID]
		if !ok || next.ID == cur.ID {
			return &domain.CompanyCycleError{CompanyID: cur.ID}
		}
		if seen[next.ID] {
			return &domain.CompanyCycleError{CompanyID: next.ID}
		}
		seen[next.ID] = true
		cur = next
	}
	return nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
