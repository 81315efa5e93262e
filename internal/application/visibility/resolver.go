package visibility

import (
	"fmt"

	"github.com/jhoicas/pregao-api/internal/domain"
	"github.com/jhoicas/pregao-api/internal/domain/entity"
	"github.com/jhoicas/pregao-api/internal/domain/repository"
)

// Resolver calcula qué bodegas y productos puede ver o tocar un usuario según
// su rol y la jerarquía de empresas. El resultado es función pura del snapshot
// (rol, árbol de empresas, empresa del usuario): sin efectos secundarios,
// determinista.
//
// Reglas:
//   - admin: todas las bodegas.
//   - gestor_grupo: bodegas de su empresa y de toda empresa descendiente
//     (clausura transitiva completa del árbol de punteros a padre).
//   - resto de roles: solo las bodegas de su propia empresa.
type Resolver struct {
	companies  repository.CompanyRepository
	warehouses repository.WarehouseRepository
	products   repository.ProductRepository
}

// NewResolver construye el resolver.
func NewResolver(
	companies repository.CompanyRepository,
	warehouses repository.WarehouseRepository,
	products repository.ProductRepository,
) *Resolver {
	return &Resolver{companies: companies, warehouses: warehouses, products: products}
}

// VisibleWarehouses devuelve las bodegas visibles para el usuario. Un árbol de
// empresas malformado (ciclo, padre inexistente o auto-referencia) devuelve
// *domain.CompanyCycleError: error de configuración fatal, nunca un loop.
func (r *Resolver) VisibleWarehouses(user *entity.User) ([]*entity.Warehouse, error) {
	all, err := r.warehouses.List()
	if err != nil {
		return nil, fmt.Errorf("listar bodegas: %w", err)
	}

	switch user.Role {
	case entity.RoleAdmin:
		return all, nil
	case entity.RoleGestorGrupo:
		companies, err := r.companies.List()
		if err != nil {
			return nil, fmt.Errorf("listar empresas: %w", err)
		}
		visible, err := descendantSet(companies, user.CompanyID)
		if err != nil {
			return nil, err
		}
		out := make([]*entity.Warehouse, 0, len(all))
		for _, w := range all {
			if visible[w.CompanyID] {
				out = append(out, w)
			}
		}
		return out, nil
	default:
		out := make([]*entity.Warehouse, 0, len(all))
		for _, w := range all {
			if w.CompanyID == user.CompanyID {
				out = append(out, w)
			}
		}
		return out, nil
	}
}

// VisibleProducts devuelve los productos publicados en las bodegas visibles.
func (r *Resolver) VisibleProducts(user *entity.User) ([]*entity.Product, error) {
	warehouses, err := r.VisibleWarehouses(user)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(warehouses))
	for _, w := range warehouses {
		ids = append(ids, w.ID)
	}
	if len(ids) == 0 {
		return []*entity.Product{}, nil
	}
	products, _, err := r.products.List(repository.ProductFilter{WarehouseIDs: ids}, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	return products, nil
}

// descendantSet calcula el conjunto {rootID} ∪ descendientes sobre un mapa de
// adyacencia construido una vez por snapshot, con recorrido iterativo y conjunto
// de visitados. Antes de recorrer valida el árbol completo: todo padre debe
// existir, ser distinto de la propia empresa y no formar ciclos.
func descendantSet(companies []*entity.Company, rootID string) (map[string]bool, error) {
	byID := make(map[string]*entity.Company, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}
	children := make(map[string][]string, len(companies))
	for _, c := range companies {
		if c.ParentID == nil {
			continue
		}
		parent := *c.ParentID
		if parent == c.ID {
			return nil, &domain.CompanyCycleError{CompanyID: c.ID}
		}
		if _, ok := byID[parent]; !ok {
			return nil, &domain.CompanyCycleError{CompanyID: c.ID}
		}
		children[parent] = append(children[parent], c.ID)
	}

	// Validación global: la cadena de padres de cada empresa debe terminar en
	// una raíz. Si alguna revisita un nodo, hay ciclo aunque no cuelgue de rootID.
	for _, c := range companies {
		seen := map[string]bool{c.ID: true}
		cur := c
		for cur.ParentID != nil {
			next := byID[*cur.ParentID]
			if seen[next.ID] {
				return nil, &domain.CompanyCycleError{CompanyID: next.ID}
			}
			seen[next.ID] = true
			cur = next
		}
	}

	// BFS iterativo desde la raíz pedida.
	visible := map[string]bool{rootID: true}
	queue := []string{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range children[id] {
			if !visible[child] {
				visible[child] = true
				queue = append(queue, child)
			}
		}
	}
	return visible, nil
}
