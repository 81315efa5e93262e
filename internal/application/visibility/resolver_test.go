package visibility_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pregao-api/internal/application/visibility"
	"github.com/jhoicas/pregao-api/internal/domain"
	"github.com/jhoicas/pregao-api/internal/domain/entity"
	"github.com/jhoicas/pregao-api/internal/infrastructure/memory"
)

func newResolverFixture(t *testing.T) (*visibility.Resolver, *memory.Repositories) {
	t.Helper()
	repos := memory.NewRepositories()
	require.NoError(t, repos.Seed())
	return visibility.NewResolver(repos.Companies, repos.Warehouses, repos.Products), repos
}

func user(id, companyID, role string) *entity.User {
	return &entity.User{ID: id, CompanyID: companyID, Role: role}
}

func warehouseIDs(list []*entity.Warehouse) []string {
	ids := make([]string, 0, len(list))
	for _, w := range list {
		ids = append(ids, w.ID)
	}
	return ids
}

// admin ve todas las bodegas del sistema, sin importar su empresa.
func TestVisibleWarehouses_Admin(t *testing.T) {
	resolver, _ := newResolverFixture(t)

	list, err := resolver.VisibleWarehouses(user("u1", "c1", entity.RoleAdmin))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"wh1", "wh2"}, warehouseIDs(list))
}

// Un rol común solo ve las bodegas de su propia empresa.
func TestVisibleWarehouses_RolComun(t *testing.T) {
	resolver, _ := newResolverFixture(t)

	list, err := resolver.VisibleWarehouses(user("u2", "c1", entity.RoleVendedor))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"wh1"}, warehouseIDs(list))

	list, err = resolver.VisibleWarehouses(user("u6", "c2", entity.RoleGerente))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"wh2"}, warehouseIDs(list))
}

// gestor_grupo en la raíz ve su empresa y todas las descendientes.
func TestVisibleWarehouses_GestorGrupo(t *testing.T) {
	resolver, _ := newResolverFixture(t)

	list, err := resolver.VisibleWarehouses(user("u8", "c1", entity.RoleGestorGrupo))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"wh1", "wh2"}, warehouseIDs(list))
}

// gestor_grupo en una hoja no ve hacia arriba del árbol.
func TestVisibleWarehouses_GestorGrupoEnHoja(t *testing.T) {
	resolver, _ := newResolverFixture(t)

	list, err := resolver.VisibleWarehouses(user("ux", "c2", entity.RoleGestorGrupo))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"wh2"}, warehouseIDs(list))
}

// La clausura es transitiva: Matriz → Sucursal → Depósito, el gestor en la
// matriz alcanza la bodega del nieto.
func TestVisibleWarehouses_ClausuraProfunda(t *testing.T) {
	repos := memory.NewRepositories()
	now := time.Now()
	matriz := "g1"
	sucursal := "g2"
	for _, c := range []*entity.Company{
		{ID: "g1", Name: "Matriz", CreatedAt: now, UpdatedAt: now},
		{ID: "g2", Name: "Sucursal", ParentID: &matriz, CreatedAt: now, UpdatedAt: now},
		{ID: "g3", Name: "Depósito", ParentID: &sucursal, CreatedAt: now, UpdatedAt: now},
	} {
		require.NoError(t, repos.Companies.Create(c))
	}
	for _, w := range []*entity.Warehouse{
		{ID: "w1", CompanyID: "g1", Name: "Central", Type: entity.WarehouseTypeGeneral, CreatedAt: now, UpdatedAt: now},
		{ID: "w3", CompanyID: "g3", Name: "Remota", Type: entity.WarehouseTypeGeneral, CreatedAt: now, UpdatedAt: now},
	} {
		require.NoError(t, repos.Warehouses.Create(w))
	}
	resolver := visibility.NewResolver(repos.Companies, repos.Warehouses, repos.Products)

	list, err := resolver.VisibleWarehouses(user("ux", "g1", entity.RoleGestorGrupo))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"w1", "w3"}, warehouseIDs(list))

	// Desde la sucursal solo se ve hacia abajo.
	list, err = resolver.VisibleWarehouses(user("uy", "g2", entity.RoleGestorGrupo))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"w3"}, warehouseIDs(list))
}

// Un ciclo en el árbol de empresas es un error de configuración, nunca un loop.
func TestVisibleWarehouses_CicloEnElArbol(t *testing.T) {
	repos := memory.NewRepositories()
	now := time.Now()
	a, b := "ca", "cb"
	require.NoError(t, repos.Companies.Create(&entity.Company{ID: "ca", Name: "A", ParentID: &b, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Companies.Create(&entity.Company{ID: "cb", Name: "B", ParentID: &a, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Warehouses.Create(&entity.Warehouse{ID: "w1", CompanyID: "ca", Name: "X", Type: entity.WarehouseTypeGeneral, CreatedAt: now, UpdatedAt: now}))
	resolver := visibility.NewResolver(repos.Companies, repos.Warehouses, repos.Products)

	done := make(chan error, 1)
	go func() {
		_, err := resolver.VisibleWarehouses(user("ux", "ca", entity.RoleGestorGrupo))
		done <- err
	}()

	select {
	case err := <-done:
		var cycle *domain.CompanyCycleError
		require.True(t, errors.As(err, &cycle))
	case <-time.After(2 * time.Second):
		t.Fatal("la detección de ciclos no debe colgarse")
	}
}

// Los productos visibles son los publicados en las bodegas visibles.
func TestVisibleProducts_FiltraPorBodega(t *testing.T) {
	resolver, _ := newResolverFixture(t)

	// vendedor de c1: solo el catálogo de wh1.
	products, err := resolver.VisibleProducts(user("u2", "c1", entity.RoleVendedor))
	require.NoError(t, err)
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"p1", "p2", "p3", "p6"}, ids)

	// admin: el catálogo completo.
	products, err = resolver.VisibleProducts(user("u1", "c1", entity.RoleAdmin))
	require.NoError(t, err)
	assert.Len(t, products, 6)
}
