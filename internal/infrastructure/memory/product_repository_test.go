package memory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pregao-api/internal/domain"
	"github.com/jhoicas/pregao-api/internal/domain/entity"
	"github.com/jhoicas/pregao-api/internal/domain/repository"
	"github.com/jhoicas/pregao-api/internal/infrastructure/memory"
)

func seededProducts(t *testing.T) *memory.ProductRepo {
	t.Helper()
	repos := memory.NewRepositories()
	require.NoError(t, repos.Seed())
	return repos.Products
}

func names(list []*entity.Product) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.Name)
	}
	return out
}

// La búsqueda ignora mayúsculas y tildes: "oleo" encuentra "Óleo Fula 1L".
func TestProductList_BusquedaInsensibleATildes(t *testing.T) {
	repo := seededProducts(t)

	list, total, err := repo.List(repository.ProductFilter{Query: "oleo"}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "Óleo Fula 1L", list[0].Name)

	// También por SKU, en minúsculas.
	list, _, err = repo.List(repository.ProductFilter{Query: "prod002"}, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "p2", list[0].ID)
}

func TestProductList_FiltroPorTipoYBodega(t *testing.T) {
	repo := seededProducts(t)

	servicios, total, err := repo.List(repository.ProductFilter{Kind: entity.KindService}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, p := range servicios {
		assert.False(t, p.TrackStock)
	}

	enWh2, _, err := repo.List(repository.ProductFilter{WarehouseID: "wh2"}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, enWh2, 2)

	// WarehouseIDs restringe al conjunto permitido (visibilidad).
	visibles, _, err := repo.List(repository.ProductFilter{WarehouseIDs: []string{"wh2"}}, 0, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Sumo Compal 1L", "Cimento Portland 50kg"}, names(visibles))
}

func TestProductList_Ordenamientos(t *testing.T) {
	repo := seededProducts(t)

	byPrice, _, err := repo.List(repository.ProductFilter{SortBy: repository.SortPriceAsc}, 0, 0)
	require.NoError(t, err)
	require.Len(t, byPrice, 6)
	assert.Equal(t, "Sumo Compal 1L", byPrice[0].Name, "el más barato primero (900)")
	assert.Equal(t, "Consultoria de Negócios", byPrice[5].Name, "el más caro último (50000)")

	byPriceDesc, _, err := repo.List(repository.ProductFilter{SortBy: repository.SortPriceDesc}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Consultoria de Negócios", byPriceDesc[0].Name)

	// Por defecto ordena por nombre plegado: "Óleo" agrupa con la O.
	byName, _, err := repo.List(repository.ProductFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Arroz Tio Lucas 25kg",
		"Cimento Portland 50kg",
		"Consultoria de Negócios",
		"Óleo Fula 1L",
		"Serviço de Instalação",
		"Sumo Compal 1L",
	}, names(byName))
}

// total refleja el conjunto filtrado completo aunque la página sea parcial.
func TestProductList_Paginacion(t *testing.T) {
	repo := seededProducts(t)

	page, total, err := repo.List(repository.ProductFilter{}, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	assert.Len(t, page, 2)

	page, total, err = repo.List(repository.ProductFilter{}, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	assert.Len(t, page, 2)

	// Offset más allá del total: página vacía, total intacto.
	page, total, err = repo.List(repository.ProductFilter{}, 10, 99)
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	assert.Empty(t, page)
}

// La misma SKU puede existir en bodegas distintas, nunca dos veces en la misma.
func TestProductCreate_SKUUnicaPorBodega(t *testing.T) {
	repo := seededProducts(t)
	now := time.Now()

	dup := &entity.Product{
		ID: "px", CompanyID: "c1", WarehouseID: "wh1", SKU: "PROD001",
		Name: "Arroz duplicado", Price: decimal.NewFromInt(1),
		Kind: entity.KindGood, TrackStock: true, Unit: "UN",
		CreatedAt: now, UpdatedAt: now,
	}
	assert.ErrorIs(t, repo.Create(dup), domain.ErrDuplicate)

	// En otra bodega la SKU es válida (es como viajan las transferencias).
	dup.WarehouseID = "wh2"
	assert.NoError(t, repo.Create(dup))
}

// El repositorio entrega copias: mutar el resultado no contamina el almacén.
func TestProductGetByID_DevuelveCopia(t *testing.T) {
	repo := seededProducts(t)

	p, err := repo.GetByID("p1")
	require.NoError(t, err)
	require.NotNil(t, p)
	p.Name = "mutado"
	p.Packaging[0].ConversionFactor = 999

	fresh, err := repo.GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, "Arroz Tio Lucas 25kg", fresh.Name)
	assert.Equal(t, int64(4), fresh.Packaging[0].ConversionFactor)
}

func TestProductUpdate_Inexistente(t *testing.T) {
	repo := memory.NewProductRepository()
	err := repo.Update(&entity.Product{ID: "nada", Price: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
