package cart_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pregao-api/internal/application/cart"
	"github.com/jhoicas/pregao-api/internal/application/dto"
	"github.com/jhoicas/pregao-api/internal/application/inventory"
	"github.com/jhoicas/pregao-api/internal/domain"
	"github.com/jhoicas/pregao-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// Fixture sobre el dataset de demostración:
//   - p1 "Arroz Tio Lucas 25kg" en wh1: stock 120 UN, precio 15000,
//     embalaje pkg1 "Fardo" factor 4, precio 58000.
//   - p2 "Óleo Fula 1L" en wh1: stock 300 UN.
//   - p3 "Serviço de Instalação": servicio, sin control de stock.
func newFixture(t *testing.T) (*cart.Service, *memory.Repositories) {
	t.Helper()
	repos := memory.NewRepositories()
	require.NoError(t, repos.Seed())
	locker := inventory.NewStockLocker(500 * time.Millisecond)
	return cart.NewService(repos.Products, repos.Stocks, locker), repos
}

func addLine(t *testing.T, svc *cart.Service, cartID, productID string, qty int64, packagingID string) {
	t.Helper()
	err := svc.AddLine(context.Background(), cartID, dto.AddLineRequest{
		ProductID: productID, Quantity: qty, PackagingID: packagingID,
	})
	require.NoError(t, err)
}

const (
	keyArrozUnidad = "p1-wh1-unit"
	keyArrozFardo  = "p1-wh1-pkg1"
)

// ──────────────────────────────────────────────────────────────────────────────
// AddLine
// ──────────────────────────────────────────────────────────────────────────────

func TestAddLine_UnidadBase(t *testing.T) {
	svc, _ := newFixture(t)
	addLine(t, svc, "s1", "p1", 2, "")

	out := svc.Get("s1")
	require.Len(t, out.Lines, 1)
	line := out.Lines[0]
	assert.Equal(t, keyArrozUnidad, line.Key)
	assert.Equal(t, int64(2), line.Quantity)
	assert.Equal(t, int64(1), line.ConversionFactor)
	assert.Equal(t, int64(2), line.BaseUnits)
	assert.True(t, line.Subtotal.Equal(decimal.NewFromInt(30000)),
		"subtotal = precio base 15000 × 2")
	assert.Equal(t, int64(2), out.ItemCount)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(30000)))
}

func TestAddLine_EmbalajeConPrecioPropio(t *testing.T) {
	svc, _ := newFixture(t)
	addLine(t, svc, "s1", "p1", 3, "pkg1")

	out := svc.Get("s1")
	require.Len(t, out.Lines, 1)
	line := out.Lines[0]
	assert.Equal(t, keyArrozFardo, line.Key)
	assert.Equal(t, int64(4), line.ConversionFactor)
	assert.Equal(t, int64(12), line.BaseUnits, "3 fardos × factor 4")
	assert.Equal(t, "FAR", line.UnitLabel)
	assert.True(t, line.Price.Equal(decimal.NewFromInt(58000)),
		"la línea congela el precio del embalaje, no el del producto")
}

// Agregar dos veces la misma clave fusiona sumando, nunca duplica la línea.
func TestAddLine_FusionaMismaClave(t *testing.T) {
	svc, _ := newFixture(t)
	addLine(t, svc, "s1", "p1", 3, "")
	addLine(t, svc, "s1", "p1", 2, "")

	out := svc.Get("s1")
	require.Len(t, out.Lines, 1)
	assert.Equal(t, int64(5), out.Lines[0].Quantity)
}

// Distinto embalaje del mismo producto = línea aparte, con orden de inserción.
func TestAddLine_EmbalajesDistintosSonLineasDistintas(t *testing.T) {
	svc, _ := newFixture(t)
	addLine(t, svc, "s1", "p1", 2, "")
	addLine(t, svc, "s1", "p1", 1, "pkg1")

	out := svc.Get("s1")
	require.Len(t, out.Lines, 2)
	assert.Equal(t, keyArrozUnidad, out.Lines[0].Key)
	assert.Equal(t, keyArrozFardo, out.Lines[1].Key)
	assert.Equal(t, int64(3), out.ItemCount)
}

func TestAddLine_RechazaMasQueStock(t *testing.T) {
	svc, _ := newFixture(t)

	err := svc.AddLine(context.Background(), "s1", dto.AddLineRequest{ProductID: "p1", Quantity: 121})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(120), insufficient.MaxQuantity)
	assert.Equal(t, int64(120), insufficient.AvailableUnits)

	// Ante el rechazo el carrito queda intacto.
	assert.Empty(t, svc.Get("s1").Lines)
}

// La fusión valida cantidad existente + nueva contra el stock.
func TestAddLine_FusionRespetaCapacidad(t *testing.T) {
	svc, _ := newFixture(t)
	addLine(t, svc, "s1", "p1", 100, "")

	err := svc.AddLine(context.Background(), "s1", dto.AddLineRequest{ProductID: "p1", Quantity: 21})
	require.Error(t, err)

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(20), insufficient.MaxQuantity, "quedan 120-100=20 unidades base")
	assert.Equal(t, int64(100), svc.Get("s1").Lines[0].Quantity, "la línea no cambió")
}

// Las líneas hermanas (otro embalaje, mismo registro de stock) comparten el pool:
// 30 fardos × 4 = 120 unidades base agotan el stock del arroz.
func TestAddLine_EmbalajeHermanoCompiteCapacidad(t *testing.T) {
	svc, _ := newFixture(t)
	addLine(t, svc, "s1", "p1", 30, "pkg1")

	err := svc.AddLine(context.Background(), "s1", dto.AddLineRequest{ProductID: "p1", Quantity: 1})
	require.Error(t, err)

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(0), insufficient.AvailableUnits)
	assert.Equal(t, int64(0), insufficient.MaxQuantity)
}

// MaxQuantity viene en unidades del embalaje pedido: 120 base / factor 4 = 30.
func TestAddLine_MaxQuantityEnUnidadesDelEmbalaje(t *testing.T) {
	svc, _ := newFixture(t)

	err := svc.AddLine(context.Background(), "s1", dto.AddLineRequest{ProductID: "p1", Quantity: 31, PackagingID: "pkg1"})
	require.Error(t, err)

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(30), insufficient.MaxQuantity)
}

func TestAddLine_ServicioSinControlDeStock(t *testing.T) {
	svc, _ := newFixture(t)
	addLine(t, svc, "s1", "p3", 1000, "")

	out := svc.Get("s1")
	require.Len(t, out.Lines, 1)
	assert.Equal(t, int64(1000), out.Lines[0].Quantity)
}

func TestAddLine_Errores(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.AddLine(ctx, "s1", dto.AddLineRequest{ProductID: "p1", Quantity: 0}), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, svc.AddLine(ctx, "s1", dto.AddLineRequest{ProductID: "p1", Quantity: -3}), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, svc.AddLine(ctx, "s1", dto.AddLineRequest{ProductID: "nope", Quantity: 1}), domain.ErrNotFound)
	assert.ErrorIs(t, svc.AddLine(ctx, "s1", dto.AddLineRequest{ProductID: "p1", Quantity: 1, PackagingID: "nope"}), domain.ErrNotFound)
	assert.Empty(t, svc.Get("s1").Lines, "ningún error debe dejar rastro en el carrito")
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateLineQuantity
// ──────────────────────────────────────────────────────────────────────────────

// Update fija la cantidad (no suma) y excluye la propia línea del cálculo:
// con 100 en el carrito y stock 120, fijar 120 es válido.
func TestUpdateLine_FijaCantidadExcluyendoPropiaLinea(t *testing.T) {
	svc, _ := newFixture(t)
	addLine(t, svc, "s1", "p1", 100, "")

	require.NoError(t, svc.UpdateLineQuantity(context.Background(), "s1", keyArrozUnidad, 120))
	assert.Equal(t, int64(120), svc.Get("s1").Lines[0].Quantity)

	err := svc.UpdateLineQuantity(context.Background(), "s1", keyArrozUnidad, 121)
	require.Error(t, err)
	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(120), insufficient.MaxQuantity)
	assert.Equal(t, int64(120), svc.Get("s1").Lines[0].Quantity, "el fallo no muta la línea")
}

// Las hermanas sí cuentan: 20 fardos (80 base) dejan solo 40 para la unidad base.
func TestUpdateLine_CuentaLineasHermanas(t *testing.T) {
	svc, _ := newFixture(t)
	addLine(t, svc, "s1", "p1", 20, "pkg1")
	addLine(t, svc, "s1", "p1", 10, "")

	assert.NoError(t, svc.UpdateLineQuantity(context.Background(), "s1", keyArrozUnidad, 40))
	assert.Error(t, svc.UpdateLineQuantity(context.Background(), "s1", keyArrozUnidad, 41))
}

func TestUpdateLine_CantidadCeroElimina(t *testing.T) {
	svc, _ := newFixture(t)
	addLine(t, svc, "s1", "p1", 2, "")

	require.NoError(t, svc.UpdateLineQuantity(context.Background(), "s1", keyArrozUnidad, 0))
	assert.Empty(t, svc.Get("s1").Lines)
}

func TestUpdateLine_LineaInexistente(t *testing.T) {
	svc, _ := newFixture(t)
	err := svc.UpdateLineQuantity(context.Background(), "s1", "no-such-line", 3)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// RemoveLine / Clear / Get
// ──────────────────────────────────────────────────────────────────────────────

func TestRemoveLine_Idempotente(t *testing.T) {
	svc, _ := newFixture(t)
	addLine(t, svc, "s1", "p1", 2, "")

	svc.RemoveLine("s1", keyArrozUnidad)
	assert.Empty(t, svc.Get("s1").Lines)
	// Repetir sobre clave inexistente es un no-op.
	svc.RemoveLine("s1", keyArrozUnidad)
	assert.Empty(t, svc.Get("s1").Lines)
}

func TestClear_VaciaElCarrito(t *testing.T) {
	svc, _ := newFixture(t)
	addLine(t, svc, "s1", "p1", 2, "")
	addLine(t, svc, "s1", "p2", 5, "")

	svc.Clear("s1")
	out := svc.Get("s1")
	assert.Empty(t, out.Lines)
	assert.Equal(t, int64(0), out.ItemCount)
	assert.True(t, out.Total.IsZero())
}

// ItemCount y Total siempre se recalculan de las líneas.
func TestGet_ProyeccionesConsistentes(t *testing.T) {
	svc, _ := newFixture(t)
	addLine(t, svc, "s1", "p1", 2, "")     // 2 × 15000 = 30000
	addLine(t, svc, "s1", "p1", 3, "pkg1") // 3 × 58000 = 174000

	out := svc.Get("s1")
	assert.Equal(t, int64(5), out.ItemCount)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(204000)))

	require.NoError(t, svc.UpdateLineQuantity(context.Background(), "s1", keyArrozFardo, 1))
	out = svc.Get("s1")
	assert.Equal(t, int64(3), out.ItemCount)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(88000)))
}

// Carritos de sesiones distintas son independientes (incluida la capacidad:
// la reserva es por carrito, el stock solo limita a cada uno por separado).
func TestCarritosPorSesionIndependientes(t *testing.T) {
	svc, _ := newFixture(t)
	addLine(t, svc, "s1", "p1", 120, "")
	addLine(t, svc, "s2", "p1", 120, "")

	assert.Equal(t, int64(120), svc.Get("s1").Lines[0].Quantity)
	assert.Equal(t, int64(120), svc.Get("s2").Lines[0].Quantity)
}

// Un ajuste de stock posterior no invalida líneas ya agregadas, pero sí limita
// las mutaciones siguientes.
func TestAddLine_StockAjustadoLimitaMutacionesSiguientes(t *testing.T) {
	svc, repos := newFixture(t)
	addLine(t, svc, "s1", "p1", 100, "")

	_, err := repos.Stocks.Adjust("p1", "wh1", 50)
	require.NoError(t, err)

	err = svc.AddLine(context.Background(), "s1", dto.AddLineRequest{ProductID: "p1", Quantity: 1})
	require.Error(t, err)
	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(0), insufficient.MaxQuantity, "100 reservado > 50 de stock: nada disponible")
}
