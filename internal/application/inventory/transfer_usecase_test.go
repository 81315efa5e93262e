package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pregao-api/internal/application/inventory"
	"github.com/jhoicas/pregao-api/internal/domain"
	"github.com/jhoicas/pregao-api/internal/domain/entity"
	"github.com/jhoicas/pregao-api/internal/domain/repository"
	"github.com/jhoicas/pregao-api/internal/infrastructure/memory"
)

// Fixture sobre el dataset de demostración:
//   - p1 "Arroz" PROD001 en wh1: stock 120, lote LOTE2024A, con vencimiento.
//   - p5 "Cimento" PROD004 en wh2: stock 500, sin lote. La SKU no existe en wh1.
func newTransferFixture(t *testing.T) (*inventory.TransferUseCase, *memory.Repositories) {
	t.Helper()
	repos := memory.NewRepositories()
	require.NoError(t, repos.Seed())
	locker := inventory.NewStockLocker(500 * time.Millisecond)
	uc := inventory.NewTransferUseCase(repos.Products, repos.Stocks, repos.Movements, locker)
	return uc, repos
}

// La transferencia conserva el total: origen −200, destino +200.
func TestTransfer_ConservaElTotal(t *testing.T) {
	uc, repos := newTransferFixture(t)

	err := uc.Transfer(context.Background(), inventory.TransferInput{
		SourceProductID: "p5", ToWarehouseID: "wh1", Quantity: 200, UserID: "u1",
	})
	require.NoError(t, err)

	source, err := repos.Stocks.Get("p5", "wh2")
	require.NoError(t, err)
	assert.Equal(t, int64(300), source.Quantity)

	dest, err := repos.Stocks.GetBySKUAndWarehouse("PROD004", "wh1")
	require.NoError(t, err)
	require.NotNil(t, dest)
	assert.Equal(t, int64(200), dest.Quantity)

	records, err := repos.Stocks.ListBySKU("PROD004")
	require.NoError(t, err)
	var total int64
	for _, r := range records {
		total += r.Quantity
	}
	assert.Equal(t, int64(500), total, "ninguna unidad se crea ni destruye")
}

// SKU inexistente en destino: se publica el producto allí y el lote viaja con
// prefijo TRANSF- junto con la fecha de vencimiento.
func TestTransfer_CreaDestinoConLotePropagado(t *testing.T) {
	uc, repos := newTransferFixture(t)

	err := uc.Transfer(context.Background(), inventory.TransferInput{
		SourceProductID: "p1", ToWarehouseID: "wh2", Quantity: 40, UserID: "u1",
	})
	require.NoError(t, err)

	destProduct, err := repos.Products.GetBySKUAndWarehouse("PROD001", "wh2")
	require.NoError(t, err)
	require.NotNil(t, destProduct, "la fila de producto se clona en destino")
	assert.NotEqual(t, "p1", destProduct.ID)
	assert.Equal(t, "Arroz Tio Lucas 25kg", destProduct.Name)

	dest, err := repos.Stocks.GetBySKUAndWarehouse("PROD001", "wh2")
	require.NoError(t, err)
	require.NotNil(t, dest)
	assert.Equal(t, int64(40), dest.Quantity)
	assert.Equal(t, "TRANSF-LOTE2024A", dest.Lot)
	require.NotNil(t, dest.ExpiryDate, "el vencimiento acompaña al lote")

	source, _ := repos.Stocks.Get("p1", "wh1")
	assert.Equal(t, int64(80), source.Quantity)
}

// Transferir a una bodega donde la SKU ya existe acredita el registro existente.
func TestTransfer_AcreditaDestinoExistente(t *testing.T) {
	uc, repos := newTransferFixture(t)

	for i := 0; i < 2; i++ {
		err := uc.Transfer(context.Background(), inventory.TransferInput{
			SourceProductID: "p5", ToWarehouseID: "wh1", Quantity: 100, UserID: "u1",
		})
		require.NoError(t, err)
	}

	dest, err := repos.Stocks.GetBySKUAndWarehouse("PROD004", "wh1")
	require.NoError(t, err)
	assert.Equal(t, int64(200), dest.Quantity)

	products, _, err := repos.Products.List(repository.ProductFilter{Query: "PROD004"}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, products, 2, "solo una fila de producto por bodega")
}

// Exceder el stock de origen rechaza la operación completa sin tocar nada.
func TestTransfer_RechazaExcesoSinMutar(t *testing.T) {
	uc, repos := newTransferFixture(t)

	err := uc.Transfer(context.Background(), inventory.TransferInput{
		SourceProductID: "p5", ToWarehouseID: "wh1", Quantity: 501, UserID: "u1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTransferExceedsStock))

	var exceeds *domain.TransferExceedsStockError
	require.True(t, errors.As(err, &exceeds))
	assert.Equal(t, int64(501), exceeds.Requested)
	assert.Equal(t, int64(500), exceeds.Available)

	source, _ := repos.Stocks.Get("p5", "wh2")
	assert.Equal(t, int64(500), source.Quantity, "el origen queda intacto")
	dest, _ := repos.Stocks.GetBySKUAndWarehouse("PROD004", "wh1")
	assert.Nil(t, dest, "no se creó ningún registro en destino")
	movs, _ := repos.Movements.ListBySKU("PROD004", 0, 0)
	assert.Empty(t, movs, "el libro no registra transferencias fallidas")
}

// Transferir exactamente todo el stock es válido y deja el origen en cero.
func TestTransfer_TodoElStock(t *testing.T) {
	uc, repos := newTransferFixture(t)

	err := uc.Transfer(context.Background(), inventory.TransferInput{
		SourceProductID: "p5", ToWarehouseID: "wh1", Quantity: 500, UserID: "u1",
	})
	require.NoError(t, err)

	source, _ := repos.Stocks.Get("p5", "wh2")
	assert.Equal(t, int64(0), source.Quantity)
}

func TestTransfer_Errores(t *testing.T) {
	uc, _ := newTransferFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, uc.Transfer(ctx, inventory.TransferInput{SourceProductID: "p5", ToWarehouseID: "wh1", Quantity: 0}), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, uc.Transfer(ctx, inventory.TransferInput{SourceProductID: "p5", ToWarehouseID: "wh1", Quantity: -5}), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, uc.Transfer(ctx, inventory.TransferInput{SourceProductID: "nope", ToWarehouseID: "wh1", Quantity: 1}), domain.ErrNotFound)
	// Origen y destino iguales no tiene sentido.
	assert.ErrorIs(t, uc.Transfer(ctx, inventory.TransferInput{SourceProductID: "p5", ToWarehouseID: "wh2", Quantity: 1}), domain.ErrInvalidInput)
	// Producto sin registro de stock (servicio).
	assert.ErrorIs(t, uc.Transfer(ctx, inventory.TransferInput{SourceProductID: "p3", ToWarehouseID: "wh2", Quantity: 1}), domain.ErrNotFound)
}

// brokenWriteStocks delega en el repositorio real pero hace fallar la escritura
// atómica, para ejercitar el camino de compensación.
type brokenWriteStocks struct {
	repository.StockRepository
}

func (s *brokenWriteStocks) UpsertMany(records ...*entity.StockRecord) error {
	return errors.New("almacenamiento no disponible")
}

// Si la escritura de stock falla después de haber clonado el producto en la
// bodega destino, el clon se revierte: nada queda a medio aplicar.
func TestTransfer_CompensaProductoDestinoSiFallaLaEscritura(t *testing.T) {
	_, repos := newTransferFixture(t)
	locker := inventory.NewStockLocker(500 * time.Millisecond)
	uc := inventory.NewTransferUseCase(
		repos.Products,
		&brokenWriteStocks{StockRepository: repos.Stocks},
		repos.Movements,
		locker,
	)

	err := uc.Transfer(context.Background(), inventory.TransferInput{
		SourceProductID: "p1", ToWarehouseID: "wh2", Quantity: 40, UserID: "u1",
	})
	require.Error(t, err)

	orphan, err := repos.Products.GetBySKUAndWarehouse("PROD001", "wh2")
	require.NoError(t, err)
	assert.Nil(t, orphan, "el clon de producto no sobrevive a una transferencia fallida")

	source, err := repos.Stocks.Get("p1", "wh1")
	require.NoError(t, err)
	assert.Equal(t, int64(120), source.Quantity, "el origen queda intacto")

	movs, _ := repos.Movements.ListBySKU("PROD001", 0, 0)
	assert.Empty(t, movs)
}

// brokenLedger simula un libro de movimientos caído.
type brokenLedger struct {
	repository.StockMovementRepository
}

func (l *brokenLedger) Create(_ *entity.StockMovement) error {
	return errors.New("libro no disponible")
}

// El libro es best-effort: su caída no revierte una transferencia ya aplicada.
func TestTransfer_LibroCaidoNoRevierteLaTransferencia(t *testing.T) {
	_, repos := newTransferFixture(t)
	locker := inventory.NewStockLocker(500 * time.Millisecond)
	uc := inventory.NewTransferUseCase(
		repos.Products,
		repos.Stocks,
		&brokenLedger{StockMovementRepository: repos.Movements},
		locker,
	)

	err := uc.Transfer(context.Background(), inventory.TransferInput{
		SourceProductID: "p5", ToWarehouseID: "wh1", Quantity: 200, UserID: "u1",
	})
	require.NoError(t, err)

	source, _ := repos.Stocks.Get("p5", "wh2")
	assert.Equal(t, int64(300), source.Quantity)
	dest, _ := repos.Stocks.GetBySKUAndWarehouse("PROD004", "wh1")
	require.NotNil(t, dest)
	assert.Equal(t, int64(200), dest.Quantity)
}

// Cada transferencia escribe dos filas en el libro con el mismo TransactionID:
// salida negativa en origen, entrada positiva en destino.
func TestTransfer_LibroDeMovimientosPareado(t *testing.T) {
	uc, repos := newTransferFixture(t)

	err := uc.Transfer(context.Background(), inventory.TransferInput{
		SourceProductID: "p5", ToWarehouseID: "wh1", Quantity: 150, UserID: "u6",
	})
	require.NoError(t, err)

	movs, err := repos.Movements.ListBySKU("PROD004", 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, movs[0].TransactionID, movs[1].TransactionID)

	var sum int64
	for _, m := range movs {
		sum += m.Quantity
		assert.Equal(t, "u6", m.CreatedBy)
	}
	assert.Equal(t, int64(0), sum, "las dos filas se anulan entre sí")
}
