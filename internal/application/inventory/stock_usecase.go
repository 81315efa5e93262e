package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/pregao-api/internal/application/dto"
	"github.com/jhoicas/pregao-api/internal/domain"
	"github.com/jhoicas/pregao-api/internal/domain/entity"
	"github.com/jhoicas/pregao-api/internal/domain/repository"
)

// StockUseCase operaciones directas sobre el almacén de inventario: corrección
// de nivel (ajuste) y consulta de distribución de una SKU entre bodegas.
type StockUseCase struct {
	products   repository.ProductRepository
	stocks     repository.StockRepository
	warehouses repository.WarehouseRepository
	movements  repository.StockMovementRepository
	locker     *StockLocker
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	products repository.ProductRepository,
	stocks repository.StockRepository,
	warehouses repository.WarehouseRepository,
	movements repository.StockMovementRepository,
	locker *StockLocker,
) *StockUseCase {
	return &StockUseCase{products: products, stocks: stocks, warehouses: warehouses, movements: movements, locker: locker}
}

// Adjust fija el nivel de stock del producto a newLevel (corrección directa,
// p.ej. tras un conteo físico). Pasa por la misma disciplina de bloqueo que el
// carrito y las transferencias, y registra el delta en el libro de movimientos.
func (uc *StockUseCase) Adjust(ctx context.Context, productID string, newLevel int64, userID string) (*dto.StockRecordResponse, error) {
	if newLevel < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("consultar producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.TrackStock {
		return nil, domain.ErrInvalidInput
	}

	release, err := uc.locker.Acquire(ctx, LockKey(product.SKU, product.WarehouseID))
	if err != nil {
		return nil, err
	}
	defer release()

	var previous int64
	if current, err := uc.stocks.Get(product.ID, product.WarehouseID); err != nil {
		return nil, fmt.Errorf("consultar stock: %w", err)
	} else if current != nil {
		previous = current.Quantity
	}

	record, err := uc.stocks.Adjust(product.ID, product.WarehouseID, newLevel)
	if err != nil {
		return nil, fmt.Errorf("ajustar stock: %w", err)
	}
	if record.SKU == "" {
		record.SKU = product.SKU
		if err := uc.stocks.Upsert(record); err != nil {
			return nil, fmt.Errorf("ajustar stock: %w", err)
		}
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		TransactionID: uuid.New().String(),
		ProductID:     product.ID,
		WarehouseID:   product.WarehouseID,
		SKU:           product.SKU,
		Type:          entity.MovementTypeAdjust,
		Quantity:      newLevel - previous,
		Reference:     "corrección de nivel",
		CreatedAt:     now,
		CreatedBy:     userID,
	}
	// Best-effort: el nivel ya quedó aplicado, pero el fallo del libro se loguea.
	if err := uc.movements.Create(mov); err != nil {
		log.Error().Err(err).
			Str("sku", product.SKU).
			Str("warehouse_id", product.WarehouseID).
			Msg("registrar movimiento de ajuste")
	}

	out := toStockRecordResponse(record, "")
	return &out, nil
}

// StockBySKU devuelve la distribución de una SKU entre todas las bodegas, con
// el total agregado (vista "Ver Locais" del inventario).
func (uc *StockUseCase) StockBySKU(sku string) (*dto.StockBySKUResponse, error) {
	records, err := uc.stocks.ListBySKU(sku)
	if err != nil {
		return nil, fmt.Errorf("consultar stock por SKU: %w", err)
	}

	list, err := uc.warehouses.List()
	if err != nil {
		return nil, fmt.Errorf("listar bodegas: %w", err)
	}
	names := make(map[string]string, len(list))
	for _, w := range list {
		names[w.ID] = w.Name
	}

	out := &dto.StockBySKUResponse{SKU: sku, Records: make([]dto.StockRecordResponse, 0, len(records))}
	for _, r := range records {
		out.Total += r.Quantity
		out.Records = append(out.Records, toStockRecordResponse(r, names[r.WarehouseID]))
	}
	return out, nil
}

// Movements lista el libro de movimientos de una SKU.
func (uc *StockUseCase) Movements(sku string, limit, offset int) ([]dto.MovementResponse, error) {
	list, err := uc.movements.ListBySKU(sku, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("consultar movimientos: %w", err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			ProductID:     m.ProductID,
			WarehouseID:   m.WarehouseID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			Reference:     m.Reference,
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
		})
	}
	return out, nil
}

func toStockRecordResponse(r *entity.StockRecord, warehouseName string) dto.StockRecordResponse {
	return dto.StockRecordResponse{
		ProductID:     r.ProductID,
		WarehouseID:   r.WarehouseID,
		WarehouseName: warehouseName,
		SKU:           r.SKU,
		Quantity:      r.Quantity,
		Lot:           r.Lot,
		ExpiryDate:    r.ExpiryDate,
		UpdatedAt:     r.UpdatedAt,
	}
}
