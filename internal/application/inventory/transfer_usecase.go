package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/pregao-api/internal/domain"
	"github.com/jhoicas/pregao-api/internal/domain/entity"
	"github.com/jhoicas/pregao-api/internal/domain/repository"
)

// TransferUseCase mueve stock entre bodegas conservando el total: el origen
// disminuye exactamente lo que el destino aumenta, aplicado como una sola
// unidad lógica bajo los bloqueos de ambos registros (adquiridos en orden
// global determinista para evitar deadlock entre transferencias cruzadas).
type TransferUseCase struct {
	products  repository.ProductRepository
	stocks    repository.StockRepository
	movements repository.StockMovementRepository
	locker    *StockLocker
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	products repository.ProductRepository,
	stocks repository.StockRepository,
	movements repository.StockMovementRepository,
	locker *StockLocker,
) *TransferUseCase {
	return &TransferUseCase{products: products, stocks: stocks, movements: movements, locker: locker}
}

// TransferInput entrada de una transferencia.
type TransferInput struct {
	SourceProductID string
	ToWarehouseID   string
	Quantity        int64
	UserID          string
}

// Transfer debita el registro origen y acredita (o crea) el registro de la misma
// SKU en la bodega destino. Si el destino no existe, se crea la fila de producto
// y el registro de stock propagando el lote del origen (prefijado TRANSF- para
// marcar su procedencia) y su fecha de vencimiento. Registra dos filas en el
// libro de movimientos con el mismo TransactionID. Ante cualquier error no se
// aplica ningún cambio.
func (uc *TransferUseCase) Transfer(ctx context.Context, in TransferInput) error {
	if in.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	product, err := uc.products.GetByID(in.SourceProductID)
	if err != nil {
		return fmt.Errorf("consultar producto origen: %w", err)
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.WarehouseID == in.ToWarehouseID {
		return domain.ErrInvalidInput
	}

	release, err := uc.locker.AcquireAll(ctx,
		LockKey(product.SKU, product.WarehouseID),
		LockKey(product.SKU, in.ToWarehouseID),
	)
	if err != nil {
		return err
	}
	defer release()

	source, err := uc.stocks.Get(product.ID, product.WarehouseID)
	if err != nil {
		return fmt.Errorf("consultar stock origen: %w", err)
	}
	if source == nil {
		return domain.ErrNotFound
	}
	if in.Quantity > source.Quantity {
		return &domain.TransferExceedsStockError{
			ProductName: product.Name,
			Requested:   in.Quantity,
			Available:   source.Quantity,
		}
	}

	now := time.Now()
	dest, err := uc.stocks.GetBySKUAndWarehouse(product.SKU, in.ToWarehouseID)
	if err != nil {
		return fmt.Errorf("consultar stock destino: %w", err)
	}
	var destProductID string
	var createdDestProduct bool
	if dest == nil {
		// La SKU no existe en destino: publicar el producto allí y crear su registro.
		clone := *product
		clone.ID = uuid.New().String()
		clone.WarehouseID = in.ToWarehouseID
		clone.CreatedAt = now
		clone.UpdatedAt = now
		if err := uc.products.Create(&clone); err != nil {
			return fmt.Errorf("crear producto en destino: %w", err)
		}
		destProductID = clone.ID
		createdDestProduct = true
		lot := source.Lot
		if lot != "" {
			lot = "TRANSF-" + lot
		}
		dest = &entity.StockRecord{
			ProductID:   clone.ID,
			WarehouseID: in.ToWarehouseID,
			SKU:         product.SKU,
			Quantity:    in.Quantity,
			Lot:         lot,
			ExpiryDate:  source.ExpiryDate,
			UpdatedAt:   now,
		}
	} else {
		destProductID = dest.ProductID
		dest.Quantity += in.Quantity
		dest.UpdatedAt = now
	}

	source.Quantity -= in.Quantity
	source.UpdatedAt = now

	// Débito y crédito como una sola unidad: un lector no puede ver el stock
	// "desaparecido" de ambas ubicaciones a la vez. Si la escritura falla y el
	// producto destino fue creado en este mismo paso, se compensa eliminándolo
	// para no dejar una fila de catálogo sin registro de stock.
	if err := uc.stocks.UpsertMany(source, dest); err != nil {
		if createdDestProduct {
			if delErr := uc.products.Delete(destProductID); delErr != nil {
				log.Error().Err(delErr).
					Str("product_id", destProductID).
					Str("warehouse_id", in.ToWarehouseID).
					Msg("compensar producto destino de transferencia fallida")
			}
		}
		return fmt.Errorf("aplicar transferencia: %w", err)
	}

	// Libro de movimientos: salida en origen, entrada en destino, mismo TransactionID.
	txID := uuid.New().String()
	uc.record(txID, product.ID, product.WarehouseID, product.SKU, -in.Quantity, "transferencia hacia "+in.ToWarehouseID, in.UserID, now)
	uc.record(txID, destProductID, in.ToWarehouseID, product.SKU, in.Quantity, "transferencia desde "+product.WarehouseID, in.UserID, now)
	return nil
}

func (uc *TransferUseCase) record(txID, productID, warehouseID, sku string, quantity int64, reference, userID string, now time.Time) {
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		TransactionID: txID,
		ProductID:     productID,
		WarehouseID:   warehouseID,
		SKU:           sku,
		Type:          entity.MovementTypeTransfer,
		Quantity:      quantity,
		Reference:     reference,
		CreatedAt:     now,
		CreatedBy:     userID,
	}
	// El libro es best-effort: el estado del stock ya está aplicado, pero un
	// libro muerto tiene que ser visible en los logs.
	if err := uc.movements.Create(mov); err != nil {
		log.Error().Err(err).
			Str("sku", sku).
			Str("warehouse_id", warehouseID).
			Msg("registrar movimiento de transferencia")
	}
}
