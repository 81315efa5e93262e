package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeTransfer = "transfer" // entre bodegas
	MovementTypeAdjust   = "adjust"   // corrección directa de nivel
)

// StockMovement registro del libro de movimientos: cada transferencia genera dos
// filas (negativa en origen, positiva en destino) con el mismo TransactionID;
// cada ajuste genera una fila con el delta aplicado.
type StockMovement struct {
	ID            string
	TransactionID string
	ProductID     string
	WarehouseID   string
	SKU           string
	Type          string // MovementTypeTransfer | MovementTypeAdjust
	Quantity      int64  // unidades base; negativo para salidas
	Reference     string
	CreatedAt     time.Time
	CreatedBy     string // UserID
}
