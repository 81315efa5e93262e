package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pregao-api/internal/domain"
	"github.com/jhoicas/pregao-api/internal/domain/entity"
	"github.com/jhoicas/pregao-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `product_id, warehouse_id, sku, quantity, lot, expiry_date, updated_at`

// Get obtiene el registro de stock de un producto en una bodega, o nil si no existe.
func (r *StockRepo) Get(productID, warehouseID string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE product_id = $1 AND warehouse_id = $2`
	return scanStockOne(r.q.QueryRow(context.Background(), query, productID, warehouseID))
}

// GetByProduct localiza el registro del producto sin conocer la bodega.
func (r *StockRepo) GetByProduct(productID string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE product_id = $1`
	return scanStockOne(r.q.QueryRow(context.Background(), query, productID))
}

// ListBySKU devuelve los registros de esa SKU en todas las bodegas.
func (r *StockRepo) ListBySKU(sku string) ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE sku = $1`
	return r.list(query, sku)
}

// GetBySKUAndWarehouse localiza el registro de esa SKU en una bodega.
func (r *StockRepo) GetBySKUAndWarehouse(sku, warehouseID string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE sku = $1 AND warehouse_id = $2`
	return scanStockOne(r.q.QueryRow(context.Background(), query, sku, warehouseID))
}

// ListByWarehouse devuelve todos los registros de una bodega.
func (r *StockRepo) ListByWarehouse(warehouseID string) ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE warehouse_id = $1`
	return r.list(query, warehouseID)
}

// Upsert inserta o reemplaza el registro de un (producto, bodega).
func (r *StockRepo) Upsert(record *entity.StockRecord) error {
	return upsert(r.q, record)
}

// UpsertMany aplica varios registros en una transacción: débito y crédito de una
// transferencia se vuelven visibles juntos o no se aplican.
func (r *StockRepo) UpsertMany(records ...*entity.StockRecord) error {
	ctx := context.Background()
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin upsert stock: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	for _, rec := range records {
		if err := upsert(tx, rec); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit upsert stock: %w", err)
	}
	return nil
}

func upsert(q Querier, record *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET sku = EXCLUDED.sku, quantity = EXCLUDED.quantity,
		              lot = EXCLUDED.lot, expiry_date = EXCLUDED.expiry_date, updated_at = now()`
	_, err := q.Exec(context.Background(), query,
		record.ProductID, record.WarehouseID, record.SKU, record.Quantity, record.Lot, record.ExpiryDate,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// Adjust fija el nivel a newLevel y devuelve el registro resultante.
func (r *StockRepo) Adjust(productID, warehouseID string, newLevel int64) (*entity.StockRecord, error) {
	if newLevel < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	query := `
		UPDATE stock_records SET quantity = $3, updated_at = now()
		WHERE product_id = $1 AND warehouse_id = $2
		RETURNING ` + stockColumns
	rec, err := scanStockOne(r.q.QueryRow(context.Background(), query, productID, warehouseID, newLevel))
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// Debit descuenta amount unidades base; el guard de la query nunca deja el nivel negativo.
func (r *StockRepo) Debit(productID, warehouseID string, amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidQuantity
	}
	query := `
		UPDATE stock_records SET quantity = quantity - $3, updated_at = now()
		WHERE product_id = $1 AND warehouse_id = $2 AND quantity >= $3`
	cmd, err := r.q.Exec(context.Background(), query, productID, warehouseID, amount)
	if err != nil {
		return fmt.Errorf("debit stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// Credit suma amount unidades base al registro.
func (r *StockRepo) Credit(productID, warehouseID string, amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidQuantity
	}
	query := `
		UPDATE stock_records SET quantity = quantity + $3, updated_at = now()
		WHERE product_id = $1 AND warehouse_id = $2`
	cmd, err := r.q.Exec(context.Background(), query, productID, warehouseID, amount)
	if err != nil {
		return fmt.Errorf("credit stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StockRepo) list(query string, args ...any) ([]*entity.StockRecord, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.SKU, &s.Quantity, &s.Lot, &s.ExpiryDate, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func scanStockOne(row pgx.Row) (*entity.StockRecord, error) {
	var s entity.StockRecord
	err := row.Scan(&s.ProductID, &s.WarehouseID, &s.SKU, &s.Quantity, &s.Lot, &s.ExpiryDate, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}
