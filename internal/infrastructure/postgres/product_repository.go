package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pregao-api/internal/domain"
	"github.com/jhoicas/pregao-api/internal/domain/entity"
	"github.com/jhoicas/pregao-api/internal/domain/repository"
	"github.com/jhoicas/pregao-api/pkg/textutil"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx). Las variantes de embalaje se guardan como JSONB.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, warehouse_id, sku, name, name_folded, description, price, kind, track_stock, unit, packaging, image_url, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	packaging, err := json.Marshal(product.Packaging)
	if err != nil {
		return fmt.Errorf("marshal packaging: %w", err)
	}
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.q.Exec(context.Background(), query,
		product.ID, product.CompanyID, product.WarehouseID, product.SKU, product.Name,
		textutil.Fold(product.Name), product.Description, product.Price, product.Kind,
		product.TrackStock, product.Unit, packaging, product.ImageURL,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetBySKUAndWarehouse localiza la fila de producto de esa SKU en una bodega.
func (r *ProductRepo) GetBySKUAndWarehouse(sku, warehouseID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1 AND warehouse_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku, warehouseID))
}

// Update actualiza un producto existente (datos de catálogo).
func (r *ProductRepo) Update(product *entity.Product) error {
	packaging, err := json.Marshal(product.Packaging)
	if err != nil {
		return fmt.Errorf("marshal packaging: %w", err)
	}
	query := `
		UPDATE products
		SET name = $2, name_folded = $3, description = $4, price = $5, unit = $6,
		    packaging = $7, image_url = $8, updated_at = $9
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		product.ID, product.Name, textutil.Fold(product.Name), product.Description,
		product.Price, product.Unit, packaging, product.ImageURL, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List filtra, ordena y pagina. La búsqueda compara contra columnas plegadas
// (minúsculas, sin tildes) precalculadas en el insert. limit <= 0 = sin límite.
func (r *ProductRepo) List(filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	arg := func(v any) string {
		n++
		args = append(args, v)
		return fmt.Sprintf("$%d", n)
	}
	if filter.Kind != "" {
		where += ` AND kind = ` + arg(filter.Kind)
	}
	if filter.WarehouseID != "" {
		where += ` AND warehouse_id = ` + arg(filter.WarehouseID)
	}
	if len(filter.WarehouseIDs) > 0 {
		where += ` AND warehouse_id = ANY(` + arg(filter.WarehouseIDs) + `)`
	}
	if filter.Query != "" {
		q := arg("%" + textutil.Fold(filter.Query) + "%")
		where += ` AND (name_folded LIKE ` + q + ` OR lower(sku) LIKE ` + q + `)`
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	var orderBy string
	switch filter.SortBy {
	case repository.SortPriceAsc:
		orderBy = ` ORDER BY price ASC`
	case repository.SortPriceDesc:
		orderBy = ` ORDER BY price DESC`
	case repository.SortNameDesc:
		orderBy = ` ORDER BY name_folded DESC`
	default:
		orderBy = ` ORDER BY name_folded ASC`
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + orderBy
	if offset > 0 {
		query += ` OFFSET ` + arg(offset)
	}
	if limit > 0 {
		query += ` LIMIT ` + arg(limit)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var folded string
	var packaging []byte
	if err := row.Scan(
		&p.ID, &p.CompanyID, &p.WarehouseID, &p.SKU, &p.Name, &folded, &p.Description,
		&p.Price, &p.Kind, &p.TrackStock, &p.Unit, &packaging, &p.ImageURL,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	if len(packaging) > 0 {
		if err := json.Unmarshal(packaging, &p.Packaging); err != nil {
			return nil, fmt.Errorf("unmarshal packaging: %w", err)
		}
	}
	return &p, nil
}
