package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pregao-api/internal/domain"
	"github.com/jhoicas/pregao-api/internal/domain/repository"
)

// StockReportRow una fila del reporte de distribución: la SKU en una bodega.
type StockReportRow struct {
	WarehouseName string
	Location      string
	Lot           string
	Quantity      int64
	ExpiryDate    *time.Time
	Valuation     decimal.Decimal // cantidad × precio unitario de la publicación local
}

// StockReportPDFGenerator puerto del generador de PDF (implementación en infrastructure/pdf).
type StockReportPDFGenerator interface {
	GenerateStockReport(ctx context.Context, sku, productName, unit string, rows []StockReportRow) ([]byte, error)
}

// StockReportUseCase arma el reporte de distribución de una SKU entre bodegas
// y lo renderiza como PDF.
type StockReportUseCase struct {
	products   repository.ProductRepository
	stocks     repository.StockRepository
	warehouses repository.WarehouseRepository
	pdf        StockReportPDFGenerator
}

// NewStockReportUseCase construye el caso de uso.
func NewStockReportUseCase(
	products repository.ProductRepository,
	stocks repository.StockRepository,
	warehouses repository.WarehouseRepository,
	pdf StockReportPDFGenerator,
) *StockReportUseCase {
	return &StockReportUseCase{products: products, stocks: stocks, warehouses: warehouses, pdf: pdf}
}

// Generate genera el PDF de distribución de la SKU. ErrNotFound si la SKU no
// tiene ningún registro de stock.
func (uc *StockReportUseCase) Generate(ctx context.Context, sku string) ([]byte, error) {
	records, err := uc.stocks.ListBySKU(sku)
	if err != nil {
		return nil, fmt.Errorf("consultar stock por SKU: %w", err)
	}
	if len(records) == 0 {
		return nil, domain.ErrNotFound
	}

	list, err := uc.warehouses.List()
	if err != nil {
		return nil, fmt.Errorf("listar bodegas: %w", err)
	}
	warehouseByID := make(map[string]struct{ name, location string }, len(list))
	for _, w := range list {
		warehouseByID[w.ID] = struct{ name, location string }{w.Name, w.Location}
	}

	productName, unit := sku, ""
	rows := make([]StockReportRow, 0, len(records))
	for _, r := range records {
		row := StockReportRow{
			Lot:        r.Lot,
			Quantity:   r.Quantity,
			ExpiryDate: r.ExpiryDate,
		}
		if w, ok := warehouseByID[r.WarehouseID]; ok {
			row.WarehouseName = w.name
			row.Location = w.location
		}
		p, err := uc.products.GetByID(r.ProductID)
		if err != nil {
			return nil, fmt.Errorf("consultar producto %s: %w", r.ProductID, err)
		}
		if p != nil {
			productName = p.Name
			unit = p.Unit
			row.Valuation = p.Price.Mul(decimal.NewFromInt(r.Quantity))
		}
		rows = append(rows, row)
	}

	return uc.pdf.GenerateStockReport(ctx, sku, productName, unit, rows)
}
