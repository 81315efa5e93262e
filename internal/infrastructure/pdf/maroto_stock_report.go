// Package pdf implementa la generación del reporte de distribución de stock:
// para una SKU, cuánto inventario hay en cada bodega, con lote, vencimiento y
// valorización al precio de la publicación local.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Producto + SKU          │  Fecha de emisión         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Bodega | Ubicación | Lote | Vencim. | Cant | Valor   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: unidades base y valorización agregada                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pregao-api/internal/application/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ inventory.StockReportPDFGenerator = (*MarotoStockReportGenerator)(nil)

// MarotoStockReportGenerator implementa inventory.StockReportPDFGenerator usando Maroto v2.
type MarotoStockReportGenerator struct{}

// NewMarotoStockReportGenerator construye el generador.
func NewMarotoStockReportGenerator() *MarotoStockReportGenerator { return &MarotoStockReportGenerator{} }

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoStockReportGenerator) GenerateStockReport(
	_ context.Context,
	sku, productName, unit string,
	rows []inventory.StockReportRow,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de distribución de stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sku, productName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow(unit))
	for _, r := range rows {
		m.AddRows(tableDetailRow(r))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rows, unit))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: producto + SKU (izq) y fecha de emisión (der).
func headerRow(sku, productName string) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(productName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("SKU: "+sku, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("DISTRIBUIÇÃO DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+time.Now().Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(unit string) core.Row {
	qty := "Cantidad"
	if unit != "" {
		qty = fmt.Sprintf("Cantidad (%s)", unit)
	}
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	headerRight := header
	headerRight.Align = align.Right
	return row.New(7).Add(
		col.New(3).Add(text.New("Bodega", header)),
		col.New(2).Add(text.New("Ubicación", header)),
		col.New(2).Add(text.New("Lote", header)),
		col.New(2).Add(text.New("Vencimiento", header)),
		col.New(1).Add(text.New(qty, headerRight)),
		col.New(2).Add(text.New("Valorización", headerRight)),
	)
}

func tableDetailRow(r inventory.StockReportRow) core.Row {
	cell := props.Text{Size: 8, Top: 1}
	cellRight := cell
	cellRight.Align = align.Right

	expiry := "—"
	if r.ExpiryDate != nil {
		expiry = r.ExpiryDate.Format("02/01/2006")
	}
	lot := r.Lot
	if lot == "" {
		lot = "—"
	}
	return row.New(6).Add(
		col.New(3).Add(text.New(r.WarehouseName, cell)),
		col.New(2).Add(text.New(r.Location, cell)),
		col.New(2).Add(text.New(lot, cell)),
		col.New(2).Add(text.New(expiry, cell)),
		col.New(1).Add(text.New(fmt.Sprintf("%d", r.Quantity), cellRight)),
		col.New(2).Add(text.New(r.Valuation.StringFixed(2), cellRight)),
	)
}

func totalsRow(rows []inventory.StockReportRow, unit string) core.Row {
	var totalQty int64
	totalValue := decimal.Zero
	for _, r := range rows {
		totalQty += r.Quantity
		totalValue = totalValue.Add(r.Valuation)
	}
	label := fmt.Sprintf("TOTAL: %d %s", totalQty, unit)
	return row.New(8).Add(
		col.New(8).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New(totalValue.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
	)
}
