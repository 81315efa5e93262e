package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pregao-api/internal/application/dto"
	"github.com/jhoicas/pregao-api/internal/application/inventory"
	"github.com/jhoicas/pregao-api/internal/domain"
	"github.com/jhoicas/pregao-api/internal/domain/entity"
	"github.com/jhoicas/pregao-api/internal/domain/repository"
)

// Service motor de reservas del carrito. Mantiene un carrito por sesión
// (cartID = usuario) y garantiza que, para cada registro de stock con
// seguimiento, la suma de consumo en unidades base de todas las líneas que
// mapean a ese registro nunca excede su nivel, después de cada mutación.
//
// La identidad de línea es por embalaje (producto+bodega+embalaje), pero la
// capacidad es por registro de stock: la validación mira también las líneas
// hermanas del mismo producto+bodega con otro embalaje.
//
// La mutación de un carrito es de dueño único (una sesión), pero la verificación
// de capacidad se serializa vía StockLocker con cualquier ajuste o transferencia
// concurrente que toque el mismo registro.
type Service struct {
	carts    *cartStore
	products repository.ProductRepository
	stocks   repository.StockRepository
	locker   *inventory.StockLocker
}

// NewService construye el motor de reservas.
func NewService(products repository.ProductRepository, stocks repository.StockRepository, locker *inventory.StockLocker) *Service {
	return &Service{
		carts:    newCartStore(),
		products: products,
		stocks:   stocks,
		locker:   locker,
	}
}

// AddLine agrega quantity unidades del producto (en el embalaje indicado;
// packagingID vacío = unidad base). Si ya existe una línea con la misma clave
// derivada, se fusiona sumando la cantidad; si no, se agrega al final
// preservando el orden de inserción. Devuelve domain.ErrInvalidQuantity,
// domain.ErrNotFound o *domain.InsufficientStockError; ante cualquier error el
// carrito queda sin modificar.
func (s *Service) AddLine(ctx context.Context, cartID string, in dto.AddLineRequest) error {
	if in.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	product, err := s.products.GetByID(in.ProductID)
	if err != nil {
		return fmt.Errorf("consultar producto: %w", err)
	}
	if product == nil {
		return domain.ErrNotFound
	}

	factor := int64(1)
	price := product.Price
	unitLabel := product.Unit
	packagingID := entity.BasePackagingID
	if in.PackagingID != "" && in.PackagingID != entity.BasePackagingID {
		pkg := product.FindPackaging(in.PackagingID)
		if pkg == nil {
			return domain.ErrNotFound
		}
		if pkg.ConversionFactor <= 0 {
			return domain.ErrInvalidInput
		}
		factor = pkg.ConversionFactor
		price = pkg.Price
		unitLabel = pkg.Unit
		packagingID = pkg.ID
	}
	key := entity.LineKey(product.ID, product.WarehouseID, packagingID)

	c, unlock := s.carts.acquire(cartID)
	defer unlock()

	if product.TrackStock {
		release, err := s.locker.Acquire(ctx, inventory.LockKey(product.SKU, product.WarehouseID))
		if err != nil {
			return err
		}
		defer release()

		level, err := s.stockLevel(product.ID, product.WarehouseID)
		if err != nil {
			return err
		}
		// Reservado por todas las líneas existentes del mismo registro,
		// incluida la de la misma clave: al fusionar vale actual + nuevo ≤ stock.
		reserved := c.ReservedBaseUnits(product.ID, product.WarehouseID, "")
		requested := in.Quantity * factor
		if reserved+requested > level {
			return insufficient(product.Name, product.Unit, level, reserved, factor)
		}
		s.apply(c, key, product, packagingID, unitLabel, price, factor, in.Quantity)
		return nil
	}

	s.apply(c, key, product, packagingID, unitLabel, price, factor, in.Quantity)
	return nil
}

// UpdateLineQuantity fija (no suma) la cantidad de la línea. newQuantity ≤ 0
// equivale a RemoveLine. La verificación de capacidad excluye esta línea y
// cuenta solo las hermanas del mismo registro de stock con otra clave.
func (s *Service) UpdateLineQuantity(ctx context.Context, cartID, lineKey string, newQuantity int64) error {
	c, unlock := s.carts.acquire(cartID)
	defer unlock()

	if newQuantity <= 0 {
		c.Remove(lineKey)
		c.UpdatedAt = time.Now()
		return nil
	}
	line := c.Find(lineKey)
	if line == nil {
		return domain.ErrItemNotFound
	}

	if line.TrackStock {
		release, err := s.locker.Acquire(ctx, inventory.LockKey(line.SKU, line.WarehouseID))
		if err != nil {
			return err
		}
		defer release()

		level, err := s.stockLevel(line.ProductID, line.WarehouseID)
		if err != nil {
			return err
		}
		others := c.ReservedBaseUnits(line.ProductID, line.WarehouseID, line.Key)
		requested := newQuantity * line.ConversionFactor
		if others+requested > level {
			return insufficient(line.ProductName, line.Unit, level, others, line.ConversionFactor)
		}
	}

	line.Quantity = newQuantity
	c.UpdatedAt = time.Now()
	return nil
}

// RemoveLine elimina la línea. Idempotente: clave inexistente es no-op.
func (s *Service) RemoveLine(cartID, lineKey string) {
	c, unlock := s.carts.acquire(cartID)
	defer unlock()
	c.Remove(lineKey)
	c.UpdatedAt = time.Now()
}

// Clear vacía el carrito completo (ej. tras el checkout).
func (s *Service) Clear(cartID string) {
	c, unlock := s.carts.acquire(cartID)
	defer unlock()
	c.Lines = nil
	c.UpdatedAt = time.Now()
}

// Get devuelve el carrito con sus proyecciones ItemCount y Total, recalculadas
// sobre la colección de líneas.
func (s *Service) Get(cartID string) *dto.CartResponse {
	c, unlock := s.carts.acquire(cartID)
	defer unlock()

	out := &dto.CartResponse{
		Lines:     make([]dto.CartLineResponse, 0, len(c.Lines)),
		ItemCount: c.ItemCount(),
		Total:     c.Total(),
	}
	for _, l := range c.Lines {
		out.Lines = append(out.Lines, dto.CartLineResponse{
			Key:              l.Key,
			ProductID:        l.ProductID,
			WarehouseID:      l.WarehouseID,
			PackagingID:      l.PackagingID,
			SKU:              l.SKU,
			ProductName:      l.ProductName,
			UnitLabel:        l.UnitLabel,
			Price:            l.Price,
			ConversionFactor: l.ConversionFactor,
			Quantity:         l.Quantity,
			BaseUnits:        l.BaseUnits(),
			Subtotal:         l.Subtotal(),
		})
	}
	return out
}

// stockLevel nivel actual del registro; producto sin registro = 0 disponible.
func (s *Service) stockLevel(productID, warehouseID string) (int64, error) {
	record, err := s.stocks.Get(productID, warehouseID)
	if err != nil {
		return 0, fmt.Errorf("consultar stock: %w", err)
	}
	if record == nil {
		return 0, nil
	}
	return record.Quantity, nil
}

// apply fusiona sobre la línea existente o agrega una nueva al final.
func (s *Service) apply(c *entity.Cart, key string, product *entity.Product, packagingID, unitLabel string, price decimal.Decimal, factor, quantity int64) {
	if line := c.Find(key); line != nil {
		line.Quantity += quantity
		c.UpdatedAt = time.Now()
		return
	}
	now := time.Now()
	c.Lines = append(c.Lines, &entity.CartLine{
		Key:              key,
		ProductID:        product.ID,
		WarehouseID:      product.WarehouseID,
		PackagingID:      packagingID,
		SKU:              product.SKU,
		ProductName:      product.Name,
		Unit:             product.Unit,
		UnitLabel:        unitLabel,
		Price:            price,
		ConversionFactor: factor,
		Quantity:         quantity,
		TrackStock:       product.TrackStock,
		AddedAt:          now,
	})
	c.UpdatedAt = now
}

func insufficient(name, unit string, level, reserved, factor int64) error {
	available := level - reserved
	if available < 0 {
		available = 0
	}
	return &domain.InsufficientStockError{
		ProductName:    name,
		Unit:           unit,
		AvailableUnits: available,
		MaxQuantity:    available / factor,
	}
}
