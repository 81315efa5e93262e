package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// ErrInvalidQuantity cantidad no positiva o no entera; el caller debe re-pedir el dato.
	ErrInvalidQuantity = errors.New("cantidad inválida")
	// ErrItemNotFound la línea de carrito referenciada no existe.
	ErrItemNotFound = errors.New("ítem no encontrado en el carrito")
	// ErrInsufficientStock la reserva solicitada excede la capacidad restante del registro de stock.
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrTransferExceedsStock la cantidad a transferir excede el stock de la bodega origen.
	ErrTransferExceedsStock = errors.New("la transferencia excede el stock disponible")
	// ErrLockTimeout no se pudo adquirir el bloqueo del registro de stock dentro del plazo.
	// Es un fallo reintentable, nunca un cuelgue.
	ErrLockTimeout = errors.New("tiempo de espera agotado adquiriendo bloqueo de stock")
)

// InsufficientStockError detalla una reserva rechazada: cuántas unidades base quedan
// libres en el registro y la cantidad máxima satisfacible en las unidades del
// embalaje solicitado, para que el caller pueda sugerirla.
type InsufficientStockError struct {
	ProductName    string
	Unit           string // unidad base del producto
	AvailableUnits int64  // unidades base restantes (stock − ya reservado)
	MaxQuantity    int64  // floor(AvailableUnits / conversionFactor)
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: máximo %d unidad(es) en este embalaje (quedan %d %s en total)",
		e.ProductName, e.MaxQuantity, e.AvailableUnits, e.Unit)
}

// Is permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// TransferExceedsStockError transferencia rechazada por stock insuficiente en origen.
type TransferExceedsStockError struct {
	ProductName string
	Requested   int64
	Available   int64
}

func (e *TransferExceedsStockError) Error() string {
	return fmt.Sprintf("no se pueden transferir %d unidades de %q: stock disponible %d",
		e.Requested, e.ProductName, e.Available)
}

// Is permite errors.Is(err, ErrTransferExceedsStock).
func (e *TransferExceedsStockError) Is(target error) bool { return target == ErrTransferExceedsStock }

// CompanyCycleError árbol de empresas malformado: la cadena de padres forma un ciclo
// o referencia una empresa inexistente. Es un error de configuración fatal, no de
// entrada de usuario; el cálculo de visibilidad se aborta en vez de iterar infinito.
type CompanyCycleError struct {
	CompanyID string
}

func (e *CompanyCycleError) Error() string {
	return fmt.Sprintf("árbol de empresas malformado: ciclo o padre inválido detectado en la empresa %s", e.CompanyID)
}
