package inventory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/pregao-api/internal/domain"
)

// LockKey clave de bloqueo de un registro de stock. Se usa (SKU, bodega) y no
// (productID, bodega) para que carrito, ajustes y transferencias compitan por el
// mismo recurso físico aunque la fila de producto del destino aún no exista.
func LockKey(sku, warehouseID string) string {
	return sku + "@" + warehouseID
}

// StockLocker serializa las secciones críticas por registro de stock: la
// verificación de capacidad y la escritura deben ser atómicas como una sola
// sección crítica. La adquisición está acotada por un timeout que se reporta
// como fallo reintentable (domain.ErrLockTimeout), nunca como bloqueo indefinido.
type StockLocker struct {
	mu      sync.Mutex
	locks   map[string]chan struct{}
	timeout time.Duration
}

// NewStockLocker construye el locker con el plazo máximo de adquisición.
func NewStockLocker(timeout time.Duration) *StockLocker {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &StockLocker{
		locks:   make(map[string]chan struct{}),
		timeout: timeout,
	}
}

func (l *StockLocker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	return ch
}

// Acquire toma el bloqueo de un registro. Devuelve la función de liberación.
func (l *StockLocker) Acquire(ctx context.Context, key string) (func(), error) {
	ch := l.slot(key)
	timer := time.NewTimer(l.timeout)
	defer timer.Stop()
	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-timer.C:
		return nil, domain.ErrLockTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// AcquireAll toma varios bloqueos en orden global determinista (claves
// ordenadas), lo que evita deadlock entre transferencias concurrentes en
// sentidos opuestos. Si alguna adquisición falla, libera las ya tomadas.
func (l *StockLocker) AcquireAll(ctx context.Context, keys ...string) (func(), error) {
	ordered := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			ordered = append(ordered, k)
		}
	}
	sort.Strings(ordered)

	releases := make([]func(), 0, len(ordered))
	releaseAll := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}
	for _, k := range ordered {
		release, err := l.Acquire(ctx, k)
		if err != nil {
			releaseAll()
			return nil, err
		}
		releases = append(releases, release)
	}
	return releaseAll, nil
}
