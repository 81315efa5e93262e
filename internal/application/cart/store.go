package cart

import (
	"sync"

	"github.com/jhoicas/pregao-api/internal/domain/entity"
)

// cartStore guarda los carritos en memoria, uno por sesión, cada uno con su
// propio mutex: las mutaciones de un carrito se serializan entre sí pero dos
// sesiones distintas no compiten.
type cartStore struct {
	mu    sync.Mutex
	carts map[string]*cartSlot
}

type cartSlot struct {
	mu   sync.Mutex
	cart *entity.Cart
}

func newCartStore() *cartStore {
	return &cartStore{carts: make(map[string]*cartSlot)}
}

// acquire devuelve el carrito bloqueado y la función para liberarlo. Crea el
// carrito vacío si la sesión aún no tiene uno.
func (s *cartStore) acquire(cartID string) (*entity.Cart, func()) {
	s.mu.Lock()
	slot, ok := s.carts[cartID]
	if !ok {
		slot = &cartSlot{cart: &entity.Cart{ID: cartID}}
		s.carts[cartID] = slot
	}
	s.mu.Unlock()

	slot.mu.Lock()
	return slot.cart, slot.mu.Unlock
}
