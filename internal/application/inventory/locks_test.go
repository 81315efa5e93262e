package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pregao-api/internal/application/inventory"
	"github.com/jhoicas/pregao-api/internal/domain"
)

func TestStockLocker_AdquirirYLiberar(t *testing.T) {
	locker := inventory.NewStockLocker(100 * time.Millisecond)
	key := inventory.LockKey("PROD001", "wh1")

	release, err := locker.Acquire(context.Background(), key)
	require.NoError(t, err)
	release()

	// Liberado: una segunda adquisición no espera.
	release, err = locker.Acquire(context.Background(), key)
	require.NoError(t, err)
	release()
}

// Un bloqueo retenido vence por timeout, nunca espera indefinidamente.
func TestStockLocker_TimeoutSobreClaveRetenida(t *testing.T) {
	locker := inventory.NewStockLocker(50 * time.Millisecond)
	key := inventory.LockKey("PROD001", "wh1")

	release, err := locker.Acquire(context.Background(), key)
	require.NoError(t, err)
	defer release()

	start := time.Now()
	_, err = locker.Acquire(context.Background(), key)
	assert.ErrorIs(t, err, domain.ErrLockTimeout)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

// Claves distintas no compiten entre sí.
func TestStockLocker_ClavesIndependientes(t *testing.T) {
	locker := inventory.NewStockLocker(50 * time.Millisecond)

	r1, err := locker.Acquire(context.Background(), inventory.LockKey("PROD001", "wh1"))
	require.NoError(t, err)
	defer r1()

	r2, err := locker.Acquire(context.Background(), inventory.LockKey("PROD001", "wh2"))
	require.NoError(t, err)
	r2()
}

func TestStockLocker_ContextoCancelado(t *testing.T) {
	locker := inventory.NewStockLocker(5 * time.Second)
	key := inventory.LockKey("PROD001", "wh1")

	release, err := locker.Acquire(context.Background(), key)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = locker.Acquire(ctx, key)
	assert.ErrorIs(t, err, context.Canceled)
}

// AcquireAll deduplica claves repetidas: una transferencia cuya SKU aparece dos
// veces en la lista no debe bloquearse contra sí misma.
func TestStockLocker_AcquireAllDeduplica(t *testing.T) {
	locker := inventory.NewStockLocker(50 * time.Millisecond)
	key := inventory.LockKey("PROD001", "wh1")

	release, err := locker.AcquireAll(context.Background(), key, key, key)
	require.NoError(t, err)
	release()

	// La liberación dejó la clave disponible.
	r, err := locker.Acquire(context.Background(), key)
	require.NoError(t, err)
	r()
}

// Si una clave del conjunto está retenida, AcquireAll falla y devuelve las ya
// tomadas, sin dejar bloqueos huérfanos.
func TestStockLocker_AcquireAllLiberaAnteFallo(t *testing.T) {
	locker := inventory.NewStockLocker(50 * time.Millisecond)
	keyA := inventory.LockKey("PROD001", "wh1")
	keyB := inventory.LockKey("PROD001", "wh2")

	holdB, err := locker.Acquire(context.Background(), keyB)
	require.NoError(t, err)

	_, err = locker.AcquireAll(context.Background(), keyA, keyB)
	assert.ErrorIs(t, err, domain.ErrLockTimeout)

	// keyA fue devuelta: se puede adquirir de inmediato.
	rA, err := locker.Acquire(context.Background(), keyA)
	require.NoError(t, err)
	rA()

	holdB()
}
