package stock

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

func TestMemoryLedger_SetStock_And_CheckAvailable(t *testing.T) {
	ledger := NewMemoryLedger()
	ledger.SetStock(1, 10, true)
	ledger.SetStock(2, 0, true)

	assert.True(t, ledger.CheckAvailable(1, 10))
	assert.False(t, ledger.CheckAvailable(1, 11))
	assert.False(t, ledger.CheckAvailable(2, 1))
	assert.False(t, ledger.CheckAvailable(999, 1))
}

func TestMemoryLedger_CheckAvailable_InactiveProduct(t *testing.T) {
	ledger := NewMemoryLedger()
	ledger.SetStock(1, 10, false)

	assert.False(t, ledger.CheckAvailable(1, 1))
}

func TestMemoryLedger_Reserve_Success(t *testing.T) {
	ledger := NewMemoryLedger()
	ledger.SetStock(1, 10, true)

	require.NoError(t, ledger.Reserve(1, 4))
	assert.Equal(t, 6, ledger.Available(1))
}

func TestMemoryLedger_Reserve_Insufficient(t *testing.T) {
	ledger := NewMemoryLedger()
	ledger.SetStock(1, 3, true)

	err := ledger.Reserve(1, 5)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(1), stockErr.ProductID)
	assert.Equal(t, 3, stockErr.Available)

	// Stock unchanged after a refused reservation
	assert.Equal(t, 3, ledger.Available(1))
}

func TestMemoryLedger_Reserve_UnknownProduct(t *testing.T) {
	ledger := NewMemoryLedger()

	err := ledger.Reserve(42, 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestMemoryLedger_Reserve_InactiveReportsZeroAvailable(t *testing.T) {
	ledger := NewMemoryLedger()
	ledger.SetStock(1, 10, false)

	err := ledger.Reserve(1, 1)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 0, stockErr.Available)
}

func TestMemoryLedger_Release_RestoresStock(t *testing.T) {
	ledger := NewMemoryLedger()
	ledger.SetStock(1, 10, true)

	require.NoError(t, ledger.Reserve(1, 7))
	require.NoError(t, ledger.Release(1, 7))

	assert.Equal(t, 10, ledger.Available(1))
}

// N concurrent single-unit reservations against stock K (N > K) must yield
// exactly K successes and N-K insufficient-stock failures.
func TestMemoryLedger_ConcurrentReserve_NoOversell(t *testing.T) {
	const (
		stockK  = 5
		workers = 40
	)

	ledger := NewMemoryLedger()
	ledger.SetStock(1, stockK, true)

	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- ledger.Reserve(1, 1)
		}()
	}
	wg.Wait()
	close(results)

	successes, failures := 0, 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		var stockErr *domain.InsufficientStockError
		require.True(t, errors.As(err, &stockErr))
		failures++
	}

	assert.Equal(t, stockK, successes)
	assert.Equal(t, workers-stockK, failures)
	assert.Equal(t, 0, ledger.Available(1))
}
