package memory

import (
	"sync"

	"github.com/quantive/matching-engine/internal/types"
)

// InMemoryTradeTape implements storage.TradeTape using a circular buffer.
// Keeps only the N most recent trades in memory.
// Thread-safe for concurrent access via RWMutex.
type InMemoryTradeTape struct {
	trades  []*types.Trade
	maxSize int
	mutex   sync.RWMutex
}

// NewInMemoryTradeTape creates a new in-memory trade tape with a size limit
func NewInMemoryTradeTape(maxSize int) *InMemoryTradeTape {
	return &InMemoryTradeTape{
		trades:  make([]*types.Trade, 0, maxSize),
		maxSize: maxSize,
	}
}

func (t *InMemoryTradeTape) Append(trade *types.Trade) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.trades = append(t.trades, trade)

	// Trim to max size (circular buffer behavior)
	if len(t.trades) > t.maxSize {
		t.trades = t.trades[len(t.trades)-t.maxSize:]
	}

	return nil
}

func (t *InMemoryTradeTape) Recent(limit int) ([]*types.Trade, error) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	// Clamp limit to actual size
	if limit <= 0 || limit > len(t.trades) {
		limit = len(t.trades)
	}

	// Return last 'limit' trades
	start := len(t.trades) - limit
	result := make([]*types.Trade, limit)
	copy(result, t.trades[start:])

	return result, nil
}

func (t *InMemoryTradeTape) Len() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return len(t.trades)
}

func (t *InMemoryTradeTape) Close() error {
	// No cleanup needed for in-memory tape
	return nil
}
