package storage

import "github.com/quantive/matching-engine/internal/types"

// TradeTape abstracts the in-session record of executed trades.
// The only implementation is in-memory; durable backends are deliberately
// out of scope for this engine.
type TradeTape interface {
	// Append records a single executed trade
	Append(trade *types.Trade) error

	// Recent retrieves the N most recent trades
	Recent(limit int) ([]*types.Trade, error)

	// Len returns the number of trades currently held
	Len() int

	// Close releases any resources held by the tape
	Close() error
}
