package matching

import (
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/quantive/matching-engine/internal/storage"
	"github.com/quantive/matching-engine/internal/types"
)

// Engine coordinates command processing against a single shared order book.
// It is an explicit owned instance: create one at process start and pass it
// to whoever handles commands.
//
// Processing is fully synchronous. The mutex is held for the entire duration
// of a Submit or Cancel, so the multi-step pop/push sequence of a match
// (including any rollback) is observed atomically by every other caller.
type Engine struct {
	mu        sync.Mutex
	orderBook *OrderBook
	tape      storage.TradeTape
	logger    *zap.Logger

	// submitted holds every id accepted this session. Ids are never
	// reusable, even after a fill or a cancel.
	submitted map[string]struct{}
	sequence  uint64
}

// NewEngine creates an engine with no trade tape and a no-op logger.
func NewEngine() *Engine {
	return NewEngineWithTape(nil, zap.NewNop())
}

// NewEngineWithTape creates an engine that records executed trades on the
// given tape. A nil tape disables recording.
func NewEngineWithTape(tape storage.TradeTape, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		orderBook: NewOrderBook(),
		tape:      tape,
		logger:    logger,
		submitted: make(map[string]struct{}),
	}
}

// Submit validates the command, builds the typed order and runs its matching
// policy against the book. Validation failures reject the command before any
// book mutation. The returned result carries the realized notional, zero
// when a rollback rule caused no net trade.
func (e *Engine) Submit(cmd *types.Command) (*MatchResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	policy, err := e.validateSubmit(cmd)
	if err != nil {
		return nil, err
	}

	e.sequence++
	order := types.NewOrder(cmd.ID, cmd.Kind, cmd.Side, cmd.Quantity, cmd.Price)
	order.Sequence = e.sequence
	e.submitted[cmd.ID] = struct{}{}

	result := policy(e.orderBook, order)

	if e.tape != nil {
		for _, trade := range result.Trades {
			if err := e.tape.Append(trade); err != nil {
				e.logger.Warn("failed to record trade",
					zap.String("trade_id", trade.TradeID),
					zap.Error(err))
			}
		}
	}

	e.logger.Info("order processed",
		zap.String("order_id", cmd.ID),
		zap.String("kind", cmd.Kind.String()),
		zap.String("side", cmd.Side.String()),
		zap.Int("trades", len(result.Trades)),
		zap.String("notional", result.Notional.String()))

	return result, nil
}

// validateSubmit rejects malformed commands before any mutation and returns
// the matching policy for the order kind.
func (e *Engine) validateSubmit(cmd *types.Command) (matchPolicy, error) {
	policy, ok := policies[cmd.Kind]
	if !ok {
		return nil, types.ErrInvalidOrderTypeError(cmd.Kind.String())
	}
	if cmd.Side != types.Buy && cmd.Side != types.Sell {
		return nil, types.ErrInvalidSideError(cmd.Side.String())
	}
	if cmd.Quantity <= 0 {
		return nil, types.ErrInvalidQuantityError(strconv.FormatInt(cmd.Quantity, 10))
	}
	if cmd.Kind != types.MarketOrder && (!cmd.HasPrice || cmd.Price <= 0) {
		return nil, types.ErrMissingPriceError(cmd.Kind)
	}
	if _, exists := e.submitted[cmd.ID]; exists {
		return nil, types.ErrDuplicateOrderIDError(cmd.ID)
	}
	return policy, nil
}

// Cancel removes the resting order with the given id, searching the sell
// side before the buy side. An unknown id yields ORDER_NOT_FOUND and leaves
// the book untouched.
func (e *Engine) Cancel(orderID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.orderBook.Cancel(orderID); err != nil {
		e.logger.Warn("cancel failed", zap.String("order_id", orderID), zap.Error(err))
		return err
	}

	e.logger.Info("order cancelled", zap.String("order_id", orderID))
	return nil
}

// Snapshot returns the resting book contents: buys in descending price
// priority, sells in ascending.
func (e *Engine) Snapshot() (buys, sells []*types.Order) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.orderBook.Snapshot()
}

// RecentTrades returns the most recent executed trades from the tape.
func (e *Engine) RecentTrades(limit int) ([]*types.Trade, error) {
	if e.tape == nil {
		return nil, nil
	}
	return e.tape.Recent(limit)
}

// Close releases the engine's resources.
func (e *Engine) Close() error {
	if e.tape == nil {
		return nil
	}
	return e.tape.Close()
}
