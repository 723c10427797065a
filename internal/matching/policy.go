package matching

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quantive/matching-engine/internal/types"
)

// MatchResult is the outcome of one submission: the realized notional (sum
// of quantity x price over every unit actually transferred) and the trades
// that realized it. Notional is zero and Trades empty when a rollback rule
// discarded the attempt.
type MatchResult struct {
	Notional decimal.Decimal
	Trades   []*types.Trade
}

func emptyResult() *MatchResult {
	return &MatchResult{Notional: decimal.Zero}
}

// matchPolicy executes one incoming order against the book. The five
// policies share a single consume loop and differ only in whether a price
// gate applies and in how the unmatched remainder is disposed of.
type matchPolicy func(book *OrderBook, incoming *types.Order) *MatchResult

var policies = map[types.OrderKind]matchPolicy{
	types.LimitOrder:             matchLimit,
	types.MarketOrder:            matchMarket,
	types.ImmediateOrCancelOrder: matchImmediateOrCancel,
	types.FillOrKillOrder:        matchFillOrKill,
	types.GoodTillCancelOrder:    matchGoodTillCancel,
}

// fillOutcome is the state left behind by one consume loop. consumed is the
// undo log: every opposing order fully consumed, in consumption order, each
// with its pre-consumption quantity intact, so a rollback is a plain
// reverse-order re-push.
type fillOutcome struct {
	notional  decimal.Decimal
	trades    []*types.Trade
	consumed  []*types.Order
	remaining int64
}

// fill runs the shared consume loop: repeatedly pop the best opposing
// resting order, apply the price gate (unless ungated), honor mandated full
// execution for resting orders too large to consume whole, and otherwise
// consume. Set-aside orders go back onto their side unconditionally after
// the loop, whatever the incoming order's fate.
func fill(book *OrderBook, incoming *types.Order, gated bool) fillOutcome {
	out := fillOutcome{
		notional:  decimal.Zero,
		remaining: incoming.Quantity,
	}

	pop := book.PopSell
	crosses := func(restingPrice int64) bool { return restingPrice <= incoming.Price }
	if incoming.Side == types.Sell {
		pop = book.PopBuy
		crosses = func(restingPrice int64) bool { return restingPrice >= incoming.Price }
	}

	var setAside []*types.Order

	for out.remaining > 0 {
		top, ok := pop()
		if !ok {
			break
		}

		if gated && !crosses(top.Price) {
			book.Push(top)
			break
		}

		// A resting order that mandates full execution cannot be partially
		// consumed; hold it aside and keep looking deeper into the book.
		if top.MandatesFullExecution() && top.Quantity > out.remaining {
			setAside = append(setAside, top)
			continue
		}

		if top.Quantity > out.remaining {
			out.notional = out.notional.Add(notionalOf(out.remaining, top.Price))
			out.trades = append(out.trades, newTrade(incoming, top, out.remaining))
			top.Quantity -= out.remaining
			out.remaining = 0
			book.Push(top)
		} else {
			out.notional = out.notional.Add(notionalOf(top.Quantity, top.Price))
			out.trades = append(out.trades, newTrade(incoming, top, top.Quantity))
			out.remaining -= top.Quantity
			out.consumed = append(out.consumed, top)
		}
	}

	for _, order := range setAside {
		book.Push(order)
	}

	return out
}

// rollback restores every fully consumed opposing order, in reverse
// consumption order and with unchanged quantity, so a failed attempt is an
// observable no-op on the book.
func (out *fillOutcome) rollback(book *OrderBook) {
	for i := len(out.consumed) - 1; i >= 0; i-- {
		book.Push(out.consumed[i])
	}
}

func (out *fillOutcome) result() *MatchResult {
	return &MatchResult{Notional: out.notional, Trades: out.trades}
}

// matchLimit fills completely or not at all. On any shortfall the
// consumption is rolled back and the order rests on its own side at its
// original quantity, returning zero notional.
func matchLimit(book *OrderBook, incoming *types.Order) *MatchResult {
	out := fill(book, incoming, true)
	if out.remaining > 0 {
		out.rollback(book)
		book.Push(incoming)
		return emptyResult()
	}
	return out.result()
}

// matchMarket consumes whatever the opposing side offers at any price and
// discards the unmatched remainder.
func matchMarket(book *OrderBook, incoming *types.Order) *MatchResult {
	out := fill(book, incoming, false)
	return out.result()
}

// matchImmediateOrCancel consumes whatever crosses the limit price and
// discards the unmatched remainder.
func matchImmediateOrCancel(book *OrderBook, incoming *types.Order) *MatchResult {
	out := fill(book, incoming, true)
	return out.result()
}

// matchFillOrKill fills completely or not at all. On any shortfall the
// consumption is rolled back and the order is discarded entirely; it never
// rests.
func matchFillOrKill(book *OrderBook, incoming *types.Order) *MatchResult {
	out := fill(book, incoming, true)
	if out.remaining > 0 {
		out.rollback(book)
		return emptyResult()
	}
	return out.result()
}

// matchGoodTillCancel keeps whatever partial fill it achieved and rests the
// remainder on its own side.
func matchGoodTillCancel(book *OrderBook, incoming *types.Order) *MatchResult {
	out := fill(book, incoming, true)
	if out.remaining > 0 {
		incoming.Quantity = out.remaining
		book.Push(incoming)
	}
	return out.result()
}

func notionalOf(quantity, price int64) decimal.Decimal {
	return decimal.NewFromInt(quantity).Mul(decimal.NewFromInt(price))
}

func newTrade(incoming, resting *types.Order, quantity int64) *types.Trade {
	trade := &types.Trade{
		TradeID:   uuid.NewString(),
		Price:     resting.Price, // always execute at the resting order's price
		Quantity:  quantity,
		Timestamp: time.Now().UTC(),
	}

	if incoming.Side == types.Buy {
		trade.BuyOrderID = incoming.ID
		trade.SellOrderID = resting.ID
	} else {
		trade.BuyOrderID = resting.ID
		trade.SellOrderID = incoming.ID
	}

	return trade
}
