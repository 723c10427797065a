package matching

import (
	"container/heap"
	"sort"

	"github.com/quantive/matching-engine/internal/types"
)

/*
Two priority queues, one per side. Buys pop highest price first, sells pop
lowest. Ties at a price resolve to the lower arrival sequence, so pop order
is deterministic price-time and rollback restores orders to their exact
former position (restored orders keep their original sequence).

Cancellation is a linear scan plus heap.Remove (swap-with-last and re-fix),
which keeps the heap invariant intact after the removal.
*/

// bookSide is a priority collection of resting orders implementing
// heap.Interface. better decides the price priority for the side.
type bookSide struct {
	orders []*types.Order
	better func(a, b *types.Order) bool
}

func (s *bookSide) Len() int { return len(s.orders) }

func (s *bookSide) Less(i, j int) bool {
	a, b := s.orders[i], s.orders[j]
	if a.Price != b.Price {
		return s.better(a, b)
	}
	return a.Sequence < b.Sequence
}

func (s *bookSide) Swap(i, j int) {
	s.orders[i], s.orders[j] = s.orders[j], s.orders[i]
}

func (s *bookSide) Push(x any) {
	s.orders = append(s.orders, x.(*types.Order))
}

func (s *bookSide) Pop() any {
	old := s.orders
	n := len(old)
	order := old[n-1]
	old[n-1] = nil
	s.orders = old[:n-1]
	return order
}

func buyPriority(a, b *types.Order) bool  { return a.Price > b.Price }
func sellPriority(a, b *types.Order) bool { return a.Price < b.Price }

// OrderBook holds the resting buy and sell orders. Any given order id rests
// on at most one side at a time, always with quantity > 0 and a defined
// price (Market orders never rest).
type OrderBook struct {
	buys  *bookSide
	sells *bookSide
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		buys:  &bookSide{better: buyPriority},
		sells: &bookSide{better: sellPriority},
	}
}

// Push inserts a resting order on its own side.
func (orderBook *OrderBook) Push(order *types.Order) {
	if order.Side == types.Buy {
		heap.Push(orderBook.buys, order)
	} else {
		heap.Push(orderBook.sells, order)
	}
}

// PopBuy removes and returns the highest-priced resting buy order.
func (orderBook *OrderBook) PopBuy() (*types.Order, bool) {
	if orderBook.buys.Len() == 0 {
		return nil, false
	}
	return heap.Pop(orderBook.buys).(*types.Order), true
}

// PopSell removes and returns the lowest-priced resting sell order.
func (orderBook *OrderBook) PopSell() (*types.Order, bool) {
	if orderBook.sells.Len() == 0 {
		return nil, false
	}
	return heap.Pop(orderBook.sells).(*types.Order), true
}

// PeekBuy returns the highest-priced resting buy order without removing it.
func (orderBook *OrderBook) PeekBuy() (*types.Order, bool) {
	if orderBook.buys.Len() == 0 {
		return nil, false
	}
	return orderBook.buys.orders[0], true
}

// PeekSell returns the lowest-priced resting sell order without removing it.
func (orderBook *OrderBook) PeekSell() (*types.Order, bool) {
	if orderBook.sells.Len() == 0 {
		return nil, false
	}
	return orderBook.sells.orders[0], true
}

func (orderBook *OrderBook) BuyLen() int  { return orderBook.buys.Len() }
func (orderBook *OrderBook) SellLen() int { return orderBook.sells.Len() }

// BuyVolume returns the total resting quantity on the buy side.
func (orderBook *OrderBook) BuyVolume() int64 { return sideVolume(orderBook.buys) }

// SellVolume returns the total resting quantity on the sell side.
func (orderBook *OrderBook) SellVolume() int64 { return sideVolume(orderBook.sells) }

func sideVolume(side *bookSide) int64 {
	var total int64
	for _, order := range side.orders {
		total += order.Quantity
	}
	return total
}

// Contains reports whether an order with the given id rests on either side.
func (orderBook *OrderBook) Contains(orderID string) bool {
	return findOrderInSide(orderBook.sells, orderID) >= 0 ||
		findOrderInSide(orderBook.buys, orderID) >= 0
}

// Cancel removes the resting order with the given id. The sell side is
// searched before the buy side and at most one order is removed. Returns an
// ORDER_NOT_FOUND error, with the book untouched, when no side holds the id.
func (orderBook *OrderBook) Cancel(orderID string) error {
	if idx := findOrderInSide(orderBook.sells, orderID); idx >= 0 {
		heap.Remove(orderBook.sells, idx)
		return nil
	}
	if idx := findOrderInSide(orderBook.buys, orderID); idx >= 0 {
		heap.Remove(orderBook.buys, idx)
		return nil
	}
	return types.ErrOrderNotFoundError(orderID)
}

func findOrderInSide(side *bookSide, orderID string) int {
	for i, order := range side.orders {
		if order.ID == orderID {
			return i
		}
	}
	return -1
}

// Snapshot returns copies of both sides in full priority order: buys in
// descending price priority, sells in ascending. Used for the shutdown dump
// and for book-equality checks in tests; the book itself is not disturbed.
func (orderBook *OrderBook) Snapshot() (buys, sells []*types.Order) {
	buys = sortedSide(orderBook.buys)
	sells = sortedSide(orderBook.sells)
	return buys, sells
}

func sortedSide(side *bookSide) []*types.Order {
	out := make([]*types.Order, len(side.orders))
	copy(out, side.orders)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Price != out[j].Price {
			return side.better(out[i], out[j])
		}
		return out[i].Sequence < out[j].Sequence
	})
	return out
}
