package main

import (
	"fmt"
	"strings"

	"github.com/quantive/matching-engine/internal/types"
)

// renderBook formats the shutdown dump: resting buys in descending price
// priority, then resting sells in ascending.
func renderBook(buys, sells []*types.Order) string {
	var b strings.Builder
	b.WriteString("BUY Queue: [")
	b.WriteString(renderOrders(buys))
	b.WriteString("]\n")
	b.WriteString("SELL Queue: [")
	b.WriteString(renderOrders(sells))
	b.WriteString("]\n")
	return b.String()
}

func renderOrders(orders []*types.Order) string {
	parts := make([]string, len(orders))
	for i, order := range orders {
		parts[i] = renderOrder(order)
	}
	return strings.Join(parts, ", ")
}

// renderOrder formats one resting order as (id kind side quantity price).
// Market orders carry no price; they never rest, but the guard keeps the
// renderer total.
func renderOrder(order *types.Order) string {
	if !order.HasPrice() {
		return fmt.Sprintf("(%s %s %s %d)", order.ID, order.Kind, order.Side, order.Quantity)
	}
	return fmt.Sprintf("(%s %s %s %d %d)", order.ID, order.Kind, order.Side, order.Quantity, order.Price)
}
