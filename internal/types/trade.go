package types

import "time"

// Trade represents one consumption step between a buy and a sell order.
// Trades are recorded only for matches that stick; rolled-back attempts
// leave no trace on the tape.
type Trade struct {
	TradeID     string    `json:"trade_id"`
	BuyOrderID  string    `json:"buy_order_id"`
	SellOrderID string    `json:"sell_order_id"`
	Price       int64     `json:"price"`
	Quantity    int64     `json:"quantity"`
	Timestamp   time.Time `json:"timestamp"`
}
