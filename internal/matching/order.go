package matching

import "github.com/quantive/matching-engine/internal/types"

// Re-export shared types so engine callers can stay on a single import
type (
	OrderKind = types.OrderKind
	SideType  = types.SideType
	Order     = types.Order
	Trade     = types.Trade
)

// Re-export constants
const (
	NoActionOrder          = types.NoActionOrder
	LimitOrder             = types.LimitOrder
	MarketOrder            = types.MarketOrder
	ImmediateOrCancelOrder = types.ImmediateOrCancelOrder
	FillOrKillOrder        = types.FillOrKillOrder
	GoodTillCancelOrder    = types.GoodTillCancelOrder

	NoActionSide = types.NoActionSide
	Buy          = types.Buy
	Sell         = types.Sell
)

// Re-export constructor
var NewOrder = types.NewOrder
