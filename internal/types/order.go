package types

// OrderKind identifies the matching policy applied to an order.
type OrderKind int

const (
	NoActionOrder OrderKind = iota
	LimitOrder
	MarketOrder
	ImmediateOrCancelOrder
	FillOrKillOrder
	GoodTillCancelOrder
)

var kindTokens = map[string]OrderKind{
	"LO":  LimitOrder,
	"MO":  MarketOrder,
	"IOC": ImmediateOrCancelOrder,
	"FOK": FillOrKillOrder,
	"GTC": GoodTillCancelOrder,
}

var kindStrings = map[OrderKind]string{
	LimitOrder:             "LO",
	MarketOrder:            "MO",
	ImmediateOrCancelOrder: "IOC",
	FillOrKillOrder:        "FOK",
	GoodTillCancelOrder:    "GTC",
}

// ParseOrderKind converts a wire token (LO, MO, IOC, FOK, GTC) to an OrderKind.
func ParseOrderKind(token string) (OrderKind, bool) {
	kind, ok := kindTokens[token]
	return kind, ok
}

func (k OrderKind) String() string {
	if s, ok := kindStrings[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// SideType identifies which side of the book an order belongs to.
type SideType int

const (
	NoActionSide SideType = iota
	Buy
	Sell
)

// ParseSide converts a wire token (B, S) to a SideType.
func ParseSide(token string) (SideType, bool) {
	switch token {
	case "B":
		return Buy, true
	case "S":
		return Sell, true
	default:
		return NoActionSide, false
	}
}

func (s SideType) String() string {
	switch s {
	case Buy:
		return "B"
	case Sell:
		return "S"
	default:
		return "UNKNOWN"
	}
}

// Order represents a single order submitted to the engine. Quantity is
// mutated downward as the order is consumed; Price is immutable and
// undefined for Market orders, which never rest in the book. Sequence is a
// monotonic arrival stamp assigned by the engine and used as the secondary
// priority key, so pop order at equal prices is deterministic price-time.
type Order struct {
	ID       string    `json:"order_id"`
	Kind     OrderKind `json:"kind"`
	Side     SideType  `json:"side"`
	Quantity int64     `json:"quantity"`
	Price    int64     `json:"price,omitempty"`
	Sequence uint64    `json:"-"`
}

// NewOrder creates an order. The engine stamps Sequence on acceptance.
func NewOrder(id string, kind OrderKind, side SideType, quantity, price int64) *Order {
	return &Order{
		ID:       id,
		Kind:     kind,
		Side:     side,
		Quantity: quantity,
		Price:    price,
	}
}

// MandatesFullExecution reports whether this order, while resting, must be
// consumed entirely in one step or not at all.
func (o *Order) MandatesFullExecution() bool {
	return o.Kind == LimitOrder || o.Kind == FillOrKillOrder
}

// HasPrice reports whether the kind carries a limit price.
func (o *Order) HasPrice() bool {
	return o.Kind != MarketOrder
}
