package matching

import (
	"testing"

	"github.com/quantive/matching-engine/internal/matching"
	"github.com/quantive/matching-engine/internal/storage/memory"
	"github.com/quantive/matching-engine/internal/types"
)

// TestNewEngine tests the Engine constructor
func TestNewEngine(t *testing.T) {
	engine := matching.NewEngine()

	if engine == nil {
		t.Fatal("NewEngine() returned nil")
	}
}

// TestLimitRestsOnEmptyBook tests a limit order against an empty book
func TestLimitRestsOnEmptyBook(t *testing.T) {
	engine := matching.NewEngine()

	result := mustSubmit(t, engine, submitCmd(types.LimitOrder, types.Buy, "id1", 10, 100))

	if !result.Notional.IsZero() {
		t.Errorf("Expected notional 0, got %s", result.Notional)
	}
	if qty := restingQuantity(engine, "id1"); qty != 10 {
		t.Errorf("Expected id1 resting with qty 10, got %d", qty)
	}
}

// TestLimitConsumesSmallerRestingOrders tests a full fill across resting orders
func TestLimitConsumesSmallerRestingOrders(t *testing.T) {
	engine := matching.NewEngine()

	// two resting sells that a buy for 8 can consume whole
	mustSubmit(t, engine, submitCmd(types.GoodTillCancelOrder, types.Sell, "s1", 5, 100))
	mustSubmit(t, engine, submitCmd(types.GoodTillCancelOrder, types.Sell, "s2", 3, 101))

	result := mustSubmit(t, engine, submitCmd(types.LimitOrder, types.Buy, "b1", 8, 101))

	// 5*100 + 3*101 = 803
	if result.Notional.IntPart() != 803 {
		t.Errorf("Expected notional 803, got %s", result.Notional)
	}
	if len(result.Trades) != 2 {
		t.Errorf("Expected 2 trades, got %d", len(result.Trades))
	}
	buyVol, sellVol := bookVolumes(engine)
	if buyVol != 0 || sellVol != 0 {
		t.Errorf("Expected empty book, got buy=%d sell=%d", buyVol, sellVol)
	}
}

// TestLimitPartiallyConsumesGoodTillCancel tests partial consumption of a
// resting order that permits it
func TestLimitPartiallyConsumesGoodTillCancel(t *testing.T) {
	engine := matching.NewEngine()

	mustSubmit(t, engine, submitCmd(types.GoodTillCancelOrder, types.Buy, "id1", 10, 100))

	result := mustSubmit(t, engine, submitCmd(types.LimitOrder, types.Sell, "id2", 5, 100))

	if result.Notional.IntPart() != 500 {
		t.Errorf("Expected notional 500, got %s", result.Notional)
	}
	if qty := restingQuantity(engine, "id1"); qty != 5 {
		t.Errorf("Expected id1 reduced to qty 5, got %d", qty)
	}
	if restingQuantity(engine, "id2") != -1 {
		t.Error("Fully filled incoming order must not rest")
	}
}

// TestLimitSkipsLargerFullExecutionOrder tests that a resting limit order
// larger than the incoming quantity is never partially consumed: the
// incoming order cannot fill and rests at its original quantity instead.
func TestLimitSkipsLargerFullExecutionOrder(t *testing.T) {
	engine := matching.NewEngine()

	mustSubmit(t, engine, submitCmd(types.LimitOrder, types.Buy, "id1", 10, 100))

	result := mustSubmit(t, engine, submitCmd(types.LimitOrder, types.Sell, "id2", 5, 100))

	if !result.Notional.IsZero() {
		t.Errorf("Expected notional 0, got %s", result.Notional)
	}
	if qty := restingQuantity(engine, "id1"); qty != 10 {
		t.Errorf("Resting full-execution order must be untouched, got qty %d", qty)
	}
	if qty := restingQuantity(engine, "id2"); qty != 5 {
		t.Errorf("Expected id2 resting at original qty 5, got %d", qty)
	}
}

// TestFillOrKillRollsBack tests that an unfillable FOK leaves the book untouched
func TestFillOrKillRollsBack(t *testing.T) {
	engine := matching.NewEngine()

	mustSubmit(t, engine, submitCmd(types.GoodTillCancelOrder, types.Sell, "s1", 5, 100))

	result := mustSubmit(t, engine, submitCmd(types.FillOrKillOrder, types.Buy, "id3", 20, 100))

	if !result.Notional.IsZero() {
		t.Errorf("Expected notional 0, got %s", result.Notional)
	}
	if len(result.Trades) != 0 {
		t.Errorf("Expected no trades, got %d", len(result.Trades))
	}
	if qty := restingQuantity(engine, "s1"); qty != 5 {
		t.Errorf("Expected s1 restored to qty 5, got %d", qty)
	}
	if restingQuantity(engine, "id3") != -1 {
		t.Error("FillOrKill order must never rest")
	}
}

// TestFillOrKillFullFill tests a FOK that can be fully filled
func TestFillOrKillFullFill(t *testing.T) {
	engine := matching.NewEngine()

	mustSubmit(t, engine, submitCmd(types.GoodTillCancelOrder, types.Sell, "s1", 20, 100))

	result := mustSubmit(t, engine, submitCmd(types.FillOrKillOrder, types.Buy, "id3", 20, 100))

	if result.Notional.IntPart() != 2000 {
		t.Errorf("Expected notional 2000, got %s", result.Notional)
	}
	buyVol, sellVol := bookVolumes(engine)
	if buyVol != 0 || sellVol != 0 {
		t.Errorf("Expected empty book, got buy=%d sell=%d", buyVol, sellVol)
	}
}

// TestMarketSellDiscardsRemainder tests a market order with thin liquidity
func TestMarketSellDiscardsRemainder(t *testing.T) {
	engine := matching.NewEngine()

	mustSubmit(t, engine, submitCmd(types.GoodTillCancelOrder, types.Buy, "b1", 5, 90))

	result := mustSubmit(t, engine, submitCmd(types.MarketOrder, types.Sell, "id4", 50, 0))

	if result.Notional.IntPart() != 450 {
		t.Errorf("Expected notional 450, got %s", result.Notional)
	}
	buyVol, sellVol := bookVolumes(engine)
	if buyVol != 0 || sellVol != 0 {
		t.Errorf("Market remainder must be discarded, got buy=%d sell=%d", buyVol, sellVol)
	}
}

// TestGoodTillCancelRestsRemainder tests GTC keeping its partial fill
func TestGoodTillCancelRestsRemainder(t *testing.T) {
	engine := matching.NewEngine()

	mustSubmit(t, engine, submitCmd(types.GoodTillCancelOrder, types.Buy, "b1", 4, 100))

	result := mustSubmit(t, engine, submitCmd(types.GoodTillCancelOrder, types.Sell, "id5", 10, 100))

	if result.Notional.IntPart() != 400 {
		t.Errorf("Expected notional 400, got %s", result.Notional)
	}
	if qty := restingQuantity(engine, "id5"); qty != 6 {
		t.Errorf("Expected id5 resting with remainder 6, got %d", qty)
	}
	if restingQuantity(engine, "b1") != -1 {
		t.Error("Fully consumed resting order must be removed")
	}
}

// TestCancelUnknownID tests cancelling an absent id
func TestCancelUnknownID(t *testing.T) {
	engine := matching.NewEngine()

	mustSubmit(t, engine, submitCmd(types.LimitOrder, types.Buy, "id1", 10, 100))

	err := engine.Cancel("id_unknown")
	if types.CodeOf(err) != types.ErrOrderNotFound {
		t.Fatalf("Expected ORDER_NOT_FOUND, got %v", err)
	}
	if qty := restingQuantity(engine, "id1"); qty != 10 {
		t.Errorf("Failed cancel mutated the book: id1 qty %d", qty)
	}
}

// TestCancelRestingOrder tests cancelling a resting order by id
func TestCancelRestingOrder(t *testing.T) {
	engine := matching.NewEngine()

	mustSubmit(t, engine, submitCmd(types.LimitOrder, types.Buy, "id1", 10, 100))

	if err := engine.Cancel("id1"); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if restingQuantity(engine, "id1") != -1 {
		t.Error("Cancelled order still resting")
	}
}

// TestSubmitValidation tests rejection before any book mutation
func TestSubmitValidation(t *testing.T) {
	engine := matching.NewEngine()
	mustSubmit(t, engine, submitCmd(types.LimitOrder, types.Buy, "id1", 10, 100))

	tests := []struct {
		name string
		cmd  *types.Command
		code types.ErrorCode
	}{
		{
			name: "unknown kind",
			cmd:  &types.Command{Action: types.SubmitAction, Kind: types.NoActionOrder, Side: types.Buy, ID: "x1", Quantity: 5, Price: 100, HasPrice: true},
			code: types.ErrInvalidOrderType,
		},
		{
			name: "unknown side",
			cmd:  &types.Command{Action: types.SubmitAction, Kind: types.LimitOrder, Side: types.NoActionSide, ID: "x2", Quantity: 5, Price: 100, HasPrice: true},
			code: types.ErrInvalidSide,
		},
		{
			name: "non-positive quantity",
			cmd:  submitCmd(types.LimitOrder, types.Buy, "x3", 0, 100),
			code: types.ErrInvalidQuantity,
		},
		{
			name: "negative quantity",
			cmd:  submitCmd(types.LimitOrder, types.Sell, "x4", -5, 100),
			code: types.ErrInvalidQuantity,
		},
		{
			name: "missing price for limit",
			cmd:  &types.Command{Action: types.SubmitAction, Kind: types.LimitOrder, Side: types.Buy, ID: "x5", Quantity: 5},
			code: types.ErrMissingPrice,
		},
		{
			name: "duplicate id",
			cmd:  submitCmd(types.LimitOrder, types.Sell, "id1", 5, 200),
			code: types.ErrDuplicateOrderID,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.Submit(tc.cmd)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if types.CodeOf(err) != tc.code {
				t.Errorf("Expected code %s, got %v", tc.code, err)
			}
		})
	}

	// no rejected command may have mutated the book
	buyVol, sellVol := bookVolumes(engine)
	if buyVol != 10 || sellVol != 0 {
		t.Errorf("Rejected commands mutated the book: buy=%d sell=%d", buyVol, sellVol)
	}
}

// TestMarketOrderNeedsNoPrice tests that a market order without a price is accepted
func TestMarketOrderNeedsNoPrice(t *testing.T) {
	engine := matching.NewEngine()

	if _, err := engine.Submit(submitCmd(types.MarketOrder, types.Buy, "m1", 5, 0)); err != nil {
		t.Fatalf("Market order without price rejected: %v", err)
	}
}

// TestDuplicateIDAfterFill tests that ids are session-unique even once filled
func TestDuplicateIDAfterFill(t *testing.T) {
	engine := matching.NewEngine()

	mustSubmit(t, engine, submitCmd(types.GoodTillCancelOrder, types.Sell, "s1", 5, 100))
	mustSubmit(t, engine, submitCmd(types.LimitOrder, types.Buy, "b1", 5, 100)) // fully fills

	_, err := engine.Submit(submitCmd(types.LimitOrder, types.Buy, "b1", 5, 100))
	if types.CodeOf(err) != types.ErrDuplicateOrderID {
		t.Errorf("Expected DUPLICATE_ORDER_ID, got %v", err)
	}
}

// TestTradeTapeRecordsFills tests that executed trades land on the tape
func TestTradeTapeRecordsFills(t *testing.T) {
	tape := memory.NewInMemoryTradeTape(100)
	engine := matching.NewEngineWithTape(tape, nil)

	mustSubmit(t, engine, submitCmd(types.GoodTillCancelOrder, types.Sell, "s1", 5, 100))
	mustSubmit(t, engine, submitCmd(types.LimitOrder, types.Buy, "b1", 5, 100))

	trades, err := engine.RecentTrades(10)
	if err != nil {
		t.Fatalf("RecentTrades failed: %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("Expected 1 recorded trade, got %d", len(trades))
	}
	trade := trades[0]
	if trade.BuyOrderID != "b1" || trade.SellOrderID != "s1" {
		t.Errorf("Trade order ids incorrect: buy=%s sell=%s", trade.BuyOrderID, trade.SellOrderID)
	}
	if trade.Price != 100 || trade.Quantity != 5 {
		t.Errorf("Expected 5@100, got %d@%d", trade.Quantity, trade.Price)
	}
	if trade.TradeID == "" {
		t.Error("Trade id must be assigned")
	}
}

// TestRollbackLeavesNoTrades tests that rolled-back attempts never reach the tape
func TestRollbackLeavesNoTrades(t *testing.T) {
	tape := memory.NewInMemoryTradeTape(100)
	engine := matching.NewEngineWithTape(tape, nil)

	mustSubmit(t, engine, submitCmd(types.GoodTillCancelOrder, types.Sell, "s1", 5, 100))
	mustSubmit(t, engine, submitCmd(types.FillOrKillOrder, types.Buy, "f1", 20, 100))

	if tape.Len() != 0 {
		t.Errorf("Expected empty tape after rollback, got %d trades", tape.Len())
	}
}
