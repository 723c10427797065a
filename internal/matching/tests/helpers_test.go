package matching

import (
	"testing"

	"github.com/quantive/matching-engine/internal/matching"
	"github.com/quantive/matching-engine/internal/types"
)

// submitCmd builds a Submit command the way the input layer would.
func submitCmd(kind types.OrderKind, side types.SideType, id string, quantity, price int64) *types.Command {
	cmd := &types.Command{
		Action:   types.SubmitAction,
		Kind:     kind,
		Side:     side,
		ID:       id,
		Quantity: quantity,
	}
	if kind != types.MarketOrder {
		cmd.Price = price
		cmd.HasPrice = true
	}
	return cmd
}

// mustSubmit submits and fails the test on a validation error.
func mustSubmit(t *testing.T, engine *matching.Engine, cmd *types.Command) *matching.MatchResult {
	t.Helper()
	result, err := engine.Submit(cmd)
	if err != nil {
		t.Fatalf("Submit(%s) failed: %v", cmd.ID, err)
	}
	return result
}

// restingQuantity returns the quantity of the resting order with the given
// id, or -1 if it is not resting.
func restingQuantity(engine *matching.Engine, id string) int64 {
	buys, sells := engine.Snapshot()
	for _, o := range append(buys, sells...) {
		if o.ID == id {
			return o.Quantity
		}
	}
	return -1
}

// bookVolumes returns total resting buy and sell quantity.
func bookVolumes(engine *matching.Engine) (int64, int64) {
	buys, sells := engine.Snapshot()
	var buyVol, sellVol int64
	for _, o := range buys {
		buyVol += o.Quantity
	}
	for _, o := range sells {
		sellVol += o.Quantity
	}
	return buyVol, sellVol
}
