package command

import (
	"strconv"
	"strings"

	"github.com/quantive/matching-engine/internal/types"
)

// Parse decodes one input line into an abstract command. Accepted forms:
//
//	SUB <kind> <side> <id> <quantity> [price]
//	CXL <id>
//	END
//
// Malformed lines yield a coded error and produce no command; nothing in the
// engine is touched. Parse only checks format; semantic validation (missing
// price per kind, duplicate ids) belongs to the engine.
func Parse(line string) (*types.Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, types.ErrInvalidActionError("")
	}

	switch fields[0] {
	case "END":
		if len(fields) != 1 {
			return nil, types.ErrInvalidActionError(line)
		}
		return &types.Command{Action: types.EndAction}, nil

	case "CXL":
		if len(fields) != 2 {
			return nil, types.ErrInvalidActionError(line)
		}
		return &types.Command{Action: types.CancelAction, ID: fields[1]}, nil

	case "SUB":
		return parseSubmit(fields)

	default:
		return nil, types.ErrInvalidActionError(fields[0])
	}
}

func parseSubmit(fields []string) (*types.Command, error) {
	if len(fields) < 5 || len(fields) > 6 {
		return nil, types.ErrInvalidActionError(strings.Join(fields, " "))
	}

	kind, ok := types.ParseOrderKind(fields[1])
	if !ok {
		return nil, types.ErrInvalidOrderTypeError(fields[1])
	}

	side, ok := types.ParseSide(fields[2])
	if !ok {
		return nil, types.ErrInvalidSideError(fields[2])
	}

	quantity, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return nil, types.ErrInvalidQuantityError(fields[4])
	}

	cmd := &types.Command{
		Action:   types.SubmitAction,
		Kind:     kind,
		Side:     side,
		ID:       fields[3],
		Quantity: quantity,
	}

	// Some orders carry no price (Market); absence is legal at this layer.
	if len(fields) == 6 {
		price, err := strconv.ParseInt(fields[5], 10, 64)
		if err != nil {
			return nil, types.ErrInvalidPriceError(fields[5])
		}
		cmd.Price = price
		cmd.HasPrice = true
	}

	return cmd, nil
}
