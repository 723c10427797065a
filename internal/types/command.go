package types

// CommandAction is the top-level verb of a decoded input line.
type CommandAction int

const (
	NoAction CommandAction = iota
	SubmitAction
	CancelAction
	EndAction
)

// Command is one abstract command produced by the input decoding layer.
// For SubmitAction all order fields are set; HasPrice distinguishes a
// genuinely absent price (Market orders) from a zero one. For CancelAction
// only ID is set.
type Command struct {
	Action   CommandAction
	Kind     OrderKind
	Side     SideType
	ID       string
	Quantity int64
	Price    int64
	HasPrice bool
}
