package edit

// Reason explains why an operation changed nothing.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNoop
	ReasonLocked
	ReasonNoSelection
	ReasonEmptyClipboard
	ReasonOutOfBounds
	ReasonEmptyMap
	ReasonBusy
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNoop:
		return "nothing to change"
	case ReasonLocked:
		return "layer is locked"
	case ReasonNoSelection:
		return "no selection"
	case ReasonEmptyClipboard:
		return "clipboard is empty"
	case ReasonOutOfBounds:
		return "out of bounds"
	case ReasonEmptyMap:
		return "map is empty"
	case ReasonBusy:
		return "another gesture is in progress"
	default:
		return "unknown"
	}
}

// Result reports the outcome of an edit. Rejections are not errors; hosts
// may show Reason in a status line.
type Result struct {
	Changed int
	Reason  Reason
}

// Applied reports whether the map changed.
func (r Result) Applied() bool {
	return r.Changed > 0
}

func rejected(r Reason) Result {
	return Result{Reason: r}
}
