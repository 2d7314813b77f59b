package order

// statusRank orders the forward chain. Cancelled sits outside the chain and
// is handled separately.
var statusRank = map[Status]int{
	StatusNew:        0,
	StatusProcessing: 1,
	StatusReady:      2,
	StatusCompleted:  3,
}

// Terminal reports whether no further transitions are allowed from s.
func Terminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether moving from one status to another is legal.
// Forward moves follow the chain and may skip steps, but never go backwards
// or repeat. Cancellation is allowed from any non-terminal status.
func CanTransition(from, to Status) bool {
	if Terminal(from) {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}
