package engine

type Phase string

const (
	PhaseLobby     Phase = "lobby"
	PhaseTurnOrder Phase = "turn-order"
	PhasePlaying   Phase = "playing"
)

func DerivePhase(r *Room) Phase {
	switch {
	case !r.Started:
		return PhaseLobby
	case r.WaitingForTurnOrder:
		return PhaseTurnOrder
	default:
		return PhasePlaying
	}
}

func ContainsEvent(events []Event, kind string) bool {
	for _, event := range events {
		if event.Kind() == kind {
			return true
		}
	}
	return false
}

// FindEvent returns the first event of type T.
func FindEvent[T Event](events []Event) (T, bool) {
	for _, event := range events {
		if ev, ok := event.(T); ok {
			return ev, true
		}
	}
	var zero T
	return zero, false
}
