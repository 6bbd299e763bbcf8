package checkout

type State string

const (
	StateIdle         State = "idle"
	StateInitiating   State = "initiating"
	StateAwaitingCard State = "awaiting_card"
	StateConfirming   State = "confirming"
	// StateNotifying means the card payment succeeded and the backend has not acknowledged it yet.
	StateNotifying State = "notifying"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

var transitions = map[State][]State{
	StateIdle:         {StateInitiating},
	StateInitiating:   {StateAwaitingCard, StateIdle},
	StateAwaitingCard: {StateConfirming, StateIdle},
	StateConfirming:   {StateNotifying, StateFailed},
	StateNotifying:    {StateSucceeded, StateFailed},
	StateFailed:       {StateAwaitingCard, StateNotifying, StateIdle},
	StateSucceeded:    {},
}

func (s State) canTransitionTo(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s State) Terminal() bool { return s == StateSucceeded }

// Busy reports whether a request is outstanding in this state.
func (s State) Busy() bool {
	switch s {
	case StateInitiating, StateConfirming:
		return true
	default:
		return false
	}
}
