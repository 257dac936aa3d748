package checkout

// State is the position of a checkout session in its lifecycle.
type State string

const (
	StateSelectingMethod State = "selecting_method"
	StateFillingDetails  State = "filling_details"
	StateReviewing       State = "reviewing"
	StateSettling        State = "settling"
	StateSucceeded       State = "succeeded"
	StateFailed          State = "failed"
)

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsTerminal reports whether the session is finished. Failed is only
// half-terminal: the draft survives and Retry moves it back to
// FillingDetails.
func (s State) IsTerminal() bool {
	return s == StateSucceeded
}

// CanTransitionTo reports whether the state machine permits the move.
func (s State) CanTransitionTo(target State) bool {
	transitions := map[State][]State{
		StateSelectingMethod: {StateFillingDetails},
		StateFillingDetails:  {StateFillingDetails, StateReviewing, StateSelectingMethod},
		StateReviewing:       {StateSettling, StateFillingDetails},
		StateSettling:        {StateSucceeded, StateFailed},
		StateFailed:          {StateFillingDetails},
		StateSucceeded:       {},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}
	for _, a := range allowed {
		if a == target {
			return true
		}
	}
	return false
}

var ValidStates = map[State]bool{
	StateSelectingMethod: true,
	StateFillingDetails:  true,
	StateReviewing:       true,
	StateSettling:        true,
	StateSucceeded:       true,
	StateFailed:          true,
}
