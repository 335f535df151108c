package models

// Phase is the submission state of the upload form.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseRejected   Phase = "rejected"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

var phaseTransitions = map[Phase][]Phase{
	PhaseIdle:       {PhaseValidating},
	PhaseValidating: {PhaseRejected, PhaseSubmitting},
	PhaseRejected:   {PhaseIdle},
	PhaseSubmitting: {PhaseSucceeded, PhaseFailed},
	PhaseFailed:     {PhaseIdle},
	PhaseSucceeded:  nil, // terminal: the client navigates away
}

// CanTransition reports whether moving from p to next is allowed.
func (p Phase) CanTransition(next Phase) bool {
	for _, allowed := range phaseTransitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (p Phase) Terminal() bool {
	return p == PhaseSucceeded
}
