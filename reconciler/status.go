package reconciler

import "fmt"

// Status is a representation of the reconciliation session's status.
type Status uint8

// The following is an enumeration of all possible statuses a reconciliation
// session can have.
const (
	StatusIdle Status = iota + 1
	StatusSubmitting
	StatusAwaitingConfirmation
	StatusReconciling
	StatusConfirmed
	StatusFailed
	StatusTimedOut
)

// String implements the Stringer interface.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusAwaitingConfirmation:
		return "awaiting_confirmation"
	case StatusReconciling:
		return "reconciling"
	case StatusConfirmed:
		return "confirmed"
	case StatusFailed:
		return "failed"
	case StatusTimedOut:
		return "timed_out"
	default:
		return fmt.Sprintf("invalid status %d", s)
	}
}

// Terminal returns true if no further transition can occur from the status.
func (s Status) Terminal() bool {
	switch s {
	case StatusConfirmed, StatusFailed, StatusTimedOut:
		return true
	default:
		return false
	}
}
