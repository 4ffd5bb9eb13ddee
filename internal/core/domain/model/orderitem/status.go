package orderitem

import (
	"errors"
	"fmt"
)

// ErrInvalidStatusTransition is the unwrap target for every illegal lifecycle
// transition, e.g. completing an item that was never dispatched.
var ErrInvalidStatusTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order item. It implements a
// state machine whose transitions enforce the holding-window workflow.
//
// State transitions:
//
//	Draft ──send──> Pending ──dispatch──> Dispatched ──complete──> Completed
//	  │                                       ^
//	  └────────────dispatch (send-now)────────┘
//
// An item is locked exactly when it is Dispatched or Completed; there is no
// separate locked flag that could disagree with the status.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status: the item is on the order but has not been
	// sent, is invisible to the kitchen and fully editable.
	Draft

	// Pending means the item was sent and its holding-window timer is armed.
	// It is still editable; edits restart the timer.
	Pending

	// Dispatched means the item is locked and handed to the preparation
	// station. It is immutable except for completion.
	Dispatched

	// Completed means preparation finished. This is a terminal state.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Draft:      "Draft",
		Pending:    "Pending",
		Dispatched: "Dispatched",
		Completed:  "Completed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:      "Draft",
		Pending:    "Pending",
		Dispatched: "Dispatched",
		Completed:  "Completed",
	}
}

// Validate checks that the Status is one of the defined lifecycle states.
// Unknown (0) and out-of-range values are invalid. Used when rehydrating
// items from persistence or parsing statuses from external input.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return fmt.Errorf("%w: %d is not a valid status", ErrInvalidStatusTransition, s)
	}
	return nil
}

// String returns the human-readable name of the status. It is safe to call on
// any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsLocked reports whether the status means the item has left the editable
// phase. Locked statuses are Dispatched and Completed.
func (s Status) IsLocked() bool {
	return s == Dispatched || s == Completed
}

// Send transitions the status to Pending.
//
// Valid transitions:
//   - Draft -> Pending (item sent, timer armed)
//
// Returns (0, error) for any other current status.
func (s Status) Send() (Status, error) {
	if s != Draft {
		return 0, fmt.Errorf("%w: %s cannot be sent", ErrInvalidStatusTransition, s)
	}

	return Pending, nil
}

// Dispatch transitions the status to Dispatched.
//
// Valid transitions:
//   - Pending -> Dispatched (timer expired or manual override)
//   - Draft -> Dispatched (send-now on an item never sent; skips Pending)
//
// Locked statuses are rejected here; callers that want idempotent dispatch
// check IsLocked first (see OrderItem.Dispatch).
func (s Status) Dispatch() (Status, error) {
	if s != Draft && s != Pending {
		return 0, fmt.Errorf("%w: %s cannot be dispatched", ErrInvalidStatusTransition, s)
	}

	return Dispatched, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Dispatched -> Completed (preparation finished)
//
// Completed is terminal; no further transitions are possible.
func (s Status) Complete() (Status, error) {
	if s != Dispatched {
		return 0, fmt.Errorf("%w: %s cannot be completed", ErrInvalidStatusTransition, s)
	}

	return Completed, nil
}
