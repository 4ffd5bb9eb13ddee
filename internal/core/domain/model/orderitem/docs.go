// Package orderitem contains the OrderItem aggregate and its lifecycle state
// machine.
//
// An order item moves through four states: Draft (editable, invisible to the
// kitchen), Pending (sent, holding-window timer armed, still editable),
// Dispatched (locked, handed to the preparation station) and Completed
// (terminal). The dispatch transition is guarded and idempotent: it is shared
// by the manual send-now override and the expiry sweeper, and at most one
// concurrent caller can win it for a given item.
package orderitem
