package orderitem

import (
	"errors"
	"fmt"
	"time"

	"notapos/internal/core/domain/model/kernel"
	"notapos/internal/pkg/errs"
)

var (
	// ErrOrderItemIsNotConstructed is returned when an OrderItem instance was
	// not created through NewOrderItem or RestoreOrderItem.
	ErrOrderItemIsNotConstructed = errors.New("OrderItem must be created via NewOrderItem or RestoreOrderItem")

	// ErrItemIsLocked is returned when an edit or delete targets an item that
	// has already been dispatched to the preparation station.
	ErrItemIsLocked = errors.New("order item is locked")
)

// OrderItem is the aggregate root for a single line item on a restaurant
// order, from creation through kitchen fulfillment. Its defining behavior is
// the holding window: after being sent, the item stays editable in Pending
// until its delay timer expires, then it is irrevocably dispatched.
//
// Invariants:
//   - IsLocked() is true exactly when the status is Dispatched or Completed
//   - expiresAt is non-nil only while the status is Pending
//   - dispatchedAt and completedAt are each set exactly once
//   - quantity >= 1, unit price >= 0, unit price immutable after creation
//
// All mutation goes through the transition methods below; the struct uses
// private fields so invariants cannot be bypassed.
type OrderItem struct {
	id           kernel.UUID
	orderID      kernel.UUID
	menuItemID   kernel.UUID
	quantity     int
	unitPrice    kernel.Price
	instructions string
	delaySeconds int
	status       Status
	expiresAt    *time.Time
	startedAt    *time.Time
	dispatchedAt *time.Time
	completedAt  *time.Time

	isConstructed bool
}

// Changes carries a partial update for Edit. Nil fields are left unchanged.
// The unit price is deliberately absent: it is captured at creation and a
// later menu price change must not alter an existing item.
type Changes struct {
	Quantity     *int
	Instructions *string
	DelaySeconds *int
}

// NewOrderItem creates a new order item in Draft status with no timer armed.
//
// Parameters:
//   - id: unique identifier for the item
//   - orderID: the owning order (check/tab)
//   - menuItemID: the referenced menu item
//   - quantity: number of units, must be >= 1
//   - unitPrice: price per unit captured now, must be >= 0
//   - instructions: optional free-text special instructions
//   - delaySeconds: holding-window length armed when the item is sent, >= 0
//
// Returns a validation error if any parameter is invalid.
func NewOrderItem(
	id kernel.UUID,
	orderID kernel.UUID,
	menuItemID kernel.UUID,
	quantity int,
	unitPrice kernel.Price,
	instructions string,
	delaySeconds int,
) (*OrderItem, error) {
	item := &OrderItem{
		status:        Draft,
		instructions:  instructions,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setOrderID(orderID),
		item.setMenuItemID(menuItemID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
		item.setDelaySeconds(delaySeconds),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreOrderItem rebuilds an order item from persisted state. It validates
// the same field rules as NewOrderItem plus the cross-field invariants that
// tie timestamps to the status, so a corrupted row cannot produce an
// impossible aggregate (e.g. a Draft item with a running timer).
func RestoreOrderItem(
	id kernel.UUID,
	orderID kernel.UUID,
	menuItemID kernel.UUID,
	quantity int,
	unitPrice kernel.Price,
	instructions string,
	delaySeconds int,
	status Status,
	expiresAt *time.Time,
	startedAt *time.Time,
	dispatchedAt *time.Time,
	completedAt *time.Time,
) (*OrderItem, error) {
	item := &OrderItem{
		status:        status,
		instructions:  instructions,
		expiresAt:     expiresAt,
		startedAt:     startedAt,
		dispatchedAt:  dispatchedAt,
		completedAt:   completedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setOrderID(orderID),
		item.setMenuItemID(menuItemID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
		item.setDelaySeconds(delaySeconds),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if expiresAt != nil && status != Pending {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"expiresAt",
			fmt.Errorf("timer may only be armed in %s status, got %s", Pending, status),
		)
	}
	if status.IsLocked() && dispatchedAt == nil {
		return nil, errs.NewValueIsRequiredError("dispatchedAt")
	}
	if status == Completed && completedAt == nil {
		return nil, errs.NewValueIsRequiredError("completedAt")
	}

	return item, nil
}

// Validate ensures the OrderItem was constructed through one of the factory
// functions. Call it when accepting aggregates across a trust boundary.
func (i *OrderItem) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrOrderItemIsNotConstructed
	}

	return nil
}

// IsEqual compares two order items by identity.
func (i *OrderItem) IsEqual(other *OrderItem) bool {
	return other != nil && i.id.IsEqual(other.id)
}

// ID returns the item's unique identifier.
func (i *OrderItem) ID() kernel.UUID {
	return i.id
}

// OrderID returns the owning order's identifier.
func (i *OrderItem) OrderID() kernel.UUID {
	return i.orderID
}

// MenuItemID returns the referenced menu item's identifier.
func (i *OrderItem) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Quantity returns the number of units ordered.
func (i *OrderItem) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per unit captured at creation.
func (i *OrderItem) UnitPrice() kernel.Price {
	return i.unitPrice
}

// Instructions returns the free-text special instructions, if any.
func (i *OrderItem) Instructions() string {
	return i.instructions
}

// DelaySeconds returns the configured holding-window length in seconds.
func (i *OrderItem) DelaySeconds() int {
	return i.delaySeconds
}

// Delay returns the holding-window length as a duration.
func (i *OrderItem) Delay() time.Duration {
	return time.Duration(i.delaySeconds) * time.Second
}

// Status returns the current lifecycle status.
func (i *OrderItem) Status() Status {
	return i.status
}

// IsLocked reports whether the item has left the editable phase. Derived from
// the status, so it can never disagree with it.
func (i *OrderItem) IsLocked() bool {
	return i.status.IsLocked()
}

// ExpiresAt returns the holding-window deadline, or nil when no timer is armed.
func (i *OrderItem) ExpiresAt() *time.Time {
	return i.expiresAt
}

// StartedAt returns when preparation began, or nil. Informational only; it
// does not affect the status or lockedness.
func (i *OrderItem) StartedAt() *time.Time {
	return i.startedAt
}

// DispatchedAt returns when the item was dispatched, or nil.
func (i *OrderItem) DispatchedAt() *time.Time {
	return i.dispatchedAt
}

// CompletedAt returns when preparation finished, or nil.
func (i *OrderItem) CompletedAt() *time.Time {
	return i.completedAt
}

// IsExpired reports whether an armed holding-window timer has elapsed:
// expiresAt <= now. Items with no timer armed are never expired.
func (i *OrderItem) IsExpired(now time.Time) bool {
	return i.expiresAt != nil && !i.expiresAt.After(now)
}

// Send moves a Draft item into the holding window: status becomes Pending and
// the timer is armed at now + delay. Items in any other status are rejected
// with ErrInvalidStatusTransition; batch callers skip those instead of failing
// the whole order.
func (i *OrderItem) Send(now time.Time) error {
	newStatus, err := i.status.Send()
	if err != nil {
		return err
	}

	expiresAt := now.Add(i.Delay())
	i.status = newStatus
	i.expiresAt = &expiresAt
	return nil
}

// Edit applies a partial update. Editing a locked item fails with
// ErrItemIsLocked and leaves the item untouched. Editing a Pending item
// restarts the holding-window timer at now + delay (using the new delay when
// the edit changes it); editing a Draft item has no timer effect.
func (i *OrderItem) Edit(changes Changes, now time.Time) error {
	if i.IsLocked() {
		return ErrItemIsLocked
	}

	// Validate before mutating so a rejected edit cannot leave the item
	// half-updated.
	if changes.Quantity != nil {
		if err := validateQuantity(*changes.Quantity); err != nil {
			return err
		}
	}
	if changes.DelaySeconds != nil {
		if err := validateDelaySeconds(*changes.DelaySeconds); err != nil {
			return err
		}
	}

	if changes.Quantity != nil {
		i.quantity = *changes.Quantity
	}
	if changes.Instructions != nil {
		i.instructions = *changes.Instructions
	}
	if changes.DelaySeconds != nil {
		i.delaySeconds = *changes.DelaySeconds
	}

	if i.status == Pending {
		expiresAt := now.Add(i.Delay())
		i.expiresAt = &expiresAt
	}

	return nil
}

// Dispatch performs the guarded dispatch transition shared by the manual
// send-now path and the expiry sweeper:
//
//	if not locked: status=Dispatched, dispatchedAt=now, timer cleared
//
// Calling Dispatch on an already locked item is a no-op returning nil, so the
// transition is idempotent and dispatchedAt never moves once set. The caller
// must hold the per-record exclusion (row lock) while invoking it.
func (i *OrderItem) Dispatch(now time.Time) error {
	if i.IsLocked() {
		return nil
	}

	newStatus, err := i.status.Dispatch()
	if err != nil {
		return err
	}

	i.status = newStatus
	i.dispatchedAt = &now
	i.expiresAt = nil
	return nil
}

// StartPreparation records that the kitchen began working on a dispatched
// item. The timestamp is informational and set once; the status enum is not
// widened because starting does not affect lockedness.
func (i *OrderItem) StartPreparation(now time.Time) error {
	if i.status != Dispatched {
		return fmt.Errorf("%w: %s cannot be started", ErrInvalidStatusTransition, i.status)
	}

	if i.startedAt == nil {
		i.startedAt = &now
	}
	return nil
}

// Complete marks preparation as finished. Valid only from Dispatched;
// Completed is terminal.
func (i *OrderItem) Complete(now time.Time) error {
	newStatus, err := i.status.Complete()
	if err != nil {
		return err
	}

	i.status = newStatus
	i.completedAt = &now
	return nil
}

// EnsureDeletable reports whether the item may still be removed. Items are
// deleted only while unlocked; a dispatched item is historical record.
func (i *OrderItem) EnsureDeletable() error {
	if i.IsLocked() {
		return ErrItemIsLocked
	}
	return nil
}

func (i *OrderItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *OrderItem) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	i.orderID = orderID
	return nil
}

func (i *OrderItem) setMenuItemID(menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}
	i.menuItemID = menuItemID
	return nil
}

func (i *OrderItem) setQuantity(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	i.quantity = quantity
	return nil
}

func (i *OrderItem) setUnitPrice(unitPrice kernel.Price) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *OrderItem) setDelaySeconds(delaySeconds int) error {
	if err := validateDelaySeconds(delaySeconds); err != nil {
		return err
	}
	i.delaySeconds = delaySeconds
	return nil
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	return nil
}

func validateDelaySeconds(delaySeconds int) error {
	if delaySeconds < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"delaySeconds",
			fmt.Errorf("%d is negative", delaySeconds),
		)
	}
	return nil
}
