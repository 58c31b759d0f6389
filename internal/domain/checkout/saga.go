package checkout

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type Item struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int32     `json:"quantity"`
}

// Saga is the persisted progress of one checkout. Each step is recorded after
// it commits, so a retry only runs the steps that are still due.
type Saga struct {
	id             uuid.UUID
	sellerID       uuid.UUID
	buyerID        *uuid.UUID
	items          []Item
	status         Status
	outcome        *Outcome
	completed      []Step
	orderID        *uuid.UUID
	paymentID      string
	paymentLink    string
	reason         string
	lastError      string
	idempotencyKey *string
	version        int32
	createdAt      time.Time
	updatedAt      time.Time
}

func New(sellerID uuid.UUID, buyerID *uuid.UUID, items []Item, idempotencyKey *string, now time.Time) (*Saga, error) {
	if sellerID == uuid.Nil {
		return nil, ErrMissingSeller
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if _, dup := seen[it.ProductID]; dup {
			return nil, ErrDuplicateItem
		}
		seen[it.ProductID] = struct{}{}
	}

	return &Saga{
		id:             uuid.New(),
		sellerID:       sellerID,
		buyerID:        buyerID,
		items:          slices.Clone(items),
		status:         StatusStarted,
		idempotencyKey: idempotencyKey,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

type Snapshot struct {
	ID             uuid.UUID
	SellerID       uuid.UUID
	BuyerID        *uuid.UUID
	Items          []Item
	Status         Status
	Outcome        *Outcome
	Completed      []Step
	OrderID        *uuid.UUID
	PaymentID      string
	PaymentLink    string
	Reason         string
	LastError      string
	IdempotencyKey *string
	Version        int32
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func Reconstruct(s Snapshot) *Saga {
	return &Saga{
		id:             s.ID,
		sellerID:       s.SellerID,
		buyerID:        s.BuyerID,
		items:          s.Items,
		status:         s.Status,
		outcome:        s.Outcome,
		completed:      s.Completed,
		orderID:        s.OrderID,
		paymentID:      s.PaymentID,
		paymentLink:    s.PaymentLink,
		reason:         s.Reason,
		lastError:      s.LastError,
		idempotencyKey: s.IdempotencyKey,
		version:        s.Version,
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
	}
}

func (s *Saga) Done(step Step) bool {
	return slices.Contains(s.completed, step)
}

func (s *Saga) Complete(step Step, now time.Time) {
	if !s.Done(step) {
		s.completed = append(s.completed, step)
	}
	s.updatedAt = now
}

// ForItem scopes a stock step to one product so partial progress survives a retry.
func (step Step) ForItem(productID uuid.UUID) Step {
	return step + Step(":"+productID.String())
}

func (s *Saga) AttachOrder(orderID uuid.UUID, now time.Time) {
	s.orderID = &orderID
	s.Complete(StepCreateOrder, now)
}

func (s *Saga) AwaitPayment(paymentID, link string, now time.Time) {
	s.paymentID = paymentID
	s.paymentLink = link
	s.status = StatusAwaitingPayment
	s.Complete(StepPaymentLink, now)
}

// Resolve records the payment outcome. The first outcome wins; later calls
// with a different outcome fail with ErrAlreadyResolved.
func (s *Saga) Resolve(outcome Outcome, reason string, now time.Time) error {
	if s.outcome != nil {
		if *s.outcome == outcome {
			return nil
		}
		return ErrAlreadyResolved
	}
	if outcome != OutcomeAborted && s.status != StatusAwaitingPayment {
		return ErrNotAwaiting
	}
	s.outcome = &outcome
	s.reason = reason
	s.updatedAt = now
	return nil
}

// DueSteps lists what still has to run for the recorded outcome, in order.
func (s *Saga) DueSteps() []Step {
	if s.outcome == nil {
		return nil
	}

	var plan []Step
	switch *s.outcome {
	case OutcomeApproved:
		plan = []Step{StepConfirmStock, StepMarkPaid}
	default:
		if s.orderID != nil {
			plan = append(plan, StepCompensateOrder)
		}
		if s.Done(StepReserveStock) {
			plan = append(plan, StepReleaseStock)
		}
	}

	due := plan[:0:0]
	for _, step := range plan {
		if !s.Done(step) {
			due = append(due, step)
		}
	}
	return due
}

// Finish sets the terminal status matching the outcome once no step is due.
func (s *Saga) Finish(now time.Time) bool {
	if s.outcome == nil || len(s.DueSteps()) > 0 {
		return false
	}
	switch *s.outcome {
	case OutcomeApproved:
		s.status = StatusCompleted
	case OutcomeAborted:
		s.status = StatusFailed
	default:
		s.status = StatusCompensated
	}
	s.lastError = ""
	s.updatedAt = now
	return true
}

func (s *Saga) MarkInconsistent(cause error, now time.Time) {
	s.status = StatusInconsistent
	if cause != nil {
		s.lastError = cause.Error()
	}
	s.updatedAt = now
}

// Fail records a failure before any step committed; nothing needs undoing.
func (s *Saga) Fail(cause error, now time.Time) {
	aborted := OutcomeAborted
	s.outcome = &aborted
	s.status = StatusFailed
	if cause != nil {
		s.lastError = cause.Error()
	}
	s.updatedAt = now
}

// NeedsReview reports an inconsistent saga that no retry can move forward,
// such as a reservation whose rollback failed part way.
func (s *Saga) NeedsReview() bool {
	return s.status == StatusInconsistent && len(s.DueSteps()) == 0
}

// Absorb records the order and the steps another copy of this saga committed
// but could not persist. It reports whether anything was added.
func (s *Saga) Absorb(other *Saga, now time.Time) bool {
	changed := false
	if s.orderID == nil && other.orderID != nil {
		s.orderID = other.orderID
		changed = true
	}
	for _, step := range other.completed {
		if !s.Done(step) {
			s.completed = append(s.completed, step)
			changed = true
		}
	}
	if changed {
		s.updatedAt = now
	}
	return changed
}

func (s *Saga) IsTerminal() bool { return s.status.IsTerminal() }

// Committed advances the optimistic version after a successful save.
func (s *Saga) Committed() { s.version++ }

// SameRequest reports whether a replayed request carries the same body.
func (s *Saga) SameRequest(sellerID uuid.UUID, buyerID *uuid.UUID, items []Item) bool {
	if s.sellerID != sellerID {
		return false
	}
	if (s.buyerID == nil) != (buyerID == nil) || (buyerID != nil && *s.buyerID != *buyerID) {
		return false
	}
	return slices.Equal(s.items, items)
}

func (s *Saga) ID() uuid.UUID           { return s.id }
func (s *Saga) SellerID() uuid.UUID     { return s.sellerID }
func (s *Saga) BuyerID() *uuid.UUID     { return s.buyerID }
func (s *Saga) Items() []Item           { return slices.Clone(s.items) }
func (s *Saga) Status() Status          { return s.status }
func (s *Saga) Outcome() *Outcome       { return s.outcome }
func (s *Saga) CompletedSteps() []Step  { return slices.Clone(s.completed) }
func (s *Saga) OrderID() *uuid.UUID     { return s.orderID }
func (s *Saga) PaymentID() string       { return s.paymentID }
func (s *Saga) PaymentLink() string     { return s.paymentLink }
func (s *Saga) Reason() string          { return s.reason }
func (s *Saga) LastError() string       { return s.lastError }
func (s *Saga) IdempotencyKey() *string { return s.idempotencyKey }
func (s *Saga) Version() int32          { return s.version }
func (s *Saga) CreatedAt() time.Time    { return s.createdAt }
func (s *Saga) UpdatedAt() time.Time    { return s.updatedAt }
