package checkout

import "puente-core/internal/pkg/errs"

type Status string

const (
	StatusStarted         Status = "STARTED"
	StatusAwaitingPayment Status = "AWAITING_PAYMENT"
	StatusCompleted       Status = "COMPLETED"
	StatusCompensated     Status = "COMPENSATED"
	StatusFailed          Status = "FAILED"
	StatusInconsistent    Status = "INCONSISTENT"
)

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCompensated || s == StatusFailed
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusStarted, StatusAwaitingPayment, StatusCompleted, StatusCompensated, StatusFailed, StatusInconsistent:
		return Status(s), nil
	}
	return "", ErrUnknownStatus
}

// Step names a saga action that has committed in its own store.
type Step string

const (
	StepReserveStock    Step = "RESERVE_STOCK"
	StepCreateOrder     Step = "CREATE_ORDER"
	StepPaymentLink     Step = "PAYMENT_LINK"
	StepConfirmStock    Step = "CONFIRM_STOCK"
	StepMarkPaid        Step = "MARK_PAID"
	StepCompensateOrder Step = "COMPENSATE_ORDER"
	StepReleaseStock    Step = "RELEASE_STOCK"
)

type Outcome string

const (
	OutcomeApproved  Outcome = "APPROVED"
	OutcomeRejected  Outcome = "REJECTED"
	OutcomeExpired   Outcome = "EXPIRED"
	OutcomeCancelled Outcome = "CANCELLED"
	// OutcomeAborted is recorded internally when the saga fails before payment was requested.
	OutcomeAborted Outcome = "ABORTED"
)

// ParseOutcome accepts only the outcomes a payment notification can carry.
func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(s) {
	case OutcomeApproved, OutcomeRejected, OutcomeExpired, OutcomeCancelled:
		return Outcome(s), nil
	}
	return "", ErrUnknownOutcome
}

var (
	ErrUnknownStatus   = errs.New("unknown checkout status")
	ErrUnknownOutcome  = errs.New("unknown payment outcome")
	ErrNoItems         = errs.New("checkout requires at least one item")
	ErrInvalidQuantity = errs.New("item quantity must be positive")
	ErrDuplicateItem   = errs.New("product listed more than once")
	ErrMissingSeller   = errs.New("seller is required")
	ErrAlreadyResolved = errs.New("checkout payment outcome already recorded")
	ErrNotAwaiting     = errs.New("checkout is not awaiting payment")
)
