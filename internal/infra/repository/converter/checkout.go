package converter

import (
	"encoding/json"

	"puente-core/internal/domain/checkout"
	sqlc "puente-core/internal/infra/sqlc/generated"
	"puente-core/internal/pkg/errs"
	"puente-core/internal/pkg/pgconv"
)

func SagaToCreateParams(s *checkout.Saga) (sqlc.CreateCheckoutSagaParams, error) {
	items, err := json.Marshal(s.Items())
	if err != nil {
		return sqlc.CreateCheckoutSagaParams{}, errs.Wrap(err, "encode checkout items")
	}
	return sqlc.CreateCheckoutSagaParams{
		ID:             s.ID(),
		SellerID:       s.SellerID(),
		BuyerID:        pgconv.UUIDPtrToPgtype(s.BuyerID()),
		Items:          items,
		Status:         string(s.Status()),
		CompletedSteps: stepsToStrings(s.CompletedSteps()),
		IdempotencyKey: pgconv.StringPtrToPgtype(s.IdempotencyKey()),
		CreatedAt:      pgconv.TimeToPgtype(s.CreatedAt()),
		UpdatedAt:      pgconv.TimeToPgtype(s.UpdatedAt()),
	}, nil
}

func SagaToUpdateParams(s *checkout.Saga) sqlc.UpdateCheckoutSagaParams {
	var outcome *string
	if o := s.Outcome(); o != nil {
		v := string(*o)
		outcome = &v
	}
	return sqlc.UpdateCheckoutSagaParams{
		Status:         string(s.Status()),
		Outcome:        pgconv.StringPtrToPgtype(outcome),
		CompletedSteps: stepsToStrings(s.CompletedSteps()),
		OrderID:        pgconv.UUIDPtrToPgtype(s.OrderID()),
		PaymentID:      pgconv.OptionalStringToPgtype(s.PaymentID()),
		PaymentLink:    pgconv.OptionalStringToPgtype(s.PaymentLink()),
		Reason:         pgconv.OptionalStringToPgtype(s.Reason()),
		LastError:      pgconv.OptionalStringToPgtype(s.LastError()),
		NeedsReview:    s.NeedsReview(),
		UpdatedAt:      pgconv.TimeToPgtype(s.UpdatedAt()),
		ID:             s.ID(),
		Version:        s.Version(),
	}
}

func SagaFromRow(row sqlc.CheckoutSagas) (*checkout.Saga, error) {
	var items []checkout.Item
	if err := json.Unmarshal(row.Items, &items); err != nil {
		return nil, errs.Wrap(err, "decode checkout items")
	}
	status, err := checkout.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}

	var outcome *checkout.Outcome
	if row.Outcome.Valid {
		o := checkout.Outcome(row.Outcome.String)
		outcome = &o
	}
	steps := make([]checkout.Step, len(row.CompletedSteps))
	for i, s := range row.CompletedSteps {
		steps[i] = checkout.Step(s)
	}

	return checkout.Reconstruct(checkout.Snapshot{
		ID:             row.ID,
		SellerID:       row.SellerID,
		BuyerID:        pgconv.UUIDPtrFromPgtype(row.BuyerID),
		Items:          items,
		Status:         status,
		Outcome:        outcome,
		Completed:      steps,
		OrderID:        pgconv.UUIDPtrFromPgtype(row.OrderID),
		PaymentID:      pgconv.StringFromPgtype(row.PaymentID),
		PaymentLink:    pgconv.StringFromPgtype(row.PaymentLink),
		Reason:         pgconv.StringFromPgtype(row.Reason),
		LastError:      pgconv.StringFromPgtype(row.LastError),
		IdempotencyKey: pgconv.StringPtrFromPgtype(row.IdempotencyKey),
		Version:        row.Version,
		CreatedAt:      pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:      pgconv.TimeFromPgtype(row.UpdatedAt),
	}), nil
}

func stepsToStrings(steps []checkout.Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = string(s)
	}
	return out
}
