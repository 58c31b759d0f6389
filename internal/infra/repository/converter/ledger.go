package converter

import (
	"puente-core/internal/domain/ledger"
	sqlc "puente-core/internal/infra/sqlc/generated"
	"puente-core/internal/pkg/pgconv"
)

func LedgerEntryToCreateParams(e *ledger.Entry) sqlc.CreateLedgerEntryParams {
	return sqlc.CreateLedgerEntryParams{
		ID:          e.ID(),
		UserID:      e.UserID(),
		Amount:      pgconv.DecimalToNumeric(e.Amount()),
		Type:        string(e.Type()),
		Category:    string(e.Category()),
		OrderID:     pgconv.UUIDPtrToPgtype(e.OrderID()),
		ReferenceID: pgconv.UUIDPtrToPgtype(e.ReferenceID()),
		Description: e.Description(),
		CreatedAt:   pgconv.TimeToPgtype(e.CreatedAt()),
	}
}

func LedgerEntryFromRow(row sqlc.LedgerEntries) (*ledger.Entry, error) {
	t, err := ledger.ParseEntryType(row.Type)
	if err != nil {
		return nil, err
	}
	c, err := ledger.ParseCategory(row.Category)
	if err != nil {
		return nil, err
	}
	return ledger.Reconstruct(
		row.ID,
		row.UserID,
		pgconv.NumericToDecimal(row.Amount),
		t,
		c,
		pgconv.UUIDPtrFromPgtype(row.OrderID),
		pgconv.UUIDPtrFromPgtype(row.ReferenceID),
		row.Description,
		pgconv.TimeFromPgtype(row.CreatedAt),
	), nil
}

func LedgerEntriesFromRows(rows []sqlc.LedgerEntries) ([]*ledger.Entry, error) {
	entries := make([]*ledger.Entry, 0, len(rows))
	for _, row := range rows {
		e, err := LedgerEntryFromRow(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
