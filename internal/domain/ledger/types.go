package ledger

import "puente-core/internal/pkg/errs"

type EntryType string

const (
	Credit EntryType = "CREDIT"
	Debit  EntryType = "DEBIT"
)

func (t EntryType) Opposite() EntryType {
	if t == Credit {
		return Debit
	}
	return Credit
}

type Category string

const (
	CategorySale       Category = "SALE"
	CategoryCommission Category = "COMMISSION"
	CategoryRefund     Category = "REFUND"
	CategoryDeposit    Category = "DEPOSIT"
)

func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(s) {
	case Credit, Debit:
		return EntryType(s), nil
	}
	return "", ErrUnknownEntryType
}

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategorySale, CategoryCommission, CategoryRefund, CategoryDeposit:
		return Category(s), nil
	}
	return "", ErrUnknownCategory
}

var (
	ErrNegativeAmount   = errs.New("ledger amount must not be negative")
	ErrNonPositiveFunds = errs.New("deposit amount must be positive")
	ErrMissingUser      = errs.New("ledger entry user is required")
	ErrUnknownEntryType = errs.New("unknown ledger entry type")
	ErrUnknownCategory  = errs.New("unknown ledger category")
	ErrReversalOfRefund = errs.New("refund entries are not reversible")
)
