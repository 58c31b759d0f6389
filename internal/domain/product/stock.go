package product

// StockLevel is the explicit per-product unit state.
// Owned units are split between available and reserved; consumed counts units
// already sold through Confirm. Every transition keeps all three non-negative,
// so 0 <= reserved <= stock holds for any value obtained from this package.
type StockLevel struct {
	available int32
	reserved  int32
	consumed  int32
}

func NewStockLevel(stock, reserved, consumed int32) (StockLevel, error) {
	if stock < 0 || reserved < 0 || consumed < 0 {
		return StockLevel{}, ErrNegativeStock
	}
	if reserved > stock {
		return StockLevel{}, ErrStockBelowReserved
	}
	return StockLevel{available: stock - reserved, reserved: reserved, consumed: consumed}, nil
}

func (s StockLevel) Available() int32 { return s.available }
func (s StockLevel) Reserved() int32  { return s.reserved }
func (s StockLevel) Consumed() int32  { return s.consumed }

// Stock is the number of owned units (available + reserved).
func (s StockLevel) Stock() int32 { return s.available + s.reserved }

func (s StockLevel) CanReserve(qty int32) bool {
	return qty > 0 && s.available >= qty
}

// AVAILABLE -> RESERVED
func (s StockLevel) Reserve(qty int32) (StockLevel, error) {
	if qty <= 0 {
		return s, ErrInvalidQuantity
	}
	if s.available < qty {
		return s, ErrInsufficientStock
	}
	s.available -= qty
	s.reserved += qty
	return s, nil
}

// RESERVED -> AVAILABLE
func (s StockLevel) Release(qty int32) (StockLevel, error) {
	if qty <= 0 {
		return s, ErrInvalidQuantity
	}
	if s.reserved < qty {
		return s, ErrReservationUnderflow
	}
	s.reserved -= qty
	s.available += qty
	return s, nil
}

// RESERVED -> CONSUMED
func (s StockLevel) Confirm(qty int32) (StockLevel, error) {
	if qty <= 0 {
		return s, ErrInvalidQuantity
	}
	if s.reserved < qty {
		return s, ErrReservationUnderflow
	}
	s.reserved -= qty
	s.consumed += qty
	return s, nil
}

// Restock sets the owned unit count, keeping current reservations intact.
func (s StockLevel) Restock(stock int32) (StockLevel, error) {
	if stock < 0 {
		return s, ErrNegativeStock
	}
	if stock < s.reserved {
		return s, ErrStockBelowReserved
	}
	s.available = stock - s.reserved
	return s, nil
}
