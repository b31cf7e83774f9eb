package invoice

import "github.com/shopspring/decimal"

// Entry is one billable line on an invoice. Amount is always derived from
// Rate and Qty at construction; it is never supplied independently. Entries
// are immutable once created and owned by the invoice they were added to.
type Entry struct {
	ID          string
	Description string
	Rate        decimal.Decimal
	Qty         decimal.Decimal
	Amount      decimal.Decimal
}

// NewEntry builds an entry from already-validated values and computes its
// amount as rate × quantity.
func NewEntry(id, description string, rate, qty decimal.Decimal) Entry {
	return Entry{
		ID:          id,
		Description: description,
		Rate:        rate,
		Qty:         qty,
		Amount:      rate.Mul(qty),
	}
}
