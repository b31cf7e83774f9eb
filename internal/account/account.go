// Package account holds customer accounts and the file-backed store they
// live in. An account carries the customer's identity, their billing
// address, and the running counter invoice numbers are reserved from.
package account

// Account represents one customer account. Sequence is the number of
// invoices issued to this customer so far; it only ever moves forward,
// except for the single-step rollback of a cancelled invoice.
type Account struct {
	Code     string `json:"accountCode"`
	Name     string `json:"name"`
	Address  string `json:"address"` // lines separated by `\\` for the template
	Sequence int    `json:"number"`
}

// ReserveInvoiceNumber increments the invoice counter and returns the newly
// reserved number. The caller owns that number from this point on.
func (a *Account) ReserveInvoiceNumber() int {
	a.Sequence++
	return a.Sequence
}

// RollbackInvoiceNumber returns the most recently reserved invoice number to
// the pool. It must only be called for a reserved number that was never used;
// there is no generalized undo stack. Calling it on an account with no
// reserved numbers is a programming error.
func (a *Account) RollbackInvoiceNumber() {
	if a.Sequence == 0 {
		panic("account: RollbackInvoiceNumber on account with sequence 0")
	}
	a.Sequence--
}
