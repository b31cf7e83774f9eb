// Package invoice implements the invoice domain model: the invoice itself,
// its entries, bulk entry import, and the selectors that bind an invoice to
// a customer account. Constructors take already-validated values; anything
// interactive lives in the prompt adapter, not here.
package invoice

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"invoicer/internal/account"
	"invoicer/internal/logger"
	"invoicer/internal/money"
)

// Invoice lifecycle states. Generated and Discarded are terminal.
const (
	StatusOpen      = "OPEN"
	StatusGenerated = "GENERATED"
	StatusDiscarded = "DISCARDED"
)

// Selector resolves exactly one customer account from the store.
// CodeSelector is the programmatic implementation; the prompt package
// provides the interactive one.
type Selector interface {
	Select(store *account.Store) (*account.Account, error)
}

// CodeSelector resolves an explicit account code and fails immediately when
// it does not exist.
type CodeSelector string

// Select implements Selector.
func (c CodeSelector) Select(store *account.Store) (*account.Account, error) {
	acc, err := store.Get(string(c))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSelection, err)
	}
	return acc, nil
}

// Generator produces the rendered document for an invoice. Implemented by
// render.Pipeline; a test double is enough for the domain tests.
type Generator interface {
	Generate(ctx context.Context, inv *Invoice) error
}

// Invoice aggregates entries under one customer account. Creating an
// invoice reserves the next invoice number from the account immediately;
// the number is only returned by Discard.
type Invoice struct {
	customer *account.Account
	number   int
	status   string

	entries  []Entry
	subtotal decimal.Decimal

	shipping        decimal.Decimal
	shippingVisible bool
	discount        decimal.Decimal
	discountVisible bool

	log zerolog.Logger
}

// New binds a fresh invoice to exactly one account resolved by the selector
// and reserves the next invoice number from it. It fails with ErrNoSelection
// when no accounts are registered or the selector cannot resolve one.
func New(store *account.Store, sel Selector) (*Invoice, error) {
	if store.Len() == 0 {
		return nil, fmt.Errorf("%w: no customer accounts registered", ErrNoSelection)
	}

	acc, err := sel.Select(store)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		customer: acc,
		number:   acc.ReserveInvoiceNumber(),
		status:   StatusOpen,
		log:      logger.WithComponent("invoice"),
	}

	inv.log.Info().
		Str("code", inv.PlainCode()).
		Str("customer", acc.Code).
		Msg("New invoice started")

	return inv, nil
}

// Customer returns the account this invoice bills.
func (inv *Invoice) Customer() *account.Account { return inv.customer }

// Number returns the invoice number reserved at construction.
func (inv *Invoice) Number() int { return inv.number }

// Status returns the lifecycle state.
func (inv *Invoice) Status() string { return inv.status }

// Entries returns the invoice entries in document order.
func (inv *Invoice) Entries() []Entry { return inv.entries }

// Subtotal is the sum of all entry amounts.
func (inv *Invoice) Subtotal() decimal.Decimal { return inv.subtotal }

// Shipping returns the accumulated shipping adjustment.
func (inv *Invoice) Shipping() decimal.Decimal { return inv.shipping }

// ShippingVisible reports whether a shipping line belongs on the document.
func (inv *Invoice) ShippingVisible() bool { return inv.shippingVisible }

// Discount returns the accumulated discount adjustment.
func (inv *Invoice) Discount() decimal.Decimal { return inv.discount }

// DiscountVisible reports whether a discount line belongs on the document.
func (inv *Invoice) DiscountVisible() bool { return inv.discountVisible }

// Total is subtotal + shipping − discount.
func (inv *Invoice) Total() decimal.Decimal {
	return inv.subtotal.Add(inv.shipping).Sub(inv.discount)
}

// AddEntry appends an entry and adds its amount to the subtotal.
func (inv *Invoice) AddEntry(e Entry) {
	inv.entries = append(inv.entries, e)
	inv.subtotal = inv.subtotal.Add(e.Amount)

	inv.log.Debug().
		Str("id", e.ID).
		Str("amount", money.FormatAmount(e.Amount)).
		Str("subtotal", money.FormatAmount(inv.subtotal)).
		Msg("Entry added")
}

// AddShipping adds to the running shipping total and makes the shipping
// line visible. The amount is not validated; zero and negative values are
// accepted and accumulate like any other.
func (inv *Invoice) AddShipping(amount decimal.Decimal) {
	inv.shippingVisible = true
	inv.shipping = inv.shipping.Add(amount)
}

// AddDiscount adds to the running discount total and makes the discount
// line visible. Same non-validation as AddShipping.
func (inv *Invoice) AddDiscount(amount decimal.Decimal) {
	inv.discountVisible = true
	inv.discount = inv.discount.Add(amount)
}

// Code returns the invoice code styled for the document,
// e.g. `\textsc{ACME}--003`.
func (inv *Invoice) Code() string {
	return fmt.Sprintf(`\textsc{%s}--%03d`, inv.customer.Code, inv.number)
}

// PlainCode returns the plain-text invoice code, e.g. "ACME_003".
func (inv *Invoice) PlainCode() string {
	return fmt.Sprintf("%s_%03d", inv.customer.Code, inv.number)
}

// Filename returns the artifact base name, e.g. "invoice_ACME_003".
// The renderer's output extension is appended by the pipeline.
func (inv *Invoice) Filename() string {
	return "invoice_" + inv.PlainCode()
}

// Generate runs the document pipeline for this invoice. On success the
// invoice becomes Generated; on any failure it stays Open so the caller may
// retry or discard. Only valid from Open.
func (inv *Invoice) Generate(ctx context.Context, g Generator) error {
	if inv.status != StatusOpen {
		panic("invoice: Generate on " + inv.status + " invoice")
	}

	if err := g.Generate(ctx, inv); err != nil {
		return err
	}

	inv.status = StatusGenerated
	inv.log.Info().Str("code", inv.PlainCode()).Msg("Invoice generated")
	return nil
}

// Discard abandons an open invoice and returns its reserved number to the
// account. Terminal; calling it from any state but Open is a programming
// error.
func (inv *Invoice) Discard() {
	if inv.status != StatusOpen {
		panic("invoice: Discard on " + inv.status + " invoice")
	}

	inv.customer.RollbackInvoiceNumber()
	inv.status = StatusDiscarded

	inv.log.Info().Str("code", inv.PlainCode()).Msg("Invoice discarded")
}
