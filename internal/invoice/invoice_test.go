package invoice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/internal/account"
	"invoicer/internal/invoice"
	"invoicer/internal/money"
)

func newStore(t *testing.T, accounts ...*account.Account) *account.Store {
	t.Helper()
	s, err := account.Load(t.TempDir() + "/customers.json")
	require.NoError(t, err)
	for _, acc := range accounts {
		require.NoError(t, s.Add(acc))
	}
	return s
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// stubGenerator records calls and returns a canned error.
type stubGenerator struct {
	err    error
	called int
}

func (g *stubGenerator) Generate(ctx context.Context, inv *invoice.Invoice) error {
	g.called++
	return g.err
}

func TestNewReservesNumberAndCodes(t *testing.T) {
	acme := &account.Account{Code: "ACME", Name: "Acme Corp", Sequence: 2}
	store := newStore(t, acme)

	inv, err := invoice.New(store, invoice.CodeSelector("acme"))
	require.NoError(t, err)

	assert.Equal(t, 3, inv.Number())
	assert.Equal(t, 3, acme.Sequence)
	assert.Equal(t, invoice.StatusOpen, inv.Status())
	assert.Equal(t, `\textsc{ACME}--003`, inv.Code())
	assert.Equal(t, "ACME_003", inv.PlainCode())
	assert.Equal(t, "invoice_ACME_003", inv.Filename())
}

func TestNewFailsOnEmptyStore(t *testing.T) {
	store := newStore(t)

	_, err := invoice.New(store, invoice.CodeSelector("acme"))
	assert.ErrorIs(t, err, invoice.ErrNoSelection)
}

func TestCodeSelectorFailsImmediatelyOnUnknownCode(t *testing.T) {
	store := newStore(t, &account.Account{Code: "ACME"})

	_, err := invoice.New(store, invoice.CodeSelector("nosuch"))
	assert.ErrorIs(t, err, invoice.ErrNoSelection)
}

// The subtotal always equals the sum of rate × quantity over the entries,
// whatever the sequence of AddEntry calls.
func TestSubtotalTracksEntries(t *testing.T) {
	store := newStore(t, &account.Account{Code: "ACME"})
	inv, err := invoice.New(store, invoice.CodeSelector("ACME"))
	require.NoError(t, err)

	assert.Equal(t, "0.00", money.FormatAmount(inv.Subtotal()))

	inv.AddEntry(invoice.NewEntry("F1", "Design work", dec("100.00"), dec("2")))
	assert.Equal(t, "200.00", money.FormatAmount(inv.Subtotal()))

	inv.AddEntry(invoice.NewEntry("F2", "Prints", dec("0.45"), dec("30")))
	assert.Equal(t, "213.50", money.FormatAmount(inv.Subtotal()))

	want := decimal.Zero
	for _, e := range inv.Entries() {
		want = want.Add(e.Rate.Mul(e.Qty))
	}
	assert.True(t, inv.Subtotal().Equal(want))
}

func TestTotalWithShippingAndDiscount(t *testing.T) {
	store := newStore(t, &account.Account{Code: "ACME", Sequence: 2}) // number becomes 3
	inv, err := invoice.New(store, invoice.CodeSelector("ACME"))
	require.NoError(t, err)

	inv.AddEntry(invoice.NewEntry("F1", "Design work", dec("100.00"), dec("2")))
	assert.Equal(t, "200.00", money.FormatAmount(inv.Subtotal()))

	inv.AddShipping(dec("10.00"))
	assert.Equal(t, "210.00", money.FormatAmount(inv.Total()))

	inv.AddDiscount(dec("15.00"))
	assert.Equal(t, "195.00", money.FormatAmount(inv.Total()))
}

// Adjustments accumulate rather than replace, and the visibility flags
// latch on and never toggle back off.
func TestAdjustmentsAccumulateAndLatch(t *testing.T) {
	store := newStore(t, &account.Account{Code: "ACME"})
	inv, err := invoice.New(store, invoice.CodeSelector("ACME"))
	require.NoError(t, err)

	assert.False(t, inv.ShippingVisible())
	assert.False(t, inv.DiscountVisible())

	inv.AddShipping(dec("5.00"))
	inv.AddShipping(dec("2.50"))
	assert.Equal(t, "7.50", money.FormatAmount(inv.Shipping()))
	assert.True(t, inv.ShippingVisible())

	inv.AddDiscount(dec("1.00"))
	inv.AddDiscount(dec("0.00"))
	assert.Equal(t, "1.00", money.FormatAmount(inv.Discount()))
	assert.True(t, inv.DiscountVisible())
}

func TestDiscardRollsBackNumber(t *testing.T) {
	acme := &account.Account{Code: "ACME", Sequence: 3}
	store := newStore(t, acme)

	inv, err := invoice.New(store, invoice.CodeSelector("ACME"))
	require.NoError(t, err)
	require.Equal(t, 4, inv.Number())

	inv.Discard()

	assert.Equal(t, invoice.StatusDiscarded, inv.Status())
	assert.Equal(t, 3, acme.Sequence)

	assert.Panics(t, func() { inv.Discard() })
}

func TestGenerateTransitions(t *testing.T) {
	acme := &account.Account{Code: "ACME", Sequence: 3}
	store := newStore(t, acme)

	inv, err := invoice.New(store, invoice.CodeSelector("ACME"))
	require.NoError(t, err)
	inv.AddEntry(invoice.NewEntry("F1", "Design work", dec("100.00"), dec("1")))

	// Failure leaves the invoice open and the number reserved.
	boom := errors.New("renderer exploded")
	failing := &stubGenerator{err: boom}
	err = inv.Generate(context.Background(), failing)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, invoice.StatusOpen, inv.Status())
	assert.Equal(t, 4, acme.Sequence)

	// Success is terminal.
	ok := &stubGenerator{}
	require.NoError(t, inv.Generate(context.Background(), ok))
	assert.Equal(t, invoice.StatusGenerated, inv.Status())
	assert.Equal(t, 1, ok.called)

	assert.Panics(t, func() { _ = inv.Generate(context.Background(), ok) })
	assert.Panics(t, func() { inv.Discard() })
}

func TestEntryAmountDerived(t *testing.T) {
	e := invoice.NewEntry("F1", "Hourly work", dec("35.50"), dec("2.5"))
	assert.Equal(t, "88.75", money.FormatAmount(e.Amount))
}
