package account_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/internal/account"
)

func TestReserveInvoiceNumber(t *testing.T) {
	acc := &account.Account{Code: "ACME", Sequence: 2}

	assert.Equal(t, 3, acc.ReserveInvoiceNumber())
	assert.Equal(t, 4, acc.ReserveInvoiceNumber())
	assert.Equal(t, 4, acc.Sequence)
}

// Reserving and immediately rolling back restores the exact prior sequence,
// whatever the starting value.
func TestReserveRollbackRoundTrip(t *testing.T) {
	for _, start := range []int{0, 1, 2, 41, 999} {
		acc := &account.Account{Code: "ACME", Sequence: start}
		acc.ReserveInvoiceNumber()
		acc.RollbackInvoiceNumber()
		assert.Equal(t, start, acc.Sequence, "starting sequence %d", start)
	}
}

func TestRollbackAtZeroPanics(t *testing.T) {
	acc := &account.Account{Code: "ACME"}
	assert.Panics(t, func() { acc.RollbackInvoiceNumber() })
}

func TestStoreRoundTrip(t *testing.T) {
	path := t.TempDir() + "/customers.json"

	s, err := account.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())

	require.NoError(t, s.Add(&account.Account{
		Code:     "ACME",
		Name:     "Acme Corp",
		Address:  `1 Long Road\\ Springfield`,
		Sequence: 2,
	}))
	require.NoError(t, s.Add(&account.Account{Code: "BETA", Name: "Beta Ltd"}))
	require.NoError(t, s.Save())

	reloaded, err := account.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Len())

	acc, err := reloaded.Get("acme")
	require.NoError(t, err)
	assert.Equal(t, "ACME", acc.Code)
	assert.Equal(t, "Acme Corp", acc.Name)
	assert.Equal(t, 2, acc.Sequence)
}

func TestStoreGetIsCaseInsensitive(t *testing.T) {
	s, err := account.Load(t.TempDir() + "/customers.json")
	require.NoError(t, err)
	require.NoError(t, s.Add(&account.Account{Code: "AcMe"}))

	for _, code := range []string{"acme", "ACME", "AcMe"} {
		_, err := s.Get(code)
		assert.NoError(t, err, "lookup with %q", code)
	}

	_, err = s.Get("nosuch")
	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestStoreRejectsDuplicateCodes(t *testing.T) {
	s, err := account.Load(t.TempDir() + "/customers.json")
	require.NoError(t, err)

	require.NoError(t, s.Add(&account.Account{Code: "ACME"}))
	assert.ErrorIs(t, s.Add(&account.Account{Code: "acme"}), account.ErrDuplicate)
}

func TestStoreCodesSorted(t *testing.T) {
	s, err := account.Load(t.TempDir() + "/customers.json")
	require.NoError(t, err)

	for _, code := range []string{"ZULU", "ACME", "MIKE"} {
		require.NoError(t, s.Add(&account.Account{Code: code}))
	}

	assert.Equal(t, []string{"ACME", "MIKE", "ZULU"}, s.Codes())
}
