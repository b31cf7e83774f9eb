package prompt_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/internal/account"
	"invoicer/internal/prompt"
)

func TestLine(t *testing.T) {
	var out bytes.Buffer
	p := prompt.New(strings.NewReader("  hello  \n"), &out)

	text, err := p.Line("Name: ")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Contains(t, out.String(), "Name: ")
}

func TestLineEmptyIsNoInput(t *testing.T) {
	p := prompt.New(strings.NewReader("\n"), &bytes.Buffer{})
	_, err := p.Line("Name: ")
	assert.ErrorIs(t, err, prompt.ErrNoInput)

	p = prompt.New(strings.NewReader(""), &bytes.Buffer{})
	_, err = p.Line("Name: ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestAmount(t *testing.T) {
	p := prompt.New(strings.NewReader("12.50\n"), &bytes.Buffer{})
	d, err := p.Amount("Rate: ")
	require.NoError(t, err)
	assert.Equal(t, "12.5", d.String())
}

func TestAmountNonNumericIsNoInput(t *testing.T) {
	p := prompt.New(strings.NewReader("a lot\n"), &bytes.Buffer{})
	_, err := p.Amount("Rate: ")
	assert.ErrorIs(t, err, prompt.ErrNoInput)
}

func TestAddress(t *testing.T) {
	p := prompt.New(strings.NewReader("1 Long Road\nSpringfield\n\n"), &bytes.Buffer{})
	addr, err := p.Address()
	require.NoError(t, err)
	assert.Equal(t, `1 Long Road\\ Springfield`, addr)
}

func TestAddressEmptyFirstLineIsNoInput(t *testing.T) {
	p := prompt.New(strings.NewReader("\n"), &bytes.Buffer{})
	_, err := p.Address()
	assert.ErrorIs(t, err, prompt.ErrNoInput)
}

func newStore(t *testing.T) *account.Store {
	t.Helper()
	s, err := account.Load(t.TempDir() + "/customers.json")
	require.NoError(t, err)
	require.NoError(t, s.Add(&account.Account{Code: "ACME", Name: "Acme Corp"}))
	require.NoError(t, s.Add(&account.Account{Code: "BETA", Name: "Beta Ltd"}))
	return s
}

func TestSelectorResolvesCaseInsensitively(t *testing.T) {
	sel := prompt.NewAccountSelector(strings.NewReader("acme\n"), &bytes.Buffer{})
	acc, err := sel.Select(newStore(t))
	require.NoError(t, err)
	assert.Equal(t, "ACME", acc.Code)
}

// Unknown codes re-prompt rather than fail; -ls lists what is available.
func TestSelectorRetriesAndLists(t *testing.T) {
	var out bytes.Buffer
	sel := prompt.NewAccountSelector(strings.NewReader("nosuch\n-ls\nbeta\n"), &out)

	acc, err := sel.Select(newStore(t))
	require.NoError(t, err)
	assert.Equal(t, "BETA", acc.Code)
	assert.Contains(t, out.String(), "There is no account by that name")
	assert.Contains(t, out.String(), "ACME")
	assert.Contains(t, out.String(), "BETA")
}

func TestSelectorGivesUpOnNoInput(t *testing.T) {
	sel := prompt.NewAccountSelector(strings.NewReader("\n"), &bytes.Buffer{})
	_, err := sel.Select(newStore(t))
	assert.ErrorIs(t, err, prompt.ErrNoInput)
}
