package invoice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/internal/invoice"
	"invoicer/internal/money"
)

func TestImportEntries(t *testing.T) {
	src := strings.NewReader(
		"id,description,rate,quantity\n" +
			"F1,Design work,100.00,2\n" +
			"F2,Prints,0.45,30\n" +
			"F3,Delivery,5,1\n")

	entries, err := invoice.ImportEntries(src)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "F1", entries[0].ID)
	assert.Equal(t, "Design work", entries[0].Description)
	assert.Equal(t, "200.00", money.FormatAmount(entries[0].Amount))
	assert.Equal(t, "13.50", money.FormatAmount(entries[1].Amount))
	assert.Equal(t, "5.00", money.FormatAmount(entries[2].Amount))
}

// One bad numeric field anywhere fails the whole import; nothing is kept.
func TestImportFailsWholesaleOnBadRate(t *testing.T) {
	src := strings.NewReader(
		"id,description,rate,quantity\n" +
			"F1,Design work,100.00,2\n" +
			"F2,Prints,lots,30\n" +
			"F3,Delivery,5,1\n")

	entries, err := invoice.ImportEntries(src)
	assert.Nil(t, entries)

	var importErr *invoice.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, 3, importErr.Row)
	assert.Equal(t, "rate", importErr.Field)
}

func TestImportFailsOnBadQuantity(t *testing.T) {
	src := strings.NewReader(
		"id,description,rate,quantity\n" +
			"F1,Design work,100.00,some\n")

	entries, err := invoice.ImportEntries(src)
	assert.Nil(t, entries)

	var importErr *invoice.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, "quantity", importErr.Field)
}

func TestImportFailsOnEmptySource(t *testing.T) {
	_, err := invoice.ImportEntries(strings.NewReader(""))
	assert.Error(t, err)
}

func TestImportHeaderOnlyYieldsNoEntries(t *testing.T) {
	entries, err := invoice.ImportEntries(strings.NewReader("id,description,rate,quantity\n"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
