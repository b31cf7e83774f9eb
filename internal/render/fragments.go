package render

import (
	"fmt"
	"strings"

	"invoicer/internal/config"
	"invoicer/internal/invoice"
	"invoicer/internal/money"
)

// Fragment file names the renderer consumes by convention, and the job it
// is run under. The template is copied into the workspace as <jobName>.tex
// and produces <jobName><ext>.
const (
	jobName              = "TEMPinvoice"
	fragmentNumberFile   = "TEMPinvoiceNumber.tex"
	fragmentCustomerFile = "TEMPcustomerAddress.tex"
	fragmentInfoFile     = "TEMPinvoiceInfo.tex"
	fragmentConfigFile   = "TEMPconfig.tex"
)

// blankRow pads short invoices so the table keeps its shape. Purely a
// presentation concern; it never contributes to any total.
const blankRow = `&~\n~&&&\\`

// numberFragment is the styled invoice identity code.
func numberFragment(inv *invoice.Invoice) string {
	return inv.Code()
}

// customerFragment is the customer's name and address, lines separated for
// the template.
func customerFragment(inv *invoice.Invoice) string {
	return inv.Customer().Name + `\\` + inv.Customer().Address
}

// infoFragment carries the entry table and the totals block. Entries appear
// in document order, each as id & description & rate & quantity & amount;
// the table is padded with blank rows up to minRows. The discount and
// shipping lines are emitted only once the matching adjustment has been
// applied to the invoice.
func infoFragment(inv *invoice.Invoice, minRows int) string {
	var b strings.Builder

	fmt.Fprintf(&b, `\newcommand{\subtotal}{%s}`, money.FormatAmount(inv.Subtotal()))
	fmt.Fprintf(&b, `\newcommand{\discount}{%s}`, money.FormatAmount(inv.Discount()))
	fmt.Fprintf(&b, `\newcommand{\shipping}{%s}`, money.FormatAmount(inv.Shipping()))
	fmt.Fprintf(&b, `\newcommand{\grandtotal}{%s}`, money.FormatAmount(inv.Total()))
	fmt.Fprintf(&b, `\newcommand{\discountline}{%s}`, discountLine(inv))
	fmt.Fprintf(&b, `\newcommand{\shippingline}{%s}`, shippingLine(inv))

	b.WriteString(`\newcommand{\invoiceInfo}{`)
	rows := 0
	for _, e := range inv.Entries() {
		fmt.Fprintf(&b, `%s & %s & %s & %s & %s \\`,
			e.ID,
			e.Description,
			money.FormatAmount(e.Rate),
			money.FormatAmount(e.Qty),
			money.FormatAmount(e.Amount))
		rows++
	}
	for ; rows < minRows; rows++ {
		b.WriteString(blankRow)
	}
	b.WriteString(`}`)

	return b.String()
}

// shippingLine renders the shipping row of the totals block, or nothing
// when no shipping was ever applied.
func shippingLine(inv *invoice.Invoice) string {
	if !inv.ShippingVisible() {
		return ""
	}
	return fmt.Sprintf(`Shipping: & \pounds{%s}\\`, money.FormatAmount(inv.Shipping()))
}

// discountLine renders the discount row of the totals block, or nothing
// when no discount was ever applied.
func discountLine(inv *invoice.Invoice) string {
	if !inv.DiscountVisible() {
		return ""
	}
	return fmt.Sprintf(`Discount: & \pounds{%s}\\`, money.FormatAmount(inv.Discount()))
}

// configFragment carries the issuer record into the template.
func configFragment(issuer config.Issuer) string {
	var b strings.Builder
	fmt.Fprintf(&b, `\newcommand{\myName}{%s}`, issuer.Name)
	fmt.Fprintf(&b, `\newcommand{\myAddress}{%s}`, issuer.Address)
	fmt.Fprintf(&b, `\newcommand{\myPhoneNumber}{%s}`, issuer.Phone)
	fmt.Fprintf(&b, `\newcommand{\myEmail}{%s}`, issuer.Email)
	fmt.Fprintf(&b, `\newcommand{\accountNumber}{%s}`, issuer.AccountNumber)
	fmt.Fprintf(&b, `\newcommand{\sortCode}{%s}`, issuer.FormattedSortCode())
	return b.String()
}
