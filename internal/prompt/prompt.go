// Package prompt is the interactive console adapter. It collects values
// from the user and hands them, already validated, to the domain
// constructors; no domain type ever reads from the terminal itself.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"invoicer/internal/account"
	"invoicer/internal/money"
)

// ErrNoInput signals that the user skipped a value by entering nothing.
// It is an expected, recoverable outcome: the caller decides whether to
// retry, fall back, or abandon the operation.
var ErrNoInput = errors.New("no input given")

// Prompter reads console input line by line.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// New builds a prompter over the given streams (normally stdin/stdout).
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Line prints the label and reads one line. An empty line yields
// ErrNoInput; exhausted input yields io.EOF so session loops can tell a
// skipped value from a closed terminal.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	text := strings.TrimSpace(p.in.Text())
	if text == "" {
		return "", ErrNoInput
	}
	return text, nil
}

// Amount prints the label and reads a decimal number. Empty or
// non-numeric input yields ErrNoInput.
func (p *Prompter) Amount(label string) (decimal.Decimal, error) {
	text, err := p.Line(label)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := money.ParseAmount(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrNoInput, text)
	}
	return d, nil
}

// Address reads a multi-line address terminated by a blank line and joins
// the lines with the template's line separator. An empty first line yields
// ErrNoInput.
func (p *Prompter) Address() (string, error) {
	fmt.Fprintln(p.out, "What is the address?")

	first, err := p.Line(">> ")
	if err != nil {
		return "", err
	}

	lines := []string{first}
	for {
		line, err := p.Line(">> ")
		if err != nil {
			break // blank line ends the address
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, `\\ `), nil
}

// AccountSelector resolves a customer account interactively. Unknown codes
// re-prompt; "-ls" lists the registered codes. It implements
// invoice.Selector.
type AccountSelector struct {
	p *Prompter
}

// NewAccountSelector builds the interactive selector.
func NewAccountSelector(in io.Reader, out io.Writer) *AccountSelector {
	return &AccountSelector{p: New(in, out)}
}

// AccountSelector wraps an existing prompter so a session can share one
// input buffer between selection and the rest of its prompts.
func (p *Prompter) AccountSelector() *AccountSelector {
	return &AccountSelector{p: p}
}

// Select prompts until the user names an existing account or gives up by
// entering nothing.
func (s *AccountSelector) Select(store *account.Store) (*account.Account, error) {
	selection, err := s.p.Line("Please select a customer account: ")
	if err != nil {
		return nil, err
	}

	for {
		if selection == "-ls" {
			fmt.Fprintln(s.p.out, "All customer accounts:")
			for _, code := range store.Codes() {
				fmt.Fprintln(s.p.out, code)
			}
		} else {
			acc, err := store.Get(selection)
			if err == nil {
				return acc, nil
			}
			fmt.Fprintln(s.p.out, "There is no account by that name. Please try again. (Type -ls to get a list of available accounts)")
		}

		selection, err = s.p.Line(">> ")
		if err != nil {
			return nil, err
		}
	}
}
