package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// CustomerClass partitions customers into separate invoice-numbering namespaces.
//
// Each class owns its own prefix and its own counter:
//   - corporate  => C00001, C00002, ...
//   - individual => D00001, D00002, ...

type CustomerClass string

const (
	CustomerClassCorporate  CustomerClass = "corporate"
	CustomerClassIndividual CustomerClass = "individual"
)

// InvoiceNumberDigits is the minimum width of the numeric part of an invoice number.
const InvoiceNumberDigits = 5

// CustomerClasses lists every known class in a stable order.
func CustomerClasses() []CustomerClass {
	return []CustomerClass{CustomerClassCorporate, CustomerClassIndividual}
}

func (c CustomerClass) Valid() bool {
	switch c {
	case CustomerClassCorporate, CustomerClassIndividual:
		return true
	}
	return false
}

// Prefix returns the invoice-number prefix of the class, or "" for an unknown class.
func (c CustomerClass) Prefix() string {
	switch c {
	case CustomerClassCorporate:
		return "C"
	case CustomerClassIndividual:
		return "D"
	}
	return ""
}

func ParseCustomerClass(raw string) (CustomerClass, bool) {
	c := CustomerClass(strings.ToLower(strings.TrimSpace(raw)))
	return c, c.Valid()
}

// FormatInvoiceNumber renders n as <prefix><zero-padded n>.
func FormatInvoiceNumber(c CustomerClass, n int) string {
	return fmt.Sprintf("%s%0*d", c.Prefix(), InvoiceNumberDigits, n)
}

// ParseInvoiceNumber extracts the numeric suffix of an invoice number of class c.
// It reports false when the prefix does not match or the suffix is not a positive integer.
func ParseInvoiceNumber(c CustomerClass, invoiceNumber string) (int, bool) {
	prefix := c.Prefix()
	if prefix == "" || !strings.HasPrefix(invoiceNumber, prefix) {
		return 0, false
	}
	digits := invoiceNumber[len(prefix):]
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
