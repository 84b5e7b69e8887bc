package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCustomerClass(t *testing.T) {
	c, ok := ParseCustomerClass(" Corporate ")
	assert.True(t, ok)
	assert.Equal(t, CustomerClassCorporate, c)

	_, ok = ParseCustomerClass("vip")
	assert.False(t, ok)
	_, ok = ParseCustomerClass("")
	assert.False(t, ok)
}

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "C00001", FormatInvoiceNumber(CustomerClassCorporate, 1))
	assert.Equal(t, "D00042", FormatInvoiceNumber(CustomerClassIndividual, 42))
	assert.Equal(t, "C123456", FormatInvoiceNumber(CustomerClassCorporate, 123456))
}

func TestParseInvoiceNumber(t *testing.T) {
	cases := []struct {
		class  CustomerClass
		in     string
		want   int
		wantOK bool
	}{
		{CustomerClassCorporate, "C00007", 7, true},
		{CustomerClassCorporate, "C123456", 123456, true},
		{CustomerClassIndividual, "D00010", 10, true},
		{CustomerClassCorporate, "D00007", 0, false},
		{CustomerClassCorporate, "C", 0, false},
		{CustomerClassCorporate, "C00000", 0, false},
		{CustomerClassCorporate, "C-0001", 0, false},
		{CustomerClassCorporate, "C0001a", 0, false},
		{CustomerClass("vip"), "V00001", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			n, ok := ParseInvoiceNumber(tc.class, tc.in)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, n)
		})
	}
}

func TestInvoiceNumberRoundTrip(t *testing.T) {
	for _, c := range CustomerClasses() {
		for _, n := range []int{1, 99999, 100000} {
			got, ok := ParseInvoiceNumber(c, FormatInvoiceNumber(c, n))
			assert.True(t, ok)
			assert.Equal(t, n, got)
		}
	}
}
