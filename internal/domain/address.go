package domain

import (
	"net/netip"
	"strings"
)

// IsDottedQuad reports whether s looks like an IPv4 address.
// Only the separator count is checked: exactly three '.' characters.
func IsDottedQuad(s string) bool {
	return strings.Count(s, ".") == 3
}

// IsNumeric reports whether s is a non-empty string of ASCII digits
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// AddressOrder selects how report sections are ordered
type AddressOrder string

const (
	// AddressOrderLexical sorts addresses as plain strings, so 10.0.0.1 sorts before 9.9.9.9
	AddressOrderLexical AddressOrder = "lexical"
	// AddressOrderNumeric sorts parseable addresses octet by octet
	AddressOrderNumeric AddressOrder = "numeric"
)

// ParseAddressOrder converts a string to AddressOrder, defaulting to AddressOrderLexical
func ParseAddressOrder(s string) AddressOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "numeric":
		return AddressOrderNumeric
	default:
		return AddressOrderLexical
	}
}

// Valid reports whether o is a known ordering
func (o AddressOrder) Valid() bool {
	return o == AddressOrderLexical || o == AddressOrderNumeric
}

// Compare returns -1, 0 or +1 following the strategy
func (o AddressOrder) Compare(a, b string) int {
	if o != AddressOrderNumeric {
		return strings.Compare(a, b)
	}

	pa, errA := netip.ParseAddr(a)
	pb, errB := netip.ParseAddr(b)
	switch {
	case errA == nil && errB == nil:
		if c := pa.Compare(pb); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case errA == nil:
		// Parseable addresses first, junk that merely has three dots after
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
