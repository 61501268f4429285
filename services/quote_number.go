package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// QuoteNumberPrefix returns the reference prefix shared by every quote
// created in the year of t, e.g. "Q-2026-".
func QuoteNumberPrefix(t time.Time) string {
	return fmt.Sprintf("Q-%04d-", t.Year())
}

// FormatQuoteNumber builds a reference number from its prefix and a
// 1-based sequence, zero-padded to three digits.
func FormatQuoteNumber(prefix string, sequence int) string {
	return fmt.Sprintf("%s%03d", prefix, sequence)
}

// NextQuoteNumber returns the reference after the highest sequence found in
// existing under the prefix of now. References with other prefixes or a
// non-numeric tail are ignored.
func NextQuoteNumber(existing []string, now time.Time) string {
	prefix := QuoteNumberPrefix(now)
	highest := 0
	for _, ref := range existing {
		tail, ok := strings.CutPrefix(ref, prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(tail)
		if err != nil {
			continue
		}
		highest = max(highest, n)
	}
	return FormatQuoteNumber(prefix, highest+1)
}
