package services

import (
	"math"
	"strconv"
	"strings"
)

// DefaultCurrency is appended to amounts by FormatVND.
const DefaultCurrency = "₫"

// FormatVND formats an amount rounded to whole đồng with dot thousands
// separators, e.g. 1234567 -> "1.234.567 ₫".
func FormatVND(amount float64) string {
	return FormatMoney(amount, DefaultCurrency)
}

// FormatMoney formats an amount rounded to a whole number with dot thousands
// separators followed by the currency label. An empty label omits the suffix.
func FormatMoney(amount float64, currency string) string {
	n := int64(math.Round(amount))
	neg := n < 0
	if neg {
		n = -n
	}

	result := applyThousandsGrouping(strconv.FormatInt(n, 10))
	if neg {
		result = "-" + result
	}
	if currency != "" {
		result += " " + currency
	}
	return result
}

// applyThousandsGrouping inserts a dot between every group of three digits,
// counting from the right.
func applyThousandsGrouping(s string) string {
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/3)

	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte('.')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatDimensions renders "WxHmm", or "WxHxDmm" when depth is set. It
// returns "" when width or height is missing.
func FormatDimensions(d Dimensions) string {
	if d.Width <= 0 || d.Height <= 0 {
		return ""
	}
	s := formatNumber(d.Width) + "x" + formatNumber(d.Height)
	if d.Depth > 0 {
		s += "x" + formatNumber(d.Depth)
	}
	return s + "mm"
}

// formatNumber prints a float without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
