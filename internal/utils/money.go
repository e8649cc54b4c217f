package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMoney renders an amount rounded to whole units with "," thousand
// separators, e.g. 951000 -> "951,000".
func FormatMoney(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + formatThousand(n)
}

// FormatNumber keeps up to two decimals and drops trailing zeros.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// ParseAmount reads a form number, tolerating thousand separators. NaN and
// infinities are rejected.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(",", "", " ", "", "_", "").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("parse amount %q: not a finite number", s)
	}
	return v, nil
}

// AmountOrZero parses a form number; malformed or negative input becomes 0.
func AmountOrZero(s string) float64 {
	v, err := ParseAmount(s)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
