package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrMalformedPrice = errors.New("malformed price")
	ErrNegativePrice  = errors.New("price must not be negative")
)

// priceStringPattern accepts the catalog source's formatted amounts: digits
// grouped by thousands commas (or ungrouped) and an optional two-digit
// fraction. Examples: "1,299.00", "1299", "250".
var priceStringPattern = regexp.MustCompile(`^(\d{1,3}(?:,\d{3})*|\d+)(?:\.(\d{2}))?$`)

const priceCurrencyPrefix = "Rs. "

// ParsePrice normalizes a catalog price to whole rupees. Numbers must be
// non-negative integers; strings must carry an optional "Rs. " prefix
// followed by a comma-grouped amount whose fraction, if present, is ".00"
// ("Rs. 1,299.00" parses to 1299, the same value as the number 1299).
// Everything else is rejected, so a bad catalog entry fails at load instead
// of poisoning cart totals.
func ParsePrice(v any) (int64, error) {
	switch p := v.(type) {
	case int:
		return checkPrice(int64(p))
	case int64:
		return checkPrice(p)
	case float64:
		if p != math.Trunc(p) {
			return 0, fmt.Errorf("%w: non-integral numeric price %v", ErrMalformedPrice, p)
		}
		return checkPrice(int64(p))
	case json.Number:
		n, err := p.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedPrice, p.String())
		}
		return checkPrice(n)
	case string:
		return parsePriceString(p)
	default:
		return 0, fmt.Errorf("%w: unsupported price type %T", ErrMalformedPrice, v)
	}
}

func checkPrice(n int64) (int64, error) {
	if n < 0 {
		return 0, ErrNegativePrice
	}
	return n, nil
}

func parsePriceString(s string) (int64, error) {
	trimmed := strings.TrimPrefix(s, priceCurrencyPrefix)
	m := priceStringPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedPrice, s)
	}
	if m[2] != "" && m[2] != "00" {
		return 0, fmt.Errorf("%w: %q has a sub-unit fraction", ErrMalformedPrice, s)
	}

	n, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedPrice, s)
	}
	return n, nil
}
