package common

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	XRPDecimals = 6 // XRP has 6 decimals (drops)

	// MaxDrops is the total XRP supply in drops; no amount may exceed it.
	MaxDrops uint64 = 100_000_000_000 * 1_000_000
)

// DropsToXRP converts drops to XRP string without float precision loss
func DropsToXRP(drops uint64) string {
	return formatWithDecimals(drops, XRPDecimals)
}

// XRPToDrops converts XRP string to drops without float precision loss.
// More than 6 fractional digits is an error, not a truncation.
func XRPToDrops(xrp string) (uint64, error) {
	xrp = strings.TrimSpace(xrp)
	if i := strings.IndexByte(xrp, '.'); i >= 0 && len(xrp)-i-1 > XRPDecimals {
		return 0, fmt.Errorf("too many decimal places: max %d", XRPDecimals)
	}
	drops, err := parseWithDecimals(xrp, XRPDecimals)
	if err != nil {
		return 0, err
	}
	if drops > MaxDrops {
		return 0, fmt.Errorf("amount exceeds total XRP supply")
	}
	return drops, nil
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(24981836, 6) = "24.981836"
func formatWithDecimals(value uint64, decimals int) string {
	s := strconv.FormatUint(value, 10)

	// Pad with leading zeros if needed
	for len(s) <= decimals {
		s = "0" + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// parseWithDecimals converts decimal string to integer by removing decimal point
// Example: parseWithDecimals("0.024981", 6) = 24981
func parseWithDecimals(s string, decimals int) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("signed amounts are not allowed")
	}

	parts := strings.Split(s, ".")

	if len(parts) == 1 {
		// No decimal point - multiply by 10^decimals
		n, err := strconv.ParseUint(parts[0], 10, 64)
		if err != nil {
			return 0, err
		}
		for i := 0; i < decimals; i++ {
			if n > (1<<64-1)/10 {
				return 0, fmt.Errorf("value out of range")
			}
			n *= 10
		}
		return n, nil
	}

	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	frac := parts[1]
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("invalid decimal format")
	}
	if whole == "" {
		whole = "0"
	}

	// Pad or truncate fractional part to exact decimals
	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	} else if len(frac) > decimals {
		frac = frac[:decimals]
	}

	// Combine and parse
	combined := whole + frac
	return strconv.ParseUint(combined, 10, 64)
}

// CompareXRPAmounts compares two XRP decimal string amounts without float precision loss.
// Returns: -1 if a < b, 0 if a == b, 1 if a > b, and error if parsing fails
func CompareXRPAmounts(a, b string) (int, error) {
	aVal, err := parseWithDecimals(a, XRPDecimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", a, err)
	}

	bVal, err := parseWithDecimals(b, XRPDecimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", b, err)
	}

	if aVal < bVal {
		return -1, nil
	}
	if aVal > bVal {
		return 1, nil
	}
	return 0, nil
}
