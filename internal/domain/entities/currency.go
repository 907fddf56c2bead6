package entities

import (
	"fmt"
	"strings"
)

// NormalizeCurrency trims and upper-cases a currency code and checks it is three letters.
func NormalizeCurrency(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	for _, r := range normalized {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
		}
	}
	return normalized, nil
}

// NormalizeCurrencies normalizes a target list, dropping blanks and duplicates.
// Codes that fail validation are returned separately in rejected.
func NormalizeCurrencies(codes []string) (valid []string, rejected []string) {
	seen := make(map[string]bool, len(codes))
	valid = make([]string, 0, len(codes))
	for _, code := range codes {
		if strings.TrimSpace(code) == "" {
			continue
		}
		normalized, err := NormalizeCurrency(code)
		if err != nil {
			rejected = append(rejected, code)
			continue
		}
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		valid = append(valid, normalized)
	}
	return valid, rejected
}
