package cache

import (
	"fmt"
	"strings"
)

const keyPrefix = "fx"

// RateKey construye la clave de un par: fx:rate:FROM:TO
func RateKey(from, to string) string {
	return fmt.Sprintf("%s:rate:%s:%s", keyPrefix, normalizeKeyPart(from), normalizeKeyPart(to))
}

// RatesKey construye la clave de un mapa de tasas: fx:rates:BASE
func RatesKey(base string) string {
	return fmt.Sprintf("%s:rates:%s", keyPrefix, normalizeKeyPart(base))
}

func normalizeKeyPart(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
