package providers

import "strings"

// PositiveRates copia el mapa con claves en mayúsculas y descarta tasas no positivas
func PositiveRates(rates map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(rates))
	for code, rate := range rates {
		if rate > 0 {
			out[strings.ToUpper(code)] = rate
		}
	}
	return out
}
