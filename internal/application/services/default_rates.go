package services

const usd = "USD"

// defaultRateTable contiene unidades de cada moneda por 1 USD. Último recurso del ladder.
var defaultRateTable = map[string]float64{
	"GTQ": 7.8,
	"EUR": 0.92,
	"GBP": 0.79,
	"MXN": 17.2,
	"USD": 1.0,
}

// DefaultRate derives from->to from the static table. Codes must already be normalized.
func DefaultRate(from, to string) (float64, bool) {
	fromRate, fromOK := defaultRateTable[from]
	toRate, toOK := defaultRateTable[to]

	switch {
	case from == usd && toOK:
		return toRate, true
	case to == usd && fromOK:
		return 1 / fromRate, true
	case fromOK && toOK:
		return toRate / fromRate, true
	default:
		return 0, false
	}
}

// DefaultRates returns every tabulated currency quoted against base, or false if base is not tabulated.
func DefaultRates(base string) (map[string]float64, bool) {
	baseRate, ok := defaultRateTable[base]
	if !ok {
		return nil, false
	}

	rates := make(map[string]float64, len(defaultRateTable))
	for code, rate := range defaultRateTable {
		if code == base {
			rates[code] = 1
			continue
		}
		rates[code] = rate / baseRate
	}
	return rates, true
}
