package financial

import (
	"math"
	"strconv"
	"strings"
)

// ToFloat converts a numeric or European-formatted string value to float64.
// Unparseable input and unsupported types yield 0.
func ToFloat(value any) float64 {
	f, _ := ParseAmount(value)
	return f
}

// ParseAmount converts value to float64 and reports whether it could be parsed.
// Strings have every comma turned into a dot, then every dot that sits between a
// digit and a group of exactly three digits is dropped as a thousands separator:
// "1.234,56" -> 1234.56 and "403.394.333" -> 403394333.
// Only finite values are reported as parsed.
func ParseAmount(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		return parseEuropeanNumber(v)
	default:
		return 0, false
	}
}

func parseEuropeanNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || !isAmountText(s) {
		return 0, false
	}
	s = stripThousandsDots(strings.ReplaceAll(s, ",", "."))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

// isAmountText accepts digits, signs and separators only, which keeps
// "NaN", "inf", exponents and underscores away from strconv
func isAmountText(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case isDigit(c), c == '.', c == ',', c == '-', c == '+':
		default:
			return false
		}
	}
	return true
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// stripThousandsDots removes each '.' preceded by a digit and followed by exactly
// three digits that are not themselves followed by a digit.
func stripThousandsDots(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '.' && isThousandsDot(s, i) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isThousandsDot(s string, i int) bool {
	if i == 0 || !isDigit(s[i-1]) || i+4 > len(s) {
		return false
	}
	for j := i + 1; j <= i+3; j++ {
		if !isDigit(s[j]) {
			return false
		}
	}
	return i+4 == len(s) || !isDigit(s[i+4])
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
