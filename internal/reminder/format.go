package reminder

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// maxGrouped bounds amounts formatted with grouping; larger values do not fit
// the int64 whole part.
const maxGrouped = 1e15

// FormatAmount renders an amount with English thousands grouping and at most
// two decimals, dropping trailing zeros: 1234.5 -> "1,234.5", 500 -> "500".
// Non-zero amounts under half a cent round away from zero to 0.01.
// Values that cannot be grouped fall back to a plain number.
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= maxGrouped {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	d := decimal.NewFromFloat(v).Round(2)
	if d.IsZero() && v != 0 {
		// A sub-cent balance still shows as one cent, never as "0".
		d = decimal.NewFromFloat(v).RoundUp(2)
	}
	whole := d.Truncate(0)

	s := message.NewPrinter(language.English).Sprintf("%d", whole.IntPart())
	if d.IsNegative() && whole.IsZero() {
		s = "-" + s
	}

	if frac := d.Sub(whole).Abs(); !frac.IsZero() {
		s += strings.TrimPrefix(frac.String(), "0")
	}
	return s
}
