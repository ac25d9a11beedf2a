package multicalc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Format renders a result in canonical form. An integral value is written as
// an integer with no fractional part or exponent, whatever its magnitude.
// Any other value at no more than DefaultPrec bits is written as the shortest
// decimal that rounds back to the same float64, in positional notation when
// its decimal exponent is in [-4, 16) and in exponent notation otherwise.
// Higher precision values use the shortest decimal for their own precision.
func Format(x *big.Float) string {
	switch {
	case x.IsInf():
		if x.Signbit() {
			return "-inf"
		}
		return "inf"
	case x.Sign() == 0:
		// No negative zero.
		return "0"
	case x.IsInt():
		return x.Text('f', 0)
	case x.Prec() > DefaultPrec:
		return x.Text('g', -1)
	}
	f, _ := x.Float64()
	return formatFloat(f)
}

// formatFloat formats a non-integral float64.
func formatFloat(f float64) string {
	e := strconv.FormatFloat(f, 'e', -1, 64)
	k := strings.IndexByte(e, 'e')
	exp, _ := strconv.Atoi(e[k+1:])
	if -4 <= exp && exp < 16 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return e
}

// Finite reports whether x is representable as a finite result. At no more
// than DefaultPrec bits that means it is within float64 range.
func Finite(x *big.Float) bool {
	if x.IsInf() {
		return false
	}
	if x.Prec() > DefaultPrec {
		return true
	}
	f, _ := x.Float64()
	return !math.IsInf(f, 0)
}
