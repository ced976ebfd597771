package fixedpoint

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Number is an immutable fixed-point value bound to one [Family].
// The real value of a number is coefficient / 2^resolution, where the
// coefficient is a signed integer of arbitrary width and the resolution
// comes from the family.
//
// Numbers must be obtained from constructors or operations; the zero value
// of the type is not bound to a family and is not usable.
// Every operation returns a new number, so numbers are safe for concurrent
// use by multiple goroutines.
type Number struct {
	coef *sint   // the coefficient, equal to value * 2^resolution
	fam  *Family // the owning family
}

var (
	// ErrOverflow is returned when the magnitude of a result exceeds the
	// integer-bit range of its family.
	// Results are never silently wrapped or saturated.
	ErrOverflow = errors.New("overflow")

	// ErrDomain is returned when an operation is undefined for its input,
	// such as the square root of a negative number or the logarithm of a
	// non-positive number.
	ErrDomain = errors.New("domain error")

	// ErrDivisionByZero is returned when dividing by a number equal to zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrFamilyMismatch is returned by binary operations whose operands are
	// bound to different families.
	ErrFamilyMismatch = errors.New("family mismatch")

	errInvalidNumber = errors.New("invalid number")
	errExponentRange = errors.New("exponent out of range")
)

// maxExponent bounds the exponent accepted by [Parse].
const maxExponent = 99_999

// checkRange verifies the family invariant |coef| < 2^(resolution + intBits - 1).
func checkRange(coef *sint, fam *Family) error {
	if coef.bitLen() < fam.resolution+fam.intBits {
		return nil
	}
	return fmt.Errorf("%w: magnitude ~%s exceeds the %v-bit integer range of %v", ErrOverflow, approx(coef, fam.resolution), fam.intBits, fam)
}

// approx formats a coefficient at the given resolution as a short decimal
// approximation for error messages.
func approx(coef *sint, resolution int) string {
	f := new(big.Float).SetInt((*big.Int)(coef))
	f.SetMantExp(f, -resolution)
	return f.Text('g', 6)
}

// newFromSint returns a number holding a copy of the given coefficient,
// checked against the family's range.
func newFromSint(coef *sint, fam *Family) (Number, error) {
	if err := checkRange(coef, fam); err != nil {
		return Number{}, err
	}
	z := new(sint)
	z.setSint(coef)
	return Number{coef: z, fam: fam}, nil
}

// New returns a number equal to value under the given family.
// New returns an error if value exceeds the family's integer range.
func New(value int64, fam *Family) (Number, error) {
	if fam == nil {
		return Number{}, fmt.Errorf("nil family: %w", errInvalidFamily)
	}
	coef := getSint()
	defer putSint(coef)
	coef.setInt64(value)
	coef.lsh(coef, fam.resolution)
	return newFromSint(coef, fam)
}

// NewFromFloat64 returns a number equal to value rounded to the resolution
// of the given family.
// The conversion is exact up to the rounding: the float is decomposed into
// its binary mantissa and exponent, so no decimal round trip is involved.
//
// NewFromFloat64 returns an error:
//   - if value is NaN or Infinity;
//   - if value exceeds the family's integer range.
func NewFromFloat64(value float64, fam *Family) (Number, error) {
	if fam == nil {
		return Number{}, fmt.Errorf("nil family: %w", errInvalidFamily)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Number{}, fmt.Errorf("converting %v: %w", value, errInvalidNumber)
	}
	frac, exp := math.Frexp(value)
	coef := getSint()
	defer putSint(coef)
	coef.setInt64(int64(frac * (1 << 53))) // exact, frac is a 53-bit fraction
	shift := exp - 53 + fam.resolution
	if shift >= 0 {
		coef.lsh(coef, shift)
	} else {
		coef.rshHalfEven(coef, -shift)
	}
	return newFromSint(coef, fam)
}

// Parse converts a string to a number under the given family, rounding to
// the family's resolution.
// The input string must be in one of the following formats:
//
//	1.234
//	-1234
//	+0.000001234
//	1.83e5
//	0.22e-9
//
// The formal EBNF grammar for the supported format is as follows:
//
//	sign           ::= '+' | '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	significand    ::= digits '.' digits | '.' digits | digits '.' | digits
//	exponent       ::= ('e' | 'E') [sign] digits
//	numeric-string ::= [sign] significand [exponent]
//
// Parse returns an error:
//   - if the string does not represent a valid number;
//   - if the exponent is less than -99999 or greater than 99999;
//   - if the value exceeds the family's integer range.
func Parse(num string, fam *Family) (Number, error) {
	if fam == nil {
		return Number{}, fmt.Errorf("nil family: %w", errInvalidFamily)
	}

	var (
		pos     int
		width   int
		neg     bool
		eneg    bool
		scale   int
		exp     int
		hascoef bool
		hasexp  bool
		hase    bool
	)

	coef := getSint()
	defer putSint(coef)
	coef.setInt64(0)
	width = len(num)

	// Sign
	switch {
	case pos == width:
		// skip
	case num[pos] == '-':
		neg = true
		pos++
	case num[pos] == '+':
		pos++
	}

	// Integer
	for pos < width && num[pos] >= '0' && num[pos] <= '9' {
		hascoef = true
		coef.fsa(num[pos] - '0')
		pos++
	}

	// Fraction
	if pos < width && num[pos] == '.' {
		pos++
		for pos < width && num[pos] >= '0' && num[pos] <= '9' {
			hascoef = true
			coef.fsa(num[pos] - '0')
			scale++
			pos++
		}
	}

	// Exponential part
	if pos < width && (num[pos] == 'e' || num[pos] == 'E') {
		hase = true
		pos++
		// Sign
		switch {
		case pos == width:
			// skip
		case num[pos] == '-':
			eneg = true
			pos++
		case num[pos] == '+':
			pos++
		}
		// Integer
		for pos < width && num[pos] >= '0' && num[pos] <= '9' {
			exp = exp*10 + int(num[pos]-'0')
			if exp > maxExponent {
				return Number{}, errExponentRange
			}
			hasexp = true
			pos++
		}
	}

	if pos != width {
		return Number{}, fmt.Errorf("invalid character %q: %w", num[pos], errInvalidNumber)
	}
	if !hascoef {
		return Number{}, fmt.Errorf("no coefficient: %w", errInvalidNumber)
	}
	if hase && !hasexp {
		return Number{}, fmt.Errorf("no exponent: %w", errInvalidNumber)
	}

	if eneg {
		scale = scale + exp
	} else {
		scale = scale - exp
	}
	if neg {
		coef.neg(coef)
	}

	// coef / 10^scale scaled by 2^resolution, rounded half to even.
	z := getSint()
	defer putSint(z)
	z.lsh(coef, fam.resolution)
	if scale != 0 {
		d := getSint()
		defer putSint(d)
		if scale > 0 {
			d.pow10(scale)
			z.quoHalfEven(z, d)
		} else {
			d.pow10(-scale)
			z.mul(z, d)
		}
	}
	return newFromSint(z, fam)
}

// Family returns the family the number is bound to.
func (n Number) Family() *Family {
	return n.fam
}

// Zero returns a number with a value of 0 under the same family as n.
func (n Number) Zero() Number {
	return Number{coef: new(sint), fam: n.fam}
}

// One returns a number with a value of 1 under the same family as n.
func (n Number) One() Number {
	z := new(sint)
	z.setInt64(1)
	z.lsh(z, n.fam.resolution)
	return Number{coef: z, fam: n.fam}
}

// ULP (Unit in the Last Place) returns the smallest representable positive
// number under the same family as n.
func (n Number) ULP() Number {
	z := new(sint)
	z.setInt64(1)
	return Number{coef: z, fam: n.fam}
}

// checkFamily verifies that n and m belong to the same family.
func (n Number) checkFamily(m Number) error {
	if n.fam == nil || m.fam == nil {
		return fmt.Errorf("operand without a family: %w", errInvalidNumber)
	}
	if n.fam != m.fam {
		return fmt.Errorf("operands belong to %v and %v: %w", n.fam, m.fam, ErrFamilyMismatch)
	}
	return nil
}

// Add returns the exact sum of n and m.
//
// Add returns an error:
//   - if n and m belong to different families;
//   - if the sum exceeds the family's integer range.
func (n Number) Add(m Number) (Number, error) {
	if err := n.checkFamily(m); err != nil {
		return Number{}, err
	}
	z := getSint()
	defer putSint(z)
	z.add(n.coef, m.coef)
	return newFromSint(z, n.fam)
}

// Sub returns the exact difference of n and m.
//
// Sub returns an error:
//   - if n and m belong to different families;
//   - if the difference exceeds the family's integer range.
func (n Number) Sub(m Number) (Number, error) {
	if err := n.checkFamily(m); err != nil {
		return Number{}, err
	}
	z := getSint()
	defer putSint(z)
	z.sub(n.coef, m.coef)
	return newFromSint(z, n.fam)
}

// Mul returns the product of n and m rounded to the resolution of the family.
// The full-width product is computed first, then shifted back into the
// family's scale with "half to even" rounding.
//
// Mul returns an error:
//   - if n and m belong to different families;
//   - if the product exceeds the family's integer range.
func (n Number) Mul(m Number) (Number, error) {
	if err := n.checkFamily(m); err != nil {
		return Number{}, err
	}
	z := getSint()
	defer putSint(z)
	z.mul(n.coef, m.coef)
	z.rshHalfEven(z, n.fam.resolution)
	return newFromSint(z, n.fam)
}

// Quo returns the quotient of n and m rounded to the resolution of the
// family.
// The dividend is shifted left by the resolution before the integer
// division, so no fractional precision is lost, and the result is rounded
// using "half to even" rule.
//
// Quo returns an error:
//   - if n and m belong to different families;
//   - if m is zero;
//   - if the quotient exceeds the family's integer range.
func (n Number) Quo(m Number) (Number, error) {
	if err := n.checkFamily(m); err != nil {
		return Number{}, err
	}
	if m.coef.sign() == 0 {
		return Number{}, fmt.Errorf("%v / %v: %w", n, m, ErrDivisionByZero)
	}
	z := getSint()
	defer putSint(z)
	z.lsh(n.coef, n.fam.resolution)
	z.quoHalfEven(z, m.coef)
	return newFromSint(z, n.fam)
}

// Neg returns a number with the opposite sign of n.
func (n Number) Neg() Number {
	z := new(sint)
	z.neg(n.coef)
	return Number{coef: z, fam: n.fam}
}

// Abs returns the absolute value of n.
func (n Number) Abs() Number {
	z := new(sint)
	z.abs(n.coef)
	return Number{coef: z, fam: n.fam}
}

// CopySign returns a number with the magnitude of n and the sign of m.
// If m is zero, the sign of the result remains unchanged.
func (n Number) CopySign(m Number) Number {
	switch m.Sign() {
	case 1:
		return n.Abs()
	case -1:
		return n.Abs().Neg()
	}
	return n
}

// Sign returns:
//
//	-1 if n < 0
//	 0 if n == 0
//	+1 if n > 0
func (n Number) Sign() int {
	return n.coef.sign()
}

// IsZero returns true if n == 0.
func (n Number) IsZero() bool {
	return n.coef.sign() == 0
}

// IsPos returns true if n > 0.
func (n Number) IsPos() bool {
	return n.coef.sign() > 0
}

// IsNeg returns true if n < 0.
func (n Number) IsNeg() bool {
	return n.coef.sign() < 0
}

// IsOne returns true if n == 1.
func (n Number) IsOne() bool {
	t := getSint()
	defer putSint(t)
	t.setInt64(1)
	t.lsh(t, n.fam.resolution)
	return n.coef.cmp(t) == 0
}

// WithinOne returns true if -1 < n < 1.
func (n Number) WithinOne() bool {
	return n.coef.bitLen() <= n.fam.resolution
}

// Cmp compares n and m numerically and returns:
//
//	-1 if n < m
//	 0 if n == m
//	+1 if n > m
//
// Cmp returns an error if n and m belong to different families.
func (n Number) Cmp(m Number) (int, error) {
	if err := n.checkFamily(m); err != nil {
		return 0, err
	}
	return n.coef.cmp(m.coef), nil
}

// Max returns the larger of n and m.
// Max returns an error if n and m belong to different families.
func (n Number) Max(m Number) (Number, error) {
	s, err := n.Cmp(m)
	if err != nil {
		return Number{}, err
	}
	if s >= 0 {
		return n, nil
	}
	return m, nil
}

// Min returns the smaller of n and m.
// Min returns an error if n and m belong to different families.
func (n Number) Min(m Number) (Number, error) {
	s, err := n.Cmp(m)
	if err != nil {
		return Number{}, err
	}
	if s <= 0 {
		return n, nil
	}
	return m, nil
}

// Float64 returns the nearest binary floating-point number to n.
// The second return value is false if the magnitude of n is too large to be
// represented as float64.
func (n Number) Float64() (float64, bool) {
	f := new(big.Float).SetInt((*big.Int)(n.coef))
	f.SetMantExp(f, -n.fam.resolution)
	v, _ := f.Float64()
	if math.IsInf(v, 0) {
		return v, false
	}
	return v, true
}

// Int64 returns the integer part of n truncated towards zero.
// The second return value is false if the integer part does not fit into
// int64.
func (n Number) Int64() (int64, bool) {
	z := getSint()
	defer putSint(z)
	z.rshDown(n.coef, n.fam.resolution)
	return z.int64()
}

// decimalDigits returns the number of decimal digits needed to distinguish
// neighboring values at the given binary resolution, ⌈resolution * log10(2)⌉.
func decimalDigits(resolution int) int {
	return (resolution*30103 + 99999) / 100000
}

// text formats n with the given number of digits after the decimal point,
// rounding half to even.
func (n Number) text(digits int) string {
	if n.coef == nil || n.fam == nil {
		return "<nil>"
	}
	m := getSint()
	defer putSint(m)
	m.abs(n.coef)
	if digits > 0 {
		m.lshTen(m, digits)
	}
	m.rshHalfEven(m, n.fam.resolution)
	s := m.string()
	if digits > 0 {
		if len(s) <= digits {
			s = strings.Repeat("0", digits-len(s)+1) + s
		}
		s = s[:len(s)-digits] + "." + s[len(s)-digits:]
	}
	if n.coef.sign() < 0 && m.sign() != 0 {
		s = "-" + s
	}
	return s
}

// String method implements the [fmt.Stringer] interface and returns a
// decimal string representation of the number with
// ⌈resolution * log10(2)⌉ digits after the decimal point, which is just
// enough to distinguish neighboring values of the family.
// Trailing zeros are kept, so the resolution remains visible.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (n Number) String() string {
	if n.coef == nil || n.fam == nil {
		return "<nil>"
	}
	return n.text(decimalDigits(n.fam.resolution))
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// There is no corresponding unmarshaler: decoding a number requires a
// family, see [Parse].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (n Number) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// Format implements the [fmt.Formatter] interface.
// The following [verbs] are available:
//
//	%s, %v: 3.14159
//	%q:    "3.14159"
//	%f:     3.14159
//
// The '-' format flag can be used with all verbs.
// Precision is only supported for the %f verb and selects the number of
// digits after the decimal point.
//
// [verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (n Number) Format(state fmt.State, verb rune) {
	switch verb {
	case 's', 'v', 'q', 'f':
		// continue
	default:
		fmt.Fprintf(state, "%%!%c(fixedpoint.Number=%s)", verb, n.String())
		return
	}
	if n.coef == nil || n.fam == nil {
		io.WriteString(state, "<nil>")
		return
	}
	digits := decimalDigits(n.fam.resolution)
	if p, ok := state.Precision(); ok && verb == 'f' {
		digits = p
	}
	s := n.text(digits)
	if verb == 'q' {
		s = strconv.Quote(s)
	}
	if w, ok := state.Width(); ok && w > len(s) {
		pad := strings.Repeat(" ", w-len(s))
		if state.Flag('-') {
			s = s + pad
		} else {
			s = pad + s
		}
	}
	io.WriteString(state, s)
}
