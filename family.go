package fixedpoint

import (
	"errors"
	"fmt"
	"sync"
)

const (
	// DefaultIntBits is the integer-bit width used by [NewFamily].
	DefaultIntBits = 32

	// guardBits is the number of extra fractional bits carried by the
	// transcendental solvers and the constant generators, absorbing the
	// rounding error accumulated before the result is rounded back into
	// the requesting family.
	guardBits = 16
)

var errInvalidFamily = errors.New("invalid family")

// Family is an immutable descriptor of a fixed-point precision configuration.
// It fixes the number of fractional bits (the resolution) and the number of
// integer bits (the representable range) shared by every [Number] created
// under it, and caches the family-wide constants π, e, and ln 2.
//
// Families are compared by identity: two families constructed with the same
// parameters are still distinct, and their numbers do not interoperate.
// It is safe for concurrent use by multiple goroutines.
type Family struct {
	resolution int
	intBits    int
	pi         constant
	exp1       constant
	log2       constant
}

// constant is a compute-once cell for a family-wide constant.
// wide holds the value scaled by 2^(resolution + guardBits) for internal
// consumers; num holds the value rounded into the family itself.
type constant struct {
	once sync.Once
	wide *sint
	num  Number
	err  error
}

// NewFamily returns a family with the given number of fractional bits and
// [DefaultIntBits] integer bits.
func NewFamily(resolution int) (*Family, error) {
	return NewFamilyWithIntBits(resolution, DefaultIntBits)
}

// NewFamilyWithIntBits returns a family with the given number of fractional
// and integer bits.
// Numbers of the family satisfy |value| < 2^(intBits-1), checked after every
// operation that can grow magnitude.
//
// NewFamilyWithIntBits returns an error if either argument is less than 1.
func NewFamilyWithIntBits(resolution, intBits int) (*Family, error) {
	switch {
	case resolution < 1:
		return nil, fmt.Errorf("resolution %v: %w", resolution, errInvalidFamily)
	case intBits < 1:
		return nil, fmt.Errorf("integer width %v: %w", intBits, errInvalidFamily)
	}
	return &Family{resolution: resolution, intBits: intBits}, nil
}

// Resolution returns the number of fractional bits of the family.
func (f *Family) Resolution() int {
	return f.resolution
}

// IntBits returns the number of integer bits of the family.
func (f *Family) IntBits() int {
	return f.intBits
}

// String method implements the [fmt.Stringer] interface and returns the
// family in Q notation, e.g. "Q4.20" for 4 integer and 20 fractional bits.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (f *Family) String() string {
	return fmt.Sprintf("Q%d.%d", f.intBits, f.resolution)
}

// Pi returns π rounded to the resolution of the family.
// The constant is computed on first call with extra guard bits of
// precision and memoized; subsequent calls return the cached value.
// Pi returns an error if π does not fit the family's integer range.
func (f *Family) Pi() (Number, error) {
	c := f.constPi()
	return c.num, c.err
}

// Exp1 returns e, the base of natural logarithms, rounded to the resolution
// of the family.
// The constant is computed on first call and memoized.
// Exp1 returns an error if e does not fit the family's integer range.
func (f *Family) Exp1() (Number, error) {
	c := f.constExp1()
	return c.num, c.err
}

// Log2 returns ln 2 rounded to the resolution of the family.
// The constant is computed on first call and memoized.
func (f *Family) Log2() (Number, error) {
	c := f.constLog2()
	return c.num, c.err
}

func (f *Family) constPi() *constant {
	f.pi.once.Do(func() {
		f.pi.wide = piSeries(f.resolution + guardBits)
		f.pi.num, f.pi.err = f.roundWide(f.pi.wide)
	})
	return &f.pi
}

func (f *Family) constExp1() *constant {
	f.exp1.once.Do(func() {
		f.exp1.wide = exp1Series(f.resolution + guardBits)
		f.exp1.num, f.exp1.err = f.roundWide(f.exp1.wide)
	})
	return &f.exp1
}

func (f *Family) constLog2() *constant {
	f.log2.once.Do(func() {
		f.log2.wide = log2Series(f.resolution + guardBits)
		f.log2.num, f.log2.err = f.roundWide(f.log2.wide)
	})
	return &f.log2
}

// roundWide rounds a coefficient scaled by 2^(resolution + guardBits)
// into the family.
func (f *Family) roundWide(wide *sint) (Number, error) {
	z := getSint()
	defer putSint(z)
	z.rshHalfEven(wide, guardBits)
	return newFromSint(z, f)
}

// piSeries calculates π scaled by 2^prec using Machin's formula
// π = 16 atan(1/5) - 4 atan(1/239).
func piSeries(prec int) *sint {
	z := new(sint)
	b := getSint()
	defer putSint(b)
	atanRecip(z, 5, prec)
	atanRecip(b, 239, prec)
	z.lsh(z, 4)
	b.lsh(b, 2)
	z.sub(z, b)
	return z
}

// atanRecip calculates z = atan(1/q) scaled by 2^prec using the Taylor
// series atan(1/q) = Σ (-1)^k / ((2k+1) q^(2k+1)).
// The series gains log2(q^2) bits per term, so the iteration count is
// proportional to prec.
func atanRecip(z *sint, q int64, prec int) {
	term := getSint()
	defer putSint(term)
	val := getSint()
	defer putSint(val)
	d := getSint()
	defer putSint(d)
	term.setInt64(1)
	term.lsh(term, prec)
	d.setInt64(q)
	term.quo(term, d) // term = 2^prec / q
	qq := getSint()
	defer putSint(qq)
	qq.setInt64(q * q)
	z.setInt64(0)
	for k := int64(0); ; k++ {
		d.setInt64(2*k + 1)
		val.quo(term, d)
		if val.sign() == 0 {
			break
		}
		if k%2 == 0 {
			z.add(z, val)
		} else {
			z.sub(z, val)
		}
		term.quo(term, qq)
	}
}

// exp1Series calculates e scaled by 2^prec using the series e = Σ 1/k!.
func exp1Series(prec int) *sint {
	z := new(sint)
	term := getSint()
	defer putSint(term)
	d := getSint()
	defer putSint(d)
	term.setInt64(1)
	term.lsh(term, prec)
	z.setSint(term)
	for k := int64(1); ; k++ {
		d.setInt64(k)
		term.quo(term, d)
		if term.sign() == 0 {
			break
		}
		z.add(z, term)
	}
	return z
}

// log2Series calculates ln 2 scaled by 2^prec using the series
// ln 2 = 2 atanh(1/3) = 2 Σ 1/((2k+1) 3^(2k+1)).
func log2Series(prec int) *sint {
	z := new(sint)
	pow := getSint()
	defer putSint(pow)
	val := getSint()
	defer putSint(val)
	d := getSint()
	defer putSint(d)
	pow.setInt64(1)
	pow.lsh(pow, prec)
	d.setInt64(3)
	pow.quo(pow, d) // pow = 2^prec / 3
	nine := getSint()
	defer putSint(nine)
	nine.setInt64(9)
	z.setInt64(0)
	for k := int64(0); ; k++ {
		d.setInt64(2*k + 1)
		val.quo(pow, d)
		if val.sign() == 0 {
			break
		}
		z.add(z, val)
		pow.quo(pow, nine)
	}
	z.dbl(z)
	return z
}
