package fixedpoint

import (
	"math/big"
	"sync"
)

// sint (Scaled INTeger) is a wrapper around big.Int holding a signed
// coefficient scaled by a power of two.
// The binary point is implicit; it is the owning [Family] that knows
// where it sits.
type sint big.Int

func (z *sint) sign() int {
	return (*big.Int)(z).Sign()
}

func (z *sint) cmp(x *sint) int {
	return (*big.Int)(z).Cmp((*big.Int)(x))
}

func (z *sint) string() string {
	return (*big.Int)(z).String()
}

func (z *sint) setSint(x *sint) {
	(*big.Int)(z).Set((*big.Int)(x))
}

func (z *sint) setInt64(x int64) {
	(*big.Int)(z).SetInt64(x)
}

// int64 converts z to int64.
// The second return value is false if z does not fit into int64.
func (z *sint) int64() (int64, bool) {
	if !(*big.Int)(z).IsInt64() {
		return 0, false
	}
	return (*big.Int)(z).Int64(), true
}

// bitLen returns the length of the absolute value of z in bits.
// bitLen assumes that 0 has no bits.
func (z *sint) bitLen() int {
	return (*big.Int)(z).BitLen()
}

func (z *sint) isOdd() bool {
	return (*big.Int)(z).Bit(0) != 0
}

// add calculates z = x + y.
func (z *sint) add(x, y *sint) {
	(*big.Int)(z).Add((*big.Int)(x), (*big.Int)(y))
}

// inc calculates z = x + 1.
func (z *sint) inc(x *sint) {
	y := getSint()
	defer putSint(y)
	y.setInt64(1)
	z.add(x, y)
}

// sub calculates z = x - y.
func (z *sint) sub(x, y *sint) {
	(*big.Int)(z).Sub((*big.Int)(x), (*big.Int)(y))
}

// neg calculates z = -x.
func (z *sint) neg(x *sint) {
	(*big.Int)(z).Neg((*big.Int)(x))
}

// abs calculates z = |x|.
func (z *sint) abs(x *sint) {
	(*big.Int)(z).Abs((*big.Int)(x))
}

// dbl (Double) calculates z = x * 2.
func (z *sint) dbl(x *sint) {
	(*big.Int)(z).Lsh((*big.Int)(x), 1)
}

// hlf (Half) calculates z = x / 2, rounding towards negative infinity.
func (z *sint) hlf(x *sint) {
	(*big.Int)(z).Rsh((*big.Int)(x), 1)
}

// mul calculates z = x * y.
func (z *sint) mul(x, y *sint) {
	// Copying x, y to prevent heap allocations.
	if z == x {
		b := getSint()
		defer putSint(b)
		b.setSint(x)
		x = b
	}
	if z == y {
		b := getSint()
		defer putSint(b)
		b.setSint(y)
		y = b
	}
	(*big.Int)(z).Mul((*big.Int)(x), (*big.Int)(y))
}

// exp calculates z = x^y.
// If y is negative, the result is unpredictable.
func (z *sint) exp(x, y *sint) {
	(*big.Int)(z).Exp((*big.Int)(x), (*big.Int)(y), nil)
}

// pow10 calculates z = 10^power.
// If power is negative, the result is unpredictable.
func (z *sint) pow10(power int) {
	x := getSint()
	defer putSint(x)
	x.setInt64(10)
	y := getSint()
	defer putSint(y)
	y.setInt64(int64(power))
	z.exp(x, y)
}

// quo calculates z = x / y, truncating towards zero.
func (z *sint) quo(x, y *sint) {
	// Passing r to prevent heap allocations.
	r := getSint()
	defer putSint(r)
	z.quoRem(x, y, r)
}

// quoRem calculates z = x / y truncated towards zero, r = x - y * z.
func (z *sint) quoRem(x, y, r *sint) {
	(*big.Int)(z).QuoRem((*big.Int)(x), (*big.Int)(y), (*big.Int)(r))
}

// quoHalfEven calculates z = x / y and rounds the result to the nearest
// integer using "half to even" rule.
// Rounding is performed on magnitudes, so the rule is symmetric around zero.
// y must not be zero.
func (z *sint) quoHalfEven(x, y *sint) {
	neg := (x.sign() < 0) != (y.sign() < 0)
	xa := getSint()
	defer putSint(xa)
	ya := getSint()
	defer putSint(ya)
	xa.abs(x)
	ya.abs(y)
	r := getSint()
	defer putSint(r)
	z.quoRem(xa, ya, r)
	r.dbl(r) // r = r * 2
	switch ya.cmp(r) {
	case -1:
		z.inc(z) // z = z + 1
	case 0:
		// half-to-even
		if z.isOdd() {
			z.inc(z) // z = z + 1
		}
	}
	if neg {
		z.neg(z)
	}
}

// lsh (Left Shift) calculates z = x * 2^shift.
func (z *sint) lsh(x *sint, shift int) {
	if shift <= 0 {
		z.setSint(x)
		return
	}
	(*big.Int)(z).Lsh((*big.Int)(x), uint(shift))
}

// lshTen calculates z = x * 10^shift.
func (z *sint) lshTen(x *sint, shift int) {
	if shift <= 0 {
		z.setSint(x)
		return
	}
	y := getSint()
	defer putSint(y)
	y.pow10(shift)
	z.mul(x, y)
}

// fsa (Fused Shift and Addition) calculates z = z * 10 + digit.
func (z *sint) fsa(digit byte) {
	y := getSint()
	defer putSint(y)
	y.setInt64(10)
	z.mul(z, y)
	y.setInt64(int64(digit))
	z.add(z, y)
}

// rshDown (Right Shift) calculates z = x / 2^shift and rounds the
// result towards zero.
func (z *sint) rshDown(x *sint, shift int) {
	if shift <= 0 {
		z.setSint(x)
		return
	}
	neg := x.sign() < 0
	z.abs(x)
	(*big.Int)(z).Rsh((*big.Int)(z), uint(shift))
	if neg {
		z.neg(z)
	}
}

// rshHalfEven (Right Shift) calculates z = x / 2^shift and rounds the
// result to the nearest integer using "half to even" rule.
// Rounding is performed on magnitudes, so the rule is symmetric around zero.
func (z *sint) rshHalfEven(x *sint, shift int) {
	if shift <= 0 {
		z.setSint(x)
		return
	}
	neg := x.sign() < 0
	m := getSint()
	defer putSint(m)
	m.abs(x)
	(*big.Int)(z).Rsh((*big.Int)(m), uint(shift))
	r := getSint()
	defer putSint(r)
	r.lsh(z, shift)
	r.sub(m, r) // r = |x| mod 2^shift
	r.dbl(r)    // r = r * 2
	y := getSint()
	defer putSint(y)
	y.setInt64(1)
	y.lsh(y, shift)
	switch y.cmp(r) {
	case -1:
		z.inc(z) // z = z + 1
	case 0:
		// half-to-even
		if z.isOdd() {
			z.inc(z) // z = z + 1
		}
	}
	if neg {
		z.neg(z)
	}
}

// isqrt calculates z = ⌊√x⌋ using Newton's method seeded from the bit
// length of x, so the first estimate is never below the true root and
// the iteration decreases monotonically.
// x must not be negative.
func (z *sint) isqrt(x *sint) {
	if x.sign() == 0 {
		z.setInt64(0)
		return
	}
	cur := getSint()
	defer putSint(cur)
	next := getSint()
	defer putSint(next)
	t := getSint()
	defer putSint(t)
	cur.setInt64(1)
	cur.lsh(cur, (x.bitLen()+1)/2) // 2^⌈bits/2⌉ >= ⌊√x⌋
	for {
		t.quo(x, cur)
		next.add(cur, t)
		next.hlf(next)
		if next.cmp(cur) >= 0 {
			break
		}
		cur.setSint(next)
	}
	z.setSint(cur)
}

// spool is a cache of reusable *big.Int instances.
var spool = sync.Pool{
	New: func() any {
		return (*sint)(new(big.Int))
	},
}

// getSint obtains a *big.Int from the pool.
func getSint() *sint {
	return spool.Get().(*sint)
}

// putSint returns the *big.Int into the pool.
func putSint(b *sint) {
	spool.Put(b)
}
