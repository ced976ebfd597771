package fixedpoint

import (
	"fmt"
)

// The solvers in this file compute their results on coefficients scaled by
// 2^(resolution + guardBits) and round back into the family at the end, so
// the answer is correct to about one unit in the last place.
// Every loop stops when the next correction term underflows the working
// resolution; the cost therefore scales with the resolution, not with a
// fixed iteration count.

// Sqrt returns the square root of n rounded to the resolution of the family.
// The root is found by Newton's iteration x = (x + n/x)/2 seeded from the
// bit length of n.
//
// Sqrt returns an error if n is negative.
func (n Number) Sqrt() (Number, error) {
	switch n.coef.sign() {
	case -1:
		return Number{}, fmt.Errorf("square root of %v: %w", n, ErrDomain)
	case 0:
		return n.Zero(), nil
	}
	fam := n.fam
	w := getSint()
	defer putSint(w)
	// Scale the argument by 2^(2 * (resolution + guardBits)), so the integer
	// square root lands on the guard scale.
	w.lsh(n.coef, fam.resolution+2*guardBits)
	w.isqrt(w)
	w.rshHalfEven(w, guardBits)
	return newFromSint(w, fam)
}

// Exp returns e raised to the power of n, rounded to the resolution of the
// family.
// The argument is split into its integer and fractional parts; the fraction
// is repeatedly halved until the Taylor series for e^x converges quickly,
// then the result is squared back and multiplied by the cached e once per
// unit of the integer part.
//
// Exp returns an error if the result exceeds the family's integer range,
// which for growing arguments happens the sooner the narrower the family's
// integer width is.
func (n Number) Exp() (Number, error) {
	fam := n.fam
	p := fam.resolution + guardBits
	limit := p + fam.intBits

	// Integer part, truncated towards zero so the remaining fraction keeps
	// the sign of n and stays within (-1, 1).
	k := getSint()
	defer putSint(k)
	k.rshDown(n.coef, fam.resolution)
	kv, ok := k.int64()
	if !ok {
		if k.sign() > 0 {
			return Number{}, fmt.Errorf("%w: exp(%v) exceeds the %v-bit integer range of %v", ErrOverflow, n, fam.intBits, fam)
		}
		return n.Zero(), nil
	}
	if kv < 0 && -kv > int64(p) {
		// e^n < 2^-p, rounds to zero.
		return n.Zero(), nil
	}

	// Fractional part on the guard scale.
	f := getSint()
	defer putSint(f)
	f.lsh(k, fam.resolution)
	f.sub(n.coef, f)
	f.lsh(f, guardBits)

	// Halve until |f| < 1/8, counting the halvings.
	h := 0
	for f.bitLen() > p-3 {
		f.rshHalfEven(f, 1)
		h++
	}

	// Taylor series e^f = Σ f^i / i!.
	sum := getSint()
	defer putSint(sum)
	term := getSint()
	defer putSint(term)
	d := getSint()
	defer putSint(d)
	term.setInt64(1)
	term.lsh(term, p)
	sum.setSint(term)
	for i := int64(1); ; i++ {
		term.mul(term, f)
		term.rshHalfEven(term, p)
		d.setInt64(i)
		term.quoHalfEven(term, d)
		if term.sign() == 0 {
			break
		}
		sum.add(sum, term)
	}

	// Undo the halvings by repeated squaring.
	for ; h > 0; h-- {
		sum.mul(sum, sum)
		sum.rshHalfEven(sum, p)
		if sum.bitLen() >= limit {
			return Number{}, fmt.Errorf("%w: exp(%v) exceeds the %v-bit integer range of %v", ErrOverflow, n, fam.intBits, fam)
		}
	}

	// Rebuild the integer part from the cached e.
	if kv != 0 {
		e := fam.constExp1().wide
		t := getSint()
		defer putSint(t)
		if kv > 0 {
			for i := int64(0); i < kv; i++ {
				sum.mul(sum, e)
				sum.rshHalfEven(sum, p)
				if sum.bitLen() >= limit {
					return Number{}, fmt.Errorf("%w: exp(%v) exceeds the %v-bit integer range of %v", ErrOverflow, n, fam.intBits, fam)
				}
			}
		} else {
			for i := kv; i < 0; i++ {
				t.lsh(sum, p)
				sum.quoHalfEven(t, e)
			}
		}
	}

	sum.rshHalfEven(sum, guardBits)
	return newFromSint(sum, fam)
}

// Log returns the natural logarithm of n rounded to the resolution of the
// family.
// The argument is normalized into [1, 2) by dividing out a power of two,
// whose contribution is restored from the cached ln 2; the remaining factor
// is evaluated with the series ln m = 2 atanh((m-1)/(m+1)).
//
// Log returns an error:
//   - if n is zero or negative;
//   - if the result exceeds the family's integer range.
func (n Number) Log() (Number, error) {
	if n.coef.sign() <= 0 {
		return Number{}, fmt.Errorf("logarithm of %v: %w", n, ErrDomain)
	}
	fam := n.fam
	p := fam.resolution + guardBits

	w := getSint()
	defer putSint(w)
	w.lsh(n.coef, guardBits)

	// Normalize so that m is within [1, 2).
	k := w.bitLen() - (p + 1)
	m := getSint()
	defer putSint(m)
	if k > 0 {
		m.rshHalfEven(w, k)
	} else {
		m.lsh(w, -k)
	}

	// t = (m - 1) / (m + 1), within [0, 1/3].
	one := getSint()
	defer putSint(one)
	one.setInt64(1)
	one.lsh(one, p)
	t := getSint()
	defer putSint(t)
	d := getSint()
	defer putSint(d)
	t.sub(m, one)
	t.lsh(t, p)
	d.add(m, one)
	t.quoHalfEven(t, d)

	// ln m = 2 Σ t^(2i+1) / (2i+1).
	sum := getSint()
	defer putSint(sum)
	term := getSint()
	defer putSint(term)
	tsq := getSint()
	defer putSint(tsq)
	val := getSint()
	defer putSint(val)
	sum.setSint(t)
	term.setSint(t)
	tsq.mul(t, t)
	tsq.rshHalfEven(tsq, p)
	for i := int64(1); ; i++ {
		term.mul(term, tsq)
		term.rshHalfEven(term, p)
		d.setInt64(2*i + 1)
		val.quoHalfEven(term, d)
		if val.sign() == 0 {
			break
		}
		sum.add(sum, val)
	}
	sum.dbl(sum)

	// Restore the power of two.
	if k != 0 {
		d.setInt64(int64(k))
		d.mul(d, fam.constLog2().wide)
		sum.add(sum, d)
	}

	sum.rshHalfEven(sum, guardBits)
	return newFromSint(sum, fam)
}

// Atan returns the arctangent of n rounded to the resolution of the family.
// Arguments above 1 in magnitude are folded with atan(x) = π/2 - atan(1/x);
// the remainder is reduced with the half-angle identity
// atan(x) = 2 atan(x / (1 + sqrt(1 + x^2))) until the Taylor series
// converges quickly.
//
// Atan returns an error if the result exceeds the family's integer range,
// which can only happen for families narrower than 2 integer bits.
func (n Number) Atan() (Number, error) {
	if n.coef.sign() == 0 {
		return n.Zero(), nil
	}
	fam := n.fam
	p := fam.resolution + guardBits

	w := getSint()
	defer putSint(w)
	w.abs(n.coef)
	w.lsh(w, guardBits)

	one := getSint()
	defer putSint(one)
	one.setInt64(1)
	one.lsh(one, p)

	t := getSint()
	defer putSint(t)

	// Fold arguments above 1 onto [0, 1].
	recip := false
	if w.cmp(one) > 0 {
		t.lsh(one, p)
		w.quoHalfEven(t, w)
		recip = true
	}

	// Half-angle reduction until |x| < 1/4.
	u := getSint()
	defer putSint(u)
	s := getSint()
	defer putSint(s)
	h := 0
	for w.bitLen() > p-2 {
		u.mul(w, w)
		t.lsh(one, p)
		u.add(u, t) // u = 1 + x^2, scaled by 2^2p
		s.isqrt(u)
		s.add(s, one)
		t.lsh(w, p)
		w.quoHalfEven(t, s)
		h++
	}

	// Taylor series atan(x) = Σ (-1)^i x^(2i+1) / (2i+1).
	sum := getSint()
	defer putSint(sum)
	term := getSint()
	defer putSint(term)
	wsq := getSint()
	defer putSint(wsq)
	val := getSint()
	defer putSint(val)
	d := getSint()
	defer putSint(d)
	sum.setSint(w)
	term.setSint(w)
	wsq.mul(w, w)
	wsq.rshHalfEven(wsq, p)
	for i := int64(1); ; i++ {
		term.mul(term, wsq)
		term.rshHalfEven(term, p)
		d.setInt64(2*i + 1)
		val.quoHalfEven(term, d)
		if val.sign() == 0 {
			break
		}
		if i%2 == 1 {
			sum.sub(sum, val)
		} else {
			sum.add(sum, val)
		}
	}

	// Undo the half-angle doublings.
	for ; h > 0; h-- {
		sum.dbl(sum)
	}

	if recip {
		t.rshHalfEven(fam.constPi().wide, 1) // π/2
		sum.sub(t, sum)
	}
	if n.coef.sign() < 0 {
		sum.neg(sum)
	}

	sum.rshHalfEven(sum, guardBits)
	return newFromSint(sum, fam)
}
