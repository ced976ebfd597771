package fixedpoint

import "fmt"

// MustNewFamily is like [NewFamily] but panics if the family cannot be
// constructed.
// It simplifies safe initialization of global variables holding families.
func MustNewFamily(resolution int) *Family {
	f, err := NewFamily(resolution)
	if err != nil {
		panic(fmt.Sprintf("MustNewFamily(%v) failed: %v", resolution, err))
	}
	return f
}

// MustNewFamilyWithIntBits is like [NewFamilyWithIntBits] but panics if the
// family cannot be constructed.
func MustNewFamilyWithIntBits(resolution, intBits int) *Family {
	f, err := NewFamilyWithIntBits(resolution, intBits)
	if err != nil {
		panic(fmt.Sprintf("MustNewFamilyWithIntBits(%v, %v) failed: %v", resolution, intBits, err))
	}
	return f
}

// MustNew is like [New] but panics if the number cannot be constructed.
func MustNew(value int64, fam *Family) Number {
	n, err := New(value, fam)
	if err != nil {
		panic(fmt.Sprintf("MustNew(%v, %v) failed: %v", value, fam, err))
	}
	return n
}

// MustNewFromFloat64 is like [NewFromFloat64] but panics if the number
// cannot be constructed.
func MustNewFromFloat64(value float64, fam *Family) Number {
	n, err := NewFromFloat64(value, fam)
	if err != nil {
		panic(fmt.Sprintf("MustNewFromFloat64(%v, %v) failed: %v", value, fam, err))
	}
	return n
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding numbers.
func MustParse(num string, fam *Family) Number {
	n, err := Parse(num, fam)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q, %v) failed: %v", num, fam, err))
	}
	return n
}

// MustAdd is like [Number.Add] but panics if computing error.
func (n Number) MustAdd(m Number) Number {
	z, err := n.Add(m)
	if err != nil {
		panic(fmt.Sprintf("MustAdd(%v) failed: %v", m, err))
	}
	return z
}

// MustSub is like [Number.Sub] but panics if computing error.
func (n Number) MustSub(m Number) Number {
	z, err := n.Sub(m)
	if err != nil {
		panic(fmt.Sprintf("MustSub(%v) failed: %v", m, err))
	}
	return z
}

// MustMul is like [Number.Mul] but panics if computing error.
func (n Number) MustMul(m Number) Number {
	z, err := n.Mul(m)
	if err != nil {
		panic(fmt.Sprintf("MustMul(%v) failed: %v", m, err))
	}
	return z
}

// MustQuo is like [Number.Quo] but panics if computing error.
func (n Number) MustQuo(m Number) Number {
	z, err := n.Quo(m)
	if err != nil {
		panic(fmt.Sprintf("MustQuo(%v) failed: %v", m, err))
	}
	return z
}
