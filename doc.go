/*
Package fixedpoint implements immutable binary fixed-point numbers of
configurable precision.
It is designed for computations that need exact, range-checked arithmetic at
a chosen number of fractional bits, with transcendental functions evaluated
to the same resolution.

# Representation

A [Number] is a signed integer coefficient of arbitrary width bound to a
[Family]. The family fixes two parameters for every number created under it:

  - Resolution: the number of fractional bits.
    The numerical value of a number is coefficient / 2^resolution.
  - Integer bits: the number of bits reserved for the integer part.
    Every number of the family satisfies |value| < 2^(intBits-1).

Coefficients are stored in [big.Int], so no intermediate computation is ever
truncated silently; the only rounding happens when a result is shifted back
into the family's scale, and the only failure mode for large results is an
explicit [ErrOverflow].

# Families

A family is constructed once and shared by reference:

	fam, err := fixedpoint.NewFamily(64)            // 64 fractional bits, 32 integer bits
	fam, err := fixedpoint.NewFamilyWithIntBits(20, 4)

Families are compared by identity. Binary operations require both operands
to belong to the same family and return [ErrFamilyMismatch] otherwise;
numeric literals enter a family through the constructors [New],
[NewFromFloat64], and [Parse].

Each family lazily computes and caches the constants π, e, and ln 2, exposed
through [Family.Pi], [Family.Exp1], and [Family.Log2]. A constant is
computed exactly once per family, with extra guard bits to absorb rounding,
and every caller observes the same cached number; concurrent first requests
are serialized.

# Operations

Arithmetic follows the scaled-integer semantics:

  - [Number.Add] and [Number.Sub] are exact up to range.
  - [Number.Mul] computes the full-width product, then shifts it back by the
    resolution, rounding half to even.
  - [Number.Quo] shifts the dividend left by the resolution before dividing,
    preserving fractional precision, and rounds half to even.

The transcendental functions [Number.Sqrt], [Number.Exp], [Number.Log], and
[Number.Atan] are iterative solvers that run until the next correction term
falls below one unit in the last place of the family, so their cost grows
with the resolution rather than being fixed. Arguments are range-reduced
first (repeated halving for Exp, powers of two for Log, the half-angle
identity for Atan), which keeps the series numerically stable.

# Errors

All methods are pure and return errors instead of panicking:

  - [ErrOverflow] when a result's magnitude exceeds the family's integer
    range. Results are never wrapped or saturated: exp of a growing argument
    fails sooner under a 4-bit integer width than under a 32-bit one, and
    callers can detect exactly where.
  - [ErrDomain] for operations undefined on their input, such as the square
    root of a negative number or the logarithm of a non-positive one.
  - [ErrDivisionByZero] when dividing by zero.
  - [ErrFamilyMismatch] when mixing numbers of different families.

The Must* functions and methods panic on error and are intended for
initialization of package variables and for tests.

[big.Int]: https://pkg.go.dev/math/big#Int
*/
package fixedpoint
