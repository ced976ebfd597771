package fixedpoint_test

import (
	"errors"
	"fmt"

	"github.com/govalues/fixedpoint"
)

func ExampleNew() {
	fam := fixedpoint.MustNewFamily(8)
	n, err := fixedpoint.New(2, fam)
	if err != nil {
		panic(err)
	}
	fmt.Println(n)
	// Output: 2.000
}

func ExampleNewFromFloat64() {
	fam := fixedpoint.MustNewFamily(8)
	n, err := fixedpoint.NewFromFloat64(0.5, fam)
	if err != nil {
		panic(err)
	}
	fmt.Println(n)
	// Output: 0.500
}

func ExampleParse() {
	fam := fixedpoint.MustNewFamily(4)
	n, err := fixedpoint.Parse("-1.5", fam)
	if err != nil {
		panic(err)
	}
	fmt.Println(n)
	// Output: -1.50
}

func ExampleNewFamilyWithIntBits() {
	fam, err := fixedpoint.NewFamilyWithIntBits(20, 4)
	if err != nil {
		panic(err)
	}
	fmt.Println(fam)
	// Output: Q4.20
}

func ExampleNumber_Add() {
	fam := fixedpoint.MustNewFamily(8)
	a := fixedpoint.MustParse("0.5", fam)
	b := fixedpoint.MustParse("0.25", fam)
	sum, err := a.Add(b)
	if err != nil {
		panic(err)
	}
	fmt.Println(sum)
	// Output: 0.750
}

func ExampleNumber_Mul() {
	fam := fixedpoint.MustNewFamily(8)
	a := fixedpoint.MustParse("1.5", fam)
	b := fixedpoint.MustParse("2", fam)
	prod, err := a.Mul(b)
	if err != nil {
		panic(err)
	}
	fmt.Println(prod)
	// Output: 3.000
}

func ExampleNumber_Quo() {
	fam := fixedpoint.MustNewFamily(8)
	a := fixedpoint.MustParse("1", fam)
	b := fixedpoint.MustParse("4", fam)
	quo, err := a.Quo(b)
	if err != nil {
		panic(err)
	}
	fmt.Println(quo)
	// Output: 0.250
}

func ExampleNumber_Sqrt() {
	fam := fixedpoint.MustNewFamily(8)
	n := fixedpoint.MustNew(9, fam)
	root, err := n.Sqrt()
	if err != nil {
		panic(err)
	}
	fmt.Println(root)
	// Output: 3.000
}

func ExampleNumber_Exp() {
	// With only 4 bits of integer range, exp(3) does not fit.
	fam := fixedpoint.MustNewFamilyWithIntBits(20, 4)
	n := fixedpoint.MustNew(3, fam)
	_, err := n.Exp()
	fmt.Println(errors.Is(err, fixedpoint.ErrOverflow))
	// Output: true
}

func ExampleFamily_Pi() {
	fam := fixedpoint.MustNewFamily(16)
	pi, err := fam.Pi()
	if err != nil {
		panic(err)
	}
	fmt.Println(pi)
	// Output: 3.14159
}

func ExampleFamily_Exp1() {
	fam := fixedpoint.MustNewFamily(16)
	e, err := fam.Exp1()
	if err != nil {
		panic(err)
	}
	fmt.Println(e)
	// Output: 2.71828
}

func ExampleFamily_Log2() {
	fam := fixedpoint.MustNewFamily(16)
	ln2, err := fam.Log2()
	if err != nil {
		panic(err)
	}
	fmt.Println(ln2)
	// Output: 0.69315
}
