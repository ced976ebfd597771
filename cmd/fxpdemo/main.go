// Command fxpdemo demonstrates the fixedpoint package: roots and exponents
// at several precisions, exponent overflow under narrow integer widths,
// arithmetic throughput, and the convergence of series-computed constants.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/govalues/fixedpoint"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fxpdemo",
		Short: "Demonstrations of the fixedpoint package",
		Long: "Rudimentary demonstrations of the fixedpoint package.\n" +
			"Without a subcommand, all demos run in order.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, demo := range []func() error{basicDemo, overflowDemo, speedDemo, accuracyDemo} {
				if err := demo(); err != nil {
					return err
				}
			}
			return nil
		},
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "basic",
			Short: "Roots and exponents at various accuracies",
			RunE:  func(cmd *cobra.Command, args []string) error { return basicDemo() },
		},
		&cobra.Command{
			Use:   "overflow",
			Short: "How finite range limits calculation of exponents",
			RunE:  func(cmd *cobra.Command, args []string) error { return overflowDemo() },
		},
		&cobra.Command{
			Use:   "speed",
			Short: "Indicative speed of fixed-point operations",
			RunE:  func(cmd *cobra.Command, args []string) error { return speedDemo() },
		},
		&cobra.Command{
			Use:   "accuracy",
			Short: "Error bits of series-computed constants by resolution",
			RunE:  func(cmd *cobra.Command, args []string) error { return accuracyDemo() },
		},
	)
	return root
}

// basicDemo prints square roots and exponents at various accuracies.
func basicDemo() error {
	for _, resolution := range []int{8, 32, 80, 274} {
		fam, err := fixedpoint.NewFamily(resolution)
		if err != nil {
			return err
		}
		val, err := fixedpoint.New(2, fam)
		if err != nil {
			return err
		}
		rt, err := val.Sqrt()
		if err != nil {
			return err
		}
		sq, err := rt.Mul(rt)
		if err != nil {
			return err
		}
		exp1, err := fam.Exp1()
		if err != nil {
			return err
		}
		fmt.Printf("=== %d bits ===\n", resolution)
		fmt.Printf("sqrt(2) ~ %s\n", rt)
		fmt.Printf("sqrt(2)^2 ~ %s\n", sq)
		fmt.Printf("exp(1) ~ %s\n", exp1)
		fmt.Println()
	}
	return nil
}

// overflowDemo illustrates how finite range limits calculation of exponents.
func overflowDemo() error {
	const resolution = 20
	fmt.Printf("=== %d-bit fractional part ===\n", resolution)
	for _, intBits := range []int{4, 8, 16, 32} {
		fam, err := fixedpoint.NewFamilyWithIntBits(resolution, intBits)
		if err != nil {
			return err
		}
		x, err := fixedpoint.New(0, fam)
		if err != nil {
			return err
		}
		step, err := fixedpoint.NewFromFloat64(0.1, fam)
		if err != nil {
			return err
		}
		for {
			_, err := x.Exp()
			if err != nil {
				if !errors.Is(err, fixedpoint.ErrOverflow) {
					return err
				}
				xf, _ := x.Float64()
				fmt.Printf("%2d-bit integer part: exp(x) overflows near x=%.3g\n", intBits, xf)
				break
			}
			x, err = x.Add(step)
			if err != nil {
				return err
			}
		}
	}
	fmt.Println()
	return nil
}

// speedDemo calculates indicative speed of fixed-point operations.
func speedDemo() error {
	fmt.Println("=== speed test ===")
	for _, tc := range []struct {
		resolution int
		count      int
	}{
		{16, 10000}, {32, 10000}, {64, 10000},
		{128, 10000}, {256, 10000}, {512, 10000},
	} {
		fam, err := fixedpoint.NewFamily(tc.resolution)
		if err != nil {
			return err
		}
		// Logistic map in the chaotic region.
		x := fixedpoint.MustNewFromFloat64(0.5, fam)
		lmb := fixedpoint.MustNewFromFloat64(3.6, fam)
		one := fixedpoint.MustNew(1, fam)
		start := time.Now()
		for i := 0; i < tc.count; i++ {
			x = lmb.MustMul(x).MustMul(one.MustSub(x))
		}
		elapsed := time.Since(start).Seconds()
		ops := 3 * tc.count
		fmt.Printf("%d %d-bit arithmetic operations in %.2fs ~ %.2g FLOPS\n",
			ops, tc.resolution, elapsed, float64(ops)/elapsed)
	}

	for _, tc := range []struct {
		resolution int
		count      int
	}{
		{4, 10000}, {8, 10000}, {12, 10000}, {24, 10000},
		{48, 10000}, {128, 10000}, {512, 10000},
	} {
		fam, err := fixedpoint.NewFamilyWithIntBits(tc.resolution, 4)
		if err != nil {
			return err
		}
		x := fixedpoint.MustNew(2, fam)
		start := time.Now()
		for i := 0; i < tc.count; i++ {
			if _, err := x.Sqrt(); err != nil {
				return err
			}
		}
		elapsed := time.Since(start).Seconds()
		fmt.Printf("%d %d-bit square-roots in %.3gs ~ %.3g/ms\n",
			tc.count, tc.resolution, elapsed, float64(tc.count)*1e-3/elapsed)
	}
	fmt.Println()
	return nil
}

// accuracyDemo prints the error bits of 4*atan(1) against a much more
// accurate π for a range of resolutions, showing that the error shrinks
// roughly one bit per bit of resolution.
func accuracyDemo() error {
	const (
		minBits = 8
		maxBits = 120
		step    = 8
	)
	famAcc, err := fixedpoint.NewFamily(maxBits + 40)
	if err != nil {
		return err
	}
	piAcc, err := famAcc.Pi()
	if err != nil {
		return err
	}
	log2Acc, err := famAcc.Log2()
	if err != nil {
		return err
	}
	fmt.Println("=== accuracy of 4*atan(1) ===")
	for bits := minBits; bits <= maxBits; bits += step {
		fam, err := fixedpoint.NewFamily(bits)
		if err != nil {
			return err
		}
		one, err := fixedpoint.New(1, fam)
		if err != nil {
			return err
		}
		at, err := one.Atan()
		if err != nil {
			return err
		}
		four, err := fixedpoint.New(4, fam)
		if err != nil {
			return err
		}
		pi4, err := at.Mul(four)
		if err != nil {
			return err
		}
		// Promote through the decimal representation into the accurate
		// family to measure the error.
		wide, err := fixedpoint.Parse(pi4.String(), famAcc)
		if err != nil {
			return err
		}
		eps, err := wide.Sub(piAcc)
		if err != nil {
			return err
		}
		eps = eps.Abs()
		if eps.IsZero() {
			fmt.Printf("%4d bits: exact at this resolution\n", bits)
			continue
		}
		lnEps, err := eps.Log()
		if err != nil {
			return err
		}
		errBits, err := lnEps.Quo(log2Acc)
		if err != nil {
			return err
		}
		ef, _ := errBits.Float64()
		fmt.Printf("%4d bits: %6.1f error bits\n", bits, -ef)
	}
	fmt.Println()
	return nil
}
