package fixedpoint

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestNewFamily(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			resolution int
			intBits    int
		}{
			{1, 1},
			{8, 4},
			{20, 32},
			{274, 32},
			{512, 64},
		}
		for _, tt := range tests {
			f, err := NewFamilyWithIntBits(tt.resolution, tt.intBits)
			if err != nil {
				t.Errorf("NewFamilyWithIntBits(%v, %v) failed: %v", tt.resolution, tt.intBits, err)
				continue
			}
			if f.Resolution() != tt.resolution {
				t.Errorf("NewFamilyWithIntBits(%v, %v).Resolution() = %v", tt.resolution, tt.intBits, f.Resolution())
			}
			if f.IntBits() != tt.intBits {
				t.Errorf("NewFamilyWithIntBits(%v, %v).IntBits() = %v", tt.resolution, tt.intBits, f.IntBits())
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			resolution int
			intBits    int
		}{
			"resolution zero":     {0, 4},
			"resolution negative": {-8, 4},
			"int width zero":      {8, 0},
			"int width negative":  {8, -4},
		}
		for name, tt := range tests {
			if _, err := NewFamilyWithIntBits(tt.resolution, tt.intBits); err == nil {
				t.Errorf("%v: NewFamilyWithIntBits(%v, %v) did not fail", name, tt.resolution, tt.intBits)
			}
		}
	})

	t.Run("default", func(t *testing.T) {
		f, err := NewFamily(64)
		if err != nil {
			t.Fatalf("NewFamily(64) failed: %v", err)
		}
		if f.IntBits() != DefaultIntBits {
			t.Errorf("NewFamily(64).IntBits() = %v, want %v", f.IntBits(), DefaultIntBits)
		}
	})
}

func TestFamily_String(t *testing.T) {
	f := MustNewFamilyWithIntBits(20, 4)
	if got, want := f.String(), "Q4.20"; got != want {
		t.Errorf("Family.String() = %q, want %q", got, want)
	}
}

func TestFamily_Constants(t *testing.T) {
	// Printed digits must match the true constants; the family carries
	// enough resolution that the shown prefix is stable.
	f := MustNewFamily(64)
	tests := []struct {
		name string
		get  func() (Number, error)
		want string
	}{
		{"pi", f.Pi, "3.141592653589793"},
		{"exp1", f.Exp1, "2.718281828459045"},
		{"log2", f.Log2, "0.693147180559945"},
	}
	for _, tt := range tests {
		got, err := tt.get()
		if err != nil {
			t.Errorf("%v failed: %v", tt.name, err)
			continue
		}
		if !strings.HasPrefix(got.String(), tt.want) {
			t.Errorf("%v = %v, want prefix %v", tt.name, got, tt.want)
		}
	}
}

func TestFamily_ConstantsCached(t *testing.T) {
	f := MustNewFamily(128)
	first, err := f.Pi()
	if err != nil {
		t.Fatalf("Pi() failed: %v", err)
	}
	second, err := f.Pi()
	if err != nil {
		t.Fatalf("Pi() failed: %v", err)
	}
	if s, err := first.Cmp(second); err != nil || s != 0 {
		t.Errorf("cached Pi() differs: %v vs %v", first, second)
	}
	// The memoized value must be returned as is, not recomputed.
	if first.coef != second.coef {
		t.Errorf("Pi() recomputed the cached constant")
	}
}

func TestFamily_ConstantsConcurrent(t *testing.T) {
	f := MustNewFamily(96)
	const workers = 8
	got := make([]Number, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = f.Pi()
		}(i)
	}
	wg.Wait()
	for i := 1; i < workers; i++ {
		if got[i].coef != got[0].coef {
			t.Fatalf("concurrent Pi() produced distinct values")
		}
	}
}

func TestFamily_ConstantsOverflow(t *testing.T) {
	// π and e do not fit a family whose values must stay within (-1, 1).
	f := MustNewFamilyWithIntBits(16, 1)
	if _, err := f.Pi(); !errors.Is(err, ErrOverflow) {
		t.Errorf("Pi() on %v = %v, want %v", f, err, ErrOverflow)
	}
	if _, err := f.Exp1(); !errors.Is(err, ErrOverflow) {
		t.Errorf("Exp1() on %v = %v, want %v", f, err, ErrOverflow)
	}
	// ln 2 is below 1 and fits.
	if _, err := f.Log2(); err != nil {
		t.Errorf("Log2() on %v failed: %v", f, err)
	}
}

func TestFamily_ConstantsIndependent(t *testing.T) {
	// Families with identical parameters own separate caches.
	f1 := MustNewFamily(64)
	f2 := MustNewFamily(64)
	p1, err := f1.Pi()
	if err != nil {
		t.Fatalf("Pi() failed: %v", err)
	}
	p2, err := f2.Pi()
	if err != nil {
		t.Fatalf("Pi() failed: %v", err)
	}
	if p1.coef == p2.coef {
		t.Errorf("distinct families share a constant cache")
	}
	if p1.coef.cmp(p2.coef) != 0 {
		t.Errorf("equal families computed different π: %v vs %v", p1, p2)
	}
}
