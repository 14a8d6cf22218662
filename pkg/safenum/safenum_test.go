package safenum

import (
	"encoding/json"
	"math"
	"testing"
)

// garbage is every shape of malformed input the coercers must survive.
var garbage = []any{
	nil,
	"",
	"   ",
	"abc",
	"12abc",
	math.NaN(),
	math.Inf(1),
	math.Inf(-1),
	map[string]any{},
	[]any{},
	true,
	false,
	struct{}{},
	json.Number("not-a-number"),
}

func TestToNumberGarbageFallsBack(t *testing.T) {
	for _, v := range garbage {
		if got := ToNumber(v, 0); got != 0 {
			t.Fatalf("ToNumber(%#v, 0) = %v, want 0", v, got)
		}
		if got := ToNumber(v, 7.5); got != 7.5 {
			t.Fatalf("ToNumber(%#v, 7.5) = %v, want 7.5", v, got)
		}
	}
}

func TestToNumberValidInputs(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{42, 42},
		{int64(-3), -3},
		{uint8(9), 9},
		{3.25, 3.25},
		{float32(1.5), 1.5},
		{"10.5", 10.5},
		{" 8 ", 8},
		{"-2", -2},
		{json.Number("99"), 99},
	}
	for _, c := range cases {
		if got := ToNumber(c.in, 0); got != c.want {
			t.Fatalf("ToNumber(%#v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestToQuantityFloorsAndClamps(t *testing.T) {
	if got := ToQuantity(3.9, 0); got != 3 {
		t.Fatalf("ToQuantity(3.9) = %d, want 3", got)
	}
	if got := ToQuantity(-4, 0); got != 0 {
		t.Fatalf("ToQuantity(-4) = %d, want 0", got)
	}
	if got := ToQuantity("2.7", 0); got != 2 {
		t.Fatalf("ToQuantity(\"2.7\") = %d, want 2", got)
	}
	for _, v := range garbage {
		if got := ToQuantity(v, 0); got != 0 {
			t.Fatalf("ToQuantity(%#v) = %d, want 0", v, got)
		}
	}
}

func TestToPositiveClamps(t *testing.T) {
	if got := ToPositive(-12.5, 0); got != 0 {
		t.Fatalf("ToPositive(-12.5) = %v, want 0", got)
	}
	if got := ToPositive(12.5, 0); got != 12.5 {
		t.Fatalf("ToPositive(12.5) = %v, want 12.5", got)
	}
}

func assertFinite(t *testing.T, name string, got float64) {
	t.Helper()
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("%s returned non-finite value %v", name, got)
	}
}

// No arithmetic function may ever return NaN or ±Inf, whatever the
// operands.
func TestArithmeticTotality(t *testing.T) {
	poison := []float64{0, 1, -1, math.NaN(), math.Inf(1), math.Inf(-1), math.MaxFloat64, -math.MaxFloat64}

	for _, a := range poison {
		for _, b := range poison {
			assertFinite(t, "Add", Add(a, b))
			assertFinite(t, "Multiply", Multiply(a, b))
			assertFinite(t, "Divide", Divide(a, b, 0))
			assertFinite(t, "Profit", Profit(a, b, 3))
			assertFinite(t, "Total", Total(2, a))
		}
	}
}

func TestDivide(t *testing.T) {
	if got := Divide(10, 2, 0); got != 5 {
		t.Fatalf("Divide(10,2) = %v, want 5", got)
	}
	if got := Divide(10, 0, 99); got != 99 {
		t.Fatalf("Divide(10,0) = %v, want fallback 99", got)
	}
	if got := Divide(10, math.NaN(), 7); got != 7 {
		t.Fatalf("Divide by NaN = %v, want fallback 7", got)
	}
}

func TestProfitAndTotal(t *testing.T) {
	if got := Profit(100, 150, 2); got != 100 {
		t.Fatalf("Profit(100,150,2) = %v, want 100", got)
	}
	if got := Profit(100, 150, -5); got != 0 {
		t.Fatalf("Profit with negative qty = %v, want 0", got)
	}
	if got := Total(2, 150); got != 300 {
		t.Fatalf("Total(2,150) = %v, want 300", got)
	}
	if got := Total(-2, 150); got != 0 {
		t.Fatalf("Total(-2,150) = %v, want 0", got)
	}
}

func TestAddSanitizesOperands(t *testing.T) {
	if got := Add(1, math.NaN(), 2, math.Inf(1)); got != 3 {
		t.Fatalf("Add(1,NaN,2,Inf) = %v, want 3", got)
	}
}
