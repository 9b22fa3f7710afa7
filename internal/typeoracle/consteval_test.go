package typeoracle

import (
	"math"
	"testing"
)

func TestEvalConst_SupportedKinds(t *testing.T) {
	cases := []interface{}{true, 1, int64(2), float32(3.5), 4.5, "s", unitValue{}}
	for _, v := range cases {
		cv, err := EvalConst(v)
		if err != nil {
			t.Errorf("EvalConst(%#v) returned error: %v", v, err)
		}
		if cv.Val != v {
			t.Errorf("EvalConst(%#v).Val = %#v, want %#v", v, cv.Val, v)
		}
	}
}

func TestEvalConst_UnsupportedKind(t *testing.T) {
	if _, err := EvalConst([]int{1, 2}); err == nil {
		t.Error("expected an error evaluating a slice constant")
	}
}

func TestConstValue_IsNaN(t *testing.T) {
	nan64 := ConstValue{Val: math.NaN()}
	if !nan64.IsNaN() {
		t.Error("float64 NaN must report IsNaN")
	}

	nan32 := ConstValue{Val: float32(math.NaN())}
	if !nan32.IsNaN() {
		t.Error("float32 NaN must report IsNaN")
	}

	notNaN := ConstValue{Val: 1.0}
	if notNaN.IsNaN() {
		t.Error("a non-NaN float must not report IsNaN")
	}

	if (ConstValue{Val: "s"}).IsNaN() {
		t.Error("a non-float value must never report IsNaN")
	}
}

func TestCompare_Numeric(t *testing.T) {
	cases := []struct {
		a, b interface{}
		want Ordering
	}{
		{1, 2, Less},
		{int64(5), 5.0, Equal},
		{3.5, 2, Greater},
		{float32(1.0), 1, Equal},
	}
	for _, c := range cases {
		got := Compare(ConstValue{Val: c.a}, ConstValue{Val: c.b})
		if got != c.want {
			t.Errorf("Compare(%#v, %#v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestCompare_String(t *testing.T) {
	if Compare(ConstValue{Val: "a"}, ConstValue{Val: "b"}) != Less {
		t.Error(`Compare("a", "b") should be Less`)
	}
	if Compare(ConstValue{Val: "b"}, ConstValue{Val: "a"}) != Greater {
		t.Error(`Compare("b", "a") should be Greater`)
	}
	if Compare(ConstValue{Val: "a"}, ConstValue{Val: "a"}) != Equal {
		t.Error(`Compare("a", "a") should be Equal`)
	}
}

func TestCompare_Bool(t *testing.T) {
	if Compare(ConstValue{Val: false}, ConstValue{Val: true}) != Less {
		t.Error("Compare(false, true) should be Less")
	}
	if Compare(ConstValue{Val: true}, ConstValue{Val: false}) != Greater {
		t.Error("Compare(true, false) should be Greater")
	}
	if Compare(ConstValue{Val: true}, ConstValue{Val: true}) != Equal {
		t.Error("Compare(true, true) should be Equal")
	}
}

func TestCompare_Unit(t *testing.T) {
	if Compare(Unit, Unit) != Equal {
		t.Error("Compare(Unit, Unit) should be Equal")
	}
}

func TestCompare_MismatchedTypesIncomparable(t *testing.T) {
	if Compare(ConstValue{Val: 1}, ConstValue{Val: "1"}) != Incomparable {
		t.Error("an int and a string must be Incomparable")
	}
	if Compare(ConstValue{Val: true}, ConstValue{Val: 1}) != Incomparable {
		t.Error("a bool and an int must be Incomparable")
	}
	if Compare(Unit, ConstValue{Val: 1}) != Incomparable {
		t.Error("Unit and an int must be Incomparable")
	}
}

func TestCompare_NaNIsIncomparable(t *testing.T) {
	nan := ConstValue{Val: math.NaN()}
	if Compare(nan, nan) != Incomparable {
		t.Error("NaN must never compare equal, even to itself")
	}
	if Compare(nan, ConstValue{Val: 1.0}) != Incomparable {
		t.Error("NaN compared against a number must be Incomparable")
	}
}
