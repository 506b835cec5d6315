package arith_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/shubham-shewale/gbce-market/pkg/arith"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDecimal64_Round(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.0000000000000005", "1.000000000000000"},
		{"1.0000000000000015", "1.000000000000002"},
		{"123456789012345678", "123456789012345700"},
		{"0.000123456789012345678", "0.0001234567890123457"},
		{"42", "42"},
		{"0", "0"},
	}

	for _, tc := range cases {
		got := arith.Decimal64.Round(d(tc.in))
		if !got.Equal(d(tc.want)) {
			t.Errorf("Round(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestDecimal64_Quo(t *testing.T) {
	cases := []struct {
		x, y string
		want string
	}{
		{"1", "3", "0.3333333333333333"},
		{"2", "3", "0.6666666666666667"},
		{"-2", "3", "-0.6666666666666667"},
		{"10", "4", "2.5"},
		{"0.08", "10", "0.008"},
		{"0", "7", "0"},
		{"1", "0.0003", "3333.333333333333"},
	}

	for _, tc := range cases {
		got, err := arith.Decimal64.Quo(d(tc.x), d(tc.y))
		if err != nil {
			t.Fatalf("Quo(%s, %s) returned error: %v", tc.x, tc.y, err)
		}
		if !got.Equal(d(tc.want)) {
			t.Errorf("Quo(%s, %s) = %s, want %s", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestDecimal64_QuoByZero(t *testing.T) {
	_, err := arith.Decimal64.Quo(d("10"), decimal.Zero)
	if !errors.Is(err, arith.ErrDivisionByZero) {
		t.Fatalf("Expected ErrDivisionByZero, got %v", err)
	}
}

func TestDecimal64_MulAdd(t *testing.T) {
	got := arith.Decimal64.Mul(d("1.234567890123456"), d("10"))
	if !got.Equal(d("12.34567890123456")) {
		t.Errorf("Mul = %s", got)
	}

	got = arith.Decimal64.Add(d("9999999999999999"), d("1"))
	if !got.Equal(d("10000000000000000")) {
		t.Errorf("Add = %s", got)
	}

	got = arith.Decimal64.Sub(d("1"), d("0.25"))
	if !got.Equal(d("0.75")) {
		t.Errorf("Sub = %s", got)
	}
}

func TestDecimal64_Pow(t *testing.T) {
	if got := arith.Decimal64.Pow(d("2"), 10); !got.Equal(d("1024")) {
		t.Errorf("2^10 = %s", got)
	}
	if got := arith.Decimal64.Pow(d("7"), 0); !got.Equal(d("1")) {
		t.Errorf("7^0 = %s", got)
	}
}

func TestDecimal64_Root(t *testing.T) {
	cases := []struct {
		x    string
		n    int
		want string
	}{
		{"8", 3, "2"},
		{"2", 2, "1.414213562373095"},
		{"10", 1, "10"},
		{"1000000", 6, "10"},
		{"0.0001", 4, "0.1"},
		{"0", 5, "0"},
	}

	for _, tc := range cases {
		got, err := arith.Decimal64.Root(d(tc.x), tc.n)
		if err != nil {
			t.Fatalf("Root(%s, %d) returned error: %v", tc.x, tc.n, err)
		}
		if !got.Equal(d(tc.want)) {
			t.Errorf("Root(%s, %d) = %s, want %s", tc.x, tc.n, got, tc.want)
		}
	}
}

func TestDecimal64_RootDomain(t *testing.T) {
	if _, err := arith.Decimal64.Root(d("-4"), 2); !errors.Is(err, arith.ErrDomain) {
		t.Errorf("Expected ErrDomain for negative radicand, got %v", err)
	}
	if _, err := arith.Decimal64.Root(d("4"), 0); !errors.Is(err, arith.ErrDomain) {
		t.Errorf("Expected ErrDomain for zero index, got %v", err)
	}
}

func TestParse(t *testing.T) {
	got, err := arith.Parse(" 20.50 ")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !got.Equal(d("20.5")) {
		t.Errorf("Parse = %s, want 20.5", got)
	}

	long := "1.23456789012345678901"
	if got := arith.MustParse(long); got.String() != long {
		t.Errorf("Parse should keep every digit, got %s", got)
	}

	if _, err := arith.Parse("abc"); err == nil {
		t.Error("Expected an error for a malformed literal")
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected MustParse to panic")
		}
	}()
	arith.MustParse("1.2.3")
}
