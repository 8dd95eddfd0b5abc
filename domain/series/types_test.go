package series

import "testing"

func TestParseIntPrefix(t *testing.T) {
	tests := []struct {
		in   any
		want int
		ok   bool
	}{
		{"50", 50, true},
		{" 1 234", 1, true}, // digit prefix only, as parseInt would
		{"-7", -7, true},
		{"+12", 12, true},
		{"No data", 0, false},
		{"", 0, false},
		{nil, 0, false},
		{float64(42), 42, true},
		{true, 0, false},
	}

	for _, test := range tests {
		got, ok := parseIntPrefix(test.in)
		if got != test.want || ok != test.ok {
			t.Errorf("parseIntPrefix(%v) = (%d, %v), want (%d, %v)", test.in, got, ok, test.want, test.ok)
		}
	}
}

func TestCompareScalars(t *testing.T) {
	tests := []struct {
		a, b any
		want int
	}{
		{"2000", "2001", -1},
		{"2001", "2000", 1},
		{"2000", "2000", 0},
		{float64(997), "1998", -1}, // numeric compare when both sides parse
		{"abc", "abd", -1},         // lexical fallback
		{float64(2000), "2000", 0},
	}

	for _, test := range tests {
		if got := CompareScalars(test.a, test.b); got != test.want {
			t.Errorf("CompareScalars(%v, %v) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}

func TestScalarString(t *testing.T) {
	if got := ScalarString(float64(2004)); got != "2004" {
		t.Errorf("ScalarString(2004.0) = %q, want \"2004\"", got)
	}
	if got := ScalarString(" 2004 "); got != "2004" {
		t.Errorf("ScalarString(\" 2004 \") = %q, want \"2004\"", got)
	}
	if got := ScalarString(nil); got != "" {
		t.Errorf("ScalarString(nil) = %q, want empty", got)
	}
}
