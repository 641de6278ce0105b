package parser

import "testing"

func TestParseInt(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in     any
		want   int
		wantOK bool
	}{
		{12.0, 12, true},
		{12.9, 12, true},
		{-3.7, -3, true},
		{7, 7, true},
		{"12", 12, true},
		{" #15 ", 15, true},
		{"Stop 021", 21, true},
		{"-4", -4, true},
		{"12-3", 12, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{nil, 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseInt(tc.in)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("ParseInt(%#v)=%d,%v want=%d,%v", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestCellString(t *testing.T) {
	t.Parallel()

	if got := CellString(123.0); got != "123" {
		t.Fatalf("CellString(123.0)=%q", got)
	}
	if got := CellString("  R1 "); got != "R1" {
		t.Fatalf("CellString trims: %q", got)
	}
	if got := CellString(nil); got != "" {
		t.Fatalf("CellString(nil)=%q", got)
	}
}
