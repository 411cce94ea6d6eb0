package xsolve

import "testing"

func TestCompareDewey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0", 0},
		{"1.0", "1.1", -1},
		{"1.1", "1.0", 1},
		{"1.0", "1.0.0", 0},
		{"1.0", "1.0.1", -1},
		{"2.0", "1.9", 1},
		{"1.0alpha", "1.0", -1},
		{"1.0beta", "1.0alpha", 1},
		{"1.0pre1", "1.0beta", 1},
		{"1.0rc1", "1.0pre1", 0},
		{"1.0pl1", "1.0", 1},
		{"1.0a", "1.0", 1},
		{"1.0a", "1.0b", -1},
		{"1.0_1", "1.0_2", -1},
		{"1.0_2", "1.0_1", 1},
		{"1.0_1", "1.0", 1},
		{"1.0_1_2", "1.0_2", 0},
		{"3.0.0", "3.0", 0},
		// A bare non-keyword letter run tokenises as Dot,value per letter
		// (the SALPHA state in the reference tokeniser), the same sequence
		// a dotted numeric run produces.
		{"abc", ".1.2.3", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			if got := sign(CompareDewey(tt.a, tt.b)); got != tt.want {
				t.Fatalf("CompareDewey(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompareDeweyBounded(t *testing.T) {
	t.Parallel()

	a := "glibc-2.38_1"
	b := "glibc-2.39"

	// compare just the version portions embedded in larger strings
	got := CompareDeweyBounded(a[6:], len(a)-6, b[6:], len(b)-6)
	if got >= 0 {
		t.Fatalf("expected 2.38_1 < 2.39, got %d", got)
	}
}

func TestCompareDeweyBoundedShortBound(t *testing.T) {
	t.Parallel()

	// Bounded to 1 char each, "923" and "9" both reduce to the digit 9:
	// the bound truncates the component before the parser ever sees the
	// trailing digits, so the comparison must land on equal rather than
	// treating the untruncated "923" as greater than "9".
	if got := sign(CompareDeweyBounded("923", 1, "9", 1)); got != 0 {
		t.Fatalf("CompareDeweyBounded(%q,1,%q,1) = %d, want 0", "923", "9", got)
	}
}

func TestDeweyVersionSort(t *testing.T) {
	t.Parallel()

	v1 := DeweyVersion("1.0")
	v2 := DeweyVersion("1.1")
	if v1.Sort(v2) >= 0 {
		t.Fatalf("expected 1.0 < 1.1")
	}

	// incompatible Version implementation falls back to string compare
	other := SimpleVersion("1.0")
	if v1.Sort(other) != 0 {
		t.Fatalf("expected fallback string compare to find equality, got %d", v1.Sort(other))
	}
}

func TestDeweyVersionString(t *testing.T) {
	t.Parallel()

	v := DeweyVersion("2.38_1")
	if v.String() != "2.38_1" {
		t.Fatalf("String() = %q, want %q", v.String(), "2.38_1")
	}
}
