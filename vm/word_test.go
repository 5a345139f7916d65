package mit

import "testing"

func assert(t *testing.T, cond bool, msg string) {
	t.Helper()
	if !cond {
		t.Fatal(msg)
	}
}

func TestIsAligned(t *testing.T) {
	assert(t, isAligned(0), "0 must be aligned")
	assert(t, isAligned(Word(wordBytes)), "one word must be aligned")
	assert(t, !isAligned(1), "1 must not be aligned")
}

func TestSignExtend(t *testing.T) {
	allOnes := uwordMax()
	if got := signExtend(allOnes); got != -1 {
		t.Fatalf("signExtend(all ones) = %d, want -1", got)
	}
	if got := signExtend(1); got != 1 {
		t.Fatalf("signExtend(1) = %d, want 1", got)
	}
}

func TestSignExtendField(t *testing.T) {
	cases := []struct {
		v, bits, want int
	}{
		{0x3f, 6, -1},
		{0x1f, 6, 31},
		{0x20, 6, -32},
		{0x7f, 7, -1},
		{0x3f, 7, 63},
	}
	for _, c := range cases {
		if got := signExtendField(c.v, c.bits); got != c.want {
			t.Errorf("signExtendField(%#x, %d) = %d, want %d", c.v, c.bits, got, c.want)
		}
	}
}
