package diag

import "testing"

func TestStoreAt(t *testing.T) {
	s := NewStore()
	if _, total, ok := s.At(1); ok || total != 0 {
		t.Fatalf("expected empty store, got total=%d ok=%v", total, ok)
	}

	s.Push(New("08001", 1, "No Server specified"))
	s.Push(New("HY000", 2, "Unable to fetch parts"))

	rec, total, ok := s.At(1)
	if !ok || total != 2 || rec.SQLState != "08001" {
		t.Fatalf("At(1) = %+v, total=%d, ok=%v", rec, total, ok)
	}

	rec, total, ok = s.At(2)
	if !ok || total != 2 || rec.Message != "Unable to fetch parts" {
		t.Fatalf("At(2) = %+v, total=%d, ok=%v", rec, total, ok)
	}

	if _, _, ok := s.At(3); ok {
		t.Fatalf("At(3) should be out of range")
	}
	if _, _, ok := s.At(0); ok {
		t.Fatalf("At(0) should be out of range")
	}
	if _, _, ok := s.At(-1); ok {
		t.Fatalf("At(-1) should be out of range")
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		name      string
		s         string
		bufLen    int
		hasBuf    bool
		wantOut   string
		wantLen   int
		wantTrunc bool
	}{
		{"no buffer", "hello", 0, false, "", 5, false},
		{"exact fit", "hi", 3, true, "hi", 2, false},
		{"buffer too small", "hello world", 6, true, "hello", 11, true},
		{"empty message no buffer", "", 0, false, "", 0, false},
		{"zero length buffer", "x", 0, true, "", 1, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, textLen, truncated := Truncate(c.s, c.bufLen, c.hasBuf)
			if out != c.wantOut || textLen != c.wantLen || truncated != c.wantTrunc {
				t.Fatalf("Truncate(%q, %d, %v) = (%q, %d, %v), want (%q, %d, %v)",
					c.s, c.bufLen, c.hasBuf, out, textLen, truncated, c.wantOut, c.wantLen, c.wantTrunc)
			}
		})
	}
}

func TestPushIgnoresNil(t *testing.T) {
	s := NewStore()
	s.Push(nil)
	if s.Count() != 0 {
		t.Fatalf("expected nil push to be ignored, count=%d", s.Count())
	}
}
