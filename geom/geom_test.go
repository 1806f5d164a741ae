package geom

import "testing"

func TestBoundingBoxExtend(t *testing.T) {
	b := EmptyBox()
	if b.Valid() {
		t.Fatalf("empty box must not be valid")
	}
	if got := b.Extend(); got.Valid() {
		t.Fatalf("extending with no points must keep the box empty")
	}
	b = b.Extend(Point{3, 4}, Point{-1, 10}, Point{2, 2})
	if !b.Valid() {
		t.Fatalf("box should be valid after extend")
	}
	if b.Min != (Point{-1, 2}) || b.Max != (Point{3, 10}) {
		t.Fatalf("unexpected box: %+v", b)
	}
	if b.Width() != 4 || b.Height() != 8 {
		t.Fatalf("unexpected size: %g x %g", b.Width(), b.Height())
	}
}
