package geom

import (
	"testing"
)

func TestVector2(t *testing.T) {
	if NewVector2(3, 4).Len() != 5 {
		t.Error("Vector2.Len()")
	}

	if *NewVector2(1, 0).Add(NewVector2(0, 1)) != *NewVector2(1, 1) {
		t.Error("Vector2.Add()")
	}

	if *NewVector2(0.25, 0.25).FlipV() != *NewVector2(0.25, 0.75) {
		t.Error("Vector2.FlipV()", NewVector2(0.25, 0.25).FlipV())
	}
}

func TestVector3(t *testing.T) {
	zero := NewVector3(0, 0, 0)
	if zero.Len() != 0 || zero.LenSqr() != 0 || zero.Dot(zero) != 0 {
		t.Error("len != 0")
	}

	if *zero.Normalize() != *NewVector3(1, 0, 0) {
		t.Error("Normalize shoud returns unit vector.", zero.Normalize())
	}

	if *NewVector3(1, 0, 0).Add(NewVector3(0, 1, 0)) != *NewVector3(1, 1, 0) {
		t.Error("Vector.Add()")
	}

	if *NewVector3(1, 0, 0).Cross(NewVector3(0, 1, 0)) != *NewVector3(0, 0, 1) {
		t.Error("Vector.Cross()")
	}

	a, b := NewVector3(1, 5, -2), NewVector3(3, -1, 0)
	if *a.Min(b) != *NewVector3(1, -1, -2) || *a.Max(b) != *NewVector3(3, 5, 0) {
		t.Error("Vector.Min()/Max()", a.Min(b), a.Max(b))
	}
}

func TestBox(t *testing.T) {
	var box Box
	if !box.IsEmpty() || box.Size().LenSqr() != 0 {
		t.Error("zero Box should be empty")
	}

	box.Extend(NewVector3(1, 1, 1))
	if box.IsEmpty() || box.Size().LenSqr() != 0 {
		t.Error("single point box", box)
	}

	box.Extend(NewVector3(-1, 3, 1))
	if *box.Size() != *NewVector3(2, 2, 0) {
		t.Error("Box.Size()", box.Size())
	}
	if *box.Center() != *NewVector3(0, 2, 1) {
		t.Error("Box.Center()", box.Center())
	}
}
