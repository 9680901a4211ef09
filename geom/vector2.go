package geom

import "math"

type Vector2 struct {
	X Element
	Y Element
}

func NewVector2(x, y float32) *Vector2 {
	return &Vector2{X: x, Y: y}
}

func (v *Vector2) Add(v2 *Vector2) *Vector2 {
	return &Vector2{X: v.X + v2.X, Y: v.Y + v2.Y}
}

func (v *Vector2) Sub(v2 *Vector2) *Vector2 {
	return &Vector2{X: v.X - v2.X, Y: v.Y - v2.Y}
}

func (v *Vector2) Len() Element {
	return Element(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// FlipV converts between top-left and bottom-left texture origins.
func (v *Vector2) FlipV() *Vector2 {
	return &Vector2{X: v.X, Y: 1 - v.Y}
}

func (v *Vector2) ToArray(array []Element) {
	array[0] = v.X
	array[1] = v.Y
}
