package geom

// Box is an axis-aligned bounding box. The zero value is empty.
type Box struct {
	Min   Vector3
	Max   Vector3
	valid bool
}

func (b *Box) IsEmpty() bool {
	return !b.valid
}

// Extend grows b to contain p.
func (b *Box) Extend(p *Vector3) {
	if !b.valid {
		b.Min, b.Max, b.valid = *p, *p, true
		return
	}
	b.Min = *b.Min.Min(p)
	b.Max = *b.Max.Max(p)
}

func (b *Box) Center() *Vector3 {
	return b.Min.Add(&b.Max).Scale(0.5)
}

func (b *Box) Size() *Vector3 {
	if !b.valid {
		return &Vector3{}
	}
	return b.Max.Sub(&b.Min)
}
