package model

// Rect is a layout box in document coordinates
type Rect struct {
	Top    float64 `json:"top" yaml:"top"`
	Left   float64 `json:"left" yaml:"left"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Bottom returns the bottom edge
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Right returns the right edge
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Union returns the smallest rect enclosing both r and o
func (r Rect) Union(o Rect) Rect {
	top := min(r.Top, o.Top)
	left := min(r.Left, o.Left)
	bottom := max(r.Bottom(), o.Bottom())
	right := max(r.Right(), o.Right())
	return Rect{Top: top, Left: left, Width: right - left, Height: bottom - top}
}

// RelativeTo translates r into the coordinate space whose origin is origin's top-left corner
func (r Rect) RelativeTo(origin Rect) Rect {
	return Rect{
		Top:    r.Top - origin.Top,
		Left:   r.Left - origin.Left,
		Width:  r.Width,
		Height: r.Height,
	}
}
