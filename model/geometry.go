package model

import "math"

// BBox represents a bounding box by its lower-left (X0, Y0) and
// upper-right (X1, Y1) corners.
type BBox struct {
	X0 float64 // Left
	Y0 float64 // Bottom (PDF coordinate system)
	X1 float64 // Right
	Y1 float64 // Top
}

// NewBBox creates a bounding box from two corners in any order
func NewBBox(x0, y0, x1, y1 float64) BBox {
	return BBox{
		X0: math.Min(x0, x1),
		Y0: math.Min(y0, y1),
		X1: math.Max(x0, x1),
		Y1: math.Max(y0, y1),
	}
}

// Width returns the horizontal extent
func (b BBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent
func (b BBox) Height() float64 {
	return b.Y1 - b.Y0
}

// CenterY returns the vertical midpoint
func (b BBox) CenterY() float64 {
	return (b.Y0 + b.Y1) / 2
}

// Union returns the smallest box containing both boxes.
// A zero box is treated as empty so that unions can start from BBox{}.
func (b BBox) Union(other BBox) BBox {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	return BBox{
		X0: math.Min(b.X0, other.X0),
		Y0: math.Min(b.Y0, other.Y0),
		X1: math.Max(b.X1, other.X1),
		Y1: math.Max(b.Y1, other.Y1),
	}
}

// FlipY mirrors the box vertically inside a page of the given height.
// It converts top-left-origin coordinates (images, hOCR) into PDF space.
func (b BBox) FlipY(pageHeight float64) BBox {
	return BBox{
		X0: b.X0,
		Y0: pageHeight - b.Y1,
		X1: b.X1,
		Y1: pageHeight - b.Y0,
	}
}

// IsEmpty returns true for the zero box
func (b BBox) IsEmpty() bool {
	return b == BBox{}
}
