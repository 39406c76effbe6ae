package converter

import (
	"fmt"
	"image"
)

// Ratio is an exact width/height aspect ratio kept in lowest terms.
type Ratio struct {
	Num int
	Den int
}

// NewRatio returns width/height reduced by their gcd. Both must be positive.
func NewRatio(width, height int) (Ratio, error) {
	if width <= 0 || height <= 0 {
		return Ratio{}, fmt.Errorf("ratio %d/%d: both terms must be positive", width, height)
	}
	g := gcd(width, height)
	return Ratio{Num: width / g, Den: height / g}, nil
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// CropBox returns the largest rectangle of aspect ratio r centered in a
// w x h image, trimming only the axis that is too long. When the image
// already has ratio r the full image is returned.
func CropBox(w, h int, r Ratio) image.Rectangle {
	var x, y int
	if w*r.Den > r.Num*h {
		// floor((w - r*h) / 2)
		x = (w*r.Den - r.Num*h) / (2 * r.Den)
	} else {
		// floor((h - w/r) / 2)
		y = (h*r.Num - w*r.Den) / (2 * r.Num)
	}
	return image.Rect(x, y, w-x, h-y)
}

// NeedsResize reports whether a cropped image of the given size must be
// scaled down to the target. Images that do not cover the target on both
// axes are kept as they are.
func NeedsResize(cropped, target image.Point) bool {
	if cropped == target {
		return false
	}
	return cropped.X >= target.X && cropped.Y >= target.Y
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
