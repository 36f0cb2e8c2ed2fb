package segment

import (
	"testing"

	"poker-templater/pkg/geometry"

	"gocv.io/x/gocv"
)

func TestBinarizeOtsuInvertsInk(t *testing.T) {
	glyph := geometry.NewRectInt(3, 2, 4, 5)
	img := newRegionImage(t, 12, 10, glyph)
	defer img.Close()

	mask := Binarize(img, DefaultParams())
	defer mask.Close()

	if mask.Channels() != 1 {
		t.Fatalf("mask has %d channels, want 1", mask.Channels())
	}
	if v := mask.GetUCharAt(4, 4); v != 255 {
		t.Errorf("glyph pixel = %d, want 255 (ink is foreground)", v)
	}
	if v := mask.GetUCharAt(0, 0); v != 0 {
		t.Errorf("background pixel = %d, want 0", v)
	}
}

func TestBinarizeAcceptsColorInput(t *testing.T) {
	glyph := geometry.NewRectInt(3, 2, 4, 5)
	gray := newRegionImage(t, 12, 10, glyph)
	defer gray.Close()

	color := gocv.NewMat()
	defer color.Close()
	gocv.CvtColor(gray, &color, gocv.ColorGrayToBGR)

	for _, policy := range []BinarizePolicy{BinarizeOtsu, BinarizeAdaptive} {
		params := DefaultParams()
		params.Policy = policy

		mask := Binarize(color, params)
		if mask.Channels() != 1 {
			t.Errorf("%v: mask has %d channels, want 1", policy, mask.Channels())
		}
		if mask.Rows() != 10 || mask.Cols() != 12 {
			t.Errorf("%v: mask is %dx%d, want 12x10", policy, mask.Cols(), mask.Rows())
		}
		mask.Close()
	}
}

func TestBinarizeAdaptiveFindsInk(t *testing.T) {
	glyph := geometry.NewRectInt(4, 3, 5, 5)
	img := newRegionImage(t, 16, 12, glyph)
	defer img.Close()

	params := DefaultParams()
	params.Policy = BinarizeAdaptive

	mask := Binarize(img, params)
	defer mask.Close()

	// The glyph interior must register as ink; the far background as not.
	if v := mask.GetUCharAt(5, 6); v != 255 {
		t.Errorf("glyph pixel = %d, want 255", v)
	}
	if v := mask.GetUCharAt(0, 15); v != 0 {
		t.Errorf("background corner = %d, want 0", v)
	}
}

func TestOddAtLeast(t *testing.T) {
	tests := []struct {
		n, floor, want int
	}{
		{0, 3, 3},
		{3, 3, 3},
		{4, 3, 5},
		{11, 3, 11},
		{10, 3, 11},
	}
	for _, tt := range tests {
		if got := oddAtLeast(tt.n, tt.floor); got != tt.want {
			t.Errorf("oddAtLeast(%d, %d) = %d, want %d", tt.n, tt.floor, got, tt.want)
		}
	}
}
