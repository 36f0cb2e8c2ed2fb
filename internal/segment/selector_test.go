package segment

import (
	"testing"

	"poker-templater/pkg/geometry"

	"gocv.io/x/gocv"
)

func TestChooseByCount(t *testing.T) {
	box := func(n int) []geometry.RectInt {
		boxes := make([]geometry.RectInt, n)
		for i := range boxes {
			boxes[i] = geometry.NewRectInt(i*10, 0, 5, 8)
		}
		return boxes
	}

	tests := []struct {
		name       string
		contour    int
		projection int
		want       Method
	}{
		{"contour strictly more", 4, 3, MethodContour},
		{"tie favors projection", 3, 3, MethodProjection},
		{"projection more", 2, 3, MethodProjection},
		{"contour only", 2, 0, MethodContour},
		{"both empty falls back to contour", 0, 0, MethodContour},
	}

	for _, tt := range tests {
		if got := ChooseByCount(box(tt.contour), box(tt.projection)); got != tt.want {
			t.Errorf("%s: ChooseByCount(%d, %d) = %v, want %v",
				tt.name, tt.contour, tt.projection, got, tt.want)
		}
	}
}

// newRegionImage builds a grayscale region image with dark glyph
// blocks on a light background, the polarity the Otsu binarizer
// inverts to white ink.
func newRegionImage(t *testing.T, width, height int, glyphs ...geometry.RectInt) gocv.Mat {
	t.Helper()
	img := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8U)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetUCharAt(y, x, 230)
		}
	}
	for _, g := range glyphs {
		for y := g.Y; y < g.Y+g.Height; y++ {
			for x := g.X; x < g.X+g.Width; x++ {
				img.SetUCharAt(y, x, 20)
			}
		}
	}
	return img
}

func TestSelectorSplitOrdersAndClamps(t *testing.T) {
	glyphs := []geometry.RectInt{
		geometry.NewRectInt(14, 1, 5, 8),
		geometry.NewRectInt(2, 1, 5, 8),
		geometry.NewRectInt(8, 1, 4, 8),
	}
	img := newRegionImage(t, 22, 10, glyphs...)
	defer img.Close()

	sel := NewSelector(DefaultParams())
	result := sel.Split(img)
	defer result.Close()

	if len(result.Symbols) != 3 {
		t.Fatalf("got %d symbols, want 3", len(result.Symbols))
	}

	prev := -1
	for i, sym := range result.Symbols {
		box := sym.Box
		if box.X <= prev {
			t.Errorf("symbols not ordered left to right: %+v", result.Boxes())
		}
		prev = box.X

		if box.X < 0 || box.Y < 0 || box.Right() > img.Cols() || box.Bottom() > img.Rows() {
			t.Errorf("symbol %d box %+v escapes %dx%d image", i, box, img.Cols(), img.Rows())
		}
		if sym.Image.Cols() != box.Width || sym.Image.Rows() != box.Height {
			t.Errorf("symbol %d crop is %dx%d, box is %dx%d",
				i, sym.Image.Cols(), sym.Image.Rows(), box.Width, box.Height)
		}
	}
}

func TestSelectorCropsFromOriginalImage(t *testing.T) {
	// The crop must come from the source image, not the mask: the
	// glyph pixels keep their original dark value.
	glyph := geometry.NewRectInt(3, 2, 4, 6)
	img := newRegionImage(t, 12, 10, glyph)
	defer img.Close()

	sel := NewSelector(DefaultParams())
	result := sel.Split(img)
	defer result.Close()

	if len(result.Symbols) != 1 {
		t.Fatalf("got %d symbols, want 1", len(result.Symbols))
	}
	if v := result.Symbols[0].Image.GetUCharAt(0, 0); v != 20 {
		t.Errorf("crop pixel = %d, want original glyph value 20", v)
	}
}

func TestSelectorEmptyInput(t *testing.T) {
	img := gocv.NewMat()
	defer img.Close()

	sel := NewSelector(DefaultParams())
	result := sel.Split(img)
	defer result.Close()

	if len(result.Symbols) != 0 {
		t.Errorf("got %d symbols from empty input, want 0", len(result.Symbols))
	}
}

func TestSelectorCustomChooser(t *testing.T) {
	glyphs := []geometry.RectInt{
		geometry.NewRectInt(2, 1, 5, 8),
		geometry.NewRectInt(10, 1, 5, 8),
	}
	img := newRegionImage(t, 18, 10, glyphs...)
	defer img.Close()

	sel := NewSelector(DefaultParams())
	sel.Choose = func(contour, projection []geometry.RectInt) Method {
		return MethodContour
	}

	result := sel.Split(img)
	defer result.Close()

	if result.Method != MethodContour {
		t.Errorf("method = %v, want forced contour", result.Method)
	}
}

func TestExtractSymbolsDropsDegenerateBoxes(t *testing.T) {
	img := newRegionImage(t, 10, 10)
	defer img.Close()

	boxes := []geometry.RectInt{
		geometry.NewRectInt(2, 2, 3, 3),
		geometry.NewRectInt(50, 50, 4, 4), // outside, clamps to nothing
		geometry.NewRectInt(8, 8, 10, 10), // clamps to 2x2
	}

	symbols := ExtractSymbols(img, boxes)
	defer func() {
		for i := range symbols {
			symbols[i].Image.Close()
		}
	}()

	if len(symbols) != 2 {
		t.Fatalf("got %d symbols, want 2", len(symbols))
	}
	if symbols[1].Box != geometry.NewRectInt(8, 8, 2, 2) {
		t.Errorf("clamped box = %+v, want {8 8 2 2}", symbols[1].Box)
	}
}

func TestConfidence(t *testing.T) {
	uniform := []geometry.RectInt{
		geometry.NewRectInt(0, 0, 5, 8),
		geometry.NewRectInt(7, 0, 5, 8),
		geometry.NewRectInt(14, 0, 5, 8),
	}
	ragged := []geometry.RectInt{
		geometry.NewRectInt(0, 0, 1, 8),
		geometry.NewRectInt(3, 0, 14, 8),
		geometry.NewRectInt(20, 0, 2, 8),
	}

	if got := Confidence(nil); got != 0 {
		t.Errorf("Confidence(nil) = %v, want 0", got)
	}
	if got := Confidence(uniform[:1]); got != 1 {
		t.Errorf("single box confidence = %v, want 1", got)
	}

	u := Confidence(uniform)
	r := Confidence(ragged)
	if u <= r {
		t.Errorf("uniform widths %.3f should score above ragged widths %.3f", u, r)
	}
	if u != 1 {
		t.Errorf("identical widths should score 1.0, got %.3f", u)
	}
}
