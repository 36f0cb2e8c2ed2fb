package segment

import (
	"image"
	"sort"

	"poker-templater/pkg/geometry"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"
)

// Method identifies which segmenter produced a result.
type Method int

const (
	MethodContour Method = iota
	MethodProjection
)

func (m Method) String() string {
	switch m {
	case MethodContour:
		return "contour"
	case MethodProjection:
		return "projection"
	default:
		return "unknown"
	}
}

// Symbol pairs a bounding box with the sub-image it denotes, cropped
// from the original (non-binarized) region image.
type Symbol struct {
	Image gocv.Mat
	Box   geometry.RectInt
}

// Result is the ordered output of a segmentation run.
type Result struct {
	Symbols    []Symbol
	Method     Method
	Confidence float64
}

// Boxes returns the symbol boxes in order.
func (r *Result) Boxes() []geometry.RectInt {
	boxes := make([]geometry.RectInt, len(r.Symbols))
	for i, s := range r.Symbols {
		boxes[i] = s.Box
	}
	return boxes
}

// Close releases the symbol sub-images.
func (r *Result) Close() {
	for i := range r.Symbols {
		r.Symbols[i].Image.Close()
	}
	r.Symbols = nil
}

// Chooser picks between the two segmenters' box sets. It exists so
// the default count heuristic can be replaced without touching the
// segmenters themselves.
type Chooser func(contour, projection []geometry.RectInt) Method

// ChooseByCount is the default chooser. With no ground truth
// available, box count serves as an inexpensive proxy for "more
// granular / correct": contour wins only when it found strictly more
// boxes (connected text benefits from merge-based reassembly),
// otherwise projection wins if it found anything at all. This is a
// documented heuristic, not a guarantee.
func ChooseByCount(contour, projection []geometry.RectInt) Method {
	if len(contour) > len(projection) {
		return MethodContour
	}
	if len(projection) > 0 {
		return MethodProjection
	}
	return MethodContour
}

// Selector runs both segmenters over a region image and extracts the
// better-looking ordered symbol sequence.
type Selector struct {
	Params Params
	Choose Chooser
}

// NewSelector creates a Selector with the default count-based chooser.
func NewSelector(params Params) *Selector {
	return &Selector{Params: params, Choose: ChooseByCount}
}

// Split segments a region image into ordered symbols. The sub-images
// are cropped from img itself, not from the binarized mask, so saved
// templates keep their original rendering. Boxes are clamped to the
// image bounds before cropping; boxes that clamp to nothing are
// dropped.
func (s *Selector) Split(img gocv.Mat) Result {
	if img.Empty() {
		return Result{}
	}

	mask := Binarize(img, s.Params)
	defer mask.Close()

	contourBoxes := SplitByContours(mask, s.Params)

	var projectionBoxes []geometry.RectInt
	if s.Params.UseProjection {
		projectionBoxes = SplitByProjection(mask, s.Params)
	}

	choose := s.Choose
	if choose == nil {
		choose = ChooseByCount
	}

	method := choose(contourBoxes, projectionBoxes)
	boxes := contourBoxes
	if method == MethodProjection {
		boxes = projectionBoxes
	}

	sort.Slice(boxes, func(i, j int) bool { return boxes[i].X < boxes[j].X })

	symbols := ExtractSymbols(img, boxes)
	return Result{
		Symbols:    symbols,
		Method:     method,
		Confidence: Confidence(boxes),
	}
}

// ExtractSymbols crops one sub-image per box from the source image.
// Each box is clamped to the image bounds first; degenerate boxes are
// dropped rather than propagated.
func ExtractSymbols(img gocv.Mat, boxes []geometry.RectInt) []Symbol {
	var symbols []Symbol
	for _, box := range boxes {
		clamped := box.ClampTo(img.Cols(), img.Rows())
		if clamped.Empty() {
			continue
		}

		roi := img.Region(image.Rect(clamped.X, clamped.Y, clamped.Right(), clamped.Bottom()))
		crop := roi.Clone()
		roi.Close()

		symbols = append(symbols, Symbol{Image: crop, Box: clamped})
	}
	return symbols
}

// Confidence scores how plausible a box set looks as a run of
// characters, from the uniformity of box widths: glyphs of one font
// have similar widths, so a low relative spread scores near 1.0. The
// score is advisory only, surfaced so a human can overrule the
// count-based chooser.
func Confidence(boxes []geometry.RectInt) float64 {
	if len(boxes) == 0 {
		return 0
	}
	if len(boxes) == 1 {
		return 1
	}

	widths := make([]float64, len(boxes))
	for i, b := range boxes {
		widths[i] = float64(b.Width)
	}

	mean, std := stat.MeanStdDev(widths, nil)
	if mean == 0 {
		return 0
	}

	score := 1.0 - std/mean
	if score < 0 {
		score = 0
	}
	return score
}
