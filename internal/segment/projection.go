package segment

import (
	"poker-templater/pkg/geometry"

	"gocv.io/x/gocv"
)

// SplitByProjection scans a binary mask column by column and returns
// one bounding box per run of ink columns, left to right. A column is
// a gap when its ink count is at or below GapThresholdFrac of the mask
// height, which tolerates stray noise pixels. This works well when
// glyphs are rendered with genuine blank columns between them; it
// over- or under-splits touching or italic text, which is why the
// contour segmenter exists as an alternative.
func SplitByProjection(mask gocv.Mat, params Params) []geometry.RectInt {
	if mask.Empty() {
		return nil
	}

	height := mask.Rows()
	width := mask.Cols()
	threshold := float64(height) * params.GapThresholdFrac

	minGap := params.MinGapRun
	if minGap < 1 {
		minGap = 1
	}

	var boxes []geometry.RectInt
	inSymbol := false
	startX := 0
	gapRun := 0

	for x := 0; x < width; x++ {
		isGap := float64(inkInColumn(mask, x)) <= threshold

		switch {
		case !isGap && !inSymbol:
			inSymbol = true
			startX = x
			gapRun = 0
		case isGap && inSymbol:
			gapRun++
			if gapRun >= minGap {
				endX := x - gapRun + 1
				if box, ok := spanBox(mask, startX, endX, params); ok {
					boxes = append(boxes, box)
				}
				inSymbol = false
				gapRun = 0
			}
		case !isGap && inSymbol:
			// The glyph continues: the gap run was too short to close.
			gapRun = 0
		}
	}

	// Close the final symbol at the right edge.
	if inSymbol {
		if box, ok := spanBox(mask, startX, width, params); ok {
			boxes = append(boxes, box)
		}
	}

	return boxes
}

// spanBox computes the vertical extent of the horizontal span
// [startX, endX) and returns its tight bounding box. Spans thinner or
// shorter than the configured minimums are rejected.
func spanBox(mask gocv.Mat, startX, endX int, params Params) (geometry.RectInt, bool) {
	topY := -1
	bottomY := -1
	for y := 0; y < mask.Rows(); y++ {
		if inkInRow(mask, y, startX, endX) > 0 {
			if topY < 0 {
				topY = y
			}
			bottomY = y
		}
	}
	if topY < 0 {
		return geometry.RectInt{}, false
	}

	box := geometry.RectInt{
		X:      startX,
		Y:      topY,
		Width:  endX - startX,
		Height: bottomY - topY + 1,
	}
	if box.Width < params.MinWidth || box.Height < params.MinHeight {
		return geometry.RectInt{}, false
	}
	return box, true
}
