package segment

import (
	"sort"

	"poker-templater/pkg/geometry"

	"gocv.io/x/gocv"
)

// SplitByContours finds external connected components of ink in a
// binary mask and returns their bounding boxes, size-filtered and
// merged so that multi-stroke glyphs ("i", "%", ":") come back as one
// box each.
func SplitByContours(mask gocv.Mat, params Params) []geometry.RectInt {
	if mask.Empty() {
		return nil
	}

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var boxes []geometry.RectInt
	for i := 0; i < contours.Size(); i++ {
		rect := gocv.BoundingRect(contours.At(i))
		box := geometry.RectInt{
			X:      rect.Min.X,
			Y:      rect.Min.Y,
			Width:  rect.Dx(),
			Height: rect.Dy(),
		}
		if box.Width < params.MinWidth || box.Height < params.MinHeight {
			continue
		}
		boxes = append(boxes, box)
	}

	return MergeCloseBoxes(boxes, params.MaxMergeGap)
}

// MergeCloseBoxes merges boxes that are horizontally within maxGap
// pixels of each other and vertically overlapping, reassembling glyph
// fragments like the dot of an "i" or a torn stroke into one symbol
// box. Boxes are grouped greedily in x order; a box joins the current
// group if it is close to ANY member, and when it matches none, the
// group is flushed as the union of its members' extents. The operation
// is idempotent: merging its own output again yields the same boxes.
func MergeCloseBoxes(boxes []geometry.RectInt, maxGap int) []geometry.RectInt {
	if len(boxes) == 0 {
		return nil
	}

	sorted := make([]geometry.RectInt, len(boxes))
	copy(sorted, boxes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var merged []geometry.RectInt
	group := []geometry.RectInt{sorted[0]}

	for _, box := range sorted[1:] {
		joins := false
		for _, member := range group {
			if box.HorizontalGap(member) <= maxGap && box.OverlapsVertically(member) {
				joins = true
				break
			}
		}

		if joins {
			group = append(group, box)
		} else {
			merged = append(merged, unionOf(group))
			group = []geometry.RectInt{box}
		}
	}
	merged = append(merged, unionOf(group))

	return merged
}

// unionOf returns the bounding extent of a non-empty group of boxes.
func unionOf(group []geometry.RectInt) geometry.RectInt {
	u := group[0]
	for _, box := range group[1:] {
		u = u.Union(box)
	}
	return u
}
