package segment

import (
	"image"

	"gocv.io/x/gocv"
)

// Binarize converts a region image into a binary ink mask where
// character ink is white (255) and background is black. Accepts
// single-channel or 3-channel input; color input is converted to
// grayscale first. The caller owns the returned Mat.
func Binarize(img gocv.Mat, params Params) gocv.Mat {
	gray := toGray(img)
	defer gray.Close()

	binary := gocv.NewMat()

	switch params.Policy {
	case BinarizeAdaptive:
		k := oddAtLeast(params.BlurKernel, 3)
		blurred := gocv.NewMat()
		gocv.GaussianBlur(gray, &blurred, image.Point{X: k, Y: k}, 0, 0, gocv.BorderDefault)

		block := oddAtLeast(params.AdaptiveBlock, 3)
		gocv.AdaptiveThreshold(blurred, &binary, 255,
			gocv.AdaptiveThresholdMean, gocv.ThresholdBinaryInv, block, params.AdaptiveC)
		blurred.Close()

	default:
		// Otsu with inversion: text is typically darker than the
		// background, so ink ends up white in the mask.
		gocv.Threshold(gray, &binary, 0, 255, gocv.ThresholdBinaryInv|gocv.ThresholdOtsu)
	}

	return binary
}

// toGray returns a single-channel copy of img.
func toGray(img gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	if img.Channels() == 1 {
		img.CopyTo(&gray)
		return gray
	}
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	return gray
}

// oddAtLeast rounds n up to the nearest odd value >= floor.
func oddAtLeast(n, floor int) int {
	if n < floor {
		n = floor
	}
	if n%2 == 0 {
		n++
	}
	return n
}

// inkInColumn counts ink pixels in one column of a binary mask.
func inkInColumn(mask gocv.Mat, x int) int {
	count := 0
	for y := 0; y < mask.Rows(); y++ {
		if mask.GetUCharAt(y, x) > 0 {
			count++
		}
	}
	return count
}

// inkInRow counts ink pixels in one row of a binary mask, restricted
// to columns [x0, x1).
func inkInRow(mask gocv.Mat, y, x0, x1 int) int {
	count := 0
	for x := x0; x < x1; x++ {
		if mask.GetUCharAt(y, x) > 0 {
			count++
		}
	}
	return count
}
