// Command segtest runs symbol segmentation on a region crop and prints
// the boxes each method finds, plus the one the selector picks.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"

	"poker-templater/internal/imgio"
	"poker-templater/internal/segment"

	"gocv.io/x/gocv"
)

func main() {
	imagePath := flag.String("image", "", "Path to region crop (PNG, JPEG, or TIFF)")
	minWidth := flag.Int("min-width", 1, "Minimum symbol width in pixels")
	minHeight := flag.Int("min-height", 2, "Minimum symbol height in pixels")
	maxGap := flag.Int("max-gap", 1, "Max horizontal gap when merging contour boxes")
	adaptive := flag.Bool("adaptive", false, "Use adaptive thresholding instead of Otsu")
	outPath := flag.String("out", "", "Optional path for an annotated copy of the crop")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: segtest -image <path> [-min-width 1] [-min-height 2] [-max-gap 1] [-adaptive] [-out annotated.png]")
		os.Exit(1)
	}

	img, err := imgio.LoadMat(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	defer img.Close()

	fmt.Printf("Loaded %s: %dx%d pixels\n", *imagePath, img.Cols(), img.Rows())

	params := segment.DefaultParams()
	params.MinWidth = *minWidth
	params.MinHeight = *minHeight
	params.MaxMergeGap = *maxGap
	if *adaptive {
		params.Policy = segment.BinarizeAdaptive
	}
	fmt.Printf("Params: policy=%s min=%dx%d merge-gap=%d gap-threshold=%.2f\n",
		params.Policy, params.MinWidth, params.MinHeight,
		params.MaxMergeGap, params.GapThresholdFrac)

	mask := segment.Binarize(img, params)
	defer mask.Close()

	contourBoxes := segment.SplitByContours(mask, params)
	projectionBoxes := segment.SplitByProjection(mask, params)

	fmt.Printf("\nContour method: %d boxes\n", len(contourBoxes))
	for i, box := range contourBoxes {
		fmt.Printf("  %2d: %3d,%3d %3dx%3d\n", i+1, box.X, box.Y, box.Width, box.Height)
	}
	fmt.Printf("\nProjection method: %d boxes\n", len(projectionBoxes))
	for i, box := range projectionBoxes {
		fmt.Printf("  %2d: %3d,%3d %3dx%3d\n", i+1, box.X, box.Y, box.Width, box.Height)
	}

	selector := segment.NewSelector(params)
	result := selector.Split(img)
	defer result.Close()

	fmt.Printf("\nSelector picked %s: %d symbols (confidence %.2f)\n",
		result.Method, len(result.Symbols), result.Confidence)
	for i, sym := range result.Symbols {
		fmt.Printf("  %2d: %3d,%3d %3dx%3d\n",
			i+1, sym.Box.X, sym.Box.Y, sym.Box.Width, sym.Box.Height)
	}

	if *outPath != "" {
		annotated := gocv.NewMat()
		defer annotated.Close()
		if img.Channels() == 1 {
			gocv.CvtColor(img, &annotated, gocv.ColorGrayToBGR)
		} else {
			img.CopyTo(&annotated)
		}
		green := color.RGBA{G: 255, A: 255}
		for _, sym := range result.Symbols {
			gocv.Rectangle(&annotated,
				image.Rect(sym.Box.X, sym.Box.Y, sym.Box.Right(), sym.Box.Bottom()),
				green, 1)
		}
		if err := imgio.SaveMat(annotated, *outPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write annotated image: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Annotated copy written to %s\n", *outPath)
	}
}
