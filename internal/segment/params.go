// Package segment splits a cropped text-region image into ordered
// per-character sub-images with tight bounding boxes.
package segment

// BinarizePolicy selects how a region image is turned into an ink mask.
type BinarizePolicy int

const (
	// BinarizeOtsu applies a global Otsu threshold with inversion, so
	// character ink ends up white. Best for high-contrast renders.
	BinarizeOtsu BinarizePolicy = iota

	// BinarizeAdaptive applies a small Gaussian blur followed by a mean
	// adaptive threshold with inversion. Best for uneven lighting and
	// anti-aliasing halos.
	BinarizeAdaptive
)

func (p BinarizePolicy) String() string {
	switch p {
	case BinarizeOtsu:
		return "otsu"
	case BinarizeAdaptive:
		return "adaptive"
	default:
		return "unknown"
	}
}

// Params holds tunable segmentation parameters.
// Minimum sizes varied across historical profiles (1x2 permissive vs
// 3x5 strict); they are injected here rather than hidden as constants.
type Params struct {
	// Minimum accepted symbol size in pixels. The permissive defaults
	// keep thin glyphs like "." and "i".
	MinWidth  int `json:"min_width"`
	MinHeight int `json:"min_height"`

	// Binarization policy and adaptive-threshold tuning.
	Policy        BinarizePolicy `json:"policy"`
	BlurKernel    int            `json:"blur_kernel"`    // Gaussian kernel size (odd)
	AdaptiveBlock int            `json:"adaptive_block"` // neighborhood window (odd)
	AdaptiveC     float32        `json:"adaptive_c"`     // constant offset from local mean

	// Projection segmenter: a column is a gap when its ink count is at
	// or below GapThresholdFrac of the image height; MinGapRun is how
	// many consecutive gap columns close a symbol.
	GapThresholdFrac float64 `json:"gap_threshold_frac"`
	MinGapRun        int     `json:"min_gap_run"`

	// Contour segmenter: fragments within MaxMergeGap pixels
	// horizontally that overlap vertically are merged into one symbol.
	MaxMergeGap int `json:"max_merge_gap"`

	// UseProjection enables the projection segmenter alongside contours.
	UseProjection bool `json:"use_projection"`
}

// DefaultParams returns the permissive profile.
func DefaultParams() Params {
	return Params{
		MinWidth:         1,
		MinHeight:        2,
		Policy:           BinarizeOtsu,
		BlurKernel:       3,
		AdaptiveBlock:    11,
		AdaptiveC:        2,
		GapThresholdFrac: 0.05,
		MinGapRun:        1,
		MaxMergeGap:      1,
		UseProjection:    true,
	}
}

// StrictParams returns the strict profile used for larger, cleaner
// fonts where 1-pixel detections are always noise.
func StrictParams() Params {
	p := DefaultParams()
	p.MinWidth = 3
	p.MinHeight = 5
	p.MaxMergeGap = 3
	return p
}
