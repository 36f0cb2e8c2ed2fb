// Package session holds the state of one interactive labeling session:
// detected or hand-placed symbol boxes, the ground-truth text, and the
// save lifecycle. It is headless; the UI reads boxes and writes edits
// through plain calls and triggers its own re-render.
package session

import (
	"errors"
	"fmt"
	"image"
	"log"

	"poker-templater/internal/segment"
	"poker-templater/internal/template"
	"poker-templater/pkg/geometry"

	"gocv.io/x/gocv"
)

// State tracks the session lifecycle:
// Idle → Detected/Placed → (editing) → Verified → back to Idle on
// save or cancel.
type State int

const (
	StateIdle State = iota
	StateDetected
	StateVerified
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDetected:
		return "detected"
	case StateVerified:
		return "verified"
	default:
		return "unknown"
	}
}

// Mode selects how symbol boxes come into being.
type Mode int

const (
	// ModeAssisted starts from the segmentation selector's output.
	ModeAssisted Mode = iota
	// ModeManual bypasses detection; the human places one box per
	// expected character.
	ModeManual
)

var (
	// ErrNoSymbols means both segmenters came back empty. Recoverable
	// by switching to manual placement.
	ErrNoSymbols = errors.New("no symbols found")

	// ErrNotVerified means Save was called before a successful Verify.
	ErrNotVerified = errors.New("session not verified")
)

// LengthMismatchError blocks saving when the entered text does not
// line up one-to-one with the symbol boxes. Never auto-resolved:
// silent misalignment would corrupt the template corpus.
type LengthMismatchError struct {
	TextLen int
	BoxLen  int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("text length %d does not match %d detected symbols", e.TextLen, e.BoxLen)
}

// ManualLayout controls how manual-mode boxes are synthesized.
type ManualLayout struct {
	BoxWidth  int `json:"box_width"`
	BoxHeight int `json:"box_height"`
	Spacing   int `json:"spacing"`
	StartX    int `json:"start_x"`
	StartY    int `json:"start_y"`
}

// DefaultManualLayout returns a layout sized for small client fonts.
func DefaultManualLayout() ManualLayout {
	return ManualLayout{BoxWidth: 8, BoxHeight: 12, Spacing: 2, StartX: 0, StartY: 0}
}

// SaveReport summarizes a save action. Partial saves are allowed;
// Saved and Failed carry the accurate per-symbol outcome.
type SaveReport struct {
	Saved  int
	Failed int
	Paths  []string
}

// Session is one labeling session over one region image. The image is
// owned by the calling flow for the session's lifetime.
type Session struct {
	img      gocv.Mat
	selector *segment.Selector
	store    *template.Store

	state      State
	mode       Mode
	boxes      []geometry.RectInt
	text       []rune
	method     segment.Method
	confidence float64
}

// New creates an idle session over a region image.
func New(img gocv.Mat, selector *segment.Selector, store *template.Store) *Session {
	return &Session{
		img:      img,
		selector: selector,
		store:    store,
		state:    StateIdle,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Mode returns how the current boxes came into being.
func (s *Session) Mode() Mode {
	return s.mode
}

// Method returns which segmenter produced the boxes in assisted mode.
func (s *Session) Method() segment.Method {
	return s.method
}

// Confidence returns the advisory segmentation confidence score.
func (s *Session) Confidence() float64 {
	return s.confidence
}

// Detect runs the segmentation selector and enters assisted mode.
// Returns ErrNoSymbols when both segmenters find nothing; the caller
// can then fall back to PlaceManual.
func (s *Session) Detect() error {
	result := s.selector.Split(s.img)
	boxes := result.Boxes()
	method := result.Method
	confidence := result.Confidence
	result.Close()

	if len(boxes) == 0 {
		s.reset()
		return ErrNoSymbols
	}

	s.mode = ModeAssisted
	s.boxes = boxes
	s.method = method
	s.confidence = confidence
	s.text = nil
	s.state = StateDetected

	log.Printf("session: detected %d symbols via %s (confidence %.2f)",
		len(boxes), method, confidence)
	return nil
}

// PlaceManual enters manual mode: one default-sized box per character
// of text, laid out in a row with fixed spacing. The human then drags
// and resizes each box independently.
func (s *Session) PlaceManual(text string, layout ManualLayout) error {
	runes := []rune(text)
	if len(runes) == 0 {
		return errors.New("enter the expected text before placing boxes")
	}

	boxes := make([]geometry.RectInt, len(runes))
	x := layout.StartX
	for i := range runes {
		boxes[i] = geometry.NewRectInt(x, layout.StartY, layout.BoxWidth, layout.BoxHeight)
		x += layout.BoxWidth + layout.Spacing
	}

	s.mode = ModeManual
	s.boxes = boxes
	s.text = runes
	s.method = 0
	s.confidence = 0
	s.state = StateDetected
	return nil
}

// Boxes returns a copy of the current symbol boxes in order.
func (s *Session) Boxes() []geometry.RectInt {
	boxes := make([]geometry.RectInt, len(s.boxes))
	copy(boxes, s.boxes)
	return boxes
}

// SetBox replaces the box at index i. Edits are applied by index, not
// by shifting the sequence. Degenerate sizes are coerced to 1px rather
// than rejected; out-of-bounds positions are allowed mid-edit and
// clamped at save time.
func (s *Session) SetBox(i int, box geometry.RectInt) error {
	if i < 0 || i >= len(s.boxes) {
		return fmt.Errorf("symbol index %d out of range", i)
	}
	if box.Width < 1 {
		box.Width = 1
	}
	if box.Height < 1 {
		box.Height = 1
	}
	s.boxes[i] = box

	// Any edit invalidates a previous verification.
	if s.state == StateVerified {
		s.state = StateDetected
	}
	return nil
}

// BulkApplySize resets every box to the given width and height while
// preserving each box's position.
func (s *Session) BulkApplySize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	for i := range s.boxes {
		s.boxes[i].Width = width
		s.boxes[i].Height = height
	}
	if s.state == StateVerified {
		s.state = StateDetected
	}
}

// SetText records the human-entered ground truth string.
func (s *Session) SetText(text string) {
	s.text = []rune(text)
	if s.state == StateVerified {
		s.state = StateDetected
	}
}

// Text returns the entered ground truth string.
func (s *Session) Text() string {
	return string(s.text)
}

// Verify checks that the entered text lines up one-to-one with the
// symbol boxes. On mismatch it returns a LengthMismatchError and the
// save path stays blocked; the human re-enters text or adjusts boxes.
func (s *Session) Verify() error {
	if s.state == StateIdle {
		return ErrNoSymbols
	}
	if len(s.text) != len(s.boxes) {
		return &LengthMismatchError{TextLen: len(s.text), BoxLen: len(s.boxes)}
	}
	s.state = StateVerified
	return nil
}

// Save crops each symbol fresh from the original region image using
// the possibly-edited boxes, clamped to the image bounds, and persists
// one template per character. A failed write fails that one symbol
// only; the report carries accurate counts. On success the session
// returns to Idle.
func (s *Session) Save() (SaveReport, error) {
	if s.state != StateVerified {
		if len(s.text) != len(s.boxes) {
			return SaveReport{}, &LengthMismatchError{TextLen: len(s.text), BoxLen: len(s.boxes)}
		}
		return SaveReport{}, ErrNotVerified
	}

	var report SaveReport
	for i, ch := range s.text {
		clamped := s.boxes[i].ClampTo(s.img.Cols(), s.img.Rows())
		if clamped.Empty() {
			report.Failed++
			log.Printf("session: symbol %d (%q) box %+v lies outside the image, skipped",
				i+1, ch, s.boxes[i])
			continue
		}

		roi := s.img.Region(image.Rect(clamped.X, clamped.Y, clamped.Right(), clamped.Bottom()))
		crop := roi.Clone()
		roi.Close()

		path, err := s.store.SaveChar(ch, crop)
		crop.Close()
		if err != nil {
			report.Failed++
			log.Printf("session: saving symbol %d (%q) failed: %v", i+1, ch, err)
			continue
		}
		report.Saved++
		report.Paths = append(report.Paths, path)
	}

	s.reset()
	return report, nil
}

// Cancel discards pending boxes and edits without persisting anything.
func (s *Session) Cancel() {
	s.reset()
}

func (s *Session) reset() {
	s.state = StateIdle
	s.boxes = nil
	s.text = nil
	s.method = 0
	s.confidence = 0
}
