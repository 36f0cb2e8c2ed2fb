// Package capture grabs screenshots of the poker client window and
// files them for the cutting and labeling flows.
package capture

import (
	"fmt"
	"image"
	"log"
	"path/filepath"
	"time"

	"poker-templater/internal/imgio"
	"poker-templater/pkg/geometry"

	"github.com/vova616/screenshot"
)

// Locator finds the client window on screen. Platform window-system
// specifics live behind this interface; the tool only needs the
// window's screen rectangle.
type Locator interface {
	// Find locates the client window by title and returns its screen
	// rectangle, or an error if no such window is visible.
	Find(title string) (geometry.RectInt, error)
}

// Grabber captures a screen rectangle as an image.
type Grabber interface {
	Grab(rect geometry.RectInt) (image.Image, error)
}

// ScreenGrabber captures directly from the screen.
type ScreenGrabber struct{}

// Grab captures the given screen rectangle.
func (ScreenGrabber) Grab(rect geometry.RectInt) (image.Image, error) {
	if rect.Empty() {
		return nil, fmt.Errorf("capture rect %+v has no area", rect)
	}
	img, err := screenshot.CaptureRect(image.Rect(rect.X, rect.Y, rect.Right(), rect.Bottom()))
	if err != nil {
		return nil, fmt.Errorf("screen capture failed: %w", err)
	}
	return img, nil
}

// FixedLocator returns a preconfigured rectangle regardless of title.
// Used when the window position is pinned in config rather than
// discovered, and as the cross-platform fallback.
type FixedLocator struct {
	Rect geometry.RectInt
}

// Find returns the configured rectangle.
func (l FixedLocator) Find(string) (geometry.RectInt, error) {
	if l.Rect.Empty() {
		return geometry.RectInt{}, fmt.Errorf("no window rectangle configured")
	}
	return l.Rect, nil
}

// Capturer periodically grabs the client window and writes timestamped
// PNGs into the screenshots directory.
type Capturer struct {
	locator Locator
	grabber Grabber
	title   string
	dir     string
	now     func() time.Time
}

// NewCapturer creates a capturer writing into dir.
func NewCapturer(locator Locator, grabber Grabber, title, dir string) *Capturer {
	return &Capturer{
		locator: locator,
		grabber: grabber,
		title:   title,
		dir:     dir,
		now:     time.Now,
	}
}

// CaptureOnce grabs the client window once and saves it. Returns the
// saved path.
func (c *Capturer) CaptureOnce() (string, error) {
	rect, err := c.locator.Find(c.title)
	if err != nil {
		return "", fmt.Errorf("cannot locate window %q: %w", c.title, err)
	}

	img, err := c.grabber.Grab(rect)
	if err != nil {
		return "", err
	}

	name := "screenshot_" + c.now().Format("20060102_150405") + ".png"
	path := filepath.Join(c.dir, name)
	if err := imgio.SavePNG(img, path); err != nil {
		return "", err
	}
	return path, nil
}

// Run captures every interval until stop is closed. Capture errors are
// logged and do not stop the loop; the window may briefly disappear
// while the client redraws.
func (c *Capturer) Run(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			path, err := c.CaptureOnce()
			if err != nil {
				log.Printf("capture: %v", err)
				continue
			}
			log.Printf("capture: saved %s", path)
		}
	}
}
