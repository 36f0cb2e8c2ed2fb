package capture

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"poker-templater/pkg/geometry"
)

type stubGrabber struct {
	rects []geometry.RectInt
	err   error
}

func (g *stubGrabber) Grab(rect geometry.RectInt) (image.Image, error) {
	g.rects = append(g.rects, rect)
	if g.err != nil {
		return nil, g.err
	}
	return image.NewRGBA(image.Rect(0, 0, rect.Width, rect.Height)), nil
}

func TestCaptureOnce(t *testing.T) {
	dir := t.TempDir()
	grabber := &stubGrabber{}
	rect := geometry.NewRectInt(100, 50, 631, 958)

	c := NewCapturer(FixedLocator{Rect: rect}, grabber, "TON Poker", dir)
	c.now = func() time.Time {
		return time.Date(2025, 1, 17, 9, 30, 0, 0, time.UTC)
	}

	path, err := c.CaptureOnce()
	if err != nil {
		t.Fatalf("CaptureOnce: %v", err)
	}
	if filepath.Base(path) != "screenshot_20250117_093000.png" {
		t.Errorf("screenshot name = %s", filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("screenshot file not written: %v", err)
	}
	if len(grabber.rects) != 1 || grabber.rects[0] != rect {
		t.Errorf("grabbed rects = %+v, want the window rect once", grabber.rects)
	}
}

func TestCaptureOnceWithoutWindow(t *testing.T) {
	c := NewCapturer(FixedLocator{}, &stubGrabber{}, "TON Poker", t.TempDir())
	if _, err := c.CaptureOnce(); err == nil {
		t.Error("CaptureOnce succeeded without a window rectangle")
	}
}

func TestCaptureOnceGrabFailure(t *testing.T) {
	grabber := &stubGrabber{err: errors.New("display gone")}
	c := NewCapturer(FixedLocator{Rect: geometry.NewRectInt(0, 0, 10, 10)}, grabber, "x", t.TempDir())
	if _, err := c.CaptureOnce(); err == nil {
		t.Error("CaptureOnce swallowed a grab failure")
	}
}

func TestRunStops(t *testing.T) {
	grabber := &stubGrabber{}
	c := NewCapturer(FixedLocator{Rect: geometry.NewRectInt(0, 0, 4, 4)}, grabber, "x", t.TempDir())

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		c.Run(5*time.Millisecond, stop)
		close(done)
	}()

	time.Sleep(25 * time.Millisecond)
	close(stop)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
	if len(grabber.rects) == 0 {
		t.Error("Run never captured")
	}
}
