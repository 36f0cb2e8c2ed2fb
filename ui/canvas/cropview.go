// Package canvas provides the zoomed crop view with the symbol box
// overlay.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"poker-templater/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

const (
	// Region crops are tiny (a stack readout is ~15px tall); render
	// them magnified so boxes can be judged pixel by pixel.
	defaultZoom = 6
	minZoom     = 1
	maxZoom     = 16
)

var (
	boxColor      = color.RGBA{R: 0, G: 200, B: 0, A: 255}
	selectedColor = color.RGBA{R: 230, G: 40, B: 40, A: 255}
)

// CropView renders a region crop magnified, with the symbol boxes drawn
// on top. Tapping inside a box selects it.
type CropView struct {
	widget.BaseWidget

	mu       sync.Mutex
	img      image.Image
	boxes    []geometry.RectInt
	selected int
	zoom     int

	display *fynecanvas.Image

	// OnBoxTapped is called with the index of the tapped box, or -1
	// for a tap outside every box.
	OnBoxTapped func(index int)
}

// NewCropView creates an empty crop view.
func NewCropView() *CropView {
	cv := &CropView{
		selected: -1,
		zoom:     defaultZoom,
		display:  fynecanvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1))),
	}
	cv.display.FillMode = fynecanvas.ImageFillOriginal
	cv.display.ScaleMode = fynecanvas.ImageScalePixels
	cv.ExtendBaseWidget(cv)
	return cv
}

// CreateRenderer implements fyne.Widget.
func (cv *CropView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(cv.display)
}

// SetImage replaces the displayed crop and clears the overlay.
func (cv *CropView) SetImage(img image.Image) {
	cv.mu.Lock()
	cv.img = img
	cv.boxes = nil
	cv.selected = -1
	cv.mu.Unlock()
	cv.render()
}

// SetBoxes replaces the overlay boxes and the selected index.
func (cv *CropView) SetBoxes(boxes []geometry.RectInt, selected int) {
	cv.mu.Lock()
	cv.boxes = boxes
	cv.selected = selected
	cv.mu.Unlock()
	cv.render()
}

// Clear removes the image and the overlay.
func (cv *CropView) Clear() {
	cv.mu.Lock()
	cv.img = nil
	cv.boxes = nil
	cv.selected = -1
	cv.mu.Unlock()
	cv.render()
}

// ZoomIn increases the magnification.
func (cv *CropView) ZoomIn() {
	cv.mu.Lock()
	if cv.zoom < maxZoom {
		cv.zoom++
	}
	cv.mu.Unlock()
	cv.render()
}

// ZoomOut decreases the magnification.
func (cv *CropView) ZoomOut() {
	cv.mu.Lock()
	if cv.zoom > minZoom {
		cv.zoom--
	}
	cv.mu.Unlock()
	cv.render()
}

// Tapped implements fyne.Tappable: map the tap back to image
// coordinates and report which box it landed in.
func (cv *CropView) Tapped(ev *fyne.PointEvent) {
	cv.mu.Lock()
	zoom := cv.zoom
	boxes := cv.boxes
	cb := cv.OnBoxTapped
	cv.mu.Unlock()

	if cb == nil {
		return
	}

	x := int(ev.Position.X) / zoom
	y := int(ev.Position.Y) / zoom
	for i, box := range boxes {
		if box.Contains(geometry.PointInt{X: x, Y: y}) {
			cb(i)
			return
		}
	}
	cb(-1)
}

// render recomposes the magnified image with box outlines and pushes it
// to the canvas.
func (cv *CropView) render() {
	cv.mu.Lock()
	src := cv.img
	boxes := cv.boxes
	selected := cv.selected
	zoom := cv.zoom
	cv.mu.Unlock()

	if src == nil {
		cv.display.Image = image.NewRGBA(image.Rect(0, 0, 1, 1))
		cv.display.SetMinSize(fyne.NewSize(1, 1))
		cv.display.Refresh()
		return
	}

	scaled := scaleNearest(src, zoom)
	for i, box := range boxes {
		c := boxColor
		if i == selected {
			c = selectedColor
		}
		drawRect(scaled, box.X*zoom, box.Y*zoom, box.Width*zoom, box.Height*zoom, c)
	}

	cv.display.Image = scaled
	bounds := scaled.Bounds()
	cv.display.SetMinSize(fyne.NewSize(float32(bounds.Dx()), float32(bounds.Dy())))
	cv.display.Refresh()
}

// scaleNearest magnifies src by an integer factor without smoothing.
func scaleNearest(src image.Image, zoom int) *image.RGBA {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w*zoom, h*zoom))
	if zoom == 1 {
		draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
		return dst
	}
	for y := 0; y < h*zoom; y++ {
		for x := 0; x < w*zoom; x++ {
			dst.Set(x, y, src.At(bounds.Min.X+x/zoom, bounds.Min.Y+y/zoom))
		}
	}
	return dst
}

// drawRect outlines a rectangle, clipped to the image.
func drawRect(img *image.RGBA, x, y, w, h int, c color.RGBA) {
	bounds := img.Bounds()
	set := func(px, py int) {
		if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
			img.SetRGBA(px, py, c)
		}
	}
	for px := x; px < x+w; px++ {
		set(px, y)
		set(px, y+h-1)
	}
	for py := y; py < y+h; py++ {
		set(x, py)
		set(x+w-1, py)
	}
}
