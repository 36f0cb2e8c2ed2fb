// Package panels provides the main window's workflow panels.
package panels

import (
	"fmt"
	"path/filepath"
	"time"

	"poker-templater/internal/app"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// CapturePanel drives the screenshot flow: grab the client window once
// or on a timer.
type CapturePanel struct {
	state  *app.State
	widget fyne.CanvasObject

	status    *widget.Label
	countLbl  *widget.Label
	startBtn  *widget.Button
	stopBtn   *widget.Button
	stop      chan struct{}
	captured  int
}

// NewCapturePanel creates the capture panel.
func NewCapturePanel(state *app.State) *CapturePanel {
	cp := &CapturePanel{
		state:    state,
		status:   widget.NewLabel("Ready"),
		countLbl: widget.NewLabel("Screenshots this run: 0"),
	}
	cp.status.Wrapping = fyne.TextWrapWord

	onceBtn := widget.NewButton("Capture Once", cp.onCaptureOnce)
	cp.startBtn = widget.NewButton("Start Auto Capture", cp.onStart)
	cp.stopBtn = widget.NewButton("Stop", cp.onStop)
	cp.stopBtn.Disable()

	cfg := state.Config
	info := widget.NewLabel(fmt.Sprintf(
		"Window: %q (%dx%d)\nInterval: %d ms\nOutput: %s",
		cfg.WindowTitle, cfg.GameWindowWidth, cfg.GameWindowHeight,
		cfg.ScreenshotIntervalMS, cfg.ScreenshotsDir))
	info.Wrapping = fyne.TextWrapWord

	cp.widget = container.NewVBox(
		widget.NewCard("Client Window", "", info),
		onceBtn,
		container.NewGridWithColumns(2, cp.startBtn, cp.stopBtn),
		cp.countLbl,
		cp.status,
	)
	return cp
}

// Widget returns the panel content for embedding.
func (cp *CapturePanel) Widget() fyne.CanvasObject {
	return cp.widget
}

func (cp *CapturePanel) onCaptureOnce() {
	if cp.state.Capturer == nil {
		cp.status.SetText("Screen capture is not available")
		return
	}
	path, err := cp.state.Capturer.CaptureOnce()
	if err != nil {
		cp.status.SetText("Capture failed: " + err.Error())
		return
	}
	cp.captured++
	cp.countLbl.SetText(fmt.Sprintf("Screenshots this run: %d", cp.captured))
	cp.status.SetText("Saved " + filepath.Base(path))
	cp.state.Emit(app.EventScreenshotSaved, path)
}

func (cp *CapturePanel) onStart() {
	if cp.state.Capturer == nil {
		cp.status.SetText("Screen capture is not available")
		return
	}
	interval := time.Duration(cp.state.Config.ScreenshotIntervalMS) * time.Millisecond
	cp.stop = make(chan struct{})
	cp.startBtn.Disable()
	cp.stopBtn.Enable()
	cp.status.SetText(fmt.Sprintf("Auto capture every %s", interval))

	go cp.state.Capturer.Run(interval, cp.stop)
}

func (cp *CapturePanel) onStop() {
	if cp.stop != nil {
		close(cp.stop)
		cp.stop = nil
	}
	cp.startBtn.Enable()
	cp.stopBtn.Disable()
	cp.status.SetText("Auto capture stopped")
}
