package panels

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"poker-templater/internal/app"
	"poker-templater/internal/imgio"
	"poker-templater/internal/session"
	"poker-templater/internal/template"
	"poker-templater/ui/canvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LabelPanel drives the symbol labeling flow: open a region crop, run
// or hand-place segmentation, nudge the boxes, enter the ground truth
// text, and save templates.
type LabelPanel struct {
	state  *app.State
	view   *canvas.CropView
	widget fyne.CanvasObject

	regionSelect *widget.Select
	cropList     *widget.List
	crops        []string

	textEntry   *widget.Entry
	symbolLbl   *widget.Label
	statsLbl    *widget.Label
	status      *widget.Label
	bulkWidth   *widget.Entry
	bulkHeight  *widget.Entry

	selected int
}

// NewLabelPanel creates the labeling panel.
func NewLabelPanel(state *app.State, view *canvas.CropView) *LabelPanel {
	lp := &LabelPanel{
		state:    state,
		view:     view,
		selected: -1,
		status:   widget.NewLabel("Open a crop to start"),
	}
	lp.status.Wrapping = fyne.TextWrapWord

	view.OnBoxTapped = lp.onBoxTapped

	lp.regionSelect = widget.NewSelect(lp.regionIDs(), func(string) {
		lp.refreshCrops()
	})

	lp.cropList = widget.NewList(
		func() int { return len(lp.crops) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(filepath.Base(lp.crops[i]))
		},
	)
	lp.cropList.OnSelected = func(i widget.ListItemID) {
		lp.openCrop(lp.crops[i])
	}

	lp.textEntry = widget.NewEntry()
	lp.textEntry.SetPlaceHolder("Expected text, e.g. 1.5 BB")
	lp.textEntry.OnChanged = func(text string) {
		if sess := lp.state.Session; sess != nil {
			sess.SetText(text)
		}
	}

	lp.symbolLbl = widget.NewLabel("No symbol selected")
	lp.statsLbl = widget.NewLabel("")
	lp.statsLbl.Wrapping = fyne.TextWrapWord
	lp.bulkWidth = widget.NewEntry()
	lp.bulkWidth.SetText("8")
	lp.bulkHeight = widget.NewEntry()
	lp.bulkHeight.SetText("12")

	detectBtn := widget.NewButton("Detect Symbols", lp.onDetect)
	manualBtn := widget.NewButton("Place Manually", lp.onPlaceManual)
	verifyBtn := widget.NewButton("Verify", lp.onVerify)
	saveBtn := widget.NewButton("Save Templates", lp.onSave)
	cancelBtn := widget.NewButton("Cancel", lp.onCancel)

	nudgePos := container.NewGridWithColumns(4,
		widget.NewButton("←", func() { lp.nudge(-1, 0, 0, 0) }),
		widget.NewButton("→", func() { lp.nudge(1, 0, 0, 0) }),
		widget.NewButton("↑", func() { lp.nudge(0, -1, 0, 0) }),
		widget.NewButton("↓", func() { lp.nudge(0, 1, 0, 0) }),
	)
	nudgeSize := container.NewGridWithColumns(4,
		widget.NewButton("W-", func() { lp.nudge(0, 0, -1, 0) }),
		widget.NewButton("W+", func() { lp.nudge(0, 0, 1, 0) }),
		widget.NewButton("H-", func() { lp.nudge(0, 0, 0, -1) }),
		widget.NewButton("H+", func() { lp.nudge(0, 0, 0, 1) }),
	)

	bulkBtn := widget.NewButton("Apply Size to All", lp.onBulkApply)
	bulkRow := container.NewGridWithColumns(3, lp.bulkWidth, lp.bulkHeight, bulkBtn)

	zoomRow := container.NewGridWithColumns(2,
		widget.NewButton("Zoom -", view.ZoomOut),
		widget.NewButton("Zoom +", view.ZoomIn),
	)

	controls := container.NewVBox(
		widget.NewLabel("Region:"),
		lp.regionSelect,
		container.NewGridWithColumns(2, detectBtn, manualBtn),
		widget.NewSeparator(),
		lp.symbolLbl,
		widget.NewLabel("Position:"),
		nudgePos,
		widget.NewLabel("Size:"),
		nudgeSize,
		widget.NewLabel("Bulk size (w, h):"),
		bulkRow,
		widget.NewSeparator(),
		widget.NewLabel("Text:"),
		lp.textEntry,
		container.NewGridWithColumns(3, verifyBtn, saveBtn, cancelBtn),
		zoomRow,
		lp.status,
		widget.NewSeparator(),
		lp.statsLbl,
	)

	lp.widget = container.NewHSplit(
		container.NewBorder(nil, nil, nil, nil, lp.cropList),
		container.NewBorder(nil, nil, nil, controls, container.NewScroll(view)),
	)

	state.On(app.EventRegionsCut, func(interface{}) {
		lp.regionSelect.Options = lp.regionIDs()
		lp.regionSelect.Refresh()
		lp.refreshCrops()
	})

	lp.refreshStats()
	return lp
}

// Widget returns the panel content for embedding.
func (lp *LabelPanel) Widget() fyne.CanvasObject {
	return lp.widget
}

func (lp *LabelPanel) regionIDs() []string {
	if lp.state.Registry == nil {
		return nil
	}
	return lp.state.Registry.IDs()
}

func (lp *LabelPanel) refreshCrops() {
	id := lp.regionSelect.Selected
	if id == "" {
		lp.crops = nil
	} else {
		crops, err := lp.state.Cutter.CropsFor(id)
		if err != nil {
			lp.status.SetText("Cannot list crops: " + err.Error())
			return
		}
		lp.crops = crops
	}
	lp.cropList.Refresh()
}

func (lp *LabelPanel) openCrop(path string) {
	if err := lp.state.OpenCrop(path); err != nil {
		lp.status.SetText("Open failed: " + err.Error())
		return
	}

	img, err := imgio.Decode(path)
	if err != nil {
		lp.status.SetText("Display failed: " + err.Error())
		return
	}
	lp.view.SetImage(img)
	lp.selected = -1
	lp.symbolLbl.SetText("No symbol selected")
	lp.textEntry.SetText("")
	lp.status.SetText("Opened " + filepath.Base(path))
}

func (lp *LabelPanel) onDetect() {
	sess := lp.state.Session
	if sess == nil {
		lp.status.SetText("Open a crop first")
		return
	}

	if err := sess.Detect(); err != nil {
		if errors.Is(err, session.ErrNoSymbols) {
			lp.status.SetText("No symbols found; enter text and place manually")
		} else {
			lp.status.SetText("Detect failed: " + err.Error())
		}
		lp.syncBoxes()
		return
	}

	lp.status.SetText(fmt.Sprintf("%d symbols via %s (confidence %.2f)",
		len(sess.Boxes()), sess.Method(), sess.Confidence()))
	lp.selected = -1
	lp.syncBoxes()
	lp.state.Emit(app.EventSymbolsDetected, len(sess.Boxes()))
}

func (lp *LabelPanel) onPlaceManual() {
	sess := lp.state.Session
	if sess == nil {
		lp.status.SetText("Open a crop first")
		return
	}

	if err := sess.PlaceManual(lp.textEntry.Text, lp.state.Config.ManualLayout); err != nil {
		lp.status.SetText(err.Error())
		return
	}
	lp.status.SetText(fmt.Sprintf("%d boxes placed, adjust each one", len(sess.Boxes())))
	lp.selected = 0
	lp.updateSymbolLabel()
	lp.syncBoxes()
}

func (lp *LabelPanel) onBoxTapped(i int) {
	lp.selected = i
	lp.updateSymbolLabel()
	lp.syncBoxes()
}

func (lp *LabelPanel) updateSymbolLabel() {
	sess := lp.state.Session
	if sess == nil || lp.selected < 0 || lp.selected >= len(sess.Boxes()) {
		lp.symbolLbl.SetText("No symbol selected")
		return
	}
	box := sess.Boxes()[lp.selected]
	lp.symbolLbl.SetText(fmt.Sprintf("Symbol %d: %d,%d %dx%d",
		lp.selected+1, box.X, box.Y, box.Width, box.Height))
}

func (lp *LabelPanel) nudge(dx, dy, dw, dh int) {
	sess := lp.state.Session
	if sess == nil || lp.selected < 0 {
		lp.status.SetText("Tap a box to select it first")
		return
	}

	boxes := sess.Boxes()
	if lp.selected >= len(boxes) {
		return
	}
	box := boxes[lp.selected]
	box.X += dx
	box.Y += dy
	box.Width += dw
	box.Height += dh
	if err := sess.SetBox(lp.selected, box); err != nil {
		lp.status.SetText(err.Error())
		return
	}
	lp.updateSymbolLabel()
	lp.syncBoxes()
	lp.state.Emit(app.EventBoxesChanged, lp.selected)
}

func (lp *LabelPanel) onBulkApply() {
	sess := lp.state.Session
	if sess == nil {
		return
	}
	w, errW := strconv.Atoi(lp.bulkWidth.Text)
	h, errH := strconv.Atoi(lp.bulkHeight.Text)
	if errW != nil || errH != nil {
		lp.status.SetText("Bulk size must be whole numbers")
		return
	}
	sess.BulkApplySize(w, h)
	lp.updateSymbolLabel()
	lp.syncBoxes()
	lp.state.Emit(app.EventBoxesChanged, -1)
}

func (lp *LabelPanel) onVerify() {
	sess := lp.state.Session
	if sess == nil {
		lp.status.SetText("Open a crop first")
		return
	}

	if err := sess.Verify(); err != nil {
		var mismatch *session.LengthMismatchError
		if errors.As(err, &mismatch) {
			lp.status.SetText(fmt.Sprintf(
				"Text has %d characters but there are %d boxes; fix one of them",
				mismatch.TextLen, mismatch.BoxLen))
		} else {
			lp.status.SetText("Verify failed: " + err.Error())
		}
		return
	}
	lp.status.SetText("Verified, ready to save")
}

func (lp *LabelPanel) onSave() {
	sess := lp.state.Session
	if sess == nil {
		lp.status.SetText("Open a crop first")
		return
	}

	report, err := sess.Save()
	if err != nil {
		lp.status.SetText("Save refused: " + err.Error())
		return
	}

	lp.status.SetText(fmt.Sprintf("%d templates saved, %d failed", report.Saved, report.Failed))
	lp.selected = -1
	lp.symbolLbl.SetText("No symbol selected")
	lp.view.SetBoxes(nil, -1)
	lp.refreshStats()
	lp.state.Emit(app.EventTemplatesSaved, report)
}

func (lp *LabelPanel) onCancel() {
	if sess := lp.state.Session; sess != nil {
		sess.Cancel()
	}
	lp.selected = -1
	lp.symbolLbl.SetText("No symbol selected")
	lp.view.SetBoxes(nil, -1)
	lp.status.SetText("Discarded")
}

func (lp *LabelPanel) syncBoxes() {
	sess := lp.state.Session
	if sess == nil {
		lp.view.SetBoxes(nil, -1)
		return
	}
	lp.view.SetBoxes(sess.Boxes(), lp.selected)
}

func (lp *LabelPanel) refreshStats() {
	stats := lp.state.Store.Statistics()
	text := "Template counts:\n"
	for _, category := range template.Categories() {
		text += fmt.Sprintf("  %s: %d\n", category, stats[category])
	}
	lp.statsLbl.SetText(text)
}
