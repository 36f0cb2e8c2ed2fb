package panels

import (
	"fmt"

	"poker-templater/internal/app"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// CutPanel drives the region-cutting flow: reload regions.json and run
// the batch cut over every screenshot.
type CutPanel struct {
	state  *app.State
	widget fyne.CanvasObject

	regionList *widget.List
	regionIDs  []string
	status     *widget.Label
}

// NewCutPanel creates the cut panel.
func NewCutPanel(state *app.State) *CutPanel {
	cp := &CutPanel{
		state:  state,
		status: widget.NewLabel("Ready"),
	}
	cp.status.Wrapping = fyne.TextWrapWord
	cp.refreshRegionIDs()

	cp.regionList = widget.NewList(
		func() int { return len(cp.regionIDs) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			id := cp.regionIDs[i]
			region, _ := cp.state.Registry.Get(id)
			obj.(*widget.Label).SetText(fmt.Sprintf("%s  [%s]  %dx%d",
				id, region.Type, region.Width, region.Height))
		},
	)

	reloadBtn := widget.NewButton("Reload Regions", cp.onReload)
	cutBtn := widget.NewButton("Cut All Regions", cp.onCutAll)

	cp.widget = container.NewBorder(
		container.NewVBox(
			widget.NewLabel("Regions from "+state.Config.RegionsPath),
			container.NewGridWithColumns(2, reloadBtn, cutBtn),
		),
		cp.status,
		nil, nil,
		cp.regionList,
	)
	return cp
}

// Widget returns the panel content for embedding.
func (cp *CutPanel) Widget() fyne.CanvasObject {
	return cp.widget
}

func (cp *CutPanel) refreshRegionIDs() {
	if cp.state.Registry == nil {
		cp.regionIDs = nil
		return
	}
	cp.regionIDs = cp.state.Registry.IDs()
}

func (cp *CutPanel) onReload() {
	if err := cp.state.ReloadRegions(); err != nil {
		cp.status.SetText("Reload failed: " + err.Error())
		return
	}
	cp.refreshRegionIDs()
	cp.regionList.Refresh()
	cp.status.SetText(fmt.Sprintf("%d regions loaded", len(cp.regionIDs)))
}

func (cp *CutPanel) onCutAll() {
	saved, failed, err := cp.state.CutAllRegions()
	if err != nil {
		cp.status.SetText("Cut failed: " + err.Error())
		return
	}
	cp.status.SetText(fmt.Sprintf("%d crops saved, %d failed", saved, failed))
}
