// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"

	"poker-templater/internal/app"
	"poker-templater/ui/canvas"
	"poker-templater/ui/panels"
	"poker-templater/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const prefKeyLastTab = "lastTab"

// MainWindow is the primary application window: one tab per workflow
// step, capture then cut then label.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	tabs      *container.AppTabs
	statusBar *widget.Label

	capturePanel *panels.CapturePanel
	cutPanel     *panels.CutPanel
	labelPanel   *panels.LabelPanel
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Poker Templater")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  appPrefs,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	return mw
}

func (mw *MainWindow) setupUI() {
	mw.statusBar = widget.NewLabel("Ready")

	cropView := canvas.NewCropView()
	mw.capturePanel = panels.NewCapturePanel(mw.state)
	mw.cutPanel = panels.NewCutPanel(mw.state)
	mw.labelPanel = panels.NewLabelPanel(mw.state, cropView)

	mw.tabs = container.NewAppTabs(
		container.NewTabItem("Capture", mw.capturePanel.Widget()),
		container.NewTabItem("Cut Regions", mw.cutPanel.Widget()),
		container.NewTabItem("Label Symbols", mw.labelPanel.Widget()),
	)
	mw.tabs.OnSelected = func(item *container.TabItem) {
		mw.prefs.SetString(prefKeyLastTab, item.Text)
	}
	if last := mw.prefs.String(prefKeyLastTab); last != "" {
		for _, item := range mw.tabs.Items {
			if item.Text == last {
				mw.tabs.Select(item)
				break
			}
		}
	}

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil, nil,
		mw.tabs,
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1000, 700))
}

func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Reload Regions", func() {
			if err := mw.state.ReloadRegions(); err != nil {
				dialog.ShowError(err, mw.Window)
				return
			}
			mw.updateStatus("Regions reloaded")
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			mw.SavePreferences()
			mw.app.Quit()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventScreenshotSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.updateStatus("Screenshot saved: " + path)
		}
	})

	mw.state.On(app.EventRegionsCut, func(data interface{}) {
		if n, ok := data.(int); ok {
			mw.updateStatus(fmt.Sprintf("Region cut complete: %d crops", n))
		}
	})

	mw.state.On(app.EventCropOpened, func(data interface{}) {
		if name, ok := data.(string); ok {
			mw.updateStatus("Labeling " + name)
		}
	})

	mw.state.On(app.EventTemplatesSaved, func(data interface{}) {
		mw.updateStatus("Templates saved")
	})
}

func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// SavePreferences persists the preference file.
func (mw *MainWindow) SavePreferences() {
	if err := mw.prefs.Save(); err != nil {
		fmt.Println("Failed to save preferences:", err)
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Poker Templater",
		"Poker Templater\n\n"+
			"Builds recognition template sets from poker client\n"+
			"screenshots: capture, cut regions, label symbols.",
		mw.Window)
}
