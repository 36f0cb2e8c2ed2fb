// Package main provides the entry point for the Poker Templater
// application.
package main

import (
	"log"

	"poker-templater/internal/app"
	"poker-templater/internal/capture"
	"poker-templater/pkg/geometry"
	"poker-templater/ui/mainwindow"
	"poker-templater/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
)

const (
	appTitle   = "Poker Templater"
	appVersion = "0.1.0"

	prefKeyWindowX = "gameWindowX"
	prefKeyWindowY = "gameWindowY"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, appVersion)

	cfg, err := app.LoadConfig("config.json")
	if err != nil {
		log.Fatalf("Config: %v", err)
	}

	state, err := app.NewState(cfg)
	if err != nil {
		log.Fatalf("State: %v", err)
	}

	appPrefs := prefs.Load()

	// The client window position is remembered between runs; the size
	// comes from config since the client is not resizable.
	rect := geometry.NewRectInt(
		appPrefs.Int(prefKeyWindowX, 0),
		appPrefs.Int(prefKeyWindowY, 0),
		cfg.GameWindowWidth,
		cfg.GameWindowHeight,
	)
	state.Capturer = capture.NewCapturer(
		capture.FixedLocator{Rect: rect},
		capture.ScreenGrabber{},
		cfg.WindowTitle,
		cfg.ScreenshotsDir,
	)

	fyneApp := fyneapp.New()
	win := mainwindow.New(fyneApp, state, appPrefs)
	win.SetTitle(appTitle)

	win.ShowAndRun()

	win.SavePreferences()
	state.CloseSession()
}
