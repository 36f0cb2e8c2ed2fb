package app

import (
	"path/filepath"
	"testing"

	"poker-templater/internal/imgio"

	"gocv.io/x/gocv"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.ScreenshotsDir = filepath.Join(dir, "screenshots")
	cfg.RegionsCutDir = filepath.Join(dir, "regions_cut")
	cfg.TemplatesDir = filepath.Join(dir, "templates")
	cfg.RegionsPath = filepath.Join(dir, "regions.json")
	return cfg
}

func writeCrop(t *testing.T, path string) {
	t.Helper()
	img := gocv.NewMatWithSize(12, 30, gocv.MatTypeCV8U)
	defer img.Close()
	for y := 0; y < 12; y++ {
		for x := 0; x < 30; x++ {
			img.SetUCharAt(y, x, 230)
		}
	}
	// One dark glyph so detection has something to find.
	for y := 2; y < 10; y++ {
		for x := 4; x < 9; x++ {
			img.SetUCharAt(y, x, 20)
		}
	}
	if err := imgio.SaveMat(img, path); err != nil {
		t.Fatalf("write crop: %v", err)
	}
}

func TestNewStateWithoutRegionsFile(t *testing.T) {
	state, err := NewState(testConfig(t))
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	if state.Registry != nil {
		t.Error("registry loaded from a missing regions file")
	}
	if _, _, err := state.CutAllRegions(); err == nil {
		t.Error("CutAllRegions ran without a registry")
	}
}

func TestOpenCropStartsSession(t *testing.T) {
	cfg := testConfig(t)
	state, err := NewState(cfg)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}

	crop := filepath.Join(t.TempDir(), "pot_001.png")
	writeCrop(t, crop)

	var opened string
	state.On(EventCropOpened, func(data interface{}) {
		opened, _ = data.(string)
	})

	if err := state.OpenCrop(crop); err != nil {
		t.Fatalf("OpenCrop: %v", err)
	}
	if state.Session == nil {
		t.Fatal("no session after OpenCrop")
	}
	if opened != "pot_001.png" {
		t.Errorf("EventCropOpened data = %q", opened)
	}

	if err := state.Session.Detect(); err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(state.Session.Boxes()) == 0 {
		t.Error("Detect found nothing in a crop with one glyph")
	}

	state.CloseSession()
	if state.Session != nil || state.CropPath != "" {
		t.Error("CloseSession left session state behind")
	}
}

func TestOpenCropMissingFile(t *testing.T) {
	state, err := NewState(testConfig(t))
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	if err := state.OpenCrop(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("OpenCrop accepted a missing file")
	}
}
