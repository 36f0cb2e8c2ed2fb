package region

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"poker-templater/internal/imgio"
	"poker-templater/pkg/geometry"

	"gocv.io/x/gocv"
)

// Cutter slices configured regions out of screenshots and files the
// crops under regions_cut/<region-id>/<screenshot-name>.png.
type Cutter struct {
	screenshotsDir string
	outputDir      string
}

// NewCutter creates a cutter reading from screenshotsDir and writing
// under outputDir.
func NewCutter(screenshotsDir, outputDir string) *Cutter {
	return &Cutter{screenshotsDir: screenshotsDir, outputDir: outputDir}
}

// Screenshots lists the available screenshot files, sorted.
func (c *Cutter) Screenshots() ([]string, error) {
	return imgio.ListImages(c.screenshotsDir)
}

// Cut extracts a rectangle from an image. Rectangles that fall outside
// the image are rejected; region layouts are authored against a fixed
// client-window size and an out-of-bounds rect means the screenshot
// does not match that layout.
func Cut(img gocv.Mat, rect geometry.RectInt) (gocv.Mat, error) {
	if rect.Empty() {
		return gocv.NewMat(), fmt.Errorf("region rect %+v has no area", rect)
	}
	if rect.X < 0 || rect.Y < 0 || rect.Right() > img.Cols() || rect.Bottom() > img.Rows() {
		return gocv.NewMat(), fmt.Errorf("region rect %+v exceeds %dx%d screenshot",
			rect, img.Cols(), img.Rows())
	}

	roi := img.Region(image.Rect(rect.X, rect.Y, rect.Right(), rect.Bottom()))
	crop := roi.Clone()
	roi.Close()
	return crop, nil
}

// CutFromFile cuts one region out of one screenshot file and saves the
// crop. Returns the saved path.
func (c *Cutter) CutFromFile(screenshotPath, regionID string, rect geometry.RectInt) (string, error) {
	img, err := imgio.LoadMat(screenshotPath)
	if err != nil {
		return "", err
	}
	defer img.Close()

	crop, err := Cut(img, rect)
	if err != nil {
		return "", err
	}
	defer crop.Close()

	name := strings.TrimSuffix(filepath.Base(screenshotPath), filepath.Ext(screenshotPath))
	outPath := filepath.Join(c.outputDir, regionID, name+".png")
	if err := imgio.SaveMat(crop, outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

// CutAll cuts every registry region out of every screenshot. Failures
// are logged and counted, not fatal: one bad screenshot must not stop
// the batch.
func (c *Cutter) CutAll(registry *Registry) (saved, failed int, err error) {
	screenshots, err := c.Screenshots()
	if err != nil {
		return 0, 0, err
	}
	if len(screenshots) == 0 {
		return 0, 0, fmt.Errorf("no screenshots in %s", c.screenshotsDir)
	}

	for _, shot := range screenshots {
		for _, id := range registry.IDs() {
			region, _ := registry.Get(id)
			if _, err := c.CutFromFile(shot, id, region.Rect()); err != nil {
				failed++
				log.Printf("cut %s / %s: %v", filepath.Base(shot), id, err)
				continue
			}
			saved++
		}
	}

	log.Printf("region cut: %d crops saved, %d failed", saved, failed)
	return saved, failed, nil
}

// CropsFor lists the saved crops for one region id, sorted.
func (c *Cutter) CropsFor(regionID string) ([]string, error) {
	return imgio.ListImages(filepath.Join(c.outputDir, regionID))
}

// EnsureOutputDir creates the output directory tree for the registry.
func (c *Cutter) EnsureOutputDir(registry *Registry) error {
	for _, id := range registry.IDs() {
		if err := os.MkdirAll(filepath.Join(c.outputDir, id), 0o755); err != nil {
			return fmt.Errorf("cannot create crop directory for %s: %w", id, err)
		}
	}
	return nil
}
