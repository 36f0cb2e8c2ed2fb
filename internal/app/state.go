package app

import (
	"fmt"
	"path/filepath"
	"sync"

	"poker-templater/internal/capture"
	"poker-templater/internal/imgio"
	"poker-templater/internal/region"
	"poker-templater/internal/segment"
	"poker-templater/internal/session"
	"poker-templater/internal/template"

	"gocv.io/x/gocv"
)

// EventType identifies application events the UI can subscribe to.
type EventType int

const (
	EventScreenshotSaved EventType = iota
	EventRegionsCut
	EventCropOpened
	EventSymbolsDetected
	EventBoxesChanged
	EventTemplatesSaved
	EventSessionReset
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the application state shared by the UI panels: the
// configured directories, the region registry, the template store, and
// the labeling session for the currently opened crop.
type State struct {
	mu sync.RWMutex

	Config Config

	Registry *region.Registry
	Cutter   *region.Cutter
	Store    *template.Store
	Capturer *capture.Capturer

	// Labeling session for the open crop, nil when nothing is open.
	// The state owns cropImg for the session's lifetime.
	Session  *session.Session
	CropPath string
	cropImg  gocv.Mat

	listeners map[EventType][]EventListener
}

// NewState wires the application state from configuration. The region
// registry is loaded lazily: the cutting and labeling flows work even
// before regions.json exists.
func NewState(cfg Config) (*State, error) {
	store, err := template.NewStore(cfg.TemplatesDir, cfg.Taxonomy)
	if err != nil {
		return nil, fmt.Errorf("cannot open template store: %w", err)
	}

	s := &State{
		Config:    cfg,
		Cutter:    region.NewCutter(cfg.ScreenshotsDir, cfg.RegionsCutDir),
		Store:     store,
		listeners: make(map[EventType][]EventListener),
	}

	if reg, err := region.Load(cfg.RegionsPath); err == nil {
		s.Registry = reg
	}
	return s, nil
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// ReloadRegions re-reads regions.json.
func (s *State) ReloadRegions() error {
	reg, err := region.Load(s.Config.RegionsPath)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.Registry = reg
	s.mu.Unlock()
	return nil
}

// CutAllRegions runs the batch cut over every screenshot.
func (s *State) CutAllRegions() (saved, failed int, err error) {
	s.mu.RLock()
	reg := s.Registry
	s.mu.RUnlock()
	if reg == nil {
		return 0, 0, fmt.Errorf("no regions loaded from %s", s.Config.RegionsPath)
	}

	if err := s.Cutter.EnsureOutputDir(reg); err != nil {
		return 0, 0, err
	}
	saved, failed, err = s.Cutter.CutAll(reg)
	if err == nil {
		s.Emit(EventRegionsCut, saved)
	}
	return saved, failed, err
}

// OpenCrop starts a labeling session on a crop file. Any previous
// session is discarded and its image released.
func (s *State) OpenCrop(path string) error {
	img, err := imgio.LoadMat(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.dropSessionLocked()
	s.cropImg = img
	s.Session = session.New(img, segment.NewSelector(s.Config.Segmentation), s.Store)
	s.CropPath = path
	s.mu.Unlock()

	s.Emit(EventCropOpened, filepath.Base(path))
	return nil
}

// CloseSession discards the current labeling session, if any.
func (s *State) CloseSession() {
	s.mu.Lock()
	s.dropSessionLocked()
	s.mu.Unlock()
	s.Emit(EventSessionReset, nil)
}

func (s *State) dropSessionLocked() {
	if s.Session == nil {
		return
	}
	s.Session.Cancel()
	s.Session = nil
	s.CropPath = ""
	s.cropImg.Close()
	s.cropImg = gocv.NewMat()
}
