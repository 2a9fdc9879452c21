// Package app provides the interactive session state, its mode machine, and
// application events.
package app

import (
	"fmt"
	"path/filepath"
	"sync"

	"roi-extractor/internal/calibrate"
	"roi-extractor/internal/extract"
	"roi-extractor/internal/raster"
	"roi-extractor/internal/roi"
	"roi-extractor/pkg/geometry"
)

// Mode is the interactive session mode. The core operations are plain
// synchronous functions; the mode machine only sequences which UI gesture is
// expected next.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawingPolygon
	ModeAwaitingLabel
	ModePickingWhitePoint
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModeDrawingPolygon:
		return "Drawing polygon"
	case ModeAwaitingLabel:
		return "Awaiting label"
	case ModePickingWhitePoint:
		return "Picking white point"
	default:
		return "Unknown"
	}
}

// EventType identifies application events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventWhiteBalanceChanged
	EventROIAdded
	EventROIsLoaded
	EventModeChanged
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the interactive session: the open raster, its ROI collection,
// and the current white balance. The collection is mutated append-only by
// the single UI thread of control; extraction reads the raster without
// mutating it.
type State struct {
	mu sync.RWMutex

	ImagePath string
	FileName  string
	Raster    *raster.Raster

	Collection   *roi.Collection
	WhiteBalance raster.Multipliers
	Modified     bool

	mode      Mode
	listeners map[EventType][]EventListener
}

// NewState creates an empty session state.
func NewState() *State {
	return &State{
		WhiteBalance: raster.Neutral(),
		listeners:    make(map[EventType][]EventListener),
	}
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

// Mode returns the current interaction mode.
func (s *State) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode switches the interaction mode and notifies listeners.
func (s *State) SetMode(m Mode) {
	s.mu.Lock()
	if s.mode == m {
		s.mu.Unlock()
		return
	}
	s.mode = m
	s.mu.Unlock()
	s.Emit(EventModeChanged, m)
}

// SetModified marks the session as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// LoadImage decodes the image at path with the current white balance and
// starts a fresh, empty ROI collection for it.
func (s *State) LoadImage(path string) error {
	s.mu.RLock()
	wb := s.WhiteBalance
	s.mu.RUnlock()

	r, err := raster.Load(path, wb)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.ImagePath = path
	s.FileName = filepath.Base(path)
	s.Raster = r
	s.Collection = roi.NewCollection(s.FileName)
	s.Modified = false
	s.mode = ModeIdle
	s.mu.Unlock()

	s.Emit(EventImageLoaded, path)
	return nil
}

// SetWhiteBalance re-decodes the open image with the given multipliers.
// The ROI collection is kept; only the raster is re-derived.
func (s *State) SetWhiteBalance(m raster.Multipliers) error {
	s.mu.RLock()
	path := s.ImagePath
	s.mu.RUnlock()
	if path == "" {
		return fmt.Errorf("no image loaded")
	}

	r, err := raster.Load(path, m)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Raster = r
	s.WhiteBalance = m
	if s.Collection != nil {
		wb := m
		s.Collection.WhiteBalance = &wb
	}
	s.Modified = true
	s.mu.Unlock()

	s.Emit(EventWhiteBalanceChanged, m)
	return nil
}

// ApplyWhitePoint samples a window around the picked point, derives
// multipliers against the green reference, and re-decodes.
func (s *State) ApplyWhitePoint(x, y int) (raster.Multipliers, error) {
	s.mu.RLock()
	r := s.Raster
	s.mu.RUnlock()
	if r == nil {
		return raster.Multipliers{}, fmt.Errorf("no image loaded")
	}

	avgR, avgG, avgB, err := calibrate.SampleWhitePoint(r, x, y, calibrate.DefaultWindow)
	if err != nil {
		return raster.Multipliers{}, err
	}

	m := calibrate.DeriveMultipliers(avgR, avgG, avgB)
	return m, s.SetWhiteBalance(m)
}

// AddROI appends a labeled polygon to the collection.
func (s *State) AddROI(label string, polygon geometry.Polygon) {
	s.mu.Lock()
	if s.Collection == nil {
		s.Collection = roi.NewCollection(s.FileName)
	}
	s.Collection.Add(label, polygon)
	s.Modified = true
	s.mu.Unlock()

	s.Emit(EventROIAdded, label)
}

// LoadROIs replaces the collection with one loaded from a JSON file. The
// returned mismatch flag is true when the file was saved against a different
// source image; it is a warning for the caller, not a failure.
func (s *State) LoadROIs(path string) (mismatch bool, err error) {
	c, err := roi.Load(path)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	mismatch = c.SourceMismatch(s.FileName)
	s.Collection = c
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventROIsLoaded, path)

	if c.WhiteBalance != nil {
		if err := s.SetWhiteBalance(*c.WhiteBalance); err != nil {
			return mismatch, err
		}
	}
	return mismatch, nil
}

// SaveROIs writes the collection to a JSON file.
func (s *State) SaveROIs(path string) error {
	s.mu.RLock()
	c := s.Collection
	s.mu.RUnlock()
	if c == nil {
		return fmt.Errorf("no rois to save")
	}
	if err := c.Save(path); err != nil {
		return err
	}
	s.SetModified(false)
	return nil
}

// ExportCSV extracts every ROI against the open raster and writes the pixel
// records to a CSV file.
func (s *State) ExportCSV(path string) (extract.Result, error) {
	s.mu.RLock()
	r := s.Raster
	c := s.Collection
	s.mu.RUnlock()

	if r == nil {
		return extract.Result{}, fmt.Errorf("no image loaded")
	}
	if c == nil || c.Len() == 0 {
		return extract.Result{}, fmt.Errorf("no rois to process")
	}

	res := extract.ExtractAll(r, c)
	if err := extract.WriteCSVFile(path, res.Records); err != nil {
		return res, err
	}
	return res, nil
}
