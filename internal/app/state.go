// Package app provides application state and events.
package app

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"chart-measure/internal/series"
)

// EventType identifies different application events.
type EventType int

const (
	EventSeriesLoaded EventType = iota
	EventMeasureToggled
	EventMeasurementChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the application state: the loaded series and event listeners.
type State struct {
	mu sync.RWMutex

	SeriesPath string
	Series     *series.Series

	log       *zap.Logger
	listeners map[EventType][]EventListener
}

// NewState creates a new application state.
func NewState(log *zap.Logger) *State {
	if log == nil {
		log = zap.NewNop()
	}
	return &State{
		log:       log,
		listeners: make(map[EventType][]EventListener),
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

// LoadSeries loads a series file and emits EventSeriesLoaded with the series.
func (s *State) LoadSeries(path string) error {
	ser, err := series.Load(path)
	if err != nil {
		return fmt.Errorf("load series: %w", err)
	}

	s.mu.Lock()
	s.SeriesPath = path
	s.Series = ser
	s.mu.Unlock()

	s.log.Info("series loaded",
		zap.String("path", path),
		zap.String("name", ser.Name),
		zap.Int("points", ser.Len()))
	s.Emit(EventSeriesLoaded, ser)
	return nil
}
