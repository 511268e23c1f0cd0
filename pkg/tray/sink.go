// Package tray keeps a notification-area icon showing the current layout,
// with a context menu to quit.
package tray

import (
	"codeberg.org/miketth/langflash/pkg/layouts"
	"fmt"
	"go.uber.org/zap"
	"image"
	"sync"
	"time"
)

const (
	QuitLabel = "Quit"

	// DefaultDrainInterval is how often the tray picks up new layouts.
	DefaultDrainInterval = 100 * time.Millisecond
)

// Icon is the notification-area icon.
type Icon interface {
	SetGlyph(glyph image.Image, tooltip string) error
}

type Source interface {
	Drain() []layouts.LayoutCode
}

type Sink struct {
	icon   Icon
	source Source
	log    *zap.SugaredLogger

	current layouts.LayoutCode
	drawn   bool

	quit     func()
	quitOnce sync.Once
}

// NewSink creates a tray sink. quit is called once, the first time the user
// picks the Quit menu item.
func NewSink(icon Icon, source Source, quit func(), log *zap.SugaredLogger) *Sink {
	return &Sink{
		icon:   icon,
		source: source,
		quit:   quit,
		log:    log,
	}
}

func Tooltip(code layouts.LayoutCode) string {
	return "langflash: " + code.String()
}

// Notify redraws the icon for code. Redrawing the code already shown is a
// no-op.
func (s *Sink) Notify(code layouts.LayoutCode) error {
	if s.drawn && code == s.current {
		return nil
	}

	if err := s.icon.SetGlyph(RenderGlyph(code.Label()), Tooltip(code)); err != nil {
		return fmt.Errorf("set glyph %s: %w", code, err)
	}

	s.current, s.drawn = code, true
	s.log.Debugw("tray updated", "layout", code.String())

	return nil
}

// Step applies the newest published layout, skipping intermediate ones.
func (s *Sink) Step() error {
	codes := s.source.Drain()
	if len(codes) == 0 {
		return nil
	}

	return s.Notify(codes[len(codes)-1])
}

func (s *Sink) Current() (layouts.LayoutCode, bool) {
	return s.current, s.drawn
}

func (s *Sink) Quit() {
	s.quitOnce.Do(func() {
		s.log.Info("quit requested from tray")
		if s.quit != nil {
			s.quit()
		}
	})
}
