// Package overlay flashes the current layout in a translucent box in the
// middle of the screen.
//
// Sink is the display logic and owns no OS resources. It must only be used
// from the single event-loop goroutine that drives it; the host calls Drain
// and Advance from its timers with the current time.
package overlay

import (
	"codeberg.org/miketth/langflash/pkg/layouts"
	"go.uber.org/zap"
	"time"
)

// Surface is the on-screen box. Opacity is a percentage, 0..100.
type Surface interface {
	SetText(text string)
	SetOpacity(percent int)
	Show()
	Hide()
}

// Source is where the sink picks up published layouts.
type Source interface {
	Drain() []layouts.LayoutCode
}

type Options struct {
	// Opacity the box appears with, in percent.
	Opacity int
	// HideDelay is how long the box stays fully visible before fading.
	HideDelay time.Duration
	// FadeStep is subtracted from the opacity every FadeTick.
	FadeStep int
	FadeTick time.Duration
	// DrainInterval is how often the host checks for new layouts.
	DrainInterval time.Duration
}

func DefaultOptions() Options {
	return Options{
		Opacity:       50,
		HideDelay:     300 * time.Millisecond,
		FadeStep:      10,
		FadeTick:      50 * time.Millisecond,
		DrainInterval: 50 * time.Millisecond,
	}
}

type state int

const (
	hidden state = iota
	shown
	fading
)

type Sink struct {
	surface Surface
	source  Source
	opts    Options
	log     *zap.SugaredLogger

	state    state
	opacity  int
	deadline time.Time
}

func NewSink(surface Surface, source Source, opts Options, log *zap.SugaredLogger) *Sink {
	defaults := DefaultOptions()
	if opts.Opacity <= 0 || opts.Opacity > 100 {
		opts.Opacity = defaults.Opacity
	}
	if opts.HideDelay <= 0 {
		opts.HideDelay = defaults.HideDelay
	}
	if opts.FadeStep <= 0 {
		opts.FadeStep = defaults.FadeStep
	}
	if opts.FadeTick <= 0 {
		opts.FadeTick = defaults.FadeTick
	}
	if opts.DrainInterval <= 0 {
		opts.DrainInterval = defaults.DrainInterval
	}

	return &Sink{
		surface: surface,
		source:  source,
		opts:    opts,
		log:     log,
	}
}

func (s *Sink) Options() Options {
	return s.opts
}

// Notify shows code at full overlay opacity and restarts the dismissal
// timer, interrupting a running fade.
func (s *Sink) Notify(code layouts.LayoutCode, now time.Time) {
	s.surface.SetText(code.Label())
	s.surface.SetOpacity(s.opts.Opacity)
	if s.state == hidden {
		s.surface.Show()
	}

	s.state = shown
	s.opacity = s.opts.Opacity
	s.deadline = now.Add(s.opts.HideDelay)

	s.log.Debugw("overlay shown", "layout", code.String())
}

// Drain takes everything published since the last call and shows the
// newest value; intermediate values are never displayed.
func (s *Sink) Drain(now time.Time) {
	codes := s.source.Drain()
	if len(codes) == 0 {
		return
	}

	s.Notify(codes[len(codes)-1], now)
}

// Advance runs the dismissal timer and the fade.
func (s *Sink) Advance(now time.Time) {
	if s.state == hidden || now.Before(s.deadline) {
		return
	}

	if s.state == shown {
		s.state = fading
	}

	s.opacity -= s.opts.FadeStep
	if s.opacity <= 0 {
		s.opacity = 0
		s.state = hidden
		s.surface.Hide()
		return
	}

	s.surface.SetOpacity(s.opacity)

	// keep a steady cadence, but don't burst to catch up after a stall
	s.deadline = s.deadline.Add(s.opts.FadeTick)
	if s.deadline.Before(now) {
		s.deadline = now.Add(s.opts.FadeTick)
	}
}

// Step is Drain followed by Advance.
func (s *Sink) Step(now time.Time) {
	s.Drain(now)
	s.Advance(now)
}

func (s *Sink) Visible() bool {
	return s.state != hidden
}

func (s *Sink) Opacity() int {
	return s.opacity
}
