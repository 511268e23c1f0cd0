package overlay

import (
	"codeberg.org/miketth/langflash/pkg/layoutqueue"
	"codeberg.org/miketth/langflash/pkg/layouts"
	"fmt"
	"go.uber.org/zap/zaptest"
	"reflect"
	"testing"
	"time"
)

// fakeSurface records every call as a short string.
type fakeSurface struct {
	calls   []string
	text    string
	opacity int
	visible bool
}

func (f *fakeSurface) SetText(text string) {
	f.text = text
	f.calls = append(f.calls, "text "+text)
}

func (f *fakeSurface) SetOpacity(percent int) {
	f.opacity = percent
	f.calls = append(f.calls, fmt.Sprintf("opacity %d", percent))
}

func (f *fakeSurface) Show() {
	f.visible = true
	f.calls = append(f.calls, "show")
}

func (f *fakeSurface) Hide() {
	f.visible = false
	f.calls = append(f.calls, "hide")
}

func (f *fakeSurface) reset() {
	f.calls = nil
}

type emptySource struct{}

func (emptySource) Drain() []layouts.LayoutCode {
	return nil
}

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func ms(n int) time.Time {
	return t0.Add(time.Duration(n) * time.Millisecond)
}

func newTestSink(t *testing.T, source Source) (*Sink, *fakeSurface) {
	surface := &fakeSurface{}
	return NewSink(surface, source, DefaultOptions(), zaptest.NewLogger(t).Sugar()), surface
}

func TestNotifyShowsAtOverlayOpacity(t *testing.T) {
	sink, surface := newTestSink(t, emptySource{})

	sink.Notify(layouts.Known("RU"), t0)

	want := []string{"text RU", "opacity 50", "show"}
	if !reflect.DeepEqual(surface.calls, want) {
		t.Fatalf("expected %v, got %v", want, surface.calls)
	}
	if !sink.Visible() || sink.Opacity() != 50 {
		t.Errorf("expected visible at 50, got visible=%v opacity=%d", sink.Visible(), sink.Opacity())
	}
}

func TestFadeAfterHideDelay(t *testing.T) {
	sink, surface := newTestSink(t, emptySource{})

	sink.Notify(layouts.Known("EN"), t0)
	surface.reset()

	sink.Advance(ms(299))
	if len(surface.calls) != 0 {
		t.Fatalf("faded before the hide delay: %v", surface.calls)
	}

	for _, at := range []int{300, 325, 350, 400, 450, 500} {
		sink.Advance(ms(at))
	}

	want := []string{"opacity 40", "opacity 30", "opacity 20", "opacity 10", "hide"}
	if !reflect.DeepEqual(surface.calls, want) {
		t.Fatalf("expected %v, got %v", want, surface.calls)
	}
	if sink.Visible() {
		t.Error("sink should be hidden after the fade")
	}

	surface.reset()
	sink.Advance(ms(10_000))
	if len(surface.calls) != 0 {
		t.Errorf("hidden sink touched the surface: %v", surface.calls)
	}
}

func TestNotifyDuringFadeRestarts(t *testing.T) {
	sink, surface := newTestSink(t, emptySource{})

	sink.Notify(layouts.Known("EN"), t0)
	sink.Advance(ms(300))
	sink.Advance(ms(350))
	if sink.Opacity() != 30 {
		t.Fatalf("expected opacity 30 mid-fade, got %d", sink.Opacity())
	}

	surface.reset()
	sink.Notify(layouts.Known("UK"), ms(360))

	// already visible, so no second show
	want := []string{"text UK", "opacity 50"}
	if !reflect.DeepEqual(surface.calls, want) {
		t.Fatalf("expected %v, got %v", want, surface.calls)
	}

	surface.reset()
	sink.Advance(ms(659))
	if len(surface.calls) != 0 {
		t.Fatalf("dismissal timer was not restarted: %v", surface.calls)
	}
	sink.Advance(ms(660))
	if want := []string{"opacity 40"}; !reflect.DeepEqual(surface.calls, want) {
		t.Errorf("expected %v, got %v", want, surface.calls)
	}
}

func TestHiddenSurfaceIsReused(t *testing.T) {
	sink, surface := newTestSink(t, emptySource{})

	sink.Notify(layouts.Known("EN"), t0)
	for at := 300; at <= 500; at += 50 {
		sink.Advance(ms(at))
	}
	if surface.visible {
		t.Fatal("expected surface hidden")
	}

	surface.reset()
	sink.Notify(layouts.Known("RU"), ms(1000))
	want := []string{"text RU", "opacity 50", "show"}
	if !reflect.DeepEqual(surface.calls, want) {
		t.Errorf("expected %v, got %v", want, surface.calls)
	}
}

func TestFadeDoesNotBurstAfterStall(t *testing.T) {
	sink, _ := newTestSink(t, emptySource{})

	sink.Notify(layouts.Known("EN"), t0)
	sink.Advance(ms(2000))

	if sink.Opacity() != 40 {
		t.Errorf("expected a single fade step, got opacity %d", sink.Opacity())
	}
}

func TestDrainShowsLatestOnly(t *testing.T) {
	bus := layoutqueue.New()
	defer bus.Close()
	inbox, err := bus.Subscribe("overlay", 8)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	sink, surface := newTestSink(t, inbox)

	bus.Publish(layouts.Known("EN"))
	bus.Publish(layouts.Known("RU"))
	bus.Publish(layouts.Known("UK"))
	sink.Drain(t0)

	want := []string{"text UK", "opacity 50", "show"}
	if !reflect.DeepEqual(surface.calls, want) {
		t.Fatalf("expected %v, got %v", want, surface.calls)
	}

	surface.reset()
	sink.Drain(ms(50))
	if len(surface.calls) != 0 {
		t.Errorf("empty drain touched the surface: %v", surface.calls)
	}
}

func TestUnknownLayoutIsRendered(t *testing.T) {
	sink, surface := newTestSink(t, emptySource{})

	sink.Notify(layouts.Unknown(0x0C00), t0)

	if surface.text != layouts.UnknownLabel {
		t.Errorf("expected %q, got %q", layouts.UnknownLabel, surface.text)
	}
	if !surface.visible {
		t.Error("unknown layout should still be shown")
	}
}

func TestStepDrainsAndAdvances(t *testing.T) {
	bus := layoutqueue.New()
	defer bus.Close()
	inbox, _ := bus.Subscribe("overlay", 8)

	sink, surface := newTestSink(t, inbox)

	bus.Publish(layouts.Known("EN"))
	sink.Step(t0)
	sink.Step(ms(300))

	if surface.opacity != 40 {
		t.Errorf("expected opacity 40, got %d", surface.opacity)
	}
}

func TestNewSinkFillsDefaults(t *testing.T) {
	sink := NewSink(&fakeSurface{}, emptySource{}, Options{Opacity: 150}, zaptest.NewLogger(t).Sugar())

	if got, want := sink.Options(), DefaultOptions(); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}
