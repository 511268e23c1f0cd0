package langflash

import (
	"codeberg.org/miketth/langflash/pkg/layouts"
	"testing"
)

type fakeWindows struct {
	hwnd uintptr
	tid  uint32
	hkl  uintptr

	threadAsked uint32
}

func (f *fakeWindows) ForegroundWindow() uintptr {
	return f.hwnd
}

func (f *fakeWindows) WindowThread(hwnd uintptr) uint32 {
	if hwnd != f.hwnd {
		return 0
	}
	return f.tid
}

func (f *fakeWindows) KeyboardLayout(tid uint32) uintptr {
	f.threadAsked = tid
	return f.hkl
}

func TestProbeResolvesForegroundLayout(t *testing.T) {
	ws := &fakeWindows{hwnd: 0x10, tid: 42, hkl: 0x04190419}
	p := NewLayoutProber(ws, layouts.NewRegistry(nil))

	code := p.Probe()
	if code != layouts.Known("RU") {
		t.Fatalf("expected RU, got %s", code)
	}
	if ws.threadAsked != 42 {
		t.Errorf("expected layout of thread 42, got %d", ws.threadAsked)
	}
}

func TestProbeIsIdempotent(t *testing.T) {
	ws := &fakeWindows{hwnd: 0x10, tid: 42, hkl: 0x04090409}
	p := NewLayoutProber(ws, layouts.NewRegistry(nil))

	if a, b := p.Probe(), p.Probe(); a != b {
		t.Errorf("same OS state probed as %s then %s", a, b)
	}
}

func TestProbeWithoutForegroundWindow(t *testing.T) {
	p := NewLayoutProber(&fakeWindows{}, layouts.NewRegistry(nil))

	if code := p.Probe(); code != layouts.Unknown(0) {
		t.Errorf("expected unknown(0x0000), got %s", code)
	}
}

func TestProbeWithoutOwningThread(t *testing.T) {
	ws := &fakeWindows{hwnd: 0x10, tid: 0, hkl: 0x04090409}
	p := NewLayoutProber(ws, layouts.NewRegistry(nil))

	if code := p.Probe(); code != layouts.Unknown(0) {
		t.Errorf("expected unknown(0x0000), got %s", code)
	}
	if ws.threadAsked != 0 {
		t.Error("keyboard layout must not be queried without a thread")
	}
}

func TestProbeUnresolvableLayout(t *testing.T) {
	ws := &fakeWindows{hwnd: 0x10, tid: 7, hkl: 0x0C00}
	p := NewLayoutProber(ws, layouts.NewRegistry(nil))

	code := p.Probe()
	if !code.IsUnknown() || code.Raw() != 0x0C00 {
		t.Fatalf("expected unknown(0x0C00), got %s", code)
	}
}
