package langflash

import "codeberg.org/miketth/langflash/pkg/layouts"

// LayoutProber reads the input language of the foreground window.
type LayoutProber struct {
	windows  WindowSystem
	resolver Resolver
}

func NewLayoutProber(windows WindowSystem, resolver Resolver) *LayoutProber {
	return &LayoutProber{
		windows:  windows,
		resolver: resolver,
	}
}

// Probe never fails: a missing window or thread yields unknown(0x0000), an
// unrecognized identifier yields unknown(id).
func (p *LayoutProber) Probe() layouts.LayoutCode {
	hwnd := p.windows.ForegroundWindow()
	if hwnd == 0 {
		return layouts.Unknown(0)
	}

	tid := p.windows.WindowThread(hwnd)
	if tid == 0 {
		return layouts.Unknown(0)
	}

	hkl := p.windows.KeyboardLayout(tid)
	return p.resolver.Resolve(layouts.LangIDFromHKL(hkl))
}
