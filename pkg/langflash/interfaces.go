package langflash

import "codeberg.org/miketth/langflash/pkg/layouts"

// WindowSystem is the slice of the OS the prober needs. Zero handles and
// thread ids are valid answers meaning "nothing there".
type WindowSystem interface {
	ForegroundWindow() uintptr
	WindowThread(hwnd uintptr) uint32
	KeyboardLayout(threadID uint32) uintptr
}

type Prober interface {
	Probe() layouts.LayoutCode
}

type Publisher interface {
	Publish(code layouts.LayoutCode)
}

// Resolver maps a language identifier to a layout code.
type Resolver interface {
	Resolve(langID uint16) layouts.LayoutCode
}
