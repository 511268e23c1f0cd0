//go:build windows

package win32

import (
	"context"
	"fmt"
	"github.com/lxn/win"
	"golang.org/x/sys/windows"
	"runtime"
	"sync"
	"time"
	"unsafe"
)

const lwaAlpha = 0x00000002 // LWA_ALPHA

// MessageHandler sees every message sent to its window first. Returning
// handled=false falls through to DefWindowProc.
type MessageHandler func(hwnd win.HWND, msg uint32, wParam, lParam uintptr) (result uintptr, handled bool)

type WindowOptions struct {
	ClassName string
	Title     string
	ExStyle   uint32
	Style     uint32
	X, Y      int32
	Width     int32
	Height    int32
	// Parent is win.HWND_MESSAGE for message-only windows.
	Parent     win.HWND
	Background win.HBRUSH
}

// Window is a Win32 window together with its timers. All methods except
// Close must be called on the thread that created the window.
type Window struct {
	hwnd    win.HWND
	handler MessageHandler
	timers  map[uintptr]func()
}

var (
	wndProcOnce sync.Once
	wndProcPtr  uintptr

	windowsByHandle sync.Map // win.HWND -> *Window
	classes         sync.Map // class name -> struct{}
)

func wndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	v, ok := windowsByHandle.Load(hwnd)
	if !ok {
		return win.DefWindowProc(hwnd, msg, wParam, lParam)
	}
	w := v.(*Window)

	switch msg {
	case win.WM_TIMER:
		if fn, ok := w.timers[wParam]; ok {
			fn()
			return 0
		}
	case win.WM_DESTROY:
		if w.handler != nil {
			w.handler(hwnd, msg, wParam, lParam)
		}
		for id := range w.timers {
			win.KillTimer(hwnd, id)
		}
		windowsByHandle.Delete(hwnd)
		win.PostQuitMessage(0)
		return 0
	}

	if w.handler != nil {
		if res, handled := w.handler(hwnd, msg, wParam, lParam); handled {
			return res
		}
	}

	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

func registerClass(name string, background win.HBRUSH) error {
	if _, done := classes.Load(name); done {
		return nil
	}

	wndProcOnce.Do(func() {
		wndProcPtr = windows.NewCallback(wndProc)
	})

	className, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return fmt.Errorf("class name: %w", err)
	}

	wc := win.WNDCLASSEX{
		LpfnWndProc:   wndProcPtr,
		HInstance:     win.GetModuleHandle(nil),
		HCursor:       win.LoadCursor(0, win.MAKEINTRESOURCE(win.IDC_ARROW)),
		HbrBackground: background,
		LpszClassName: className,
	}
	wc.CbSize = uint32(unsafe.Sizeof(wc))

	if atom := win.RegisterClassEx(&wc); atom == 0 {
		return callError("RegisterClassEx", windows.GetLastError())
	}

	classes.Store(name, struct{}{})
	return nil
}

// CreateWindow registers the class on first use and creates the window on
// the calling thread. Use it from the setup function of RunOnThread.
func CreateWindow(opts WindowOptions, handler MessageHandler) (*Window, error) {
	if err := registerClass(opts.ClassName, opts.Background); err != nil {
		return nil, fmt.Errorf("register class %q: %w", opts.ClassName, err)
	}

	className, err := windows.UTF16PtrFromString(opts.ClassName)
	if err != nil {
		return nil, fmt.Errorf("class name: %w", err)
	}
	title, err := windows.UTF16PtrFromString(opts.Title)
	if err != nil {
		return nil, fmt.Errorf("window title: %w", err)
	}

	hwnd := win.CreateWindowEx(
		opts.ExStyle,
		className,
		title,
		opts.Style,
		opts.X, opts.Y, opts.Width, opts.Height,
		opts.Parent,
		0,
		win.GetModuleHandle(nil),
		nil,
	)
	if hwnd == 0 {
		return nil, callError("CreateWindowEx", windows.GetLastError())
	}

	w := &Window{
		hwnd:    hwnd,
		handler: handler,
		timers:  make(map[uintptr]func()),
	}
	windowsByHandle.Store(hwnd, w)

	return w, nil
}

func (w *Window) HWND() win.HWND {
	return w.hwnd
}

// SetTimer calls fn on the window thread every interval.
func (w *Window) SetTimer(id uintptr, interval time.Duration, fn func()) error {
	ms := uint32(interval / time.Millisecond)
	if ms == 0 {
		ms = 1
	}

	if win.SetTimer(w.hwnd, id, ms, 0) == 0 {
		return callError("SetTimer", windows.GetLastError())
	}

	w.timers[id] = fn
	return nil
}

// Close asks the window to close. Safe from any goroutine.
func (w *Window) Close() {
	win.PostMessage(w.hwnd, win.WM_CLOSE, 0, 0)
}

// SetAlpha sets the opacity of a WS_EX_LAYERED window.
func (w *Window) SetAlpha(alpha byte) error {
	ok, _, err := procSetLayeredWindowAttributes.Call(uintptr(w.hwnd), 0, uintptr(alpha), lwaAlpha)
	if ok == 0 {
		return callError("SetLayeredWindowAttributes", err)
	}
	return nil
}

// SetRoundedRegion clips the window to a rounded rectangle.
func (w *Window) SetRoundedRegion(width, height, radius int32) error {
	rgn, _, err := procCreateRoundRectRgn.Call(0, 0, uintptr(width+1), uintptr(height+1), uintptr(radius), uintptr(radius))
	if rgn == 0 {
		return callError("CreateRoundRectRgn", err)
	}

	// the system owns the region from here on
	ok, _, err := procSetWindowRgn.Call(uintptr(w.hwnd), rgn, 1)
	if ok == 0 {
		win.DeleteObject(win.HGDIOBJ(rgn))
		return callError("SetWindowRgn", err)
	}

	return nil
}

// RunOnThread locks the calling goroutine to its OS thread, builds a window
// with setup and pumps messages until the window is destroyed. When ctx is
// done the window is closed and ctx.Err() is returned; a window that goes
// away by itself yields ErrWindowClosed.
func RunOnThread(ctx context.Context, setup func() (*Window, error)) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	w, err := setup()
	if err != nil {
		return err
	}

	stop := context.AfterFunc(ctx, w.Close)
	defer stop()

	if err := loop(); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return ErrWindowClosed
}

func loop() error {
	var msg win.MSG
	for {
		switch win.GetMessage(&msg, 0, 0, 0) {
		case 0:
			return nil
		case -1:
			return callError("GetMessage", windows.GetLastError())
		}

		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}
}
