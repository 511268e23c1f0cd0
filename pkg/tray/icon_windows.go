//go:build windows

package tray

import (
	"codeberg.org/miketth/langflash/pkg/layouts"
	"codeberg.org/miketth/langflash/pkg/win32"
	"context"
	"errors"
	"fmt"
	"github.com/lxn/win"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sys/windows"
	"image"
	"time"
	"unsafe"
)

var ErrIconCreate = errors.New("create tray icon")

const (
	className    = "langflash.tray"
	callbackMsg  = win.WM_APP + 1
	iconID       = 1
	quitCommand  = 1
	drainTimerID = 1
)

// notifyIcon is the Win32 Icon, owned by a hidden window that receives its
// mouse callbacks.
type notifyIcon struct {
	w     *win32.Window
	sink  *Sink
	added bool
	hicon win.HICON
	log   *zap.SugaredLogger
}

// Run keeps the tray icon up to date until ctx is done. quit is called when
// the user picks Quit. It blocks and owns the calling goroutine's OS thread.
func Run(ctx context.Context, source Source, drain time.Duration, quit func(), log *zap.SugaredLogger) error {
	if drain <= 0 {
		drain = DefaultDrainInterval
	}

	return win32.RunOnThread(ctx, func() (*win32.Window, error) {
		host := &notifyIcon{log: log}

		w, err := win32.CreateWindow(win32.WindowOptions{
			ClassName: className,
			Title:     "langflash tray",
		}, host.handle)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIconCreate, err)
		}
		host.w = w
		host.sink = NewSink(host, source, quit, log)

		// placeholder until the monitor's first value arrives
		if err := host.sink.Notify(layouts.Unknown(0)); err != nil {
			win.DestroyWindow(w.HWND())
			return nil, fmt.Errorf("%w: %w", ErrIconCreate, err)
		}

		err = w.SetTimer(drainTimerID, drain, func() {
			if err := host.sink.Step(); err != nil {
				log.Warnw("update tray icon", "error", err)
			}
		})
		if err != nil {
			win.DestroyWindow(w.HWND())
			return nil, fmt.Errorf("drain timer: %w", err)
		}

		log.Debugw("tray ready", "drain", drain)
		return w, nil
	})
}

func (h *notifyIcon) handle(hwnd win.HWND, msg uint32, wParam, lParam uintptr) (uintptr, bool) {
	switch msg {
	case callbackMsg:
		switch uint32(lParam & 0xFFFF) {
		case win.WM_RBUTTONUP, win.WM_CONTEXTMENU:
			h.showMenu(hwnd)
		}
		return 0, true
	case win.WM_DESTROY:
		if err := h.remove(); err != nil {
			h.log.Warnw("remove tray icon", "error", err)
		}
		return 0, true
	}
	return 0, false
}

func (h *notifyIcon) showMenu(hwnd win.HWND) {
	menu := win.CreatePopupMenu()
	if menu == 0 {
		h.log.Warn("create tray menu failed")
		return
	}
	defer win.DestroyMenu(menu)

	label, err := windows.UTF16PtrFromString(QuitLabel)
	if err != nil {
		return
	}

	mii := win.MENUITEMINFO{
		FMask:      win.MIIM_ID | win.MIIM_STRING | win.MIIM_FTYPE,
		FType:      win.MFT_STRING,
		WID:        quitCommand,
		DwTypeData: label,
		Cch:        uint32(len(QuitLabel)),
	}
	mii.CbSize = uint32(unsafe.Sizeof(mii))
	if !win.InsertMenuItem(menu, 0, true, &mii) {
		h.log.Warn("insert tray menu item failed")
		return
	}

	var pt win.POINT
	win.GetCursorPos(&pt)

	// the menu only closes on outside clicks if our window is foreground
	win.SetForegroundWindow(hwnd)
	cmd := win.TrackPopupMenuEx(menu, win.TPM_RETURNCMD|win.TPM_NONOTIFY|win.TPM_RIGHTBUTTON|win.TPM_BOTTOMALIGN, pt.X, pt.Y, hwnd, nil)
	win.PostMessage(hwnd, win.WM_NULL, 0, 0)

	if cmd == quitCommand {
		h.sink.Quit()
	}
}

func (h *notifyIcon) SetGlyph(glyph image.Image, tooltip string) error {
	hicon, err := newIcon(glyph)
	if err != nil {
		return fmt.Errorf("build icon: %w", err)
	}

	nid := h.data()
	nid.UFlags = win.NIF_ICON | win.NIF_TIP | win.NIF_MESSAGE
	nid.UCallbackMessage = callbackMsg
	nid.HIcon = hicon
	tip, err := windows.UTF16FromString(tooltip)
	if err == nil {
		copy(nid.SzTip[:len(nid.SzTip)-1], tip)
	}

	op := uint32(win.NIM_MODIFY)
	if !h.added {
		op = win.NIM_ADD
	}
	if !win.Shell_NotifyIcon(op, &nid) {
		win.DestroyIcon(hicon)
		return fmt.Errorf("Shell_NotifyIcon: %w", win32.ErrCallFailed)
	}
	h.added = true

	if h.hicon != 0 {
		win.DestroyIcon(h.hicon)
	}
	h.hicon = hicon

	return nil
}

func (h *notifyIcon) data() win.NOTIFYICONDATA {
	nid := win.NOTIFYICONDATA{
		HWnd: h.w.HWND(),
		UID:  iconID,
	}
	nid.CbSize = uint32(unsafe.Sizeof(nid))
	return nid
}

func (h *notifyIcon) remove() error {
	var err error

	if h.added {
		nid := h.data()
		if !win.Shell_NotifyIcon(win.NIM_DELETE, &nid) {
			err = multierr.Append(err, fmt.Errorf("Shell_NotifyIcon delete: %w", win32.ErrCallFailed))
		}
		h.added = false
	}

	if h.hicon != 0 {
		if !win.DestroyIcon(h.hicon) {
			err = multierr.Append(err, fmt.Errorf("DestroyIcon: %w", win32.ErrCallFailed))
		}
		h.hicon = 0
	}

	return err
}

var _ Icon = (*notifyIcon)(nil)
