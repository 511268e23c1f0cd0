//go:build windows

package overlay

import (
	"codeberg.org/miketth/langflash/pkg/win32"
	"context"
	"errors"
	"fmt"
	"github.com/lxn/win"
	"go.uber.org/zap"
	"golang.org/x/sys/windows"
	"time"
)

var ErrWindowCreate = errors.New("create overlay window")

const (
	className    = "langflash.overlay"
	boxSize      = 200
	cornerRadius = 30
	fontPoints   = 44
	fontFace     = "Consolas"

	drainTimerID = 1
	fadeTimerID  = 2
)

// window is the Win32 Surface: a layered, click-through, topmost popup that
// never takes focus.
type window struct {
	w    *win32.Window
	font win.HFONT
	text string
	log  *zap.SugaredLogger
}

// Run shows layouts from source until ctx is done. It blocks and owns the
// calling goroutine's OS thread.
func Run(ctx context.Context, source Source, opts Options, log *zap.SugaredLogger) error {
	return win32.RunOnThread(ctx, func() (*win32.Window, error) {
		host := &window{log: log}

		screenW := win.GetSystemMetrics(win.SM_CXSCREEN)
		screenH := win.GetSystemMetrics(win.SM_CYSCREEN)

		w, err := win32.CreateWindow(win32.WindowOptions{
			ClassName: className,
			Title:     "langflash",
			ExStyle: win.WS_EX_LAYERED | win.WS_EX_TOPMOST | win.WS_EX_TOOLWINDOW |
				win.WS_EX_TRANSPARENT | win.WS_EX_NOACTIVATE,
			Style:      win.WS_POPUP,
			X:          (screenW - boxSize) / 2,
			Y:          (screenH - boxSize) / 2,
			Width:      boxSize,
			Height:     boxSize,
			Background: win.HBRUSH(win.GetStockObject(win.BLACK_BRUSH)),
		}, host.handle)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWindowCreate, err)
		}
		host.w = w

		if err := host.setup(); err != nil {
			win.DestroyWindow(w.HWND())
			return nil, fmt.Errorf("%w: %w", ErrWindowCreate, err)
		}

		sink := NewSink(host, source, opts, log)
		opts = sink.Options()

		if err := w.SetTimer(drainTimerID, opts.DrainInterval, func() { sink.Drain(time.Now()) }); err != nil {
			win.DestroyWindow(w.HWND())
			return nil, fmt.Errorf("drain timer: %w", err)
		}
		if err := w.SetTimer(fadeTimerID, opts.FadeTick, func() { sink.Advance(time.Now()) }); err != nil {
			win.DestroyWindow(w.HWND())
			return nil, fmt.Errorf("fade timer: %w", err)
		}

		log.Debugw("overlay ready", "drain", opts.DrainInterval, "fade_tick", opts.FadeTick)
		return w, nil
	})
}

func (h *window) setup() error {
	if err := h.w.SetRoundedRegion(boxSize, boxSize, cornerRadius*2); err != nil {
		return err
	}
	if err := h.w.SetAlpha(0); err != nil {
		return err
	}

	hdc := win.GetDC(h.w.HWND())
	dpi := win.GetDeviceCaps(hdc, win.LOGPIXELSY)
	win.ReleaseDC(h.w.HWND(), hdc)

	lf := win.LOGFONT{
		LfHeight:  -win.MulDiv(fontPoints, dpi, 72),
		LfWeight:  win.FW_BOLD,
		LfCharSet: win.DEFAULT_CHARSET,
		LfQuality: win.CLEARTYPE_QUALITY,
	}
	face, err := windows.UTF16FromString(fontFace)
	if err != nil {
		return fmt.Errorf("font face: %w", err)
	}
	copy(lf.LfFaceName[:len(lf.LfFaceName)-1], face)

	h.font = win.CreateFontIndirect(&lf)
	if h.font == 0 {
		return fmt.Errorf("CreateFontIndirect: %w", win32.ErrCallFailed)
	}

	return nil
}

func (h *window) handle(hwnd win.HWND, msg uint32, wParam, lParam uintptr) (uintptr, bool) {
	switch msg {
	case win.WM_PAINT:
		h.paint(hwnd)
		return 0, true
	case win.WM_DESTROY:
		if h.font != 0 {
			win.DeleteObject(win.HGDIOBJ(h.font))
			h.font = 0
		}
		return 0, true
	}
	return 0, false
}

func (h *window) paint(hwnd win.HWND) {
	var ps win.PAINTSTRUCT
	hdc := win.BeginPaint(hwnd, &ps)
	defer win.EndPaint(hwnd, &ps)

	text, err := windows.UTF16FromString(h.text)
	if err != nil || len(text) < 2 {
		return
	}

	var rc win.RECT
	win.GetClientRect(hwnd, &rc)

	old := win.SelectObject(hdc, win.HGDIOBJ(h.font))
	defer win.SelectObject(hdc, old)

	win.SetBkMode(hdc, win.TRANSPARENT)
	win.SetTextColor(hdc, win.RGB(255, 255, 255))
	win.DrawTextEx(hdc, &text[0], int32(len(text)-1), &rc, win.DT_CENTER|win.DT_VCENTER|win.DT_SINGLELINE, nil)
}

func (h *window) SetText(text string) {
	h.text = text
	win.InvalidateRect(h.w.HWND(), nil, true)
}

func (h *window) SetOpacity(percent int) {
	if err := h.w.SetAlpha(byte(percent * 255 / 100)); err != nil {
		h.log.Warnw("set overlay opacity", "error", err)
	}
}

func (h *window) Show() {
	hwnd := h.w.HWND()
	win.ShowWindow(hwnd, win.SW_SHOWNOACTIVATE)
	win.SetWindowPos(hwnd, win.HWND_TOPMOST, 0, 0, 0, 0, win.SWP_NOMOVE|win.SWP_NOSIZE|win.SWP_NOACTIVATE)
	win.UpdateWindow(hwnd)
}

func (h *window) Hide() {
	win.ShowWindow(h.w.HWND(), win.SW_HIDE)
}

var _ Surface = (*window)(nil)
