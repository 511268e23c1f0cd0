//go:build windows

package win32

import (
	"golang.org/x/sys/windows"
	"unsafe"
)

// localeNameMaxLength is LOCALE_NAME_MAX_LENGTH.
const localeNameMaxLength = 85

// Desktop answers foreground-window questions for the interactive session.
type Desktop struct{}

func (Desktop) ForegroundWindow() uintptr {
	return uintptr(windows.GetForegroundWindow())
}

// WindowThread returns 0 when the window is gone or has no owning thread.
func (Desktop) WindowThread(hwnd uintptr) uint32 {
	tid, err := windows.GetWindowThreadProcessId(windows.HWND(hwnd), nil)
	if err != nil {
		return 0
	}
	return tid
}

func (Desktop) KeyboardLayout(threadID uint32) uintptr {
	hkl, _, _ := procGetKeyboardLayout.Call(uintptr(threadID))
	return hkl
}

// LocaleName asks Windows for the locale name of a language identifier,
// e.g. 0x0419 -> "ru-RU".
func LocaleName(langID uint16) (string, bool) {
	buf := make([]uint16, localeNameMaxLength)

	// a LANGID with SORT_DEFAULT is a valid LCID
	n, _, _ := procLCIDToLocaleName.Call(
		uintptr(langID),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
		0,
	)
	if n == 0 {
		return "", false
	}

	return windows.UTF16ToString(buf), true
}
