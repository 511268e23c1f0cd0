//go:build windows

package win32

import "golang.org/x/sys/windows"

// Procs lxn/win does not wrap.
var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetKeyboardLayout          = user32.NewProc("GetKeyboardLayout")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
	procSetWindowRgn               = user32.NewProc("SetWindowRgn")
	procCreateRoundRectRgn         = gdi32.NewProc("CreateRoundRectRgn")
	procLCIDToLocaleName           = kernel32.NewProc("LCIDToLocaleName")
)
