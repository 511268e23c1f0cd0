//go:build windows

package tray

import (
	"codeberg.org/miketth/langflash/pkg/win32"
	"fmt"
	"github.com/lxn/win"
	"image"
	"unsafe"
)

// newIcon converts img into an icon handle. The caller owns the handle.
func newIcon(img image.Image) (win.HICON, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	bi := win.BITMAPINFOHEADER{
		BiWidth:       int32(w),
		BiHeight:      -int32(h), // top-down
		BiPlanes:      1,
		BiBitCount:    32,
		BiCompression: win.BI_RGB,
	}
	bi.BiSize = uint32(unsafe.Sizeof(bi))

	hdc := win.GetDC(0)
	defer win.ReleaseDC(0, hdc)

	var bits unsafe.Pointer
	color := win.CreateDIBSection(hdc, &bi, win.DIB_RGB_COLORS, &bits, 0, 0)
	if color == 0 {
		return 0, fmt.Errorf("CreateDIBSection: %w", win32.ErrCallFailed)
	}
	defer win.DeleteObject(win.HGDIOBJ(color))

	copy(unsafe.Slice((*byte)(bits), w*h*4), BGRA(img))

	// all-zero AND mask: the alpha channel decides
	maskStride := ((w + 15) / 16) * 2
	maskBits := make([]byte, maskStride*h)
	mask := win.CreateBitmap(int32(w), int32(h), 1, 1, unsafe.Pointer(&maskBits[0]))
	if mask == 0 {
		return 0, fmt.Errorf("CreateBitmap: %w", win32.ErrCallFailed)
	}
	defer win.DeleteObject(win.HGDIOBJ(mask))

	ii := win.ICONINFO{
		FIcon:    1,
		HbmMask:  mask,
		HbmColor: color,
	}
	icon := win.CreateIconIndirect(&ii)
	if icon == 0 {
		return 0, fmt.Errorf("CreateIconIndirect: %w", win32.ErrCallFailed)
	}

	return icon, nil
}
