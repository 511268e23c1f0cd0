package layouts

import "fmt"

// UnknownLabel is drawn for layouts that could not be resolved to a tag.
const UnknownLabel = "??"

// LayoutCode is a resolved input language. Codes compare with ==; two
// identifiers mapping to the same tag (en-US, en-GB) are the same code.
// The zero value is unknown(0x0000).
type LayoutCode struct {
	tag string
	raw uint16
}

func Known(tag string) LayoutCode {
	return LayoutCode{tag: tag}
}

func Unknown(raw uint16) LayoutCode {
	return LayoutCode{raw: raw}
}

func (c LayoutCode) IsUnknown() bool {
	return c.tag == ""
}

func (c LayoutCode) Tag() string {
	return c.tag
}

// Raw returns the identifier an unknown code carries. Known codes return 0.
func (c LayoutCode) Raw() uint16 {
	return c.raw
}

func (c LayoutCode) Label() string {
	if c.IsUnknown() {
		return UnknownLabel
	}
	return c.tag
}

func (c LayoutCode) String() string {
	if c.IsUnknown() {
		return fmt.Sprintf("unknown(0x%04X)", c.raw)
	}
	return c.tag
}
