package lvbin

import (
	"encoding/binary"
	"fmt"
)

// PixelFormat is the 5-bit color format code stored in the container
// header. Values follow the LVGL v8 lv_img_cf_t enumeration. Only the
// true-color and indexed formats have codecs; the raw formats are
// recognized on decode but cannot be produced.
type PixelFormat uint8

const (
	Unknown PixelFormat = iota
	Raw
	RawAlpha
	RawChromaKeyed
	TrueColor
	TrueColorAlpha
	TrueColorChromaKeyed
	Indexed1
	Indexed2
	Indexed4
	Indexed8
)

var formatNames = map[PixelFormat]string{
	Unknown:              "LV_IMG_CF_UNKNOWN",
	Raw:                  "LV_IMG_CF_RAW",
	RawAlpha:             "LV_IMG_CF_RAW_ALPHA",
	RawChromaKeyed:       "LV_IMG_CF_RAW_CHROMA_KEYED",
	TrueColor:            "LV_IMG_CF_TRUE_COLOR",
	TrueColorAlpha:       "LV_IMG_CF_TRUE_COLOR_ALPHA",
	TrueColorChromaKeyed: "LV_IMG_CF_TRUE_COLOR_CHROMA_KEYED",
	Indexed1:             "LV_IMG_CF_INDEXED_1BIT",
	Indexed2:             "LV_IMG_CF_INDEXED_2BIT",
	Indexed4:             "LV_IMG_CF_INDEXED_4BIT",
	Indexed8:             "LV_IMG_CF_INDEXED_8BIT",
}

func (f PixelFormat) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("LV_IMG_CF_UNKNOWN_%d", uint8(f))
}

// PaletteEntries returns the number of color table entries the format
// carries in its payload, or 0 for formats without a palette.
func (f PixelFormat) PaletteEntries() int {
	switch f {
	case Indexed1:
		return 2
	case Indexed2:
		return 4
	case Indexed4:
		return 16
	case Indexed8:
		return 256
	}
	return 0
}

// BitsPerPixel returns the bitmap depth of an indexed format, or 0 for
// any other format.
func (f PixelFormat) BitsPerPixel() int {
	switch f {
	case Indexed1:
		return 1
	case Indexed2:
		return 2
	case Indexed4:
		return 4
	case Indexed8:
		return 8
	}
	return 0
}

// Indexed reports whether the format stores palette indices rather
// than color components.
func (f PixelFormat) Indexed() bool {
	return f.BitsPerPixel() != 0
}

// Header is the unpacked form of the 32-bit container header.
type Header struct {
	Format PixelFormat
	Width  int
	Height int
}

// ExpectedPayload returns the payload size in bytes implied by the
// header for its format. For TrueColor the RGB565 size is returned;
// RGB888 occupies Width*Height*3 instead.
func (h Header) ExpectedPayload() int {
	switch h.Format {
	case TrueColorAlpha:
		return h.Width * h.Height * 4
	case Indexed1, Indexed2, Indexed4, Indexed8:
		return h.Format.PaletteEntries()*4 + (h.Width*h.Height*h.Format.BitsPerPixel()+7)/8
	default:
		return h.Width * h.Height * 2
	}
}

// EncodeHeader packs the format and dimensions into the 32-bit header
// word. Width and height are truncated to 11 bits; the masking is
// intentionally lossy to stay bit-for-bit compatible with what the
// firmware does on its side of the wire.
func EncodeHeader(format PixelFormat, width, height int) uint32 {
	return uint32(format)&(1<<formatBits-1) |
		uint32(width)&MaxDim<<widthShift |
		uint32(height)&MaxDim<<heightShift
}

// AppendHeader appends the packed little-endian header to b.
func AppendHeader(b []byte, format PixelFormat, width, height int) []byte {
	return binary.LittleEndian.AppendUint32(b, EncodeHeader(format, width, height))
}

// DecodeHeader unpacks the first 4 bytes of a container. It fails only
// when fewer than 4 bytes are supplied; suspicious but decodable
// headers (nonzero reserved bits, implausible dimensions, unknown
// format codes) are reported as warnings and never abort decoding.
func DecodeHeader(b []byte) (Header, []Warning, error) {
	if len(b) < HeaderSize {
		return Header{}, nil, fmt.Errorf("lvbin: header is %d bytes: %w", len(b), ErrTruncated)
	}

	v := binary.LittleEndian.Uint32(b)
	h := Header{
		Format: PixelFormat(v & (1<<formatBits - 1)),
		Width:  int(v >> widthShift & MaxDim),
		Height: int(v >> heightShift & MaxDim),
	}

	var warnings []Warning
	if rz := v >> formatBits & (1<<(widthShift-formatBits) - 1); rz != 0 {
		warnings = append(warnings, Warning(fmt.Sprintf("reserved header bits are %#x, expected 0", rz)))
	}
	if h.Width == 0 || h.Height == 0 {
		warnings = append(warnings, Warning(fmt.Sprintf("unusual dimensions %dx%d, header may be corrupted", h.Width, h.Height)))
	}
	if h.Format > Indexed8 {
		warnings = append(warnings, Warning(fmt.Sprintf("unknown color format %d", h.Format)))
	}

	return h, warnings, nil
}
