/*
Package lvbin implements a decoder and encoder for the LVGL v8 binary
image container.

A container is a 4-byte little-endian header followed by the payload.
The header packs the color format into 5 bits, 5 reserved bits and two
11-bit dimensions, so images are limited to 2047 pixels per side. For
the indexed formats the payload starts with a fixed-size color table of
4 bytes per entry stored in B, G, R, A order, followed by the bitmap
packed most-significant-bit first with no row padding; pixel (x, y)
lives at bit index (y*width+x)*bpp. True-color payloads carry raw
RGB565, RGB888 or RGBA8888 pixel data and no palette.

Upstream producers frequently mis-set the header format field, so the
decoder re-derives the format from the payload length when it exactly
matches a true-color size, and degrades gracefully on truncated
bitmaps rather than failing. Structural problems that do not prevent
producing a raster are reported as Warnings alongside the image.
*/
package lvbin

import "errors"

const (
	// HeaderSize is the size in bytes of the packed container header.
	HeaderSize = 4

	// MaxDim is the largest width or height the 11-bit header fields
	// can represent. Larger values are truncated on encode.
	MaxDim = 1<<dimBits - 1

	formatBits  = 5
	dimBits     = 11
	widthShift  = 10
	heightShift = widthShift + dimBits
)

var (
	// ErrTruncated is returned when the input is structurally too
	// short: a header under 4 bytes or a payload smaller than the
	// palette it must contain.
	ErrTruncated = errors.New("lvbin: not enough image data")

	// ErrUnsupportedFormat is returned when asked to encode a format
	// that has no encoder.
	ErrUnsupportedFormat = errors.New("lvbin: unsupported color format")
)

// Warning flags a non-fatal problem found while decoding, such as
// nonzero reserved header bits or a truncated bitmap. Decoding
// continues with best-effort defaults.
type Warning string
