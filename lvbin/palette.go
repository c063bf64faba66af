package lvbin

import (
	"fmt"
	"image/color"
)

// readPalette splits the color table off the front of an indexed
// payload. Entries are stored on disk as B, G, R, A and returned in
// RGBA order. The table is always fully present in a well-formed
// payload, even when the image uses fewer distinct colors.
func readPalette(payload []byte, entries int) (color.Palette, []byte, error) {
	size := entries * 4
	if len(payload) < size {
		return nil, nil, fmt.Errorf("lvbin: palette needs %d bytes, have %d: %w", size, len(payload), ErrTruncated)
	}

	p := make(color.Palette, entries)
	for i := range p {
		o := i * 4
		p[i] = color.NRGBA{
			R: payload[o+2],
			G: payload[o+1],
			B: payload[o+0],
			A: payload[o+3],
		}
	}
	return p, payload[size:], nil
}

// appendPalette appends the on-disk form of a palette, re-emitting
// B, G, R, A entry order. The output is always entries*4 bytes;
// unused slots are zero.
func appendPalette(b []byte, p color.Palette, entries int) []byte {
	for i := 0; i < entries; i++ {
		if i >= len(p) {
			b = append(b, 0, 0, 0, 0)
			continue
		}
		c := color.NRGBAModel.Convert(p[i]).(color.NRGBA)
		b = append(b, c.B, c.G, c.R, c.A)
	}
	return b
}
