package lvbin

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

// EncodeContainer prepends the packed header to an already-built
// payload, producing a complete container. It is the encode path used
// when the payload bytes come straight out of extracted source code.
func EncodeContainer(format PixelFormat, width, height int, payload []byte) []byte {
	b := AppendHeader(make([]byte, 0, HeaderSize+len(payload)), format, width, height)
	return append(b, payload...)
}

// packIndices packs one palette index per pixel into an MSB-first
// bitmap with no row padding, the exact inverse of decodeIndexed.
func packIndices(indices []byte, bpp int) []byte {
	out := make([]byte, 0, (len(indices)*bpp+7)/8)
	mask := byte(1<<bpp - 1)

	var cur byte
	bits := 0
	for _, idx := range indices {
		cur = cur<<bpp | idx&mask
		if bits += bpp; bits == 8 {
			out = append(out, cur)
			cur, bits = 0, 0
		}
	}
	if bits > 0 {
		out = append(out, cur<<(8-bits))
	}
	return out
}

type encoder struct {
	w      io.Writer
	format PixelFormat
}

func (e *encoder) write(b []byte) error {
	_, err := e.w.Write(b)
	return err
}

func (e *encoder) encodeIndexed(m image.Image) error {
	b := m.Bounds()
	entries := e.format.PaletteEntries()

	pm, _ := m.(*image.Paletted)
	if pm == nil || len(pm.Palette) > entries {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, entries), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	if err := e.write(appendPalette(nil, pm.Palette, entries)); err != nil {
		return err
	}

	indices := make([]byte, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			indices = append(indices, pm.ColorIndexAt(x, y))
		}
	}
	return e.write(packIndices(indices, e.format.BitsPerPixel()))
}

func (e *encoder) encodeTrueColor(m image.Image) error {
	b := m.Bounds()
	var tmp [2]byte
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			p := uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
			tmp[0], tmp[1] = byte(p), byte(p>>8)
			if err := e.write(tmp[:]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *encoder) encodeTrueColorAlpha(m image.Image) error {
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			if err := e.write([]byte{c.R, c.G, c.B, c.A}); err != nil {
				return err
			}
		}
	}
	return nil
}

// Encode writes the image m to w as a binary container in the given
// pixel format. Indexed formats are quantized down to the format's
// palette size first; TrueColor is written as RGB565. Dimensions
// larger than MaxDim are truncated in the header the same way the
// on-wire format does.
func Encode(w io.Writer, m image.Image, format PixelFormat) error {
	e := encoder{w: w, format: format}
	b := m.Bounds()

	if err := e.write(AppendHeader(nil, format, b.Dx(), b.Dy())); err != nil {
		return err
	}

	switch format {
	case Indexed1, Indexed2, Indexed4, Indexed8:
		return e.encodeIndexed(m)
	case TrueColor:
		return e.encodeTrueColor(m)
	case TrueColorAlpha:
		return e.encodeTrueColorAlpha(m)
	default:
		return fmt.Errorf("%w: %v has no encoder", ErrUnsupportedFormat, format)
	}
}
