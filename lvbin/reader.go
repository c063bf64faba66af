package lvbin

import (
	"fmt"
	"image"
	"image/color"
	"io"
)

// Image is a fully decoded container: the unpacked header, the palette
// for indexed formats (nil otherwise), any warnings collected along the
// way and the RGBA raster itself.
type Image struct {
	Header   Header
	Palette  color.Palette
	Warnings []Warning
	*image.NRGBA
}

type decoder struct {
	header   Header
	resolved PixelFormat
	palette  color.Palette
	indices  []byte
	warnings []Warning
	img      *image.NRGBA
}

// Resolve decides which codec applies to a container. An exact payload
// length match for a true-color format always beats the declared
// header tag because producers are known to mis-set the format field
// while the payload stays standard. Precedence is RGB565, RGB888,
// RGBA. With no exact match a recognized declared format stands, and
// anything else falls back to RGB565 as the format of last resort.
func Resolve(declared PixelFormat, payloadLen, width, height int) PixelFormat {
	switch payloadLen {
	case width * height * 2, width * height * 3:
		return TrueColor
	case width * height * 4:
		return TrueColorAlpha
	}

	switch declared {
	case TrueColor, TrueColorAlpha, Indexed1, Indexed2, Indexed4, Indexed8:
		return declared
	}
	return TrueColor
}

func (d *decoder) warn(format string, args ...any) {
	d.warnings = append(d.warnings, Warning(fmt.Sprintf(format, args...)))
}

func (d *decoder) decode(data []byte, configOnly bool) error {
	h, warnings, err := DecodeHeader(data)
	if err != nil {
		return err
	}
	d.header, d.warnings = h, warnings

	payload := data[HeaderSize:]
	d.resolved = Resolve(h.Format, len(payload), h.Width, h.Height)
	if d.resolved != h.Format {
		d.warn("payload length %d overrides declared format %v with %v", len(payload), h.Format, d.resolved)
	}

	if configOnly {
		return nil
	}

	d.img = image.NewNRGBA(image.Rect(0, 0, h.Width, h.Height))

	switch d.resolved {
	case Indexed1, Indexed2, Indexed4, Indexed8:
		return d.decodeIndexed(payload)
	case TrueColorAlpha:
		d.decodeTrueColorAlpha(payload)
	default:
		d.decodeTrueColor(payload)
	}
	return nil
}

// decodeIndexed reads the palette then unpacks one index per pixel
// from the MSB-first bitmap. A bitmap shorter than required is not an
// error; the remaining pixels take palette entry 0 so that truncated
// captures still produce a viewable image.
func (d *decoder) decodeIndexed(payload []byte) error {
	palette, bitmap, err := readPalette(payload, d.resolved.PaletteEntries())
	if err != nil {
		return err
	}
	d.palette = palette

	bpp := d.resolved.BitsPerPixel()
	w, h := d.header.Width, d.header.Height
	perByte := 8 / bpp
	mask := byte(1<<bpp - 1)

	if need := (w*h*bpp + 7) / 8; len(bitmap) < need {
		d.warn("bitmap is %d bytes, need %d; missing pixels use palette entry 0", len(bitmap), need)
	}

	d.indices = make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			var idx byte
			if bi := i / perByte; bi < len(bitmap) {
				shift := uint(8 - bpp - i%perByte*bpp)
				idx = bitmap[bi] >> shift & mask
			}
			d.indices[i] = idx
			d.img.SetNRGBA(x, y, palette[idx].(color.NRGBA))
		}
	}
	return nil
}

// decodeTrueColor handles both RGB565 and RGB888, telling them apart
// purely by payload length. A payload matching neither size is read as
// RGB565 for as long as the data lasts with the remainder zero-filled;
// upstream metadata is unreliable enough that best effort beats a hard
// error here.
func (d *decoder) decodeTrueColor(payload []byte) {
	w, h := d.header.Width, d.header.Height

	if len(payload) == w*h*3 {
		for i := 0; i < w*h; i++ {
			o := i * 3
			d.img.SetNRGBA(i%w, i/w, color.NRGBA{payload[o], payload[o+1], payload[o+2], 0xff})
		}
		return
	}

	if len(payload) != w*h*2 {
		d.warn("payload length %d matches neither RGB565 (%d) nor RGB888 (%d); assuming RGB565",
			len(payload), w*h*2, w*h*3)
	}

	for i := 0; i < w*h; i++ {
		c := color.NRGBA{A: 0xff}
		if o := i * 2; o+2 <= len(payload) {
			p := uint16(payload[o]) | uint16(payload[o+1])<<8
			c.R = uint8(p>>11&0x1f) << 3
			c.G = uint8(p>>5&0x3f) << 2
			c.B = uint8(p&0x1f) << 3
			// Replicate the high bits into the low bits so full-scale
			// channels reach 255 instead of banding.
			c.R |= c.R >> 5
			c.G |= c.G >> 6
			c.B |= c.B >> 5
		}
		d.img.SetNRGBA(i%w, i/w, c)
	}
}

func (d *decoder) decodeTrueColorAlpha(payload []byte) {
	w, h := d.header.Width, d.header.Height

	if need := w * h * 4; len(payload) < need {
		d.warn("payload is %d bytes, need %d; missing pixels are transparent", len(payload), need)
	}

	for i := 0; i < w*h; i++ {
		var c color.NRGBA
		if o := i * 4; o+4 <= len(payload) {
			c = color.NRGBA{payload[o], payload[o+1], payload[o+2], payload[o+3]}
		}
		d.img.SetNRGBA(i%w, i/w, c)
	}
}

// DecodeBytes decodes a binary container held in memory.
func DecodeBytes(data []byte) (*Image, error) {
	var d decoder
	if err := d.decode(data, false); err != nil {
		return nil, err
	}
	return &Image{
		Header:   d.header,
		Palette:  d.palette,
		Warnings: d.warnings,
		NRGBA:    d.img,
	}, nil
}

// Decode reads a binary container from r and returns it as an
// image.Image.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data)
}

// DecodeConfig returns the color model and dimensions of a container
// without decoding the pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var b [HeaderSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = ErrTruncated
		}
		return image.Config{}, err
	}
	h, _, err := DecodeHeader(b[:])
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      h.Width,
		Height:     h.Height,
	}, nil
}
