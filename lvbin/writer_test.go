package lvbin

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeContainer(t *testing.T) {
	payload := []byte{0xde, 0xad, 0xbe, 0xef}
	data := EncodeContainer(TrueColorAlpha, 1, 1, payload)

	require.Len(t, data, HeaderSize+len(payload))
	assert.Equal(t, AppendHeader(nil, TrueColorAlpha, 1, 1), data[:HeaderSize])
	assert.Equal(t, payload, data[HeaderSize:])
}

// For payloads of exactly the expected size, unpacking the bitmap and
// packing it again must not lose a single bit at any depth.
func TestBitmapRoundTrip(t *testing.T) {
	const w, h = 5, 3

	for _, format := range []PixelFormat{Indexed1, Indexed2, Indexed4, Indexed8} {
		bpp := format.BitsPerPixel()

		indices := make([]byte, w*h)
		for i := range indices {
			indices[i] = byte(i*7) & byte(1<<bpp-1)
		}
		bitmap := packIndices(indices, bpp)
		assert.Len(t, bitmap, (w*h*bpp+7)/8, format.String())

		payload := appendPalette(nil, grayRamp(format.PaletteEntries()), format.PaletteEntries())
		payload = append(payload, bitmap...)
		data := EncodeContainer(format, w, h, payload)

		var d decoder
		require.NoError(t, d.decode(data, false), format.String())
		assert.Equal(t, indices, d.indices, format.String())
		assert.Equal(t, bitmap, packIndices(d.indices, bpp), format.String())
	}
}

// grayRamp builds a palette of distinct opaque grays.
func grayRamp(entries int) color.Palette {
	p := make(color.Palette, entries)
	for i := range p {
		v := uint8(i * 255 / (entries - 1))
		p[i] = color.NRGBA{v, v, v, 0xff}
	}
	return p
}

func TestEncodeDecodeTrueColorAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{0x12, 0x34, 0x56, 0x78})
	src.SetNRGBA(1, 0, color.NRGBA{0xff, 0x00, 0x00, 0xff})
	src.SetNRGBA(0, 1, color.NRGBA{0x00, 0x00, 0x00, 0x00})
	src.SetNRGBA(1, 1, color.NRGBA{0xff, 0xff, 0xff, 0xff})

	var b bytes.Buffer
	require.NoError(t, Encode(&b, src, TrueColorAlpha))

	img, err := DecodeBytes(b.Bytes())
	require.NoError(t, err)
	assert.Equal(t, Header{Format: TrueColorAlpha, Width: 2, Height: 2}, img.Header)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			assert.Equal(t, src.NRGBAAt(x, y), img.NRGBAAt(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

// Colors representable in RGB565 after high-bit replication survive an
// encode/decode cycle exactly.
func TestEncodeDecodeTrueColor(t *testing.T) {
	colors := []color.NRGBA{
		{0xff, 0xff, 0xff, 0xff},
		{0x00, 0x00, 0x00, 0xff},
		{0x52, 0x55, 0x52, 0xff},
		{0xff, 0x00, 0x00, 0xff},
	}

	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i, c := range colors {
		src.SetNRGBA(i%2, i/2, c)
	}

	var b bytes.Buffer
	require.NoError(t, Encode(&b, src, TrueColor))
	require.Len(t, b.Bytes(), HeaderSize+2*2*2)

	img, err := DecodeBytes(b.Bytes())
	require.NoError(t, err)
	for i, c := range colors {
		assert.Equal(t, c, img.NRGBAAt(i%2, i/2), "pixel %d", i)
	}
}

func TestEncodeDecodeIndexedPaletted(t *testing.T) {
	palette := color.Palette{
		color.NRGBA{0xff, 0xff, 0xff, 0xff},
		color.NRGBA{0x00, 0x00, 0x00, 0xff},
	}
	src := image.NewPaletted(image.Rect(0, 0, 4, 1), palette)
	for x, idx := range []uint8{1, 0, 0, 1} {
		src.SetColorIndex(x, 0, idx)
	}

	var b bytes.Buffer
	require.NoError(t, Encode(&b, src, Indexed1))
	// Header, 2-entry palette, 4 pixels in a single byte.
	require.Len(t, b.Bytes(), HeaderSize+8+1)

	img, err := DecodeBytes(b.Bytes())
	require.NoError(t, err)
	assert.Equal(t, palette, img.Palette)
	for x, idx := range []uint8{1, 0, 0, 1} {
		assert.Equal(t, palette[idx], img.NRGBAAt(x, 0), "pixel %d", x)
	}
}

// Images with more colors than the palette holds are quantized down
// to fit.
func TestEncodeIndexedQuantized(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 16, 2))
	for x := 0; x < 16; x++ {
		v := uint8(x * 17)
		src.SetNRGBA(x, 0, color.NRGBA{v, 0, 0, 0xff})
		src.SetNRGBA(x, 1, color.NRGBA{0, v, 0, 0xff})
	}

	var b bytes.Buffer
	require.NoError(t, Encode(&b, src, Indexed4))

	img, err := DecodeBytes(b.Bytes())
	require.NoError(t, err)
	assert.Equal(t, Header{Format: Indexed4, Width: 16, Height: 2}, img.Header)
	assert.Len(t, img.Palette, 16)
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	for _, f := range []PixelFormat{Unknown, Raw, RawAlpha, TrueColorChromaKeyed} {
		var b bytes.Buffer
		assert.ErrorIs(t, Encode(&b, src, f), ErrUnsupportedFormat, f.String())
	}
}
