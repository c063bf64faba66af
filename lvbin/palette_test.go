package lvbin

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPaletteByteOrder(t *testing.T) {
	payload := []byte{
		0x01, 0x02, 0x03, 0x04, // entry 0, on disk as B G R A
		0x05, 0x06, 0x07, 0x08,
		0xaa, 0xbb, // trailing bitmap data
	}

	p, rest, err := readPalette(payload, 2)
	require.NoError(t, err)
	assert.Equal(t, color.Palette{
		color.NRGBA{R: 0x03, G: 0x02, B: 0x01, A: 0x04},
		color.NRGBA{R: 0x07, G: 0x06, B: 0x05, A: 0x08},
	}, p)
	assert.Equal(t, []byte{0xaa, 0xbb}, rest)
}

func TestReadPaletteTruncated(t *testing.T) {
	_, _, err := readPalette(make([]byte, 7), 2)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestAppendPaletteRoundTrip(t *testing.T) {
	p := color.Palette{
		color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	}

	b := appendPalette(nil, p, 2)
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0xff}, b)

	got, rest, err := readPalette(b, 2)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, p, got)
}

// The on-disk table is always entries*4 bytes even when the image uses
// fewer colors.
func TestAppendPalettePadding(t *testing.T) {
	p := color.Palette{color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}}

	b := appendPalette(nil, p, 4)
	require.Len(t, b, 16)
	assert.Equal(t, []byte{0x30, 0x20, 0x10, 0x40}, b[:4])
	assert.Equal(t, make([]byte, 12), b[4:])
}
