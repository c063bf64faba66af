package lvimg

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePNGScale(t *testing.T) {
	red := color.NRGBA{0xff, 0x00, 0x00, 0xff}
	blue := color.NRGBA{0x00, 0x00, 0xff, 0xff}

	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, red)
	src.SetNRGBA(1, 0, blue)

	var b bytes.Buffer
	require.NoError(t, WritePNG(&b, src, 3))

	m, err := png.Decode(&b)
	require.NoError(t, err)
	assert.Equal(t, 6, m.Bounds().Dx())
	assert.Equal(t, 3, m.Bounds().Dy())

	// Nearest-neighbor replication keeps the pixels crisp: each source
	// pixel becomes an exact 3x3 block.
	for y := 0; y < 3; y++ {
		for x := 0; x < 6; x++ {
			want := red
			if x >= 3 {
				want = blue
			}
			got := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			assert.Equal(t, want, got, "pixel (%d,%d)", x, y)
		}
	}
}

func TestWritePNGNoScale(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 2))

	var b bytes.Buffer
	require.NoError(t, WritePNG(&b, src, 1))

	cfg, err := png.DecodeConfig(&b)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Width)
	assert.Equal(t, 2, cfg.Height)
}
