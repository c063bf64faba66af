package lvimg

import (
	"image"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
)

// WritePNG encodes m to w as PNG, optionally upscaled by an integer
// factor using nearest-neighbor replication so pixel art stays crisp.
func WritePNG(w io.Writer, m image.Image, scale int) error {
	if scale > 1 {
		b := m.Bounds()
		dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), m, b, xdraw.Src, nil)
		m = dst
	}
	return png.Encode(w, m)
}
