package lvimg

import (
	"fmt"
	"image/color"
	"io"

	"github.com/lvtools/lvimg/lvbin"
)

// Analyze writes a structured breakdown of an existing binary
// container to w: the unpacked header, any header warnings, the
// payload size against what each candidate format would expect, the
// resolver's verdict and the palette for indexed formats.
func (c *Converter) Analyze(w io.Writer, data []byte) error {
	h, warnings, err := lvbin.DecodeHeader(data)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "header bytes: % x\n", data[:lvbin.HeaderSize])
	fmt.Fprintf(w, "format:       %s (%d)\n", h.Format, uint8(h.Format))
	fmt.Fprintf(w, "dimensions:   %dx%d\n", h.Width, h.Height)
	for _, warning := range warnings {
		fmt.Fprintf(w, "warning:      %s\n", warning)
	}

	payload := data[lvbin.HeaderSize:]
	fmt.Fprintf(w, "payload:      %d bytes\n", len(payload))

	fmt.Fprintln(w, "expected payload sizes:")
	fmt.Fprintf(w, "  RGB565: %d\n", h.Width*h.Height*2)
	fmt.Fprintf(w, "  RGB888: %d\n", h.Width*h.Height*3)
	fmt.Fprintf(w, "  RGBA:   %d\n", h.Width*h.Height*4)
	for _, f := range []lvbin.PixelFormat{lvbin.Indexed1, lvbin.Indexed2, lvbin.Indexed4, lvbin.Indexed8} {
		fmt.Fprintf(w, "  %s: %d\n", f, lvbin.Header{Format: f, Width: h.Width, Height: h.Height}.ExpectedPayload())
	}

	resolved := lvbin.Resolve(h.Format, len(payload), h.Width, h.Height)
	if resolved != h.Format {
		fmt.Fprintf(w, "resolved as:  %s (payload size override)\n", resolved)
	} else {
		fmt.Fprintf(w, "resolved as:  %s\n", resolved)
	}

	img, err := lvbin.DecodeBytes(data)
	if err != nil {
		return err
	}
	for _, warning := range img.Warnings {
		fmt.Fprintf(w, "warning:      %s\n", warning)
	}
	if img.Palette != nil {
		fmt.Fprintln(w, "palette:")
		for i, entry := range img.Palette {
			c := color.NRGBAModel.Convert(entry).(color.NRGBA)
			fmt.Fprintf(w, "  %3d: #%02X%02X%02X (A=%d)\n", i, c.R, c.G, c.B, c.A)
		}
	}

	return nil
}
