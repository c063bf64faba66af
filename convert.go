package lvimg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lvtools/lvimg/carray"
	"github.com/lvtools/lvimg/lvbin"
)

// ConvertOptions controls what ConvertFile produces beyond the .bin
// containers.
type ConvertOptions struct {
	// PNG additionally writes <name>.png and <name>_<N>x.png for each
	// icon.
	PNG bool

	// Scale is the upscale factor of the second PNG. Zero means 4.
	Scale int

	// Icon restricts extraction to a single named icon.
	Icon string
}

func (o ConvertOptions) scale() int {
	if o.Scale < 1 {
		return 4
	}
	return o.Scale
}

// ConvertFile extracts every icon from one C source file and writes a
// binary container per icon into targetDir, plus PNGs when requested.
// Extracted icons are recorded in the catalog database if one is
// attached.
func (c *Converter) ConvertFile(path, targetDir string, opts ConvertOptions) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var icons []carray.Icon
	if opts.Icon != "" {
		icon, err := carray.ExtractNamed(string(src), opts.Icon)
		if err != nil {
			return err
		}
		icons = []carray.Icon{icon}
	} else if icons, err = carray.Extract(string(src)); err != nil {
		return err
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, icon := range icons {
		name := icon.Name
		if name == "" {
			name = base
		}

		bin := icon.Bin()
		c.logger.Printf("%s: %s %dx%d, %d payload bytes", name, icon.Format, icon.Width, icon.Height, len(icon.Data))

		if err := os.WriteFile(filepath.Join(targetDir, name+".bin"), bin, 0644); err != nil {
			return err
		}

		if c.db != nil {
			if _, err := c.db.Add(name, lvbin.Header{Format: icon.Format, Width: icon.Width, Height: icon.Height}, bin); err != nil {
				return err
			}
		}

		if !opts.PNG {
			continue
		}
		if err := c.writePNGs(bin, targetDir, name, opts.scale()); err != nil {
			return err
		}
	}

	return nil
}

func (c *Converter) writePNGs(bin []byte, targetDir, name string, scale int) error {
	img, err := lvbin.DecodeBytes(bin)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	for _, w := range img.Warnings {
		c.logger.Printf("%s: warning: %s", name, w)
	}

	for _, out := range []struct {
		path  string
		scale int
	}{
		{filepath.Join(targetDir, name+".png"), 1},
		{filepath.Join(targetDir, fmt.Sprintf("%s_%dx.png", name, scale)), scale},
	} {
		f, err := os.Create(out.path)
		if err != nil {
			return err
		}
		if err := WritePNG(f, img, out.scale); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	return nil
}
