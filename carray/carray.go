/*
Package carray extracts image assets from LVGL C source files.

Two source layouts are recognized. The multi-icon layout pairs any
number of `uint8_t <name>_map[]` byte arrays with matching
`lv_img_dsc_t <name>_icon` descriptors in the same file, as emitted by
ZMK keyboard firmware. The single-icon layout is one descriptor with
.header.* fields and an inline data array, as emitted by SquareLine
Studio and the LVGL image converter. Either way the result is the raw
payload bytes plus the declared name, dimensions and pixel format,
ready for the lvbin codec.
*/
package carray

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lvtools/lvimg/lvbin"
)

// ErrUnsupportedFormat is returned when the source matches neither
// known layout or declares a format token outside the six the codec
// can encode. It is fatal for the input file only; batch callers are
// expected to skip the file and carry on.
var ErrUnsupportedFormat = errors.New("carray: unsupported source format")

// Icon is one image extracted from source text.
type Icon struct {
	Name   string
	Width  int
	Height int
	Format lvbin.PixelFormat

	// Data is the raw payload: palette plus bitmap for indexed
	// formats, pixel words otherwise.
	Data []byte

	// DataSize is the declared .data_size with any sizeof() expression
	// resolved to the actual decoded byte count, which is always
	// authoritative over the literal text.
	DataSize int
}

// Bin returns the icon as a complete binary container.
func (i Icon) Bin() []byte {
	return lvbin.EncodeContainer(i.Format, i.Width, i.Height, i.Data)
}

var formatTokens = map[string]lvbin.PixelFormat{
	"TRUE_COLOR":       lvbin.TrueColor,
	"TRUE_COLOR_ALPHA": lvbin.TrueColorAlpha,
	"INDEXED_1BIT":     lvbin.Indexed1,
	"INDEXED_2BIT":     lvbin.Indexed2,
	"INDEXED_4BIT":     lvbin.Indexed4,
	"INDEXED_8BIT":     lvbin.Indexed8,
}

func parseFormatToken(token string) (lvbin.PixelFormat, error) {
	f, ok := formatTokens[strings.TrimPrefix(token, "LV_IMG_CF_")]
	if !ok {
		return lvbin.Unknown, fmt.Errorf("%w: color format token %q", ErrUnsupportedFormat, token)
	}
	return f, nil
}

var (
	arrayRe  = regexp.MustCompile(`(?s)uint8_t\s+(\w+)_map\[\]\s*=\s*\{([^}]+)\};`)
	descRe   = regexp.MustCompile(`(?s)const\s+lv_img_dsc_t\s+(\w+)_icon\s*=\s*\{([^}]+)\};`)
	hexRe    = regexp.MustCompile(`0[xX]([0-9a-fA-F]{1,2})`)
	widthRe  = regexp.MustCompile(`\.w\s*=\s*(\d+)`)
	heightRe = regexp.MustCompile(`\.h\s*=\s*(\d+)`)
	cfRe     = regexp.MustCompile(`\.cf\s*=\s*(\w+)`)
	dataRe   = regexp.MustCompile(`\.data\s*=\s*(\w+)`)

	singleNameRe     = regexp.MustCompile(`const\s+lv_img_dsc_t\s+(\w+)\s*=\s*\{`)
	singleCfRe       = regexp.MustCompile(`\.header\.cf\s*=\s*(\w+)`)
	singleWidthRe    = regexp.MustCompile(`\.header\.w\s*=\s*(\d+)`)
	singleHeightRe   = regexp.MustCompile(`\.header\.h\s*=\s*(\d+)`)
	singleDataSizeRe = regexp.MustCompile(`\.data_size\s*=\s*([^,\n]+)`)

	// Byte-swapped 16-bit color variant; preferred when present.
	swapBlockRe = regexp.MustCompile(`(?s)#if LV_COLOR_DEPTH == 16 && LV_COLOR_16_SWAP != 0(.+?)#endif`)
	braceRe     = regexp.MustCompile(`(?s)\{(.+?)\};`)
)

func parseBytes(s string) ([]byte, error) {
	matches := hexRe.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil, nil
	}
	b := make([]byte, len(matches))
	for i, m := range matches {
		v, err := strconv.ParseUint(m[1], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("carray: bad byte literal 0x%s: %w", m[1], err)
		}
		b[i] = byte(v)
	}
	return b, nil
}

// extractMulti parses the multi-icon layout, pairing each descriptor
// with its byte array by stripping the _map/_icon name suffixes.
func extractMulti(src string) ([]Icon, error) {
	arrays := make(map[string][]byte)
	for _, m := range arrayRe.FindAllStringSubmatch(src, -1) {
		b, err := parseBytes(m[2])
		if err != nil {
			return nil, err
		}
		if len(b) > 0 {
			arrays[m[1]] = b
		}
	}

	var icons []Icon
	for _, m := range descRe.FindAllStringSubmatch(src, -1) {
		name, desc := m[1], m[2]

		width := widthRe.FindStringSubmatch(desc)
		height := heightRe.FindStringSubmatch(desc)
		cf := cfRe.FindStringSubmatch(desc)
		data := dataRe.FindStringSubmatch(desc)
		if width == nil || height == nil || cf == nil || data == nil {
			continue
		}

		arrayName := strings.ReplaceAll(strings.ReplaceAll(data[1], "_map", ""), "_icon", "")
		b, ok := arrays[arrayName]
		if !ok {
			continue
		}

		format, err := parseFormatToken(cf[1])
		if err != nil {
			return nil, err
		}

		w, _ := strconv.Atoi(width[1])
		h, _ := strconv.Atoi(height[1])
		icons = append(icons, Icon{
			Name:     name,
			Width:    w,
			Height:   h,
			Format:   format,
			Data:     b,
			DataSize: len(b),
		})
	}

	return icons, nil
}

// extractSingle parses the single-icon layout. A byte-swapped color
// block wins over an unconditional array literal when both exist.
func extractSingle(src string) (Icon, error) {
	cf := singleCfRe.FindStringSubmatch(src)
	width := singleWidthRe.FindStringSubmatch(src)
	height := singleHeightRe.FindStringSubmatch(src)
	if cf == nil || width == nil || height == nil {
		return Icon{}, fmt.Errorf("%w: no image descriptor found", ErrUnsupportedFormat)
	}

	format, err := parseFormatToken(cf[1])
	if err != nil {
		return Icon{}, err
	}

	var data []byte
	if m := swapBlockRe.FindStringSubmatch(src); m != nil {
		if data, err = parseBytes(m[1]); err != nil {
			return Icon{}, err
		}
	}
	if len(data) == 0 {
		if m := braceRe.FindStringSubmatch(src); m != nil {
			if data, err = parseBytes(m[1]); err != nil {
				return Icon{}, err
			}
		}
	}
	if len(data) == 0 {
		return Icon{}, fmt.Errorf("%w: no image data array found", ErrUnsupportedFormat)
	}

	icon := Icon{
		Width:    mustAtoi(width[1]),
		Height:   mustAtoi(height[1]),
		Format:   format,
		Data:     data,
		DataSize: len(data),
	}
	if m := singleNameRe.FindStringSubmatch(src); m != nil {
		icon.Name = m[1]
	}

	// A literal data_size is taken at face value; a sizeof() expression
	// or unparseable text resolves to the decoded array length.
	if m := singleDataSizeRe.FindStringSubmatch(src); m != nil {
		expr := strings.TrimSuffix(strings.TrimSpace(m[1]), ",")
		if !strings.HasPrefix(expr, "sizeof(") {
			if n, err := strconv.Atoi(expr); err == nil {
				icon.DataSize = n
			}
		}
	}

	return icon, nil
}

// Extract returns every icon found in the source text, trying the
// multi-icon layout first and falling back to the single-icon layout.
func Extract(src string) ([]Icon, error) {
	icons, err := extractMulti(src)
	if err != nil {
		return nil, err
	}
	if len(icons) > 0 {
		return icons, nil
	}

	icon, err := extractSingle(src)
	if err != nil {
		return nil, err
	}
	return []Icon{icon}, nil
}

// ExtractNamed pulls a single icon out of a multi-icon source file by
// name. When the file carries a matching descriptor its metadata is
// used; a bare array without one falls back to the 14x14 1-bit layout
// shared by all ZMK modifier icons.
func ExtractNamed(src, name string) (Icon, error) {
	icons, err := extractMulti(src)
	if err != nil {
		return Icon{}, err
	}
	for _, icon := range icons {
		if icon.Name == name {
			return icon, nil
		}
	}

	re, err := regexp.Compile(`(?s)const.*?` + regexp.QuoteMeta(name) + `_map\[\]\s*=\s*\{(.*?)\};`)
	if err != nil {
		return Icon{}, err
	}
	m := re.FindStringSubmatch(src)
	if m == nil {
		return Icon{}, fmt.Errorf("%w: icon %q not found", ErrUnsupportedFormat, name)
	}
	b, err := parseBytes(m[1])
	if err != nil {
		return Icon{}, err
	}
	if len(b) == 0 {
		return Icon{}, fmt.Errorf("%w: icon %q has no data", ErrUnsupportedFormat, name)
	}

	return Icon{
		Name:     name,
		Width:    14,
		Height:   14,
		Format:   lvbin.Indexed1,
		Data:     b,
		DataSize: len(b),
	}, nil
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
