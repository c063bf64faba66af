package lvimg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvtools/lvimg/lvbin"
)

func TestAnalyze(t *testing.T) {
	payload := []byte{
		0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0xff,
		0x18, 0x60,
	}
	data := lvbin.EncodeContainer(lvbin.Indexed1, 14, 1, payload)

	var b bytes.Buffer
	c := New(nil, nil)
	require.NoError(t, c.Analyze(&b, data))

	out := b.String()
	assert.Contains(t, out, "LV_IMG_CF_INDEXED_1BIT")
	assert.Contains(t, out, "dimensions:   14x1")
	assert.Contains(t, out, "payload:      10 bytes")
	assert.Contains(t, out, "resolved as:  LV_IMG_CF_INDEXED_1BIT")
	assert.Contains(t, out, "palette:")
	assert.Contains(t, out, "#FFFFFF")
	assert.Contains(t, out, "#000000")
}

// A mis-tagged container is flagged with the resolver's verdict.
func TestAnalyzeOverride(t *testing.T) {
	data := lvbin.EncodeContainer(lvbin.Indexed1, 14, 14, make([]byte, 14*14*2))

	var b bytes.Buffer
	c := New(nil, nil)
	require.NoError(t, c.Analyze(&b, data))

	assert.Contains(t, b.String(), "resolved as:  LV_IMG_CF_TRUE_COLOR (payload size override)")
}

func TestAnalyzeTruncated(t *testing.T) {
	var b bytes.Buffer
	c := New(nil, nil)
	assert.ErrorIs(t, c.Analyze(&b, []byte{0x07, 0x38}), lvbin.ErrTruncated)
}
