package stxc

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const textWaveform = `# captured on channel 3
10

  -5
12 mV
abc
99999
-99999
+7
 # indented comment
99999999999999999999
`

func TestParseLeadingInt(t *testing.T) {
	var cases = []struct {
		line string
		want int64
		ok   bool
	}{
		{"42", 42, true},
		{"  -17", -17, true},
		{"+3", 3, true},
		{"\t8 trailing", 8, true},
		{"12abc", 12, true},
		{"", 0, false},
		{"# 5", 0, false},
		{"-", 0, false},
		{"x1", 0, false},
		{"\r", 0, false},
	}

	for _, c := range cases {
		var v, ok = parseLeadingInt(c.line, 64)
		assert.Equal(t, c.ok, ok, "%q", c.line)
		assert.Equal(t, c.want, v, "%q", c.line)
	}

	var _, ok = parseLeadingInt("3000000000", 32)
	assert.False(t, ok, "out of range for the destination")
}

func TestReadWaveformText(t *testing.T) {
	var signed, err = ReadWaveformText(strings.NewReader(textWaveform), Conditioner{Unsigned14: false, NoCenter: false})
	require.NoError(t, err)
	assert.Equal(t, []int{10, -5, 12, 8191, -8192, 7}, signed)

	centered, err := ReadWaveformText(strings.NewReader(textWaveform), Conditioner{Unsigned14: true, NoCenter: false})
	require.NoError(t, err)
	assert.Equal(t, []int{-8182, -8192, -8180, 8191, -8192, -8185}, centered)

	raw, err := ReadWaveformText(strings.NewReader(textWaveform), Conditioner{Unsigned14: true, NoCenter: true})
	require.NoError(t, err)
	assert.Equal(t, []int{10, 0, 12, 16383, 0, 7}, raw)
}

func TestReadWaveformBin16(t *testing.T) {
	var data = []byte{0x01, 0x00, 0xFF, 0xFF, 0x00, 0x20, 0x05}

	var signed, err = ReadWaveformBin16(bytes.NewReader(data), Conditioner{Unsigned14: false, NoCenter: false})
	require.NoError(t, err)
	assert.Equal(t, []int{1, -1, 8191}, signed)

	centered, err := ReadWaveformBin16(bytes.NewReader(data), Conditioner{Unsigned14: true, NoCenter: false})
	require.NoError(t, err)
	assert.Equal(t, []int{-8191, 8191, 0}, centered)
}

func TestLoadWaveform(t *testing.T) {
	var dir = t.TempDir()

	var text = filepath.Join(dir, "wave.txt")
	require.NoError(t, os.WriteFile(text, []byte(textWaveform), 0o600))

	var samples, err = LoadWaveform(text, false, Conditioner{}) //nolint:exhaustruct
	require.NoError(t, err)
	assert.Len(t, samples, 6)

	var empty = filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing\n\n"), 0o600))

	_, err = LoadWaveform(empty, false, Conditioner{}) //nolint:exhaustruct
	require.ErrorIs(t, err, ErrNoSamples)
	assert.Contains(t, err.Error(), empty)

	var missing = filepath.Join(dir, "missing.bin")
	_, err = LoadWaveform(missing, true, Conditioner{}) //nolint:exhaustruct
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), missing)
}
