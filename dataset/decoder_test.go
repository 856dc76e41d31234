package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExampleIsCopy(t *testing.T) {
	first := Example()
	require.Len(t, first.Samples, 8)
	assert.Equal(t, -2.2, first.Samples[0])
	assert.Equal(t, -1.1, first.Samples[7])

	first.Samples[0] = 100
	assert.Equal(t, -2.2, Example().Samples[0])
}

func TestFormatForPath(t *testing.T) {
	cases := map[string]Format{
		"a.yaml":      FormatYAML,
		"a.YML":       FormatYAML,
		"dir/a.json":  FormatJSON,
		"a.f64":       FormatF64,
		"a.raw":       FormatF64,
		"a.bin":       FormatF64,
		"a.txt":       FormatText,
		"samples.csv": FormatText,
		"noext":       FormatText,
	}
	for path, want := range cases {
		assert.Equal(t, want, FormatForPath(path), path)
	}
}

func TestDecodeBytes(t *testing.T) {
	want := []float64{1, -2.5, 3e-2}

	cases := []struct {
		name   string
		format Format
		data   string
	}{
		{"yaml mapping", FormatYAML, "name: demo\nsamples: [1, -2.5, 0.03]\n"},
		{"yaml list", FormatYAML, "- 1\n- -2.5\n- 0.03\n"},
		{"json object", FormatJSON, `{"samples": [1, -2.5, 0.03]}`},
		{"json array", FormatJSON, ` [1, -2.5, 0.03] `},
		{"text spaces", FormatText, "1 -2.5 3e-2"},
		{"text mixed", FormatText, "# header\n1,\n-2.5\t3e-2\r\n\n"},
		{"auto is text", FormatAuto, "1;-2.5;0.03"},
	}

	decoder := NewDecoder(nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set, err := decoder.DecodeBytes([]byte(tc.data), tc.format)
			require.NoError(t, err)
			assert.InDeltaSlice(t, want, set.Samples, 1e-15)
		})
	}
}

func TestDecodeBytesErrors(t *testing.T) {
	decoder := NewDecoder(nil)

	_, err := decoder.DecodeBytes([]byte("1 two 3"), FormatText)
	assert.ErrorContains(t, err, "line 1")

	_, err = decoder.DecodeBytes([]byte("samples: [a, b]"), FormatYAML)
	assert.Error(t, err)

	_, err = decoder.DecodeBytes([]byte("{"), FormatJSON)
	assert.Error(t, err)

	_, err = decoder.DecodeBytes([]byte("1 NaN"), FormatText)
	assert.ErrorContains(t, err, "not finite")

	_, err = decoder.DecodeBytes([]byte("1"), Format("wav"))
	assert.ErrorContains(t, err, "unsupported")
}

func TestDecodeEmptyInputs(t *testing.T) {
	decoder := NewDecoder(nil)
	for _, format := range []Format{FormatText, FormatYAML, FormatF64} {
		set, err := decoder.DecodeBytes(nil, format)
		require.NoError(t, err, format)
		assert.Empty(t, set.Samples, format)
	}
}

func TestF64RoundTrip(t *testing.T) {
	samples := []float64{0, -1.5, 3.141592653589793, 1e300}
	raw := EncodeF64(samples)
	require.Len(t, raw, 32)

	// a trailing partial value is ignored
	raw = append(raw, 0x01, 0x02)

	set, err := NewDecoder(nil).DecodeBytes(raw, FormatF64)
	require.NoError(t, err)
	assert.Equal(t, samples, set.Samples)
}

func TestMaxSamples(t *testing.T) {
	decoder := NewDecoder(&DecoderConfig{Format: FormatAuto, MaxSamples: 2})
	set, err := decoder.DecodeBytes([]byte("1 2 3 4"), FormatText)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, set.Samples)
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "signal.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("samples:\n  - 0\n  - 1\n  - 0\n  - -1\n"), 0o644))

	set, err := NewDecoder(nil).DecodeFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "signal", set.Name)
	assert.Equal(t, []float64{0, 1, 0, -1}, set.Samples)

	rawPath := filepath.Join(dir, "signal.f64")
	require.NoError(t, os.WriteFile(rawPath, EncodeF64([]float64{2, 4}), 0o644))
	set, err = NewDecoder(nil).DecodeFile(rawPath)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4}, set.Samples)

	// explicit format overrides the extension
	textPath := filepath.Join(dir, "signal.dat")
	require.NoError(t, os.WriteFile(textPath, []byte("[5, 6]"), 0o644))
	set, err = NewDecoder(&DecoderConfig{Format: FormatJSON}).DecodeFile(textPath)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6}, set.Samples)

	_, err = NewDecoder(nil).DecodeFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestDecodeReader(t *testing.T) {
	set, err := NewDecoder(nil).DecodeReader(strings.NewReader("7, 8"), FormatText)
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 8}, set.Samples)
}
