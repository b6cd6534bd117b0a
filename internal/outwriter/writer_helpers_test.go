package outwriter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/arcadecab/cabcheck/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		expected string
	}{
		{
			name: "simple object",
			data: map[string]any{"name": "sf2", "players": 2},
			expected: `{
  "name": "sf2",
  "players": 2
}
`,
		},
		{
			name:     "status values marshal as names",
			data:     []schema.ControlsStatus{schema.ControlsNative, schema.ControlsUnknown},
			expected: "[\n  \"NATIVE\",\n  \"UNKNOWN\"\n]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeJSON(&buf, tt.data))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"a", "b"}, func(w *csv.Writer) error {
		return w.Write([]string{"1", "2"})
	})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", buf.String())
}

func TestWriteWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	err := writeWithFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	}, "Wrote test")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestWriteWithFile_WriterError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	err := writeWithFile(path, func(io.Writer) error {
		return errors.New("boom")
	}, "Wrote test")
	assert.EqualError(t, err, "boom")
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "VFREQ_SLIGHTLY_OFF", statusLabel(schema.VideoVFreqSlightlyOff, false))
	assert.Equal(t, "GOOD", statusLabel(schema.EmulationGood, false))
	assert.Equal(t, "UNKNOWN", overallLabel(schema.OverallUnknown, false))
	assert.Contains(t, statusLabel(schema.ControlsNative, true), "NATIVE")
}
