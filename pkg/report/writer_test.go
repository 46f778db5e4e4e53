package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type sample struct {
	Name  string         `json:"name" yaml:"name"`
	Count int            `json:"count" yaml:"count"`
	Tags  map[string]int `json:"tags" yaml:"tags"`
}

func TestWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	require.NoError(t, w.Serialize(context.TODO(), sample{Name: "a", Count: 2}))
	assert.JSONEq(t, `{"name":"a","count":2,"tags":null}`, buf.String())
}

func TestWriter_YAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)

	require.NoError(t, w.Serialize(context.TODO(), sample{Name: "a", Count: 2}))

	var got sample
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "a", got.Name)
	assert.Equal(t, 2, got.Count)
}

func TestWriter_Table(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	require.NoError(t, w.Serialize(context.TODO(), sample{
		Name:  "a",
		Count: 2,
		Tags:  map[string]int{"x": 1},
	}))

	out := buf.String()
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Tags.x")
}

func TestWriter_TableEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	require.NoError(t, w.Serialize(context.TODO(), struct{}{}))
	assert.Contains(t, buf.String(), "<empty>")
}

func TestWriter_UnknownFormatDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("csv"), &buf)

	require.NoError(t, w.Serialize(context.TODO(), sample{Name: "a"}))
	assert.True(t, bytes.HasPrefix(bytes.TrimSpace(buf.Bytes()), []byte("{")))
}

func TestNewFileWriterOrStdout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	w := NewFileWriterOrStdout(FormatJSON, path)
	require.NoError(t, w.Serialize(context.TODO(), sample{Name: "a"}))
	require.NoError(t, w.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"name": "a"`)

	// Closing twice is safe.
	assert.NoError(t, w.Close())
}

func TestNewFileWriterOrStdout_EmptyPathFallsBack(t *testing.T) {
	w := NewFileWriterOrStdout(FormatJSON, "  ")
	assert.NoError(t, w.Close())
}

func TestSupportedFormats(t *testing.T) {
	assert.ElementsMatch(t, []string{"json", "yaml", "table"}, SupportedFormats())
}
