package conf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGetLines(t *testing.T) {
	path := writeFile(t, "[Time]\n# comment\nNTP=10.0.0.1\n\n  FallbackNTP=pool.ntp.org  \n")

	p := NewParser()
	lines, err := p.GetLines(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"[Time]", "NTP=10.0.0.1", "FallbackNTP=pool.ntp.org"}, lines)
}

func TestGetLines_KeepComments(t *testing.T) {
	path := writeFile(t, "#NTP=\nNTP=10.0.0.1\n")

	p := NewParser(WithSkipComments(false))
	lines, err := p.GetLines(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"#NTP=", "NTP=10.0.0.1"}, lines)
}

func TestGetLines_Errors(t *testing.T) {
	p := NewParser()

	_, err := p.GetLines("")
	assert.Error(t, err)

	_, err = p.GetLines(filepath.Join(t.TempDir(), "missing.conf"))
	assert.Error(t, err)

	big := writeFile(t, strings.Repeat("x\n", 100))
	_, err = NewParser(WithMaxSize(10)).GetLines(big)
	assert.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "bin.conf")
	require.NoError(t, os.WriteFile(invalid, []byte{0xff, 0xfe, 0xfd}, 0o644))
	_, err = p.GetLines(invalid)
	assert.Error(t, err)
}

func TestGetMap(t *testing.T) {
	path := writeFile(t, "NTP=10.0.0.1 10.0.0.2\nFallbackNTP=pool.ntp.org\n[Time]\n")

	p := NewParser()
	m, err := p.GetMap(path)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.1 10.0.0.2", m["NTP"])
	assert.Equal(t, "pool.ntp.org", m["FallbackNTP"])
	assert.Equal(t, "", m["[Time]"])
}

func TestGetMap_LastAssignmentWins(t *testing.T) {
	path := writeFile(t, "NTP=10.0.0.1\nNTP=10.0.0.2\n")

	m, err := NewParser().GetMap(path)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.2", m["NTP"])
}
