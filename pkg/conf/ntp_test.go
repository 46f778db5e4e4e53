package conf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homelab-ops/tsctl/pkg/errors"
)

var servers = []string{"192.168.1.103", "192.168.9.7", "192.168.9.3"}

const wantLine = "NTP=192.168.1.103 192.168.9.7 192.168.9.3"

func countOccurrences(t *testing.T, path, line string) int {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	n := 0
	for _, l := range strings.Split(string(b), "\n") {
		if strings.TrimSpace(l) == line {
			n++
		}
	}
	return n
}

func TestNTPLine(t *testing.T) {
	assert.Equal(t, wantLine, NTPLine(servers))
}

func TestEnsureNTPLine_UpsertCreatesLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timesyncd.conf")
	require.NoError(t, os.WriteFile(path, []byte("[Time]\n"), 0o644))

	changed, err := EnsureNTPLine(path, servers, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, countOccurrences(t, path, wantLine))
}

func TestEnsureNTPLine_UpsertIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timesyncd.conf")
	require.NoError(t, os.WriteFile(path, []byte("[Time]\n"), 0o644))

	_, err := EnsureNTPLine(path, servers, false)
	require.NoError(t, err)

	changed, err := EnsureNTPLine(path, servers, false)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, countOccurrences(t, path, wantLine))
}

func TestEnsureNTPLine_UpsertReplacesStaleLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timesyncd.conf")
	require.NoError(t, os.WriteFile(path, []byte("[Time]\nNTP=10.9.9.9\n"), 0o644))

	changed, err := EnsureNTPLine(path, servers, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, countOccurrences(t, path, wantLine))
	assert.Equal(t, 0, countOccurrences(t, path, "NTP=10.9.9.9"))
}

func TestEnsureNTPLine_UpsertCollapsesDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timesyncd.conf")
	content := "[Time]\n" + wantLine + "\n" + wantLine + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	changed, err := EnsureNTPLine(path, servers, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, countOccurrences(t, path, wantLine))
}

func TestEnsureNTPLine_LegacyAppendDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timesyncd.conf")
	require.NoError(t, os.WriteFile(path, []byte("[Time]\n"), 0o644))

	// The original scripts appended unconditionally; two runs leave two
	// identical lines.
	_, err := EnsureNTPLine(path, servers, true)
	require.NoError(t, err)
	_, err = EnsureNTPLine(path, servers, true)
	require.NoError(t, err)

	assert.Equal(t, 2, countOccurrences(t, path, wantLine))
}

func TestEnsureNTPLine_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timesyncd.conf")

	changed, err := EnsureNTPLine(path, servers, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, countOccurrences(t, path, wantLine))
}

func TestHasLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timesyncd.conf")
	require.NoError(t, os.WriteFile(path, []byte("[Time]\n"+wantLine+"\n"), 0o644))

	ok, err := HasLine(path, wantLine)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = HasLine(path, "NTP=10.9.9.9")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasLine_MissingFile(t *testing.T) {
	_, err := HasLine(filepath.Join(t.TempDir(), "missing.conf"), wantLine)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
}
