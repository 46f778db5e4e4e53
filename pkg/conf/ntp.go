package conf

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/homelab-ops/tsctl/pkg/errors"
)

// ntpKey is the timesyncd.conf assignment key for the server list.
const ntpKey = "NTP"

// confFileMode is used when the daemon configuration file is created.
const confFileMode = 0o644

// NTPLine returns the exact configuration line for the given servers,
// space-joined in order.
func NTPLine(servers []string) string {
	return ntpKey + "=" + strings.Join(servers, " ")
}

// HasLine reports whether the file at path contains the exact line.
// A missing file yields a NOT_FOUND structured error.
func HasLine(path, line string) (bool, error) {
	p := NewParser(WithSkipComments(false))
	lines, err := p.GetLines(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return false, errors.Wrap(errors.ErrCodeNotFound, fmt.Sprintf("configuration file %q missing", path), err)
		}
		return false, errors.Wrap(errors.ErrCodeCommandFailed, "reading configuration file", err)
	}

	for _, l := range lines {
		if l == line {
			return true, nil
		}
	}
	return false, nil
}

// EnsureNTPLine writes the NTP server line for servers into the file at
// path. By default it upserts: an existing NTP= assignment is replaced in
// place and the file is written back, so repeated runs leave a single
// occurrence. With legacyAppend the line is appended unconditionally,
// reproducing the original script behavior of one new line per run.
// It returns whether the file content changed.
func EnsureNTPLine(path string, servers []string, legacyAppend bool) (bool, error) {
	line := NTPLine(servers)

	if legacyAppend {
		return true, appendLine(path, line)
	}

	b, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, errors.Wrap(errors.ErrCodeCommandFailed, "reading configuration file", err)
	}

	lines := []string{}
	if len(b) > 0 {
		lines = strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	}

	replaced := false
	changed := false
	drop := make(map[int]bool)
	for i, l := range lines {
		trimmed := strings.TrimSpace(l)
		if !strings.HasPrefix(trimmed, ntpKey+"=") {
			continue
		}
		if !replaced {
			if trimmed != line {
				lines[i] = line
				changed = true
			}
			replaced = true
			continue
		}
		// Collapse duplicate assignments left behind by earlier
		// append-mode runs.
		drop[i] = true
		changed = true
	}

	if !replaced {
		lines = append(lines, line)
		changed = true
	}

	if !changed {
		slog.Debug("NTP server line already present", "path", path)
		return false, nil
	}

	out := make([]string, 0, len(lines))
	for i, l := range lines {
		if drop[i] {
			continue
		}
		out = append(out, l)
	}

	content := strings.Join(out, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), confFileMode); err != nil {
		return false, errors.Wrap(errors.ErrCodeCommandFailed, "writing configuration file", err)
	}

	slog.Info("updated NTP server line", "path", path, "line", line)
	return true, nil
}

// appendLine appends the line to the file, creating it when absent.
func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, confFileMode)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCommandFailed, "opening configuration file", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return errors.Wrap(errors.ErrCodeCommandFailed, "appending configuration line", err)
	}

	slog.Info("appended NTP server line", "path", path, "line", line)
	return nil
}
