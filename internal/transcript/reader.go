package transcript

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
)

// ReadRecent loads the most recent user and assistant entries from the
// transcript file at path, keeping the last limit entries in original
// order. A missing path or file yields an empty sequence, not an error.
// Malformed lines are skipped; blank lines are ignored.
func ReadRecent(path string, limit int) ([]Entry, error) {
	if path == "" || !FileExists(path) {
		return []Entry{}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	// Increase buffer size for large lines
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var entries []Entry
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			// Skip malformed lines
			continue
		}
		if entry.Type != "user" && entry.Type != "assistant" {
			continue
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// FileExists reports whether path names an existing file.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
