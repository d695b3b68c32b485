package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Entry represents a single journal entry.
type Entry struct {
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	Operation string `json:"op"` // Operation name.

	// Optional fields depending on operation.
	Secret      string   `json:"secret,omitempty"`      // Logical name acted on.
	Destination string   `json:"destination,omitempty"` // For move/copy.
	Directory   string   `json:"directory,omitempty"`   // For scope changes.
	Identities  []string `json:"identities,omitempty"`  // For scope changes.
	Length      int      `json:"length,omitempty"`      // For generate.
	Recursive   bool     `json:"recursive,omitempty"`   // For remove.
}

// NewEntry returns an entry for the given operation with the timestamp
// already set.
func NewEntry(op string) Entry {
	return Entry{
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000000Z"),
		Operation: op,
	}
}

// Log appends an entry to the journal of the store rooted at root.
// If the write fails, the entry is dropped. Operations should not fail
// just because journaling failed.
func Log(root string, entry Entry) {
	if root == "" {
		return
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	journalPath := JournalPath(root)
	if err := os.MkdirAll(filepath.Dir(journalPath), 0700); err != nil {
		return
	}

	// #nosec G306 -- the journal holds names and timestamps, not secrets.
	f, err := os.OpenFile(journalPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = f.Write(append(data, '\n'))
}

// JournalPath returns the path to the journal file of the store rooted
// at root. Returns empty string for an empty root.
func JournalPath(root string) string {
	if root == "" {
		return ""
	}
	return filepath.Join(root, ".passtree", "journal.jsonl")
}

// ReadEntries reads all entries from the journal of the store rooted at
// root. Returns an empty slice if the journal doesn't exist.
func ReadEntries(root string) ([]Entry, error) {
	journalPath := JournalPath(root)
	if journalPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(journalPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into journal entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
