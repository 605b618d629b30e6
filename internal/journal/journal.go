// Package journal keeps an optional local record of produced tokens so a
// user can find them again. Only tokens and labels are stored, never the
// secret that opens them.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded token.
type Entry struct {
	ID      string `json:"id"`
	Token   string `json:"token"`
	Method  string `json:"method"`         // "password" or "passphrase"
	Note    string `json:"note,omitempty"` // user-provided label
	Created int64  `json:"created"`        // unix seconds
}

// Journal is a JSON file of entries guarded by a mutex.
type Journal struct {
	Entries []Entry `json:"entries"`

	path string
	mu   sync.Mutex
	now  func() time.Time
}

// Open loads the journal at path. A missing file yields an empty journal
// that is created on the first Save.
func Open(path string) (*Journal, error) {
	j := &Journal{path: path, now: time.Now}
	if err := j.Load(); err != nil {
		return nil, err
	}
	return j, nil
}

// Path returns the backing file.
func (j *Journal) Path() string {
	return j.path
}

// Load replaces the in-memory entries with the file contents.
func (j *Journal) Load() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.Open(j.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			j.Entries = []Entry{}
			return nil
		}
		return fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	var onDisk struct {
		Entries []Entry `json:"entries"`
	}
	if err := json.NewDecoder(f).Decode(&onDisk); err != nil {
		return fmt.Errorf("decode journal %s: %w", j.path, err)
	}
	j.Entries = onDisk.Entries
	if j.Entries == nil {
		j.Entries = []Entry{}
	}
	return nil
}

// Save writes the journal with owner-only permissions.
func (j *Journal) Save() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	b, err := json.MarshalIndent(struct {
		Entries []Entry `json:"entries"`
	}{j.Entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode journal: %w", err)
	}
	if err := os.WriteFile(j.path, b, 0600); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}

// Add records token and returns the new entry.
func (j *Journal) Add(token, method, note string) Entry {
	j.mu.Lock()
	defer j.mu.Unlock()

	e := Entry{
		ID:      uuid.NewString(),
		Token:   token,
		Method:  method,
		Note:    note,
		Created: j.now().Unix(),
	}
	j.Entries = append(j.Entries, e)
	return e
}

// List returns a copy of all entries, oldest first.
func (j *Journal) List() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]Entry(nil), j.Entries...)
}

// Get returns the entry with id, or nil.
func (j *Journal) Get(id string) *Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, e := range j.Entries {
		if e.ID == id {
			return &e
		}
	}
	return nil
}

// Delete removes the entry with id and reports whether it existed.
func (j *Journal) Delete(id string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	for i, e := range j.Entries {
		if e.ID == id {
			j.Entries = append(j.Entries[:i], j.Entries[i+1:]...)
			return true
		}
	}
	return false
}
