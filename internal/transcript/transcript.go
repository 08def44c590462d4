// Package transcript holds the append-only conversational log for one
// course session. Corrections are new entries; nothing is edited or removed
// short of a full reset, so any test can assert against the final ordered
// sequence instead of intermediate state.
package transcript

import "iter"

// Sender identifies who produced a transcript entry.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Entry is one immutable line of the conversation.
type Entry struct {
	Sender  Sender `json:"sender"`
	Message string `json:"message"`

	// Seq is the monotonically increasing position, starting at 1.
	Seq int `json:"seq"`
}

// Transcript is an append-only ordered log of entries.
// The zero value is ready to use. Not safe for concurrent use; the owning
// orchestrator serializes access.
type Transcript struct {
	entries []Entry
}

// Append adds an entry at the end and returns it.
func (t *Transcript) Append(sender Sender, message string) Entry {
	e := Entry{
		Sender:  sender,
		Message: message,
		Seq:     len(t.entries) + 1,
	}
	t.entries = append(t.entries, e)
	return e
}

// Reset clears all entries. Used on course/topic change.
func (t *Transcript) Reset() {
	t.entries = nil
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// Last returns the most recent entry and whether one exists.
func (t *Transcript) Last() (Entry, bool) {
	if len(t.entries) == 0 {
		return Entry{}, false
	}
	return t.entries[len(t.entries)-1], true
}

// All yields the entries in insertion order. The sequence is restartable;
// each range starts from the beginning.
func (t *Transcript) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range t.entries {
			if !yield(e) {
				return
			}
		}
	}
}
