// Package ledger tracks which promotions have already been announced.
//
// The ledger is persisted as a single JSON blob holding the identities of
// the most recently announced promotions, oldest first, capped at
// MaxEntries. Within one scan it is loaded once, appended to in memory,
// and persisted once at the end.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MATrsx/freegameping/internal/storage"
	"github.com/sirupsen/logrus"
)

// BlobName is the single storage key holding the persisted ledger.
const BlobName = "ledger/announced.json"

// MaxEntries bounds the persisted ledger. Storefronts emit at most a
// handful of promotions per day, so 500 identities cover many weeks;
// older entries are forgotten (bounded false-negative risk accepted
// against unbounded storage growth).
const MaxEntries = 500

// Ledger is the in-memory working state for one scan. Contains answers
// against the snapshot loaded at the start of the scan only: an identity
// recorded mid-scan still fans out to the remaining guilds in the same
// scan, and is suppressed from the next scan onward.
type Ledger struct {
	entries  []string            // loaded snapshot, oldest first
	seen     map[string]struct{} // membership overlay over entries
	recorded []string            // identities recorded this scan, in order
	fresh    map[string]struct{} // membership overlay over recorded
}

// Load reads the persisted ledger. It fails soft: any read or decode
// error yields an empty ledger, so every promotion in this scan is
// treated as new (over-announce, never under-announce).
func Load(store storage.Interface) *Ledger {
	l := &Ledger{
		seen:  make(map[string]struct{}),
		fresh: make(map[string]struct{}),
	}

	data, err := store.Retrieve(BlobName)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logrus.Errorf("Failed to load ledger, starting empty: %v", err)
		}
		return l
	}

	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		logrus.Errorf("Failed to decode ledger, starting empty: %v", err)
		return l
	}

	l.entries = entries
	for _, identity := range entries {
		l.seen[identity] = struct{}{}
	}

	logrus.Debugf("Loaded ledger with %d entries", len(entries))
	return l
}

// Contains reports whether identity was already announced as of the
// snapshot loaded for this scan. Identities recorded during the current
// scan are deliberately not visible here.
func (l *Ledger) Contains(identity string) bool {
	_, ok := l.seen[identity]
	return ok
}

// Record marks identity as announced. It returns true when the identity
// is newly recorded; recording the same identity again within a scan, or
// one already present in the snapshot, is a no-op.
func (l *Ledger) Record(identity string) bool {
	if _, ok := l.seen[identity]; ok {
		return false
	}
	if _, ok := l.fresh[identity]; ok {
		return false
	}

	l.fresh[identity] = struct{}{}
	l.recorded = append(l.recorded, identity)
	return true
}

// Dirty reports whether any identity was recorded since the last Load or
// Persist.
func (l *Ledger) Dirty() bool {
	return len(l.recorded) > 0
}

// Len returns the number of identities the ledger currently tracks.
func (l *Ledger) Len() int {
	return len(l.entries) + len(l.recorded)
}

// Persist writes the ledger as one blob, truncated to the newest
// MaxEntries identities. Eviction is FIFO: an identity's position is
// fixed when first recorded and never refreshed. Persisting with nothing
// recorded is a no-op. A write error is returned for the caller to log;
// the in-memory decisions for this scan already took effect.
func (l *Ledger) Persist(store storage.Interface) error {
	if !l.Dirty() {
		logrus.Debug("Ledger unchanged, skipping persist")
		return nil
	}

	combined := append(l.entries, l.recorded...)
	if len(combined) > MaxEntries {
		combined = combined[len(combined)-MaxEntries:]
	}

	data, err := json.Marshal(combined)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}

	if err := store.Store(BlobName, data); err != nil {
		return fmt.Errorf("failed to persist ledger: %w", err)
	}

	// Fold the recorded identities into the snapshot so a second Persist
	// without new records is a no-op.
	l.entries = combined
	l.seen = make(map[string]struct{}, len(combined))
	for _, identity := range combined {
		l.seen[identity] = struct{}{}
	}
	l.recorded = nil
	l.fresh = make(map[string]struct{})

	logrus.Infof("Persisted ledger with %d entries", len(combined))
	return nil
}
