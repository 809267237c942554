package eventscout

import (
	"context"
	"sort"
)

// Corpus summarizes the persisted records: every known tag and every known
// event id, each sorted and free of duplicates.
type Corpus struct {
	Tags []string
	IDs  []string
}

// NewCorpus builds a Corpus from records, sorting and de-duplicating tags and ids.
func NewCorpus(records []*Record) *Corpus {
	tags := make(map[string]struct{})
	ids := make(map[string]struct{})
	for _, r := range records {
		if r == nil {
			continue
		}
		for _, tag := range r.Tags {
			tags[tag] = struct{}{}
		}
		for _, e := range r.Events {
			if e.ID != "" {
				ids[e.ID] = struct{}{}
			}
		}
	}
	return &Corpus{Tags: sortedKeys(tags), IDs: sortedKeys(ids)}
}

// HasID reports whether id is already used by an event in the corpus.
func (c *Corpus) HasID(id string) bool {
	i := sort.SearchStrings(c.IDs, id)
	return i < len(c.IDs) && c.IDs[i] == id
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RecordStore persists records in per-category store files.
type RecordStore interface {
	// LoadCorpus scans every store file and returns the known tags and ids.
	// Store files that cannot be parsed are skipped.
	// Returns ENOTFOUND if the store location does not exist.
	LoadCorpus(ctx context.Context) (*Corpus, error)

	// AppendRecord appends rec to the store file of its category and returns
	// the path written. Existing content is never rewritten.
	AppendRecord(ctx context.Context, rec *Record) (path string, err error)

	// PathFor returns the store file that records of category c are appended to.
	PathFor(c Category) string
}
