package search

import (
	"slices"
	"strings"
	"time"

	"github.com/fwojciec/docsearch"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Entry is the indexed, immutable form of a source record.
// Entries must not be modified once the index is built.
type Entry struct {
	Kind     docsearch.Kind
	ID       string
	Title    string
	Category string
	Tags     []string

	// Content is the record's display text, used for excerpts and highlights.
	Content string

	NormalizedTitle string

	// NormalizedText is the normalized concatenation of every textual field.
	// It is never empty.
	NormalizedText string

	// Position is the entry's index within its collection.
	Position int

	words []string
}

// Index holds one entry list per collection. An Index is immutable after
// NewIndex returns and may be shared by any number of concurrent readers.
type Index struct {
	generation string
	builtAt    time.Time
	entries    map[docsearch.Kind][]*Entry
	skipped    int
}

// emptyIndex answers queries made before the first build.
var emptyIndex = &Index{entries: map[docsearch.Kind][]*Entry{}}

// NewIndex builds an index over the three collections. The collections are
// built concurrently; NewIndex returns once all of them are complete.
// Nil records and records without searchable text are skipped.
func NewIndex(docs []*docsearch.DocRecord, commands []*docsearch.CommandRecord, agents []*docsearch.AgentRecord) *Index {
	sources := map[docsearch.Kind][]docsearch.Record{
		docsearch.KindDocument: toRecords(docs),
		docsearch.KindCommand:  toRecords(commands),
		docsearch.KindAgent:    toRecords(agents),
	}

	built := make([][]*Entry, len(docsearch.Kinds))
	var g errgroup.Group
	for i, kind := range docsearch.Kinds {
		records := sources[kind]
		g.Go(func() error {
			built[i] = buildEntries(records)
			return nil
		})
	}
	_ = g.Wait()

	idx := &Index{
		generation: uuid.New().String(),
		builtAt:    time.Now().UTC(),
		entries:    make(map[docsearch.Kind][]*Entry, len(docsearch.Kinds)),
	}
	idx.skipped = len(docs) + len(commands) + len(agents)
	for i, kind := range docsearch.Kinds {
		idx.entries[kind] = built[i]
		idx.skipped -= len(built[i])
	}

	return idx
}

// Entries returns the entries of one collection in source order.
func (idx *Index) Entries(kind docsearch.Kind) []*Entry {
	return idx.entries[kind]
}

// Len returns the number of entries across all collections.
func (idx *Index) Len() int {
	var n int
	for _, entries := range idx.entries {
		n += len(entries)
	}
	return n
}

// Stats describes the index.
func (idx *Index) Stats() *docsearch.IndexStats {
	return &docsearch.IndexStats{
		Generation: idx.generation,
		BuiltAt:    idx.builtAt,
		Documents:  len(idx.entries[docsearch.KindDocument]),
		Commands:   len(idx.entries[docsearch.KindCommand]),
		Agents:     len(idx.entries[docsearch.KindAgent]),
		Skipped:    idx.skipped,
	}
}

// NewEntry converts a record into an index entry. It returns false when the
// record has no searchable text.
func NewEntry(rec docsearch.Record) (*Entry, bool) {
	f := rec.Fields()

	parts := make([]string, 0, len(f.Body)+len(f.Tags)+2)
	parts = append(parts, f.Title)
	parts = append(parts, f.Body...)
	parts = append(parts, f.Category)
	parts = append(parts, f.Tags...)

	text := docsearch.Normalize(strings.Join(parts, " "))
	if text == "" {
		return nil, false
	}

	content := joinSentences(f.Body)
	if content == "" {
		content = f.Title
	}

	return &Entry{
		Kind:            rec.Kind(),
		ID:              f.ID,
		Title:           f.Title,
		Category:        f.Category,
		Tags:            uniqueTags(f.Tags),
		Content:         content,
		NormalizedTitle: docsearch.Normalize(f.Title),
		NormalizedText:  text,
		words:           docsearch.Terms(text),
	}, true
}

func buildEntries(records []docsearch.Record) []*Entry {
	entries := make([]*Entry, 0, len(records))
	for _, rec := range records {
		e, ok := NewEntry(rec)
		if !ok {
			continue
		}
		e.Position = len(entries)
		entries = append(entries, e)
	}
	return entries
}

// toRecords widens a typed collection to records, dropping nil pointers.
func toRecords[T any, R interface {
	*T
	docsearch.Record
}](in []R) []docsearch.Record {
	out := make([]docsearch.Record, 0, len(in))
	for _, r := range in {
		if r == nil {
			continue
		}
		out = append(out, r)
	}
	return out
}

// joinSentences joins text parts so that each part ends a sentence.
func joinSentences(parts []string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.ContainsAny(p[len(p)-1:], ".!?") {
			p += "."
		}
		out = append(out, p)
	}
	return strings.Join(out, " ")
}

func uniqueTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
