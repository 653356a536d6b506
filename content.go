package docsearch

import "context"

// Content holds the three collections handed to the indexer.
type Content struct {
	Documents []*DocRecord     `json:"documents"`
	Commands  []*CommandRecord `json:"commands"`
	Agents    []*AgentRecord   `json:"agents"`
}

// Len returns the total number of records across all collections.
func (c *Content) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Documents) + len(c.Commands) + len(c.Agents)
}

// Validate returns the first invalid record in the content, if any.
// Returns ECONFLICT if two records of the same kind share an identifier.
func (c *Content) Validate() error {
	if c == nil {
		return nil
	}
	if err := validateRecords(c.Documents); err != nil {
		return err
	}
	if err := validateRecords(c.Commands); err != nil {
		return err
	}
	return validateRecords(c.Agents)
}

func validateRecords[T interface {
	Record
	Validate() error
}](records []T) error {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
		id := r.Fields().ID
		if _, ok := seen[id]; ok {
			return Errorf(ECONFLICT, "duplicate %s %q", r.Kind(), id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// ContentSource loads the records to index.
type ContentSource interface {
	// LoadContent returns every record known to the source, with each
	// collection in its stable iteration order.
	LoadContent(ctx context.Context) (*Content, error)
}

// SaveResult reports the outcome of ContentStore.SaveContent.
type SaveResult struct {
	Saved     int
	Unchanged int
}

// ContentStore persists source records between runs.
type ContentStore interface {
	ContentSource

	// SaveContent inserts or updates every record in content.
	// Records whose content is unchanged are not rewritten.
	// Returns EINVALID if any record is missing its identifier.
	SaveContent(ctx context.Context, content *Content) (*SaveResult, error)

	// ClearContent removes all records.
	ClearContent(ctx context.Context) error
}

// ContentWriter exports records to an external representation.
type ContentWriter interface {
	// WriteContent writes every record in content.
	// Returns EINVALID if any record is missing its identifier.
	WriteContent(ctx context.Context, content *Content) error
}
