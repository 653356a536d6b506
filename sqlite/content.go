package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docsearch"
)

// Compile-time interface verification.
var _ docsearch.ContentStore = (*ContentStore)(nil)

// ContentStore implements docsearch.ContentStore using SQLite.
// Records load in the order they were first saved.
type ContentStore struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewContentStore creates a new ContentStore.
func NewContentStore(db *DB) *ContentStore {
	return &ContentStore{db: db, Now: time.Now}
}

// hashContent computes the xxHash of data and returns it as a hex string.
func hashContent(data []byte) string {
	return hex.EncodeToString(binary.BigEndian.AppendUint64(nil, xxhash.Sum64(data)))
}

// SaveContent upserts every record in a single transaction.
// Records whose stored hash matches are counted as unchanged and not rewritten.
func (s *ContentStore) SaveContent(ctx context.Context, content *docsearch.Content) (*docsearch.SaveResult, error) {
	if content == nil {
		return &docsearch.SaveResult{}, nil
	}
	if err := content.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	w := &recordWriter{
		ctx:    ctx,
		tx:     tx,
		now:    s.now().UTC().Format(time.RFC3339),
		result: &docsearch.SaveResult{},
	}
	for _, d := range content.Documents {
		w.save("documents", "slug", d.Slug, d, func(hash string) error {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO documents (slug, title, description, body, category, tags, content_hash, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(slug) DO UPDATE SET
					title = excluded.title,
					description = excluded.description,
					body = excluded.body,
					category = excluded.category,
					tags = excluded.tags,
					content_hash = excluded.content_hash,
					updated_at = excluded.updated_at
			`, d.Slug, d.Title, d.Description, d.Body, d.Category, w.json(d.Tags), hash, w.now)
			return err
		})
	}
	for _, c := range content.Commands {
		w.save("commands", "name", c.Name, c, func(hash string) error {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO commands (name, syntax, description, category, tags, examples, content_hash, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(name) DO UPDATE SET
					syntax = excluded.syntax,
					description = excluded.description,
					category = excluded.category,
					tags = excluded.tags,
					examples = excluded.examples,
					content_hash = excluded.content_hash,
					updated_at = excluded.updated_at
			`, c.Name, c.Syntax, c.Description, c.Category, w.json(c.Tags), w.json(c.Examples), hash, w.now)
			return err
		})
	}
	for _, a := range content.Agents {
		w.save("agents", "id", a.ID, a, func(hash string) error {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO agents (id, name, description, category, capabilities, tags, content_hash, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					name = excluded.name,
					description = excluded.description,
					category = excluded.category,
					capabilities = excluded.capabilities,
					tags = excluded.tags,
					content_hash = excluded.content_hash,
					updated_at = excluded.updated_at
			`, a.ID, a.Name, a.Description, a.Category, w.json(a.Capabilities), w.json(a.Tags), hash, w.now)
			return err
		})
	}
	if w.err != nil {
		return nil, w.err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return w.result, nil
}

// recordWriter accumulates the outcome of a SaveContent transaction.
// After the first error every further save is a no-op.
type recordWriter struct {
	ctx    context.Context
	tx     *sql.Tx
	now    string
	result *docsearch.SaveResult
	err    error
}

func (w *recordWriter) save(table, keyColumn, key string, record any, write func(hash string) error) {
	if w.err != nil {
		return
	}

	data, err := json.Marshal(record)
	if err != nil {
		w.err = err
		return
	}
	hash := hashContent(data)

	var existing string
	err = w.tx.QueryRowContext(w.ctx, "SELECT content_hash FROM "+table+" WHERE "+keyColumn+" = ?", key).Scan(&existing)
	switch {
	case err == nil && existing == hash:
		w.result.Unchanged++
		return
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		w.err = err
		return
	}

	if err := write(hash); err != nil {
		w.err = err
		return
	}
	w.result.Saved++
}

func (w *recordWriter) json(v any) string {
	data, err := json.Marshal(v)
	if err != nil && w.err == nil {
		w.err = err
	}
	return string(data)
}

// LoadContent returns every stored record.
func (s *ContentStore) LoadContent(ctx context.Context) (*docsearch.Content, error) {
	content := &docsearch.Content{}

	err := s.query(ctx, `
		SELECT slug, title, description, body, category, tags
		FROM documents ORDER BY rowid
	`, func(rows *sql.Rows) error {
		var d docsearch.DocRecord
		var tags string
		if err := rows.Scan(&d.Slug, &d.Title, &d.Description, &d.Body, &d.Category, &tags); err != nil {
			return err
		}
		if err := unmarshalColumn("tags", tags, &d.Tags); err != nil {
			return err
		}
		content.Documents = append(content.Documents, &d)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.query(ctx, `
		SELECT name, syntax, description, category, tags, examples
		FROM commands ORDER BY rowid
	`, func(rows *sql.Rows) error {
		var c docsearch.CommandRecord
		var tags, examples string
		if err := rows.Scan(&c.Name, &c.Syntax, &c.Description, &c.Category, &tags, &examples); err != nil {
			return err
		}
		if err := unmarshalColumn("tags", tags, &c.Tags); err != nil {
			return err
		}
		if err := unmarshalColumn("examples", examples, &c.Examples); err != nil {
			return err
		}
		content.Commands = append(content.Commands, &c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.query(ctx, `
		SELECT id, name, description, category, capabilities, tags
		FROM agents ORDER BY rowid
	`, func(rows *sql.Rows) error {
		var a docsearch.AgentRecord
		var capabilities, tags string
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.Category, &capabilities, &tags); err != nil {
			return err
		}
		if err := unmarshalColumn("capabilities", capabilities, &a.Capabilities); err != nil {
			return err
		}
		if err := unmarshalColumn("tags", tags, &a.Tags); err != nil {
			return err
		}
		content.Agents = append(content.Agents, &a)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return content, nil
}

// ClearContent removes all records.
func (s *ContentStore) ClearContent(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"documents", "commands", "agents"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *ContentStore) query(ctx context.Context, query string, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *ContentStore) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func unmarshalColumn(name, value string, v any) error {
	if err := json.Unmarshal([]byte(value), v); err != nil {
		return docsearch.Errorf(docsearch.EINTERNAL, "failed to decode %s column: %v", name, err)
	}
	return nil
}
