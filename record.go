package docsearch

import "strings"

// Kind identifies a content collection.
type Kind string

// Collection kinds. KindAll is only meaningful as a query filter.
const (
	KindDocument Kind = "document"
	KindCommand  Kind = "command"
	KindAgent    Kind = "agent"
	KindAll      Kind = "all"
)

// Kinds lists the indexed collections in index order.
var Kinds = []Kind{KindDocument, KindCommand, KindAgent}

// ParseKind converts a user-supplied string into a Kind.
// An empty string parses as KindAll.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindAll, nil
	case KindDocument, KindCommand, KindAgent, KindAll:
		return k, nil
	default:
		return "", Errorf(EINVALID, "unknown kind %q", s)
	}
}

// DefaultCategory is assigned to records that have no category.
const DefaultCategory = "General"

// Fields is the kind-independent view of a record used for indexing.
type Fields struct {
	ID       string
	Title    string
	Category string
	Tags     []string

	// Body holds the free-text parts of the record in display order.
	Body []string
}

// Record is a source record from one of the content collections.
// It is implemented by *DocRecord, *CommandRecord and *AgentRecord only.
type Record interface {
	Kind() Kind
	Fields() Fields

	isRecord()
}

// DocRecord represents a documentation page.
type DocRecord struct {
	Slug        string   `json:"slug" yaml:"slug"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Body        string   `json:"body" yaml:"-"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Kind returns KindDocument.
func (d *DocRecord) Kind() Kind { return KindDocument }

// Fields returns the indexable view of the document.
func (d *DocRecord) Fields() Fields {
	return Fields{
		ID:       d.Slug,
		Title:    fallback(d.Title, d.Slug),
		Category: fallback(d.Category, DefaultCategory),
		Tags:     d.Tags,
		Body:     nonEmpty(d.Description, d.Body),
	}
}

// Validate returns an error if the document contains invalid fields.
func (d *DocRecord) Validate() error {
	if strings.TrimSpace(d.Slug) == "" {
		return Errorf(EINVALID, "document slug required")
	}
	return nil
}

func (d *DocRecord) isRecord() {}

// CommandExample is a sample invocation of a command.
type CommandExample struct {
	Command     string `json:"command" yaml:"command"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// CommandRecord represents a CLI command reference entry.
type CommandRecord struct {
	Name        string           `json:"name" yaml:"name"`
	Syntax      string           `json:"syntax,omitempty" yaml:"syntax,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string           `json:"category,omitempty" yaml:"category,omitempty"`
	Tags        []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
	Examples    []CommandExample `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Kind returns KindCommand.
func (c *CommandRecord) Kind() Kind { return KindCommand }

// Fields returns the indexable view of the command. Example commands and
// their descriptions follow the description and syntax.
func (c *CommandRecord) Fields() Fields {
	body := nonEmpty(c.Description, c.Syntax)
	for _, ex := range c.Examples {
		body = append(body, nonEmpty(ex.Command, ex.Description)...)
	}
	return Fields{
		ID:       c.Name,
		Title:    c.Name,
		Category: fallback(c.Category, DefaultCategory),
		Tags:     c.Tags,
		Body:     body,
	}
}

// Validate returns an error if the command contains invalid fields.
func (c *CommandRecord) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return Errorf(EINVALID, "command name required")
	}
	return nil
}

func (c *CommandRecord) isRecord() {}

// AgentRecord represents an agent descriptor.
type AgentRecord struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	Category     string   `json:"category,omitempty" yaml:"category,omitempty"`
	Capabilities []string `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
	Tags         []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Kind returns KindAgent.
func (a *AgentRecord) Kind() Kind { return KindAgent }

// Fields returns the indexable view of the agent.
func (a *AgentRecord) Fields() Fields {
	return Fields{
		ID:       a.ID,
		Title:    fallback(a.Name, a.ID),
		Category: fallback(a.Category, DefaultCategory),
		Tags:     a.Tags,
		Body:     nonEmpty(append([]string{a.Description}, a.Capabilities...)...),
	}
}

// Validate returns an error if the agent contains invalid fields.
func (a *AgentRecord) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return Errorf(EINVALID, "agent id required")
	}
	return nil
}

func (a *AgentRecord) isRecord() {}

func fallback(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
