// Package docsearch provides an in-memory full-text search engine for a
// documentation site. It indexes three content collections (documents,
// commands and agent descriptors) and serves ranked, faceted, highlighted
// results for free-text queries.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, slog/). The
// search engine itself lives in search/.
package docsearch
