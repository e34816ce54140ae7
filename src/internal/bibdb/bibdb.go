package bibdb

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Entry is a single bibliographic record: its citation key, entry type and
// field name -> value mapping. Field names keep the spelling of the source;
// lookups ignore case.
type Entry struct {
	Key    string
	Type   string
	Fields map[string]string
}

func (e Entry) lookup(name string) (string, bool) {
	if _, ok := e.Fields[name]; ok {
		return name, true
	}
	for k := range e.Fields {
		if strings.EqualFold(k, name) {
			return k, true
		}
	}
	return "", false
}

// Field returns the value of the named field (case-insensitive) and whether it is present.
func (e Entry) Field(name string) (string, bool) {
	k, ok := e.lookup(name)
	if !ok {
		return "", false
	}
	return e.Fields[k], true
}

// Add stores a field under its given spelling. A name that matches an
// existing field case-insensitively is rejected.
func (e *Entry) Add(name, value string) error {
	if prev, dup := e.lookup(name); dup {
		return fmt.Errorf("duplicate field %q (already present as %q)", name, prev)
	}
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[name] = value
	return nil
}

// Database maps entry keys to entries. It is read-only once parsed.
type Database map[string]Entry

// Len returns the number of entries.
func (db Database) Len() int { return len(db) }

// Parser turns a database file into a Database.
type Parser interface {
	Parse(path string) (Database, error)
}

// Registry selects a Parser by file extension.
type Registry struct {
	byExt    map[string]registered
	fallback registered
}

type registered struct {
	name   string
	parser Parser
}

// NewRegistry returns a registry that uses fallback for unknown extensions.
func NewRegistry(name string, fallback Parser) *Registry {
	return &Registry{byExt: map[string]registered{}, fallback: registered{name: name, parser: fallback}}
}

// Register binds p to each extension (with or without leading dot, case-insensitive).
func (r *Registry) Register(name string, p Parser, exts ...string) {
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.byExt[ext] = registered{name: name, parser: p}
	}
}

// For returns the parser registered for path's extension and its name.
func (r *Registry) For(path string) (string, Parser) {
	if reg, ok := r.byExt[strings.ToLower(filepath.Ext(path))]; ok {
		return reg.name, reg.parser
	}
	return r.fallback.name, r.fallback.parser
}
