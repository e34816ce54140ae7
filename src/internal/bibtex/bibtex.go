package bibtex

import (
	"fmt"
	"io"
	"os"
	"strings"

	nbib "github.com/nickng/bibtex"

	"bibvals/src/internal/bibdb"
)

// SyntaxError reports BibTeX input that could not be turned into a database.
type SyntaxError struct {
	File string
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.File == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Parser reads BibTeX files. The zero value is ready to use.
type Parser struct{}

// Parse reads and parses the BibTeX file at path.
func (Parser) Parse(path string) (bibdb.Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, path)
}

var months = []string{"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}

// monthPrelude defines the standard jan..dec macros ahead of the input. It
// has no newline so line numbers reported for the input stay unchanged.
var monthPrelude = func() string {
	var b strings.Builder
	for _, m := range months {
		fmt.Fprintf(&b, "@string{%s = \"%s\"} ", strings.ToLower(m[:3]), m)
	}
	return b.String()
}()

// Parse parses BibTeX read from r. name is only used in error messages.
// Entry keys must be unique ignoring case, and so must field names within
// an entry; field names keep their spelling.
func Parse(r io.Reader, name string) (bibdb.Database, error) {
	bib, err := nbib.Parse(io.MultiReader(strings.NewReader(monthPrelude), r))
	if err != nil {
		return nil, &SyntaxError{File: name, Err: err}
	}
	db := bibdb.Database{}
	seen := map[string]string{}
	for _, be := range bib.Entries {
		key := strings.TrimSpace(be.CiteName)
		lk := strings.ToLower(key)
		if prev, dup := seen[lk]; dup {
			return nil, &SyntaxError{File: name, Err: fmt.Errorf("duplicate entry key %q (already defined as %q)", key, prev)}
		}
		seen[lk] = key
		e := bibdb.Entry{Key: key, Type: strings.ToLower(strings.TrimSpace(be.Type)), Fields: make(map[string]string, len(be.Fields))}
		for field, v := range be.Fields {
			if err := e.Add(strings.TrimSpace(field), valueString(v)); err != nil {
				return nil, &SyntaxError{File: name, Err: fmt.Errorf("entry %q: %w", key, err)}
			}
		}
		db[key] = e
	}
	return db, nil
}

// valueString renders a field value with whitespace runs collapsed to one space.
func valueString(v nbib.BibString) string {
	if v == nil {
		return ""
	}
	return strings.Join(strings.Fields(v.String()), " ")
}
