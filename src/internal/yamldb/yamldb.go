package yamldb

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"bibvals/src/internal/bibdb"
)

// TypeField is the reserved field that also sets Entry.Type.
const TypeField = "type"

// ListSeparator joins sequence values so they split back with the default delimiter.
const ListSeparator = ", "

// Parser reads YAML citation databases of the form
//
//	key:
//	  type: article
//	  author: Smith, Jones
//	  keywords: [go, yaml]
//
// The zero value is ready to use.
type Parser struct{}

// Parse reads and parses the YAML database at path.
func (Parser) Parse(path string) (bibdb.Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse decodes a YAML database from r. name is used in error messages.
func Parse(r io.Reader, name string) (bibdb.Database, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return bibdb.Database{}, nil
		}
		return nil, fmt.Errorf("invalid YAML in %s: %w", name, err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return bibdb.Database{}, nil
		}
		root = root.Content[0]
	}
	if isNull(root) {
		return bibdb.Database{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s:%d: top level must map entry keys to fields", name, root.Line)
	}
	db := bibdb.Database{}
	seen := map[string]string{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		kn, vn := root.Content[i], root.Content[i+1]
		key := strings.TrimSpace(kn.Value)
		if key == "" {
			return nil, fmt.Errorf("%s:%d: empty entry key", name, kn.Line)
		}
		if prev, dup := seen[strings.ToLower(key)]; dup {
			return nil, fmt.Errorf("%s:%d: duplicate entry key %q (already defined as %q)", name, kn.Line, key, prev)
		}
		seen[strings.ToLower(key)] = key
		e, err := decodeEntry(name, key, vn)
		if err != nil {
			return nil, err
		}
		db[key] = e
	}
	return db, nil
}

func decodeEntry(name, key string, n *yaml.Node) (bibdb.Entry, error) {
	e := bibdb.Entry{Key: key, Fields: map[string]string{}}
	if isNull(n) {
		return e, nil
	}
	if n.Kind != yaml.MappingNode {
		return e, fmt.Errorf("%s:%d: entry %q must be a mapping of fields", name, n.Line, key)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]
		field := strings.TrimSpace(kn.Value)
		if field == "" {
			return e, fmt.Errorf("%s:%d: empty field name in entry %q", name, kn.Line, key)
		}
		if isNull(vn) {
			continue
		}
		val, err := fieldValue(vn)
		if err != nil {
			return e, fmt.Errorf("%s:%d: field %q in entry %q: %w", name, vn.Line, field, key, err)
		}
		if err := e.Add(field, val); err != nil {
			return e, fmt.Errorf("%s:%d: entry %q: %w", name, kn.Line, key, err)
		}
		if strings.EqualFold(field, TypeField) {
			e.Type = strings.ToLower(val)
		}
	}
	return e, nil
}

func fieldValue(n *yaml.Node) (string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value, nil
	case yaml.SequenceNode:
		parts := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			if c.Kind != yaml.ScalarNode {
				return "", errors.New("list items must be scalars")
			}
			if s := strings.TrimSpace(c.Value); s != "" && !isNull(c) {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ListSeparator), nil
	case yaml.AliasNode:
		if n.Alias != nil {
			return fieldValue(n.Alias)
		}
	}
	return "", errors.New("value must be a scalar or a list of scalars")
}

func isNull(n *yaml.Node) bool {
	return n == nil || n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}
