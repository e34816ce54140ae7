package tabulate

import (
	"sort"

	"bibvals/src/internal/bibdb"
	"bibvals/src/internal/stringsx"
)

// NoneKey counts entries that lack the requested field. A literal field
// value "<None>" shares this bucket.
const NoneKey = "<None>"

// Result holds occurrence counts and the number of entries examined.
type Result struct {
	Counts       map[string]int
	TotalEntries int
}

// Keys returns the counted keys in ascending byte-wise order.
func (r Result) Keys() []string {
	keys := make([]string, 0, len(r.Counts))
	for k := range r.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sum returns the total of all counts.
func (r Result) Sum() int {
	n := 0
	for _, c := range r.Counts {
		n += c
	}
	return n
}

// Tabulate counts field names (field == "") or the values of field across db.
// Field names are counted as spelled in the source; field is matched ignoring
// case. Values are split on delim unless delim is empty; every trimmed part
// counts, including repeats within one entry.
func Tabulate(db bibdb.Database, field, delim string) Result {
	res := Result{Counts: map[string]int{}, TotalEntries: db.Len()}
	for _, e := range db {
		if field == "" {
			for name := range e.Fields {
				res.Counts[name]++
			}
			continue
		}
		val, ok := e.Field(field)
		if !ok {
			res.Counts[NoneKey]++
			continue
		}
		for _, tok := range stringsx.Tokens(val, delim) {
			res.Counts[tok]++
		}
	}
	return res
}
