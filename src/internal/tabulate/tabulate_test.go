package tabulate

import (
	"reflect"
	"sort"
	"testing"

	"bibvals/src/internal/bibdb"
)

func sampleDB() bibdb.Database {
	return bibdb.Database{
		"e1": {Key: "e1", Fields: map[string]string{"author": "Smith"}},
		"e2": {Key: "e2", Fields: map[string]string{"author": "Smith, Jones"}},
		"e3": {Key: "e3", Fields: map[string]string{"title": "X"}},
	}
}

func TestTabulateFieldValues(t *testing.T) {
	res := Tabulate(sampleDB(), "author", ",")
	want := map[string]int{"Jones": 1, "Smith": 2, NoneKey: 1}
	if !reflect.DeepEqual(res.Counts, want) {
		t.Fatalf("counts: got %v want %v", res.Counts, want)
	}
	if res.TotalEntries != 3 {
		t.Fatalf("total: %d", res.TotalEntries)
	}
	if keys := res.Keys(); !reflect.DeepEqual(keys, []string{NoneKey, "Jones", "Smith"}) {
		t.Fatalf("keys: %v", keys)
	}
}

func TestTabulateFieldNames(t *testing.T) {
	res := Tabulate(sampleDB(), "", ",")
	want := map[string]int{"author": 2, "title": 1}
	if !reflect.DeepEqual(res.Counts, want) {
		t.Fatalf("counts: got %v want %v", res.Counts, want)
	}
	if res.TotalEntries != 3 {
		t.Fatalf("total: %d", res.TotalEntries)
	}
}

func TestTabulateFieldNameSumMatchesPairs(t *testing.T) {
	db := bibdb.Database{
		"a": {Fields: map[string]string{"author": "x", "title": "y", "year": "2000"}},
		"b": {Fields: map[string]string{"title": "z"}},
		"c": {Fields: map[string]string{}},
	}
	pairs := 0
	for _, e := range db {
		pairs += len(e.Fields)
	}
	if got := Tabulate(db, "", "").Sum(); got != pairs {
		t.Fatalf("sum %d != pairs %d", got, pairs)
	}
}

func TestTabulateSingleValuedSumMatchesEntries(t *testing.T) {
	db := bibdb.Database{
		"a": {Fields: map[string]string{"year": "2000"}},
		"b": {Fields: map[string]string{"year": "2001"}},
		"c": {Fields: map[string]string{"title": "t"}},
	}
	res := Tabulate(db, "year", ",")
	if res.Sum() != res.TotalEntries {
		t.Fatalf("sum %d != total %d", res.Sum(), res.TotalEntries)
	}
}

func TestTabulateWhitespaceAndDuplicates(t *testing.T) {
	db := bibdb.Database{
		"a": {Fields: map[string]string{"keywords": "a, b ,c"}},
		"b": {Fields: map[string]string{"keywords": "a, a"}},
	}
	res := Tabulate(db, "keywords", ",")
	want := map[string]int{"a": 3, "b": 1, "c": 1}
	if !reflect.DeepEqual(res.Counts, want) {
		t.Fatalf("counts: got %v want %v", res.Counts, want)
	}
}

func TestTabulateEmptyDelimiter(t *testing.T) {
	db := bibdb.Database{"a": {Fields: map[string]string{"keywords": "a,b"}}}
	res := Tabulate(db, "keywords", "")
	if !reflect.DeepEqual(res.Counts, map[string]int{"a,b": 1}) {
		t.Fatalf("counts: %v", res.Counts)
	}
}

func TestTabulateCaseInsensitiveField(t *testing.T) {
	res := Tabulate(sampleDB(), "AUTHOR", ",")
	if res.Counts["Smith"] != 2 || res.Counts[NoneKey] != 1 {
		t.Fatalf("counts: %v", res.Counts)
	}
}

func TestTabulateEmptyDatabase(t *testing.T) {
	res := Tabulate(bibdb.Database{}, "author", ",")
	if len(res.Counts) != 0 || res.TotalEntries != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestTabulateDeterministic(t *testing.T) {
	a := Tabulate(sampleDB(), "author", ",")
	b := Tabulate(sampleDB(), "author", ",")
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("results differ: %v vs %v", a, b)
	}
	if !sort.StringsAreSorted(a.Keys()) {
		t.Fatalf("keys not sorted: %v", a.Keys())
	}
}

func TestTabulateFieldNamesKeepSpelling(t *testing.T) {
	db := bibdb.Database{
		"a": {Fields: map[string]string{"Title": "X"}},
		"b": {Fields: map[string]string{"title": "Y"}},
	}
	res := Tabulate(db, "", ",")
	want := map[string]int{"Title": 1, "title": 1}
	if !reflect.DeepEqual(res.Counts, want) {
		t.Fatalf("counts: got %v want %v", res.Counts, want)
	}
	byValue := Tabulate(db, "TITLE", ",")
	if !reflect.DeepEqual(byValue.Counts, map[string]int{"X": 1, "Y": 1}) {
		t.Fatalf("value lookup ignoring case: %v", byValue.Counts)
	}
}
