// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/supermat/taxonomy"
)

var table = `species	genus	family	order	root
4577	4575	4479	38820	4447
4579	4575	4479	38820	4447
4585	4584	4479	38820	4447
4572	4571	NA	38820	4447
`

func TestReadTSV(t *testing.T) {
	tab, err := taxonomy.ReadTSV(strings.NewReader(table))
	if err != nil {
		t.Fatalf("unable to read table: %v", err)
	}
	testTable(t, tab)

	var buf bytes.Buffer
	if err := tab.TSV(&buf); err != nil {
		t.Fatalf("unable to write table: %v", err)
	}
	nt, err := taxonomy.ReadTSV(&buf)
	if err != nil {
		t.Fatalf("unable to read written table: %v", err)
	}
	testTable(t, nt)
}

func testTable(t testing.TB, tab *taxonomy.Table) {
	t.Helper()

	ranks := []string{"species", "genus", "family", "order", "root"}
	if got := tab.Ranks(); !reflect.DeepEqual(got, ranks) {
		t.Errorf("ranks: got %v, want %v", got, ranks)
	}

	species := []string{"4572", "4577", "4579", "4585"}
	if got := tab.Species(); !reflect.DeepEqual(got, species) {
		t.Errorf("species: got %v, want %v", got, species)
	}

	if g := tab.Genus("4577"); g != "4575" {
		t.Errorf("genus of %q: got %q, want %q", "4577", g, "4575")
	}
	if f := tab.Rank("4572", "family"); f != "" {
		t.Errorf("family of %q: got %q, want absent", "4572", f)
	}
	if !tab.HasSpecies("4585") {
		t.Errorf("species %q must be in the table", "4585")
	}

	gs := map[string][]string{
		"4575": {"4577", "4579"},
		"4584": {"4585"},
		"4571": {"4572"},
	}
	if got := tab.GenusSpecies(); !reflect.DeepEqual(got, gs) {
		t.Errorf("genus-species: got %v, want %v", got, gs)
	}
}

func TestReadTSVErrors(t *testing.T) {
	if _, err := taxonomy.ReadTSV(strings.NewReader("species	family\n10	20\n")); err == nil {
		t.Errorf("expecting error on missing genus field")
	}

	dup := "species	genus\n10	20\n10	20\n"
	if _, err := taxonomy.ReadTSV(strings.NewReader(dup)); err == nil {
		t.Errorf("expecting error on repeated species")
	}
}
