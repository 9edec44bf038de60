// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package taxonomy provides a table
// of taxonomic assignations
// for a set of species.
//
// Each record of the table is keyed
// by a species identifier
// and stores the identifiers
// of the taxa that contain the species,
// one per taxonomic rank,
// from the least to the most inclusive rank.
package taxonomy

import (
	"slices"
	"strings"
)

// Species rank and genus rank
// must be defined in any valid table.
const (
	RankSpecies = "species"
	RankGenus   = "genus"
)

// A Table is a collection of taxonomic records
// with an explicit ordered list of ranks.
type Table struct {
	ranks []string
	recs  map[string]map[string]string
}

// NewTable creates a new empty table
// with the given ranks,
// ordered from the least to the most inclusive.
// The species and genus ranks are added
// if not present.
func NewTable(ranks []string) *Table {
	rs := make([]string, 0, len(ranks)+2)
	seen := make(map[string]bool, len(ranks)+2)
	for _, r := range append([]string{RankSpecies, RankGenus}, ranks...) {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		rs = append(rs, r)
	}
	return &Table{
		ranks: rs,
		recs:  make(map[string]map[string]string),
	}
}

// Add adds a record for a species
// with its rank assignations.
// Empty and "NA" values are stored as absent.
// It returns false
// if the species identifier is empty
// or the species was already in the table.
func (t *Table) Add(species string, ranks map[string]string) bool {
	species = strings.TrimSpace(species)
	if species == "" {
		return false
	}
	if _, dup := t.recs[species]; dup {
		return false
	}

	rec := make(map[string]string, len(t.ranks))
	rec[RankSpecies] = species
	for _, r := range t.ranks {
		if r == RankSpecies {
			continue
		}
		v := strings.TrimSpace(ranks[r])
		if v == "" || strings.EqualFold(v, "na") {
			continue
		}
		rec[r] = v
	}
	t.recs[species] = rec
	return true
}

// Ranks returns the ordered rank list of the table.
func (t *Table) Ranks() []string {
	return t.ranks
}

// Species returns the species identifiers in the table,
// sorted.
func (t *Table) Species() []string {
	sp := make([]string, 0, len(t.recs))
	for s := range t.recs {
		sp = append(sp, s)
	}
	slices.Sort(sp)
	return sp
}

// HasSpecies returns true
// if the species is recorded in the table.
func (t *Table) HasSpecies(species string) bool {
	_, ok := t.recs[species]
	return ok
}

// Rank returns the identifier assigned to a species
// at a given rank.
// It returns an empty string
// if the species or the assignation is absent.
func (t *Table) Rank(species, rank string) string {
	rec, ok := t.recs[species]
	if !ok {
		return ""
	}
	return rec[strings.ToLower(rank)]
}

// Genus returns the genus identifier of a species.
func (t *Table) Genus(species string) string {
	return t.Rank(species, RankGenus)
}

// GenusSpecies returns a map of genus identifiers
// to the sorted list of species
// assigned to the genus.
// Species without a genus assignation
// are ignored.
func (t *Table) GenusSpecies() map[string][]string {
	gs := make(map[string][]string)
	for sp, rec := range t.recs {
		g := rec[RankGenus]
		if g == "" {
			continue
		}
		gs[g] = append(gs[g], sp)
	}
	for g := range gs {
		slices.Sort(gs[g])
	}
	return gs
}
