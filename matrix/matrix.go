// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package matrix assembles the backbone supermatrix:
// a greedy selection of alignments
// that covers each exemplar taxon
// to a minimum number of alignments,
// concatenated into an interleaved matrix
// with missing data
// for taxa absent from an alignment.
//
// The selection is a greedy heuristic,
// not an exact set cover:
// taxa are visited from the most rarely covered
// to the most widely covered,
// and each taxon pulls its richest alignments first.
// A different ordering would select
// a different (also sufficient) set.
package matrix

import (
	"slices"

	"github.com/grailbio/base/log"
	"github.com/js-arias/supermat/align"
)

// A Selection is the set of taxa and alignments
// chosen for the supermatrix.
type Selection struct {
	// Taxa are the retained taxa,
	// in their input order.
	Taxa []string

	// Alns are the selected alignments,
	// in selection order.
	Alns []*align.Alignment

	// Coverage is the number of selected alignments
	// that contain each input taxon.
	Coverage map[string]int

	// Exhausted lists the taxa
	// that ran out of candidate alignments
	// before reaching the minimum coverage.
	Exhausted []string
}

// Select chooses a subset of the alignment pool
// that covers every taxon
// in at least minCov alignments.
// Taxa whose alignment supply is exhausted
// below the minimum coverage
// are dropped from the selection
// and reported in the result;
// this is logged,
// never a failure.
func Select(alns []*align.Alignment, taxa []string, minCov int) *Selection {
	inSet := make(map[string]bool, len(taxa))
	for _, t := range taxa {
		inSet[t] = true
	}

	// taxa found on each alignment,
	// and alignments for each taxon
	taxaForAln := make([][]string, len(alns))
	alnsForTaxon := make(map[string][]int, len(taxa))
	for i, a := range alns {
		for _, t := range a.Taxa() {
			if !inSet[t] {
				continue
			}
			taxaForAln[i] = append(taxaForAln[i], t)
			alnsForTaxon[t] = append(alnsForTaxon[t], i)
		}
	}

	// for each taxon,
	// the richest alignments first
	for _, ls := range alnsForTaxon {
		slices.SortStableFunc(ls, func(a, b int) int {
			return len(taxaForAln[b]) - len(taxaForAln[a])
		})
	}

	// the most rarely covered taxa first
	order := make([]string, len(taxa))
	copy(order, taxa)
	slices.SortStableFunc(order, func(a, b string) int {
		return len(alnsForTaxon[a]) - len(alnsForTaxon[b])
	})

	seen := make(map[string]int, len(taxa))
	selected := make(map[int]bool)
	var sel []int
	var exhausted []string
	for _, t := range order {
		ls := alnsForTaxon[t]
		for seen[t] < minCov {
			next := -1
			for _, i := range ls {
				if !selected[i] {
					next = i
					break
				}
			}
			if next < 0 {
				log.Printf("taxon %q: alignments exhausted at coverage %d (want %d)", t, seen[t], minCov)
				exhausted = append(exhausted, t)
				break
			}
			selected[next] = true
			sel = append(sel, next)
			for _, x := range taxaForAln[next] {
				seen[x]++
			}
		}
	}

	// drop under-covered taxa
	final := make([]string, 0, len(taxa))
	kept := make(map[string]bool, len(taxa))
	for _, t := range taxa {
		if seen[t] < minCov {
			continue
		}
		final = append(final, t)
		kept[t] = true
	}
	if len(final) < len(taxa) {
		log.Printf("supermatrix: %d of %d taxa below coverage %d, dropped", len(taxa)-len(final), len(taxa), minCov)
	}

	// drop alignments without any retained taxon
	var keep []*align.Alignment
	for _, i := range sel {
		has := false
		for _, t := range taxaForAln[i] {
			if kept[t] {
				has = true
				break
			}
		}
		if !has {
			continue
		}
		keep = append(keep, alns[i])
	}

	return &Selection{
		Taxa:      final,
		Alns:      keep,
		Coverage:  seen,
		Exhausted: exhausted,
	}
}

// NChar returns the number of characters
// of the supermatrix:
// the sum of the characters
// of the selected alignments.
func (s *Selection) NChar() int {
	n := 0
	for _, a := range s.Alns {
		n += a.NChar()
	}
	return n
}
