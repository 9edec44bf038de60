// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package dist implements uncorrected pairwise distances
// between aligned sequences.
package dist

import (
	"slices"

	"github.com/js-arias/supermat/align"
	"gonum.org/v1/gonum/stat"
)

// Pair returns the uncorrected distance
// (the proportion of differing sites)
// between two aligned sequences.
// Sites with a gap or missing data
// on any of the two sequences
// are ignored.
// If there are no comparable sites
// it returns -1.
func Pair(a, b string) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	sites := 0
	diff := 0
	for i := 0; i < n; i++ {
		ca, cb := a[i], b[i]
		if ca == align.GapChar || ca == align.MissingChar {
			continue
		}
		if cb == align.GapChar || cb == align.MissingChar {
			continue
		}
		sites++
		if ca != cb {
			diff++
		}
	}
	if sites == 0 {
		return -1
	}
	return float64(diff) / float64(sites)
}

// Mean returns the mean pairwise distance
// of an alignment,
// averaged over all sequence pairs
// with at least one comparable site.
// If no pair is comparable
// it returns -1.
func Mean(a *align.Alignment) float64 {
	var ds []float64
	seqs := a.Sequences()
	for i := 0; i < len(seqs); i++ {
		for j := i + 1; j < len(seqs); j++ {
			d := Pair(seqs[i].Seq, seqs[j].Seq)
			if d < 0 {
				continue
			}
			ds = append(ds, d)
		}
	}
	if len(ds) == 0 {
		return -1
	}
	return stat.Mean(ds, nil)
}

// A SpeciesPair is the mean distance
// between the sequences of two species
// in an alignment.
// Species identifiers are sorted,
// so A is always smaller than B.
type SpeciesPair struct {
	A, B string
	Dist float64
}

// SpeciesPairs returns the mean pairwise distance
// for every pair of the given species
// with sequences in the alignment.
// If a species has multiple sequences,
// the distances of all its sequence pairs
// are averaged.
// Pairs without comparable sites are omitted.
// The returned pairs are sorted by species identifiers.
func SpeciesPairs(a *align.Alignment, species []string) []SpeciesPair {
	present := make([]string, 0, len(species))
	for _, sp := range species {
		if a.HasTaxon(sp) {
			present = append(present, sp)
		}
	}
	slices.Sort(present)

	var pairs []SpeciesPair
	for i := 0; i < len(present); i++ {
		for j := i + 1; j < len(present); j++ {
			var ds []float64
			for _, sa := range a.TaxonSequences(present[i]) {
				for _, sb := range a.TaxonSequences(present[j]) {
					d := Pair(sa.Seq, sb.Seq)
					if d < 0 {
						continue
					}
					ds = append(ds, d)
				}
			}
			if len(ds) == 0 {
				continue
			}
			pairs = append(pairs, SpeciesPair{
				A:    present[i],
				B:    present[j],
				Dist: stat.Mean(ds, nil),
			})
		}
	}
	return pairs
}
