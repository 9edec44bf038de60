// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package exemplar selects the species
// that will represent each genus
// in the backbone supermatrix.
//
// For a genus with three or more species,
// the exemplars are the most divergent species pair,
// scored over all the alignments
// that sample the genus:
// in each alignment
// the most divergent pair accumulates
// the number of species pairs
// compared in that alignment,
// minus one,
// so pairs found in richly sampled alignments
// weight more,
// and alignments with a single comparable pair
// contribute nothing.
package exemplar

import (
	"runtime"
	"slices"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/js-arias/supermat/align"
	"github.com/js-arias/supermat/dist"
	"github.com/js-arias/supermat/taxonomy"
)

// An Exemplar is the set of species
// that represents a genus.
type Exemplar struct {
	Genus   string
	Species []string
}

// a pair score from a single alignment:
// the most divergent species pair of a genus
// and its weight
// (number of compared pairs minus one).
type pairScore struct {
	genus  string
	a, b   string
	weight int
}

// Select returns the exemplar species
// for every genus in the taxonomy
// sampled in the alignment pool.
// Genera with one or two species
// are represented by all their species.
// Use cpu to set the number of concurrent processes;
// the default (zero) uses all available CPUs.
func Select(alns []*align.Alignment, tx *taxonomy.Table, cpu int) []Exemplar {
	if cpu == 0 {
		cpu = runtime.NumCPU()
	}

	genSp := tx.GenusSpecies()

	// parallel phase:
	// each alignment yields its best pair per genus,
	// nothing is shared.
	scores := make([][]pairScore, len(alns))
	traverse.Limit(cpu).Each(len(alns), func(i int) error {
		scores[i] = alignmentScores(alns[i], genSp)
		return nil
	})

	// sequential fold of the per-alignment scores
	type pairKey struct{ a, b string }
	acc := make(map[string]map[pairKey]int)
	for _, ps := range scores {
		for _, p := range ps {
			m, ok := acc[p.genus]
			if !ok {
				m = make(map[pairKey]int)
				acc[p.genus] = m
			}
			m[pairKey{p.a, p.b}] += p.weight
		}
	}

	genera := make([]string, 0, len(genSp))
	for g := range genSp {
		genera = append(genera, g)
	}
	slices.Sort(genera)

	var ex []Exemplar
	dropped := 0
	for _, g := range genera {
		sp := genSp[g]
		if len(sp) <= 2 {
			ex = append(ex, Exemplar{Genus: g, Species: sp})
			continue
		}

		m := acc[g]
		if len(m) == 0 {
			log.Printf("genus %q: %d species but no alignment with comparable pairs, dropped", g, len(sp))
			dropped++
			continue
		}

		// highest accumulated score;
		// ties broken by the smallest species pair,
		// so the selection is deterministic.
		var best pairKey
		bestScore := -1
		for k, s := range m {
			if s > bestScore {
				best, bestScore = k, s
				continue
			}
			if s == bestScore && lessPair(k.a, k.b, best.a, best.b) {
				best = k
			}
		}
		ex = append(ex, Exemplar{Genus: g, Species: []string{best.a, best.b}})
	}
	if dropped > 0 {
		log.Printf("exemplar selection: %d genera dropped without data", dropped)
	}
	return ex
}

// alignmentScores returns the best species pair
// and its weight
// for every genus with at least two species
// sampled in the alignment.
func alignmentScores(a *align.Alignment, genSp map[string][]string) []pairScore {
	genera := make([]string, 0, len(genSp))
	for g := range genSp {
		genera = append(genera, g)
	}
	slices.Sort(genera)

	var scores []pairScore
	for _, g := range genera {
		sp := genSp[g]
		if len(sp) <= 2 {
			continue
		}
		pairs := dist.SpeciesPairs(a, sp)
		if len(pairs) < 1 {
			continue
		}

		best := pairs[0]
		for _, p := range pairs[1:] {
			if p.Dist > best.Dist {
				best = p
			}
		}
		scores = append(scores, pairScore{
			genus:  g,
			a:      best.A,
			b:      best.B,
			weight: len(pairs) - 1,
		})
	}
	return scores
}

func lessPair(a1, b1, a2, b2 string) bool {
	if a1 != a2 {
		return a1 < a2
	}
	return b1 < b2
}

// Taxa returns the species identifiers
// of a set of exemplars,
// sorted.
func Taxa(ex []Exemplar) []string {
	var taxa []string
	for _, e := range ex {
		taxa = append(taxa, e.Species...)
	}
	slices.Sort(taxa)
	return taxa
}
