// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package clade

import (
	"runtime"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/js-arias/supermat/align"
	"github.com/js-arias/supermat/dist"
)

// Assign assigns alignments to clade groups.
//
// An alignment is assigned to a group
// if the fraction of the group species
// present in the alignment
// is at least minDensity,
// more than two group species are present,
// and the mean pairwise distance of the alignment
// is at most maxDist.
// The mean distance is computed once per alignment,
// concurrently;
// use cpu to set the number of processes,
// the default (zero) uses all available CPUs.
//
// It returns, for each group,
// the indexes of its assigned alignments.
// An alignment assigned to no group
// is logged and skipped.
func Assign(alns []*align.Alignment, groups []Group, minDensity, maxDist float64, cpu int) [][]int {
	if cpu == 0 {
		cpu = runtime.NumCPU()
	}

	// parallel phase: per-alignment mean distances
	means := make([]float64, len(alns))
	traverse.Limit(cpu).Each(len(alns), func(i int) error {
		means[i] = dist.Mean(alns[i])
		return nil
	})

	sets := make([][]int, len(groups))
	used := make([]bool, len(alns))
	rejected := 0
	for i, a := range alns {
		if means[i] < 0 || means[i] > maxDist {
			log.Printf("alignment %q: mean distance %.6f above %.6f, rejected", a.Name(), means[i], maxDist)
			rejected++
			continue
		}
		for gi, g := range groups {
			distinct := 0
			for _, sp := range g.Species {
				if a.HasTaxon(sp) {
					distinct++
				}
			}
			if distinct <= 2 {
				continue
			}
			if float64(distinct)/float64(len(g.Species)) < minDensity {
				continue
			}
			sets[gi] = append(sets[gi], i)
			used[i] = true
		}
	}

	unused := 0
	for i := range alns {
		if !used[i] {
			unused++
		}
	}
	log.Printf("clade assignment: %d alignments, %d rejected by distance, %d assigned to no clade", len(alns), rejected, unused)
	return sets
}
