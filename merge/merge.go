// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package merge combines the member alignments
// of a single-linkage cluster
// into a single alignment
// by iterated profile alignment.
//
// A candidate merge is accepted
// only if the mean pairwise distance
// of the resulting alignment
// is below a maximum distance threshold;
// a rejected candidate is discarded
// from the cluster permanently.
package merge

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/grailbio/base/log"
	"github.com/js-arias/supermat/align"
	"github.com/js-arias/supermat/dist"
)

// A Profiler aligns two alignment files
// into a single profile-aligned output file.
// It is usually backed by an external
// multiple sequence alignment tool.
type Profiler interface {
	Profile(acc, cand, out string) error
}

// A Result is the outcome of merging
// the members of one cluster.
type Result struct {
	Seed     string   // seed identifier of the cluster
	Aln      *align.Alignment
	Merged   int      // accepted merges
	Rejected []string // discarded member files
}

// Cluster merges the member alignment files
// of a cluster,
// in their given order,
// using the profiler
// and the maximum distance threshold.
//
// The first file is the initial accumulator;
// each following file is profile-aligned
// against the accumulator
// and replaces it only if the mean pairwise distance
// of the merged alignment
// is below maxDist.
// Sequences with a duplicated identifier
// are removed,
// keeping the first occurrence,
// before the distance is evaluated:
// a duplicated pair has distance zero
// and would deflate the mean.
// If every merge fails
// the result is the first member alignment,
// which is valid,
// just smaller.
//
// A missing member file is a fatal error:
// the cluster list references alignments
// produced by an earlier stage of the pipeline.
func Cluster(seed string, files []string, p Profiler, maxDist float64, workDir string) (*Result, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("cluster %q: without members", seed)
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return nil, fmt.Errorf("cluster %q: member %q: %v", seed, f, err)
		}
	}

	res := &Result{Seed: seed}
	acc := files[0]
	tmp := false
	for i, cand := range files[1:] {
		out := filepath.Join(workDir, fmt.Sprintf("%s-merge-%d.fas", seed, i))
		if err := p.Profile(acc, cand, out); err != nil {
			return nil, fmt.Errorf("cluster %q: profile of %q and %q: %v", seed, acc, cand, err)
		}

		a, err := align.ReadFile(out)
		if err != nil {
			return nil, fmt.Errorf("cluster %q: %v", seed, err)
		}
		a.Dedup()
		d := dist.Mean(a)
		if d < 0 || d >= maxDist {
			log.Printf("cluster %q: member %q rejected: mean distance %.6f", seed, cand, d)
			res.Rejected = append(res.Rejected, cand)
			os.Remove(out)
			continue
		}

		// the deduplicated alignment
		// is the new accumulator
		if err := a.WriteFile(out); err != nil {
			return nil, fmt.Errorf("cluster %q: %v", seed, err)
		}
		if tmp {
			os.Remove(acc)
		}
		acc = out
		tmp = true
		res.Merged++
	}

	a, err := align.ReadFile(acc)
	if err != nil {
		return nil, fmt.Errorf("cluster %q: %v", seed, err)
	}
	if tmp {
		os.Remove(acc)
	}
	a.Dedup()
	res.Aln = a
	return res, nil
}
