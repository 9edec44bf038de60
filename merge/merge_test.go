// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package merge_test

import (
	"path/filepath"
	"testing"

	"github.com/js-arias/supermat/align"
	"github.com/js-arias/supermat/dist"
	"github.com/js-arias/supermat/merge"
)

// catProfiler fakes an external profile aligner
// by concatenating the sequences of two files
// that are already aligned to the same length.
type catProfiler struct{}

func (catProfiler) Profile(acc, cand, out string) error {
	a, err := align.ReadFile(acc)
	if err != nil {
		return err
	}
	c, err := align.ReadFile(cand)
	if err != nil {
		return err
	}
	for _, s := range c.Sequences() {
		a.Add(s)
	}
	return a.WriteFile(out)
}

func writeAln(t testing.TB, dir, name string, seqs []align.Sequence) string {
	t.Helper()

	a := align.New(name)
	for _, s := range seqs {
		a.Add(s)
	}
	p := filepath.Join(dir, name)
	if err := a.WriteFile(p); err != nil {
		t.Fatalf("unable to write %q: %v", name, err)
	}
	return p
}

func TestCluster(t *testing.T) {
	dir := t.TempDir()

	first := writeAln(t, dir, "s1.fas", []align.Sequence{
		{GI: "1", Seed: "s1", Taxon: "sp1", Seq: "acgtacgtac"},
		{GI: "2", Seed: "s1", Taxon: "sp2", Seq: "acgtacgtaa"},
	})
	// close to the accumulator: accepted
	second := writeAln(t, dir, "s2.fas", []align.Sequence{
		{GI: "3", Seed: "s2", Taxon: "sp3", Seq: "acgtacctaa"},
	})
	// too divergent: rejected
	third := writeAln(t, dir, "s3.fas", []align.Sequence{
		{GI: "4", Seed: "s3", Taxon: "sp4", Seq: "tgcatgcagg"},
	})
	// duplicated identifier: removed after merging
	fourth := writeAln(t, dir, "s4.fas", []align.Sequence{
		{GI: "2", Seed: "s4", Taxon: "sp2", Seq: "acgtacgtat"},
	})

	res, err := merge.Cluster("s1", []string{first, second, third, fourth}, catProfiler{}, 0.30, dir)
	if err != nil {
		t.Fatalf("unable to merge cluster: %v", err)
	}

	if res.Merged != 2 {
		t.Errorf("accepted merges: got %d, want %d", res.Merged, 2)
	}
	if len(res.Rejected) != 1 || res.Rejected[0] != third {
		t.Errorf("rejected members: got %v, want [%s]", res.Rejected, third)
	}

	// sequences 1, 2, 3; the second copy of "2" is deduplicated
	if res.Aln.Len() != 3 {
		t.Errorf("merged sequences: got %d, want %d", res.Aln.Len(), 3)
	}
	if s := res.Aln.Sequence(1); s.Seq != "acgtacgtaa" {
		t.Errorf("dedup must keep the first occurrence: got %q", s.Seq)
	}

	if d := dist.Mean(res.Aln); d >= 0.30 {
		t.Errorf("merged mean distance: got %.6f, want < %.6f", d, 0.30)
	}
}

func TestClusterDuplicateGate(t *testing.T) {
	dir := t.TempDir()

	first := writeAln(t, dir, "s1.fas", []align.Sequence{
		{GI: "1", Seed: "s1", Taxon: "sp1", Seq: "aaaaaa"},
		{GI: "2", Seed: "s1", Taxon: "sp2", Seq: "aaagaa"},
	})
	// a duplicate of sequence "1":
	// its zero-distance pair must not deflate
	// the mean used by the distance gate
	second := writeAln(t, dir, "s2.fas", []align.Sequence{
		{GI: "1", Seed: "s2", Taxon: "sp1", Seq: "aaaaaa"},
	})
	// mean with the deduplicated accumulator is 0.5: rejected
	third := writeAln(t, dir, "s3.fas", []align.Sequence{
		{GI: "3", Seed: "s3", Taxon: "sp3", Seq: "ccccaa"},
	})

	res, err := merge.Cluster("s1", []string{first, second, third}, catProfiler{}, 0.50, dir)
	if err != nil {
		t.Fatalf("unable to merge cluster: %v", err)
	}

	if res.Merged != 1 {
		t.Errorf("accepted merges: got %d, want %d", res.Merged, 1)
	}
	if len(res.Rejected) != 1 || res.Rejected[0] != third {
		t.Errorf("rejected members: got %v, want [%s]", res.Rejected, third)
	}
	if res.Aln.Len() != 2 {
		t.Errorf("merged sequences: got %d, want %d", res.Aln.Len(), 2)
	}
	if d := dist.Mean(res.Aln); d >= 0.50 {
		t.Errorf("accepted merged alignment mean distance: got %.6f, want < %.6f", d, 0.50)
	}
}

func TestClusterDegenerate(t *testing.T) {
	dir := t.TempDir()

	first := writeAln(t, dir, "s1.fas", []align.Sequence{
		{GI: "1", Seed: "s1", Taxon: "sp1", Seq: "acgtacgtac"},
		{GI: "2", Seed: "s1", Taxon: "sp2", Seq: "acgtacgtaa"},
	})
	far := writeAln(t, dir, "s2.fas", []align.Sequence{
		{GI: "3", Seed: "s2", Taxon: "sp3", Seq: "tgcatgcagg"},
	})

	res, err := merge.Cluster("s1", []string{first, far}, catProfiler{}, 0.30, dir)
	if err != nil {
		t.Fatalf("unable to merge cluster: %v", err)
	}

	// all merges failed: the cluster degenerates to its first member
	if res.Merged != 0 {
		t.Errorf("accepted merges: got %d, want 0", res.Merged)
	}
	if res.Aln.Len() != 2 {
		t.Errorf("sequences: got %d, want %d", res.Aln.Len(), 2)
	}
}

func TestClusterMissingMember(t *testing.T) {
	dir := t.TempDir()

	first := writeAln(t, dir, "s1.fas", []align.Sequence{
		{GI: "1", Seed: "s1", Taxon: "sp1", Seq: "acgtacgtac"},
	})

	_, err := merge.Cluster("s1", []string{first, filepath.Join(dir, "not-a-file.fas")}, catProfiler{}, 0.30, dir)
	if err == nil {
		t.Errorf("expecting error on missing member file")
	}
}
