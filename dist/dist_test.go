// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package dist_test

import (
	"math"
	"testing"

	"github.com/js-arias/supermat/align"
	"github.com/js-arias/supermat/dist"
)

func TestPair(t *testing.T) {
	tests := map[string]struct {
		a, b string
		want float64
	}{
		"identical":  {a: "acgtacgt", b: "acgtacgt", want: 0},
		"half":       {a: "acgtacgt", b: "acgttgca", want: 0.5},
		"gaps":       {a: "ac-tacg?", b: "acgaac-t", want: 1.0 / 5.0},
		"no overlap": {a: "----", b: "acgt", want: -1},
	}

	for name, test := range tests {
		got := dist.Pair(test.a, test.b)
		if math.Abs(got-test.want) > 1e-9 {
			t.Errorf("%s: got %.6f, want %.6f", name, got, test.want)
		}
	}
}

func TestMean(t *testing.T) {
	a := align.New("mean.fas")
	a.Add(align.Sequence{GI: "1", Taxon: "sp1", Seq: "acgtacgtac"})
	a.Add(align.Sequence{GI: "2", Taxon: "sp2", Seq: "acgtacgtaa"})
	a.Add(align.Sequence{GI: "3", Taxon: "sp3", Seq: "acgtacctaa"})

	// pairs: 1-2 = 0.1, 1-3 = 0.2, 2-3 = 0.1
	want := (0.1 + 0.2 + 0.1) / 3
	got := dist.Mean(a)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("mean: got %.6f, want %.6f", got, want)
	}

	empty := align.New("empty.fas")
	empty.Add(align.Sequence{GI: "1", Taxon: "sp1", Seq: "----"})
	empty.Add(align.Sequence{GI: "2", Taxon: "sp2", Seq: "acgt"})
	if got := dist.Mean(empty); got != -1 {
		t.Errorf("mean without comparable pairs: got %.6f, want -1", got)
	}
}

func TestSpeciesPairs(t *testing.T) {
	a := align.New("pairs.fas")
	a.Add(align.Sequence{GI: "1", Taxon: "sp1", Seq: "acgtacgtac"})
	a.Add(align.Sequence{GI: "2", Taxon: "sp1", Seq: "acgtacgtaa"})
	a.Add(align.Sequence{GI: "3", Taxon: "sp2", Seq: "acgtacctaa"})

	pairs := dist.SpeciesPairs(a, []string{"sp1", "sp2", "sp3"})
	if len(pairs) != 1 {
		t.Fatalf("pairs: got %d, want %d", len(pairs), 1)
	}
	p := pairs[0]
	if p.A != "sp1" || p.B != "sp2" {
		t.Errorf("pair: got %s-%s, want sp1-sp2", p.A, p.B)
	}

	// seq1-seq3 = 0.2, seq2-seq3 = 0.1
	want := (0.2 + 0.1) / 2
	if math.Abs(p.Dist-want) > 1e-9 {
		t.Errorf("pair distance: got %.6f, want %.6f", p.Dist, want)
	}
}
