// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package clade_test

import (
	"strings"
	"testing"

	"github.com/js-arias/supermat/align"
	"github.com/js-arias/supermat/clade"
	"github.com/js-arias/supermat/taxonomy"
	"github.com/js-arias/timetree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Genus M is monophyletic in the tree
// but genus P straddles it:
// Sp6 and Sp7 never share an exclusive ancestor.
// Genus G is a monophyletic clade of three species.
// Genus K has only two species,
// so its group is discarded.
var newick = `((((Sp6:1,(Sp1:0.5,Sp2:0.5):0.5):1,Sp7:2):1,(Sp3:2,(Sp4:1,Sp5:1):1):1):1,(Sp9:1,Sp10:1):3);`

var table = `species	genus
Sp1	M
Sp2	M
Sp8	M
Sp6	P
Sp7	P
Sp3	G
Sp4	G
Sp5	G
Sp9	K
Sp10	K
`

func readTree(t testing.TB) *timetree.Tree {
	t.Helper()

	c, err := timetree.Newick(strings.NewReader(newick), "backbone", 0)
	require.NoError(t, err)
	names := c.Names()
	require.Len(t, names, 1)
	return c.Tree(names[0])
}

func readTable(t testing.TB) *taxonomy.Table {
	t.Helper()

	tx, err := taxonomy.ReadTSV(strings.NewReader(table))
	require.NoError(t, err)
	return tx
}

func TestDecompose(t *testing.T) {
	tr := readTree(t)
	tx := readTable(t)

	groups := clade.Decompose(tr, tx)
	require.Len(t, groups, 2)

	// the node subtending both species of P
	// claims M and P as a single group,
	// expanded with Sp8
	// (a species of M absent from the tree)
	assert.Equal(t, []string{"M", "P"}, groups[0].Genera)
	assert.Equal(t, []string{"Sp1", "Sp2", "Sp6", "Sp7", "Sp8"}, groups[0].Species)

	// G is a monophyletic singleton group;
	// K has two species and is discarded
	assert.Equal(t, []string{"G"}, groups[1].Genera)
	assert.Equal(t, []string{"Sp3", "Sp4", "Sp5"}, groups[1].Species)

	// every species is in at most one group
	seen := make(map[string]int)
	for _, g := range groups {
		for _, sp := range g.Species {
			seen[sp]++
		}
	}
	for sp, n := range seen {
		assert.Equal(t, 1, n, "species %s", sp)
	}
}

func alnFor(name string, taxa ...string) *align.Alignment {
	a := align.New(name)
	for _, tx := range taxa {
		a.Add(align.Sequence{
			GI:    name + "-" + tx,
			Seed:  name,
			Taxon: tx,
			Seq:   "acgtacgtac",
		})
	}
	return a
}

func TestAssign(t *testing.T) {
	groups := []clade.Group{
		{Genera: []string{"M", "P"}, Species: []string{"Sp1", "Sp2", "Sp6", "Sp7", "Sp8"}},
		{Genera: []string{"G"}, Species: []string{"Sp3", "Sp4", "Sp5"}},
	}

	dense := alnFor("dense.fas", "Sp1", "Sp2", "Sp6", "Sp7")
	sparse := alnFor("sparse.fas", "Sp1", "Sp2")
	gClade := alnFor("g.fas", "Sp3", "Sp4", "Sp5")

	// a divergent alignment is rejected
	// no matter its density
	far := align.New("far.fas")
	far.Add(align.Sequence{GI: "1", Taxon: "Sp3", Seq: "acgtacgtac"})
	far.Add(align.Sequence{GI: "2", Taxon: "Sp4", Seq: "tgcatgcagg"})
	far.Add(align.Sequence{GI: "3", Taxon: "Sp5", Seq: "ttcaagcagg"})

	alns := []*align.Alignment{dense, sparse, gClade, far}
	sets := clade.Assign(alns, groups, 0.5, 0.30, 1)
	require.Len(t, sets, 2)

	// dense: 4 of 5 species, passes;
	// sparse: 2 distinct species only, fails
	assert.Equal(t, []int{0}, sets[0])
	assert.Equal(t, []int{2}, sets[1])
}
