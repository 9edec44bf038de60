// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package clade partitions the species
// of a backbone tree
// into monophyletic,
// or minimally paraphyletic,
// genus groups,
// and assigns the alignments
// relevant to each group
// for independent downstream analysis.
package clade

import (
	"slices"

	"github.com/grailbio/base/log"
	"github.com/js-arias/supermat/taxonomy"
	"github.com/js-arias/timetree"
)

// A Group is a set of genera
// that forms a clade in the backbone tree,
// expanded to the full species list
// of those genera in the taxonomy.
type Group struct {
	Genera  []string
	Species []string
}

// an accumulator for a tree traversal:
// the species in a subtree
// and the number of species per genus.
// Accumulators are returned up the tree
// and merged at each internal node,
// they are never shared between branches.
type accum struct {
	species map[string]bool
	genus   map[string]int
}

func newAccum() accum {
	return accum{
		species: make(map[string]bool),
		genus:   make(map[string]int),
	}
}

func (a accum) merge(c accum) {
	for sp := range c.species {
		a.species[sp] = true
	}
	for g, n := range c.genus {
		a.genus[g] += n
	}
}

// Decompose partitions the species of a rooted tree
// into genus groups.
//
// A genus whose species never share
// an exclusive ancestor
// (two occurrences in the whole tree,
// never counted as monophyletic)
// is paraphyletic:
// the smallest node covering both occurrences
// claims every genus under it as a single group.
// Every other monophyletic genus
// is its own group.
// Groups are expanded to all the species
// of their genera in the taxonomy;
// groups with two or fewer species are discarded,
// as they cannot resolve any topology.
func Decompose(t *timetree.Tree, tx *taxonomy.Table) []Group {
	nodes := make(map[int]accum)
	root := postOrder(t, tx, t.Root(), nodes)

	all := root.genus

	// monophyletic tallies
	mono := make(map[string]int)
	for id, ac := range nodes {
		if t.IsTerm(id) {
			continue
		}
		if len(ac.species) < 2 || len(ac.genus) != 1 {
			continue
		}
		for g, n := range ac.genus {
			mono[g] += n
		}
	}

	para := make(map[string]bool)
	for g, n := range all {
		if n == 2 && mono[g] == 0 {
			para[g] = true
		}
	}

	var groups [][]string
	claimGroups(t, t.Root(), nodes, para, mono, make(map[string]bool), &groups)

	// remaining monophyletic genera are their own group
	var left []string
	for g := range mono {
		left = append(left, g)
	}
	slices.Sort(left)
	for _, g := range left {
		groups = append(groups, []string{g})
	}

	// expand to full species sets
	genSp := tx.GenusSpecies()
	var gs []Group
	small := 0
	for _, genera := range groups {
		var species []string
		for _, g := range genera {
			species = append(species, genSp[g]...)
		}
		slices.Sort(species)
		if len(species) <= 2 {
			small++
			continue
		}
		gs = append(gs, Group{Genera: genera, Species: species})
	}
	if small > 0 {
		log.Printf("decomposition: %d groups with two or fewer species discarded", small)
	}
	return gs
}

// postOrder computes the accumulator of every node,
// keyed by node identifier.
func postOrder(t *timetree.Tree, tx *taxonomy.Table, n int, nodes map[int]accum) accum {
	ac := newAccum()
	if t.IsTerm(n) {
		sp := t.Taxon(n)
		g := tx.Genus(sp)
		if g == "" {
			log.Printf("terminal %q: not in the taxonomy, ignored", sp)
		} else {
			ac.species[sp] = true
			ac.genus[g] = 1
		}
		nodes[n] = ac
		return ac
	}

	for _, c := range t.Children(n) {
		ac.merge(postOrder(t, tx, c, nodes))
	}
	nodes[n] = ac
	return ac
}

// claimGroups visits internal nodes in post order:
// the deepest node
// at which a paraphyletic genus
// reaches its two occurrences
// claims the full genus list of the node
// as a single group,
// and the claimed genera are removed
// from both accumulators
// so that no ancestor re-triggers on them.
func claimGroups(t *timetree.Tree, n int, nodes map[int]accum, para map[string]bool, mono map[string]int, claimed map[string]bool, groups *[][]string) {
	if t.IsTerm(n) {
		return
	}
	for _, c := range t.Children(n) {
		claimGroups(t, c, nodes, para, mono, claimed, groups)
	}

	ac := nodes[n]
	genera := make([]string, 0, len(ac.genus))
	for g := range ac.genus {
		if claimed[g] {
			continue
		}
		genera = append(genera, g)
	}
	slices.Sort(genera)

	for _, g := range genera {
		if !para[g] || ac.genus[g] != 2 {
			continue
		}
		*groups = append(*groups, genera)
		for _, x := range genera {
			delete(para, x)
			delete(mono, x)
			claimed[x] = true
		}
		return
	}
}
