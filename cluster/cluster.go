// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package cluster builds single-linkage clusters
// of alignment seeds
// from an all-vs-all local-alignment search report.
//
// A hit between two seeds is accepted
// only if the aligned fraction of each seed,
// relative to its own ungapped length,
// is larger than an overlap threshold.
// Clusters are the connected components
// of the accepted-hit graph.
package cluster

import (
	"fmt"
	"slices"

	"github.com/grailbio/base/log"
)

// A Hit is the summed local-alignment report
// between two seed sequences.
// QueryAln and SubjectAln are the total lengths
// of the aligned intervals
// on the query and the subject side.
type Hit struct {
	Query   string
	Subject string

	QueryAln   int
	SubjectAln int
}

// A Graph is a similarity graph
// between alignment seeds.
type Graph struct {
	seeds map[string]bool
	adj   map[string][]string
}

// NewGraph creates a new similarity graph
// with the given seed identifiers
// as its node universe.
func NewGraph(seeds []string) *Graph {
	g := &Graph{
		seeds: make(map[string]bool, len(seeds)),
		adj:   make(map[string][]string),
	}
	for _, s := range seeds {
		g.seeds[s] = true
	}
	return g
}

// AddHit adds an accepted hit edge to the graph.
// The hit is accepted only if the aligned fraction
// on both the query and the subject side
// is larger than the overlap threshold.
// It returns true if the hit was accepted.
//
// A hit that references a seed
// outside the graph universe
// is a fatal configuration error:
// it means the search report
// and the alignment pool are out of sync.
func (g *Graph) AddHit(h Hit, length map[string]int, overlap float64) (bool, error) {
	if h.Query == h.Subject {
		return false, nil
	}
	for _, s := range []string{h.Query, h.Subject} {
		if !g.seeds[s] {
			return false, fmt.Errorf("hit %s-%s: seed %q: alignment not in pool", h.Query, h.Subject, s)
		}
		if length[s] <= 0 {
			return false, fmt.Errorf("hit %s-%s: seed %q: sequence length not defined", h.Query, h.Subject, s)
		}
	}

	qf := float64(h.QueryAln) / float64(length[h.Query])
	sf := float64(h.SubjectAln) / float64(length[h.Subject])
	if qf <= overlap || sf <= overlap {
		return false, nil
	}

	g.adj[h.Query] = append(g.adj[h.Query], h.Subject)
	g.adj[h.Subject] = append(g.adj[h.Subject], h.Query)
	return true, nil
}

// Clusters returns the single-linkage clusters
// of the graph:
// the connected components of the accepted-hit edges.
// Every seed of the graph universe
// is in exactly one cluster;
// seeds without accepted hits
// form singleton clusters.
// Each cluster is a sorted list of seed identifiers
// and clusters are sorted by their first member.
func (g *Graph) Clusters() [][]string {
	u := newUnionFind()
	for s := range g.seeds {
		u.add(s)
	}
	for q, hits := range g.adj {
		for _, s := range hits {
			u.union(q, s)
		}
	}

	comp := make(map[string][]string)
	for s := range g.seeds {
		r := u.find(s)
		comp[r] = append(comp[r], s)
	}

	clusters := make([][]string, 0, len(comp))
	for _, c := range comp {
		slices.Sort(c)
		clusters = append(clusters, c)
	}
	slices.SortFunc(clusters, func(a, b []string) int {
		if a[0] < b[0] {
			return -1
		}
		if a[0] > b[0] {
			return 1
		}
		return 0
	})
	return clusters
}

// Build builds the similarity graph
// for a set of seeds
// from a raw hit report
// and returns its single-linkage clusters.
func Build(seeds []string, hits []Hit, length map[string]int, overlap float64) ([][]string, error) {
	g := NewGraph(seeds)

	accepted := 0
	for _, h := range hits {
		ok, err := g.AddHit(h, length, overlap)
		if err != nil {
			return nil, err
		}
		if ok {
			accepted++
		}
	}
	log.Printf("similarity graph: %d seeds, %d of %d hits accepted", len(seeds), accepted, len(hits))

	return g.Clusters(), nil
}

// union-find with path compression
// and union by size.
type unionFind struct {
	parent map[string]string
	size   map[string]int
}

func newUnionFind() *unionFind {
	return &unionFind{
		parent: make(map[string]string),
		size:   make(map[string]int),
	}
}

func (u *unionFind) add(s string) {
	if _, ok := u.parent[s]; ok {
		return
	}
	u.parent[s] = s
	u.size[s] = 1
}

func (u *unionFind) find(s string) string {
	r := s
	for u.parent[r] != r {
		r = u.parent[r]
	}
	for u.parent[s] != r {
		u.parent[s], s = r, u.parent[s]
	}
	return r
}

func (u *unionFind) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.size[ra] < u.size[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	u.size[ra] += u.size[rb]
}
