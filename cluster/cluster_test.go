// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package cluster_test

import (
	"strings"
	"testing"

	"github.com/js-arias/supermat/cluster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seeds = []string{"s1", "s2", "s3", "s4", "s5", "s6"}

var length = map[string]int{
	"s1": 100,
	"s2": 100,
	"s3": 100,
	"s4": 100,
	"s5": 100,
	"s6": 100,
}

func TestBuild(t *testing.T) {
	hits := []cluster.Hit{
		{Query: "s1", Subject: "s2", QueryAln: 80, SubjectAln: 80},
		{Query: "s2", Subject: "s3", QueryAln: 70, SubjectAln: 60},
		// rejected: subject side at the threshold
		{Query: "s3", Subject: "s4", QueryAln: 90, SubjectAln: 51},
		{Query: "s4", Subject: "s5", QueryAln: 60, SubjectAln: 60},
		// self hits are ignored
		{Query: "s1", Subject: "s1", QueryAln: 100, SubjectAln: 100},
	}

	clusters, err := cluster.Build(seeds, hits, length, 0.51)
	require.NoError(t, err)

	want := [][]string{
		{"s1", "s2", "s3"},
		{"s4", "s5"},
		{"s6"},
	}
	assert.Equal(t, want, clusters)

	// partition property: every seed in exactly one cluster
	seen := make(map[string]int)
	for _, c := range clusters {
		for _, s := range c {
			seen[s]++
		}
	}
	for _, s := range seeds {
		assert.Equal(t, 1, seen[s], "seed %s", s)
	}
}

func TestBuildTransitive(t *testing.T) {
	// s3 has no forward hits but is reachable backward:
	// the closure must yield a single cluster,
	// not a duplicate.
	hits := []cluster.Hit{
		{Query: "s1", Subject: "s3", QueryAln: 80, SubjectAln: 80},
		{Query: "s2", Subject: "s3", QueryAln: 80, SubjectAln: 80},
		{Query: "s1", Subject: "s2", QueryAln: 80, SubjectAln: 80},
	}

	clusters, err := cluster.Build([]string{"s1", "s2", "s3"}, hits, length, 0.51)
	require.NoError(t, err)
	require.Len(t, clusters, 1)
	assert.Equal(t, []string{"s1", "s2", "s3"}, clusters[0])
}

func TestBuildUnknownSeed(t *testing.T) {
	hits := []cluster.Hit{
		{Query: "s1", Subject: "sx", QueryAln: 80, SubjectAln: 80},
	}
	_, err := cluster.Build(seeds, hits, length, 0.51)
	require.Error(t, err, "an unknown seed is a fatal configuration error")

	noLen := []cluster.Hit{
		{Query: "s1", Subject: "s2", QueryAln: 80, SubjectAln: 80},
	}
	_, err = cluster.Build(seeds, noLen, map[string]int{"s1": 100}, 0.51)
	require.Error(t, err, "a missing sequence length is a fatal configuration error")
}

var hitFile = `query	subject	qstart	qend	sstart	send
729109	729221	1	407	13	419
729109	729221	450	511	462	523
729109	731020	100	227	1	128
`

func TestReadHits(t *testing.T) {
	hits, err := cluster.ReadHits(strings.NewReader(hitFile))
	require.NoError(t, err)

	want := []cluster.Hit{
		{Query: "729109", Subject: "729221", QueryAln: 407 + 62, SubjectAln: 407 + 62},
		{Query: "729109", Subject: "731020", QueryAln: 128, SubjectAln: 128},
	}
	assert.Equal(t, want, hits)
}

func TestClusterRoundTrip(t *testing.T) {
	clusters := [][]string{
		{"s1", "s2", "s3"},
		{"s4", "s5"},
		{"s6"},
	}

	var buf strings.Builder
	require.NoError(t, cluster.WriteClusters(&buf, clusters))

	got, err := cluster.ReadClusters(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, clusters, got)
}
