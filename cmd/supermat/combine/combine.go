// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package combine implements a command to merge
// the members of each cluster
// into a single alignment.
package combine

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/grailbio/base/traverse"
	"github.com/js-arias/command"
	"github.com/js-arias/supermat/align"
	"github.com/js-arias/supermat/cluster"
	"github.com/js-arias/supermat/merge"
	"github.com/js-arias/supermat/project"
)

var Command = &command.Command{
	Usage: `combine [--maxdist <value>] [--cpu <number>]
	[--mafft <command>] [-o|--output <dir>]
	<project-file> <cluster-file>`,
	Short: "merge the alignments of each cluster",
	Long: `
Command combine reads the alignments and the clusters of a SuperMat project
and merges the members of each cluster into a single alignment, by iterated
profile alignment with the mafft program.

Each member is profile-aligned against the running accumulator of its cluster;
the merge is kept only if the mean pairwise distance of the merged alignment
is below the maximum distance threshold, otherwise the member is discarded
permanently. The threshold can be changed with the flag --maxdist; its default
value is 0.25. A cluster whose every merge fails keeps its first member; this
is not an error. A cluster member without an alignment file is a fatal error.

By default all available CPUs will be used for the merging. Use the flag --cpu
to set a different number. Use the flag --mafft to set the name of the mafft
executable.

The first argument of the command is the name of the project file. The second
argument is the cluster file, one cluster per line, as written by the clusters
command.

The merged alignments are written to the directory given by the flag --output,
or -o (by default "merged"), one file per cluster, named by the cluster seed.
A new alignment list file is written in the same directory, and registered as
the alignment list of the project.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var maxDist float64
var numCPU int
var mafftCmd string
var output string

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&maxDist, "maxdist", 0.25, "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().StringVar(&mafftCmd, "mafft", "", "")
	c.Flags().StringVar(&output, "output", "merged", "")
	c.Flags().StringVar(&output, "o", "merged", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting project and cluster files")
	}
	cpu := numCPU
	if cpu == 0 {
		cpu = runtime.NumCPU()
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	paths, err := p.AlignmentPaths()
	if err != nil {
		return err
	}

	// seed identifier to alignment file
	files := make(map[string]string, len(paths))
	for _, path := range paths {
		a, err := align.ReadFile(path)
		if err != nil {
			return err
		}
		files[a.Seed().Seed] = path
	}

	clusters, err := readClusters(args[1])
	if err != nil {
		return err
	}

	if err := os.MkdirAll(output, 0755); err != nil {
		return err
	}

	// parallel phase:
	// each cluster is merged independently
	// and written to a file
	// named by its unique seed.
	results := make([]*merge.Result, len(clusters))
	err = traverse.Limit(cpu).Each(len(clusters), func(i int) error {
		seed := clusters[i][0]
		members := make([]string, 0, len(clusters[i]))
		for _, s := range clusters[i] {
			f, ok := files[s]
			if !ok {
				return fmt.Errorf("cluster %q: seed %q: alignment not in project", seed, s)
			}
			members = append(members, f)
		}

		res, err := merge.Cluster(seed, members, merge.Mafft{Cmd: mafftCmd}, maxDist, output)
		if err != nil {
			return err
		}
		if err := res.Aln.WriteFile(filepath.Join(output, seed+".fas")); err != nil {
			return err
		}
		results[i] = res
		return nil
	})
	if err != nil {
		return err
	}

	list := filepath.Join(output, "alignments.txt")
	if err := writeList(list, clusters); err != nil {
		return err
	}
	p.Add(project.Alignments, list)
	if err := p.Write(); err != nil {
		return err
	}

	merged, rejected := 0, 0
	for _, r := range results {
		merged += r.Merged
		rejected += len(r.Rejected)
	}
	fmt.Fprintf(c.Stderr(), "# %d clusters: %d members merged, %d rejected\n", len(clusters), merged, rejected)
	return nil
}

func readClusters(name string) ([][]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	clusters, err := cluster.ReadClusters(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return clusters, nil
}

func writeList(name string, clusters [][]string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	for _, cl := range clusters {
		fmt.Fprintf(bw, "%s\n", filepath.Join(output, cl[0]+".fas"))
	}
	return bw.Flush()
}
