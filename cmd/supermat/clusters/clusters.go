// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package clusters implements a command to build
// single-linkage clusters of alignment seeds
// from an all-vs-all search report.
package clusters

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/supermat/cluster"
	"github.com/js-arias/supermat/project"
	"golang.org/x/exp/slices"
)

var Command = &command.Command{
	Usage: `clusters [--overlap <value>] [-o|--output <file>]
	<project-file> <hit-file>`,
	Short: "build single-linkage clusters of alignment seeds",
	Long: `
Command clusters reads the alignments of a SuperMat project and an all-vs-all
search report between their seed sequences, and builds the single-linkage
clusters of mutually orthologous alignments.

A hit between two seeds is accepted only if the summed length of its aligned
intervals, relative to the ungapped length of each seed sequence, is larger
than the overlap threshold on both sides. The threshold can be changed with
the flag --overlap; its default value is 0.51. Clusters are the connected
components of the accepted-hit graph; a seed without accepted hits forms a
cluster of its own.

A hit that references a seed without an alignment in the project is a fatal
error, as it indicates a broken upstream stage.

The first argument of the command is the name of the project file. The second
argument is the search report, a tab-delimited file with the fields query,
subject, qstart, qend, sstart, and send.

The output is one cluster per line, as tab-delimited seed identifiers, written
to the standard output, or to the file given with the flag --output, or -o.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var overlap float64
var output string

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&overlap, "overlap", 0.51, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting project and hit files")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	alns, err := p.Alignments()
	if err != nil {
		return err
	}

	seeds := make([]string, 0, len(alns))
	length := make(map[string]int, len(alns))
	for _, a := range alns {
		s := a.Seed()
		seeds = append(seeds, s.Seed)
		length[s.Seed] = s.UngappedLen()
	}
	slices.Sort(seeds)

	hits, err := readHits(args[1])
	if err != nil {
		return err
	}

	clusters, err := cluster.Build(seeds, hits, length, overlap)
	if err != nil {
		return err
	}

	var w io.Writer = c.Stdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := cluster.WriteClusters(w, clusters); err != nil {
		return err
	}

	fmt.Fprintf(c.Stderr(), "# %d seeds in %d clusters\n", len(seeds), len(clusters))
	return nil
}

func readHits(name string) ([]cluster.Hit, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hits, err := cluster.ReadHits(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return hits, nil
}
