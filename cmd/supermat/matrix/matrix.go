// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package matrix implements a command to assemble
// the backbone supermatrix
// from the exemplar taxa.
package matrix

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/supermat/exemplar"
	"github.com/js-arias/supermat/matrix"
	"github.com/js-arias/supermat/project"
)

var Command = &command.Command{
	Usage: `matrix [--mincov <number>] [-o|--output <file>]
	<project-file> <exemplar-file>`,
	Short: "assemble the backbone supermatrix",
	Long: `
Command matrix reads the alignments of a SuperMat project and an exemplar
list, selects a sufficient, non-redundant set of alignments that covers each
exemplar taxon, and writes the concatenated supermatrix.

The selection is greedy: taxa are visited from the most rarely to the most
widely covered, and each taxon pulls its richest alignments until it is
covered by the minimum number of alignments, set with the flag --mincov (its
default value is 4). A taxon that runs out of alignments below the minimum
coverage is dropped from the matrix and reported; this is never an error.

The first argument of the command is the name of the project file. The second
argument is the exemplar file, a TSV table with the fields genus and species,
as written by the exemplars command.

The supermatrix is written in interleaved format, with a header line with the
number of taxa and characters, to the standard output, or to the file given
with the flag --output, or -o.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var minCov int
var output string

func setFlags(c *command.Command) {
	c.Flags().IntVar(&minCov, "mincov", 4, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting project and exemplar files")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	alns, err := p.Alignments()
	if err != nil {
		return err
	}

	ex, err := readExemplars(args[1])
	if err != nil {
		return err
	}
	taxa := exemplar.Taxa(ex)

	s := matrix.Select(alns, taxa, minCov)
	for _, t := range s.Exhausted {
		fmt.Fprintf(c.Stderr(), "# taxon %q: alignments exhausted below coverage %d\n", t, minCov)
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
	if err := s.Write(w); err != nil {
		return err
	}

	fmt.Fprintf(c.Stderr(), "# supermatrix: %d taxa, %d characters, %d alignments\n", len(s.Taxa), s.NChar(), len(s.Alns))
	return nil
}

func readExemplars(name string) ([]exemplar.Exemplar, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ex, err := exemplar.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return ex, nil
}
