// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package exemplars implements a command to select
// the species that represent each genus
// in the backbone supermatrix.
package exemplars

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/supermat/exemplar"
	"github.com/js-arias/supermat/project"
)

var Command = &command.Command{
	Usage: "exemplars [--cpu <number>] [-o|--output <file>] <project-file>",
	Short: "select the exemplar species of each genus",
	Long: `
Command exemplars reads the alignments and the taxonomy of a SuperMat project
and selects the species that will represent each genus in the backbone
supermatrix.

Genera with one or two species are represented by all their species. For a
larger genus, the exemplars are the most divergent species pair, accumulated
over every alignment that samples two or more species of the genus: in each
alignment the most divergent pair scores the number of compared pairs, minus
one. Ties are broken by the smallest species pair, so the selection is
deterministic. A genus without any comparable alignment is dropped and
reported.

By default all available CPUs will be used. Use the flag --cpu to set a
different number.

The argument of the command is the name of the project file.

The output is a TSV table with the fields genus and species, written to the
standard output, or to the file given with the flag --output, or -o.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var numCPU int
var output string

func setFlags(c *command.Command) {
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	alns, err := p.Alignments()
	if err != nil {
		return err
	}
	tx, err := p.Taxonomy()
	if err != nil {
		return err
	}

	ex := exemplar.Select(alns, tx, numCPU)

	var w io.Writer = c.Stdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := exemplar.TSV(w, ex); err != nil {
		return err
	}

	fmt.Fprintf(c.Stderr(), "# %d genera, %d exemplar species\n", len(ex), len(exemplar.Taxa(ex)))
	return nil
}
