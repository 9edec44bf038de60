// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package decompose implements a command to partition
// the species of a backbone tree
// into clade groups
// with their own alignment sets.
package decompose

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/js-arias/command"
	"github.com/js-arias/supermat/clade"
	"github.com/js-arias/supermat/project"
	"github.com/js-arias/timetree"
)

var Command = &command.Command{
	Usage: `decompose [--tree <tree-name>]
	[--density <value>] [--maxdist <value>] [--cpu <number>]
	[-o|--output <dir>] <project-file>`,
	Short: "partition the backbone tree into clade groups",
	Long: `
Command decompose reads the backbone tree, the taxonomy, and the alignments of
a SuperMat project, partitions the species into monophyletic, or minimally
paraphyletic, genus groups, and assigns to each group the alignments that are
locally relevant for an independent within-clade analysis.

By default the first tree of the tree file is used; use the flag --tree to
pick a tree by its name. Groups with two or fewer species are discarded, as
they cannot resolve any topology.

An alignment is assigned to a group if the fraction of the group species
present in the alignment is at least the value of the flag --density (default
0.33), more than two group species are present, and the mean pairwise distance
of the alignment is at most the value of the flag --maxdist (default 0.75).
An alignment assigned to no group is reported and skipped. By default all
available CPUs will be used; use the flag --cpu to set a different number.

The argument of the command is the name of the project file.

One directory per clade, named clade0, clade1, and so on, is created under the
output directory given by the flag --output, or -o (by default the current
directory). Each assigned alignment is written to the clade directory, with
its file name preserved, restricted to the sequences of the group species.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var density float64
var maxDist float64
var numCPU int
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().Float64Var(&density, "density", 0.33, "")
	c.Flags().Float64Var(&maxDist, "maxdist", 0.75, "")
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
	tc, err := p.Trees()
	if err != nil {
		return err
	}
	t, err := pickTree(tc)
	if err != nil {
		return err
	}
	tx, err := p.Taxonomy()
	if err != nil {
		return err
	}
	alns, err := p.Alignments()
	if err != nil {
		return err
	}

	groups := clade.Decompose(t, tx)
	sets := clade.Assign(alns, groups, density, maxDist, numCPU)

	for gi, g := range groups {
		dir := filepath.Join(output, fmt.Sprintf("clade%d", gi))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}

		sp := make(map[string]bool, len(g.Species))
		for _, s := range g.Species {
			sp[s] = true
		}
		for _, i := range sets[gi] {
			a := alns[i].Restrict(sp)
			name := filepath.Join(dir, filepath.Base(a.Name()))
			if err := a.WriteFile(name); err != nil {
				return err
			}
		}
		fmt.Fprintf(c.Stderr(), "# clade%d: %d genera, %d species, %d alignments\n", gi, len(g.Genera), len(g.Species), len(sets[gi]))
	}
	return nil
}

func pickTree(tc *timetree.Collection) (*timetree.Tree, error) {
	names := tc.Names()
	if len(names) == 0 {
		return nil, fmt.Errorf("tree file without trees")
	}
	if treeName == "" {
		return tc.Tree(names[0]), nil
	}

	t := tc.Tree(treeName)
	if t == nil {
		return nil, fmt.Errorf("tree %q not in tree file", treeName)
	}
	return t, nil
}
