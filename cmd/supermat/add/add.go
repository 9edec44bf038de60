// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add
// a dataset file to a SuperMat project.
package add

import (
	"errors"
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/supermat/project"
)

var Command = &command.Command{
	Usage: "add --type <dataset> <project-file> <dataset-file>",
	Short: "add a dataset file to a SuperMat project",
	Long: `
Command add registers a dataset file in a SuperMat project. If no project file
exists, a new project will be created.

The flag --type is required and indicates the dataset kind. Valid dataset
types are:

	alignments	the list of cluster alignment files
	taxonomy	the taxonomy table of the sampled species
	trees		the backbone trees, as a tab-delimited tree file

The first argument of the command is the name of the project file. The second
argument is the path of the dataset file, that must exist.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var typeFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&typeFlag, "type", "", "")
}

func run(c *command.Command, args []string) error {
	if typeFlag == "" {
		return c.UsageError("flag --type undefined")
	}
	if len(args) < 2 {
		return c.UsageError("expecting project and dataset files")
	}

	var set project.Dataset
	switch d := project.Dataset(typeFlag); d {
	case project.Alignments, project.Taxonomy, project.Trees:
		set = d
	default:
		return fmt.Errorf("invalid dataset type %q", typeFlag)
	}

	if _, err := os.Stat(args[1]); err != nil {
		return err
	}

	p, err := openProject(args[0])
	if err != nil {
		return err
	}
	p.Add(set, args[1])
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}
