// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"

	"github.com/js-arias/supermat/align"
	"github.com/js-arias/supermat/taxonomy"
	"github.com/js-arias/timetree"
)

// AlignmentPaths reads the alignment list file
// as defined in a project
// and returns the paths of the alignment files.
func (p *Project) AlignmentPaths() ([]string, error) {
	name := p.Path(Alignments)
	if name == "" {
		return nil, fmt.Errorf("alignment list not defined in project %q", p.name)
	}

	paths, err := align.ReadListFile(name)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return paths, nil
}

// Alignments reads all the alignments
// named in the alignment list file
// as defined in a project.
func (p *Project) Alignments() ([]*align.Alignment, error) {
	name := p.Path(Alignments)
	if name == "" {
		return nil, fmt.Errorf("alignment list not defined in project %q", p.name)
	}

	alns, err := align.ReadPool(name)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return alns, nil
}

// Taxonomy reads a taxonomy table file
// as defined in a project.
func (p *Project) Taxonomy() (*taxonomy.Table, error) {
	name := p.Path(Taxonomy)
	if name == "" {
		return nil, fmt.Errorf("taxonomy not defined in project %q", p.name)
	}

	t, err := taxonomy.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Trees reads a tree collection file
// as defined in a project.
func (p *Project) Trees() (*timetree.Collection, error) {
	name := p.Path(Trees)
	if name == "" {
		return nil, fmt.Errorf("trees not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := timetree.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return c, nil
}
