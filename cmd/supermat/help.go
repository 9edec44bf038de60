// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(alignmentFilesGuide)
	app.Add(projectsGuide)
	app.Add(taxonomyFilesGuide)
	app.Add(treeFilesGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
SuperMat requires several files to read and process sequence data. To reduce
the burden of keeping track of many files, a single project file is used to
hold the reference of all files required in the analysis. This guide explains
the structure of the file, but most of the time, the best and most secure way
to edit or view this file is by using supermat commands.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# supermat project files
	dataset	path
	alignments	clusters.txt
	taxonomy	taxonomy.tab
	trees	trees.tab

The valid file types are:

- Alignment lists. Defined by the dataset keyword "alignments". This file
  contains the paths of the cluster alignment files, one per line. The
  recommended way to add an alignment list is by using the command
  'supermat add --type alignments'. The command 'supermat combine' registers
  the list of the merged alignments automatically.
- Taxonomy tables. Defined by the dataset keyword "taxonomy". This file
  contains the taxonomic assignations of the sampled species in the form of a
  tab-delimited file. The recommended way to add a taxonomy is by using the
  command 'supermat add --type taxonomy'.
- Time-calibrated trees. Defined by the dataset keyword "trees". This file
  contains one or more trees in the form of a tab-delimited file. The
  recommended way to add a tree file is by using the command
  'supermat add --type trees'.
	`,
}

var alignmentFilesGuide = &command.Command{
	Usage: "alignment-files",
	Short: "about alignment files",
	Long: `
In SuperMat, a cluster alignment is stored as a plain FASTA-like file of
two-line records: a definition line, followed by the aligned sequence on a
single line. Gaps are indicated with the "-" character, and missing data with
the "?" character.

The definition line is pipe-delimited, with each field keyword followed by
its value:

	- gi       the identifier of the sequence
	- seed_gi  the identifier of the seed sequence of the source cluster
	- taxon    the identifier of the species of the sequence
	- mrca     the identifier of the most recent common ancestor of the
	           source cluster

Here is an example file:

	>gi|729109|seed_gi|729109|taxon|4577|mrca|4575
	atcgg-catcgatc-gatcga
	>gi|729221|seed_gi|729109|taxon|4579|mrca|4575
	atcggacat--atcagatcga

The alignment files of a project are named in an alignment list file, one
path per line; blank lines, and lines naming a file that does not exist, are
ignored. In a SuperMat project, the alignment list is indicated with the
"alignments" keyword.
	`,
}

var taxonomyFilesGuide = &command.Command{
	Usage: "taxonomy-files",
	Short: "about taxonomy files",
	Long: `
In SuperMat, the taxonomy of the sampled species is stored in a tab-delimited
file. The header fields are the taxonomic ranks, from the least to the most
inclusive, and must include the "species" and "genus" ranks. Each row is a
species record, keyed by a unique species identifier; empty and "NA" values
indicate an absent assignation.

Here is an example file:

	species	genus	family	order	root
	4577	4575	4479	38820	4447
	4579	4575	4479	38820	4447
	4585	4584	4479	38820	4447

In a SuperMat project, the file that contains the taxonomy is indicated with
the "taxonomy" keyword.
	`,
}

var treeFilesGuide = &command.Command{
	Usage: "tree-files",
	Short: "about tree files",
	Long: `
In SuperMat, the backbone tree must be stored in a tab-delimited file. The
advantage of using a tab-delimited file is that it would be easier to
manipulate trees than in traditional newick files; for example, it would be
easier for commands in SuperMat, as well as for third-party applications, to
understand the node IDs.

A SuperMat tree file is a tab-delimited file with the following columns:

	-tree    for the name of the tree.
	-node    for the ID of the node.
	-parent  for of ID of the parent node (-1 is used for the root).
	-age     the age of the node (in years).
	-taxon   the taxonomic name of the node.

Here is an example file:

	# time calibrated phylogenetic tree
	tree	node	parent	age	taxon
	grasses	0	-1	235000000
	grasses	1	0	230000000	4577
	grasses	2	0	170000000
	grasses	3	2	145000000	4579
	grasses	4	2	71000000	4585

The terminals of the backbone tree are named by the species identifiers used
in the taxonomy. In a SuperMat project, the file that contains the trees is
indicated with the "trees" keyword.
	`,
}
