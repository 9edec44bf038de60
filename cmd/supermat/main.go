// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// SuperMat is a tool to assemble
// a reduced phylogenetic dataset
// from a pool of cluster alignments
// and a taxonomy.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/supermat/cmd/supermat/add"
	"github.com/js-arias/supermat/cmd/supermat/clusters"
	"github.com/js-arias/supermat/cmd/supermat/combine"
	"github.com/js-arias/supermat/cmd/supermat/decompose"
	"github.com/js-arias/supermat/cmd/supermat/exemplars"
	"github.com/js-arias/supermat/cmd/supermat/list"
	"github.com/js-arias/supermat/cmd/supermat/matrix"
)

var app = &command.Command{
	Usage: "supermat <command> [<argument>...]",
	Short: "a tool to assemble phylogenetic supermatrices",
}

func init() {
	app.Add(add.Command)
	app.Add(clusters.Command)
	app.Add(combine.Command)
	app.Add(decompose.Command)
	app.Add(exemplars.Command)
	app.Add(list.Command)
	app.Add(matrix.Command)
}

func main() {
	app.Main()
}
