// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package align provides sequence alignments
// read from cluster alignment files.
//
// Each sequence in an alignment is identified
// by a pipe-delimited definition line
// that stores the sequence identifier,
// the seed identifier of its source cluster,
// the species identifier,
// and the taxonomic most recent common ancestor
// of the cluster.
package align

import (
	"fmt"
	"slices"
	"strings"
)

// MissingChar is the character used for missing data.
const MissingChar = '?'

// GapChar is the character used for alignment gaps.
const GapChar = '-'

// A Sequence is an aligned sequence
// with its identifiers.
type Sequence struct {
	GI    string // sequence identifier
	Seed  string // seed identifier of the source cluster
	Taxon string // species identifier
	MRCA  string // taxonomic MRCA of the source cluster

	Seq string // aligned characters
}

// UngappedLen returns the number of characters
// of a sequence
// ignoring gaps and missing data.
func (s Sequence) UngappedLen() int {
	n := 0
	for _, c := range s.Seq {
		if c == GapChar || c == MissingChar {
			continue
		}
		n++
	}
	return n
}

// An Alignment is an ordered collection
// of aligned sequences.
// All sequences of a valid alignment
// have the same number of characters.
type Alignment struct {
	name string
	seqs []Sequence
}

// New creates a new empty alignment
// with a given name
// (usually the name of its source file).
func New(name string) *Alignment {
	return &Alignment{name: name}
}

// Add adds a sequence at the end of an alignment.
func (a *Alignment) Add(s Sequence) {
	a.seqs = append(a.seqs, s)
}

// Name returns the name of the alignment.
func (a *Alignment) Name() string {
	return a.name
}

// Len returns the number of sequences in the alignment.
func (a *Alignment) Len() int {
	return len(a.seqs)
}

// NChar returns the number of characters
// of the alignment.
func (a *Alignment) NChar() int {
	if len(a.seqs) == 0 {
		return 0
	}
	return len(a.seqs[0].Seq)
}

// Sequence returns the i-th sequence of the alignment.
func (a *Alignment) Sequence(i int) Sequence {
	return a.seqs[i]
}

// Sequences returns all sequences of the alignment
// in their storage order.
func (a *Alignment) Sequences() []Sequence {
	return a.seqs
}

// Seed returns the seed sequence of the alignment,
// that is the sequence whose identifier
// is equal to its seed identifier.
// If no such sequence exists,
// the first sequence is used as the seed.
func (a *Alignment) Seed() Sequence {
	for _, s := range a.seqs {
		if s.GI == s.Seed {
			return s
		}
	}
	return a.seqs[0]
}

// Taxa returns the species identifiers
// of the alignment,
// sorted, without duplicates.
func (a *Alignment) Taxa() []string {
	tx := make(map[string]bool, len(a.seqs))
	for _, s := range a.seqs {
		tx[s.Taxon] = true
	}
	taxa := make([]string, 0, len(tx))
	for t := range tx {
		taxa = append(taxa, t)
	}
	slices.Sort(taxa)
	return taxa
}

// HasTaxon returns true
// if the alignment contains at least one sequence
// of the given species.
func (a *Alignment) HasTaxon(taxon string) bool {
	for _, s := range a.seqs {
		if s.Taxon == taxon {
			return true
		}
	}
	return false
}

// TaxonSequences returns the sequences
// of a given species
// in their storage order.
func (a *Alignment) TaxonSequences(taxon string) []Sequence {
	var seqs []Sequence
	for _, s := range a.seqs {
		if s.Taxon == taxon {
			seqs = append(seqs, s)
		}
	}
	return seqs
}

// Restrict returns a new alignment
// with the sequences of the given species only.
func (a *Alignment) Restrict(taxa map[string]bool) *Alignment {
	na := New(a.name)
	for _, s := range a.seqs {
		if taxa[s.Taxon] {
			na.Add(s)
		}
	}
	return na
}

// Dedup removes sequences
// with a duplicated sequence identifier,
// keeping the first occurrence only.
func (a *Alignment) Dedup() {
	seen := make(map[string]bool, len(a.seqs))
	seqs := make([]Sequence, 0, len(a.seqs))
	for _, s := range a.seqs {
		if seen[s.GI] {
			continue
		}
		seen[s.GI] = true
		seqs = append(seqs, s)
	}
	a.seqs = seqs
}

// Check returns an error
// if the sequences of the alignment
// do not have the same number of characters.
func (a *Alignment) Check() error {
	nc := a.NChar()
	for _, s := range a.seqs {
		if len(s.Seq) != nc {
			return fmt.Errorf("alignment %q: sequence %q: got %d characters, want %d", a.name, s.GI, len(s.Seq), nc)
		}
	}
	return nil
}

// Defline returns the definition line of a sequence.
func (s Sequence) Defline() string {
	return fmt.Sprintf("gi|%s|seed_gi|%s|taxon|%s|mrca|%s", s.GI, s.Seed, s.Taxon, s.MRCA)
}

// ParseDefline decodes a definition line
// in the form
//
//	gi|<seqid>|seed_gi|<seedid>|taxon|<speciesid>|mrca|<mrcaid>
//
// into a sequence without characters.
func ParseDefline(line string) (Sequence, error) {
	line = strings.TrimPrefix(strings.TrimSpace(line), ">")
	fields := strings.Split(line, "|")
	if len(fields)%2 != 0 {
		return Sequence{}, fmt.Errorf("invalid defline %q", line)
	}

	var s Sequence
	for i := 0; i < len(fields); i += 2 {
		v := fields[i+1]
		switch strings.ToLower(fields[i]) {
		case "gi":
			s.GI = v
		case "seed_gi":
			s.Seed = v
		case "taxon":
			s.Taxon = v
		case "mrca":
			s.MRCA = v
		default:
			return Sequence{}, fmt.Errorf("invalid defline %q: unknown field %q", line, fields[i])
		}
	}
	if s.GI == "" {
		return Sequence{}, fmt.Errorf("invalid defline %q: expecting field %q", line, "gi")
	}
	return s, nil
}
