// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package matrix

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/js-arias/supermat/align"
)

// Write writes the supermatrix
// in interleaved sequential format:
// a header line with the number of taxa
// and the number of characters,
// then one block per selected alignment
// with one line per taxon;
// blocks are separated by a blank line.
// Taxon names are printed on the first block only,
// left-padded with spaces to 10 columns.
// A taxon absent from an alignment
// gets a block of missing data.
//
// An alignment with sequences of unequal length
// is a fatal error at write time.
func (s *Selection) Write(w io.Writer) error {
	for _, a := range s.Alns {
		if err := a.Check(); err != nil {
			return err
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", len(s.Taxa), s.NChar())
	for bi, a := range s.Alns {
		if bi > 0 {
			fmt.Fprintln(bw)
		}
		missing := strings.Repeat(string(align.MissingChar), a.NChar())
		for _, t := range s.Taxa {
			seq := missing
			if sq := a.TaxonSequences(t); len(sq) > 0 {
				seq = sq[0].Seq
			}
			if bi == 0 {
				fmt.Fprintf(bw, "%10s%s\n", t, seq)
				continue
			}
			fmt.Fprintf(bw, "%s\n", seq)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("when writing supermatrix: %v", err)
	}
	return nil
}
