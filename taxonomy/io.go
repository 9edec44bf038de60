// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadTSV reads a taxonomy table from a TSV file.
//
// The header fields are the taxonomic ranks,
// from the least to the most inclusive,
// and must include the species and genus ranks.
// Empty and "NA" values indicate
// an absent assignation.
//
// Here is an example file:
//
//	species	genus	family	order	root
//	4577	4575	4479	38820	4447
//	4579	4575	4479	38820	4447
//	4585	4584	4479	38820	4447
func ReadTSV(r io.Reader) (*Table, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	ranks := make([]string, 0, len(head))
	for i, h := range head {
		h = canonRank(h)
		fields[h] = i
		ranks = append(ranks, h)
	}
	for _, h := range []string{RankSpecies, RankGenus} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	t := NewTable(ranks)
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		sp := row[fields[RankSpecies]]
		rec := make(map[string]string, len(ranks))
		for _, rk := range ranks {
			rec[rk] = row[fields[rk]]
		}
		if !t.Add(sp, rec) {
			return nil, fmt.Errorf("on row %d: repeated species %q", ln, sp)
		}
	}
	return t, nil
}

// ReadFile reads a taxonomy table from a file.
func ReadFile(name string) (*Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return t, nil
}

// TSV writes a taxonomy table as a TSV file.
func (t *Table) TSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	tab := csv.NewWriter(bw)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(t.ranks); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, sp := range t.Species() {
		row := make([]string, 0, len(t.ranks))
		for _, rk := range t.ranks {
			v := t.Rank(sp, rk)
			if v == "" {
				v = "NA"
			}
			row = append(row, v)
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

func canonRank(r string) string {
	return strings.ToLower(strings.TrimSpace(r))
}
