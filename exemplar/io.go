// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package exemplar

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// ReadTSV reads an exemplar list from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - genus, the genus identifier
//   - species, the identifier of an exemplar species
//
// Here is an example file:
//
//	genus	species
//	4575	4577
//	4575	4579
//	4584	4585
func ReadTSV(r io.Reader) ([]Exemplar, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range []string{"genus", "species"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	sp := make(map[string][]string)
	var genera []string
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		g := row[fields["genus"]]
		s := row[fields["species"]]
		if g == "" || s == "" {
			continue
		}
		if _, ok := sp[g]; !ok {
			genera = append(genera, g)
		}
		sp[g] = append(sp[g], s)
	}

	slices.Sort(genera)
	ex := make([]Exemplar, 0, len(genera))
	for _, g := range genera {
		ex = append(ex, Exemplar{Genus: g, Species: sp[g]})
	}
	return ex, nil
}

// TSV writes an exemplar list as a TSV file.
func TSV(w io.Writer, ex []Exemplar) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write([]string{"genus", "species"}); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, e := range ex {
		for _, s := range e.Species {
			if err := tab.Write([]string{e.Genus, s}); err != nil {
				return fmt.Errorf("when writing data: %v", err)
			}
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
