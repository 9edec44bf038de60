// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package cluster

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadHits reads an all-vs-all search report
// from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - query, the seed identifier of the query sequence
//   - subject, the seed identifier of the hit sequence
//   - qstart, qend, the aligned interval on the query
//   - sstart, send, the aligned interval on the subject
//
// A query-subject pair can appear in multiple rows
// (one per local alignment);
// the interval lengths of all its rows are summed.
//
// Here is an example file:
//
//	query	subject	qstart	qend	sstart	send
//	729109	729221	1	407	13	419
//	729109	729221	450	511	462	523
//	729109	731020	100	227	1	128
func ReadHits(r io.Reader) ([]Hit, error) {
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
	for _, h := range []string{"query", "subject", "qstart", "qend", "sstart", "send"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	sum := make(map[[2]string]*Hit)
	var order [][2]string
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		q := row[fields["query"]]
		s := row[fields["subject"]]

		iv := make(map[string]int, 4)
		for _, f := range []string{"qstart", "qend", "sstart", "send"} {
			v, err := strconv.Atoi(row[fields[f]])
			if err != nil {
				return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
			}
			iv[f] = v
		}
		qAln := iv["qend"] - iv["qstart"] + 1
		sAln := iv["send"] - iv["sstart"] + 1
		if qAln < 0 {
			qAln = -qAln + 2
		}
		if sAln < 0 {
			sAln = -sAln + 2
		}

		k := [2]string{q, s}
		h, ok := sum[k]
		if !ok {
			h = &Hit{Query: q, Subject: s}
			sum[k] = h
			order = append(order, k)
		}
		h.QueryAln += qAln
		h.SubjectAln += sAln
	}

	hits := make([]Hit, 0, len(order))
	for _, k := range order {
		hits = append(hits, *sum[k])
	}
	return hits, nil
}

// WriteClusters writes a cluster list into a writer,
// one cluster per line,
// as tab-delimited seed identifiers.
func WriteClusters(w io.Writer, clusters [][]string) error {
	bw := bufio.NewWriter(w)
	for _, c := range clusters {
		fmt.Fprintf(bw, "%s\n", strings.Join(c, "\t"))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("when writing clusters: %v", err)
	}
	return nil
}

// ReadClusters reads a cluster list from a reader,
// one cluster per line,
// as tab-delimited seed identifiers.
func ReadClusters(r io.Reader) ([][]string, error) {
	var clusters [][]string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		clusters = append(clusters, strings.Split(line, "\t"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("when reading clusters: %v", err)
	}
	return clusters, nil
}
