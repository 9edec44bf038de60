// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package align

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/grailbio/base/log"
)

// Read reads an alignment from a reader.
// The expected format is a plain FASTA-like file
// of two-line records:
// a definition line
// followed by the aligned characters
// on a single line.
//
// Here is an example file:
//
//	>gi|729109|seed_gi|729109|taxon|4577|mrca|4575
//	atcgg-catcgatc-gatcga
//	>gi|729221|seed_gi|729109|taxon|4579|mrca|4575
//	atcggacat--atcagatcga
func Read(r io.Reader, name string) (*Alignment, error) {
	a := New(name)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	var curr Sequence
	var open bool
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if open {
				a.Add(curr)
			}
			s, err := ParseDefline(line)
			if err != nil {
				return nil, fmt.Errorf("alignment %q: %v", name, err)
			}
			curr = s
			open = true
			continue
		}
		if !open {
			return nil, fmt.Errorf("alignment %q: sequence characters without a definition line", name)
		}
		curr.Seq += strings.ToLower(line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("alignment %q: %v", name, err)
	}
	if open {
		a.Add(curr)
	}
	if a.Len() == 0 {
		return nil, fmt.Errorf("alignment %q: without sequences", name)
	}
	return a, nil
}

// ReadFile reads an alignment from a file.
func ReadFile(name string) (*Alignment, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f, name)
}

// Write writes an alignment into a writer
// as two-line FASTA records.
func (a *Alignment) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, s := range a.seqs {
		fmt.Fprintf(bw, ">%s\n%s\n", s.Defline(), s.Seq)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("alignment %q: %v", a.name, err)
	}
	return nil
}

// WriteFile writes an alignment into a file.
func (a *Alignment) WriteFile(name string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	return a.Write(f)
}

// ReadList reads a list of alignment file paths,
// one path per line.
// Blank lines,
// and lines naming a file that does not exist,
// are skipped.
func ReadList(r io.Reader, name string) ([]string, error) {
	var paths []string
	skip := 0

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		p := strings.TrimSpace(sc.Text())
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			skip++
			continue
		}
		paths = append(paths, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("list %q: %v", name, err)
	}
	if skip > 0 {
		log.Printf("list %q: %d alignment files not found, skipped", name, skip)
	}
	return paths, nil
}

// ReadListFile reads a list of alignment file paths
// from a file.
func ReadListFile(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadList(f, name)
}

// ReadPool reads all the alignments
// named in a list file.
func ReadPool(name string) ([]*Alignment, error) {
	paths, err := ReadListFile(name)
	if err != nil {
		return nil, err
	}

	alns := make([]*Alignment, 0, len(paths))
	for _, p := range paths {
		a, err := ReadFile(p)
		if err != nil {
			return nil, err
		}
		alns = append(alns, a)
	}
	return alns, nil
}
