// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package merge

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
)

// Mafft is a profiler backed by the mafft program,
// using its --add mode
// to align the candidate file
// onto the accumulator alignment.
type Mafft struct {
	// Cmd is the name of the mafft executable.
	// If empty, "mafft" is used.
	Cmd string
}

// Profile implements the Profiler interface.
func (m Mafft) Profile(acc, cand, out string) (err error) {
	cmd := m.Cmd
	if cmd == "" {
		cmd = "mafft"
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	x := exec.Command(cmd, "--quiet", "--add", cand, acc)
	x.Stdout = f
	var stderr bytes.Buffer
	x.Stderr = &stderr
	if err := x.Run(); err != nil {
		return fmt.Errorf("%s: %v: %s", cmd, err, stderr.String())
	}
	return nil
}
